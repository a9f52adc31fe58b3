package engine

import (
	"fmt"
	"sort"
)

// ErrGameFinished is returned when a roll arrives after somebody has won
var ErrGameFinished = fmt.Errorf("%w: game already finished", ErrInvalidInput)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	Snapshot() *GameState
	Reset() *GameState
	IsFinished() bool
	Phase() Phase

	// Turn operations
	TakeTurn(roll int) (*TurnResult, error)
	PlayTurns(rolls []int) ([]*TurnResult, error)

	// Players
	ActivePlayer() Player
	Players() []Player
	Winner() (Player, bool)
	Standings() []Player

	// Configuration
	GetConfig() *BoardConfig
	GetRules() *RuleTable

	// History
	GetTurnHistory() []TurnRecord
	GetLastTurn() *TurnRecord
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state    *GameState
	config   *BoardConfig
	rules    *RuleTable
	messages BoardMessages
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *BoardConfig) (*GameEngine, error) {
	if err := ValidateBoardConfig(config); err != nil {
		return nil, err
	}

	rules, err := config.RuleTable()
	if err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config:   config,
		rules:    rules,
		messages: config.ResolvedMessages(),
		state:    InitGameStateFromConfig(config),
	}

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine on the classic board
func NewEngineWithDefaults() *GameEngine {
	engine, err := NewEngine(DefaultBoardConfig())
	if err != nil {
		panic(fmt.Sprintf("default board config: %v", err))
	}
	return engine
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// Snapshot returns a deep copy of the current state
func (e *GameEngine) Snapshot() *GameState {
	return e.state.Clone()
}

// Reset returns every player to the start and hands the dice to the first player
func (e *GameEngine) Reset() *GameState {
	// Preserve cumulative history and totals across resets
	prevHistory := e.state.TurnHistory
	prevTotal := e.state.TotalTurns

	e.state = InitGameStateFromConfig(e.config)
	e.state.Message = e.messages.Reset

	e.state.TurnHistory = prevHistory
	e.state.TotalTurns = prevTotal
	e.state.CurrentTurns = []TurnRecord{}
	e.state.CurrentTurnsCount = 0

	return e.state
}

// IsFinished returns whether somebody has won
func (e *GameEngine) IsFinished() bool {
	return e.state.Phase == PhaseFinished
}

// Phase returns the current game phase
func (e *GameEngine) Phase() Phase {
	return e.state.Phase
}

// TakeTurn resolves roll for the active player and advances the turn.
// On error the state is left untouched.
func (e *GameEngine) TakeTurn(roll int) (*TurnResult, error) {
	if e.state.Phase == PhaseFinished {
		return nil, ErrGameFinished
	}

	idx := e.state.ActivePlayer
	player := &e.state.Players[idx]
	from := player.Position

	outcome, err := ResolveMove(from, roll, e.rules)
	if err != nil {
		return nil, err
	}

	player.ApplyOutcome(outcome)
	e.state.LastRoll = roll
	e.state.Message = narrate(e.messages, player.Name, roll, outcome)
	record := e.state.AddTurnToHistory(*player, roll, from, outcome)

	if outcome.Kind() == OutcomeWon {
		winner := player.ID
		e.state.Winner = &winner
		e.state.Phase = PhaseFinished
	} else {
		e.state.ActivePlayer = (idx + 1) % len(e.state.Players)
	}

	return &TurnResult{
		Outcome:  outcome,
		PlayerID: player.ID,
		Phase:    e.state.Phase,
		Record:   record,
	}, nil
}

// PlayTurns applies rolls in order, stopping at the first error or when the game finishes
func (e *GameEngine) PlayTurns(rolls []int) ([]*TurnResult, error) {
	results := make([]*TurnResult, 0, len(rolls))

	for _, roll := range rolls {
		if e.IsFinished() {
			break
		}

		result, err := e.TakeTurn(roll)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

// ActivePlayer returns the player whose turn it is
func (e *GameEngine) ActivePlayer() Player {
	return e.state.Players[e.state.ActivePlayer]
}

// Players returns a copy of the players in turn order
func (e *GameEngine) Players() []Player {
	out := make([]Player, len(e.state.Players))
	copy(out, e.state.Players)
	return out
}

// Winner returns the winning player once the game is finished
func (e *GameEngine) Winner() (Player, bool) {
	if e.state.Winner == nil {
		return Player{}, false
	}
	return e.state.Players[*e.state.Winner], true
}

// Standings returns players ordered from furthest along to furthest behind
func (e *GameEngine) Standings() []Player {
	out := e.Players()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position > out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// GetConfig returns the current board configuration
func (e *GameEngine) GetConfig() *BoardConfig {
	return e.config
}

// GetRules returns the board's rule table
func (e *GameEngine) GetRules() *RuleTable {
	return e.rules
}

// GetTurnHistory returns the complete turn history
func (e *GameEngine) GetTurnHistory() []TurnRecord {
	return e.state.TurnHistory
}

// GetLastTurn returns the last turn played, or nil if no turns
func (e *GameEngine) GetLastTurn() *TurnRecord {
	if len(e.state.TurnHistory) == 0 {
		return nil
	}
	return &e.state.TurnHistory[len(e.state.TurnHistory)-1]
}

type narrator struct {
	messages BoardMessages
	name     string
	roll     int
	text     string
}

func (n *narrator) VisitBlocked(o Blocked) {
	n.text = fmt.Sprintf(n.messages.Overshoot, n.name, o.Position)
}

func (n *narrator) VisitWon(o Won) {
	n.text = fmt.Sprintf(n.messages.Victory, n.name)
}

func (n *narrator) VisitAdvanced(o Advanced) {
	n.text = fmt.Sprintf(n.messages.Advanced, n.name, n.roll, o.To)
}

func (n *narrator) VisitSnakeSlide(o SnakeSlide) {
	n.text = fmt.Sprintf(n.messages.Snake, n.name, o.To)
}

func (n *narrator) VisitLadderClimb(o LadderClimb) {
	n.text = fmt.Sprintf(n.messages.Ladder, n.name, o.To)
}

func narrate(messages BoardMessages, name string, roll int, outcome MoveOutcome) string {
	n := &narrator{messages: messages, name: name, roll: roll}
	outcome.Accept(n)
	return n.text
}
