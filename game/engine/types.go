package engine

// Phase represents the lifecycle phase of a game
type Phase string

const (
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"

	// Board constants
	StartPosition = 0
	GoalTile      = 100
	BoardColumns  = 10
	BoardRows     = 10

	// Dice and player limits
	MinRoll      = 1
	MaxRoll      = 6
	MinPlayers   = 1
	MaxPlayers   = 4
	MaxBulkRolls = 50
)

// Player represents a single participant on the board
type Player struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"` // 0 = off-board start, 1..100 = tiles
}

// GameState represents the complete game state
type GameState struct {
	Players      []Player `json:"players"`
	ActivePlayer int      `json:"active_player"`
	Phase        Phase    `json:"phase"`
	Winner       *int     `json:"winner,omitempty"`
	LastRoll     int      `json:"last_roll,omitempty"`
	Message      string   `json:"message"`
	ConfigName   string   `json:"config_name"`

	TurnHistory []TurnRecord `json:"turn_history"`
	TotalTurns  int          `json:"total_turns"`

	// CurrentTurns tracks only the turns since the last reset. It mirrors TurnHistory entries
	// but gets cleared on reset while TurnHistory remains cumulative.
	CurrentTurns      []TurnRecord `json:"current_turns"`
	CurrentTurnsCount int          `json:"current_turns_count"`
}

// TurnRecord represents a single resolved roll in the game history
type TurnRecord struct {
	TurnNumber int           `json:"turn_number"`
	PlayerID   int           `json:"player_id"`
	PlayerName string        `json:"player_name"`
	Roll       int           `json:"roll"`
	From       int           `json:"from"`
	To         int           `json:"to"`
	Outcome    OutcomeRecord `json:"outcome"`
	Timestamp  int64         `json:"timestamp"`
}

// TurnResult is what TakeTurn hands back to the presentation layer
type TurnResult struct {
	Outcome  MoveOutcome `json:"-"`
	PlayerID int         `json:"player_id"`
	Phase    Phase       `json:"phase"`
	Record   TurnRecord  `json:"record"`
}

// Clone returns a deep copy that shares no slices or pointers with gs
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	out := *gs
	out.Players = append([]Player(nil), gs.Players...)
	out.TurnHistory = append([]TurnRecord(nil), gs.TurnHistory...)
	out.CurrentTurns = append([]TurnRecord(nil), gs.CurrentTurns...)
	if gs.Winner != nil {
		winner := *gs.Winner
		out.Winner = &winner
	}
	if out.TurnHistory == nil {
		out.TurnHistory = []TurnRecord{}
	}
	if out.CurrentTurns == nil {
		out.CurrentTurns = []TurnRecord{}
	}
	return &out
}
