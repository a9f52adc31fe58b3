package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/snakes-ladders-game/game/dice"
	"github.com/wricardo/snakes-ladders-game/game/engine"
)

const maxSessionIDLength = 32

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	roller   dice.Roller
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "classic"
	if configName == "" {
		return "classic"
	}
	return configName
}

// NewGameService creates a new game service instance.
// A nil roller falls back to a die seeded from crypto/rand.
func NewGameService(sessions SessionManager, configs ConfigManager, roller dice.Roller) GameService {
	if roller == nil {
		d, err := dice.NewRandom()
		if err != nil {
			log.Printf("Warning: falling back to time-seeded dice: %v", err)
			d = dice.New(time.Now().UnixNano())
		}
		roller = d
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		roller:   roller,
	}
}

// CreateSession creates a new game session with a generated 4-character id
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	return s.createSession("", configName)
}

// CreateNamedSession creates a session under a caller-chosen id.
// Ids are matched case-insensitively; a taken id fails with ErrSessionAlreadyExists.
func (s *gameServiceImpl) CreateNamedSession(ctx context.Context, sessionID, configName string) (*SessionInfo, error) {
	if err := checkSessionID(sessionID); err != nil {
		return nil, err
	}
	return s.createSession(sessionID, configName)
}

func (s *gameServiceImpl) createSession(sessionID, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.BoardConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found (available: %s): %w", configName, strings.Join(configIDs, ", "), err)
				}
				return nil, fmt.Errorf("config '%s' not found, use /api/configs to list boards: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// An empty id lets the session manager generate one
	session, err := s.sessions.Create(sessionID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID, // Return the config_id, not the display name
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.Snapshot(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
	return nil
}

// Roll plays one turn for the active player. A value of 0 rolls the session die.
func (s *gameServiceImpl) Roll(ctx context.Context, sessionID string, value int, reset bool) (*RollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkRollValue(value); err != nil {
		return nil, err
	}

	events := []GameEvent{}

	if reset {
		events = append(events, s.reset(sess))
	}

	if value == 0 {
		value = s.roller.Roll()
	}

	turn, err := sess.Engine.TakeTurn(value)
	if err != nil {
		return nil, fmt.Errorf("roll %d: %w", value, err)
	}

	state := sess.Engine.Snapshot()
	events = append(events, turnEvents(turn, state.Message)...)

	result := &RollResult{
		Success:   true,
		GameState: state,
		Message:   state.Message,
		Events:    events,
		Turn:      &turn.Record,
	}
	if winner, ok := sess.Engine.Winner(); ok {
		result.Winner = &winner
	}

	return result, nil
}

// BulkRoll plays up to engine.MaxBulkRolls turns in order, stopping at victory or the first bad roll.
// A cancelled ctx also stops it; turns already played are kept and reported.
func (s *gameServiceImpl) BulkRoll(ctx context.Context, sessionID string, values []int, reset bool) (*BulkRollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkRollResult{
		RequestedRolls: len(values),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		result.Events = append(result.Events, s.reset(sess))
	}
	result.StartPositions = positions(sess.Engine.Players())

	if len(values) > engine.MaxBulkRolls {
		result.Truncated = true
		result.Limit = engine.MaxBulkRolls
		values = values[:engine.MaxBulkRolls]
	}

	for i, value := range values {
		if err := ctx.Err(); err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("cancelled before roll %d: %v", i+1, err)
			result.StopReasonCode = StopCancelled
			result.StoppedOnRoll = i + 1
			break
		}

		if sess.Engine.IsFinished() {
			result.StoppedReason = "game already finished"
			result.StopReasonCode = StopGameFinished
			result.StoppedOnRoll = i + 1
			break
		}

		if value == 0 {
			value = s.roller.Roll()
		}

		turn, err := sess.Engine.TakeTurn(value)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("roll %d rejected: %v", i+1, err)
			result.StopReasonCode = StopInvalidRoll
			result.StoppedOnRoll = i + 1
			break
		}

		result.RollsExecuted++
		result.Turns = append(result.Turns, turn.Record)
		result.Events = append(result.Events, turnEvents(turn, sess.Engine.GetState().Message)...)

		if turn.Phase == engine.PhaseFinished {
			result.StoppedReason = fmt.Sprintf("%s won on roll %d", turn.Record.PlayerName, i+1)
			result.StopReasonCode = StopVictory
			result.StoppedOnRoll = i + 1
			break
		}
	}

	state := sess.Engine.Snapshot()
	result.GameState = state
	result.EndPositions = positions(sess.Engine.Players())
	result.Finished = sess.Engine.IsFinished()
	result.Message = state.Message
	if winner, ok := sess.Engine.Winner(); ok {
		result.Winner = &winner
	}

	return result, nil
}

// Reset puts every player back on the start square
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.reset(sess)
	return sess.Engine.Snapshot(), nil
}

func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return sess.Engine.Snapshot(), nil
}

func (s *gameServiceImpl) GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetTurnHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var turns []engine.TurnRecord
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			turns = append(turns, history[i])
		}
	} else if start < total {
		turns = append(turns, history[start:end]...)
	}

	if turns == nil {
		turns = []engine.TurnRecord{}
	}

	return &HistoryResponse{
		Turns:       turns,
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// GetBoard describes the session's board and where every player stands
func (s *gameServiceImpl) GetBoard(ctx context.Context, sessionID string) (*BoardInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	tiles := make([][]int, engine.BoardRows)
	for row := range tiles {
		tiles[row] = make([]int, engine.BoardColumns)
		for col := range tiles[row] {
			tiles[row][col], _ = engine.TileAt(col, row)
		}
	}

	return &BoardInfo{
		ConfigName:  s.getConfigID(sess.Config.Name),
		Columns:     engine.BoardColumns,
		Rows:        engine.BoardRows,
		GoalTile:    engine.GoalTile,
		Transitions: sess.Engine.GetRules().Transitions(),
		Tiles:       tiles,
		Players:     sess.Engine.Players(),
	}, nil
}

func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error) {
	return s.configs.LoadConfig(configName)
}

// getSession looks up a session and marks it as accessed
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Config.Name), // Return config_id consistently
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.Snapshot(),
		GameConfig:     sess.Config,
	}
}

func (s *gameServiceImpl) reset(sess *Session) GameEvent {
	state := sess.Engine.Reset()
	return GameEvent{
		Type:      EventReset,
		Message:   state.Message,
		Timestamp: time.Now(),
	}
}

// checkSessionID accepts ids that are safe to use as a URL path segment
func checkSessionID(id string) error {
	if id == "" || len(id) > maxSessionIDLength {
		return fmt.Errorf("%w: session id must be 1-%d characters", engine.ErrInvalidInput, maxSessionIDLength)
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: session id %q may only use letters, digits, '-' and '_'", engine.ErrInvalidInput, id)
		}
	}
	return nil
}

// checkRollValue accepts 0 (roll the die) or a face value
func checkRollValue(value int) error {
	if value == 0 || (value >= engine.MinRoll && value <= engine.MaxRoll) {
		return nil
	}
	return fmt.Errorf("%w: roll %d outside %d..%d", engine.ErrInvalidInput, value, engine.MinRoll, engine.MaxRoll)
}

func positions(players []engine.Player) []int {
	out := make([]int, len(players))
	for i, p := range players {
		out[i] = p.Position
	}
	return out
}

// eventCollector turns a resolved move into the events shown to clients
type eventCollector struct {
	record  engine.TurnRecord
	message string
	now     time.Time
	events  []GameEvent
}

func (c *eventCollector) add(kind, message string, tile int) {
	c.events = append(c.events, GameEvent{
		Type:      kind,
		Message:   message,
		Timestamp: c.now,
		PlayerID:  c.record.PlayerID,
		Tile:      tile,
	})
}

func (c *eventCollector) rolled(tile int) {
	c.add(EventRoll, fmt.Sprintf("%s rolled %d", c.record.PlayerName, c.record.Roll), tile)
}

func (c *eventCollector) VisitBlocked(o engine.Blocked) {
	c.add(EventOvershoot, c.message, o.Position)
}

func (c *eventCollector) VisitWon(o engine.Won) {
	c.rolled(o.Landed)
	if o.ViaLadder {
		c.add(EventLadder, fmt.Sprintf("%s climbs a ladder to %d", c.record.PlayerName, engine.GoalTile), engine.GoalTile)
	}
	c.add(EventVictory, c.message, engine.GoalTile)
}

func (c *eventCollector) VisitAdvanced(o engine.Advanced) {
	c.rolled(o.To)
}

func (c *eventCollector) VisitSnakeSlide(o engine.SnakeSlide) {
	c.rolled(o.Landed)
	c.add(EventSnake, c.message, o.To)
}

func (c *eventCollector) VisitLadderClimb(o engine.LadderClimb) {
	c.rolled(o.Landed)
	c.add(EventLadder, c.message, o.To)
}

func turnEvents(turn *engine.TurnResult, message string) []GameEvent {
	c := &eventCollector{record: turn.Record, message: message, now: time.Now()}
	turn.Outcome.Accept(c)
	return c.events
}
