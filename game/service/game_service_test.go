package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/snakes-ladders-game/game/dice"
	"github.com/wricardo/snakes-ladders-game/game/engine"
	"github.com/wricardo/snakes-ladders-game/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.BoardConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("t%03d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, service.ErrSessionAlreadyExists
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return service.ErrSessionNotFound
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.BoardConfig
}

func NewMockConfigManager() *MockConfigManager {
	duel := &engine.BoardConfig{
		Name:        "Duel",
		Description: "Two players",
		Players:     []string{"Red", "Blue"},
	}
	return &MockConfigManager{
		configs: map[string]*engine.BoardConfig{
			"classic": engine.DefaultBoardConfig(),
			"duel":    duel,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.BoardConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, fmt.Errorf("configuration not found: %s", name)
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	var result []*service.ConfigInfo
	for _, id := range []string{"classic", "duel"} {
		c := m.configs[id]
		result = append(result, &service.ConfigInfo{
			Filename:    id + ".json",
			ConfigID:    id,
			Name:        c.Name,
			Description: c.Description,
			PlayerCount: len(c.Players),
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.BoardConfig {
	return m.configs["classic"]
}

type fixture struct {
	svc      service.GameService
	sessions *MockSessionManager
	ctx      context.Context
}

func newFixture(t *testing.T, faces ...int) *fixture {
	t.Helper()
	if len(faces) == 0 {
		faces = []int{4}
	}
	sessions := NewMockSessionManager()
	return &fixture{
		svc:      service.NewGameService(sessions, NewMockConfigManager(), dice.NewSequence(faces...)),
		sessions: sessions,
		ctx:      context.Background(),
	}
}

func (f *fixture) create(t *testing.T, config string) *service.SessionInfo {
	t.Helper()
	info, err := f.svc.CreateSession(f.ctx, config)
	require.NoError(t, err)
	return info
}

func (f *fixture) state(t *testing.T, id string) *engine.GameState {
	t.Helper()
	sess, err := f.sessions.Get(id)
	require.NoError(t, err)
	return sess.Engine.GetState()
}

func TestCreateSession(t *testing.T) {
	f := newFixture(t)

	t.Run("default config", func(t *testing.T) {
		info := f.create(t, "")
		assert.Equal(t, "classic", info.ConfigName)
		assert.Len(t, info.GameState.Players, 4)
		assert.Equal(t, engine.PhaseInProgress, info.GameState.Phase)
	})

	t.Run("named config", func(t *testing.T) {
		info := f.create(t, "duel")
		assert.Equal(t, "duel", info.ConfigName)
		assert.Equal(t, "Red", info.GameState.Players[0].Name)
	})

	t.Run("unknown config lists alternatives", func(t *testing.T) {
		_, err := f.svc.CreateSession(f.ctx, "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "classic, duel")
	})
}

func TestCreateNamedSession(t *testing.T) {
	f := newFixture(t)

	info, err := f.svc.CreateNamedSession(f.ctx, "table-1", "duel")
	require.NoError(t, err)
	assert.Equal(t, "table-1", info.ID)
	assert.Equal(t, "duel", info.ConfigName)

	_, err = f.svc.CreateNamedSession(f.ctx, "table-1", "")
	assert.ErrorIs(t, err, service.ErrSessionAlreadyExists)

	for _, id := range []string{"", "a/b", "has space", "x123456789012345678901234567890123"} {
		_, err := f.svc.CreateNamedSession(f.ctx, id, "")
		assert.ErrorIs(t, err, engine.ErrInvalidInput, "id %q", id)
	}
}

func TestGetListDeleteSession(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "")
	f.create(t, "duel")

	got, err := f.svc.GetSession(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "classic", got.ConfigName)

	all, err := f.svc.ListSessions(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, f.svc.DeleteSession(f.ctx, a.ID))
	_, err = f.svc.GetSession(f.ctx, a.ID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	assert.ErrorIs(t, f.svc.DeleteSession(f.ctx, a.ID), service.ErrSessionNotFound)
}

func TestRoll(t *testing.T) {
	t.Run("explicit value climbs ladder", func(t *testing.T) {
		f := newFixture(t)
		info := f.create(t, "")

		result, err := f.svc.Roll(f.ctx, info.ID, 3, false)
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, "Player 1 climbs a ladder to 57!", result.Message)
		require.NotNil(t, result.Turn)
		assert.Equal(t, 0, result.Turn.From)
		assert.Equal(t, 57, result.Turn.To)
		assert.Equal(t, engine.OutcomeLadderClimb, result.Turn.Outcome.Kind)
		assert.Equal(t, 1, result.GameState.ActivePlayer)
		assert.Nil(t, result.Winner)

		require.Len(t, result.Events, 2)
		assert.Equal(t, service.EventRoll, result.Events[0].Type)
		assert.Equal(t, 3, result.Events[0].Tile)
		assert.Equal(t, service.EventLadder, result.Events[1].Type)
		assert.Equal(t, 57, result.Events[1].Tile)
	})

	t.Run("zero rolls the die", func(t *testing.T) {
		f := newFixture(t, 4, 5)
		info := f.create(t, "")

		result, err := f.svc.Roll(f.ctx, info.ID, 0, false)
		require.NoError(t, err)
		assert.Equal(t, 4, result.Turn.Roll)
		assert.Equal(t, 4, result.GameState.Players[0].Position)

		result, err = f.svc.Roll(f.ctx, info.ID, 0, false)
		require.NoError(t, err)
		assert.Equal(t, 5, result.Turn.Roll)
		assert.Equal(t, 5, result.GameState.Players[1].Position)
	})

	t.Run("overshoot is not an error", func(t *testing.T) {
		f := newFixture(t)
		info := f.create(t, "")
		f.state(t, info.ID).Players[0].Position = 98

		result, err := f.svc.Roll(f.ctx, info.ID, 5, false)
		require.NoError(t, err)
		assert.Equal(t, 98, result.GameState.Players[0].Position)
		assert.Equal(t, engine.OutcomeBlocked, result.Turn.Outcome.Kind)
		require.Len(t, result.Events, 1)
		assert.Equal(t, service.EventOvershoot, result.Events[0].Type)
	})

	t.Run("invalid value leaves state untouched", func(t *testing.T) {
		f := newFixture(t)
		info := f.create(t, "")

		_, err := f.svc.Roll(f.ctx, info.ID, 9, true)
		assert.ErrorIs(t, err, engine.ErrInvalidInput)
		assert.Equal(t, 0, f.state(t, info.ID).TotalTurns)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Roll(f.ctx, "zzzz", 3, false)
		assert.ErrorIs(t, err, service.ErrSessionNotFound)
	})

	t.Run("victory then finished", func(t *testing.T) {
		f := newFixture(t)
		info := f.create(t, "")
		f.state(t, info.ID).Players[0].Position = 94

		result, err := f.svc.Roll(f.ctx, info.ID, 6, false)
		require.NoError(t, err)
		require.NotNil(t, result.Winner)
		assert.Equal(t, 0, result.Winner.ID)
		assert.Equal(t, engine.PhaseFinished, result.GameState.Phase)
		assert.Equal(t, service.EventVictory, result.Events[len(result.Events)-1].Type)

		_, err = f.svc.Roll(f.ctx, info.ID, 2, false)
		assert.ErrorIs(t, err, engine.ErrGameFinished)

		// reset flag starts a fresh round before rolling
		result, err = f.svc.Roll(f.ctx, info.ID, 2, true)
		require.NoError(t, err)
		assert.Equal(t, service.EventReset, result.Events[0].Type)
		assert.Equal(t, 2, result.GameState.Players[0].Position)
		assert.Equal(t, engine.PhaseInProgress, result.GameState.Phase)
	})
}

func TestBulkRoll(t *testing.T) {
	t.Run("all rolls applied", func(t *testing.T) {
		f := newFixture(t)
		info := f.create(t, "")

		result, err := f.svc.BulkRoll(f.ctx, info.ID, []int{1, 1, 1, 1}, false)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, 4, result.RollsExecuted)
		assert.Equal(t, 4, result.RequestedRolls)
		assert.Equal(t, []int{0, 0, 0, 0}, result.StartPositions)
		assert.Equal(t, []int{1, 1, 1, 1}, result.EndPositions)
		assert.Len(t, result.Turns, 4)
		assert.Empty(t, result.StopReasonCode)
		assert.False(t, result.Finished)
	})

	t.Run("stops at victory", func(t *testing.T) {
		f := newFixture(t)
		info := f.create(t, "")
		f.state(t, info.ID).Players[0].Position = 94

		result, err := f.svc.BulkRoll(f.ctx, info.ID, []int{6, 1, 1}, false)
		require.NoError(t, err)
		assert.Equal(t, 1, result.RollsExecuted)
		assert.Equal(t, service.StopVictory, result.StopReasonCode)
		assert.Equal(t, 1, result.StoppedOnRoll)
		assert.True(t, result.Finished)
		require.NotNil(t, result.Winner)
		assert.Equal(t, "Player 1", result.Winner.Name)

		again, err := f.svc.BulkRoll(f.ctx, info.ID, []int{1}, false)
		require.NoError(t, err)
		assert.Equal(t, 0, again.RollsExecuted)
		assert.Equal(t, service.StopGameFinished, again.StopReasonCode)
	})

	t.Run("stops at invalid roll", func(t *testing.T) {
		f := newFixture(t)
		info := f.create(t, "")

		result, err := f.svc.BulkRoll(f.ctx, info.ID, []int{2, 8, 2}, false)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, 1, result.RollsExecuted)
		assert.Equal(t, service.StopInvalidRoll, result.StopReasonCode)
		assert.Equal(t, 2, result.StoppedOnRoll)
	})

	t.Run("truncates to the limit", func(t *testing.T) {
		f := newFixture(t)
		info := f.create(t, "")

		values := make([]int, engine.MaxBulkRolls+10)
		for i := range values {
			values[i] = 1
		}

		result, err := f.svc.BulkRoll(f.ctx, info.ID, values, false)
		require.NoError(t, err)
		assert.True(t, result.Truncated)
		assert.Equal(t, engine.MaxBulkRolls, result.Limit)
		assert.Equal(t, engine.MaxBulkRolls, result.RollsExecuted)
		assert.Equal(t, engine.MaxBulkRolls+10, result.RequestedRolls)
	})

	t.Run("reset first", func(t *testing.T) {
		f := newFixture(t, 2)
		info := f.create(t, "")
		f.state(t, info.ID).Players[0].Position = 50

		result, err := f.svc.BulkRoll(f.ctx, info.ID, []int{0}, true)
		require.NoError(t, err)
		assert.Equal(t, service.EventReset, result.Events[0].Type)
		assert.Equal(t, []int{0, 0, 0, 0}, result.StartPositions)
		assert.Equal(t, 2, result.EndPositions[0])
	})

	t.Run("cancelled context", func(t *testing.T) {
		f := newFixture(t)
		info := f.create(t, "")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.svc.BulkRoll(ctx, info.ID, []int{1, 2}, false)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestReturnedStateIsACopy(t *testing.T) {
	f := newFixture(t)
	info := f.create(t, "")

	first, err := f.svc.Roll(f.ctx, info.ID, 4, false)
	require.NoError(t, err)

	_, err = f.svc.Roll(f.ctx, info.ID, 5, false)
	require.NoError(t, err)

	// Results handed out earlier keep showing their own turn
	assert.Equal(t, 1, first.GameState.TotalTurns)
	assert.Len(t, first.GameState.TurnHistory, 1)
	assert.Equal(t, 1, first.GameState.ActivePlayer)
	assert.Equal(t, engine.StartPosition, first.GameState.Players[1].Position)

	// Editing a returned state does not reach the session
	state, err := f.svc.GetGameState(f.ctx, info.ID)
	require.NoError(t, err)
	state.Players[0].Position = 99
	state.TurnHistory[0].Roll = 6
	live := f.state(t, info.ID)
	assert.Equal(t, 4, live.Players[0].Position)
	assert.Equal(t, 4, live.TurnHistory[0].Roll)
}

// cancelAfterRoll cancels the request once the first die has been rolled
type cancelAfterRoll struct {
	cancel context.CancelFunc
	face   int
}

func (r *cancelAfterRoll) Roll() int {
	r.cancel()
	return r.face
}

func TestBulkRollCancelled(t *testing.T) {
	sessions := NewMockSessionManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := service.NewGameService(sessions, NewMockConfigManager(), &cancelAfterRoll{cancel: cancel, face: 4})

	info, err := svc.CreateSession(context.Background(), "")
	require.NoError(t, err)

	result, err := svc.BulkRoll(ctx, info.ID, []int{0, 0, 0}, false)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, service.StopCancelled, result.StopReasonCode)
	assert.Equal(t, 2, result.StoppedOnRoll)
	assert.Equal(t, 1, result.RollsExecuted)
	assert.Equal(t, []int{4, 0, 0, 0}, result.EndPositions)
	assert.Equal(t, 1, result.GameState.TotalTurns)
	assert.False(t, result.Finished)
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	info := f.create(t, "")

	_, err := f.svc.BulkRoll(f.ctx, info.ID, []int{3, 4, 5}, false)
	require.NoError(t, err)

	state, err := f.svc.Reset(f.ctx, info.ID)
	require.NoError(t, err)
	for _, p := range state.Players {
		assert.Equal(t, engine.StartPosition, p.Position)
	}
	assert.Equal(t, 0, state.ActivePlayer)
	assert.Equal(t, 3, state.TotalTurns)
	assert.Empty(t, state.CurrentTurns)

	_, err = f.svc.Reset(f.ctx, "zzzz")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestGetTurnHistory(t *testing.T) {
	f := newFixture(t)
	info := f.create(t, "")

	_, err := f.svc.BulkRoll(f.ctx, info.ID, []int{1, 2, 4, 5, 1}, false)
	require.NoError(t, err)

	desc, err := f.svc.GetTurnHistory(f.ctx, info.ID, service.HistoryOptions{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, desc.TotalTurns)
	assert.Equal(t, 3, desc.TotalPages)
	require.Len(t, desc.Turns, 2)
	assert.Equal(t, 5, desc.Turns[0].TurnNumber)
	assert.Equal(t, 4, desc.Turns[1].TurnNumber)
	assert.True(t, desc.HasNext)
	assert.False(t, desc.HasPrevious)

	asc, err := f.svc.GetTurnHistory(f.ctx, info.ID, service.HistoryOptions{Page: 3, Limit: 2, Order: "asc"})
	require.NoError(t, err)
	require.Len(t, asc.Turns, 1)
	assert.Equal(t, 5, asc.Turns[0].TurnNumber)
	assert.False(t, asc.HasNext)
	assert.True(t, asc.HasPrevious)

	empty, err := f.svc.GetTurnHistory(f.ctx, info.ID, service.HistoryOptions{Page: 9, Limit: 2, Order: "asc"})
	require.NoError(t, err)
	assert.Empty(t, empty.Turns)
	assert.NotNil(t, empty.Turns)
}

func TestGetBoard(t *testing.T) {
	f := newFixture(t)
	info := f.create(t, "")

	_, err := f.svc.Roll(f.ctx, info.ID, 3, false)
	require.NoError(t, err)

	board, err := f.svc.GetBoard(f.ctx, info.ID)
	require.NoError(t, err)

	assert.Equal(t, "classic", board.ConfigName)
	assert.Equal(t, 100, board.GoalTile)
	assert.Len(t, board.Transitions, 12)
	require.Len(t, board.Tiles, engine.BoardRows)
	assert.Equal(t, 100, board.Tiles[0][9])
	assert.Equal(t, 1, board.Tiles[9][0])

	tile, ok := board.Tile(3)
	require.True(t, ok)
	require.NotNil(t, tile.Transition)
	assert.Equal(t, 57, tile.Transition.To)
	assert.Empty(t, tile.Occupants)

	tile, ok = board.Tile(57)
	require.True(t, ok)
	assert.Nil(t, tile.Transition)
	require.Len(t, tile.Occupants, 1)
	assert.Equal(t, "Player 1", tile.Occupants[0].Name)

	_, ok = board.Tile(0)
	assert.False(t, ok)
}

func TestConfigs(t *testing.T) {
	f := newFixture(t)

	configs, err := f.svc.ListConfigs(f.ctx)
	require.NoError(t, err)
	assert.Len(t, configs, 2)

	config, err := f.svc.LoadConfig(f.ctx, "duel")
	require.NoError(t, err)
	assert.Equal(t, "Duel", config.Name)
}
