package engine

import (
	"errors"
	"testing"
)

func createTestConfig() *BoardConfig {
	return &BoardConfig{
		Name:        "Engine Test Board",
		Description: "Board for engine integration tests",
		Players:     []string{"Ana", "Ben", "Cy"},
		Snakes:      ClassicSnakes(),
		Ladders:     ClassicLadders(),
		Messages:    DefaultMessages(),
	}
}

func newTestEngine(t *testing.T) *GameEngine {
	t.Helper()
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return engine
}

func TestNewEngine(t *testing.T) {
	engine := newTestEngine(t)

	state := engine.GetState()
	if len(state.Players) != 3 {
		t.Fatalf("Expected 3 players, got %d", len(state.Players))
	}
	for i, p := range state.Players {
		if p.ID != i {
			t.Errorf("Expected player %d to have id %d, got %d", i, i, p.ID)
		}
		if p.Position != StartPosition {
			t.Errorf("Expected player %d at start, got %d", i, p.Position)
		}
	}
	if engine.Phase() != PhaseInProgress {
		t.Errorf("Expected phase %s, got %s", PhaseInProgress, engine.Phase())
	}
	if engine.ActivePlayer().ID != 0 {
		t.Errorf("Expected first player active, got %d", engine.ActivePlayer().ID)
	}
	if _, ok := engine.Winner(); ok {
		t.Error("Expected no winner initially")
	}
	if state.Message != DefaultMessages().Welcome {
		t.Errorf("Expected welcome message, got %q", state.Message)
	}
	if engine.GetRules().Len() != 12 {
		t.Errorf("Expected 12 rules, got %d", engine.GetRules().Len())
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Players = nil

	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for board without players")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	engine := NewEngineWithDefaults()
	if len(engine.Players()) != MaxPlayers {
		t.Errorf("Expected %d players, got %d", MaxPlayers, len(engine.Players()))
	}
	if engine.GetConfig().Name != "classic" {
		t.Errorf("Expected classic config, got %s", engine.GetConfig().Name)
	}
}

func TestTakeTurn_AdvancesActivePlayer(t *testing.T) {
	engine := newTestEngine(t)

	for turn := 0; turn < 7; turn++ {
		before := engine.GetState().ActivePlayer
		result, err := engine.TakeTurn(1)
		if err != nil {
			t.Fatalf("Turn %d: unexpected error %v", turn, err)
		}
		if result.PlayerID != before {
			t.Errorf("Turn %d: expected player %d to move, got %d", turn, before, result.PlayerID)
		}
		if result.Phase != PhaseInProgress {
			t.Errorf("Turn %d: expected in-progress phase", turn)
		}
		expected := (before + 1) % 3
		if engine.GetState().ActivePlayer != expected {
			t.Errorf("Turn %d: expected active player %d, got %d", turn, expected, engine.GetState().ActivePlayer)
		}
	}
}

func TestTakeTurn_AppliesOutcome(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.TakeTurn(3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Outcome != (LadderClimb{Landed: 3, To: 57}) {
		t.Errorf("Expected ladder climb, got %#v", result.Outcome)
	}
	if engine.GetState().Players[0].Position != 57 {
		t.Errorf("Expected Ana on 57, got %d", engine.GetState().Players[0].Position)
	}
	if engine.GetState().LastRoll != 3 {
		t.Errorf("Expected last roll 3, got %d", engine.GetState().LastRoll)
	}
	if result.Record.From != 0 || result.Record.To != 57 || result.Record.PlayerName != "Ana" {
		t.Errorf("Unexpected record: %+v", result.Record)
	}
}

func TestTakeTurn_Win(t *testing.T) {
	engine := newTestEngine(t)
	engine.GetState().Players[1].Position = 94
	engine.GetState().ActivePlayer = 1

	result, err := engine.TakeTurn(6)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Outcome.Kind() != OutcomeWon {
		t.Fatalf("Expected win, got %s", result.Outcome.Kind())
	}
	if result.Phase != PhaseFinished || !engine.IsFinished() {
		t.Error("Expected game to be finished")
	}
	if engine.GetState().ActivePlayer != 1 {
		t.Errorf("Expected active player to stay 1, got %d", engine.GetState().ActivePlayer)
	}
	winner, ok := engine.Winner()
	if !ok || winner.ID != 1 || winner.Name != "Ben" {
		t.Errorf("Expected Ben to win, got %+v (%v)", winner, ok)
	}
	if winner.Position != GoalTile {
		t.Errorf("Expected winner on goal, got %d", winner.Position)
	}
	if engine.GetState().Message != "Ben WINS!" {
		t.Errorf("Unexpected message %q", engine.GetState().Message)
	}
}

func TestTakeTurn_AfterFinish(t *testing.T) {
	engine := newTestEngine(t)
	engine.GetState().Players[0].Position = 99

	if _, err := engine.TakeTurn(1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	totalBefore := engine.GetState().TotalTurns
	_, err := engine.TakeTurn(3)
	if !errors.Is(err, ErrGameFinished) {
		t.Errorf("Expected ErrGameFinished, got %v", err)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrGameFinished to be an invalid input, got %v", err)
	}
	if engine.GetState().TotalTurns != totalBefore {
		t.Error("Expected no turn to be recorded after finish")
	}
}

func TestTakeTurn_InvalidRollLeavesStateUntouched(t *testing.T) {
	engine := newTestEngine(t)

	for _, roll := range []int{0, 7, -3} {
		if _, err := engine.TakeTurn(roll); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Roll %d: expected ErrInvalidInput, got %v", roll, err)
		}
	}

	state := engine.GetState()
	if state.ActivePlayer != 0 || state.TotalTurns != 0 || state.Players[0].Position != 0 {
		t.Errorf("State changed after invalid rolls: %+v", state)
	}
}

func TestTakeTurn_Messages(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		roll     int
		expected string
	}{
		{"advance", 0, 4, "Ana rolled 4, moves to 4."},
		{"ladder", 0, 3, "Ana climbs a ladder to 57!"},
		{"snake", 30, 4, "Ana slides down a snake to 1!"},
		{"overshoot", 98, 5, "Ana overshoots. Stays at 98."},
		{"victory", 97, 3, "Ana WINS!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t)
			engine.GetState().Players[0].Position = tt.start

			if _, err := engine.TakeTurn(tt.roll); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if engine.GetState().Message != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, engine.GetState().Message)
			}
		})
	}
}

func TestTakeTurn_CustomMessages(t *testing.T) {
	config := createTestConfig()
	config.Messages = BoardMessages{Advanced: "%s -> %d -> %d"}

	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	if _, err := engine.TakeTurn(2); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if engine.GetState().Message != "Ana -> 2 -> 2" {
		t.Errorf("Unexpected message %q", engine.GetState().Message)
	}
}

func TestTakeTurn_WinViaLadder(t *testing.T) {
	config := createTestConfig()
	config.Snakes = nil
	config.Ladders = map[int]int{80: 100}

	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	engine.GetState().Players[0].Position = 77

	result, err := engine.TakeTurn(3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Outcome != (Won{Landed: 80, ViaLadder: true}) {
		t.Errorf("Expected win via ladder, got %#v", result.Outcome)
	}
	if !engine.IsFinished() {
		t.Error("Expected game to be finished")
	}
}

func TestReset(t *testing.T) {
	engine := newTestEngine(t)
	engine.GetState().Players[0].Position = 97

	if _, err := engine.PlayTurns([]int{1, 5, 6, 2}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !engine.IsFinished() {
		t.Fatal("Expected Ana to win on her second roll")
	}
	historyBefore := len(engine.GetTurnHistory())

	state := engine.Reset()

	for i, p := range state.Players {
		if p.Position != StartPosition {
			t.Errorf("Expected player %d at start, got %d", i, p.Position)
		}
		if p.ID != i {
			t.Errorf("Expected player %d to keep id, got %d", i, p.ID)
		}
	}
	if state.Phase != PhaseInProgress {
		t.Errorf("Expected in-progress phase, got %s", state.Phase)
	}
	if state.ActivePlayer != 0 {
		t.Errorf("Expected active player 0, got %d", state.ActivePlayer)
	}
	if state.Winner != nil {
		t.Error("Expected winner to be cleared")
	}
	if len(state.TurnHistory) != historyBefore || state.TotalTurns != historyBefore {
		t.Errorf("Expected cumulative history of %d to survive reset, got %d", historyBefore, len(state.TurnHistory))
	}
	if len(state.CurrentTurns) != 0 || state.CurrentTurnsCount != 0 {
		t.Error("Expected current segment to be cleared")
	}
	if state.Message != DefaultMessages().Reset {
		t.Errorf("Expected reset message, got %q", state.Message)
	}

	if _, err := engine.TakeTurn(2); err != nil {
		t.Errorf("Expected play to resume after reset, got %v", err)
	}
}

func TestPlayTurns_StopsAtFinish(t *testing.T) {
	engine := newTestEngine(t)
	engine.GetState().Players[0].Position = 96

	results, err := engine.PlayTurns([]int{4, 1, 1, 1, 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 turn before finish, got %d", len(results))
	}
}

func TestPlayTurns_StopsAtError(t *testing.T) {
	engine := newTestEngine(t)

	results, err := engine.PlayTurns([]int{2, 9, 2})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 applied turn, got %d", len(results))
	}
}

func TestStandings(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.GetState()
	state.Players[0].Position = 10
	state.Players[1].Position = 40
	state.Players[2].Position = 10

	standings := engine.Standings()
	order := []int{standings[0].ID, standings[1].ID, standings[2].ID}
	expected := []int{1, 0, 2}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("Expected order %v, got %v", expected, order)
		}
	}

	// Standings must not reorder the players themselves
	if engine.GetState().Players[0].ID != 0 {
		t.Error("Standings mutated player order")
	}
}

func TestGetLastTurn(t *testing.T) {
	engine := newTestEngine(t)
	if engine.GetLastTurn() != nil {
		t.Error("Expected no last turn initially")
	}

	engine.TakeTurn(2)
	engine.TakeTurn(5)

	last := engine.GetLastTurn()
	if last == nil || last.TurnNumber != 2 || last.Roll != 5 || last.PlayerName != "Ben" {
		t.Errorf("Unexpected last turn: %+v", last)
	}
}

func TestSnapshot(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.TakeTurn(4); err != nil {
		t.Fatalf("TakeTurn: %v", err)
	}

	snap := engine.Snapshot()

	// Later turns must not show through the snapshot
	engine.TakeTurn(5)
	engine.TakeTurn(2)
	if snap.TotalTurns != 1 || len(snap.TurnHistory) != 1 || len(snap.CurrentTurns) != 1 {
		t.Errorf("Snapshot history changed: total=%d history=%d current=%d",
			snap.TotalTurns, len(snap.TurnHistory), len(snap.CurrentTurns))
	}
	if snap.ActivePlayer != 1 || snap.Players[1].Position != StartPosition {
		t.Errorf("Snapshot players changed: active=%d positions=%v", snap.ActivePlayer, snap.Players)
	}

	// Nor does editing the snapshot reach the engine
	snap.Players[0].Position = 99
	snap.TurnHistory[0].Roll = 6
	if engine.GetState().Players[0].Position == 99 || engine.GetState().TurnHistory[0].Roll != 4 {
		t.Error("Snapshot shares memory with the engine state")
	}
}

func TestSnapshotFinishedGame(t *testing.T) {
	engine := newTestEngine(t)
	engine.GetState().Players[0].Position = 97
	engine.TakeTurn(3)

	snap := engine.Snapshot()
	if snap.Phase != PhaseFinished || snap.Winner == nil || *snap.Winner != 0 {
		t.Fatalf("Unexpected snapshot: phase=%s winner=%v", snap.Phase, snap.Winner)
	}

	*snap.Winner = 2
	if *engine.GetState().Winner != 0 {
		t.Error("Snapshot winner aliases the engine state")
	}
}
