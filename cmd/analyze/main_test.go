package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/snakes-ladders-game/game/dice"
	"github.com/wricardo/snakes-ladders-game/game/engine"
)

func plainBoard(t *testing.T, ladders map[int]int) *engine.RuleTable {
	t.Helper()
	rules, err := engine.NewRuleTable(nil, ladders)
	require.NoError(t, err)
	return rules
}

func TestPlaySolo(t *testing.T) {
	tests := []struct {
		name    string
		ladders map[int]int
		faces   []int
		turns   int
		won     bool
	}{
		{"fives reach 100 exactly", nil, []int{5}, 20, true},
		{"sixes stall on 96", nil, []int{6}, turnCap, false},
		{"ladder onto the goal", map[int]int{6: 100}, []int{6}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turns, won, err := playSolo(plainBoard(t, tt.ladders), dice.NewSequence(tt.faces...))
			require.NoError(t, err)
			assert.Equal(t, tt.turns, turns)
			assert.Equal(t, tt.won, won)
		})
	}
}

func TestPlaySoloRejectsBadDice(t *testing.T) {
	_, _, err := playSolo(plainBoard(t, nil), dice.NewSequence(7))
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestSimulate(t *testing.T) {
	sim, err := simulate(plainBoard(t, nil), 3, dice.NewSequence(5))
	require.NoError(t, err)
	assert.Equal(t, Simulation{Games: 3, MeanTurns: 20, MinTurns: 20, MaxTurns: 20}, sim)

	sim, err = simulate(plainBoard(t, nil), 2, dice.NewSequence(6))
	require.NoError(t, err)
	assert.Equal(t, 2, sim.Unfinished)
	assert.Zero(t, sim.MeanTurns)

	sim, err = simulate(plainBoard(t, nil), 0, dice.NewSequence(5))
	require.NoError(t, err)
	assert.Equal(t, Simulation{}, sim)
}

func TestAnalyzeBoardClassic(t *testing.T) {
	report, err := analyzeBoard("classic", engine.DefaultBoardConfig(), 50, dice.New(1))
	require.NoError(t, err)

	assert.Equal(t, "classic", report.ConfigID)
	assert.Equal(t, 4, report.Players)
	assert.Equal(t, 6, report.Snakes)
	assert.Equal(t, 6, report.Ladders)
	assert.Equal(t, 75, report.NetGain)
	assert.Empty(t, report.Chained)
	assert.Equal(t, 50, report.Simulation.Games)
	assert.Greater(t, report.Simulation.MeanTurns, 0.0)

	again, err := analyzeBoard("classic", engine.DefaultBoardConfig(), 50, dice.New(1))
	require.NoError(t, err)
	assert.Equal(t, report.Simulation, again.Simulation, "same seed, same estimate")
}

func TestAnalyzeBoardChained(t *testing.T) {
	board := &engine.BoardConfig{
		Name:        "chained",
		Description: "Ladder foot under a snake tail",
		Players:     []string{"Solo"},
		Snakes:      map[int]int{40: 10},
		Ladders:     map[int]int{10: 30},
	}

	report, err := analyzeBoard("chained", board, 0, dice.NewSequence(1))
	require.NoError(t, err)

	require.Len(t, report.Chained, 1)
	assert.Equal(t, engine.Transition{Kind: engine.Snake, From: 40, To: 10}, report.Chained[0])
	assert.Equal(t, -10, report.NetGain)

	var out bytes.Buffer
	writeReport(&out, report)
	assert.Contains(t, out.String(), "WARNING: 1 rules end on another rule's source")
	assert.Contains(t, out.String(), "snake 40 -> 10")
	assert.NotContains(t, out.String(), "Solo games")
}

func TestCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out

	err := cmd.Run(context.Background(), []string{"analyze", "--config-dir", "../../configs", "--games", "20"})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "=== Analyzing classic ===")
	assert.Contains(t, text, "=== Analyzing duel ===")
	assert.Contains(t, text, "=== Analyzing short ===")
	assert.Contains(t, text, "Solo games: 20")
}

func TestCommandUnknownBoard(t *testing.T) {
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out

	err := cmd.Run(context.Background(), []string{"analyze", "--config-dir", "../../configs", "nosuch"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Error:")
}
