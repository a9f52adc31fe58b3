package terminal

import (
	"strings"
	"testing"

	"github.com/nsf/termbox-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/snakes-ladders-game/game/dice"
	"github.com/wricardo/snakes-ladders-game/game/engine"
)

func newTestUI(t *testing.T, names []string, faces ...int) *UI {
	t.Helper()
	game, err := engine.NewEngine(&engine.BoardConfig{
		Name:        "classic",
		Description: "Classic board",
		Players:     names,
	})
	require.NoError(t, err)
	return New(game, dice.NewSequence(faces...))
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name     string
		ev       termbox.Event
		finished bool
		want     action
	}{
		{"space rolls", termbox.Event{Type: termbox.EventKey, Key: termbox.KeySpace}, false, actionRoll},
		{"enter rolls", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEnter}, false, actionRoll},
		{"q quits", termbox.Event{Type: termbox.EventKey, Ch: 'q'}, false, actionQuit},
		{"esc quits", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}, true, actionQuit},
		{"r ignored mid-game", termbox.Event{Type: termbox.EventKey, Ch: 'r'}, false, actionNone},
		{"r resets after a win", termbox.Event{Type: termbox.EventKey, Ch: 'r'}, true, actionReset},
		{"space ignored after a win", termbox.Event{Type: termbox.EventKey, Key: termbox.KeySpace}, true, actionNone},
		{"other keys ignored", termbox.Event{Type: termbox.EventKey, Ch: 'x'}, false, actionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyAction(tt.ev, tt.finished))
		})
	}
}

func TestApplyRollAndQuit(t *testing.T) {
	ui := newTestUI(t, []string{"Ana", "Ben"}, 3, 4)

	assert.False(t, ui.apply(actionRoll))
	assert.False(t, ui.apply(actionRoll))

	players := ui.game.Players()
	assert.Equal(t, 57, players[0].Position, "ladder 3 -> 57")
	assert.Equal(t, 4, players[1].Position)
	assert.Equal(t, 0, ui.game.ActivePlayer().ID)

	assert.True(t, ui.apply(actionQuit))
}

func TestApplyResetAfterWin(t *testing.T) {
	ui := newTestUI(t, []string{"Ana"}, 2)

	// Ladder 3 -> 57, ladder 63 -> 95, then walk to 98
	_, err := ui.game.PlayTurns([]int{3, 6, 3})
	require.NoError(t, err)
	require.Equal(t, 98, ui.game.ActivePlayer().Position)

	ui.apply(actionRoll)
	require.True(t, ui.game.IsFinished())

	// Rolling on a finished game leaves the error on screen
	ui.apply(actionRoll)
	assert.NotEmpty(t, ui.err)

	ui.apply(actionReset)
	assert.False(t, ui.game.IsFinished())
	assert.Empty(t, ui.err)
	assert.Equal(t, engine.StartPosition, ui.game.Players()[0].Position)
}

func TestTileLabel(t *testing.T) {
	rules := engine.ClassicRuleTable()

	label, fg := tileLabel(34, rules)
	assert.Equal(t, " 34S", label)
	assert.Equal(t, termbox.ColorRed, fg)

	label, fg = tileLabel(3, rules)
	assert.Equal(t, "  3L", label)
	assert.Equal(t, termbox.ColorGreen, fg)

	label, _ = tileLabel(100, rules)
	assert.Equal(t, "100 ", label)
}

func TestDiceFace(t *testing.T) {
	assert.Equal(t, '⚀', diceFace(1))
	assert.Equal(t, '⚅', diceFace(6))
	assert.Equal(t, '?', diceFace(7))
}

func TestRender(t *testing.T) {
	ui := newTestUI(t, []string{"Ana", "Ben"}, 3)
	ui.apply(actionRoll)

	lines := ui.Render()
	frame := strings.Join(lines, "\n")

	// Tile 100 sits in the top-right corner, tile 1 in the bottom-left
	assert.Contains(t, lines[boardY], "100")
	assert.True(t, strings.HasPrefix(strings.TrimLeft(lines[boardY+9*cellHeight], " "), "1"))

	// Ana stands on 57: column 6, fourth row from the top
	pieceRow := lines[boardY+4*cellHeight+1]
	require.Greater(t, len(pieceRow), boardX+6*cellWidth+1)
	assert.Equal(t, byte('1'), pieceRow[boardX+6*cellWidth+1])

	// Ben has not moved yet
	startRow := lines[boardY+engine.BoardRows*cellHeight]
	assert.Contains(t, startRow, "start")
	assert.Contains(t, startRow, "2")

	assert.Contains(t, frame, "SNAKES AND LADDERS")
	assert.Contains(t, frame, "> 2 Ben")
	assert.Contains(t, frame, "Ana climbs a ladder to 57!")
	assert.Contains(t, frame, "Space/Enter: roll")
}

func TestControlsLine(t *testing.T) {
	assert.Contains(t, controlsLine(engine.PhaseFinished), "r: new game")
	assert.Contains(t, controlsLine(engine.PhaseInProgress), "roll")
}
