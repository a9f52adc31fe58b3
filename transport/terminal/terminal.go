package terminal

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"github.com/wricardo/snakes-ladders-game/game/dice"
	"github.com/wricardo/snakes-ladders-game/game/engine"
)

const (
	// Each tile is drawn as a cellWidth x cellHeight box
	cellWidth  = 6
	cellHeight = 2

	boardX = 1
	boardY = 1
	panelX = boardX + engine.BoardColumns*cellWidth + 3
)

var playerColors = []termbox.Attribute{
	termbox.ColorRed,
	termbox.ColorBlue,
	termbox.ColorGreen,
	termbox.ColorYellow,
}

var diceFaces = []rune{'⚀', '⚁', '⚂', '⚃', '⚄', '⚅'}

// canvas is the drawing surface; termbox in production, a grid in tests
type canvas interface {
	SetCell(x, y int, ch rune, fg, bg termbox.Attribute)
}

type termboxCanvas struct{}

func (termboxCanvas) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	termbox.SetCell(x, y, ch, fg, bg)
}

type action int

const (
	actionNone action = iota
	actionRoll
	actionReset
	actionQuit
)

// UI is a single-screen, hot-seat front-end for one game
type UI struct {
	game   *engine.GameEngine
	roller dice.Roller
	err    string
}

// New creates a terminal UI for the game, rolling with roller
func New(game *engine.GameEngine, roller dice.Roller) *UI {
	return &UI{game: game, roller: roller}
}

// Run takes over the terminal until the players quit
func (u *UI) Run() error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer termbox.Close()

	termbox.SetInputMode(termbox.InputEsc)

	for {
		termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
		u.draw(termboxCanvas{})
		if err := termbox.Flush(); err != nil {
			return fmt.Errorf("flush terminal: %w", err)
		}

		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventError:
			return fmt.Errorf("poll terminal: %w", ev.Err)
		case termbox.EventKey:
			if u.apply(keyAction(ev, u.game.IsFinished())) {
				return nil
			}
		}
	}
}

// keyAction maps a key press to what it does in the current phase
func keyAction(ev termbox.Event, finished bool) action {
	if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' || ev.Ch == 'Q' {
		return actionQuit
	}
	if finished {
		if ev.Ch == 'r' || ev.Ch == 'R' {
			return actionReset
		}
		return actionNone
	}
	if ev.Key == termbox.KeySpace || ev.Key == termbox.KeyEnter || ev.Ch == ' ' {
		return actionRoll
	}
	return actionNone
}

// apply performs an action and reports whether the UI should exit
func (u *UI) apply(a action) bool {
	switch a {
	case actionQuit:
		return true
	case actionRoll:
		u.err = ""
		if _, err := u.game.TakeTurn(u.roller.Roll()); err != nil {
			u.err = err.Error()
		}
	case actionReset:
		u.err = ""
		u.game.Reset()
	}
	return false
}

func (u *UI) draw(c canvas) {
	state := u.game.GetState()
	drawBoard(c, u.game.GetRules(), state.Players)
	u.drawPanel(c, state)
}

// drawBoard renders the grid with tile 1 bottom-left and tile 100 top-right
func drawBoard(c canvas, rules *engine.RuleTable, players []engine.Player) {
	for tile := 1; tile <= engine.GoalTile; tile++ {
		col, row, _ := engine.TileCoordinates(tile)
		x := boardX + col*cellWidth
		y := boardY + row*cellHeight

		label, fg := tileLabel(tile, rules)
		drawText(c, x, y, label, fg, termbox.ColorDefault)

		for i, p := range players {
			if p.Position == tile {
				c.SetCell(x+1+i, y+1, pieceRune(i), playerColors[i%len(playerColors)]|termbox.AttrBold, termbox.ColorDefault)
			}
		}
	}

	// Players still off the board wait below tile 1
	y := boardY + engine.BoardRows*cellHeight
	drawText(c, boardX, y, "start", termbox.ColorDefault, termbox.ColorDefault)
	for i, p := range players {
		if p.Position == engine.StartPosition {
			c.SetCell(boardX+7+i, y, pieceRune(i), playerColors[i%len(playerColors)]|termbox.AttrBold, termbox.ColorDefault)
		}
	}
}

// tileLabel returns the fixed-width label for a tile: its number and a marker
// for a snake head (S) or ladder foot (L)
func tileLabel(tile int, rules *engine.RuleTable) (string, termbox.Attribute) {
	marker, fg := " ", termbox.ColorDefault
	if t, ok := rules.Lookup(tile); ok {
		if t.Kind == engine.Snake {
			marker, fg = "S", termbox.ColorRed
		} else {
			marker, fg = "L", termbox.ColorGreen
		}
	}
	return fmt.Sprintf("%3d%s", tile, marker), fg
}

func pieceRune(seat int) rune {
	return rune('1' + seat)
}

func (u *UI) drawPanel(c canvas, state *engine.GameState) {
	y := boardY
	drawText(c, panelX, y, "SNAKES AND LADDERS", termbox.ColorWhite|termbox.AttrBold, termbox.ColorDefault)
	y++
	drawText(c, panelX, y, "Board: "+state.ConfigName, termbox.ColorDefault, termbox.ColorDefault)
	y += 2

	for i, p := range state.Players {
		fg, bg := playerColors[i%len(playerColors)], termbox.ColorDefault
		prefix := "  "
		if state.Phase == engine.PhaseInProgress && i == state.ActivePlayer {
			prefix = "> "
			fg |= termbox.AttrBold | termbox.AttrReverse
		}
		drawText(c, panelX, y, prefix+playerLine(i, p), fg, bg)
		y++
	}
	y++

	if state.LastRoll > 0 {
		drawText(c, panelX, y, fmt.Sprintf("Dice: %c  %d", diceFace(state.LastRoll), state.LastRoll), termbox.ColorWhite, termbox.ColorDefault)
	}
	y += 2

	drawText(c, panelX, y, state.Message, termbox.ColorCyan, termbox.ColorDefault)
	y++
	if u.err != "" {
		drawText(c, panelX, y, u.err, termbox.ColorRed, termbox.ColorDefault)
	}
	y += 2

	drawText(c, panelX, y, "S snake head   L ladder foot", termbox.ColorDefault, termbox.ColorDefault)
	y++
	drawText(c, panelX, y, controlsLine(state.Phase), termbox.ColorDefault, termbox.ColorDefault)
}

func playerLine(seat int, p engine.Player) string {
	where := "start"
	if p.Position > engine.StartPosition {
		where = fmt.Sprintf("%3d", p.Position)
	}
	return fmt.Sprintf("%c %-12s %s", pieceRune(seat), p.Name, where)
}

func controlsLine(phase engine.Phase) string {
	if phase == engine.PhaseFinished {
		return "r: new game   q/Esc: quit"
	}
	return "Space/Enter: roll   q/Esc: quit"
}

func diceFace(roll int) rune {
	if roll < engine.MinRoll || roll > engine.MaxRoll {
		return '?'
	}
	return diceFaces[roll-1]
}

// drawText writes s starting at (x, y) and returns the column after it
func drawText(c canvas, x, y int, s string, fg, bg termbox.Attribute) int {
	for _, r := range s {
		c.SetCell(x, y, r, fg, bg)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// Render draws the current game into a plain-text frame, one string per line
func (u *UI) Render() []string {
	g := newGrid()
	u.draw(g)
	return g.lines()
}

type grid struct {
	cells map[[2]int]rune
	maxX  int
	maxY  int
}

func newGrid() *grid {
	return &grid{cells: make(map[[2]int]rune)}
}

func (g *grid) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	g.cells[[2]int{x, y}] = ch
	if x > g.maxX {
		g.maxX = x
	}
	if y > g.maxY {
		g.maxY = y
	}
}

func (g *grid) lines() []string {
	out := make([]string, g.maxY+1)
	for y := 0; y <= g.maxY; y++ {
		var b strings.Builder
		for x := 0; x <= g.maxX; x++ {
			ch, ok := g.cells[[2]int{x, y}]
			if !ok {
				ch = ' '
			}
			b.WriteRune(ch)
		}
		out[y] = strings.TrimRight(b.String(), " ")
	}
	return out
}
