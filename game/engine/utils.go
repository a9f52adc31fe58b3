package engine

// TileCoordinates maps a tile to its on-screen column and row.
// Rows run left to right with tile 1 in the bottom-left corner and tile 100 in
// the top-right; row 0 is the top of the screen. ok is false off the board.
func TileCoordinates(tile int) (col, row int, ok bool) {
	if tile < 1 || tile > GoalTile {
		return 0, 0, false
	}
	boardRow := (tile - 1) / BoardColumns
	col = (tile - 1) % BoardColumns
	row = BoardRows - 1 - boardRow
	return col, row, true
}

// TileAt is the inverse of TileCoordinates
func TileAt(col, row int) (int, bool) {
	if col < 0 || col >= BoardColumns || row < 0 || row >= BoardRows {
		return 0, false
	}
	return (BoardRows-1-row)*BoardColumns + col + 1, true
}

// DistanceToGoal returns how many tiles a position is from the goal
func DistanceToGoal(position int) int {
	if position >= GoalTile {
		return 0
	}
	if position < StartPosition {
		return GoalTile
	}
	return GoalTile - position
}

// CountRuleKind counts the transitions of a specific kind in the table
func CountRuleKind(rules *RuleTable, kind RuleKind) int {
	count := 0
	for _, t := range rules.Transitions() {
		if t.Kind == kind {
			count++
		}
	}
	return count
}

// NetRuleGain sums the tiles gained by ladders minus the tiles lost to snakes
func NetRuleGain(rules *RuleTable) int {
	total := 0
	for _, t := range rules.Transitions() {
		total += t.To - t.From
	}
	return total
}

// ChainedRules returns transitions whose destination is itself a rule source.
// Resolution is single-pass, so the second rule never fires from such a landing.
func ChainedRules(rules *RuleTable) []Transition {
	var chained []Transition
	for _, t := range rules.Transitions() {
		if _, ok := rules.Lookup(t.To); ok {
			chained = append(chained, t)
		}
	}
	return chained
}
