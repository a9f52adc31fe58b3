package engine

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidRule is returned when a rule table violates its invariants
var ErrInvalidRule = errors.New("invalid rule")

// RuleKind tags a transition as a snake or a ladder
type RuleKind string

const (
	Snake  RuleKind = "snake"
	Ladder RuleKind = "ladder"
)

// Transition is a single special tile: landing on From moves the player to To
type Transition struct {
	Kind RuleKind `json:"kind"`
	From int      `json:"from"`
	To   int      `json:"to"`
}

// RuleTable is an immutable mapping from source tile to transition.
// A single map keyed by source tile keeps snakes and ladders disjoint.
type RuleTable struct {
	transitions map[int]Transition
}

// NewRuleTable builds a rule table from snake and ladder source->destination maps
func NewRuleTable(snakes, ladders map[int]int) (*RuleTable, error) {
	rt := &RuleTable{transitions: make(map[int]Transition, len(snakes)+len(ladders))}

	for _, from := range sortedKeys(snakes) {
		if err := rt.add(Snake, from, snakes[from]); err != nil {
			return nil, err
		}
	}
	for _, from := range sortedKeys(ladders) {
		if err := rt.add(Ladder, from, ladders[from]); err != nil {
			return nil, err
		}
	}

	return rt, nil
}

// ClassicRuleTable returns the standard board's snakes and ladders
func ClassicRuleTable() *RuleTable {
	rt, err := NewRuleTable(ClassicSnakes(), ClassicLadders())
	if err != nil {
		panic(fmt.Sprintf("classic rule table: %v", err))
	}
	return rt
}

// ClassicSnakes returns the standard board's snakes (head -> tail)
func ClassicSnakes() map[int]int {
	return map[int]int{34: 1, 25: 5, 87: 57, 47: 19, 91: 61, 99: 69}
}

// ClassicLadders returns the standard board's ladders (foot -> top)
func ClassicLadders() map[int]int {
	return map[int]int{3: 57, 6: 27, 20: 70, 63: 95, 68: 98, 36: 95}
}

func (rt *RuleTable) add(kind RuleKind, from, to int) error {
	if from < 1 || from > GoalTile || to < 1 || to > GoalTile {
		return fmt.Errorf("%w: %s %d->%d outside tiles 1..%d", ErrInvalidRule, kind, from, to, GoalTile)
	}
	if from == to {
		return fmt.Errorf("%w: %s on tile %d points to itself", ErrInvalidRule, kind, from)
	}
	// Reaching the goal ends the game before any lookup, so a rule there could never fire
	if from == GoalTile {
		return fmt.Errorf("%w: %s cannot start on goal tile %d", ErrInvalidRule, kind, GoalTile)
	}
	switch kind {
	case Snake:
		if to > from {
			return fmt.Errorf("%w: snake %d->%d must move down", ErrInvalidRule, from, to)
		}
	case Ladder:
		if to < from {
			return fmt.Errorf("%w: ladder %d->%d must move up", ErrInvalidRule, from, to)
		}
	}
	if existing, ok := rt.transitions[from]; ok {
		return fmt.Errorf("%w: tile %d is already the start of a %s", ErrInvalidRule, from, existing.Kind)
	}

	rt.transitions[from] = Transition{Kind: kind, From: from, To: to}
	return nil
}

// Lookup returns the transition starting at tile, if any.
// A nil table and tiles outside the board simply have no transition.
func (rt *RuleTable) Lookup(tile int) (Transition, bool) {
	if rt == nil {
		return Transition{}, false
	}
	t, ok := rt.transitions[tile]
	return t, ok
}

// Len returns the number of transitions in the table
func (rt *RuleTable) Len() int {
	if rt == nil {
		return 0
	}
	return len(rt.transitions)
}

// Transitions returns every transition ordered by source tile
func (rt *RuleTable) Transitions() []Transition {
	if rt == nil {
		return nil
	}
	out := make([]Transition, 0, len(rt.transitions))
	for _, t := range rt.transitions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out
}

// Snakes returns a copy of the snake sub-mapping
func (rt *RuleTable) Snakes() map[int]int {
	return rt.byKind(Snake)
}

// Ladders returns a copy of the ladder sub-mapping
func (rt *RuleTable) Ladders() map[int]int {
	return rt.byKind(Ladder)
}

func (rt *RuleTable) byKind(kind RuleKind) map[int]int {
	out := make(map[int]int)
	if rt == nil {
		return out
	}
	for from, t := range rt.transitions {
		if t.Kind == kind {
			out[from] = t.To
		}
	}
	return out
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
