package engine

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput is returned when a caller passes a roll or position outside the contract
var ErrInvalidInput = errors.New("invalid input")

// ResolveMove applies a dice roll to a position against the rule table.
// Resolution is single-pass: only the tile landed on by the roll is looked up.
func ResolveMove(position, roll int, rules *RuleTable) (MoveOutcome, error) {
	if roll < MinRoll || roll > MaxRoll {
		return nil, fmt.Errorf("%w: roll %d outside %d..%d", ErrInvalidInput, roll, MinRoll, MaxRoll)
	}
	if position < StartPosition || position >= GoalTile {
		return nil, fmt.Errorf("%w: position %d outside %d..%d", ErrInvalidInput, position, StartPosition, GoalTile-1)
	}

	candidate := position + roll

	// Exact-100-or-nothing
	if candidate > GoalTile {
		return Blocked{Position: position, Roll: roll}, nil
	}
	if candidate == GoalTile {
		return Won{Landed: candidate}, nil
	}

	transition, ok := rules.Lookup(candidate)
	if !ok {
		return Advanced{To: candidate}, nil
	}

	switch transition.Kind {
	case Ladder:
		if transition.To == GoalTile {
			return Won{Landed: candidate, ViaLadder: true}, nil
		}
		return LadderClimb{Landed: candidate, To: transition.To}, nil
	case Snake:
		if transition.To == GoalTile {
			return Won{Landed: candidate}, nil
		}
		return SnakeSlide{Landed: candidate, To: transition.To}, nil
	}

	return Advanced{To: candidate}, nil
}

// ApplyOutcome moves the player to the outcome's destination; Blocked leaves it unchanged
func (p *Player) ApplyOutcome(outcome MoveOutcome) {
	p.Position = FinalPosition(outcome, p.Position)
}

// AddTurnToHistory records a resolved roll in the game's turn history
func (gs *GameState) AddTurnToHistory(player Player, roll, from int, outcome MoveOutcome) TurnRecord {
	entry := TurnRecord{
		TurnNumber: gs.TotalTurns + 1,
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Roll:       roll,
		From:       from,
		To:         player.Position,
		Outcome:    DescribeOutcome(outcome),
		Timestamp:  time.Now().Unix(),
	}
	// Append to cumulative history (never cleared by reset) and increment total
	gs.TurnHistory = append(gs.TurnHistory, entry)
	gs.TotalTurns++

	// Append to current segment history and increment its counter
	gs.CurrentTurns = append(gs.CurrentTurns, entry)
	gs.CurrentTurnsCount++

	return entry
}
