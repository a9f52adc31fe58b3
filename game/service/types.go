package service

import (
	"time"

	"github.com/wricardo/snakes-ladders-game/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	GameState      *engine.GameState   `json:"game_state"`
	GameConfig     *engine.BoardConfig `json:"game_config"`

	// Watchers counts live WebSocket screens; only the API layer fills it in
	Watchers int `json:"watchers,omitempty"`
}

// RollResult contains the result of a single roll
type RollResult struct {
	Success   bool               `json:"success"`
	GameState *engine.GameState  `json:"game_state"`
	Message   string             `json:"message"`
	Events    []GameEvent        `json:"events,omitempty"`
	Turn      *engine.TurnRecord `json:"turn,omitempty"`
	Winner    *engine.Player     `json:"winner,omitempty"`
}

// Stop reason codes reported by BulkRoll
const (
	StopVictory      = "victory"
	StopGameFinished = "game_finished"
	StopInvalidRoll  = "invalid_roll"
	StopCancelled    = "cancelled"
)

// BulkRollResult contains the result of several rolls applied in order
type BulkRollResult struct {
	// Summary
	RollsExecuted  int               `json:"rolls_executed"`
	RequestedRolls int               `json:"requested_rolls"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // victory|game_finished|invalid_roll|cancelled
	StoppedOnRoll  int               `json:"stopped_on_roll,omitempty"`  // 1-based index of the roll that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot, one entry per player
	StartPositions []int `json:"start_positions"`
	EndPositions   []int `json:"end_positions"`

	// Per-turn trace (only for this call)
	Turns []engine.TurnRecord `json:"turns,omitempty"`

	// Final status
	Finished bool           `json:"finished"`
	Winner   *engine.Player `json:"winner,omitempty"`
	Message  string         `json:"message,omitempty"`
}

// Event types carried by GameEvent
const (
	EventRoll      = "roll"
	EventLadder    = "ladder"
	EventSnake     = "snake"
	EventOvershoot = "overshoot"
	EventVictory   = "victory"
	EventReset     = "reset"
)

// GameEvent represents an event that occurred during play
type GameEvent struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	PlayerID  int       `json:"player_id"`
	Tile      int       `json:"tile,omitempty"`
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnRecord `json:"turns"`
	TotalTurns  int                 `json:"total_turns"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a board configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	PlayerCount int    `json:"player_count"`
	SnakeCount  int    `json:"snake_count"`
	LadderCount int    `json:"ladder_count"`
}

// BoardInfo describes a session's board for presentation layers
type BoardInfo struct {
	ConfigName  string              `json:"config_name"`
	Columns     int                 `json:"columns"`
	Rows        int                 `json:"rows"`
	GoalTile    int                 `json:"goal_tile"`
	Transitions []engine.Transition `json:"transitions"`
	// Tiles holds tile numbers row by row from the top of the screen
	Tiles   [][]int         `json:"tiles"`
	Players []engine.Player `json:"players"`
}

// TileInfo describes a single tile
type TileInfo struct {
	Tile       int                `json:"tile"`
	Column     int                `json:"column"`
	Row        int                `json:"row"`
	Transition *engine.Transition `json:"transition,omitempty"`
	Occupants  []engine.Player    `json:"occupants,omitempty"`
}

// Tile returns details for a single tile; ok is false off the board
func (b *BoardInfo) Tile(tile int) (TileInfo, bool) {
	col, row, ok := engine.TileCoordinates(tile)
	if !ok {
		return TileInfo{}, false
	}
	info := TileInfo{Tile: tile, Column: col, Row: row}
	for i := range b.Transitions {
		if b.Transitions[i].From == tile {
			t := b.Transitions[i]
			info.Transition = &t
			break
		}
	}
	for _, p := range b.Players {
		if p.Position == tile {
			info.Occupants = append(info.Occupants, p)
		}
	}
	return info, true
}
