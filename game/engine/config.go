package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidConfig is returned when a board configuration fails validation
var ErrInvalidConfig = errors.New("config validation")

// BoardMessages are the templates used to narrate each turn
type BoardMessages struct {
	Welcome   string `json:"welcome"`
	Reset     string `json:"reset"`
	Advanced  string `json:"advanced"`  // player, roll, tile
	Overshoot string `json:"overshoot"` // player, tile
	Ladder    string `json:"ladder"`    // player, tile
	Snake     string `json:"snake"`     // player, tile
	Victory   string `json:"victory"`   // player
}

// BoardConfig represents the board configuration from JSON
type BoardConfig struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Players     []string      `json:"players"`
	Snakes      map[int]int   `json:"snakes,omitempty"`
	Ladders     map[int]int   `json:"ladders,omitempty"`
	Messages    BoardMessages `json:"messages"`
}

// DefaultMessages returns the stock turn messages
func DefaultMessages() BoardMessages {
	return BoardMessages{
		Welcome:   "Click the dice to start the round!",
		Reset:     "Game reset. Click the dice!",
		Advanced:  "%s rolled %d, moves to %d.",
		Overshoot: "%s overshoots. Stays at %d.",
		Ladder:    "%s climbs a ladder to %d!",
		Snake:     "%s slides down a snake to %d!",
		Victory:   "%s WINS!",
	}
}

// DefaultBoardConfig returns the classic four-player board
func DefaultBoardConfig() *BoardConfig {
	return &BoardConfig{
		Name:        "classic",
		Description: "Classic 100-tile board for four players",
		Players:     []string{"Player 1", "Player 2", "Player 3", "Player 4"},
		Snakes:      ClassicSnakes(),
		Ladders:     ClassicLadders(),
		Messages:    DefaultMessages(),
	}
}

// RuleTable builds the configured rule table; a board without any rules uses the classic table
func (c *BoardConfig) RuleTable() (*RuleTable, error) {
	if len(c.Snakes) == 0 && len(c.Ladders) == 0 {
		return ClassicRuleTable(), nil
	}
	return NewRuleTable(c.Snakes, c.Ladders)
}

// ResolvedMessages returns the configured templates with blanks filled from the defaults
func (c *BoardConfig) ResolvedMessages() BoardMessages {
	m := c.Messages
	d := DefaultMessages()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&m.Welcome, d.Welcome)
	fill(&m.Reset, d.Reset)
	fill(&m.Advanced, d.Advanced)
	fill(&m.Overshoot, d.Overshoot)
	fill(&m.Ladder, d.Ladder)
	fill(&m.Snake, d.Snake)
	fill(&m.Victory, d.Victory)
	return m
}

// ValidateBoardConfig validates a board configuration for correctness and playability
func ValidateBoardConfig(config *BoardConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is required", ErrInvalidConfig)
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if config.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidConfig)
	}

	// Validate players
	if len(config.Players) < MinPlayers || len(config.Players) > MaxPlayers {
		return fmt.Errorf("%w: players must list between %d and %d names, got %d", ErrInvalidConfig,
			MinPlayers, MaxPlayers, len(config.Players))
	}
	seen := make(map[string]bool, len(config.Players))
	for i, name := range config.Players {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return fmt.Errorf("%w: player %d has an empty name", ErrInvalidConfig, i+1)
		}
		if seen[strings.ToLower(trimmed)] {
			return fmt.Errorf("%w: duplicate player name '%s'", ErrInvalidConfig, trimmed)
		}
		seen[strings.ToLower(trimmed)] = true
	}

	// Validate rule table
	if _, err := config.RuleTable(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	// Validate format strings
	checks := []struct {
		field string
		value string
		verbs []string
	}{
		{"advanced", config.Messages.Advanced, []string{"%s", "%d"}},
		{"overshoot", config.Messages.Overshoot, []string{"%s", "%d"}},
		{"ladder", config.Messages.Ladder, []string{"%s", "%d"}},
		{"snake", config.Messages.Snake, []string{"%s", "%d"}},
		{"victory", config.Messages.Victory, []string{"%s"}},
	}
	for _, check := range checks {
		if check.value == "" {
			continue
		}
		for _, verb := range check.verbs {
			if !strings.Contains(check.value, verb) {
				return fmt.Errorf("%w: messages.%s must contain %s", ErrInvalidConfig, check.field, verb)
			}
		}
	}

	return nil
}

// LoadBoardConfig loads a board configuration from a JSON file
func LoadBoardConfig(filename string) (*BoardConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filepath.Base(filename), err)
	}

	if err := ValidateBoardConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", filepath.Base(filename), err)
	}

	return &config, nil
}

// InitGameStateFromConfig creates a new game state using the provided configuration
func InitGameStateFromConfig(config *BoardConfig) *GameState {
	if config == nil {
		config = DefaultBoardConfig()
	}

	return &GameState{
		Players:           newPlayers(config.Players),
		ActivePlayer:      0,
		Phase:             PhaseInProgress,
		Message:           config.ResolvedMessages().Welcome,
		ConfigName:        config.Name,
		TurnHistory:       []TurnRecord{},
		TotalTurns:        0,
		CurrentTurns:      []TurnRecord{},
		CurrentTurnsCount: 0,
	}
}

func newPlayers(names []string) []Player {
	players := make([]Player, len(names))
	for i, name := range names {
		players[i] = Player{ID: i, Name: strings.TrimSpace(name), Position: StartPosition}
	}
	return players
}
