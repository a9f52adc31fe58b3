// Package config provides board configuration management and process settings.
//
// Board configurations are JSON files in a config directory. Each file names
// the board, lists up to four players, and optionally supplies its own snakes,
// ladders and turn messages:
//
//	{
//	  "name": "classic",
//	  "description": "Classic 100-tile board for four players",
//	  "players": ["Player 1", "Player 2", "Player 3", "Player 4"],
//	  "snakes":  {"34": 1, "25": 5},
//	  "ladders": {"3": 57, "6": 27}
//	}
//
// A board that omits both snakes and ladders plays on the classic table.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	board, err := manager.LoadConfig("duel")
//	boards, err := manager.ListConfigs()
//
// Settings are read from the environment (HOST, PORT, CONFIG_DIR, DICE_SEED,
// SESSION_TTL and the NGROK_* variables) and provide the CLI flag defaults.
package config
