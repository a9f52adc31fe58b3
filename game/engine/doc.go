// Package engine provides the core game logic for the Snakes and Ladders Game.
//
// The engine package implements the game mechanics including:
//   - The rule table of snakes and ladders
//   - Dice-driven movement resolution with overshoot and win detection
//   - Player state and turn coordination for up to four hot-seat players
//   - Board configuration loading and validation
//
// Core Types:
//
// RuleTable maps a source tile to a single Transition tagged snake or ladder.
// ResolveMove is the pure movement function; it returns a MoveOutcome, a
// sealed sum type whose variants are Blocked, Won, Advanced, SnakeSlide and
// LadderClimb. GameEngine owns a GameState and coordinates turns.
//
// Usage:
//
//	config := engine.DefaultBoardConfig()
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Apply a dice roll for the active player
//	result, err := gameEngine.TakeTurn(4)
//	state := gameEngine.GetState()
//
// Game Rules:
//
// Players start off the board at position 0 and move forward by the dice
// value. A roll that would carry a player past tile 100 is blocked and the
// player stays put. Landing exactly on 100 wins. Landing on the foot of a
// ladder or the head of a snake moves the player once to the other end; the
// destination is never checked against the table again.
package engine
