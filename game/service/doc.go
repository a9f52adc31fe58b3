// Package service provides the business logic layer for the Snakes and Ladders game.
//
// The service package implements:
//   - Multi-session game management
//   - Board configuration lookup
//   - Roll processing, single and bulk
//   - Turn history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads board configurations.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP and the
// terminal front-end) and the game engine. Every operation is serialized behind a
// single mutex, so exactly one roll is processed at a time. Each session owns its
// own engine instance and the players sharing it take turns on one screen.
// Game states handed back are copies, so callers may encode them after the lock
// is released.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, dice.New(42))
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Roll the session die for the active player
//	result, err := gameService.Roll(ctx, info.ID, 0, false)
package service
