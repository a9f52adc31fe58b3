// Package mcp exposes Snakes and Ladders to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a REST request against a
// running api.Server, so agents and browsers share the same sessions.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - game_state: positions, active player and winner
//   - roll: one turn, with a fixed value or a server-side roll
//   - bulk_roll: several turns in order, stopping at victory or a bad roll
//   - reset_game: everyone back to the start square
//   - turn_history: paginated turn history plus the turns since the last reset
//   - list_configs: available boards
//   - game_instructions: the full rules
//   - describe_tile: snake, ladder and occupants of one tile
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
