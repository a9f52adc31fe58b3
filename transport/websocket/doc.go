// Package websocket pushes live game state to screens watching a session.
//
// Architecture:
//
// A central Hub owns every connection. Registration, removal and fan-out all
// happen on the Hub's Run goroutine; each client has its own read and write
// pumps with ping/pong keepalive.
//
// Message Protocol:
//
// Messages are JSON-encoded:
//   - {"event": "connected", "session_id": "ab12", "client_id": "<uuid>"} on connect
//   - {"event": "state_update", "session_id": "ab12", "game_state": {...}} after every roll or reset
//   - {"event": "<name>", "session_id": "ab12", "data": ...} for custom events such as victory
//
// Clients pick their session with ?session=ab12. Session ids are matched
// case-insensitively, like the session registry does.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Close()
//
//	hub.BroadcastToSession(sessionID, state)
package websocket
