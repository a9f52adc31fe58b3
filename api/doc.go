// Package api provides the HTTP REST API for Snakes and Ladders sessions.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/unified - Overview of several boards (?sessionIds=a,b or ?configName=classic)
//   - GET /api/sessions/{id} - Session details with game state
//   - DELETE /api/sessions/{id} - Remove a session
//
// Play:
//   - POST /api/sessions/{id}/roll - Play one turn ({"value": 4} or an empty body for a server roll)
//   - POST /api/sessions/{id}/bulk-roll - Play several turns ({"values": [3, 5, 6], "reset": false})
//   - POST /api/sessions/{id}/reset - Put every player back on the start square
//   - GET /api/sessions/{id}/state - Current game state
//   - GET /api/sessions/{id}/board - Tile layout, snakes, ladders and player positions
//   - GET /api/sessions/{id}/history - Paginated turn history (?page=1&limit=20&order=desc)
//
// Configuration:
//   - GET /api/configs - List board configurations
//   - GET /api/configs/{name} - A single board configuration
//
// Other:
//   - GET /api/health - Liveness probe
//   - GET /ws?session={id} - WebSocket feed of state updates
//
// Errors:
//
// Errors are returned as {"error": "..."}. Unknown sessions and boards map to
// 404, rolls on a finished game to 409, malformed input to 400.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
package api
