package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/snakes-ladders-game/game/engine"
	"github.com/wricardo/snakes-ladders-game/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Snakes and Ladders",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snakes and Ladders - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Be the first player to land exactly on tile 100. Players take turns rolling a
six-sided die. Ladders carry you up, snakes send you down.

AVAILABLE TOOLS:
- create_session: Create a new game session on a board
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get current positions and whose turn it is
- roll: Play one turn for the active player (optionally with a fixed value)
- bulk_roll: Play several turns in order
- reset_game: Put every player back on the start square
- turn_history: View past turns
- list_configs: List available boards
- game_instructions: Get the complete rules
- describe_tile: Get details about one tile (snake, ladder, occupants)`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	sessionIDProperty := map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}

	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Board configuration ID from list_configs (default: classic)",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Pick the session ID instead of getting a generated one (letters, digits, '-' and '_')",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty,
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state: player positions, active player and winner",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty,
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "roll",
		Description: "Roll the die for the active player and apply the move. Omit value to let the server roll.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty,
				"value": map[string]interface{}{
					"type":        "integer",
					"description": "Fixed die value 1-6 (optional)",
					"minimum":     engine.MinRoll,
					"maximum":     engine.MaxRoll,
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the game before rolling",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRoll)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_roll",
		Description: fmt.Sprintf("Play several turns in order (max %d). Stops at victory or the first invalid roll. A value of 0 lets the server roll.", engine.MaxBulkRolls),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty,
				"values": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "integer"},
					"description": "Die values to apply, one per turn",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the game before rolling",
				},
			},
			Required: []string{"session_id", "values"},
		},
	}, c.handleBulkRoll)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game: every player goes back to the start square",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty,
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "turn_history",
		Description: "Get turn history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty,
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest first (asc) or newest first (desc, default)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTurnHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available board configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete game rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_tile",
		Description: "Get details about one tile: its grid position, any snake or ladder starting there, and who stands on it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty,
				"tile": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Tile number 1-%d", engine.GoalTile),
				},
			},
			Required: []string{"session_id", "tile"},
		},
	}, c.handleDescribeTile)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// arguments returns the tool call arguments; missing arguments read as empty
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

// intArg reads an integer argument. ok is false when the argument is absent;
// anything present that is not a whole number is an error.
func intArg(args map[string]interface{}, key string) (n int, ok bool, err error) {
	raw, present := args[key]
	if !present || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		if v == float64(int(v)) {
			return int(v), true, nil
		}
	case int:
		return v, true, nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true, nil
		}
	}
	return 0, true, fmt.Errorf("%s must be an integer, got %v", key, raw)
}

func requireSessionID(args map[string]interface{}) (string, *mcp.CallToolResult) {
	sessionID, _ := args["session_id"].(string)
	if strings.TrimSpace(sessionID) == "" {
		return "", mcp.NewToolResultError("session_id is required")
	}
	return sessionID, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)
	sessionID, _ := args["session_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}
	if sessionID != "" {
		body["session_id"] = sessionID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "in progress"
		if s.GameState != nil && s.GameState.Phase == engine.PhaseFinished {
			status = "finished"
		}
		fmt.Fprintf(&b, "- %s (Config: %s, %s, Created: %s)\n",
			s.ID, s.ConfigName, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(arguments(request))
	if errResult != nil {
		return errResult, nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(arguments(request))
	if errResult != nil {
		return errResult, nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleRoll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, errResult := requireSessionID(args)
	if errResult != nil {
		return errResult, nil
	}
	reset, _ := args["reset"].(bool)

	value, ok, err := intArg(args, "value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]interface{}{"reset": reset}
	if ok {
		if value < engine.MinRoll || value > engine.MaxRoll {
			return mcp.NewToolResultError(fmt.Sprintf("value must be between %d and %d, got %d",
				engine.MinRoll, engine.MaxRoll, value)), nil
		}
		body["value"] = value
	}

	var result service.RollResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/roll"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRollResult(&result)), nil
}

func (c *Client) handleBulkRoll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, errResult := requireSessionID(args)
	if errResult != nil {
		return errResult, nil
	}
	reset, _ := args["reset"].(bool)
	valuesRaw, _ := args["values"].([]interface{})

	values := make([]int, 0, len(valuesRaw))
	for i, raw := range valuesRaw {
		n, ok := raw.(float64)
		if !ok || n != float64(int(n)) {
			return mcp.NewToolResultError(fmt.Sprintf("values[%d] is not an integer", i)), nil
		}
		values = append(values, int(n))
	}
	if len(values) == 0 {
		return mcp.NewToolResultError("values must contain at least one roll"), nil
	}

	body := map[string]interface{}{
		"values": values,
		"reset":  reset,
	}

	var result service.BulkRollResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/bulk-roll"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkRollResult(sessionID, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(arguments(request))
	if errResult != nil {
		return errResult, nil
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleTurnHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, errResult := requireSessionID(args)
	if errResult != nil {
		return errResult, nil
	}

	params := url.Values{}
	for _, key := range []string{"page", "limit"} {
		n, ok, err := intArg(args, key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if ok {
			params.Set(key, fmt.Sprint(n))
		}
	}
	if order, _ := args["order"].(string); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also show the turns since the last reset
	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultText(formatHistory(&history)), nil
	}

	result := formatHistory(&history) + "\n" + formatCurrentSegment(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Players: %d, Snakes: %d, Ladders: %d\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.PlayerCount, cfg.SnakeCount, cfg.LadderCount)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, errResult := requireSessionID(args)
	if errResult != nil {
		return errResult, nil
	}
	tile, ok, err := intArg(args, "tile")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !ok {
		return mcp.NewToolResultError("tile is required"), nil
	}

	var board service.BoardInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/board"), nil, &board); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, ok := board.Tile(tile)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Tile %d is off the board. Tiles run from 1 to %d",
			tile, board.GoalTile)), nil
	}

	return mcp.NewToolResultText(formatTileInfo(info)), nil
}

const instructions = `🎲 Snakes and Ladders - Complete Instructions

GAME OBJECTIVE:
Be the first player to land exactly on tile 100.

BOARD:
• 100 tiles on a 10x10 grid, numbered left to right from the bottom-left corner
• Every player starts off the board at position 0
• Ladders (🪜) connect a lower tile to a higher one
• Snakes (🐍) connect a higher tile to a lower one

TURNS:
• Players roll one six-sided die in seat order
• Move forward by the value rolled
• Landing on a ladder's foot climbs you to its top
• Landing on a snake's head slides you to its tail
• A snake or ladder is applied once; you never chain into a second one

EXACT FINISH:
• You must land exactly on 100
• If the roll would carry you past 100 you stay where you are and the turn passes

WINNING:
• The first player to reach 100 wins and the game ends
• No more rolls are accepted until the game is reset

TOOLS:
• roll: omit value to let the server roll, or pass 1-6 to replay a known roll
• bulk_roll: apply a list of rolls in one call; it stops at the first invalid roll or at victory
• describe_tile: check a tile before you roll toward it

Good luck climbing! 🪜🐍`

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\nWatching screens: %d\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		session.Watchers,
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Board: %s | Phase: %s | Turns: %d\n\n", state.ConfigName, state.Phase, state.TotalTurns)

	b.WriteString("Players:\n")
	for i, p := range state.Players {
		marker := "  "
		if state.Phase != engine.PhaseFinished && i == state.ActivePlayer {
			marker = "→ "
		}
		fmt.Fprintf(&b, "%s%d. %s on %s (%d to go)\n",
			marker, i+1, p.Name, formatPosition(p.Position), engine.DistanceToGoal(p.Position))
	}

	if state.LastRoll > 0 {
		fmt.Fprintf(&b, "\nLast roll: %d\n", state.LastRoll)
	}

	if state.Winner != nil {
		for _, p := range state.Players {
			if p.ID == *state.Winner {
				fmt.Fprintf(&b, "\n🏆 WINNER: %s\n", p.Name)
			}
		}
	} else if state.ActivePlayer >= 0 && state.ActivePlayer < len(state.Players) {
		fmt.Fprintf(&b, "\nNext to roll: %s\n", state.Players[state.ActivePlayer].Name)
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", state.Message)
	}

	return b.String()
}

func formatPosition(position int) string {
	if position == engine.StartPosition {
		return "start"
	}
	return fmt.Sprintf("tile %d", position)
}

func formatOutcome(outcome engine.OutcomeRecord) string {
	switch outcome.Kind {
	case engine.OutcomeBlocked:
		return "overshot, stays put"
	case engine.OutcomeWon:
		if outcome.ViaLadder {
			return fmt.Sprintf("🪜 ladder from %d to 100, wins!", outcome.Landed)
		}
		return "lands on 100, wins!"
	case engine.OutcomeSnakeSlide:
		return fmt.Sprintf("🐍 snake from %d down to %d", outcome.Landed, outcome.Destination)
	case engine.OutcomeLadderClimb:
		return fmt.Sprintf("🪜 ladder from %d up to %d", outcome.Landed, outcome.Destination)
	default:
		return fmt.Sprintf("moves to %d", outcome.Destination)
	}
}

func formatTurn(turn engine.TurnRecord) string {
	return fmt.Sprintf("%s rolled %d: %d → %d (%s)",
		turn.PlayerName, turn.Roll, turn.From, turn.To, formatOutcome(turn.Outcome))
}

func formatRollResult(result *service.RollResult) string {
	var b strings.Builder

	if result.Turn != nil {
		fmt.Fprintf(&b, "🎲 %s\n", formatTurn(*result.Turn))
	}
	if result.Winner != nil {
		fmt.Fprintf(&b, "🏆 %s wins the game!\n", result.Winner.Name)
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatBulkRollResult(sessionID string, result *service.BulkRollResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Bulk roll on %s: %d/%d rolls executed\n", sessionID, result.RollsExecuted, result.RequestedRolls)
	if result.Truncated {
		fmt.Fprintf(&b, "⚠️ Request truncated to %d rolls\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on roll %d: %s\n", result.StoppedOnRoll, result.StoppedReason)
	}

	if len(result.Turns) > 0 {
		b.WriteString("\nTurns:\n")
		for _, turn := range result.Turns {
			fmt.Fprintf(&b, "%d. %s\n", turn.TurnNumber, formatTurn(turn))
		}
	}

	if len(result.StartPositions) == len(result.EndPositions) && len(result.EndPositions) > 0 {
		fmt.Fprintf(&b, "\nPositions: %v → %v\n", result.StartPositions, result.EndPositions)
	}

	if result.Winner != nil {
		fmt.Fprintf(&b, "🏆 WINNER: %s\n", result.Winner.Name)
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn History (Page %d/%d), total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalTurns)

	for _, turn := range history.Turns {
		fmt.Fprintf(&b, "%d. %s\n", turn.TurnNumber, formatTurn(turn))
	}

	return b.String()
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	header := fmt.Sprintf("Turns since last reset: %d\n\n", state.CurrentTurnsCount)
	if len(state.CurrentTurns) == 0 {
		return header + "(no turns since last reset)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, turn := range state.CurrentTurns {
		fmt.Fprintf(&b, "%d. %s\n", i+1, formatTurn(turn))
	}
	return b.String()
}

func formatTileInfo(info service.TileInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tile %d (column %d, row %d from the top)\n", info.Tile, info.Column, info.Row)

	switch {
	case info.Tile == engine.GoalTile:
		b.WriteString("Goal tile: land here exactly to win\n")
	case info.Transition == nil:
		b.WriteString("Plain tile: no snake or ladder\n")
	case info.Transition.Kind == engine.Snake:
		fmt.Fprintf(&b, "🐍 Snake head: slides down to %d (%d tiles lost)\n",
			info.Transition.To, info.Transition.From-info.Transition.To)
	default:
		fmt.Fprintf(&b, "🪜 Ladder foot: climbs to %d (%d tiles gained)\n",
			info.Transition.To, info.Transition.To-info.Transition.From)
	}

	if len(info.Occupants) == 0 {
		b.WriteString("Nobody is standing here\n")
	} else {
		names := make([]string, 0, len(info.Occupants))
		for _, p := range info.Occupants {
			names = append(names, p.Name)
		}
		fmt.Fprintf(&b, "Occupants: %s\n", strings.Join(names, ", "))
	}

	return b.String()
}
