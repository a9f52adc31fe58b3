// Command autoplay drives a game on a running server through the REST API
// until somebody wins. It creates a session (or resumes one with --continue),
// resets it, and sends bulk rolls until the game is finished.
//
// Rolls are 0 by default, which lets the server roll its own dice; --seed
// rolls locally instead so a run can be replayed.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/snakes-ladders-game/game/dice"
	"github.com/wricardo/snakes-ladders-game/game/engine"
	"github.com/wricardo/snakes-ladders-game/game/service"
)

var errNoWinner = errors.New("no winner within the turn limit")

// Client talks to the game's REST API for a single session
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// do sends body as JSON (when non-nil) and decodes the response into out
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s %s failed: %s", method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

func (c *Client) CreateSession(ctx context.Context, configID string) (*engine.GameState, error) {
	var body interface{}
	if configID != "" {
		body = map[string]string{"config_id": configID}
	}

	var session service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return nil, err
	}
	c.sessionID = session.ID
	return session.GameState, nil
}

func (c *Client) GetState(ctx context.Context) (*engine.GameState, error) {
	var session service.SessionInfo
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+c.sessionID, nil, &session); err != nil {
		return nil, err
	}
	return session.GameState, nil
}

func (c *Client) Reset(ctx context.Context) (*engine.GameState, error) {
	var resp struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+c.sessionID+"/reset", nil, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

func (c *Client) BulkRoll(ctx context.Context, values []int) (*service.BulkRollResult, error) {
	req := map[string]interface{}{"values": values}

	var result service.BulkRollResult
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+c.sessionID+"/bulk-roll", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Summary is the outcome of one autoplayed game
type Summary struct {
	SessionID string
	Turns     int
	Requests  int
	Winner    *engine.Player
}

// Autoplayer plays a session to completion in batches of bulk rolls
type Autoplayer struct {
	client   *Client
	roller   dice.Roller // nil: server-side dice
	batch    int
	maxTurns int
	delay    time.Duration
	verbose  bool
}

func (p *Autoplayer) nextBatch() []int {
	values := make([]int, p.batch)
	if p.roller != nil {
		for i := range values {
			values[i] = p.roller.Roll()
		}
	}
	return values
}

// Play resets the session and rolls until somebody wins or maxTurns is reached
func (p *Autoplayer) Play(ctx context.Context) (*Summary, error) {
	state, err := p.client.Reset(ctx)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	log.Printf("🔄 Game reset - %d players on %s", len(state.Players), state.ConfigName)

	summary := &Summary{SessionID: p.client.sessionID}
	for summary.Turns < p.maxTurns {
		result, err := p.client.BulkRoll(ctx, p.nextBatch())
		if err != nil {
			return summary, err
		}
		summary.Requests++
		summary.Turns += result.RollsExecuted

		if p.verbose {
			log.Printf("Turns: %d, positions: %v", summary.Turns, result.EndPositions)
		}

		if result.Finished {
			summary.Winner = result.Winner
			return summary, nil
		}
		switch result.StopReasonCode {
		case service.StopInvalidRoll:
			return summary, fmt.Errorf("server rejected a roll: %s", result.StoppedReason)
		case service.StopCancelled:
			return summary, fmt.Errorf("server stopped the batch: %s", result.StoppedReason)
		}

		if p.delay > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(p.delay):
			}
		}
	}
	return summary, errNoWinner
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "autoplay",
		Usage: "Play a game on a running server until somebody wins",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL"},
			&cli.StringFlag{Name: "config", Usage: "Board to play (default board when empty)"},
			&cli.StringFlag{Name: "continue", Usage: "Resume playing an existing session by ID"},
			&cli.IntFlag{Name: "batch", Value: engine.MaxBulkRolls, Usage: "Rolls per bulk request"},
			&cli.IntFlag{Name: "max-turns", Value: 5000, Usage: "Give up after this many turns"},
			&cli.Int64Flag{Name: "seed", Usage: "Roll locally with this seed (0 = server dice)"},
			&cli.DurationFlag{Name: "delay", Usage: "Pause between bulk requests"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	batch := cmd.Int("batch")
	if batch < 1 || batch > engine.MaxBulkRolls {
		return fmt.Errorf("batch must be between 1 and %d", engine.MaxBulkRolls)
	}

	log.Printf("Connecting to game server at %s", cmd.String("url"))
	client := NewClient(cmd.String("url"))

	if id := cmd.String("continue"); id != "" {
		client.sessionID = id
		if _, err := client.GetState(ctx); err != nil {
			return fmt.Errorf("resume session %s: %w", id, err)
		}
		log.Printf("🔄 Resuming session: %s", id)
	} else {
		if _, err := client.CreateSession(ctx, cmd.String("config")); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		log.Printf("✨ Session created: %s", client.sessionID)
	}

	player := &Autoplayer{
		client:   client,
		batch:    batch,
		maxTurns: cmd.Int("max-turns"),
		delay:    cmd.Duration("delay"),
		verbose:  cmd.Bool("v"),
	}
	if seed := cmd.Int64("seed"); seed != 0 {
		player.roller = dice.New(seed)
	}

	summary, err := player.Play(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "🎉 %s won session %s after %d turns (%d requests)\n",
		summary.Winner.Name, summary.SessionID, summary.Turns, summary.Requests)
	return nil
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}
