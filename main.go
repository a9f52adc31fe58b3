// Command snakes-ladders starts the Snakes and Ladders game server.
//
// It supports three modes:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play" – runs a hot-seat game in the terminal
//
// Flag defaults come from the environment (a .env file is loaded first), so
// HOST, PORT, CONFIG_DIR, DICE_SEED and the NGROK_* variables all work.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/snakes-ladders-game/api"
	"github.com/wricardo/snakes-ladders-game/game/config"
	"github.com/wricardo/snakes-ladders-game/game/dice"
	"github.com/wricardo/snakes-ladders-game/game/engine"
	"github.com/wricardo/snakes-ladders-game/game/service"
	"github.com/wricardo/snakes-ladders-game/game/session"
	"github.com/wricardo/snakes-ladders-game/transport/mcp"
	"github.com/wricardo/snakes-ladders-game/transport/terminal"
	"github.com/wricardo/snakes-ladders-game/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Snakes and Ladders Server"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	defaults, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	if err := newCommand(defaults).Run(context.Background(), os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

// newCommand builds the CLI. Flags are declared on the root command and are
// visible to every subcommand.
func newCommand(defaults config.Settings) *cli.Command {
	return &cli.Command{
		Name:    "snakes-ladders",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: defaults.Host, Usage: "HTTP server host"},
			&cli.IntFlag{Name: "port", Value: defaults.Port, Usage: "HTTP server port"},
			&cli.StringFlag{Name: "config-dir", Value: defaults.ConfigDir, Usage: "Directory containing board configurations"},
			&cli.BoolFlag{Name: "debug", Value: defaults.Debug, Usage: "Enable debug logging"},
			&cli.Int64Flag{Name: "dice-seed", Value: defaults.DiceSeed, Usage: "Seed for server-side dice (0 = random)"},
			&cli.DurationFlag{Name: "session-ttl", Value: defaults.SessionTTL, Usage: "Drop sessions idle for longer than this"},
			&cli.BoolFlag{Name: "ngrok", Value: defaults.NgrokEnabled, Usage: "Enable ngrok tunnel"},
			&cli.StringFlag{Name: "ngrok-auth", Value: defaults.NgrokAuthToken, Usage: "Ngrok auth token (or use NGROK_AUTHTOKEN env var)"},
			&cli.StringFlag{Name: "ngrok-domain", Value: defaults.NgrokDomain, Usage: "Custom ngrok domain (optional)"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"server", "http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action:  serveAction,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action:  mcpAction,
			},
			{
				Name:      "play",
				Usage:     "Play a hot-seat game in the terminal",
				ArgsUsage: "[board]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "snapshot", Usage: "Print the opening board and exit"},
				},
				Action: playAction,
			},
		},
	}
}

// settingsFromCommand reads the resolved flag values back into Settings
func settingsFromCommand(cmd *cli.Command) config.Settings {
	return config.Settings{
		Host:           cmd.String("host"),
		Port:           cmd.Int("port"),
		ConfigDir:      cmd.String("config-dir"),
		Debug:          cmd.Bool("debug"),
		DiceSeed:       cmd.Int64("dice-seed"),
		SessionTTL:     cmd.Duration("session-ttl"),
		NgrokEnabled:   cmd.Bool("ngrok"),
		NgrokAuthToken: cmd.String("ngrok-auth"),
		NgrokDomain:    cmd.String("ngrok-domain"),
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	settings := settingsFromCommand(cmd)
	log.Printf("Starting %s v%s (mode: serve)", AppName, Version)

	gameService, sessions, err := initializeServices(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	go sessionCleanupRoutine(ctx, sessions, settings.SessionTTL)

	return runHTTPServer(ctx, settings, gameService)
}

func mcpAction(ctx context.Context, cmd *cli.Command) error {
	settings := settingsFromCommand(cmd)
	log.Printf("Starting %s v%s (mode: mcp)", AppName, Version)

	gameService, sessions, err := initializeServices(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	go sessionCleanupRoutine(ctx, sessions, settings.SessionTTL)

	return runStdioMCPWithInternalServer(ctx, settings, gameService)
}

func playAction(ctx context.Context, cmd *cli.Command) error {
	settings := settingsFromCommand(cmd)

	configs, err := config.NewManager(settings.ConfigDir)
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}

	board := configs.GetDefault()
	if name := cmd.Args().First(); name != "" {
		if board, err = configs.LoadConfig(name); err != nil {
			return err
		}
	}

	game, err := engine.NewEngine(board)
	if err != nil {
		return err
	}
	ui := terminal.New(game, newRoller(settings.DiceSeed))

	if cmd.Bool("snapshot") {
		_, err := fmt.Fprintln(cmd.Root().Writer, strings.Join(ui.Render(), "\n"))
		return err
	}

	// Log lines would tear the full-screen UI
	log.SetOutput(io.Discard)
	return ui.Run()
}

// newRoller returns a die seeded with seed, or one seeded from crypto/rand when seed is 0
func newRoller(seed int64) dice.Roller {
	if seed != 0 {
		log.Printf("Using seeded dice (seed %d)", seed)
		return dice.New(seed)
	}
	d, err := dice.NewRandom()
	if err != nil {
		return dice.New(time.Now().UnixNano())
	}
	return d
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, settings config.Settings, gameService service.GameService) error {
	// Create WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Close()

	addr := settings.Addr()
	mainRouter := newRouter(gameService, hub, "http://"+addr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	var wg sync.WaitGroup

	// Start regular HTTP server
	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	if settings.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, settings, mainRouter)
		}()
	}

	var runErr error
	select {
	case sig := <-stop:
		log.Printf("Received signal: %v. Shutting down...", sig)
	case err := <-serveErr:
		runErr = fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return runErr
}

// newRouter combines the REST API with the /mcp endpoint. The MCP tools call
// back into the API at baseURL.
func newRouter(gameService service.GameService, hub *websocket.Hub, baseURL string) *http.ServeMux {
	apiServer := api.NewServer(gameService, hub)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	})
	return mainRouter
}

// runNgrokTunnel serves handler through an ngrok endpoint until ctx is done
func runNgrokTunnel(ctx context.Context, settings config.Settings, handler http.Handler) {
	authToken := settings.NgrokAuthToken
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTH_TOKEN") // Also support underscore version
	}
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if settings.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(settings.NgrokDomain))
		log.Printf("Using custom ngrok domain: %s", settings.NgrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	ngrokURL := tun.URL()
	log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	tunnelServer := &http.Server{Handler: handler}
	go func() {
		<-ctx.Done()
		tunnelServer.Close()
	}()

	if err := tunnelServer.Serve(tun); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// initializeServices wires session/config managers and the game service
func initializeServices(settings config.Settings) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(settings.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if boards, err := configManager.ListConfigs(); err == nil {
		log.Printf("Found %d board configurations in %s", len(boards), settings.ConfigDir)
	}

	sessionManager := session.NewManager()

	var roller dice.Roller
	if settings.DiceSeed != 0 {
		roller = newRoller(settings.DiceSeed)
	}

	return service.NewGameService(sessionManager, configManager, roller), sessionManager, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the provided retention window.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, maxAge time.Duration) {
	if maxAge <= 0 {
		return
	}

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// apiAvailable reports whether a game API answers the health check at baseURL
func apiAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an API already running at the configured address; if
// unavailable, it starts an internal HTTP API bound to a random loopback port
// and targets that.
func runStdioMCPWithInternalServer(ctx context.Context, settings config.Settings, gameService service.GameService) error {
	externalURL := "http://" + settings.Addr()
	log.Printf("Checking for external API server at %s...", externalURL)

	baseURL := externalURL
	if apiAvailable(externalURL) {
		log.Printf("External API server found at %s, using it for MCP", externalURL)
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		baseURL = "http://" + listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", listener.Addr())

		hub := websocket.NewHub()
		go hub.Run()
		defer hub.Close()

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()
		defer httpServer.Close()
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Printf("MCP stdio server ready (API at %s)", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
