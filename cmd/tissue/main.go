package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tissueplus/tissue/internal/config"
	"github.com/tissueplus/tissue/internal/domain"
	"github.com/tissueplus/tissue/internal/log"
	"github.com/tissueplus/tissue/internal/service"
	"github.com/tissueplus/tissue/internal/store"
	"github.com/tissueplus/tissue/internal/tissue"
	"github.com/tissueplus/tissue/internal/tui"
	"github.com/tissueplus/tissue/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var showVersion, logout, checkVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&logout, "logout", false, "clear saved credentials and cache")
	flag.BoolVar(&checkVersion, "check-version", false, "print the server version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("tissue %s\n", Version)
		return
	}

	var err error
	switch {
	case logout:
		err = runLogout()
	case checkVersion:
		err = runCheckVersion()
	default:
		err = run()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the file logger
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func run() error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	logger.Info("starting tissue", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	client := tissue.NewClient(cfg.Server.URL, cfg.Server.Token, logger)
	logger.Info("using server", "url", client.BaseURL())

	listStore, err := store.NewListStore(cfg.CachePath(), cfg.Server.URL)
	if err != nil {
		// Run without persistence rather than refuse to start
		logger.Warn("failed to open cache, continuing without it", "error", err)
		listStore, _ = store.NewListStore("", "")
	}
	defer listStore.Close()

	// Create services
	svc := tui.Services{
		Videos:    service.NewVideoService(client, listStore, logger),
		Downloads: service.NewDownloadService(client, listStore, logger),
		Session:   service.NewSessionService(listStore, cfg.CachePath()),
		Version:   service.NewVersionService(client, logger),
	}

	statusCache, statusCh := tui.NewStatusCache(client, logger, cfg.Status.Timeout)
	defer statusCache.Close()

	startView := tui.ViewVideos
	if cfg.UI.DefaultView == config.ViewDownloads {
		startView = tui.ViewDownloads
	}

	// Create TUI model
	model := tui.NewModel(svc, statusCache, statusCh, tui.Options{
		StartView:    startView,
		StatusBadges: cfg.UI.StatusBadges,
	})

	// Run the TUI
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	final, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := final.(tui.Model); ok && m.LoggedOut {
		fmt.Println("\nLogged out. Run 'tissue' to set up again.")
	}

	logger.Info("shutting down")
	return nil
}

func runLogout() error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	if err := service.NewSessionService(nil, cfg.CachePath()).Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	logger.Info("logged out")
	fmt.Println("Logged out. Run 'tissue' to set up again.")
	return nil
}

func runCheckVersion() error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if !cfg.IsConfigured() {
		return domain.ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := tissue.NewClient(cfg.Server.URL, cfg.Server.Token, logger)
	info, err := service.NewVersionService(client, logger).Check(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("server %s\n", info.Current)
	if info.UpdateAvailable() {
		fmt.Printf("update available: %s\n", info.Latest)
	}
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to tissue!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	// Loop until we get a reachable server URL
	var serverURL string
	for {
		fmt.Print("Enter your TISSUE+ server URL (e.g., http://192.168.1.100:9193): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL = strings.TrimRight(strings.TrimSpace(input), "/")

		if serverURL == "" {
			fmt.Println("Server URL cannot be empty. Please try again.")
			continue
		}

		fmt.Println()
		if err := checkServerWithSpinner(serverURL, logger); err != nil {
			fmt.Printf("\n✗ Could not reach server: %v\n", err)
			fmt.Println("Please check the URL and try again.")
			fmt.Println()
			continue
		}
		break
	}

	cfg.Server.URL = serverURL

	var authFlow domain.AuthFlow = tissue.NewAuthFlow(logger)
	result, err := authFlow.Run(context.Background(), serverURL)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	// Save credentials
	cfg.Server.Token = result.Token
	cfg.Server.Username = result.Username

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run tissue again to start the application.")

	return nil
}

// checkServerWithSpinner pings the server with a visual spinner.
// An auth rejection still proves the server is there.
func checkServerWithSpinner(serverURL string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)

	// Start the check in background
	go func() {
		resultCh <- tissue.NewClient(serverURL, "", logger).Ping(ctx)
	}()

	// Spinner animation
	frame := 0

	// Print initial spinner
	fmt.Printf("\r%s Connecting to server...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			// Clear spinner line
			fmt.Print(clearSpinnerLine)

			if err != nil && !errors.Is(err, domain.ErrAuthFailed) {
				return err
			}
			fmt.Println("✓ Connected to TISSUE+")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Connecting to server...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("connection timed out")
		}
	}
}
