package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/artic/internal/adapter"
	"github.com/mmcdole/artic/internal/adapter/source/artic"
	"github.com/mmcdole/artic/internal/museum"
	"github.com/mmcdole/artic/internal/store"
	"github.com/mmcdole/artic/internal/tui"
	"github.com/mmcdole/artic/internal/tui/home"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		configPath  string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to a config file (default ~/.config/artic/config.yaml)")
	flag.Parse()

	if showVersion {
		fmt.Printf("artic %s\n", Version)
		return
	}

	if err := run(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("artic needs an interactive terminal")
	}

	// Load configuration
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := cfg.Logging.Open()
	if err != nil {
		logger = adapter.DiscardLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting artic", "version", Version, "api", cfg.API.URL)

	client := artic.NewClient(cfg.API.URL, cfg.API.Timeout, logger)
	museumStore := store.NewMuseumStore()
	svc := museum.NewService(client, museumStore, logger, museum.Options{
		PageSize:    cfg.API.PageSize,
		EventsLimit: cfg.API.EventsLimit,
	})

	model := tui.NewModel(svc, museumStore, tui.Options{
		Insets:       home.Insets{Top: cfg.UI.InsetTop, Bottom: cfg.UI.InsetBottom},
		IIIFBase:     cfg.API.IIIFURL,
		Stiffness:    cfg.UI.Stiffness,
		FetchTimeout: cfg.API.Timeout,
	}, logger)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
