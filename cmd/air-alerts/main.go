package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/couchcryptid/air-alert-monitor/internal/adapter/alertsinua"
	httpadapter "github.com/couchcryptid/air-alert-monitor/internal/adapter/http"
	"github.com/couchcryptid/air-alert-monitor/internal/config"
	"github.com/couchcryptid/air-alert-monitor/internal/monitor"
	"github.com/couchcryptid/air-alert-monitor/internal/observability"
	"github.com/couchcryptid/air-alert-monitor/internal/tui"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	once := flag.Bool("once", false, "refresh once, print the panel to stdout and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *once {
		os.Exit(runOnce(cfg))
	}
	if err := runInteractive(cfg); err != nil {
		slog.Error("air-alerts failed", "error", err)
		os.Exit(1)
	}
}

// runOnce performs a single refresh and prints the panel. Logs go to stderr.
func runOnce(cfg *config.Config) int {
	logger := observability.NewLogger(cfg, os.Stderr)
	metrics := observability.NewMetrics()

	client := alertsinua.NewClient(cfg, logger, metrics)
	mon := monitor.New(client, cfg, clockwork.NewRealClock(), logger, metrics)

	panel, err := mon.Refresh(context.Background())
	fmt.Print(panel.PlainText())
	if err != nil {
		return 1
	}
	return 0
}

func runInteractive(cfg *config.Config) error {
	// The terminal belongs to the panel, so logs go to LOG_FILE or nowhere.
	logOut := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	logger := observability.NewLogger(cfg, logOut)
	metrics := observability.NewMetrics()

	client := alertsinua.NewClient(cfg, logger, metrics)
	mon := monitor.New(client, cfg, clockwork.NewRealClock(), logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, mon, mon, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	program := tea.NewProgram(
		tui.NewModel(cfg.MapURL, tui.OpenBrowser, mon),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	go func() {
		if err := mon.Run(ctx, tui.ProgramDisplay{Program: program}); err != nil {
			logger.Error("monitor error", "error", err)
		}
	}()

	_, runErr := program.Run()
	stop()
	logger.Info("shutting down")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal: %w", runErr)
	}
	return nil
}
