package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/battlecore/internal/arena"
	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/db"
	"github.com/udisondev/battlecore/internal/game/battle"
)

const ConfigPath = "config/battlesim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("BATTLESIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadBattleSim(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("battlesim starting", "log_level", cfg.LogLevel, "config", cfgPath)

	catalog, err := data.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	matches, err := buildMatches(cfg.Simulation, catalog)
	if err != nil {
		return fmt.Errorf("building matches: %w", err)
	}
	slog.Info("matches scheduled", "count", len(matches), "workers", cfg.Simulation.Workers)

	runner := &arena.Runner{
		Workers:   cfg.Simulation.Workers,
		MaxCycles: cfg.Simulation.MaxCycles,
	}

	if cfg.Database.Enabled {
		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")
		runner.Sink = database.Battles()
	}

	outcomes, err := runner.Run(ctx, matches)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Info("simulation interrupted")
		}
		return fmt.Errorf("running matches: %w", err)
	}

	for i, out := range outcomes {
		if err := battle.Verify(ctx, matches[i].Config, out); err != nil {
			return fmt.Errorf("verifying session %s: %w", out.SessionID, err)
		}
		fmt.Println(summaryLine(out))
	}
	return nil
}

func summaryLine(out battle.Outcome) string {
	return fmt.Sprintf("%s seed=%d %s vs %s: %s after %d cycles (hp %d/%d vs %d/%d) digest=%x",
		out.SessionID, out.Seed, out.Player.ID, out.Enemy.ID, out.State, out.Cycles,
		out.Player.HP, out.Player.MaxHP, out.Enemy.HP, out.Enemy.MaxHP, out.Digest[:8])
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
