package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/skirmish/internal/ai"
	"github.com/udisondev/skirmish/internal/combat"
	"github.com/udisondev/skirmish/internal/config"
	"github.com/udisondev/skirmish/internal/db"
	"github.com/udisondev/skirmish/internal/unit"
	"github.com/udisondev/skirmish/internal/world"
)

// ConfigPath is the default simulation config location.
const ConfigPath = "config/skirmish.yaml"

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
	cfgPath := ConfigPath
	if p := os.Getenv("SKIRMISH_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	ai.EnableDebugLogging(logLevel == slog.LevelDebug)
	combat.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("skirmish starting", "config", cfgPath, "log_level", cfg.LogLevel)

	var (
		opts    []world.Option
		writer  *db.HitWriter
		matches *db.MatchRepository
		matchID int64
	)

	if cfg.Database.Enabled {
		dsn := cfg.Database.DSN()
		if err := db.RunMigrations(ctx, dsn); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		database, err := db.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		matches = db.NewMatchRepository(database.Pool())
		matchID, err = matches.Create(ctx, int16(cfg.LocalTeam))
		if err != nil {
			return err
		}

		writer = db.NewHitWriter(
			db.NewHitRepository(database.Pool()),
			matchID,
			cfg.Recorder.BatchSize,
			cfg.Recorder.FlushInterval,
			cfg.Recorder.Buffer,
		)
		opts = append(opts, world.WithRecorder(world.RecorderFunc(func(e world.HitEvent) {
			writer.Record(hitRow(e))
		})))
	}

	views := func(name string) unit.View { return unit.LogView{Name: name} }
	opts = append(opts, world.WithViews(views))

	sim, err := world.NewSimulation(cfg, opts...)
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}
	if err := sim.Populate(); err != nil {
		return fmt.Errorf("populating simulation: %w", err)
	}

	// Стартовый приказ: выделить свои войска и заказать по юниту в каждом здании.
	if err := sim.Submit(openingOrders); err != nil {
		return err
	}

	writerCtx, stopWriter := context.WithCancel(context.Background())
	defer stopWriter()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer stopWriter()
		if err := sim.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation: %w", err)
		}
		return nil
	})

	if writer != nil {
		g.Go(func() error {
			if err := writer.Run(writerCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("hit writer: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	winner, decided := sim.Match().Winner()
	slog.Info("skirmish over",
		"ticks", sim.Tick(),
		"elapsed", sim.Now(),
		"winner", winner,
		"decided", decided,
		"kills_team1", sim.Match().Kills(1),
		"kills_team2", sim.Match().Kills(2))

	if matches != nil {
		finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		var winnerTeam *int16
		if decided {
			w := int16(winner)
			winnerTeam = &w
		}
		if err := matches.Finish(finishCtx, matchID, winnerTeam, int64(sim.Tick())); err != nil {
			return err
		}
	}
	return nil
}

func openingOrders(s *world.Simulation) {
	s.Selection().AllUnits()

	local := s.Match().LocalTeam()
	for _, e := range s.Entities() {
		b, ok := e.(*unit.Building)
		if !ok || b.Object().Team() != local || b.Catalogue().Len() == 0 {
			continue
		}
		if err := s.Order(b.Object().ObjectID(), 0); err != nil {
			slog.Info("opening order skipped", "building", b.Object().Name(), "error", err)
		}
	}
}

func hitRow(e world.HitEvent) db.HitRow {
	return db.HitRow{
		Tick:         int64(e.Tick),
		AtMillis:     e.At.Milliseconds(),
		AttackerID:   int64(e.AttackerID),
		AttackerTeam: int16(e.AttackerTeam),
		TargetID:     int64(e.TargetID),
		TargetTeam:   int16(e.TargetTeam),
		Damage:       e.Damage,
		Killed:       e.Killed,
	}
}

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
