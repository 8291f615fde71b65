package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/isoworld/internal/config"
	"github.com/udisondev/isoworld/internal/data"
	"github.com/udisondev/isoworld/internal/db"
	"github.com/udisondev/isoworld/internal/engine"
	"github.com/udisondev/isoworld/internal/model"
	"github.com/udisondev/isoworld/internal/studio"
	"github.com/udisondev/isoworld/internal/world"
)

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
	cfgPath := config.Path()
	cfg, err := config.LoadEngine(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("isoworld starting", "config", cfgPath, "log_level", cfg.LogLevel)

	shapes, err := data.LoadShapeTable(cfg.ShapesPath)
	if err != nil {
		return fmt.Errorf("loading shapes: %w", err)
	}

	w := world.New()
	for _, num := range cfg.Maps {
		w.AddMap(num)
	}
	if err := w.SetCurrent(cfg.Maps[0]); err != nil {
		return fmt.Errorf("selecting map %d: %w", cfg.Maps[0], err)
	}

	env := model.NewEnv(shapes)
	eng := engine.New(w, env, engine.Options{
		Tick:        cfg.TickInterval,
		Save:        cfg.SaveInterval,
		CombatTrace: cfg.CombatTrace,
		Log:         logger,
	})
	slog.Info("world initialized", "maps", w.MapNums(), "shapes", shapes.Len())

	if cfg.Database.Enabled {
		database, err := db.Open(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		store := database.Fixtures(cfg.Database.ExtendedRecords)
		for _, num := range w.MapNums() {
			m, _ := w.GetMap(num)
			if _, err := store.LoadMap(ctx, env, w.IDs(), m); err != nil {
				return fmt.Errorf("loading fixtures: %w", err)
			}
		}
		eng.SetStore(store)
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Studio.Enabled {
		srv := studio.NewServer(logger.With("component", "studio"),
			studio.WithQueueSize(cfg.Studio.QueueSize),
			studio.WithPath(cfg.Studio.Path),
			studio.WithAllowedOrigins(cfg.Studio.AllowedOrigins...),
		)
		link := studio.NewLink(env, srv)
		link.SetMapEditor(cfg.Studio.MapEditor)
		eng.AttachStudio(link, srv.In())

		g.Go(func() error {
			slog.Info("starting studio server", "address", cfg.Studio.ListenAddress)
			if err := srv.ListenAndServe(gctx, cfg.Studio.ListenAddress); err != nil {
				return fmt.Errorf("studio server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		slog.Info("starting engine", "interval", cfg.TickInterval)
		if err := eng.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("engine: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
