// Package main provides the dreamtemple server entry point.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/logger"

	"github.com/oneiric/dreamtemple/internal/companions"
	"github.com/oneiric/dreamtemple/internal/config"
	"github.com/oneiric/dreamtemple/internal/ledger"
	"github.com/oneiric/dreamtemple/internal/rewards"
	"github.com/oneiric/dreamtemple/internal/scoring"
	"github.com/oneiric/dreamtemple/internal/server"
	"github.com/oneiric/dreamtemple/internal/session"
	"github.com/oneiric/dreamtemple/internal/store"
	"github.com/oneiric/dreamtemple/internal/watcher"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	port := flag.Int("port", 0, "HTTP port (default: settings.json or 7199)")
	dataDir := flag.String("data-dir", "", "Data directory (default: ~/.dreamtemple)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})

	if err := config.EnsureDataDir(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure data directory")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load config, using defaults")
		cfg = config.Default()
	}
	if *port > 0 {
		cfg.Port = *port
	}
	if *dataDir != "" {
		cfg.DBPath = filepath.Join(*dataDir, "dreamtemple.db")
		cfg.WeightsPath = filepath.Join(*dataDir, "weights.yaml")
	}
	if *debug || cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	st, err := store.NewStore(store.Config{
		Path:     cfg.DBPath,
		MaxConns: cfg.MaxConns,
		LogLevel: logger.Silent,
	})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("Failed to open database")
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	stateStore := store.NewStateStore(st)
	sessionStore := store.NewSessionStore(st)

	ldg, err := ledger.New(stateStore)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to restore status ledger")
	}
	registry, err := companions.NewRegistry(stateStore)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to restore companion bonds")
	}
	tracker, err := rewards.NewTracker(stateStore)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to restore player stats")
	}

	weights, err := config.LoadWeights(cfg.WeightsPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.WeightsPath).Msg("Invalid weights file, using defaults")
		weights = config.DefaultWeights()
	}
	scorer := scoring.NewEngine(weights)

	// Hot-reload the scoring weights when the file changes.
	weightsWatcher, err := watcher.New(cfg.WeightsPath, func() {
		reloaded, err := config.LoadWeights(cfg.WeightsPath)
		if err != nil {
			log.Warn().Err(err).Msg("Weights reload failed, keeping previous table")
			return
		}
		scorer.SetWeights(reloaded)
		log.Info().Msg("Scoring weights reloaded")
	})
	if err != nil {
		log.Warn().Err(err).Msg("Weights watcher unavailable")
	} else if err := weightsWatcher.Start(); err != nil {
		log.Warn().Err(err).Msg("Failed to start weights watcher")
	} else {
		defer func() { _ = weightsWatcher.Stop() }()
	}

	scanner := companions.NewScanner()
	engine := session.NewEngine(scorer, scanner, registry, tracker, ldg, sessionStore)

	svc := server.New(Version, server.Deps{
		Config:   cfg,
		Sessions: sessionStore,
		Ledger:   ldg,
		Registry: registry,
		Tracker:  tracker,
		Scanner:  scanner,
		Engine:   engine,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Shutting down")
		cancel()
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return svc.Run(gctx)
	})
	g.Go(func() error {
		// Periodic sweep keeps expiries timely even with no API traffic.
		ticker := time.NewTicker(time.Duration(cfg.SweepMs) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				ldg.SweepExpired(time.Now().UnixMilli())
			}
		}
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server exited with error")
	}
}
