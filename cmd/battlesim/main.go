// Package main provides the battle simulator binary that runs fully automatic
// battles between the configured rosters and prints their narrative.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/monbattle/internal/config"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/game/effect"
	"github.com/cory-johannsen/monbattle/internal/game/move"
	"github.com/cory-johannsen/monbattle/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/battlesim.yaml", "path to configuration file")
	battles := flag.Int("battles", 1, "number of battles to run concurrently")
	maxRounds := flag.Int("max-rounds", battle.DefaultMaxRounds, "abandon a battle after this many rounds")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	rules, roster, err := loadContent(cfg, logger)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}

	sources := newSourceFactory(cfg.Battle)
	engine := battle.NewEngine(rules, sources, logger)

	// Battles are created up front so seeded sources are handed out in order.
	ctrls := make([]*battle.Controller, 0, *battles)
	choosers := make([]dice.Source, 0, *battles)
	for range *battles {
		ctrl, err := engine.StartBattle(roster.Player, roster.Opponent)
		if err != nil {
			logger.Fatal("starting battle", zap.Error(err))
		}
		ctrls = append(ctrls, ctrl)
		choosers = append(choosers, sources())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for i, ctrl := range ctrls {
		g.Go(func() error {
			return battle.Autoplay(gctx, ctrl, choosers[i], *maxRounds)
		})
	}
	runErr := g.Wait()

	for _, ctrl := range ctrls {
		if len(ctrls) > 1 {
			fmt.Printf("=== Battle %s ===\n", ctrl.ID())
		}
		for _, line := range ctrl.Log().Lines() {
			fmt.Println(line)
		}
		if winner, over := ctrl.Winner(); over {
			logger.Info("battle finished",
				zap.String("battle_id", ctrl.ID()),
				zap.Stringer("winner", winner),
				zap.Int("rounds", ctrl.Round()),
			)
		}
		engine.EndBattle(ctrl.ID())
	}

	logger.Info("simulation complete",
		zap.Int("battles", len(ctrls)),
		zap.Duration("elapsed", time.Since(start)),
	)
	if runErr != nil {
		logger.Error("simulation aborted", zap.Error(runErr))
		os.Exit(1)
	}
}

// loadContent builds the shared battle rules and the rosters from the
// configured content files.
func loadContent(cfg config.Config, logger *zap.Logger) (battle.Rules, move.Roster, error) {
	loadStart := time.Now()
	catalog, err := move.LoadCatalog(cfg.Content.MovesFile)
	if err != nil {
		return battle.Rules{}, move.Roster{}, fmt.Errorf("loading moves: %w", err)
	}

	var chart *move.TypeChart
	if cfg.Content.TypeChartFile != "" {
		chart, err = move.LoadTypeChart(cfg.Content.TypeChartFile)
		if err != nil {
			return battle.Rules{}, move.Roster{}, fmt.Errorf("loading type chart: %w", err)
		}
	}

	registry := effect.DefaultRegistry()
	if cfg.Content.EffectsDir != "" {
		defs, err := effect.LoadDirectory(cfg.Content.EffectsDir)
		if err != nil {
			return battle.Rules{}, move.Roster{}, fmt.Errorf("loading effects: %w", err)
		}
		if registry, err = registry.With(defs...); err != nil {
			return battle.Rules{}, move.Roster{}, fmt.Errorf("registering effects: %w", err)
		}
	}

	roster, err := move.LoadRoster(cfg.Content.RosterFile)
	if err != nil {
		return battle.Rules{}, move.Roster{}, fmt.Errorf("loading roster: %w", err)
	}
	if err := roster.CheckMoves(catalog); err != nil {
		return battle.Rules{}, move.Roster{}, err
	}

	logger.Info("content loaded",
		zap.Int("moves", catalog.Len()),
		zap.Strings("effects", registry.Names()),
		zap.Duration("elapsed", time.Since(loadStart)),
	)
	return battle.Rules{
		Catalog:    catalog,
		Chart:      chart,
		Effects:    registry,
		TriggerDie: cfg.Battle.TriggerDieSides,
		SleepDie:   cfg.Battle.SleepDieSides,
		StartingHP: cfg.Battle.StartingHP,
	}, roster, nil
}

// newSourceFactory hands out consecutive seeded sources when a seed is
// configured, and cryptographic sources otherwise.
func newSourceFactory(b config.BattleConfig) battle.SourceFactory {
	if !b.Seeded() {
		return dice.NewCryptoSource
	}
	var mu sync.Mutex
	next := b.Seed
	return func() dice.Source {
		mu.Lock()
		defer mu.Unlock()
		src := dice.NewSeededSource(next)
		next++
		return src
	}
}
