// Command voyagesim runs the archipelago voyage network simulation.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"log/slog"

	"github.com/talgya/archipelago/internal/api"
	"github.com/talgya/archipelago/internal/config"
	"github.com/talgya/archipelago/internal/entropy"
	"github.com/talgya/archipelago/internal/islands"
	"github.com/talgya/archipelago/internal/monsoon"
	"github.com/talgya/archipelago/internal/navigation"
	"github.com/talgya/archipelago/internal/persistence"
	"github.com/talgya/archipelago/internal/seachart"
)

// defaultPorts are the archipelago's founding ports. Names match the
// route tables in monsoon.DefaultRoutes.
func defaultPorts() map[string]islands.Specialization {
	return map[string]islands.Specialization{
		"malacca":   islands.SpecHub,
		"palembang": islands.SpecHub,
		"ternate":   islands.SpecProducer,
		"banda":     islands.SpecProducer,
		"butuan":    islands.SpecCulturalNode,
		"cebu":      islands.SpecCulturalNode,
		"surabaya":  islands.SpecTechEntrepot,
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	slog.Info("Archipelago — Monsoon Voyage Network Simulation",
		"seed", cfg.Seed,
		"voyages_per_season", cfg.VoyagesPerSeason,
		"season_interval", cfg.SeasonInterval,
	)

	// ── Database ──────────────────────────────────────────────────────
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	db, err := persistence.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DatabasePath)

	// ── Entropy ───────────────────────────────────────────────────────
	var rng entropy.Source
	if client := entropy.NewClient(cfg.RandomOrgKey); client.Enabled() {
		slog.Info("entropy source: random.org")
		rng = client
	} else {
		slog.Info("entropy source: seeded PRNG", "seed", cfg.Seed)
		rng = entropy.NewSeeded(cfg.Seed)
	}

	// ── Monsoon cycle ─────────────────────────────────────────────────
	cycle := monsoon.NewCycleEngine(monsoon.DefaultRoutes())
	cycle.ReverseFactorScale = cfg.ReverseFactorScale

	// ── Controller ────────────────────────────────────────────────────
	ports := defaultPorts()
	controller, err := navigation.New(ports, rng, cycle)
	if err != nil {
		slog.Error("failed to build network", "error", err)
		os.Exit(1)
	}

	// Restore connectivity and monsoon position from the last run.
	if saved, err := db.LoadConnectivity(); err != nil {
		slog.Warn("could not load saved connectivity", "error", err)
	} else if len(saved) > 0 {
		controller.RestoreConnectivity(saved)
		slog.Info("connectivity restored", "islands", len(saved))
	}
	if dayStr, err := db.GetMeta("monsoon_day"); err == nil {
		if days, err := strconv.Atoi(dayStr); err == nil && days > 0 {
			cycle.Advance(days)
			slog.Info("monsoon position restored", "phase", cycle.Phase(), "day", cycle.Day())
		}
	}

	// Sea chart gives voyages their route text.
	names := make([]string, 0, len(ports))
	for name := range ports {
		names = append(names, name)
	}
	controller.Chart = seachart.Generate(names, cfg.Seed)

	// Every completed voyage is appended to the log.
	controller.OnResult = func(r navigation.Result) {
		if err := db.SaveVoyage(r); err != nil {
			slog.Error("voyage save failed", "error", err)
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	apiServer := &api.Server{
		Controller: controller,
		DB:         db,
		Port:       cfg.APIPort,
	}
	apiServer.Start()

	// ── Run ───────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("\nThe archipelago awakens: %d ports under the %s monsoon.\n",
		len(ports), cycle.Phase())
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.APIPort)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	ticker := time.NewTicker(cfg.SeasonInterval)
	defer ticker.Stop()

	season := 0
	for running := true; running; {
		select {
		case <-ticker.C:
			season++
			summary, err := controller.SimulateCycle(cfg.VoyagesPerSeason)
			if err != nil {
				slog.Error("season failed", "season", season, "error", err)
				continue
			}
			slog.Info("season complete",
				"season", season,
				"voyages", summary.Voyages,
				"successes", summary.Successes,
				"failures", summary.Failures,
				"trade_volume", summary.TradeVolume,
				"network_state", summary.NetworkState,
				"coherence", fmt.Sprintf("%.3f", summary.Coherence),
				"monsoon", summary.MonsoonPhase,
			)
			if err := saveWorld(db, controller, cycle, season); err != nil {
				slog.Error("season save failed", "error", err)
			}
		case sig := <-sigCh:
			slog.Info("received signal, shutting down", "signal", sig)
			running = false
		}
	}

	slog.Info("final save...")
	if err := saveWorld(db, controller, cycle, season); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Println("Simulation stopped. Network state saved.")
}

func saveWorld(db *persistence.DB, c *navigation.Controller, cycle *monsoon.CycleEngine, season int) error {
	if err := db.SaveWorld(c.Islands(), season); err != nil {
		return err
	}
	return db.SaveMeta("monsoon_day", strconv.Itoa(cycle.TotalDays()))
}
