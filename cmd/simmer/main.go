// Command simmer runs a thermophysical bench experiment from a scenario file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/quellen/simmer/internal/api"
	"github.com/quellen/simmer/internal/config"
	"github.com/quellen/simmer/internal/persistence"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "scenarios/kettle.yaml", "scenario YAML file")
		dbPath       = flag.String("db", "data/simmer.db", "SQLite database path (empty disables recording)")
		apiPort      = flag.Int("port", 8080, "HTTP API port (0 disables the API)")
		exportPath   = flag.String("export", "", "write the run's samples to a CSV file on exit")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// ── Scenario ─────────────────────────────────────────────────────
	scenario, err := config.Load(*scenarioPath)
	if err != nil {
		slog.Error("failed to load scenario", "error", err)
		os.Exit(1)
	}
	slog.Info("scenario loaded",
		"name", scenario.Name,
		"substance", scenario.Fluid.Substance,
		"charge_kg", scenario.Charge.MassKg,
		"room_m3", scenario.Room.VolumeM3,
	)

	// ── Database ─────────────────────────────────────────────────────
	var db *persistence.DB
	if *dbPath != "" {
		os.MkdirAll(filepath.Dir(*dbPath), 0755)
		db, err = persistence.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("database opened", "path", *dbPath)
	}

	// ── Experiment ───────────────────────────────────────────────────
	exp := scenario.BuildExperiment()
	slog.Info("experiment ready",
		"run_id", exp.ID,
		"burner_watts", exp.HeaterWatts,
		"burner_on", exp.HeaterOn,
		"ac_enabled", exp.Room.ACEnabled,
	)

	eng := scenario.BuildEngine()
	eng.OnTick = exp.TickOnce
	eng.OnReport = exp.Report
	if db != nil {
		eng.OnSample = func(tick uint64) {
			if err := db.SaveRun(exp); err != nil {
				slog.Error("checkpoint failed", "error", err)
			}
		}
	}

	// ── HTTP API ─────────────────────────────────────────────────────
	if *apiPort > 0 {
		adminKey := os.Getenv("SIMMER_ADMIN_KEY")
		if adminKey == "" {
			slog.Warn("SIMMER_ADMIN_KEY not set — admin POST endpoints will be disabled")
		}
		apiServer := &api.Server{
			Exp:      exp,
			Eng:      eng,
			DB:       db,
			Port:     *apiPort,
			AdminKey: adminKey,
		}
		apiServer.Start()
	}

	// ── Start ────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\n%s: %.2f kg of %s at %.1f C in a %.0f m3 room.\n",
		scenario.Name, scenario.Charge.MassKg, scenario.Fluid.Substance,
		scenario.Charge.TempC, scenario.Room.VolumeM3)
	if *apiPort > 0 {
		fmt.Printf("API: http://localhost:%d/api/v1/status\n", *apiPort)
	}
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	eng.Run()

	// Final checkpoint and optional CSV export on shutdown.
	if db != nil {
		slog.Info("final checkpoint...")
		if err := db.SaveRun(exp); err != nil {
			slog.Error("final checkpoint failed", "error", err)
		}
		if *exportPath != "" {
			if err := db.ExportSamplesFile(exp.ID, *exportPath); err != nil {
				slog.Error("csv export failed", "error", err)
			} else {
				slog.Info("samples exported", "path", *exportPath)
			}
		}
	}

	fmt.Println("Simulation stopped.")
}
