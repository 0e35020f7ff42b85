// Package persistence provides SQLite-based experiment recording.
//
// Each run appends time-series samples, exposure events, and notable
// engine events, keyed by the experiment's run ID so several runs can
// share one database file.
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/quellen/simmer/internal/engine"
	"github.com/quellen/simmer/internal/room"
)

// DB wraps a SQLite connection for experiment recording.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		sim_seconds REAL NOT NULL,
		fluid_temp_c REAL NOT NULL,
		fluid_mass_kg REAL NOT NULL,
		phase TEXT NOT NULL,
		room_temp_c REAL NOT NULL,
		room_pressure_pa REAL NOT NULL,
		vapor_total_kg REAL NOT NULL,
		burner_energy_j REAL NOT NULL,
		wasted_energy_j REAL NOT NULL,
		active_alerts INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exposure_events (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		species TEXT NOT NULL,
		severity TEXT NOT NULL,
		peak_ppm REAL NOT NULL,
		duration_s REAL NOT NULL,
		mitigable INTEGER NOT NULL,
		active INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		run_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (run_id, key)
	);

	CREATE INDEX IF NOT EXISTS idx_samples_run_tick ON samples(run_id, tick);
	CREATE INDEX IF NOT EXISTS idx_events_run_tick ON events(run_id, tick);
	CREATE INDEX IF NOT EXISTS idx_exposures_run ON exposure_events(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Sample is one time-series row of experiment state.
type Sample struct {
	RunID          string  `db:"run_id" csv:"run_id"`
	Tick           uint64  `db:"tick" csv:"tick"`
	SimSeconds     float64 `db:"sim_seconds" csv:"sim_seconds"`
	FluidTempC     float64 `db:"fluid_temp_c" csv:"fluid_temp_c"`
	FluidMassKg    float64 `db:"fluid_mass_kg" csv:"fluid_mass_kg"`
	Phase          string  `db:"phase" csv:"phase"`
	RoomTempC      float64 `db:"room_temp_c" csv:"room_temp_c"`
	RoomPressurePa float64 `db:"room_pressure_pa" csv:"room_pressure_pa"`
	VaporTotalKg   float64 `db:"vapor_total_kg" csv:"vapor_total_kg"`
	BurnerEnergyJ  float64 `db:"burner_energy_j" csv:"burner_energy_j"`
	WastedEnergyJ  float64 `db:"wasted_energy_j" csv:"wasted_energy_j"`
	ActiveAlerts   int     `db:"active_alerts" csv:"active_alerts"`
}

// SampleExperiment records the experiment's current state as one row.
func (db *DB) SampleExperiment(e *engine.Experiment) error {
	s := Sample{
		RunID:          e.ID,
		Tick:           e.LastTick,
		SimSeconds:     e.SimSeconds,
		FluidTempC:     e.Stats.FluidTempC,
		FluidMassKg:    e.Stats.FluidMassKg,
		Phase:          e.LastFluid.Phase.String(),
		RoomTempC:      e.Stats.RoomTempC,
		RoomPressurePa: e.Stats.RoomPressurePa,
		VaporTotalKg:   e.Stats.VaporTotalKg,
		BurnerEnergyJ:  e.Stats.BurnerEnergyJ,
		WastedEnergyJ:  e.Stats.WastedEnergyJ,
		ActiveAlerts:   e.Stats.ActiveAlerts,
	}
	_, err := db.conn.NamedExec(`INSERT INTO samples
		(run_id, tick, sim_seconds, fluid_temp_c, fluid_mass_kg, phase,
		 room_temp_c, room_pressure_pa, vapor_total_kg, burner_energy_j,
		 wasted_energy_j, active_alerts)
		VALUES (:run_id, :tick, :sim_seconds, :fluid_temp_c, :fluid_mass_kg,
		 :phase, :room_temp_c, :room_pressure_pa, :vapor_total_kg,
		 :burner_energy_j, :wasted_energy_j, :active_alerts)`, s)
	if err != nil {
		return fmt.Errorf("insert sample tick %d: %w", s.Tick, err)
	}
	return nil
}

// SaveExposures writes the experiment's exposure ledger (full replace for
// this run, since events update in place while active).
func (db *DB) SaveExposures(runID string, events []room.ExposureEvent) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM exposure_events WHERE run_id = ?", runID); err != nil {
		return err
	}

	for _, ev := range events {
		mitigable, active := 0, 0
		if ev.Mitigable {
			mitigable = 1
		}
		if ev.Active {
			active = 1
		}
		_, err := tx.Exec(`INSERT INTO exposure_events
			(id, run_id, species, severity, peak_ppm, duration_s, mitigable, active)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ev.ID, runID, ev.Species, ev.Severity.String(),
			ev.PeakPPM, ev.DurationS, mitigable, active,
		)
		if err != nil {
			return fmt.Errorf("insert exposure %s: %w", ev.ID, err)
		}
	}

	return tx.Commit()
}

// SaveEvents appends engine events to the database.
func (db *DB) SaveEvents(runID string, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (run_id, tick, description, category) VALUES (?, ?, ?, ?)",
			runID, e.Tick, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair for a run.
func (db *DB) SaveMeta(runID, key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (run_id, key, value) VALUES (?, ?, ?)",
		runID, key, value,
	)
	return err
}

// GetMeta retrieves a run metadata value.
func (db *DB) GetMeta(runID, key string) (string, error) {
	var value string
	err := db.conn.Get(&value,
		"SELECT value FROM run_meta WHERE run_id = ? AND key = ?", runID, key)
	return value, err
}

// SaveRun performs a full checkpoint of an experiment: current sample,
// exposure ledger, pending events, and the tick high-water mark. Saved
// events are dropped from the experiment's ring.
func (db *DB) SaveRun(e *engine.Experiment) error {
	if err := db.SampleExperiment(e); err != nil {
		return fmt.Errorf("save sample: %w", err)
	}
	if err := db.SaveExposures(e.ID, e.Room.Exposures); err != nil {
		return fmt.Errorf("save exposures: %w", err)
	}
	if err := db.SaveEvents(e.ID, e.Events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	e.Events = e.Events[:0]
	if err := db.SaveMeta(e.ID, "last_tick", fmt.Sprintf("%d", e.CurrentTick())); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := db.SaveMeta(e.ID, "name", e.Name); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Debug("run checkpoint saved", "run_id", e.ID, "tick", e.CurrentTick())
	return nil
}

// Samples returns a run's time series in tick order.
func (db *DB) Samples(runID string) ([]Sample, error) {
	var samples []Sample
	err := db.conn.Select(&samples, `SELECT
		run_id, tick, sim_seconds, fluid_temp_c, fluid_mass_kg, phase,
		room_temp_c, room_pressure_pa, vapor_total_kg, burner_energy_j,
		wasted_energy_j, active_alerts
		FROM samples WHERE run_id = ? ORDER BY tick`, runID)
	return samples, err
}

// RecentEvents returns the most recent N events for a run.
func (db *DB) RecentEvents(runID string, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT tick, description, category FROM events WHERE run_id = ? ORDER BY id DESC LIMIT ?",
		runID, limit,
	)
	return events, err
}
