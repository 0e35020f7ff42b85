package persistence

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quellen/simmer/internal/engine"
	"github.com/quellen/simmer/internal/fluid"
	"github.com/quellen/simmer/internal/room"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testExperiment() *engine.Experiment {
	props := fluid.Properties{
		Substance:    "water",
		SpecificHeat: 4186,
		MolarMass:    0.018015,
	}
	e := engine.NewExperiment("bench", props,
		fluid.State{MassKg: 1, TempC: 20},
		room.NewState(22, room.PressureSeaLevel, 0, 0))
	e.RoomCfg = room.Config{VolumeM3: 50}
	return e
}

func TestSaveRunRoundTrip(t *testing.T) {
	db := openTestDB(t)
	e := testExperiment()

	e.TickOnce(1, 1.0)
	require.NoError(t, db.SaveRun(e))
	e.TickOnce(2, 1.0)
	require.NoError(t, db.SaveRun(e))

	samples, err := db.Samples(e.ID)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, uint64(1), samples[0].Tick)
	assert.Equal(t, uint64(2), samples[1].Tick)
	assert.Equal(t, "cooling", samples[0].Phase)
	assert.InDelta(t, 1.0, samples[0].FluidMassKg, 1e-9)

	tick, err := db.GetMeta(e.ID, "last_tick")
	require.NoError(t, err)
	assert.Equal(t, "2", tick)

	name, err := db.GetMeta(e.ID, "name")
	require.NoError(t, err)
	assert.Equal(t, "bench", name)
}

func TestSaveRunDrainsEvents(t *testing.T) {
	db := openTestDB(t)
	e := testExperiment()
	e.Events = append(e.Events, engine.Event{Tick: 1, Description: "burner switched on", Category: "burner"})

	require.NoError(t, db.SaveRun(e))
	assert.Empty(t, e.Events, "saved events leave the ring")

	events, err := db.RecentEvents(e.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "burner", events[0].Category)
}

func TestSaveExposuresReplaces(t *testing.T) {
	db := openTestDB(t)
	runID := "run-1"

	first := []room.ExposureEvent{{
		ID: "ev-1", Species: "co2", Severity: room.SeverityWarning,
		PeakPPM: 1200, DurationS: 30, Active: true,
	}}
	require.NoError(t, db.SaveExposures(runID, first))

	// The same event grows; a second one appears.
	second := []room.ExposureEvent{
		{ID: "ev-1", Species: "co2", Severity: room.SeverityDanger,
			PeakPPM: 5200, DurationS: 90, Active: true},
		{ID: "ev-2", Species: "water", Severity: room.SeverityWarning,
			PeakPPM: 30000, DurationS: 10, Mitigable: true, Active: false},
	}
	require.NoError(t, db.SaveExposures(runID, second))

	var count int
	require.NoError(t, db.conn.Get(&count,
		"SELECT COUNT(*) FROM exposure_events WHERE run_id = ?", runID))
	assert.Equal(t, 2, count)

	var severity string
	require.NoError(t, db.conn.Get(&severity,
		"SELECT severity FROM exposure_events WHERE id = ?", "ev-1"))
	assert.Equal(t, "danger", severity)
}

func TestExportSamplesCSV(t *testing.T) {
	db := openTestDB(t)
	e := testExperiment()
	e.TickOnce(1, 1.0)
	require.NoError(t, db.SampleExperiment(e))

	var sb strings.Builder
	require.NoError(t, db.ExportSamplesCSV(e.ID, &sb))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "fluid_temp_c")
	assert.Contains(t, lines[0], "room_pressure_pa")
	assert.Contains(t, lines[1], e.ID)
}
