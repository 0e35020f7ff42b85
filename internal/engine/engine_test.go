package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quellen/simmer/internal/fluid"
	"github.com/quellen/simmer/internal/physics"
	"github.com/quellen/simmer/internal/room"
)

func waterProps() fluid.Properties {
	return fluid.Properties{
		Substance:            "water",
		SpecificHeat:         4186,
		LatentVaporization:   2.257e6,
		LatentFusion:         3.34e5,
		BoilingPointSeaLevel: 100,
		FreezingPoint:        0,
		AltitudeLapse:        0.00325,
		Antoine: &physics.AntoineCoefficients{
			A: 8.07131, B: 1730.63, C: 233.426,
			TminC: 1, TmaxC: 100,
		},
		Density:         997,
		MolarMass:       0.018015,
		DiffusionVolume: 12.7,
	}
}

func benchExperiment() *Experiment {
	e := NewExperiment("kettle", waterProps(),
		fluid.State{MassKg: 1.0, TempC: 20},
		room.NewState(22, room.PressureSeaLevel, 0, 0))
	e.HeaterWatts = 2000
	e.SurfaceAreaM2 = 0.03
	e.RoomCfg = room.Config{
		VolumeM3:          50,
		LeakRatePerS:      0.0005,
		AmbientTempC:      15,
		AmbientPressurePa: physics.SeaLevelPressure,
	}
	e.AirCfg = room.AirHandlerConfig{
		MaxFlowM3PerS: 0.5,
		Modes:         room.DefaultModes(),
		FanWattsMax:   400,
	}
	e.Room.AirHandlerMode = "off"
	return e
}

func TestEngineStepCadence(t *testing.T) {
	eng := NewEngine()
	eng.Interval = time.Second
	eng.Speed = 2.0

	var ticks, samples, reports int
	var lastDt float64
	eng.OnTick = func(tick uint64, dt float64) {
		ticks++
		lastDt = dt
	}
	eng.OnSample = func(tick uint64) { samples++ }
	eng.OnReport = func(tick uint64) { reports++ }

	for _i := 0; _i < TicksPerReport*2; _i++ {
		eng.Step()
	}

	assert.Equal(t, TicksPerReport*2, ticks)
	assert.Equal(t, TicksPerReport*2/TicksPerSample, samples)
	assert.Equal(t, 2, reports)
	assert.InDelta(t, 2.0, lastDt, 1e-12, "dt is the interval scaled by speed")
	assert.Equal(t, uint64(TicksPerReport*2), eng.Tick)
}

func TestSimTime(t *testing.T) {
	assert.Equal(t, "00:00:00", SimTime(0))
	assert.Equal(t, "00:01:05", SimTime(65))
	assert.Equal(t, "02:30:00", SimTime(9000))
}

// Boiling 1 kg of water hands steam to the room: its composition gains the
// vapor species and the pressure rises above the starting value.
func TestExperimentVaporHandoff(t *testing.T) {
	e := benchExperiment()
	e.Fluid.TempC = 99.5
	e.HeaterOn = true
	startPressure := e.Room.PressurePa

	for tick := uint64(1); tick <= 600; tick++ {
		e.TickOnce(tick, 1.0)
	}

	require.Positive(t, e.Stats.VaporTotalKg)
	assert.Positive(t, e.Room.Composition["water"])
	assert.Greater(t, e.Room.PressurePa, startPressure)

	// Everything that left the fluid arrived as handoff mass.
	assert.InDelta(t, 1.0-e.Fluid.MassKg, e.Stats.VaporTotalKg, 1e-9)
}

func TestExperimentPhaseEventsRecorded(t *testing.T) {
	e := benchExperiment()
	e.Fluid.TempC = 99.5
	e.SetBurner(0, true)

	for tick := uint64(1); tick <= 120; tick++ {
		e.TickOnce(tick, 1.0)
	}

	var categories []string
	for _, ev := range e.Events {
		categories = append(categories, ev.Category)
	}
	assert.Contains(t, categories, "burner")
	assert.Contains(t, categories, "phase")
}

// An 80% efficient burner spills a fifth of its power into the room air.
func TestExperimentBurnerWasteHeatsRoom(t *testing.T) {
	e := benchExperiment()
	e.BurnerEfficiency = 0.8
	e.HeaterOn = true
	startTemp := e.Room.TempC

	for tick := uint64(1); tick <= 60; tick++ {
		e.TickOnce(tick, 1.0)
	}

	assert.Greater(t, e.Room.TempC, startTemp)
	assert.InDelta(t, 2000*0.2*60, e.Room.Energy.BurnerWasteJ, 1.0)
	assert.InDelta(t, 2000*60, e.Stats.BurnerEnergyJ, 1e-6)
}

// Two identical experiments stepped identically stay identical: the engine
// path contains no hidden randomness.
func TestExperimentDeterminism(t *testing.T) {
	a := benchExperiment()
	b := benchExperiment()
	a.HeaterOn = true
	b.HeaterOn = true

	for tick := uint64(1); tick <= 300; tick++ {
		a.TickOnce(tick, 1.0)
		b.TickOnce(tick, 1.0)
	}

	assert.Equal(t, a.Fluid, b.Fluid)
	assert.Equal(t, a.Stats, b.Stats)
	assert.Equal(t, a.Room.Composition, b.Room.Composition)
}

func TestExperimentZeroDtIsNoOp(t *testing.T) {
	e := benchExperiment()
	before := e.Fluid
	e.TickOnce(1, 0)
	assert.Equal(t, before, e.Fluid)
	assert.Equal(t, uint64(1), e.LastTick)
}
