// Package ambient produces the outdoor conditions the room leaks toward:
// a deterministic, seeded temperature drift around a scenario baseline,
// layered from simplex noise. The engine samples it by simulation time,
// so identical seeds replay identical weather.
package ambient

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/quellen/simmer/internal/physics"
)

// Field generates outdoor conditions for one experiment run.
type Field struct {
	noise opensimplex.Noise

	baseTempC float64
	swingC    float64
	periodS   float64
	altitudeM float64
}

// Config holds the field parameters from the scenario.
type Config struct {
	Seed      int64   `yaml:"seed"`
	BaseTempC float64 `yaml:"base_temp_c"`
	SwingC    float64 `yaml:"swing_c"`
	PeriodS   float64 `yaml:"period_s"`
	AltitudeM float64 `yaml:"altitude_m"`
}

// NewField builds a drift field. A zero period disables drift entirely
// and the field returns the constant baseline.
func NewField(cfg Config) *Field {
	return &Field{
		noise:     opensimplex.NewNormalized(cfg.Seed),
		baseTempC: cfg.BaseTempC,
		swingC:    cfg.SwingC,
		periodS:   cfg.PeriodS,
		altitudeM: cfg.AltitudeM,
	}
}

// Conditions is one sample of the outdoor state.
type Conditions struct {
	TempC      float64
	PressurePa float64
}

// At samples the field at a simulation time in seconds.
func (f *Field) At(simSeconds float64) Conditions {
	temp := f.baseTempC
	if f.swingC > 0 && f.periodS > 0 {
		// Two octaves: a slow front and a faster flutter on top.
		t := simSeconds / f.periodS
		n := f.noise.Eval2(t, 0)*0.75 + f.noise.Eval2(t*4, 17.3)*0.25
		temp += (n - 0.5) * 2 * f.swingC
	}
	return Conditions{
		TempC:      temp,
		PressurePa: physics.PressureAtAltitude(f.altitudeM),
	}
}

// Altitude returns the configured experiment altitude.
func (f *Field) Altitude() float64 { return f.altitudeM }
