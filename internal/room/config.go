package room

import "github.com/quellen/simmer/internal/physics"

// Config holds the room's fixed physical characteristics.
type Config struct {
	// VolumeM3 is the room air volume.
	VolumeM3 float64

	// LeakRatePerS is the proportional pressure-equalization rate toward
	// ambient, representing a weakly ventilated room. Zero seals the
	// room completely.
	LeakRatePerS float64

	// AmbientTempC and AmbientPressurePa describe the outside world the
	// room leaks toward.
	AmbientTempC      float64
	AmbientPressurePa float64

	// WallLossPerS is the Newton coefficient of passive heat loss
	// through the room envelope toward the outdoor temperature. Zero
	// models a perfectly insulated room.
	WallLossPerS float64
}

// ACConfig is the equipment record for the air-conditioning unit,
// supplied by the equipment catalog and read-only per tick.
type ACConfig struct {
	// CoolingMaxWatts and HeatingMaxWatts bound the two operating modes.
	CoolingMaxWatts float64
	HeatingMaxWatts float64

	// DeadbandC suppresses control output near the setpoint.
	DeadbandC float64

	// ResponseTimeS is the first-order lag constant blending commanded
	// power toward the previous tick's value — the unit cannot jump to
	// full output instantaneously.
	ResponseTimeS float64

	// Gains are the PID gains for the thermal loop.
	Gains physics.PidGains

	// MaxRateCPerS clamps the achievable room temperature slew.
	MaxRateCPerS float64

	// BaselineFlowM3PerS is the unit's own circulation airflow,
	// contributing to gas exchange even with the air handler off.
	BaselineFlowM3PerS float64
}

// AirHandlerConfig is the equipment record for the air handler.
type AirHandlerConfig struct {
	// MaxFlowM3PerS is the flow at 100%.
	MaxFlowM3PerS float64

	// Modes maps operating-mode names to fractions of max flow.
	// An unknown or missing mode means off.
	Modes map[string]float64

	// FiltrationEfficiency overrides the per-species capture efficiency;
	// species not listed use DefaultFiltrationEfficiency.
	FiltrationEfficiency map[string]float64

	// FanWattsMax is the fan's electrical draw at full flow, prorated by
	// the active mode's flow fraction for the energy totals.
	FanWattsMax float64
}

// DefaultFiltrationEfficiency is the standard per-species capture
// efficiency applied when no override is configured.
const DefaultFiltrationEfficiency = 0.8

// DefaultModes returns the standard named flow levels.
func DefaultModes() map[string]float64 {
	return map[string]float64{
		"off":    0,
		"low":    0.3,
		"medium": 0.6,
		"high":   1.0,
	}
}

// PID gain presets for the AC thermal loop. Balanced is the default:
// tuned to settle inside the deadband without overshoot on a typical
// domestic room.
var (
	BalancedGains   = physics.PidGains{Kp: 0.4, Ki: 0.002, Kd: 0.1}
	AggressiveGains = physics.PidGains{Kp: 0.9, Ki: 0.01, Kd: 0.05}
	GentleGains     = physics.PidGains{Kp: 0.2, Ki: 0.001, Kd: 0.15}
)

// PresetGains resolves a preset name, falling back to Balanced.
func PresetGains(name string) physics.PidGains {
	switch name {
	case "aggressive":
		return AggressiveGains
	case "gentle":
		return GentleGains
	default:
		return BalancedGains
	}
}
