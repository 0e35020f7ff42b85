package room

import (
	"github.com/quellen/simmer/internal/physics"
)

// Inputs carries the per-tick external contributions to the room.
type Inputs struct {
	// ExternalHeatWatts is heat dumped into the room air from outside
	// the AC loop — burner waste heat, occupants, sunlight.
	ExternalHeatWatts float64

	// Vapor is the fluid machine's evaporated/vaporized mass handoff.
	Vapor Vapor

	// Thresholds configures the exposure monitor. Nil disables it.
	Thresholds map[string]Thresholds
}

// Step advances the room environment by dt seconds: AC thermal loop,
// external heat, air-handler composition loop, vapor injection, pressure
// leak, then the exposure monitor overlay. The input state is never
// mutated.
func Step(s State, cfg Config, ac ACConfig, ah AirHandlerConfig, dt float64, in Inputs) State {
	if dt <= 0 || cfg.VolumeM3 <= 0 {
		return s
	}
	next := s.Clone()

	// AC thermal loop.
	if next.ACEnabled {
		res := ACEffect(next.TempC, next.ACSetpointC, ac, next.ACPid, dt, cfg.VolumeM3)
		next.TempC = res.NewTempC
		next.ACPid = res.Pid
		if res.HeatOutputWatts > 0 {
			next.Energy.ACHeatingJ += res.HeatOutputWatts * dt
		} else {
			next.Energy.ACCoolingJ += -res.HeatOutputWatts * dt
		}
	}

	// External heat sources raise the air temperature directly.
	if in.ExternalHeatWatts > 0 {
		airMass := cfg.VolumeM3 * physics.AirDensity(next.TempC, next.PressurePa)
		next.TempC += physics.TemperatureDelta(in.ExternalHeatWatts*dt, airMass, physics.AirSpecificHeat)
		next.Energy.BurnerWasteJ += in.ExternalHeatWatts * dt
	}

	// Passive envelope loss toward the outdoor temperature.
	if cfg.WallLossPerS > 0 {
		next.TempC = physics.NewtonStep(next.TempC, cfg.AmbientTempC, cfg.WallLossPerS, dt)
	}

	// Air-handler composition loop. The AC's own circulation contributes
	// baseline flow only while the AC is running.
	baseline := 0.0
	if next.ACEnabled {
		baseline = ac.BaselineFlowM3PerS
	}
	ahRes := AirHandlerEffect(next.Composition, next.TargetComposition, ah,
		next.AirHandlerPid, dt, cfg.VolumeM3, next.AirHandlerMode, baseline)
	next.Composition = ahRes.NewComposition
	next.AirHandlerPid = ahRes.Pid
	if frac := ah.Modes[next.AirHandlerMode]; frac > 0 {
		next.Energy.AirHandlerJ += ah.FanWattsMax * frac * dt
	}

	// Vapor handoff from the fluid machine.
	if in.Vapor.MassKg > 0 {
		next.Composition, next.PressurePa = injectVapor(
			next.Composition, next.PressurePa, next.TempC, cfg.VolumeM3, in.Vapor)
	}

	// Weak ventilation bleeds pressure toward ambient.
	next = leakPressure(next, cfg, dt)

	// Exposure monitor: read-only overlay, evaluated last.
	filtering := ahRes.FlowM3PerS > 0
	next.Exposures, next.Alerts = monitorExposure(
		next.Composition, in.Thresholds, next.Exposures, dt, filtering)

	return next
}
