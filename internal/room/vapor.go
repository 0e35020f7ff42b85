package room

import (
	"github.com/quellen/simmer/internal/physics"
)

// Vapor describes a mass of vapor injected into the room by the fluid
// machine this tick.
type Vapor struct {
	// Species identifies the vapor in the composition map, e.g. "h2o".
	Species string

	// MassKg is the injected mass.
	MassKg float64

	// MolarMassKgPerMol converts mass to moles for the mixing math.
	MolarMassKgPerMol float64
}

// injectVapor mixes a vapor mass into the room atmosphere under a
// closed-system, ideal-gas assumption: fixed volume, so the added moles
// renormalize all existing species down proportionally and raise the
// total pressure. Returns the new composition and pressure.
func injectVapor(comp Composition, pressurePa, tempC, volumeM3 float64, v Vapor) (Composition, float64) {
	if v.MassKg <= 0 || v.MolarMassKgPerMol <= 0 || v.Species == "" ||
		volumeM3 <= 0 || pressurePa <= 0 {
		return comp, pressurePa
	}
	tK := tempC - physics.AbsoluteZeroC
	if tK <= 0 {
		return comp, pressurePa
	}

	molesAdded := v.MassKg / v.MolarMassKgPerMol
	molesExisting := pressurePa * volumeM3 / (physics.GasConstant * tK)
	molesTotal := molesExisting + molesAdded

	scale := molesExisting / molesTotal
	out := make(Composition, len(comp)+1)
	for sp, frac := range comp {
		out[sp] = frac * scale
	}
	out[v.Species] += molesAdded / molesTotal

	newPressure := molesTotal * physics.GasConstant * tK / volumeM3
	return out, newPressure
}

// leakPressure applies the rate-limited proportional equalization of room
// pressure toward ambient, modelling a weakly ventilated room. The
// composition drifts toward target in proportion to the exchanged air.
func leakPressure(s State, cfg Config, dt float64) State {
	if cfg.LeakRatePerS <= 0 || dt <= 0 {
		return s
	}
	ambient := cfg.AmbientPressurePa
	if ambient <= 0 {
		ambient = physics.SeaLevelPressure
	}

	frac := min(1, cfg.LeakRatePerS*dt)
	s.PressurePa += (ambient - s.PressurePa) * frac

	// Outgoing and incoming leak air carries composition with it.
	mixed, _ := physics.MixToward(s.Composition, s.TargetComposition, frac, nil, 1.0)
	s.Composition = mixed
	return s
}
