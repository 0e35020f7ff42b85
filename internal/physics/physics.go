// Package physics implements the closed-form formulas the simulator is
// built from: sensible and latent heat, Newtonian cooling, the Antoine
// vapor-pressure correlation, the barometric altitude model, colligative
// boiling-point elevation, diffusion-driven evaporation, PID control, and
// gas-exchange mixing.
//
// Every function here is pure and stateless. Inputs and outputs carry
// explicit SI units (temperatures in degrees Celsius unless noted).
// Invalid inputs — non-finite values, non-positive masses or specific
// heats — produce conservative no-op results rather than errors, because
// the surrounding simulation must keep advancing every tick.
package physics

import "math"

// Physical constants.
const (
	// GasConstant is the universal gas constant R, J/(mol·K).
	GasConstant = 8.31446

	// AbsoluteZeroC is absolute zero expressed in degrees Celsius.
	AbsoluteZeroC = -273.15

	// AirMolarMass is the molar mass of dry air, kg/mol.
	AirMolarMass = 0.0289644

	// AirSpecificHeat is the specific heat of air at constant pressure,
	// J/(kg·°C).
	AirSpecificHeat = 1005.0

	// AirDiffusionVolume is the Fuller atomic diffusion volume sum for air.
	AirDiffusionVolume = 19.7

	// AirKinematicViscosity is the kinematic viscosity of air near room
	// temperature, m²/s.
	AirKinematicViscosity = 1.516e-5

	// Gravity is standard gravitational acceleration, m/s².
	Gravity = 9.80665
)

// kelvin converts a Celsius temperature to kelvin.
func kelvin(tempC float64) float64 {
	return tempC - AbsoluteZeroC
}

// finite reports whether every argument is a normal, usable number.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// clamp limits v to the closed interval [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
