package physics

import "math"

// International Standard Atmosphere reference values.
const (
	// SeaLevelPressure is standard sea-level pressure, Pa.
	SeaLevelPressure = 101325.0

	// SeaLevelTempK is the ISA sea-level temperature, K.
	SeaLevelTempK = 288.15

	// TemperatureLapseRate is the ISA tropospheric lapse rate, K/m.
	TemperatureLapseRate = 0.0065
)

// PressureAtAltitude returns ambient atmospheric pressure in pascals at
// the given altitude using the ISA barometric formula:
//
//	P = P₀·(1 − L·h/T₀)^(g·M/(R·L))
//
// Valid through the troposphere; altitudes past the lapse-rate ceiling
// are clamped rather than extrapolated into negative bases.
func PressureAtAltitude(altitudeM float64) float64 {
	if !finite(altitudeM) {
		return SeaLevelPressure
	}
	base := 1 - TemperatureLapseRate*altitudeM/SeaLevelTempK
	if base <= 0 {
		return 0
	}
	exponent := Gravity * AirMolarMass / (GasConstant * TemperatureLapseRate)
	return SeaLevelPressure * math.Pow(base, exponent)
}

// AirDensity returns the density of air in kg/m³ at the given temperature
// and pressure under the ideal gas law:
//
//	ρ = P·M/(R·T)
func AirDensity(tempC, pressurePa float64) float64 {
	t := kelvin(tempC)
	if !finite(tempC, pressurePa) || t <= 0 || pressurePa <= 0 {
		return 0
	}
	return pressurePa * AirMolarMass / (GasConstant * t)
}
