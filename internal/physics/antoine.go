package physics

import "math"

// PascalPerMmHg converts millimeters of mercury to pascals.
const PascalPerMmHg = 133.322368

// antoineRangeTolerance is the band, in degrees, beyond the verified
// temperature range within which an inverse result is still considered
// trustworthy before the extrapolation flag is raised.
const antoineRangeTolerance = 5.0

// AntoineCoefficients holds the empirical constants of the Antoine
// vapor-pressure correlation for one substance,
//
//	log10(P_mmHg) = A − B/(C + T)
//
// with T in degrees Celsius, together with the temperature range over
// which the fit was verified.
type AntoineCoefficients struct {
	A, B, C float64

	// TminC and TmaxC bound the empirically verified range, °C.
	TminC, TmaxC float64
}

// VaporPressure returns the saturation vapor pressure in pascals at the
// given temperature. The correlation is evaluated even outside the
// verified range; the curve is physically continuous there and callers
// use InRange to judge trust.
func (ac AntoineCoefficients) VaporPressure(tempC float64) float64 {
	if !finite(tempC) || ac.C+tempC == 0 {
		return 0
	}
	mmHg := math.Pow(10, ac.A-ac.B/(ac.C+tempC))
	return mmHg * PascalPerMmHg
}

// SaturationTemperature inverts the correlation for the temperature at
// which the vapor pressure equals pressurePa:
//
//	T = B/(A − log10(P_mmHg)) − C
//
// The result is never clamped or rejected. extrapolated is true when it
// falls outside the verified range (plus a small tolerance band), meaning
// the value is returned on degraded trust.
func (ac AntoineCoefficients) SaturationTemperature(pressurePa float64) (tempC float64, extrapolated bool) {
	if !finite(pressurePa) || pressurePa <= 0 {
		return 0, true
	}
	logP := math.Log10(pressurePa / PascalPerMmHg)
	denom := ac.A - logP
	if denom == 0 {
		return 0, true
	}
	tempC = ac.B/denom - ac.C
	return tempC, !ac.InRange(tempC)
}

// InRange reports whether tempC lies inside the verified temperature
// range, widened by the tolerance band.
func (ac AntoineCoefficients) InRange(tempC float64) bool {
	return tempC >= ac.TminC-antoineRangeTolerance && tempC <= ac.TmaxC+antoineRangeTolerance
}
