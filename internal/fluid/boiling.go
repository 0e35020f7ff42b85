package fluid

import (
	"math"

	"github.com/quellen/simmer/internal/physics"
)

// BoilingSource identifies which model produced a boiling point.
type BoilingSource int

const (
	// SourceNone: the substance record cannot model boiling.
	SourceNone BoilingSource = iota

	// SourceAntoine: inverted Antoine correlation at ambient pressure.
	// Authoritative whenever coefficients exist.
	SourceAntoine

	// SourceLapseRate: linear altitude lapse fallback, used only when no
	// Antoine fit is available. A documented approximation, not a silent
	// one — callers see the source in step results.
	SourceLapseRate
)

// String returns the display name of the source.
func (s BoilingSource) String() string {
	switch s {
	case SourceAntoine:
		return "antoine"
	case SourceLapseRate:
		return "lapse-rate"
	default:
		return "none"
	}
}

// BoilingPoint is a resolved boiling temperature with its provenance.
type BoilingPoint struct {
	TempC        float64
	Source       BoilingSource
	Extrapolated bool
}

// boilingPointAt resolves the boiling point of props at the given ambient
// pressure, applying colligative elevation for solutions. Precedence:
// Antoine inversion when coefficients exist, linear lapse-rate fallback
// otherwise, "cannot boil" when neither applies.
func boilingPointAt(props Properties, ambientPressurePa, altitudeM float64) BoilingPoint {
	// Boiling needs a positive latent heat no matter how the boiling
	// point itself is obtained.
	if props.LatentVaporization <= 0 {
		return BoilingPoint{TempC: math.NaN(), Source: SourceNone}
	}

	var bp BoilingPoint
	switch {
	case props.Antoine != nil:
		t, extrapolated := props.Antoine.SaturationTemperature(ambientPressurePa)
		bp = BoilingPoint{TempC: t, Source: SourceAntoine, Extrapolated: extrapolated}
	case !math.IsNaN(props.BoilingPointSeaLevel):
		t := props.BoilingPointSeaLevel - props.AltitudeLapse*altitudeM
		bp = BoilingPoint{TempC: t, Source: SourceLapseRate}
	default:
		return BoilingPoint{TempC: math.NaN(), Source: SourceNone}
	}

	// Dissolved non-volatile solute raises the boiling point. Kb is
	// evaluated at the actual boiling temperature, not the textbook one.
	if props.NonVolatileFraction > 0 && props.SoluteMolarMass > 0 && props.LatentVaporization > 0 {
		kb := physics.EbullioscopicConstant(bp.TempC, props.MolarMass, props.LatentVaporization)
		molality := physics.MolalityFromMassFraction(props.NonVolatileFraction, props.SoluteMolarMass)
		bp.TempC += physics.BoilingPointElevation(kb, molality)
	}

	return bp
}
