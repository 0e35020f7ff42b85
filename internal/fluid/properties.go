// Package fluid implements the thermal state machine for a single heated
// fluid: sensible heating, the boiling plateau, Newtonian cooling, and
// diffusion-driven evaporation, advanced one tick at a time.
//
// All state is passed by value; Step returns a new state and never
// mutates its inputs. The package depends only on internal/physics.
package fluid

import (
	"math"

	"github.com/quellen/simmer/internal/physics"
)

// defaultCoolingCoefficient is the Newton coefficient assumed when a
// substance record carries no measured value, 1/s. It corresponds
// roughly to an uninsulated vessel in still air.
const defaultCoolingCoefficient = 0.005

// CoolingOption is an explicitly tagged optional cooling coefficient:
// either present with a measured value, or absent and falling back to the
// package default. Keeping the defaulting visible here makes it testable
// instead of burying it in extraction helpers.
type CoolingOption struct {
	set   bool
	value float64
}

// Cooling returns a present-with-value option.
func Cooling(k float64) CoolingOption {
	return CoolingOption{set: true, value: k}
}

// DefaultCooling returns an absent option that resolves to the default.
func DefaultCooling() CoolingOption {
	return CoolingOption{}
}

// Coefficient resolves the option to a usable coefficient.
func (o CoolingOption) Coefficient() float64 {
	if o.set {
		return o.value
	}
	return defaultCoolingCoefficient
}

// IsSet reports whether the option carries a measured value.
func (o CoolingOption) IsSet() bool { return o.set }

// Properties is the immutable substance record supplied by the property
// catalog collaborator. The simulation core never loads or validates
// substance data itself; it only consumes records handed to it.
type Properties struct {
	// Substance is the catalog identifier, e.g. "water".
	Substance string

	// SpecificHeat of the liquid phase, J/(kg·°C).
	SpecificHeat float64

	// LatentVaporization is the heat of vaporization, J/kg. Zero means
	// unknown, and the fluid cannot boil.
	LatentVaporization float64

	// LatentFusion is the heat of fusion, J/kg. Zero means unknown, and
	// the fluid cannot freeze.
	LatentFusion float64

	// BoilingPointSeaLevel is the boiling point at one atmosphere, °C.
	// NaN when the substance has no tabulated boiling point.
	BoilingPointSeaLevel float64

	// FreezingPoint at one atmosphere, °C. NaN when untabulated.
	FreezingPoint float64

	// AltitudeLapse is the linear boiling-point drop per meter of
	// altitude, °C/m, used only as the documented fallback when Antoine
	// coefficients are absent.
	AltitudeLapse float64

	// Antoine holds the vapor-pressure correlation, nil when the
	// substance has no verified fit.
	Antoine *physics.AntoineCoefficients

	// Density of the liquid, kg/m³.
	Density float64

	// Cooling is the optional measured Newton cooling coefficient.
	Cooling CoolingOption

	// NonVolatileFraction is the mass fraction of dissolved non-volatile
	// solute (zero for pure substances), raising the boiling point.
	NonVolatileFraction float64

	// SoluteMolarMass is the molar mass of the dissolved solute, kg/mol.
	SoluteMolarMass float64

	// MolarMass of the substance itself, kg/mol.
	MolarMass float64

	// DiffusionVolume is the Fuller atomic diffusion volume sum.
	DiffusionVolume float64
}

// CanBoil reports whether the record carries enough data to model
// boiling: a finite boiling point and a positive latent heat.
func (p Properties) CanBoil() bool {
	return !math.IsNaN(p.BoilingPointSeaLevel) && p.LatentVaporization > 0
}

// CanFreeze is the fusion analogue of CanBoil.
func (p Properties) CanFreeze() bool {
	return !math.IsNaN(p.FreezingPoint) && p.LatentFusion > 0
}

// Valid reports whether the record is usable at all for a thermal step.
// An invalid record is fatal-for-the-tick: the caller's state passes
// through unchanged rather than simulating with substituted defaults.
func (p Properties) Valid() bool {
	return p.Substance != "" &&
		p.SpecificHeat > 0 && !math.IsInf(p.SpecificHeat, 0) &&
		p.MolarMass > 0
}

// CanEvaporate reports whether sub-boiling evaporation can be modeled,
// which needs the vapor-pressure curve and diffusion data.
func (p Properties) CanEvaporate() bool {
	return p.Antoine != nil && p.DiffusionVolume > 0 && p.LatentVaporization > 0
}
