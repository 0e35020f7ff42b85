package fluid

import (
	"math"

	"github.com/quellen/simmer/internal/physics"
)

// coolingEpsilon is the temperature band around ambient, °C, inside
// which Newtonian cooling is skipped to avoid chattering on noise-scale
// differences.
const coolingEpsilon = 0.01

// defaultSurfaceArea is the assumed liquid surface when the environment
// does not specify one: a ~20 cm pot, m².
const defaultSurfaceArea = 0.03

// Env describes the surroundings of the fluid for one tick.
type Env struct {
	// AmbientTempC is the room air temperature.
	AmbientTempC float64

	// AmbientPressurePa is the total ambient pressure. Zero means derive
	// it from the state's altitude via the barometric model.
	AmbientPressurePa float64

	// PartialPressurePa is the bulk partial pressure of this substance's
	// vapor in the surrounding air, slowing evaporation as it rises.
	PartialPressurePa float64

	// SurfaceAreaM2 is the exposed liquid surface. Zero selects the
	// package default.
	SurfaceAreaM2 float64
}

// Result is the outcome of advancing one fluid tick.
type Result struct {
	// State is the successor fluid state.
	State State

	// VaporMassKg is the mass converted to vapor this tick, by boiling
	// or evaporation, for injection into the room's atmosphere.
	VaporMassKg float64

	// Phase is the thermal regime this tick ran in.
	Phase Phase

	// Evaporating reports sub-boiling diffusion-driven mass loss,
	// concurrent with heating or cooling.
	Evaporating bool

	// IsBoiling reports that the plateau was reached this tick.
	IsBoiling bool

	// BoilingPointC is the resolved boiling point, NaN when the
	// substance cannot boil.
	BoilingPointC float64

	// BoilingSource records which model produced the boiling point.
	BoilingSource BoilingSource

	// Extrapolated is raised when the Antoine inversion fell outside its
	// verified temperature range. Advisory only.
	Extrapolated bool

	// WastedJ is heater energy that could not go anywhere: delivered at
	// the plateau with no evaporable mass left to convert.
	WastedJ float64
}

// Step advances the fluid by dt seconds under heaterWatts of applied
// power. The input state is returned unchanged when the properties
// record is missing or invalid — correctness is preferred over silently
// substituting defaults — and when no mass is present.
func Step(s State, heaterWatts, dt float64, props Properties, env Env) Result {
	res := Result{State: s, Phase: PhaseIdle, BoilingPointC: math.NaN()}
	if !props.Valid() || dt <= 0 || math.IsNaN(dt) {
		return res
	}
	if s.Empty() {
		return res
	}

	ambientPressure := env.AmbientPressurePa
	if ambientPressure <= 0 {
		ambientPressure = physics.PressureAtAltitude(s.AltitudeM)
	}

	bp := boilingPointAt(props, ambientPressure, s.AltitudeM)
	res.BoilingPointC = bp.TempC
	res.BoilingSource = bp.Source
	res.Extrapolated = bp.Extrapolated

	if heaterWatts > 0 {
		res = applyHeater(res, heaterWatts*dt, props, bp)
	} else {
		res = applyCooling(res, props, env, dt)
	}

	// Evaporation runs regardless of heater state whenever liquid below
	// the boiling point is exposed.
	if !res.IsBoiling {
		res = applyEvaporation(res, props, env, ambientPressure, dt)
	}

	if res.State.MassKg < res.State.ResidueMassKg {
		res.State.MassKg = res.State.ResidueMassKg
	}
	return res
}

// applyHeater spends energyJ of heater output: sensible heat up to the
// boiling point, the remainder as latent heat at the plateau.
func applyHeater(res Result, energyJ float64, props Properties, bp BoilingPoint) Result {
	s := res.State
	res.Phase = PhaseHeating

	if bp.Source == SourceNone || math.IsNaN(bp.TempC) || s.TempC < bp.TempC {
		sensibleBudget := energyJ
		if bp.Source != SourceNone && !math.IsNaN(bp.TempC) {
			toBoil := physics.SensibleHeat(s.MassKg, props.SpecificHeat, bp.TempC-s.TempC)
			if toBoil < sensibleBudget {
				sensibleBudget = toBoil
			}
		}
		s.TempC += physics.TemperatureDelta(sensibleBudget, s.MassKg, props.SpecificHeat)
		energyJ -= sensibleBudget
	}

	// Any remaining energy arrives with the fluid at the plateau.
	if energyJ > 0 && bp.Source != SourceNone && !math.IsNaN(bp.TempC) {
		s.TempC = bp.TempC // never exceeded while mass remains
		res.Phase = PhaseBoiling
		res.IsBoiling = true

		vapor := physics.MassFromLatentHeat(energyJ, props.LatentVaporization)
		evaporable := s.MassKg - s.ResidueMassKg
		if vapor > evaporable {
			surplus := vapor - evaporable
			res.WastedJ += physics.LatentHeat(surplus, props.LatentVaporization)
			vapor = evaporable
		}
		s.MassKg -= vapor
		res.VaporMassKg += vapor
	}

	res.State = s
	return res
}

// applyCooling applies the Newtonian decay step with the heater off,
// gated by a small epsilon so a fluid already at ambient stays put.
func applyCooling(res Result, props Properties, env Env, dt float64) Result {
	s := res.State
	res.Phase = PhaseCooling

	if math.Abs(s.TempC-env.AmbientTempC) > coolingEpsilon {
		s.TempC = physics.NewtonStep(s.TempC, env.AmbientTempC, props.Cooling.Coefficient(), dt)
	}

	res.State = s
	return res
}

// applyEvaporation models sub-boiling mass loss through the natural
// convection boundary layer above the liquid surface, and the cooling
// the departing latent heat causes.
func applyEvaporation(res Result, props Properties, env Env, ambientPressurePa, dt float64) Result {
	s := res.State
	if !props.CanEvaporate() || s.EvaporableMass() <= 0 {
		return res
	}

	satPressure := props.Antoine.VaporPressure(s.TempC)
	if satPressure <= env.PartialPressurePa {
		return res
	}

	area := env.SurfaceAreaM2
	if area <= 0 {
		area = defaultSurfaceArea
	}
	length := math.Sqrt(area)

	diff := physics.FullerDiffusionCoefficient(s.TempC, ambientPressurePa,
		props.MolarMass, physics.AirMolarMass, props.DiffusionVolume, physics.AirDiffusionVolume)
	if diff <= 0 {
		return res
	}

	// Buoyancy from the lighter (or heavier) vapor-laden boundary layer.
	densityRatio := (satPressure - env.PartialPressurePa) / ambientPressurePa *
		math.Abs(physics.AirMolarMass-props.MolarMass) / physics.AirMolarMass

	sc := physics.SchmidtNumber(physics.AirKinematicViscosity, diff)
	gr := physics.GrashofMass(length, densityRatio, physics.AirKinematicViscosity)
	sh := physics.SherwoodNumber(physics.RayleighNumber(gr, sc))
	kc := physics.MassTransferCoefficient(sh, diff, length)

	flux := physics.EvaporationFlux(kc, satPressure, env.PartialPressurePa, props.MolarMass, s.TempC)
	if flux <= 0 {
		return res
	}

	evap := flux * area * dt
	if evap > s.EvaporableMass() {
		evap = s.EvaporableMass()
	}
	if evap <= 0 {
		return res
	}

	s.MassKg -= evap
	s.TempC += physics.EvaporativeCoolingDelta(evap, props.LatentVaporization, s.MassKg, props.SpecificHeat)

	res.State = s
	res.VaporMassKg += evap
	res.Evaporating = true
	return res
}
