package physics

// SensibleHeat returns the energy in joules needed to change the
// temperature of massKg of a substance by deltaT degrees:
//
//	Q = m·c·ΔT
//
// specificHeat is in J/(kg·°C). A non-positive mass or specific heat
// yields zero energy.
func SensibleHeat(massKg, specificHeat, deltaT float64) float64 {
	if !finite(massKg, specificHeat, deltaT) || massKg <= 0 || specificHeat <= 0 {
		return 0
	}
	return massKg * specificHeat * deltaT
}

// TemperatureDelta is the inverse of SensibleHeat: the temperature change
// produced by depositing energyJ joules into massKg of a substance.
//
//	ΔT = Q/(m·c)
//
// A non-positive mass or specific heat yields zero change.
func TemperatureDelta(energyJ, massKg, specificHeat float64) float64 {
	if !finite(energyJ, massKg, specificHeat) || massKg <= 0 || specificHeat <= 0 {
		return 0
	}
	return energyJ / (massKg * specificHeat)
}

// LatentHeat returns the energy in joules absorbed or released when
// massKg of a substance changes phase with latent heat latentJPerKg
// (vaporization or fusion).
func LatentHeat(massKg, latentJPerKg float64) float64 {
	if !finite(massKg, latentJPerKg) || massKg <= 0 || latentJPerKg <= 0 {
		return 0
	}
	return massKg * latentJPerKg
}

// MassFromLatentHeat is the inverse of LatentHeat: the mass converted by
// spending energyJ joules on a phase change.
func MassFromLatentHeat(energyJ, latentJPerKg float64) float64 {
	if !finite(energyJ, latentJPerKg) || energyJ <= 0 || latentJPerKg <= 0 {
		return 0
	}
	return energyJ / latentJPerKg
}
