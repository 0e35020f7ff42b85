package physics

import "math"

// FullerDiffusionCoefficient returns the binary gas-phase diffusion
// coefficient D_AB in m²/s via the Fuller–Schettler–Giddings correlation:
//
//	D_AB[cm²/s] = 0.00143·T^1.75 / (P_atm·√M_AB·(Σv_A^⅓ + Σv_B^⅓)²)
//
// with M_AB = 2/(1/M_A + 1/M_B) in g/mol and Σv the tabulated atomic
// diffusion volume sums. Molar masses are supplied in kg/mol.
func FullerDiffusionCoefficient(tempC, pressurePa, molarMassA, molarMassB, diffVolA, diffVolB float64) float64 {
	t := kelvin(tempC)
	if !finite(tempC, pressurePa, molarMassA, molarMassB, diffVolA, diffVolB) ||
		t <= 0 || pressurePa <= 0 || molarMassA <= 0 || molarMassB <= 0 ||
		diffVolA <= 0 || diffVolB <= 0 {
		return 0
	}

	ma := molarMassA * 1000 // g/mol
	mb := molarMassB * 1000
	mab := 2 / (1/ma + 1/mb)

	pAtm := pressurePa / SeaLevelPressure
	vterm := math.Cbrt(diffVolA) + math.Cbrt(diffVolB)

	dCm2 := 0.00143 * math.Pow(t, 1.75) / (pAtm * math.Sqrt(mab) * vterm * vterm)
	return dCm2 * 1e-4 // cm²/s → m²/s
}

// SchmidtNumber is the ratio of momentum to mass diffusivity, ν/D.
func SchmidtNumber(kinematicViscosity, diffusionCoeff float64) float64 {
	if !finite(kinematicViscosity, diffusionCoeff) || diffusionCoeff <= 0 || kinematicViscosity <= 0 {
		return 0
	}
	return kinematicViscosity / diffusionCoeff
}

// GrashofMass returns the mass-transfer Grashof number for natural
// convection driven by a buoyant density difference over a surface of
// characteristic length L:
//
//	Gr = g·L³·(Δρ/ρ)/ν²
//
// densityRatio is the relative density difference Δρ/ρ between the bulk
// gas and the vapor-laden boundary layer.
func GrashofMass(lengthM, densityRatio, kinematicViscosity float64) float64 {
	if !finite(lengthM, densityRatio, kinematicViscosity) ||
		lengthM <= 0 || densityRatio <= 0 || kinematicViscosity <= 0 {
		return 0
	}
	return Gravity * lengthM * lengthM * lengthM * densityRatio /
		(kinematicViscosity * kinematicViscosity)
}

// RayleighNumber is the product Gr·Sc governing the natural-convection
// flow regime.
func RayleighNumber(grashof, schmidt float64) float64 {
	if !finite(grashof, schmidt) || grashof < 0 || schmidt < 0 {
		return 0
	}
	return grashof * schmidt
}

// SherwoodNumber correlates the dimensionless mass-transfer rate for
// natural convection above a horizontal surface: Sh = 0.54·Ra^¼ in the
// laminar range, Sh = 0.15·Ra^⅓ in the turbulent range. Below the
// laminar range diffusion dominates and Sh is floored at 1.
func SherwoodNumber(rayleigh float64) float64 {
	switch {
	case !finite(rayleigh) || rayleigh <= 0:
		return 1
	case rayleigh < 1e4:
		return 1
	case rayleigh < 1e7:
		return 0.54 * math.Pow(rayleigh, 0.25)
	default:
		return 0.15 * math.Cbrt(rayleigh)
	}
}

// MassTransferCoefficient converts a Sherwood number back into the
// boundary-layer coefficient k_c = Sh·D/L in m/s.
func MassTransferCoefficient(sherwood, diffusionCoeff, lengthM float64) float64 {
	if !finite(sherwood, diffusionCoeff, lengthM) ||
		sherwood <= 0 || diffusionCoeff <= 0 || lengthM <= 0 {
		return 0
	}
	return sherwood * diffusionCoeff / lengthM
}

// VaporConcentration returns the mass concentration in kg/m³ of a vapor
// at partial pressure partialPa under the ideal gas law, C = p·M/(R·T).
func VaporConcentration(partialPa, molarMassKgPerMol, tempC float64) float64 {
	t := kelvin(tempC)
	if !finite(partialPa, molarMassKgPerMol, tempC) || t <= 0 || molarMassKgPerMol <= 0 || partialPa <= 0 {
		return 0
	}
	return partialPa * molarMassKgPerMol / (GasConstant * t)
}

// EvaporationFlux returns the net evaporative mass flux in kg/(m²·s)
// from a liquid surface: k_c times the concentration difference between
// saturation at the surface and the bulk partial pressure. The flux is
// floored at zero — condensation is not modeled here.
func EvaporationFlux(massTransferCoeff, satPressurePa, bulkPartialPa, molarMassKgPerMol, tempC float64) float64 {
	if !finite(massTransferCoeff, satPressurePa, bulkPartialPa) || massTransferCoeff <= 0 {
		return 0
	}
	cSat := VaporConcentration(satPressurePa, molarMassKgPerMol, tempC)
	cBulk := VaporConcentration(bulkPartialPa, molarMassKgPerMol, tempC)
	flux := massTransferCoeff * (cSat - cBulk)
	if flux < 0 {
		return 0
	}
	return flux
}

// EvaporativeCoolingDelta returns the temperature change of the remaining
// liquid after evaporating massEvapKg:
//
//	ΔT = −(m_evap·L)/(m_remaining·c)
//
// The latent heat leaves with the vapor, so this can drive the liquid
// below ambient temperature.
func EvaporativeCoolingDelta(massEvapKg, latentJPerKg, massRemainingKg, specificHeat float64) float64 {
	if !finite(massEvapKg, latentJPerKg, massRemainingKg, specificHeat) ||
		massEvapKg <= 0 || latentJPerKg <= 0 || massRemainingKg <= 0 || specificHeat <= 0 {
		return 0
	}
	return -(massEvapKg * latentJPerKg) / (massRemainingKg * specificHeat)
}
