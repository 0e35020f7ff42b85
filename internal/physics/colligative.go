package physics

// EbullioscopicConstant returns the colligative constant Kb in
// (°C·kg)/mol evaluated at the actual boiling temperature:
//
//	Kb = R·T_b²·M / ΔH_vap
//
// where T_b is the solvent boiling point (converted to kelvin), M its
// molar mass (kg/mol) and ΔH_vap the molar heat of vaporization derived
// from latentJPerKg. Textbook tables quote Kb at the normal boiling
// point; evaluating at the current boiling temperature matters because
// of the T_b² dependence.
func EbullioscopicConstant(boilingPointC, molarMassKgPerMol, latentJPerKg float64) float64 {
	tb := kelvin(boilingPointC)
	if !finite(boilingPointC, molarMassKgPerMol, latentJPerKg) ||
		tb <= 0 || molarMassKgPerMol <= 0 || latentJPerKg <= 0 {
		return 0
	}
	molarLatent := latentJPerKg * molarMassKgPerMol // J/mol
	return GasConstant * tb * tb * molarMassKgPerMol / molarLatent
}

// BoilingPointElevation returns the boiling-point rise ΔT_b = Kb·b for a
// solution of molality b (mol solute per kg solvent).
func BoilingPointElevation(kb, molality float64) float64 {
	if !finite(kb, molality) || kb <= 0 || molality <= 0 {
		return 0
	}
	return kb * molality
}

// MolalityFromMassFraction converts the non-volatile mass fraction of a
// solution into molality, given the solute's molar mass. A fraction at or
// above 1 (no solvent left) yields zero.
func MolalityFromMassFraction(massFraction, soluteMolarMassKgPerMol float64) float64 {
	if !finite(massFraction, soluteMolarMassKgPerMol) ||
		massFraction <= 0 || massFraction >= 1 || soluteMolarMassKgPerMol <= 0 {
		return 0
	}
	return massFraction / (soluteMolarMassKgPerMol * (1 - massFraction))
}
