package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPressureAtSeaLevel(t *testing.T) {
	assert.Equal(t, SeaLevelPressure, PressureAtAltitude(0))
}

func TestPressureStrictlyDecreasesWithAltitude(t *testing.T) {
	prev := PressureAtAltitude(0)
	for alt := 100.0; alt <= 10000; alt += 100 {
		p := PressureAtAltitude(alt)
		require.Less(t, p, prev, "pressure must fall with altitude at %.0f m", alt)
		prev = p
	}
}

func TestPressureKnownAltitudes(t *testing.T) {
	// ISA reference values.
	assert.InDelta(t, 89875, PressureAtAltitude(1000), 300)
	assert.InDelta(t, 54020, PressureAtAltitude(5000), 500)
}

func TestAirDensityStandardConditions(t *testing.T) {
	// ~1.204 kg/m³ at 20 °C and one atmosphere.
	rho := AirDensity(20, SeaLevelPressure)
	assert.InDelta(t, 1.204, rho, 0.005)

	assert.Zero(t, AirDensity(-300, SeaLevelPressure))
	assert.Zero(t, AirDensity(20, 0))
}

func TestEbullioscopicConstantWater(t *testing.T) {
	// Water at its normal boiling point: Kb ≈ 0.513 (°C·kg)/mol.
	kb := EbullioscopicConstant(100, 0.018015, 2.257e6)
	assert.InDelta(t, 0.513, kb, 0.01)
}

func TestBoilingPointElevationSaltWater(t *testing.T) {
	// Seawater-like brine: 3.5% NaCl by mass (~0.6 mol/kg against NaCl's
	// 58.44 g/mol formula mass).
	molality := MolalityFromMassFraction(0.035, 0.05844)
	require.InDelta(t, 0.62, molality, 0.01)

	kb := EbullioscopicConstant(100, 0.018015, 2.257e6)
	elevation := BoilingPointElevation(kb, molality)
	assert.Greater(t, elevation, 0.2)
	assert.Less(t, elevation, 0.5)
}

func TestMolalityEdgeFractions(t *testing.T) {
	assert.Zero(t, MolalityFromMassFraction(0, 0.05844))
	assert.Zero(t, MolalityFromMassFraction(1, 0.05844))
	assert.Zero(t, MolalityFromMassFraction(0.5, 0))
}
