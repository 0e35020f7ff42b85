package fluid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quellen/simmer/internal/physics"
)

func waterProps() Properties {
	return Properties{
		Substance:            "water",
		SpecificHeat:         4186,
		LatentVaporization:   2.257e6,
		LatentFusion:         3.34e5,
		BoilingPointSeaLevel: 100,
		FreezingPoint:        0,
		AltitudeLapse:        0.00325,
		Antoine: &physics.AntoineCoefficients{
			A: 8.07131, B: 1730.63, C: 233.426,
			TminC: 1, TmaxC: 100,
		},
		Density:         997,
		MolarMass:       0.018015,
		DiffusionVolume: 12.7,
	}
}

func TestBoilingPointPrefersAntoine(t *testing.T) {
	bp := boilingPointAt(waterProps(), physics.SeaLevelPressure, 0)
	assert.Equal(t, SourceAntoine, bp.Source)
	assert.InDelta(t, 100, bp.TempC, 0.2)
	assert.False(t, bp.Extrapolated)
}

func TestBoilingPointLapseFallback(t *testing.T) {
	props := waterProps()
	props.Antoine = nil

	bp := boilingPointAt(props, physics.SeaLevelPressure, 2000)
	assert.Equal(t, SourceLapseRate, bp.Source)
	assert.InDelta(t, 93.5, bp.TempC, 1e-9)
}

func TestBoilingPointDropsWithAltitude(t *testing.T) {
	const altitude = 2000.0
	pressure := physics.PressureAtAltitude(altitude)
	bp := boilingPointAt(waterProps(), pressure, altitude)

	require.Equal(t, SourceAntoine, bp.Source)
	assert.Less(t, bp.TempC, 100.0)
	assert.Greater(t, bp.TempC, 90.0)
}

func TestBoilingPointNoneWithoutLatentHeat(t *testing.T) {
	props := waterProps()
	props.LatentVaporization = 0

	bp := boilingPointAt(props, physics.SeaLevelPressure, 0)
	assert.Equal(t, SourceNone, bp.Source)
	assert.True(t, math.IsNaN(bp.TempC))
}

func TestBoilingPointNoneWithoutAnyModel(t *testing.T) {
	props := waterProps()
	props.Antoine = nil
	props.BoilingPointSeaLevel = math.NaN()

	bp := boilingPointAt(props, physics.SeaLevelPressure, 0)
	assert.Equal(t, SourceNone, bp.Source)
}

func TestBoilingPointElevationForSolution(t *testing.T) {
	pure := boilingPointAt(waterProps(), physics.SeaLevelPressure, 0)

	brine := waterProps()
	brine.NonVolatileFraction = 0.035
	brine.SoluteMolarMass = 0.05844
	elevated := boilingPointAt(brine, physics.SeaLevelPressure, 0)

	assert.Greater(t, elevated.TempC, pure.TempC)
	assert.InDelta(t, 0.32, elevated.TempC-pure.TempC, 0.1)
}

func TestCanBoilInvariant(t *testing.T) {
	props := waterProps()
	assert.True(t, props.CanBoil())

	props.LatentVaporization = 0
	assert.False(t, props.CanBoil())

	props = waterProps()
	props.BoilingPointSeaLevel = math.NaN()
	assert.False(t, props.CanBoil())
}

func TestCoolingOptionDefaulting(t *testing.T) {
	assert.Equal(t, defaultCoolingCoefficient, DefaultCooling().Coefficient())
	assert.False(t, DefaultCooling().IsSet())

	measured := Cooling(0.0021)
	assert.True(t, measured.IsSet())
	assert.Equal(t, 0.0021, measured.Coefficient())
}
