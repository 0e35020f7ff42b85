package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanAir() map[string]float64 {
	return map[string]float64{"n2": 0.7808, "o2": 0.2095, "ar": 0.0093, "co2": 0.0004}
}

func TestMixFraction(t *testing.T) {
	assert.InDelta(t, 0.1, MixFraction(0.5, 10, 50), 1e-9)
	// Capped at a full exchange.
	assert.Equal(t, 1.0, MixFraction(100, 10, 50))
	assert.Zero(t, MixFraction(0, 10, 50))
	assert.Zero(t, MixFraction(0.5, 10, 0))
}

func TestMixTowardMovesTowardTarget(t *testing.T) {
	current := cleanAir()
	current["co2"] = 0.05
	current["n2"] = 0.7312

	mixed, changes := MixToward(current, cleanAir(), 0.2, nil, 1.0)
	assert.Less(t, mixed["co2"], current["co2"])
	assert.Greater(t, mixed["n2"], current["n2"])
	assert.Negative(t, changes["co2"])
}

func TestMixTowardPerSpeciesEfficiency(t *testing.T) {
	current := map[string]float64{"co2": 0.02, "voc": 0.02}
	target := map[string]float64{"co2": 0, "voc": 0}
	eff := map[string]float64{"voc": 0.4}

	mixed, _ := MixToward(current, target, 0.5, eff, 0.8)
	// Gas-phase filter at 80% default pulls CO₂ harder than the 40%
	// override pulls VOCs.
	assert.Less(t, mixed["co2"], mixed["voc"])
	assert.InDelta(t, 0.02*(1-0.5*0.8), mixed["co2"], 1e-9)
	assert.InDelta(t, 0.02*(1-0.5*0.4), mixed["voc"], 1e-9)
}

func TestMixTowardConservesSumAgainstEqualTarget(t *testing.T) {
	// Mixing toward a target with the same total keeps the total.
	current := cleanAir()
	current["co2"] = 0.0504
	current["n2"] = 0.7308

	before := CompositionSum(current)
	mixed, _ := MixToward(current, cleanAir(), 0.35, nil, 1.0)
	require.InDelta(t, before, CompositionSum(mixed), 1e-9)
}

func TestRenormalizeInvariant(t *testing.T) {
	comp := map[string]float64{"n2": 1.4, "o2": 0.4, "h2o": 0.2}
	norm := Renormalize(comp)
	assert.InDelta(t, 1.0, CompositionSum(norm), 1e-12)
	// Ratios preserved.
	assert.InDelta(t, 3.5, norm["n2"]/norm["o2"], 1e-9)
}

func TestRenormalizeDegenerate(t *testing.T) {
	empty := map[string]float64{}
	assert.Equal(t, empty, Renormalize(empty))

	zeros := map[string]float64{"n2": 0}
	assert.Equal(t, zeros, Renormalize(zeros))
}
