package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensibleHeatLinearity(t *testing.T) {
	// Q/m must scale linearly with ΔT and with c.
	base := SensibleHeat(1, 4186, 10)
	assert.InDelta(t, 2*base, SensibleHeat(1, 4186, 20), 1e-9)
	assert.InDelta(t, 2*base, SensibleHeat(1, 2*4186, 10), 1e-9)
	assert.InDelta(t, 2*base, SensibleHeat(2, 4186, 10), 1e-9)

	perKg := SensibleHeat(3, 4186, 10) / 3
	assert.InDelta(t, base, perKg, 1e-9)
}

func TestSensibleHeatWater(t *testing.T) {
	// 1 kg of water heated 80 °C: 334,880 J.
	assert.InDelta(t, 334880, SensibleHeat(1, 4186, 80), 1e-6)
}

func TestSensibleHeatGuards(t *testing.T) {
	tests := []struct {
		name    string
		m, c, d float64
	}{
		{"zero mass", 0, 4186, 10},
		{"negative mass", -1, 4186, 10},
		{"zero specific heat", 1, 0, 10},
		{"nan mass", math.NaN(), 4186, 10},
		{"inf delta", 1, 4186, math.Inf(1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Zero(t, SensibleHeat(tc.m, tc.c, tc.d))
		})
	}
}

func TestTemperatureDeltaInverse(t *testing.T) {
	q := SensibleHeat(2.5, 4186, 13.7)
	assert.InDelta(t, 13.7, TemperatureDelta(q, 2.5, 4186), 1e-9)

	assert.Zero(t, TemperatureDelta(1000, 0, 4186))
	assert.Zero(t, TemperatureDelta(1000, 1, -5))
}

func TestLatentHeatRoundTrip(t *testing.T) {
	const lv = 2.257e6 // water, J/kg
	q := LatentHeat(0.5, lv)
	require.InDelta(t, 1.1285e6, q, 1)
	assert.InDelta(t, 0.5, MassFromLatentHeat(q, lv), 1e-12)
}

func TestLatentHeatGuards(t *testing.T) {
	assert.Zero(t, LatentHeat(-1, 2.257e6))
	assert.Zero(t, LatentHeat(1, 0))
	assert.Zero(t, MassFromLatentHeat(-10, 2.257e6))
	assert.Zero(t, MassFromLatentHeat(10, math.NaN()))
}
