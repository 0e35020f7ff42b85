package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quellen/simmer/internal/room"
)

const kettleScenario = `
name: kettle-bench
fluid:
  substance: water
  specific_heat_j_per_kg_c: 4186
  latent_vaporization_j_per_kg: 2.257e6
  boiling_point_sea_level_c: 100
  altitude_lapse_c_per_m: 0.00325
  antoine:
    a: 8.07131
    b: 1730.63
    c: 233.426
    tmin_c: 1
    tmax_c: 100
  density_kg_per_m3: 997
  molar_mass_kg_per_mol: 0.018015
  diffusion_volume: 12.7
charge:
  mass_kg: 1.0
  temp_c: 20
burner:
  watts: 1700
  on: true
  surface_area_m2: 0.03
room:
  volume_m3: 50
  temp_c: 22
  leak_rate_per_s: 0.0005
ac:
  enabled: true
  setpoint_c: 21
  cooling_max_watts: 5000
  heating_max_watts: 5000
  deadband_c: 0.5
  response_time_s: 10
  gains_preset: balanced
  max_rate_c_per_s: 1
  baseline_flow_m3_per_s: 0.05
air_handler:
  max_flow_m3_per_s: 0.5
  mode: low
  fan_watts_max: 400
thresholds:
  co2:
    warning_ppm: 1000
    danger_ppm: 5000
    critical_ppm: 40000
    filterable: true
outdoor:
  seed: 7
  base_temp_c: 15
  swing_c: 5
  period_s: 3600
engine:
  tick_interval_ms: 250
  speed: 4
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadKettleScenario(t *testing.T) {
	s, err := Load(writeScenario(t, kettleScenario))
	require.NoError(t, err)

	assert.Equal(t, "kettle-bench", s.Name)
	assert.Equal(t, "water", s.Fluid.Substance)
	assert.Equal(t, 4.0, s.Engine.Speed)
	assert.Equal(t, 250, s.Engine.TickIntervalMs)
	assert.Equal(t, "low", s.AirHandler.Mode)
	require.Contains(t, s.Thresholds, "co2")
	assert.True(t, s.Thresholds["co2"].Filterable)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefaultsApplied(t *testing.T) {
	s, err := Load(writeScenario(t, `
fluid:
  substance: water
  specific_heat_j_per_kg_c: 4186
room:
  volume_m3: 10
`))
	require.NoError(t, err)

	assert.Equal(t, "unnamed", s.Name)
	assert.Equal(t, 1.0, s.Burner.Efficiency)
	assert.Equal(t, "sea_level", s.Room.PressureMode)
	assert.Equal(t, "off", s.AirHandler.Mode)
	assert.Equal(t, room.DefaultModes(), s.AirHandler.Modes)
	assert.Equal(t, 1000, s.Engine.TickIntervalMs)
	assert.Equal(t, 1.0, s.Engine.Speed)
}

func TestValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no substance", `
fluid:
  specific_heat_j_per_kg_c: 4186
room:
  volume_m3: 10
`},
		{"zero volume", `
fluid:
  substance: water
  specific_heat_j_per_kg_c: 4186
room:
  volume_m3: 0
`},
		{"bad pressure mode", `
fluid:
  substance: water
  specific_heat_j_per_kg_c: 4186
room:
  volume_m3: 10
  pressure_mode: vacuum
`},
		{"unordered thresholds", `
fluid:
  substance: water
  specific_heat_j_per_kg_c: 4186
room:
  volume_m3: 10
thresholds:
  co2:
    warning_ppm: 5000
    danger_ppm: 1000
    critical_ppm: 40000
`},
		{"unknown air handler mode", `
fluid:
  substance: water
  specific_heat_j_per_kg_c: 4186
room:
  volume_m3: 10
air_handler:
  mode: turbo
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeScenario(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestPropertiesConversion(t *testing.T) {
	s, err := Load(writeScenario(t, kettleScenario))
	require.NoError(t, err)

	p := s.Properties()
	assert.Equal(t, "water", p.Substance)
	assert.Equal(t, 100.0, p.BoilingPointSeaLevel)
	require.NotNil(t, p.Antoine)
	assert.InDelta(t, 8.07131, p.Antoine.A, 1e-9)
	assert.False(t, p.Cooling.IsSet(), "no cooling coefficient configured")
	assert.True(t, p.Valid())
	assert.True(t, p.CanBoil())
}

// A record with no boiling point at all converts to NaN, which the fluid
// machine reads as "cannot boil".
func TestPropertiesNoBoilingPoint(t *testing.T) {
	s, err := Load(writeScenario(t, `
fluid:
  substance: mystery-oil
  specific_heat_j_per_kg_c: 1900
  cooling_coefficient_per_s: 0.002
room:
  volume_m3: 10
`))
	require.NoError(t, err)

	p := s.Properties()
	assert.True(t, math.IsNaN(p.BoilingPointSeaLevel))
	assert.False(t, p.CanBoil())
	assert.True(t, p.Cooling.IsSet())
	assert.InDelta(t, 0.002, p.Cooling.Coefficient(), 1e-12)
}

func TestBuildExperiment(t *testing.T) {
	s, err := Load(writeScenario(t, kettleScenario))
	require.NoError(t, err)

	e := s.BuildExperiment()
	require.NotNil(t, e)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "kettle-bench", e.Name)
	assert.Equal(t, 1.0, e.Fluid.MassKg)
	assert.True(t, e.HeaterOn)
	assert.Equal(t, 1700.0, e.HeaterWatts)
	assert.True(t, e.Room.ACEnabled)
	assert.Equal(t, 21.0, e.Room.ACSetpointC)
	assert.Equal(t, 50.0, e.RoomCfg.VolumeM3)
	assert.NotNil(t, e.Outdoor)
	assert.Contains(t, e.Thresholds, "co2")

	// The experiment must be steppable straight out of the loader.
	e.TickOnce(1, 1.0)
	assert.Equal(t, uint64(1), e.CurrentTick())

	// Outdoor drift field refreshed the envelope's ambient values.
	assert.InDelta(t, 15.0, e.RoomCfg.AmbientTempC, 5.0)
}

func TestExplicitGainsOverridePreset(t *testing.T) {
	s, err := Load(writeScenario(t, `
fluid:
  substance: water
  specific_heat_j_per_kg_c: 4186
room:
  volume_m3: 10
ac:
  gains_preset: aggressive
  gains:
    kp: 0.55
    ki: 0.003
    kd: 0.08
`))
	require.NoError(t, err)

	ac := s.ACConfig()
	assert.InDelta(t, 0.55, ac.Gains.Kp, 1e-12)
	assert.InDelta(t, 0.003, ac.Gains.Ki, 1e-12)
	assert.InDelta(t, 0.08, ac.Gains.Kd, 1e-12)
}
