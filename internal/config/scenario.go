// Package config loads and validates YAML scenario files.
//
// A scenario is a single YAML document describing one bench setup: the
// fluid and its thermophysical record, the initial charge, the burner,
// the room baseline with its AC and air-handler configuration, exposure
// thresholds, outdoor drift, and engine pacing. Loading applies defaults
// and rejects records the simulation could not run safely.
package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quellen/simmer/internal/ambient"
	"github.com/quellen/simmer/internal/engine"
	"github.com/quellen/simmer/internal/fluid"
	"github.com/quellen/simmer/internal/physics"
	"github.com/quellen/simmer/internal/room"
)

// AntoineSpec holds saturation-curve coefficients in the mmHg/Celsius
// convention, with the verified temperature range.
type AntoineSpec struct {
	A     float64 `yaml:"a"`
	B     float64 `yaml:"b"`
	C     float64 `yaml:"c"`
	TminC float64 `yaml:"tmin_c"`
	TmaxC float64 `yaml:"tmax_c"`
}

// FluidSpec is the YAML form of a substance's thermophysical record.
// Optional fields are pointers so absence is distinguishable from zero.
type FluidSpec struct {
	Substance                string       `yaml:"substance"`
	SpecificHeatJPerKgC      float64      `yaml:"specific_heat_j_per_kg_c"`
	LatentVaporizationJPerKg float64      `yaml:"latent_vaporization_j_per_kg"`
	LatentFusionJPerKg       float64      `yaml:"latent_fusion_j_per_kg"`
	BoilingPointSeaLevelC    *float64     `yaml:"boiling_point_sea_level_c,omitempty"`
	FreezingPointC           float64      `yaml:"freezing_point_c"`
	AltitudeLapseCPerM       float64      `yaml:"altitude_lapse_c_per_m"`
	Antoine                  *AntoineSpec `yaml:"antoine,omitempty"`
	DensityKgPerM3           float64      `yaml:"density_kg_per_m3"`
	CoolingCoefficientPerS   *float64     `yaml:"cooling_coefficient_per_s,omitempty"`
	NonVolatileFraction      float64      `yaml:"non_volatile_fraction"`
	SoluteMolarMassKgPerMol  float64      `yaml:"solute_molar_mass_kg_per_mol"`
	MolarMassKgPerMol        float64      `yaml:"molar_mass_kg_per_mol"`
	DiffusionVolume          float64      `yaml:"diffusion_volume"`
}

// ChargeSpec is the initial fluid load.
type ChargeSpec struct {
	MassKg    float64 `yaml:"mass_kg"`
	TempC     float64 `yaml:"temp_c"`
	AltitudeM float64 `yaml:"altitude_m"`
}

// BurnerSpec configures the heat source under the fluid.
type BurnerSpec struct {
	Watts         float64 `yaml:"watts"`
	Efficiency    float64 `yaml:"efficiency"`
	On            bool    `yaml:"on"`
	SurfaceAreaM2 float64 `yaml:"surface_area_m2"`
}

// RoomSpec is the room baseline and envelope.
type RoomSpec struct {
	VolumeM3 float64 `yaml:"volume_m3"`
	TempC    float64 `yaml:"temp_c"`

	// PressureMode is "sea_level", "custom", or "altitude".
	PressureMode string  `yaml:"pressure_mode"`
	PressurePa   float64 `yaml:"pressure_pa"`
	AltitudeM    float64 `yaml:"altitude_m"`

	LeakRatePerS float64 `yaml:"leak_rate_per_s"`
	WallLossPerS float64 `yaml:"wall_loss_per_s"`
}

// ACSpec configures the thermostat loop.
type ACSpec struct {
	Enabled            bool              `yaml:"enabled"`
	SetpointC          float64           `yaml:"setpoint_c"`
	CoolingMaxWatts    float64           `yaml:"cooling_max_watts"`
	HeatingMaxWatts    float64           `yaml:"heating_max_watts"`
	DeadbandC          float64           `yaml:"deadband_c"`
	ResponseTimeS      float64           `yaml:"response_time_s"`
	GainsPreset        string            `yaml:"gains_preset"`
	Gains              *physics.PidGains `yaml:"gains,omitempty"`
	MaxRateCPerS       float64           `yaml:"max_rate_c_per_s"`
	BaselineFlowM3PerS float64           `yaml:"baseline_flow_m3_per_s"`
}

// AirHandlerSpec configures the ventilation loop.
type AirHandlerSpec struct {
	MaxFlowM3PerS float64            `yaml:"max_flow_m3_per_s"`
	Mode          string             `yaml:"mode"`
	Modes         map[string]float64 `yaml:"modes,omitempty"`

	// FiltrationEfficiency lists per-species capture overrides; species
	// not named fall back to the room package default.
	FiltrationEfficiency map[string]float64 `yaml:"filtration_efficiency,omitempty"`
	FanWattsMax          float64            `yaml:"fan_watts_max"`
}

// ThresholdSpec grades a species' concentration into severity tiers.
type ThresholdSpec struct {
	WarningPPM  float64 `yaml:"warning_ppm"`
	DangerPPM   float64 `yaml:"danger_ppm"`
	CriticalPPM float64 `yaml:"critical_ppm"`
	Filterable  bool    `yaml:"filterable"`
}

// EngineSpec paces the simulation loop.
type EngineSpec struct {
	TickIntervalMs int     `yaml:"tick_interval_ms"`
	Speed          float64 `yaml:"speed"`
}

// Scenario is one complete bench setup loaded from YAML.
type Scenario struct {
	Name       string                   `yaml:"name"`
	Fluid      FluidSpec                `yaml:"fluid"`
	Charge     ChargeSpec               `yaml:"charge"`
	Burner     BurnerSpec               `yaml:"burner"`
	Room       RoomSpec                 `yaml:"room"`
	AC         ACSpec                   `yaml:"ac"`
	AirHandler AirHandlerSpec           `yaml:"air_handler"`
	Thresholds map[string]ThresholdSpec `yaml:"thresholds,omitempty"`
	Outdoor    *ambient.Config          `yaml:"outdoor,omitempty"`
	Engine     EngineSpec               `yaml:"engine"`
}

// Load reads, parses, defaults, and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	s.applyDefaults()
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) applyDefaults() {
	if s.Name == "" {
		s.Name = "unnamed"
	}
	if s.Burner.Efficiency <= 0 || s.Burner.Efficiency > 1 {
		s.Burner.Efficiency = 1.0
	}
	if s.Room.PressureMode == "" {
		s.Room.PressureMode = "sea_level"
	}
	if s.AirHandler.Modes == nil {
		s.AirHandler.Modes = room.DefaultModes()
	}
	if s.AirHandler.Mode == "" {
		s.AirHandler.Mode = "off"
	}
	if s.Engine.TickIntervalMs <= 0 {
		s.Engine.TickIntervalMs = 1000
	}
	if s.Engine.Speed <= 0 {
		s.Engine.Speed = 1.0
	}
}

func (s *Scenario) validate() error {
	if s.Fluid.Substance == "" {
		return fmt.Errorf("fluid: substance name is required")
	}
	if s.Fluid.SpecificHeatJPerKgC <= 0 {
		return fmt.Errorf("fluid %s: specific heat must be positive", s.Fluid.Substance)
	}
	if s.Fluid.NonVolatileFraction < 0 || s.Fluid.NonVolatileFraction >= 1 {
		return fmt.Errorf("fluid %s: non_volatile_fraction must be in [0, 1)", s.Fluid.Substance)
	}
	if s.Charge.MassKg < 0 {
		return fmt.Errorf("charge: mass_kg must not be negative")
	}
	if s.Room.VolumeM3 <= 0 {
		return fmt.Errorf("room: volume_m3 must be positive")
	}
	switch s.Room.PressureMode {
	case "sea_level", "custom", "altitude":
	default:
		return fmt.Errorf("room: unknown pressure_mode %q", s.Room.PressureMode)
	}
	if s.Room.PressureMode == "custom" && s.Room.PressurePa <= 0 {
		return fmt.Errorf("room: custom pressure_mode requires pressure_pa")
	}
	if _, ok := s.AirHandler.Modes[s.AirHandler.Mode]; !ok {
		return fmt.Errorf("air_handler: mode %q is not in the mode table", s.AirHandler.Mode)
	}
	for sp, th := range s.Thresholds {
		if th.WarningPPM <= 0 || th.DangerPPM <= th.WarningPPM || th.CriticalPPM <= th.DangerPPM {
			return fmt.Errorf("thresholds %s: tiers must satisfy 0 < warning < danger < critical", sp)
		}
	}
	return nil
}

// Properties converts the YAML record into the fluid machine's form. An
// absent boiling point becomes NaN, marking a substance with no lapse
// fallback.
func (s *Scenario) Properties() fluid.Properties {
	f := s.Fluid
	p := fluid.Properties{
		Substance:           f.Substance,
		SpecificHeat:        f.SpecificHeatJPerKgC,
		LatentVaporization:  f.LatentVaporizationJPerKg,
		LatentFusion:        f.LatentFusionJPerKg,
		FreezingPoint:       f.FreezingPointC,
		AltitudeLapse:       f.AltitudeLapseCPerM,
		Density:             f.DensityKgPerM3,
		NonVolatileFraction: f.NonVolatileFraction,
		SoluteMolarMass:     f.SoluteMolarMassKgPerMol,
		MolarMass:           f.MolarMassKgPerMol,
		DiffusionVolume:     f.DiffusionVolume,
	}
	if f.BoilingPointSeaLevelC != nil {
		p.BoilingPointSeaLevel = *f.BoilingPointSeaLevelC
	} else {
		p.BoilingPointSeaLevel = math.NaN()
	}
	if f.Antoine != nil {
		p.Antoine = &physics.AntoineCoefficients{
			A: f.Antoine.A, B: f.Antoine.B, C: f.Antoine.C,
			TminC: f.Antoine.TminC, TmaxC: f.Antoine.TmaxC,
		}
	}
	if f.CoolingCoefficientPerS != nil {
		p.Cooling = fluid.Cooling(*f.CoolingCoefficientPerS)
	} else {
		p.Cooling = fluid.DefaultCooling()
	}
	return p
}

// RoomState builds the initial room condition.
func (s *Scenario) RoomState() room.State {
	mode := room.PressureSeaLevel
	switch s.Room.PressureMode {
	case "custom":
		mode = room.PressureCustom
	case "altitude":
		mode = room.PressureFromAltitude
	}
	st := room.NewState(s.Room.TempC, mode, s.Room.PressurePa, s.Room.AltitudeM)
	st.ACEnabled = s.AC.Enabled
	st.ACSetpointC = s.AC.SetpointC
	if s.AC.SetpointC == 0 && !s.AC.Enabled {
		st.ACSetpointC = s.Room.TempC
	}
	st.AirHandlerMode = s.AirHandler.Mode
	return st
}

// RoomConfig builds the room envelope configuration. Outdoor conditions
// start from the scenario and are refreshed each tick when a drift field
// is configured.
func (s *Scenario) RoomConfig() room.Config {
	ambientTemp := s.Room.TempC
	ambientPressure := physics.SeaLevelPressure
	if s.Outdoor != nil {
		ambientTemp = s.Outdoor.BaseTempC
		ambientPressure = physics.PressureAtAltitude(s.Outdoor.AltitudeM)
	}
	return room.Config{
		VolumeM3:          s.Room.VolumeM3,
		LeakRatePerS:      s.Room.LeakRatePerS,
		AmbientTempC:      ambientTemp,
		AmbientPressurePa: ambientPressure,
		WallLossPerS:      s.Room.WallLossPerS,
	}
}

// ACConfig builds the thermostat configuration. Explicit gains override
// the named preset.
func (s *Scenario) ACConfig() room.ACConfig {
	gains := room.PresetGains(s.AC.GainsPreset)
	if s.AC.Gains != nil {
		gains = *s.AC.Gains
	}
	return room.ACConfig{
		CoolingMaxWatts:    s.AC.CoolingMaxWatts,
		HeatingMaxWatts:    s.AC.HeatingMaxWatts,
		DeadbandC:          s.AC.DeadbandC,
		ResponseTimeS:      s.AC.ResponseTimeS,
		Gains:              gains,
		MaxRateCPerS:       s.AC.MaxRateCPerS,
		BaselineFlowM3PerS: s.AC.BaselineFlowM3PerS,
	}
}

// AirHandlerConfig builds the ventilation configuration.
func (s *Scenario) AirHandlerConfig() room.AirHandlerConfig {
	return room.AirHandlerConfig{
		MaxFlowM3PerS:        s.AirHandler.MaxFlowM3PerS,
		Modes:                s.AirHandler.Modes,
		FiltrationEfficiency: s.AirHandler.FiltrationEfficiency,
		FanWattsMax:          s.AirHandler.FanWattsMax,
	}
}

// ThresholdMap converts the YAML thresholds to the monitor's form.
func (s *Scenario) ThresholdMap() map[string]room.Thresholds {
	if len(s.Thresholds) == 0 {
		return nil
	}
	out := make(map[string]room.Thresholds, len(s.Thresholds))
	for sp, th := range s.Thresholds {
		out[sp] = room.Thresholds{
			WarningPPM:  th.WarningPPM,
			DangerPPM:   th.DangerPPM,
			CriticalPPM: th.CriticalPPM,
			Filterable:  th.Filterable,
		}
	}
	return out
}

// TickInterval returns the engine's base tick interval.
func (s *Scenario) TickInterval() time.Duration {
	return time.Duration(s.Engine.TickIntervalMs) * time.Millisecond
}

// BuildEngine paces an engine per the scenario.
func (s *Scenario) BuildEngine() *engine.Engine {
	eng := engine.NewEngine()
	eng.Interval = s.TickInterval()
	eng.Speed = s.Engine.Speed
	return eng
}

// BuildExperiment assembles a runnable experiment from the scenario.
func (s *Scenario) BuildExperiment() *engine.Experiment {
	e := engine.NewExperiment(s.Name, s.Properties(), fluid.State{
		MassKg:    s.Charge.MassKg,
		TempC:     s.Charge.TempC,
		AltitudeM: s.Charge.AltitudeM,
	}, s.RoomState())

	e.HeaterWatts = s.Burner.Watts
	e.HeaterOn = s.Burner.On
	e.BurnerEfficiency = s.Burner.Efficiency
	e.SurfaceAreaM2 = s.Burner.SurfaceAreaM2

	e.RoomCfg = s.RoomConfig()
	e.ACCfg = s.ACConfig()
	e.AirCfg = s.AirHandlerConfig()
	e.Thresholds = s.ThresholdMap()

	if s.Outdoor != nil {
		e.Outdoor = ambient.NewField(*s.Outdoor)
	}
	return e
}
