// Package room implements the room-environment controller: an AC thermal
// PID loop and an air-handler composition loop sharing one environment,
// plus vapor injection, pressure leak, and the exposure monitor overlay.
//
// Like the fluid machine, every step is a pure transform — old state in,
// new state out — and the PID accumulators live inside the state value,
// not in package storage.
package room

import (
	"github.com/quellen/simmer/internal/physics"
)

// Composition maps species identifiers to volume fractions. Fractions
// are non-negative and sum to ≈1 after each mixing step.
type Composition map[string]float64

// Clone returns an independent copy.
func (c Composition) Clone() Composition {
	out := make(Composition, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// CleanAir is the baseline atmosphere used as the default mixing target.
func CleanAir() Composition {
	return Composition{
		"n2":  0.7808,
		"o2":  0.2095,
		"ar":  0.0093,
		"co2": 0.0004,
	}
}

// EnergyTotals accumulates equipment energy use across the run, joules.
type EnergyTotals struct {
	ACHeatingJ   float64 `json:"ac_heating_j"`
	ACCoolingJ   float64 `json:"ac_cooling_j"`
	AirHandlerJ  float64 `json:"air_handler_j"`
	BurnerWasteJ float64 `json:"burner_waste_j"`
}

// State is the full room condition, advanced one tick at a time by Step.
type State struct {
	// TempC is the bulk air temperature.
	TempC float64 `json:"temp_c"`

	// PressurePa is the total room pressure.
	PressurePa float64 `json:"pressure_pa"`

	// Composition is the current atmosphere by volume fraction.
	Composition Composition `json:"composition"`

	// TargetComposition is the baseline atmosphere the air handler
	// restores toward.
	TargetComposition Composition `json:"target_composition"`

	// ACSetpointC and ACEnabled drive the thermal loop.
	ACSetpointC float64 `json:"ac_setpoint_c"`
	ACEnabled   bool    `json:"ac_enabled"`

	// ACPid is the thermal loop accumulator, threaded through each tick.
	ACPid physics.PidState `json:"ac_pid"`

	// AirHandlerMode selects a named flow level ("off", "low", ...).
	AirHandlerMode string `json:"air_handler_mode"`

	// AirHandlerPid is reserved for continuous air-handler control; the
	// discrete-mode configuration leaves it untouched but it follows the
	// same explicit-threading rule as the AC loop.
	AirHandlerPid physics.PidState `json:"air_handler_pid"`

	// Energy accumulates equipment totals.
	Energy EnergyTotals `json:"energy"`

	// Exposures is the event log maintained by the monitor overlay.
	Exposures []ExposureEvent `json:"exposures"`

	// Alerts holds the advisory alerts raised this tick.
	Alerts []Alert `json:"alerts"`
}

// Clone returns a deep copy of the state, so a step can build its
// successor without touching the caller's value.
func (s State) Clone() State {
	out := s
	out.Composition = s.Composition.Clone()
	out.TargetComposition = s.TargetComposition.Clone()
	out.Exposures = append([]ExposureEvent(nil), s.Exposures...)
	out.Alerts = append([]Alert(nil), s.Alerts...)
	return out
}

// PressureMode selects how the initial room pressure is derived.
type PressureMode int

const (
	// PressureSeaLevel uses the standard atmosphere.
	PressureSeaLevel PressureMode = iota

	// PressureCustom uses a configured absolute value.
	PressureCustom

	// PressureFromAltitude derives pressure from a configured altitude
	// via the barometric model.
	PressureFromAltitude
)

// NewState builds the starting room condition for an experiment.
func NewState(tempC float64, mode PressureMode, customPa, altitudeM float64) State {
	pressure := physics.SeaLevelPressure
	switch mode {
	case PressureCustom:
		if customPa > 0 {
			pressure = customPa
		}
	case PressureFromAltitude:
		pressure = physics.PressureAtAltitude(altitudeM)
	}

	return State{
		TempC:             tempC,
		PressurePa:        pressure,
		Composition:       CleanAir(),
		TargetComposition: CleanAir(),
		ACSetpointC:       tempC,
		AirHandlerMode:    "off",
	}
}
