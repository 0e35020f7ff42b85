package fluid

// State is the mutable per-tick condition of one fluid. It is owned by
// the caller and passed by value; Step returns the successor.
type State struct {
	// MassKg is the total liquid mass remaining.
	MassKg float64 `json:"mass_kg"`

	// ResidueMassKg is the non-evaporable floor: dissolved solids and
	// anything else that stays behind. Always ≤ MassKg.
	ResidueMassKg float64 `json:"residue_mass_kg"`

	// TempC is the bulk liquid temperature.
	TempC float64 `json:"temp_c"`

	// AltitudeM is the experiment altitude, used to derive ambient
	// pressure when the caller does not supply one.
	AltitudeM float64 `json:"altitude_m"`
}

// EvaporableMass returns the mass that can still leave as vapor.
func (s State) EvaporableMass() float64 {
	if s.MassKg <= s.ResidueMassKg {
		return 0
	}
	return s.MassKg - s.ResidueMassKg
}

// Empty reports whether no fluid is present.
func (s State) Empty() bool { return s.MassKg <= 0 }

// Phase labels the thermal regime of a step result.
type Phase int

const (
	// PhaseIdle: no mass present, nothing to simulate.
	PhaseIdle Phase = iota

	// PhaseHeating: heater on, temperature below the boiling point.
	PhaseHeating

	// PhaseBoiling: at the boiling plateau, surplus energy converts mass
	// to vapor at constant temperature.
	PhaseBoiling

	// PhaseCooling: heater off, Newtonian decay toward ambient.
	PhaseCooling
)

// String returns the display name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseHeating:
		return "heating"
	case PhaseBoiling:
		return "boiling"
	case PhaseCooling:
		return "cooling"
	default:
		return "idle"
	}
}
