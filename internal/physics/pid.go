package physics

import "time"

// PidGains holds the proportional, integral, and derivative gains of a
// control loop.
type PidGains struct {
	Kp float64 `yaml:"kp" json:"kp"`
	Ki float64 `yaml:"ki" json:"ki"`
	Kd float64 `yaml:"kd" json:"kd"`
}

// PidState is the accumulated state of one PID loop. It is a plain value
// owned by the caller and threaded through every update — there is no
// hidden module-level accumulator. Reset it only on explicit operator
// action such as a mode change.
type PidState struct {
	// Integral is the accumulated error·dt sum.
	Integral float64 `json:"integral"`

	// PrevError is the error from the previous update, used for the
	// derivative term.
	PrevError float64 `json:"prev_error"`

	// LastOutput is the last commanded output after response lag, in the
	// normalized [−1, +1] range.
	LastOutput float64 `json:"last_output"`

	// LastUpdate is diagnostic only; it never feeds back into the
	// computation, keeping updates deterministic.
	LastUpdate time.Time `json:"last_update"`
}

// Reset clears the accumulator and error history, preserving nothing.
func (s *PidState) Reset() {
	*s = PidState{}
}

// PidUpdate advances one discrete PID step and returns the control output
// normalized to [−1, +1] along with the successor state.
//
// Within the deadband the output is suppressed to zero and the integral
// is held, preventing hunting around the setpoint. Anti-windup is by
// conditional integration: the accumulator only moves while the unclamped
// output is inside the output range, so a long saturated approach cannot
// wind the integral up and punch through the setpoint on arrival.
func PidUpdate(state PidState, gains PidGains, errValue, dt, deadband float64) (float64, PidState) {
	next := state
	if !finite(errValue, dt) || dt <= 0 {
		return 0, next
	}

	if deadband > 0 && errValue > -deadband && errValue < deadband {
		next.PrevError = errValue
		return 0, next
	}

	derivative := (errValue - state.PrevError) / dt
	integral := state.Integral + errValue*dt

	raw := gains.Kp*errValue + gains.Ki*integral + gains.Kd*derivative
	if raw >= -1 && raw <= 1 {
		next.Integral = integral
	}

	next.PrevError = errValue
	return clamp(raw, -1, 1), next
}
