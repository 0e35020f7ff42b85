package room

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/quellen/simmer/internal/physics"
)

// ACResult is the outcome of one thermal-loop evaluation.
type ACResult struct {
	// NewTempC is the room temperature after applying the unit's output.
	NewTempC float64

	// PowerPercent is the commanded output after lag, −100..100 (sign
	// selects cooling vs heating).
	PowerPercent float64

	// HeatOutputWatts is the signed thermal power delivered to the room.
	HeatOutputWatts float64

	// Pid is the successor accumulator state.
	Pid physics.PidState

	// Status is a short human-readable summary for display.
	Status string
}

// ACEffect evaluates the AC thermal loop for one tick: PID on the
// setpoint error, deadband suppression, first-order response lag against
// the previous command, conversion to a temperature delta through the
// room's air mass, and a slew-rate clamp.
func ACEffect(roomTempC, setpointC float64, cfg ACConfig, pid physics.PidState, dt, roomVolumeM3 float64) ACResult {
	res := ACResult{NewTempC: roomTempC, Pid: pid, Status: "off"}
	if dt <= 0 || roomVolumeM3 <= 0 ||
		math.IsNaN(roomTempC) || math.IsInf(roomTempC, 0) || math.IsNaN(setpointC) {
		return res
	}

	errValue := setpointC - roomTempC
	out, nextPid := physics.PidUpdate(pid, cfg.Gains, errValue, dt, cfg.DeadbandC)

	// Response lag: the command blends toward the new output instead of
	// jumping, with time constant ResponseTimeS.
	alpha := 1.0
	if cfg.ResponseTimeS > 0 {
		alpha = dt / (cfg.ResponseTimeS + dt)
	}
	lagged := pid.LastOutput + (out-pid.LastOutput)*alpha
	nextPid.LastOutput = lagged

	var watts float64
	if lagged > 0 {
		watts = lagged * cfg.HeatingMaxWatts
	} else {
		watts = lagged * cfg.CoolingMaxWatts
	}

	airMass := roomVolumeM3 * physics.AirDensity(roomTempC, physics.SeaLevelPressure)
	delta := physics.TemperatureDelta(watts*dt, airMass, physics.AirSpecificHeat)
	if cfg.MaxRateCPerS > 0 {
		delta = math.Max(-cfg.MaxRateCPerS*dt, math.Min(cfg.MaxRateCPerS*dt, delta))
	}

	res.NewTempC = roomTempC + delta
	res.PowerPercent = lagged * 100
	res.HeatOutputWatts = watts
	res.Pid = nextPid
	res.Status = acStatus(lagged, watts, errValue, cfg.DeadbandC)
	return res
}

func acStatus(output, watts, errValue, deadband float64) string {
	switch {
	case math.Abs(errValue) < deadband && math.Abs(output) < 0.01:
		return "idle (within deadband)"
	case output > 0.005:
		return fmt.Sprintf("heating at %.0f%% (%s)", output*100, humanize.SIWithDigits(watts, 1, "W"))
	case output < -0.005:
		return fmt.Sprintf("cooling at %.0f%% (%s)", -output*100, humanize.SIWithDigits(-watts, 1, "W"))
	default:
		return "idle"
	}
}
