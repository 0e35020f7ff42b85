package room

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/quellen/simmer/internal/physics"
)

// AirHandlerResult is the outcome of one composition-loop evaluation.
type AirHandlerResult struct {
	// NewComposition is the atmosphere after mixing.
	NewComposition Composition

	// Changes holds the per-species deltas applied this tick.
	Changes map[string]float64

	// Pid is the successor accumulator state (untouched in discrete-mode
	// operation, threaded for symmetry with the AC loop).
	Pid physics.PidState

	// FlowM3PerS is the combined airflow used for mixing.
	FlowM3PerS float64

	// AirChangesPerHour expresses that flow relative to room volume.
	AirChangesPerHour float64

	// Status is a short human-readable summary for display.
	Status string
}

// AirHandlerEffect evaluates the composition loop for one tick. The
// handler operates in discrete named modes; when active, its flow plus
// the AC's own baseline circulation mixes the current composition toward
// the target, with per-species filtration efficiency.
func AirHandlerEffect(comp, target Composition, cfg AirHandlerConfig, pid physics.PidState, dt, roomVolumeM3 float64, mode string, acBaselineFlow float64) AirHandlerResult {
	res := AirHandlerResult{NewComposition: comp.Clone(), Pid: pid, Status: "off"}
	if dt <= 0 || roomVolumeM3 <= 0 {
		return res
	}

	fraction := cfg.Modes[mode] // unknown mode reads as zero: off
	handlerFlow := fraction * cfg.MaxFlowM3PerS
	combined := handlerFlow + acBaselineFlow
	if combined <= 0 {
		return res
	}

	mix := physics.MixFraction(combined, dt, roomVolumeM3)
	mixed, changes := physics.MixToward(comp, target, mix, cfg.FiltrationEfficiency, DefaultFiltrationEfficiency)

	res.NewComposition = mixed
	res.Changes = changes
	res.FlowM3PerS = combined
	res.AirChangesPerHour = combined * 3600 / roomVolumeM3
	if fraction > 0 {
		res.Status = fmt.Sprintf("%s (%s/s, %.1f ACH)", mode,
			humanize.SIWithDigits(combined, 2, "m³"), res.AirChangesPerHour)
	} else {
		res.Status = fmt.Sprintf("circulation only (%.1f ACH)", res.AirChangesPerHour)
	}
	return res
}
