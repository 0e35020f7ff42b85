package room

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Severity grades an exposure against its threshold tiers.
type Severity int

const (
	SeveritySafe Severity = iota
	SeverityWarning
	SeverityDanger
	SeverityCritical
)

// String returns the display name of the severity tier.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityDanger:
		return "danger"
	case SeverityCritical:
		return "critical"
	default:
		return "safe"
	}
}

// Thresholds defines the ppm tiers for one monitored species.
type Thresholds struct {
	// WarningPPM, DangerPPM and CriticalPPM bound the severity tiers in
	// ascending order.
	WarningPPM  float64 `yaml:"warning_ppm" json:"warning_ppm"`
	DangerPPM   float64 `yaml:"danger_ppm" json:"danger_ppm"`
	CriticalPPM float64 `yaml:"critical_ppm" json:"critical_ppm"`

	// Filterable reports whether active filtration would mitigate an
	// exposure to this species.
	Filterable bool `yaml:"filterable" json:"filterable"`
}

// Grade returns the severity tier for a concentration in ppm.
func (t Thresholds) Grade(ppm float64) Severity {
	switch {
	case t.CriticalPPM > 0 && ppm >= t.CriticalPPM:
		return SeverityCritical
	case t.DangerPPM > 0 && ppm >= t.DangerPPM:
		return SeverityDanger
	case t.WarningPPM > 0 && ppm >= t.WarningPPM:
		return SeverityWarning
	default:
		return SeveritySafe
	}
}

// ExposureEvent tracks one contiguous above-threshold exposure for a
// monitored species.
type ExposureEvent struct {
	ID        string   `json:"id"`
	Species   string   `json:"species"`
	Severity  Severity `json:"severity"`
	PeakPPM   float64  `json:"peak_ppm"`
	DurationS float64  `json:"duration_s"`
	Mitigable bool     `json:"mitigable"`
	Active    bool     `json:"active"`
}

// Alert is the advisory raised while an exposure is active.
type Alert struct {
	Species  string   `json:"species"`
	Severity Severity `json:"severity"`
	PPM      float64  `json:"ppm"`
	Message  string   `json:"message"`
}

// PPM converts a volume fraction to parts per million.
func PPM(fraction float64) float64 {
	if fraction <= 0 {
		return 0
	}
	return fraction * 1e6
}

// monitorExposure is the read-only overlay evaluated after the physical
// update: it derives alerts and maintains the exposure-event log without
// ever touching temperature, pressure, or composition. filtrationActive
// reports whether the air handler is currently moving air, which decides
// the Mitigable flag on new events.
func monitorExposure(comp Composition, thresholds map[string]Thresholds, events []ExposureEvent, dt float64, filtrationActive bool) ([]ExposureEvent, []Alert) {
	next := append([]ExposureEvent(nil), events...)
	var alerts []Alert

	// Deterministic species order keeps alert lists stable across ticks.
	species := make([]string, 0, len(thresholds))
	for sp := range thresholds {
		species = append(species, sp)
	}
	sort.Strings(species)

	for _, sp := range species {
		th := thresholds[sp]
		ppm := PPM(comp[sp])
		severity := th.Grade(ppm)

		idx := activeEventIndex(next, sp)
		if severity == SeveritySafe {
			if idx >= 0 {
				next[idx].Active = false
			}
			continue
		}

		if idx < 0 {
			next = append(next, ExposureEvent{
				ID:        uuid.NewString(),
				Species:   sp,
				Severity:  severity,
				PeakPPM:   ppm,
				DurationS: dt,
				Mitigable: th.Filterable && filtrationActive,
				Active:    true,
			})
		} else {
			ev := &next[idx]
			ev.DurationS += dt
			if ppm > ev.PeakPPM {
				ev.PeakPPM = ppm
			}
			if severity > ev.Severity {
				ev.Severity = severity
			}
			ev.Mitigable = th.Filterable && filtrationActive
		}

		alerts = append(alerts, Alert{
			Species:  sp,
			Severity: severity,
			PPM:      ppm,
			Message:  fmt.Sprintf("%s at %.0f ppm (%s)", sp, ppm, severity),
		})
	}

	return next, alerts
}

func activeEventIndex(events []ExposureEvent, species string) int {
	for i := range events {
		if events[i].Species == species && events[i].Active {
			return i
		}
	}
	return -1
}
