// Experiment ties the fluid machine and the room controller together and
// runs them each tick.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/quellen/simmer/internal/ambient"
	"github.com/quellen/simmer/internal/fluid"
	"github.com/quellen/simmer/internal/room"
)

// Experiment holds one complete bench setup: a heated fluid inside a
// controlled room, with outdoor conditions leaking in around the edges.
type Experiment struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Fluid side.
	Props     fluid.Properties
	Fluid     fluid.State
	LastFluid fluid.Result

	// Burner. Efficiency is the fraction of heater power delivered into
	// the fluid; the remainder heats the room air directly.
	HeaterWatts      float64
	HeaterOn         bool
	BurnerEfficiency float64
	SurfaceAreaM2    float64

	// VaporSpecies names the composition key the fluid's vapor lands in.
	VaporSpecies string

	// Room side.
	Room       room.State
	RoomCfg    room.Config
	ACCfg      room.ACConfig
	AirCfg     room.AirHandlerConfig
	Thresholds map[string]room.Thresholds

	// Outdoor supplies drifting outside conditions each tick. Nil keeps
	// the configured ambient values fixed.
	Outdoor *ambient.Field

	Events     []Event // Recent events (trimmed to the last 1000)
	LastTick   uint64  // Most recent tick processed
	SimSeconds float64 // Total simulated time elapsed

	// Statistics refreshed every tick.
	Stats SimStats

	lastPhase  fluid.Phase
	lastAlerts map[string]room.Severity
}

// Event is a notable occurrence in the experiment.
type Event struct {
	Tick        uint64 `json:"tick"`
	Description string `json:"description"`
	Category    string `json:"category"` // "phase", "exposure", "burner"
}

// SimStats tracks aggregate experiment statistics.
type SimStats struct {
	FluidTempC     float64 `json:"fluid_temp_c"`
	FluidMassKg    float64 `json:"fluid_mass_kg"`
	RoomTempC      float64 `json:"room_temp_c"`
	RoomPressurePa float64 `json:"room_pressure_pa"`
	VaporTotalKg   float64 `json:"vapor_total_kg"`
	BurnerEnergyJ  float64 `json:"burner_energy_j"`
	WastedEnergyJ  float64 `json:"wasted_energy_j"`
	ActiveAlerts   int     `json:"active_alerts"`
}

// NewExperiment assembles an experiment around a fluid charge and a room
// baseline. BurnerEfficiency defaults to full delivery when unset.
func NewExperiment(name string, props fluid.Properties, charge fluid.State, roomState room.State) *Experiment {
	return &Experiment{
		ID:               uuid.NewString(),
		Name:             name,
		Props:            props,
		Fluid:            charge,
		BurnerEfficiency: 1.0,
		VaporSpecies:     props.Substance,
		Room:             roomState,
		lastAlerts:       make(map[string]room.Severity),
	}
}

// CurrentTick returns the most recently processed tick number.
func (e *Experiment) CurrentTick() uint64 {
	return e.LastTick
}

// TickOnce advances the whole experiment by dt simulated seconds: outdoor
// sampling, the fluid step, vapor handoff, then the room step.
func (e *Experiment) TickOnce(tick uint64, dt float64) {
	e.LastTick = tick
	if dt <= 0 {
		return
	}
	e.SimSeconds += dt

	// Outdoor conditions drift; the room leaks toward them.
	if e.Outdoor != nil {
		cond := e.Outdoor.At(e.SimSeconds)
		e.RoomCfg.AmbientTempC = cond.TempC
		e.RoomCfg.AmbientPressurePa = cond.PressurePa
	}

	// Split burner power between the fluid and the surrounding air.
	intoFluid := 0.0
	wasteWatts := 0.0
	if e.HeaterOn && e.HeaterWatts > 0 {
		eff := e.BurnerEfficiency
		if eff <= 0 || eff > 1 {
			eff = 1.0
		}
		intoFluid = e.HeaterWatts * eff
		wasteWatts = e.HeaterWatts - intoFluid
		e.Stats.BurnerEnergyJ += e.HeaterWatts * dt
	}

	// The fluid sits in the room: the room's air is its ambient.
	env := fluid.Env{
		AmbientTempC:      e.Room.TempC,
		AmbientPressurePa: e.Room.PressurePa,
		PartialPressurePa: e.Room.Composition[e.VaporSpecies] * e.Room.PressurePa,
		SurfaceAreaM2:     e.SurfaceAreaM2,
	}
	res := fluid.Step(e.Fluid, intoFluid, dt, e.Props, env)
	e.recordPhaseChange(tick, res)
	e.Fluid = res.State
	e.LastFluid = res
	e.Stats.VaporTotalKg += res.VaporMassKg
	e.Stats.WastedEnergyJ += res.WastedJ

	// Plateau overflow leaves through the air, same as burner spill.
	if res.WastedJ > 0 {
		wasteWatts += res.WastedJ / dt
	}

	in := room.Inputs{
		ExternalHeatWatts: wasteWatts,
		Vapor: room.Vapor{
			Species:           e.VaporSpecies,
			MassKg:            res.VaporMassKg,
			MolarMassKgPerMol: e.Props.MolarMass,
		},
		Thresholds: e.Thresholds,
	}
	e.Room = room.Step(e.Room, e.RoomCfg, e.ACCfg, e.AirCfg, dt, in)
	e.recordAlertChanges(tick)

	e.updateStats()

	// Trim old events to prevent unbounded growth (keep last 1000).
	if len(e.Events) > 1000 {
		e.Events = e.Events[len(e.Events)-1000:]
	}
}

// Report emits a periodic status line.
func (e *Experiment) Report(tick uint64) {
	slog.Info("experiment status",
		"tick", tick,
		"time", SimTime(tick),
		"name", e.Name,
		"phase", e.LastFluid.Phase.String(),
		"fluid_temp_c", fmt.Sprintf("%.2f", e.Stats.FluidTempC),
		"fluid_mass", humanize.SIWithDigits(e.Stats.FluidMassKg*1000, 1, "g"),
		"room_temp_c", fmt.Sprintf("%.2f", e.Stats.RoomTempC),
		"room_pressure", humanize.SIWithDigits(e.Stats.RoomPressurePa, 2, "Pa"),
		"vapor_total", humanize.SIWithDigits(e.Stats.VaporTotalKg*1000, 1, "g"),
		"burner_energy", humanize.SIWithDigits(e.Stats.BurnerEnergyJ, 2, "J"),
		"alerts", e.Stats.ActiveAlerts,
	)

	// Log recent notable events since the last report.
	recentStart := 0
	if len(e.Events) > 10 {
		recentStart = len(e.Events) - 10
	}
	for _, ev := range e.Events[recentStart:] {
		if ev.Tick+TicksPerReport > tick {
			slog.Info("event", "category", ev.Category, "description", ev.Description)
		}
	}
}

func (e *Experiment) recordPhaseChange(tick uint64, res fluid.Result) {
	if res.Phase == e.lastPhase {
		return
	}
	desc := fmt.Sprintf("%s entered %s at %.1f C", e.Props.Substance, res.Phase, res.State.TempC)
	if res.Phase == fluid.PhaseBoiling {
		desc = fmt.Sprintf("%s boiling at %.1f C (%s)", e.Props.Substance, res.BoilingPointC, res.BoilingSource)
	}
	e.Events = append(e.Events, Event{Tick: tick, Description: desc, Category: "phase"})
	e.lastPhase = res.Phase
}

func (e *Experiment) recordAlertChanges(tick uint64) {
	seen := make(map[string]room.Severity, len(e.Room.Alerts))
	for _, a := range e.Room.Alerts {
		seen[a.Species] = a.Severity
		if prev, ok := e.lastAlerts[a.Species]; !ok || prev != a.Severity {
			e.Events = append(e.Events, Event{
				Tick:        tick,
				Description: a.Message,
				Category:    "exposure",
			})
		}
	}
	for sp := range e.lastAlerts {
		if _, ok := seen[sp]; !ok {
			e.Events = append(e.Events, Event{
				Tick:        tick,
				Description: fmt.Sprintf("%s exposure cleared", sp),
				Category:    "exposure",
			})
		}
	}
	e.lastAlerts = seen
}

// SetBurner toggles the heater and records the change.
func (e *Experiment) SetBurner(tick uint64, on bool) {
	if e.HeaterOn == on {
		return
	}
	e.HeaterOn = on
	state := "off"
	if on {
		state = "on"
	}
	e.Events = append(e.Events, Event{
		Tick:        tick,
		Description: fmt.Sprintf("burner switched %s (%s)", state, humanize.SIWithDigits(e.HeaterWatts, 1, "W")),
		Category:    "burner",
	})
}

func (e *Experiment) updateStats() {
	e.Stats.FluidTempC = e.Fluid.TempC
	e.Stats.FluidMassKg = e.Fluid.MassKg
	e.Stats.RoomTempC = e.Room.TempC
	e.Stats.RoomPressurePa = e.Room.PressurePa
	e.Stats.ActiveAlerts = len(e.Room.Alerts)
}
