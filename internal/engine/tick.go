// Package engine provides the tick-based simulation loop.
package engine

import (
	"fmt"
	"log/slog"
	"time"
)

// ReportSchedule defines when periodic work runs relative to the tick counter.
const (
	TicksPerReport = 60   // status report cadence
	TicksPerSample = 10   // persistence sample cadence
	TicksPerMinute = 60   // at the default 1 s tick interval
	TicksPerHour   = 3600 // 60 minutes × 60
)

// Engine drives the simulation forward.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic, never resets)
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval (default 1 second)
	Running  bool

	// Callbacks for each tick layer — populated during setup.
	OnTick   func(tick uint64, dt float64) // Every tick; dt already scaled by Speed
	OnSample func(tick uint64)             // Every TicksPerSample ticks
	OnReport func(tick uint64)             // Every TicksPerReport ticks
}

// NewEngine creates a simulation engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Tick:     0,
		Speed:    1.0,
		Interval: time.Second,
		Running:  false,
	}
}

// Run starts the simulation loop. Blocks until Stop() is called.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("simulation engine started", "tick", e.Tick, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.Step()

		// Sleep for the remainder of the tick interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("simulation engine stopped", "tick", e.Tick)
}

// Stop halts the simulation loop.
func (e *Engine) Stop() {
	e.Running = false
}

// Step advances the simulation by one tick. Exported so batch runners can
// drive the engine without the wall-clock loop.
func (e *Engine) Step() {
	e.Tick++

	// Simulated seconds covered by this tick. Speed stretches simulated
	// time, not the wall-clock cadence, so a 10x engine advances the
	// physics by 10 s per tick.
	dt := e.Interval.Seconds() * e.Speed
	if e.Speed <= 0 {
		dt = 0
	}

	if e.OnTick != nil {
		e.OnTick(e.Tick, dt)
	}

	if e.Tick%TicksPerSample == 0 && e.OnSample != nil {
		e.OnSample(e.Tick)
	}

	if e.Tick%TicksPerReport == 0 && e.OnReport != nil {
		e.OnReport(e.Tick)
	}
}

// SimTime returns a human-readable simulation time string from a tick number.
func SimTime(tick uint64) string {
	seconds := tick % TicksPerMinute
	minutes := (tick / TicksPerMinute) % 60
	hours := tick / TicksPerHour
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
