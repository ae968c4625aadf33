package core

import "time"

// TickSource yields the timestep, in seconds, for the next simulation step.
// Tests inject fixed or scripted sources; the platform may use wall time.
type TickSource interface {
	Next() float64
}

// FixedStep is a TickSource returning the same dt every step.
type FixedStep float64

// FixedRate returns a FixedStep for the given number of updates per second.
func FixedRate(ups int) FixedStep {
	if ups <= 0 {
		ups = 600
	}
	return FixedStep(1.0 / float64(ups))
}

// Next returns the constant step.
func (f FixedStep) Next() float64 {
	return float64(f)
}

// ScriptedSteps replays a fixed sequence of timesteps, repeating the last one.
type ScriptedSteps struct {
	steps []float64
	i     int
}

// NewScriptedSteps creates a TickSource that replays steps in order.
func NewScriptedSteps(steps ...float64) *ScriptedSteps {
	return &ScriptedSteps{steps: steps}
}

// Next returns the next scripted step.
func (s *ScriptedSteps) Next() float64 {
	if len(s.steps) == 0 {
		return 0
	}
	if s.i >= len(s.steps) {
		return s.steps[len(s.steps)-1]
	}
	dt := s.steps[s.i]
	s.i++
	return dt
}

// WallClock measures real elapsed time between calls, clamped to MaxStep
// so a stalled frame cannot tunnel bodies through platforms.
type WallClock struct {
	Now     func() time.Time
	MaxStep float64
	last    time.Time
}

// NewWallClock creates a wall-clock source using time.Now.
func NewWallClock(maxStep float64) *WallClock {
	return &WallClock{Now: time.Now, MaxStep: maxStep}
}

// Next returns the seconds elapsed since the previous call (0 on the first).
func (w *WallClock) Next() float64 {
	now := w.Now()
	if w.last.IsZero() {
		w.last = now
		return 0
	}
	dt := now.Sub(w.last).Seconds()
	w.last = now
	if w.MaxStep > 0 && dt > w.MaxStep {
		dt = w.MaxStep
	}
	if dt < 0 {
		dt = 0
	}
	return dt
}
