package core

import "time"

// LoopState is the run state of the simulation loop
type LoopState uint8

const (
	LoopStopped LoopState = iota
	LoopRunning
	LoopPaused
)

// GameLoop manages the fixed-timestep loop for deterministic simulation
type GameLoop struct {
	World       *World
	State       LoopState
	TickRate    float64 // fixed ticks per second
	TimeScale   float64 // simulated seconds per wall-clock second
	accumulator float64
	lastTime    time.Time
}

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(tickRate float64, seed int64) *GameLoop {
	return &GameLoop{
		World:     NewWorld(tickRate, seed),
		TickRate:  tickRate,
		TimeScale: 1,
		lastTime:  time.Now(),
	}
}

// Update should be called every render frame. Returns the interpolation
// alpha for smooth rendering.
func (gl *GameLoop) Update() float64 {
	now := time.Now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	return gl.Step(frameTime)
}

// Step feeds frameTime seconds of wall-clock time into the loop
func (gl *GameLoop) Step(frameTime float64) float64 {
	// Cap frame time to avoid spiral of death
	if frameTime > 0.25 {
		frameTime = 0.25
	}

	dt := 1.0 / gl.TickRate
	gl.accumulator += frameTime * gl.TimeScale

	for gl.accumulator >= dt {
		if gl.State == LoopRunning {
			gl.World.Tick(dt)
			gl.World.Events.Dispatch()
		}
		gl.accumulator -= dt
	}

	return gl.accumulator / dt
}

// Play starts or resumes the loop
func (gl *GameLoop) Play() {
	gl.State = LoopRunning
	gl.lastTime = time.Now()
}

// Pause pauses the loop
func (gl *GameLoop) Pause() {
	gl.State = LoopPaused
}

// SetTimeScale sets the simulation speed multiplier; non-positive values are ignored
func (gl *GameLoop) SetTimeScale(s float64) {
	if s > 0 {
		gl.TimeScale = s
	}
}

// CurrentTick returns the current simulation tick
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.World.TickCount
}
