package core

import (
	"math/rand"
	"sync/atomic"
)

// EntityID is a unique identifier for simulation actors
type EntityID uint64

var entityCounter uint64

// NewEntityID generates a unique entity ID
func NewEntityID() EntityID {
	return EntityID(atomic.AddUint64(&entityCounter, 1))
}

// System is an actor advanced once per tick
type System interface {
	Update(w *World, dt float64)
	Priority() int
}

// World owns the simulation clock and every ticking actor
type World struct {
	systems   []System
	added     []System
	toRemove  []System
	ticking   bool
	now       float64
	Events    *EventBus
	Rand      *rand.Rand
	TickCount uint64
	TickRate  float64 // ticks per second
}

// NewWorld creates a world whose random stream is seeded with seed
func NewWorld(tickRate float64, seed int64) *World {
	return &World{
		Events:   NewEventBus(),
		Rand:     rand.New(rand.NewSource(seed)),
		TickRate: tickRate,
	}
}

// Now is the simulation time in seconds
func (w *World) Now() float64 { return w.now }

// Emit queues an event stamped with the current tick
func (w *World) Emit(t EventType, payload any) {
	w.Events.Emit(Event{Type: t, Tick: w.TickCount, Time: w.now, Payload: payload})
}

// AddSystem registers a system. Systems added during a tick start on the next one.
func (w *World) AddSystem(s System) {
	if w.ticking {
		w.added = append(w.added, s)
		return
	}
	w.insert(s)
}

func (w *World) insert(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion, stable)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// RemoveSystem marks a system for removal at the end of the tick
func (w *World) RemoveSystem(s System) {
	if !w.ticking {
		w.remove(s)
		return
	}
	w.toRemove = append(w.toRemove, s)
}

func (w *World) remove(s System) {
	for i, sys := range w.systems {
		if sys == s {
			w.systems = append(w.systems[:i], w.systems[i+1:]...)
			return
		}
	}
}

// Tick advances the clock by dt and runs all systems once
func (w *World) Tick(dt float64) {
	w.now += dt
	w.ticking = true
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	w.ticking = false

	for _, s := range w.toRemove {
		w.remove(s)
	}
	w.toRemove = w.toRemove[:0]
	for _, s := range w.added {
		w.insert(s)
	}
	w.added = w.added[:0]
	w.TickCount++
}

// RunFor ticks at the fixed rate until d seconds have elapsed, dispatching
// events after each tick
func (w *World) RunFor(d float64) {
	dt := 1.0 / w.TickRate
	for end := w.now + d - dt/2; w.now < end; {
		w.Tick(dt)
		w.Events.Dispatch()
	}
}

// SystemCount returns the number of registered systems
func (w *World) SystemCount() int {
	return len(w.systems) + len(w.added)
}
