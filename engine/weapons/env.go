package weapons

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/logging"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/metrics"
)

// Env carries the collaborators every simulated actor needs
type Env struct {
	World   *core.World
	Audio   audio.Sink
	Log     logging.Logger
	Metrics *metrics.Recorder
}

// NewEnv fills unset collaborators with silent defaults
func NewEnv(w *core.World, sink audio.Sink, log logging.Logger, rec *metrics.Recorder) Env {
	if sink == nil {
		sink = audio.Discard
	}
	if log == nil {
		log = logging.Nop()
	}
	return Env{World: w, Audio: sink, Log: log, Metrics: rec}
}

// Now is the simulation time
func (e Env) Now() float64 { return e.World.Now() }

// Play plays a sound at full volume
func (e Env) Play(id audio.SoundID, pos core.Vec3) {
	e.Audio.Play(id, pos, 1)
}
