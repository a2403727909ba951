package weapons

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// ShellSettings tunes cannon shell flight
type ShellSettings struct {
	Gravity           float64 `mapstructure:"gravity"`
	MaxFlightTime     float64 `mapstructure:"maxFlightTime"`
	ExplosionDuration float64 `mapstructure:"explosionDuration"`
	SplashDuration    float64 `mapstructure:"splashDuration"`
	FollowZoom        float64 `mapstructure:"followZoom"`
}

func DefaultShellSettings() ShellSettings {
	return ShellSettings{
		Gravity:           19.81,
		MaxFlightTime:     30,
		ExplosionDuration: 2,
		SplashDuration:    1.5,
		FollowZoom:        1,
	}
}

type shellState uint8

const (
	shellIdle shellState = iota
	shellFlying
	shellExploding
)

// ShellShot describes one round leaving a barrel
type ShellShot struct {
	Origin    core.Vec3
	Target    core.Vec3
	Elevation float64 // degrees
	Speed     float64
	Layer     core.Layer
	Fuse      FuseResult

	OnDetonation func(FuseResult)
	OnComplete   func()
}

// Shell is a pooled cannon round integrated under gravity
type Shell struct {
	env      Env
	settings ShellSettings
	ID       core.EntityID

	state     shellState
	pos       core.Vec3
	vel       core.Vec3
	origin    core.Vec3
	target    core.Vec3
	nominal   float64
	layer     core.Layer
	fuse      FuseResult
	result    FuseResult
	launched  float64
	impactAt  float64
	finish    float64
	evaluated bool

	onDetonation func(FuseResult)
	onComplete   func()
}

// NewShell builds an idle shell and registers it with the world
func NewShell(env Env, settings ShellSettings) *Shell {
	s := &Shell{env: env, settings: settings, ID: core.NewEntityID()}
	env.World.AddSystem(s)
	return s
}

// NewShellPool pre-builds size shells
func NewShellPool(env Env, settings ShellSettings, size int) *Pool[*Shell] {
	return NewPool("shells", size, func() *Shell { return NewShell(env, settings) }, env.Log, env.Metrics)
}

func (s *Shell) Priority() int { return 25 }

// Fire launches the shell. The impact height is the target's altitude.
func (s *Shell) Fire(shot ShellShot) {
	s.state = shellFlying
	s.pos = shot.Origin
	s.origin = shot.Origin
	s.target = shot.Target
	s.vel = LaunchVelocity(shot.Origin, shot.Target, shot.Elevation, shot.Speed)
	s.nominal = core.FlatDistance(shot.Origin, shot.Target)
	s.layer = shot.Layer
	s.fuse = shot.Fuse
	s.result = NoAction
	s.launched = s.env.Now()
	s.impactAt = NotFinished
	s.evaluated = false
	s.onDetonation = shot.OnDetonation
	s.onComplete = shot.OnComplete
}

func (s *Shell) Update(w *core.World, dt float64) {
	switch s.state {
	case shellFlying:
		s.fly(dt)
	case shellExploding:
		if w.Now() >= s.finish {
			s.complete()
		}
	}
}

func (s *Shell) fly(dt float64) {
	if s.env.Now()-s.launched >= s.settings.MaxFlightTime {
		s.impact(Terminate)
		return
	}

	g := core.V3(0, -s.settings.Gravity, 0)
	prev := s.pos
	s.pos = s.pos.Add(s.vel.Scale(dt)).Add(g.Scale(0.5 * dt * dt))
	s.vel = s.vel.Add(g.Scale(dt))

	// Visible to everyone past half way
	if s.layer != core.LayerAll && s.FlightFraction() > 0.5 {
		s.layer = core.LayerAll
	}

	if s.evaluated || s.vel.Y >= 0 || s.pos.Y > s.target.Y {
		return
	}

	// Crossed the impact plane this tick
	if prev.Y > s.pos.Y {
		s.pos = prev.Lerp(s.pos, core.Clamp01((prev.Y-s.target.Y)/(prev.Y-s.pos.Y)))
	}
	s.evaluated = true
	if s.fuse == NoAction {
		return
	}
	s.impact(s.fuse)
}

func (s *Shell) impact(result FuseResult) {
	now := s.env.Now()
	s.result = result
	s.impactAt = now
	s.state = shellExploding

	switch result {
	case Detonate:
		s.env.Play(audio.SndShellExplosion, s.pos)
		s.finish = now + s.settings.ExplosionDuration
	case Splash:
		s.env.Play(audio.SndSplash, s.pos)
		s.finish = now + s.settings.SplashDuration
	default:
		s.finish = now
	}

	if s.onDetonation != nil {
		s.onDetonation(result)
	}
}

func (s *Shell) complete() {
	s.state = shellIdle
	s.onDetonation = nil
	done := s.onComplete
	s.onComplete = nil
	if done != nil {
		done()
	}
}

// Active reports whether the shell is flying or still exploding
func (s *Shell) Active() bool { return s.state != shellIdle }

// Result is the fuse outcome of the last flight
func (s *Shell) Result() FuseResult { return s.result }

func (s *Shell) Layer() core.Layer { return s.layer }

// Velocity is the current 3D velocity
func (s *Shell) Velocity() core.Vec3 { return s.vel }

func (s *Shell) Position() core.Vec3 { return s.pos }

func (s *Shell) FlightFraction() float64 {
	switch s.state {
	case shellIdle:
		if s.impactAt != NotFinished && s.impactAt != 0 {
			return 1
		}
		return 0
	case shellExploding:
		return 1
	}
	if s.nominal == 0 {
		return 1
	}
	return core.Clamp01(core.FlatDistance(s.origin, s.pos) / s.nominal)
}

func (s *Shell) DistanceToTarget() float64 {
	if s.state != shellFlying {
		return 0
	}
	return core.FlatDistance(s.pos, s.target)
}

func (s *Shell) FollowFinishTime() float64 {
	if s.state == shellFlying {
		return NotFinished
	}
	return s.impactAt
}

func (s *Shell) FollowZoom() float64 { return s.settings.FollowZoom }
