package weapons

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// TomahawkSettings tunes the ship launched cruise missile
type TomahawkSettings struct {
	BoostPhaseDuration    float64 `mapstructure:"boostPhaseDuration"`
	TerminalPhaseDuration float64 `mapstructure:"terminalPhaseDuration"`
	CleanupDelay          float64 `mapstructure:"cleanupDelay"`
	BoostAltitude         float64 `mapstructure:"boostAltitude"`
	BoostAltitudeJitter   float64 `mapstructure:"boostAltitudeJitter"`
	Speed                 float64 `mapstructure:"speed"`
	BoostPhaseDistance    float64 `mapstructure:"boostPhaseDistance"`
	TerminalPhaseDistance float64 `mapstructure:"terminalPhaseDistance"`
	SpoolTime             float64 `mapstructure:"spoolTime"`
	ExplosionDuration     float64 `mapstructure:"explosionDuration"`
	FollowZoom            float64 `mapstructure:"followZoom"`
}

func DefaultTomahawkSettings() TomahawkSettings {
	return TomahawkSettings{
		BoostPhaseDuration:    4,
		TerminalPhaseDuration: 3,
		CleanupDelay:          8,
		BoostAltitude:         90,
		BoostAltitudeJitter:   5,
		Speed:                 40,
		BoostPhaseDistance:    60,
		TerminalPhaseDistance: 60,
		SpoolTime:             2,
		ExplosionDuration:     1.5,
		FollowZoom:            2,
	}
}

// Tomahawk flies a scripted spool, boost, cruise and terminal dive
type Tomahawk struct {
	missileBody
	settings TomahawkSettings
	seq      *core.Sequence
	cruise   float64
}

// NewTomahawk builds an unlaunched missile and registers it with the world
func NewTomahawk(env Env, settings TomahawkSettings) *Tomahawk {
	t := &Tomahawk{settings: settings}
	t.env = env
	t.ID = core.NewEntityID()
	t.followZoom = settings.FollowZoom
	t.reset(core.Vec3{})
	env.World.AddSystem(t)
	return t
}

// NewTomahawkPool pre-builds size missiles
func NewTomahawkPool(env Env, settings TomahawkSettings, size int) *Pool[Missile] {
	return NewPool("tomahawk", size, func() Missile { return NewTomahawk(env, settings) }, env.Log, env.Metrics)
}

func (t *Tomahawk) Priority() int { return 25 }

func (t *Tomahawk) Reset(pos core.Vec3) {
	if t.seq != nil {
		t.seq.Stop()
		t.seq = nil
	}
	t.reset(pos)
}

// CruiseAltitude is the jittered altitude chosen at launch
func (t *Tomahawk) CruiseAltitude() float64 { return t.cruise }

func (t *Tomahawk) Launch(cfg LaunchConfig) {
	t.begin(cfg)
	s := t.settings
	start := cfg.Origin
	target := cfg.Target

	t.cruise = s.BoostAltitude
	if s.BoostAltitudeJitter > 0 {
		t.cruise += (t.env.World.Rand.Float64()*2 - 1) * s.BoostAltitudeJitter
	}

	dir := target.Sub(start).Flat().Normalize()
	boostTarget := start.Add(dir.Scale(s.BoostPhaseDistance)).WithY(start.Y + t.cruise)
	cruiseTarget := target.Sub(dir.Scale(s.TerminalPhaseDistance)).WithY(start.Y + t.cruise)
	cruiseDuration := cruiseTarget.Sub(boostTarget).Len() / s.Speed

	t.seq = core.NewSequence(
		core.Phase{
			Name:     "boost",
			Delay:    s.SpoolTime,
			Duration: s.BoostPhaseDuration,
			OnStep: func(p float64) {
				t.launched = true
				altitude := t.cruise * core.EaseOutQuad(core.SubProgress(p, 0, 0.6))
				pos := start.Lerp(boostTarget, core.EaseInQuad(core.SubProgress(p, 0.1, 0.9)))
				t.pos = pos.WithY(start.Y + altitude)
			},
		},
		core.Phase{
			Name:     "cruise",
			Duration: cruiseDuration,
			OnStep:   func(p float64) { t.pos = boostTarget.Lerp(cruiseTarget, p) },
		},
		core.Phase{
			Name:     "terminal",
			Duration: s.TerminalPhaseDuration,
			OnStep: func(p float64) {
				alt := core.Lerp(start.Y+t.cruise, target.Y, core.EaseInOutQuad(core.SubProgress(p, 0.2, 0.8)))
				t.pos = cruiseTarget.Lerp(target, core.EaseOutQuad(p)).WithY(alt)
			},
			OnDone: t.detonate,
		},
		core.Phase{Name: "explosion", Duration: s.ExplosionDuration, OnDone: t.reportImpact},
		core.Wait("cleanup", s.CleanupDelay-s.ExplosionDuration),
		core.Do("complete", t.complete),
	)

	t.env.Audio.Play(audio.SndMissileLaunch, start, 0.2)
}

func (t *Tomahawk) detonate() {
	t.exploded = true
	t.explosionTime = t.env.Now()
	switch t.fuse {
	case Detonate:
		t.env.Play(audio.SndMissileImpact, t.pos)
	case Splash:
		t.env.Play(audio.SndSplash, t.pos)
	}
}

func (t *Tomahawk) Update(_ *core.World, dt float64) {
	if t.seq == nil {
		return
	}
	t.notifyInFlight(t)
	t.seq.Update(dt)
	if t.seq != nil && t.seq.Done() {
		t.seq = nil
	}
}
