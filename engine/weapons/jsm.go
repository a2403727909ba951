package weapons

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

const freeFallGravity = 9.81

// JSMSettings tunes the air launched strike missile
type JSMSettings struct {
	CruiseAltitude       float64 `mapstructure:"cruiseAltitude"`
	CruiseAltitudeJitter float64 `mapstructure:"cruiseAltitudeJitter"`
	Speed                float64 `mapstructure:"speed"`
	DiveDistance         float64 `mapstructure:"diveDistance"`
	FreeFallTime         float64 `mapstructure:"freeFallTime"`
	AccelerateDuration   float64 `mapstructure:"accelerateDuration"`
	ExplosionDuration    float64 `mapstructure:"explosionDuration"`
	MaxFlightTime        float64 `mapstructure:"maxFlightTime"`
	FollowZoom           float64 `mapstructure:"followZoom"`
}

func DefaultJSMSettings() JSMSettings {
	return JSMSettings{
		CruiseAltitude:       90,
		CruiseAltitudeJitter: 5,
		Speed:                40,
		DiveDistance:         40,
		FreeFallTime:         1,
		AccelerateDuration:   0.5,
		ExplosionDuration:    1.5,
		MaxFlightTime:        60,
		FollowZoom:           3,
	}
}

// JSM drops clear of its aircraft, lights its engine and steers onto the target
type JSM struct {
	missileBody
	settings JSMSettings

	forward      core.Vec3
	initialSpeed float64
	cruise       float64
	freeFall     float64
	engineLit    bool
	finish       float64
	reported     bool
}

// NewJSM builds an unlaunched missile and registers it with the world
func NewJSM(env Env, settings JSMSettings) *JSM {
	j := &JSM{settings: settings}
	j.env = env
	j.ID = core.NewEntityID()
	j.followZoom = settings.FollowZoom
	j.reset(core.Vec3{})
	env.World.AddSystem(j)
	return j
}

// NewJSMPool pre-builds size missiles
func NewJSMPool(env Env, settings JSMSettings, size int) *Pool[Missile] {
	return NewPool("jsm", size, func() Missile { return NewJSM(env, settings) }, env.Log, env.Metrics)
}

func (j *JSM) Priority() int { return 25 }

func (j *JSM) Reset(pos core.Vec3) {
	j.reset(pos)
	j.engineLit = false
	j.reported = false
	j.freeFall = 0
}

// EngineLit reports whether free fall is over
func (j *JSM) EngineLit() bool { return j.engineLit }

func (j *JSM) Launch(cfg LaunchConfig) {
	j.begin(cfg)
	j.launched = true
	j.reported = false
	j.engineLit = false
	j.freeFall = 0
	j.initialSpeed = cfg.InitialSpeed
	j.forward = cfg.Heading.Normalize()
	if j.forward == (core.Vec3{}) {
		j.forward = cfg.Target.Sub(cfg.Origin).Flat().Normalize()
	}

	j.cruise = j.settings.CruiseAltitude
	if j.settings.CruiseAltitudeJitter > 0 {
		j.cruise += (j.env.World.Rand.Float64()*2 - 1) * j.settings.CruiseAltitudeJitter
	}
}

func (j *JSM) Update(w *core.World, dt float64) {
	if !j.launched {
		return
	}
	if j.exploded {
		if !j.reported && w.Now() >= j.finish {
			j.reported = true
			j.reportImpact()
			j.complete()
		}
		return
	}

	j.notifyInFlight(j)
	sinceLaunch := w.Now() - j.launchTime
	if sinceLaunch > j.settings.MaxFlightTime {
		j.fuse = Terminate
		j.detonate()
		return
	}

	if sinceLaunch <= j.settings.FreeFallTime {
		j.freeFall += dt * freeFallGravity
		j.pos = j.pos.Add(j.forward.Scale(j.initialSpeed * dt)).Add(core.V3(0, -j.freeFall*dt, 0))
	} else {
		j.lightEngine()
		progress := core.Clamp01((sinceLaunch - j.settings.FreeFallTime) / j.settings.AccelerateDuration)
		speed := core.Lerp(j.initialSpeed, j.settings.Speed, progress)

		aim := j.target
		ground := core.FlatDistance(j.pos, j.target)
		if ground < j.settings.DiveDistance {
			aim.Y = core.Lerp(j.cruise, j.target.Y, 1-ground/j.settings.DiveDistance)
		} else {
			aim.Y = j.cruise
		}

		step := speed * dt
		toAim := aim.Sub(j.pos)
		if toAim.Len() <= step {
			j.pos = aim
		} else {
			j.forward = core.RotateTowards(j.forward, toAim, step)
			j.pos = j.pos.Add(j.forward.Scale(step))
		}
	}

	if j.pos.Y <= j.target.Y || j.pos.Sub(j.target).Len() < 0.5 {
		j.pos = j.target
		j.detonate()
	}
}

func (j *JSM) lightEngine() {
	if j.engineLit {
		return
	}
	j.engineLit = true
	j.env.Audio.Play(audio.SndMissileLaunch, j.pos, 0.2)
}

func (j *JSM) detonate() {
	j.exploded = true
	j.explosionTime = j.env.Now()
	j.finish = j.explosionTime
	switch j.fuse {
	case Detonate:
		j.env.Play(audio.SndMissileImpact, j.target)
		j.finish += j.settings.ExplosionDuration
	case Splash:
		j.env.Play(audio.SndSplash, j.target)
		j.finish += j.settings.ExplosionDuration
	}
}
