package weapons

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// TurretSettings tunes a gun turret
type TurretSettings struct {
	MaxElevationDistance  float64 `mapstructure:"maxElevationDistance"`
	MaxElevation          float64 `mapstructure:"maxElevation"`
	ElevationSnapAngle    float64 `mapstructure:"elevationSnapAngle"`
	RotationSnapAngle     float64 `mapstructure:"rotationSnapAngle"`
	RotationAcceleration  float64 `mapstructure:"rotationAcceleration"`
	MaxRotationSpeed      float64 `mapstructure:"maxRotationSpeed"`
	ElevationAcceleration float64 `mapstructure:"elevationAcceleration"`
	MaxElevationSpeed     float64 `mapstructure:"maxElevationSpeed"`
	Gravity               float64 `mapstructure:"gravity"`
	Barrels               int     `mapstructure:"barrels"`
	BarrelSpacing         float64 `mapstructure:"barrelSpacing"`
	FollowZoom            float64 `mapstructure:"followZoom"`
}

func DefaultTurretSettings() TurretSettings {
	return TurretSettings{
		MaxElevationDistance:  500,
		MaxElevation:          45,
		ElevationSnapAngle:    5,
		RotationSnapAngle:     5,
		RotationAcceleration:  90,
		MaxRotationSpeed:      90,
		ElevationAcceleration: 10,
		MaxElevationSpeed:     20,
		Gravity:               19.81,
		Barrels:               1,
		BarrelSpacing:         0.4,
		FollowZoom:            1,
	}
}

// FirePackage is one turret's share of a salvo. Shells are taken from the
// pool when the package is prepared and released back if it is never fired.
type FirePackage struct {
	shells        []*Shell
	BurstCount    int
	BurstInterval float64
	OnImpact      func()
	Power         float64
	Distance      float64
	Elevation     float64
	Rotation      float64
	Target        core.Vec3
	Layer         core.Layer
	Fuse          FuseResult
	Follow        *FollowProxy
}

// Shells is the number of rounds still held by the package
func (p *FirePackage) Shells() int { return len(p.shells) }

// GunTurret slews onto queued fire packages and fires them in bursts
type GunTurret struct {
	env      Env
	settings TurretSettings
	pool     *Pool[*Shell]
	ID       core.EntityID

	pos       core.Vec3
	rotation  *SnappingAngleSlewController
	elevation *SnappingAngleSlewController
	bearing   float64
	pitch     float64
	locked    bool

	queue   []*FirePackage
	current *FirePackage
	bursts  core.Scheduler
}

// NewGunTurret builds a turret at pos facing heading and registers it with the world
func NewGunTurret(env Env, settings TurretSettings, pool *Pool[*Shell], pos core.Vec3, heading float64) *GunTurret {
	t := &GunTurret{
		env:       env,
		settings:  settings,
		pool:      pool,
		ID:        core.NewEntityID(),
		pos:       pos,
		bearing:   heading,
		rotation:  NewSnappingAngleSlewController(heading, settings.RotationSnapAngle, settings.RotationAcceleration, settings.MaxRotationSpeed),
		elevation: NewSnappingAngleSlewController(0, settings.ElevationSnapAngle, settings.ElevationAcceleration, settings.MaxElevationSpeed),
	}
	env.World.AddSystem(t)
	return t
}

func (t *GunTurret) Priority() int { return 20 }

// Mount moves the turret to pos and trains it onto heading
func (t *GunTurret) Mount(pos core.Vec3, heading float64) {
	t.pos = pos
	t.bearing = heading
	t.rotation.Reset(heading)
}

// Lock freezes the turret's rotation; queued packages stay queued
func (t *GunTurret) Lock(locked bool) { t.locked = locked }

func (t *GunTurret) Locked() bool { return t.locked }

// Bearing is the displayed turret rotation in degrees
func (t *GunTurret) Bearing() float64 { return t.bearing }

// Pitch is the displayed barrel elevation in degrees
func (t *GunTurret) Pitch() float64 { return t.pitch }

// Queued is the number of packages waiting for the turret, including the one being aimed
func (t *GunTurret) Queued() int {
	n := len(t.queue)
	if t.current != nil {
		n++
	}
	return n
}

func (t *GunTurret) barrels() int { return max(t.settings.Barrels, 1) }

// PrepareFirePackage reserves barrels×burstCount shells. The package initially
// follows the turret itself.
func (t *GunTurret) PrepareFirePackage(layer core.Layer, burstCount int) *FirePackage {
	burstCount = max(burstCount, 1)
	n := t.barrels() * burstCount
	p := &FirePackage{BurstCount: burstCount, Layer: layer, Follow: NewFollowProxy(t)}
	for range n {
		p.shells = append(p.shells, t.pool.Take())
	}
	return p
}

// ReleaseFirePackage returns the shells of a package that will never fire
func (t *GunTurret) ReleaseFirePackage(p *FirePackage) {
	for _, s := range p.shells {
		t.pool.Return(s)
	}
	p.shells = nil
}

// AimAt fills in the bearing, elevation and launch speed for target
func (t *GunTurret) AimAt(target core.Vec3, p *FirePackage) {
	delta := target.Sub(t.pos)
	p.Target = target
	p.Rotation = delta.Heading()
	p.Distance = delta.Len()
	p.Elevation = ElevationForDistance(p.Distance, t.settings.MaxElevationDistance, t.settings.MaxElevation)

	power, ok := ComputeFiringSolution(t.pos, target, p.Elevation, t.settings.Gravity)
	if !ok {
		p.Elevation = t.settings.MaxElevation
		power, ok = ComputeFiringSolution(t.pos, target, p.Elevation, t.settings.Gravity)
		if !ok {
			t.env.Log.Warn("no firing solution", "turret", t.ID, "target", target)
		}
	}
	p.Power = power
}

// Submit aims the package at target and queues it for firing
func (t *GunTurret) Submit(p *FirePackage, target core.Vec3, onImpact func(), burstInterval float64, fuse FuseResult) {
	t.env.Play(audio.SndTurretRotate, t.pos)
	t.AimAt(target, p)
	p.BurstInterval = burstInterval
	p.OnImpact = onImpact
	p.Fuse = fuse
	t.queue = append(t.queue, p)
}

func (t *GunTurret) Update(_ *core.World, dt float64) {
	t.bursts.Update(dt)
	if t.locked {
		return
	}

	t.bearing = t.rotation.Update(dt)
	t.pitch = t.elevation.Update(dt)
	t.maybeFireOnTarget()
}

func (t *GunTurret) isOnTarget() bool { return t.rotation.IsOnTarget() && t.elevation.IsOnTarget() }

func (t *GunTurret) maybeFireOnTarget() {
	if t.current == nil && len(t.queue) > 0 {
		t.current = t.queue[0]
		t.queue[0] = nil
		t.queue = t.queue[1:]
		t.rotation.Target = t.current.Rotation
		t.elevation.Target = t.current.Elevation
	}
	if t.current == nil || !t.isOnTarget() {
		return
	}

	// Stop dead on the solution so every round of a burst lands together
	t.rotation.Snap()
	t.elevation.Snap()
	t.bearing = t.rotation.Target
	t.pitch = t.elevation.Target

	t.fire(t.current)
	t.current = nil
}

func (t *GunTurret) fire(p *FirePackage) {
	if len(p.shells) > 0 {
		p.Follow.Principal = p.shells[0]
	}

	var phases []core.Phase
	for i := range p.BurstCount {
		if i > 0 {
			phases = append(phases, core.Wait("interval", p.BurstInterval))
		}
		phases = append(phases, core.Do("burst", func() { t.burstFire(p) }))
	}
	t.bursts.Run(phases...)
}

func (t *GunTurret) burstFire(p *FirePackage) {
	t.env.Play(audio.SndGunFire, t.pos)

	n := t.barrels()
	across := core.HeadingVector(t.bearing + 90)
	for i := range n {
		if len(p.shells) == 0 {
			return
		}
		offset := across.Scale((float64(i) - float64(n-1)/2) * t.settings.BarrelSpacing)
		t.fireBarrel(p, t.pos.Add(offset))
	}
}

func (t *GunTurret) fireBarrel(p *FirePackage, muzzle core.Vec3) {
	shell := p.shells[0]
	p.shells[0] = nil
	p.shells = p.shells[1:]

	shell.Fire(ShellShot{
		Origin:    muzzle,
		Target:    p.Target,
		Elevation: p.Elevation,
		Speed:     p.Power,
		Layer:     p.Layer,
		Fuse:      p.Fuse,
		OnDetonation: func(FuseResult) {
			if p.OnImpact != nil {
				p.OnImpact()
			}
		},
		OnComplete: func() { t.pool.Return(shell) },
	})
}

func (t *GunTurret) Position() core.Vec3       { return t.pos }
func (t *GunTurret) FlightFraction() float64   { return 0 }
func (t *GunTurret) DistanceToTarget() float64 { return -1 }
func (t *GunTurret) FollowFinishTime() float64 { return NotFinished }
func (t *GunTurret) FollowZoom() float64       { return t.settings.FollowZoom }
