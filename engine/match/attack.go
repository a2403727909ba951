package match

import (
	"errors"
	"fmt"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/grid"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

// ViewStage is where the attack camera is in its choreography
type ViewStage uint8

const (
	ViewIdle ViewStage = iota
	PanToAttackOrigin
	DwellOnAttackOrigin
	Follow
	TargetGrid
)

func (s ViewStage) String() string {
	switch s {
	case ViewIdle:
		return "Idle"
	case PanToAttackOrigin:
		return "PanToAttackOrigin"
	case DwellOnAttackOrigin:
		return "DwellOnAttackOrigin"
	case Follow:
		return "Follow"
	case TargetGrid:
		return "TargetGrid"
	}
	return fmt.Sprintf("ViewStage(%d)", uint8(s))
}

// attack is the turn's shot from the moment it is accepted until the turn passes
type attack struct {
	attacker *core.Commander
	target   *grid.Grid
	res      *weapons.Reservation
	cell     core.Cell
	coords   core.Vec3
	seq      *core.Sequence

	stage       ViewStage
	progress    float64
	followStart float64
	impactTime  float64
}

// View is what the attack camera should show
type View struct {
	Stage    ViewStage
	Progress float64
	Follow   weapons.FollowTarget
	Attacker *core.Commander
	Defender *core.Commander
	Grid     *grid.Grid
	Cell     core.Cell
}

// View reports the current attack choreography; Stage is ViewIdle between attacks
func (c *Controller) View() View {
	a := c.current
	if a == nil {
		return View{}
	}
	v := View{
		Stage:    a.stage,
		Progress: a.progress,
		Follow:   a.res.Follow,
		Attacker: a.attacker,
		Defender: a.target.Owner(),
		Grid:     a.target,
		Cell:     a.cell,
	}
	if a.stage == Follow {
		v.Progress = a.res.Follow.FlightFraction()
	}
	return v
}

// Attack accepts the attacking commander's one shot of the turn. A rejected
// attack hands the reservation back.
func (c *Controller) Attack(attacker *core.Commander, target *grid.Grid, r *weapons.Reservation, cell core.Cell, coords core.Vec3) error {
	if err := c.checkAttack(attacker); err != nil {
		r.Release()
		c.log.Debug("attack rejected", "commander", attacker, "err", err)
		return err
	}

	s, _ := c.status.Get(attacker)
	s.FollowEnabled = true
	c.hasFired = true

	a := &attack{attacker: attacker, target: target, res: r, cell: cell, coords: coords}
	c.current = a
	c.log.Info("attack", "commander", attacker, "target", target.Owner(), "cell", cell, "origin", r.Origin)
	c.env.World.Emit(core.EvtAttack, attackEvent(a))

	var phases []core.Phase
	if attacker.IsLocal() {
		phases = append(phases,
			c.stagePhase(a, PanToAttackOrigin, c.settings.PanToAttackOrigin),
			c.stagePhase(a, DwellOnAttackOrigin, c.settings.DwellOnAttackOrigin),
		)
	}
	phases = append(phases,
		core.Do("fire", func() { c.fire(a) }),
		core.WaitUntil("impact", func() bool { return a.stage == TargetGrid }),
	)
	if attacker.IsLocal() {
		phases = append(phases, c.stagePhase(a, TargetGrid, c.settings.HoldOnTargetGrid))
	}
	phases = append(phases, core.Do("next player", func() { c.finishAttack(a) }))
	a.seq = c.schedule.Run(phases...)
	return nil
}

func (c *Controller) checkAttack(attacker *core.Commander) error {
	switch {
	case c.state != Playing:
		return fmt.Errorf("attack by %s in %s: %w", attacker, c.state, ErrWrongState)
	case attacker != c.attacking:
		return fmt.Errorf("attack by %s: %w", attacker, ErrNotYourTurn)
	case c.hasFired:
		return fmt.Errorf("attack by %s: %w", attacker, ErrAlreadyFired)
	}
	return nil
}

func (c *Controller) stagePhase(a *attack, stage ViewStage, d float64) core.Phase {
	return core.Phase{
		Name:     stage.String(),
		Duration: d,
		OnStart: func() {
			a.stage = stage
			a.progress = 0
		},
		OnStep: func(p float64) { a.progress = p },
	}
}

func (c *Controller) fire(a *attack) {
	a.stage = Follow
	a.followStart = c.env.Now()
	shot := c.shotCounter
	onImpact := func() {
		// weapons with several projectiles report one impact each
		if shot != c.shotCounter || c.current != a {
			return
		}
		c.shotCounter++
		c.impact(a)
	}

	err := a.res.Fire(c.env.Now(), a.coords, a.target.IsOccupied(a.cell), onImpact)
	if err != nil {
		c.abortAttack(a, err)
		return
	}
	c.env.Metrics.ShotFired(a.res.Origin)
	c.env.World.Emit(core.EvtShotFired, attackEvent(a))
}

func (c *Controller) impact(a *attack) {
	a.stage = TargetGrid
	a.impactTime = c.env.Now()
	a.target.HandleImpact(a.cell)
	c.checkForVictory()
}

func (c *Controller) finishAttack(a *attack) {
	if s, ok := c.status.Get(a.attacker); ok {
		s.FollowEnabled = false
	}
	if c.current == a {
		c.current = nil
	}
	if c.state == Playing {
		c.nextPlayer()
	}
}

// abortAttack gives the turn back to the attacker when the shot could not be fired
func (c *Controller) abortAttack(a *attack, err error) {
	c.log.Warn("attack aborted", "commander", a.attacker, "origin", a.res.Origin, "err", err)
	if errors.Is(err, weapons.ErrReservationExpired) {
		c.expired(a)
	}
	a.res.Release()
	if c.current == a {
		c.current = nil
	}
	if a.seq != nil {
		a.seq.Stop()
	}
	if s, ok := c.status.Get(a.attacker); ok {
		s.FollowEnabled = false
		if a.attacker.IsAI() {
			s.aiNextAction = c.env.Now() + c.settings.AIRetryDelay
		}
	}
	c.hasFired = false
}

func (c *Controller) expired(a *attack) {
	kind := a.res.Kind()
	c.env.Metrics.ReservationExpired(kind.String())
	c.env.World.Emit(core.EvtReservationExpired, ExpiredEvent{Attacker: a.attacker, Origin: a.res.Origin, Kind: kind})
}

// sweepReservation releases a held shot whose reservation ran out while the
// camera was still panning
func (c *Controller) sweepReservation() {
	a := c.current
	if a == nil || !a.res.Pending() || !a.res.Expired(c.env.Now()) {
		return
	}
	c.abortAttack(a, fmt.Errorf("held by %s: %w", a.attacker, weapons.ErrReservationExpired))
}

// watchFlight sounds the launch warning once the shot is half way and gives up
// on shots that never land
func (c *Controller) watchFlight() {
	a := c.current
	if a == nil || a.stage != Follow {
		return
	}
	follow := a.res.Follow
	if !c.launchWarned && follow.FlightFraction() > c.settings.LaunchWarningFraction {
		c.launchWarned = true
		c.env.Play(audio.SndLaunchWarning, follow.Position())
		c.env.World.Emit(core.EvtLaunchWarning, attackEvent(a))
	}
	if c.env.Now()-a.followStart > c.settings.ImpactTimeout {
		c.log.Warn("attack never landed", "commander", a.attacker, "origin", a.res.Origin)
		c.shotCounter++
		a.stage = TargetGrid
		a.impactTime = c.env.Now()
	}
}

// LaunchWarned reports whether the defender has been warned of the inbound shot
func (c *Controller) LaunchWarned() bool { return c.launchWarned }
