package aircraft

import (
	"fmt"
	"math"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/logging"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

const crashGravity = 9.81

// GearState is the landing gear position
type GearState uint8

const (
	GearRaised GearState = iota
	GearRaising
	GearLowering
	GearLowered
)

// BayDoorState is the position of a weapons bay door
type BayDoorState uint8

const (
	BayClosed BayDoorState = iota
	BayClosing
	BayOpening
	BayOpen
)

// Side picks one of the two internal weapons bays
type Side uint8

const (
	Port Side = iota
	Starboard
)

func (s Side) String() string {
	switch s {
	case Port:
		return "Port"
	case Starboard:
		return "Starboard"
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

// Bay is the state of one weapons bay
type Bay struct {
	Fired     bool
	Available bool
	Progress  float64
	State     BayDoorState
}

type targetDirection uint8

const (
	directionUnknown targetDirection = iota
	directionAhead
	directionBehind
)

// StateChange is published whenever an aircraft changes state
type StateChange struct {
	Aircraft core.EntityID
	Name     string
	From     State
	To       State
}

// F35 is a carrier aircraft flying its deck cycle and patrol
type F35 struct {
	env      weapons.Env
	settings Settings
	runway   RunwayProvider
	missiles *weapons.Pool[weapons.Missile]
	log      logging.Logger
	ID       core.EntityID
	Name     string

	// PatrolEnabled lets a grounded aircraft leave its current state
	PatrolEnabled bool
	pending       State
	hasPending    bool

	state   State
	fuel    float64
	pos     core.Vec3
	heading float64
	speed   float64

	waypoints          []core.Vec3
	lastWaypoint       core.Vec3
	direction          targetDirection
	overshootHoldUntil float64
	landingClearance   bool

	gear         GearState
	gearProgress float64
	bays         [2]Bay

	strike       *Strike
	launching    *Strike
	choreography core.Scheduler

	fallSpeed float64
	wrecked   bool
}

// New builds a parked aircraft at pos and registers it with the world
func New(env weapons.Env, settings Settings, runway RunwayProvider, missiles *weapons.Pool[weapons.Missile], name string, pos core.Vec3, heading float64) *F35 {
	f := &F35{
		env:      env,
		settings: settings,
		runway:   runway,
		missiles: missiles,
		log:      env.Log.With("aircraft", name),
		ID:       core.NewEntityID(),
		Name:     name,
		pos:      pos,
		heading:  heading,
		gear:     GearLowered,
	}
	f.refuelAndRearm()
	env.World.AddSystem(f)
	return f
}

func (f *F35) Priority() int { return 15 }

func (f *F35) State() State         { return f.state }
func (f *F35) Fuel() float64        { return f.fuel }
func (f *F35) Heading() float64     { return f.heading }
func (f *F35) Speed() float64       { return f.speed }
func (f *F35) IsOnPatrol() bool     { return f.state == Patrolling }
func (f *F35) Wrecked() bool        { return f.wrecked }
func (f *F35) Bay(side Side) Bay    { return f.bays[side] }
func (f *F35) Settings() Settings   { return f.settings }
func (f *F35) Waypoints() []core.Vec3 {
	return append([]core.Vec3(nil), f.waypoints...)
}

// LandingGear is the gear state and its actuation progress (0 lowered, 1 raised)
func (f *F35) LandingGear() (GearState, float64) { return f.gear, f.gearProgress }

// FuelMargin is the fuel left before the aircraft must return to base
func (f *F35) FuelMargin() float64 { return f.fuel - f.settings.ReturnToBaseFuelLevel }

// SetPendingState forces the next state change, overriding the natural transitions
func (f *F35) SetPendingState(s State) {
	f.pending = s
	f.hasPending = true
}

// PendingState is the queued override, if any
func (f *F35) PendingState() (State, bool) { return f.pending, f.hasPending }

// Place moves the aircraft without flying it
func (f *F35) Place(pos core.Vec3, heading float64) {
	f.pos = pos
	f.heading = heading
}

// SetAltitude lets a lift carry the aircraft
func (f *F35) SetAltitude(y float64) { f.pos.Y = y }

func (f *F35) Update(_ *core.World, dt float64) {
	if f.state == Crashing {
		f.fall(dt)
		return
	}

	f.updateState()
	if f.state == Crashing {
		return
	}

	f.burnFuel(dt)
	angle := f.move(dt)

	f.maybeFireMissile(angle)
	f.choreography.Update(dt)
	f.actuateBay(Port, dt)
	f.actuateBay(Starboard, dt)
	f.actuateGear(dt)
}

func (f *F35) updateState() {
	// Grounded aircraft hold their state until enabled
	if !f.state.InAir() && !f.PatrolEnabled {
		return
	}

	fuelLow := f.fuel < f.settings.ReturnToBaseFuelLevel
	fuelEmpty := f.fuel <= 0
	ammoLow := f.bays[Port].Fired && f.bays[Starboard].Fired

	if len(f.waypoints) > 0 && f.nearWaypoint() {
		f.removeNextWaypoint()
	}
	complete := len(f.waypoints) == 0

	current := f.state
	var next State
	if f.hasPending {
		next = f.pending
		f.hasPending = false
	} else {
		next = f.naturalTransition(complete, fuelLow, ammoLow)
	}

	if fuelEmpty || (!current.InAir() && f.runway.IsDestroyed()) {
		next = Crashing
	}

	changed := next != current
	patrolRouteRequired := next == Patrolling && complete
	holdingRequired := next == WaitingToLand && complete
	if !changed && !patrolRouteRequired && !holdingRequired {
		return
	}

	f.state = next
	if changed {
		f.log.Debug("state change", "from", current, "to", next, "fuel", f.fuel)
		f.env.World.Emit(core.EvtAircraftState, StateChange{Aircraft: f.ID, Name: f.Name, From: current, To: next})
	}
	f.enter(next)
}

func (f *F35) naturalTransition(complete, fuelLow, ammoLow bool) State {
	switch f.state {
	case Parked:
		if f.runway.RequestTakeoffClearance() {
			return WaitingForLift
		}
	case WaitingForLift:
		if f.isLift(LiftLowered) {
			return TaxiingFromParking
		}
	case TaxiingFromParking:
		if complete {
			return LiftAscending
		}
	case LiftAscending:
		if f.isLift(LiftRaised) {
			return TaxiingForTakeoff
		}
	case TaxiingForTakeoff:
		if complete {
			return Launching
		}
	case Launching:
		if complete {
			return Patrolling
		}
	case Patrolling:
		if fuelLow || ammoLow {
			return WaitingToLand
		}
	case WaitingToLand:
		if f.landingClearance = f.runway.RequestLandingClearance(); f.landingClearance {
			return Approaching
		}
	case Approaching:
		if complete {
			return Landing
		}
	case Landing:
		if complete {
			return Arresting
		}
	case Arresting:
		if f.speed == 0 {
			return TaxiingAfterLanding
		}
	case TaxiingAfterLanding:
		if complete {
			return LiftDescending
		}
	case LiftDescending:
		if f.isLift(LiftLowered) {
			return TaxiingToParking
		}
	case TaxiingToParking:
		if complete {
			return Parked
		}
	}
	return f.state
}

func (f *F35) enter(s State) {
	switch s {
	case WaitingForLift:
		f.refuelAndRearm()
		f.setRunwayWaypoints(UpLift)
		f.runway.OperateLift(f.lastWaypoint, LiftLowered, nil)
	case LiftAscending:
		f.runway.OperateLift(f.lastWaypoint, LiftRaised, f)
	case TaxiingForTakeoff:
		f.setRunwayWaypoints(CatapultStart)
	case Launching:
		f.setRunwayWaypoints(CatapultEnd)
		f.env.Audio.Play(audio.SndTakeoff, f.pos, 0.5)
		f.runway.ReleaseTakeoffClearance()
	case Patrolling:
		f.setFlightWaypoints(PatrolRoute)
	case WaitingToLand:
		f.setFlightWaypoints(HoldingPattern)
	case Approaching:
		f.setRunwayWaypoints(Approach)
	case Landing:
		f.setRunwayWaypoints(Arrestors)
		f.env.Audio.Play(audio.SndTouchdown, f.pos, 0.5)
	case Attacking:
	case TaxiingAfterLanding:
		f.setRunwayWaypoints(DownLift)
	case LiftDescending:
		f.runway.OperateLift(f.lastWaypoint, LiftLowered, f)
	case TaxiingToParking:
		f.setRunwayWaypoints(ParkingStand)
	case Parked:
		f.runway.ReleaseLandingClearance()
		f.landingClearance = false
	case Crashing:
		f.crash()
		if f.landingClearance {
			f.runway.ReleaseLandingClearance()
			f.landingClearance = false
		}
	case TaxiingFromParking:
	case Arresting:
		f.env.Audio.Play(audio.SndArrest, f.pos, 0.5)
	default:
		panic(core.OutOfRange("aircraft state", s))
	}
}

func (f *F35) isLift(want LiftState) bool {
	s, ok := f.runway.LiftState(f.lastWaypoint)
	return ok && s == want
}

func (f *F35) burnFuel(dt float64) {
	if !f.state.InAir() {
		return
	}
	f.fuel -= f.settings.FuelBurnPerSecond * dt
}

func (f *F35) refuelAndRearm() {
	for i := range f.bays {
		f.bays[i].Available = true
		f.bays[i].Fired = false
		if f.bays[i].State != BayClosed {
			f.bays[i].State = BayClosing
		}
	}
	f.fuel = f.settings.StartingFuel
}

func (f *F35) setWaypoints(wps []core.Vec3) {
	f.waypoints = append(f.waypoints[:0], wps...)
	f.direction = directionUnknown
	if len(wps) > 0 {
		f.lastWaypoint = wps[len(wps)-1]
	}
}

func (f *F35) setRunwayWaypoints(kind WaypointKind) {
	f.setWaypoints(f.runway.RunwayWaypoints(kind))
}

// setFlightWaypoints flies a runway path at a jittered flight altitude
func (f *F35) setFlightWaypoints(kind WaypointKind) {
	altitude := f.settings.FlightAltitude
	if j := f.settings.FlightAltitudeJitter; j > 0 {
		altitude += (f.env.World.Rand.Float64()*2 - 1) * j
	}
	wps := f.runway.RunwayWaypoints(kind)
	route := make([]core.Vec3, len(wps))
	for i, wp := range wps {
		route[i] = wp.WithY(altitude)
	}
	f.setWaypoints(route)
}

func (f *F35) removeNextWaypoint() {
	if len(f.waypoints) == 0 {
		return
	}
	f.waypoints = f.waypoints[1:]
	f.direction = directionUnknown
}

func (f *F35) nearWaypoint() bool {
	return core.FlatDistance(f.pos, f.waypoints[0]) < f.settings.WaypointTolerance*f.settings.WorldScale
}

func (f *F35) updateSpeed(dt float64) {
	target := f.state.targetSpeed(&f.settings)
	accel := f.state.acceleration(&f.settings)
	switch {
	case f.speed < target:
		f.speed = math.Min(f.speed+accel*dt, target)
	case f.speed > target:
		f.speed = math.Max(f.speed-accel*dt, target)
	}
}

// move flies toward the head waypoint and returns the signed bearing to it
func (f *F35) move(dt float64) float64 {
	if f.state.OnLift() {
		return 0
	}
	f.updateSpeed(dt)
	scale := f.settings.WorldScale

	if len(f.waypoints) == 0 {
		f.pos = f.pos.Add(core.HeadingVector(f.heading).Scale(f.speed * scale * dt))
		return 0
	}

	delta := f.waypoints[0].Sub(f.pos)
	dy := delta.Y
	if !f.state.InAir() {
		dy = 0
	}

	var angle float64
	if flat := delta.Flat(); flat.Len() > 1e-9 {
		angle = core.DeltaAngle(f.heading, flat.Heading())
	}

	mult := 1.0
	if f.state == Launching {
		mult = 2
	}
	climb := core.Clamp(dy, -f.settings.ClimbRate, f.settings.ClimbRate) * scale * mult * dt
	if math.Abs(climb) > math.Abs(dy) {
		climb = dy
	}

	f.rotateTowards(angle, dt)
	f.pos = f.pos.Add(core.HeadingVector(f.heading).Scale(f.speed * scale * dt)).Add(core.V3(0, climb, 0))
	f.detectOvershoot(angle)
	return angle
}

func (f *F35) rotateTowards(angle, dt float64) {
	// Hold course after an overshoot
	if f.env.Now() < f.overshootHoldUntil {
		return
	}
	rate := f.settings.GroundTurnRate
	if f.state.InAir() {
		rate = f.settings.AirTurnRate * core.Lerp(1, f.speed, f.settings.AirTurnRateSpeedCoefficient)
	}
	turn := rate * dt
	f.heading = core.Wrap360(f.heading + core.Clamp(angle, -turn, turn))
}

func (f *F35) detectOvershoot(angle float64) {
	wasAhead := f.direction == directionAhead
	if math.Abs(angle) < 90 {
		f.direction = directionAhead
	} else {
		f.direction = directionBehind
	}
	if wasAhead && f.direction != directionAhead {
		f.overshootHoldUntil = f.env.Now() + f.settings.OvershootHoldTime
	}
}

func (f *F35) actuateGear(dt float64) {
	want := f.state.gearState()
	switch {
	case want == GearLowering && (f.gear == GearLowered || f.gear == GearLowering):
	case want == GearRaising && (f.gear == GearRaised || f.gear == GearRaising):
	default:
		f.gear = want
		f.env.Audio.Play(audio.SndLandingGear, f.pos, 0.3)
	}
	if f.gear == GearLowered || f.gear == GearRaised {
		return
	}

	total := f.settings.GearDoorTime*2 + f.settings.GearActuateTime
	dir := -1.0
	if f.gear == GearRaising {
		dir = 1
	}
	f.gearProgress = core.Clamp01(f.gearProgress + dt/total*dir)

	switch {
	case f.gearProgress >= 1 && f.gear == GearRaising:
		f.gear = GearRaised
	case f.gearProgress <= 0 && f.gear == GearLowering:
		f.gear = GearLowered
	}
}

func (f *F35) setBayOpen(side Side, open bool) {
	b := &f.bays[side]
	switch {
	case open && (b.State == BayOpen || b.State == BayOpening):
	case !open && (b.State == BayClosed || b.State == BayClosing):
	case open:
		b.State = BayOpening
	default:
		b.State = BayClosing
	}
}

func (f *F35) actuateBay(side Side, dt float64) {
	b := &f.bays[side]
	if b.State == BayClosed || b.State == BayOpen {
		return
	}
	dir := -1.0
	if b.State == BayOpening {
		dir = 1
	}
	b.Progress = core.Clamp01(b.Progress + dt/f.settings.BayActuateTime*dir)
	door := core.EaseInOutQuad(b.Progress)
	switch {
	case door >= 1 && b.State == BayOpening:
		b.State = BayOpen
	case door <= 0 && b.State == BayClosing:
		b.State = BayClosed
	}
}

func (f *F35) crash() {
	f.fallSpeed = 0
	f.choreography.StopAll()
	for _, s := range []*Strike{f.strike, f.launching} {
		if s != nil {
			f.abandon(s)
		}
	}
	f.strike = nil
	f.launching = nil
}

func (f *F35) fall(dt float64) {
	if f.wrecked {
		return
	}
	f.fallSpeed += crashGravity * dt
	f.pos = f.pos.Add(core.HeadingVector(f.heading).Scale(f.speed * f.settings.WorldScale * dt))
	f.pos.Y -= f.fallSpeed * dt
	if f.pos.Y <= 0 {
		f.pos.Y = 0
		f.speed = 0
		f.wrecked = true
	}
}

func (f *F35) Position() core.Vec3       { return f.pos }
func (f *F35) FlightFraction() float64   { return 0 }
func (f *F35) DistanceToTarget() float64 { return -1 }
func (f *F35) FollowFinishTime() float64 { return weapons.NotFinished }
func (f *F35) FollowZoom() float64       { return f.settings.FollowOriginZoom }
