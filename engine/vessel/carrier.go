package vessel

import (
	"fmt"
	"math"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/aircraft"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

const (
	runwayAltitude = 8
	hangarAltitude = 2
	liftTravel     = runwayAltitude - hangarAltitude
	readyAircraft  = 2
)

// Flight deck paths in the carrier's frame. Flight paths have their altitude
// replaced by the aircraft's cruise altitude.
var deckPaths = map[aircraft.WaypointKind][]core.Vec3{
	aircraft.UpLift:         {{X: 0, Y: hangarAltitude, Z: -5}, {X: 8, Y: hangarAltitude, Z: 0}},
	aircraft.CatapultStart:  {{X: -4, Y: runwayAltitude, Z: 20}},
	aircraft.CatapultEnd:    {{X: -4, Y: runwayAltitude, Z: 62}, {X: -4, Y: 30, Z: 160}},
	aircraft.PatrolRoute:    {{X: -150, Z: 150}, {X: 150, Z: 150}, {X: 150, Z: -150}, {X: -150, Z: -150}},
	aircraft.HoldingPattern: {{X: -100, Z: -200}, {X: 100, Z: -200}},
	aircraft.Approach:       {{X: 0, Y: 40, Z: -260}, {X: 0, Y: runwayAltitude + 1, Z: -70}},
	aircraft.Arrestors:      {{X: 0, Y: runwayAltitude, Z: -30}},
	aircraft.DownLift:       {{X: -8, Y: runwayAltitude, Z: -30}},
	aircraft.ParkingStand:   {{X: 0, Y: hangarAltitude, Z: -45}, {X: 14, Y: hangarAltitude, Z: -50}},
}

// AircraftPayload is a strike claimed from a patrolling aircraft
type AircraftPayload struct {
	Aircraft *aircraft.F35
	Strike   *aircraft.Strike
}

func (AircraftPayload) ReservationKind() weapons.ReservationKind { return weapons.ReserveAircraft }

// lift is one of the deck elevators between the hangar and the runway.
// progress runs from 0 (raised) to 1 (lowered).
type lift struct {
	local    core.Vec3
	state    aircraft.LiftState
	moving   bool
	progress float64
	rider    aircraft.Rider
}

// FlightDeck is the carrier's air wing and the runway it flies from
type FlightDeck struct {
	v        *Vessel
	settings CarrierSettings
	aircraft []*aircraft.F35
	lifts    [2]lift

	landingBusy  bool
	takeoffBusy  bool
	enabled      []bool
	nextActivate float64
	schedule     core.Scheduler
}

func newFlightDeck(v *Vessel) armament {
	d := &FlightDeck{
		v:        v,
		settings: v.settings.Carrier,
		lifts: [2]lift{
			{local: core.V3(8, runwayAltitude, 0)},
			{local: core.V3(-8, runwayAltitude, -30)},
		},
		nextActivate: math.MaxFloat64,
	}
	for i := range d.settings.AircraftCount {
		name := fmt.Sprintf("%s F35 %d", v.Name, i+1)
		f := aircraft.New(v.env, d.settings.Aircraft, d, v.armory.JSMs, name, core.Vec3{}, 0)
		if i < readyAircraft {
			f.SetPendingState(aircraft.TaxiingForTakeoff)
		}
		d.aircraft = append(d.aircraft, f)
		d.enabled = append(d.enabled, false)
	}
	return d
}

// Aircraft is the carrier's air wing
func (d *FlightDeck) Aircraft() []*aircraft.F35 { return d.aircraft }

// Lift reports the state of lift i and whether it is moving
func (d *FlightDeck) Lift(i int) (aircraft.LiftState, bool) {
	return d.lifts[i].state, d.lifts[i].moving
}

// LiftHeight is the world height of lift i's platform
func (d *FlightDeck) LiftHeight(i int) float64 {
	return d.v.Center().Y + runwayAltitude - liftTravel*core.EaseInOutQuad(d.lifts[i].progress)
}

func (d *FlightDeck) RunwayWaypoints(kind aircraft.WaypointKind) []core.Vec3 {
	path, ok := deckPaths[kind]
	if !ok {
		panic(core.OutOfRange("waypoint kind", kind))
	}
	wps := make([]core.Vec3, len(path))
	for i, p := range path {
		wps[i] = d.v.ToWorld(p)
	}
	return wps
}

func (d *FlightDeck) closestLift(pos core.Vec3) int {
	best, bestDist := 0, math.MaxFloat64
	for i := range d.lifts {
		if dist := core.FlatDistance(pos, d.v.ToWorld(d.lifts[i].local)); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func (d *FlightDeck) OperateLift(pos core.Vec3, target aircraft.LiftState, rider aircraft.Rider) {
	l := &d.lifts[d.closestLift(pos)]
	if rider != nil {
		l.rider = rider
	}
	l.state = target
	l.moving = true
	d.v.env.Play(audio.SndLift, d.v.ToWorld(l.local))
}

func (d *FlightDeck) LiftState(pos core.Vec3) (aircraft.LiftState, bool) {
	l := &d.lifts[d.closestLift(pos)]
	if l.moving {
		return l.state, false
	}
	return l.state, true
}

func (d *FlightDeck) RequestLandingClearance() bool {
	if d.landingBusy || d.IsDestroyed() {
		return false
	}
	d.landingBusy = true
	return true
}

// ReleaseLandingClearance frees the runway and brings the down lift back up
func (d *FlightDeck) ReleaseLandingClearance() {
	d.landingBusy = false
	d.OperateLift(d.v.ToWorld(d.lifts[1].local), aircraft.LiftRaised, nil)
}

func (d *FlightDeck) RequestTakeoffClearance() bool {
	if d.takeoffBusy || d.IsDestroyed() {
		return false
	}
	d.takeoffBusy = true
	return true
}

func (d *FlightDeck) ReleaseTakeoffClearance() { d.takeoffBusy = false }

func (d *FlightDeck) IsDestroyed() bool { return d.v.IsDestroyed() }

// prepare claims a strike from the patrolling aircraft with the least fuel
// that can still afford one
func (d *FlightDeck) prepare(layer core.Layer) (weapons.Payload, *weapons.FollowProxy, bool) {
	var chosen *aircraft.F35
	for _, f := range d.aircraft {
		if !f.IsOnPatrol() || f.FuelMargin() <= d.settings.FuelToFireLimit {
			continue
		}
		if chosen == nil || f.Fuel() < chosen.Fuel() {
			chosen = f
		}
	}
	if chosen == nil {
		d.v.log.Debug("No patrolling plane can fire")
		return nil, nil, false
	}
	strike, ok := chosen.PrepareToFire(layer)
	if !ok {
		d.v.log.Debug("Patrolling plane is not ready to fire!", "aircraft", chosen.Name)
		return nil, nil, false
	}
	return AircraftPayload{Aircraft: chosen, Strike: strike}, strike.Follow(), true
}

func (d *FlightDeck) FireReservation(r *weapons.Reservation, target core.Vec3, targetIsVessel bool, onImpact func()) {
	p := r.Payload.(AircraftPayload)
	p.Aircraft.FireAtTarget(p.Strike, target, onImpact, targetIsVessel)
}

func (d *FlightDeck) ReleaseReservation(r *weapons.Reservation) {
	p := r.Payload.(AircraftPayload)
	p.Aircraft.CancelStrike(p.Strike)
}

// mount parks aircraft that have not been released yet: the two ready
// aircraft behind the catapult, the rest on the hangar stand
func (d *FlightDeck) mount() {
	catapult := deckPaths[aircraft.CatapultStart][0]
	stands := deckPaths[aircraft.ParkingStand]
	stand := stands[len(stands)-1]
	heading := d.v.Heading()
	for i, f := range d.aircraft {
		if d.enabled[i] {
			continue
		}
		var local core.Vec3
		if i < readyAircraft {
			local = catapult.Add(core.V3(10*float64(i), 0, 0))
		} else {
			local = stand.Add(core.V3(-6*float64(i), 0, 0))
		}
		f.Place(d.v.ToWorld(local), heading)
	}
}

// enable releases the ready aircraft one after the other; the rest follow
// at the activation interval
func (d *FlightDeck) enable() {
	d.schedule.Run(
		core.Wait("first aircraft", d.settings.EnableDelay),
		core.Do("release first", func() { d.release(0) }),
		core.Wait("second aircraft", d.settings.SecondEnableDelay),
		core.Do("release second", func() {
			d.release(1)
			d.nextActivate = d.v.env.Now()
		}),
	)
}

func (d *FlightDeck) release(i int) {
	if i >= len(d.aircraft) || d.enabled[i] {
		return
	}
	d.enabled[i] = true
	d.aircraft[i].PatrolEnabled = true
	d.v.log.Debug("aircraft released", "aircraft", d.aircraft[i].Name)
}

func (d *FlightDeck) maybeActivate() {
	now := d.v.env.Now()
	if now < d.nextActivate+d.settings.ActivateInterval {
		return
	}
	for i := range d.aircraft {
		if !d.enabled[i] {
			d.release(i)
			d.nextActivate = now
			return
		}
	}
	d.nextActivate = math.MaxFloat64
}

func (d *FlightDeck) update(dt float64) {
	if d.IsDestroyed() {
		return
	}
	d.schedule.Update(dt)
	if d.nextActivate != math.MaxFloat64 {
		d.maybeActivate()
	}
	for i := range d.lifts {
		d.actuateLift(i, dt)
	}
}

func (d *FlightDeck) actuateLift(i int, dt float64) {
	l := &d.lifts[i]
	if !l.moving {
		return
	}
	step := core.Clamp01(dt / d.settings.LiftTravelTime)
	if l.state == aircraft.LiftRaised {
		step = -step
	}
	l.progress = core.Clamp01(l.progress + step)
	if l.rider != nil {
		l.rider.SetAltitude(d.LiftHeight(i))
	}
	if (l.state == aircraft.LiftRaised && l.progress == 0) || (l.state == aircraft.LiftLowered && l.progress == 1) {
		l.moving = false
		l.rider = nil
	}
}

func (d *FlightDeck) capsize(float64, bool) {}

func (d *FlightDeck) terminate() {
	d.schedule.StopAll()
	for _, f := range d.aircraft {
		d.v.env.World.RemoveSystem(f)
	}
}
