package vessel

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

const destroyerHatches = 8

// HatchPayload is a destroyer hatch with the missile loaded under it
type HatchPayload struct {
	Hatch   int
	Missile weapons.Missile
}

func (HatchPayload) ReservationKind() weapons.ReservationKind { return weapons.ReserveHatch }

// Hatches is the destroyer's vertical launch system: eight single-missile
// hatches, each reloaded once its missile's explosion has played out
type Hatches struct {
	v         *Vessel
	settings  DestroyerSettings
	pool      *weapons.Pool[weapons.Missile]
	available []int
	angles    [destroyerHatches]float64
	doors     core.Scheduler
}

func newHatches(v *Vessel) armament {
	h := &Hatches{v: v, settings: v.settings.Destroyer, pool: v.armory.Tomahawks}
	for i := range destroyerHatches {
		h.available = append(h.available, i)
	}
	return h
}

// Available is the number of loaded hatches
func (h *Hatches) Available() int { return len(h.available) }

// Angle is how far hatch i is open, in degrees
func (h *Hatches) Angle(i int) float64 { return h.angles[i] }

// hardpoint is the launch position under hatch i: two rows of four
func (h *Hatches) hardpoint(i int) core.Vec3 {
	row, col := i/4, i%4
	return h.v.ToWorld(core.V3(-3+2*float64(col), h.v.DeckHeight()-1, 18-36*float64(row)))
}

func (h *Hatches) prepare(layer core.Layer) (weapons.Payload, *weapons.FollowProxy, bool) {
	if len(h.available) == 0 {
		h.v.log.Warn("No available missiles to fire")
		return nil, nil, false
	}
	hatch := h.available[0]
	h.available = h.available[1:]

	m := h.pool.Take()
	m.Reset(h.hardpoint(hatch))
	m.SetLayer(layer)
	return HatchPayload{Hatch: hatch, Missile: m}, weapons.NewFollowProxy(m), true
}

func (h *Hatches) FireReservation(r *weapons.Reservation, target core.Vec3, targetIsVessel bool, onImpact func()) {
	p := r.Payload.(HatchPayload)
	fuse := weapons.FuseFor(targetIsVessel)

	h.v.env.Play(audio.SndHatch, h.hardpoint(p.Hatch))
	h.doors.Run(
		core.Phase{
			Name:     "open",
			Duration: h.settings.HatchOpenTime,
			OnStep:   func(t float64) { h.angles[p.Hatch] = t * 90 },
			OnDone:   func() { h.launch(p, target, fuse, onImpact) },
		},
		core.Phase{
			Name:     "close",
			Delay:    h.settings.HatchCloseDelay,
			Duration: h.settings.HatchCloseTime,
			OnStep:   func(t float64) { h.angles[p.Hatch] = (1 - t) * 90 },
		},
	)
}

func (h *Hatches) launch(p HatchPayload, target core.Vec3, fuse weapons.FuseResult, onImpact func()) {
	p.Missile.Launch(weapons.LaunchConfig{
		Origin: h.hardpoint(p.Hatch),
		Target: target,
		Layer:  p.Missile.Layer(),
		Fuse:   fuse,
		OnImpact: func(weapons.FuseResult) {
			if onImpact != nil {
				onImpact()
			}
		},
		OnExplosionComplete: func() { h.reload(p) },
		InFlight:            weapons.RevealAfterHalfFlight,
	})
}

func (h *Hatches) reload(p HatchPayload) {
	h.available = append(h.available, p.Hatch)
	h.pool.Return(p.Missile)
}

func (h *Hatches) ReleaseReservation(r *weapons.Reservation) {
	h.reload(r.Payload.(HatchPayload))
}

// Hatch doors keep moving after the destroyer is hit
func (h *Hatches) update(dt float64) { h.doors.Update(dt) }

func (h *Hatches) mount()                {}
func (h *Hatches) capsize(float64, bool) {}
func (h *Hatches) enable()               {}
func (h *Hatches) terminate()            { h.doors.StopAll() }
