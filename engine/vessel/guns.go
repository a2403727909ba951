package vessel

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

var (
	battleshipMounts = []core.Vec3{{X: 0, Y: 6, Z: 30}, {X: 0, Y: 7, Z: 15}, {X: 0, Y: 6, Z: -30}}
	lcsMounts        = []core.Vec3{{X: 0, Y: 4, Z: 12}}
)

// Battery is a set of gun turrets firing one package each per shot
type Battery struct {
	v             *Vessel
	turrets       []*weapons.GunTurret
	mounts        []core.Vec3
	burstCount    int
	burstInterval float64
}

func newBattery(v *Vessel, settings weapons.TurretSettings, mounts []core.Vec3, burstCount int, burstInterval float64) *Battery {
	b := &Battery{v: v, mounts: mounts, burstCount: burstCount, burstInterval: burstInterval}
	for range mounts {
		b.turrets = append(b.turrets, weapons.NewGunTurret(v.env, settings, v.armory.Shells, core.Vec3{}, 0))
	}
	return b
}

// Every battleship turret fires a single salvo together
func newBattleshipBattery(v *Vessel) armament {
	return newBattery(v, v.settings.Battleship.Turret, battleshipMounts, 1, 0)
}

// The LCS deck gun fires a burst
func newLCSBattery(v *Vessel) armament {
	s := v.settings.LCS
	return newBattery(v, s.Turret, lcsMounts, s.BurstCount, s.BurstInterval)
}

// Turrets exposes the battery's guns
func (b *Battery) Turrets() []*weapons.GunTurret { return b.turrets }

func (b *Battery) prepare(layer core.Layer) (weapons.Payload, *weapons.FollowProxy, bool) {
	payload := weapons.GunsPayload{Packages: make([]*weapons.FirePackage, len(b.turrets))}
	for i, t := range b.turrets {
		payload.Packages[i] = t.PrepareFirePackage(layer, b.burstCount)
	}
	return payload, payload.Packages[0].Follow, true
}

func (b *Battery) FireReservation(r *weapons.Reservation, target core.Vec3, targetIsVessel bool, onImpact func()) {
	payload := r.Payload.(weapons.GunsPayload)
	fuse := weapons.FuseFor(targetIsVessel)
	for i, t := range b.turrets {
		t.Submit(payload.Packages[i], target, onImpact, b.burstInterval, fuse)
	}
}

func (b *Battery) ReleaseReservation(r *weapons.Reservation) {
	payload := r.Payload.(weapons.GunsPayload)
	for i, t := range b.turrets {
		t.ReleaseFirePackage(payload.Packages[i])
	}
}

func (b *Battery) mount() {
	heading := b.v.Heading()
	for i, t := range b.turrets {
		t.Mount(b.v.ToWorld(b.mounts[i]), heading)
	}
}

// A capsizing hull locks its turrets; queued packages stay queued
func (b *Battery) capsize(_ float64, capsizing bool) {
	for _, t := range b.turrets {
		t.Lock(capsizing)
	}
}

func (b *Battery) update(float64) {}
func (b *Battery) enable()        {}

func (b *Battery) terminate() {
	for _, t := range b.turrets {
		b.v.env.World.RemoveSystem(t)
	}
}
