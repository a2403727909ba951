package audio

import (
	"math"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// SoundID identifies a sound effect
type SoundID string

const (
	SndCapsize         SoundID = "capsize"
	SndGunFire         SoundID = "gun_fire"
	SndShellExplosion  SoundID = "shell_explosion"
	SndSplash          SoundID = "splash"
	SndMissileLaunch   SoundID = "missile_launch"
	SndMissileImpact   SoundID = "missile_impact"
	SndHatch           SoundID = "hatch"
	SndTakeoff         SoundID = "takeoff"
	SndTouchdown       SoundID = "touchdown"
	SndTargetConfirmed SoundID = "target_confirmed"
	SndLaunchWarning   SoundID = "launch_warning"
	SndVictory         SoundID = "victory"
	SndTurretRotate    SoundID = "turret_rotate"
	SndLift            SoundID = "lift"
	SndLandingGear     SoundID = "landing_gear"
	SndArrest          SoundID = "arrest"
)

// Sink plays sounds. Positions are world coordinates; a sink may ignore them.
type Sink interface {
	Play(id SoundID, pos core.Vec3, volume float64)
}

// Discard is a Sink that plays nothing
var Discard Sink = discard{}

type discard struct{}

func (discard) Play(SoundID, core.Vec3, float64) {}

// Cue is one sound the manager accepted
type Cue struct {
	ID     SoundID
	Pos    core.Vec3
	Volume float64
	Until  float64
}

// Manager mixes effects by listener distance and limits simultaneous voices.
// Playback itself belongs to the presentation layer, which drains Recent.
type Manager struct {
	MasterVolume  float64
	EffectVolume  float64
	MaxVoices     int
	MaxDistance   float64
	VoiceDuration float64
	Listener      core.Vec3

	clock  func() float64
	active []Cue
	recent []Cue
}

// NewManager creates a manager; clock supplies the current simulation time
func NewManager(clock func() float64) *Manager {
	return &Manager{
		MasterVolume:  1.0,
		EffectVolume:  0.8,
		MaxVoices:     10,
		MaxDistance:   1000,
		VoiceDuration: 2,
		clock:         clock,
	}
}

// SetListener updates the listener position for positional audio
func (am *Manager) SetListener(pos core.Vec3) {
	am.Listener = pos
}

// Play accepts a sound if a voice is free and it is audible
func (am *Manager) Play(id SoundID, pos core.Vec3, volume float64) {
	now := am.clock()
	am.expire(now)
	if len(am.active) >= am.MaxVoices {
		return
	}
	vol := am.calcVolume(pos) * volume
	if vol <= 0 {
		return
	}
	cue := Cue{ID: id, Pos: pos, Volume: vol, Until: now + am.VoiceDuration}
	am.active = append(am.active, cue)
	am.recent = append(am.recent, cue)
}

// Recent returns and clears the cues accepted since the last call
func (am *Manager) Recent() []Cue {
	out := am.recent
	am.recent = nil
	return out
}

// Voices returns the number of sounds still playing
func (am *Manager) Voices() int {
	am.expire(am.clock())
	return len(am.active)
}

func (am *Manager) expire(now float64) {
	kept := am.active[:0]
	for _, c := range am.active {
		if c.Until > now {
			kept = append(kept, c)
		}
	}
	am.active = kept
}

// calcVolume computes volume based on distance from the listener
func (am *Manager) calcVolume(pos core.Vec3) float64 {
	dist := pos.Sub(am.Listener).Len()
	if dist >= am.MaxDistance {
		return 0
	}
	return (1.0 - dist/am.MaxDistance) * am.EffectVolume * am.MasterVolume
}

// SetVolume sets master volume (0-1)
func (am *Manager) SetVolume(v float64) {
	am.MasterVolume = math.Max(0, math.Min(1, v))
}
