package render

import (
	"math"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/match"
)

// Shot is where the camera should look and how close
type Shot struct {
	Center core.Vec3
	Zoom   float64
}

// Director turns the attack choreography into camera shots
type Director struct {
	// Overview shows every grid
	Overview Shot
	// Close is the zoom used for a follow target whose follow zoom is 1.
	// Larger follow zooms pull the camera back.
	Close float64
	// Board is the zoom used when holding on the target grid
	Board float64
}

// NewDirector frames a ring of grids of the given radius and side
func NewDirector(cam *Camera, ringRadius, gridSide float64) *Director {
	return &Director{
		Overview: Shot{Zoom: cam.FitZoom(2*ringRadius + 2*gridSide)},
		Close:    cam.FitZoom(gridSide / 2),
		Board:    cam.FitZoom(gridSide * 1.5),
	}
}

// ShotFor is the camera shot for v; Idle frames the overview
func (d *Director) ShotFor(v match.View) Shot {
	switch v.Stage {
	case match.ViewIdle:
		return d.Overview
	case match.PanToAttackOrigin:
		t := core.EaseInOutQuad(core.Clamp01(v.Progress))
		origin := d.follow(v)
		return Shot{
			Center: d.Overview.Center.Lerp(origin.Center, t),
			Zoom:   core.Lerp(d.Overview.Zoom, origin.Zoom, t),
		}
	case match.DwellOnAttackOrigin, match.Follow:
		return d.follow(v)
	case match.TargetGrid:
		if v.Grid == nil {
			return d.Overview
		}
		return Shot{Center: v.Grid.CellCenter(v.Cell), Zoom: d.Board}
	}
	panic(core.OutOfRange("view stage", v.Stage))
}

func (d *Director) follow(v match.View) Shot {
	if v.Follow == nil {
		return d.Overview
	}
	return Shot{
		Center: v.Follow.Position().Flat(),
		Zoom:   d.Close / math.Max(v.Follow.FollowZoom(), 0.1),
	}
}
