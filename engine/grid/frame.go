package grid

import (
	"math"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// Frame places a grid in the world. The grid is centred on Origin and turned
// by Angle degrees; rows run toward the grid's local -Z.
type Frame struct {
	Origin core.Vec3
	Angle  float64
	Pitch  float64
}

// Ring spaces count grids evenly around a circle of radius, grid index at
// bearing index*360/count
func Ring(index, count int, radius, pitch float64) Frame {
	angle := 0.0
	if count > 0 {
		angle = float64(index) * 360 / float64(count)
	}
	return Frame{
		Origin: core.HeadingVector(angle).Scale(radius),
		Angle:  angle,
		Pitch:  pitch,
	}
}

// CellCenter is the world position of the middle of cell c at sea level
func (g *Grid) CellCenter(c core.Cell) core.Vec3 {
	f := g.frame
	local := core.V3(
		(float64(c.X)-(float64(g.width)/2-0.5))*f.Pitch,
		0,
		-(float64(c.Y)-(float64(g.height)/2-0.5))*f.Pitch,
	)
	return f.Origin.Add(local.RotateY(f.Angle))
}

// CellForPosition is the cell under a world position. The result may lie
// outside the grid.
func (g *Grid) CellForPosition(p core.Vec3) core.Cell {
	f := g.frame
	local := p.Sub(f.Origin).RotateY(-f.Angle)
	return core.Cell{
		X: int(math.Round(local.X/f.Pitch + float64(g.width)/2 - 0.5)),
		Y: int(math.Round(-local.Z/f.Pitch + float64(g.height)/2 - 0.5)),
	}
}

// CellTarget is the point an attack on cell c aims at
func (g *Grid) CellTarget(c core.Cell) core.Vec3 { return g.CellCenter(c) }

// Frame is the grid's world placement
func (g *Grid) Frame() Frame { return g.frame }
