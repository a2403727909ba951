package grid

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// adjacentFireBoost multiplies the score of cells next to a burning cell
const adjacentFireBoost = 20

// Density is a per-cell score of how likely a hidden vessel covers the cell
type Density struct {
	width  int
	height int
	scores []int
}

// At is the score of c; cells off the grid score zero
func (d Density) At(c core.Cell) int {
	if c.X < 0 || c.Y < 0 || c.X >= d.width || c.Y >= d.height {
		return 0
	}
	return d.scores[c.Y*d.width+c.X]
}

// Max is the highest scoring cell. Ties go to the first cell in row order.
func (d Density) Max() (core.Cell, int) {
	best, bestScore := core.Cell{}, -1
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			if s := d.scores[y*d.width+x]; s > bestScore {
				best, bestScore = core.Cell{X: x, Y: y}, s
			}
		}
	}
	return best, bestScore
}

// ProbabilityDensity scores every cell by the number of ways each surviving
// vessel could lie over it without covering a revealed cell. Cells next to a
// fire are boosted and cells that are no longer hidden score zero.
func (g *Grid) ProbabilityDensity() Density {
	d := Density{width: g.width, height: g.height, scores: make([]int, g.width*g.height)}

	for _, v := range g.attackVessels {
		g.addPlacements(d, v.Length())
	}

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := core.Cell{X: x, Y: y}
			if g.CellState(c) != OnFire {
				continue
			}
			for _, n := range c.Neighbours4() {
				if g.InGrid(n) {
					d.scores[g.index(n)] *= adjacentFireBoost
				}
			}
		}
	}

	for i, s := range g.states {
		if s != Hidden {
			d.scores[i] = 0
		}
	}
	return d
}

func (g *Grid) addPlacements(d Density, length int) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			pos := core.Cell{X: x, Y: y}
			for _, dir := range core.Directions {
				cells := core.Footprint(pos, dir, length)
				if !g.canHide(cells) {
					continue
				}
				for _, c := range cells {
					d.scores[g.index(c)]++
				}
			}
		}
	}
}

func (g *Grid) canHide(cells []core.Cell) bool {
	for _, c := range cells {
		if !g.InGrid(c) || g.CellState(c) == Revealed {
			return false
		}
	}
	return true
}
