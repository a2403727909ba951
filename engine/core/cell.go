package core

import "fmt"

// Cell is a grid coordinate
type Cell struct {
	X, Y int
}

func C(x, y int) Cell { return Cell{x, y} }

func (c Cell) Add(o Cell) Cell { return Cell{c.X + o.X, c.Y + o.Y} }

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Neighbours4 returns the orthogonal neighbours of c (unbounded)
func (c Cell) Neighbours4() [4]Cell {
	return [4]Cell{
		{c.X, c.Y - 1},
		{c.X + 1, c.Y},
		{c.X, c.Y + 1},
		{c.X - 1, c.Y},
	}
}

// Direction is the cardinal heading of a vessel on its grid
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

var Directions = [4]Direction{North, East, South, West}

// Step is the unit cell offset along the direction. North decreases y.
func (d Direction) Step() Cell {
	switch d {
	case North:
		return Cell{0, -1}
	case East:
		return Cell{1, 0}
	case South:
		return Cell{0, 1}
	case West:
		return Cell{-1, 0}
	}
	panic(OutOfRange("direction", d))
}

// Next rotates clockwise
func (d Direction) Next() Direction {
	switch d {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	case West:
		return North
	}
	panic(OutOfRange("direction", d))
}

// Prev rotates counter-clockwise
func (d Direction) Prev() Direction {
	switch d {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	case East:
		return North
	}
	panic(OutOfRange("direction", d))
}

// Heading is the world bearing in degrees for the direction
func (d Direction) Heading() float64 {
	switch d {
	case North:
		return 0
	case East:
		return 90
	case South:
		return 180
	case West:
		return 270
	}
	panic(OutOfRange("direction", d))
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Footprint returns the ordered cells covered by a run of length cells centred
// on pos. Offsets run from -length/2 along the direction step.
func Footprint(pos Cell, dir Direction, length int) []Cell {
	step := dir.Step()
	cells := make([]Cell, length)
	for i := 0; i < length; i++ {
		off := i - length/2
		cells[i] = Cell{pos.X + step.X*off, pos.Y + step.Y*off}
	}
	return cells
}

// Layer is a visibility tag. LayerAll is seen by every commander; other
// layers are private to one commander.
type Layer int

const LayerAll Layer = 0

// LayerFor returns the private layer of the commander at the given seat
func LayerFor(seat int) Layer { return Layer(seat + 1) }

// OutOfRange builds the panic value for an enum value with no handling branch
func OutOfRange(name string, v any) error {
	return fmt.Errorf("argument out of range: %s = %v", name, v)
}
