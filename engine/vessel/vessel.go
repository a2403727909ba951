package vessel

import (
	"fmt"
	"math"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/logging"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

// Frame places grid cells in the world
type Frame interface {
	CellCenter(c core.Cell) core.Vec3
}

// PlainFrame lays cells out on the board plane at Pitch spacing from the
// origin, rows running toward -Z so that North is a heading of 0
type PlainFrame struct {
	Pitch float64
}

func (f PlainFrame) CellCenter(c core.Cell) core.Vec3 {
	return core.V3(float64(c.X)*f.Pitch, 0, -float64(c.Y)*f.Pitch)
}

// armament is the class-specific weapon system behind a vessel
type armament interface {
	weapons.Handler
	prepare(layer core.Layer) (weapons.Payload, *weapons.FollowProxy, bool)
	update(dt float64)
	mount()
	capsize(progress float64, capsizing bool)
	enable()
	terminate()
}

// Vessel is one ship of a fleet. Its cells burn individually; once every cell
// is on fire it capsizes and stays a wreck.
type Vessel struct {
	env      weapons.Env
	settings *Settings
	armory   *Armory
	log      logging.Logger
	kind     Kind
	length   int
	ID       core.EntityID
	Name     string

	frame  Frame
	pos    core.Cell
	dir    core.Direction
	layer  core.Layer
	moving bool

	onFire   []bool
	capsized float64
	arms     armament
}

// New builds a vessel of kind and registers it with the world
func New(env weapons.Env, settings *Settings, armory *Armory, kind Kind, name string) *Vessel {
	v := &Vessel{
		env:      env,
		settings: settings,
		armory:   armory,
		log:      env.Log.With("vessel", name),
		kind:     kind,
		length:   kind.Length(),
		ID:       core.NewEntityID(),
		Name:     name,
		frame:    PlainFrame{Pitch: 1},
		dir:      core.East,
	}
	v.onFire = make([]bool, v.length)
	v.arms = armFor(v)
	v.arms.mount()
	env.World.AddSystem(v)
	return v
}

func (v *Vessel) Priority() int { return 10 }

func (v *Vessel) Kind() Kind                { return v.kind }
func (v *Vessel) Length() int               { return v.length }
func (v *Vessel) GridPosition() core.Cell   { return v.pos }
func (v *Vessel) Direction() core.Direction { return v.dir }
func (v *Vessel) Layer() core.Layer         { return v.layer }
func (v *Vessel) ClassName() string         { return v.kind.ClassName() }

// Ident is the two line label shown for the vessel
func (v *Vessel) Ident() string { return fmt.Sprintf("%s\nCLASS: %s", v.Name, v.ClassName()) }

// SetFrame attaches the vessel to a grid's world transform
func (v *Vessel) SetFrame(f Frame) {
	v.frame = f
	v.arms.mount()
}

func (v *Vessel) SetGridPosition(c core.Cell) {
	v.pos = c
	v.arms.mount()
}

func (v *Vessel) SetDirection(d core.Direction) {
	d.Step() // panics for unknown directions
	v.dir = d
	v.arms.mount()
}

// SetMoving flags the vessel as picked up during placement
func (v *Vessel) SetMoving(moving bool) { v.moving = moving }

func (v *Vessel) IsMoving() bool { return v.moving }

func (v *Vessel) SetLayer(l core.Layer) { v.layer = l }

// OccupiedCells is the footprint at the vessel's position and direction
func (v *Vessel) OccupiedCells() []core.Cell {
	return core.Footprint(v.pos, v.dir, v.length)
}

func (v *Vessel) cellIndex(c core.Cell) int {
	for i, cell := range v.OccupiedCells() {
		if cell == c {
			return i
		}
	}
	return -1
}

// IsOnFire reports whether the vessel cell at grid position c burns
func (v *Vessel) IsOnFire(c core.Cell) bool {
	i := v.cellIndex(c)
	return i >= 0 && v.onFire[i]
}

// SetOnFire sets the fire state of the cell at c. Cells of a wreck stay on fire.
func (v *Vessel) SetOnFire(c core.Cell, onFire bool) {
	i := v.cellIndex(c)
	if i < 0 || v.onFire[i] == onFire {
		return
	}
	wasDestroyed := v.IsDestroyed()
	if wasDestroyed {
		return
	}
	v.onFire[i] = onFire
	if v.IsDestroyed() {
		v.log.Info("vessel destroyed", "class", v.ClassName())
		v.env.Play(audio.SndCapsize, v.Center())
	}
}

// IsDestroyed reports whether every cell is on fire
func (v *Vessel) IsDestroyed() bool {
	for _, burning := range v.onFire {
		if !burning {
			return false
		}
	}
	return len(v.onFire) > 0
}

// CellsOnFire is the number of burning cells
func (v *Vessel) CellsOnFire() int {
	n := 0
	for _, burning := range v.onFire {
		if burning {
			n++
		}
	}
	return n
}

// Center is the world position of the middle of the footprint
func (v *Vessel) Center() core.Vec3 {
	cells := v.OccupiedCells()
	bow := v.frame.CellCenter(cells[len(cells)-1])
	stern := v.frame.CellCenter(cells[0])
	return stern.Lerp(bow, 0.5)
}

// Heading is the world bearing of the bow
func (v *Vessel) Heading() float64 {
	cells := v.OccupiedCells()
	return v.frame.CellCenter(cells[len(cells)-1]).Sub(v.frame.CellCenter(cells[0])).Heading()
}

// ToWorld maps a point in the vessel's frame (+Z toward the bow) to the world
func (v *Vessel) ToWorld(local core.Vec3) core.Vec3 {
	return v.Center().Add(local.RotateY(v.Heading()))
}

// DeckHeight is the height of the main deck above the waterline
func (v *Vessel) DeckHeight() float64 { return v.kind.capability().deck }

// Capsize is the capsize progress in [0, 1]
func (v *Vessel) Capsize() float64 { return v.capsized }

// Roll and Sink are the capsize pose
func (v *Vessel) Roll() float64 { return v.capsized * v.settings.CapsizeAngle }
func (v *Vessel) Sink() float64 { return v.capsized * v.settings.CapsizeDepth }

// PrepareToFire reserves one shot's worth of the vessel's weapon. It fails
// without side effects when nothing is available or the vessel is destroyed.
func (v *Vessel) PrepareToFire(layer core.Layer) (*weapons.Reservation, bool) {
	if v.IsDestroyed() {
		return nil, false
	}
	payload, follow, ok := v.arms.prepare(layer)
	if !ok {
		return nil, false
	}
	v.log.Debug("prepared to fire", "kind", payload.ReservationKind())
	return weapons.NewReservation(v.Name, v.arms, payload, follow, v.env.Now()+v.settings.ReservationTTL), true
}

// Battery, Hatches, Silos and FlightDeck expose the class weapon system;
// ok is false for vessels of another class
func (v *Vessel) Battery() (*Battery, bool) {
	b, ok := v.arms.(*Battery)
	return b, ok
}

func (v *Vessel) Hatches() (*Hatches, bool) {
	h, ok := v.arms.(*Hatches)
	return h, ok
}

func (v *Vessel) Silos() (*Silos, bool) {
	s, ok := v.arms.(*Silos)
	return s, ok
}

func (v *Vessel) FlightDeck() (*FlightDeck, bool) {
	d, ok := v.arms.(*FlightDeck)
	return d, ok
}

// Enable starts any activity that waits for combat to begin
func (v *Vessel) Enable() { v.arms.enable() }

// Terminate removes the vessel and everything it spawned from the world
func (v *Vessel) Terminate() {
	v.arms.terminate()
	v.env.World.RemoveSystem(v)
}

func (v *Vessel) Update(_ *core.World, dt float64) {
	v.updateCapsize(dt)
	v.arms.update(dt)
}

func (v *Vessel) updateCapsize(dt float64) {
	destroyed := v.IsDestroyed()
	step := dt / v.settings.CapsizeDuration
	if !destroyed {
		step = -step
	}
	next := core.Clamp01(v.capsized + step)
	if math.Abs(next-v.capsized) < 1e-6 {
		return
	}
	v.capsized = next
	v.arms.capsize(next, destroyed)
}
