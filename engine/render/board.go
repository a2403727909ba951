package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/grid"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/match"
)

// Palette colours (placeholder until real models)
var (
	SeaColor      = color.RGBA{12, 34, 64, 255}
	HiddenColor   = color.RGBA{28, 62, 104, 255}
	RevealedColor = color.RGBA{70, 110, 150, 255}
	HullColor     = color.RGBA{150, 150, 160, 255}
	WreckColor    = color.RGBA{60, 60, 60, 255}
	FireColor     = color.RGBA{255, 110, 20, 255}
	HoverColor    = color.RGBA{255, 255, 0, 140}
	DensityColor  = color.RGBA{255, 0, 80, 255}
)

// Board draws every grid of a match from above
type Board struct {
	Camera   *Camera
	Director *Director

	// Viewer sees its own fleet; everyone else only sees what fog allows
	Viewer *core.Commander
	// FollowAttack lets the director drive the camera
	FollowAttack bool
	ShowDensity  bool

	hover     *grid.Grid
	hoverCell core.Cell
}

// NewBoard frames a ring of grids built with settings
func NewBoard(screenW, screenH int, settings match.Settings) *Board {
	cam := NewCamera(screenW, screenH)
	side := float64(settings.GridSize) * settings.CellPitch
	d := NewDirector(cam, settings.RingRadius, side)
	cam.SetZoom(d.Overview.Zoom)
	return &Board{Camera: cam, Director: d, FollowAttack: true}
}

// Update moves the camera and tracks the cell under the cursor
func (b *Board) Update(ctrl *match.Controller, dt float64, mouseX, mouseY int) {
	if b.FollowAttack {
		b.Camera.Glide(b.Director.ShotFor(ctrl.View()), dt)
	}
	b.hover, b.hoverCell, _ = b.CellAt(ctrl, mouseX, mouseY)
}

// CellAt is the grid cell under a screen position
func (b *Board) CellAt(ctrl *match.Controller, sx, sy int) (*grid.Grid, core.Cell, bool) {
	p := b.Camera.ScreenToWorld(sx, sy)
	for _, g := range ctrl.Grids() {
		if c := g.CellForPosition(p); g.InGrid(c) {
			return g, c, true
		}
	}
	return nil, core.Cell{}, false
}

// Draw renders the sea, the grids, the attack in flight and the HUD
func (b *Board) Draw(screen *ebiten.Image, ctrl *match.Controller) {
	screen.Fill(SeaColor)

	for _, g := range ctrl.Grids() {
		b.drawGrid(screen, ctrl, g)
	}

	v := ctrl.View()
	if v.Stage != match.ViewIdle && v.Follow != nil {
		sx, sy := b.Camera.WorldToScreen(v.Follow.Position())
		vector.DrawFilledCircle(screen, sx, sy, 4, FireColor, true)
		if v.Grid != nil {
			tx, ty := b.Camera.WorldToScreen(v.Grid.CellTarget(v.Cell))
			vector.StrokeCircle(screen, tx, ty, 8, 1.5, FireColor, true)
		}
	}

	b.drawHUD(screen, ctrl, v)
}

func (b *Board) drawGrid(screen *ebiten.Image, ctrl *match.Controller, g *grid.Grid) {
	showFleet := g.Owner() == b.Viewer || ctrl.State() == match.Victory
	density, hasDensity := ctrl.LastDensity(g)
	_, peak := density.Max()

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := core.C(x, y)
			clr := CellColor(g.CellState(c), g.IsOccupied(c), showFleet)
			b.fillCell(screen, g, c, clr)

			if b.ShowDensity && hasDensity && peak > 0 {
				alpha := uint8(200 * density.At(c) / peak)
				b.fillCell(screen, g, c, color.RGBA{DensityColor.R, DensityColor.G, DensityColor.B, alpha})
			}
		}
	}

	teamColor := HullColor
	if s, ok := ctrl.Status(g.Owner()); ok {
		teamColor = core.TeamColor(s.ColorIndex)
	}
	b.strokeQuad(screen, GridQuad(g), 2, teamColor)

	if b.hover == g {
		b.strokeQuad(screen, CellQuad(g, b.hoverCell), 2, HoverColor)
	}

	ox, oy := b.Camera.WorldToScreen(g.Frame().Origin)
	ebitenutil.DebugPrintAt(screen, g.Owner().Name, int(ox)-20, int(oy)-8)
}

// CellColor is how a cell looks to a viewer; showFleet uncovers hidden hulls
func CellColor(state grid.CellState, occupied, showFleet bool) color.RGBA {
	switch state {
	case grid.OnFire:
		return FireColor
	case grid.Revealed:
		if occupied {
			return WreckColor
		}
		return RevealedColor
	case grid.Hidden:
		if occupied && showFleet {
			return HullColor
		}
		return HiddenColor
	}
	panic(core.OutOfRange("cell state", state))
}

// CellQuad is the world outline of cell c, counter-clockwise from above
func CellQuad(g *grid.Grid, c core.Cell) [4]core.Vec3 {
	f := g.Frame()
	h := f.Pitch / 2
	mid := g.CellCenter(c)
	return [4]core.Vec3{
		mid.Add(core.V3(-h, 0, -h).RotateY(f.Angle)),
		mid.Add(core.V3(h, 0, -h).RotateY(f.Angle)),
		mid.Add(core.V3(h, 0, h).RotateY(f.Angle)),
		mid.Add(core.V3(-h, 0, h).RotateY(f.Angle)),
	}
}

// GridQuad is the world outline of the whole grid
func GridQuad(g *grid.Grid) [4]core.Vec3 {
	f := g.Frame()
	hw := float64(g.Width()) * f.Pitch / 2
	hh := float64(g.Height()) * f.Pitch / 2
	return [4]core.Vec3{
		f.Origin.Add(core.V3(-hw, 0, -hh).RotateY(f.Angle)),
		f.Origin.Add(core.V3(hw, 0, -hh).RotateY(f.Angle)),
		f.Origin.Add(core.V3(hw, 0, hh).RotateY(f.Angle)),
		f.Origin.Add(core.V3(-hw, 0, hh).RotateY(f.Angle)),
	}
}

func (b *Board) fillCell(screen *ebiten.Image, g *grid.Grid, c core.Cell, clr color.RGBA) {
	q := CellQuad(g, c)
	var path vector.Path
	for i, p := range q {
		x, y := b.Camera.WorldToScreen(p)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	opts := &vector.DrawPathOptions{AntiAlias: true}
	opts.ColorScale.ScaleWithColor(clr)
	vector.FillPath(screen, &path, &vector.FillOptions{}, opts)
}

func (b *Board) strokeQuad(screen *ebiten.Image, q [4]core.Vec3, width float32, clr color.RGBA) {
	for i := range q {
		x0, y0 := b.Camera.WorldToScreen(q[i])
		x1, y1 := b.Camera.WorldToScreen(q[(i+1)%len(q)])
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	}
}

func (b *Board) drawHUD(screen *ebiten.Image, ctrl *match.Controller, v match.View) {
	turn := "-"
	if a := ctrl.AttackingCommander(); a != nil {
		turn = a.Name
	}
	info := fmt.Sprintf(
		"Fleet Command | FPS: %.0f | %s | %s\n"+
			"Turn: %s | View: %s %.0f%%\n"+
			"[LClick] Fire [R] Rotate [Space] Ready [D] Density [F] Follow [X] Self destruct [Esc] End",
		ebiten.ActualFPS(),
		ctrl.Mode(),
		ctrl.State(),
		turn,
		v.Stage, v.Progress*100,
	)
	if ctrl.LaunchWarned() && v.Defender == b.Viewer {
		info += "\n!! INCOMING !!"
	}
	ebitenutil.DebugPrint(screen, info)
}
