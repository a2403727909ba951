// Package report draws the boards of a finished match to a PNG
package report

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/grid"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/match"
)

var (
	background  = color.RGBA{12, 34, 64, 255}
	hiddenSea   = color.RGBA{28, 62, 104, 255}
	hiddenHull  = color.RGBA{150, 150, 160, 255}
	revealedSea = color.RGBA{70, 110, 150, 255}
	wreck       = color.RGBA{60, 60, 60, 255}
	fire        = color.RGBA{255, 110, 20, 255}
	textColor   = color.RGBA{230, 230, 230, 255}
)

const (
	margin      = 4  // board pixels between boards
	labelHeight = 16 // output pixels above each board
)

// Layout sizes the report
type Layout struct {
	Scale int // output pixels per cell
}

// DefaultLayout draws 16 pixel cells
func DefaultLayout() Layout { return Layout{Scale: 16} }

// Boards draws every grid of ctrl side by side. Hulls are always shown.
func Boards(ctrl *match.Controller, layout Layout) *image.RGBA {
	grids := ctrl.Grids()
	if layout.Scale < 1 {
		layout.Scale = 1
	}

	// one pixel per cell first, then scale up without smoothing
	w, h := margin, 0
	for _, g := range grids {
		w += g.Width() + margin
		h = max(h, g.Height())
	}
	small := image.NewRGBA(image.Rect(0, 0, w, h+2*margin))
	xdraw.Draw(small, small.Bounds(), image.NewUniform(background), image.Point{}, xdraw.Src)

	x := margin
	for _, g := range grids {
		for cy := 0; cy < g.Height(); cy++ {
			for cx := 0; cx < g.Width(); cx++ {
				c := core.C(cx, cy)
				// row 0 is nearest the viewer
				small.SetRGBA(x+cx, margin+g.Height()-1-cy, cellColor(g.CellState(c), g.IsOccupied(c)))
			}
		}
		x += g.Width() + margin
	}

	out := image.NewRGBA(image.Rect(0, 0, w*layout.Scale, small.Bounds().Dy()*layout.Scale+labelHeight))
	xdraw.Draw(out, out.Bounds(), image.NewUniform(background), image.Point{}, xdraw.Src)
	board := image.Rect(0, labelHeight, out.Bounds().Dx(), out.Bounds().Dy())
	xdraw.NearestNeighbor.Scale(out, board, small, small.Bounds(), xdraw.Over, nil)

	x = margin
	for _, g := range grids {
		label(out, x*layout.Scale, labelHeight-4, labelFor(ctrl, g))
		x += g.Width() + margin
	}
	return out
}

func cellColor(s grid.CellState, occupied bool) color.RGBA {
	switch s {
	case grid.OnFire:
		return fire
	case grid.Revealed:
		if occupied {
			return wreck
		}
		return revealedSea
	case grid.Hidden:
		if occupied {
			return hiddenHull
		}
		return hiddenSea
	}
	panic(core.OutOfRange("cell state", s))
}

func labelFor(ctrl *match.Controller, g *grid.Grid) string {
	s, ok := ctrl.Status(g.Owner())
	if !ok {
		return g.Owner().Name
	}
	mark := ""
	if !s.Playing {
		mark = " x"
	}
	return fmt.Sprintf("%s (%d)%s", g.Owner().Name, g.FleetStrength(), mark)
}

func label(dst *image.RGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// WritePNG encodes img to path
func WritePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
