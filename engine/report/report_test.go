package report

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/config"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/grid"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/session"
)

func TestBoardsLayout(t *testing.T) {
	cfg := config.Default()
	cfg.Match.Players = 3
	s, err := session.New(cfg, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Match.StartPlacement())

	img := Boards(s.Match, Layout{Scale: 10})

	// three 8x8 boards with margins on both sides
	wantW := (margin + 3*(8+margin)) * 10
	wantH := (8+2*margin)*10 + labelHeight
	assert.Equal(t, wantW, img.Bounds().Dx())
	assert.Equal(t, wantH, img.Bounds().Dy())

	// first cell of the first board, drawn at the bottom left
	g := s.Match.Grids()[0]
	px := img.RGBAAt(margin*10+5, labelHeight+(margin+7)*10+5)
	assert.Equal(t, cellColor(g.CellState(core.C(0, 0)), g.IsOccupied(core.C(0, 0))), px)
}

func TestCellColor(t *testing.T) {
	assert.Equal(t, fire, cellColor(grid.OnFire, true))
	assert.Equal(t, wreck, cellColor(grid.Revealed, true))
	assert.Equal(t, revealedSea, cellColor(grid.Revealed, false))
	assert.Equal(t, hiddenHull, cellColor(grid.Hidden, true))
	assert.Equal(t, hiddenSea, cellColor(grid.Hidden, false))
	assert.Panics(t, func() { cellColor(grid.CellState(9), false) })
}

func TestWritePNG(t *testing.T) {
	cfg := config.Default()
	s, err := session.New(cfg, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Match.StartPlacement())

	path := filepath.Join(t.TempDir(), "boards.png")
	require.NoError(t, WritePNG(path, Boards(s.Match, DefaultLayout())))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())

	assert.Error(t, WritePNG(filepath.Join(t.TempDir(), "missing", "x.png"), img))
}
