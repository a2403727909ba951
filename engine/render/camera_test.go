package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/match"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

func TestCameraRoundTrip(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.CenterOn(core.V3(100, 0, -50))
	cam.SetZoom(2)

	sx, sy := cam.WorldToScreen(core.V3(100, 0, -50))
	assert.Equal(t, float32(400), sx)
	assert.Equal(t, float32(300), sy)

	// +Z is up the screen
	_, up := cam.WorldToScreen(core.V3(100, 0, -40))
	assert.Less(t, up, sy)

	p := cam.ScreenToWorld(500, 200)
	assert.InDelta(t, 150, p.X, 1e-9)
	assert.InDelta(t, 0, p.Z, 1e-9)
}

func TestCameraZoomAtKeepsPointStill(t *testing.T) {
	cam := NewCamera(800, 600)
	before := cam.ScreenToWorld(700, 100)
	cam.ZoomAt(0.5, 700, 100)
	after := cam.ScreenToWorld(700, 100)

	assert.InDelta(t, 1.5, cam.Zoom, 1e-9)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Z, after.Z, 1e-9)

	cam.SetZoom(100)
	assert.Equal(t, cam.MaxZoom, cam.Zoom)
}

func TestCameraGlideConverges(t *testing.T) {
	cam := NewCamera(800, 600)
	shot := Shot{Center: core.V3(200, 0, 300), Zoom: 3}
	for i := 0; i < 300; i++ {
		cam.Glide(shot, 1.0/30)
	}
	assert.InDelta(t, 200, cam.X, 0.01)
	assert.InDelta(t, 300, cam.Z, 0.01)
	assert.InDelta(t, 3, cam.Zoom, 0.01)
}

func TestDirectorStages(t *testing.T) {
	cam := NewCamera(800, 600)
	d := NewDirector(cam, 250, 200)
	origin := weapons.StaticFollow{Pos: core.V3(40, 12, 80), Zoom: 2}

	assert.Equal(t, d.Overview, d.ShotFor(match.View{}))

	start := d.ShotFor(match.View{Stage: match.PanToAttackOrigin, Follow: origin})
	assert.Equal(t, d.Overview, start)

	dwell := d.ShotFor(match.View{Stage: match.DwellOnAttackOrigin, Follow: origin})
	assert.Equal(t, core.V3(40, 0, 80), dwell.Center)
	assert.InDelta(t, d.Close/2, dwell.Zoom, 1e-9)

	end := d.ShotFor(match.View{Stage: match.PanToAttackOrigin, Progress: 1, Follow: origin})
	assert.InDelta(t, dwell.Center.X, end.Center.X, 1e-9)
	assert.InDelta(t, dwell.Zoom, end.Zoom, 1e-9)

	assert.Equal(t, d.Overview, d.ShotFor(match.View{Stage: match.TargetGrid}))
}
