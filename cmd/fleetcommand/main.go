package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/config"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/grid"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/input"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/logging"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/match"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/metrics"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/render"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/session"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/vessel"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	journalLines = 6
)

var errQuit = errors.New("quit")

// Game implements ebiten.Game for one local commander against the AI
type Game struct {
	cfg   config.Config
	log   logging.Logger
	rec   *metrics.Recorder
	name  string
	input *input.InputState

	session *session.Session
	board   *render.Board
	local   *core.Commander

	heading   core.Direction
	timeScale float64
	status    string
	lastCue   string
}

func NewGame(cfg config.Config, log logging.Logger, rec *metrics.Recorder, name string) (*Game, error) {
	g := &Game{
		cfg:   cfg,
		log:   log,
		rec:   rec,
		name:  name,
		input: input.NewInputState(),
	}
	if err := g.newMatch(); err != nil {
		return nil, err
	}
	return g, nil
}

// newMatch seats the local commander in a fresh session and starts placement
func (g *Game) newMatch() error {
	s, err := session.New(g.cfg, g.log, g.rec)
	if err != nil {
		return err
	}
	local := core.NewLocalCommander(0, g.name)
	if err := s.Match.Join(local); err != nil {
		return err
	}
	if err := s.Match.StartPlacement(); err != nil {
		return err
	}
	s.Loop.Play()

	g.session = s
	g.local = local
	g.board = render.NewBoard(ScreenWidth, ScreenHeight, g.cfg.Match)
	g.board.Viewer = local
	g.heading = core.East
	g.timeScale = s.Loop.TimeScale
	g.status = "Place your fleet: [LClick] place [RClick] lift [R] rotate [Space] ready"
	return nil
}

func (g *Game) Update() error {
	g.input.Update()
	ctrl := g.session.Match

	for _, a := range g.input.Actions() {
		if err := g.apply(a); err != nil {
			return err
		}
	}
	g.handleCamera()

	if target, cell, ok := g.board.CellAt(ctrl, g.input.MouseX, g.input.MouseY); ok {
		switch ctrl.State() {
		case match.Placing:
			g.handlePlacement(target, cell)
		case match.Playing:
			g.handleTrigger(target, cell)
		}
	}

	g.session.Loop.Update()
	g.board.Update(ctrl, 1/float64(ebiten.TPS()), g.input.MouseX, g.input.MouseY)
	if v := ctrl.View(); v.Follow != nil {
		g.session.Audio.SetListener(v.Follow.Position())
	}
	// no mixer yet; the latest cue is shown instead
	for _, cue := range g.session.Audio.Recent() {
		g.lastCue = fmt.Sprintf("%s %.0f%%", cue.ID, cue.Volume*100)
	}
	return nil
}

func (g *Game) apply(a input.Action) error {
	ctrl := g.session.Match
	switch a {
	case input.ActionRotate:
		g.heading = g.heading.Next()
	case input.ActionReady:
		s, _ := ctrl.Status(g.local)
		if err := ctrl.MarkCommanderReady(g.local, !s.Playing); err != nil {
			g.status = err.Error()
		}
	case input.ActionDensity:
		g.board.ShowDensity = !g.board.ShowDensity
	case input.ActionFollow:
		g.board.FollowAttack = !g.board.FollowAttack
	case input.ActionSelfDestruct:
		if err := ctrl.SelfDestruct(g.local); err != nil {
			g.status = err.Error()
		}
	case input.ActionEndGame:
		if ctrl.State() == match.Lobby {
			return errQuit
		}
		ctrl.EndGame()
		g.status = "Match ended. [N] new match [Esc] quit"
	case input.ActionFaster:
		g.setTimeScale(g.timeScale * 2)
	case input.ActionSlower:
		g.setTimeScale(g.timeScale / 2)
	case input.ActionPause:
		if g.session.Loop.State == core.LoopPaused {
			g.session.Loop.Play()
		} else {
			g.session.Loop.Pause()
		}
	case input.ActionNewMatch:
		if ctrl.State() == match.Lobby || ctrl.State() == match.Victory {
			return g.newMatch()
		}
	case input.ActionNone:
	default:
		panic(core.OutOfRange("action", a))
	}
	return nil
}

func (g *Game) setTimeScale(s float64) {
	g.timeScale = core.Clamp(s, 0.25, 16)
	g.session.Match.SetTimeMultiplier(g.timeScale)
}

// handlePlacement drops the next unplaced vessel on the clicked cell of the
// local grid, or lifts the vessel under a right click
func (g *Game) handlePlacement(target *grid.Grid, cell core.Cell) {
	if target.Owner() != g.local {
		return
	}
	if g.input.RightJustPressed {
		if v, ok := target.VesselAt(cell); ok {
			target.TakeVessel(v)
		}
		return
	}
	if !g.input.Clicked() {
		return
	}
	v := nextUnplaced(target)
	if v == nil {
		g.status = "Fleet placed: [Space] ready"
		return
	}
	v.SetDirection(g.heading)
	v.SetGridPosition(cell)
	if !target.PlaceVessel(v) {
		g.status = fmt.Sprintf("%s does not fit there", v.Name)
		return
	}
	g.status = fmt.Sprintf("Placed %s", v.Name)
}

func nextUnplaced(g *grid.Grid) *vessel.Vessel {
	for _, v := range g.Fleet() {
		if !g.IsPlaced(v) {
			return v
		}
	}
	return nil
}

// handleTrigger fires at the clicked cell of an enemy grid
func (g *Game) handleTrigger(target *grid.Grid, cell core.Cell) {
	if !g.input.Clicked() {
		return
	}
	if err := target.HandleTriggerPull(g.local, cell); err != nil {
		g.status = err.Error()
		return
	}
	g.status = fmt.Sprintf("Firing on %s %s", target.Owner().Name, cell)
}

func (g *Game) handleCamera() {
	cam := g.board.Camera
	speed := cam.Speed / float64(ebiten.TPS())

	moved := false
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		cam.Pan(0, -speed)
		moved = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		cam.Pan(0, speed)
		moved = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		cam.Pan(-speed, 0)
		moved = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		cam.Pan(speed, 0)
		moved = true
	}
	if g.input.ScrollY != 0 {
		cam.ZoomAt(g.input.ScrollY*0.1, g.input.MouseX, g.input.MouseY)
		moved = true
	}
	if g.input.Dragging {
		cam.Pan(float64(-g.input.MouseDX), float64(-g.input.MouseDY))
		moved = true
	}
	// taking the camera by hand stops it following the attack
	if moved {
		g.board.FollowAttack = false
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.board.Draw(screen, g.session.Match)

	y := ScreenHeight - 16*(journalLines+2)
	for _, e := range g.session.Journal.Tail(journalLines) {
		ebitenutil.DebugPrintAt(screen, e.String(), 8, y)
		y += 16
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("x%.2g | %s | %s", g.timeScale, g.lastCue, g.status), 8, ScreenHeight-20)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func main() {
	configDir := flag.String("config", ".", "directory holding "+config.FileName)
	name := flag.String("name", "Commander", "local commander name")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Fatal(err)
	}

	var sink io.Writer = os.Stderr
	console := true
	if cfg.LogsDir != "" {
		if err := os.MkdirAll(cfg.LogsDir, 0o755); err != nil {
			log.Fatal(err)
		}
		f, err := os.Create(logging.LogFilePath(cfg.LogsDir, "fleetcommand", time.Now()))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		sink = zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}, f)
		console = false
	}
	logger := logging.NewLogger(logging.New(cfg.LogLevel, sink, console))

	rec, err := metrics.New()
	if err != nil {
		log.Fatal(err)
	}

	game, err := NewGame(cfg, logger, rec, *name)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Fleet Command")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
