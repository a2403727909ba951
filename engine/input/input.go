package input

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is something the viewer can ask for from the keyboard
type Action uint8

const (
	ActionNone Action = iota
	ActionRotate
	ActionReady
	ActionDensity
	ActionFollow
	ActionSelfDestruct
	ActionEndGame
	ActionFaster
	ActionSlower
	ActionPause
	ActionNewMatch
)

// DefaultBindings maps keys to viewer actions
var DefaultBindings = map[ebiten.Key]Action{
	ebiten.KeyR:      ActionRotate,
	ebiten.KeySpace:  ActionReady,
	ebiten.KeyD:      ActionDensity,
	ebiten.KeyF:      ActionFollow,
	ebiten.KeyX:      ActionSelfDestruct,
	ebiten.KeyEscape: ActionEndGame,
	ebiten.KeyEqual:  ActionFaster,
	ebiten.KeyMinus:  ActionSlower,
	ebiten.KeyP:      ActionPause,
	ebiten.KeyN:      ActionNewMatch,
}

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	MouseX, MouseY   int
	MouseDX, MouseDY int // delta since last frame
	prevMouseX       int
	prevMouseY       int

	LeftJustReleased bool
	RightJustPressed bool
	ScrollY          float64

	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int

	Bindings map[ebiten.Key]Action
	actions  []Action
}

func NewInputState() *InputState {
	return &InputState{
		DragThreshold: 5,
		Bindings:      DefaultBindings,
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.prevMouseX = s.MouseX
	s.prevMouseY = s.MouseY
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.MouseDX = s.MouseX - s.prevMouseX
	s.MouseDY = s.MouseY - s.prevMouseY

	leftDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.LeftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	s.RightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	_, s.ScrollY = ebiten.Wheel()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.DragStartX, s.DragStartY = s.MouseX, s.MouseY
		s.Dragging = false
	}
	s.trackDrag(leftDown)

	s.actions = s.resolve(inpututil.IsKeyJustPressed)
}

func (s *InputState) trackDrag(leftDown bool) {
	if !leftDown {
		// a release ends the drag only after this frame's click has been seen
		if !s.LeftJustReleased {
			s.Dragging = false
		}
		return
	}
	if !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		s.Dragging = dx*dx+dy*dy > s.DragThreshold*s.DragThreshold
	}
}

// resolve lists the bound actions whose key was just pressed, in action order
func (s *InputState) resolve(justPressed func(ebiten.Key) bool) []Action {
	var out []Action
	for k, a := range s.Bindings {
		if justPressed(k) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Actions are the actions requested this frame
func (s *InputState) Actions() []Action { return s.actions }

// Clicked reports a left click that was not the end of a drag
func (s *InputState) Clicked() bool { return s.LeftJustReleased && !s.Dragging }
