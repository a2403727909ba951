package core

import (
	"fmt"
	"image/color"

	"github.com/google/uuid"
)

// CommanderKind says who drives a commander
type CommanderKind uint8

const (
	CommanderLocal CommanderKind = iota
	CommanderAI
	CommanderRemote
)

// Commander is a participant in a match
type Commander struct {
	ID   uuid.UUID
	Kind CommanderKind
	Seat int // local player index or AI index
	Name string
}

func NewLocalCommander(seat int, name string) *Commander {
	if name == "" {
		name = "Unnamed"
	}
	return &Commander{ID: uuid.New(), Kind: CommanderLocal, Seat: seat, Name: name}
}

func NewAICommander(index int) *Commander {
	return &Commander{ID: uuid.New(), Kind: CommanderAI, Seat: index, Name: fmt.Sprintf("AI %d", index+1)}
}

func NewRemoteCommander(name string) *Commander {
	return &Commander{ID: uuid.New(), Kind: CommanderRemote, Name: name}
}

func (c *Commander) IsAI() bool    { return c.Kind == CommanderAI }
func (c *Commander) IsLocal() bool { return c.Kind == CommanderLocal }

// Layer is the private visibility layer of a local commander; everyone else
// sees the shared layer
func (c *Commander) Layer() Layer {
	if !c.IsLocal() {
		return LayerAll
	}
	return LayerFor(c.Seat)
}

func (c *Commander) String() string {
	switch c.Kind {
	case CommanderAI:
		return fmt.Sprintf("Commander (AI:%d)", c.Seat)
	case CommanderLocal:
		return fmt.Sprintf("Commander (LOCAL:%d)", c.Seat)
	case CommanderRemote:
		return "Commander (REMOTE)"
	}
	return "Commander (?)"
}

// TeamColors is the palette commanders pick a team from; commanders sharing a
// colour are on the same team
var TeamColors = [...]color.RGBA{
	{255, 0, 0, 255},
	{237, 87, 31, 255},
	{255, 255, 0, 255},
	{0, 255, 0, 255},
	{0, 255, 255, 255},
	{0, 0, 255, 255},
	{255, 0, 255, 255},
	{0, 0, 0, 255},
	{128, 128, 128, 255},
	{255, 255, 255, 255},
}

// TeamColor returns the palette entry for index, wrapping out-of-range values
func TeamColor(index int) color.RGBA {
	n := len(TeamColors)
	return TeamColors[((index%n)+n)%n]
}
