package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFootprintEastCentredOnPosition(t *testing.T) {
	cells := Footprint(C(2, 2), East, 3)
	assert.Equal(t, []Cell{{1, 2}, {2, 2}, {3, 2}}, cells)
}

func TestFootprintStableAndSized(t *testing.T) {
	for _, dir := range Directions {
		for length := 1; length <= 5; length++ {
			a := Footprint(C(4, 4), dir, length)
			b := Footprint(C(4, 4), dir, length)
			require.Len(t, a, length)
			assert.Equal(t, a, b, "dir=%v len=%d", dir, length)
		}
	}
}

func TestFootprintNorthSouthVaryY(t *testing.T) {
	north := Footprint(C(3, 3), North, 3)
	south := Footprint(C(3, 3), South, 3)
	for _, c := range append(north, south...) {
		assert.Equal(t, 3, c.X)
	}
	assert.ElementsMatch(t, north, south)
}

func TestDirectionRotation(t *testing.T) {
	d := North
	seen := []Direction{}
	for i := 0; i < 4; i++ {
		seen = append(seen, d)
		assert.Equal(t, d, d.Next().Prev())
		d = d.Next()
	}
	assert.Equal(t, North, d)
	assert.Equal(t, []Direction{North, East, South, West}, seen)
}

func TestDirectionUnknownPanics(t *testing.T) {
	bad := Direction(9)
	assert.Panics(t, func() { bad.Next() })
	assert.Panics(t, func() { bad.Prev() })
	assert.Panics(t, func() { bad.Step() })
	assert.Equal(t, "Direction(9)", bad.String())
}

func TestCommanderLayerAndString(t *testing.T) {
	local := NewLocalCommander(1, "")
	ai := NewAICommander(0)

	assert.Equal(t, "Unnamed", local.Name)
	assert.Equal(t, LayerFor(1), local.Layer())
	assert.Equal(t, LayerAll, ai.Layer())
	assert.Equal(t, "Commander (AI:0)", ai.String())
	assert.NotEqual(t, local.ID, ai.ID)
	assert.Equal(t, TeamColors[0], TeamColor(len(TeamColors)))
}
