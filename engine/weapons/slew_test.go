package weapons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnappingSlewReachesTarget(t *testing.T) {
	c := NewSnappingAngleSlewController(0, 5, 90, 90)
	c.Target = 120
	assert.False(t, c.IsOnTarget())

	var shown float64
	for range 400 {
		shown = c.Update(0.01)
		if c.IsOnTarget() {
			break
		}
	}
	assert.True(t, c.IsOnTarget())
	assert.Equal(t, 120.0, shown)
}

func TestSnappingSlewTakesShortestWay(t *testing.T) {
	c := NewSnappingAngleSlewController(350, 1, 90, 90)
	c.Target = 10
	c.Update(0.1)
	assert.Greater(t, c.Speed(), 0.0)

	c = NewSnappingAngleSlewController(10, 1, 90, 90)
	c.Target = 350
	c.Update(0.1)
	assert.Less(t, c.Speed(), 0.0)
}

func TestSlewSpeedLimit(t *testing.T) {
	c := NewSnappingAngleSlewController(0, 1, 1000, 20)
	c.Target = 180
	for range 50 {
		c.Update(0.01)
		assert.LessOrEqual(t, c.Speed(), 20.0)
	}
}

func TestSlewReversesWhenMovingAway(t *testing.T) {
	c := NewSnappingAngleSlewController(0, 1, 90, 90)
	c.Target = 90
	for range 50 {
		c.Update(0.01)
	}
	assert.Greater(t, c.Speed(), 0.0)

	c.Target = 270
	c.Update(0.01)
	before := c.Speed()
	c.Update(0.01)
	assert.Less(t, c.Speed(), before)
}

func TestSlewReset(t *testing.T) {
	c := NewSnappingAngleSlewController(0, 5, 90, 90)
	c.Target = 90
	c.Update(0.5)
	c.Reset(45)
	assert.Equal(t, 0.0, c.Speed())
	assert.Equal(t, 45.0, c.Current())
	assert.True(t, c.IsOnTarget())
}
