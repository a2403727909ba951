package weapons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolPrefillsAndRecycles(t *testing.T) {
	n := 0
	p := NewPool("ints", 2, func() *int { n++; v := n; return &v }, nil, nil)
	assert.Equal(t, 2, p.Available())
	assert.Equal(t, 2, p.Created())

	a := p.Take()
	b := p.Take()
	assert.Equal(t, 1, *a)
	assert.Equal(t, 2, *b)
	assert.Equal(t, 0, p.Available())

	p.Return(b)
	p.Return(a)
	assert.Same(t, b, p.Take(), "oldest returned comes out first")
}

func TestPoolGrowsWhenEmpty(t *testing.T) {
	p := NewPool("ints", 1, func() int { return 7 }, nil, nil)
	p.Take()
	v := p.Take()
	assert.Equal(t, 7, v)
	assert.Equal(t, 2, p.Created())
	assert.Equal(t, 0, p.Available())
	assert.Equal(t, "ints", p.Name())
}
