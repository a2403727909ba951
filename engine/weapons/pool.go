package weapons

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/logging"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/metrics"
)

// Pool hands out pre-built instances and builds more on demand when empty
type Pool[T any] struct {
	name    string
	free    []T
	build   func() T
	created int
	log     logging.Logger
	metrics *metrics.Recorder
}

// NewPool pre-fills a pool with size instances
func NewPool[T any](name string, size int, build func() T, log logging.Logger, rec *metrics.Recorder) *Pool[T] {
	if log == nil {
		log = logging.Nop()
	}
	p := &Pool[T]{name: name, build: build, log: log, metrics: rec}
	for range size {
		p.free = append(p.free, p.build())
		p.created++
	}
	return p
}

// Take removes the oldest returned instance, growing the pool if none is free
func (p *Pool[T]) Take() T {
	if len(p.free) == 0 {
		p.created++
		p.log.Warn("pool exhausted, growing", "pool", p.name, "size", p.created)
		p.metrics.PoolGrown(p.name)
		return p.build()
	}
	v := p.free[0]
	var zero T
	p.free[0] = zero
	p.free = p.free[1:]
	return v
}

// Return makes v available again
func (p *Pool[T]) Return(v T) {
	p.free = append(p.free, v)
}

// Available is the number of instances ready to take
func (p *Pool[T]) Available() int { return len(p.free) }

// Created is the number of instances ever built
func (p *Pool[T]) Created() int { return p.created }

func (p *Pool[T]) Name() string { return p.name }
