package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/KasHunt/T5Doodle-FleetCommand/engine/metrics"

// Recorder counts simulation activity. A nil *Recorder records nothing.
type Recorder struct {
	shots        metric.Int64Counter
	impacts      metric.Int64Counter
	poolGrowth   metric.Int64Counter
	eliminations metric.Int64Counter
	expired      metric.Int64Counter
}

// New creates a Recorder on the global OTel meter (no-op if not configured)
func New() (*Recorder, error) {
	return NewWithMeter(otel.Meter(instrumentationName))
}

// NewWithMeter creates a Recorder on the given meter
func NewWithMeter(m metric.Meter) (*Recorder, error) {
	r := &Recorder{}
	var err error

	r.shots, err = m.Int64Counter(
		"seawar.shots.fired",
		metric.WithDescription("Weapon reservations fired"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}

	r.impacts, err = m.Int64Counter(
		"seawar.impacts",
		metric.WithDescription("Impacts applied to grids"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating impacts counter: %w", err)
	}

	r.poolGrowth, err = m.Int64Counter(
		"seawar.pool.growth",
		metric.WithDescription("Instances created because a pool was empty"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pool growth counter: %w", err)
	}

	r.eliminations, err = m.Int64Counter(
		"seawar.commanders.eliminated",
		metric.WithDescription("Commanders whose fleet strength reached zero"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating eliminations counter: %w", err)
	}

	r.expired, err = m.Int64Counter(
		"seawar.reservations.expired",
		metric.WithDescription("Fire reservations released without being fired"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating expired reservations counter: %w", err)
	}

	return r, nil
}

func (r *Recorder) ShotFired(origin string) {
	if r == nil {
		return
	}
	r.shots.Add(context.Background(), 1, metric.WithAttributes(attribute.String("origin", origin)))
}

func (r *Recorder) Impact(hit bool) {
	if r == nil {
		return
	}
	r.impacts.Add(context.Background(), 1, metric.WithAttributes(attribute.Bool("hit", hit)))
}

func (r *Recorder) PoolGrown(pool string) {
	if r == nil {
		return
	}
	r.poolGrowth.Add(context.Background(), 1, metric.WithAttributes(attribute.String("pool", pool)))
}

func (r *Recorder) CommanderEliminated() {
	if r == nil {
		return
	}
	r.eliminations.Add(context.Background(), 1)
}

func (r *Recorder) ReservationExpired(kind string) {
	if r == nil {
		return
	}
	r.expired.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind)))
}
