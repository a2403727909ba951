package weapons

import (
	"testing"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

func newTestEnv(t *testing.T, tickRate float64) Env {
	t.Helper()
	return NewEnv(core.NewWorld(tickRate, 1), nil, nil, nil)
}
