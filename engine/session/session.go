// Package session wires a configured match together: the simulation loop,
// the audio mixer, the event journal and the match controller.
package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/config"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/logging"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/match"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/metrics"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

// Session is one match and everything it runs on
type Session struct {
	ID      uuid.UUID
	Config  config.Config
	Loop    *core.GameLoop
	Env     weapons.Env
	Match   *match.Controller
	Audio   *audio.Manager
	Journal *Journal
	log     logging.Logger
}

// New builds a session from cfg. rec may be nil.
func New(cfg config.Config, log logging.Logger, rec *metrics.Recorder) (*Session, error) {
	if log == nil {
		log = logging.Nop()
	}
	id := uuid.New()
	log = log.With("match", id.String())

	loop := core.NewGameLoop(cfg.TickRate, cfg.Seed)
	loop.SetTimeScale(cfg.TimeScale)
	mixer := audio.NewManager(loop.World.Now)
	env := weapons.NewEnv(loop.World, mixer, log, rec)

	vessels := cfg.Vessels
	ctrl, err := match.New(env, cfg.Match, &vessels)
	if err != nil {
		return nil, fmt.Errorf("creating match: %w", err)
	}
	ctrl.SetClock(loop)

	journal := NewJournal()
	journal.Attach(loop.World.Events)

	log.Info("session created", "mode", ctrl.Mode(), "seed", cfg.Seed, "tickRate", cfg.TickRate)
	return &Session{
		ID:      id,
		Config:  cfg,
		Loop:    loop,
		Env:     env,
		Match:   ctrl,
		Audio:   mixer,
		Journal: journal,
		log:     log,
	}, nil
}

// World is the simulation the match runs in
func (s *Session) World() *core.World { return s.Loop.World }

// RunUntilVictory advances the simulation in steps of step seconds until the
// match is won or limit seconds have passed. It reports whether the match
// was won.
func (s *Session) RunUntilVictory(limit, step float64) bool {
	w := s.World()
	for w.Now() < limit && s.Match.State() != match.Victory {
		w.RunFor(step)
	}
	won := s.Match.State() == match.Victory
	if !won {
		s.log.Warn("match did not finish", "limit", limit, "state", s.Match.State())
	}
	return won
}

// Result summarises a session's journal
type Result struct {
	ID           uuid.UUID
	Seed         int64
	Mode         match.GameMode
	Duration     float64
	Finished     bool
	Winners      []string
	Shots        int
	Hits         int
	Misses       int
	Eliminations int
	Expired      int
}

// Result tallies what has happened so far
func (s *Session) Result() Result {
	r := Result{
		ID:           s.ID,
		Seed:         s.Config.Seed,
		Mode:         s.Match.Mode(),
		Duration:     s.World().Now(),
		Finished:     s.Match.State() == match.Victory,
		Shots:        s.Journal.Count(core.EvtShotFired),
		Eliminations: s.Journal.Count(core.EvtCommanderEliminated),
		Expired:      s.Journal.Count(core.EvtReservationExpired),
	}
	for _, e := range s.Journal.Filter(core.EvtImpact) {
		if e.Hit {
			r.Hits++
		} else {
			r.Misses++
		}
	}
	for _, c := range s.Match.CombatCommanders() {
		if st, ok := s.Match.Status(c); ok && st.Playing && r.Finished {
			r.Winners = append(r.Winners, c.Name)
		}
	}
	return r
}

// String is a one-line summary
func (r Result) String() string {
	state := "unfinished"
	if r.Finished {
		state = fmt.Sprintf("won by %v", r.Winners)
	}
	return fmt.Sprintf("match %s seed=%d mode=%s t=%.1fs %s shots=%d hits=%d misses=%d eliminated=%d expired=%d",
		r.ID.String()[:8], r.Seed, r.Mode, r.Duration, state, r.Shots, r.Hits, r.Misses, r.Eliminations, r.Expired)
}
