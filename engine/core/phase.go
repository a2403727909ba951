package core

// Phase is one timed step of a choreography. A phase either runs for
// Delay+Duration seconds, reporting progress after the delay, or, when Until
// is set, waits (consuming no time) until Until reports true.
type Phase struct {
	Name     string
	Delay    float64
	Duration float64
	OnStart  func()
	OnStep   func(progress float64)
	OnDone   func()
	Until    func() bool
}

// Wait is a phase that only delays
func Wait(name string, d float64) Phase { return Phase{Name: name, Duration: d} }

// Do is an instantaneous phase
func Do(name string, fn func()) Phase { return Phase{Name: name, OnDone: fn} }

// WaitUntil blocks the sequence until cond holds
func WaitUntil(name string, cond func() bool) Phase { return Phase{Name: name, Until: cond} }

// Sequence runs phases in order across ticks
type Sequence struct {
	phases  []Phase
	idx     int
	elapsed float64
	started bool
	stopped bool
}

func NewSequence(phases ...Phase) *Sequence {
	return &Sequence{phases: phases}
}

// Done reports whether every phase has completed or the sequence was stopped
func (s *Sequence) Done() bool { return s.stopped || s.idx >= len(s.phases) }

// Stop abandons the remaining phases without running their callbacks
func (s *Sequence) Stop() { s.stopped = true }

// Current is the name of the running phase, or "" when done
func (s *Sequence) Current() string {
	if s.Done() {
		return ""
	}
	return s.phases[s.idx].Name
}

// Elapsed is the time spent in the current phase
func (s *Sequence) Elapsed() float64 { return s.elapsed }

// Update advances the sequence by dt. Time left over when a phase completes
// carries into the next phase.
func (s *Sequence) Update(dt float64) {
	remaining := dt
	for !s.Done() {
		p := &s.phases[s.idx]
		if !s.started {
			s.started = true
			s.elapsed = 0
			if p.OnStart != nil {
				p.OnStart()
			}
			if s.stopped {
				return
			}
		}

		if p.Until != nil {
			if !p.Until() {
				return
			}
			s.finish(p)
			continue
		}

		total := p.Delay + p.Duration
		need := total - s.elapsed
		if remaining < need {
			s.elapsed += remaining
			s.step(p)
			return
		}
		remaining -= need
		s.elapsed = total
		s.step(p)
		s.finish(p)
	}
}

func (s *Sequence) step(p *Phase) {
	if p.OnStep == nil || s.elapsed < p.Delay {
		return
	}
	p.OnStep(SubProgress(s.elapsed, p.Delay, p.Duration))
}

func (s *Sequence) finish(p *Phase) {
	if p.OnDone != nil {
		p.OnDone()
	}
	s.idx++
	s.started = false
	s.elapsed = 0
}

// Scheduler ticks any number of sequences; completed ones are dropped
type Scheduler struct {
	running []*Sequence
}

// Start begins running seq on the next Update
func (sc *Scheduler) Start(seq *Sequence) *Sequence {
	sc.running = append(sc.running, seq)
	return seq
}

// Run is shorthand for Start(NewSequence(phases...))
func (sc *Scheduler) Run(phases ...Phase) *Sequence {
	return sc.Start(NewSequence(phases...))
}

// Update advances every running sequence. Sequences started from inside a
// callback begin on the following Update.
func (sc *Scheduler) Update(dt float64) {
	n := len(sc.running)
	for i := 0; i < n; i++ {
		sc.running[i].Update(dt)
	}
	kept := sc.running[:0]
	for _, seq := range sc.running {
		if !seq.Done() {
			kept = append(kept, seq)
		}
	}
	for i := len(kept); i < len(sc.running); i++ {
		sc.running[i] = nil
	}
	sc.running = kept
}

// Active returns the number of unfinished sequences
func (sc *Scheduler) Active() int { return len(sc.running) }

// StopAll abandons every running sequence
func (sc *Scheduler) StopAll() {
	for _, seq := range sc.running {
		seq.Stop()
	}
	sc.running = sc.running[:0]
}
