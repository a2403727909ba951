package session

import (
	"fmt"
	"strings"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/aircraft"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/grid"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/match"
)

// Entry is one recorded match event
type Entry struct {
	Tick    uint64
	Time    float64
	Event   core.EventType
	Subject string // commander or aircraft the event concerns, "--" for none
	Detail  string
	Hit     bool
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042.50] AI 1         shot_fired           Lone Wolf DRN Valiant -> AI 2 (3,4)
func (e Entry) String() string {
	return fmt.Sprintf("[T=%07.2f] %-12s %-20s %s", e.Time, e.Subject, e.Event, e.Detail)
}

// Journal records every event published on a bus, in dispatch order
type Journal struct {
	entries []Entry
}

func NewJournal() *Journal {
	return &Journal{}
}

// Attach subscribes the journal to every event type on bus
func (j *Journal) Attach(bus *core.EventBus) {
	for _, t := range core.EventTypes() {
		bus.On(t, j.Record)
	}
}

// Record adds e to the journal
func (j *Journal) Record(e core.Event) {
	entry := Entry{Tick: e.Tick, Time: e.Time, Event: e.Type, Subject: "--"}
	describe(&entry, e.Payload)
	j.entries = append(j.entries, entry)
}

func describe(entry *Entry, payload any) {
	switch p := payload.(type) {
	case match.StateEvent:
		entry.Detail = fmt.Sprintf("%s -> %s", p.From, p.To)
	case match.CommanderEvent:
		entry.Subject = p.Commander.Name
	case match.PlacementEvent:
		entry.Subject = p.Commander.Name
		entry.Detail = fmt.Sprintf("complete=%t", p.Complete)
	case match.AttackEvent:
		entry.Subject = p.Attacker.Name
		entry.Detail = fmt.Sprintf("%s %s -> %s %s", p.Kind, p.Origin, p.Defender.Name, p.Cell)
	case match.ExpiredEvent:
		entry.Subject = p.Attacker.Name
		entry.Detail = fmt.Sprintf("%s %s", p.Kind, p.Origin)
	case match.VictoryEvent:
		names := make([]string, len(p.Commanders))
		for i, c := range p.Commanders {
			names[i] = c.Name
		}
		entry.Detail = fmt.Sprintf("team %d: %s", p.ColorIndex, strings.Join(names, ", "))
	case grid.ImpactEvent:
		entry.Subject = p.Commander.Name
		entry.Hit = p.Hit
		entry.Detail = fmt.Sprintf("%s hit=%t", p.Cell, p.Hit)
	case grid.VesselEvent:
		entry.Subject = p.Commander.Name
		entry.Detail = p.Vessel.Name
	case aircraft.StateChange:
		entry.Subject = p.Name
		entry.Detail = fmt.Sprintf("%s -> %s", p.From, p.To)
	case nil:
	default:
		entry.Detail = fmt.Sprintf("%v", p)
	}
}

// Entries returns all recorded entries
func (j *Journal) Entries() []Entry {
	return j.entries
}

// Filter returns the entries of event type t
func (j *Journal) Filter(t core.EventType) []Entry {
	var out []Entry
	for _, e := range j.entries {
		if e.Event == t {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries have event type t
func (j *Journal) Count(t core.EventType) int {
	return len(j.Filter(t))
}

// LastOf returns the most recent entry of event type t
func (j *Journal) LastOf(t core.EventType) (Entry, bool) {
	for i := len(j.entries) - 1; i >= 0; i-- {
		if j.entries[i].Event == t {
			return j.entries[i], true
		}
	}
	return Entry{}, false
}

// Tail returns at most n of the latest entries
func (j *Journal) Tail(n int) []Entry {
	if n >= len(j.entries) {
		return j.entries
	}
	return j.entries[len(j.entries)-n:]
}

// Format returns the whole journal, one entry per line
func (j *Journal) Format() string {
	var sb strings.Builder
	for _, e := range j.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
