package core

// Event represents a simulation event
type Event struct {
	Type    EventType
	Tick    uint64
	Time    float64
	Payload any
}

type EventType uint16

const (
	EvtVesselPlaced EventType = iota
	EvtVesselTaken
	EvtPlacementComplete
	EvtShotFired
	EvtImpact
	EvtVesselDestroyed
	EvtCommanderEliminated
	EvtTurnStarted
	EvtAttack
	EvtLaunchWarning
	EvtGameStateChanged
	EvtVictory
	EvtAircraftState
	EvtPoolGrown
	EvtReservationExpired

	numEventTypes
)

var eventNames = [...]string{
	EvtVesselPlaced:        "vessel_placed",
	EvtVesselTaken:         "vessel_taken",
	EvtPlacementComplete:   "placement_complete",
	EvtShotFired:           "shot_fired",
	EvtImpact:              "impact",
	EvtVesselDestroyed:     "vessel_destroyed",
	EvtCommanderEliminated: "commander_eliminated",
	EvtTurnStarted:         "turn_started",
	EvtAttack:              "attack",
	EvtLaunchWarning:       "launch_warning",
	EvtGameStateChanged:    "game_state_changed",
	EvtVictory:             "victory",
	EvtAircraftState:       "aircraft_state",
	EvtPoolGrown:           "pool_grown",
	EvtReservationExpired:  "reservation_expired",
}

// EventTypes lists every event type in declaration order
func EventTypes() []EventType {
	out := make([]EventType, numEventTypes)
	for i := range out {
		out[i] = EventType(i)
	}
	return out
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int { return len(eb.queue) }

// Dispatch processes all queued events. Events emitted by handlers are
// delivered in the same call.
func (eb *EventBus) Dispatch() {
	for i := 0; i < len(eb.queue); i++ {
		e := eb.queue[i]
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
	}
	eb.queue = eb.queue[:0]
}
