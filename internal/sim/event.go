package sim

import (
	"fmt"
	"time"

	"navident/internal/power"
	"navident/internal/simvar"
)

// EventKind selects what an Event changes.
type EventKind int

const (
	SetVariable EventKind = iota
	SetBus
)

// Event is a scheduled change of the simulation inputs.
type Event struct {
	At   time.Duration
	Kind EventKind

	Variable string
	Value    float64

	Bus     power.BusType
	Powered bool
}

// VariableEvent sets a simulation variable at a given time.
func VariableEvent(at time.Duration, variable string, value float64) Event {
	return Event{At: at, Kind: SetVariable, Variable: variable, Value: value}
}

// BusEvent powers or unpowers a bus at a given time.
func BusEvent(at time.Duration, bus power.BusType, powered bool) Event {
	return Event{At: at, Kind: SetBus, Bus: bus, Powered: powered}
}

func (e Event) apply(store *simvar.Store, buses *power.StaticBuses) {
	switch e.Kind {
	case SetVariable:
		store.Set(e.Variable, e.Value)
	case SetBus:
		buses.Set(e.Bus, e.Powered)
	}
}

func (e Event) String() string {
	switch e.Kind {
	case SetVariable:
		return fmt.Sprintf("%s=%g", e.Variable, e.Value)
	case SetBus:
		return fmt.Sprintf("bus %s powered=%t", e.Bus, e.Powered)
	default:
		return fmt.Sprintf("unknown event kind %d", e.Kind)
	}
}
