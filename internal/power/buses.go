// Package power models the electrical buses that supply radio equipment.
package power

import (
	"sort"
	"sync"
)

// BusType names an electrical bus.
type BusType string

const (
	DCBus1     BusType = "DC_1"
	DCBus2     BusType = "DC_2"
	DCEssBus   BusType = "DC_ESS"
	DCEssShed  BusType = "DC_ESS_SHED"
	DCHotBus1  BusType = "DC_HOT_1"
	ACBus1     BusType = "AC_1"
	ACBus2     BusType = "AC_2"
	ACEssBus   BusType = "AC_ESS"
	ACEssShed  BusType = "AC_ESS_SHED"
	defaultBus         = DCBus1
)

// Buses reports whether a bus currently supplies power.
type Buses interface {
	IsPowered(bus BusType) bool
}

// StaticBuses is a Buses whose state is set explicitly.
type StaticBuses struct {
	mu      sync.RWMutex
	powered map[BusType]bool
}

// NewStaticBuses creates buses with the given ones powered.
func NewStaticBuses(powered ...BusType) *StaticBuses {
	b := &StaticBuses{
		powered: make(map[BusType]bool),
	}
	for _, bus := range powered {
		b.powered[bus] = true
	}
	return b
}

// IsPowered implements Buses. Unknown buses are unpowered.
func (b *StaticBuses) IsPowered(bus BusType) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.powered[bus]
}

// Set changes the state of a bus.
func (b *StaticBuses) Set(bus BusType, powered bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.powered[bus] = powered
}

// Powered returns the powered buses, sorted.
func (b *StaticBuses) Powered() []BusType {
	b.mu.RLock()
	defer b.mu.RUnlock()

	buses := make([]BusType, 0, len(b.powered))
	for bus, on := range b.powered {
		if on {
			buses = append(buses, bus)
		}
	}
	sort.Slice(buses, func(i, j int) bool { return buses[i] < buses[j] })
	return buses
}

// DefaultBus returns bus, or DC_1 when bus is empty.
func DefaultBus(bus BusType) BusType {
	if bus == "" {
		return defaultBus
	}
	return bus
}
