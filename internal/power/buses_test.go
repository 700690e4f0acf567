package power

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStaticBuses tests explicit bus state
func TestStaticBuses(t *testing.T) {
	buses := NewStaticBuses(DCBus1, ACEssBus)

	assert.True(t, buses.IsPowered(DCBus1))
	assert.True(t, buses.IsPowered(ACEssBus))
	assert.False(t, buses.IsPowered(DCBus2))
	assert.False(t, buses.IsPowered(BusType("UNKNOWN")))

	buses.Set(DCBus1, false)
	buses.Set(DCBus2, true)

	assert.False(t, buses.IsPowered(DCBus1))
	assert.Equal(t, []BusType{ACEssBus, DCBus2}, buses.Powered())
}

// TestDefaultBus tests the fallback bus
func TestDefaultBus(t *testing.T) {
	assert.Equal(t, DCBus1, DefaultBus(""))
	assert.Equal(t, ACBus2, DefaultBus(ACBus2))
}
