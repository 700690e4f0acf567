package simvar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRegistry_Identifier tests that identifiers are stable per name
func TestRegistry_Identifier(t *testing.T) {
	r := NewRegistry()

	a := r.Identifier("VOR1_IDENT_PACKED")
	b := r.Identifier("ACP_BEEP_IDENT_VOR1")

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, r.Identifier("VOR1_IDENT_PACKED"))
	assert.Equal(t, "ACP_BEEP_IDENT_VOR1", r.Name(b))
	assert.Equal(t, "", r.Name(Identifier(99)))

	id, ok := r.Lookup("VOR1_IDENT_PACKED")
	assert.True(t, ok)
	assert.Equal(t, a, id)

	_, ok = r.Lookup("UNKNOWN")
	assert.False(t, ok)
}

// TestStore_ReadWrite tests value storage through identifiers and names
func TestStore_ReadWrite(t *testing.T) {
	r := NewRegistry()
	s := NewStore(r)

	id := r.Identifier("ADF1_IDENT_PACKED")
	assert.Equal(t, 0.0, s.Read(id))

	s.Write(id, 1234)
	assert.Equal(t, 1234.0, s.Get("ADF1_IDENT_PACKED"))

	s.Set("ILS1_OK", 1)
	assert.True(t, ReadBool(s, r.Identifier("ILS1_OK")))

	WriteBool(s, id, false)
	assert.Equal(t, 0.0, s.Read(id))

	assert.Equal(t, []string{"ADF1_IDENT_PACKED", "ILS1_OK"}, s.Names())
	assert.Equal(t, map[string]float64{"ADF1_IDENT_PACKED": 0, "ILS1_OK": 1}, s.Snapshot())
}

// TestReadPacked tests conversion of variable values to packed codes
func TestReadPacked(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected uint64
	}{
		{name: "Zero", value: 0, expected: 0},
		{name: "Integer", value: 2113, expected: 2113},
		{name: "Fraction truncates", value: 34.9, expected: 34},
		{name: "Negative", value: -5, expected: 0},
		{name: "NaN", value: math.NaN(), expected: 0},
		{name: "Infinity", value: math.Inf(1), expected: 0},
		{name: "48 bits exact", value: float64(1<<48 - 1), expected: 1<<48 - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			s := NewStore(r)
			s.Set("X", tt.value)
			assert.Equal(t, tt.expected, ReadPacked(s, r.Identifier("X")))
		})
	}
}
