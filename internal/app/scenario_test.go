package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navident/internal/ident"
	"navident/internal/power"
	"navident/internal/sim"
)

const testScenario = `
buses: [DC_1, AC_ESS]
receivers:
  - name: VOR
    id: 1
    bus: DC_1
    ident: BOR
  - name: ILS
    id: 1
    bus: AC_ESS
    packed: 38
    gate: ILS1_OK_TO_SOUND
variables:
  ILS1_OK_TO_SOUND: 1
events:
  - at: 30s
    receiver: VOR1
    ident: TOU
  - at: 45s
    bus: DC_1
    powered: false
  - at: 1m
    variable: ILS1_OK_TO_SOUND
    value: 0
  - at: 90s
    receiver: ILS1
    packed: 0
`

// TestLoadScenario tests reading a scenario file
func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testScenario), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, []power.BusType{power.DCBus1, power.ACEssBus}, s.Buses)
	require.Len(t, s.Receivers, 2)
	assert.Equal(t, ReceiverSpec{Name: "VOR", ID: 1, Bus: power.DCBus1, Ident: "BOR"}, s.Receivers[0])
	assert.Equal(t, uint64(38), s.Receivers[1].Packed)
	assert.Equal(t, "ILS1_OK_TO_SOUND", s.Receivers[1].Gate)

	require.Len(t, s.Events, 4)
	assert.Equal(t, 30*time.Second, s.Events[0].At)
	assert.Equal(t, time.Minute, s.Events[2].At)
}

// TestScenario_Events tests conversion of scripted changes
func TestScenario_Events(t *testing.T) {
	s, err := ParseScenario([]byte(testScenario))
	require.NoError(t, err)

	events, err := s.events()
	require.NoError(t, err)

	expected := []sim.Event{
		sim.VariableEvent(30*time.Second, "VOR1_IDENT_PACKED", float64(ident.MustPack("TOU"))),
		sim.BusEvent(45*time.Second, power.DCBus1, false),
		sim.VariableEvent(time.Minute, "ILS1_OK_TO_SOUND", 0),
		sim.VariableEvent(90*time.Second, "ILS1_IDENT_PACKED", 0),
	}
	assert.Equal(t, expected, events)
}

// TestScenario_InitialVariables tests variables set before the first frame
func TestScenario_InitialVariables(t *testing.T) {
	s, err := ParseScenario([]byte(testScenario))
	require.NoError(t, err)

	vars, err := s.initialVariables()
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"ILS1_OK_TO_SOUND":  1,
		"VOR1_IDENT_PACKED": float64(ident.MustPack("BOR")),
		"ILS1_IDENT_PACKED": 38,
	}, vars)
}

// TestParseScenario_Errors tests scenario validation
func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "Malformed YAML",
			yaml:    "receivers: [",
			wantErr: "failed to parse scenario",
		},
		{
			name:    "No receivers",
			yaml:    "buses: [DC_1]",
			wantErr: "no receivers",
		},
		{
			name:    "Unnamed receiver",
			yaml:    "receivers: [{id: 1}]",
			wantErr: "has no name",
		},
		{
			name:    "Duplicate receiver",
			yaml:    "receivers: [{name: VOR, id: 1}, {name: VOR, id: 1}]",
			wantErr: "duplicate receiver VOR1",
		},
		{
			name:    "Identifier too long",
			yaml:    "receivers: [{name: VOR, id: 1, ident: ABCDEFGHIJ}]",
			wantErr: "receiver VOR1",
		},
		{
			name:    "Ident and packed",
			yaml:    "receivers: [{name: VOR, id: 1, ident: BOR, packed: 3}]",
			wantErr: "both ident and packed",
		},
		{
			name:    "Event without target",
			yaml:    "receivers: [{name: VOR, id: 1}]\nevents: [{at: 1s}]",
			wantErr: "exactly one of",
		},
		{
			name:    "Event with two targets",
			yaml:    "receivers: [{name: VOR, id: 1}]\nevents: [{at: 1s, bus: DC_1, variable: X}]",
			wantErr: "exactly one of",
		},
		{
			name:    "Event for unknown receiver",
			yaml:    "receivers: [{name: VOR, id: 1}]\nevents: [{at: 1s, receiver: VOR2, ident: A}]",
			wantErr: "unknown receiver VOR2",
		},
		{
			name:    "Event at negative time",
			yaml:    "receivers: [{name: VOR, id: 1}]\nevents: [{at: -1s, bus: DC_1}]",
			wantErr: "negative time",
		},
		{
			name:    "Event with invalid identifier",
			yaml:    "receivers: [{name: VOR, id: 1}]\nevents: [{at: 1s, receiver: VOR1, ident: abc}]",
			wantErr: "cannot be packed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestDefaultScenario tests that the built-in scenario is valid
func TestDefaultScenario(t *testing.T) {
	s := DefaultScenario()
	assert.NoError(t, s.Validate())
	assert.Len(t, s.Receivers, 4)
}
