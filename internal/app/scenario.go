package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"navident/internal/ident"
	"navident/internal/power"
	"navident/internal/receiver"
	"navident/internal/sim"
)

var errInvalidScenario = errors.New("invalid scenario")

// Scenario describes the radios, buses and scripted input changes of a run.
type Scenario struct {
	Buses     []power.BusType    `yaml:"buses"`
	Receivers []ReceiverSpec     `yaml:"receivers"`
	Variables map[string]float64 `yaml:"variables"`
	Events    []EventSpec        `yaml:"events"`
}

// ReceiverSpec configures one navigation receiver.
type ReceiverSpec struct {
	Name   string        `yaml:"name"`
	ID     int           `yaml:"id"`
	Bus    power.BusType `yaml:"bus"`
	Ident  string        `yaml:"ident"`
	Packed uint64        `yaml:"packed"`
	Gate   string        `yaml:"gate"`
}

// EventSpec is a scheduled change. Exactly one of Receiver, Bus or Variable is set.
type EventSpec struct {
	At time.Duration `yaml:"at"`

	Receiver string  `yaml:"receiver"`
	Ident    string  `yaml:"ident"`
	Packed   *uint64 `yaml:"packed"`

	Bus     power.BusType `yaml:"bus"`
	Powered bool          `yaml:"powered"`

	Variable string  `yaml:"variable"`
	Value    float64 `yaml:"value"`
}

// DefaultScenario is used when no scenario file is given.
func DefaultScenario() *Scenario {
	return &Scenario{
		Buses: []power.BusType{power.DCBus1, power.DCBus2, power.ACEssBus},
		Receivers: []ReceiverSpec{
			{Name: "VOR", ID: 1, Bus: power.DCBus1, Ident: "BOR"},
			{Name: "VOR", ID: 2, Bus: power.DCBus2, Ident: "TOU"},
			{Name: "ADF", ID: 1, Bus: power.DCBus1, Ident: "LAC"},
			{Name: "ILS", ID: 1, Bus: power.ACEssBus, Ident: "IBDN", Gate: "ILS1_OK_TO_SOUND"},
		},
		Variables: map[string]float64{
			"ILS1_OK_TO_SOUND": 1,
		},
	}
}

// LoadScenario reads and validates a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks receiver names, identifiers and events.
func (s *Scenario) Validate() error {
	if len(s.Receivers) == 0 {
		return fmt.Errorf("%w: no receivers", errInvalidScenario)
	}

	names := make(map[string]bool, len(s.Receivers))
	for i, r := range s.Receivers {
		if r.Name == "" {
			return fmt.Errorf("%w: receiver %d has no name", errInvalidScenario, i)
		}
		key := fmt.Sprintf("%s%d", r.Name, r.ID)
		if names[key] {
			return fmt.Errorf("%w: duplicate receiver %s", errInvalidScenario, key)
		}
		names[key] = true

		if _, err := r.PackedIdent(); err != nil {
			return fmt.Errorf("%w: receiver %s: %v", errInvalidScenario, key, err)
		}
	}

	for i, e := range s.Events {
		if _, err := e.toEvent(); err != nil {
			return fmt.Errorf("%w: event %d: %v", errInvalidScenario, i, err)
		}
		if e.Receiver != "" && !names[e.Receiver] {
			return fmt.Errorf("%w: event %d: unknown receiver %s", errInvalidScenario, i, e.Receiver)
		}
	}
	return nil
}

// PackedIdent returns the packed identifier the receiver starts tuned to.
func (r ReceiverSpec) PackedIdent() (uint64, error) {
	if r.Ident != "" && r.Packed != 0 {
		return 0, fmt.Errorf("both ident and packed set")
	}
	if r.Ident != "" {
		return ident.Pack(r.Ident)
	}
	return r.Packed, nil
}

func (e EventSpec) toEvent() (sim.Event, error) {
	if e.At < 0 {
		return sim.Event{}, fmt.Errorf("negative time %v", e.At)
	}

	set := 0
	for _, v := range []bool{e.Receiver != "", e.Bus != "", e.Variable != ""} {
		if v {
			set++
		}
	}
	if set != 1 {
		return sim.Event{}, fmt.Errorf("exactly one of receiver, bus or variable must be set")
	}

	switch {
	case e.Bus != "":
		return sim.BusEvent(e.At, e.Bus, e.Powered), nil
	case e.Variable != "":
		return sim.VariableEvent(e.At, e.Variable, e.Value), nil
	}

	packed := uint64(0)
	if e.Packed != nil {
		packed = *e.Packed
	} else {
		var err error
		if packed, err = ident.Pack(e.Ident); err != nil {
			return sim.Event{}, err
		}
	}
	return sim.VariableEvent(e.At, identVariable(e.Receiver), float64(packed)), nil
}

// identVariable returns the packed identifier variable of a receiver name like "VOR1".
func identVariable(name string) string {
	return name + "_IDENT_PACKED"
}

// initialVariables returns the variable values a scenario starts with.
func (s *Scenario) initialVariables() (map[string]float64, error) {
	vars := make(map[string]float64, len(s.Variables)+len(s.Receivers))
	for name, v := range s.Variables {
		vars[name] = v
	}
	for _, r := range s.Receivers {
		packed, err := r.PackedIdent()
		if err != nil {
			return nil, err
		}
		vars[fmt.Sprintf(receiver.IdentPackedFormat, r.Name, r.ID)] = float64(packed)
	}
	return vars, nil
}

// events converts the scripted changes.
func (s *Scenario) events() ([]sim.Event, error) {
	events := make([]sim.Event, 0, len(s.Events))
	for i, e := range s.Events {
		ev, err := e.toEvent()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
