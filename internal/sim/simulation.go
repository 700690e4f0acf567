package sim

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"navident/internal/power"
	"navident/internal/receiver"
	"navident/internal/simvar"
)

// KeyingSink receives every change of a published keying output.
type KeyingSink interface {
	RecordKeying(simTime time.Duration, variable string, keyed bool) error
}

// ReceiverStats holds per-receiver frame counters.
type ReceiverStats struct {
	Name        string
	Identifier  string
	Frames      uint64
	KeyedFrames uint64
	KeyedTime   time.Duration
	Transitions uint64
}

type station struct {
	receiver *receiver.NavReceiver
	gateID   simvar.Identifier
	gated    bool
	last     bool
	stats    ReceiverStats
}

// Simulation drives navigation receivers frame by frame against a variable store
// and a bus model. It is not safe for concurrent use.
type Simulation struct {
	registry *simvar.Registry
	store    *simvar.Store
	buses    *power.StaticBuses
	logger   *logrus.Logger
	sink     KeyingSink

	stations  []*station
	events    []Event
	nextEvent int

	simTime time.Duration
	frames  uint64
}

// Option configures a Simulation.
type Option func(s *Simulation)

// WithSink forwards keying changes to sink.
func WithSink(sink KeyingSink) Option {
	return func(s *Simulation) {
		s.sink = sink
	}
}

// New creates a simulation over the given variable store and buses.
func New(registry *simvar.Registry, store *simvar.Store, buses *power.StaticBuses, logger *logrus.Logger, opts ...Option) *Simulation {
	s := &Simulation{
		registry: registry,
		store:    store,
		buses:    buses,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddReceiver registers a receiver. If gateVariable is not empty the receiver only
// sounds while that variable is non-zero.
func (s *Simulation) AddReceiver(r *receiver.NavReceiver, gateVariable string) {
	st := &station{
		receiver: r,
		stats:    ReceiverStats{Name: r.Name()},
	}
	if gateVariable != "" {
		st.gateID = s.registry.Identifier(gateVariable)
		st.gated = true
	}
	s.stations = append(s.stations, st)
}

// Schedule queues events; they are applied in time order.
func (s *Simulation) Schedule(events ...Event) {
	pending := make([]Event, 0, s.PendingEvents()+len(events))
	pending = append(pending, s.events[s.nextEvent:]...)
	pending = append(pending, events...)
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].At < pending[j].At })
	s.events = pending
	s.nextEvent = 0
}

// Step runs one frame of length delta.
func (s *Simulation) Step(delta time.Duration) error {
	s.applyDueEvents()

	if delta > 0 {
		s.simTime += delta
	}
	s.frames++

	for _, st := range s.stations {
		r := st.receiver

		r.ReceivePower(s.buses)
		r.Read(s.store)

		okToSound := true
		if st.gated {
			okToSound = simvar.ReadBool(s.store, st.gateID)
		}
		r.Update(delta, okToSound)
		r.Write(s.store)

		st.stats.Frames++
		out := r.Output()
		if out {
			st.stats.KeyedFrames++
			if delta > 0 {
				st.stats.KeyedTime += delta
			}
		}
		if out == st.last {
			continue
		}
		st.last = out
		st.stats.Transitions++

		variable := s.registry.Name(r.OutputID())
		s.logger.WithFields(logrus.Fields{
			"receiver": r.Name(),
			"ident":    r.Identifier(),
			"keyed":    out,
			"sim_time": s.simTime,
		}).Debug("Identifier keying changed")

		if s.sink != nil {
			if err := s.sink.RecordKeying(s.simTime, variable, out); err != nil {
				return fmt.Errorf("failed to record keying of %s: %w", variable, err)
			}
		}
	}

	return nil
}

// Run steps the simulation with a fixed step until duration of simulated time has
// elapsed or ctx is cancelled.
func (s *Simulation) Run(ctx context.Context, step, duration time.Duration) error {
	if step <= 0 {
		return fmt.Errorf("invalid frame step %v", step)
	}

	end := s.simTime + duration
	for s.simTime < end {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.Step(step); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) applyDueEvents() {
	for s.nextEvent < len(s.events) && s.events[s.nextEvent].At <= s.simTime {
		ev := s.events[s.nextEvent]
		s.nextEvent++

		ev.apply(s.store, s.buses)
		s.logger.WithFields(logrus.Fields{
			"at":    ev.At,
			"event": ev.String(),
		}).Debug("Applied scenario event")
	}
}

// Time returns the simulated time elapsed.
func (s *Simulation) Time() time.Duration {
	return s.simTime
}

// Frames returns the number of frames run.
func (s *Simulation) Frames() uint64 {
	return s.frames
}

// PendingEvents returns the number of events not yet applied.
func (s *Simulation) PendingEvents() int {
	return len(s.events) - s.nextEvent
}

// Receivers returns the registered receivers in registration order.
func (s *Simulation) Receivers() []*receiver.NavReceiver {
	receivers := make([]*receiver.NavReceiver, len(s.stations))
	for i, st := range s.stations {
		receivers[i] = st.receiver
	}
	return receivers
}

// Stats returns a copy of the per-receiver counters.
func (s *Simulation) Stats() []ReceiverStats {
	stats := make([]ReceiverStats, len(s.stations))
	for i, st := range s.stations {
		stats[i] = st.stats
		stats[i].Identifier = st.receiver.Identifier()
	}
	return stats
}
