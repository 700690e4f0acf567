package morse

import (
	"time"

	"navident/internal/ident"
)

// Engine keys a station identifier as a repeating Morse sequence, one frame at a
// time. It is not safe for concurrent use.
type Engine struct {
	timing    Timing
	calibrate bool

	identNew     uint64
	identCurrent uint64
	ident        string

	seq   Sequence
	clock time.Duration
	wait  time.Duration
	keyed bool
}

// Option configures an Engine.
type Option func(e *Engine)

// WithUnit sets the base unit all interval durations are derived from.
func WithUnit(unit time.Duration) Option {
	return func(e *Engine) {
		if unit > 0 {
			e.timing = NewTiming(unit)
		}
	}
}

// WithCalibration keys ReferenceWord whenever an identifier is active.
func WithCalibration() Option {
	return func(e *Engine) {
		e.calibrate = true
	}
}

// NewEngine creates an idle engine keyed at DefaultUnit unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		timing: NewTiming(DefaultUnit),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetActiveIdentifier records the packed identifier and reports whether it differs
// from the previously recorded one. A change restarts the cycle on the next Tick.
func (e *Engine) SetActiveIdentifier(raw uint64) bool {
	changed := raw != e.identNew
	e.identNew = raw
	return changed
}

// Tick advances the engine by elapsed and returns the keyed state.
// Non-positive elapsed values make no progress.
func (e *Engine) Tick(elapsed time.Duration) bool {
	if elapsed > 0 {
		e.clock += elapsed
	}

	if e.identNew != e.identCurrent {
		e.identCurrent = e.identNew
		e.ident = ident.Decode(e.identCurrent)
		e.seq = nil
	}

	// Every cycle starts with the end-of-identifier silence.
	if e.ident != "" && len(e.seq) == 0 {
		e.seq = Encode(e.word())
		e.wait = e.timing.EndOfIdent
		e.clock = 0
		e.keyed = false
	}

	if len(e.seq) == 0 {
		e.keyed = false
		return e.keyed
	}

	if e.clock >= e.wait {
		if e.keyed && (e.wait == e.timing.ShortBeep || e.wait == e.timing.LongBeep) {
			// one unit of silence after every mark, measured from the same start
			e.wait += e.timing.ShortBeep
			e.keyed = false
		} else {
			e.clock = 0
			sym, _ := e.seq.Pop()
			switch sym {
			case Dot:
				e.wait = e.timing.ShortBeep
				e.keyed = true
			case Dash:
				e.wait = e.timing.LongBeep
				e.keyed = true
			default:
				e.wait = e.timing.LongBeep
				e.keyed = false
			}
		}
	}

	return e.keyed
}

// IsKeyed reports whether the tone is currently on.
func (e *Engine) IsKeyed() bool {
	return e.keyed
}

// Identifier returns the decoded active identifier.
func (e *Engine) Identifier() string {
	return e.ident
}

// Word returns the text being keyed for the active identifier.
func (e *Engine) Word() string {
	if e.ident == "" {
		return ""
	}
	return e.word()
}

// Remaining returns the number of sequence elements not yet played.
func (e *Engine) Remaining() int {
	return len(e.seq)
}

// Timing returns the interval durations in use.
func (e *Engine) Timing() Timing {
	return e.timing
}

func (e *Engine) word() string {
	if e.calibrate {
		return ReferenceWord
	}
	return e.ident
}
