package morse

import (
	"math"
	"time"
)

// DefaultUnit is the dot length at 7 words per minute.
const DefaultUnit = 171 * time.Millisecond

// Durations of the keyed intervals, in units.
const (
	ShortBeepUnits  = 1
	LongBeepUnits   = 3
	EndOfIdentUnits = 7
)

// UnitForWPM returns the dot length for a keying speed using the PARIS standard
// (50 units per word), rounded to whole milliseconds.
func UnitForWPM(wpm float64) time.Duration {
	if wpm <= 0 {
		return DefaultUnit
	}
	ms := math.Round(1200 / wpm)
	return time.Duration(ms) * time.Millisecond
}

// Timing holds the interval durations derived from one unit.
type Timing struct {
	Unit       time.Duration
	ShortBeep  time.Duration
	LongBeep   time.Duration
	EndOfIdent time.Duration
}

// NewTiming derives all interval durations from unit.
func NewTiming(unit time.Duration) Timing {
	return Timing{
		Unit:       unit,
		ShortBeep:  unit * ShortBeepUnits,
		LongBeep:   unit * LongBeepUnits,
		EndOfIdent: unit * EndOfIdentUnits,
	}
}

// KeyedDuration returns the total tone-on time of one pass over ident.
func (t Timing) KeyedDuration(ident string) time.Duration {
	var d time.Duration
	for _, c := range ident {
		for _, e := range Pattern(c) {
			if Symbol(e) == Dot {
				d += t.ShortBeep
			} else {
				d += t.LongBeep
			}
		}
	}
	return d
}

// CycleDuration returns the length of one repetition of ident as keyed by the
// engine: the leading pause, every mark with its trailing one-unit gap, and the
// inter-character spaces except the last one. The trailing space is cut short by
// the next pause, which starts one frame after it is popped, so the observed
// period is CycleDuration plus one frame step.
func (t Timing) CycleDuration(ident string) time.Duration {
	d := t.EndOfIdent
	runes := []rune(ident)
	for i, c := range runes {
		for _, e := range Pattern(c) {
			if Symbol(e) == Dot {
				d += t.ShortBeep
			} else {
				d += t.LongBeep
			}
			d += t.ShortBeep
		}
		if i < len(runes)-1 {
			d += t.LongBeep
		}
	}
	return d
}
