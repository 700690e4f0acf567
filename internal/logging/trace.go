package logging

import (
	"fmt"
	"io"
	"time"
)

// TraceWriter writes one line per keying change:
//
//	date,time,sim_ms,variable,0|1
type TraceWriter struct {
	out    io.Writer
	echo   io.Writer
	useUTC bool
	now    func() time.Time
}

// NewTraceWriter writes trace lines to out and, if echo is not nil, to echo as well.
func NewTraceWriter(out io.Writer, echo io.Writer, useUTC bool) *TraceWriter {
	return &TraceWriter{
		out:    out,
		echo:   echo,
		useUTC: useUTC,
		now:    time.Now,
	}
}

// RecordKeying implements sim.KeyingSink.
func (w *TraceWriter) RecordKeying(simTime time.Duration, variable string, keyed bool) error {
	line := w.format(simTime, variable, keyed)

	if _, err := io.WriteString(w.out, line); err != nil {
		return fmt.Errorf("failed to write trace line: %w", err)
	}
	if w.echo != nil {
		if _, err := io.WriteString(w.echo, line); err != nil {
			return fmt.Errorf("failed to echo trace line: %w", err)
		}
	}
	return nil
}

func (w *TraceWriter) format(simTime time.Duration, variable string, keyed bool) string {
	now := w.now()
	if w.useUTC {
		now = now.UTC()
	}

	state := 0
	if keyed {
		state = 1
	}

	return fmt.Sprintf("%s,%s,%d,%s,%d\n",
		now.Format("2006/01/02"), now.Format("15:04:05.000"),
		simTime.Milliseconds(), variable, state)
}
