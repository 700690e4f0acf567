package logging

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write failed")
}

// TestTraceWriter_RecordKeying tests trace line formatting
func TestTraceWriter_RecordKeying(t *testing.T) {
	var out, echo bytes.Buffer
	w := NewTraceWriter(&out, &echo, true)
	w.now = func() time.Time {
		return time.Date(2026, 10, 19, 8, 30, 15, 250*int(time.Millisecond), time.UTC)
	}

	require.NoError(t, w.RecordKeying(1198*time.Millisecond, "ACP_BEEP_IDENT_VOR1", true))
	require.NoError(t, w.RecordKeying(1369*time.Millisecond, "ACP_BEEP_IDENT_VOR1", false))

	expected := "2026/10/19,08:30:15.250,1198,ACP_BEEP_IDENT_VOR1,1\n" +
		"2026/10/19,08:30:15.250,1369,ACP_BEEP_IDENT_VOR1,0\n"
	assert.Equal(t, expected, out.String())
	assert.Equal(t, expected, echo.String())
}

// TestTraceWriter_Errors tests write failures
func TestTraceWriter_Errors(t *testing.T) {
	w := NewTraceWriter(failingWriter{}, nil, false)
	assert.Error(t, w.RecordKeying(0, "X", true))

	var out bytes.Buffer
	w = NewTraceWriter(&out, failingWriter{}, false)
	err := w.RecordKeying(0, "X", true)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "echo")
	assert.NotEmpty(t, out.String())
}
