package app

import (
	"fmt"
	"time"
)

// Default configuration constants
const (
	DefaultFrameRate = 30               // frames per second
	DefaultDuration  = 60 * time.Second // simulated time for fixed-step runs
	DefaultWPM       = 7                // 171 ms unit
	DefaultMaxDays   = 7                // days of keying traces kept
)

// Config holds application configuration
type Config struct {
	ScenarioFile string
	FrameRate    int
	Duration     time.Duration
	RealTime     bool
	WPM          float64
	Calibrate    bool
	LogDir       string
	LogRotateUTC bool
	MaxLogDays   int
	Verbose      bool
	ShowVersion  bool
}

// FrameStep returns the simulated time of one frame.
func (c Config) FrameStep() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / DefaultFrameRate
	}
	return time.Second / time.Duration(c.FrameRate)
}

// Validate checks the configuration for values the frame loop cannot run with.
func (c Config) Validate() error {
	if c.FrameRate <= 0 || c.FrameRate > 1000 {
		return fmt.Errorf("frame rate must be between 1 and 1000, got %d", c.FrameRate)
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %v", c.Duration)
	}
	if !c.RealTime && c.Duration == 0 {
		return fmt.Errorf("fixed-step runs need a duration")
	}
	if c.WPM < 0 {
		return fmt.Errorf("keying speed must not be negative, got %g", c.WPM)
	}
	if c.LogDir == "" {
		return fmt.Errorf("log directory must be set")
	}
	return nil
}
