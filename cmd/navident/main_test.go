package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navident/internal/app"
)

// TestRootCmd_Defaults tests flag defaults
func TestRootCmd_Defaults(t *testing.T) {
	var config app.Config
	cmd := newRootCmd(&config)
	require.NoError(t, cmd.ParseFlags(nil))

	expected := app.Config{
		FrameRate:    app.DefaultFrameRate,
		Duration:     app.DefaultDuration,
		WPM:          app.DefaultWPM,
		LogDir:       "./logs",
		LogRotateUTC: true,
		MaxLogDays:   app.DefaultMaxDays,
	}
	assert.Equal(t, expected, config)
	assert.NoError(t, config.Validate())
}

// TestRootCmd_Flags tests flag parsing into the configuration
func TestRootCmd_Flags(t *testing.T) {
	var config app.Config
	cmd := newRootCmd(&config)

	err := cmd.ParseFlags([]string{
		"-c", "scenario.yaml",
		"-r", "60",
		"-t", "2m",
		"--realtime",
		"--wpm", "10",
		"--calibrate",
		"-l", "/tmp/traces",
		"--utc=false",
		"--max-log-days", "0",
		"-v",
	})
	require.NoError(t, err)

	expected := app.Config{
		ScenarioFile: "scenario.yaml",
		FrameRate:    60,
		Duration:     2 * time.Minute,
		RealTime:     true,
		WPM:          10,
		Calibrate:    true,
		LogDir:       "/tmp/traces",
		LogRotateUTC: false,
		MaxLogDays:   0,
		Verbose:      true,
	}
	assert.Equal(t, expected, config)
}

// TestRootCmd_Version tests that --version does not start the application
func TestRootCmd_Version(t *testing.T) {
	var config app.Config
	cmd := newRootCmd(&config)
	cmd.SetArgs([]string{"--version", "--frame-rate", "0"})

	assert.NoError(t, cmd.Execute())
	assert.True(t, config.ShowVersion)
}

// TestRootCmd_InvalidConfig tests that configuration errors are returned
func TestRootCmd_InvalidConfig(t *testing.T) {
	var config app.Config
	cmd := newRootCmd(&config)
	cmd.SetArgs([]string{"--frame-rate", "0", "--log-dir", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame rate")
}
