package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"navident/internal/logging"
	"navident/internal/morse"
	"navident/internal/power"
	"navident/internal/receiver"
	"navident/internal/sim"
	"navident/internal/simvar"
)

const statsInterval = 30 * time.Second

// Application represents the main application
type Application struct {
	config   Config
	logger   *logrus.Logger
	stdout   io.Writer
	scenario *Scenario

	registry   *simvar.Registry
	store      *simvar.Store
	buses      *power.StaticBuses
	simulation *sim.Simulation
	logRotator *logging.LogRotator

	// guards simulation between the frame loop and statistics reporting
	simMu sync.Mutex
}

// NewApplication creates a new application instance
func NewApplication(config Config) *Application {
	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config: config,
		logger: logger,
		stdout: os.Stdout,
	}
}

// Start runs the application until the configured duration has been simulated or
// a shutdown signal is received.
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("Starting navigation identifier keyer")

	if err := app.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := app.initializeComponents(); err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}
	defer app.shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			app.logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	return app.run(ctx)
}

// initializeComponents initializes all application components
func (app *Application) initializeComponents() error {
	var err error

	if app.scenario == nil {
		if app.config.ScenarioFile != "" {
			app.scenario, err = LoadScenario(app.config.ScenarioFile)
			if err != nil {
				return err
			}
		} else {
			app.scenario = DefaultScenario()
		}
	}

	app.registry = simvar.NewRegistry()
	app.store = simvar.NewStore(app.registry)
	app.buses = power.NewStaticBuses(app.scenario.Buses...)

	vars, err := app.scenario.initialVariables()
	if err != nil {
		return fmt.Errorf("failed to set initial variables: %w", err)
	}
	for name, v := range vars {
		app.store.Set(name, v)
	}

	events, err := app.scenario.events()
	if err != nil {
		return fmt.Errorf("failed to build scenario events: %w", err)
	}

	app.logRotator, err = logging.NewLogRotator(app.config.LogDir, app.config.LogRotateUTC, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize log rotator: %w", err)
	}
	if app.config.MaxLogDays > 0 {
		if err := app.logRotator.CleanupOldLogs(app.config.MaxLogDays); err != nil {
			app.logger.WithError(err).Warn("Failed to clean up old keying traces")
		}
	}

	trace := logging.NewTraceWriter(app.logRotator, app.stdout, app.config.LogRotateUTC)
	app.simulation = sim.New(app.registry, app.store, app.buses, app.logger, sim.WithSink(trace))
	app.simulation.Schedule(events...)

	opts := app.engineOptions()
	for _, spec := range app.scenario.Receivers {
		r := receiver.NewNavReceiver(app.registry, spec.Name, spec.ID, power.DefaultBus(spec.Bus), app.logger, opts...)
		app.simulation.AddReceiver(r, spec.Gate)

		app.logger.WithFields(logrus.Fields{
			"receiver": r.Name(),
			"bus":      r.PoweredBy(),
			"ident":    spec.Ident,
			"gate":     spec.Gate,
		}).Info("Added navigation receiver")
	}

	return nil
}

func (app *Application) engineOptions() []morse.Option {
	opts := []morse.Option{morse.WithUnit(morse.UnitForWPM(app.config.WPM))}
	if app.config.Calibrate {
		opts = append(opts, morse.WithCalibration())
	}
	return opts
}

// run runs the frame loop, log rotation and statistics until the frame loop ends
func (app *Application) run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)

	eg.Go(func() error {
		defer cancel()
		if app.config.RealTime {
			return app.runRealTime(ctx)
		}
		return app.runFixedStep(ctx)
	})

	eg.Go(func() error {
		app.logRotator.Start(ctx)
		return nil
	})

	eg.Go(func() error {
		app.reportStatistics(ctx)
		return nil
	})

	app.logger.WithFields(logrus.Fields{
		"frame_step": app.config.FrameStep(),
		"real_time":  app.config.RealTime,
		"duration":   app.config.Duration,
	}).Info("All components started successfully")

	err := eg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runFixedStep simulates the configured duration as fast as possible
func (app *Application) runFixedStep(ctx context.Context) error {
	step := app.config.FrameStep()
	for {
		app.simMu.Lock()
		done := app.simulation.Time() >= app.config.Duration
		var err error
		if !done {
			err = app.simulation.Step(step)
		}
		app.simMu.Unlock()

		if done || err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
}

// runRealTime steps the simulation at the frame rate using wall-clock deltas
func (app *Application) runRealTime(ctx context.Context) error {
	ticker := time.NewTicker(app.config.FrameStep())
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now

			app.simMu.Lock()
			err := app.simulation.Step(delta)
			elapsed := app.simulation.Time()
			app.simMu.Unlock()

			if err != nil {
				return err
			}
			if app.config.Duration > 0 && elapsed >= app.config.Duration {
				return nil
			}
		}
	}
}

// reportStatistics reports keying statistics periodically
func (app *Application) reportStatistics(ctx context.Context) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.logStatistics("Identifier keying statistics")
		}
	}
}

func (app *Application) logStatistics(msg string) {
	app.simMu.Lock()
	stats := app.simulation.Stats()
	simTime := app.simulation.Time()
	frames := app.simulation.Frames()
	app.simMu.Unlock()

	for _, s := range stats {
		duty := 0.0
		if simTime > 0 {
			duty = float64(s.KeyedTime) / float64(simTime) * 100
		}
		app.logger.WithFields(logrus.Fields{
			"receiver":    s.Name,
			"ident":       s.Identifier,
			"sim_time":    simTime,
			"frames":      frames,
			"transitions": s.Transitions,
			"keyed_time":  s.KeyedTime,
			"duty_cycle":  fmt.Sprintf("%.2f%%", duty),
		}).Info(msg)
	}
}

// shutdown releases resources after the run
func (app *Application) shutdown() {
	app.logger.Info("Shutting down application")

	if app.simulation != nil {
		app.logStatistics("Final identifier keying statistics")
	}
	if app.logRotator != nil {
		if err := app.logRotator.Close(); err != nil {
			app.logger.WithError(err).Warn("Failed to close log rotator")
		}
	}

	app.logger.Info("Shutdown completed")
}
