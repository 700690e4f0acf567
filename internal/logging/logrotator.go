package logging

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// FilePrefix is the name prefix of keying trace files.
const FilePrefix = "ident_"

// LogRotator keeps one trace file per day and gzips the previous day's file.
type LogRotator struct {
	logDir      string
	useUTC      bool
	logger      *logrus.Logger
	currentFile *os.File
	currentDate string
	mutex       sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewLogRotator creates the log directory and opens today's trace file.
func NewLogRotator(logDir string, useUTC bool, logger *logrus.Logger) (*LogRotator, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	rotator := &LogRotator{
		logDir: logDir,
		useUTC: useUTC,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	if err := rotator.rotateLogFile(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize log file: %w", err)
	}

	return rotator, nil
}

// Start checks for a date change every minute until ctx is done or the rotator
// is closed.
func (r *LogRotator) Start(ctx context.Context) {
	r.logger.Info("Starting log rotator")

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Log rotator stopping")
			return
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.checkRotation()
		}
	}
}

func (r *LogRotator) now() time.Time {
	if r.useUTC {
		return time.Now().UTC()
	}
	return time.Now()
}

func (r *LogRotator) fileName(date string) string {
	return filepath.Join(r.logDir, fmt.Sprintf("%s%s.log", FilePrefix, date))
}

func (r *LogRotator) checkRotation() {
	currentDate := r.now().Format("2006-01-02")

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.currentDate == currentDate {
		return
	}

	r.logger.WithFields(logrus.Fields{
		"old_date": r.currentDate,
		"new_date": currentDate,
	}).Info("Rotating keying trace")

	if err := r.rotateLogFile(); err != nil {
		r.logger.WithError(err).Error("Failed to rotate keying trace")
	}
}

// rotateLogFile must be called with the mutex held or before the rotator is shared.
func (r *LogRotator) rotateLogFile() error {
	newDate := r.now().Format("2006-01-02")

	if r.currentFile != nil {
		oldDate := r.currentDate
		if err := r.currentFile.Close(); err != nil {
			r.logger.WithError(err).Error("Failed to close old trace file")
		}
		r.currentFile = nil

		if oldDate != newDate {
			r.wg.Add(1)
			go func() {
				defer r.wg.Done()
				r.compressLogFile(oldDate)
			}()
		}
	}

	path := r.fileName(newDate)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file %s: %w", path, err)
	}

	r.currentFile = file
	r.currentDate = newDate

	r.logger.WithField("file", path).Info("Opened keying trace file")

	return nil
}

func (r *LogRotator) compressLogFile(date string) {
	logFile := r.fileName(date)
	gzipFile := logFile + ".gz"

	r.logger.WithFields(logrus.Fields{
		"source": logFile,
		"target": gzipFile,
	}).Info("Compressing trace file")

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		r.logger.WithField("file", logFile).Debug("Trace file doesn't exist, skipping compression")
		return
	}

	if err := compressFile(logFile, gzipFile); err != nil {
		r.logger.WithError(err).WithField("file", logFile).Error("Failed to compress trace file")
		return
	}

	if err := os.Remove(logFile); err != nil {
		r.logger.WithError(err).WithField("file", logFile).Error("Failed to remove original trace file")
		return
	}

	r.logger.WithField("file", gzipFile).Info("Trace file compressed successfully")
}

func compressFile(source, target string) error {
	src, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", source, err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer dst.Close()

	gzWriter := gzip.NewWriter(dst)
	gzWriter.Name = filepath.Base(source)
	gzWriter.ModTime = time.Now()

	if _, err := io.Copy(gzWriter, src); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to compress %s: %w", source, err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip writer: %w", err)
	}
	return dst.Close()
}

// GetWriter returns the current trace file.
func (r *LogRotator) GetWriter() (io.Writer, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.currentFile == nil {
		return nil, fmt.Errorf("no current log file")
	}

	return r.currentFile, nil
}

// Write appends p to the current trace file.
func (r *LogRotator) Write(p []byte) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.currentFile == nil {
		return 0, fmt.Errorf("no current log file")
	}
	return r.currentFile.Write(p)
}

// Close stops rotation, waits for pending compression and closes the current file.
func (r *LogRotator) Close() error {
	r.logger.Info("Closing log rotator")

	r.cancel()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.wg.Wait()

	if r.currentFile != nil {
		if err := r.currentFile.Close(); err != nil {
			r.logger.WithError(err).Error("Failed to close current trace file")
			return err
		}
		r.currentFile = nil
	}

	return nil
}

// GetCurrentLogFile returns the path of the current trace file.
func (r *LogRotator) GetCurrentLogFile() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.currentDate == "" {
		return ""
	}

	return r.fileName(r.currentDate)
}

// GetLogFiles lists all trace files, compressed ones included.
func (r *LogRotator) GetLogFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(r.logDir, FilePrefix+"*.log*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list log files: %w", err)
	}

	return files, nil
}

// CleanupOldLogs removes trace files last modified more than maxDays ago.
func (r *LogRotator) CleanupOldLogs(maxDays int) error {
	if maxDays <= 0 {
		return fmt.Errorf("maxDays must be positive")
	}

	files, err := r.GetLogFiles()
	if err != nil {
		return fmt.Errorf("failed to get log files: %w", err)
	}

	cutoff := r.now().AddDate(0, 0, -maxDays)
	current := r.GetCurrentLogFile()

	removed := 0
	for _, file := range files {
		if file == current {
			continue
		}

		info, err := os.Stat(file)
		if err != nil {
			r.logger.WithError(err).WithField("file", file).Warn("Failed to stat trace file")
			continue
		}

		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(file); err != nil {
			r.logger.WithError(err).WithField("file", file).Error("Failed to remove old trace file")
			continue
		}
		r.logger.WithField("file", file).Info("Removed old trace file")
		removed++
	}

	r.logger.WithField("count", removed).Info("Cleaned up old trace files")
	return nil
}
