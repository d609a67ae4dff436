package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileLogger logs service events to timestamped run files in a log
// directory and maintains a latest.log symlink pointing to the most recent
// run. It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger writing to logDir with the given log
// level. It creates the log directory if it doesn't exist, opens a
// timestamped run log file, and creates or updates the latest.log symlink.
func NewFileLogger(logDir, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// run-YYYYMMDD-HHMMSS.log
	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", timestamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	// Symlink failure is non-fatal on filesystems without symlink support.
	_ = os.Symlink(filepath.Base(runFile), symlinkPath)

	return &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}, nil
}

// RunFile returns the path of the current run log file.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return nil
	}
	err := fl.runLog.Close()
	fl.runLog = nil
	return err
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

func (fl *FileLogger) log(level, format string, args ...interface{}) {
	if !fl.shouldLog(level) {
		return
	}

	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(fl.runLog, "[%s] %-5s %s\n", timestamp, level, message)
}

// Tracef logs a message at trace level.
func (fl *FileLogger) Tracef(format string, args ...interface{}) {
	fl.log("trace", format, args...)
}

// Debugf logs a message at debug level.
func (fl *FileLogger) Debugf(format string, args ...interface{}) {
	fl.log("debug", format, args...)
}

// Infof logs a message at info level.
func (fl *FileLogger) Infof(format string, args ...interface{}) {
	fl.log("info", format, args...)
}

// Warnf logs a message at warn level.
func (fl *FileLogger) Warnf(format string, args ...interface{}) {
	fl.log("warn", format, args...)
}

// Errorf logs a message at error level.
func (fl *FileLogger) Errorf(format string, args ...interface{}) {
	fl.log("error", format, args...)
}
