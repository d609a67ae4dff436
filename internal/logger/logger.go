// Package logger provides leveled logging for the relay service.
//
// Implementations are thread-safe. The watcher takes a Logger as an explicit
// dependency so components remain testable without global state.
package logger

// Logger is the logging capability injected into service components.
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Nop is a Logger that discards all messages. Useful in tests that do not
// assert on log output.
type Nop struct{}

func (Nop) Tracef(string, ...interface{}) {}
func (Nop) Debugf(string, ...interface{}) {}
func (Nop) Infof(string, ...interface{})  {}
func (Nop) Warnf(string, ...interface{})  {}
func (Nop) Errorf(string, ...interface{}) {}

// Tee fans every message out to multiple loggers, typically console plus
// file.
type Tee []Logger

func (t Tee) Tracef(format string, args ...interface{}) {
	for _, l := range t {
		l.Tracef(format, args...)
	}
}

func (t Tee) Debugf(format string, args ...interface{}) {
	for _, l := range t {
		l.Debugf(format, args...)
	}
}

func (t Tee) Infof(format string, args ...interface{}) {
	for _, l := range t {
		l.Infof(format, args...)
	}
}

func (t Tee) Warnf(format string, args ...interface{}) {
	for _, l := range t {
		l.Warnf(format, args...)
	}
}

func (t Tee) Errorf(format string, args ...interface{}) {
	for _, l := range t {
		l.Errorf(format, args...)
	}
}

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}
