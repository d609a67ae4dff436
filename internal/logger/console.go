package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger logs messages to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps. It supports log level
// filtering to control verbosity, and level tags are colorized when writing
// to a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided
// io.Writer. If writer is nil, messages are silently discarded.
// logLevel determines the minimum level for messages to be output.
// Valid levels: trace, debug, info, warn, error (case-insensitive); empty or
// invalid levels default to "info". Color output is enabled automatically
// when the writer is a TTY.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) && !color.NoColor
}

// normalizeLogLevel converts a log level string to lowercase and validates
// it. Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
		return normalized
	}

	return "info"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// levelTag formats the level marker, colorized for terminal output.
func (cl *ConsoleLogger) levelTag(level string) string {
	tag := strings.ToUpper(level)
	if !cl.colorOutput {
		return tag
	}

	switch level {
	case "warn":
		return color.New(color.FgYellow).Sprint(tag)
	case "error":
		return color.New(color.FgRed).Sprint(tag)
	case "trace", "debug":
		return color.New(color.FgCyan).Sprint(tag)
	default:
		return color.New(color.FgGreen).Sprint(tag)
	}
}

// log writes a single timestamped line if the level passes the filter.
func (cl *ConsoleLogger) log(level, format string, args ...interface{}) {
	if cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	timestamp := time.Now().Format("15:04:05")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(cl.writer, "[%s] %s %s\n", timestamp, cl.levelTag(level), message)
}

// Tracef logs a message at trace level.
func (cl *ConsoleLogger) Tracef(format string, args ...interface{}) {
	cl.log("trace", format, args...)
}

// Debugf logs a message at debug level.
func (cl *ConsoleLogger) Debugf(format string, args ...interface{}) {
	cl.log("debug", format, args...)
}

// Infof logs a message at info level.
func (cl *ConsoleLogger) Infof(format string, args ...interface{}) {
	cl.log("info", format, args...)
}

// Warnf logs a message at warn level.
func (cl *ConsoleLogger) Warnf(format string, args ...interface{}) {
	cl.log("warn", format, args...)
}

// Errorf logs a message at error level.
func (cl *ConsoleLogger) Errorf(format string, args ...interface{}) {
	cl.log("error", format, args...)
}
