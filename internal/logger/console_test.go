package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleLoggerWritesTimestampedLines(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.Infof("scanned %d files", 3)

	output := buf.String()
	if !strings.Contains(output, "scanned 3 files") {
		t.Errorf("Expected message in output, got %q", output)
	}
	if !strings.Contains(output, "INFO") {
		t.Errorf("Expected level tag in output, got %q", output)
	}
	if !strings.HasPrefix(output, "[") {
		t.Errorf("Expected timestamp prefix, got %q", output)
	}
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "warn")

	cl.Debugf("debug message")
	cl.Infof("info message")
	cl.Warnf("warn message")
	cl.Errorf("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("debug message should be filtered at warn level")
	}
	if strings.Contains(output, "info message") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should pass the filter")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error message should pass the filter")
	}
}

func TestConsoleLoggerTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "trace")

	cl.Tracef("probing %s", "file.pdf")

	if !strings.Contains(buf.String(), "probing file.pdf") {
		t.Errorf("Expected trace output, got %q", buf.String())
	}
}

func TestConsoleLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "loud")

	cl.Debugf("hidden")
	cl.Infof("visible")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("debug message should be filtered at default info level")
	}
	if !strings.Contains(output, "visible") {
		t.Error("info message should pass at default info level")
	}
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "info")
	// Must not panic.
	cl.Infof("into the void")
}

func TestTeeFansOut(t *testing.T) {
	var a, b bytes.Buffer
	tee := Tee{NewConsoleLogger(&a, "info"), NewConsoleLogger(&b, "info")}

	tee.Infof("both")

	if !strings.Contains(a.String(), "both") || !strings.Contains(b.String(), "both") {
		t.Error("Tee should write to every logger")
	}
}
