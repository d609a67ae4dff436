// Package classify decides how a watched file is handled based solely on its
// name. Classification performs no I/O so it can be applied to directory
// listings without touching the files themselves.
package classify

import "strings"

// TestMarkerPrefix is the reserved base-name prefix (matched
// case-insensitively) that marks a file as a liveness probe rather than a
// real payload.
const TestMarkerPrefix = "TEST-FILE"

// MinBaseNameLength is the minimum length of a base name (extension
// stripped) for a file to be considered a real payload. Production file
// names encode identifying metadata; anything shorter is assumed to be an
// incomplete or accidental drop.
const MinBaseNameLength = 9

// Decision is the outcome of classifying a file name.
type Decision int

const (
	// Normal files are moved to the processing folder.
	Normal Decision = iota
	// TestMarker files are liveness probes handled in place.
	TestMarker
	// Malformed files are moved to the error folder.
	Malformed
)

// String returns the decision name for logging.
func (d Decision) String() string {
	switch d {
	case Normal:
		return "normal"
	case TestMarker:
		return "test-marker"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Classify inspects a file's base name (without extension) and returns the
// handling decision. The test-marker prefix takes precedence over the length
// check so that short probe names like "TEST-FILE" are still recognized.
func Classify(baseName string) Decision {
	if strings.HasPrefix(strings.ToUpper(baseName), TestMarkerPrefix) {
		return TestMarker
	}
	if len(baseName) < MinBaseNameLength {
		return Malformed
	}
	return Normal
}
