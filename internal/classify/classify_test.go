package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		baseName string
		want     Decision
	}{
		{"normal name at threshold", "invoice24", Normal},
		{"normal long name", "invoice2024", Normal},
		{"short name is malformed", "short", Malformed},
		{"eight chars is malformed", "12345678", Malformed},
		{"nine chars is normal", "123456789", Normal},
		{"empty name is malformed", "", Malformed},
		{"test marker", "TEST-FILE-001", TestMarker},
		{"test marker lowercase", "test-file-001", TestMarker},
		{"test marker mixed case", "Test-File-001", TestMarker},
		{"bare test marker beats length check", "TEST-FILE", TestMarker},
		{"marker prefix must lead", "my-TEST-FILE", Normal},
		{"marker-like but different", "TEST-FILM-001", Normal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.baseName))
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "normal", Normal.String())
	assert.Equal(t, "test-marker", TestMarker.String())
	assert.Equal(t, "malformed", Malformed.String())
	assert.Equal(t, "unknown", Decision(42).String())
}
