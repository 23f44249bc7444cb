package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/cadence/internal/core/domain"
)

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2025-10-25", time.Date(2025, 10, 25, 0, 0, 0, 0, time.UTC), true},
		{"2025-10-25T08:30:00Z", time.Date(2025, 10, 25, 8, 30, 0, 0, time.UTC), true},
		{"2025-10-25T08:30:00.123Z", time.Date(2025, 10, 25, 8, 30, 0, 123000000, time.UTC), true},
		{"2025-10-25T10:30:00+02:00", time.Date(2025, 10, 25, 8, 30, 0, 0, time.UTC), true},
		{"2025-10-25T08:30:00", time.Date(2025, 10, 25, 8, 30, 0, 0, time.UTC), true},
		{"2025-10-25T08:30", time.Date(2025, 10, 25, 8, 30, 0, 0, time.UTC), true},
		{"2025-10-25 08:30:00", time.Date(2025, 10, 25, 8, 30, 0, 0, time.UTC), true},
		{"  2025-10-25  ", time.Date(2025, 10, 25, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"tomorrow", time.Time{}, false},
		{"2025-13-01", time.Time{}, false},
		{"2025-02-30", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := domain.ParseDueDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 10, 25, 10, 30, 0, 0, time.FixedZone("", 2*3600))
	assert.Equal(t, "2025-10-25T08:30:00.000Z", domain.FormatTimestamp(ts))
}
