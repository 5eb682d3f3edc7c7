package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interval(t *testing.T, start, end string) Interval {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("bad start %q: %v", start, err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		t.Fatalf("bad end %q: %v", end, err)
	}
	return Interval{Start: s, End: e}
}

func TestInterval_IsValid(t *testing.T) {
	assert.True(t, interval(t, "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z").IsValid())
	assert.False(t, interval(t, "2026-03-02T11:00:00Z", "2026-03-02T10:00:00Z").IsValid())
	assert.False(t, interval(t, "2026-03-02T10:00:00Z", "2026-03-02T10:00:00Z").IsValid())
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Interval
		overlaps bool
	}{
		{
			name:     "partial overlap",
			a:        interval(t, "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z"),
			b:        interval(t, "2026-03-02T10:30:00Z", "2026-03-02T11:30:00Z"),
			overlaps: true,
		},
		{
			name:     "touching endpoints do not overlap",
			a:        interval(t, "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z"),
			b:        interval(t, "2026-03-02T11:00:00Z", "2026-03-02T12:00:00Z"),
			overlaps: false,
		},
		{
			name:     "disjoint",
			a:        interval(t, "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z"),
			b:        interval(t, "2026-03-02T13:00:00Z", "2026-03-02T14:00:00Z"),
			overlaps: false,
		},
		{
			name:     "fully contained",
			a:        interval(t, "2026-03-02T10:00:00Z", "2026-03-02T14:00:00Z"),
			b:        interval(t, "2026-03-02T11:00:00Z", "2026-03-02T12:00:00Z"),
			overlaps: true,
		},
		{
			name:     "identical",
			a:        interval(t, "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z"),
			b:        interval(t, "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z"),
			overlaps: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a))
		})
	}
}

func TestInterval_Contains(t *testing.T) {
	outer := interval(t, "2026-03-02T09:00:00Z", "2026-03-02T18:00:00Z")

	assert.True(t, outer.Contains(interval(t, "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z")))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(interval(t, "2026-03-02T08:00:00Z", "2026-03-02T10:00:00Z")))
	assert.False(t, outer.Contains(interval(t, "2026-03-02T17:00:00Z", "2026-03-02T19:00:00Z")))
}

func TestInterval_Duration(t *testing.T) {
	assert.Equal(t, 90*time.Minute,
		interval(t, "2026-03-02T10:00:00Z", "2026-03-02T11:30:00Z").Duration())
}
