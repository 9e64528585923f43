package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/condovia/reservation/booking"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	h := func(n int) time.Time { return base.Add(time.Duration(n) * time.Hour) }

	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical", h(0), h(2), h(0), h(2), true},
		{"partial overlap", h(0), h(2), h(1), h(3), true},
		{"contained", h(0), h(4), h(1), h(2), true},
		{"containing", h(1), h(2), h(0), h(4), true},
		{"touching end to start", h(0), h(1), h(1), h(2), false},
		{"touching start to end", h(1), h(2), h(0), h(1), false},
		{"disjoint before", h(0), h(1), h(2), h(3), false},
		{"disjoint after", h(2), h(3), h(0), h(1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, booking.Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, booking.Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestRollingWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)
	start, end := booking.RollingWindow(now)
	assert.Equal(t, now, start)
	assert.Equal(t, now.Add(30*24*time.Hour), end)
}
