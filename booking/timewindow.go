package booking

import "time"

// QuotaWindow is the span of the rolling quota window.
const QuotaWindow = 30 * 24 * time.Hour

// QuotaLimit is the maximum number of confirmed upcoming reservations a
// unit may hold within the rolling window.
const QuotaLimit = 2

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	// NOT (aEnd <= bStart OR aStart >= bEnd)
	return aEnd.After(bStart) && bEnd.After(aStart)
}

// RollingWindow returns the quota-counting window [now, now+30d]. The
// caller supplies now so quota boundaries stay deterministic under test.
func RollingWindow(now time.Time) (time.Time, time.Time) {
	return now, now.Add(QuotaWindow)
}
