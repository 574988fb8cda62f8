package monitor

// allowedSchedules are the check intervals (minutes) the backend accepts,
// in ascending order.
var allowedSchedules = []int{1, 2, 3, 5, 10, 15, 20, 30, 60, 120, 240}

// DefaultScheduleMinutes is used when the caller supplies no interval.
const DefaultScheduleMinutes = 10

// NormalizeSchedule snaps a requested interval to the nearest allowed value.
// Equidistant requests resolve to the smaller candidate. Non-positive input
// snaps to the smallest interval.
func NormalizeSchedule(minutes int) int {
	best := allowedSchedules[0]
	bestDiff := abs(minutes - best)
	for _, allowed := range allowedSchedules[1:] {
		if diff := abs(minutes - allowed); diff < bestDiff {
			best = allowed
			bestDiff = diff
		}
	}
	return best
}

// AllowedSchedules returns a copy of the accepted intervals.
func AllowedSchedules() []int {
	out := make([]int, len(allowedSchedules))
	copy(out, allowedSchedules)
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
