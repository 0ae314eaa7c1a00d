package cadence

// PriorityBucket is one of the four age-based urgency tiers.
type PriorityBucket string

const (
	PriorityP0 PriorityBucket = "p0"
	PriorityP1 PriorityBucket = "p1"
	PriorityP2 PriorityBucket = "p2"
	PriorityP3 PriorityBucket = "p3"
)

// Priority maps account age in days onto its bucket with fixed breakpoints
// 0-14 / 15-60 / 61-179 / 180+.
func Priority(ageDays int) PriorityBucket {
	switch {
	case ageDays <= 14:
		return PriorityP0
	case ageDays <= 60:
		return PriorityP1
	case ageDays <= 179:
		return PriorityP2
	}
	return PriorityP3
}

// PriorityLabel is the display string for an age, with the bucket's day
// range embedded.
func PriorityLabel(ageDays int) string {
	switch Priority(ageDays) {
	case PriorityP0:
		return "Priority 0 (0-14)"
	case PriorityP1:
		return "Priority 1 (15-60)"
	case PriorityP2:
		return "Priority 2 (61-179)"
	}
	return "Priority 3 (180+)"
}
