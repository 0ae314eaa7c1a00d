package model

import "strings"

// StatusUnsorted is the reserved sentinel status. It is always a member of
// the status set, cannot be removed, and sorts last in user-facing order.
const StatusUnsorted = "Unsorted"

// DefaultStatuses is the status board an empty system starts with.
var DefaultStatuses = []string{
	"SETTLED",
	"Good Faith",
	"Daily",
	"MONDAYS",
	"TUESDAYS",
	"Wednesday",
	"Thursday",
	"Fridays",
	"Bi-Weekly",
	"Monthly",
	"DEFAULTED ACCOUNTS",
	"Forms out- Need Returned",
	"FOLLOW UPS- OFFERS OUT/ IN",
	"NEW ACCOUNTS DAILY FOLLOW UPS - first 14 days",
	"FOLLOW UPS / BKY ACCOUNTS (15-60) (Mon & Thursday)",
	"FOLLOW UPS / BKY ACCOUNTS (60-179) (Tues + Friday)",
	"FOLLOW UPS / BKY ACCOUNTS (180 +) (Wed - Sat)",
	StatusUnsorted,
}

// StatusSet is an ordered collection of unique status labels. The set is
// open: any status in use is admitted. The Unsorted sentinel is permanent.
type StatusSet struct {
	names []string
}

// NewStatusSet builds a set from the given labels, deduplicating while
// preserving first-seen order and guaranteeing the Unsorted member.
func NewStatusSet(names ...string) *StatusSet {
	s := &StatusSet{}
	for _, name := range names {
		s.Add(name)
	}
	s.Add(StatusUnsorted)
	return s
}

// Contains reports whether name is a member.
func (s *StatusSet) Contains(name string) bool {
	for _, existing := range s.names {
		if existing == name {
			return true
		}
	}
	return false
}

// Add admits a new status label. Blank labels and duplicates are ignored.
// Reports whether the set changed.
func (s *StatusSet) Add(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || s.Contains(trimmed) {
		return false
	}
	s.names = append(s.names, trimmed)
	return true
}

// Remove drops a status label. The Unsorted sentinel is never removed.
// Reassigning accounts that carried the removed status is the storage
// layer's job.
func (s *StatusSet) Remove(name string) bool {
	if name == StatusUnsorted {
		return false
	}
	for i, existing := range s.names {
		if existing == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			return true
		}
	}
	return false
}

// Resolve maps a status to a member of the set, falling back to Unsorted
// for blank or unrecognized labels.
func (s *StatusSet) Resolve(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || !s.Contains(trimmed) {
		return StatusUnsorted
	}
	return trimmed
}

// Ordered returns the labels in user-facing order, with Unsorted always
// last regardless of when it was added.
func (s *StatusSet) Ordered() []string {
	ordered := make([]string, 0, len(s.names))
	for _, name := range s.names {
		if name != StatusUnsorted {
			ordered = append(ordered, name)
		}
	}
	return append(ordered, StatusUnsorted)
}
