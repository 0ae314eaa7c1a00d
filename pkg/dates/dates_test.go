package dates

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestParseDate(t *testing.T) {
	now := date(2024, time.March, 15)

	tests := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{
			name:     "ISO date",
			raw:      "2024-02-29",
			expected: "2024-02-29",
			ok:       true,
		},
		{
			name:     "Slash date with four digit year",
			raw:      "2/5/2023",
			expected: "2023-02-05",
			ok:       true,
		},
		{
			name:     "Slash date with two digit year",
			raw:      "2/5/23",
			expected: "2023-02-05",
			ok:       true,
		},
		{
			name:     "Slash date without year assumes current year",
			raw:      "7/4",
			expected: "2024-07-04",
			ok:       true,
		},
		{
			name: "Impossible calendar date",
			raw:  "2023-02-31",
			ok:   false,
		},
		{
			name: "Impossible slash date",
			raw:  "2/30/2023",
			ok:   false,
		},
		{
			name: "Bare day of month is not a date",
			raw:  "15",
			ok:   false,
		},
		{
			name: "Empty string",
			raw:  "",
			ok:   false,
		},
		{
			name: "Garbage",
			raw:  "next tuesday",
			ok:   false,
		},
		{
			name:     "Surrounding whitespace",
			raw:      "  2024-01-02  ",
			expected: "2024-01-02",
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseDate(tt.raw, now)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, expected %v", tt.raw, ok, tt.ok)
			}
			if ok && DateKey(parsed) != tt.expected {
				t.Errorf("ParseDate(%q) = %s, expected %s", tt.raw, DateKey(parsed), tt.expected)
			}
		})
	}
}

func TestParseDayOfMonth(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
		ok       bool
	}{
		{name: "Plain integer", raw: "15", expected: 15, ok: true},
		{name: "First with suffix", raw: "1st", expected: 1, ok: true},
		{name: "Third with suffix", raw: "3rd", expected: 3, ok: true},
		{name: "Uppercase suffix", raw: "22ND", expected: 22, ok: true},
		{name: "Upper bound", raw: "31", expected: 31, ok: true},
		{name: "Zero", raw: "0", ok: false},
		{name: "Out of range", raw: "32", ok: false},
		{name: "Full date", raw: "2024-01-15", ok: false},
		{name: "Empty", raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, ok := ParseDayOfMonth(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParseDayOfMonth(%q) ok = %v, expected %v", tt.raw, ok, tt.ok)
			}
			if ok && day != tt.expected {
				t.Errorf("ParseDayOfMonth(%q) = %d, expected %d", tt.raw, day, tt.expected)
			}
		})
	}
}

func TestDayDiff(t *testing.T) {
	tests := []struct {
		name     string
		a        time.Time
		b        time.Time
		expected int
	}{
		{
			name:     "Same day ignores time of day",
			a:        time.Date(2024, time.March, 15, 23, 59, 0, 0, time.Local),
			b:        time.Date(2024, time.March, 15, 0, 1, 0, 0, time.Local),
			expected: 0,
		},
		{
			name:     "Later minus earlier is positive",
			a:        date(2024, time.March, 20),
			b:        date(2024, time.March, 15),
			expected: 5,
		},
		{
			name:     "Earlier minus later is negative",
			a:        date(2024, time.March, 10),
			b:        date(2024, time.March, 15),
			expected: -5,
		},
		{
			name:     "Across a month boundary",
			a:        date(2024, time.March, 1),
			b:        date(2024, time.February, 28),
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayDiff(tt.a, tt.b); got != tt.expected {
				t.Errorf("DayDiff() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestNextDayOfMonth(t *testing.T) {
	tests := []struct {
		name     string
		day      int
		from     time.Time
		expected string
	}{
		{
			name:     "Later this month",
			day:      20,
			from:     date(2024, time.March, 15),
			expected: "2024-03-20",
		},
		{
			name:     "Today counts",
			day:      15,
			from:     date(2024, time.March, 15),
			expected: "2024-03-15",
		},
		{
			name:     "Already passed rolls to next month",
			day:      10,
			from:     date(2024, time.March, 15),
			expected: "2024-04-10",
		},
		{
			name:     "Day 31 clamps in leap February",
			day:      31,
			from:     date(2024, time.February, 1),
			expected: "2024-02-29",
		},
		{
			name:     "Day 31 clamps in non-leap February",
			day:      31,
			from:     date(2023, time.February, 10),
			expected: "2023-02-28",
		},
		{
			name:     "Day 31 in April clamps to the 30th",
			day:      31,
			from:     date(2024, time.April, 30),
			expected: "2024-04-30",
		},
		{
			name:     "Roll across year boundary",
			day:      5,
			from:     date(2024, time.December, 20),
			expected: "2025-01-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDayOfMonth(tt.day, tt.from)
			if DateKey(got) != tt.expected {
				t.Errorf("NextDayOfMonth(%d, %s) = %s, expected %s", tt.day, DateKey(tt.from), DateKey(got), tt.expected)
			}
		})
	}
}

func TestParseMonthKey(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		start string
		end   string
		ok    bool
	}{
		{
			name:  "Leap February",
			key:   "2024-02",
			start: "2024-02-01",
			end:   "2024-02-29",
			ok:    true,
		},
		{
			name:  "Thirty one day month",
			key:   "2024-01",
			start: "2024-01-01",
			end:   "2024-01-31",
			ok:    true,
		},
		{name: "Missing month", key: "2024", ok: false},
		{name: "Non numeric", key: "2024-xx", ok: false},
		{name: "Empty", key: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := ParseMonthKey(tt.key)
			if ok != tt.ok {
				t.Fatalf("ParseMonthKey(%q) ok = %v, expected %v", tt.key, ok, tt.ok)
			}
			if !ok {
				return
			}
			if DateKey(r.Start) != tt.start || DateKey(r.End) != tt.end {
				t.Errorf("ParseMonthKey(%q) = [%s, %s], expected [%s, %s]",
					tt.key, DateKey(r.Start), DateKey(r.End), tt.start, tt.end)
			}
		})
	}
}

func TestDisplayValue(t *testing.T) {
	now := date(2024, time.March, 15)

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "Empty shows dash", raw: "", expected: "-"},
		{name: "Parseable is formatted", raw: "2024-01-05", expected: "01/05/2024"},
		{name: "Unparseable falls back to raw", raw: "15th", expected: "15th"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayValue(tt.raw, now); got != tt.expected {
				t.Errorf("DisplayValue(%q) = %q, expected %q", tt.raw, got, tt.expected)
			}
		})
	}
}
