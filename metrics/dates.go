package metrics

import (
	"math"
	"time"
)

// =============================================================================
// DATE KEY - Calendar-day string key ("YYYY-MM-DD"), the records' native form
// =============================================================================

// DateKey is an ISO calendar-day key. Lexicographic order equals chronological
// order for well-formed keys, so keys compare and sort directly as strings.
type DateKey string

// MonthKey is the "YYYY-MM" prefix of a DateKey.
type MonthKey string

const dateLayout = "2006-01-02"

// Constructors
func Today() DateKey {
	return DateOf(time.Now().UTC())
}

func DateOf(t time.Time) DateKey {
	return DateKey(t.Format(dateLayout))
}

func NewDateKey(year int, month time.Month, day int) DateKey {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Comparison
func (d DateKey) Before(other DateKey) bool { return d < other }
func (d DateKey) After(other DateKey) bool  { return d > other }
func (d DateKey) IsZero() bool              { return d == "" }

// Time parses the key at UTC midnight. Malformed keys parse to the zero time
// so downstream day math degrades to 0 rather than failing.
func (d DateKey) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d DateKey) Valid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

// Month returns the "YYYY-MM" key the date falls in.
func (d DateKey) Month() MonthKey {
	if len(d) < 7 {
		return ""
	}
	return MonthKey(d[:7])
}

// Arithmetic
func (d DateKey) AddDays(n int) DateKey {
	if !d.Valid() {
		return d
	}
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysBetween returns whole days from one key to another, negative when `to`
// precedes `from`. Malformed keys yield 0.
func DaysBetween(from, to DateKey) int {
	if !from.Valid() || !to.Valid() {
		return 0
	}
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}

// ElapsedDays returns the ceiling of days from start until now, floored at 1.
// A plan started today has been running for one day, not zero.
func ElapsedDays(start, now DateKey) int {
	if !start.Valid() || !now.Valid() {
		return 1
	}
	days := int(math.Ceil(now.Time().Sub(start.Time()).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// =============================================================================
// MONTH KEY UTILITIES
// =============================================================================

func MonthOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

func ThisMonth() MonthKey {
	return MonthOf(time.Now().UTC())
}

// Contains reports whether the day falls inside the month.
func (m MonthKey) Contains(d DateKey) bool { return d.Month() == m }

// FirstDay and LastDay bound the month for range queries.
func (m MonthKey) FirstDay() DateKey { return DateKey(m + "-01") }

func (m MonthKey) LastDay() DateKey {
	t, err := time.Parse("2006-01", string(m))
	if err != nil {
		return ""
	}
	return DateOf(t.AddDate(0, 1, -1))
}
