package hierarchy

import (
	"fmt"
	"time"
)

// Date is a calendar date without a time component, following the style of
// the teacher's types.Date but adding the YYYYMMDD parsing spec §4.1 pins
// for law-name validity windows.
type Date struct {
	Year  int
	Month int // 1-12, 0 when only a year is known (US snapshots)
	Day   int // 1-31, 0 when only a year is known
}

// ParseYYYYMMDD parses an 8-digit date string as used in law-name validity
// windows (spec §4.1).
func ParseYYYYMMDD(s string) (Date, error) {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// ParseISO parses a "YYYY-MM-DD" snapshot literal (spec §6).
func ParseISO(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse ISO date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// String renders the date either as "YYYY-MM-DD" or, when no month/day was
// recorded, as "YYYY".
func (d Date) String() string {
	if d.Month == 0 {
		return fmt.Sprintf("%04d", d.Year)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) toOrdinal() int {
	return d.Year*10000 + d.Month*100 + d.Day
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.toOrdinal() < other.toOrdinal() }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.toOrdinal() > other.toOrdinal() }

// BeforeOrEqual reports whether d <= other.
func (d Date) BeforeOrEqual(other Date) bool { return d.toOrdinal() <= other.toOrdinal() }

// AfterOrEqual reports whether d >= other.
func (d Date) AfterOrEqual(other Date) bool { return d.toOrdinal() >= other.toOrdinal() }
