package ledger

import (
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the 8-digit wire format for journal dates.
const DateLayout = "20060102"

var (
	nendoPattern = regexp.MustCompile(`^[0-9]{4}$`)
	datePattern  = regexp.MustCompile(`^[0-9]{8}$`)
)

// FiscalYear is a 12-month accounting period, April 1 through March 31.
// Fixed marks a closed year; callers use it to forbid edits, the core only
// enforces the date-range invariant that makes locking meaningful.
type FiscalYear struct {
	Nendo     string    `json:"nendo"`
	Fixed     bool      `json:"fixed"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ValidNendo reports whether s is a 4-digit fiscal-year code.
func ValidNendo(s string) bool {
	return nendoPattern.MatchString(s)
}

// ParseDate parses an 8-digit YYYYMMDD string, rejecting both malformed
// strings and syntactically valid but nonexistent calendar dates (20210230).
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// NendoRange returns the inclusive [Apr 1, Mar 31] range for a fiscal-year
// code. The code must already be a valid 4-digit number.
func NendoRange(nendo string) (start, end time.Time) {
	y, _ := strconv.Atoi(nendo)
	start = time.Date(y, time.April, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(y+1, time.March, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

// InNendo reports whether t falls inside the fiscal year's date range.
func InNendo(nendo string, t time.Time) bool {
	start, end := NendoRange(nendo)
	return !t.Before(start) && !t.After(end)
}

// NendoOf returns the fiscal-year code containing t.
func NendoOf(t time.Time) string {
	y := t.Year()
	if t.Month() < time.April {
		y--
	}
	return strconv.Itoa(y)
}
