package roadmap

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/highweigh/pkg/errors"
)

// CalendarDate is a (year, month, day) triple with no time-of-day or zone.
type CalendarDate struct {
	Year  int
	Month int // 1-12
	Day   int // 1..days in month
}

// Date returns a CalendarDate. It does not validate its arguments.
func Date(year, month, day int) CalendarDate {
	return CalendarDate{Year: year, Month: month, Day: day}
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: int(m), Day: d}
}

// ParseDate parses "YYYY-M-D". Leading zeros are accepted.
// The day is checked against the real calendar, so 2024-2-29 is valid and
// 2023-2-29 is not.
func ParseDate(s string) (CalendarDate, error) {
	parts, err := splitInts(s, 3)
	if err != nil {
		return CalendarDate{}, errors.Wrap(errors.ErrCodeInvalidDate, err, "date %q (want YYYY-M-D)", s)
	}
	d := CalendarDate{Year: parts[0], Month: parts[1], Day: parts[2]}
	if err := d.Validate(); err != nil {
		return CalendarDate{}, err
	}
	return d, nil
}

// MustParseDate is like ParseDate but panics on error. Intended for tests and
// package-level values.
func MustParseDate(s string) CalendarDate {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Validate checks the month and day ranges.
func (d CalendarDate) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return errors.New(errors.ErrCodeInvalidDate, "date %s: month %d out of range 1-12", d, d.Month)
	}
	if last := daysIn(d.Year, d.Month); d.Day < 1 || d.Day > last {
		return errors.New(errors.ErrCodeInvalidDate, "date %s: day %d out of range 1-%d", d, d.Day, last)
	}
	return nil
}

// Compare returns -1, 0 or +1 depending on calendar order.
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

// Before reports whether d is strictly earlier than o.
func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }

// MonthRef returns the month d falls in.
func (d CalendarDate) MonthRef() MonthRef { return MonthRef{Year: d.Year, Month: d.Month} }

// String formats d as "YYYY-M-D", the same form ParseDate reads.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%d-%d-%d", d.Year, d.Month, d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d CalendarDate) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *CalendarDate) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MonthRef identifies a calendar month.
type MonthRef struct {
	Year  int
	Month int // 1-12
}

// ParseMonth parses "YYYY-M". Leading zeros are accepted.
func ParseMonth(s string) (MonthRef, error) {
	parts, err := splitInts(s, 2)
	if err != nil {
		return MonthRef{}, errors.Wrap(errors.ErrCodeInvalidDate, err, "month %q (want YYYY-M)", s)
	}
	m := MonthRef{Year: parts[0], Month: parts[1]}
	if m.Month < 1 || m.Month > 12 {
		return MonthRef{}, errors.New(errors.ErrCodeInvalidDate, "month %q: month %d out of range 1-12", s, m.Month)
	}
	return m, nil
}

// Add returns the month n months after m (n may be negative).
func (m MonthRef) Add(n int) MonthRef {
	idx := m.Year*12 + (m.Month - 1) + n
	y, mo := idx/12, idx%12
	if mo < 0 {
		y, mo = y-1, mo+12
	}
	return MonthRef{Year: y, Month: mo + 1}
}

// First returns day 1 of m.
func (m MonthRef) First() CalendarDate { return CalendarDate{Year: m.Year, Month: m.Month, Day: 1} }

// String formats m as "YYYY-M".
func (m MonthRef) String() string { return fmt.Sprintf("%d-%d", m.Year, m.Month) }

// MarshalText implements encoding.TextMarshaler.
func (m MonthRef) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MonthRef) UnmarshalText(b []byte) error {
	v, err := ParseMonth(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func splitInts(s string, n int) ([]int, error) {
	fields := strings.Split(strings.TrimSpace(s), "-")
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d dash-separated fields, got %d", n, len(fields))
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i+1, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("field %d: negative value %d", i+1, v)
		}
		out[i] = v
	}
	return out, nil
}

func daysIn(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
