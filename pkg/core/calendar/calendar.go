// Package calendar maps calendar dates onto the horizontal axis of a
// month-column grid.
//
// Each visible month occupies [MonthWidth] pixels. Day 1 of the first visible
// month sits at [BaseX]; a date's position inside its month is linear in the
// day number, with the last day landing on the next month's boundary.
//
// Coordinates are row-local: rows are drawn inside groups translated right by
// [ChartLeft], so the absolute x of a row-local offset is offset + ChartLeft.
//
//	m := calendar.NewMapper(calendar.Config{StartYear: 2024, StartMonth: 1, MonthCount: 3})
//	x, ok := m.Offset(roadmap.Date(2024, 2, 15), false)
//	if !ok {
//	    // date is outside the visible window
//	}
package calendar

import (
	"fmt"
	"math"

	"github.com/matzehuels/highweigh/pkg/roadmap"
)

// Grid geometry, in pixels.
const (
	// ChartLeft is the x translation applied to every row group.
	ChartLeft = 40.0

	// LabelStart is the absolute x of the first month label and the left
	// margin used when sizing the canvas.
	LabelStart = 300.0

	// MonthWidth is the width of one month column.
	MonthWidth = 100.0

	// BaseX is the row-local x of day 1 of the first visible month.
	BaseX = LabelStart - 90
)

// daysInMonth is indexed by month number. February is always 28 days; the
// fractional math intentionally ignores leap years.
var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the day count the mapper uses for month (1-12).
func DaysInMonth(month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return daysInMonth[month]
}

// Config is the visible window of a chart. It is immutable for a render.
type Config struct {
	StartYear  int
	StartMonth int // 1-12
	MonthCount int // >= 1
}

// ConfigFor returns the window described by doc.
func ConfigFor(doc *roadmap.Document) Config {
	return Config{StartYear: doc.Start.Year, StartMonth: doc.Start.Month, MonthCount: doc.Months}
}

// Validate checks the Config invariants.
func (c Config) Validate() error {
	if c.MonthCount < 1 {
		return fmt.Errorf("month count must be >= 1, got %d", c.MonthCount)
	}
	if c.StartMonth < 1 || c.StartMonth > 12 {
		return fmt.Errorf("start month %d out of range 1-12", c.StartMonth)
	}
	return nil
}

// Month returns the calendar month (1-12) shown in column index.
func (c Config) Month(index int) int {
	return (c.StartMonth-1+index)%12 + 1
}

// Mapper converts dates into row-local x offsets for one Config.
type Mapper struct {
	cfg Config
}

// NewMapper returns a Mapper for cfg.
func NewMapper(cfg Config) Mapper {
	return Mapper{cfg: cfg}
}

// Config returns the window the mapper was built for.
func (m Mapper) Config() Config { return m.cfg }

// MonthDelta returns how many months d lies after the first visible month.
// It is negative for dates before the window.
func (m Mapper) MonthDelta(d roadmap.CalendarDate) int {
	return (d.Year-m.cfg.StartYear)*12 + (d.Month - m.cfg.StartMonth)
}

// RightEdge returns the row-local x of the chart's right edge, where every
// clamped stop date lands.
func (m Mapper) RightEdge() float64 {
	return BaseX + MonthWidth*float64(m.cfg.MonthCount)
}

// Offset returns the row-local x of d.
//
// Dates before the first visible month are always out of range (ok=false).
// Dates at or after the end of the window are out of range for start
// queries; for stop queries (stop=true) they clamp to RightEdge so a bar
// running past the horizon is drawn truncated.
func (m Mapper) Offset(d roadmap.CalendarDate, stop bool) (x float64, ok bool) {
	delta := m.MonthDelta(d)
	if delta < 0 {
		return 0, false
	}

	frac := 0.0
	if delta >= m.cfg.MonthCount {
		if !stop {
			return 0, false
		}
		delta = m.cfg.MonthCount
	} else {
		frac = dayFraction(d)
	}

	return BaseX + math.Floor(MonthWidth*(float64(delta)+frac)), true
}

// dayFraction places day within its month: day 1 is 0, the last day is 1.
// Days past the table's month length (February 29) are pinned to 1 so the
// mapping stays monotonic across the month boundary.
func dayFraction(d roadmap.CalendarDate) float64 {
	days := DaysInMonth(d.Month)
	if days <= 1 {
		return 0
	}
	day := min(max(d.Day, 1), days)
	return float64(day-1) / float64(days-1)
}
