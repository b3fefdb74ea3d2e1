// Package grid builds the month header and gridlines of a chart.
//
// Everything here depends only on the chart window and, for line lengths,
// on the final chart height. Nothing reads the layout cursor.
package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/highweigh/pkg/core/calendar"
)

// Header geometry, in absolute pixels.
const (
	HeaderDivider = 50.0 // y of the line under the month labels
	MonthLabelY   = 30.0 // baseline of the month labels
	StatusColumn  = 90.0 // x of the divider right of the RAG column
)

var monthNames = [13]string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

// MonthName returns the English name of month (1-12).
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// Label is one month heading.
type Label struct {
	Month int
	Text  string
	X, Y  float64
}

// Labels returns one label per visible month, left to right.
func Labels(cfg calendar.Config) []Label {
	labels := make([]Label, cfg.MonthCount)
	for i := range labels {
		month := cfg.Month(i)
		labels[i] = Label{
			Month: month,
			Text:  MonthName(month),
			X:     calendar.LabelStart + float64(i)*calendar.MonthWidth,
			Y:     MonthLabelY,
		}
	}
	return labels
}

// Width returns the absolute x where horizontal gridlines end.
func Width(cfg calendar.Config) float64 {
	return calendar.LabelStart + calendar.MonthWidth*float64(cfg.MonthCount) - 50
}

// CanvasWidth returns the width of the whole drawing.
func CanvasWidth(cfg calendar.Config) float64 {
	return calendar.LabelStart + calendar.MonthWidth*float64(cfg.MonthCount)
}

// Segment is an axis-aligned line.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Gridlines holds the major (solid) and minor (dotted, mid-month) lines.
type Gridlines struct {
	Major      []Segment
	Minor      []Segment
	Boundaries []float64 // x of each month boundary, MonthCount+1 values
}

// Lines returns the gridlines for a chart whose rows end at height.
func Lines(cfg calendar.Config, height float64) Gridlines {
	left := calendar.ChartLeft
	right := Width(cfg)
	g := Gridlines{
		Major: []Segment{
			{left, 0, right, 0},
			{left, HeaderDivider, right, HeaderDivider},
			{left, 0, left, height},
			{StatusColumn, 0, StatusColumn, height},
		},
	}
	for m := 0; m <= cfg.MonthCount; m++ {
		x := left + calendar.BaseX + calendar.MonthWidth*float64(m)
		g.Boundaries = append(g.Boundaries, x)
		g.Major = append(g.Major, Segment{x, 0, x, height})
	}
	for m := 0; m < cfg.MonthCount; m++ {
		x := calendar.LabelStart + calendar.MonthWidth*float64(m)
		g.Minor = append(g.Minor, Segment{x, HeaderDivider, x, height})
	}
	return g
}

// MajorPath returns the major lines as an SVG path description.
func (g Gridlines) MajorPath() string { return pathOf(g.Major) }

// MinorPath returns the minor lines as an SVG path description.
func (g Gridlines) MinorPath() string { return pathOf(g.Minor) }

func pathOf(segs []Segment) string {
	var b strings.Builder
	for i, s := range segs {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case s.Y1 == s.Y2:
			fmt.Fprintf(&b, "M%s,%s H%s", num(s.X1), num(s.Y1), num(s.X2))
		case s.X1 == s.X2:
			fmt.Fprintf(&b, "M%s,%s V%s", num(s.X1), num(s.Y1), num(s.Y2))
		default:
			fmt.Fprintf(&b, "M%s,%s L%s,%s", num(s.X1), num(s.Y1), num(s.X2), num(s.Y2))
		}
	}
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
