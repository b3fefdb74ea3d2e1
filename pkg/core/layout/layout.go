// Package layout stacks roadmap rows vertically.
//
// A [Cursor] holds the top of the next row. The scene renderer advances it by
// a fixed [Heights] value per row kind, so rows never overlap and the final
// cursor is the chart's height. [Plan] computes the same height from a
// document without drawing anything.
package layout

import "github.com/matzehuels/highweigh/pkg/roadmap"

// Heights is the row-height policy, in pixels.
type Heights struct {
	Header  float64 // cursor seed, below the month header
	Project float64 // project title row
	Epic    float64 // each epic row
	EpicGap float64 // trailing gap after a project's epics
	BareGap float64 // trailing gap after a project with no epics
	Footer  float64 // margin added below the last row when sizing the canvas
}

// DefaultHeights returns the standard row heights.
func DefaultHeights() Heights {
	return Heights{
		Header:  70,
		Project: 45,
		Epic:    20,
		EpicGap: 30,
		BareGap: 5,
		Footer:  50,
	}
}

// Cursor is the vertical flow position of one render. The zero value starts
// at 0; use NewCursor to seed it with the header height.
type Cursor struct {
	top float64
}

// NewCursor returns a cursor positioned below the header.
func NewCursor(h Heights) *Cursor {
	return &Cursor{top: h.Header}
}

// Top returns the y of the next row.
func (c *Cursor) Top() float64 { return c.top }

// Advance moves the cursor down by delta. Negative deltas are ignored; the
// cursor never moves up.
func (c *Cursor) Advance(delta float64) {
	if delta > 0 {
		c.top += delta
	}
}

// ProjectHeight returns the vertical space a project with epicCount epics
// takes, trailing gap included.
func (h Heights) ProjectHeight(epicCount int) float64 {
	if epicCount > 0 {
		return h.Project + float64(epicCount)*h.Epic + h.EpicGap
	}
	return h.Project + h.BareGap
}

// Plan returns the final cursor position a render of doc reaches.
func Plan(doc *roadmap.Document, h Heights) float64 {
	total := h.Header
	for _, p := range doc.Projects {
		total += h.ProjectHeight(len(p.Epics))
	}
	return total
}

// RowTops returns the top of each project row, in document order.
func RowTops(doc *roadmap.Document, h Heights) []float64 {
	tops := make([]float64, len(doc.Projects))
	c := NewCursor(h)
	for i, p := range doc.Projects {
		tops[i] = c.Top()
		c.Advance(h.ProjectHeight(len(p.Epics)))
	}
	return tops
}
