// Package scene turns a roadmap document into a tree of positioned drawing
// primitives.
//
// Rendering is a single top-to-bottom pass:
//
//  1. header text and month labels ([grid.Labels])
//  2. every project row and its epic rows, each placed vertically by a
//     [layout.Cursor] and horizontally by a [calendar.Mapper]
//  3. gridlines sized to the final cursor, canvas size, today marker and the
//     background below the grid
//
// The pass writes through a [Surface], so the same renderer can target the
// in-memory [Tree] (the default) or any other host. Each call to [Render] owns
// its own cursor and render context; renders never share layout state.
//
//	s, err := scene.Render(doc, scene.WithToday(roadmap.Date(2024, 2, 14)))
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(s)
package scene

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/highweigh/pkg/core/calendar"
	"github.com/matzehuels/highweigh/pkg/core/grid"
	"github.com/matzehuels/highweigh/pkg/core/layout"
	"github.com/matzehuels/highweigh/pkg/errors"
	"github.com/matzehuels/highweigh/pkg/roadmap"
)

// Row geometry, relative to the row group.
const (
	ragCenter     = 25.0
	ragRadius     = 10.0
	nameX         = 195.0
	nameY         = 25.0
	descriptionY  = 40.0
	barY          = 20.0
	barHeight     = 10.0
	barRadius     = 2.0
	milestoneY    = 20.0
	milestoneSize = 12.0
	separatorY    = 50.0
	todayTop      = 60.0
	titleX        = 45.0
	titleY        = 22.0
	updatedY      = 42.0
)

// Classification tags emitted by the renderer.
const (
	ClassHeader      = "header"
	ClassTitle       = "title"
	ClassUpdated     = "updated"
	ClassMonth       = "month"
	ClassGridlines   = "gridlines"
	ClassProject     = "project"
	ClassEpic        = "epic"
	ClassRAG         = "rag"
	ClassName        = "name"
	ClassDescription = "description"
	ClassBar         = "bar"
	ClassMilestone   = "milestone"
	ClassLine        = "line"
	ClassDottedLine  = "dotted-line"
	ClassToday       = "today-line"
	ClassBackground  = "background"
)

// Scene is the result of a render.
type Scene struct {
	Root        *Node   // svg root primitive
	Width       float64 // canvas width
	Height      float64 // canvas height, footer included
	ChartHeight float64 // final layout cursor
	Stats       Stats
}

// Stats counts what the render emitted and skipped.
type Stats struct {
	Projects          int  `json:"projects"`
	Epics             int  `json:"epics"`
	Bars              int  `json:"bars"`
	BarsSkipped       int  `json:"bars_skipped"`
	BarsInverted      int  `json:"bars_inverted"`
	Milestones        int  `json:"milestones"`
	MilestonesSkipped int  `json:"milestones_skipped"`
	Today             bool `json:"today"`
}

// Option configures a render.
type Option func(*options)

type options struct {
	surface Surface
	today   *roadmap.CalendarDate
	heights layout.Heights
	logger  *log.Logger
}

// WithSurface renders onto s instead of a fresh Tree. The root of the scene is
// the first parentless node the renderer creates on s.
func WithSurface(s Surface) Option { return func(o *options) { o.surface = s } }

// WithToday sets the date of the today marker. Without it the current local
// date is used.
func WithToday(d roadmap.CalendarDate) Option { return func(o *options) { o.today = &d } }

// WithHeights overrides the row-height policy.
func WithHeights(h layout.Heights) Option { return func(o *options) { o.heights = h } }

// WithLogger sets the logger used for debug output about skipped elements.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// renderContext is the state of one render. It is created by Render and
// discarded when Render returns.
type renderContext struct {
	surface Surface
	mapper  calendar.Mapper
	cursor  *layout.Cursor
	heights layout.Heights
	logger  *log.Logger

	root      *Node
	gridlines *Node
	right     float64 // absolute x where horizontal row lines end
	stats     Stats
}

// Render lays out doc and returns the resulting scene. It fails only when the
// document's window is invalid; out-of-range dates are skipped or clamped.
func Render(doc *roadmap.Document, opts ...Option) (*Scene, error) {
	o := options{heights: layout.DefaultHeights()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.surface == nil {
		o.surface = NewTree()
	}
	if o.logger == nil {
		o.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.today == nil {
		today := roadmap.FromTime(time.Now())
		o.today = &today
	}

	cfg := calendar.ConfigFor(doc)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "chart window")
	}

	rc := &renderContext{
		surface: o.surface,
		mapper:  calendar.NewMapper(cfg),
		cursor:  layout.NewCursor(o.heights),
		heights: o.heights,
		logger:  o.logger,
		right:   grid.Width(cfg),
	}

	rc.root = rc.surface.Create(KindSVG, nil, "")
	rc.drawHeader(doc)
	for _, p := range doc.Projects {
		rc.drawProject(p)
	}
	width, height := rc.finish(*o.today)

	return &Scene{
		Root:        rc.root,
		Width:       width,
		Height:      height,
		ChartHeight: rc.cursor.Top(),
		Stats:       rc.stats,
	}, nil
}

func (rc *renderContext) create(kind Kind, parent *Node, text string, classes ...string) *Node {
	n := rc.surface.Create(kind, parent, text)
	if len(classes) > 0 {
		rc.surface.Tag(n, classes...)
	}
	return n
}

func (rc *renderContext) drawHeader(doc *roadmap.Document) {
	header := rc.create(KindGroup, rc.root, "", ClassHeader)

	if doc.Title != "" {
		rc.create(KindText, header, doc.Title, ClassTitle).
			SetNum("x", titleX).SetNum("y", titleY)
	}
	if doc.LastUpdated != "" {
		rc.create(KindText, header, "Last updated "+doc.LastUpdated, ClassUpdated).
			SetNum("x", titleX).SetNum("y", updatedY)
	}

	for _, l := range grid.Labels(rc.mapper.Config()) {
		rc.create(KindText, header, l.Text, ClassMonth).
			SetNum("x", l.X).SetNum("y", l.Y)
	}

	// Filled in by finish; created now so the lines sit beneath the rows.
	rc.gridlines = rc.create(KindGroup, rc.root, "", ClassGridlines)
}

func (rc *renderContext) drawProject(p roadmap.Project) {
	rc.stats.Projects++
	g := rc.rowGroup(ClassProject)

	if p.RAG != "" {
		rc.create(KindCircle, g, "", ClassRAG, p.RAG).
			SetNum("cx", ragCenter).SetNum("cy", ragCenter).SetNum("r", ragRadius)
	}

	rc.drawRow(p.Row, g)
	rc.cursor.Advance(rc.heights.Project)

	if p.HasEpics() {
		rc.create(KindPath, g, "", ClassDottedLine).
			Set("d", fmt.Sprintf("M0,%s H%s", Num(separatorY), Num(rc.right-calendar.ChartLeft)))

		for _, e := range p.Epics {
			rc.stats.Epics++
			rc.drawRow(e.Row, rc.rowGroup(ClassEpic))
			rc.cursor.Advance(rc.heights.Epic)
		}
		rc.cursor.Advance(rc.heights.EpicGap)
	} else {
		rc.cursor.Advance(rc.heights.BareGap)
	}

	y := rc.cursor.Top()
	rc.create(KindPath, rc.root, "", ClassLine).
		Set("d", fmt.Sprintf("M%s,%s H%s", Num(calendar.ChartLeft), Num(y), Num(rc.right)))
}

// rowGroup creates a row group at the current cursor.
func (rc *renderContext) rowGroup(class string) *Node {
	return rc.create(KindGroup, rc.root, "", class).
		Set("transform", fmt.Sprintf("translate(%s %s)", Num(calendar.ChartLeft), Num(rc.cursor.Top())))
}

func (rc *renderContext) drawRow(row roadmap.Row, g *Node) {
	rc.create(KindText, g, row.Name, ClassName).
		SetNum("x", nameX).SetNum("y", nameY)

	if row.Description != "" {
		rc.create(KindText, g, row.Description, ClassDescription).
			SetNum("x", nameX).SetNum("y", descriptionY)
	}

	for _, b := range row.Bars {
		rc.drawBar(b, row.Name, g)
	}
	for _, m := range row.Milestones {
		rc.drawMilestone(m, row.Name, g)
	}
}

func (rc *renderContext) drawBar(b roadmap.Bar, rowName string, g *Node) {
	start, ok := rc.mapper.Offset(b.Start, false)
	if !ok {
		rc.stats.BarsSkipped++
		rc.logger.Debug("skipping bar outside chart window", "row", rowName, "type", b.Type, "start", b.Start)
		return
	}

	stop, ok := rc.mapper.Offset(b.Stop, true)
	if !ok {
		// Only a stop before the window gets here, which means stop < start.
		stop = calendar.BaseX
	}
	width := stop - start
	if width < 0 {
		rc.stats.BarsInverted++
		rc.logger.Warn("bar stops before it starts", "row", rowName, "type", b.Type, "start", b.Start, "stop", b.Stop)
		width = 0
	}

	rc.stats.Bars++
	rc.create(KindRect, g, "", ClassBar, b.Type).
		SetNum("x", start).SetNum("y", barY).
		SetNum("width", width).SetNum("height", barHeight).
		SetNum("rx", barRadius)
}

func (rc *renderContext) drawMilestone(m roadmap.Milestone, rowName string, g *Node) {
	x, ok := rc.mapper.Offset(m.Date, false)
	if !ok {
		rc.stats.MilestonesSkipped++
		rc.logger.Debug("skipping milestone outside chart window", "row", rowName, "type", m.Type, "date", m.Date)
		return
	}

	rc.stats.Milestones++
	half := milestoneSize / 2
	diamond := rc.create(KindGroup, g, "").
		Set("transform", fmt.Sprintf("translate(%s %s) translate(%s -1) rotate(45 %s %s)",
			Num(x), Num(milestoneY), Num(-half), Num(half), Num(half)))
	rc.create(KindRect, diamond, "", ClassMilestone, m.Type).
		SetNum("width", milestoneSize).SetNum("height", milestoneSize)
}

// finish draws everything that depends on the final cursor and returns the
// canvas size.
func (rc *renderContext) finish(today roadmap.CalendarDate) (width, height float64) {
	cfg := rc.mapper.Config()
	bottom := rc.cursor.Top()

	lines := grid.Lines(cfg, bottom)
	rc.create(KindPath, rc.gridlines, "", ClassLine).Set("d", lines.MajorPath())
	rc.create(KindPath, rc.gridlines, "", ClassDottedLine).Set("d", lines.MinorPath())

	width = grid.CanvasWidth(cfg)
	height = bottom + rc.heights.Footer
	rc.root.Set("viewBox", fmt.Sprintf("0 0 %s %s", Num(width), Num(height)))

	if x, ok := rc.mapper.Offset(today, false); ok {
		rc.stats.Today = true
		rc.create(KindPath, rc.root, "", ClassToday).
			Set("d", fmt.Sprintf("M%s,%s V%s", Num(x+calendar.ChartLeft), Num(todayTop), Num(height)))
	}

	rc.create(KindRect, rc.root, "", ClassBackground).
		SetNum("x", 0).SetNum("y", bottom+0.5).
		Set("width", "100%").Set("height", "100%")

	return width, height
}
