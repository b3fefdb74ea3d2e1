package roadmap

import (
	"github.com/matzehuels/highweigh/pkg/errors"
)

// Known RAG status values. Other values are carried through as opaque tags.
const (
	RAGRed   = "red"
	RAGAmber = "amber"
	RAGGreen = "green"
)

// Document is a complete roadmap.
type Document struct {
	Title       string
	LastUpdated string
	Start       MonthRef // first visible month
	Months      int      // number of visible months, >= 1
	Projects    []Project
}

// Row is the part shared by projects and epics: a title line with bars and
// milestones drawn against the month grid.
type Row struct {
	Name        string
	Description string // empty when absent
	Bars        []Bar
	Milestones  []Milestone // sorted by date
}

// Project is a top-level roadmap row with optional nested epics.
type Project struct {
	Row
	RAG   string // empty when absent
	Epics []Epic
}

// Epic is a nested row under a project. It has no RAG status and no epics.
type Epic struct {
	Row
}

// Bar is a date-bounded span. Start <= Stop is expected but not enforced.
type Bar struct {
	Type  string
	Start CalendarDate
	Stop  CalendarDate
}

// Milestone is a point event on a row.
type Milestone struct {
	Date CalendarDate
	Type string
}

// HasEpics reports whether the project has at least one epic.
func (p Project) HasEpics() bool { return len(p.Epics) > 0 }

// End returns the month after the last visible month.
func (d *Document) End() MonthRef { return d.Start.Add(d.Months) }

// Counts returns the number of projects, epics, bars and milestones.
func (d *Document) Counts() (projects, epics, bars, milestones int) {
	for _, p := range d.Projects {
		projects++
		epics += len(p.Epics)
		bars += len(p.Bars)
		milestones += len(p.Milestones)
		for _, e := range p.Epics {
			bars += len(e.Bars)
			milestones += len(e.Milestones)
		}
	}
	return projects, epics, bars, milestones
}

// Validate checks the document-level invariants. Dates are already validated
// by decoding; bars with Stop before Start are accepted.
func (d *Document) Validate() error {
	if d.Months < 1 {
		return errors.New(errors.ErrCodeInvalidDocument, "months must be >= 1, got %d", d.Months)
	}
	if d.Start.Month < 1 || d.Start.Month > 12 {
		return errors.New(errors.ErrCodeInvalidDocument, "startMonth %s: month out of range 1-12", d.Start)
	}
	for i, p := range d.Projects {
		if p.Name == "" {
			return errors.New(errors.ErrCodeInvalidDocument, "project %d: name is required", i)
		}
		for j, e := range p.Epics {
			if e.Name == "" {
				return errors.New(errors.ErrCodeInvalidDocument, "project %q epic %d: name is required", p.Name, j)
			}
		}
	}
	return nil
}
