package layout

import (
	"testing"

	"github.com/matzehuels/highweigh/pkg/roadmap"
)

func projects(epicCounts ...int) *roadmap.Document {
	doc := &roadmap.Document{Start: roadmap.MonthRef{Year: 2024, Month: 1}, Months: 3}
	for _, n := range epicCounts {
		p := roadmap.Project{Row: roadmap.Row{Name: "p"}}
		for range n {
			p.Epics = append(p.Epics, roadmap.Epic{Row: roadmap.Row{Name: "e"}})
		}
		doc.Projects = append(doc.Projects, p)
	}
	return doc
}

func TestCursor(t *testing.T) {
	h := DefaultHeights()
	c := NewCursor(h)
	if c.Top() != h.Header {
		t.Fatalf("Top() = %v, want %v", c.Top(), h.Header)
	}
	c.Advance(45)
	c.Advance(-100)
	c.Advance(0)
	if c.Top() != h.Header+45 {
		t.Errorf("Top() = %v, want %v", c.Top(), h.Header+45)
	}

	var zero Cursor
	zero.Advance(10)
	if zero.Top() != 10 {
		t.Errorf("zero cursor Top() = %v, want 10", zero.Top())
	}
}

func TestPlan(t *testing.T) {
	h := DefaultHeights()
	tests := []struct {
		name  string
		epics []int
		want  float64
	}{
		{"empty document", nil, 70},
		{"one bare project", []int{0}, 70 + 45 + 5},
		{"one project with epics", []int{3}, 70 + 45 + 3*20 + 30},
		{"mixed", []int{2, 0, 1}, 70 + (45 + 40 + 30) + (45 + 5) + (45 + 20 + 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Plan(projects(tt.epics...), h); got != tt.want {
				t.Errorf("Plan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRowTopsSecondProject(t *testing.T) {
	h := DefaultHeights()
	tops := RowTops(projects(2, 0), h)
	want := h.Header + h.Project + 2*h.Epic + h.EpicGap
	if len(tops) != 2 || tops[0] != h.Header || tops[1] != want {
		t.Errorf("RowTops() = %v, want [%v %v]", tops, h.Header, want)
	}
}
