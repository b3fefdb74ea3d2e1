package grid

import (
	"strings"
	"testing"

	"github.com/matzehuels/highweigh/pkg/core/calendar"
)

func TestLabels(t *testing.T) {
	cfg := calendar.Config{StartYear: 2024, StartMonth: 11, MonthCount: 4}
	labels := Labels(cfg)
	if len(labels) != 4 {
		t.Fatalf("len(Labels) = %d, want 4", len(labels))
	}
	want := []string{"November", "December", "January", "February"}
	for i, l := range labels {
		if l.Text != want[i] {
			t.Errorf("label %d = %q, want %q", i, l.Text, want[i])
		}
		if x := calendar.LabelStart + float64(i)*calendar.MonthWidth; l.X != x {
			t.Errorf("label %d x = %v, want %v", i, l.X, x)
		}
	}
}

func TestLinesCounts(t *testing.T) {
	for _, n := range []int{1, 3, 12, 18} {
		cfg := calendar.Config{StartYear: 2024, StartMonth: 1, MonthCount: n}
		g := Lines(cfg, 200)
		if len(Labels(cfg)) != n {
			t.Errorf("n=%d: labels = %d", n, len(Labels(cfg)))
		}
		if len(g.Boundaries) != n+1 {
			t.Errorf("n=%d: boundaries = %d, want %d", n, len(g.Boundaries), n+1)
		}
		if len(g.Minor) != n {
			t.Errorf("n=%d: minor lines = %d, want %d", n, len(g.Minor), n)
		}
		if len(g.Major) != 4+n+1 {
			t.Errorf("n=%d: major lines = %d, want %d", n, len(g.Major), 4+n+1)
		}
	}
}

func TestBoundariesMatchMapper(t *testing.T) {
	cfg := calendar.Config{StartYear: 2024, StartMonth: 1, MonthCount: 3}
	m := calendar.NewMapper(cfg)
	g := Lines(cfg, 100)
	if first := g.Boundaries[0]; first != calendar.ChartLeft+calendar.BaseX {
		t.Errorf("first boundary = %v, want %v", first, calendar.ChartLeft+calendar.BaseX)
	}
	if last := g.Boundaries[3]; last != calendar.ChartLeft+m.RightEdge() {
		t.Errorf("last boundary = %v, want %v", last, calendar.ChartLeft+m.RightEdge())
	}
	if Width(cfg) != g.Boundaries[3] {
		t.Errorf("Width() = %v, want right edge %v", Width(cfg), g.Boundaries[3])
	}
}

func TestPaths(t *testing.T) {
	cfg := calendar.Config{StartYear: 2024, StartMonth: 1, MonthCount: 1}
	g := Lines(cfg, 120)
	want := "M40,0 H350 M40,50 H350 M40,0 V120 M90,0 V120 M250,0 V120 M350,0 V120"
	if got := g.MajorPath(); got != want {
		t.Errorf("MajorPath() = %q, want %q", got, want)
	}
	if got := g.MinorPath(); got != "M300,50 V120" {
		t.Errorf("MinorPath() = %q", got)
	}
	if !strings.Contains(Lines(cfg, 120.5).MajorPath(), "V120.5") {
		t.Error("fractional heights should be kept")
	}
}

func TestMonthName(t *testing.T) {
	if MonthName(1) != "January" || MonthName(12) != "December" || MonthName(0) != "" {
		t.Error("MonthName mismatch")
	}
}
