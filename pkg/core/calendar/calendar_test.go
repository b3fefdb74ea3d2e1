package calendar

import (
	"testing"

	"github.com/matzehuels/highweigh/pkg/roadmap"
)

var q1 = Config{StartYear: 2024, StartMonth: 1, MonthCount: 3}

func TestOffsetBeforeWindow(t *testing.T) {
	m := NewMapper(q1)
	dates := []roadmap.CalendarDate{
		roadmap.Date(2023, 12, 31),
		roadmap.Date(2023, 1, 1),
		roadmap.Date(2020, 6, 15),
	}
	for _, d := range dates {
		for _, stop := range []bool{false, true} {
			if x, ok := m.Offset(d, stop); ok {
				t.Errorf("Offset(%v, stop=%v) = %v, want out of range", d, stop, x)
			}
		}
	}
}

func TestOffsetAfterWindow(t *testing.T) {
	m := NewMapper(q1)
	right := BaseX + MonthWidth*3
	if m.RightEdge() != right {
		t.Fatalf("RightEdge() = %v, want %v", m.RightEdge(), right)
	}

	dates := []roadmap.CalendarDate{
		roadmap.Date(2024, 4, 1),
		roadmap.Date(2024, 4, 30),
		roadmap.Date(2025, 6, 1),
	}
	for _, d := range dates {
		if x, ok := m.Offset(d, false); ok {
			t.Errorf("Offset(%v, start) = %v, want out of range", d, x)
		}
		x, ok := m.Offset(d, true)
		if !ok || x != right {
			t.Errorf("Offset(%v, stop) = %v, %v, want %v (clamped)", d, x, ok, right)
		}
	}
}

func TestOffsetDayOneIsBoundary(t *testing.T) {
	m := NewMapper(Config{StartYear: 2023, StartMonth: 11, MonthCount: 6})
	for delta := 0; delta < 6; delta++ {
		d := roadmap.MonthRef{Year: 2023, Month: 11}.Add(delta).First()
		x, ok := m.Offset(d, false)
		want := BaseX + MonthWidth*float64(delta)
		if !ok || x != want {
			t.Errorf("Offset(%v) = %v, %v, want %v", d, x, ok, want)
		}
	}
}

func TestOffsetMonotonic(t *testing.T) {
	m := NewMapper(Config{StartYear: 2024, StartMonth: 1, MonthCount: 12})
	prev := -1.0
	for month := 1; month <= 12; month++ {
		var days []int
		for day := 1; day <= 31; day++ {
			d := roadmap.Date(2024, month, day)
			if d.Validate() != nil {
				break
			}
			days = append(days, day)
		}
		for _, day := range days {
			d := roadmap.Date(2024, month, day)
			x, ok := m.Offset(d, false)
			if !ok {
				t.Fatalf("Offset(%v) out of range", d)
			}
			if x < prev {
				t.Fatalf("Offset(%v) = %v < previous %v", d, x, prev)
			}
			prev = x
		}
	}
}

func TestScenarioSingleMonthBar(t *testing.T) {
	m := NewMapper(q1)
	start, ok := m.Offset(roadmap.Date(2024, 1, 1), false)
	if !ok || start != BaseX {
		t.Errorf("start = %v, %v, want %v", start, ok, BaseX)
	}
	stop, ok := m.Offset(roadmap.Date(2024, 1, 31), true)
	if !ok || stop != BaseX+MonthWidth {
		t.Errorf("stop = %v, %v, want %v", stop, ok, BaseX+MonthWidth)
	}
	if stop-start > MonthWidth {
		t.Errorf("bar width %v exceeds one month column", stop-start)
	}
}

func TestScenarioFarStopClamps(t *testing.T) {
	m := NewMapper(q1)
	stop, ok := m.Offset(roadmap.Date(2025, 6, 1), true)
	if !ok || stop != BaseX+MonthWidth*3 {
		t.Errorf("stop = %v, %v, want %v", stop, ok, BaseX+MonthWidth*3)
	}
}

func TestOffsetFraction(t *testing.T) {
	m := NewMapper(q1)
	tests := []struct {
		date roadmap.CalendarDate
		want float64
	}{
		{roadmap.Date(2024, 1, 16), BaseX + 50},  // 15/30
		{roadmap.Date(2024, 2, 28), BaseX + 200}, // last day of 28-day February
		{roadmap.Date(2024, 2, 29), BaseX + 200}, // leap day pinned to the boundary
		{roadmap.Date(2024, 3, 11), BaseX + 233}, // 2 + 10/30, floored
		{roadmap.Date(2024, 2, 15), BaseX + 151}, // 1 + 14/27, floored
	}
	for _, tt := range tests {
		x, ok := m.Offset(tt.date, false)
		if !ok || x != tt.want {
			t.Errorf("Offset(%v) = %v, %v, want %v", tt.date, x, ok, tt.want)
		}
	}
}

func TestLeapDayKeepsOrder(t *testing.T) {
	m := NewMapper(q1)
	feb28, _ := m.Offset(roadmap.Date(2024, 2, 28), false)
	feb29, _ := m.Offset(roadmap.Date(2024, 2, 29), false)
	mar1, _ := m.Offset(roadmap.Date(2024, 3, 1), false)
	if feb29 != mar1 || feb28 > feb29 {
		t.Errorf("Feb 28, Feb 29, Mar 1 = %v, %v, %v, want Feb 29 on the March boundary", feb28, feb29, mar1)
	}
}

func TestConfig(t *testing.T) {
	c := Config{StartYear: 2024, StartMonth: 11, MonthCount: 4}
	wantMonths := []int{11, 12, 1, 2}
	for i, want := range wantMonths {
		if got := c.Month(i); got != want {
			t.Errorf("Month(%d) = %d, want %d", i, got, want)
		}
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if err := (Config{StartYear: 2024, StartMonth: 1}).Validate(); err == nil {
		t.Error("Validate() should reject MonthCount 0")
	}
	if DaysInMonth(2) != 28 || DaysInMonth(13) != 0 {
		t.Error("DaysInMonth table mismatch")
	}
}
