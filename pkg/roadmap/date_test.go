package roadmap

import (
	"testing"

	"github.com/matzehuels/highweigh/pkg/errors"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    CalendarDate
		wantErr bool
	}{
		{"2024-1-1", Date(2024, 1, 1), false},
		{"2024-01-09", Date(2024, 1, 9), false},
		{" 2024-12-31 ", Date(2024, 12, 31), false},
		{"2024-2-29", Date(2024, 2, 29), false},
		{"2023-2-29", CalendarDate{}, true},
		{"2024-13-1", CalendarDate{}, true},
		{"2024-0-1", CalendarDate{}, true},
		{"2024-4-31", CalendarDate{}, true},
		{"2024-1", CalendarDate{}, true},
		{"2024-a-1", CalendarDate{}, true},
		{"", CalendarDate{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidDate) {
					t.Errorf("ParseDate(%q) code = %v, want %v", tt.in, errors.GetCode(err), errors.ErrCodeInvalidDate)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-03")
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}
	if m != (MonthRef{Year: 2024, Month: 3}) {
		t.Errorf("ParseMonth = %v", m)
	}
	for _, bad := range []string{"2024", "2024-13", "2024-1-1", "x-1"} {
		if _, err := ParseMonth(bad); err == nil {
			t.Errorf("ParseMonth(%q) expected error", bad)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b CalendarDate
		want int
	}{
		{Date(2024, 1, 1), Date(2024, 1, 1), 0},
		{Date(2023, 12, 31), Date(2024, 1, 1), -1},
		{Date(2024, 2, 1), Date(2024, 1, 31), 1},
		{Date(2024, 2, 3), Date(2024, 2, 4), -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
	if !Date(2024, 1, 1).Before(Date(2024, 1, 2)) {
		t.Error("Before should be true for earlier date")
	}
}

func TestMonthRefAdd(t *testing.T) {
	tests := []struct {
		m    MonthRef
		n    int
		want MonthRef
	}{
		{MonthRef{2024, 1}, 0, MonthRef{2024, 1}},
		{MonthRef{2024, 11}, 3, MonthRef{2025, 2}},
		{MonthRef{2024, 1}, -1, MonthRef{2023, 12}},
		{MonthRef{2024, 1}, 24, MonthRef{2026, 1}},
	}
	for _, tt := range tests {
		if got := tt.m.Add(tt.n); got != tt.want {
			t.Errorf("%v.Add(%d) = %v, want %v", tt.m, tt.n, got, tt.want)
		}
	}
}

func TestDateText(t *testing.T) {
	var d CalendarDate
	if err := d.UnmarshalText([]byte("2024-03-05")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	b, _ := d.MarshalText()
	if string(b) != "2024-3-5" {
		t.Errorf("MarshalText = %q, want %q", b, "2024-3-5")
	}
}
