package dateutil

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOk bool
		want   string
	}{
		{name: "bare date", input: "2025-01-15", wantOk: true, want: "2025-01-15"},
		{name: "rfc3339", input: "2025-01-15T10:30:00Z", wantOk: true, want: "2025-01-15"},
		{name: "datetime no zone", input: "2025-01-15T10:30:00", wantOk: true, want: "2025-01-15"},
		{name: "space separated", input: "2025-01-15 10:30:00", wantOk: true, want: "2025-01-15"},
		{name: "empty", input: "", wantOk: false},
		{name: "garbage", input: "not-a-date", wantOk: false},
		{name: "wrong order", input: "15-01-2025", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.wantOk {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.wantOk)
			}
			if ok && got.Format("2006-01-02") != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "2025-01-05", want: "Jan 5, 2025"},
		{input: "2024-12-31T23:00:00Z", want: "Dec 31, 2024"},
		{input: "", want: "N/A"},
		{input: "bogus", want: "N/A"},
	}

	for _, tt := range tests {
		if got := FormatDisplay(tt.input); got != tt.want {
			t.Errorf("FormatDisplay(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatForWire(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "2025-03-09T08:00:00Z", want: "2025-03-09"},
		{input: "2025-03-09", want: "2025-03-09"},
		{input: "nope", want: ""},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := FormatForWire(tt.input); got != tt.want {
			t.Errorf("FormatForWire(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDaysRemaining(t *testing.T) {
	ref := time.Date(2025, 1, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		endDate string
		want    int
	}{
		{name: "same day", endDate: "2025-01-01", want: 0},
		{name: "tomorrow", endDate: "2025-01-02", want: 1},
		{name: "thirty days out", endDate: "2025-01-31", want: 30},
		{name: "past", endDate: "2024-12-25", want: -7},
		{name: "time of day ignored", endDate: "2025-01-02T01:00:00Z", want: 1},
		{name: "invalid", endDate: "???", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(tt.endDate, ref); got != tt.want {
				t.Errorf("DaysRemaining(%q) = %d, want %d", tt.endDate, got, tt.want)
			}
		})
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2025, 6, 15, 23, 59, 59, 999, time.FixedZone("X", 3600))
	got := Midnight(in)
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight() = %v, want %v", got, want)
	}
}
