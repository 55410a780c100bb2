package datetime

import (
	"errors"
	"testing"
	"time"

	"github.com/nhle/photodesk/internal/apperr"
)

func TestRegionalNowIgnoresHostOffset(t *testing.T) {
	// 02:30 UTC on the 11th is still the 10th in Buenos Aires.
	tokyo := time.FixedZone("JST", 9*60*60)
	instant := time.Date(2024, time.May, 11, 2, 30, 0, 0, time.UTC).In(tokyo)
	svc := NewWithClock(func() time.Time { return instant })

	now := svc.RegionalNow()
	if got := FormatCanonical(now); got != "10/05/2024" {
		t.Fatalf("FormatCanonical(RegionalNow()) = %q, want 10/05/2024", got)
	}
	if got := TimeOfDay(now); got != "23:30" {
		t.Fatalf("TimeOfDay(RegionalNow()) = %q, want 23:30", got)
	}
	if got := FormatCanonical(svc.Today()); got != "10/05/2024" {
		t.Fatalf("Today() = %q, want 10/05/2024", got)
	}
}

func TestParseDetectsFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10/05/2024", "10/05/2024"},
		{"2024-05-10", "10/05/2024"},
		{"1/2/2024", "01/02/2024"},
		{"2024-2-1", "01/02/2024"},
		{" 31/12/2023 ", "31/12/2023"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tt.in, err)
		}
		if FormatCanonical(got) != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, FormatCanonical(got), tt.want)
		}
		if got.Hour() != 0 || got.Minute() != 0 || got.Location() != Zone {
			t.Errorf("Parse(%q) = %v, want regional midnight", tt.in, got)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	inputs := []string{
		"",
		"10.05.2024",
		"10/05-2024",
		"31/02/2024",
		"2024-13-01",
		"10/05/24",
		"abc/def/ghij",
	}
	for _, in := range inputs {
		if _, err := Parse(in); !errors.Is(err, apperr.ErrParse) {
			t.Errorf("Parse(%q) error = %v, want ErrParse", in, err)
		}
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	for _, in := range []string{"2024-05-10", "10/05/2024", "29/02/2024", "2000-01-01"} {
		once, err := Canonicalize(in)
		if err != nil {
			t.Fatalf("Canonicalize(%q): %v", in, err)
		}
		twice, err := Canonicalize(once)
		if err != nil {
			t.Fatalf("Canonicalize(%q): %v", once, err)
		}
		if once != twice {
			t.Errorf("Canonicalize not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestFormatInputControl(t *testing.T) {
	d, err := Parse("05/03/2024")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatInputControl(d); got != "2024-03-05" {
		t.Fatalf("FormatInputControl = %q, want 2024-03-05", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.May, 10, 1, 0, 0, 0, Zone)
	b := time.Date(2024, time.May, 10, 23, 59, 0, 0, Zone)
	c := time.Date(2024, time.May, 11, 0, 0, 0, 0, Zone)
	if !SameDay(a, b) {
		t.Error("SameDay(a, b) = false, want true")
	}
	if SameDay(b, c) {
		t.Error("SameDay(b, c) = true, want false")
	}
}

func TestAtAndParseClock(t *testing.T) {
	got, err := At("2024-05-10", "9:05")
	if err != nil {
		t.Fatal(err)
	}
	if TimeOfDay(got) != "09:05" || FormatCanonical(got) != "10/05/2024" {
		t.Fatalf("At = %v", got)
	}

	if _, _, err := ParseClock("25:00"); !errors.Is(err, apperr.ErrParse) {
		t.Fatalf("ParseClock(25:00) error = %v, want ErrParse", err)
	}

	midnight, err := At("10/05/2024", "")
	if err != nil {
		t.Fatal(err)
	}
	if TimeOfDay(midnight) != "00:00" {
		t.Fatalf("At with empty clock = %v, want midnight", midnight)
	}
}
