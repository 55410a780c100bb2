// Package datetime produces a single regional notion of "today" and
// converts between the two date-string formats used across the
// application: the canonical storage format (DD/MM/YYYY) and the
// date-picker input format (YYYY-MM-DD).
//
// Argentina observes no daylight saving time, so a fixed UTC-3 offset is
// used instead of a timezone database lookup.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/nhle/photodesk/internal/apperr"
)

// Zone is the fixed regional offset every date is normalized to.
var Zone = time.FixedZone("ART", -3*60*60)

const (
	canonicalLayout = "02/01/2006"
	inputLayout     = "2006-01-02"
	clockLayout     = "15:04"

	// Parsing layouts accept single-digit day and month components.
	canonicalParseLayout = "2/1/2006"
	inputParseLayout     = "2006-1-2"
)

// Service computes regional dates. The zero value is not usable; create
// one with New or NewWithClock.
type Service struct {
	now func() time.Time
}

// New returns a Service backed by the system clock.
func New() *Service {
	return &Service{now: time.Now}
}

// NewWithClock returns a Service that reads the current instant from now.
// Tests use it to pin "today".
func NewWithClock(now func() time.Time) *Service {
	return &Service{now: now}
}

// RegionalNow returns the current instant expressed in the regional zone,
// independent of the host's local offset.
func (s *Service) RegionalNow() time.Time {
	return s.now().UTC().In(Zone)
}

// Today returns midnight of the current regional day.
func (s *Service) Today() time.Time {
	return StartOfDay(s.RegionalNow())
}

// Parse detects the format of value by its separator: "/" is read as
// DD/MM/YYYY and "-" as YYYY-MM-DD. Strings carrying both separators or
// neither, and invalid calendar components, fail with apperr.ErrParse.
// The result is midnight in the regional zone.
func Parse(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	hasSlash := strings.Contains(v, "/")
	hasDash := strings.Contains(v, "-")

	var layout string
	switch {
	case hasSlash && !hasDash:
		layout = canonicalParseLayout
	case hasDash && !hasSlash:
		layout = inputParseLayout
	default:
		return time.Time{}, fmt.Errorf("parsing date %q: %w", value, apperr.ErrParse)
	}

	t, err := time.ParseInLocation(layout, v, Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", value, apperr.ErrParse)
	}
	return t, nil
}

// Canonicalize parses value in either supported format and re-formats it
// as DD/MM/YYYY.
func Canonicalize(value string) (string, error) {
	t, err := Parse(value)
	if err != nil {
		return "", err
	}
	return FormatCanonical(t), nil
}

// ParseClock parses an HH:MM time of day.
func ParseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, 0, fmt.Errorf("parsing time %q: %w", value, apperr.ErrParse)
	}
	return t.Hour(), t.Minute(), nil
}

// At combines a date string and an HH:MM clock string into one regional
// instant. An empty clock means midnight.
func At(date, clock string) (time.Time, error) {
	day, err := Parse(date)
	if err != nil {
		return time.Time{}, err
	}
	if strings.TrimSpace(clock) == "" {
		return day, nil
	}
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, Zone), nil
}

// FormatCanonical renders t as zero-padded DD/MM/YYYY in the regional zone.
func FormatCanonical(t time.Time) string {
	return t.In(Zone).Format(canonicalLayout)
}

// FormatInputControl renders t as zero-padded YYYY-MM-DD in the regional
// zone, the native format of date-picker widgets.
func FormatInputControl(t time.Time) string {
	return t.In(Zone).Format(inputLayout)
}

// TimeOfDay renders t as zero-padded HH:MM in the regional zone.
func TimeOfDay(t time.Time) string {
	return t.In(Zone).Format(clockLayout)
}

// SameDay reports whether a and b fall on the same regional calendar day.
func SameDay(a, b time.Time) bool {
	return FormatCanonical(a) == FormatCanonical(b)
}

// StartOfDay truncates t to regional midnight.
func StartOfDay(t time.Time) time.Time {
	r := t.In(Zone)
	return time.Date(r.Year(), r.Month(), r.Day(), 0, 0, 0, 0, Zone)
}

// AddDays moves t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
