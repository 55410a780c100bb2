package ics

import (
	"bytes"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/nhle/photodesk/internal/model"
)

func TestExportSessions(t *testing.T) {
	sessions := []model.Session{
		{
			ID: "1715344200001", EventID: "1715344200000", Date: "10/05/2024", Time: "18:30",
			Photographer: "Ana", Location: "Salón Norte", Notes: "Ceremonia", Status: model.SessionStatusCompleted,
		},
		{ID: "2", EventID: "gone", Date: "2024-05-11", Time: "", Status: model.SessionStatusPending},
		{ID: "3", Date: "sin fecha"},
	}
	label := func(id model.ID) string {
		if id == "1715344200000" {
			return "Lucía"
		}
		return model.UnknownClientLabel
	}

	var buf bytes.Buffer
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := Export(&buf, sessions, label, stamp); err != nil {
		t.Fatalf("Export: %v", err)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	first := events[0]
	if got := first.GetProperty(ical.ComponentPropertyUniqueId).Value; got != "1715344200001@photodesk" {
		t.Errorf("UID = %q", got)
	}
	if got := first.GetProperty(ical.ComponentPropertySummary).Value; got != "Lucía" {
		t.Errorf("SUMMARY = %q", got)
	}
	// 18:30 at UTC-3 is 21:30 UTC.
	if got := first.GetProperty(ical.ComponentPropertyDtStart).Value; got != "20240510T213000Z" {
		t.Errorf("DTSTART = %q", got)
	}
	if got := first.GetProperty(ical.ComponentPropertyDtEnd).Value; got != "20240510T223000Z" {
		t.Errorf("DTEND = %q", got)
	}
	if got := first.GetProperty(ical.ComponentPropertyStatus).Value; got != "CONFIRMED" {
		t.Errorf("STATUS = %q", got)
	}

	second := events[1]
	if got := second.GetProperty(ical.ComponentPropertySummary).Value; got != model.UnknownClientLabel {
		t.Errorf("dangling SUMMARY = %q", got)
	}
	if got := second.GetProperty(ical.ComponentPropertyDtStart).Value; got != "20240511T030000Z" {
		t.Errorf("midnight DTSTART = %q", got)
	}
	if second.GetProperty(ical.ComponentPropertyLocation) != nil {
		t.Error("empty location was written")
	}
}
