// Package ics renders sessions as an iCalendar feed so they can be
// subscribed to from a phone or desktop calendar.
package ics

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/nhle/photodesk/internal/datetime"
	"github.com/nhle/photodesk/internal/model"
)

const (
	productID = "-//photodesk//sessions//ES"
	uidDomain = "@photodesk"

	// sessionLength is the assumed duration of a shoot.
	sessionLength = time.Hour
)

// Labeler resolves a session's event reference to a display label.
type Labeler func(eventID model.ID) string

// Export writes one VEVENT per session to w. Sessions whose date or time
// cannot be parsed are skipped. stamp is used as DTSTAMP.
func Export(w io.Writer, sessions []model.Session, label Labeler, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, s := range sessions {
		start, err := datetime.At(s.Date, s.Time)
		if err != nil {
			log.Printf("ics: skipping session %s: %v", s.ID, err)
			continue
		}

		ev := cal.AddEvent(s.ID.String() + uidDomain)
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(sessionLength))
		ev.SetSummary(label(s.EventID))
		if s.Location != "" {
			ev.SetLocation(s.Location)
		}
		ev.SetDescription(description(s))
		ev.SetProperty(ical.ComponentPropertyStatus, status(s))
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

func description(s model.Session) string {
	var parts []string
	if s.Photographer != "" {
		parts = append(parts, "Fotógrafo: "+s.Photographer)
	}
	if s.Notes != "" {
		parts = append(parts, s.Notes)
	}
	return strings.Join(parts, "\n")
}

func status(s model.Session) string {
	if s.IsCompleted() {
		return "CONFIRMED"
	}
	return "TENTATIVE"
}
