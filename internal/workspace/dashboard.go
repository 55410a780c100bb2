package workspace

import (
	"cmp"
	"iter"
	"slices"
	"time"

	"github.com/nhle/photodesk/internal/datetime"
	"github.com/nhle/photodesk/internal/model"
)

// DefaultUpcomingLimit is the number of sessions the dashboard lists.
const DefaultUpcomingLimit = 5

// upcomingWindowDays is the length of the "next days" counter window.
const upcomingWindowDays = 7

// Counters are the dashboard figures for one reference day.
type Counters struct {
	TodaySessions     int
	SessionsNext7Days int
	ActiveEvents      int
	PendingDeliveries int
}

// Counters computes the dashboard figures relative to ref. Sessions with
// unparseable dates are not counted. Archived events and checklists are
// excluded.
func (w *Workspace) Counters(ref time.Time) Counters {
	today := datetime.StartOfDay(ref)
	horizon := datetime.AddDays(today, upcomingWindowDays)

	var c Counters
	for _, s := range w.data.Sessions {
		d, err := datetime.Parse(s.Date)
		if err != nil {
			continue
		}
		if datetime.SameDay(d, today) {
			c.TodaySessions++
		}
		if !d.Before(today) && !d.After(horizon) {
			c.SessionsNext7Days++
		}
	}
	for _, e := range w.data.Events {
		if e.IsActive() {
			c.ActiveEvents++
		}
	}
	for _, cl := range w.data.Checklists {
		if !cl.Archived && cl.HasPendingItems() {
			c.PendingDeliveries++
		}
	}
	return c
}

type datedSession struct {
	at      time.Time
	session model.Session
}

// UpcomingSessions yields sessions dated on or after ref's day, earliest
// first, at most limit of them. A non-positive limit selects
// DefaultUpcomingLimit. The sequence works on a snapshot taken when it is
// created and can be ranged over repeatedly.
func (w *Workspace) UpcomingSessions(ref time.Time, limit int) iter.Seq[model.Session] {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	today := datetime.StartOfDay(ref)

	var dated []datedSession
	for _, s := range w.data.Sessions {
		at, err := datetime.At(s.Date, s.Time)
		if err != nil {
			at, err = datetime.Parse(s.Date)
			if err != nil {
				continue
			}
		}
		if at.Before(today) {
			continue
		}
		dated = append(dated, datedSession{at: at, session: s})
	}
	slices.SortStableFunc(dated, func(a, b datedSession) int {
		return a.at.Compare(b.at)
	})
	if len(dated) > limit {
		dated = dated[:limit]
	}

	return func(yield func(model.Session) bool) {
		for _, d := range dated {
			if !yield(d.session) {
				return
			}
		}
	}
}

// SessionsOn returns the sessions scheduled on day, ordered by time.
func (w *Workspace) SessionsOn(day time.Time) []model.Session {
	var out []model.Session
	for _, s := range w.data.Sessions {
		d, err := datetime.Parse(s.Date)
		if err != nil || !datetime.SameDay(d, day) {
			continue
		}
		out = append(out, s)
	}
	slices.SortStableFunc(out, func(a, b model.Session) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return out
}

// SessionsForEvent returns the sessions referencing eventID.
func (w *Workspace) SessionsForEvent(eventID model.ID) []model.Session {
	var out []model.Session
	for _, s := range w.data.Sessions {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}
	return out
}

// EventLabel returns the client name of the event, or the fallback label
// when the reference dangles.
func (w *Workspace) EventLabel(eventID model.ID) string {
	if e, ok := w.Event(eventID); ok && e.Client != "" {
		return e.Client
	}
	return model.UnknownClientLabel
}

// ChecklistProgress returns completed and total item counts for the
// checklist with id.
func (w *Workspace) ChecklistProgress(id model.ID) (done, total int, ok bool) {
	i := w.checklistIndex(id)
	if i < 0 {
		return 0, 0, false
	}
	done, total = w.data.Checklists[i].Progress()
	return done, total, true
}
