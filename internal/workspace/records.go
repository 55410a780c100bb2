package workspace

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nhle/photodesk/internal/apperr"
	"github.com/nhle/photodesk/internal/datetime"
	"github.com/nhle/photodesk/internal/model"
)

// EventInput holds the user-entered fields of a new event. Date may be in
// either supported format.
type EventInput struct {
	Client   string `validate:"required"`
	Phone    string
	Type     string
	Service  string
	Date     string `validate:"required"`
	Location string
}

// SessionInput holds the user-entered fields of a new session.
type SessionInput struct {
	EventID      model.ID `validate:"required"`
	Date         string   `validate:"required"`
	Time         string   `validate:"required"`
	Photographer string
	Location     string
	Notes        string
}

// Cascade lists what a single delete removed.
type Cascade struct {
	Event      model.ID
	Sessions   []model.ID
	Checklists []model.ID
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// CreateEvent stores a new active event and its main session, which
// shares the event's date and location and is assigned to the first
// roster photographer.
func (w *Workspace) CreateEvent(in EventInput) (model.Event, model.Session, error) {
	trim(&in.Client, &in.Phone, &in.Type, &in.Service, &in.Date, &in.Location)
	if err := w.check("creating event", in); err != nil {
		return model.Event{}, model.Session{}, err
	}
	date, err := datetime.Canonicalize(in.Date)
	if err != nil {
		return model.Event{}, model.Session{}, fmt.Errorf("creating event: %w", err)
	}

	e := model.Event{
		ID:        w.ids.next(),
		Client:    in.Client,
		Phone:     in.Phone,
		Type:      in.Type,
		Service:   in.Service,
		Date:      date,
		Location:  in.Location,
		Status:    model.EventStatusActive,
		CreatedAt: w.createdAt(),
	}

	base, _ := e.ID.Int()
	sessionID := model.IDFromInt(base + 1)
	w.ids.observe(sessionID)

	s := model.Session{
		ID:       sessionID,
		EventID:  e.ID,
		Date:     date,
		Time:     "00:00",
		Location: e.Location,
		Notes:    model.MainSessionNotes,
		Status:   model.SessionStatusPending,
	}
	if len(w.data.Photographers) > 0 {
		s.Photographer = w.data.Photographers[0].Name
	}

	w.data.Events = append(w.data.Events, e)
	w.data.Sessions = append(w.data.Sessions, s)
	return e, s, nil
}

// CreateSession stores a new pending session. The event reference is not
// checked; a dangling one renders with the fallback client label.
func (w *Workspace) CreateSession(in SessionInput) (model.Session, error) {
	trim(&in.Date, &in.Time, &in.Photographer, &in.Location, &in.Notes)
	if err := w.check("creating session", in); err != nil {
		return model.Session{}, err
	}
	date, err := datetime.Canonicalize(in.Date)
	if err != nil {
		return model.Session{}, fmt.Errorf("creating session: %w", err)
	}
	h, m, err := datetime.ParseClock(in.Time)
	if err != nil {
		return model.Session{}, fmt.Errorf("creating session: %w", err)
	}

	s := model.Session{
		ID:           w.ids.next(),
		EventID:      in.EventID,
		Date:         date,
		Time:         fmt.Sprintf("%02d:%02d", h, m),
		Photographer: in.Photographer,
		Location:     in.Location,
		Notes:        in.Notes,
		Status:       model.SessionStatusPending,
	}
	w.data.Sessions = append(w.data.Sessions, s)
	return s, nil
}

// CreateChecklist starts a delivery checklist for the event's client.
func (w *Workspace) CreateChecklist(eventID model.ID) (model.Checklist, error) {
	e, ok := w.Event(eventID)
	if !ok {
		return model.Checklist{}, fmt.Errorf("creating checklist for event %s: %w", eventID, apperr.ErrNotFound)
	}

	items := make([]model.ChecklistItem, len(model.DefaultChecklistItems))
	for i, name := range model.DefaultChecklistItems {
		items[i] = model.ChecklistItem{Name: name}
	}

	c := model.Checklist{
		ID:         w.ids.next(),
		ClientID:   e.ID,
		ClientName: e.Client,
		Items:      items,
		CreatedAt:  w.createdAt(),
	}
	w.data.Checklists = append(w.data.Checklists, c)
	return c, nil
}

// Event returns the event with id.
func (w *Workspace) Event(id model.ID) (model.Event, bool) {
	i := w.eventIndex(id)
	if i < 0 {
		return model.Event{}, false
	}
	return w.data.Events[i], true
}

// Session returns the session with id.
func (w *Workspace) Session(id model.ID) (model.Session, bool) {
	i := w.sessionIndex(id)
	if i < 0 {
		return model.Session{}, false
	}
	return w.data.Sessions[i], true
}

// Checklist returns a copy of the checklist with id.
func (w *Workspace) Checklist(id model.ID) (model.Checklist, bool) {
	i := w.checklistIndex(id)
	if i < 0 {
		return model.Checklist{}, false
	}
	c := w.data.Checklists[i]
	c.Items = slices.Clone(c.Items)
	return c, true
}

func (w *Workspace) eventIndex(id model.ID) int {
	return slices.IndexFunc(w.data.Events, func(e model.Event) bool { return e.ID == id })
}

func (w *Workspace) sessionIndex(id model.ID) int {
	return slices.IndexFunc(w.data.Sessions, func(s model.Session) bool { return s.ID == id })
}

func (w *Workspace) checklistIndex(id model.ID) int {
	return slices.IndexFunc(w.data.Checklists, func(c model.Checklist) bool { return c.ID == id })
}

// ToggleSessionStatus flips a session between pending and completed.
func (w *Workspace) ToggleSessionStatus(id model.ID) (model.Session, error) {
	i := w.sessionIndex(id)
	if i < 0 {
		return model.Session{}, fmt.Errorf("toggling session %s: %w", id, apperr.ErrNotFound)
	}
	s := &w.data.Sessions[i]
	if s.IsCompleted() {
		s.Status = model.SessionStatusPending
	} else {
		s.Status = model.SessionStatusCompleted
	}
	return *s, nil
}

// ToggleChecklistItem flips the completed flag of one checklist item.
func (w *Workspace) ToggleChecklistItem(id model.ID, item int) (model.Checklist, error) {
	i := w.checklistIndex(id)
	if i < 0 {
		return model.Checklist{}, fmt.Errorf("toggling checklist %s: %w", id, apperr.ErrNotFound)
	}
	c := &w.data.Checklists[i]
	if item < 0 || item >= len(c.Items) {
		return model.Checklist{}, fmt.Errorf("toggling checklist %s item %d: %w", id, item, apperr.ErrOutOfRange)
	}
	c.Items[item].Completed = !c.Items[item].Completed

	out := *c
	out.Items = slices.Clone(c.Items)
	return out, nil
}

func (w *Workspace) setEventArchived(id model.ID, archived bool) (model.Event, error) {
	i := w.eventIndex(id)
	if i < 0 {
		return model.Event{}, fmt.Errorf("archiving event %s: %w", id, apperr.ErrNotFound)
	}
	e := &w.data.Events[i]
	e.Archived = archived
	e.Status = model.EventStatusActive
	if archived {
		e.Status = model.EventStatusArchived
	}
	return *e, nil
}

// ArchiveEvent hides an event from the active views.
func (w *Workspace) ArchiveEvent(id model.ID) (model.Event, error) {
	return w.setEventArchived(id, true)
}

// UnarchiveEvent makes an archived event active again.
func (w *Workspace) UnarchiveEvent(id model.ID) (model.Event, error) {
	return w.setEventArchived(id, false)
}

func (w *Workspace) setChecklistArchived(id model.ID, archived bool) (model.Checklist, error) {
	i := w.checklistIndex(id)
	if i < 0 {
		return model.Checklist{}, fmt.Errorf("archiving checklist %s: %w", id, apperr.ErrNotFound)
	}
	c := &w.data.Checklists[i]
	c.Archived = archived

	out := *c
	out.Items = slices.Clone(c.Items)
	return out, nil
}

// ArchiveChecklist hides a checklist from the active views.
func (w *Workspace) ArchiveChecklist(id model.ID) (model.Checklist, error) {
	return w.setChecklistArchived(id, true)
}

// UnarchiveChecklist makes an archived checklist active again.
func (w *Workspace) UnarchiveChecklist(id model.ID) (model.Checklist, error) {
	return w.setChecklistArchived(id, false)
}

// DeleteEvent removes the event together with every session and
// checklist referencing it.
func (w *Workspace) DeleteEvent(id model.ID) (Cascade, error) {
	i := w.eventIndex(id)
	if i < 0 {
		return Cascade{}, fmt.Errorf("deleting event %s: %w", id, apperr.ErrNotFound)
	}

	out := Cascade{Event: id}
	w.data.Events = slices.Delete(w.data.Events, i, i+1)
	w.data.Sessions = slices.DeleteFunc(w.data.Sessions, func(s model.Session) bool {
		if s.EventID != id {
			return false
		}
		out.Sessions = append(out.Sessions, s.ID)
		return true
	})
	w.data.Checklists = slices.DeleteFunc(w.data.Checklists, func(c model.Checklist) bool {
		if c.ClientID != id {
			return false
		}
		out.Checklists = append(out.Checklists, c.ID)
		return true
	})
	return out, nil
}

// DeleteSession removes a single session.
func (w *Workspace) DeleteSession(id model.ID) error {
	i := w.sessionIndex(id)
	if i < 0 {
		return fmt.Errorf("deleting session %s: %w", id, apperr.ErrNotFound)
	}
	w.data.Sessions = slices.Delete(w.data.Sessions, i, i+1)
	return nil
}

// DeleteChecklist removes a single checklist.
func (w *Workspace) DeleteChecklist(id model.ID) error {
	i := w.checklistIndex(id)
	if i < 0 {
		return fmt.Errorf("deleting checklist %s: %w", id, apperr.ErrNotFound)
	}
	w.data.Checklists = slices.Delete(w.data.Checklists, i, i+1)
	return nil
}
