package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Event status values. EventStatusCompleted only appears in snapshots
// written before events gained the archived flag.
const (
	EventStatusActive     = "Activo"
	EventStatusArchived   = "Archivado"
	EventStatusCompleted  = "completed"
	eventStatusLegacyOpen = "active"
)

// Session status values.
const (
	SessionStatusPending   = "pending"
	SessionStatusCompleted = "completed"
)

// UnknownClientLabel is shown for a session whose event no longer exists.
const UnknownClientLabel = "Cliente"

// MainSessionNotes is the note attached to the session created together
// with every event.
const MainSessionNotes = "Sesión principal del evento"

// DefaultChecklistItems are the delivery steps every new checklist starts with.
var DefaultChecklistItems = []string{
	"Fotos editadas enviadas",
	"Videos editados enviados",
	"Fotos sin editar enviadas",
	"Link de descarga compartido",
	"Cliente confirmó recepción",
}

// Photographer is a roster entry. It is stored as a bare JSON string and
// read from either a bare string or a {"name": ...} object.
type Photographer struct {
	Name string
}

// MarshalJSON writes the photographer as a bare string.
func (p Photographer) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Name)
}

// UnmarshalJSON accepts "name" or {"name": "name"}.
func (p *Photographer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &p.Name)
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding photographer: %w", err)
	}
	p.Name = obj.Name
	return nil
}

// Service is a price-list entry. Price is optional.
type Service struct {
	Name  string `json:"name"`
	Price *int   `json:"price,omitempty"`
}

// Event is a client engagement, the top-level business record.
type Event struct {
	ID        ID     `json:"id"`
	Client    string `json:"client"`
	Phone     string `json:"phone"`
	Type      string `json:"type"`
	Service   string `json:"service"`
	Date      string `json:"date"`
	Location  string `json:"location"`
	Status    string `json:"status"`
	Archived  bool   `json:"archived"`
	CreatedAt string `json:"createdAt"`
}

// IsActive reports whether the event counts towards the active dashboard.
func (e Event) IsActive() bool {
	return !e.Archived && e.Status != EventStatusCompleted
}

// Session is a single scheduled shoot. EventID is a weak reference and
// may dangle.
type Session struct {
	ID           ID     `json:"id"`
	EventID      ID     `json:"eventId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Photographer string `json:"photographer"`
	Location     string `json:"location"`
	Notes        string `json:"notes"`
	Status       string `json:"status"`
}

// IsCompleted reports whether the session has been shot.
func (s Session) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}

// ChecklistItem is one delivery step.
type ChecklistItem struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Checklist tracks post-production delivery for an event's client.
// ClientName is copied from the event when the checklist is created.
type Checklist struct {
	ID         ID              `json:"id"`
	ClientID   ID              `json:"clientId"`
	ClientName string          `json:"clientName"`
	Items      []ChecklistItem `json:"items"`
	CreatedAt  string          `json:"createdAt"`
	Archived   bool            `json:"archived"`
}

// Progress returns the number of completed items and the total.
func (c Checklist) Progress() (done, total int) {
	for _, item := range c.Items {
		if item.Completed {
			done++
		}
	}
	return done, len(c.Items)
}

// HasPendingItems reports whether any delivery step is still open.
func (c Checklist) HasPendingItems() bool {
	done, total := c.Progress()
	return done < total
}
