package studio

import (
	"fmt"
	"io"
	"os"

	"github.com/nhle/photodesk/internal/backup"
	"github.com/nhle/photodesk/internal/confirm"
	"github.com/nhle/photodesk/internal/ics"
	"github.com/nhle/photodesk/internal/model"
	"github.com/nhle/photodesk/internal/workspace"
)

// Export writes the full working set to w.
func (s *Studio) Export(w io.Writer, f backup.Format) error {
	return backup.Export(w, s.Snapshot(), f)
}

// ExportCalendar writes every session as an iCalendar feed.
func (s *Studio) ExportCalendar(w io.Writer) error {
	var (
		sessions []model.Session
		labels   = make(map[model.ID]string)
	)
	s.View(func(ws *workspace.Workspace) {
		sessions = ws.Sessions()
		for _, sess := range sessions {
			labels[sess.EventID] = ws.EventLabel(sess.EventID)
		}
	})

	label := func(id model.ID) string { return labels[id] }
	return ics.Export(w, sessions, label, s.ws.Dates().RegionalNow())
}

// ExportFile writes the working set to path. The format follows the file
// extension.
func (s *Studio) ExportFile(path string) error {
	return backup.WriteFile(path, func(w io.Writer) error {
		return s.Export(w, backup.FormatFromPath(path))
	})
}

// ExportCalendarFile writes the iCalendar feed to path.
func (s *Studio) ExportCalendarFile(path string) error {
	return backup.WriteFile(path, s.ExportCalendar)
}

// RequestImportFile reads path and prepares importing it, like
// RequestImport.
func (s *Studio) RequestImportFile(path string, resync bool) (confirm.Ticket, error) {
	f, err := os.Open(path)
	if err != nil {
		return confirm.Ticket{}, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()
	return s.RequestImport(f, backup.FormatFromPath(path), resync)
}
