package backup

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nhle/photodesk/internal/model"
)

// SnapshotFunc returns the data to back up.
type SnapshotFunc func() model.Data

// Scheduler writes timestamped snapshot files on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	dir      string
	format   Format
	snapshot SnapshotFunc
	now      func() time.Time
}

// NewScheduler validates schedule (standard five-field cron syntax) and
// prepares a scheduler writing into dir. It does not start it.
func NewScheduler(schedule, dir string, f Format, snapshot SnapshotFunc) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		dir:      dir,
		format:   f,
		snapshot: snapshot,
		now:      time.Now,
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("parsing backup schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running backup to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run() {
	path, err := s.WriteNow()
	if err != nil {
		log.Printf("backup: %v", err)
		return
	}
	log.Printf("backup: wrote %s", path)
}

// WriteNow writes one backup file immediately and returns its path.
func (s *Scheduler) WriteNow() (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory %s: %w", s.dir, err)
	}

	name := "photodesk-" + s.now().Format("20060102-150405") + s.format.Ext()
	path := filepath.Join(s.dir, name)

	err := WriteFile(path, func(w io.Writer) error {
		return Export(w, s.snapshot(), s.format)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile writes path through a temporary file in the same directory,
// so readers never observe a partial file.
func WriteFile(path string, write func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".photodesk-*")
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming %s: %w", path, err)
	}
	return nil
}
