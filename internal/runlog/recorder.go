// Package runlog writes one JSON record per pipeline run.
package runlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type RunRecord struct {
	ID          string            `json:"id"`
	Command     string            `json:"command"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Status      Status            `json:"status"`
	Error       string            `json:"error,omitempty"`
	Counters    map[string]int    `json:"counters,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

type Recorder struct {
	dir   string
	now   func() time.Time
	newID func() string
}

func NewRecorder(dir string) *Recorder {
	return &Recorder{
		dir:   dir,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (r *Recorder) Start(command string, tags map[string]string) (*RunRecord, error) {
	if r == nil {
		return nil, errors.New("runlog: recorder is nil")
	}
	if r.dir == "" {
		return nil, errors.New("runlog: directory is required")
	}
	record := &RunRecord{
		ID:        r.newID(),
		Command:   command,
		StartedAt: r.now().UTC(),
		Status:    StatusStarted,
		Tags:      tags,
	}
	if err := r.write(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *Recorder) Finish(record *RunRecord, counters map[string]int, runErr error) error {
	if r == nil {
		return errors.New("runlog: recorder is nil")
	}
	if record == nil {
		return errors.New("runlog: record is nil")
	}
	completed := r.now().UTC()
	record.CompletedAt = &completed
	record.Counters = counters
	if runErr != nil {
		record.Status = StatusFailed
		record.Error = runErr.Error()
	} else {
		record.Status = StatusCompleted
		record.Error = ""
	}
	return r.write(record)
}

// Path is where a record is stored.
func (r *Recorder) Path(id string) string {
	return filepath.Join(r.dir, fmt.Sprintf("run-%s.json", id))
}

func (r *Recorder) write(record *RunRecord) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return os.WriteFile(r.Path(record.ID), append(payload, '\n'), 0o644)
}
