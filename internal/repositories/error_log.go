package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/ytdb/internal/models"
	"github.com/desertthunder/ytdb/internal/shared"
)

// ErrorRecord is one structured failure captured during synchronization.
// Records are append-only and never mutated after being written.
type ErrorRecord struct {
	ID               string       `json:"id"`
	ItemType         string       `json:"itemType"`
	ItemID           string       `json:"itemId"`
	Operation        string       `json:"operation"`
	Message          string       `json:"message"`
	InputParameters  models.Attrs `json:"inputParameters,omitempty"`
	ProviderResponse models.Attrs `json:"providerResponse,omitempty"`
	RecordedAt       time.Time    `json:"recordedAt"`
}

// ErrorLog is the durable record of failed imports: a single JSON document
// holding an ordered sequence of [ErrorRecord]s, rewritten in full on each
// append via a temp file + rename so a failed write never truncates prior
// entries.
type ErrorLog struct {
	path    string
	records []ErrorRecord
}

// OpenErrorLog loads the error log at path, initializing an empty log when the
// file does not exist yet.
func OpenErrorLog(path string) (*ErrorLog, error) {
	log := &ErrorLog{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return log, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read error log: %w", err)
	}

	if err := json.Unmarshal(data, &log.records); err != nil {
		return nil, fmt.Errorf("failed to parse error log: %w", err)
	}

	return log, nil
}

// Record appends a failure and rewrites the full log to disk.
//
// The record's ID and RecordedAt are filled in when left empty. On a write
// failure the record stays in memory and the file on disk keeps its previous
// contents intact.
func (l *ErrorLog) Record(rec ErrorRecord) error {
	if rec.ID == "" {
		rec.ID = shared.GenerateID()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now()
	}

	l.records = append(l.records, rec)
	return l.save()
}

// Records returns a copy of all records in append order.
func (l *ErrorLog) Records() []ErrorRecord {
	out := make([]ErrorRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of recorded failures.
func (l *ErrorLog) Len() int {
	return len(l.records)
}

// Path returns the backing file path.
func (l *ErrorLog) Path() string {
	return l.path
}

// save rewrites the whole document atomically: encode to a temp file in the
// log's directory, then rename over the target.
func (l *ErrorLog) save() error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create error log directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".errorlog-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp error log: %w", err)
	}

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(l.records); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to encode error log: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to sync error log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp error log: %w", err)
	}

	if err := os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace error log: %w", err)
	}

	return nil
}
