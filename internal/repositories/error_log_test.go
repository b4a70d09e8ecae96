package repositories

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/ytdb/internal/models"
)

func TestOpenErrorLog(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		log, err := OpenErrorLog(filepath.Join(t.TempDir(), "error_log.json"))
		if err != nil {
			t.Fatalf("expected empty log for missing file, got %v", err)
		}
		if log.Len() != 0 {
			t.Errorf("expected no records, got %d", log.Len())
		}
	})

	t.Run("CorruptFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "error_log.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := OpenErrorLog(path); err == nil {
			t.Error("expected parse error for corrupt file")
		}
	})
}

func TestErrorLogRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error_log.json")
	log, err := OpenErrorLog(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"v1", "v2", "v3"} {
		rec := ErrorRecord{
			ItemType:        "video",
			ItemID:          id,
			Operation:       "get",
			Message:         "item not found upstream",
			InputParameters: models.Attrs{"id": id},
		}
		if err := log.Record(rec); err != nil {
			t.Fatalf("failed to record error: %v", err)
		}
	}

	records := log.Records()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, rec := range records {
		if rec.ID == "" || rec.RecordedAt.IsZero() {
			t.Errorf("record %d missing generated fields: %+v", i, rec)
		}
	}
	if records[0].ItemID != "v1" || records[2].ItemID != "v3" {
		t.Errorf("expected append order preserved, got %v", records)
	}

	// Mutating the returned slice must not touch the log.
	records[0].ItemID = "mutated"
	if log.Records()[0].ItemID != "v1" {
		t.Error("Records should return a copy")
	}
}

func TestErrorLogDurability(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "error_log.json")

	log, err := OpenErrorLog(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"a", "b"} {
		if err := log.Record(ErrorRecord{ItemType: "tag", ItemID: id, Operation: "get", Message: "failed"}); err != nil {
			t.Fatalf("failed to record error: %v", err)
		}
	}

	reopened, err := OpenErrorLog(path)
	if err != nil {
		t.Fatalf("failed to reopen error log: %v", err)
	}
	if reopened.Len() != 2 {
		t.Fatalf("expected 2 records after reopen, got %d", reopened.Len())
	}
	if got := reopened.Records(); got[0].ItemID != "a" || got[1].ItemID != "b" {
		t.Errorf("expected order preserved across reopen, got %v", got)
	}

	// Each append rewrites via a temp file; none should be left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("leftover temp file %q", entry.Name())
		}
	}
}
