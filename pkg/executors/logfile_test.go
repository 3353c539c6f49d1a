package executors

import (
	"path/filepath"
	"testing"
)

func TestSaveAndLoadUpdateLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync-log.yaml")

	logs := []UpdateLog{
		syncedLog("l1", "t1", "old", "old | new", true),
		{
			LabelID:       "l2",
			TransactionID: "t2",
			AccountID:     "acc-1",
			Date:          "2024-01-09",
			Amount:        500,
			NewMemo:       "x",
			Error:         "remote rejected update of t2",
		},
	}

	if err := SaveUpdateLogs(path, logs); err != nil {
		t.Fatalf("SaveUpdateLogs failed: %v", err)
	}

	loaded, err := LoadUpdateLogs(path)
	if err != nil {
		t.Fatalf("LoadUpdateLogs failed: %v", err)
	}

	if len(loaded) != len(logs) {
		t.Fatalf("Expected %d entries, got %d", len(logs), len(loaded))
	}
	for i, exp := range logs {
		if loaded[i] != exp {
			t.Errorf("Entry %d mismatch:\nExpected: %+v\nGot: %+v", i, exp, loaded[i])
		}
	}
}

func TestLoadUpdateLogsMissingFile(t *testing.T) {
	if _, err := LoadUpdateLogs(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

func TestLoadUpdateLogsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := SaveUpdateLogs(path, nil); err != nil {
		t.Fatalf("SaveUpdateLogs failed: %v", err)
	}
	if _, err := LoadUpdateLogs(path); err == nil {
		t.Errorf("Expected error for log file with no entries")
	}
}
