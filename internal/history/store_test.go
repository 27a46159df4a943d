// # internal/history/store_test.go
package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestStore_OpenInitializesSchemaAndSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	first := ScanRecord{
		Timestamp:     base,
		Root:          "/tmp/proj",
		ModuleCount:   4,
		EdgeCount:     6,
		CycleCount:    1,
		ParseFailures: 1,
		Duration:      120 * time.Millisecond,
		Cycles:        [][]string{{"a", "b", "c"}},
	}
	second := ScanRecord{
		Timestamp:   base.Add(2 * time.Hour),
		Root:        "/tmp/proj",
		ModuleCount: 4,
		EdgeCount:   5,
		CycleCount:  0,
		Duration:    80 * time.Millisecond,
	}

	firstID, err := store.SaveScan(first)
	if err != nil {
		t.Fatalf("save first scan: %v", err)
	}
	if firstID == "" {
		t.Fatal("expected generated scan id")
	}
	if _, err := store.SaveScan(second); err != nil {
		t.Fatalf("save second scan: %v", err)
	}

	got, err := store.LoadScans("default", base.Add(1*time.Hour))
	if err != nil {
		t.Fatalf("load scans: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 scan after since filter, got %d", len(got))
	}
	if got[0].CycleCount != 0 || got[0].EdgeCount != 5 {
		t.Fatalf("unexpected record after since filter: %+v", got[0])
	}

	all, err := store.LoadScans("default", time.Time{})
	if err != nil {
		t.Fatalf("load all scans: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 scans, got %d", len(all))
	}
	if all[0].ScanID != firstID {
		t.Fatalf("expected oldest-first order, got %+v", all)
	}
	if len(all[0].Cycles) != 1 || len(all[0].Cycles[0]) != 3 {
		t.Fatalf("expected cycles to roundtrip, got %+v", all[0].Cycles)
	}
	if all[0].Duration != 120*time.Millisecond {
		t.Fatalf("expected duration roundtrip, got %v", all[0].Duration)
	}
	if all[1].Cycles != nil && len(all[1].Cycles) != 0 {
		t.Fatalf("expected empty cycles, got %+v", all[1].Cycles)
	}
}

func TestStore_OpenRejectsBadPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := Open(t.TempDir()); err == nil {
		t.Fatal("expected error for directory path")
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := store.SaveScan(ScanRecord{Root: "/p", ModuleCount: 1}); err != nil {
		t.Fatalf("save scan: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	all, err := reopened.LoadScans("default", time.Time{})
	if err != nil {
		t.Fatalf("load scans: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected persisted scan after reopen, got %d", len(all))
	}
}
