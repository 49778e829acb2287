package scheduler

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ScannerLedger/internal/archive"
	"ScannerLedger/internal/ledger"
	"ScannerLedger/internal/model"
	"ScannerLedger/internal/store"
)

func writeYesterdayDocument(t *testing.T, logsDir string) string {
	t.Helper()
	date := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	doc := model.NewLedgerDocument(date, time.Now().UTC())
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(logsDir, ledger.FileName(date)), data, 0644); err != nil {
		t.Fatal(err)
	}
	return date
}

func TestRegisterAll_BadCronSpec(t *testing.T) {
	logsDir := t.TempDir()
	am, err := archive.NewManager(logsDir, t.TempDir(), 30, "", store.NewNoopStore())
	if err != nil {
		t.Fatal(err)
	}
	s := NewScheduler(context.Background(), am)
	if err := s.RegisterAll("not a cron spec"); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestRolloverTask_RunsWhileContextActive(t *testing.T) {
	logsDir := t.TempDir()
	am, err := archive.NewManager(logsDir, t.TempDir(), 30, "", store.NewNoopStore())
	if err != nil {
		t.Fatal(err)
	}
	date := writeYesterdayDocument(t, logsDir)

	s := NewScheduler(context.Background(), am)
	s.RunRolloverNow()

	if _, err := os.Stat(filepath.Join(logsDir, ledger.FileName(date))); !os.IsNotExist(err) {
		t.Error("expected active document to be archived")
	}
	if _, err := os.Stat(am.ArchivePath(date)); err != nil {
		t.Errorf("expected archived document: %v", err)
	}
}

func TestRolloverTask_SkippedAfterShutdown(t *testing.T) {
	logsDir := t.TempDir()
	am, err := archive.NewManager(logsDir, t.TempDir(), 30, "", store.NewNoopStore())
	if err != nil {
		t.Fatal(err)
	}
	date := writeYesterdayDocument(t, logsDir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScheduler(ctx, am)
	s.RunRolloverNow()

	if _, err := os.Stat(filepath.Join(logsDir, ledger.FileName(date))); err != nil {
		t.Errorf("expected active document untouched after shutdown: %v", err)
	}
}
