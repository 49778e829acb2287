// Package archive handles day rollover: freezing yesterday's ledger
// document into cold storage, permanent backups, retention pruning and the
// optional cloud replica.
package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ScannerLedger/internal/ledger"
	"ScannerLedger/internal/model"
	"ScannerLedger/internal/store"
)

// Manager moves finished ledger documents to the archive, backs them up
// and prunes archives past the retention horizon. Backups are never
// pruned.
type Manager struct {
	logsDir       string
	backupDir     string
	retentionDays int
	cloudURL      string
	store         store.Store
	client        *http.Client
}

// NewManager creates a Manager. cloudURL may be empty to disable cloud
// replication; st receives the finalized daily summary at backup time.
func NewManager(logsDir, backupDir string, retentionDays int, cloudURL string, st store.Store) (*Manager, error) {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	if st == nil {
		st = store.NewNoopStore()
	}
	for _, dir := range []string{logsDir, filepath.Join(logsDir, "archive"), backupDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return &Manager{
		logsDir:       logsDir,
		backupDir:     backupDir,
		retentionDays: retentionDays,
		cloudURL:      cloudURL,
		store:         st,
		client:        &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// ArchiveDir returns the cold-storage directory.
func (m *Manager) ArchiveDir() string {
	return filepath.Join(m.logsDir, "archive")
}

// ArchivePath returns the archived document path for a date.
func (m *Manager) ArchivePath(date string) string {
	return filepath.Join(m.ArchiveDir(), ledger.FileName(date))
}

// Rollover freezes the previous day's ledger: moves the active document
// into the archive, creates a permanent backup (and persists the day's
// summary to the store), prunes expired archives and best-effort uploads
// the backup to the cloud target. Re-running for an already rolled-over
// date is a no-op on existing state. A missing active document is not an
// error.
func (m *Manager) Rollover(asOf time.Time) error {
	yesterday := asOf.UTC().AddDate(0, 0, -1).Format("2006-01-02")

	activePath := filepath.Join(m.logsDir, ledger.FileName(yesterday))
	if _, err := os.Stat(activePath); err == nil {
		if err := os.Rename(activePath, m.ArchivePath(yesterday)); err != nil {
			return fmt.Errorf("archive %s: %w: %v", yesterday, model.ErrPersistence, err)
		}
		log.Printf("[INFO] archived ledger document for %s", yesterday)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w: %v", activePath, model.ErrPersistence, err)
	}

	if err := m.CreatePermanentBackup(yesterday); err != nil {
		return err
	}

	m.prune(asOf)

	if m.cloudURL != "" {
		if err := m.uploadToCloud(yesterday); err != nil {
			log.Printf("[WARN] cloud backup upload for %s: %v", yesterday, err)
		}
	}

	return nil
}

// CreatePermanentBackup copies the archived document for a date into the
// backup store under a time-stamped name and persists its daily summary.
// If a backup for the date already exists the copy is skipped; the summary
// upsert is idempotent and always runs. A missing archive is a no-op.
func (m *Manager) CreatePermanentBackup(date string) error {
	archivePath := m.ArchivePath(date)
	data, err := os.ReadFile(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read archive %s: %w: %v", date, model.ErrPersistence, err)
	}

	if !m.backupExists(date) {
		name := fmt.Sprintf("scanner_hits_%s_backup_%d.json", date, time.Now().Unix())
		if err := os.WriteFile(filepath.Join(m.backupDir, name), data, 0644); err != nil {
			return fmt.Errorf("write backup %s: %w: %v", name, model.ErrPersistence, err)
		}
		log.Printf("[INFO] created permanent backup: %s", name)
	}

	var doc model.LedgerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode archive %s: %w", date, err)
	}
	if err := m.store.UpsertDailySummary(date, &doc.Summary); err != nil {
		log.Printf("[ERROR] persist daily summary for %s: %v", date, err)
	}
	return nil
}

// prune deletes archived documents older than the retention horizon, but
// never one without a permanent backup.
func (m *Manager) prune(asOf time.Time) {
	cutoff := asOf.UTC().AddDate(0, 0, -m.retentionDays)

	entries, err := os.ReadDir(m.ArchiveDir())
	if err != nil {
		log.Printf("[ERROR] read archive dir: %v", err)
		return
	}

	for _, e := range entries {
		date, ok := dateFromFileName(e.Name())
		if !ok {
			continue
		}
		fileDate, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		if !fileDate.Before(cutoff) {
			continue
		}
		if !m.backupExists(date) {
			log.Printf("[WARN] keeping expired archive %s: no backup yet", date)
			continue
		}
		if err := os.Remove(filepath.Join(m.ArchiveDir(), e.Name())); err != nil {
			log.Printf("[ERROR] prune archive %s: %v", e.Name(), err)
			continue
		}
		log.Printf("[INFO] pruned archive %s (retention %d days)", e.Name(), m.retentionDays)
	}
}

func (m *Manager) backupExists(date string) bool {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return false
	}
	prefix := fmt.Sprintf("scanner_hits_%s_backup_", date)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) {
			return true
		}
	}
	return false
}

// BackupCount returns the number of permanent backup files on disk.
func (m *Manager) BackupCount() int {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".json") {
			count++
		}
	}
	return count
}

// uploadToCloud posts the archived document for a date to the configured
// webhook. Failures never propagate to the rollover result.
func (m *Manager) uploadToCloud(date string) error {
	data, err := os.ReadFile(m.ArchivePath(date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	resp, err := m.client.Post(m.cloudURL, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("cloud target returned %s", resp.Status)
	}
	log.Printf("[INFO] uploaded %s archive to cloud backup", date)
	return nil
}

func dateFromFileName(name string) (string, bool) {
	if !strings.HasPrefix(name, "scanner_hits_") || !strings.HasSuffix(name, ".json") {
		return "", false
	}
	date := strings.TrimSuffix(strings.TrimPrefix(name, "scanner_hits_"), ".json")
	if len(date) != len("2006-01-02") {
		return "", false
	}
	return date, true
}
