// Package ledger owns the live per-day scanner-hit documents: one JSON
// file per UTC calendar date holding the ordered hit list and its running
// daily summary.
package ledger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ScannerLedger/internal/model"
	"ScannerLedger/internal/store"
)

// Ledger appends scanner hits to the active day's document and mirrors
// every record into the durable store.
//
// Appends are whole-document read-modify-write; the mutex makes this
// process the single writer for a day. Cross-process locking is not
// provided.
type Ledger struct {
	mu         sync.Mutex
	logsDir    string
	sessionLoc *time.Location
	store      store.Store
	now        func() time.Time
}

// New creates a Ledger writing documents under logsDir. sessionLoc is the
// timezone used for market-session bucketing; st receives a mirror copy of
// every appended hit.
func New(logsDir string, sessionLoc *time.Location, st store.Store) (*Ledger, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}
	if sessionLoc == nil {
		sessionLoc = time.UTC
	}
	if st == nil {
		st = store.NewNoopStore()
	}
	return &Ledger{
		logsDir:    logsDir,
		sessionLoc: sessionLoc,
		store:      st,
		now:        time.Now,
	}, nil
}

// FileName returns the document file name for a date.
func FileName(date string) string {
	return fmt.Sprintf("scanner_hits_%s.json", date)
}

// FilePath returns the active document path for a date.
func (l *Ledger) FilePath(date string) string {
	return filepath.Join(l.logsDir, FileName(date))
}

// Append records one scanner hit: loads (or creates) today's document,
// builds the enriched HitRecord, updates the running summary, writes the
// whole document back, then mirrors the record into the store. A failed
// document write means the hit was not logged and may be retried; a failed
// store mirror is logged and does not fail the append.
func (l *Ledger) Append(ev model.TriggerEvent) (*model.HitRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	date := now.UTC().Format("2006-01-02")

	doc, err := l.load(date)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load document %s: %w: %v", date, model.ErrPersistence, err)
		}
		doc = model.NewLedgerDocument(date, now.UTC())
	}

	hit, err := BuildHit(ev, len(doc.Hits)+1, now, now.In(l.sessionLoc).Hour())
	if err != nil {
		return nil, err
	}

	doc.Hits = append(doc.Hits, *hit)
	updateSummary(&doc.Summary, hit)

	if err := l.persist(date, doc); err != nil {
		return nil, err
	}

	if err := l.store.InsertHit(hit); err != nil {
		// Store is best-effort on the append path; the document stays the
		// source of truth until the mirror succeeds on a later attempt.
		log.Printf("[ERROR] mirror hit to store: %v", err)
	}

	return hit, nil
}

// Read returns the active document for a date, or ErrNotFound.
func (l *Ledger) Read(date string) (*model.LedgerDocument, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.load(date)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("document %s: %w", date, model.ErrNotFound)
		}
		return nil, fmt.Errorf("read document %s: %w: %v", date, model.ErrPersistence, err)
	}
	return doc, nil
}

func (l *Ledger) load(date string) (*model.LedgerDocument, error) {
	data, err := os.ReadFile(l.FilePath(date))
	if err != nil {
		return nil, err
	}
	var doc model.LedgerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (l *Ledger) persist(date string, doc *model.LedgerDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document %s: %w", date, err)
	}
	if err := os.WriteFile(l.FilePath(date), data, 0644); err != nil {
		return fmt.Errorf("write document %s: %w: %v", date, model.ErrPersistence, err)
	}
	return nil
}

// updateSummary folds one hit into the running daily summary. The averages
// keep the scanner's historical (old+|new|)/2 blend, which overweights
// recent hits; it is a smoothing measure, not a true mean.
func updateSummary(s *model.DailySummary, hit *model.HitRecord) {
	s.TotalHits++

	ticker := hit.Stock.Ticker
	seen := false
	for _, t := range s.UniqueTickers {
		if t == ticker {
			seen = true
			break
		}
	}
	if !seen {
		s.UniqueTickers = append(s.UniqueTickers, ticker)
	}

	if _, ok := s.TriggerTypes[hit.Trigger.PrimaryTrigger]; ok {
		s.TriggerTypes[hit.Trigger.PrimaryTrigger]++
	}

	if p := hit.Stock.Price; p != nil {
		switch {
		case *p < 5:
			s.PriceRanges.Under5++
		case *p < 10:
			s.PriceRanges.From5To10++
		case *p < 15:
			s.PriceRanges.From10To15++
		default:
			s.PriceRanges.From15To20++
		}
	}

	if c := hit.Stock.PriceChangePct; c != nil {
		change := *c
		if change < 0 {
			change = -change
		}
		s.Performance.AvgChangePct = (s.Performance.AvgChangePct + change) / 2
		if change > s.Performance.MaxChangePct {
			s.Performance.MaxChangePct = change
		}
	}

	if rv := hit.Stock.RelativeVolume; rv != nil {
		s.Performance.AvgVolumeSpike = (s.Performance.AvgVolumeSpike + *rv) / 2
		if *rv > s.Performance.MaxVolumeSpike {
			s.Performance.MaxVolumeSpike = *rv
		}
	}
}
