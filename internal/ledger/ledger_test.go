package ledger

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"ScannerLedger/internal/model"
	"ScannerLedger/internal/store"
)

func newTestLedger(t *testing.T, at time.Time) *Ledger {
	t.Helper()
	l, err := New(t.TempDir(), time.UTC, store.NewNoopStore())
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	l.now = func() time.Time { return at }
	return l
}

func TestAppend_CreatesDocumentAndRecord(t *testing.T) {
	at := time.Date(2025, 3, 14, 14, 30, 0, 0, time.UTC)
	l := newTestLedger(t, at)

	hit, err := l.Append(model.TriggerEvent{
		Ticker:         "abc",
		Kind:           model.TriggerVolumeSpike,
		Price:          4.50,
		ChangePct:      22,
		Volume:         2500000,
		RelativeVolume: 60,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if hit.HitID != 1 {
		t.Errorf("expected hit_id 1, got %d", hit.HitID)
	}
	if hit.Stock.Ticker != "ABC" {
		t.Errorf("expected upper-cased ticker, got %q", hit.Stock.Ticker)
	}
	if hit.Stock.PriceCategory != model.PricePenny {
		t.Errorf("expected penny_stock, got %q", hit.Stock.PriceCategory)
	}
	if hit.Stock.VolumeCategory != model.VolumeExtremeSpike {
		t.Errorf("expected extreme_spike, got %q", hit.Stock.VolumeCategory)
	}
	if hit.Trigger.RiskLevel != model.RiskVeryHigh {
		t.Errorf("expected very_high risk, got %q", hit.Trigger.RiskLevel)
	}
	if hit.Trigger.SignalStrength != 9 {
		t.Errorf("expected signal strength 9, got %d", hit.Trigger.SignalStrength)
	}
	if hit.MarketSession != model.SessionRegular {
		t.Errorf("expected regular_hours at 14:30 UTC, got %q", hit.MarketSession)
	}

	doc, err := l.Read("2025-03-14")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(doc.Hits) != 1 {
		t.Fatalf("expected 1 persisted hit, got %d", len(doc.Hits))
	}
	if doc.Metadata.Date != "2025-03-14" {
		t.Errorf("expected metadata date 2025-03-14, got %q", doc.Metadata.Date)
	}
}

func TestAppend_EmptyTickerRejected(t *testing.T) {
	l := newTestLedger(t, time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC))

	_, err := l.Append(model.TriggerEvent{Ticker: "  "})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := l.Read("2025-03-14"); !errors.Is(err, model.ErrNotFound) {
		t.Error("expected no document written for rejected event")
	}
}

func TestAppend_SummaryInvariants(t *testing.T) {
	l := newTestLedger(t, time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC))

	events := []model.TriggerEvent{
		{Ticker: "XYZ", Kind: model.TriggerMinuteBreakout, Price: 6, ChangePct: 11, RelativeVolume: 8},
		{Ticker: "XYZ", Kind: model.TriggerBreakingNews, Price: 6.2, ChangePct: 13, RelativeVolume: 9},
		{Ticker: "XYZ", Kind: model.TriggerVolumeSpike, Price: 6.5, ChangePct: 15, RelativeVolume: 22},
		{Ticker: "ABC", Kind: model.TriggerVolumeSpike, Price: 3, ChangePct: 18, RelativeVolume: 12},
		{Ticker: "ABC", Kind: model.TriggerBreakoutAndNews, Price: 3.2, ChangePct: 21, RelativeVolume: 14},
	}
	for i, ev := range events {
		hit, err := l.Append(ev)
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if hit.HitID != i+1 {
			t.Errorf("append %d: expected sequential hit_id %d, got %d", i, i+1, hit.HitID)
		}
	}

	doc, err := l.Read("2025-03-14")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	s := doc.Summary
	if s.TotalHits != 5 {
		t.Errorf("expected total_hits 5, got %d", s.TotalHits)
	}
	if s.TotalHits != len(doc.Hits) {
		t.Errorf("total_hits %d != hit list length %d", s.TotalHits, len(doc.Hits))
	}
	if len(s.UniqueTickers) != 2 {
		t.Errorf("expected 2 unique tickers, got %d", len(s.UniqueTickers))
	}
	histogramSum := 0
	for _, c := range s.TriggerTypes {
		histogramSum += c
	}
	if histogramSum != s.TotalHits {
		t.Errorf("trigger histogram sum %d != total_hits %d", histogramSum, s.TotalHits)
	}
	if s.TriggerTypes[model.TriggerVolumeSpike] != 2 {
		t.Errorf("expected 2 volume_spike hits, got %d", s.TriggerTypes[model.TriggerVolumeSpike])
	}
	if s.PriceRanges.Under5 != 2 || s.PriceRanges.From5To10 != 3 {
		t.Errorf("unexpected price histogram: %+v", s.PriceRanges)
	}
}

func TestAppend_RunningBlendAverage(t *testing.T) {
	l := newTestLedger(t, time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC))

	if _, err := l.Append(model.TriggerEvent{Ticker: "AAA", Kind: model.TriggerVolumeSpike, Price: 5, ChangePct: 10}); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Append(model.TriggerEvent{Ticker: "AAA", Kind: model.TriggerVolumeSpike, Price: 5, ChangePct: -20}); err != nil {
		t.Fatal(err)
	}

	doc, err := l.Read("2025-03-14")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// Blend: ((0+10)/2 + |-20|) / 2 = 12.5, not the true mean 15.
	if got := doc.Summary.Performance.AvgChangePct; got != 12.5 {
		t.Errorf("expected blended avg 12.5, got %v", got)
	}
	if got := doc.Summary.Performance.MaxChangePct; got != 20 {
		t.Errorf("expected max change 20, got %v", got)
	}
}

func TestAppend_UnknownTriggerKindNotCounted(t *testing.T) {
	l := newTestLedger(t, time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC))

	hit, err := l.Append(model.TriggerEvent{Ticker: "AAA", Price: 5, ChangePct: 10})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if hit.Trigger.PrimaryTrigger != model.TriggerUnknown {
		t.Errorf("expected unknown trigger, got %q", hit.Trigger.PrimaryTrigger)
	}

	doc, _ := l.Read("2025-03-14")
	if doc.Summary.TotalHits != 1 {
		t.Errorf("expected total_hits 1, got %d", doc.Summary.TotalHits)
	}
	// Unknown kinds are recorded in the hit but stay out of the fixed
	// four-bucket histogram.
	sum := 0
	for _, c := range doc.Summary.TriggerTypes {
		sum += c
	}
	if sum != 0 {
		t.Errorf("expected empty trigger histogram, got sum %d", sum)
	}
}

func TestAppend_ConcurrentSingleWriter(t *testing.T) {
	l := newTestLedger(t, time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC))

	const n = 50
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hit, err := l.Append(model.TriggerEvent{Ticker: "RACE", Kind: model.TriggerVolumeSpike, Price: 5, ChangePct: 12})
			if err != nil {
				t.Errorf("concurrent append: %v", err)
				return
			}
			ids <- hit.HitID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate hit_id %d: an append was lost", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct hit ids, got %d", n, len(seen))
	}

	doc, err := l.Read("2025-03-14")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if doc.Summary.TotalHits != n {
		t.Errorf("expected total_hits %d, got %d", n, doc.Summary.TotalHits)
	}
	if len(doc.Hits) != n {
		t.Errorf("expected %d persisted hits, got %d", n, len(doc.Hits))
	}
}

func TestRead_MissingDate(t *testing.T) {
	l := newTestLedger(t, time.Now())
	if _, err := l.Read("1999-01-01"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAppend_PersistsWholeDocumentEachTime(t *testing.T) {
	at := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	l := newTestLedger(t, at)

	if _, err := l.Append(model.TriggerEvent{Ticker: "AAA", Kind: model.TriggerBreakingNews, Price: 7}); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(l.FilePath("2025-03-14"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	if _, err := l.Append(model.TriggerEvent{Ticker: "BBB", Kind: model.TriggerBreakingNews, Price: 8}); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(l.FilePath("2025-03-14"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if len(second) <= len(first) {
		t.Error("expected the document to grow on append")
	}
}
