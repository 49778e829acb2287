// Package analytics reconstructs aggregate views from ledger history. It
// only ever reads: active documents, then the archive.
package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"ScannerLedger/internal/ledger"
	"ScannerLedger/internal/model"
)

// Engine reads per-day documents and computes descriptive statistics.
type Engine struct {
	logsDir string
}

// NewEngine creates an Engine over the given logs directory (the archive
// is expected under its archive/ subdirectory).
func NewEngine(logsDir string) *Engine {
	return &Engine{logsDir: logsDir}
}

// DayReport is the summary of one date together with its full hit list.
type DayReport struct {
	Date          string                    `json:"date"`
	TotalHits     int                       `json:"total_hits"`
	UniqueTickers int                       `json:"unique_tickers"`
	TriggerTypes  map[model.TriggerKind]int `json:"trigger_types"`
	PriceRanges   model.PriceRanges         `json:"price_ranges"`
	Performance   model.PerformanceMetrics  `json:"performance_metrics"`
	Hits          []model.HitRecord         `json:"scanner_hits"`
	Metadata      model.LogMetadata         `json:"log_metadata"`
}

// Summary returns the daily report for a date, looking first at the
// active document and then the archive. A date with no document yields a
// zeroed report, not an error.
func (e *Engine) Summary(date string) (*DayReport, error) {
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	doc, err := e.loadDocument(date)
	if err != nil {
		if os.IsNotExist(err) {
			return &DayReport{Date: date, TriggerTypes: map[model.TriggerKind]int{}, Hits: []model.HitRecord{}}, nil
		}
		return nil, fmt.Errorf("load document %s: %w: %v", date, model.ErrPersistence, err)
	}

	return &DayReport{
		Date:          date,
		TotalHits:     doc.Summary.TotalHits,
		UniqueTickers: len(doc.Summary.UniqueTickers),
		TriggerTypes:  doc.Summary.TriggerTypes,
		PriceRanges:   doc.Summary.PriceRanges,
		Performance:   doc.Summary.Performance,
		Hits:          doc.Hits,
		Metadata:      doc.Metadata,
	}, nil
}

func (e *Engine) loadDocument(date string) (*model.LedgerDocument, error) {
	paths := []string{
		filepath.Join(e.logsDir, ledger.FileName(date)),
		filepath.Join(e.logsDir, "archive", ledger.FileName(date)),
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	var doc model.LedgerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// PriceStats summarizes hit prices.
type PriceStats struct {
	Avg float64 `json:"avg_price"`
	Min float64 `json:"min_price"`
	Max float64 `json:"max_price"`
}

// PerfStats summarizes percent changes.
type PerfStats struct {
	Avg float64 `json:"avg_change_pct"`
	Max float64 `json:"max_change_pct"`
	Min float64 `json:"min_change_pct"`
}

// VolumeStats summarizes relative-volume spikes.
type VolumeStats struct {
	AvgSpike      float64 `json:"avg_volume_spike"`
	MaxSpike      float64 `json:"max_volume_spike"`
	ExtremeSpikes int     `json:"extreme_spikes_count"`
}

// SummaryStats are true-mean descriptive statistics over a hit list.
type SummaryStats struct {
	TotalHits           int                       `json:"total_hits"`
	UniqueTickers       int                       `json:"unique_tickers"`
	HitFrequency        float64                   `json:"hit_frequency"`
	TriggerDistribution map[model.TriggerKind]int `json:"trigger_distribution"`
	Price               PriceStats                `json:"price_statistics"`
	Performance         PerfStats                 `json:"performance_statistics"`
	Volume              VolumeStats               `json:"volume_statistics"`
}

// ComprehensiveStats aggregates a supplied hit list. No I/O; an empty
// list yields a zero value.
func ComprehensiveStats(hits []model.HitRecord) SummaryStats {
	if len(hits) == 0 {
		return SummaryStats{}
	}

	stats := SummaryStats{
		TotalHits:           len(hits),
		TriggerDistribution: map[model.TriggerKind]int{},
	}

	tickers := map[string]bool{}
	var prices, changes, volumes []float64
	for _, h := range hits {
		tickers[h.Stock.Ticker] = true
		stats.TriggerDistribution[h.Trigger.PrimaryTrigger]++
		if h.Stock.Price != nil {
			prices = append(prices, *h.Stock.Price)
		}
		if h.Stock.PriceChangePct != nil {
			changes = append(changes, *h.Stock.PriceChangePct)
		}
		if h.Stock.RelativeVolume != nil {
			volumes = append(volumes, *h.Stock.RelativeVolume)
		}
	}

	stats.UniqueTickers = len(tickers)
	if stats.UniqueTickers > 0 {
		stats.HitFrequency = round2(float64(stats.TotalHits) / float64(stats.UniqueTickers))
	}

	if len(prices) > 0 {
		stats.Price = PriceStats{Avg: round2(mean(prices)), Min: minOf(prices), Max: maxOf(prices)}
	}
	if len(changes) > 0 {
		stats.Performance = PerfStats{Avg: round2(mean(changes)), Max: maxOf(changes), Min: minOf(changes)}
	}
	if len(volumes) > 0 {
		extreme := 0
		for _, v := range volumes {
			if v >= 50 {
				extreme++
			}
		}
		stats.Volume = VolumeStats{AvgSpike: round2(mean(volumes)), MaxSpike: maxOf(volumes), ExtremeSpikes: extreme}
	}
	return stats
}

// PatternReport captures recurring structure across a hit list.
type PatternReport struct {
	TopTickers            map[string]int              `json:"top_tickers"`
	SessionDistribution   map[model.MarketSession]int `json:"session_effectiveness"`
	RiskDistribution      map[model.RiskLevel]int     `json:"risk_distribution"`
	AvgSignalStrength     float64                     `json:"signal_strength_avg"`
	HighConfidenceSignals int                         `json:"high_confidence_signals"`
}

// AnalyzePatterns computes ticker frequency (top 10), session and risk
// distributions and signal-strength aggregates. No I/O.
func AnalyzePatterns(hits []model.HitRecord) PatternReport {
	report := PatternReport{
		TopTickers:          map[string]int{},
		SessionDistribution: map[model.MarketSession]int{},
		RiskDistribution:    map[model.RiskLevel]int{},
	}
	if len(hits) == 0 {
		return report
	}

	counts := map[string]int{}
	sum := 0
	for _, h := range hits {
		counts[h.Stock.Ticker]++
		report.SessionDistribution[h.MarketSession]++
		report.RiskDistribution[h.Trigger.RiskLevel]++
		sum += h.Trigger.SignalStrength
		if h.Trigger.SignalStrength >= 8 {
			report.HighConfidenceSignals++
		}
	}

	type tickerCount struct {
		ticker string
		count  int
	}
	ranked := make([]tickerCount, 0, len(counts))
	for t, c := range counts {
		ranked = append(ranked, tickerCount{t, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].ticker < ranked[j].ticker
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	for _, tc := range ranked {
		report.TopTickers[tc.ticker] = tc.count
	}

	report.AvgSignalStrength = round2(float64(sum) / float64(len(hits)))
	return report
}

// Export bundles N days of history ending at date into one analysis
// report: summary statistics, the last 50 detailed hits and pattern
// breakdowns.
type Export struct {
	GeneratedAt  time.Time         `json:"generated_at"`
	StartDate    string            `json:"start_date"`
	DaysAnalyzed int               `json:"days_analyzed"`
	Summary      SummaryStats      `json:"summary_statistics"`
	DetailedHits []model.HitRecord `json:"detailed_hits"`
	Patterns     PatternReport     `json:"pattern_analysis"`
}

// ExportAnalysis walks `days` days backwards from date (default today) and
// aggregates their hits.
func (e *Engine) ExportAnalysis(date string, days int) (*Export, error) {
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if days <= 0 {
		days = 1
	}

	start, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, model.ErrValidation)
	}

	var all []model.HitRecord
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, -i).Format("2006-01-02")
		report, err := e.Summary(day)
		if err != nil {
			return nil, err
		}
		all = append(all, report.Hits...)
	}

	detailed := all
	if len(detailed) > 50 {
		detailed = detailed[len(detailed)-50:]
	}

	return &Export{
		GeneratedAt:  time.Now().UTC(),
		StartDate:    date,
		DaysAnalyzed: days,
		Summary:      ComprehensiveStats(all),
		DetailedHits: detailed,
		Patterns:     AnalyzePatterns(all),
	}, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
