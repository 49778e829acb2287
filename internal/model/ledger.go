package model

import "time"

// Fixed scanner description recorded in every document and hit.
const (
	LogVersion       = "2.0"
	ScannerType      = "breakout_and_news_momentum"
	ScannerCriteria  = "$2-$20 range, 5%+ minute moves OR breaking news, 10x+ volume"
	MarketConditions = "Real-time breakout and news scanner"
	ScanFrequency    = "Every 30 seconds"
)

// ScanCriteria describes the scanner configuration in document metadata.
type ScanCriteria struct {
	PriceRange    string   `json:"price_range"`
	Triggers      []string `json:"triggers"`
	ScanFrequency string   `json:"scan_frequency"`
}

// LogMetadata is the header of a daily ledger document.
type LogMetadata struct {
	Date        string       `json:"date"`
	LogVersion  string       `json:"log_version"`
	Purpose     string       `json:"purpose"`
	ScannerType string       `json:"scanner_type"`
	CreatedAt   time.Time    `json:"created_at"`
	Timezone    string       `json:"timezone"`
	Criteria    ScanCriteria `json:"criteria"`
}

// PriceRanges is the fixed four-bucket price histogram of a day.
type PriceRanges struct {
	Under5     int `json:"under_5"`
	From5To10  int `json:"5_to_10"`
	From10To15 int `json:"10_to_15"`
	From15To20 int `json:"15_to_20"`
}

// PerformanceMetrics tracks running change/volume measures for a day.
// The averages use the recency-weighted blend (old+new)/2 the scanner has
// always reported, not a true mean; AnalyticsEngine computes true means.
type PerformanceMetrics struct {
	AvgChangePct   float64 `json:"avg_change_pct"`
	MaxChangePct   float64 `json:"max_change_pct"`
	AvgVolumeSpike float64 `json:"avg_volume_spike"`
	MaxVolumeSpike float64 `json:"max_volume_spike"`
}

// DailySummary is the running rollup of one day's hits.
// Invariant: TotalHits == len(document hits) == sum of TriggerTypes counts.
type DailySummary struct {
	TotalHits     int                 `json:"total_hits"`
	UniqueTickers []string            `json:"unique_tickers"`
	TriggerTypes  map[TriggerKind]int `json:"trigger_types"`
	PriceRanges   PriceRanges         `json:"price_ranges"`
	Performance   PerformanceMetrics  `json:"performance_metrics"`
}

// NewDailySummary returns a zeroed summary with all four trigger buckets
// present.
func NewDailySummary() DailySummary {
	tt := make(map[TriggerKind]int, len(KnownTriggerKinds))
	for _, k := range KnownTriggerKinds {
		tt[k] = 0
	}
	return DailySummary{
		UniqueTickers: []string{},
		TriggerTypes:  tt,
	}
}

// LedgerDocument is the whole per-day on-disk document: metadata, running
// summary and the ordered hit list.
type LedgerDocument struct {
	Metadata LogMetadata  `json:"log_metadata"`
	Summary  DailySummary `json:"daily_summary"`
	Hits     []HitRecord  `json:"scanner_hits"`
}

// NewLedgerDocument creates a fresh document for the given UTC date.
func NewLedgerDocument(date string, createdAt time.Time) *LedgerDocument {
	return &LedgerDocument{
		Metadata: LogMetadata{
			Date:        date,
			LogVersion:  LogVersion,
			Purpose:     "Stock scanner trigger logs for analysis",
			ScannerType: ScannerType,
			CreatedAt:   createdAt,
			Timezone:    "UTC",
			Criteria: ScanCriteria{
				PriceRange:    "$2-$20",
				Triggers:      []string{"5%+ moves in <1 minute", "breaking news mentions", "10x+ volume spikes"},
				ScanFrequency: "every 30 seconds",
			},
		},
		Summary: NewDailySummary(),
		Hits:    []HitRecord{},
	}
}
