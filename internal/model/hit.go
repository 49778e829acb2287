package model

import "time"

// PriceCategory buckets the hit price.
type PriceCategory string

const (
	PricePenny   PriceCategory = "penny_stock"
	PriceLow     PriceCategory = "low_priced"
	PriceMid     PriceCategory = "mid_priced"
	PriceHigher  PriceCategory = "higher_priced"
	PriceUnknown PriceCategory = "unknown"
)

// VolumeCategory buckets the relative-volume spike intensity.
type VolumeCategory string

const (
	VolumeNormal        VolumeCategory = "normal"
	VolumeNormalVolume  VolumeCategory = "normal_volume"
	VolumeModerateSpike VolumeCategory = "moderate_spike"
	VolumeHighSpike     VolumeCategory = "high_spike"
	VolumeMassiveSpike  VolumeCategory = "massive_spike"
	VolumeExtremeSpike  VolumeCategory = "extreme_spike"
)

// MarketSession labels the trading session a hit occurred in.
type MarketSession string

const (
	SessionPreMarket MarketSession = "pre_market"
	SessionRegular   MarketSession = "regular_hours"
	SessionAfterHrs  MarketSession = "after_hours"
	SessionOvernight MarketSession = "overnight"
)

// RiskLevel grades the trading risk of a hit.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
	RiskUnknown  RiskLevel = "unknown"
)

// StockData holds the quote snapshot of a hit. Nil pointer fields mean the
// upstream scanner had no value.
type StockData struct {
	Ticker         string         `json:"ticker"`
	Price          *float64       `json:"price"`
	PriceChangePct *float64       `json:"price_change_pct"`
	PriceCategory  PriceCategory  `json:"price_category"`
	Volume         *int64         `json:"volume"`
	RelativeVolume *float64       `json:"relative_volume"`
	VolumeCategory VolumeCategory `json:"volume_category"`
	MomentumScore  *int           `json:"momentum_score"`
}

// TriggerAnalysis holds the classification of what fired and how strong it was.
type TriggerAnalysis struct {
	PrimaryTrigger     TriggerKind `json:"primary_trigger"`
	TriggerDescription string      `json:"trigger_description"`
	BreakoutDetected   bool        `json:"breakout_detected"`
	NewsDetected       bool        `json:"news_detected"`
	SignalStrength     int         `json:"signal_strength"`
	RiskLevel          RiskLevel   `json:"risk_level"`
}

// HitContext carries the fixed scanner criteria recorded with every hit.
type HitContext struct {
	ScannerCriteria  string `json:"scanner_criteria"`
	MarketConditions string `json:"market_conditions"`
	ScanFrequency    string `json:"scan_frequency"`
}

// HitRecord is one fully-enriched scanner hit. Records are immutable once
// built; HitID is 1-based and sequential within a day.
type HitRecord struct {
	HitID         int             `json:"hit_id"`
	Timestamp     time.Time       `json:"timestamp"`
	TimeReadable  string          `json:"time_readable"`
	MarketSession MarketSession   `json:"market_session"`
	Stock         StockData       `json:"stock_data"`
	Trigger       TriggerAnalysis `json:"trigger_analysis"`
	Context       HitContext      `json:"context"`
}

// Date returns the UTC calendar day the hit belongs to.
func (h *HitRecord) Date() string {
	return h.Timestamp.UTC().Format("2006-01-02")
}
