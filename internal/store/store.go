package store

import "ScannerLedger/internal/model"

// Query filters a historical hit lookup. Dates are ISO YYYY-MM-DD strings;
// empty fields are ignored. Limit defaults to 1000.
type Query struct {
	StartDate string
	EndDate   string
	Ticker    string
	Limit     int
}

// HitRow is one flattened scanner_hits row. Nullable quote columns come
// back as nil pointers.
type HitRow struct {
	ID                 int64
	HitID              int
	Date               string
	Timestamp          string
	TimeReadable       string
	MarketSession      string
	Ticker             string
	Price              *float64
	PriceChangePct     *float64
	PriceCategory      string
	Volume             *int64
	RelativeVolume     *float64
	VolumeCategory     string
	MomentumScore      *int
	PrimaryTrigger     string
	TriggerDescription string
	BreakoutDetected   bool
	NewsDetected       bool
	SignalStrength     int
	RiskLevel          string
	ScannerCriteria    string
}

// Stats describes the permanent store contents.
type Stats struct {
	TotalHits     int64
	UniqueTickers int64
	FirstHitDate  string
	LatestHitDate string
	DatabaseSize  string
}

// Store is the append-only relational mirror of the ledger: every hit and
// every finalized daily summary, never deleted.
type Store interface {
	// InsertHit appends one row. Rows are never updated or deleted, and
	// there is no dedup key: replaying the same record inserts a duplicate.
	InsertHit(hit *model.HitRecord) error
	// UpsertDailySummary replaces the summary row for the date.
	UpsertDailySummary(date string, summary *model.DailySummary) error
	// QueryHits returns matching rows newest first, bounded by q.Limit.
	QueryHits(q Query) ([]HitRow, error)
	Stats() (*Stats, error)
	Close() error
}
