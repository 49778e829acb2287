package ledger

import (
	"fmt"
	"math"
	"strings"
	"time"

	"ScannerLedger/internal/classify"
	"ScannerLedger/internal/model"
)

// BuildHit creates a fully-enriched immutable HitRecord from a trigger
// event. hitID must be the next 1-based sequential id for the day;
// sessionHour is the hour-of-day in the configured session timezone.
// The record is a pure value: persisting it is the caller's job.
func BuildHit(ev model.TriggerEvent, hitID int, now time.Time, sessionHour int) (*model.HitRecord, error) {
	if strings.TrimSpace(ev.Ticker) == "" {
		return nil, fmt.Errorf("build hit: ticker required: %w", model.ErrValidation)
	}

	kind := ev.Kind
	if kind == "" {
		kind = model.TriggerUnknown
	}

	utc := now.UTC()
	return &model.HitRecord{
		HitID:         hitID,
		Timestamp:     utc,
		TimeReadable:  utc.Format("2006-01-02 15:04:05") + " UTC",
		MarketSession: classify.Session(sessionHour),
		Stock: model.StockData{
			Ticker:         strings.ToUpper(strings.TrimSpace(ev.Ticker)),
			Price:          optRound(ev.Price),
			PriceChangePct: optRound(ev.ChangePct),
			PriceCategory:  classify.PriceCategory(ev.Price),
			Volume:         optInt64(ev.Volume),
			RelativeVolume: optRound(ev.RelativeVolume),
			VolumeCategory: classify.VolumeCategory(ev.RelativeVolume),
			MomentumScore:  optInt(ev.MomentumScore),
		},
		Trigger: model.TriggerAnalysis{
			PrimaryTrigger:     kind,
			TriggerDescription: kind.Description(),
			BreakoutDetected:   ev.BreakoutDetected,
			NewsDetected:       ev.NewsDetected,
			SignalStrength:     classify.SignalStrength(ev),
			RiskLevel:          classify.RiskLevel(ev.Price, ev.ChangePct, ev.RelativeVolume),
		},
		Context: model.HitContext{
			ScannerCriteria:  model.ScannerCriteria,
			MarketConditions: model.MarketConditions,
			ScanFrequency:    model.ScanFrequency,
		},
	}, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// optRound rounds to 2 decimals; zero means the value was unavailable and
// becomes a JSON null.
func optRound(f float64) *float64 {
	if f == 0 {
		return nil
	}
	r := round2(f)
	return &r
}

func optInt64(i int64) *int64 {
	if i == 0 {
		return nil
	}
	return &i
}

func optInt(i int) *int {
	if i == 0 {
		return nil
	}
	return &i
}
