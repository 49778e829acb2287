// Package classify holds the pure classification rules applied to every
// scanner hit. All thresholds are fixed business constants.
package classify

import "ScannerLedger/internal/model"

// PriceCategory buckets a price: <5 penny, <10 low, <15 mid, else higher.
// A zero price means the quote was unavailable.
func PriceCategory(price float64) model.PriceCategory {
	switch {
	case price == 0:
		return model.PriceUnknown
	case price < 5:
		return model.PricePenny
	case price < 10:
		return model.PriceLow
	case price < 15:
		return model.PriceMid
	default:
		return model.PriceHigher
	}
}

// VolumeCategory buckets relative volume spike intensity at 5/10/20/50.
// Boundary values fall into the higher bucket.
func VolumeCategory(relVolume float64) model.VolumeCategory {
	switch {
	case relVolume == 0:
		return model.VolumeNormal
	case relVolume >= 50:
		return model.VolumeExtremeSpike
	case relVolume >= 20:
		return model.VolumeMassiveSpike
	case relVolume >= 10:
		return model.VolumeHighSpike
	case relVolume >= 5:
		return model.VolumeModerateSpike
	default:
		return model.VolumeNormalVolume
	}
}

// Session maps an hour of day to a market session: [9,16) regular,
// [4,9) pre-market, [16,20] after-hours, else overnight. The caller chooses
// the reference timezone; see the ledger session_timezone setting.
func Session(hour int) model.MarketSession {
	switch {
	case hour >= 9 && hour < 16:
		return model.SessionRegular
	case hour >= 4 && hour < 9:
		return model.SessionPreMarket
	case hour >= 16 && hour <= 20:
		return model.SessionAfterHrs
	default:
		return model.SessionOvernight
	}
}

// SignalStrength scores an event 1-10: base 5, plus price movement
// (+2 for 15%+, +1 for 10%+), volume (+2 for 50x+, +1 for 20x+) and a
// combined breakout-and-news bonus, clamped to [1,10].
func SignalStrength(ev model.TriggerEvent) int {
	score := 5

	change := ev.ChangePct
	if change < 0 {
		change = -change
	}
	if change >= 15 {
		score += 2
	} else if change >= 10 {
		score++
	}

	if ev.RelativeVolume >= 50 {
		score += 2
	} else if ev.RelativeVolume >= 20 {
		score++
	}

	if ev.BreakoutDetected && ev.NewsDetected {
		score++
	}

	if score > 10 {
		score = 10
	}
	if score < 1 {
		score = 1
	}
	return score
}

// RiskLevel grades trading risk. Penny stocks on extreme moves are the
// highest risk; a zero price means the risk cannot be assessed.
func RiskLevel(price, changePct, relVolume float64) model.RiskLevel {
	if price == 0 {
		return model.RiskUnknown
	}

	change := changePct
	if change < 0 {
		change = -change
	}

	switch {
	case price < 5 && change > 20:
		return model.RiskVeryHigh
	case price < 5 || change > 15:
		return model.RiskHigh
	case change > 10 || relVolume > 25:
		return model.RiskModerate
	default:
		return model.RiskLow
	}
}
