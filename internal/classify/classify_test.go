package classify

import (
	"testing"

	"ScannerLedger/internal/model"
)

func TestPriceCategory_Boundaries(t *testing.T) {
	tests := []struct {
		price float64
		want  model.PriceCategory
	}{
		{0, model.PriceUnknown},
		{2.50, model.PricePenny},
		{4.99, model.PricePenny},
		{5.00, model.PriceLow},
		{9.99, model.PriceLow},
		{10.00, model.PriceMid},
		{14.99, model.PriceMid},
		{15.00, model.PriceHigher},
		{19.50, model.PriceHigher},
	}
	for _, tt := range tests {
		if got := PriceCategory(tt.price); got != tt.want {
			t.Errorf("price %.2f: expected %q, got %q", tt.price, tt.want, got)
		}
	}
}

func TestVolumeCategory_Boundaries(t *testing.T) {
	tests := []struct {
		relVolume float64
		want      model.VolumeCategory
	}{
		{0, model.VolumeNormal},
		{1.2, model.VolumeNormalVolume},
		{4.99, model.VolumeNormalVolume},
		{5, model.VolumeModerateSpike},
		{9.9, model.VolumeModerateSpike},
		{10, model.VolumeHighSpike},
		{19.9, model.VolumeHighSpike},
		{20, model.VolumeMassiveSpike},
		{49.9, model.VolumeMassiveSpike},
		{50, model.VolumeExtremeSpike},
		{120, model.VolumeExtremeSpike},
	}
	for _, tt := range tests {
		if got := VolumeCategory(tt.relVolume); got != tt.want {
			t.Errorf("rel volume %.1f: expected %q, got %q", tt.relVolume, tt.want, got)
		}
	}
}

func TestSession_HourBuckets(t *testing.T) {
	tests := []struct {
		hour int
		want model.MarketSession
	}{
		{0, model.SessionOvernight},
		{3, model.SessionOvernight},
		{4, model.SessionPreMarket},
		{8, model.SessionPreMarket},
		{9, model.SessionRegular},
		{15, model.SessionRegular},
		{16, model.SessionAfterHrs},
		{20, model.SessionAfterHrs},
		{21, model.SessionOvernight},
		{23, model.SessionOvernight},
	}
	for _, tt := range tests {
		if got := Session(tt.hour); got != tt.want {
			t.Errorf("hour %d: expected %q, got %q", tt.hour, tt.want, got)
		}
	}
}

func TestSignalStrength(t *testing.T) {
	tests := []struct {
		name string
		ev   model.TriggerEvent
		want int
	}{
		{"base score", model.TriggerEvent{Ticker: "AAA"}, 5},
		{"moderate move", model.TriggerEvent{Ticker: "AAA", ChangePct: 12}, 6},
		{"strong move", model.TriggerEvent{Ticker: "AAA", ChangePct: 15}, 7},
		{"negative move counts by magnitude", model.TriggerEvent{Ticker: "AAA", ChangePct: -18}, 7},
		{"volume only", model.TriggerEvent{Ticker: "AAA", RelativeVolume: 20}, 6},
		{"extreme volume", model.TriggerEvent{Ticker: "AAA", RelativeVolume: 55}, 7},
		{"move plus volume", model.TriggerEvent{Ticker: "AAA", ChangePct: 22, RelativeVolume: 60}, 9},
		{
			"clamped at ten",
			model.TriggerEvent{Ticker: "AAA", ChangePct: 25, RelativeVolume: 80, BreakoutDetected: true, NewsDetected: true},
			10,
		},
	}
	for _, tt := range tests {
		if got := SignalStrength(tt.ev); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestSignalStrength_Deterministic(t *testing.T) {
	ev := model.TriggerEvent{Ticker: "ABC", ChangePct: 14, RelativeVolume: 30}
	first := SignalStrength(ev)
	for i := 0; i < 5; i++ {
		if got := SignalStrength(ev); got != first {
			t.Fatalf("expected deterministic score %d, got %d", first, got)
		}
	}
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		name      string
		price     float64
		changePct float64
		relVolume float64
		want      model.RiskLevel
	}{
		{"missing price", 0, 25, 60, model.RiskUnknown},
		{"penny extreme move", 4.50, 22, 60, model.RiskVeryHigh},
		{"penny extreme drop", 3.10, -21, 1, model.RiskVeryHigh},
		{"penny modest move", 4.50, 8, 2, model.RiskHigh},
		{"big move higher price", 12, 16, 2, model.RiskHigh},
		{"moderate move", 12, 11, 2, model.RiskModerate},
		{"volume driven", 12, 2, 30, model.RiskModerate},
		{"calm", 12, 2, 3, model.RiskLow},
	}
	for _, tt := range tests {
		if got := RiskLevel(tt.price, tt.changePct, tt.relVolume); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}
