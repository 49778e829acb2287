package model

// TriggerKind identifies what fired the scanner.
type TriggerKind string

const (
	TriggerMinuteBreakout  TriggerKind = "minute_breakout"
	TriggerBreakingNews    TriggerKind = "breaking_news"
	TriggerVolumeSpike     TriggerKind = "volume_spike"
	TriggerBreakoutAndNews TriggerKind = "breakout_and_news"
	TriggerUnknown         TriggerKind = "unknown"
)

// KnownTriggerKinds lists the four kinds tracked in every daily histogram,
// in histogram order.
var KnownTriggerKinds = []TriggerKind{
	TriggerMinuteBreakout,
	TriggerBreakingNews,
	TriggerVolumeSpike,
	TriggerBreakoutAndNews,
}

var triggerDescriptions = map[TriggerKind]string{
	TriggerMinuteBreakout:  "5%+ price move within 1 minute timeframe",
	TriggerBreakingNews:    "Recent news mention in last 2 hours",
	TriggerVolumeSpike:     "10x+ volume explosion without news/breakout",
	TriggerBreakoutAndNews: "Both rapid price move AND breaking news",
}

// Description returns the human-readable description of the trigger kind.
func (k TriggerKind) Description() string {
	if d, ok := triggerDescriptions[k]; ok {
		return d
	}
	return "Unknown trigger type"
}

// TriggerEvent is the raw scanner output handed to the ledger by the
// upstream quote/metrics fetchers. A zero Price, RelativeVolume or
// MomentumScore means the value was unavailable.
type TriggerEvent struct {
	Ticker           string
	Kind             TriggerKind
	Price            float64
	ChangePct        float64
	Volume           int64
	RelativeVolume   float64
	BreakoutDetected bool
	NewsDetected     bool
	MomentumScore    int
}
