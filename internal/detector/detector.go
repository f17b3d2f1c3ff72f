// Package detector holds the fixed catalog of boolean screening conditions.
// Detector identities are a closed enumeration rather than free-form strings,
// so a misspelled name is a compile or config error instead of a silently
// empty match.
package detector

import "fmt"

// ID identifies one detector in the catalog.
type ID int

const (
	RSIOversold ID = iota
	RSIExitOversold
	RSIBullishDivergence
	MACDBullishCross
	MACDStrongBullish
	VolumeSpike
	GoldenCross
	Accumulation
	Distribution
	Consolidation
	MFIExtreme
	PriceAboveMA
)

var names = map[ID]string{
	RSIOversold:          "RSI Oversold",
	RSIExitOversold:      "RSI Exit Oversold",
	RSIBullishDivergence: "RSI Bullish Divergence",
	MACDBullishCross:     "MACD Bullish Crossover",
	MACDStrongBullish:    "MACD Strong Bullish",
	VolumeSpike:          "Volume Spike",
	GoldenCross:          "Golden Cross",
	Accumulation:         "Accumulation",
	Distribution:         "Distribution",
	Consolidation:        "Consolidation",
	MFIExtreme:           "MFI Extreme",
	PriceAboveMA:         "Price Above MA",
}

// Name returns the canonical display name of the detector.
func (id ID) Name() string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("detector(%d)", int(id))
}

// Catalog returns all detector IDs in presentation order.
func Catalog() []ID {
	return []ID{
		RSIOversold, RSIExitOversold, RSIBullishDivergence,
		MACDBullishCross, MACDStrongBullish, VolumeSpike,
		GoldenCross, Accumulation, Distribution,
		Consolidation, MFIExtreme, PriceAboveMA,
	}
}

// configKeys maps the identifiers accepted in config files to detector IDs.
var configKeys = map[string]ID{
	"rsi_oversold":           RSIOversold,
	"rsi_exit_oversold":      RSIExitOversold,
	"rsi_bullish_divergence": RSIBullishDivergence,
	"macd_bullish_cross":     MACDBullishCross,
	"macd_strong_bullish":    MACDStrongBullish,
	"volume_spike":           VolumeSpike,
	"golden_cross":           GoldenCross,
	"accumulation":           Accumulation,
	"distribution":           Distribution,
	"consolidation":          Consolidation,
	"mfi_extreme":            MFIExtreme,
	"price_above_ma":         PriceAboveMA,
}

// Parse resolves a config identifier to a detector ID.
func Parse(key string) (ID, error) {
	if id, ok := configKeys[key]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("unknown detector %q", key)
}

// Key returns the config identifier for the detector.
func (id ID) Key() string {
	for k, v := range configKeys {
		if v == id {
			return k
		}
	}
	return fmt.Sprintf("detector(%d)", int(id))
}

// MinBars returns the minimum series length the detector needs before it can
// ever fire. Shorter series make the detector return false, they never error.
func (id ID) MinBars(p Params) int {
	p = p.normalized()
	switch id {
	case RSIOversold:
		return rsiPeriod + 1
	case RSIExitOversold:
		return rsiPeriod + 2
	case RSIBullishDivergence:
		// RSI must be defined across the whole early low window, which starts
		// divergenceEarly bars back, on top of the RSI warmup.
		return rsiPeriod + divergenceEarly
	case MACDBullishCross, MACDStrongBullish:
		return macdSlow + macdSignal
	case VolumeSpike:
		return volumeSpikeMABars
	case GoldenCross:
		return p.GoldenLong + 1
	case Accumulation, Distribution:
		return adiLookback + 1
	case Consolidation:
		return 2*adxPeriod + consolidationBars
	case MFIExtreme:
		return mfiPeriod + 1
	case PriceAboveMA:
		return p.MAPeriod
	default:
		return 0
	}
}

// Result maps detector IDs to their boolean outcome for one symbol.
type Result map[ID]bool

// Matched returns the IDs that fired, restricted to the given selection and
// ordered like the catalog.
func (r Result) Matched(selected []ID) []ID {
	want := make(map[ID]bool, len(selected))
	for _, id := range selected {
		want[id] = true
	}
	var out []ID
	for _, id := range Catalog() {
		if want[id] && r[id] {
			out = append(out, id)
		}
	}
	return out
}
