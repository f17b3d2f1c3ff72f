package screener

import (
	"fmt"

	"IDXScreener/internal/detector"
)

// Mode selects how per-detector booleans combine into an inclusion decision.
type Mode int

const (
	// ModeAll includes a symbol only when every selected detector fired.
	ModeAll Mode = iota
	// ModeAtLeastN includes a symbol when at least MinMatches selected
	// detectors fired.
	ModeAtLeastN
	// ModePreset replaces the selection with a named bundle, then behaves
	// like ModeAll.
	ModePreset
)

// ParseMode resolves a config string to a combination mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "all":
		return ModeAll, nil
	case "at_least_n":
		return ModeAtLeastN, nil
	case "preset":
		return ModePreset, nil
	default:
		return 0, fmt.Errorf("unknown combination mode %q", s)
	}
}

// Presets are the named detector bundles selectable with ModePreset.
var Presets = map[string][]detector.ID{
	"three-of-kind": {detector.RSIOversold, detector.MACDBullishCross, detector.VolumeSpike},
	"complete":      detector.Catalog(),
}

// Config is the immutable per-run screening configuration.
type Config struct {
	Detectors  []detector.ID
	Mode       Mode
	MinMatches int    // only for ModeAtLeastN
	Preset     string // only for ModePreset
	Params     detector.Params
}

// ConfigError marks a request-level configuration problem. It is the only
// error class that aborts a run; everything else degrades per symbol.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "screening config: " + e.Reason
}

// Validate checks the configuration before any per-symbol work.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeAll, ModeAtLeastN, ModePreset:
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown mode %d", c.Mode)}
	}
	if c.Mode == ModePreset {
		if _, ok := Presets[c.Preset]; !ok {
			return &ConfigError{Reason: fmt.Sprintf("unknown preset %q", c.Preset)}
		}
		return nil
	}
	if len(c.Detectors) == 0 {
		return &ConfigError{Reason: "select at least one indicator"}
	}
	if c.Mode == ModeAtLeastN {
		if c.MinMatches < 1 || c.MinMatches > len(dedupeIDs(c.Detectors)) {
			return &ConfigError{Reason: fmt.Sprintf(
				"min_matches %d out of range 1..%d", c.MinMatches, len(dedupeIDs(c.Detectors)))}
		}
	}
	return nil
}

// Selected resolves the effective detector set: the preset bundle under
// ModePreset, otherwise the configured detectors, deduplicated.
func (c *Config) Selected() []detector.ID {
	if c.Mode == ModePreset {
		if bundle, ok := Presets[c.Preset]; ok {
			return dedupeIDs(bundle)
		}
		return nil
	}
	return dedupeIDs(c.Detectors)
}

// MinBarsRequired returns the longest lookback among the selected detectors.
// The driver uses it both as the fetch window and the preparation minimum,
// before any horizon truncation.
func (c *Config) MinBarsRequired() int {
	min := 0
	for _, id := range c.Selected() {
		if n := id.MinBars(c.Params); n > min {
			min = n
		}
	}
	return min
}

func dedupeIDs(ids []detector.ID) []detector.ID {
	seen := make(map[detector.ID]bool, len(ids))
	out := make([]detector.ID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
