package screener

import "IDXScreener/internal/detector"

// Select decides whether one symbol's detector results include it in the
// report, returning the matched detectors either way. ModeAll and ModePreset
// demand every selected detector; ModeAtLeastN demands MinMatches of them.
func (c *Config) Select(res detector.Result) (include bool, matched []detector.ID) {
	selected := c.Selected()
	matched = res.Matched(selected)
	if len(selected) == 0 {
		return false, nil
	}
	if c.Mode == ModeAtLeastN {
		return len(matched) >= c.MinMatches, matched
	}
	return len(matched) == len(selected), matched
}
