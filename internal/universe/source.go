// Package universe supplies the ordered list of ticker symbols to screen.
package universe

import (
	"context"
	"strings"
)

// Source produces an ordered sequence of ticker symbols. Implementations may
// return duplicates; callers are expected to dedupe before screening.
type Source interface {
	Symbols(ctx context.Context) ([]string, error)
	Name() string
}

// StaticSource serves a fixed symbol list, e.g. from the config file.
type StaticSource struct {
	List []string
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Symbols(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(s.List))
	for _, sym := range s.List {
		sym = strings.TrimSpace(sym)
		if sym != "" {
			out = append(out, strings.ToUpper(sym))
		}
	}
	return out, nil
}
