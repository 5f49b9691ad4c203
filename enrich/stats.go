package enrich

import (
	"log/slog"
	"time"
)

// Stats summarizes a run.
type Stats struct {
	Loaded    int
	Succeeded int
	Failed    int
	Political int
	Embedded  int
	Elapsed   time.Duration
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("loaded", s.Loaded),
		slog.Int("succeeded", s.Succeeded),
		slog.Int("failed", s.Failed),
		slog.Int("political", s.Political),
		slog.Int("embedded", s.Embedded),
		slog.Duration("elapsed", s.Elapsed),
	)
}
