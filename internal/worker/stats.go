package worker

import "log/slog"

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomePriceNotFound
	outcomeRedirected
	outcomeOtherError
	outcomePageNotSupported
	outcomeSkipped
)

// Stats summarizes one update pass. Counters are folded from per-offer
// results after all tasks have joined.
type Stats struct {
	All              int
	Success          int
	PriceNotFound    int
	Redirected       int
	OtherError       int
	PageNotSupported int
	Skipped          int
}

func foldStats(outcomes []outcome) Stats {
	stats := Stats{All: len(outcomes)}

	for _, o := range outcomes {
		switch o {
		case outcomeSuccess:
			stats.Success++
		case outcomePriceNotFound:
			stats.PriceNotFound++
		case outcomeRedirected:
			stats.Redirected++
		case outcomeOtherError:
			stats.OtherError++
		case outcomePageNotSupported:
			stats.PageNotSupported++
		case outcomeSkipped:
			stats.Skipped++
		}
	}

	return stats
}

func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("all", s.All),
		slog.Int("success", s.Success),
		slog.Int("price-not-found", s.PriceNotFound),
		slog.Int("redirected", s.Redirected),
		slog.Int("other-error", s.OtherError),
		slog.Int("page-not-supported", s.PageNotSupported),
		slog.Int("skipped", s.Skipped),
	)
}
