package stats

import (
	"github.com/Jearnest94/extendo-reborn/internal/domain"
)

// EloNGamesAgo returns the elo the player held n games back. Samples must be
// sorted newest first, which is what MergeEloSamples produces. When the
// series holds fewer than n samples the oldest known value is returned, so a
// 40-game history still answers "elo 100 games ago" with the best available
// approximation.
func EloNGamesAgo(samples []domain.EloSample, n int) (int, error) {
	if n <= 0 || len(samples) == 0 {
		return 0, ErrNoData
	}
	idx := n - 1
	if idx >= len(samples) {
		idx = len(samples) - 1
	}
	return samples[idx].Elo, nil
}

// PeakElo returns the highest sample of the series. Ties resolve toward the
// most recent occurrence.
func PeakElo(samples []domain.EloSample) (domain.EloSample, error) {
	if len(samples) == 0 {
		return domain.EloSample{}, ErrNoData
	}
	best := samples[0]
	for _, s := range samples[1:] {
		if s.Elo > best.Elo || (s.Elo == best.Elo && s.Timestamp > best.Timestamp) {
			best = s
		}
	}
	return best, nil
}
