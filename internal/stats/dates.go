package stats

import (
	"sort"
	"time"

	"github.com/Jearnest94/extendo-reborn/internal/domain"
)

const dateLayout = "2006-01-02"

// FormatDateUTC renders a unix-second timestamp as a UTC calendar date.
func FormatDateUTC(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(dateLayout)
}

// DateNGamesAgo returns the UTC date of the match played n games back.
// History items are ordered newest first by finish time before indexing;
// shorter histories fall back to the oldest known match.
func DateNGamesAgo(items []domain.HistoryItem, n int) (string, error) {
	if n <= 0 || len(items) == 0 {
		return "", ErrNoData
	}

	sorted := make([]domain.HistoryItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return historyTimestamp(sorted[i]) > historyTimestamp(sorted[j])
	})

	idx := n - 1
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	ts := historyTimestamp(sorted[idx])
	if ts <= 0 {
		return "", ErrNoData
	}
	return FormatDateUTC(ts), nil
}

func historyTimestamp(item domain.HistoryItem) int64 {
	if item.FinishedAt > 0 {
		return NormalizeUnixSeconds(item.FinishedAt)
	}
	if item.StartedAt > 0 {
		return NormalizeUnixSeconds(item.StartedAt)
	}
	return 0
}

// GamesPerDay is the play-frequency ratio for a window, rounded to two
// decimals. A zero match count is a real answer, not missing data.
func GamesPerDay(matchCount, days int) (float64, error) {
	if days <= 0 {
		return 0, ErrNoData
	}
	return Round2(float64(matchCount) / float64(days)), nil
}

// CountSince counts history items that finished at or after the cutoff.
func CountSince(items []domain.HistoryItem, cutoff int64) int {
	count := 0
	for _, item := range items {
		if ts := historyTimestamp(item); ts >= cutoff {
			count++
		}
	}
	return count
}
