package stats

import (
	"sort"
	"strings"

	"github.com/Jearnest94/extendo-reborn/internal/domain"
)

// MapLeaderboards builds the two top-map rankings from lifetime per-map
// segments: one ordered by matches played, one by win rate. Segments outside
// the requested mode and maps with zero recorded matches are dropped. Both
// boards are cut to limit entries.
func MapLeaderboards(segments []domain.MapSegment, mode string, limit int) (byMatches, byWinRate []domain.MapStanding) {
	standings := make([]domain.MapStanding, 0, len(segments))
	for _, seg := range segments {
		if seg.Label == "" {
			continue
		}
		if mode != "" && !strings.EqualFold(seg.Mode, mode) {
			continue
		}
		matches, err := IntFromFields(seg.Stats, MatchesFields)
		if err != nil || matches <= 0 {
			continue
		}
		winRate, err := FloatFromFields(seg.Stats, WinRateFields)
		if err != nil {
			// Derive from wins when the segment has no win-rate field.
			wins, werr := IntFromFields(seg.Stats, WinsFields)
			if werr != nil {
				wins = 0
			}
			winRate = float64(wins) / float64(matches) * 100
		}
		standings = append(standings, domain.MapStanding{
			Map:     seg.Label,
			Matches: matches,
			WinRate: Round2(winRate),
		})
	}

	byMatches = make([]domain.MapStanding, len(standings))
	copy(byMatches, standings)
	sort.SliceStable(byMatches, func(i, j int) bool {
		if byMatches[i].Matches != byMatches[j].Matches {
			return byMatches[i].Matches > byMatches[j].Matches
		}
		return byMatches[i].WinRate > byMatches[j].WinRate
	})

	byWinRate = make([]domain.MapStanding, len(standings))
	copy(byWinRate, standings)
	sort.SliceStable(byWinRate, func(i, j int) bool {
		if byWinRate[i].WinRate != byWinRate[j].WinRate {
			return byWinRate[i].WinRate > byWinRate[j].WinRate
		}
		return byWinRate[i].Matches > byWinRate[j].Matches
	})

	if limit > 0 && len(byMatches) > limit {
		byMatches = byMatches[:limit]
	}
	if limit > 0 && len(byWinRate) > limit {
		byWinRate = byWinRate[:limit]
	}
	return byMatches, byWinRate
}
