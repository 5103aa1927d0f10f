package stats

import (
	"sort"
	"strconv"

	"github.com/Jearnest94/extendo-reborn/internal/domain"
)

// MergeEloSamples folds any number of sample sets into one deduplicated
// series sorted newest first. Samples are identified by match id when they
// have one, otherwise by their (timestamp, elo) pair, so the same match seen
// through different fetch strategies collapses into a single point. When two
// samples share an identity the one with the newer timestamp wins; on equal
// timestamps the later argument wins, letting callers pass fresher sets last.
// The merge is idempotent: feeding its output back in changes nothing.
func MergeEloSamples(sets ...[]domain.EloSample) []domain.EloSample {
	merged := make(map[string]domain.EloSample)
	order := make([]string, 0)

	for _, set := range sets {
		for _, sample := range set {
			key := sampleKey(sample)
			prev, seen := merged[key]
			if !seen {
				merged[key] = sample
				order = append(order, key)
				continue
			}
			if sample.Timestamp >= prev.Timestamp {
				merged[key] = sample
			}
		}
	}

	out := make([]domain.EloSample, 0, len(merged))
	for _, key := range order {
		out = append(out, merged[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

func sampleKey(s domain.EloSample) string {
	if s.MatchID != "" {
		return s.MatchID
	}
	return strconv.FormatInt(s.Timestamp, 10) + ":" + strconv.Itoa(s.Elo)
}

// SamplesFromStatRecords extracts elo samples from per-match stat bags.
// Records without a coercible elo or timestamp are skipped; the stats list
// is a secondary elo source and gaps in it are expected.
func SamplesFromStatRecords(records []domain.StatRecord) []domain.EloSample {
	samples := make([]domain.EloSample, 0, len(records))
	for _, rec := range records {
		elo, err := EloValue(rec)
		if err != nil {
			continue
		}
		ts, ok := RecordTimestamp(rec)
		if !ok {
			continue
		}
		samples = append(samples, domain.EloSample{
			Timestamp: ts,
			Elo:       elo,
			MatchID:   MatchIDValue(rec),
		})
	}
	return samples
}
