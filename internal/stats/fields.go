package stats

import (
	"sort"
	"strings"

	"github.com/Jearnest94/extendo-reborn/internal/domain"
)

// Candidate field names per concept, in priority order. The stats endpoints
// rename fields between game titles and API generations, so lookups probe a
// table instead of hard-coding a single key.
var (
	MatchesFields = []string{"Matches", "matches", "Games", "Total Matches"}
	WinsFields    = []string{"Wins", "wins", "Total Wins"}
	KDFields      = []string{"Average K/D Ratio", "K/D Ratio", "kd", "KD"}
	HSFields      = []string{"Average Headshots %", "Headshots %", "hs_percent"}
	AvgKillsFields = []string{
		"Average Kills per Round", "Average Kills Per Round", "avg_kills",
	}
	ADRFields = []string{"ADR", "Average Damage per Round", "adr"}
	WinRateFields = []string{
		"Win Rate %", "Win Rate", "win_rate", "Wins %",
	}
	SkillLevelFields = []string{"skill_level", "Skill Level", "level"}

	eloFields = []string{"Elo", "elo", "faceit_elo", "points", "Points"}
	timestampFields = []string{
		"Match Finished At", "finished_at", "Finished At",
		"Match Started At", "started_at", "Created At", "created_at",
		"date", "Date", "updated_at",
	}
	matchIDFields = []string{
		"Match Id", "match_id", "matchId", "Match ID", "matchid",
	}
	outcomeFields = []string{
		"Result", "result", "Win", "win", "Wins", "Outcome", "i10",
	}
)

// FieldValue returns the first present candidate field, even if its value
// later fails coercion. Presence and coercibility are separate questions.
func FieldValue(bag map[string]any, candidates []string) (any, bool) {
	for _, name := range candidates {
		if v, ok := bag[name]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// IntFromFields probes the candidates and coerces the first present value.
func IntFromFields(bag map[string]any, candidates []string) (int, error) {
	v, ok := FieldValue(bag, candidates)
	if !ok {
		return 0, ErrNoData
	}
	return CoerceInt(v)
}

// FloatFromFields probes the candidates and coerces the first present value.
func FloatFromFields(bag map[string]any, candidates []string) (float64, error) {
	v, ok := FieldValue(bag, candidates)
	if !ok {
		return 0, ErrNoData
	}
	return CoerceFloat(v)
}

// EloValue extracts an elo reading from a stat bag. After the named
// candidates it falls back to any key containing "elo", which catches
// per-title variants like "cs2_elo".
func EloValue(bag map[string]any) (int, error) {
	if v, ok := FieldValue(bag, eloFields); ok {
		return CoerceInt(v)
	}
	for key, v := range bag {
		if strings.Contains(strings.ToLower(key), "elo") && v != nil {
			return CoerceInt(v)
		}
	}
	return 0, ErrNoData
}

// RecordTimestamp extracts a unix-second timestamp from a stat bag.
func RecordTimestamp(bag map[string]any) (int64, bool) {
	v, ok := FieldValue(bag, timestampFields)
	if !ok {
		return 0, false
	}
	ts, err := CoerceTimestamp(v)
	if err != nil {
		return 0, false
	}
	return ts, true
}

// MatchIDValue extracts the match identifier from a stat bag, if any.
func MatchIDValue(bag map[string]any) string {
	v, ok := FieldValue(bag, matchIDFields)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// SortRecordsDesc orders stat records newest first when at least one record
// carries a usable timestamp. Without timestamps the upstream order is kept,
// since the stats list already pages newest first.
func SortRecordsDesc(records []domain.StatRecord) []domain.StatRecord {
	out := make([]domain.StatRecord, len(records))
	copy(out, records)

	timestamped := false
	for _, r := range out {
		if _, ok := RecordTimestamp(r); ok {
			timestamped = true
			break
		}
	}
	if !timestamped {
		return out
	}

	key := func(r domain.StatRecord) int64 {
		ts, ok := RecordTimestamp(r)
		if !ok {
			return 0
		}
		return ts
	}
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) > key(out[j])
	})
	return out
}
