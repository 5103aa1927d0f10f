package stats

import (
	"strings"

	"github.com/Jearnest94/extendo-reborn/internal/domain"
)

// RollingAverage computes the mean of a probed numeric field over the n most
// recent records that carry a usable value. Records missing the field or
// holding garbage are skipped rather than counted as zero, so the window can
// reach past them. Fewer than n usable records still yield an average over
// what exists; zero usable records yield ErrNoData.
func RollingAverage(records []domain.StatRecord, candidates []string, n int) (float64, error) {
	if n <= 0 {
		return 0, ErrNoData
	}
	sum := 0.0
	count := 0
	for _, rec := range SortRecordsDesc(records) {
		if count == n {
			break
		}
		v, ok := FieldValue(rec, candidates)
		if !ok {
			continue
		}
		f, err := CoerceFloat(v)
		if err != nil {
			continue
		}
		sum += f
		count++
	}
	if count == 0 {
		return 0, ErrNoData
	}
	return sum / float64(count), nil
}

// RollingADR is the rolling average damage per round over the last n matches.
func RollingADR(records []domain.StatRecord, n int) (float64, error) {
	return RollingAverage(records, ADRFields, n)
}

// RollingWinRate computes the win percentage (0..100) over the n most recent
// records whose outcome can be classified. Unclassifiable records do not
// count against the window.
func RollingWinRate(records []domain.StatRecord, n int) (float64, error) {
	if n <= 0 {
		return 0, ErrNoData
	}
	classified := 0
	wins := 0
	for _, rec := range SortRecordsDesc(records) {
		if classified == n {
			break
		}
		won, ok := classifyOutcome(rec)
		if !ok {
			continue
		}
		classified++
		if won {
			wins++
		}
	}
	if classified == 0 {
		return 0, ErrNoData
	}
	return float64(wins) / float64(classified) * 100, nil
}

func classifyOutcome(rec domain.StatRecord) (won bool, ok bool) {
	for _, name := range outcomeFields {
		v, present := rec[name]
		if !present || v == nil {
			continue
		}
		if won, ok := interpretOutcome(v); ok {
			return won, true
		}
	}
	return false, false
}

// interpretOutcome maps the outcome encodings seen in the wild: 1/0 numbers,
// "1"/"0" strings, booleans and textual results.
func interpretOutcome(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		if t == 1 {
			return true, true
		}
		if t == 0 {
			return false, true
		}
	case int:
		if t == 1 {
			return true, true
		}
		if t == 0 {
			return false, true
		}
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		switch s {
		case "1", "true", "w", "win", "won":
			return true, true
		case "0", "false", "l", "loss", "lost":
			return false, true
		}
		if strings.Contains(s, "victor") || strings.Contains(s, "win") {
			return true, true
		}
		if strings.Contains(s, "defeat") || strings.Contains(s, "los") {
			return false, true
		}
	}
	return false, false
}
