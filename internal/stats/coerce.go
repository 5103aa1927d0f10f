package stats

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrNoData means the input held no usable values for the requested metric.
	ErrNoData = errors.New("no data")
	// ErrMalformed means a value was present but could not be coerced.
	ErrMalformed = errors.New("malformed value")
)

// msThreshold separates unix-second from unix-millisecond timestamps. Any
// value above it is far beyond year 9999 in seconds, so it must be millis.
const msThreshold = int64(1e12)

// CoerceFloat converts the loosely typed numbers the stats endpoints emit.
// Numeric strings may use a comma as the decimal separator.
func CoerceFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, ErrMalformed
		}
		return f, nil
	case string:
		s := strings.TrimSpace(t)
		s = strings.ReplaceAll(s, ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, ErrMalformed
		}
		return f, nil
	default:
		return 0, ErrMalformed
	}
}

// CoerceInt converts to int through CoerceFloat, rounding half away from zero
// so string elo values like "2014.0" land on the integer they name.
func CoerceInt(v any) (int, error) {
	f, err := CoerceFloat(v)
	if err != nil {
		return 0, err
	}
	return int(math.Round(f)), nil
}

// CoerceTimestamp converts a timestamp value to unix seconds, accepting
// either second or millisecond precision.
func CoerceTimestamp(v any) (int64, error) {
	f, err := CoerceFloat(v)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, ErrMalformed
	}
	return NormalizeUnixSeconds(int64(f)), nil
}

// NormalizeUnixSeconds collapses millisecond timestamps to seconds. The
// upstream mixes both precisions across endpoints.
func NormalizeUnixSeconds(ts int64) int64 {
	if ts > msThreshold {
		return ts / 1000
	}
	return ts
}

// Round2 rounds to two decimals for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
