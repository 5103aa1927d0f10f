package constants

import "time"

const (
	// GameID is the FACEIT game every endpoint is scoped to.
	GameID = "cs2"
	// PrimaryMode filters lifetime segments to the competitive queue.
	PrimaryMode = "5v5"
)

const (
	EloSeriesCacheTTL = 10 * time.Minute
	PeakEloCacheTTL   = 6 * time.Hour
	IdentityCacheTTL  = 1 * time.Hour
	IdentityCacheSize = 512
)

const (
	SimpleCallTimeout = 5 * time.Second
	BulkCallTimeout   = 10 * time.Second
	RequestTimeout    = 30 * time.Second
)

const (
	// MaxBatchSize caps nicknames per aggregation request; anything beyond
	// it is silently dropped to bound worst-case latency.
	MaxBatchSize = 10
	// MaxPageSize is the largest page the documented endpoints accept.
	MaxPageSize = 100
	// StatsScanPageCap bounds the per-match stats scan (pages of MaxPageSize).
	StatsScanPageCap = 5
	// DateScanPageCap bounds the history scan backing date-N-games-ago.
	DateScanPageCap = 2
	// FrequencyScanPageCap bounds the windowed history scan for games/day.
	FrequencyScanPageCap = 10
	// TimeSeriesPageCap bounds each paged strategy against the undocumented
	// time-series endpoint.
	TimeSeriesPageCap = 5
	// TimeSeriesBulkSize is the oversized single-shot page the undocumented
	// endpoint sometimes honors.
	TimeSeriesBulkSize = 2000
	// SeriesMaxItems caps a persisted elo series; the newest samples win.
	SeriesMaxItems = 1000
	// MapLeaderboardSize is the number of rows kept per map leaderboard.
	MapLeaderboardSize = 7
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultDataAPIBaseURL  = "https://open.faceit.com/data/v4"
	DefaultStatsAPIBaseURL = "https://api.faceit.com/stats/v1"
)

// RollingWindows are the match-count windows for rolling ADR and win rate.
var RollingWindows = []int{10, 30, 100}

// FrequencyWindowsDays are the day windows for games-per-day ratios.
var FrequencyWindowsDays = []int{7, 30, 90}
