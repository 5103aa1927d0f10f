package domain

// Profile is a player identity resolved from the upstream players endpoint.
// PlayerID is the stable opaque identifier every other endpoint is keyed by.
// Elo and Level are nil when the upstream record does not carry a usable value.
type Profile struct {
	PlayerID string
	Nickname string
	Avatar   string
	Country  string
	Elo      *int
	Level    *int
}

// StatRecord is one per-match stat bag from the paginated stats list.
// The provider does not document the field set, so records stay duck-typed
// and calculators probe them through candidate-name tables.
type StatRecord map[string]any

// EloSample is one (timestamp, elo) point of a player's rating history.
// Timestamp is unix seconds. MatchID is empty for sources that do not carry one.
type EloSample struct {
	Timestamp int64  `json:"timestamp"`
	Elo       int    `json:"elo"`
	MatchID   string `json:"match_id,omitempty"`
}

// HistoryItem is one entry of the documented match-history endpoint, which
// reliably carries start/finish timestamps (unix seconds).
type HistoryItem struct {
	MatchID    string
	StartedAt  int64
	FinishedAt int64
}

// MapSegment is one per-map slice of the lifetime stats payload.
type MapSegment struct {
	Label string
	Mode  string
	Stats map[string]any
}

// LifetimeStats is the reshaped lifetime-stats payload: the overall stat bag
// plus the per-map segments used for the map leaderboards.
type LifetimeStats struct {
	Overall map[string]any
	Maps    []MapSegment
}

// MapStanding is one row of a map leaderboard.
type MapStanding struct {
	Map     string  `json:"map"`
	Matches int     `json:"matches"`
	WinRate float64 `json:"win_rate"`
}

// PlayerResult is the flat aggregated record returned for one nickname.
// Fields the upstream data cannot support are omitted, never zero-filled.
// Error entries carry only Nickname, Error and (for credential problems)
// AuthError.
type PlayerResult struct {
	Nickname  string `json:"nickname"`
	PlayerID  string `json:"player_id,omitempty"`
	Error     string `json:"error,omitempty"`
	AuthError bool   `json:"auth_error,omitempty"`

	Elo     *int   `json:"elo,omitempty"`
	Level   *int   `json:"level,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
	Country string `json:"country,omitempty"`

	Matches   *int     `json:"matches,omitempty"`
	Wins      *int     `json:"wins,omitempty"`
	KD        *float64 `json:"kd,omitempty"`
	HSPercent *float64 `json:"hs_percent,omitempty"`
	AvgKills  *float64 `json:"avg_kills,omitempty"`

	ADRLast10  *float64 `json:"adr_last_10,omitempty"`
	ADRLast30  *float64 `json:"adr_last_30,omitempty"`
	ADRLast100 *float64 `json:"adr_last_100,omitempty"`

	WinRateLast10  *float64 `json:"winrate_last_10,omitempty"`
	WinRateLast30  *float64 `json:"winrate_last_30,omitempty"`
	WinRateLast100 *float64 `json:"winrate_last_100,omitempty"`

	Elo10GamesAgo  *int `json:"elo_10_games_ago,omitempty"`
	Elo30GamesAgo  *int `json:"elo_30_games_ago,omitempty"`
	Elo100GamesAgo *int `json:"elo_100_games_ago,omitempty"`

	Date10GamesAgo  string `json:"date_10_games_ago,omitempty"`
	Date30GamesAgo  string `json:"date_30_games_ago,omitempty"`
	Date100GamesAgo string `json:"date_100_games_ago,omitempty"`

	PeakElo     *int   `json:"peak_elo,omitempty"`
	PeakEloDate string `json:"peak_elo_date,omitempty"`

	GamesPerDay7  *float64 `json:"games_per_day_7,omitempty"`
	GamesPerDay30 *float64 `json:"games_per_day_30,omitempty"`
	GamesPerDay90 *float64 `json:"games_per_day_90,omitempty"`

	TopMapsByMatches []MapStanding `json:"top_maps_by_matches,omitempty"`
	TopMapsByWinRate []MapStanding `json:"top_maps_by_winrate,omitempty"`
}

// RosterPlayer is one player slot of a match roster.
type RosterPlayer struct {
	Nickname string `json:"nickname"`
	PlayerID string `json:"player_id"`
	Avatar   string `json:"avatar,omitempty"`
}

// TeamRoster is one team of a match room.
type TeamRoster struct {
	Name    string         `json:"name,omitempty"`
	Players []RosterPlayer `json:"players"`
}

// MatchRoster holds up to two team rosters resolved for a match/room id.
type MatchRoster struct {
	MatchID string       `json:"match_id"`
	Teams   []TeamRoster `json:"teams"`
}
