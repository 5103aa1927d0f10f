package api

import (
	"github.com/Jearnest94/extendo-reborn/internal/domain"
)

// Raw Data API payloads. Only the fields the aggregation consumes are typed;
// stat bags stay map[string]any because the upstream renames keys freely.

type playerPayload struct {
	PlayerID string                    `json:"player_id"`
	Nickname string                    `json:"nickname"`
	Avatar   string                    `json:"avatar"`
	Country  string                    `json:"country"`
	Games    map[string]map[string]any `json:"games"`
}

type lifetimeStatsPayload struct {
	PlayerID string           `json:"player_id"`
	GameID   string           `json:"game_id"`
	Lifetime map[string]any   `json:"lifetime"`
	Segments []segmentPayload `json:"segments"`
}

type segmentPayload struct {
	Label string         `json:"label"`
	Mode  string         `json:"mode"`
	Type  string         `json:"type"`
	Stats map[string]any `json:"stats"`
}

// matchStatsPage is the envelope of GET /players/{id}/games/{game}/stats.
type matchStatsPage struct {
	Items []matchStatsItem `json:"items"`
	Start int              `json:"start"`
	End   int              `json:"end"`
}

type matchStatsItem struct {
	Stats map[string]any `json:"stats"`
}

// historyPage is the envelope of GET /players/{id}/history. Unlike the stats
// list it pages with offset/limit and scopes with from/to.
type historyPage struct {
	Items []historyItemPayload `json:"items"`
	Start int                  `json:"start"`
	End   int                  `json:"end"`
}

type historyItemPayload struct {
	MatchID    string `json:"match_id"`
	StartedAt  int64  `json:"started_at"`
	FinishedAt int64  `json:"finished_at"`
}

func (p historyItemPayload) toDomain() domain.HistoryItem {
	return domain.HistoryItem{
		MatchID:    p.MatchID,
		StartedAt:  p.StartedAt,
		FinishedAt: p.FinishedAt,
	}
}
