package api

import (
	"context"
	"fmt"

	"github.com/Jearnest94/extendo-reborn/internal/constants"
	"github.com/Jearnest94/extendo-reborn/internal/domain"
	"github.com/Jearnest94/extendo-reborn/internal/stats"
)

// PageResult is one retrieved window of a paginated upstream listing. Start
// and End echo the upstream's own window markers.
type PageResult[T any] struct {
	Items []T
	Start int
	End   int
}

// clampPageSize forces a page size into the range the endpoints accept.
func clampPageSize(limit int) int {
	if limit <= 0 || limit > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	return limit
}

// MatchStatsPage fetches one window of the per-match stats list. The list
// pages with offset/limit where offset counts items, newest first.
func (c *Client) MatchStatsPage(ctx context.Context, playerID string, offset, limit int) (*PageResult[domain.StatRecord], error) {
	limit = clampPageSize(limit)
	u := fmt.Sprintf("%s/players/%s/games/%s/stats?offset=%d&limit=%d",
		c.dataBaseURL, playerID, constants.GameID, offset, limit)
	page, err := doRequest[matchStatsPage](ctx, c, "games_stats", u, true)
	if err != nil {
		return nil, err
	}

	records := make([]domain.StatRecord, 0, len(page.Items))
	for _, item := range page.Items {
		if len(item.Stats) == 0 {
			continue
		}
		records = append(records, domain.StatRecord(item.Stats))
	}
	return &PageResult[domain.StatRecord]{Items: records, Start: page.Start, End: page.End}, nil
}

// ScanMatchStats walks the stats list newest first until a short page or the
// page cap. A failure mid-scan returns what was already collected; losing
// the tail of a deep scan only widens the rolling averages' error bars,
// while losing everything would blank them.
func (c *Client) ScanMatchStats(ctx context.Context, playerID string, maxPages int) ([]domain.StatRecord, error) {
	var records []domain.StatRecord
	limit := constants.MaxPageSize
	for page := 0; page < maxPages; page++ {
		res, err := c.MatchStatsPage(ctx, playerID, page*limit, limit)
		if err != nil {
			if len(records) > 0 {
				c.logger.Warn().
					Err(err).
					Str("player_id", playerID).
					Int("records", len(records)).
					Msg("stats scan interrupted, using partial result")
				return records, nil
			}
			return nil, err
		}
		records = append(records, res.Items...)
		if len(res.Items) < limit {
			break
		}
	}
	return records, nil
}

// HistoryPage fetches one window of the documented match history. A zero
// from/to leaves the corresponding bound unset. Bounds are normalized to
// unix seconds because callers occasionally hold millisecond timestamps.
func (c *Client) HistoryPage(ctx context.Context, playerID string, offset, limit int, from, to int64) (*PageResult[domain.HistoryItem], error) {
	limit = clampPageSize(limit)
	u := fmt.Sprintf("%s/players/%s/history?game=%s&offset=%d&limit=%d",
		c.dataBaseURL, playerID, constants.GameID, offset, limit)
	if from > 0 {
		u += fmt.Sprintf("&from=%d", stats.NormalizeUnixSeconds(from))
	}
	if to > 0 {
		u += fmt.Sprintf("&to=%d", stats.NormalizeUnixSeconds(to))
	}
	page, err := doRequest[historyPage](ctx, c, "history", u, true)
	if err != nil {
		return nil, err
	}

	items := make([]domain.HistoryItem, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, item.toDomain())
	}
	return &PageResult[domain.HistoryItem]{Items: items, Start: page.Start, End: page.End}, nil
}

// RecentHistory scans the newest history pages without a time window.
func (c *Client) RecentHistory(ctx context.Context, playerID string, maxPages int) ([]domain.HistoryItem, error) {
	return c.scanHistory(ctx, playerID, maxPages, 0)
}

// HistorySince scans history bounded below by from (unix seconds or millis).
func (c *Client) HistorySince(ctx context.Context, playerID string, from int64, maxPages int) ([]domain.HistoryItem, error) {
	return c.scanHistory(ctx, playerID, maxPages, from)
}

func (c *Client) scanHistory(ctx context.Context, playerID string, maxPages int, from int64) ([]domain.HistoryItem, error) {
	var items []domain.HistoryItem
	limit := constants.MaxPageSize
	for page := 0; page < maxPages; page++ {
		res, err := c.HistoryPage(ctx, playerID, page*limit, limit, from, 0)
		if err != nil {
			if len(items) > 0 {
				c.logger.Warn().
					Err(err).
					Str("player_id", playerID).
					Int("items", len(items)).
					Msg("history scan interrupted, using partial result")
				return items, nil
			}
			return nil, err
		}
		items = append(items, res.Items...)
		if len(res.Items) < limit {
			break
		}
	}
	return items, nil
}
