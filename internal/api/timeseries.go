package api

import (
	"context"
	"fmt"

	"github.com/Jearnest94/extendo-reborn/internal/constants"
	"github.com/Jearnest94/extendo-reborn/internal/domain"
	"github.com/Jearnest94/extendo-reborn/internal/stats"
)

// FetchEloTimeSeries pulls a player's elo history from the undocumented web
// stats endpoint. The endpoint has no stable pagination contract: depending
// on deployment it honors no parameters, a bulk size, a bulk limit, or one
// of two incremental conventions, and silently returns its default page for
// the rest. Every strategy is tried and the non-empty results merged; the
// dedup in MergeEloSamples makes overlap harmless.
func (c *Client) FetchEloTimeSeries(ctx context.Context, playerID string) ([]domain.EloSample, error) {
	base := fmt.Sprintf("%s/stats/time/users/%s/games/%s", c.statsBaseURL, playerID, constants.GameID)

	var sets [][]domain.EloSample
	singleShot := []string{
		"",
		fmt.Sprintf("size=%d", constants.TimeSeriesBulkSize),
		fmt.Sprintf("limit=%d", constants.TimeSeriesBulkSize),
	}
	for _, query := range singleShot {
		samples, err := c.timeSeriesCall(ctx, base, query)
		if err != nil {
			c.logger.Debug().
				Err(err).
				Str("player_id", playerID).
				Str("query", query).
				Msg("time series strategy failed")
			continue
		}
		if len(samples) > 0 {
			sets = append(sets, samples)
		}
	}

	pagers := []func(page int) string{
		func(page int) string {
			return fmt.Sprintf("page=%d&size=%d", page, constants.MaxPageSize)
		},
		func(page int) string {
			return fmt.Sprintf("offset=%d&limit=%d", page*constants.MaxPageSize, constants.MaxPageSize)
		},
	}
	for _, pager := range pagers {
		for page := 0; page < constants.TimeSeriesPageCap; page++ {
			samples, err := c.timeSeriesCall(ctx, base, pager(page))
			if err != nil || len(samples) == 0 {
				break
			}
			sets = append(sets, samples)
			if len(samples) < constants.MaxPageSize {
				break
			}
		}
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("time series for %s: every fetch strategy came back empty", playerID)
	}
	return stats.MergeEloSamples(sets...), nil
}

func (c *Client) timeSeriesCall(ctx context.Context, base, query string) ([]domain.EloSample, error) {
	u := base
	if query != "" {
		u += "?" + query
	}
	entries, err := doRequest[[]map[string]any](ctx, c, "stats_time", u, false)
	if err != nil {
		return nil, err
	}

	samples := make([]domain.EloSample, 0, len(*entries))
	for _, entry := range *entries {
		ts, ok := stats.RecordTimestamp(entry)
		if !ok {
			continue
		}
		elo, err := stats.EloValue(entry)
		if err != nil {
			continue
		}
		samples = append(samples, domain.EloSample{
			Timestamp: ts,
			Elo:       elo,
			MatchID:   stats.MatchIDValue(entry),
		})
	}
	return samples, nil
}
