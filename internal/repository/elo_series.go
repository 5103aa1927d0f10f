package repository

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jearnest94/extendo-reborn/internal/config"
	"github.com/Jearnest94/extendo-reborn/internal/constants"
	"github.com/Jearnest94/extendo-reborn/internal/domain"
	"github.com/Jearnest94/extendo-reborn/internal/metrics"
	"github.com/Jearnest94/extendo-reborn/internal/stats"
)

// SeriesEntry is the persisted elo series of one player.
type SeriesEntry struct {
	UpdatedAt int64              `json:"updated_at"`
	Items     []domain.EloSample `json:"items"`
}

// EloSeriesRepository persists one elo time series per player id. Entries
// older than the TTL are still returned, just flagged stale, so callers can
// fall back to them when a refresh fails.
type EloSeriesRepository struct {
	store    *fileStore
	ttl      time.Duration
	maxItems int
	logger   zerolog.Logger
}

func NewEloSeriesRepository(cfg *config.Config, logger zerolog.Logger) (*EloSeriesRepository, error) {
	store, err := newFileStore(filepath.Join(cfg.CacheDir, "elo-series"), logger)
	if err != nil {
		return nil, err
	}
	return &EloSeriesRepository{
		store:    store,
		ttl:      cfg.EloSeriesTTL,
		maxItems: constants.SeriesMaxItems,
		logger:   logger,
	}, nil
}

// Get returns the stored series and whether it is still fresh. A missing
// file is an empty stale entry; an unreadable one is logged and treated the
// same, since a broken cache must never break the request.
func (r *EloSeriesRepository) Get(playerID string) (SeriesEntry, bool) {
	var entry SeriesEntry
	if err := r.store.read(playerID, &entry); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			metrics.CacheReads.WithLabelValues("elo_series", "miss").Inc()
		} else {
			metrics.CacheReads.WithLabelValues("elo_series", "error").Inc()
			r.logger.Warn().
				Err(err).
				Str("player_id", playerID).
				Msg("elo series cache unreadable, treating as empty")
		}
		return SeriesEntry{}, false
	}

	fresh := time.Since(time.Unix(entry.UpdatedAt, 0)) <= r.ttl
	outcome := "stale"
	if fresh {
		outcome = "hit"
	}
	metrics.CacheReads.WithLabelValues("elo_series", outcome).Inc()

	r.logger.Debug().
		Str("player_id", playerID).
		Int("items", len(entry.Items)).
		Bool("fresh", fresh).
		Msg("elo series cache read")
	return entry, fresh
}

// Refresh merges freshly fetched samples into the prior entry and persists
// the result. The merged series is truncated to the newest maxItems. The
// returned entry is usable even when persisting failed; the error only
// means the next request will refetch.
func (r *EloSeriesRepository) Refresh(playerID string, fetched []domain.EloSample, prior SeriesEntry) (SeriesEntry, error) {
	merged := stats.MergeEloSamples(prior.Items, fetched)
	if len(merged) > r.maxItems {
		merged = merged[:r.maxItems]
	}
	entry := SeriesEntry{
		UpdatedAt: time.Now().Unix(),
		Items:     merged,
	}

	if err := r.store.write(playerID, entry); err != nil {
		metrics.CacheWrites.WithLabelValues("elo_series", "error").Inc()
		return entry, err
	}
	metrics.CacheWrites.WithLabelValues("elo_series", "ok").Inc()

	r.logger.Debug().
		Str("player_id", playerID).
		Int("fetched", len(fetched)).
		Int("stored", len(entry.Items)).
		Msg("elo series cache refreshed")
	return entry, nil
}
