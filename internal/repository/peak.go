package repository

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jearnest94/extendo-reborn/internal/config"
	"github.com/Jearnest94/extendo-reborn/internal/metrics"
)

// PeakEntry is the persisted peak elo of one player. A zero PeakElo means
// nothing is known yet.
type PeakEntry struct {
	UpdatedAt     int64 `json:"updated_at"`
	PeakElo       int   `json:"peak_elo"`
	PeakTimestamp int64 `json:"peak_timestamp,omitempty"`
}

// PeakRepository persists one peak-elo record per player id, on a longer
// TTL than the series cache since a peak only moves when it is beaten.
type PeakRepository struct {
	store  *fileStore
	ttl    time.Duration
	logger zerolog.Logger
}

func NewPeakRepository(cfg *config.Config, logger zerolog.Logger) (*PeakRepository, error) {
	store, err := newFileStore(filepath.Join(cfg.CacheDir, "peak-elo"), logger)
	if err != nil {
		return nil, err
	}
	return &PeakRepository{
		store:  store,
		ttl:    cfg.PeakEloTTL,
		logger: logger,
	}, nil
}

// Get returns the stored peak and whether it is still fresh. Missing and
// unreadable entries come back empty and stale.
func (r *PeakRepository) Get(playerID string) (PeakEntry, bool) {
	var entry PeakEntry
	if err := r.store.read(playerID, &entry); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			metrics.CacheReads.WithLabelValues("peak_elo", "miss").Inc()
		} else {
			metrics.CacheReads.WithLabelValues("peak_elo", "error").Inc()
			r.logger.Warn().
				Err(err).
				Str("player_id", playerID).
				Msg("peak elo cache unreadable, treating as empty")
		}
		return PeakEntry{}, false
	}

	fresh := time.Since(time.Unix(entry.UpdatedAt, 0)) <= r.ttl
	outcome := "stale"
	if fresh {
		outcome = "hit"
	}
	metrics.CacheReads.WithLabelValues("peak_elo", outcome).Inc()
	return entry, fresh
}

// Put persists a recomputed peak. The returned entry is valid even when the
// write failed.
func (r *PeakRepository) Put(playerID string, peakElo int, peakTimestamp int64) (PeakEntry, error) {
	entry := PeakEntry{
		UpdatedAt:     time.Now().Unix(),
		PeakElo:       peakElo,
		PeakTimestamp: peakTimestamp,
	}
	if err := r.store.write(playerID, entry); err != nil {
		metrics.CacheWrites.WithLabelValues("peak_elo", "error").Inc()
		return entry, err
	}
	metrics.CacheWrites.WithLabelValues("peak_elo", "ok").Inc()

	r.logger.Debug().
		Str("player_id", playerID).
		Int("peak_elo", peakElo).
		Msg("peak elo cache refreshed")
	return entry, nil
}
