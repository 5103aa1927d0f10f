package service

import (
	"context"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Jearnest94/extendo-reborn/internal/api"
	"github.com/Jearnest94/extendo-reborn/internal/cache"
	"github.com/Jearnest94/extendo-reborn/internal/constants"
	"github.com/Jearnest94/extendo-reborn/internal/domain"
	"github.com/Jearnest94/extendo-reborn/internal/metrics"
	"github.com/Jearnest94/extendo-reborn/internal/repository"
	"github.com/Jearnest94/extendo-reborn/internal/stats"
)

// FaceitAPI is the slice of the upstream client the aggregator consumes.
type FaceitAPI interface {
	GetPlayerByNickname(ctx context.Context, nickname string) (*domain.Profile, error)
	GetLifetimeStats(ctx context.Context, playerID string) (*domain.LifetimeStats, error)
	ScanMatchStats(ctx context.Context, playerID string, maxPages int) ([]domain.StatRecord, error)
	RecentHistory(ctx context.Context, playerID string, maxPages int) ([]domain.HistoryItem, error)
	HistorySince(ctx context.Context, playerID string, from int64, maxPages int) ([]domain.HistoryItem, error)
	FetchEloTimeSeries(ctx context.Context, playerID string) ([]domain.EloSample, error)
}

// AggregatorService turns a batch of nicknames into flat stat records. Each
// nickname is processed independently: one bad or unknown player yields an
// error entry in its slot and never disturbs the rest of the batch.
type AggregatorService struct {
	client     FaceitAPI
	identities *cache.LRU[domain.Profile]
	series     *repository.EloSeriesRepository
	peaks      *repository.PeakRepository
	logger     zerolog.Logger
}

func NewAggregatorService(
	client FaceitAPI,
	identities *cache.LRU[domain.Profile],
	series *repository.EloSeriesRepository,
	peaks *repository.PeakRepository,
	logger zerolog.Logger,
) *AggregatorService {
	return &AggregatorService{
		client:     client,
		identities: identities,
		series:     series,
		peaks:      peaks,
		logger:     logger,
	}
}

// AggregatePlayers resolves and aggregates up to MaxBatchSize nicknames,
// preserving request order. Results beyond the cap are silently dropped.
func (s *AggregatorService) AggregatePlayers(ctx context.Context, nicknames []string) []domain.PlayerResult {
	if len(nicknames) > constants.MaxBatchSize {
		s.logger.Warn().
			Int("requested", len(nicknames)).
			Int("cap", constants.MaxBatchSize).
			Msg("nickname batch truncated")
		nicknames = nicknames[:constants.MaxBatchSize]
	}

	batchID, err := gonanoid.New()
	if err != nil {
		batchID = "batch"
	}
	logger := s.logger.With().Str("batch_id", batchID).Logger()
	logger.Info().Int("players", len(nicknames)).Msg("aggregating player batch")

	start := time.Now()
	results := make([]domain.PlayerResult, 0, len(nicknames))
	for _, nickname := range nicknames {
		results = append(results, s.aggregateOne(ctx, logger, nickname))
	}

	metrics.AggregationDuration.Observe(time.Since(start).Seconds())
	logger.Info().
		Int("players", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("player batch aggregated")
	return results
}

func (s *AggregatorService) aggregateOne(ctx context.Context, logger zerolog.Logger, nickname string) domain.PlayerResult {
	logger = logger.With().Str("nickname", nickname).Logger()

	profile, err := s.resolveIdentity(ctx, nickname)
	if err != nil {
		logger.Warn().Err(err).Msg("identity resolution failed")
		metrics.AggregatedPlayers.WithLabelValues("error").Inc()
		return errorResult(nickname, err)
	}
	logger = logger.With().Str("player_id", profile.PlayerID).Logger()

	result := domain.PlayerResult{
		Nickname: profile.Nickname,
		PlayerID: profile.PlayerID,
		Avatar:   profile.Avatar,
		Country:  profile.Country,
		Elo:      profile.Elo,
		Level:    profile.Level,
	}

	// The three fetch legs run in parallel and each swallows its own
	// failures: a leg that comes back empty only blanks the fields it
	// feeds. No shared-cancel errgroup here, one dead leg must not take
	// down the others.
	var (
		lifetime   *domain.LifetimeStats
		records    []domain.StatRecord
		samples    []domain.EloSample
		recent     []domain.HistoryItem
		windowed   []domain.HistoryItem
		windowedOK bool
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		callCtx, cancel := context.WithTimeout(ctx, constants.SimpleCallTimeout)
		defer cancel()
		lt, err := s.client.GetLifetimeStats(callCtx, profile.PlayerID)
		if err != nil {
			logger.Warn().Err(err).Msg("lifetime stats unavailable")
			return nil
		}
		lifetime = lt
		return nil
	})
	g.Go(func() error {
		callCtx, cancel := context.WithTimeout(ctx, constants.BulkCallTimeout)
		defer cancel()
		recs, err := s.client.ScanMatchStats(callCtx, profile.PlayerID, constants.StatsScanPageCap)
		if err != nil {
			logger.Warn().Err(err).Msg("match stats scan unavailable")
		} else {
			records = recs
		}
		samples = s.eloSeries(callCtx, logger, profile.PlayerID, records)
		return nil
	})
	g.Go(func() error {
		callCtx, cancel := context.WithTimeout(ctx, constants.BulkCallTimeout)
		defer cancel()
		items, err := s.client.RecentHistory(callCtx, profile.PlayerID, constants.DateScanPageCap)
		if err != nil {
			logger.Warn().Err(err).Msg("recent history unavailable")
		} else {
			recent = items
		}

		maxDays := constants.FrequencyWindowsDays[len(constants.FrequencyWindowsDays)-1]
		from := time.Now().AddDate(0, 0, -maxDays).Unix()
		win, err := s.client.HistorySince(callCtx, profile.PlayerID, from, constants.FrequencyScanPageCap)
		if err != nil {
			logger.Warn().Err(err).Msg("windowed history unavailable")
		} else {
			windowed = win
			windowedOK = true
		}
		return nil
	})
	_ = g.Wait()

	applyLifetime(&result, lifetime)
	applyRolling(&result, records)
	applyEloHistory(&result, samples)
	s.applyPeak(&result, logger, profile.PlayerID, samples, records)
	applyDates(&result, recent)
	if windowedOK {
		applyFrequency(&result, windowed)
	}

	metrics.AggregatedPlayers.WithLabelValues("ok").Inc()
	logger.Debug().Msg("player aggregated")
	return result
}

// resolveIdentity maps a nickname to a profile, memoizing successes in the
// LRU. Lookups are case-insensitive because nicknames arrive in whatever
// casing the extension scraped.
func (s *AggregatorService) resolveIdentity(ctx context.Context, nickname string) (domain.Profile, error) {
	key := strings.ToLower(strings.TrimSpace(nickname))
	if profile, ok := s.identities.Get(key); ok {
		metrics.IdentityCacheHits.Inc()
		return profile, nil
	}
	metrics.IdentityCacheMisses.Inc()

	callCtx, cancel := context.WithTimeout(ctx, constants.SimpleCallTimeout)
	defer cancel()
	profile, err := s.client.GetPlayerByNickname(callCtx, nickname)
	if err != nil {
		return domain.Profile{}, err
	}

	s.identities.Add(key, *profile)
	return *profile, nil
}

// eloSeries returns the player's merged elo series, refreshing the disk
// cache when stale. Fresh samples come from the time-series endpoint plus
// whatever elo readings the stats scan carried; when both sources fail the
// stale cached series is served as-is.
func (s *AggregatorService) eloSeries(ctx context.Context, logger zerolog.Logger, playerID string, records []domain.StatRecord) []domain.EloSample {
	entry, fresh := s.series.Get(playerID)
	if fresh {
		return entry.Items
	}

	fetched, err := s.client.FetchEloTimeSeries(ctx, playerID)
	if err != nil {
		logger.Warn().Err(err).Msg("elo time series fetch failed")
	}
	extracted := stats.SamplesFromStatRecords(records)

	if len(fetched) == 0 && len(extracted) == 0 {
		logger.Warn().
			Int("stale_items", len(entry.Items)).
			Msg("no fresh elo samples, serving cached series")
		return entry.Items
	}

	refreshed, err := s.series.Refresh(playerID, stats.MergeEloSamples(fetched, extracted), entry)
	if err != nil {
		logger.Warn().Err(err).Msg("elo series cache write failed")
	}
	return refreshed.Items
}

// applyPeak reconciles the peak elo from three sources: the merged series,
// elo readings embedded in the stats scan, and the previously stored peak.
// The maximum wins; ties go to the most recent occurrence. When no source
// has anything the stored value is served however old it is.
func (s *AggregatorService) applyPeak(result *domain.PlayerResult, logger zerolog.Logger, playerID string, samples []domain.EloSample, records []domain.StatRecord) {
	entry, fresh := s.peaks.Get(playerID)
	if fresh && entry.PeakElo > 0 {
		setPeak(result, entry)
		return
	}

	candidates := stats.MergeEloSamples(samples, stats.SamplesFromStatRecords(records))
	if entry.PeakElo > 0 {
		candidates = append(candidates, domain.EloSample{
			Timestamp: entry.PeakTimestamp,
			Elo:       entry.PeakElo,
		})
	}

	peak, err := stats.PeakElo(candidates)
	if err != nil {
		if entry.PeakElo > 0 {
			logger.Debug().Msg("no fresh peak candidates, serving stale peak")
			setPeak(result, entry)
		}
		return
	}

	updated, err := s.peaks.Put(playerID, peak.Elo, peak.Timestamp)
	if err != nil {
		logger.Warn().Err(err).Msg("peak elo cache write failed")
	}
	setPeak(result, updated)
}

func setPeak(result *domain.PlayerResult, entry repository.PeakEntry) {
	peak := entry.PeakElo
	result.PeakElo = &peak
	if entry.PeakTimestamp > 0 {
		result.PeakEloDate = stats.FormatDateUTC(entry.PeakTimestamp)
	}
}

func applyLifetime(result *domain.PlayerResult, lifetime *domain.LifetimeStats) {
	if lifetime == nil {
		return
	}
	if v, err := stats.IntFromFields(lifetime.Overall, stats.MatchesFields); err == nil {
		result.Matches = &v
	}
	if v, err := stats.IntFromFields(lifetime.Overall, stats.WinsFields); err == nil {
		result.Wins = &v
	}
	if v, err := stats.FloatFromFields(lifetime.Overall, stats.KDFields); err == nil {
		result.KD = &v
	}
	if v, err := stats.FloatFromFields(lifetime.Overall, stats.HSFields); err == nil {
		result.HSPercent = &v
	}
	if v, err := stats.FloatFromFields(lifetime.Overall, stats.AvgKillsFields); err == nil {
		result.AvgKills = &v
	}

	byMatches, byWinRate := stats.MapLeaderboards(lifetime.Maps, constants.PrimaryMode, constants.MapLeaderboardSize)
	result.TopMapsByMatches = byMatches
	result.TopMapsByWinRate = byWinRate
}

func applyRolling(result *domain.PlayerResult, records []domain.StatRecord) {
	for _, n := range constants.RollingWindows {
		if v, err := stats.RollingADR(records, n); err == nil {
			rounded := stats.Round2(v)
			switch n {
			case 10:
				result.ADRLast10 = &rounded
			case 30:
				result.ADRLast30 = &rounded
			case 100:
				result.ADRLast100 = &rounded
			}
		}
		if v, err := stats.RollingWinRate(records, n); err == nil {
			rounded := stats.Round2(v)
			switch n {
			case 10:
				result.WinRateLast10 = &rounded
			case 30:
				result.WinRateLast30 = &rounded
			case 100:
				result.WinRateLast100 = &rounded
			}
		}
	}
}

func applyEloHistory(result *domain.PlayerResult, samples []domain.EloSample) {
	for _, n := range constants.RollingWindows {
		if v, err := stats.EloNGamesAgo(samples, n); err == nil {
			elo := v
			switch n {
			case 10:
				result.Elo10GamesAgo = &elo
			case 30:
				result.Elo30GamesAgo = &elo
			case 100:
				result.Elo100GamesAgo = &elo
			}
		}
	}
}

func applyDates(result *domain.PlayerResult, recent []domain.HistoryItem) {
	for _, n := range constants.RollingWindows {
		if v, err := stats.DateNGamesAgo(recent, n); err == nil {
			switch n {
			case 10:
				result.Date10GamesAgo = v
			case 30:
				result.Date30GamesAgo = v
			case 100:
				result.Date100GamesAgo = v
			}
		}
	}
}

func applyFrequency(result *domain.PlayerResult, windowed []domain.HistoryItem) {
	now := time.Now()
	for _, days := range constants.FrequencyWindowsDays {
		cutoff := now.AddDate(0, 0, -days).Unix()
		count := stats.CountSince(windowed, cutoff)
		if v, err := stats.GamesPerDay(count, days); err == nil {
			rate := v
			switch days {
			case 7:
				result.GamesPerDay7 = &rate
			case 30:
				result.GamesPerDay30 = &rate
			case 90:
				result.GamesPerDay90 = &rate
			}
		}
	}
}

func errorResult(nickname string, err error) domain.PlayerResult {
	result := domain.PlayerResult{
		Nickname: nickname,
		Error:    err.Error(),
	}
	if api.IsAuthError(err) {
		result.AuthError = true
	}
	return result
}
