package fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Jearnest94/extendo-reborn/internal/api"
	"github.com/Jearnest94/extendo-reborn/internal/cache"
	"github.com/Jearnest94/extendo-reborn/internal/config"
	"github.com/Jearnest94/extendo-reborn/internal/domain"
	"github.com/Jearnest94/extendo-reborn/internal/logger"
	"github.com/Jearnest94/extendo-reborn/internal/repository"
	"github.com/Jearnest94/extendo-reborn/internal/server"
	"github.com/Jearnest94/extendo-reborn/internal/service"
)

func ProvideIdentityCache(cfg *config.Config) *cache.LRU[domain.Profile] {
	return cache.NewLRU[domain.Profile](cfg.IdentityCacheSize, cfg.IdentityCacheTTL)
}

func ProvideAggregator(
	client *api.Client,
	identities *cache.LRU[domain.Profile],
	series *repository.EloSeriesRepository,
	peaks *repository.PeakRepository,
	logger zerolog.Logger,
) *service.AggregatorService {
	return service.NewAggregatorService(client, identities, series, peaks, logger)
}

func ProvideRoster(client *api.Client, logger zerolog.Logger) *service.RosterService {
	return service.NewRosterService(client, logger)
}

func ProvideServer(
	aggregator *service.AggregatorService,
	rosters *service.RosterService,
	logger zerolog.Logger,
) *server.Server {
	return server.New(aggregator, rosters, logger)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// caches and repositories
	fx.Provide(ProvideIdentityCache),
	fx.Provide(repository.NewEloSeriesRepository),
	fx.Provide(repository.NewPeakRepository),
	// api client
	fx.Provide(api.NewClient),
	// svc
	fx.Provide(ProvideAggregator),
	fx.Provide(ProvideRoster),
	// server
	fx.Provide(ProvideServer),
)
