package fx

import (
	"brawl-tracker/internal/api"
	"brawl-tracker/internal/cache"
	"brawl-tracker/internal/config"
	"brawl-tracker/internal/database"
	"brawl-tracker/internal/logger"
	"brawl-tracker/internal/metrics"
	"brawl-tracker/internal/repository"
	"brawl-tracker/internal/server"
	"brawl-tracker/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	cache.Module,
	metrics.Module,
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewBattleRepository),
	// api client
	fx.Provide(fx.Annotate(api.NewClient, fx.As(new(service.Upstream)))),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewBattleService),
	// server
	fx.Provide(server.NewTrackerServer),
)
