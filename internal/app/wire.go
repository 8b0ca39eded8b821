//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/michalkratky/slovicka/internal/adapter/repository"
	"github.com/michalkratky/slovicka/internal/infrastructure/config"
	"github.com/michalkratky/slovicka/internal/infrastructure/server"
	"github.com/michalkratky/slovicka/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	ProvideDatabase,
)

var repositorySet = wire.NewSet(
	repository.NewWordRepository,
	repository.NewStatsRepository,
	repository.NewPreferenceRepository,
)

var usecaseSet = wire.NewSet(
	ProvideOracle,
	usecase.NewWordUsecase,
	usecase.NewPracticeUsecase,
	usecase.NewStatsUsecase,
	usecase.NewPreferenceUsecase,
	ProvideBackup,
)

var serviceSet = wire.NewSet(
	ProvideHandler,
	ProvideRouter,
	ProvideScheduler,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		serviceSet,
		serverSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
