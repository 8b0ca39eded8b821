package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/michalkratky/slovicka/internal/adapter/httpapi"
	"github.com/michalkratky/slovicka/internal/adapter/openai"
	"github.com/michalkratky/slovicka/internal/infrastructure/config"
	"github.com/michalkratky/slovicka/internal/infrastructure/database"
	"github.com/michalkratky/slovicka/internal/infrastructure/scheduler"
	"github.com/michalkratky/slovicka/internal/repository"
	"github.com/michalkratky/slovicka/internal/usecase"
	"github.com/michalkratky/slovicka/internal/usecase/backup"
)

// ProvideDatabase opens the store and ensures the schema exists.
func ProvideDatabase(cfg *config.Config) (*sqlx.DB, func(), error) {
	db, err := database.Connect(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

// ProvideOracle builds the OpenAI-backed oracle, or nil when no API key is
// configured. A nil oracle means translation validation always answers
// negatively.
func ProvideOracle(cfg *config.Config, logger *logrus.Logger) usecase.TranslationOracle {
	if cfg.OpenAI.APIKey == "" {
		logger.Warn("OpenAI API key not configured, translation validation disabled")
		return nil
	}
	client, err := openai.New(openai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
		Timeout: cfg.OpenAI.Timeout,
	}, logger)
	if err != nil {
		logger.WithError(err).Warn("failed to build OpenAI client, translation validation disabled")
		return nil
	}
	logger.Infof("OpenAI oracle initialized with model %s", client.Model())
	return client
}

// ProvideHandler ties the usecases and the store's health check into the
// HTTP handler set.
func ProvideHandler(
	db *sqlx.DB,
	words usecase.WordUsecase,
	practice usecase.PracticeUsecase,
	stats usecase.StatsUsecase,
	prefs usecase.PreferenceUsecase,
	logger *logrus.Logger,
) *httpapi.Handler {
	return httpapi.NewHandler(words, practice, stats, prefs, logger, db.Ping)
}

// ProvideRouter configures gin and builds the route table.
func ProvideRouter(cfg *config.Config, handler *httpapi.Handler) *gin.Engine {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	return httpapi.NewRouter(handler, cfg.Server.StaticDir)
}

// ProvideScheduler builds the maintenance scheduler, or nil when disabled.
func ProvideScheduler(cfg *config.Config, stats usecase.StatsUsecase, logger *logrus.Logger) *scheduler.Scheduler {
	if !cfg.Maintenance.Enabled {
		return nil
	}
	return scheduler.New(stats, logger, cfg.Maintenance.At)
}

// ProvideBackup builds the xlsx export/import service.
func ProvideBackup(words repository.WordRepository) (*backup.Service, error) {
	return backup.NewService(words)
}
