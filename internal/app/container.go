package app

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/michalkratky/slovicka/internal/infrastructure/config"
	"github.com/michalkratky/slovicka/internal/infrastructure/scheduler"
	"github.com/michalkratky/slovicka/internal/infrastructure/server"
	"github.com/michalkratky/slovicka/internal/usecase"
	"github.com/michalkratky/slovicka/internal/usecase/backup"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     *sqlx.DB
	Server *server.Server
	// Scheduler is nil when maintenance is disabled.
	Scheduler *scheduler.Scheduler
	Backup    *backup.Service
	Words     usecase.WordUsecase
}
