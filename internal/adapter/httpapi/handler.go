// Package httpapi exposes the drill service as a JSON API over gin.
package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/michalkratky/slovicka/internal/usecase"
)

// Handler bundles the usecases behind the HTTP surface.
type Handler struct {
	words    usecase.WordUsecase
	practice usecase.PracticeUsecase
	stats    usecase.StatsUsecase
	prefs    usecase.PreferenceUsecase
	logger   *logrus.Logger
	// ping reports backing-store health for the health endpoint; nil means
	// no store to check.
	ping func() error
}

// NewHandler wires the usecases into one HTTP handler set.
func NewHandler(
	words usecase.WordUsecase,
	practice usecase.PracticeUsecase,
	stats usecase.StatsUsecase,
	prefs usecase.PreferenceUsecase,
	logger *logrus.Logger,
	ping func() error,
) *Handler {
	return &Handler{
		words:    words,
		practice: practice,
		stats:    stats,
		prefs:    prefs,
		logger:   logger,
		ping:     ping,
	}
}

// NewRouter builds the gin engine with middleware, API routes and optional
// static file serving for the browser client.
func NewRouter(h *Handler, staticDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(h.logger))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)

		api.GET("/word-groups", h.WordGroups)
		api.POST("/words", h.CreateWord)
		api.PUT("/words/:id", h.UpdateWord)
		api.DELETE("/words/:id", h.DeleteWord)
		api.GET("/stats", h.CategoryStats)
		api.POST("/import-words", h.ImportWords)

		api.POST("/next-word", h.NextWord)
		api.POST("/check-answer", h.CheckAnswer)
		api.POST("/validate-translation", h.ValidateTranslation)
		api.POST("/record-answer", h.RecordAnswer)
		api.GET("/word-difficulty/:wordId/:direction", h.WordDifficulty)

		api.GET("/user-stats", h.UserStats)
		api.GET("/session-stats", h.SessionStats)
		api.POST("/cleanup-session-stats", h.CleanupSessionStats)

		api.GET("/preferences", h.GetPreferences)
		api.POST("/preferences", h.SetPreference)
	}

	if staticDir != "" {
		router.Static("/static", staticDir)
		router.StaticFile("/", staticDir+"/index.html")
	}
	return router
}
