package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/michalkratky/slovicka/internal/entity"
)

// httpStatus maps domain errors onto HTTP statuses. Anything unmapped is a
// storage or internal failure.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, entity.ErrWordNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrDuplicateWord):
		return http.StatusConflict
	case errors.Is(err, entity.ErrInvalidWordID),
		errors.Is(err, entity.ErrInvalidWordText),
		errors.Is(err, entity.ErrInvalidCategory),
		errors.Is(err, entity.ErrInvalidDirection),
		errors.Is(err, entity.ErrInvalidLanguage),
		errors.Is(err, entity.ErrInvalidAnswer),
		errors.Is(err, entity.ErrInvalidPrefKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) abortWithError(c *gin.Context, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
