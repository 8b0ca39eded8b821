package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPreferences returns every preference in the requested scope as a
// key -> value map.
func (h *Handler) GetPreferences(c *gin.Context) {
	prefs, err := h.prefs.All(c.Request.Context(), c.Query("userId"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

type setPreferenceRequest struct {
	Key    string          `json:"key"`
	Value  json.RawMessage `json:"value"`
	UserID string          `json:"userId"`
}

// SetPreference upserts one preference value.
func (h *Handler) SetPreference(c *gin.Context) {
	var req setPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.Key == "" {
		badRequest(c, "missing required field: key")
		return
	}

	if err := h.prefs.Set(c.Request.Context(), req.UserID, req.Key, req.Value); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Preference saved successfully"})
}
