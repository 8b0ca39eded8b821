package httpapi

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/michalkratky/slovicka/internal/entity"
)

type sessionStatDTO struct {
	Date             string  `json:"date"`
	CorrectAnswers   int     `json:"correctAnswers"`
	IncorrectAnswers int     `json:"incorrectAnswers"`
	TotalTimeMinutes int     `json:"totalTimeMinutes"`
	WordsPracticed   int     `json:"wordsPracticed"`
	SuccessRate      float64 `json:"successRate"`
}

func sessionStatFrom(s *entity.SessionStat) sessionStatDTO {
	if s == nil {
		return sessionStatDTO{}
	}
	return sessionStatDTO{
		Date:             s.Date,
		CorrectAnswers:   s.CorrectAnswers,
		IncorrectAnswers: s.IncorrectAnswers,
		TotalTimeMinutes: s.TotalTimeMinutes,
		WordsPracticed:   s.WordsPracticed,
		SuccessRate:      s.SuccessRate(),
	}
}

// UserStats lists per word/direction counters, hardest pairs first.
func (h *Handler) UserStats(c *gin.Context) {
	stats, err := h.stats.UserWordStats(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].SuccessRate < stats[j].SuccessRate
	})

	type statDTO struct {
		Slovak         string  `json:"slovak"`
		English        string  `json:"english"`
		Category       string  `json:"category"`
		Direction      string  `json:"direction"`
		CorrectCount   int     `json:"correctCount"`
		IncorrectCount int     `json:"incorrectCount"`
		LastSeen       string  `json:"lastSeen"`
		SuccessRate    float64 `json:"successRate"`
	}
	out := make([]statDTO, len(stats))
	for i, s := range stats {
		out[i] = statDTO{
			Slovak:         s.Slovak,
			English:        s.English,
			Category:       s.Category,
			Direction:      string(s.Direction),
			CorrectCount:   s.CorrectCount,
			IncorrectCount: s.IncorrectCount,
			LastSeen:       s.LastSeen.Format(time.RFC3339),
			SuccessRate:    s.SuccessRate,
		}
	}
	c.JSON(http.StatusOK, out)
}

// SessionStats returns today's aggregate plus a history window with its
// summary.
func (h *Handler) SessionStats(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))

	overview, err := h.stats.SessionOverview(c.Request.Context(), days)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	history := make([]sessionStatDTO, len(overview.History))
	for i, s := range overview.History {
		history[i] = sessionStatFrom(s)
	}

	c.JSON(http.StatusOK, gin.H{
		"today":   sessionStatFrom(overview.Today),
		"history": history,
		"summary": gin.H{
			"totalDays":        overview.Summary.TotalDays,
			"averageCorrect":   overview.Summary.AverageCorrect,
			"averageIncorrect": overview.Summary.AverageIncorrect,
			"totalTimeMinutes": overview.Summary.TotalTimeMinutes,
		},
	})
}

// CleanupSessionStats collapses duplicate same-date session rows.
func (h *Handler) CleanupSessionStats(c *gin.Context) {
	report, err := h.stats.Consolidate(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	details := make([]sessionStatDTO, len(report.Details))
	for i, s := range report.Details {
		details[i] = sessionStatFrom(s)
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "Session statistics cleanup completed",
		"consolidatedDates": report.ConsolidatedDates,
		"details":           details,
	})
}
