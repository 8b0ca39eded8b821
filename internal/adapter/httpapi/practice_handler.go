package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/michalkratky/slovicka/internal/entity"
	"github.com/michalkratky/slovicka/internal/usecase"
)

type nextWordRequest struct {
	EnabledGroups         map[string]bool `json:"enabledGroups"`
	TranslationDirections *struct {
		SlovakToEnglish bool `json:"slovakToEnglish"`
		EnglishToSlovak bool `json:"englishToSlovak"`
	} `json:"translationDirections"`
}

type nextWordDTO struct {
	ID             int64  `json:"id"`
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	Direction      string `json:"direction"`
	Category       string `json:"category"`
	TargetLanguage string `json:"targetLanguage"`
	Slovak         string `json:"slovak"`
	English        string `json:"english"`
}

// NextWord draws the next drill card using difficulty-weighted selection.
func (h *Handler) NextWord(c *gin.Context) {
	var req nextWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.EnabledGroups == nil || req.TranslationDirections == nil {
		badRequest(c, "missing required fields: enabledGroups, translationDirections")
		return
	}

	query := usecase.NextWordQuery{}
	for key, enabled := range req.EnabledGroups {
		if enabled {
			query.Categories = append(query.Categories, key)
		}
	}
	if req.TranslationDirections.SlovakToEnglish {
		query.Directions = append(query.Directions, entity.DirectionSkToEn)
	}
	if req.TranslationDirections.EnglishToSlovak {
		query.Directions = append(query.Directions, entity.DirectionEnToSk)
	}

	card, err := h.practice.NextWord(c.Request.Context(), query)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if card == nil {
		c.JSON(http.StatusOK, gin.H{"noWordsAvailable": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"nextWord": nextWordDTO{
		ID:             card.WordID,
		Question:       card.Question,
		Answer:         card.Answer,
		Direction:      string(card.Direction),
		Category:       card.Category,
		TargetLanguage: string(card.TargetLanguage),
		Slovak:         card.Slovak,
		English:        card.English,
	}})
}

type answerRequest struct {
	WordID         int64  `json:"wordId"`
	UserAnswer     string `json:"userAnswer"`
	TargetLanguage string `json:"targetLanguage"`
}

// CheckAnswer matches a typed answer against the accepted spellings.
func (h *Handler) CheckAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.WordID == 0 || req.UserAnswer == "" || req.TargetLanguage == "" {
		badRequest(c, "missing required fields: wordId, userAnswer, targetLanguage")
		return
	}

	check, err := h.practice.CheckAnswer(c.Request.Context(), req.WordID, req.UserAnswer, entity.ParseLanguage(req.TargetLanguage))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"correct":         check.Correct,
		"correctAnswers":  check.CorrectAnswers,
		"userAnswer":      check.UserAnswer,
		"needsValidation": check.NeedsValidation,
	})
}

// ValidateTranslation consults the oracle and learns accepted answers as
// synonyms.
func (h *Handler) ValidateTranslation(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.WordID == 0 || req.UserAnswer == "" || req.TargetLanguage == "" {
		badRequest(c, "missing required fields: wordId, userAnswer, targetLanguage")
		return
	}

	outcome, err := h.practice.ValidateTranslation(c.Request.Context(), req.WordID, req.UserAnswer, entity.ParseLanguage(req.TargetLanguage))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	resp := gin.H{
		"valid":          outcome.Valid,
		"addedAsSynonym": outcome.AddedAsSynonym,
		"explanation":    outcome.Explanation,
	}
	if outcome.Valid {
		resp["correctAnswers"] = outcome.CorrectAnswers
	}
	c.JSON(http.StatusOK, resp)
}

type recordAnswerRequest struct {
	WordID    int64  `json:"wordId"`
	Direction string `json:"direction"`
	IsCorrect *bool  `json:"isCorrect"`
	// TimeTaken is the answer's wall time in milliseconds.
	TimeTaken int64 `json:"timeTaken"`
}

// RecordAnswer persists one drill outcome into word and session statistics.
func (h *Handler) RecordAnswer(c *gin.Context) {
	var req recordAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.WordID == 0 || req.Direction == "" || req.IsCorrect == nil {
		badRequest(c, "missing required fields: wordId, direction, isCorrect")
		return
	}
	direction := entity.ParseDirection(req.Direction)
	if direction == entity.DirectionUnspecified {
		badRequest(c, "invalid direction, must be sk-en or en-sk")
		return
	}

	outcome, err := h.practice.RecordAnswer(
		c.Request.Context(),
		req.WordID,
		direction,
		*req.IsCorrect,
		time.Duration(req.TimeTaken)*time.Millisecond,
	)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Answer recorded successfully",
		"wordId":       outcome.WordID,
		"direction":    string(outcome.Direction),
		"correct":      outcome.Correct,
		"sessionStats": sessionStatFrom(outcome.Session),
	})
}

// WordDifficulty returns the current selection weight for one pair.
func (h *Handler) WordDifficulty(c *gin.Context) {
	wordID, err := strconv.ParseInt(c.Param("wordId"), 10, 64)
	if err != nil {
		badRequest(c, "invalid word id")
		return
	}
	direction := entity.ParseDirection(c.Param("direction"))
	if direction == entity.DirectionUnspecified {
		badRequest(c, "invalid direction, must be sk-en or en-sk")
		return
	}

	difficulty, err := h.practice.WordDifficulty(c.Request.Context(), wordID, direction)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"difficulty": difficulty,
		"wordId":     wordID,
		"direction":  string(direction),
	})
}
