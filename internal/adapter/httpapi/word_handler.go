package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/michalkratky/slovicka/internal/entity"
	"github.com/michalkratky/slovicka/internal/usecase"
)

type synonymsDTO struct {
	Slovak  []string `json:"slovak"`
	English []string `json:"english"`
}

func (d synonymsDTO) toEntity() entity.SynonymSet {
	return entity.SynonymSet{Slovak: d.Slovak, English: d.English}
}

func synonymsFrom(set entity.SynonymSet) synonymsDTO {
	dto := synonymsDTO{Slovak: set.Slovak, English: set.English}
	if dto.Slovak == nil {
		dto.Slovak = []string{}
	}
	if dto.English == nil {
		dto.English = []string{}
	}
	return dto
}

type wordDTO struct {
	ID       int64       `json:"id"`
	Slovak   string      `json:"slovak"`
	English  string      `json:"english"`
	Category string      `json:"category,omitempty"`
	Synonyms synonymsDTO `json:"synonyms"`
}

func wordFrom(w *entity.Word) wordDTO {
	return wordDTO{
		ID:       w.ID,
		Slovak:   w.Slovak,
		English:  w.English,
		Category: w.Category,
		Synonyms: synonymsFrom(w.Synonyms),
	}
}

// Health reports service and database status.
func (h *Handler) Health(c *gin.Context) {
	dbState := "connected"
	if h.ping == nil {
		dbState = "disconnected"
	} else if err := h.ping(); err != nil {
		dbState = "disconnected"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"database":  dbState,
	})
}

// WordGroups returns all words keyed by category for the group toggles.
func (h *Handler) WordGroups(c *gin.Context) {
	groups, err := h.words.Groups(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	type groupDTO struct {
		Name    string    `json:"name"`
		Enabled bool      `json:"enabled"`
		Words   []wordDTO `json:"words"`
	}
	out := make(map[string]groupDTO, len(groups))
	for category, group := range groups {
		dto := groupDTO{Name: group.Name, Enabled: group.Enabled, Words: make([]wordDTO, 0, len(group.Words))}
		for _, w := range group.Words {
			word := wordFrom(w)
			word.Category = "" // redundant inside its group
			dto.Words = append(dto.Words, word)
		}
		out[category] = dto
	}
	c.JSON(http.StatusOK, out)
}

type createWordRequest struct {
	Slovak   string      `json:"slovak"`
	English  string      `json:"english"`
	Category string      `json:"category"`
	Synonyms synonymsDTO `json:"synonyms"`
}

// CreateWord inserts one word with optional synonyms.
func (h *Handler) CreateWord(c *gin.Context) {
	var req createWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.Slovak == "" || req.English == "" || req.Category == "" {
		badRequest(c, "missing required fields: slovak, english, category")
		return
	}

	created, err := h.words.Create(c.Request.Context(), &entity.Word{
		Slovak:   req.Slovak,
		English:  req.English,
		Category: req.Category,
		Synonyms: req.Synonyms.toEntity(),
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Word created successfully",
		"word":    wordFrom(created),
	})
}

type updateWordRequest struct {
	Slovak   *string      `json:"slovak"`
	English  *string      `json:"english"`
	Category *string      `json:"category"`
	Synonyms *synonymsDTO `json:"synonyms"`
}

// UpdateWord applies a partial update; a synonyms field replaces the stored
// lists.
func (h *Handler) UpdateWord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid word id")
		return
	}
	var req updateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	update := usecase.WordUpdate{
		Slovak:   req.Slovak,
		English:  req.English,
		Category: req.Category,
	}
	if req.Synonyms != nil {
		set := req.Synonyms.toEntity()
		update.Synonyms = &set
	}

	if err := h.words.Update(c.Request.Context(), id, update); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Word updated successfully"})
}

// DeleteWord removes a word; its synonyms and stats go with it.
func (h *Handler) DeleteWord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid word id")
		return
	}
	if err := h.words.Delete(c.Request.Context(), id); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Word deleted successfully", "deletedCount": 1})
}

// CategoryStats summarises stored words per category.
func (h *Handler) CategoryStats(c *gin.Context) {
	stats, err := h.words.CategoryStats(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	type statDTO struct {
		Category          string `json:"category"`
		WordCount         int    `json:"wordCount"`
		WordsWithSynonyms int    `json:"wordsWithSynonyms"`
	}
	out := make([]statDTO, len(stats))
	for i, s := range stats {
		out[i] = statDTO{Category: s.Category, WordCount: s.WordCount, WordsWithSynonyms: s.WordsWithSynonyms}
	}
	c.JSON(http.StatusOK, out)
}

type importWordsRequest struct {
	Words []struct {
		Slovak   string      `json:"slovak"`
		English  string      `json:"english"`
		Synonyms synonymsDTO `json:"synonyms"`
	} `json:"words"`
	Category string `json:"category"`
}

// ImportWords bulk-inserts a JSON word list into one category.
func (h *Handler) ImportWords(c *gin.Context) {
	var req importWordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.Words == nil || req.Category == "" {
		badRequest(c, "invalid request, expected array of words and category")
		return
	}

	words := make([]*entity.Word, len(req.Words))
	for i, w := range req.Words {
		words[i] = &entity.Word{
			Slovak:   w.Slovak,
			English:  w.English,
			Synonyms: w.Synonyms.toEntity(),
		}
	}

	report, err := h.words.BulkImport(c.Request.Context(), words, req.Category)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	details := report.Details
	if details == nil {
		details = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Bulk import completed",
		"imported":     report.Imported,
		"errors":       report.Errors,
		"errorDetails": details,
	})
}
