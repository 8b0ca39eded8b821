// Package openai implements the translation oracle on the OpenAI chat
// completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/michalkratky/slovicka/internal/entity"
	"github.com/michalkratky/slovicka/internal/usecase"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-3.5-turbo"
	defaultTimeout = 30 * time.Second

	// Low temperature keeps verdicts consistent across repeated asks.
	temperature = 0.3
	maxTokens   = 500
	// defaultConfidence fills in when the model omits the confidence field.
	defaultConfidence = 0.8
)

// Config carries the API settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client calls the chat completions endpoint and parses the structured
// verdict out of the reply.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

// New builds a Client; it errors when no API key is configured so the caller
// can decide to run without an oracle.
func New(cfg Config, logger *logrus.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openai: API key is not configured")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

// Model reports the chat model the client was configured with.
func (c *Client) Model() string {
	return c.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type verdictPayload struct {
	IsValid     bool     `json:"isValid"`
	Explanation string   `json:"explanation"`
	Confidence  *float64 `json:"confidence"`
}

// Validate asks the model whether the candidate is an acceptable translation
// and returns its structured verdict.
func (c *Client) Validate(ctx context.Context, req *usecase.OracleRequest) (*usecase.OracleVerdict, error) {
	body, err := json.Marshal(chatRequest{
		Model:          c.model,
		Messages:       buildMessages(req),
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call openai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("openai returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	var verdict verdictPayload
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &verdict); err != nil {
		return nil, fmt.Errorf("decode verdict: %w", err)
	}

	confidence := defaultConfidence
	if verdict.Confidence != nil {
		confidence = *verdict.Confidence
	}
	c.logger.WithFields(logrus.Fields{
		"candidate": req.Candidate,
		"valid":     verdict.IsValid,
	}).Debug("translation verdict received")

	return &usecase.OracleVerdict{
		Valid:       verdict.IsValid,
		Confidence:  confidence,
		Explanation: verdict.Explanation,
	}, nil
}

func buildMessages(req *usecase.OracleRequest) []chatMessage {
	sourceLang, targetLang := languageNames(req.TargetLanguage)

	synonymsText := ""
	if len(req.ExistingSynonyms) > 0 {
		synonymsText = fmt.Sprintf("Known synonyms for this word: %s.\n", strings.Join(req.ExistingSynonyms, ", "))
	}

	system := fmt.Sprintf(
		"You are a bilingual %s-%s language expert. Your task is to determine if a translation is valid.",
		sourceLang, targetLang)

	user := fmt.Sprintf(`I'm translating from %[1]s to %[2]s.

The %[1]s word is: %[3]q
The known correct %[2]s translation is: %[4]q
%[5]s
The user provided this translation: %[6]q

Is the user's translation a valid alternative translation or synonym for %[3]q in %[2]s?
Please consider:
1. Meaning - does it convey the same meaning?
2. Usage - would it be used in the same context?
3. Formality - is it appropriate for the same situations?

Respond with a JSON object with these fields:
- isValid (boolean): true if it's a valid translation, false otherwise
- explanation (string): brief explanation of your reasoning
- confidence (number): your confidence in this assessment from 0 to 1

Only provide the JSON response with no other text.`,
		sourceLang, targetLang, req.SourceWord, req.KnownTranslation, synonymsText, req.Candidate)

	return []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

func languageNames(target entity.Language) (source, dest string) {
	if target == entity.LanguageSlovak {
		return "English", "Slovak"
	}
	return "Slovak", "English"
}
