package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is used when GeminiConfig.Model is empty.
const DefaultModel = "gemini-2.0-flash"

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey      string
	Model       string
	MaxAttempts int // Including the first call
}

// Gemini produces suggestions with Google's Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	retry  backoff
}

// NewGemini creates a Gemini backend.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	retry := defaultBackoff()
	if cfg.MaxAttempts > 0 {
		retry.maxAttempts = cfg.MaxAttempts
	}
	retry.retryIf = isTransient
	retry.onRetry = func(attempt int, err error, delay time.Duration) {
		slog.Warn("retrying suggestion", "attempt", attempt, "delay", delay, "error", err)
	}

	return &Gemini{client: client, model: cfg.Model, retry: retry}, nil
}

// Name returns the backend name for logs.
func (g *Gemini) Name() string {
	return "gemini:" + g.model
}

// Suggest asks the model for a suggestion.
func (g *Gemini) Suggest(ctx context.Context, members []Member) (Suggestion, error) {
	prompt, err := RenderPrompt(members)
	if err != nil {
		return Suggestion{}, err
	}

	var text string
	err = g.retry.do(ctx, func(ctx context.Context) error {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), generateConfig())
		if err != nil {
			return err
		}
		text = resp.Text()
		return nil
	})
	if err != nil {
		return Suggestion{}, fmt.Errorf("generate suggestion: %w", err)
	}

	return parseReply(text)
}

func generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.9),
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionSchema,
		SafetySettings:   safetySettings,
	}
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"teamName": {
			Type:        genai.TypeString,
			Description: "A creative and cool team name for the group.",
		},
		"icebreakers": {
			Type:        genai.TypeArray,
			Description: "Fun and engaging icebreaker questions suitable for the team.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"teamName", "icebreakers"},
}

var safetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockLowAndAbove},
}

// parseReply decodes the model's JSON reply. Models sometimes wrap JSON in a
// markdown fence even in JSON mode, so a fence is stripped first.
func parseReply(text string) (Suggestion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Suggestion{}, ErrEmptyReply
	}
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return Suggestion{}, fmt.Errorf("decode suggestion reply: %w", err)
	}
	return s, nil
}

// isTransient reports whether a model error is worth retrying: rate limits
// and server-side failures.
func isTransient(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return transientStatus(apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return transientStatus(apiErrPtr.Code)
	}
	return false
}

func transientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
