package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/infinite-realms/engine/pkg/state"
	"github.com/infinite-realms/engine/pkg/story"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	DefaultGeminiTemperature = 0.8

	// defaultGuideModel is a cheaper, faster model for guide chat,
	// which needs low latency and no structured output.
	defaultGuideModel = "gemini-flash-lite-latest"
)

// GeminiService implements NarratorService against the Google
// Generative Language API.
type GeminiService struct {
	apiKey     string
	modelName  string
	guideModel string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ NarratorService = (*GeminiService)(nil)

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
}

type geminiGenerateRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewGeminiService creates a narrator backed by the given Gemini model.
func NewGeminiService(apiKey, modelName string, logger *slog.Logger) *GeminiService {
	return &GeminiService{
		apiKey:     apiKey,
		modelName:  modelName,
		guideModel: defaultGuideModel,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

// GenerateSegment requests the next story segment. The model is asked
// for strict JSON; anything that fails to decode or validate is an
// error, and the caller falls back to story.FallbackSegment().
func (g *GeminiService) GenerateSegment(ctx context.Context, previousNarrative, action string, gs *state.GameState) (*story.Segment, error) {
	temperature := DefaultGeminiTemperature
	reqBody := geminiGenerateRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: SystemInstruction}},
		},
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: BuildTurnContext(previousNarrative, action, gs)}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      &temperature,
			ResponseMimeType: "application/json",
		},
	}

	raw, err := g.generateContent(ctx, g.modelName, reqBody)
	if err != nil {
		return nil, err
	}

	var seg story.Segment
	if err := json.Unmarshal([]byte(raw), &seg); err != nil {
		return nil, fmt.Errorf("failed to parse segment from model response: %w", err)
	}
	if err := seg.Validate(); err != nil {
		return nil, fmt.Errorf("model returned invalid segment: %w", err)
	}
	seg.Sanitize()
	return &seg, nil
}

// ChatWithGuide answers a player question in character. Plain text
// request, no JSON schema; a blank completion becomes the canned
// silent reply.
func (g *GeminiService) ChatWithGuide(ctx context.Context, userMessage, currentNarrative string) (string, error) {
	req := geminiGenerateRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: BuildGuideContext(userMessage, currentNarrative)}},
		}},
	}

	raw, err := g.generateContent(ctx, g.guideModel, req)
	if err != nil {
		return "", err
	}
	reply := strings.TrimSpace(raw)
	if reply == "" {
		return GuideSilentReply, nil
	}
	return reply, nil
}

// Ping issues a minimal generation request to verify the API is
// reachable and the key is valid.
func (g *GeminiService) Ping(ctx context.Context) error {
	req := geminiGenerateRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: "ping"}},
		}},
	}
	_, err := g.generateContent(ctx, g.modelName, req)
	return err
}

func (g *GeminiService) generateContent(ctx context.Context, modelName string, body geminiGenerateRequest) (string, error) {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", geminiBaseURL, modelName)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var geminiResp geminiGenerateResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if geminiResp.Error != nil {
		return "", fmt.Errorf("gemini API error %d (%s): %s", geminiResp.Error.Code, geminiResp.Error.Status, geminiResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API returned status %d: %s", resp.StatusCode, string(respBody))
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini API returned no candidates")
	}

	var text strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("gemini API returned empty text")
	}
	return text.String(), nil
}
