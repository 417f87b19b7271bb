package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// GeminiImageService implements ImageService against the Imagen predict
// endpoint. Errors are returned to the caller but the turn orchestrator
// treats any failure as "no image this turn".
type GeminiImageService struct {
	apiKey     string
	modelName  string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ImageService = (*GeminiImageService)(nil)

type imagenPredictRequest struct {
	Instances []struct {
		Prompt string `json:"prompt"`
	} `json:"instances"`
	Parameters struct {
		SampleCount int    `json:"sampleCount"`
		AspectRatio string `json:"aspectRatio,omitempty"`
	} `json:"parameters"`
}

type imagenPredictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGeminiImageService creates a scene image generator backed by the
// given Imagen model.
func NewGeminiImageService(apiKey, modelName string, logger *slog.Logger) *GeminiImageService {
	return &GeminiImageService{
		apiKey:    apiKey,
		modelName: modelName,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// GenerateScene renders the prompt to a data URL. The art style suffix
// keeps scenes visually consistent across turns.
func (g *GeminiImageService) GenerateScene(ctx context.Context, prompt string) (string, error) {
	var req imagenPredictRequest
	req.Instances = append(req.Instances, struct {
		Prompt string `json:"prompt"`
	}{Prompt: fmt.Sprintf("%s. Art Style: %s", prompt, ArtStyle)})
	req.Parameters.SampleCount = 1
	req.Parameters.AspectRatio = "16:9"

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:predict", geminiBaseURL, g.modelName)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("x-goog-api-key", g.apiKey)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
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

	var predictResp imagenPredictResponse
	if err := json.Unmarshal(respBody, &predictResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if predictResp.Error != nil {
		return "", fmt.Errorf("imagen API error %d: %s", predictResp.Error.Code, predictResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("imagen API returned status %d", resp.StatusCode)
	}
	if len(predictResp.Predictions) == 0 || predictResp.Predictions[0].BytesBase64Encoded == "" {
		return "", nil
	}

	mime := predictResp.Predictions[0].MimeType
	if mime == "" {
		mime = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, predictResp.Predictions[0].BytesBase64Encoded), nil
}
