package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mukujayCS/Apartment-Hunter/internal/config"
	"github.com/mukujayCS/Apartment-Hunter/internal/model"
)

// LLM is the text-in/text-out generative service consumed by the
// analyzers. Stateless; every failure is handled at the call site.
type LLM interface {
	Enabled() bool
	GenerateText(ctx context.Context, modelName, prompt string) (string, error)
	GenerateWithImages(ctx context.Context, modelName, prompt string, images []model.ImageAttachment) (string, error)
}

// GeminiClient calls the Gemini API over plain HTTP
type GeminiClient struct {
	config *config.AIConfig
	client *http.Client
	logger *zap.Logger
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(cfg *config.AIConfig, logger *zap.Logger) *GeminiClient {
	return &GeminiClient{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

// Enabled reports whether an API key is configured. When false, every
// analyzer uses its deterministic mock output instead of calling out.
func (c *GeminiClient) Enabled() bool {
	return c.config.IsEnabled()
}

// GenerateText sends a text-only prompt to the given model
func (c *GeminiClient) GenerateText(ctx context.Context, modelName, prompt string) (string, error) {
	parts := []map[string]interface{}{
		{"text": prompt},
	}
	return c.generate(ctx, modelName, parts)
}

// GenerateWithImages sends a prompt plus inline images to the given model
func (c *GeminiClient) GenerateWithImages(ctx context.Context, modelName, prompt string, images []model.ImageAttachment) (string, error) {
	parts := []map[string]interface{}{
		{"text": prompt},
	}
	for _, img := range images {
		parts = append(parts, map[string]interface{}{
			"inline_data": map[string]string{
				"mime_type": img.MIMEType,
				"data":      base64.StdEncoding.EncodeToString(img.Data),
			},
		})
	}
	return c.generate(ctx, modelName, parts)
}

func (c *GeminiClient) generate(ctx context.Context, modelName string, parts []map[string]interface{}) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", c.config.ModelEndpoint(modelName), c.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("gemini call failed",
			zap.String("model", modelName),
			zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

// stripFences removes markdown code fences the model sometimes wraps
// JSON responses in, despite the JSON response mime type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= 2 {
		return s
	}
	return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
}
