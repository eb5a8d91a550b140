// Package vision calls the remote multimodal service. The caller walks an
// ordered list of candidate models with two image encodings per candidate,
// stopping on the first success.
package vision

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	apperrors "go-image-describer/internal/errors"
	"go-image-describer/pkg/models"
)

// ModelClient is the boundary to the remote AI service. It exists so the
// caller's chain logic can be tested against simulated outcomes.
type ModelClient interface {
	// GenerateDescription sends a prompt and image bytes to the named model
	// and returns the text it produced.
	GenerateDescription(ctx context.Context, model, promptText string, imageData []byte, mimeType string) (string, error)

	// ListModels enumerates the remote models visible to the API key.
	ListModels(ctx context.Context) ([]models.ModelInfo, error)
}

// GeminiClient implements ModelClient against the Gemini API.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a client authenticated with the given API key.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, apperrors.NewConfigurationError("Google API key is required", nil)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.NewRemoteError("failed to create Gemini client", err)
	}
	return &GeminiClient{client: client}, nil
}

// GenerateDescription issues one generateContent call with a text part and
// an inline image blob.
func (g *GeminiClient) GenerateDescription(ctx context.Context, model, promptText string, imageData []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: promptText},
				{InlineData: &genai.Blob{
					MIMEType: mimeType,
					Data:     imageData,
				}},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", err
	}

	text := extractResponseText(resp)
	if text == "" {
		return "", fmt.Errorf("model %s returned an empty response", model)
	}
	return text, nil
}

// ListModels returns the models reachable with the configured key, for the
// diagnostics surface.
func (g *GeminiClient) ListModels(ctx context.Context) ([]models.ModelInfo, error) {
	var out []models.ModelInfo
	for model, err := range g.client.Models.All(ctx) {
		if err != nil {
			return nil, apperrors.NewRemoteError("failed to list models", err)
		}
		out = append(out, models.ModelInfo{
			Name:             model.Name,
			DisplayName:      model.DisplayName,
			SupportedActions: model.SupportedActions,
		})
	}
	return out, nil
}

func extractResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
