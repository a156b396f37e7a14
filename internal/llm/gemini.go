package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const geminiDefaultModel = "gemini-2.0-flash-exp"

// GeminiClient calls the Gemini API through the official SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed provider.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  geminiDefaultModel,
	}, nil
}

// Name identifies the provider in logs.
func (c *GeminiClient) Name() string {
	return "gemini"
}

// Generate sends the prompt, with the image inlined as JPEG bytes when
// present, and extracts the response text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, image []byte) (string, error) {
	parts := []*genai.Part{{Text: prompt}}
	if image != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: image},
		})
	}
	contents := []*genai.Content{{Parts: parts}}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}
	if result == nil {
		return "", fmt.Errorf("gemini: no response")
	}

	text, err := result.Text()
	if err != nil {
		return "", fmt.Errorf("gemini: extract text: %w", err)
	}
	return text, nil
}
