// Package llm holds the generative-model adapters behind the AI proxy
// endpoints. Each provider takes a text prompt with an optional image and
// returns the model's raw text output.
package llm

import "context"

// Provider is a text+image generation backend.
type Provider interface {
	// Generate returns the model's text for the prompt. A non-nil image is
	// sent as an inline JPEG alongside the text.
	Generate(ctx context.Context, prompt string, image []byte) (string, error)

	// Name identifies the provider in logs.
	Name() string
}
