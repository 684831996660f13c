package generator

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Provider sends a prompt to a generative model and returns its raw text.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Provider backed by the Gemini API. Responses are
// requested as JSON.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return result.Text(), nil
}
