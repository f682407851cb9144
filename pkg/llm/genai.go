package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/umputun/feedboard/pkg/config"
)

// GenAI is a completer backed by Google Gemini API
type GenAI struct {
	client *genai.Client
	config config.LLMConfig
}

// NewGenAI creates a Gemini completer. Endpoint, if set, overrides the API base URL.
func NewGenAI(ctx context.Context, cfg config.LLMConfig) (*GenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	clientCfg := &genai.ClientConfig{APIKey: cfg.APIKey, Backend: genai.BackendGeminiAPI}
	if cfg.Endpoint != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAI{client: client, config: cfg}, nil
}

// Complete generates content for the prompt and returns the text of the first candidate
func (g *GenAI) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	genCfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens), //nolint:gosec // max tokens comes from validated config
		Temperature:     genai.Ptr(float32(g.config.Temperature)),
	}
	if g.config.SystemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(g.config.SystemPrompt, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	return resp.Text(), nil
}
