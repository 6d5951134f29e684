package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
)

type geminiGenerator struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// NewGemini creates a Generator for the given Gemini model id, rotating
// through the supplied API keys on quota errors.
func NewGemini(apiKeys []string, model string, log logger.Logger) Generator {
	return &geminiGenerator{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("%w: no gemini api keys configured", ErrInference)
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key := g.apiKeys[g.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("%w: gemini %s: %v", ErrInference, g.model, err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("%w: empty response from gemini %s", ErrInference, g.model)
	}

	return "", fmt.Errorf("%w: all api keys exhausted: %v", ErrInference, lastErr)
}

func (g *geminiGenerator) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
