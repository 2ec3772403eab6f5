package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dev-match/internal/config"
	"dev-match/internal/pkg/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	maxOutputTokens = 2000
	temperature     = 0.7
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini answers evaluator prompts through the Google GenAI SDK, either with
// an API key or through Vertex AI.
type Gemini struct {
	models contentGenerator
	model  string
	logger *zap.Logger
}

func NewGemini(ctx context.Context, cfg config.OracleConfig, log *zap.Logger) (*Gemini, error) {
	cc := &genai.ClientConfig{}
	if cfg.UseVertex() {
		cc.Backend = genai.BackendVertexAI
		cc.Project = strings.TrimSpace(cfg.Project)
		cc.Location = strings.TrimSpace(cfg.Location)
	} else {
		apiKey := strings.TrimSpace(cfg.APIKey)
		if apiKey == "" {
			return nil, errors.New("gemini api key is required")
		}
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = apiKey
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	log = logger.OrNop(log)
	log.Info("oracle client ready",
		zap.String("model", cfg.Model),
		zap.Bool("vertex", cfg.UseVertex()),
		zap.String("location", cc.Location),
	)
	return newGemini(client.Models, cfg.Model, log), nil
}

func newGemini(models contentGenerator, model string, log *zap.Logger) *Gemini {
	return &Gemini{models: models, model: strings.TrimSpace(model), logger: logger.OrNop(log)}
}

func (g *Gemini) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

// Generate sends one prompt with the given system instruction and returns the
// concatenated text parts of the reply.
func (g *Gemini) Generate(ctx context.Context, system, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini oracle is not initialized")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		MaxOutputTokens: maxOutputTokens,
	}
	if system = strings.TrimSpace(system); system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", errors.New("gemini api returned no response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}
