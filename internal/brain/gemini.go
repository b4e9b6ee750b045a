// Package brain wraps the Gemini generative call that turns one utterance of
// player audio plus a context prompt into reply text.
package brain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// FallbackReply is the fixed user-facing reply when generation fails. The
// game client never sees a raw provider error.
const FallbackReply = "Sorry, I couldn't process that. Could you try again?"

// Generator produces reply text for a prompt plus a WAV audio attachment.
type Generator interface {
	// Generate returns reply text. On provider failure the returned text is
	// FallbackReply and err carries the cause for logging and metrics.
	Generate(ctx context.Context, prompt string, wav []byte) (string, error)
}

// GeminiConfig selects the backend and the model preference order.
type GeminiConfig struct {
	// APIKey selects the Gemini API backend when set.
	APIKey string
	// Project and Location select the Vertex AI backend, authenticated via
	// application default credentials.
	Project  string
	Location string
	// ModelCandidates is tried in order at startup; the first model that
	// resolves is used for the lifetime of the process.
	ModelCandidates []string
	// RequestTimeout bounds a single generate call.
	RequestTimeout time.Duration
}

// Gemini is a Generator backed by google.golang.org/genai.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGemini connects to the configured backend and resolves the first usable
// model from the candidate list. Failure to resolve any candidate is a fatal
// startup error.
func NewGemini(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cc := &genai.ClientConfig{}
	switch {
	case strings.TrimSpace(cfg.APIKey) != "":
		cc.APIKey = cfg.APIKey
		cc.Backend = genai.BackendGeminiAPI
	case strings.TrimSpace(cfg.Project) != "":
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
	default:
		return nil, fmt.Errorf("brain: neither GEMINI_API_KEY nor GOOGLE_CLOUD_PROJECT configured")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("brain: create client: %w", err)
	}

	probe := func(ctx context.Context, name string) error {
		_, err := client.Models.Get(ctx, name, nil)
		return err
	}
	model, err := pickModel(ctx, probe, cfg.ModelCandidates, logger)
	if err != nil {
		return nil, err
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	logger.Info("gemini model initialized", zap.String("model", model))
	return &Gemini{client: client, model: model, timeout: timeout, logger: logger.With(zap.String("component", "brain.gemini"))}, nil
}

// Model returns the resolved model identifier.
func (g *Gemini) Model() string { return g.model }

// Generate submits the prompt and the WAV attachment and returns the model's
// text completion. Provider failures degrade to FallbackReply.
func (g *Gemini) Generate(ctx context.Context, prompt string, wav []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(wav, "audio/wav"),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		g.logger.Warn("generate failed", zap.Error(err))
		return FallbackReply, fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		g.logger.Warn("generate returned empty completion")
		return FallbackReply, fmt.Errorf("empty completion from %s", g.model)
	}
	return text, nil
}

// pickModel resolves the first working model from an ordered candidate list.
// No hidden retry state: one pass, first success wins.
func pickModel(ctx context.Context, probe func(context.Context, string) error, candidates []string, logger *zap.Logger) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("brain: empty model candidate list")
	}
	var failures []string
	for _, name := range candidates {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := probe(ctx, name); err != nil {
			logger.Warn("model candidate unavailable", zap.String("model", name), zap.Error(err))
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		return name, nil
	}
	return "", fmt.Errorf("brain: no usable model among candidates: %s", strings.Join(failures, "; "))
}
