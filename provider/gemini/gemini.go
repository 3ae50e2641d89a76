// Package gemini provides a StampGenerator implementation using Google's
// Gemini API.
//
// This provider uses the Gemini API backend via the official Go SDK:
// https://github.com/googleapis/go-genai
//
// For Vertex AI or other Google Cloud backends, a separate provider
// implementation could be created using the same SDK with a different
// backend configuration.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mhpenta/stampgen"
	"google.golang.org/genai"
)

// Generator implements stampgen.StampGenerator using Google's Gemini API.
type Generator struct {
	client         *genai.Client
	safetySettings []*genai.SafetySetting
	mu             sync.RWMutex
}

// Ensure Generator implements the interfaces.
var (
	_ stampgen.StampGenerator           = (*Generator)(nil)
	_ stampgen.ConsistentStampGenerator = (*Generator)(nil)
)

// New creates a new Generator from a ProviderConfig.
func New(ctx context.Context, config *stampgen.ProviderConfig) (*Generator, error) {
	if config == nil {
		config = &stampgen.ProviderConfig{}
	}

	clientCfg := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	}

	if config.APIKey != "" {
		clientCfg.APIKey = config.APIKey
	}
	// If APIKey is empty, the SDK will try GOOGLE_API_KEY or GEMINI_API_KEY env vars

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Generator{
		client: client,
	}, nil
}

// NewWithAPIKey creates a generator with an API key for Gemini API.
func NewWithAPIKey(ctx context.Context, apiKey string) (*Generator, error) {
	return New(ctx, &stampgen.ProviderConfig{
		Provider: stampgen.ProviderGeminiAPI,
		APIKey:   apiKey,
	})
}

// SetSafetySettings configures default safety settings for all requests.
// These can be overridden per-request via StickerConfig.SafetySettings.
func (g *Generator) SetSafetySettings(settings []stampgen.SafetySetting) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.safetySettings = convertSafetySettings(settings)
	return g
}

// Generate creates a single stamp image from a text prompt.
func (g *Generator) Generate(ctx context.Context, prompt string, cfg *stampgen.StickerConfig) (*stampgen.GeneratedImage, error) {
	return g.GenerateWithReferences(ctx, nil, prompt, cfg)
}

// GenerateWithReferences creates a stamp image guided by reference images.
func (g *Generator) GenerateWithReferences(ctx context.Context, refs []stampgen.InputImage, prompt string, cfg *stampgen.StickerConfig) (*stampgen.GeneratedImage, error) {
	if prompt == "" {
		return nil, errors.New("prompt cannot be empty")
	}

	if cfg == nil {
		cfg = stampgen.DefaultConfig()
	}

	modelName := g.resolveModel(cfg)
	contents := []*genai.Content{buildUserContent(refs, prompt)}
	genConfig := g.buildGenerateContentConfig(cfg)

	result, err := g.client.Models.GenerateContent(ctx, modelName, contents, genConfig)
	if err != nil {
		if rlErr := checkRateLimitError(err, modelName); rlErr != nil {
			return nil, rlErr
		}
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return parseImage(result)
}

// Describe produces a character description from a reference image using
// the vision model.
func (g *Generator) Describe(ctx context.Context, image stampgen.InputImage, cfg *stampgen.StickerConfig) (string, error) {
	if err := stampgen.ValidateInputImage(image); err != nil {
		return "", err
	}

	modelName := APIModelDescribe
	if cfg != nil && cfg.DescribeModel != "" {
		modelName = cfg.DescribeModel.String()
	}

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: stampgen.DescribeInstruction},
				{InlineData: &genai.Blob{Data: image.Data, MIMEType: image.MIMEType}},
			},
		},
	}

	result, err := g.client.Models.GenerateContent(ctx, modelName, contents, nil)
	if err != nil {
		if rlErr := checkRateLimitError(err, modelName); rlErr != nil {
			return "", rlErr
		}
		return "", fmt.Errorf("describe failed: %w", err)
	}

	text := collectText(result)
	if text == "" {
		return "", errors.New("no description in response")
	}
	return text, nil
}

// Models returns the model definitions supported by this provider.
// The first model (flash-image) is the default.
func (g *Generator) Models() []stampgen.ModelInfo {
	return []stampgen.ModelInfo{
		FlashImageInfo,
		ProImageInfo,
	}
}

// Close releases any resources held by the generator.
func (g *Generator) Close() error {
	// The genai.Client doesn't require explicit closing in the current SDK
	return nil
}

// StartSession begins a new consistency session. Every generated stamp
// stays in the session context so later turns can reuse the character.
func (g *Generator) StartSession() stampgen.Session {
	return &consistencySession{generator: g}
}

// resolveModel determines which API model name to use.
// Falls back to the first model (default) if none specified.
func (g *Generator) resolveModel(cfg *stampgen.StickerConfig) string {
	if cfg != nil && cfg.Model != "" {
		for _, info := range g.Models() {
			if info.Name == cfg.Model.String() {
				return info.APIModelName
			}
		}
		return cfg.Model.String()
	}
	return g.Models()[0].APIModelName
}

// buildGenerateContentConfig converts our config to Gemini's
// GenerateContentConfig format.
func (g *Generator) buildGenerateContentConfig(cfg *stampgen.StickerConfig) *genai.GenerateContentConfig {
	genConfig := &genai.GenerateContentConfig{
		// Enable image output
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	imageConfig := &genai.ImageConfig{}
	if cfg.Size != "" {
		imageConfig.ImageSize = cfg.Size.String()
	}
	if cfg.AspectRatio != "" {
		imageConfig.AspectRatio = cfg.AspectRatio.String()
	}
	genConfig.ImageConfig = imageConfig

	if cfg.Temperature != nil {
		genConfig.Temperature = genai.Ptr(float32(*cfg.Temperature))
	}

	// Safety settings: per-request overrides provider defaults
	g.mu.RLock()
	defaults := g.safetySettings
	g.mu.RUnlock()
	if len(cfg.SafetySettings) > 0 {
		genConfig.SafetySettings = convertSafetySettings(cfg.SafetySettings)
	} else if len(defaults) > 0 {
		genConfig.SafetySettings = defaults
	}

	return genConfig
}

// buildUserContent assembles a user turn from reference images and a
// prompt. References precede the text, matching the editing convention.
func buildUserContent(refs []stampgen.InputImage, prompt string) *genai.Content {
	parts := make([]*genai.Part, 0, len(refs)+1)
	for _, ref := range refs {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				Data:     ref.Data,
				MIMEType: ref.MIMEType,
			},
		})
	}
	parts = append(parts, &genai.Part{Text: prompt})

	return &genai.Content{Role: "user", Parts: parts}
}

// convertSafetySettings converts our SafetySettings to Gemini's format.
func convertSafetySettings(settings []stampgen.SafetySetting) []*genai.SafetySetting {
	result := make([]*genai.SafetySetting, 0, len(settings))
	for _, s := range settings {
		result = append(result, &genai.SafetySetting{
			Category:  genai.HarmCategory(s.Category),
			Threshold: genai.HarmBlockThreshold(s.Threshold),
		})
	}
	return result
}

// parseImage extracts the first image part of a response. Text parts are
// ignored; the batch workflow only wants the picture.
func parseImage(result *genai.GenerateContentResponse) (*stampgen.GeneratedImage, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, errors.New("empty response from model")
	}

	var usage *stampgen.UsageMetadata
	if result.UsageMetadata != nil {
		usage = &stampgen.UsageMetadata{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CandidatesTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != nil {
				return &stampgen.GeneratedImage{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
					Usage:    usage,
				}, nil
			}
		}
	}

	return nil, errors.New("no image data in response")
}

// collectText joins the text parts of a response.
func collectText(result *genai.GenerateContentResponse) string {
	if result == nil {
		return ""
	}

	var parts []string
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" && !part.Thought {
				parts = append(parts, part.Text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// consistencySession keeps the full turn history so the model sees every
// previously generated stamp when drawing the next one.
type consistencySession struct {
	generator *Generator
	contents  []*genai.Content

	mu sync.Mutex
}

// Generate produces the next stamp within the session.
func (s *consistencySession) Generate(ctx context.Context, prompt string, refs []stampgen.InputImage, cfg *stampgen.StickerConfig) (*stampgen.GeneratedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg == nil {
		cfg = stampgen.DefaultConfig()
	}

	modelName := s.generator.resolveModel(cfg)

	userContent := buildUserContent(refs, prompt)
	turn := append(append([]*genai.Content(nil), s.contents...), userContent)

	genConfig := s.generator.buildGenerateContentConfig(cfg)
	result, err := s.generator.client.Models.GenerateContent(ctx, modelName, turn, genConfig)
	if err != nil {
		if rlErr := checkRateLimitError(err, modelName); rlErr != nil {
			return nil, rlErr
		}
		return nil, fmt.Errorf("session generation failed: %w", err)
	}

	img, err := parseImage(result)
	if err != nil {
		// A failed turn is not recorded; the next stamp retries from
		// the last good context.
		return nil, err
	}

	s.contents = append(s.contents, userContent)
	if len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		s.contents = append(s.contents, result.Candidates[0].Content)
	}

	return img, nil
}

// Clear resets the session context.
func (s *consistencySession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contents = nil
}

// checkRateLimitError checks if an error from the Gemini API is a rate
// limit error. If so, it wraps it in a RateLimitError for standardized
// handling; otherwise returns nil.
func checkRateLimitError(err error, model string) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return nil
	}

	if apiErr.Code != 429 && apiErr.Status != "RESOURCE_EXHAUSTED" {
		return nil
	}

	return &stampgen.RateLimitError{
		RetryAfter: 60 * time.Second, // Default; API doesn't reliably provide Retry-After
		LimitType:  "requests",
		Model:      model,
		Err:        err,
	}
}
