package stampgen

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mhpenta/stampgen/ratelimiter"
)

// BatchRequest describes one user-submitted sticker batch. A request is
// treated as immutable once submitted; Run never modifies it.
type BatchRequest struct {
	// Count is the number of stamps to generate. Bounded by the
	// orchestrator's BatchLimits.
	Count int

	// Description of the character to draw. Required unless Reference
	// is set, in which case a vision description of the reference
	// takes precedence.
	Description string

	// Texts are per-stamp captions. Item i uses Texts[i-1] when
	// present; missing entries produce caption-less stamps.
	Texts []string

	// StylePrompt overrides the default sticker style.
	StylePrompt string

	// PreserveConsistency asks the orchestrator to seed later stamps
	// with earlier successful ones. Best effort only.
	PreserveConsistency bool

	// Reference is an optional base character image.
	Reference *InputImage
}

// textFor returns the caption for a 1-based batch index.
func (r BatchRequest) textFor(index int) string {
	if index >= 1 && index <= len(r.Texts) {
		return r.Texts[index-1]
	}
	return ""
}

// Orchestrator runs sticker batches against a StampGenerator, capturing
// per-item outcomes. A failed item occupies its result slot; it never
// aborts the remaining items.
type Orchestrator struct {
	gen StampGenerator

	logger       *slog.Logger
	storage      Storage
	limits       BatchLimits
	concurrency  int
	onResult     func(StampResult)
	estimator    TokenEstimator
	rateLimiters map[Model]ratelimiter.Limiter
	defaultModel Model
}

// NewOrchestrator creates an Orchestrator for the given generator.
// Rate limiters are created from the generator's model definitions;
// models without published limits run unthrottled.
func NewOrchestrator(gen StampGenerator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:          gen,
		logger:       slog.Default(),
		limits:       DefaultBatchLimits,
		concurrency:  1,
		estimator:    NewSimpleTokenEstimator(),
		rateLimiters: make(map[Model]ratelimiter.Limiter),
	}

	models := gen.Models()
	if len(models) > 0 {
		o.defaultModel = Model(models[0].Name)
	}
	for _, info := range models {
		if info.RateLimits.TokensPerMinute > 0 || info.RateLimits.RequestsPerMinute > 0 {
			o.rateLimiters[Model(info.Name)] = ratelimiter.New(
				info.RateLimits.TokensPerMinute,
				info.RateLimits.RequestsPerMinute,
			)
		}
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Run executes one batch. It validates the request before any external
// call and then issues one generation call per index 1..Count. The
// returned slice always holds exactly Count results in index order;
// the error is non-nil only for invalid requests.
func (o *Orchestrator) Run(ctx context.Context, req BatchRequest, cfg *StickerConfig) ([]StampResult, error) {
	if err := o.limits.Validate(req); err != nil {
		return nil, err
	}

	if cfg == nil {
		cfg = DefaultConfig()
	}

	start := time.Now()
	o.logger.Debug("starting sticker batch",
		"count", req.Count,
		"consistency", req.PreserveConsistency,
		"has_reference", req.Reference != nil,
	)

	description := o.resolveDescription(ctx, req, cfg)
	style := req.StylePrompt
	if style == "" {
		style = DefaultStylePrompt
	}

	var results []StampResult
	if o.concurrency > 1 {
		results = o.runParallel(ctx, req, cfg, description, style)
	} else {
		results = o.runSequential(ctx, req, cfg, description, style)
	}

	o.logger.Info("sticker batch completed",
		"requested", req.Count,
		"succeeded", CountSuccesses(results),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return results, nil
}

// RunAndPack runs the batch and packs the successful stamps into a zip
// archive. The results are returned alongside the archive so callers
// can report per-item failures; the error is ErrEmptyBatch when every
// item failed.
func (o *Orchestrator) RunAndPack(ctx context.Context, req BatchRequest, cfg *StickerConfig) ([]byte, []StampResult, error) {
	results, err := o.Run(ctx, req, cfg)
	if err != nil {
		return nil, nil, err
	}

	archive, err := Pack(results)
	if err != nil {
		return nil, results, err
	}
	return archive, results, nil
}

// SaveBatch saves the successful stamps of a batch to the configured
// storage backend. If no storage is configured, returns
// ErrStorageNotConfigured.
func (o *Orchestrator) SaveBatch(ctx context.Context, results []StampResult, basePath string) ([]StorageResult, error) {
	return SaveBatch(ctx, o.storage, results, basePath)
}

// resolveDescription picks the character description for a batch. When a
// reference image is present the vision step produces the description;
// a failing vision call falls back to the request's own description and
// never fails the batch.
func (o *Orchestrator) resolveDescription(ctx context.Context, req BatchRequest, cfg *StickerConfig) string {
	if req.Reference == nil {
		return req.Description
	}

	desc, err := o.gen.Describe(ctx, *req.Reference, cfg)
	if err != nil {
		o.logger.Warn("reference description failed, using fallback",
			"error", err.Error(),
		)
		if req.Description != "" {
			return req.Description
		}
		return DefaultCharacterDescription
	}
	return desc
}

// runSequential generates stamps one at a time. With consistency enabled
// it prefers a provider session; otherwise the most recent successful
// stamp is fed back as an extra reference.
func (o *Orchestrator) runSequential(ctx context.Context, req BatchRequest, cfg *StickerConfig, description, style string) []StampResult {
	var session Session
	if req.PreserveConsistency {
		if cg, ok := o.gen.(ConsistentStampGenerator); ok {
			session = cg.StartSession()
		}
	}

	results := make([]StampResult, req.Count)
	var lastSuccess *GeneratedImage

	for i := 1; i <= req.Count; i++ {
		text := req.textFor(i)
		prompt := BuildStickerPrompt(description, text, style)

		refs := make([]InputImage, 0, 2)
		if req.Reference != nil {
			// In a session the reference only needs to be sent on the
			// first turn; it stays in the model context afterwards.
			if session == nil || i == 1 {
				refs = append(refs, *req.Reference)
			}
		}
		if session == nil && req.PreserveConsistency && lastSuccess != nil {
			refs = append(refs, InputImage{Data: lastSuccess.Data, MIMEType: lastSuccess.MIMEType})
		}

		img, err := o.generateOne(ctx, session, prompt, refs, cfg)
		results[i-1] = o.record(i, text, img, err)
		if err == nil {
			lastSuccess = img
		}
	}

	return results
}

// runParallel fans the batch out over a bounded worker pool. Each item
// writes to its own slot, so no ordering is needed beyond the original
// index. Consistency seeding degrades to reference-only here; "previous
// stamp" has no stable meaning under concurrency.
func (o *Orchestrator) runParallel(ctx context.Context, req BatchRequest, cfg *StickerConfig, description, style string) []StampResult {
	results := make([]StampResult, req.Count)

	var refs []InputImage
	if req.Reference != nil {
		refs = []InputImage{*req.Reference}
	}

	sem := make(chan struct{}, o.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex // guards the progress hook

	for i := 1; i <= req.Count; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			text := req.textFor(index)
			prompt := BuildStickerPrompt(description, text, style)

			img, err := o.generateOne(ctx, nil, prompt, refs, cfg)

			mu.Lock()
			results[index-1] = o.record(index, text, img, err)
			mu.Unlock()
		}(i)
	}

	wg.Wait()
	return results
}

// generateOne performs the rate-limit check and a single generation call.
func (o *Orchestrator) generateOne(ctx context.Context, session Session, prompt string, refs []InputImage, cfg *StickerConfig) (*GeneratedImage, error) {
	model := o.resolveModel(cfg)

	if err := o.checkRateLimit(ctx, model, cfg, prompt, len(refs)); err != nil {
		o.logger.Warn("rate limit hit",
			"model", string(model),
			"error", err.Error(),
		)
		return nil, err
	}

	if session != nil {
		return session.Generate(ctx, prompt, refs, cfg)
	}
	if len(refs) > 0 {
		return o.gen.GenerateWithReferences(ctx, refs, prompt, cfg)
	}
	return o.gen.Generate(ctx, prompt, cfg)
}

// record builds the result for one slot, logs it, and fires the
// progress hook.
func (o *Orchestrator) record(index int, text string, img *GeneratedImage, err error) StampResult {
	var result StampResult
	if err != nil {
		o.logger.Error("stamp generation failed",
			"index", index,
			"error", err.Error(),
		)
		result = failureResult(index, text, err)
	} else {
		attrs := []any{"index", index, "bytes", len(img.Data)}
		if img.Usage != nil {
			attrs = append(attrs, "total_tokens", img.Usage.TotalTokens)
		}
		o.logger.Debug("stamp generated", attrs...)
		result = successResult(index, text, img)
	}

	if o.onResult != nil {
		o.onResult(result)
	}
	return result
}

// checkRateLimit checks model rate limits and optionally waits.
func (o *Orchestrator) checkRateLimit(ctx context.Context, model Model, cfg *StickerConfig, prompt string, refCount int) error {
	const tokenBuffer = 100

	limiter := o.rateLimiters[model]
	if limiter == nil {
		return nil
	}

	estimatedTokens := o.estimator.EstimateTokens(prompt, refCount) + tokenBuffer

	if cfg.WaitOnRateLimit {
		return limiter.WaitAndConsume(ctx, estimatedTokens, cfg.MaxWaitDuration)
	}

	if !limiter.TryConsume(estimatedTokens) {
		return &RateLimitError{
			RetryAfter: limiter.TimeUntilAvailable(estimatedTokens),
			LimitType:  "tokens",
			Model:      string(model),
		}
	}

	return nil
}

// resolveModel determines the model a call will be billed against.
func (o *Orchestrator) resolveModel(cfg *StickerConfig) Model {
	if cfg != nil && cfg.Model != "" {
		return cfg.Model
	}
	return o.defaultModel
}

// Close releases the underlying generator's resources.
func (o *Orchestrator) Close() error {
	return o.gen.Close()
}
