package stampgen

// Provider identifies a model provider/backend.
type Provider string

const (
	ProviderGeminiAPI Provider = "gemini"
)

// ProviderConfig configures a specific provider.
type ProviderConfig struct {
	// Provider type
	Provider Provider

	// APIKey for authentication
	APIKey string

	// BaseURL for custom endpoints (optional)
	BaseURL string
}

// ModelCapabilities describes what features a model supports.
type ModelCapabilities struct {
	SupportsTextToImage    bool
	SupportsReferenceInput bool // Reference images guiding generation
	SupportsDescription    bool // Vision description of a reference image
	SupportsSessions       bool // Multi-turn consistency sessions

	// MaxReferenceImages is the max reference images per request
	MaxReferenceImages int
}

// RateLimits defines rate limiting parameters for a model.
type RateLimits struct {
	TokensPerMinute   int
	RequestsPerMinute int
}

// StickerConstraints defines the output configurations a model supports
// for stamp generation.
type StickerConstraints struct {
	SupportedAspectRatios []AspectRatio
	SupportedSizes        []ImageSize
}

// ModelInfo contains complete metadata for a model.
type ModelInfo struct {
	// Identity
	Name         string   // Public model name
	Provider     Provider // Which provider serves this model
	APIModelName string   // Actual API name

	// Capabilities
	Capabilities ModelCapabilities

	// Constraints
	StickerConstraints StickerConstraints

	// Rate Limits
	RateLimits RateLimits
}
