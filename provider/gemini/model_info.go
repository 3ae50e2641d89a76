package gemini

import "github.com/mhpenta/stampgen"

// Model name constants - the actual API model names.
const (
	// APIModelFlashImage is the default image model for stamp batches.
	APIModelFlashImage = "gemini-2.5-flash-image"

	// APIModelProImage is the higher-quality image model.
	APIModelProImage = "gemini-3-pro-image-preview"

	// APIModelDescribe is the vision model used to describe reference
	// characters.
	APIModelDescribe = "gemini-2.5-flash"
)

var stickerConstraints = stampgen.StickerConstraints{
	SupportedAspectRatios: []stampgen.AspectRatio{
		stampgen.AspectRatio1x1,
		stampgen.AspectRatio4x3,
		stampgen.AspectRatio3x4,
	},
	SupportedSizes: []stampgen.ImageSize{
		stampgen.ImageSize1K,
		stampgen.ImageSize2K,
	},
}

// FlashImageInfo describes the default stamp model.
var FlashImageInfo = stampgen.ModelInfo{
	Name:         "flash-image",
	Provider:     stampgen.ProviderGeminiAPI,
	APIModelName: APIModelFlashImage,
	Capabilities: stampgen.ModelCapabilities{
		SupportsTextToImage:    true,
		SupportsReferenceInput: true,
		SupportsDescription:    true,
		SupportsSessions:       true,
		MaxReferenceImages:     3,
	},
	StickerConstraints: stickerConstraints,
	RateLimits: stampgen.RateLimits{
		TokensPerMinute:   1_000_000,
		RequestsPerMinute: 500,
	},
}

// ProImageInfo describes the higher-quality stamp model.
var ProImageInfo = stampgen.ModelInfo{
	Name:         "pro-image",
	Provider:     stampgen.ProviderGeminiAPI,
	APIModelName: APIModelProImage,
	Capabilities: stampgen.ModelCapabilities{
		SupportsTextToImage:    true,
		SupportsReferenceInput: true,
		SupportsDescription:    true,
		SupportsSessions:       true,
		MaxReferenceImages:     14,
	},
	StickerConstraints: stickerConstraints,
	RateLimits: stampgen.RateLimits{
		TokensPerMinute:   250_000,
		RequestsPerMinute: 20,
	},
}
