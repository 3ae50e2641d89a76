package stampgen

import (
	"time"
)

// Model represents a specific image generation model.
type Model string

// String returns the model identifier.
func (m Model) String() string {
	return string(m)
}

// ImageSize represents the output resolution for generated stamps.
type ImageSize string

const (
	ImageSize1K ImageSize = "1K"
	ImageSize2K ImageSize = "2K"
)

// AspectRatio represents the aspect ratio for generated stamps.
// Sticker surfaces want square output; the other ratios exist for
// banner-style stamps.
type AspectRatio string

const (
	AspectRatio1x1  AspectRatio = "1:1"
	AspectRatio4x3  AspectRatio = "4:3"
	AspectRatio3x4  AspectRatio = "3:4"
	AspectRatioAuto AspectRatio = ""
)

// SafetyCategory represents a content safety category.
type SafetyCategory string

const (
	SafetyCategoryHarassment       SafetyCategory = "HARM_CATEGORY_HARASSMENT"
	SafetyCategoryHateSpeech       SafetyCategory = "HARM_CATEGORY_HATE_SPEECH"
	SafetyCategorySexuallyExplicit SafetyCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	SafetyCategoryDangerousContent SafetyCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// SafetyThreshold represents the blocking threshold for safety filters.
type SafetyThreshold string

const (
	SafetyThresholdBlockNone      SafetyThreshold = "BLOCK_NONE"
	SafetyThresholdBlockLowAndUp  SafetyThreshold = "BLOCK_LOW_AND_ABOVE"
	SafetyThresholdBlockMedAndUp  SafetyThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	SafetyThresholdBlockHighAndUp SafetyThreshold = "BLOCK_ONLY_HIGH"
)

// SafetySetting configures content filtering for a specific category.
type SafetySetting struct {
	Category  SafetyCategory
	Threshold SafetyThreshold
}

// StickerConfig holds per-call configuration for stamp generation.
type StickerConfig struct {
	// Model to use for generation (if empty, uses the provider's default)
	Model Model

	// DescribeModel is the vision model used for reference-image
	// description (if empty, uses the provider's default)
	DescribeModel Model

	// Size of the output image
	Size ImageSize

	// AspectRatio of the output image
	AspectRatio AspectRatio

	// Temperature controls randomness (0.0-2.0)
	Temperature *float32

	// SafetySettings for content filtering
	SafetySettings []SafetySetting

	// WaitOnRateLimit, if true, causes the orchestrator to wait and
	// retry the rate-limit check when a model limit is hit. If false,
	// the item is recorded as a Failure immediately.
	WaitOnRateLimit bool

	// MaxWaitDuration is the maximum time to wait when WaitOnRateLimit
	// is true. Zero means no limit.
	MaxWaitDuration time.Duration
}

// WithModel returns a copy of the config with the specified model.
func (c *StickerConfig) WithModel(model Model) *StickerConfig {
	if c == nil {
		return &StickerConfig{Model: model}
	}
	cX := *c
	cX.Model = model
	return &cX
}

// DefaultConfig returns a StickerConfig with sticker-friendly defaults:
// square output at 1K, temperature 1.0.
func DefaultConfig() *StickerConfig {
	temp := float32(1.0)
	return &StickerConfig{
		Size:        ImageSize1K,
		AspectRatio: AspectRatio1x1,
		Temperature: &temp,
	}
}

// InputImage represents a reference image supplied with a generation call.
type InputImage struct {
	// Data is the raw image bytes
	Data []byte

	// MIMEType of the image (e.g., "image/jpeg", "image/png")
	MIMEType string
}

// ImageSizeString returns the string representation for API calls.
func (s ImageSize) String() string {
	return string(s)
}

// AspectRatioString returns the string representation for API calls.
func (a AspectRatio) String() string {
	return string(a)
}
