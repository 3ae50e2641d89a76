package stampgen

import (
	"math"
)

// TokenEstimator approximates the token cost of a generation call so the
// rate limiter can be consulted before the call is made.
type TokenEstimator interface {
	EstimateTokens(prompt string, refImages int) int
}

// tokensPerReferenceImage is a rough per-image cost for inline reference
// images in a generation request.
const tokensPerReferenceImage = 258

// SimpleTokenEstimator - fast approximation of token usage for warnings
type SimpleTokenEstimator struct {
	SafetyMargin float64
}

func NewSimpleTokenEstimator() *SimpleTokenEstimator {
	return &SimpleTokenEstimator{
		SafetyMargin: 1.2,
	}
}

func (e *SimpleTokenEstimator) EstimateTokens(prompt string, refImages int) int {
	estimate := float64(refImages * tokensPerReferenceImage)

	if prompt != "" {
		charCount := len([]rune(prompt))
		estimate += float64(charCount) / 4.0
	}

	estimate *= e.SafetyMargin

	return int(math.Ceil(estimate)) + 3
}
