package stampgen

// StampStatus tags the outcome of one generation attempt.
type StampStatus string

const (
	StatusSuccess StampStatus = "success"
	StatusFailure StampStatus = "failure"
)

// GeneratedImage represents a single generated stamp image.
type GeneratedImage struct {
	// Data contains the raw image bytes
	Data []byte

	// MIMEType of the generated image
	MIMEType string

	// Usage contains token/billing information, when the provider
	// reports it
	Usage *UsageMetadata
}

// UsageMetadata contains usage information for billing and monitoring.
type UsageMetadata struct {
	PromptTokens     int
	CandidatesTokens int
	TotalTokens      int
}

// StampResult is the outcome of one batch item. The orchestrator
// produces exactly one result per requested index; failures occupy
// their slot rather than aborting the batch.
type StampResult struct {
	// Index is the 1-based position in the batch
	Index int

	// Status is Success or Failure
	Status StampStatus

	// Text is the caption the stamp was generated for (may be empty)
	Text string

	// Image holds the generated stamp, present iff Status is Success
	Image *GeneratedImage

	// Err holds the generation error, present iff Status is Failure
	Err error
}

// Succeeded reports whether this item produced an image.
func (r StampResult) Succeeded() bool {
	return r.Status == StatusSuccess && r.Image != nil
}

// successResult builds a Success result for the given slot.
func successResult(index int, text string, img *GeneratedImage) StampResult {
	return StampResult{Index: index, Status: StatusSuccess, Text: text, Image: img}
}

// failureResult builds a Failure result for the given slot.
func failureResult(index int, text string, err error) StampResult {
	return StampResult{Index: index, Status: StatusFailure, Text: text, Err: err}
}

// CountSuccesses returns how many results in the batch carry an image.
func CountSuccesses(results []StampResult) int {
	n := 0
	for _, r := range results {
		if r.Succeeded() {
			n++
		}
	}
	return n
}
