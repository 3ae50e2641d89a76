package stampgen

import (
	"errors"
	"fmt"
)

// Validation errors. All request-shape problems wrap ErrInvalidRequest
// so callers can reject a batch with a single errors.Is check before
// any external call is made.
var (
	ErrInvalidRequest     = errors.New("invalid batch request")
	ErrCountOutOfRange    = fmt.Errorf("%w: count out of range", ErrInvalidRequest)
	ErrMissingDescription = fmt.Errorf("%w: description or reference image required", ErrInvalidRequest)
	ErrEmptyImageData     = fmt.Errorf("%w: image data cannot be empty", ErrInvalidRequest)
	ErrInvalidMIMEType    = fmt.Errorf("%w: invalid or unsupported MIME type", ErrInvalidRequest)
	ErrImageTooLarge      = fmt.Errorf("%w: image data exceeds maximum size", ErrInvalidRequest)
)

// MaxImageSize is the maximum allowed reference image size in bytes (20MB).
const MaxImageSize = 20 * 1024 * 1024

// ValidMIMETypes contains the supported reference image MIME types.
var ValidMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// BatchLimits bounds the number of stamps a single batch may request.
type BatchLimits struct {
	MinCount int
	MaxCount int
}

// DefaultBatchLimits matches the sticker-pack sizes the workflow was
// built for: anything from a single stamp up to a 40-stamp pack.
var DefaultBatchLimits = BatchLimits{MinCount: 1, MaxCount: 40}

// Validate checks a batch request against the limits. It returns an
// ErrInvalidRequest-wrapped error on the first problem found.
func (l BatchLimits) Validate(req BatchRequest) error {
	if req.Count < l.MinCount || req.Count > l.MaxCount {
		return fmt.Errorf("%w: %d (allowed %d-%d)", ErrCountOutOfRange, req.Count, l.MinCount, l.MaxCount)
	}

	if req.Description == "" && req.Reference == nil {
		return ErrMissingDescription
	}

	if req.Reference != nil {
		if err := ValidateInputImage(*req.Reference); err != nil {
			return err
		}
	}

	return nil
}

// ValidateInputImage validates a reference image.
func ValidateInputImage(img InputImage) error {
	if len(img.Data) == 0 {
		return ErrEmptyImageData
	}

	if len(img.Data) > MaxImageSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, len(img.Data), MaxImageSize)
	}

	if img.MIMEType == "" {
		return fmt.Errorf("%w: MIME type is required", ErrInvalidMIMEType)
	}

	if !ValidMIMETypes[img.MIMEType] {
		return fmt.Errorf("%w: %s", ErrInvalidMIMEType, img.MIMEType)
	}

	return nil
}
