package stampgen

import (
	"errors"
	"testing"
)

func TestBatchLimits_Validate(t *testing.T) {
	limits := DefaultBatchLimits
	validRef := &InputImage{Data: []byte("fake image data"), MIMEType: "image/png"}

	tests := []struct {
		name    string
		req     BatchRequest
		wantErr error
	}{
		{
			name:    "valid with description",
			req:     BatchRequest{Count: 8, Description: "a cat"},
			wantErr: nil,
		},
		{
			name:    "valid with reference only",
			req:     BatchRequest{Count: 8, Reference: validRef},
			wantErr: nil,
		},
		{
			name:    "valid at max",
			req:     BatchRequest{Count: limits.MaxCount, Description: "a cat"},
			wantErr: nil,
		},
		{
			name:    "zero count",
			req:     BatchRequest{Count: 0, Description: "a cat"},
			wantErr: ErrCountOutOfRange,
		},
		{
			name:    "negative count",
			req:     BatchRequest{Count: -1, Description: "a cat"},
			wantErr: ErrCountOutOfRange,
		},
		{
			name:    "count above max",
			req:     BatchRequest{Count: limits.MaxCount + 1, Description: "a cat"},
			wantErr: ErrCountOutOfRange,
		},
		{
			name:    "missing description and reference",
			req:     BatchRequest{Count: 8},
			wantErr: ErrMissingDescription,
		},
		{
			name:    "invalid reference",
			req:     BatchRequest{Count: 8, Reference: &InputImage{}},
			wantErr: ErrEmptyImageData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := limits.Validate(tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("all validation errors must wrap ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestValidateInputImage(t *testing.T) {
	tests := []struct {
		name    string
		img     InputImage
		wantErr error
	}{
		{
			name: "valid image",
			img: InputImage{
				Data:     []byte("fake image data"),
				MIMEType: "image/png",
			},
			wantErr: nil,
		},
		{
			name:    "empty image",
			img:     InputImage{},
			wantErr: ErrEmptyImageData,
		},
		{
			name: "missing MIME type",
			img: InputImage{
				Data: []byte("fake image data"),
			},
			wantErr: ErrInvalidMIMEType,
		},
		{
			name: "invalid MIME type",
			img: InputImage{
				Data:     []byte("fake image data"),
				MIMEType: "text/plain",
			},
			wantErr: ErrInvalidMIMEType,
		},
		{
			name: "image too large",
			img: InputImage{
				Data:     make([]byte, MaxImageSize+1),
				MIMEType: "image/png",
			},
			wantErr: ErrImageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputImage(tt.img)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateInputImage() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
