package stampgen

import (
	"context"
)

// MockStampGenerator is a mock implementation of StampGenerator.
type MockStampGenerator struct {
	GenerateFunc               func(ctx context.Context, prompt string, cfg *StickerConfig) (*GeneratedImage, error)
	GenerateWithReferencesFunc func(ctx context.Context, refs []InputImage, prompt string, cfg *StickerConfig) (*GeneratedImage, error)
	DescribeFunc               func(ctx context.Context, image InputImage, cfg *StickerConfig) (string, error)
	ModelsFunc                 func() []ModelInfo
	CloseFunc                  func() error
}

func (m *MockStampGenerator) Generate(ctx context.Context, prompt string, cfg *StickerConfig) (*GeneratedImage, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, cfg)
	}
	return &GeneratedImage{Data: []byte("fake-image"), MIMEType: "image/png"}, nil
}

func (m *MockStampGenerator) GenerateWithReferences(ctx context.Context, refs []InputImage, prompt string, cfg *StickerConfig) (*GeneratedImage, error) {
	if m.GenerateWithReferencesFunc != nil {
		return m.GenerateWithReferencesFunc(ctx, refs, prompt, cfg)
	}
	return &GeneratedImage{Data: []byte("fake-image"), MIMEType: "image/png"}, nil
}

func (m *MockStampGenerator) Describe(ctx context.Context, image InputImage, cfg *StickerConfig) (string, error) {
	if m.DescribeFunc != nil {
		return m.DescribeFunc(ctx, image, cfg)
	}
	return "a mock character", nil
}

func (m *MockStampGenerator) Models() []ModelInfo {
	if m.ModelsFunc != nil {
		return m.ModelsFunc()
	}
	return []ModelInfo{}
}

func (m *MockStampGenerator) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// MockConsistentGenerator adds session support to the mock.
type MockConsistentGenerator struct {
	MockStampGenerator
	StartSessionFunc func() Session
}

func (m *MockConsistentGenerator) StartSession() Session {
	if m.StartSessionFunc != nil {
		return m.StartSessionFunc()
	}
	return &MockSession{}
}

// MockSession is a mock implementation of Session.
type MockSession struct {
	GenerateFunc func(ctx context.Context, prompt string, refs []InputImage, cfg *StickerConfig) (*GeneratedImage, error)
	Cleared      bool
}

func (s *MockSession) Generate(ctx context.Context, prompt string, refs []InputImage, cfg *StickerConfig) (*GeneratedImage, error) {
	if s.GenerateFunc != nil {
		return s.GenerateFunc(ctx, prompt, refs, cfg)
	}
	return &GeneratedImage{Data: []byte("fake-image"), MIMEType: "image/png"}, nil
}

func (s *MockSession) Clear() {
	s.Cleared = true
}
