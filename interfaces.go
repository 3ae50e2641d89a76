package stampgen

import "context"

// StampGenerator is the external image-generation capability used by the
// batch orchestrator. Implement this interface to add support for new
// models or providers.
//
// The first model returned by Models() is considered the default model.
type StampGenerator interface {
	// Generate creates a single sticker image from a text prompt.
	Generate(ctx context.Context, prompt string, cfg *StickerConfig) (*GeneratedImage, error)

	// GenerateWithReferences creates a sticker image guided by one or
	// more reference images (the base character and, optionally, a
	// previously generated stamp used for consistency seeding).
	GenerateWithReferences(ctx context.Context, refs []InputImage, prompt string, cfg *StickerConfig) (*GeneratedImage, error)

	// Describe produces a textual character description from a reference
	// image, suitable for reuse in later generation prompts.
	Describe(ctx context.Context, image InputImage, cfg *StickerConfig) (string, error)

	// Models returns the model definitions supported by this provider.
	// The first model in the list is the default.
	Models() []ModelInfo

	// Close releases any resources held by the generator.
	Close() error
}

// ConsistentStampGenerator extends StampGenerator with session support.
// A session keeps earlier generations in the model context so later
// stamps in the same batch stay visually closer to the first ones.
type ConsistentStampGenerator interface {
	StampGenerator

	// StartSession begins a new consistency session.
	StartSession() Session
}

// Session is a multi-turn generation context shared by the stamps of one
// batch. Consistency across turns is best effort only; the underlying
// API offers no deterministic seeding contract.
type Session interface {
	// Generate produces the next stamp within the session.
	Generate(ctx context.Context, prompt string, refs []InputImage, cfg *StickerConfig) (*GeneratedImage, error)

	// Clear resets the session context.
	Clear()
}
