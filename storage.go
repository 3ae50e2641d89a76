package stampgen

import (
	"context"
	"path"
	"path/filepath"
	"strings"
)

// Storage is an interface for persisting generated stamps or packed
// archives. Implementations can wrap existing storage clients (GCS, S3,
// local disk, etc.) with this interface.
type Storage interface {
	// SaveFile saves data to storage and returns the public URL.
	// The path should include the full object path (e.g.,
	// "stamps/2026/08/007.png"). The contentType is typically the
	// image's MIME type.
	SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error)
}

// StorageResult contains information about a saved object.
type StorageResult struct {
	// URL is the public URL where the object can be accessed
	URL string

	// Path is the storage path/key where the object was saved
	Path string

	// Size is the number of bytes saved
	Size int
}

// SaveBatch saves every successful stamp of a batch to storage under
// basePath, using the same zero-padded names the archive uses. It
// returns StorageResults for each saved stamp.
//
// If no storage is configured, returns ErrStorageNotConfigured.
func SaveBatch(ctx context.Context, storage Storage, results []StampResult, basePath string) ([]StorageResult, error) {
	if storage == nil {
		return nil, ErrStorageNotConfigured
	}

	saved := make([]StorageResult, 0, len(results))
	for _, r := range results {
		if !r.Succeeded() {
			continue
		}

		objPath := path.Join(basePath, entryName(r.Index, r.Image.MIMEType))
		url, err := storage.SaveFile(ctx, r.Image.Data, objPath, r.Image.MIMEType)
		if err != nil {
			return saved, err
		}

		saved = append(saved, StorageResult{
			URL:  url,
			Path: objPath,
			Size: len(r.Image.Data),
		})
	}

	return saved, nil
}

// SaveArchive packs the batch and saves the archive under basePath with
// the default archive name.
func SaveArchive(ctx context.Context, storage Storage, results []StampResult, basePath string) (*StorageResult, error) {
	if storage == nil {
		return nil, ErrStorageNotConfigured
	}

	data, err := Pack(results)
	if err != nil {
		return nil, err
	}

	objPath := path.Join(basePath, DefaultArchiveName)
	url, err := storage.SaveFile(ctx, data, objPath, "application/zip")
	if err != nil {
		return nil, err
	}

	return &StorageResult{URL: url, Path: objPath, Size: len(data)}, nil
}

// GetMIMEType guesses an image MIME type from a file path.
func GetMIMEType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
