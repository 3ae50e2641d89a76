package stampgen

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// DefaultArchiveName is the suggested download filename for a packed
// sticker batch.
const DefaultArchiveName = "line_stamps.zip"

// Pack bundles the successful results of a batch into a zip archive and
// returns its bytes. Entries are named by zero-padded batch index plus
// the extension matching each image's MIME type, in index order.
// Failed items are skipped without renumbering the survivors.
//
// Returns ErrEmptyBatch when no result carries an image.
func Pack(results []StampResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteArchive(&buf, results); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteArchive writes the packed archive to w. See Pack.
//
// Entry metadata carries no timestamps, so packing the same results
// twice produces byte-identical archives.
func WriteArchive(w io.Writer, results []StampResult) error {
	if CountSuccesses(results) == 0 {
		return ErrEmptyBatch
	}

	zw := zip.NewWriter(w)

	for _, r := range results {
		if !r.Succeeded() {
			continue
		}

		header := &zip.FileHeader{
			Name:   entryName(r.Index, r.Image.MIMEType),
			Method: zip.Deflate,
		}

		ew, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("creating archive entry %s: %w", header.Name, err)
		}
		if _, err := ew.Write(r.Image.Data); err != nil {
			return fmt.Errorf("writing archive entry %s: %w", header.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

// entryName derives the archive entry name from a batch index. Indices
// are padded to three digits, wide enough for the largest allowed batch.
func entryName(index int, mimeType string) string {
	return fmt.Sprintf("%03d.%s", index, extensionFromMIME(mimeType))
}

// extensionFromMIME returns a file extension for common image MIME types.
func extensionFromMIME(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	default:
		return "png"
	}
}
