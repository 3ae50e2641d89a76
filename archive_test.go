package stampgen

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func successAt(index int, data string, mime string) StampResult {
	return successResult(index, "", &GeneratedImage{Data: []byte(data), MIMEType: mime})
}

func failureAt(index int) StampResult {
	return failureResult(index, "", errors.New("generation failed"))
}

func readEntries(t *testing.T, archive []byte) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)

	entries := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = string(data)
	}
	return entries
}

func TestPack_AllSuccess(t *testing.T) {
	results := []StampResult{
		successAt(1, "one", "image/png"),
		successAt(2, "two", "image/png"),
		successAt(3, "three", "image/png"),
	}

	archive, err := Pack(results)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)

	require.Len(t, zr.File, 3)
	assert.Equal(t, "001.png", zr.File[0].Name)
	assert.Equal(t, "002.png", zr.File[1].Name)
	assert.Equal(t, "003.png", zr.File[2].Name)

	entries := readEntries(t, archive)
	assert.Equal(t, "two", entries["002.png"])
}

func TestPack_MixedBatchKeepsOriginalIndices(t *testing.T) {
	results := []StampResult{
		successAt(1, "one", "image/png"),
		failureAt(2),
		successAt(3, "three", "image/png"),
	}

	archive, err := Pack(results)
	require.NoError(t, err)

	entries := readEntries(t, archive)
	require.Len(t, entries, 2)
	assert.Contains(t, entries, "001.png")
	assert.Contains(t, entries, "003.png")
	assert.NotContains(t, entries, "002.png", "failed slots must not be renumbered into")
}

func TestPack_EmptyBatch(t *testing.T) {
	_, err := Pack([]StampResult{failureAt(1), failureAt(2)})
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = Pack(nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestPack_Deterministic(t *testing.T) {
	results := []StampResult{
		successAt(1, "one", "image/png"),
		failureAt(2),
		successAt(3, "three", "image/jpeg"),
	}

	first, err := Pack(results)
	require.NoError(t, err)
	second, err := Pack(results)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must produce byte-identical archives")
}

func TestPack_ExtensionFollowsMIMEType(t *testing.T) {
	results := []StampResult{
		successAt(1, "a", "image/png"),
		successAt(2, "b", "image/jpeg"),
		successAt(3, "c", "image/webp"),
		successAt(4, "d", "application/octet-stream"), // unknown falls back to png
	}

	entries := readEntries(t, mustPack(t, results))
	assert.Contains(t, entries, "001.png")
	assert.Contains(t, entries, "002.jpg")
	assert.Contains(t, entries, "003.webp")
	assert.Contains(t, entries, "004.png")
}

func TestWriteArchive(t *testing.T) {
	var buf bytes.Buffer
	err := WriteArchive(&buf, []StampResult{successAt(7, "seven", "image/png")})
	require.NoError(t, err)

	entries := readEntries(t, buf.Bytes())
	assert.Equal(t, map[string]string{"007.png": "seven"}, entries)
}

func mustPack(t *testing.T, results []StampResult) []byte {
	t.Helper()
	archive, err := Pack(results)
	require.NoError(t, err)
	return archive
}
