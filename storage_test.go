package stampgen

import (
	"context"
	"errors"
	"testing"
)

// mockStorage records saved objects.
type mockStorage struct {
	saved map[string][]byte
	fail  bool
}

func newMockStorage() *mockStorage {
	return &mockStorage{saved: make(map[string][]byte)}
}

func (s *mockStorage) SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error) {
	if s.fail {
		return "", errors.New("storage unavailable")
	}
	s.saved[path] = data
	return "https://cdn.example.com/" + path, nil
}

func TestSaveBatch(t *testing.T) {
	storage := newMockStorage()
	results := []StampResult{
		successAt(1, "one", "image/png"),
		failureAt(2),
		successAt(3, "three", "image/jpeg"),
	}

	saved, err := SaveBatch(context.Background(), storage, results, "stamps/batch-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(saved) != 2 {
		t.Fatalf("expected 2 saved stamps, got %d", len(saved))
	}
	if saved[0].Path != "stamps/batch-1/001.png" {
		t.Errorf("unexpected path %q", saved[0].Path)
	}
	if saved[1].Path != "stamps/batch-1/003.jpg" {
		t.Errorf("unexpected path %q", saved[1].Path)
	}
	if string(storage.saved["stamps/batch-1/001.png"]) != "one" {
		t.Error("saved bytes do not match the stamp")
	}
}

func TestSaveBatch_NoStorage(t *testing.T) {
	_, err := SaveBatch(context.Background(), nil, []StampResult{successAt(1, "x", "image/png")}, "p")
	if !errors.Is(err, ErrStorageNotConfigured) {
		t.Errorf("expected ErrStorageNotConfigured, got %v", err)
	}
}

func TestSaveArchive(t *testing.T) {
	storage := newMockStorage()
	results := []StampResult{successAt(1, "one", "image/png")}

	res, err := SaveArchive(context.Background(), storage, results, "stamps/batch-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Path != "stamps/batch-1/"+DefaultArchiveName {
		t.Errorf("unexpected archive path %q", res.Path)
	}
	if res.Size == 0 {
		t.Error("archive should not be empty")
	}

	// Nothing to archive.
	_, err = SaveArchive(context.Background(), storage, []StampResult{failureAt(1)}, "p")
	if !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestOrchestrator_SaveBatch(t *testing.T) {
	storage := newMockStorage()
	o := NewOrchestrator(&MockStampGenerator{}, WithStorage(storage))

	results, err := o.Run(context.Background(), BatchRequest{Count: 2, Description: "a cat"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved, err := o.SaveBatch(context.Background(), results, "stamps/run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved) != 2 {
		t.Errorf("expected 2 saved stamps, got %d", len(saved))
	}

	// Without a backend the orchestrator refuses.
	o = NewOrchestrator(&MockStampGenerator{})
	if _, err := o.SaveBatch(context.Background(), results, "p"); !errors.Is(err, ErrStorageNotConfigured) {
		t.Errorf("expected ErrStorageNotConfigured, got %v", err)
	}
}

func TestGetMIMEType(t *testing.T) {
	tests := map[string]string{
		"char.png":      "image/png",
		"char.JPG":      "image/jpeg",
		"char.jpeg":     "image/jpeg",
		"char.webp":     "image/webp",
		"char.unknown":  "image/png",
		"dir/char.jpeg": "image/jpeg",
	}
	for path, want := range tests {
		if got := GetMIMEType(path); got != want {
			t.Errorf("GetMIMEType(%q) = %q, want %q", path, got, want)
		}
	}
}
