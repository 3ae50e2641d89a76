package ratelimiter

import (
	"testing"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Get("unknown-model"); err == nil {
		t.Error("expected error for unregistered model")
	}

	limiter := New(100, 10)
	reg.Set("stamp-model", limiter)

	got, err := reg.Get("stamp-model")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != limiter {
		t.Error("registry returned a different limiter")
	}

	// Overwrite replaces the limiter.
	other := New(200, 20)
	reg.Set("stamp-model", other)
	got, _ = reg.Get("stamp-model")
	if got != other {
		t.Error("expected the replacement limiter")
	}
}
