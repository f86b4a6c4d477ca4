package ident

import (
	"net/url"
	"testing"
)

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestNew_URLSafe(t *testing.T) {
	id := New()
	if id == "" {
		t.Fatal("empty id")
	}
	if escaped := url.PathEscape(id); escaped != id {
		t.Errorf("id %q is not URL-safe (escapes to %q)", id, escaped)
	}
}
