package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/novabank/docgen/internal/infrastructure/config"
)

func TestDocstoreFromConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "documents")

	store, err := docstoreFromConfig(&config.Config{DocumentOutDir: dir})
	if err != nil {
		t.Fatalf("failed to build document store: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected upload directory to exist: %v", err)
	}

	ref, err := store.Save(context.Background(), "user-1", "passport.jpg", []byte("img"))
	if err != nil {
		t.Fatalf("failed to save document: %v", err)
	}
	if ref != "user-1/passport.jpg" {
		t.Fatalf("unexpected reference %q", ref)
	}
}

func TestDocstoreFromConfig_DefaultDir(t *testing.T) {
	store, err := docstoreFromConfig(&config.Config{})
	if err != nil {
		t.Fatalf("failed to build document store: %v", err)
	}
	if store == nil {
		t.Fatal("expected a store")
	}
}
