package docstore_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/novabank/docgen/internal/infrastructure/docstore"
)

func TestStoreSaveAndOpen(t *testing.T) {
	store, err := docstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ref, err := store.Save(context.Background(), "user-1", "statement.pdf", []byte("%PDF-data"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "user-1/statement.pdf" {
		t.Errorf("unexpected reference %q", ref)
	}

	data, err := store.Open(context.Background(), ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(data, []byte("%PDF-data")) {
		t.Errorf("unexpected data %q", data)
	}
}

func TestStoreSave_SanitizesTraversal(t *testing.T) {
	root := t.TempDir()
	store, err := docstore.New(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ref, err := store.Save(context.Background(), "../evil", "../../escape.txt", []byte("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(ref, "..") {
		t.Errorf("reference contains traversal: %q", ref)
	}

	// Nothing may be written outside the store root.
	if _, err := os.Stat(filepath.Join(filepath.Dir(root), "escape.txt")); !os.IsNotExist(err) {
		t.Error("file escaped the store root")
	}
}

func TestStoreOpen_MalformedRef(t *testing.T) {
	store, err := docstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Open(context.Background(), "no-slash"); err == nil {
		t.Error("expected error for malformed reference")
	}
}
