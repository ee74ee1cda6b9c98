// Package docstore persists generated documents and uploaded verification
// files on the local filesystem.
package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store implements usecase.DocumentStore. Files are laid out as
// <root>/<userID>/<name>; the returned reference is the path relative to
// the root.
type Store struct {
	root string
}

// New creates a store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating document root: %w", err)
	}
	return &Store{root: dir}, nil
}

// Save writes the document and returns its reference.
func (s *Store) Save(ctx context.Context, userID, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	userID = sanitize(userID)
	name = sanitize(name)
	if userID == "" || name == "" {
		return "", fmt.Errorf("document reference components must be non-empty")
	}

	dir := filepath.Join(s.root, userID)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating user directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}

	return userID + "/" + name, nil
}

// Open reads a previously saved document by reference.
func (s *Store) Open(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parts := strings.SplitN(ref, "/", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed document reference %q", ref)
	}

	path := filepath.Join(s.root, sanitize(parts[0]), sanitize(parts[1]))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return data, nil
}

// sanitize strips path separators and traversal sequences so a reference
// can never escape the store root.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "..", "_")
	return s
}
