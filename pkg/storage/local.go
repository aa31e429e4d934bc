package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// LocalStore keeps blobs as files under a root directory. References are
// slash-separated paths relative to that root.
type LocalStore struct {
	root string
	log  *zap.Logger
}

func NewLocalStore(root string, log *zap.Logger) *LocalStore {
	if root == "" {
		root = "uploads"
	}
	return &LocalStore{
		root: root,
		log:  log.With(zap.String("storage", "local")),
	}
}

func (s *LocalStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}

	// Buat folder jika belum ada
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		s.log.Error("Failed to write blob", zap.Error(err), zap.String("name", name))
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	s.log.Debug("Blob stored", zap.String("name", name), zap.Int("bytes", len(data)))
	return filepath.ToSlash(filepath.Clean(name)), nil
}

func (s *LocalStore) Get(ctx context.Context, ref string) ([]byte, error) {
	path, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return data, nil
}

// resolve maps a reference to a path and refuses anything escaping root.
func (s *LocalStore) resolve(ref string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(ref))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage reference %q", ref)
	}
	return filepath.Join(s.root, clean), nil
}
