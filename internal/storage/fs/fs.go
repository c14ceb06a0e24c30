// Package fs keeps post media on local disk: a flat public directory of
// uniquely named files plus a staging directory for not-yet-committed writes.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okibe-dev/okibe/internal/service"
)

const (
	stagingDir = "staging"
	publicDir  = "files"
)

type Storage struct {
	rootPath string
}

// Ensure Storage struct implements the interface at compile time.
var _ service.MediaStore = (*Storage)(nil)

func New(rootPath string) (*Storage, error) {
	// Use filepath.Clean to prevent path traversal issues like "media/../"
	p := filepath.Clean(rootPath)

	for _, dir := range []string{stagingDir, publicDir} {
		if err := os.MkdirAll(filepath.Join(p, dir), 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}

	return &Storage{rootPath: p}, nil
}

func (s *Storage) stagedPath(name string) string {
	return filepath.Join(s.rootPath, stagingDir, filepath.Base(name))
}

func (s *Storage) publicPath(name string) string {
	return filepath.Join(s.rootPath, publicDir, filepath.Base(name))
}

func (s *Storage) Stage(_ context.Context, name string, data io.Reader, _ int64, _ string) error {
	dst, err := os.Create(s.stagedPath(name))
	if err != nil {
		return fmt.Errorf("failed to create staged file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		os.Remove(dst.Name()) // Best effort, ignore error here.
		return fmt.Errorf("failed to write staged file: %w", err)
	}
	return nil
}

// Promote renames the staged artifact into the public directory. Both live on
// the same volume, so the move is atomic.
func (s *Storage) Promote(_ context.Context, name string) error {
	if err := os.Rename(s.stagedPath(name), s.publicPath(name)); err != nil {
		return fmt.Errorf("failed to promote staged file %s: %w", name, err)
	}
	return nil
}

func (s *Storage) Discard(_ context.Context, name string) error {
	return removeIfPresent(s.stagedPath(name))
}

func (s *Storage) Delete(_ context.Context, name string) error {
	return removeIfPresent(s.publicPath(name))
}

func removeIfPresent(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		// We don't error if the file is already gone, but we do for other errors.
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
