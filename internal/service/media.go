package service

import (
	"context"
	"io"
)

// MediaStore is the file namespace behind the posting pipeline. Artifacts are
// written into a write-ahead staging area first and promoted into the public
// namespace only after the owning rows have committed, so committed rows never
// point at missing files.
type MediaStore interface {
	// Stage writes an artifact into the staging area under name.
	Stage(ctx context.Context, name string, data io.Reader, size int64, contentType string) error

	// Promote moves a staged artifact into the public namespace.
	Promote(ctx context.Context, name string) error

	// Discard removes a staged artifact. Missing artifacts are not an error.
	Discard(ctx context.Context, name string) error

	// Delete removes a public artifact. Missing artifacts are not an error.
	Delete(ctx context.Context, name string) error
}
