// Package fileproc validates staged uploads and materializes them into the
// media store's staging area: content hash, unique stored name, and a
// thumbnail for image types.
package fileproc

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/okibe-dev/okibe/internal/domain"
	internal_errors "github.com/okibe-dev/okibe/internal/errors"
	"github.com/okibe-dev/okibe/internal/sanitize"
)

// Media is the slice of the media store the processor needs: it only ever
// writes to and cleans the staging area.
type Media interface {
	Stage(ctx context.Context, name string, data io.Reader, size int64, contentType string) error
	Discard(ctx context.Context, name string) error
}

type Processor struct {
	media        Media
	allowedMimes map[string]bool
	thumbWidth   int
	thumbQuality int
}

func New(media Media, allowedMimes []string, thumbWidth, thumbQuality int) *Processor {
	allowed := make(map[string]bool, len(allowedMimes))
	for _, m := range allowedMimes {
		allowed[m] = true
	}
	return &Processor{
		media:        media,
		allowedMimes: allowed,
		thumbWidth:   thumbWidth,
		thumbQuality: thumbQuality,
	}
}

// ProcessAll materializes every staged upload concurrently. It either returns
// a record for every file or stages nothing: on any failure the artifacts of
// the files that did succeed are discarded before the error is surfaced.
func (p *Processor) ProcessAll(ctx context.Context, staged []domain.StagedFile, policy domain.PostingPolicy) ([]domain.File, error) {
	if len(staged) == 0 {
		return nil, nil
	}

	records := make([]domain.File, len(staged))
	errs := make([]error, len(staged))

	var wg sync.WaitGroup
	for i := range staged {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			records[i], errs[i] = p.Process(ctx, staged[i], policy)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err == nil {
			continue
		}
		for i, stageErr := range errs {
			if stageErr == nil {
				p.DiscardArtifacts(ctx, records[i])
			}
		}
		return nil, err
	}
	return records, nil
}

// Process validates one staged upload and writes its artifact (plus thumbnail
// for image types) into the staging area.
func (p *Processor) Process(ctx context.Context, staged domain.StagedFile, policy domain.PostingPolicy) (domain.File, error) {
	if !p.allowedMimes[staged.MimeType] {
		return domain.File{}, internal_errors.Validation(fmt.Sprintf("File type %s is not allowed.", staged.MimeType))
	}

	data, err := os.ReadFile(staged.TempPath)
	if err != nil {
		return domain.File{}, fmt.Errorf("failed to read staged upload: %w", err)
	}
	if policy.MaxFileSize > 0 && int64(len(data)) > policy.MaxFileSize {
		return domain.File{}, internal_errors.Validation(fmt.Sprintf("Files must be under %d bytes.", policy.MaxFileSize))
	}

	// Computed for integrity; identical uploads are not deduplicated.
	hash := sha256.Sum256(data)

	storedName := uuid.New().String() + extensionFor(staged)
	if err := p.media.Stage(ctx, storedName, bytes.NewReader(data), int64(len(data)), staged.MimeType); err != nil {
		return domain.File{}, fmt.Errorf("failed to materialize %s: %w", staged.OriginalName, err)
	}

	record := domain.File{
		StoredName:   storedName,
		MimeType:     staged.MimeType,
		OriginalName: originalName(staged),
		SizeBytes:    int64(len(data)),
		ContentHash:  hex.EncodeToString(hash[:]),
	}

	if thumbnailEligible(staged.MimeType) {
		thumbName, err := p.stageThumbnail(ctx, storedName, data)
		if err != nil {
			p.media.Discard(ctx, storedName)
			return domain.File{}, err
		}
		record.ThumbName = &thumbName
	}

	return record, nil
}

// DiscardArtifacts removes everything Process staged for the record.
func (p *Processor) DiscardArtifacts(ctx context.Context, record domain.File) {
	for _, name := range record.ArtifactNames() {
		p.media.Discard(ctx, name)
	}
}

func (p *Processor) stageThumbnail(ctx context.Context, storedName string, data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image for thumbnail: %w", err)
	}

	thumb := imaging.Fit(img, p.thumbWidth, p.thumbWidth, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(p.thumbQuality)); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	thumbName := strings.TrimSuffix(storedName, filepath.Ext(storedName)) + "s.jpg"
	if err := p.media.Stage(ctx, thumbName, &buf, int64(buf.Len()), "image/jpeg"); err != nil {
		return "", fmt.Errorf("failed to materialize thumbnail: %w", err)
	}
	return thumbName, nil
}

func thumbnailEligible(mimeType string) bool {
	if !strings.HasPrefix(mimeType, "image/") {
		return false
	}
	switch mimeType {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
		return true
	}
	return false
}

// extensionFor derives the stored extension from the declared mime type,
// falling back to the (cleaned) original extension.
func extensionFor(staged domain.StagedFile) string {
	switch staged.MimeType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(staged.MimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return filepath.Ext(filepath.Base(staged.OriginalName))
}

func originalName(staged domain.StagedFile) string {
	name := sanitize.Field(staged.OriginalName)
	if name == "" {
		name = "image.png"
	}
	return name
}
