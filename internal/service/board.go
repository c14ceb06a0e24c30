package service

import (
	"context"
	"strings"

	"github.com/okibe-dev/okibe/internal/domain"
	internal_errors "github.com/okibe-dev/okibe/internal/errors"
	"github.com/okibe-dev/okibe/internal/sanitize"
)

type BoardService interface {
	Create(data domain.BoardCreationData) error
	Get(key domain.BoardKey) (domain.Board, error)
	GetAll() ([]domain.Board, error)
	Delete(ctx context.Context, key domain.BoardKey) (int, error)
}

type BoardStorage interface {
	CreateBoard(data domain.BoardCreationData) error
	GetBoard(key domain.BoardKey) (domain.Board, error)
	GetBoards() ([]domain.Board, error)
	DeleteBoard(key domain.BoardKey) ([]domain.File, error)
}

type BoardOps struct {
	storage BoardStorage
	media   MediaStore
}

func NewBoard(storage BoardStorage, media MediaStore) BoardService {
	return &BoardOps{storage, media}
}

func (b *BoardOps) Create(data domain.BoardCreationData) error {
	key := strings.ToLower(strings.TrimSpace(data.Key))
	if !validBoardKey(key) {
		return internal_errors.Validation("Board key must be 1-16 lowercase letters or digits")
	}
	data.Key = key

	// Display names come from staff, but still get markup stripped.
	data.Name = strings.TrimSpace(sanitize.StripMarkup(data.Name))
	if data.Name == "" {
		return internal_errors.Validation("Board name required")
	}

	return b.storage.CreateBoard(data)
}

func (b *BoardOps) Get(key domain.BoardKey) (domain.Board, error) {
	return b.storage.GetBoard(key)
}

func (b *BoardOps) GetAll() ([]domain.Board, error) {
	return b.storage.GetBoards()
}

// Delete removes the board with everything on it and returns how many stored
// file records were cleaned up.
func (b *BoardOps) Delete(ctx context.Context, key domain.BoardKey) (int, error) {
	files, err := b.storage.DeleteBoard(key)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, f := range files {
		ok := true
		for _, name := range f.ArtifactNames() {
			if err := b.media.Delete(ctx, name); err != nil {
				ok = false
			}
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

func validBoardKey(key string) bool {
	if len(key) < 1 || len(key) > 16 {
		return false
	}
	for _, r := range key {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !ok {
			return false
		}
	}
	return true
}
