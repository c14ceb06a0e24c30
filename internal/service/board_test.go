package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okibe-dev/okibe/internal/domain"
	internal_errors "github.com/okibe-dev/okibe/internal/errors"
)

func TestBoardCreate(t *testing.T) {
	t.Run("key is normalized and name stripped of markup", func(t *testing.T) {
		var created domain.BoardCreationData
		storage := &MockBoardStorage{
			CreateBoardFunc: func(data domain.BoardCreationData) error {
				created = data
				return nil
			},
		}
		service := NewBoard(storage, &MockMediaStore{})

		err := service.Create(domain.BoardCreationData{Key: "  TeCh ", Name: "<b>Technology</b>", Policy: domain.DefaultPostingPolicy()})
		require.NoError(t, err)
		assert.Equal(t, "tech", created.Key)
		assert.Equal(t, "Technology", created.Name)
	})

	t.Run("invalid keys are rejected", func(t *testing.T) {
		storage := &MockBoardStorage{
			CreateBoardFunc: func(data domain.BoardCreationData) error {
				t.Fatal("must not reach storage")
				return nil
			},
		}
		service := NewBoard(storage, &MockMediaStore{})

		for _, key := range []string{"", "has space", "way-too-long-board-key", "ключ"} {
			err := service.Create(domain.BoardCreationData{Key: key, Name: "Name"})
			require.Error(t, err, "key %q", key)
			assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))
		}
	})

	t.Run("empty name after stripping is rejected", func(t *testing.T) {
		service := NewBoard(&MockBoardStorage{}, &MockMediaStore{})
		err := service.Create(domain.BoardCreationData{Key: "b", Name: "  "})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))
	})
}

func TestBoardDelete(t *testing.T) {
	ctx := context.Background()
	thumbName := "aas.jpg"

	t.Run("board artifacts are removed and counted", func(t *testing.T) {
		media := &MockMediaStore{}
		storage := &MockBoardStorage{
			DeleteBoardFunc: func(key domain.BoardKey) ([]domain.File, error) {
				return []domain.File{{StoredName: "aa.png", ThumbName: &thumbName}, {StoredName: "bb.webm"}}, nil
			},
		}
		service := NewBoard(storage, media)

		removed, err := service.Delete(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		assert.ElementsMatch(t, []string{"aa.png", "aas.jpg", "bb.webm"}, media.Deleted)
	})

	t.Run("media failure lowers the count only", func(t *testing.T) {
		media := &MockMediaStore{
			DeleteFunc: func(ctx context.Context, name string) error {
				return errors.New("backend down")
			},
		}
		storage := &MockBoardStorage{
			DeleteBoardFunc: func(key domain.BoardKey) ([]domain.File, error) {
				return []domain.File{{StoredName: "aa.png"}}, nil
			},
		}
		service := NewBoard(storage, media)

		removed, err := service.Delete(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, 0, removed)
	})
}
