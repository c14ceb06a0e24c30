package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagePromoteDelete(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Stage(ctx, "a.png", strings.NewReader("payload"), 7, "image/png"))

	// Staged but not public yet.
	_, err = os.Stat(s.publicPath("a.png"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Promote(ctx, "a.png"))
	data, err := os.ReadFile(s.publicPath("a.png"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	_, err = os.Stat(s.stagedPath("a.png"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Delete(ctx, "a.png"))
	_, err = os.Stat(s.publicPath("a.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiscardStagedArtifact(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Stage(ctx, "b.jpg", strings.NewReader("x"), 1, "image/jpeg"))
	require.NoError(t, s.Discard(ctx, "b.jpg"))
	_, err = os.Stat(s.stagedPath("b.jpg"))
	assert.True(t, os.IsNotExist(err))

	// Discarding twice is fine.
	require.NoError(t, s.Discard(ctx, "b.jpg"))
}

func TestPromoteMissingArtifactFails(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, s.Promote(context.Background(), "missing.png"))
}

func TestNamesAreConfinedToRoot(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.rootPath, "staging", "evil"), s.stagedPath("../../evil"))
}
