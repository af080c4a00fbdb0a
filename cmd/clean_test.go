package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anoixa/photo-gallery/database/models"
	"github.com/anoixa/photo-gallery/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	photos []*models.Photo
	err    error
}

func (s stubLister) List(ctx context.Context) ([]*models.Photo, error) {
	return s.photos, s.err
}

func newCleanFixture(t *testing.T) (*storage.LocalStorage, stubLister) {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, local.SaveWithContext(ctx, "kept.png", bytes.NewReader([]byte("kept"))))
	require.NoError(t, local.SaveWithContext(ctx, "orphan.jpg", bytes.NewReader([]byte("orphan"))))

	lister := stubLister{photos: []*models.Photo{
		{ID: 1, Filename: "kept.png", FilePath: local.Locate("kept.png")},
		{ID: 2, Filename: "gone.gif", FilePath: local.Locate("gone.gif")},
	}}
	return local, lister
}

func TestCleanStorage_DeletesOrphans(t *testing.T) {
	local, lister := newCleanFixture(t)
	ctx := context.Background()

	stats := cleanStorage(ctx, local, lister, false, 0)

	assert.Empty(t, stats.errors)
	assert.Equal(t, 1, stats.orphanStorageFiles)
	assert.Equal(t, 1, stats.deletedStorageFiles)
	assert.Equal(t, 1, stats.missingFiles)

	ids, err := local.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept.png"}, ids)
}

func TestCleanStorage_DryRunKeepsFiles(t *testing.T) {
	local, lister := newCleanFixture(t)
	ctx := context.Background()

	stats := cleanStorage(ctx, local, lister, true, 0)

	assert.Equal(t, 1, stats.orphanStorageFiles)
	assert.Zero(t, stats.deletedStorageFiles)

	exists, err := local.Exists(ctx, "orphan.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCleanStorage_RepositoryError(t *testing.T) {
	local, _ := newCleanFixture(t)

	stats := cleanStorage(context.Background(), local, stubLister{err: errors.New("db down")}, false, 0)

	require.Len(t, stats.errors, 1)
	assert.Zero(t, stats.orphanStorageFiles)
}

func TestCleanStorage_KeepsRecentOrphans(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	// 刚写入、记录尚未提交的上传
	fresh := "0123456789abcdef0123456789abcdef.png"
	require.NoError(t, local.SaveWithContext(ctx, fresh, bytes.NewReader([]byte("fresh"))))

	stale := "fedcba9876543210fedcba9876543210.jpg"
	require.NoError(t, local.SaveWithContext(ctx, stale, bytes.NewReader([]byte("stale"))))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(local.BasePath(), stale), old, old))

	stats := cleanStorage(ctx, local, stubLister{}, false, defaultOrphanMinAge)

	assert.Empty(t, stats.errors)
	assert.Equal(t, 1, stats.skippedRecentFiles)
	assert.Equal(t, 1, stats.deletedStorageFiles)

	exists, err := local.Exists(ctx, fresh)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = local.Exists(ctx, stale)
	require.NoError(t, err)
	assert.False(t, exists)
}
