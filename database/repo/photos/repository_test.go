package photos

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/anoixa/photo-gallery/database"
	"github.com/anoixa/photo-gallery/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建测试数据库
func setupTestDB(t *testing.T) database.Provider {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Photo{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return database.NewGormProviderFromDB(db, "sqlite")
}

func newPhoto(name string) *models.Photo {
	return &models.Photo{
		Title:    "cat.png",
		Filename: name,
		FilePath: "uploads/photos/" + name,
		FileSize: 3072,
		MimeType: "image/png",
		OwnerID:  1,
	}
}

func TestRepository_Create(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	photo := newPhoto("a.png")
	require.NoError(t, repo.Create(ctx, photo))

	assert.NotZero(t, photo.ID)
	assert.Len(t, photo.Slug, models.SlugLength)
	assert.False(t, photo.UploadedAt.IsZero())

	photos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	got := photos[0]
	assert.Equal(t, photo.ID, got.ID)
	assert.Equal(t, photo.Slug, got.Slug)
	assert.Equal(t, int64(3072), got.FileSize)
	assert.Nil(t, got.Width)
	assert.Nil(t, got.Height)
}

func TestRepository_Create_DuplicateSlugFails(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	first := newPhoto("a.png")
	first.Slug = "AAAAAAAAAAAAAAAA"
	require.NoError(t, repo.Create(ctx, first))

	second := newPhoto("b.png")
	second.Slug = "AAAAAAAAAAAAAAAA"
	assert.Error(t, repo.Create(ctx, second))

	photos, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, photos, 1)
}

func TestRepository_List_Order(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	for i, name := range []string{"old.png", "new.png", "mid.png"} {
		p := newPhoto(name)
		p.UploadedAt = base.Add(time.Duration([]int{0, 2, 1}[i]) * time.Hour)
		require.NoError(t, repo.Create(ctx, p))
	}

	photos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 3)
	assert.Equal(t, "new.png", photos[0].Filename)
	assert.Equal(t, "mid.png", photos[1].Filename)
	assert.Equal(t, "old.png", photos[2].Filename)
}

func TestRepository_List_Empty(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	photos, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestRepository_Create_CancelledContext(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, repo.Create(ctx, newPhoto("a.png")))

	photos, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, photos)
}
