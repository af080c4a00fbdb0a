package storage

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/webdav"
)

func newTestWebDAV(t *testing.T) *WebDAVStorage {
	t.Helper()

	srv := httptest.NewServer(&webdav.Handler{
		FileSystem: webdav.NewMemFS(),
		LockSystem: webdav.NewMemLS(),
	})
	t.Cleanup(srv.Close)

	s, err := NewWebDAVStorage(WebDAVConfig{URL: srv.URL, RootPath: "/photos/"})
	require.NoError(t, err)
	return s
}

func TestNewWebDAVStorage_RequiresURL(t *testing.T) {
	_, err := NewWebDAVStorage(WebDAVConfig{})
	assert.Error(t, err)
}

func TestWebDAVStorage_SaveGetList(t *testing.T) {
	s := newTestWebDAV(t)
	ctx := context.Background()

	require.NoError(t, s.SaveWithContext(ctx, "cat.png", strings.NewReader("meow")))

	obj, err := s.GetWithContext(ctx, "cat.png")
	require.NoError(t, err)
	defer obj.Reader.Close()
	data, err := io.ReadAll(obj.Reader)
	require.NoError(t, err)
	assert.Equal(t, "meow", string(data))
	assert.Equal(t, int64(4), obj.Size)

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat.png"}, names)

	exists, err := s.Exists(ctx, "cat.png")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Equal(t, "/photos/cat.png", s.Locate("cat.png"))
}

func TestWebDAVStorage_NotFound(t *testing.T) {
	s := newTestWebDAV(t)
	ctx := context.Background()

	_, err := s.GetWithContext(ctx, "missing.png")
	assert.True(t, errors.Is(err, ErrNotFound))

	exists, err := s.Exists(ctx, "missing.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWebDAVStorage_FailedWriteLeavesNothing(t *testing.T) {
	s := newTestWebDAV(t)
	ctx := context.Background()

	err := s.SaveWithContext(ctx, "broken.png", &failingReader{data: []byte("partial")})
	require.Error(t, err)

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestWebDAVStorage_Delete(t *testing.T) {
	s := newTestWebDAV(t)
	ctx := context.Background()

	require.NoError(t, s.SaveWithContext(ctx, "a.png", strings.NewReader("a")))
	require.NoError(t, s.DeleteWithContext(ctx, "a.png"))

	exists, err := s.Exists(ctx, "a.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWebDAVStorage_InvalidIdentifier(t *testing.T) {
	s := newTestWebDAV(t)
	err := s.SaveWithContext(context.Background(), "../escape.png", strings.NewReader("x"))
	assert.Error(t, err)
}
