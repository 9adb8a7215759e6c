package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

func TestLocal_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	l, err := NewLocal(root, "")
	require.NoError(t, err)

	url, n, err := l.Save(context.Background(), "images", "a.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/images/a.png", url)
	assert.Equal(t, int64(9), n)

	data, err := os.ReadFile(filepath.Join(root, "images", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, l.Delete(context.Background(), url))
	_, err = os.Stat(filepath.Join(root, "images", "a.png"))
	assert.True(t, os.IsNotExist(err))

	err = l.Delete(context.Background(), url)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestLocal_Save_RejectsUnsafeNames(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../x.png", `a\b.png`} {
		_, _, err := l.Save(context.Background(), "images", name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidPath, name)
	}
	_, _, err = l.Save(context.Background(), "../etc", "x.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocal_Delete_RejectsOutsideURLs(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	for _, u := range []string{
		"/etc/passwd",
		"/uploads/../secret",
		"/uploads/images",
		"/uploads/images/../../x",
		"https://example.com/uploads/images/a.png",
	} {
		assert.ErrorIs(t, l.Delete(context.Background(), u), ErrInvalidPath, u)
	}
}

func TestLocal_Save_CancelledContext(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = l.Save(ctx, "images", "a.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
