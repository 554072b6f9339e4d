package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	ref, err := s.Put(context.Background(), "abc.png", strings.NewReader("data"), 4, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc.png", ref)
	assert.True(t, s.Owns(ref))

	got, err := os.ReadFile(filepath.Join(dir, "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	require.NoError(t, s.Delete(context.Background(), ref))
	_, err = os.Stat(filepath.Join(dir, "abc.png"))
	assert.True(t, os.IsNotExist(err))

	// Deleting twice is fine.
	assert.NoError(t, s.Delete(context.Background(), ref))
}

func TestLocalStorage_RejectsTraversalAndForeignRefs(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	for _, key := range []string{"../evil.png", "a/b.png", "..", ""} {
		_, err := s.Put(context.Background(), key, strings.NewReader("x"), 1, "image/png")
		assert.Error(t, err, "key %q", key)
	}

	assert.False(t, s.Owns("https://cdn-icons-png.flaticon.com/512/1047/1047711.png"))
	assert.Error(t, s.Delete(context.Background(), "https://example.com/a.png"))
	assert.Error(t, s.Delete(context.Background(), "/uploads/../secret"))
}

func TestLocalStorage_NoOverwrite(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "same.png", strings.NewReader("one"), 3, "image/png")
	require.NoError(t, err)
	_, err = s.Put(context.Background(), "same.png", strings.NewReader("two"), 3, "image/png")
	assert.Error(t, err)
}
