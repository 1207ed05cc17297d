package uploads

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	u, err := store.Save(context.Background(), "my photo.jpg", "image/jpeg", strings.NewReader("payload"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "/uploads/"))
	assert.True(t, strings.HasSuffix(u, "-my_photo.jpg"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestLocalStoreSaveUniqueNames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	u1, err := store.Save(context.Background(), "a.png", "image/png", strings.NewReader("1"))
	require.NoError(t, err)
	u2, err := store.Save(context.Background(), "a.png", "image/png", strings.NewReader("2"))
	require.NoError(t, err)
	assert.NotEqual(t, u1, u2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestObjectNameStripsPath(t *testing.T) {
	name := objectName("../../etc/passwd")
	assert.False(t, strings.Contains(name, "/"))
	assert.True(t, strings.HasSuffix(name, "-passwd"))
}
