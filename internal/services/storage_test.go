package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mole.jpg", "mole.jpg"},
		{"my photo.jpg", "my_photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{`..\..\boot.ini`, "boot.ini"},
		{"a/b/c.png", "c.png"},
		{"weird%$#name!.png", "weird___name_.png"},
		{".hidden", "hidden"},
		{"...", "unnamed"},
		{"", "unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestDiskImageStore_SaveExistsRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskImageStore(dir, "/static/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Save(ctx, strings.NewReader("fake image bytes"), "mole.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/mole.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "mole.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	exists, err := store.Exists(ctx, "mole.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Remove(ctx, "mole.jpg"))

	exists, err = store.Exists(ctx, "mole.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDiskImageStore_CollisionOverwrites(t *testing.T) {
	store, err := NewDiskImageStore(t.TempDir(), "/static/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Save(ctx, strings.NewReader("first"), "mole.jpg")
	require.NoError(t, err)
	url, err := store.Save(ctx, strings.NewReader("second"), "mole.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/mole.jpg", url)
}

func TestNewDiskImageStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewDiskImageStore(dir, "/static/uploads")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
