package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerCreatesNestedDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "images")

	m, err := NewManager(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, m.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewManagerExistingDirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := NewManager(dir)

	assert.NoError(t, err)
}

func TestFilenameForURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"simple path", "http://x/a/b.png", "b.png"},
		{"root path", "http://x/c.gif", "c.gif"},
		{"percent escapes kept", "http://x/img%20name.png", "img%20name.png"},
		{"query string kept", "http://x/a.png?width=100", "a.png?width=100"},
		{"no slash at all", "plain", "plain"},
		{"trailing slash", "http://x/dir/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilenameForURL(tt.url))
		})
	}
}

func TestSave(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	size, err := m.Save("http://x/photos/b.png", []byte("png data"))

	require.NoError(t, err)
	assert.Equal(t, int64(8), size)

	data, err := os.ReadFile(filepath.Join(m.Dir(), "b.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png data"), data)

	// No temp file left behind
	_, err = os.Stat(filepath.Join(m.Dir(), "b.png.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveOverwritesSameName(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = m.Save("http://one.example/dup.png", []byte("first"))
	require.NoError(t, err)
	_, err = m.Save("http://two.example/dup.png", []byte("second"))
	require.NoError(t, err)

	entries, err := os.ReadDir(m.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(m.Dir(), "dup.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}
