// Package storage writes downloaded resources under a single destination
// directory, naming each file after the final path segment of its URL.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bloglinks/pkg/errors"
)

// Manager handles file writes into the destination directory
type Manager struct {
	dir string
}

// NewManager creates a new storage manager, creating the destination
// directory (including parents) if it does not exist.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to create destination directory: %v", err),
			Code:    0,
		}
	}

	return &Manager{dir: dir}, nil
}

// Dir returns the destination directory
func (m *Manager) Dir() string {
	return m.dir
}

// FilenameForURL derives a filename from the substring after the last slash
// in the URL. Percent escapes are kept as-is, and a later URL with the same
// derived name silently overwrites the earlier file.
func FilenameForURL(rawURL string) string {
	return rawURL[strings.LastIndex(rawURL, "/")+1:]
}

// Save writes data under the filename derived from url and returns the
// number of bytes written. The write goes through a temporary file and a
// rename so a failed download never leaves a truncated file behind.
func (m *Manager) Save(rawURL string, data []byte) (int64, error) {
	path := filepath.Join(m.dir, FilenameForURL(rawURL))
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return 0, &errors.Error{
			Type:    errors.ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to write %s: %v", path, err),
			Code:    0,
		}
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, &errors.Error{
			Type:    errors.ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to finalize %s: %v", path, err),
			Code:    0,
		}
	}

	return int64(len(data)), nil
}
