// Package workspace manages the run-scoped scratch directory holding decoded
// clip buffers and the combined PCM stream file.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Workspace is a uniquely named scratch directory for one assembly run.
// Scratch files are removed individually as the run stops needing them;
// Close sweeps whatever remains.
type Workspace struct {
	dir string
}

// Create makes the scratch directory under root. An empty root falls back to
// the system temp directory.
func Create(root string) (*Workspace, error) {
	if strings.TrimSpace(root) == "" {
		root = os.TempDir()
	}
	dir := filepath.Join(root, "spritegen-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// ClipFile returns the path for the decoded buffer of the clip at index.
func (w *Workspace) ClipFile(index int) string {
	return filepath.Join(w.dir, fmt.Sprintf("clip-%03d.raw", index))
}

// StreamFile returns the path of the combined PCM stream file.
func (w *Workspace) StreamFile() string {
	return filepath.Join(w.dir, "stream.raw")
}

// Remove deletes a single scratch file. Missing files are not an error.
func (w *Workspace) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove scratch file: %w", err)
	}
	return nil
}

// Close removes the workspace directory and everything left in it.
func (w *Workspace) Close() error {
	if w == nil || w.dir == "" {
		return nil
	}
	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	w.dir = ""
	return nil
}
