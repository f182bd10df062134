// Package scratch hands out uniquely named temporary files that live for the
// duration of a single conversion call.
package scratch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Manager creates scratch files under one directory.
type Manager struct {
	dir string
}

// NewManager returns a Manager rooted at dir, or at os.TempDir() when dir is
// empty. The directory is created if missing.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve scratch dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return &Manager{dir: abs}, nil
}

func (m *Manager) Dir() string { return m.dir }

// Create makes an empty file named "<prefix><random>.<ext>". The caller owns
// the file and must Remove it.
func (m *Manager) Create(prefix, ext string) (*File, error) {
	pattern := prefix + "*"
	if ext = sanitizeExt(ext); ext != "" {
		pattern += "." + ext
	}
	f, err := os.CreateTemp(m.dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("create scratch file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("close scratch file: %w", err)
	}
	return &File{path: path}, nil
}

// sanitizeExt keeps extensions usable as a file suffix: path separators and
// NUL bytes would otherwise escape the scratch directory or break CreateTemp.
func sanitizeExt(ext string) string {
	ext = strings.TrimLeft(ext, ".")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == 0 || r == '*':
			return '_'
		default:
			return r
		}
	}, ext)
}

// File is a scratch file owned by exactly one conversion call.
type File struct {
	path string
}

// Path returns the absolute path of the file.
func (f *File) Path() string { return f.path }

func (f *File) Write(data []byte) error {
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write scratch file: %w", err)
	}
	return nil
}

func (f *File) ReadAll() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read scratch file: %w", err)
	}
	return data, nil
}

// Remove deletes the file. A file that is already gone is not an error.
func (f *File) Remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove scratch file: %w", err)
	}
	return nil
}
