package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
)

// Multi concatenates documents from a list of files in order.
type Multi struct {
	loaders []*File
	index   int
	count   int
}

// NewMulti builds a loader over the given paths. Unsupported files are
// skipped unless strict is set, in which case they are an error.
func NewMulti(paths []string, strict bool) (*Multi, error) {
	m := &Multi{}
	for _, path := range paths {
		if !IsSupported(path) {
			if strict {
				return nil, errUnsupported(path)
			}
			continue
		}
		l, err := NewFile(path)
		if err != nil {
			return nil, err
		}
		m.loaders = append(m.loaders, l)
	}
	return m, nil
}

// Paths returns the files the loader will read, in order.
func (m *Multi) Paths() []string {
	paths := make([]string, len(m.loaders))
	for i, l := range m.loaders {
		paths[i] = l.Path()
	}
	return paths
}

func (m *Multi) Count() int { return m.count }

func (m *Multi) Next(ctx context.Context) (any, error) {
	for m.index < len(m.loaders) {
		doc, err := m.loaders[m.index].Next(ctx)
		if err == io.EOF {
			m.index++
			continue
		}
		if err != nil {
			return nil, err
		}
		m.count++
		return doc, nil
	}
	return nil, io.EOF
}

// NewDir builds a loader over every supported file in the given
// directories, optionally descending into subdirectories.
func NewDir(dirs []string, recursive, strict bool) (*Multi, error) {
	var paths []string
	for _, dir := range dirs {
		root := filepath.Clean(dir)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if !recursive && path != root {
					return fs.SkipDir
				}
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", dir, err)
		}
	}
	return NewMulti(paths, strict)
}

// NewGlob builds a loader over every file matching the given glob
// patterns.
func NewGlob(patterns []string, strict bool) (*Multi, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	return NewMulti(paths, strict)
}
