// Package loader provides document producers for schema profiling: lazy,
// forward-only sequences of schemaless documents read from files,
// directories, glob patterns, or an S3-compatible object store.
package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Loader is a finite or unbounded producer of schemaless documents.
// Next returns the next document (typically a map[string]any with
// arbitrarily nested mappings, sequences, and scalars) and io.EOF once
// the sequence is exhausted. The sequence is pulled lazily, preserves
// source order, and is not restartable: for a live remote source a
// second traversal is not guaranteed to reproduce the same documents.
//
// Count reports the number of documents produced so far; it is exact
// only after Next has returned io.EOF.
type Loader interface {
	Next(ctx context.Context) (any, error)
	Count() int
}

// ErrUnsupported reports a file whose extension no loader understands.
var ErrUnsupported = errors.New("unsupported file type")

// Supported file extensions. JSON and YAML files hold one document each;
// jsonlines files hold one document per line.
const (
	extJSON      = ".json"
	extJSONL     = ".jsonl"
	extJSONLines = ".jsonlines"
	extYAML      = ".yaml"
	extYML       = ".yml"
)

// IsSupported reports whether path has an extension a FileLoader can read.
func IsSupported(path string) bool {
	switch Extension(path) {
	case extJSON, extJSONL, extJSONLines, extYAML, extYML:
		return true
	}
	return false
}

// Extension returns the normalized (lowercased) extension of path.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(filepath.Base(path)))
}

func errUnsupported(path string) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, path)
}
