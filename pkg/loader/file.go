package loader

import (
	"context"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// File reads documents from a single file chosen by extension: a JSON or
// YAML file yields exactly one document, a jsonlines file yields one
// document per line. The file is opened lazily on the first Next and
// closed when the sequence ends.
type File struct {
	path string
	ext  string

	count  int
	opened bool
	done   bool
	f      *os.File
	dec    *json.Decoder
	queue  []any
}

// NewFile returns a loader for path. The extension must be one of .json,
// .jsonl, .jsonlines, .yaml, or .yml.
func NewFile(path string) (*File, error) {
	if !IsSupported(path) {
		return nil, errUnsupported(path)
	}
	return &File{path: path, ext: Extension(path)}, nil
}

// Path returns the file being read.
func (l *File) Path() string { return l.path }

func (l *File) Count() int { return l.count }

func (l *File) Next(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.done {
		return nil, io.EOF
	}
	if !l.opened {
		if err := l.open(); err != nil {
			l.done = true
			return nil, err
		}
		l.opened = true
	}

	switch l.ext {
	case extJSONL, extJSONLines:
		var doc any
		if err := l.dec.Decode(&doc); err != nil {
			l.close()
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("reading %s: %w", l.path, err)
		}
		l.count++
		return doc, nil

	default:
		if len(l.queue) == 0 {
			l.close()
			return nil, io.EOF
		}
		doc := l.queue[0]
		l.queue = l.queue[1:]
		l.count++
		return doc, nil
	}
}

func (l *File) open() error {
	f, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("opening data file: %w", err)
	}

	switch l.ext {
	case extJSONL, extJSONLines:
		l.f = f
		l.dec = json.NewDecoder(f)
		l.dec.UseNumber()
		return nil

	case extJSON:
		defer f.Close()
		dec := json.NewDecoder(f)
		dec.UseNumber()
		var doc any
		if err := dec.Decode(&doc); err != nil {
			return fmt.Errorf("reading %s: %w", l.path, err)
		}
		l.queue = []any{doc}
		return nil

	case extYAML, extYML:
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", l.path, err)
		}
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("reading %s: %w", l.path, err)
		}
		l.queue = []any{doc}
		return nil
	}

	f.Close()
	return errUnsupported(l.path)
}

func (l *File) close() {
	l.done = true
	if l.f != nil {
		l.f.Close()
		l.f = nil
	}
}
