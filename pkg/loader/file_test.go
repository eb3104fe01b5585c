package loader

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func drain(t *testing.T, l Loader) []any {
	t.Helper()
	var docs []any
	for {
		doc, err := l.Next(context.Background())
		if err == io.EOF {
			return docs
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		docs = append(docs, doc)
	}
}

func TestFile_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.json", `{"color": "red", "n": 3}`)
	l, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	docs := drain(t, l)
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	doc := docs[0].(map[string]any)
	if doc["color"] != "red" {
		t.Errorf("color = %v, want red", doc["color"])
	}
	if l.Count() != 1 {
		t.Errorf("Count = %d, want 1", l.Count())
	}
}

func TestFile_JSONLines(t *testing.T) {
	path := writeFile(t, t.TempDir(), "docs.jsonl",
		`{"n": 1}
{"n": 2}
{"n": 3}
`)
	l, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	docs := drain(t, l)
	if len(docs) != 3 {
		t.Fatalf("got %d documents, want 3", len(docs))
	}
	if l.Count() != 3 {
		t.Errorf("Count = %d, want 3", l.Count())
	}
}

func TestFile_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.yaml",
		"color: blue\ntags:\n  - a\n  - b\n")
	l, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	docs := drain(t, l)
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	doc := docs[0].(map[string]any)
	if doc["color"] != "blue" {
		t.Errorf("color = %v, want blue", doc["color"])
	}
	if tags := doc["tags"].([]any); len(tags) != 2 {
		t.Errorf("tags = %v, want two entries", tags)
	}
}

func TestFile_UnsupportedExtension(t *testing.T) {
	_, err := NewFile("notes.txt")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("error = %v, want ErrUnsupported", err)
	}
}

func TestFile_MissingFile(t *testing.T) {
	l, err := NewFile(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if _, err := l.Next(context.Background()); err == nil {
		t.Error("Next on missing file = nil, want error")
	}
}

func TestMulti(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"n": 1}`)
	b := writeFile(t, dir, "b.jsonl", "{\"n\": 2}\n{\"n\": 3}\n")
	skip := writeFile(t, dir, "c.txt", "not a document")

	t.Run("skips_unsupported", func(t *testing.T) {
		l, err := NewMulti([]string{a, b, skip}, false)
		if err != nil {
			t.Fatalf("NewMulti: %v", err)
		}
		if docs := drain(t, l); len(docs) != 3 {
			t.Errorf("got %d documents, want 3", len(docs))
		}
		if l.Count() != 3 {
			t.Errorf("Count = %d, want 3", l.Count())
		}
	})

	t.Run("strict_rejects_unsupported", func(t *testing.T) {
		_, err := NewMulti([]string{a, skip}, true)
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("error = %v, want ErrUnsupported", err)
		}
	})
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"n": 1}`)
	writeFile(t, dir, "skip.txt", "x")
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "b.json", `{"n": 2}`)

	t.Run("top_level_only", func(t *testing.T) {
		l, err := NewDir([]string{dir}, false, false)
		if err != nil {
			t.Fatalf("NewDir: %v", err)
		}
		if docs := drain(t, l); len(docs) != 1 {
			t.Errorf("got %d documents, want 1", len(docs))
		}
	})

	t.Run("recursive", func(t *testing.T) {
		l, err := NewDir([]string{dir}, true, false)
		if err != nil {
			t.Fatalf("NewDir: %v", err)
		}
		if docs := drain(t, l); len(docs) != 2 {
			t.Errorf("got %d documents, want 2", len(docs))
		}
	})
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"n": 1}`)
	writeFile(t, dir, "b.json", `{"n": 2}`)
	writeFile(t, dir, "c.yaml", "n: 3\n")

	l, err := NewGlob([]string{filepath.Join(dir, "*.json")}, false)
	if err != nil {
		t.Fatalf("NewGlob: %v", err)
	}
	if docs := drain(t, l); len(docs) != 2 {
		t.Errorf("got %d documents, want 2", len(docs))
	}
}

func TestFile_CancelledContext(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.json", `{"n": 1}`)
	l, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
