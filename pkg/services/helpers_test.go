package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"gallery-index/pkg/config"
)

func newTestService(t *testing.T, root string, opts ...Option) (*Service, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Root = root
	var out bytes.Buffer
	return NewService(&cfg, &out, opts...), &out
}

// writeFiles creates empty files (and their parent dirs) under root.
func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
}

type fakeStore struct {
	objects      []string
	listErr      error
	writeErr     error
	written      map[string][]byte
	contentTypes map[string]string
	prefixes     []string
}

func (f *fakeStore) ListObjects(_ context.Context, prefix string) ([]string, error) {
	f.prefixes = append(f.prefixes, prefix)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var names []string
	for _, name := range f.objects {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeStore) WriteObject(_ context.Context, name, contentType string, data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if f.written == nil {
		f.written = make(map[string][]byte)
		f.contentTypes = make(map[string]string)
	}
	f.written[name] = append([]byte(nil), data...)
	f.contentTypes[name] = contentType
	return nil
}

func (f *fakeStore) Close() error { return nil }
