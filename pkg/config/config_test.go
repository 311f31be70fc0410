package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GALLERY_CONFIG", "GALLERY_ROOT", "GALLERY_PHOTOS_DIR", "GALLERY_OUTPUT",
		"GALLERY_SORT", "GALLERY_SOURCE", "BUCKET_NAME", "GALLERY_BUCKET_OBJECT",
		"GALLERY_EXTENSIONS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	t.Setenv("GALLERY_ROOT", root)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.PhotosPath() != filepath.Join(root, "photos") {
		t.Errorf("PhotosPath() = %q", cfg.PhotosPath())
	}
	if cfg.OutputPath() != filepath.Join(root, "gallery.json") {
		t.Errorf("OutputPath() = %q", cfg.OutputPath())
	}
	if cfg.Sort != SortLexical || cfg.Source != SourceLocal {
		t.Errorf("unexpected sort/source: %q/%q", cfg.Sort, cfg.Source)
	}
	want := []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}
	if !reflect.DeepEqual(cfg.Extensions, want) {
		t.Errorf("Extensions = %v, want %v", cfg.Extensions, want)
	}
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.toml")
	content := `
root = "` + filepath.ToSlash(dir) + `"
photos_dir = "images"
output = "out/manifest.json"
extensions = ["JPG", "png", ".PNG"]
sort = "Natural"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GALLERY_OUTPUT", "site.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.PhotosPath() != filepath.Join(dir, "images") {
		t.Errorf("PhotosPath() = %q", cfg.PhotosPath())
	}
	if cfg.OutputPath() != filepath.Join(dir, "site.json") {
		t.Errorf("env should override file output, got %q", cfg.OutputPath())
	}
	if cfg.Sort != SortNatural {
		t.Errorf("Sort = %q, want natural", cfg.Sort)
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{".jpg", ".png"}) {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
}

func TestLoadMissingExplicitConfig(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoadMalformedConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("sort = [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"valid", func(*Config) {}, nil},
		{"bad sort", func(c *Config) { c.Sort = "random" }, ErrInvalidSort},
		{"bad source", func(c *Config) { c.Source = "ftp" }, ErrInvalidSource},
		{"gcs without bucket", func(c *Config) { c.Source = SourceGCS }, ErrBucketNameNotSet},
		{"gcs with bucket", func(c *Config) { c.Source = SourceGCS; c.BucketName = "photos" }, nil},
		{"no extensions", func(c *Config) { c.Extensions = nil }, ErrNoExtensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{" JPG", ".jpeg", "", ".", "jpg", "WebP"})
	want := []string{".jpg", ".jpeg", ".webp"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeExtensions() = %v, want %v", got, want)
	}
}

func TestBucketPrefixAndURL(t *testing.T) {
	cfg := Default()
	cfg.BucketName = "my-bucket"

	if got := cfg.BucketPrefix(); got != "photos/" {
		t.Errorf("BucketPrefix() = %q", got)
	}
	cfg.PhotosDir = "/media/photos/"
	if got := cfg.BucketPrefix(); got != "media/photos/" {
		t.Errorf("BucketPrefix() = %q", got)
	}
	cfg.PhotosDir = "."
	if got := cfg.BucketPrefix(); got != "" {
		t.Errorf("BucketPrefix() = %q, want empty", got)
	}
	if got := cfg.BucketURL("/gallery.json"); got != "gs://my-bucket/gallery.json" {
		t.Errorf("BucketURL() = %q", got)
	}
}

func TestAbsolutePathsAreKept(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	photos := filepath.Join(t.TempDir(), "elsewhere")
	t.Setenv("GALLERY_ROOT", root)
	t.Setenv("GALLERY_PHOTOS_DIR", photos)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PhotosPath() != photos {
		t.Errorf("PhotosPath() = %q, want %q", cfg.PhotosPath(), photos)
	}
}
