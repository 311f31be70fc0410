package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Supported sort collations
const (
	SortLexical = "lexical"
	SortNatural = "natural"
)

// Supported gallery sources
const (
	SourceLocal = "local"
	SourceGCS   = "gcs"
)

// DefaultConfigFile is looked up in the working directory when no config path is given
const DefaultConfigFile = "gallery.toml"

// Config holds all configuration for the application
type Config struct {
	Root         string   `toml:"root"`
	PhotosDir    string   `toml:"photos_dir"`
	Output       string   `toml:"output"`
	Extensions   []string `toml:"extensions"`
	Sort         string   `toml:"sort"`
	Source       string   `toml:"source"`
	BucketName   string   `toml:"bucket"`
	BucketObject string   `toml:"bucket_object"`
}

// ErrBucketNameNotSet is returned when a bucket is required but BUCKET_NAME is not set
var ErrBucketNameNotSet = errors.New("BUCKET_NAME environment variable not set")

// ErrInvalidSort is returned when the sort collation is not recognized
var ErrInvalidSort = errors.New("sort must be one of: lexical, natural")

// ErrInvalidSource is returned when the gallery source is not recognized
var ErrInvalidSource = errors.New("source must be one of: local, gcs")

// ErrNoExtensions is returned when the extension allow-list is empty
var ErrNoExtensions = errors.New("at least one image extension is required")

// ErrConfigNotFound is returned when an explicitly named config file is missing
var ErrConfigNotFound = errors.New("config file not found")

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		PhotosDir:    "photos",
		Output:       "gallery.json",
		Extensions:   []string{".jpg", ".jpeg", ".png", ".webp", ".gif"},
		Sort:         SortLexical,
		Source:       SourceLocal,
		BucketObject: "gallery.json",
	}
}

// Load builds the configuration from defaults, an optional TOML file and
// environment variables, in that order of precedence (lowest first).
func Load(path string) (*Config, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = os.Getenv("GALLERY_CONFIG")
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return path, true, nil
	}

	if info, err := os.Stat(DefaultConfigFile); err == nil && !info.IsDir() {
		return DefaultConfigFile, true, nil
	}
	return "", false, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"GALLERY_ROOT":          &c.Root,
		"GALLERY_PHOTOS_DIR":    &c.PhotosDir,
		"GALLERY_OUTPUT":        &c.Output,
		"GALLERY_SORT":          &c.Sort,
		"GALLERY_SOURCE":        &c.Source,
		"BUCKET_NAME":           &c.BucketName,
		"GALLERY_BUCKET_OBJECT": &c.BucketObject,
	}
	for key, target := range overrides {
		if value := os.Getenv(key); value != "" {
			*target = value
		}
	}

	if value := os.Getenv("GALLERY_EXTENSIONS"); value != "" {
		c.Extensions = strings.Split(value, ",")
	}
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Root) == "" {
		c.Root = DefaultRoot()
	}
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	c.Root = root

	if c.PhotosDir == "" {
		c.PhotosDir = Default().PhotosDir
	}
	if c.Output == "" {
		c.Output = Default().Output
	}
	if c.BucketObject == "" {
		c.BucketObject = Default().BucketObject
	}

	c.Sort = strings.ToLower(strings.TrimSpace(c.Sort))
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	c.BucketName = strings.TrimSpace(c.BucketName)
	c.Extensions = NormalizeExtensions(c.Extensions)
	return nil
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	switch c.Sort {
	case SortLexical, SortNatural:
	default:
		return fmt.Errorf("%w (got %q)", ErrInvalidSort, c.Sort)
	}

	switch c.Source {
	case SourceLocal:
	case SourceGCS:
		if c.BucketName == "" {
			return ErrBucketNameNotSet
		}
	default:
		return fmt.Errorf("%w (got %q)", ErrInvalidSource, c.Source)
	}

	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}
	return nil
}

// NormalizeExtensions lower-cases extensions, ensures a leading dot and drops
// blanks and duplicates while keeping the original order.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}

// DefaultRoot returns the repository root relative to the running binary:
// the parent of the directory holding the executable.
func DefaultRoot() string {
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe))
}

// PhotosPath returns the absolute photos directory for local scans
func (c *Config) PhotosPath() string {
	if filepath.IsAbs(c.PhotosDir) {
		return filepath.Clean(c.PhotosDir)
	}
	return filepath.Join(c.Root, c.PhotosDir)
}

// OutputPath returns the absolute manifest path
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.Output) {
		return filepath.Clean(c.Output)
	}
	return filepath.Join(c.Root, c.Output)
}

// BucketPrefix returns the object prefix under which category folders live
func (c *Config) BucketPrefix() string {
	prefix := strings.Trim(filepath.ToSlash(c.PhotosDir), "/")
	if prefix == "" || prefix == "." {
		return ""
	}
	return prefix + "/"
}

// BucketURL returns a gs:// URL for the given object name
func (c *Config) BucketURL(name string) string {
	return fmt.Sprintf("gs://%s/%s", c.BucketName, strings.TrimPrefix(name, "/"))
}
