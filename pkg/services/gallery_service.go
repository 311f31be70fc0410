package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"gallery-index/pkg/config"
	"gallery-index/pkg/logging"
	"gallery-index/pkg/models"
)

// Service builds, writes and publishes gallery manifests
type Service struct {
	config *config.Config
	store  ObjectStore
	out    io.Writer
}

// Option customizes a Service
type Option func(*Service)

// WithObjectStore makes the service use the given store instead of dialing
// Cloud Storage.
func WithObjectStore(store ObjectStore) Option {
	return func(s *Service) {
		s.store = store
	}
}

// NewService creates a service; user-facing diagnostics are written to out.
func NewService(cfg *config.Config, out io.Writer, opts ...Option) *Service {
	if out == nil {
		out = io.Discard
	}
	s := &Service{config: cfg, out: out}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildGallery scans the configured source and returns a fresh gallery
func (s *Service) BuildGallery(ctx context.Context) (*models.Gallery, error) {
	switch s.config.Source {
	case config.SourceGCS:
		logging.Debug("Scanning bucket %s", s.config.BucketURL(s.config.BucketPrefix()))
		return s.buildFromBucket(ctx)
	default:
		logging.Debug("Scanning directory %s", s.config.PhotosPath())
		return s.buildFromDirectory()
	}
}

// Generate builds the gallery, writes the manifest and prints a summary
func (s *Service) Generate(ctx context.Context) (*models.Gallery, string, error) {
	gallery, err := s.BuildGallery(ctx)
	if err != nil {
		return nil, "", err
	}

	path, err := s.WriteManifest(gallery)
	if err != nil {
		return nil, "", err
	}

	fmt.Fprintf(s.out, "Wrote %s with %d photos.\n", path, gallery.TotalItems())
	return gallery, path, nil
}

// GetCategory returns the items of a single category
func (s *Service) GetCategory(ctx context.Context, name string) ([]models.Item, error) {
	gallery, err := s.BuildGallery(ctx)
	if err != nil {
		return nil, err
	}
	items, ok := gallery.Categories[name]
	if !ok {
		return nil, fmt.Errorf("category not found: %s", name)
	}
	return items, nil
}

func (s *Service) isAllowed(filename string) bool {
	_, ext := splitExt(filename)
	if ext == "" {
		return false
	}
	ext = strings.ToLower(ext)
	for _, allowed := range s.config.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (s *Service) sortNames(names []string) {
	if s.config.Sort == config.SortNatural {
		sort.SliceStable(names, func(i, j int) bool {
			return naturalLess(names[i], names[j])
		})
		return
	}
	sort.Strings(names)
}

func (s *Service) newItem(src, filename string) models.Item {
	return models.Item{
		Src:         src,
		Title:       DeriveTitle(filename),
		Description: "",
	}
}

// naturalLess compares strings treating runs of digits as numbers, so
// "img2" sorts before "img10".
func naturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}
		if a[i] != b[j] {
			return a[i] < b[j]
		}
		i++
		j++
	}
	if len(a)-i != len(b)-j {
		return len(a)-i < len(b)-j
	}
	return a < b
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
