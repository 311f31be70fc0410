package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"gallery-index/pkg/models"
)

// ObjectStore is the subset of bucket operations the gallery needs
type ObjectStore interface {
	ListObjects(ctx context.Context, prefix string) ([]string, error)
	WriteObject(ctx context.Context, name, contentType string, data []byte) error
	Close() error
}

// gcsStore implements ObjectStore on a Cloud Storage bucket
type gcsStore struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

// NewGCSStore opens a Cloud Storage client for bucketName using default credentials
func NewGCSStore(ctx context.Context, bucketName string) (ObjectStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &gcsStore{client: client, bucket: client.Bucket(bucketName)}, nil
}

func (g *gcsStore) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	it := g.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	var names []string
	for {
		obj, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", err)
		}
		if strings.HasSuffix(obj.Name, "/") {
			continue
		}
		names = append(names, obj.Name)
	}
	return names, nil
}

func (g *gcsStore) WriteObject(ctx context.Context, name, contentType string, data []byte) error {
	name = strings.TrimPrefix(name, "/")

	writer := g.bucket.Object(name).NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "no-cache"

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("Writer.Write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %w", err)
	}
	return nil
}

func (g *gcsStore) Close() error {
	return g.client.Close()
}

// objectStore returns the injected store, or dials Cloud Storage. The release
// func closes a dialed client and is a no-op for injected stores.
func (s *Service) objectStore(ctx context.Context) (ObjectStore, func(), error) {
	if s.store != nil {
		return s.store, func() {}, nil
	}
	store, err := NewGCSStore(ctx, s.config.BucketName)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func (s *Service) buildFromBucket(ctx context.Context) (*models.Gallery, error) {
	store, release, err := s.objectStore(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	prefix := s.config.BucketPrefix()
	names, err := store.ListObjects(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		fmt.Fprintf(s.out, "Photos directory does not exist: %s\n", s.config.BucketURL(prefix))
		return models.NewGallery(), nil
	}

	return s.galleryFromObjects(prefix, names), nil
}

// galleryFromObjects groups object names shaped <prefix><category>/<file>
// into a gallery. Deeper or shallower names are ignored.
func (s *Service) galleryFromObjects(prefix string, names []string) *models.Gallery {
	files := make(map[string][]string)
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		parts := strings.Split(strings.TrimPrefix(name, prefix), "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		if !s.isAllowed(parts[1]) {
			continue
		}
		files[parts[0]] = append(files[parts[0]], parts[1])
	}

	gallery := models.NewGallery()
	for category, filenames := range files {
		s.sortNames(filenames)
		items := make([]models.Item, 0, len(filenames))
		for _, filename := range filenames {
			items = append(items, s.newItem(prefix+category+"/"+filename, filename))
		}
		gallery.Categories[category] = items
	}
	return gallery
}
