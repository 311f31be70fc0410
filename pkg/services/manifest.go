package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"

	"gallery-index/pkg/config"
	"gallery-index/pkg/logging"
	"gallery-index/pkg/models"
)

// ErrManifestLocked is returned when another run is writing the same manifest
var ErrManifestLocked = errors.New("manifest is locked by another process")

// EncodeManifest renders the gallery as indented UTF-8 JSON
func EncodeManifest(gallery *models.Gallery) ([]byte, error) {
	// An empty gallery must serialize as {"categories": {}}, never null.
	if gallery == nil || gallery.Categories == nil {
		gallery = models.NewGallery()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(gallery); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteManifest overwrites the configured output file with the gallery and
// returns the path written.
func (s *Service) WriteManifest(gallery *models.Gallery) (string, error) {
	path := s.config.OutputPath()

	data, err := EncodeManifest(gallery)
	if err != nil {
		return "", err
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return "", fmt.Errorf("write manifest: acquire lock: %w", err)
	}
	if !locked {
		return "", fmt.Errorf("write manifest %s: %w", path, ErrManifestLocked)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logging.Warn("Failed to release manifest lock: %v", err)
		}
		_ = os.Remove(lock.Path())
	}()

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	logging.Debug("Wrote %d bytes to %s", len(data), path)
	return path, nil
}

// PublishManifest uploads an encoded manifest to the configured bucket and
// returns its gs:// URL.
func (s *Service) PublishManifest(ctx context.Context, data []byte) (string, error) {
	if s.config.BucketName == "" {
		return "", config.ErrBucketNameNotSet
	}

	store, release, err := s.objectStore(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	name := s.config.BucketObject
	if err := store.WriteObject(ctx, name, "application/json", data); err != nil {
		return "", fmt.Errorf("upload manifest: %w", err)
	}

	url := s.config.BucketURL(name)
	logging.Info("Published manifest to %s", url)
	return url, nil
}
