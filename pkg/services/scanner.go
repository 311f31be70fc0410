package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gallery-index/pkg/logging"
	"gallery-index/pkg/models"
)

// buildFromDirectory walks <photos>/<category>/<file> on the local filesystem.
// Only one level of category folders is read; nested folders are ignored.
func (s *Service) buildFromDirectory() (*models.Gallery, error) {
	gallery := models.NewGallery()
	photosDir := s.config.PhotosPath()

	entries, err := os.ReadDir(photosDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(s.out, "Photos directory does not exist: %s\n", photosDir)
			return gallery, nil
		}
		return nil, fmt.Errorf("read photos directory: %w", err)
	}

	categories := make([]string, 0, len(entries))
	for _, entry := range entries {
		if isDirEntry(photosDir, entry) {
			categories = append(categories, entry.Name())
		}
	}
	s.sortNames(categories)

	for _, category := range categories {
		items, err := s.scanCategory(filepath.Join(photosDir, category))
		if err != nil {
			logging.Warn("Skipping category %s: %v", category, err)
			continue
		}
		if len(items) == 0 {
			logging.Debug("Category %s has no images", category)
			continue
		}
		gallery.Categories[category] = items
	}

	return gallery, nil
}

func (s *Service) scanCategory(dir string) ([]models.Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !isFileEntry(dir, entry) {
			continue
		}
		if !s.isAllowed(entry.Name()) {
			logging.Debug("Ignoring %s", filepath.Join(dir, entry.Name()))
			continue
		}
		files = append(files, entry.Name())
	}
	s.sortNames(files)

	items := make([]models.Item, 0, len(files))
	for _, name := range files {
		items = append(items, s.newItem(s.relativeSrc(filepath.Join(dir, name)), name))
	}
	return items, nil
}

// relativeSrc returns path relative to the repository root with forward slashes.
func (s *Service) relativeSrc(path string) string {
	rel, err := filepath.Rel(s.config.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func isDirEntry(dir string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		return err == nil && info.IsDir()
	}
	return entry.IsDir()
}

func isFileEntry(dir string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		return err == nil && info.Mode().IsRegular()
	}
	return entry.Type().IsRegular()
}
