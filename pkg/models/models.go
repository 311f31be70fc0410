package models

import "sort"

// Gallery is the manifest document consumed by the gallery front end
type Gallery struct {
	Categories map[string][]Item `json:"categories"`
}

// Item represents a single image within a category
type Item struct {
	Src         string `json:"src"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewGallery returns a gallery with an empty, non-nil category map
func NewGallery() *Gallery {
	return &Gallery{Categories: make(map[string][]Item)}
}

// TotalItems returns the number of items across all categories
func (g *Gallery) TotalItems() int {
	total := 0
	for _, items := range g.Categories {
		total += len(items)
	}
	return total
}

// CategoryNames returns the category keys in lexical order
func (g *Gallery) CategoryNames() []string {
	names := make([]string, 0, len(g.Categories))
	for name := range g.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
