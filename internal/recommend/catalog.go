// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "sort"

// CatalogIndex is the bidirectional title <-> movie id mapping.
// When several movies share a title the last one read owns the title.
type CatalogIndex struct {
	byTitle map[string]int
	byID    map[int]string
	titles  []string
}

// NewCatalogIndex builds the index from movie records in source order.
func NewCatalogIndex(movies []MovieRecord) *CatalogIndex {
	c := &CatalogIndex{
		byTitle: make(map[string]int, len(movies)),
		byID:    make(map[int]string, len(movies)),
	}
	for _, m := range movies {
		c.byTitle[m.Title] = m.ID
		c.byID[m.ID] = m.Title
	}

	c.titles = make([]string, 0, len(c.byTitle))
	for title := range c.byTitle {
		c.titles = append(c.titles, title)
	}
	sort.Strings(c.titles)

	return c
}

// Lookup resolves a title to its movie id.
func (c *CatalogIndex) Lookup(title string) (int, bool) {
	id, ok := c.byTitle[title]
	return id, ok
}

// Title resolves a movie id to its title.
func (c *CatalogIndex) Title(movieID int) (string, bool) {
	title, ok := c.byID[movieID]
	return title, ok
}

// Titles returns every distinct title in lexicographic order.
func (c *CatalogIndex) Titles() []string {
	out := make([]string, len(c.titles))
	copy(out, c.titles)
	return out
}

// Len returns the number of distinct titles.
func (c *CatalogIndex) Len() int {
	return len(c.titles)
}
