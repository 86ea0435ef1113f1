// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package search provides prefix lookup over the catalog title listing.
//
// TitleIndex is built once from the sorted listing and is read-only
// afterwards, so lookups need no locking. Matching is case-insensitive
// using Unicode case folding:
//
//	idx := search.NewTitleIndex(engine.Titles(), 10)
//	idx.Complete("star w", 0) // ["Star Wars (1977)"]
package search

import (
	"sort"

	"golang.org/x/text/cases"
)

// DefaultMaxResults caps Complete when no limit is given.
const DefaultMaxResults = 10

type trieNode struct {
	children map[rune]*trieNode
	// titles ending at this node. Several titles can fold to the same key.
	titles []string
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// TitleIndex is a case-folded prefix tree of titles.
type TitleIndex struct {
	root       *trieNode
	size       int
	maxResults int
}

// NewTitleIndex indexes titles. Empty titles are skipped and duplicates are
// stored once. maxResults <= 0 selects DefaultMaxResults.
func NewTitleIndex(titles []string, maxResults int) *TitleIndex {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	idx := &TitleIndex{
		root:       newTrieNode(),
		maxResults: maxResults,
	}
	for _, title := range titles {
		idx.insert(title)
	}
	return idx
}

func (x *TitleIndex) insert(title string) {
	if title == "" {
		return
	}
	node := x.root
	for _, ch := range foldKey(title) {
		next := node.children[ch]
		if next == nil {
			next = newTrieNode()
			node.children[ch] = next
		}
		node = next
	}
	for _, existing := range node.titles {
		if existing == title {
			return
		}
	}
	node.titles = append(node.titles, title)
	sort.Strings(node.titles)
	x.size++
}

// Len returns the number of indexed titles.
func (x *TitleIndex) Len() int {
	return x.size
}

// Complete returns up to limit titles starting with prefix, ignoring case,
// in folded lexical order. limit <= 0 or above the index maximum is clamped
// to the maximum. An empty prefix matches every title.
func (x *TitleIndex) Complete(prefix string, limit int) []string {
	if limit <= 0 || limit > x.maxResults {
		limit = x.maxResults
	}

	out := []string{}
	node := x.find(prefix)
	if node == nil {
		return out
	}
	collect(node, limit, &out)
	return out
}

func (x *TitleIndex) find(prefix string) *trieNode {
	node := x.root
	for _, ch := range foldKey(prefix) {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

// foldKey case-folds s. A Caser keeps state, so each call gets its own.
func foldKey(s string) string {
	return cases.Fold().String(s)
}

// collect walks node depth-first with children in rune order, so shorter
// keys come before their extensions.
func collect(node *trieNode, limit int, out *[]string) {
	for _, title := range node.titles {
		if len(*out) >= limit {
			return
		}
		*out = append(*out, title)
	}

	keys := make([]rune, 0, len(node.children))
	for ch := range node.children {
		keys = append(keys, ch)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, ch := range keys {
		if len(*out) >= limit {
			return
		}
		collect(node.children[ch], limit, out)
	}
}
