// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"reflect"
	"testing"
)

func TestCatalogIndex(t *testing.T) {
	c := NewCatalogIndex([]MovieRecord{
		{ID: 3, Title: "Heat (1995)"},
		{ID: 1, Title: "Toy Story (1995)"},
		{ID: 7, Title: "Sabrina (1995)"},
		{ID: 9, Title: "Heat (1995)"},
	})

	t.Run("titles are sorted and deduplicated", func(t *testing.T) {
		want := []string{"Heat (1995)", "Sabrina (1995)", "Toy Story (1995)"}
		if got := c.Titles(); !reflect.DeepEqual(got, want) {
			t.Errorf("Titles() = %q, want %q", got, want)
		}
		if c.Len() != 3 {
			t.Errorf("Len() = %d, want 3", c.Len())
		}
	})

	t.Run("last duplicate title wins", func(t *testing.T) {
		id, ok := c.Lookup("Heat (1995)")
		if !ok || id != 9 {
			t.Errorf("Lookup(Heat) = (%d, %v), want (9, true)", id, ok)
		}
	})

	t.Run("reverse lookup keeps every id", func(t *testing.T) {
		for _, id := range []int{3, 9} {
			title, ok := c.Title(id)
			if !ok || title != "Heat (1995)" {
				t.Errorf("Title(%d) = (%q, %v), want (Heat (1995), true)", id, title, ok)
			}
		}
	})

	t.Run("unknown lookups report absence", func(t *testing.T) {
		if _, ok := c.Lookup("Missing"); ok {
			t.Error("Lookup(Missing) ok = true, want false")
		}
		if _, ok := c.Title(404); ok {
			t.Error("Title(404) ok = true, want false")
		}
	})

	t.Run("titles are copied", func(t *testing.T) {
		titles := c.Titles()
		titles[0] = "changed"
		if c.Titles()[0] != "Heat (1995)" {
			t.Error("Titles() exposed internal slice")
		}
	})
}

func TestCatalogIndex_Empty(t *testing.T) {
	c := NewCatalogIndex(nil)
	if got := c.Titles(); got == nil || len(got) != 0 {
		t.Errorf("Titles() = %#v, want empty non-nil slice", got)
	}
}
