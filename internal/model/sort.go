package model

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// SortConfig holds item ordering preferences.
type SortConfig struct {
	// DirsFirst keeps folders before every other kind.
	DirsFirst bool
	// FoldCase compares names case-insensitively.
	FoldCase bool
}

// DefaultSort keeps folders first and ignores case.
func DefaultSort() SortConfig {
	return SortConfig{DirsFirst: true, FoldCase: true}
}

// SortItems sorts items in place by natural filename order.
func SortItems(items []Item, cfg SortConfig) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		if cfg.DirsFirst {
			aDir, bDir := a.Kind() == Folder, b.Kind() == Folder
			if aDir != bDir {
				return aDir
			}
		}

		an, bn := a.Filename(), b.Filename()
		if cfg.FoldCase {
			an, bn = strings.ToLower(an), strings.ToLower(bn)
		}
		if an != bn {
			return natural.Less(an, bn)
		}
		return a.Path() < b.Path()
	})
}

// SortNames sorts plain names in natural order.
func SortNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return natural.Less(names[i], names[j])
	})
}
