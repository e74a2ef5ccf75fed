package model

import (
	"fmt"
	"strings"
)

// Kind is the type of a filesystem item. Values are bit flags so a set of
// kinds can be used as a filter.
type Kind uint8

const (
	Undefined Kind = 0
	Folder    Kind = 1 << (iota - 1)
	File
	Sequence
	Link

	All = Folder | File | Sequence | Link
)

// String returns the lower-case name of a single kind.
func (k Kind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case Folder:
		return "folder"
	case File:
		return "file"
	case Sequence:
		return "sequence"
	case Link:
		return "link"
	case All:
		return "all"
	}

	var parts []string
	for _, single := range []Kind{Folder, File, Sequence, Link} {
		if k&single != 0 {
			parts = append(parts, single.String())
		}
	}
	return strings.Join(parts, "|")
}

// Has reports whether every flag of o is set in k.
func (k Kind) Has(o Kind) bool { return o != Undefined && k&o == o }

// ParseKind reads a kind name as printed by String. "auto" and the empty
// string give Undefined, meaning the kind should be detected from the path.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Undefined, nil
	case "folder", "dir", "directory":
		return Folder, nil
	case "file":
		return File, nil
	case "sequence", "seq":
		return Sequence, nil
	case "link", "symlink":
		return Link, nil
	case "all":
		return All, nil
	}
	return Undefined, fmt.Errorf("unknown item kind %q", s)
}
