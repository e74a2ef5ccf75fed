package model

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/sadopc/itemstat/internal/sequence"
)

// Item is a typed reference to a filesystem path. A Sequence item also
// carries the detected sequence; its path is the folder joined with the
// sequence's standard pattern.
type Item struct {
	kind   Kind
	path   string
	seq    *sequence.Sequence
	folder string
}

// New checks that path can be resolved to kind and returns the item.
// A symlink to a directory is a valid Folder. Sequence items are built
// with NewSequence.
func New(kind Kind, path string) (Item, error) {
	if path == "" {
		return Item{}, &InvalidPathError{Path: path, Kind: kind, Err: errors.New("empty path")}
	}

	switch kind {
	case Folder:
		info, err := os.Stat(path)
		if err != nil {
			return Item{}, &InvalidPathError{Path: path, Kind: kind, Err: err}
		}
		if !info.IsDir() {
			return Item{}, &InvalidPathError{Path: path, Kind: kind, Err: errors.New("not a directory")}
		}
	case File:
		info, err := os.Lstat(path)
		if err != nil {
			return Item{}, &InvalidPathError{Path: path, Kind: kind, Err: err}
		}
		if !info.Mode().IsRegular() {
			return Item{}, &InvalidPathError{Path: path, Kind: kind, Err: errors.New("not a regular file")}
		}
	case Link:
		info, err := os.Lstat(path)
		if err != nil {
			return Item{}, &InvalidPathError{Path: path, Kind: kind, Err: err}
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return Item{}, &InvalidPathError{Path: path, Kind: kind, Err: errors.New("not a symbolic link")}
		}
	case Sequence:
		return Item{}, &InvalidPathError{Path: path, Kind: kind, Err: errors.New("sequence items need a detected sequence")}
	default:
		return Item{}, &InvalidPathError{Path: path, Kind: kind, Err: errors.New("undefined kind")}
	}

	return Item{kind: kind, path: filepath.Clean(path)}, nil
}

// NewSequence builds the item of a sequence stored in folder.
func NewSequence(seq sequence.Sequence, folder string) Item {
	folder = filepath.Clean(folder)
	return Item{
		kind:   Sequence,
		path:   filepath.Join(folder, seq.StandardPattern()),
		seq:    &seq,
		folder: folder,
	}
}

// FromPath classifies path and returns the matching item.
func FromPath(path string) (Item, error) {
	kind := ClassifyPath(path)
	if kind == Undefined {
		_, err := os.Lstat(path)
		if err == nil {
			err = errors.New("unsupported file type")
		}
		return Item{}, &InvalidPathError{Path: path, Err: err}
	}
	return New(kind, path)
}

// ClassifyPath returns Link, Folder or File for an existing path and
// Undefined otherwise. It never returns Sequence.
func ClassifyPath(path string) Kind {
	info, err := os.Lstat(path)
	if err != nil {
		return Undefined
	}
	mode := info.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		return Link
	case mode.IsDir():
		return Folder
	case mode.IsRegular():
		return File
	}
	return Undefined
}

func (it Item) Kind() Kind   { return it.kind }
func (it Item) Path() string { return it.path }

// Filename is the last path element, the standard pattern for a sequence.
func (it Item) Filename() string {
	if it.kind == Sequence {
		return it.seq.StandardPattern()
	}
	return filepath.Base(it.path)
}

// Folder is the directory holding the item.
func (it Item) Folder() string {
	if it.kind == Sequence {
		return it.folder
	}
	return filepath.Dir(it.path)
}

// Sequence returns the sequence of a Sequence item, nil otherwise.
func (it Item) Sequence() *sequence.Sequence {
	if it.seq == nil {
		return nil
	}
	s := *it.seq
	return &s
}

// FramePaths lists the path of every frame of a Sequence item.
func (it Item) FramePaths() []string {
	if it.kind != Sequence {
		return nil
	}
	files := it.seq.Files()
	for i, name := range files {
		files[i] = filepath.Join(it.folder, name)
	}
	return files
}

// Explode returns one item per frame of a Sequence item, classified from
// the filesystem. Other items are returned alone.
func (it Item) Explode() []Item {
	if it.kind != Sequence {
		return []Item{it}
	}
	paths := it.FramePaths()
	out := make([]Item, 0, len(paths))
	for _, p := range paths {
		out = append(out, Item{kind: ClassifyPath(p), path: p})
	}
	return out
}

func (it Item) String() string {
	if it.kind == Sequence {
		return filepath.Join(it.folder, it.seq.String())
	}
	return it.path
}
