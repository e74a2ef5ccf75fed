package walker

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
)

func (w *walk) sequential() error {
	return w.readDir(w.root, 1)
}

// readDir visits the entries of dir in natural order and recurses into
// subdirectories depth-first.
func (w *walk) readDir(dir string, depth int) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return w.fail("readdir", dir, err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return natural.Less(entries[i].Name(), entries[j].Name())
	})

	for _, de := range entries {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, de.Name())
		info, err := de.Info()
		if err != nil {
			if ferr := w.fail("lstat", path, err); ferr != nil {
				return ferr
			}
			continue
		}

		e, d := w.admit(path, depth, info)
		if d == skip {
			continue
		}
		if err := w.emit(e); err != nil {
			return err
		}
		if d == visitAndDescend {
			if err := w.readDir(path, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
