package walker

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// parallel reads the tree with fastwalk. Links are never followed by
// fastwalk itself: admit decides, and ErrTraverseLink asks fastwalk to
// descend, so link deduplication stays in one place.
func (w *walk) parallel() error {
	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: w.opts.Workers,
	}

	var mu sync.Mutex
	return fastwalk.Walk(conf, w.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := w.ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			if ferr := w.fail("readdir", path, err); ferr != nil {
				return ferr
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == w.root {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if ferr := w.fail("lstat", path, err); ferr != nil {
				return ferr
			}
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		e, dec := w.admit(path, w.depth(path), info)
		if dec == skip {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := w.emit(e); err != nil {
			return err
		}

		switch {
		case dec == visitAndDescend && e.Link:
			return fastwalk.ErrTraverseLink
		case dec == visitOnly && d.IsDir():
			return filepath.SkipDir
		}
		return nil
	})
}

func (w *walk) depth(path string) int {
	rel := w.rel(path)
	if rel == "." {
		return 0
	}
	return strings.Count(rel, "/") + 1
}
