// Package walker traverses a directory tree, handing every entry under the
// root to a visitor exactly once.
//
// The default traversal is sequential and reads each directory in natural
// name order, which makes output stable. With Workers > 1 the tree is read
// by fastwalk in parallel; the visitor is still called from one goroutine
// at a time, so callers never need their own locking.
package walker

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/itemstat/internal/logger"
	"github.com/sadopc/itemstat/internal/model"
)

// Options configures a walk.
type Options struct {
	// FollowLinks resolves symbolic links. Directories reached through
	// links are deduplicated by device and inode, so cycles and aliases
	// are read once.
	FollowLinks bool
	// OneFileSystem does not descend into directories living on another
	// device than the root. The directory entry itself is still visited.
	OneFileSystem bool
	// Exclude holds gitignore-style patterns matched relative to the root.
	Exclude []string
	// SkipHidden skips entries whose name starts with a dot.
	SkipHidden bool
	// MaxDepth limits the depth of visited entries, 0 for no limit.
	// Direct children of the root are at depth 1.
	MaxDepth int
	// Workers > 1 reads directories in parallel.
	Workers int
	// OnError is called for entries that cannot be read. Returning nil
	// skips the entry; any other error aborts the walk. When nil, the
	// first failure aborts.
	OnError func(path string, err error) error
	// Progress, when set, receives counters every ProgressInterval and
	// once more when the walk ends.
	Progress         func(Progress)
	ProgressInterval time.Duration
	Logger           logger.Logger
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		ProgressInterval: 100 * time.Millisecond,
	}
}

// Entry is a visited filesystem entry.
type Entry struct {
	// Path is the full path under the resolved root.
	Path string
	// Rel is the slash-separated path relative to the root.
	Rel   string
	Depth int
	// Info is the lstat of the entry, or the stat of the target when the
	// entry is a followed link.
	Info fs.FileInfo
	// Link is set for symbolic links, followed or not.
	Link bool
}

// IsDir reports whether the entry is a directory, or a link followed to
// one.
func (e Entry) IsDir() bool { return e.Info.IsDir() }

// Name is the last element of Path.
func (e Entry) Name() string { return filepath.Base(e.Path) }

// VisitFunc receives entries. A non-nil error aborts the walk.
type VisitFunc func(Entry) error

// Walk visits every entry under root. The root itself is not visited. A
// symlink root is resolved first.
func Walk(ctx context.Context, root string, opts Options, visit VisitFunc) error {
	w, err := newWalk(ctx, root, opts, visit)
	if err != nil {
		return err
	}

	w.startProgress()
	if opts.Workers > 1 {
		err = w.parallel()
	} else {
		err = w.sequential()
	}
	w.stopProgress()

	if err != nil {
		return err
	}
	return ctx.Err()
}

// Root resolves the directory a walk of path starts from.
func Root(path string) (string, fs.FileInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, &model.InvalidPathError{Path: path, Kind: model.Folder, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", nil, model.WrapFS("stat", abs, err)
	}
	if !info.IsDir() {
		return "", nil, &model.InvalidPathError{Path: path, Kind: model.Folder, Err: errors.New("not a directory")}
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return abs, info, nil
}

type walk struct {
	ctx     context.Context
	root    string
	rootDev uint64
	opts    Options
	visit   VisitFunc
	exclude *excluder
	log     logger.Logger

	// seen holds directories already read, used when following links.
	seen map[inodeKey]bool

	counters counters
	progress progressLoop
}

func newWalk(ctx context.Context, root string, opts Options, visit VisitFunc) (*walk, error) {
	abs, info, err := Root(root)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.Get()
	}

	w := &walk{
		ctx:     ctx,
		root:    abs,
		opts:    opts,
		visit:   visit,
		exclude: newExcluder(abs, opts.Exclude),
		log:     log.With("root", abs),
		seen:    make(map[inodeKey]bool),
	}
	if sys, ok := SysOf(info); ok {
		w.rootDev = sys.Dev
		w.seen[inodeKey{dev: sys.Dev, ino: sys.Ino}] = true
	}
	return w, nil
}

// fail routes a read failure through OnError. Failures on the root are
// always returned: a walk that cannot read its root has no result.
func (w *walk) fail(op, path string, err error) error {
	if ctxErr := w.ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	err = model.WrapFS(op, path, err)
	w.counters.errors.Add(1)
	if w.opts.OnError == nil || filepath.Clean(path) == w.root {
		return err
	}
	if herr := w.opts.OnError(path, err); herr != nil {
		return herr
	}
	w.log.Debug("skipped unreadable entry", "path", path, "err", err)
	return nil
}

// decision is the outcome of admit for one entry.
type decision int

const (
	skip decision = iota
	visitOnly
	visitAndDescend
)

// admit applies the filters to an entry read from a directory and
// resolves links. It must be called with the visitor lock held.
func (w *walk) admit(path string, depth int, lst fs.FileInfo) (Entry, decision) {
	name := lst.Name()
	if w.opts.SkipHidden && strings.HasPrefix(name, ".") {
		return Entry{}, skip
	}
	if w.opts.MaxDepth > 0 && depth > w.opts.MaxDepth {
		return Entry{}, skip
	}

	e := Entry{Path: path, Rel: w.rel(path), Depth: depth, Info: lst}
	if lst.Mode()&fs.ModeSymlink != 0 {
		e.Link = true
		if w.opts.FollowLinks {
			if target, err := os.Stat(path); err == nil {
				e.Info = target
			} else {
				w.log.Debug("dangling link", "path", path, "err", err)
			}
		}
	}

	if w.exclude.match(path, e.IsDir()) {
		w.log.Debug("excluded", "path", e.Rel)
		return Entry{}, skip
	}

	if !e.IsDir() {
		return e, visitOnly
	}
	if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
		return e, visitOnly
	}

	sys, ok := SysOf(e.Info)
	if ok && w.opts.OneFileSystem && sys.Dev != w.rootDev {
		w.log.Debug("not crossing device boundary", "path", e.Rel, "dev", sys.Dev)
		return e, visitOnly
	}
	if ok && w.opts.FollowLinks {
		key := inodeKey{dev: sys.Dev, ino: sys.Ino}
		if w.seen[key] {
			w.log.Debug("directory already visited", "path", e.Rel)
			return e, visitOnly
		}
		w.seen[key] = true
	}
	return e, visitAndDescend
}

// emit counts and visits an admitted entry.
func (w *walk) emit(e Entry) error {
	w.progress.setCurrent(e.Path)
	switch {
	case e.IsDir():
		w.counters.dirs.Add(1)
	case e.Link && !w.opts.FollowLinks:
		w.counters.links.Add(1)
	default:
		w.counters.files.Add(1)
		w.counters.bytes.Add(e.Info.Size())
	}
	return w.visit(e)
}

func (w *walk) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
