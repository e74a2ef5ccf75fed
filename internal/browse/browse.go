// Package browse lists directories as items, folding numbered files into
// sequences.
package browse

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/sadopc/itemstat/internal/logger"
	"github.com/sadopc/itemstat/internal/model"
	"github.com/sadopc/itemstat/internal/sequence"
)

// Options configures Browse.
type Options struct {
	Detection sequence.Detection
	// Filters are glob-like patterns; a name is kept when it matches any.
	// Besides '*' and '?', '#' stands for one digit, '@' for a number and
	// "%04d" for a padded number.
	Filters []string
	// Kinds selects the item kinds returned. Undefined means all.
	Kinds model.Kind
	Sort  model.SortConfig
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		Detection: sequence.DetectDefault,
		Kinds:     model.All,
		Sort:      model.DefaultSort(),
	}
}

// Browse returns the items found at path.
//
// A directory is listed. An existing file lists its own directory,
// restricted to the file or, with DetectFromFilename, to the names that
// only differ from it by their digits. A missing path lists its parent
// with the last element as filter; nothing is returned when the parent
// is missing too.
func Browse(path string, opts Options) ([]model.Item, error) {
	dir, target, ok, err := research(path, opts)
	if err != nil || !ok {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, model.WrapFS("readdir", dir, err)
	}

	filters := make([]string, 0, len(opts.Filters))
	for _, f := range opts.Filters {
		filters = append(filters, filterRegexp(f, opts.Detection))
	}
	match, err := compileFilters(filters)
	if err != nil {
		return nil, &model.InvalidPathError{Path: path, Err: err}
	}
	if target != "" {
		re, err := regexp.Compile(target)
		if err != nil {
			return nil, &model.InvalidPathError{Path: path, Err: err}
		}
		userMatch := match
		match = func(name string) bool { return re.MatchString(name) && userMatch(name) }
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if match(e.Name()) {
			names = append(names, e.Name())
		}
	}

	log := logger.With("dir", dir)
	res := sequence.Detect(names, opts.Detection)

	kinds := opts.Kinds
	if kinds == model.Undefined {
		kinds = model.All
	}

	var items []model.Item
	keep := func(it model.Item) {
		if kinds.Has(it.Kind()) {
			items = append(items, it)
		}
	}

	for _, name := range res.Files {
		it, err := model.FromPath(filepath.Join(dir, name))
		if err != nil {
			log.Debug("skipping entry", "name", name, "err", err)
			continue
		}
		keep(it)
	}

	for _, seq := range res.Sequences {
		it := model.NewSequence(seq, dir)
		if model.ClassifyPath(filepath.Join(dir, seq.FirstFilename())) != model.Folder {
			keep(it)
			continue
		}
		// numbered directories are not a sequence
		for _, frame := range it.Explode() {
			if frame.Kind() == model.Undefined {
				continue
			}
			keep(frame)
		}
	}

	model.SortItems(items, opts.Sort)
	log.Debug("browsed", "items", len(items), "sequences", len(res.Sequences))
	return items, nil
}

// research resolves the directory to list and, when path names an entry
// inside it, the regular expression restricting the listing to that entry.
func research(path string, opts Options) (string, string, bool, error) {
	if path == "" {
		path = "."
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return path, "", true, nil
	case err == nil:
		name := filepath.Base(path)
		if opts.Detection&sequence.DetectFromFilename != 0 {
			return filepath.Dir(path), digitWildcard(name), true, nil
		}
		return filepath.Dir(path), literal(name), true, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", "", false, model.WrapFS("stat", path, err)
	}

	parent := filepath.Dir(path)
	if info, err := os.Stat(parent); err != nil || !info.IsDir() {
		return "", "", false, nil
	}
	return parent, filterRegexp(filepath.Base(path), opts.Detection), true, nil
}

// BrowseSequence looks up the frames of a sequence given by its pattern,
// "dir/shot.####.exr" for instance. A path without directory is searched
// in the working directory. It returns false when the last element is not
// a pattern accepted by accept. A missing directory gives a sequence
// without frames.
func BrowseSequence(pattern string, accept sequence.Pattern) (sequence.Sequence, bool, error) {
	dir, name := filepath.Split(pattern)
	if dir == "" {
		dir = "."
	}

	seq, ok := sequence.ParsePattern(name, accept)
	if !ok {
		return sequence.Sequence{}, false, nil
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return seq, true, nil
	}
	if err != nil {
		return sequence.Sequence{}, true, model.WrapFS("readdir", dir, err)
	}

	var times []int64
	seen := make(map[int64]bool)
	for _, e := range entries {
		t, ok := seq.Matches(e.Name())
		if !ok || seen[t] {
			continue
		}
		seen[t] = true
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	seq.Ranges = sequence.ExtractRanges(times)
	return seq, true, nil
}
