package walker

import (
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// excluder matches paths against gitignore-style patterns rooted at the
// walk root.
type excluder struct {
	matcher gitignore.IgnoreMatcher
}

func newExcluder(root string, patterns []string) *excluder {
	var lines []string
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	if len(lines) == 0 {
		return &excluder{}
	}

	var m gitignore.IgnoreMatcher = gitignore.NewGitIgnoreFromReader(root, strings.NewReader(strings.Join(lines, "\n")))
	return &excluder{matcher: m}
}

// match reports whether path, an absolute path under the root, is excluded.
func (x *excluder) match(path string, isDir bool) bool {
	if x == nil || x.matcher == nil {
		return false
	}
	return x.matcher.Match(path, isDir)
}
