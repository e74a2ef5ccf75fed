package browse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sadopc/itemstat/internal/sequence"
)

var reCStyle = regexp.MustCompile(`%([0-9]*)d`)

// filterRegexp translates a filter into an anchored regular expression.
// "%04d" becomes "####" first; '#' matches one digit and '@' a number,
// both with an optional sign when negative frames are detected.
func filterRegexp(filter string, opts sequence.Detection) string {
	filter = reCStyle.ReplaceAllStringFunc(filter, func(m string) string {
		n, err := strconv.Atoi(strings.TrimSuffix(m[1:], "d"))
		if err != nil || n == 0 {
			return "@"
		}
		return strings.Repeat("#", n)
	})

	sign := opts&sequence.DetectNegative != 0
	var b strings.Builder
	b.WriteByte('^')
	inNumber := false
	for _, r := range filter {
		isNumber := r == '#' || r == '@'
		if isNumber && !inNumber && sign {
			b.WriteString(`[\-+]?`)
		}
		inNumber = isNumber

		switch r {
		case '*':
			b.WriteString("(.*)")
		case '?':
			b.WriteString("(.)")
		case '#':
			b.WriteString("[0-9]")
		case '@':
			b.WriteString("[0-9]+")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteByte('$')
	return b.String()
}

// compileFilters returns a matcher accepting names matched by any of the
// regular expressions, or every name when there is none.
func compileFilters(exprs []string) (func(string) bool, error) {
	if len(exprs) == 0 {
		return func(string) bool { return true }, nil
	}

	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		res = append(res, re)
	}
	return func(name string) bool {
		for _, re := range res {
			if re.MatchString(name) {
				return true
			}
		}
		return false
	}, nil
}

// digitWildcard matches name with any digit in place of each of its
// digits, so that the other frames of the same sequence match too.
func digitWildcard(name string) string {
	var b strings.Builder
	b.WriteByte('^')
	for _, r := range name {
		if r >= '0' && r <= '9' {
			b.WriteString("[0-9]")
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	b.WriteByte('$')
	return b.String()
}

// literal matches name only.
func literal(name string) string {
	return "^" + regexp.QuoteMeta(name) + "$"
}
