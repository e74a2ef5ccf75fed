package sequence

import (
	"regexp"
	"strconv"
)

// Pattern selects which filename pattern syntaxes ParsePattern accepts.
type Pattern uint8

const (
	PatternNone Pattern = 0
	// PatternStandard matches "#" or "@" placeholders: "shot.####.exr".
	PatternStandard Pattern = 1 << (iota - 1)
	// PatternCStyle matches printf verbs: "shot.%04d.exr".
	PatternCStyle
	// PatternFrame matches an explicit positive frame: "shot.0001.exr".
	PatternFrame
	// PatternFrameNeg matches an explicit signed frame: "shot.-0001.exr".
	PatternFrameNeg

	PatternDefault = PatternStandard | PatternCStyle
	PatternAll     = PatternStandard | PatternCStyle | PatternFrameNeg
)

var (
	// An optional pair of brackets around the placeholder is not captured.
	rePatternStandard = regexp.MustCompile(`^(.*?)\[?(#+|@+)\]?(.*?)$`)
	rePatternCStyle   = regexp.MustCompile(`^(.*?)\[?%([0-9]*)d\]?(.*?)$`)
	rePatternFrame    = regexp.MustCompile(`^(.*?[_.]?)\[?([0-9]+)\]?([_.]?.*\.?.*?)$`)
	rePatternFrameNeg = regexp.MustCompile(`^(.*?[_.]?)\[?([\-+]?[0-9]+)\]?([_.]?.*\.?.*?)$`)
)

// ParsePattern initialises a sequence from a filename pattern. Only prefix,
// suffix and padding are set; the ranges stay empty. It returns false when
// the filename is not recognised as a pattern.
func ParsePattern(pattern string, accept Pattern) (Sequence, bool) {
	var (
		m       []string
		padding int
	)

	switch {
	case accept&PatternStandard != 0 && rePatternStandard.MatchString(pattern):
		m = rePatternStandard.FindStringSubmatch(pattern)
		padding = len(m[2])
		if m[2][0] == '@' {
			padding = 0
		}
	case accept&PatternCStyle != 0 && rePatternCStyle.MatchString(pattern):
		m = rePatternCStyle.FindStringSubmatch(pattern)
		if m[2] != "" {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				return Sequence{}, false
			}
			padding = n
		}
	case accept&PatternFrame != 0 && rePatternFrame.MatchString(pattern):
		m = rePatternFrame.FindStringSubmatch(pattern)
		padding = maxPadding(m[2])
	case accept&PatternFrameNeg != 0 && rePatternFrameNeg.MatchString(pattern):
		m = rePatternFrameNeg.FindStringSubmatch(pattern)
		padding = maxPadding(m[2])
	default:
		return Sequence{}, false
	}

	return Sequence{
		Prefix:       m[1],
		Suffix:       m[3],
		FixedPadding: padding,
		MaxPadding:   padding,
	}, true
}

// CheckPattern reports which syntax a pattern uses, PatternNone if it is a
// plain filename.
func CheckPattern(pattern string, opts Detection) Pattern {
	switch {
	case rePatternStandard.MatchString(pattern):
		return PatternStandard
	case rePatternCStyle.MatchString(pattern):
		return PatternCStyle
	case opts&DetectNegative != 0 && rePatternFrameNeg.MatchString(pattern):
		return PatternFrameNeg
	case rePatternFrame.MatchString(pattern):
		return PatternFrame
	}
	return PatternNone
}
