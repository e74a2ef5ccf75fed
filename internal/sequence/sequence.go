// Package sequence models numbered file sequences such as
// "shot.0001.exr ... shot.0240.exr" and detects them from filenames.
//
// A Sequence has no notion of its parent folder: it only knows the
// filename prefix, suffix, padding and the frame ranges present.
package sequence

import (
	"strconv"
	"strings"
)

// Sequence is a set of numbered files sharing a prefix and a suffix.
type Sequence struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
	// FixedPadding is the zero-padded width of the frame number, 0 for
	// variable or unknown padding.
	FixedPadding int `json:"fixed_padding"`
	// MaxPadding is the widest digit count seen among the frames.
	MaxPadding int          `json:"max_padding"`
	Ranges     []FrameRange `json:"ranges"`
}

// New builds a sequence holding a single range.
func New(prefix string, padding, maxPadding int, suffix string, first, last, step int64) Sequence {
	return Sequence{
		Prefix:       prefix,
		Suffix:       suffix,
		FixedPadding: padding,
		MaxPadding:   maxPadding,
		Ranges:       []FrameRange{{First: first, Last: last, Step: step}},
	}
}

// FilenameAt returns the filename of frame t. It does not check that t is
// part of the sequence. Negative frames keep the sign ahead of the padding:
// "prefix.-0001.jpg", not "prefix.000-1.jpg".
func (s Sequence) FilenameAt(t int64) string {
	var b strings.Builder
	b.WriteString(s.Prefix)
	if t < 0 {
		b.WriteByte('-')
		t = -t
	}
	digits := strconv.FormatInt(t, 10)
	if pad := s.FixedPadding - len(digits); pad > 0 {
		b.WriteString(strings.Repeat("0", pad))
	}
	b.WriteString(digits)
	b.WriteString(s.Suffix)
	return b.String()
}

// FirstFilename returns the filename of the first frame.
func (s Sequence) FirstFilename() string { return s.FilenameAt(s.FirstTime()) }

// LastFilename returns the filename of the last frame.
func (s Sequence) LastFilename() string { return s.FilenameAt(s.LastTime()) }

// Files lists the filenames of every frame.
func (s Sequence) Files() []string {
	frames := s.Frames()
	out := make([]string, len(frames))
	for i, t := range frames {
		out[i] = s.FilenameAt(t)
	}
	return out
}

// Frames lists every frame number in range order.
func (s Sequence) Frames() []int64 {
	var out []int64
	for _, r := range s.Ranges {
		out = append(out, r.Frames()...)
	}
	return out
}

// FirstTime returns the first frame, 0 for an empty sequence.
func (s Sequence) FirstTime() int64 {
	if len(s.Ranges) == 0 {
		return 0
	}
	return s.Ranges[0].First
}

// LastTime returns the last frame, 0 for an empty sequence.
func (s Sequence) LastTime() int64 {
	if len(s.Ranges) == 0 {
		return 0
	}
	return s.Ranges[len(s.Ranges)-1].Last
}

// Duration is the number of frames between first and last, holes included.
func (s Sequence) Duration() int64 {
	if len(s.Ranges) == 0 {
		return 0
	}
	return s.LastTime() - s.FirstTime() + 1
}

// NbFiles counts the frames actually present.
func (s Sequence) NbFiles() int64 {
	var n int64
	for _, r := range s.Ranges {
		n += r.NbFrames()
	}
	return n
}

// NbMissingFiles counts the holes between first and last frame.
// Frames skipped by a regular step count as missing.
func (s Sequence) NbMissingFiles() int64 {
	if len(s.Ranges) == 0 {
		return 0
	}
	return s.Duration() - s.NbFiles()
}

// HasMissingFile reports whether the sequence has holes.
func (s Sequence) HasMissingFile() bool { return s.NbMissingFiles() > 0 }

// PatternCharacter is '#' for fixed padding and '@' otherwise.
func (s Sequence) PatternCharacter() byte {
	if s.FixedPadding > 0 {
		return '#'
	}
	return '@'
}

// StandardPattern renders the filename with '#' or '@' in place of the
// frame number, e.g. "shot.####.exr".
func (s Sequence) StandardPattern() string {
	n := s.FixedPadding
	if n == 0 {
		n = 1
	}
	return s.Prefix + strings.Repeat(string(s.PatternCharacter()), n) + s.Suffix
}

// CStylePattern renders the filename with a printf verb, e.g. "shot.%04d.exr".
func (s Sequence) CStylePattern() string {
	if s.FixedPadding > 0 {
		return s.Prefix + "%0" + strconv.Itoa(s.FixedPadding) + "d" + s.Suffix
	}
	return s.Prefix + "%d" + s.Suffix
}

// Identification is the filename without its frame number.
func (s Sequence) Identification() string { return s.Prefix + s.Suffix }

// Matches reports whether filename fits the prefix, suffix and padding of
// the sequence, whatever its ranges, and returns the frame number.
func (s Sequence) Matches(filename string) (int64, bool) {
	if len(filename) <= len(s.Prefix)+len(s.Suffix) {
		return 0, false
	}
	if !strings.HasPrefix(filename, s.Prefix) || !strings.HasSuffix(filename, s.Suffix) {
		return 0, false
	}
	t, ok := parseFrame(filename[len(s.Prefix) : len(filename)-len(s.Suffix)])
	if !ok {
		return 0, false
	}
	if s.FixedPadding > 0 && s.FilenameAt(t) != filename {
		return 0, false
	}
	return t, true
}

// Contains reports whether filename is one of the frames of the sequence
// and returns the frame number.
func (s Sequence) Contains(filename string) (int64, bool) {
	t, ok := s.Matches(filename)
	if !ok {
		return 0, false
	}
	for _, r := range s.Ranges {
		if t < r.First || t > r.Last {
			continue
		}
		step := r.Step
		if step <= 0 {
			step = 1
		}
		if (t-r.First)%step == 0 {
			return t, true
		}
	}
	return 0, false
}

// Equal compares two sequences field by field.
func (s Sequence) Equal(o Sequence) bool {
	if s.Prefix != o.Prefix || s.Suffix != o.Suffix ||
		s.FixedPadding != o.FixedPadding || s.MaxPadding != o.MaxPadding ||
		len(s.Ranges) != len(o.Ranges) {
		return false
	}
	for i := range s.Ranges {
		if s.Ranges[i] != o.Ranges[i] {
			return false
		}
	}
	return true
}

// String renders the standard pattern followed by the frame ranges:
// "shot.####.exr [1:10,12]".
func (s Sequence) String() string {
	return s.StandardPattern() + " [" + FormatRanges(s.Ranges) + "]"
}

// parseFrame parses an optionally signed decimal frame number.
func parseFrame(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	digits := s
	if hasSign(s) {
		digits = s[1:]
	}
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	t, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return t, true
}

func hasSign(s string) bool {
	return len(s) > 0 && (s[0] == '-' || s[0] == '+')
}

// fixedPadding returns the zero-padded width of a frame string, 0 when the
// number has no leading zero or is a single digit.
func fixedPadding(s string) int {
	if len(s) == 1 {
		return 0
	}
	offset := 0
	if hasSign(s) {
		offset = 1
	}
	if offset < len(s) && s[offset] == '0' {
		return len(s) - offset
	}
	return 0
}

// maxPadding returns the digit count of a frame string.
func maxPadding(s string) int {
	if hasSign(s) {
		return len(s) - 1
	}
	return len(s)
}
