package sequence

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Detection tunes how numbered filenames are grouped into sequences.
type Detection uint8

const (
	DetectNone Detection = 0
	// DetectNegative reads a leading '-' or '+' as part of the number.
	DetectNegative Detection = 1 << (iota - 1)
	// DetectNeedAtLeastTwoFiles reports a lone numbered file as a file.
	DetectNeedAtLeastTwoFiles
	// DetectSingleFileUseFirstNumber makes a lone numbered file use its
	// first number as frame instead of the last one.
	DetectSingleFileUseFirstNumber
	// DetectIgnoreDotFile skips names starting with '.'.
	DetectIgnoreDotFile
	// DetectFromFilename lets a browse target name one frame of a sequence.
	DetectFromFilename
	// DetectWithoutHoles splits a sequence at every hole.
	DetectWithoutHoles

	DetectDefaultWithDotFile = DetectNeedAtLeastTwoFiles | DetectFromFilename
	DetectDefault            = DetectNeedAtLeastTwoFiles | DetectIgnoreDotFile | DetectFromFilename
)

// Numbers longer than 18 digits would overflow int64 and are split.
var (
	reDigits       = regexp.MustCompile(`[0-9]{1,18}`)
	reSignedDigits = regexp.MustCompile(`[+\-]?[0-9]{1,18}`)
)

// Result is the outcome of Detect.
type Result struct {
	Sequences []Sequence
	// Files holds the names that are not part of any sequence.
	Files []string
}

type number struct {
	t int64
	s string
}

// fileNumbers is the list of numbers found inside one filename.
type fileNumbers struct {
	name string
	nums []number
}

func (f fileNumbers) fixedPadding(i int) int { return fixedPadding(f.nums[i].s) }
func (f fileNumbers) maxPadding(i int) int   { return maxPadding(f.nums[i].s) }

// built is a detected sequence together with the names it came from.
type built struct {
	seq     Sequence
	byFrame map[int64]string
}

// decompose splits a filename into its string and number parts:
// "aa1b22cccc3" gives ["aa" "b" "cccc" ""] and [1 22 3].
// There is always one more string part than number parts.
func decompose(filename string, negative bool) ([]string, []number) {
	re := reDigits
	if negative {
		re = reSignedDigits
	}

	var (
		strs []string
		nums []number
		prev int
	)
	for _, loc := range re.FindAllStringIndex(filename, -1) {
		s := filename[loc[0]:loc[1]]
		t, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		strs = append(strs, filename[prev:loc[0]])
		nums = append(nums, number{t: t, s: s})
		prev = loc[1]
	}
	strs = append(strs, filename[prev:])
	return strs, nums
}

// Detect groups filenames into sequences. Names sharing the same string
// parts are candidates for one sequence; the varying number is the frame.
func Detect(names []string, opts Detection) Result {
	type bucket struct {
		strs  []string
		files []fileNumbers
	}

	var (
		res     Result
		buckets []*bucket
		byKey   = make(map[string]*bucket)
	)

	for _, name := range names {
		if opts&DetectIgnoreDotFile != 0 && strings.HasPrefix(name, ".") {
			continue
		}
		strs, nums := decompose(name, opts&DetectNegative != 0)
		if len(nums) == 0 {
			res.Files = append(res.Files, name)
			continue
		}
		key := strings.Join(strs, "\x00")
		b, ok := byKey[key]
		if !ok {
			b = &bucket{strs: strs}
			byKey[key] = b
			buckets = append(buckets, b)
		}
		b.files = append(b.files, fileNumbers{name: name, nums: nums})
	}

	for _, b := range buckets {
		for _, bs := range buildSequences(b.strs, b.files, opts) {
			res.add(bs, opts)
		}
	}
	return res
}

func (r *Result) add(b built, opts Detection) {
	needTwo := opts&DetectNeedAtLeastTwoFiles != 0

	if needTwo && b.seq.NbFiles() == 1 {
		r.Files = append(r.Files, b.byFrame[b.seq.FirstTime()])
		return
	}

	if opts&DetectWithoutHoles == 0 || len(b.seq.Ranges) < 2 {
		r.Sequences = append(r.Sequences, b.seq)
		return
	}

	for _, fr := range b.seq.Ranges {
		sub := b.seq
		sub.Ranges = []FrameRange{fr}
		if needTwo && sub.NbFiles() == 1 {
			r.Files = append(r.Files, b.byFrame[fr.First])
			continue
		}
		r.Sequences = append(r.Sequences, sub)
	}
}

func buildSequences(strs []string, files []fileNumbers, opts Detection) []built {
	n := len(files[0].nums)

	if len(files) == 1 {
		index := n - 1
		if opts&DetectSingleFileUseFirstNumber != 0 {
			index = 0
		}
		return buildAccordingToPadding(strs, files, index)
	}

	// indices whose value changes across the files
	var varying []int
	for i := 0; i < n; i++ {
		ref := files[0].nums[i].s
		for _, f := range files[1:] {
			if f.nums[i].s != ref {
				varying = append(varying, i)
				break
			}
		}
	}

	switch len(varying) {
	case 0:
		return buildAccordingToPadding(strs, files, n-1)
	case 1:
		return buildAccordingToPadding(strs, files, varying[0])
	}

	// Several numbers vary: split into runs where a single one varies.
	//   1 2 3
	//   1 3 3
	//   1 4 3
	//   1 5 3   <- could belong to both runs
	//   1 5 4
	//   1 5 5
	sort.SliceStable(files, func(i, j int) bool { return lessByPadding(files[i], files[j]) })

	var (
		out       []built
		first     = 0
		prevIndex = -1
	)
	for it := 1; it < len(files); it++ {
		index, ok := varyingNumber(files[first], files[it])
		split := false
		if ok {
			if prevIndex != -1 && index != prevIndex {
				split = true
			}
		} else {
			split = true
			if prevIndex == -1 {
				prevIndex = n - 1
			}
		}
		if split {
			out = append(out, buildAccordingToPadding(strs, files[first:it], prevIndex)...)
			index = -1
			first = it
		}
		prevIndex = index
	}
	if prevIndex == -1 {
		prevIndex = n - 1
	}
	return append(out, buildAccordingToPadding(strs, files[first:], prevIndex)...)
}

// varyingNumber returns the only index at which a and b differ.
func varyingNumber(a, b fileNumbers) (int, bool) {
	index := -1
	for i := range a.nums {
		if a.nums[i].s == b.nums[i].s {
			continue
		}
		if index != -1 {
			return -1, false
		}
		index = i
	}
	return index, index != -1
}

// buildAccordingToPadding builds the sequences of files whose frame is at
// index, splitting them when they mix paddings.
func buildAccordingToPadding(strs []string, files []fileNumbers, index int) []built {
	paddings := make(map[int]bool)
	ambiguous := make(map[int]bool)
	for _, f := range files {
		p := f.fixedPadding(index)
		paddings[p] = true
		if p == 0 {
			ambiguous[f.maxPadding(index)] = true
		}
	}

	if len(paddings) == 1 {
		var p int
		for k := range paddings {
			p = k
		}
		maxPad := p
		if p == 0 {
			maxPad = minKey(ambiguous)
		}
		sort.SliceStable(files, func(i, j int) bool { return lessByNumber(files[i], files[j]) })
		return []built{buildOne(strs, files, index, p, maxPad)}
	}

	// Mixing padded and unpadded numbers is only unambiguous when every
	// unpadded digit count also exists as a padding: [001 002 099 100 102]
	// is a single sequence of padding 3, [1 5 10 001 002] is two.
	onlyPadding := !paddings[0]
	if !onlyPadding {
		for d := range ambiguous {
			if !paddings[d] {
				onlyPadding = true
				break
			}
		}
	}

	var (
		out   []built
		less  func(a, b fileNumbers) bool
		split func(a, b fileNumbers) bool
	)
	if onlyPadding {
		less = lessByPadding
		split = func(a, b fileNumbers) bool { return a.fixedPadding(index) != b.fixedPadding(index) }
	} else {
		less = lessByDigits
		split = func(a, b fileNumbers) bool { return a.maxPadding(index) != b.maxPadding(index) }
	}
	sort.SliceStable(files, func(i, j int) bool { return less(files[i], files[j]) })

	first := 0
	for it := 1; it < len(files); it++ {
		if split(files[first], files[it]) {
			f := files[first]
			out = append(out, buildOne(strs, files[first:it], index, f.fixedPadding(index), f.maxPadding(index)))
			first = it
		}
	}
	f := files[first]
	return append(out, buildOne(strs, files[first:], index, f.fixedPadding(index), f.maxPadding(index)))
}

func buildOne(strs []string, files []fileNumbers, index, padding, maxPad int) built {
	ref := files[0]
	n := len(ref.nums)

	var prefix, suffix strings.Builder
	for i := 0; i < index; i++ {
		prefix.WriteString(strs[i])
		prefix.WriteString(ref.nums[i].s)
	}
	prefix.WriteString(strs[index])
	for i := index + 1; i < n; i++ {
		suffix.WriteString(strs[i])
		suffix.WriteString(ref.nums[i].s)
	}
	suffix.WriteString(strs[n])

	byFrame := make(map[int64]string, len(files))
	times := make([]int64, 0, len(files))
	for _, f := range files {
		t := f.nums[index].t
		if _, dup := byFrame[t]; dup {
			continue
		}
		byFrame[t] = f.name
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	return built{
		seq: Sequence{
			Prefix:       prefix.String(),
			Suffix:       suffix.String(),
			FixedPadding: padding,
			MaxPadding:   maxPad,
			Ranges:       ExtractRanges(times),
		},
		byFrame: byFrame,
	}
}

func lessByNumber(a, b fileNumbers) bool {
	for i := range a.nums {
		if a.nums[i].t != b.nums[i].t {
			return a.nums[i].t < b.nums[i].t
		}
	}
	return false
}

func lessByPadding(a, b fileNumbers) bool {
	for i := range a.nums {
		if pa, pb := a.fixedPadding(i), b.fixedPadding(i); pa != pb {
			return pa < pb
		}
		if a.nums[i].t != b.nums[i].t {
			return a.nums[i].t < b.nums[i].t
		}
	}
	return false
}

func lessByDigits(a, b fileNumbers) bool {
	for i := range a.nums {
		if da, db := a.maxPadding(i), b.maxPadding(i); da != db {
			return da < db
		}
		if a.nums[i].t != b.nums[i].t {
			return a.nums[i].t < b.nums[i].t
		}
	}
	return false
}

func minKey(m map[int]bool) int {
	first := true
	var lowest int
	for k := range m {
		if first || k < lowest {
			lowest = k
			first = false
		}
	}
	return lowest
}
