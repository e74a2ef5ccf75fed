package sequence

import (
	"strconv"
	"strings"
)

// FrameRange is an inclusive run of frame numbers advancing by Step.
type FrameRange struct {
	First int64 `json:"first"`
	Last  int64 `json:"last"`
	Step  int64 `json:"step"`
}

// SingleFrame returns a range holding only t.
func SingleFrame(t int64) FrameRange {
	return FrameRange{First: t, Last: t, Step: 1}
}

// NbFrames returns how many frames the range holds.
func (r FrameRange) NbFrames() int64 {
	if r.Last < r.First {
		return 0
	}
	step := r.Step
	if step <= 0 {
		step = 1
	}
	return (r.Last-r.First)/step + 1
}

// Frames lists every frame of the range in ascending order.
func (r FrameRange) Frames() []int64 {
	step := r.Step
	if step <= 0 {
		step = 1
	}
	out := make([]int64, 0, r.NbFrames())
	for t := r.First; t <= r.Last; t += step {
		out = append(out, t)
	}
	return out
}

// String formats the range as "first", "first:last" or "first:lastxstep".
func (r FrameRange) String() string {
	s := strconv.FormatInt(r.First, 10)
	if r.First == r.Last {
		return s
	}
	s += ":" + strconv.FormatInt(r.Last, 10)
	if r.Step != 1 {
		s += "x" + strconv.FormatInt(r.Step, 10)
	}
	return s
}

// FormatRanges joins ranges with commas.
func FormatRanges(ranges []FrameRange) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// ExtractRanges splits sorted, unique times into ranges of constant step.
// A run of exactly two frames followed by a different step gives its last
// frame to the next range, so "1,2,4,6" becomes "1" and "2:6x2". A final
// two-frame range is split into single frames unless it holds every time.
func ExtractRanges(times []int64) []FrameRange {
	if len(times) == 0 {
		return nil
	}
	if len(times) == 1 {
		return []FrameRange{SingleFrame(times[0])}
	}

	step := times[1] - times[0]
	if step < 1 {
		step = 1
	}
	res := []FrameRange{{First: times[0], Last: times[1], Step: step}}
	if len(times) == 2 {
		return res
	}

	for i := 2; i < len(times); i++ {
		newStep := times[i] - times[i-1]
		prev := &res[len(res)-1]

		switch {
		case prev.Step == newStep:
			prev.Last = times[i]
		case prev.NbFrames() == 1:
			prev.Last = times[i]
			prev.Step = newStep
		case prev.NbFrames() == 2:
			next := FrameRange{First: prev.Last, Last: times[i], Step: newStep}
			prev.Last = prev.First
			prev.Step = 1
			res = append(res, next)
		default:
			res = append(res, SingleFrame(times[i]))
		}
	}

	if last := &res[len(res)-1]; last.NbFrames() == 2 {
		single := SingleFrame(last.Last)
		last.Last = last.First
		last.Step = 1
		res = append(res, single)
	}
	return res
}
