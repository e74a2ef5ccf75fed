package sequence

import (
	"reflect"
	"testing"
)

func decomposeStrings(filename string, negative bool) ([]string, []string) {
	strs, numbers := decompose(filename, negative)
	nums := make([]string, len(numbers))
	for i, n := range numbers {
		nums[i] = n.s
	}
	return strs, nums
}

func TestDecompose(t *testing.T) {
	strs, nums := decomposeStrings("aa1b22cccc3", false)

	if want := []string{"aa", "b", "cccc", ""}; !reflect.DeepEqual(strs, want) {
		t.Errorf("strings = %q, want %q", strs, want)
	}
	if want := []string{"1", "22", "3"}; !reflect.DeepEqual(nums, want) {
		t.Errorf("numbers = %q, want %q", nums, want)
	}

	strs, nums = decomposeStrings("readme.txt", false)
	if len(nums) != 0 || len(strs) != 1 || strs[0] != "readme.txt" {
		t.Errorf("decompose(readme.txt) = %q, %q", strs, nums)
	}

	strs, nums = decomposeStrings("n-12.x", true)
	if want := []string{"-12"}; !reflect.DeepEqual(nums, want) {
		t.Errorf("signed numbers = %q, want %q", nums, want)
	}
	if want := []string{"n", ".x"}; !reflect.DeepEqual(strs, want) {
		t.Errorf("signed strings = %q, want %q", strs, want)
	}
}

func sequenceStrings(seqs []Sequence) []string {
	out := make([]string, len(seqs))
	for i, s := range seqs {
		out[i] = s.String()
	}
	return out
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		opts  Detection
		seqs  []string
		files []string
	}{
		{
			name:  "simple padded",
			names: []string{"shot.0001.exr", "shot.0002.exr", "readme.txt", "shot.0003.exr"},
			opts:  DetectDefault,
			seqs:  []string{"shot.####.exr [1:3]"},
			files: []string{"readme.txt"},
		},
		{
			name:  "lone numbered file is a file",
			names: []string{"take1.mov"},
			opts:  DetectDefault,
			files: []string{"take1.mov"},
		},
		{
			name:  "lone numbered file as sequence",
			names: []string{"take1.mov"},
			opts:  DetectNone,
			seqs:  []string{"take@.mov [1]"},
		},
		{
			name:  "single file uses first number",
			names: []string{"v2_take7.mov"},
			opts:  DetectSingleFileUseFirstNumber,
			seqs:  []string{"v@_take7.mov [2]"},
		},
		{
			name:  "dot files ignored",
			names: []string{".hidden1", ".hidden2"},
			opts:  DetectDefault,
		},
		{
			name:  "dot files kept",
			names: []string{".hidden1", ".hidden2"},
			opts:  DetectDefaultWithDotFile,
			seqs:  []string{".hidden@ [1:2]"},
		},
		{
			name:  "constant number in prefix",
			names: []string{"shot_v2.0001.exr", "shot_v2.0002.exr"},
			opts:  DetectDefault,
			seqs:  []string{"shot_v2.####.exr [1:2]"},
		},
		{
			name:  "several varying numbers",
			names: []string{"s02_f001.exr", "s01_f002.exr", "s01_f001.exr"},
			opts:  DetectNone,
			seqs:  []string{"s01_f###.exr [1:2]", "s02_f###.exr [1]"},
		},
		{
			name:  "several varying numbers, lone file left over",
			names: []string{"s02_f001.exr", "s01_f002.exr", "s01_f001.exr"},
			opts:  DetectDefault,
			seqs:  []string{"s01_f###.exr [1:2]"},
			files: []string{"s02_f001.exr"},
		},
		{
			name:  "padded and unpadded split",
			names: []string{"a1.txt", "a001.txt", "a2.txt", "a3.txt", "a002.txt"},
			opts:  DetectDefault,
			seqs:  []string{"a@.txt [1:3]", "a###.txt [1:2]"},
		},
		{
			name:  "holes kept",
			names: []string{"f1.png", "f2.png", "f3.png", "f7.png", "f8.png", "f9.png"},
			opts:  DetectDefault,
			seqs:  []string{"f@.png [1:3,7:9]"},
		},
		{
			name:  "split on holes",
			names: []string{"f1.png", "f2.png", "f3.png", "f7.png"},
			opts:  DetectDefault | DetectWithoutHoles,
			seqs:  []string{"f@.png [1:3]"},
			files: []string{"f7.png"},
		},
		{
			name:  "unpadded growing numbers",
			names: []string{"a99.x", "a102.x", "a1234.x", "a12345.x", "a123456.x"},
			opts:  DetectDefault,
			seqs:  []string{"a@.x [99,102,1234,12345,123456]"},
		},
		{
			name:  "negative frames",
			names: []string{"n1.x", "n-1.x", "n0.x"},
			opts:  DetectDefault | DetectNegative,
			seqs:  []string{"n@.x [-1:1]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Detect(tt.names, tt.opts)

			got := sequenceStrings(res.Sequences)
			if len(got) != len(tt.seqs) || (len(got) > 0 && !reflect.DeepEqual(got, tt.seqs)) {
				t.Errorf("sequences = %q, want %q", got, tt.seqs)
			}
			if len(res.Files) != len(tt.files) || (len(res.Files) > 0 && !reflect.DeepEqual(res.Files, tt.files)) {
				t.Errorf("files = %q, want %q", res.Files, tt.files)
			}
		})
	}
}

func TestDetect_AmbiguousPadding(t *testing.T) {
	// 100 and 102 fit a padding of 3 without leading zeros.
	res := Detect([]string{"p001.dpx", "p002.dpx", "p099.dpx", "p100.dpx", "p102.dpx"}, DetectDefault)

	if len(res.Sequences) != 1 {
		t.Fatalf("got %d sequences, want 1: %v", len(res.Sequences), sequenceStrings(res.Sequences))
	}
	s := res.Sequences[0]
	if s.FixedPadding != 3 {
		t.Errorf("FixedPadding = %d, want 3", s.FixedPadding)
	}
	if s.NbFiles() != 5 {
		t.Errorf("NbFiles() = %d, want 5", s.NbFiles())
	}
	if s.FirstTime() != 1 || s.LastTime() != 102 {
		t.Errorf("range = %d..%d, want 1..102", s.FirstTime(), s.LastTime())
	}
	for _, name := range []string{"p001.dpx", "p100.dpx"} {
		if _, ok := s.Contains(name); !ok {
			t.Errorf("Contains(%q) = false", name)
		}
	}
}

func TestDetect_FramesRoundTrip(t *testing.T) {
	names := []string{"cam_a.0010.tif", "cam_a.0011.tif", "cam_a.0012.tif", "cam_a.0020.tif"}
	res := Detect(names, DetectDefault)

	if len(res.Sequences) != 1 {
		t.Fatalf("got %d sequences, want 1", len(res.Sequences))
	}
	got := res.Sequences[0].Files()
	if !reflect.DeepEqual(got, names) {
		t.Errorf("Files() = %q, want %q", got, names)
	}
}
