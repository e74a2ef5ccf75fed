package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/itemstat/internal/model"
	"github.com/sadopc/itemstat/internal/sequence"
	"github.com/sadopc/itemstat/internal/stat"
)

func fileStat(t *testing.T, size int) (*stat.ItemStat, model.Item) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mov")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatal(err)
	}
	it, err := model.New(model.File, path)
	if err != nil {
		t.Fatal(err)
	}
	st, err := stat.New(context.Background(), it, stat.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return st, it
}

func TestPrinter_StatPlain(t *testing.T) {
	st, _ := fileStat(t, 100)
	var buf bytes.Buffer

	if err := NewPrinter(&buf, FormatPlain, DefaultTheme(false), 0).Stat(st); err != nil {
		t.Fatalf("Stat() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	want := []string{
		rule,
		"Size : 100",
		"Real Size : 100",
		"Size on disk : ",
		"Full Hard links : 1",
		"Hardlinks : 1",
		"Device : ",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if !strings.HasPrefix(lines[i], want[i]) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], want[i])
		}
	}
}

func TestPrinter_StatJSON(t *testing.T) {
	st, _ := fileStat(t, 42)
	var buf bytes.Buffer

	if err := NewPrinter(&buf, FormatJSON, DefaultTheme(false), 0).Stat(st); err != nil {
		t.Fatalf("Stat() error = %v", err)
	}

	var got Summary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Size != 42 || got.RealSize != 42 || got.Kind != "file" || got.Files != 1 {
		t.Errorf("summary = %+v", got)
	}
	if got.Permissions != "rw-r--r--" {
		t.Errorf("permissions = %q", got.Permissions)
	}
}

func TestPrinter_StatTable(t *testing.T) {
	st, _ := fileStat(t, 2048)
	var buf bytes.Buffer

	if err := NewPrinter(&buf, FormatTable, DefaultTheme(false), 60).Stat(st); err != nil {
		t.Fatalf("Stat() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Size on disk", "2.0 KiB (2048 bytes)", "Hard links", "rw-r--r--"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_Sequence(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"f1.dat", "f3.dat"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("abc"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	seq := sequence.Sequence{
		Prefix:     "f",
		Suffix:     ".dat",
		MaxPadding: 1,
		Ranges:     []sequence.FrameRange{{First: 1, Last: 3, Step: 2}},
	}
	st, err := stat.New(context.Background(), model.NewSequence(seq, dir), stat.Options{})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatPlain, DefaultTheme(false), 0).Sequence(seq, st); err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sequence : f@.dat [1:3x2]", "Frames : 2", "Missing : 1", "Size : 6"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := NewPrinter(&buf, FormatJSON, DefaultTheme(false), 0).Sequence(seq, st); err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}
	var got SequenceSummary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Pattern != "f@.dat" || got.Frames != 2 || got.Missing != 1 || got.Size != 6 {
		t.Errorf("summary = %+v", got)
	}
}

func TestPrinter_Listing(t *testing.T) {
	st, it := fileStat(t, 10)
	rows := []Row{
		{Item: it, Stat: st},
		{Item: it, Err: errors.New("permission denied")},
	}

	for _, format := range []Format{FormatPlain, FormatTable} {
		var buf bytes.Buffer
		if err := NewPrinter(&buf, format, DefaultTheme(false), 100).Listing(rows); err != nil {
			t.Fatalf("Listing(%s) error = %v", format, err)
		}
		out := buf.String()
		if strings.Count(out, "clip.mov") != 2 || !strings.Contains(out, "permission denied") {
			t.Errorf("Listing(%s) =\n%s", format, out)
		}
	}

	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatJSON, DefaultTheme(false), 0).Listing(rows); err != nil {
		t.Fatalf("Listing(json) error = %v", err)
	}
	var got []rowJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 2 || got[0].Size != 10 || got[1].Error != "permission denied" {
		t.Errorf("rows = %+v", got)
	}
}

func TestSaveJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	if err := SaveJSON(path, io.Discard, map[string]int{"size": 7}); err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "{\n  \"size\": 7\n}" {
		t.Errorf("file = %q", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %v", entries)
	}

	if err := SaveJSON(filepath.Join(dir, "missing", "out.json"), io.Discard, 1); err == nil {
		t.Error("SaveJSON() into a missing directory should fail")
	}

	var buf bytes.Buffer
	if err := SaveJSON("-", &buf, []int{1}); err != nil {
		t.Fatalf("SaveJSON(-) error = %v", err)
	}
	if buf.String() != "[\n  1\n]\n" {
		t.Errorf("SaveJSON(-) wrote %q", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"plain", "TABLE", "json"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}
