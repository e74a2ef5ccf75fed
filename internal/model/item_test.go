package model

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/sadopc/itemstat/internal/sequence"
)

func createItemFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "dir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "file.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return root
}

func TestClassifyPath(t *testing.T) {
	root := createItemFixture(t)

	tests := []struct {
		path string
		want Kind
	}{
		{filepath.Join(root, "dir"), Folder},
		{filepath.Join(root, "file.txt"), File},
		{filepath.Join(root, "missing"), Undefined},
	}

	for _, tt := range tests {
		if got := ClassifyPath(tt.path); got != tt.want {
			t.Errorf("ClassifyPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestClassifyPath_Symlink(t *testing.T) {
	root := createItemFixture(t)
	link := filepath.Join(root, "link")
	if err := os.Symlink(filepath.Join(root, "dir"), link); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}

	if got := ClassifyPath(link); got != Link {
		t.Errorf("ClassifyPath(link) = %v, want link", got)
	}

	// A link to a directory is accepted both as a link and as a folder.
	if _, err := New(Link, link); err != nil {
		t.Errorf("New(Link) error = %v", err)
	}
	if _, err := New(Folder, link); err != nil {
		t.Errorf("New(Folder) on link to dir error = %v", err)
	}
	if _, err := New(File, link); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("New(File) on link error = %v, want ErrInvalidPath", err)
	}
}

func TestNew(t *testing.T) {
	root := createItemFixture(t)
	dir := filepath.Join(root, "dir")
	file := filepath.Join(root, "file.txt")

	tests := []struct {
		name    string
		kind    Kind
		path    string
		wantErr bool
	}{
		{"folder", Folder, dir, false},
		{"file", File, file, false},
		{"file as folder", Folder, file, true},
		{"folder as file", File, dir, true},
		{"file as link", Link, file, true},
		{"missing", File, filepath.Join(root, "missing"), true},
		{"empty path", File, "", true},
		{"undefined kind", Undefined, file, true},
		{"sequence kind", Sequence, dir, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := New(tt.kind, tt.path)
			if tt.wantErr {
				var ip *InvalidPathError
				if !errors.As(err, &ip) {
					t.Fatalf("New() error = %v, want *InvalidPathError", err)
				}
				if !errors.Is(err, ErrInvalidPath) {
					t.Error("error does not match ErrInvalidPath")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if item.Kind() != tt.kind || item.Path() != tt.path {
				t.Errorf("item = {%v %q}, want {%v %q}", item.Kind(), item.Path(), tt.kind, tt.path)
			}
		})
	}
}

func TestNew_MissingKeepsCause(t *testing.T) {
	_, err := New(File, filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want it to wrap fs.ErrNotExist", err)
	}
}

func TestFromPath(t *testing.T) {
	root := createItemFixture(t)

	item, err := FromPath(filepath.Join(root, "file.txt"))
	if err != nil {
		t.Fatalf("FromPath() error = %v", err)
	}
	if item.Kind() != File || item.Filename() != "file.txt" || item.Folder() != root {
		t.Errorf("item = %v %q %q", item.Kind(), item.Filename(), item.Folder())
	}

	if _, err := FromPath(filepath.Join(root, "missing")); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("FromPath(missing) error = %v, want ErrInvalidPath", err)
	}
}

func TestNewSequence(t *testing.T) {
	root := t.TempDir()
	seq := sequence.New("shot.", 4, 4, ".exr", 1, 3, 1)
	item := NewSequence(seq, root)

	if item.Kind() != Sequence {
		t.Errorf("Kind() = %v", item.Kind())
	}
	if want := filepath.Join(root, "shot.####.exr"); item.Path() != want {
		t.Errorf("Path() = %q, want %q", item.Path(), want)
	}
	if item.Filename() != "shot.####.exr" || item.Folder() != root {
		t.Errorf("Filename/Folder = %q %q", item.Filename(), item.Folder())
	}
	if want := filepath.Join(root, "shot.####.exr [1:3]"); item.String() != want {
		t.Errorf("String() = %q, want %q", item.String(), want)
	}

	s := item.Sequence()
	if s == nil || !s.Equal(seq) {
		t.Fatalf("Sequence() = %v, want %v", s, seq)
	}
	s.Prefix = "changed."
	if item.Sequence().Prefix != "shot." {
		t.Error("Sequence() should return a copy")
	}

	paths := item.FramePaths()
	if len(paths) != 3 || paths[0] != filepath.Join(root, "shot.0001.exr") {
		t.Errorf("FramePaths() = %v", paths)
	}

	exploded := item.Explode()
	if len(exploded) != 3 {
		t.Fatalf("Explode() returned %d items", len(exploded))
	}
	for _, it := range exploded {
		if it.Kind() != Undefined {
			t.Errorf("missing frame %q classified as %v", it.Path(), it.Kind())
		}
	}
}

func TestItem_SequenceNilForFile(t *testing.T) {
	root := createItemFixture(t)
	item, err := New(File, filepath.Join(root, "file.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if item.Sequence() != nil {
		t.Error("Sequence() should be nil for a file")
	}
	if item.FramePaths() != nil {
		t.Error("FramePaths() should be nil for a file")
	}
	if got := item.Explode(); len(got) != 1 || got[0].Path() != item.Path() {
		t.Errorf("Explode() = %v", got)
	}
}
