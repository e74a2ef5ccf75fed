package walker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/sadopc/itemstat/internal/model"
)

func mustWriteFile(t *testing.T, path string, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

// createTree builds:
//
//	f2.txt f10.txt .hidden/h.txt sub/x.txt sub/deep/y.log
func createTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "f2.txt"), "22")
	mustWriteFile(t, filepath.Join(root, "f10.txt"), "1010")
	mustWriteFile(t, filepath.Join(root, ".hidden", "h.txt"), "h")
	mustWriteFile(t, filepath.Join(root, "sub", "x.txt"), "xxx")
	mustWriteFile(t, filepath.Join(root, "sub", "deep", "y.log"), "yyyy")
	return root
}

func collect(t *testing.T, root string, opts Options) []string {
	t.Helper()
	var rels []string
	err := Walk(context.Background(), root, opts, func(e Entry) error {
		rels = append(rels, e.Rel)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	return rels
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWalk_SequentialOrder(t *testing.T) {
	root := createTree(t)

	got := collect(t, root, Options{})
	want := []string{".hidden", ".hidden/h.txt", "f2.txt", "f10.txt", "sub", "sub/deep", "sub/deep/y.log", "sub/x.txt"}
	if !equalStrings(got, want) {
		t.Errorf("visited %v, want %v", got, want)
	}
}

func TestWalk_ParallelSameEntries(t *testing.T) {
	root := createTree(t)

	seq := collect(t, root, Options{})
	par := collect(t, root, Options{Workers: 4})
	sort.Strings(seq)
	sort.Strings(par)
	if !equalStrings(seq, par) {
		t.Errorf("parallel visited %v, sequential %v", par, seq)
	}
}

func TestWalk_ParallelVisitorSerialized(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 20; i++ {
		mustWriteFile(t, filepath.Join(root, "d"+string(rune('a'+i)), "file.txt"), "data")
	}

	var (
		mu    sync.Mutex
		count int
	)
	err := Walk(context.Background(), root, Options{Workers: 8}, func(e Entry) error {
		if !mu.TryLock() {
			t.Error("visitor called concurrently")
			return nil
		}
		count++
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if count != 40 {
		t.Errorf("visited %d entries, want 40", count)
	}
}

func TestWalk_SkipHidden(t *testing.T) {
	root := createTree(t)

	for _, workers := range []int{0, 4} {
		for _, rel := range collect(t, root, Options{SkipHidden: true, Workers: workers}) {
			if rel == ".hidden" || rel == ".hidden/h.txt" {
				t.Errorf("workers=%d: hidden entry %q visited", workers, rel)
			}
		}
	}
}

func TestWalk_Exclude(t *testing.T) {
	root := createTree(t)

	got := collect(t, root, Options{Exclude: []string{"*.log", "f10.txt"}})
	want := []string{".hidden", ".hidden/h.txt", "f2.txt", "sub", "sub/deep", "sub/x.txt"}
	if !equalStrings(got, want) {
		t.Errorf("visited %v, want %v", got, want)
	}

	got = collect(t, root, Options{Exclude: []string{"sub/"}, Workers: 4})
	for _, rel := range got {
		if rel == "sub" || filepath.Dir(rel) == "sub" {
			t.Errorf("excluded directory entry %q visited", rel)
		}
	}
}

func TestWalk_MaxDepth(t *testing.T) {
	root := createTree(t)

	for _, workers := range []int{0, 4} {
		got := collect(t, root, Options{MaxDepth: 1, Workers: workers})
		sort.Strings(got)
		want := []string{".hidden", "f10.txt", "f2.txt", "sub"}
		if !equalStrings(got, want) {
			t.Errorf("workers=%d: visited %v, want %v", workers, got, want)
		}
	}
}

func TestWalk_LinkNotFollowed(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "dir", "a.txt"), "a")
	if err := os.Symlink("dir", filepath.Join(root, "alias")); err != nil {
		t.Skipf("symlink not available: %v", err)
	}

	var links []Entry
	got := []string{}
	err := Walk(context.Background(), root, Options{}, func(e Entry) error {
		got = append(got, e.Rel)
		if e.Link {
			links = append(links, e)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"alias", "dir", "dir/a.txt"}; !equalStrings(got, want) {
		t.Errorf("visited %v, want %v", got, want)
	}
	if len(links) != 1 || links[0].IsDir() {
		t.Errorf("link entries = %+v", links)
	}
}

func TestWalk_FollowLinksCycle(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "sub", "x.txt"), "x")
	if err := os.Symlink("..", filepath.Join(root, "sub", "loop")); err != nil {
		t.Skipf("symlink not available: %v", err)
	}

	for _, workers := range []int{0, 4} {
		got := collect(t, root, Options{FollowLinks: true, Workers: workers})
		sort.Strings(got)
		want := []string{"sub", "sub/loop", "sub/x.txt"}
		if !equalStrings(got, want) {
			t.Errorf("workers=%d: visited %v, want %v", workers, got, want)
		}
	}
}

func TestWalk_FollowLinksOutsideRoot(t *testing.T) {
	outside := t.TempDir()
	mustWriteFile(t, filepath.Join(outside, "ext.txt"), "ext")

	root := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(root, "ext")); err != nil {
		t.Skipf("symlink not available: %v", err)
	}

	for _, workers := range []int{0, 4} {
		got := collect(t, root, Options{FollowLinks: true, Workers: workers})
		sort.Strings(got)
		if want := []string{"ext", "ext/ext.txt"}; !equalStrings(got, want) {
			t.Errorf("workers=%d: visited %v, want %v", workers, got, want)
		}
	}
}

// otherDeviceDir returns a fresh directory on a different device than
// near, or skips the test.
func otherDeviceDir(t *testing.T, near string) string {
	t.Helper()
	dir, err := os.MkdirTemp("/dev/shm", "walker-")
	if err != nil {
		t.Skipf("no /dev/shm: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	a, errA := os.Stat(near)
	b, errB := os.Stat(dir)
	if errA != nil || errB != nil {
		t.Skip("cannot stat test directories")
	}
	sa, okA := SysOf(a)
	sb, okB := SysOf(b)
	if !okA || !okB || sa.Dev == sb.Dev {
		t.Skip("test directories share a device")
	}
	return dir
}

func TestWalk_OneFileSystem(t *testing.T) {
	root := createTree(t)
	other := otherDeviceDir(t, root)
	mustWriteFile(t, filepath.Join(other, "far.txt"), "far")
	if err := os.Symlink(other, filepath.Join(root, "mnt")); err != nil {
		t.Skipf("symlink not available: %v", err)
	}

	for _, workers := range []int{0, 4} {
		all := collect(t, root, Options{FollowLinks: true, Workers: workers})
		sort.Strings(all)
		if !containsString(all, "mnt/far.txt") {
			t.Errorf("workers=%d: following links visited %v, want mnt/far.txt", workers, all)
		}

		local := collect(t, root, Options{FollowLinks: true, OneFileSystem: true, Workers: workers})
		if containsString(local, "mnt/far.txt") {
			t.Errorf("workers=%d: one-file-system descended into mnt: %v", workers, local)
		}
		if !containsString(local, "mnt") {
			t.Errorf("workers=%d: one-file-system should still visit mnt: %v", workers, local)
		}
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestWalk_CanceledContext(t *testing.T) {
	root := createTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{0, 4} {
		err := Walk(ctx, root, Options{Workers: workers}, func(Entry) error { return nil })
		if !errors.Is(err, context.Canceled) {
			t.Errorf("workers=%d: error = %v, want context.Canceled", workers, err)
		}
	}
}

func TestWalk_VisitErrorAborts(t *testing.T) {
	root := createTree(t)
	stop := errors.New("stop")

	n := 0
	err := Walk(context.Background(), root, Options{}, func(Entry) error {
		n++
		return stop
	})
	if !errors.Is(err, stop) || n != 1 {
		t.Errorf("error = %v after %d visits, want stop after 1", err, n)
	}
}

func TestWalk_BadRoot(t *testing.T) {
	root := createTree(t)

	err := Walk(context.Background(), filepath.Join(root, "f2.txt"), Options{}, func(Entry) error { return nil })
	if !errors.Is(err, model.ErrInvalidPath) {
		t.Errorf("file root error = %v, want ErrInvalidPath", err)
	}

	err = Walk(context.Background(), filepath.Join(root, "missing"), Options{}, func(Entry) error { return nil })
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("missing root error = %v, want ErrNotFound", err)
	}
}

func TestWalk_UnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := createTree(t)
	locked := filepath.Join(root, "sub", "deep")
	if err := os.Chmod(locked, 0); err != nil {
		t.Skipf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	err := Walk(context.Background(), root, Options{}, func(Entry) error { return nil })
	if !errors.Is(err, model.ErrIO) {
		t.Fatalf("strict walk error = %v, want ErrIO", err)
	}

	var skipped []string
	opts := Options{OnError: func(path string, err error) error {
		skipped = append(skipped, path)
		return nil
	}}
	if err := Walk(context.Background(), root, opts, func(Entry) error { return nil }); err != nil {
		t.Fatalf("lenient walk error = %v", err)
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %v, want one path", skipped)
	}
}

func TestWalk_UnreadableRootIgnoresOnError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := filepath.Join(t.TempDir(), "locked")
	mustWriteFile(t, filepath.Join(root, "x.txt"), "x")
	if err := os.Chmod(root, 0o311); err != nil {
		t.Skipf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(root, 0o755) })

	for _, workers := range []int{0, 4} {
		called := false
		opts := Options{Workers: workers, OnError: func(string, error) error {
			called = true
			return nil
		}}
		err := Walk(context.Background(), root, opts, func(Entry) error { return nil })
		if !errors.Is(err, model.ErrIO) {
			t.Errorf("workers=%d: error = %v, want ErrIO", workers, err)
		}
		if called {
			t.Errorf("workers=%d: OnError called for the root", workers)
		}
	}
}

func TestWalk_Progress(t *testing.T) {
	root := createTree(t)

	var (
		mu   sync.Mutex
		last Progress
	)
	opts := Options{Progress: func(p Progress) {
		mu.Lock()
		last = p
		mu.Unlock()
	}}
	collect(t, root, opts)

	mu.Lock()
	defer mu.Unlock()
	if !last.Done {
		t.Fatal("last progress report should be Done")
	}
	if last.Files != 5 || last.Dirs != 3 {
		t.Errorf("progress files=%d dirs=%d, want 5 and 3", last.Files, last.Dirs)
	}
	if last.Bytes != 2+4+1+3+4 {
		t.Errorf("progress bytes = %d", last.Bytes)
	}
}
