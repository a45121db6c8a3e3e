package processor

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
)

type recordingVisitor struct {
	paths  []string
	failOn string
}

func (v *recordingVisitor) Visit(path string, _ fs.DirEntry) error {
	if v.failOn != "" && filepath.Base(path) == v.failOn {
		return errors.New("visit failed")
	}
	v.paths = append(v.paths, path)
	return nil
}

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"a", filepath.Join("a", "b"), "c", ".thumbs"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, file := range []string{
		"top.jpg",
		filepath.Join("a", "one.png"),
		filepath.Join("a", "b", "two.png"),
		filepath.Join("c", "three.gif"),
		filepath.Join(".thumbs", "cache.png"),
	} {
		touch(t, filepath.Join(root, file))
	}
	return root
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestWalkVisitsAllRegularFiles(t *testing.T) {
	root := buildTree(t)
	v := &recordingVisitor{}
	if err := (Walker{Root: root}).Walk(context.Background(), v); err != nil {
		t.Fatal(err)
	}

	got := relPaths(t, root, v.paths)
	want := []string{".thumbs/cache.png", "a/b/two.png", "a/one.png", "c/three.gif", "top.jpg"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestWalkExclude(t *testing.T) {
	root := buildTree(t)
	v := &recordingVisitor{}
	w := Walker{Root: root, Exclude: []string{".thumbs", "**/*.gif"}}
	if err := w.Walk(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	got := relPaths(t, root, v.paths)
	want := []string{"a/b/two.png", "a/one.png", "top.jpg"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWalkRootNotDirectory(t *testing.T) {
	root := buildTree(t)
	v := &recordingVisitor{}

	if err := (Walker{Root: filepath.Join(root, "top.jpg")}).Walk(context.Background(), v); err != nil {
		t.Fatalf("file root should not error: %v", err)
	}
	if err := (Walker{Root: filepath.Join(root, "missing")}).Walk(context.Background(), v); err != nil {
		t.Fatalf("missing root should not error: %v", err)
	}
	if len(v.paths) != 0 {
		t.Fatalf("expected no visits, got %v", v.paths)
	}
}

func TestWalkVisitErrorAborts(t *testing.T) {
	root := buildTree(t)
	v := &recordingVisitor{failOn: "two.png"}
	err := (Walker{Root: root}).Walk(context.Background(), v)
	if err == nil || err.Error() != "visit failed" {
		t.Fatalf("expected visit error, got %v", err)
	}
	for _, p := range v.paths {
		if filepath.Base(p) == "two.png" {
			t.Fatal("failing file should not be recorded")
		}
	}
}

func TestWalkSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink on windows may require admin")
	}
	root := buildTree(t)
	if err := os.Symlink(filepath.Join(root, "top.jpg"), filepath.Join(root, "link.jpg")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "a"), filepath.Join(root, "loop")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "gone.jpg"), filepath.Join(root, "dangling.jpg")); err != nil {
		t.Fatal(err)
	}

	v := &recordingVisitor{}
	if err := (Walker{Root: root}).Walk(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	got := relPaths(t, root, v.paths)
	hasLink := false
	for _, p := range got {
		switch p {
		case "link.jpg":
			hasLink = true
		case "loop/one.png", "dangling.jpg":
			t.Fatalf("unexpected visit of %s", p)
		}
	}
	if !hasLink {
		t.Fatalf("symlinked file should be visited: %v", got)
	}
}

func TestWalkInvalidFilename(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs a filesystem that accepts non-UTF-8 names")
	}
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "x\xfe.png"), nil, 0o644); err != nil {
		t.Skipf("cannot create non-UTF-8 filename: %v", err)
	}
	err := (Walker{Root: root}).Walk(context.Background(), &recordingVisitor{})
	if !errors.Is(err, ErrInvalidFilename) {
		t.Fatalf("expected ErrInvalidFilename, got %v", err)
	}
}

func TestWalkSkipsNestedDirectory(t *testing.T) {
	root := buildTree(t)
	v := &recordingVisitor{}
	if err := (Walker{Root: root, Skip: filepath.Join(root, "a")}).Walk(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	for _, p := range relPaths(t, root, v.paths) {
		if p == "a/one.png" || p == "a/b/two.png" {
			t.Fatalf("skipped directory was walked: %v", v.paths)
		}
	}
	if len(v.paths) != 3 {
		t.Fatalf("expected 3 visits, got %v", v.paths)
	}
}

func TestWalkSkipOutsideRootIgnored(t *testing.T) {
	root := buildTree(t)
	for _, skip := range []string{root, filepath.Dir(root), t.TempDir()} {
		v := &recordingVisitor{}
		if err := (Walker{Root: root, Skip: skip}).Walk(context.Background(), v); err != nil {
			t.Fatal(err)
		}
		if len(v.paths) != 5 {
			t.Fatalf("skip %s: expected 5 visits, got %v", skip, v.paths)
		}
	}
}

func TestWalkInvalidDirectoryNameAllowed(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs a filesystem that accepts non-UTF-8 names")
	}
	root := t.TempDir()
	dir := filepath.Join(root, "d\xfe")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Skipf("cannot create non-UTF-8 directory: %v", err)
	}
	touch(t, filepath.Join(dir, "ok.png"))

	v := &recordingVisitor{}
	if err := (Walker{Root: root}).Walk(context.Background(), v); err != nil {
		t.Fatalf("directory name should not abort the walk: %v", err)
	}
	if len(v.paths) != 1 || filepath.Base(v.paths[0]) != "ok.png" {
		t.Fatalf("expected ok.png to be visited, got %v", v.paths)
	}
}
