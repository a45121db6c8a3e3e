package processor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// Visitor is called once for every file a Walker finds.
type Visitor interface {
	Visit(path string, entry fs.DirEntry) error
}

// Walker enumerates regular files under Root depth-first, in the order the
// filesystem lists them. Exclude holds doublestar patterns matched against
// the slash-separated path relative to Root. Skip, if set, is a directory
// that is never entered, such as an output folder nested under Root.
type Walker struct {
	Root    string
	Exclude []string
	Skip    string
}

// Walk visits every file under w.Root. A missing root or a root that is not
// a directory is not an error. The first error from v, from listing a
// directory, or from ctx stops the walk and is returned.
func (w Walker) Walk(ctx context.Context, v Visitor) error {
	info, err := os.Stat(w.Root)
	if err != nil || !info.IsDir() {
		return nil
	}
	w.Skip = nestedDir(w.Root, w.Skip)
	return w.walkDir(ctx, w.Root, v)
}

func (w Walker) walkDir(ctx context.Context, dir string, v Visitor) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	entries, err := f.ReadDir(-1)
	_ = f.Close()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		path := filepath.Join(dir, name)
		if w.excluded(path) {
			continue
		}

		switch {
		case entry.IsDir():
			if w.skipped(path) {
				continue
			}
			if err := w.walkDir(ctx, path, v); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := visitFile(v, path, entry); err != nil {
				return err
			}
		case entry.Type()&fs.ModeSymlink != 0:
			// Linked directories are not followed so a link back to an
			// ancestor cannot loop the walk.
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				continue
			}
			if err := visitFile(v, path, entry); err != nil {
				return err
			}
		}
	}

	return nil
}

// visitFile rejects file names that are not valid UTF-8 before handing the
// file to v. Directory names are not checked.
func visitFile(v Visitor, path string, entry fs.DirEntry) error {
	if !utf8.ValidString(entry.Name()) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, path)
	}
	return v.Visit(path, entry)
}

// nestedDir returns the absolute form of dir when it lies strictly inside
// root, and "" otherwise.
func nestedDir(root, dir string) string {
	if dir == "" {
		return ""
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return ""
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	if absDir == absRoot || !isWithin(absDir, absRoot) {
		return ""
	}
	return absDir
}

func (w Walker) skipped(dir string) bool {
	if w.Skip == "" {
		return false
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	return isWithin(abs, w.Skip)
}

// isWithin reports whether path is root or below it.
func isWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (w Walker) excluded(path string) bool {
	if len(w.Exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.Root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
