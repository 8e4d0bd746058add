package card

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cardmanager/cardmanage/internal/derrors"
)

// shapeFileIndex is the position of the file name in a shapes row:
// shapes <process> <channel> <file> <histogram> [<systematic histogram>]
const shapeFileIndex = 3

// fakeShapes is the placeholder for channels without histograms
const fakeShapes = "FAKE"

// workspaceRef reports whether row references a workspace file
func workspaceRef(row []string) bool {
	return len(row) > shapeFileIndex && row[0] == "shapes" && row[shapeFileIndex] != fakeShapes
}

// WorkspaceFiles returns the unique files referenced by shapes rows
func (c *Card) WorkspaceFiles() []string {
	var files []string
	seen := make(map[string]bool)
	for _, row := range c.shapes {
		if !workspaceRef(row) {
			continue
		}
		if file := row[shapeFileIndex]; !seen[file] {
			seen[file] = true
			files = append(files, file)
		}
	}
	return files
}

func (c *Card) rewriteWorkspaceFiles(rewrite func(string) string) {
	for _, row := range c.shapes {
		if workspaceRef(row) {
			row[shapeFileIndex] = rewrite(row[shapeFileIndex])
		}
	}
}

// MakeFilePathsAbsolute resolves relative workspace references against baseDir
func (c *Card) MakeFilePathsAbsolute(baseDir string) error {
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", baseDir, err)
	}
	c.rewriteWorkspaceFiles(func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	})
	return nil
}

// sourceDir is where relative workspace references are resolved from
func (c *Card) sourceDir() string {
	if c.Source == "" {
		return "."
	}
	return filepath.Dir(c.Source)
}

// ResolveWorkspaceFile returns where a workspace reference points on disk
func (c *Card) ResolveWorkspaceFile(ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(c.sourceDir(), ref)
}

type fileCopy struct {
	from string
	to   string
}

// copiedRef is the reference a copied card uses for ref. Relative
// references that stay inside the card directory keep their layout;
// absolute ones and those climbing out with ".." become the bare file name.
func copiedRef(ref string) string {
	if filepath.IsLocal(ref) {
		return ref
	}
	return filepath.Base(ref)
}

// planWorkspaceCopy works out which files to copy next to destination and
// returns the card to write there. Nothing is touched on disk; every
// missing file is reported at once, as is every pair of distinct files
// that would land on the same target.
func planWorkspaceCopy(c *Card, destination string) ([]fileCopy, *Card, error) {
	destDir := filepath.Dir(destination)

	var plan []fileCopy
	var missing []string
	var conflicts []error
	renamed := make(map[string]string)
	sources := make(map[string]string)
	for _, ref := range c.WorkspaceFiles() {
		from := c.ResolveWorkspaceFile(ref)
		newRef := copiedRef(ref)
		to := filepath.Join(destDir, newRef)
		renamed[ref] = newRef

		info, err := os.Stat(from)
		if err != nil || info.IsDir() {
			missing = append(missing, ref)
			continue
		}

		if prev, ok := sources[to]; ok {
			if !sameFile(prev, from) {
				conflicts = append(conflicts, fmt.Errorf("%s and %s would both be copied to %s", prev, from, to))
			}
			continue
		}
		sources[to] = from

		if sameFile(from, to) {
			continue
		}
		plan = append(plan, fileCopy{from: from, to: to})
	}

	if len(missing) > 0 {
		return nil, nil, derrors.NewWorkspaceError(c.Source, missing, nil)
	}
	if len(conflicts) > 0 {
		return nil, nil, derrors.NewWorkspaceError(c.Source, nil, errors.Join(conflicts...))
	}

	out := c.Clone()
	out.rewriteWorkspaceFiles(func(p string) string {
		if r, ok := renamed[p]; ok {
			return r
		}
		return p
	})
	return plan, out, nil
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func copyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return err
	}

	dst, err := os.OpenFile(to, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}
