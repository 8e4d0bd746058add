package card

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cardmanager/cardmanage/internal/derrors"
	"github.com/cardmanager/cardmanage/internal/logger"
)

// WriteOptions controls what Write does besides rendering the card
type WriteOptions struct {
	// CopyWorkspaces copies the files the card references next to the destination
	CopyWorkspaces bool
	// AbsolutePaths rewrites relative workspace references as absolute paths
	AbsolutePaths bool
}

// ManagerConfig holds the settings a Manager works with
type ManagerConfig struct {
	Format    Format
	Tolerance float64
}

// Manager loads, writes and compares cards on the local filesystem
type Manager struct {
	format    Format
	tolerance float64
	log       *logger.Logger
}

// NewManager creates a manager; a nil logger discards output
func NewManager(cfg ManagerConfig, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Discard()
	}
	return &Manager{
		format:    cfg.Format.withDefaults(),
		tolerance: cfg.Tolerance,
		log:       log,
	}
}

// Load reads and parses the card at path
func (m *Manager) Load(path string) (*Card, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	m.log.Debug().
		Str("path", path).
		Int("columns", len(c.Columns())).
		Int("nuisances", len(c.nuisances)).
		Msg("card loaded")
	return c, nil
}

// Write renders c in canonical form to destination.
// With CopyWorkspaces every referenced file must exist before anything is
// written; files are copied first and the card is written last.
func (m *Manager) Write(c *Card, destination string, opts WriteOptions) error {
	if opts.CopyWorkspaces && opts.AbsolutePaths {
		return derrors.NewUsageError("absolute-paths", "copying workspaces and absolute paths are mutually exclusive")
	}

	out := c
	switch {
	case opts.AbsolutePaths:
		out = c.Clone()
		if err := out.MakeFilePathsAbsolute(c.sourceDir()); err != nil {
			return derrors.NewWriteError(destination, "failed to rewrite workspace paths", err)
		}
	case opts.CopyWorkspaces:
		plan, rewritten, err := planWorkspaceCopy(c, destination)
		if err != nil {
			return err
		}
		for _, fc := range plan {
			if err := copyFile(fc.from, fc.to); err != nil {
				return derrors.NewWorkspaceError(c.Source, nil, fmt.Errorf("copy %s to %s: %w", fc.from, fc.to, err))
			}
			m.log.Debug().Str("from", fc.from).Str("to", fc.to).Msg("workspace file copied")
		}
		out = rewritten
	}

	if err := writeAtomic(destination, m.format.Render(out)); err != nil {
		return derrors.NewWriteError(destination, "failed to write card", err)
	}
	m.log.Debug().Str("path", destination).Msg("card written")
	return nil
}

// Compare reports whether two cards are equivalent ignoring layout
func (m *Manager) Compare(path1, path2 string) (bool, error) {
	return Compare(path1, path2, m.tolerance)
}

// writeAtomic replaces path with data through a temporary file in the same
// directory, keeping the mode of an existing file
func writeAtomic(path string, data []byte) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".cardmanage-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
