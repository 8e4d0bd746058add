package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cardmanager/cardmanage/internal/card"
	"github.com/cardmanager/cardmanage/internal/derrors"
	"github.com/cardmanager/cardmanage/internal/timing"
)

// CopyParams contains parameters for the Copy command
type CopyParams struct {
	Source        string
	Target        string
	Recursive     bool
	AbsolutePaths bool
}

// ResolveCopyDestination returns target, or target/<basename of source>
// when target is an existing directory
func ResolveCopyDestination(source, target string) (string, error) {
	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return filepath.Join(target, filepath.Base(source)), nil
	case err == nil, errors.Is(err, fs.ErrNotExist):
		return target, nil
	default:
		return "", fmt.Errorf("failed to inspect target %s: %w", target, err)
	}
}

// Copy writes a card to a new location, optionally with its workspace files
func (d *Dispatcher) Copy(params CopyParams) error {
	if params.Recursive && params.AbsolutePaths {
		return derrors.NewUsageError("absolute-paths", "--recursive and --absolute-paths are mutually exclusive")
	}

	destination, err := ResolveCopyDestination(params.Source, params.Target)
	if err != nil {
		return err
	}

	timer := timing.NewTimer()
	c, err := d.cards.Load(params.Source)
	if err != nil {
		return fmt.Errorf("failed to load card %s: %w", params.Source, err)
	}
	timer.Mark("load")

	opts := card.WriteOptions{
		CopyWorkspaces: params.Recursive,
		AbsolutePaths:  params.AbsolutePaths,
	}
	if err := d.cards.Write(c, destination, opts); err != nil {
		return fmt.Errorf("failed to copy card to %s: %w", destination, err)
	}
	timer.Mark("write")

	d.log.Debug().
		Str("source", params.Source).
		Str("destination", destination).
		Bool("recursive", params.Recursive).
		Strs("workspace_files", c.WorkspaceFiles()).
		Str("timing", timer.Summary()).
		Msg("card copied")
	return nil
}
