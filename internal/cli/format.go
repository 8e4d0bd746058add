package cli

import (
	"fmt"

	"github.com/cardmanager/cardmanage/internal/card"
	"github.com/cardmanager/cardmanage/internal/derrors"
	"github.com/cardmanager/cardmanage/internal/timing"
)

// FormatParams contains parameters for the Format command
type FormatParams struct {
	Path    string
	InPlace bool
	Output  string
}

// ResolveFormatDestination picks where a rewritten card goes.
// Exactly one of inPlace and output must be given.
func ResolveFormatDestination(path string, inPlace bool, output string) (string, error) {
	switch {
	case inPlace && output != "":
		return "", derrors.NewUsageError("output", "--in-place and --output are mutually exclusive")
	case !inPlace && output == "":
		return "", derrors.NewUsageError("output", "one of --in-place or --output is required")
	case inPlace:
		return path, nil
	default:
		return output, nil
	}
}

// Format rewrites a card in canonical form
func (d *Dispatcher) Format(params FormatParams) error {
	destination, err := ResolveFormatDestination(params.Path, params.InPlace, params.Output)
	if err != nil {
		return err
	}

	timer := timing.NewTimer()
	c, err := d.cards.Load(params.Path)
	if err != nil {
		return fmt.Errorf("failed to load card %s: %w", params.Path, err)
	}
	timer.Mark("load")

	if err := d.cards.Write(c, destination, card.WriteOptions{}); err != nil {
		return fmt.Errorf("failed to write card %s: %w", destination, err)
	}
	timer.Mark("write")

	d.log.Debug().
		Str("source", params.Path).
		Str("destination", destination).
		Str("timing", timer.Summary()).
		Msg("card formatted")
	return nil
}
