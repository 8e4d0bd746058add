package cli

import (
	"fmt"

	"github.com/cardmanager/cardmanage/internal/card"
)

// SetEffectParams contains parameters for the SetEffect command
type SetEffectParams struct {
	Path     string
	Nuisance string
	Process  string
	Bin      string
	Value    string
	InPlace  bool
	Output   string
}

// SetEffect changes one nuisance effect and writes the card
func (d *Dispatcher) SetEffect(params SetEffectParams) error {
	destination, err := ResolveFormatDestination(params.Path, params.InPlace, params.Output)
	if err != nil {
		return err
	}

	c, err := d.cards.Load(params.Path)
	if err != nil {
		return fmt.Errorf("failed to load card %s: %w", params.Path, err)
	}

	previous, err := c.Effect(params.Nuisance, params.Process, params.Bin)
	if err != nil {
		return err
	}
	if err := c.SetEffect(params.Nuisance, params.Process, params.Bin, params.Value); err != nil {
		return err
	}

	if err := d.cards.Write(c, destination, card.WriteOptions{}); err != nil {
		return fmt.Errorf("failed to write card %s: %w", destination, err)
	}

	d.log.Info().
		Str("nuisance", params.Nuisance).
		Str("process", params.Process).
		Str("bin", params.Bin).
		Str("from", previous).
		Str("to", params.Value).
		Msg("nuisance effect updated")
	return nil
}
