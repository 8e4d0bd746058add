package cli

import (
	"fmt"

	"github.com/cardmanager/cardmanage/internal/inspect"
)

// Inspect prints a summary of a card
func (d *Dispatcher) Inspect(path string) error {
	c, err := d.cards.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load card %s: %w", path, err)
	}

	_, err = fmt.Fprint(d.out, inspect.Render(inspect.Collect(c)))
	return err
}
