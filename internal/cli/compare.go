package cli

import (
	"fmt"
	"os"

	"github.com/cardmanager/cardmanage/internal/derrors"
)

// CompareParams contains parameters for the Compare command
type CompareParams struct {
	Path1 string
	Path2 string
}

// Compare prints whether two cards are equivalent and returns the verdict.
// Both files must exist; nothing is printed otherwise.
func (d *Dispatcher) Compare(params CompareParams) (bool, error) {
	for _, path := range []string{params.Path1, params.Path2} {
		if _, err := os.Stat(path); err != nil {
			return false, derrors.NewPreconditionError(path, "card file does not exist", err)
		}
	}

	equivalent, err := d.cards.Compare(params.Path1, params.Path2)
	if err != nil {
		return false, fmt.Errorf("failed to compare cards: %w", err)
	}

	if equivalent {
		_, _ = fmt.Fprintln(d.out, "Cards are equivalent.")
	} else {
		_, _ = fmt.Fprintln(d.out, "Cards are not equivalent.")
	}
	d.log.Debug().Str("path1", params.Path1).Str("path2", params.Path2).Bool("equivalent", equivalent).Msg("cards compared")
	return equivalent, nil
}
