// Package cli implements the cardmanage commands on top of a card service.
package cli

import (
	"io"
	"os"

	"github.com/cardmanager/cardmanage/internal/card"
	"github.com/cardmanager/cardmanage/internal/logger"
)

// Service loads, writes and compares cards.
// card.Manager is the filesystem implementation.
type Service interface {
	Load(path string) (*card.Card, error)
	Write(c *card.Card, destination string, opts card.WriteOptions) error
	Compare(path1, path2 string) (bool, error)
}

// Dispatcher validates command parameters and forwards them to a Service
type Dispatcher struct {
	cards Service
	log   *logger.Logger
	out   io.Writer
}

// New creates a dispatcher printing results to out (stdout when nil)
func New(cards Service, log *logger.Logger, out io.Writer) *Dispatcher {
	if log == nil {
		log = logger.Discard()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Dispatcher{cards: cards, log: log, out: out}
}
