// Package inspect summarizes a data card for display.
package inspect

import (
	"os"

	"github.com/cardmanager/cardmanage/internal/card"
)

// Data contains all the information to display for a card
type Data struct {
	Path      string
	Header    []string
	Bins      []string
	Processes []card.Process
	Nuisances []NuisanceInfo
	Params    []string
	Files     []FileInfo
}

// NuisanceInfo summarizes one nuisance row
type NuisanceInfo struct {
	Name string
	Type string
	// Affects counts columns with an effect other than "-"
	Affects int
}

// FileInfo describes a referenced workspace file
type FileInfo struct {
	Ref      string
	Resolved string
	Exists   bool
	Size     int64
}

// Collect gathers display data from c, checking workspace files on disk
func Collect(c *card.Card) *Data {
	data := &Data{
		Path:      c.Source,
		Header:    c.Header(),
		Bins:      c.Bins(),
		Processes: c.Processes(),
		Params:    c.ParamLines(),
	}

	for _, n := range c.Nuisances() {
		info := NuisanceInfo{Name: n.Name, Type: n.Type}
		for _, v := range n.Values {
			if v != "-" {
				info.Affects++
			}
		}
		data.Nuisances = append(data.Nuisances, info)
	}

	for _, ref := range c.WorkspaceFiles() {
		fi := FileInfo{Ref: ref, Resolved: c.ResolveWorkspaceFile(ref)}
		if stat, err := os.Stat(fi.Resolved); err == nil && !stat.IsDir() {
			fi.Exists = true
			fi.Size = stat.Size()
		}
		data.Files = append(data.Files, fi)
	}

	return data
}
