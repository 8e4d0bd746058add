// Package card parses, edits and renders data cards.
//
// A card is six consecutive blocks of lines: header, shape, bin, process,
// nuisance and param. The first five are separated by lines made only of
// hyphens; the nuisance and param blocks are told apart by row shape.
package card

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/cardmanager/cardmanage/internal/derrors"
)

// separatorCount is the number of separator lines every card carries
const separatorCount = 4

// noEffect marks a nuisance that does not act on a column
const noEffect = "-"

// gammaType is the nuisance type whose rows carry an event count
// between the type and the per-column values
const gammaType = "gmN"

var separatorLine = regexp.MustCompile(`^[-\s]*-[-\s]*$`)

// directives never start a nuisance row even if the token count fits
var directives = map[string]bool{
	"param":       true,
	"rateParam":   true,
	"autoMCStats": true,
	"group":       true,
	"extArg":      true,
	"nuisance":    true,
	"discrete":    true,
	"flatParam":   true,
}

// Column is one (bin, process) pair of the process block
type Column struct {
	Bin     string
	Process string
	ID      string
}

// Process is a unique process of the card
type Process struct {
	ID   string
	Name string
}

// Nuisance is one row of the nuisance block
type Nuisance struct {
	Name string
	Type string
	// Arg is the event count of a gmN row, empty for other types
	Arg    string
	Values []string
}

// Card is the in-memory form of a data card
type Card struct {
	// Source is the file the card was loaded from, empty for cards built in memory
	Source string

	header      []string
	shapes      [][]string
	bins        [][]string
	processRows [][]string
	nuisances   []*Nuisance
	params      [][]string
}

// Load reads and parses the card at path
func Load(path string) (*Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, derrors.NewParseError(path, "failed to open card", err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, derrors.NewParseError(path, "failed to read card", err)
	}

	return Parse(path, lines)
}

// Parse builds a card from raw lines. source is only used for error
// reporting and for resolving workspace files.
func Parse(source string, lines []string) (*Card, error) {
	var cleaned []string
	var separators []int
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// comments survive only in the header
		if strings.HasPrefix(line, "#") && len(separators) > 0 {
			continue
		}
		if separatorLine.MatchString(line) {
			separators = append(separators, len(cleaned))
		}
		cleaned = append(cleaned, line)
	}

	if len(separators) != separatorCount {
		return nil, derrors.NewParseError(source, "failed to parse card",
			fmt.Errorf("expected %d separator lines, found %d", separatorCount, len(separators)))
	}

	c := &Card{Source: source}
	c.header = append([]string(nil), cleaned[:separators[0]]...)
	c.shapes = splitRows(cleaned[separators[0]+1 : separators[1]])
	c.bins = splitRows(cleaned[separators[1]+1 : separators[2]])
	c.processRows = splitRows(cleaned[separators[2]+1 : separators[3]])

	columns, err := c.columnCount()
	if err != nil {
		return nil, derrors.NewParseError(source, "invalid process block", err)
	}

	rest := splitRows(cleaned[separators[3]+1:])
	boundary := len(rest)
	for i, row := range rest {
		if !isNuisanceRow(row, columns) {
			boundary = i
			break
		}
	}

	seen := make(map[string]bool)
	for _, row := range rest[:boundary] {
		if seen[row[0]] {
			return nil, derrors.NewParseError(source, "invalid nuisance block",
				fmt.Errorf("duplicate nuisance name %q", row[0]))
		}
		seen[row[0]] = true
		n := &Nuisance{
			Name:   row[0],
			Type:   row[1],
			Values: append([]string(nil), row[len(row)-columns:]...),
		}
		if n.Type == gammaType {
			n.Arg = row[2]
		}
		c.nuisances = append(c.nuisances, n)
	}
	c.params = rest[boundary:]

	return c, nil
}

// isNuisanceRow reports whether row has the shape of a nuisance row:
// name, type, an event count for gmN, then one value per column
func isNuisanceRow(row []string, columns int) bool {
	if len(row) < 2 || directives[row[1]] {
		return false
	}
	want := columns + 2
	if row[1] == gammaType {
		want++
	}
	return len(row) == want
}

func splitRows(lines []string) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.Fields(line))
	}
	return rows
}

// columnCount validates the process block and returns its column count
func (c *Card) columnCount() (int, error) {
	if len(c.processRows) < 2 {
		return 0, fmt.Errorf("expected at least bin and process rows, found %d rows", len(c.processRows))
	}
	if c.processRows[0][0] != "bin" {
		return 0, fmt.Errorf("first process block row must start with 'bin', got %q", c.processRows[0][0])
	}
	width := len(c.processRows[0])
	if width < 2 {
		return 0, fmt.Errorf("process block has no columns")
	}
	for i, row := range c.processRows {
		if len(row) != width {
			return 0, fmt.Errorf("process block row %d has %d entries, expected %d", i+1, len(row), width)
		}
	}
	return width - 1, nil
}

// Columns returns the (bin, process) pairs in card order
func (c *Card) Columns() []Column {
	n := len(c.processRows[0]) - 1
	columns := make([]Column, n)
	for i := 0; i < n; i++ {
		columns[i] = Column{
			Bin:     c.processRows[0][i+1],
			Process: c.processRows[1][i+1],
		}
		if len(c.processRows) > 2 && c.processRows[2][0] == "process" {
			columns[i].ID = c.processRows[2][i+1]
		}
	}
	return columns
}

// Bins returns the unique bin names in card order
func (c *Card) Bins() []string {
	var bins []string
	seen := make(map[string]bool)
	for _, col := range c.Columns() {
		if !seen[col.Bin] {
			seen[col.Bin] = true
			bins = append(bins, col.Bin)
		}
	}
	return bins
}

// Processes returns the unique processes in order of first appearance
func (c *Card) Processes() []Process {
	var processes []Process
	seen := make(map[string]bool)
	for _, col := range c.Columns() {
		if !seen[col.Process] {
			seen[col.Process] = true
			processes = append(processes, Process{ID: col.ID, Name: col.Process})
		}
	}
	return processes
}

// Header returns the header lines
func (c *Card) Header() []string {
	return append([]string(nil), c.header...)
}

// Nuisances returns copies of the nuisance rows
func (c *Card) Nuisances() []Nuisance {
	out := make([]Nuisance, 0, len(c.nuisances))
	for _, n := range c.nuisances {
		out = append(out, Nuisance{Name: n.Name, Type: n.Type, Arg: n.Arg, Values: append([]string(nil), n.Values...)})
	}
	return out
}

// ParamLines returns the param block rows joined by single spaces
func (c *Card) ParamLines() []string {
	lines := make([]string, 0, len(c.params))
	for _, row := range c.params {
		lines = append(lines, strings.Join(row, " "))
	}
	return lines
}

func (c *Card) nuisance(name string) (*Nuisance, error) {
	for _, n := range c.nuisances {
		if n.Name == name {
			return n, nil
		}
	}
	return nil, derrors.NewNotFoundError("nuisance", fmt.Sprintf("nuisance %q not found", name))
}

func (c *Card) columnIndex(process, bin string) (int, error) {
	for i, col := range c.Columns() {
		if col.Process == process && col.Bin == bin {
			return i, nil
		}
	}
	return 0, derrors.NewNotFoundError("column", fmt.Sprintf("no column for process %q in bin %q", process, bin))
}

// Effect returns the raw effect of a nuisance on a process in a bin
func (c *Card) Effect(nuisance, process, bin string) (string, error) {
	n, err := c.nuisance(nuisance)
	if err != nil {
		return "", err
	}
	i, err := c.columnIndex(process, bin)
	if err != nil {
		return "", err
	}
	return n.Values[i], nil
}

// EffectValue is Effect as a number; a missing effect ("-") reads as 0
func (c *Card) EffectValue(nuisance, process, bin string) (float64, error) {
	raw, err := c.Effect(nuisance, process, bin)
	if err != nil {
		return 0, err
	}
	if raw == noEffect {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("effect of %s on %s/%s is not numeric: %q", nuisance, process, bin, raw)
	}
	return v, nil
}

// SetEffect changes the effect of a nuisance on a process in a bin
func (c *Card) SetEffect(nuisance, process, bin, value string) error {
	if value == "" || strings.ContainsAny(value, " \t\n") {
		return fmt.Errorf("invalid effect value %q", value)
	}
	n, err := c.nuisance(nuisance)
	if err != nil {
		return err
	}
	i, err := c.columnIndex(process, bin)
	if err != nil {
		return err
	}
	n.Values[i] = value
	return nil
}

// Clone returns a deep copy
func (c *Card) Clone() *Card {
	out := &Card{
		Source:      c.Source,
		header:      append([]string(nil), c.header...),
		shapes:      cloneRows(c.shapes),
		bins:        cloneRows(c.bins),
		processRows: cloneRows(c.processRows),
		params:      cloneRows(c.params),
	}
	for _, n := range c.nuisances {
		out.nuisances = append(out.nuisances, &Nuisance{
			Name:   n.Name,
			Type:   n.Type,
			Arg:    n.Arg,
			Values: append([]string(nil), n.Values...),
		})
	}
	return out
}

func cloneRows(rows [][]string) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
