package card

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	spaceRun  = regexp.MustCompile(`\s+`)
	hyphenRun = regexp.MustCompile(`-+`)
)

// NormalizeLine collapses whitespace and hyphen runs so that lines which
// differ only in layout compare equal
func NormalizeLine(line string) string {
	line = spaceRun.ReplaceAllString(line, " ")
	line = hyphenRun.ReplaceAllString(line, "-")
	return strings.TrimSpace(line)
}

func loadForComparison(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := NormalizeLine(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Compare reports whether the cards at path1 and path2 are equivalent,
// ignoring layout, blank lines and comments. Numeric tokens match when
// they differ by at most tolerance.
func Compare(path1, path2 string, tolerance float64) (bool, error) {
	lines1, err := loadForComparison(path1)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path1, err)
	}
	lines2, err := loadForComparison(path2)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path2, err)
	}
	return EquivalentLines(lines1, lines2, tolerance), nil
}

// EquivalentLines compares normalized card lines pairwise
func EquivalentLines(a, b []string, tolerance float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equivalentLine(a[i], b[i], tolerance) {
			return false
		}
	}
	return true
}

func equivalentLine(a, b string, tolerance float64) bool {
	if a == b {
		return true
	}
	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)
	if len(tokensA) != len(tokensB) {
		return false
	}
	for i := range tokensA {
		if !equivalentToken(tokensA[i], tokensB[i], tolerance) {
			return false
		}
	}
	return true
}

func equivalentToken(a, b string, tolerance float64) bool {
	if a == b {
		return true
	}
	x, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return false
	}
	y, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return false
	}
	return x == y || math.Abs(x-y) <= tolerance
}
