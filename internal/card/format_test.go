package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spaces(n int) string { return strings.Repeat(" ", n) }

func TestFormat_Lines(t *testing.T) {
	c := parseString(t, "", smallCard)
	sep := strings.Repeat("-", 20)

	want := []string{
		"imax 1",
		sep,
		"shapes  *  ch1  ws.root  ch1:$PROCESS",
		sep,
		"bin" + spaces(10) + "ch1",
		"observation  10",
		sep,
		"bin" + spaces(11) + "ch1" + spaces(3) + "ch1",
		"process" + spaces(7) + "sig" + spaces(3) + "bkg",
		"process" + spaces(7) + "0" + spaces(5) + "1",
		"rate" + spaces(10) + "1.5" + spaces(3) + "10",
		sep,
		"lumi" + spaces(5) + "lnN  1.02  1.02",
		"bkg_norm  rateParam  ch1  bkg  1",
	}

	assert.Equal(t, want, DefaultFormat().Lines(c))
}

func TestFormat_CustomLayout(t *testing.T) {
	c := parseString(t, "", smallCard)
	lines := Format{SeparatorWidth: 5, ColumnGap: 1}.Lines(c)

	assert.Equal(t, "-----", lines[1])
	assert.Equal(t, "shapes * ch1 ws.root ch1:$PROCESS", lines[2])
}

func TestFormat_ZeroValueUsesDefaults(t *testing.T) {
	c := parseString(t, "", smallCard)
	assert.Equal(t, DefaultFormat().Lines(c), Format{}.Lines(c))
}

func TestFormat_FourSeparators(t *testing.T) {
	c, err := Load(exampleCard)
	require.NoError(t, err)

	count := 0
	for _, line := range DefaultFormat().Lines(c) {
		if separatorLine.MatchString(line) {
			count++
		}
	}
	assert.Equal(t, separatorCount, count)
}

func TestFormat_Idempotent(t *testing.T) {
	c, err := Load(exampleCard)
	require.NoError(t, err)

	first := DefaultFormat().Lines(c)
	reparsed, err := Parse("", first)
	require.NoError(t, err)
	second := DefaultFormat().Lines(reparsed)

	assert.Equal(t, first, second)
}

func TestFormat_GammaNuisance(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "gamma.txt", gammaCard)
	c, err := Load(src)
	require.NoError(t, err)

	lines := DefaultFormat().Lines(c)
	assert.Contains(t, lines, "stat"+spaces(5)+"gmN 10  -"+spaces(5)+"0.5")
	assert.Contains(t, lines, "process"+spaces(10)+"sig"+spaces(3)+"bkg")

	reparsed, err := Parse("", lines)
	require.NoError(t, err)
	assert.Equal(t, c.Nuisances(), reparsed.Nuisances())

	out := writeFile(t, dir, "formatted.txt", string(DefaultFormat().Render(c)))
	equal, err := Compare(src, out, 0)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestFormat_RenderEndsWithNewline(t *testing.T) {
	c := parseString(t, "", smallCard)
	out := string(DefaultFormat().Render(c))

	assert.True(t, strings.HasSuffix(out, "bkg_norm  rateParam  ch1  bkg  1\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestTabulate(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		gap  int
		want []string
	}{
		{
			name: "empty",
			rows: nil,
			gap:  2,
			want: []string{},
		},
		{
			name: "ragged rows",
			rows: [][]string{{"a", "bbb"}, {"cccc"}, {"d", "e", "f"}},
			gap:  1,
			want: []string{"a    bbb", "cccc", "d    e   f"},
		},
		{
			name: "empty cell keeps its column",
			rows: [][]string{{"bin", "", "x"}, {"n", "lnN", "1"}},
			gap:  2,
			want: []string{"bin       x", "n    lnN  1"},
		},
		{
			name: "multibyte cells",
			rows: [][]string{{"µ", "x"}, {"ab", "y"}},
			gap:  1,
			want: []string{"µ  x", "ab y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tabulate(tt.rows, tt.gap))
		})
	}
}
