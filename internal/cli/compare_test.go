package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardmanager/cardmanage/internal/card"
	"github.com/cardmanager/cardmanage/internal/derrors"
	"github.com/cardmanager/cardmanage/internal/logger"
)

func TestCompare_MissingFile(t *testing.T) {
	dir := t.TempDir()
	existing := writeCardFile(t, dir, "a.txt", testCard)
	svc := &fakeService{}
	d, out := newTestDispatcher(svc)

	_, err := d.Compare(CompareParams{Path1: existing, Path2: filepath.Join(dir, "missing.txt")})
	var preErr *derrors.PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.Equal(t, filepath.Join(dir, "missing.txt"), preErr.Path)
	assert.Empty(t, out.String())
	assert.Empty(t, svc.compare)
}

func TestCompare_PrintsVerdict(t *testing.T) {
	dir := t.TempDir()
	a := writeCardFile(t, dir, "a.txt", testCard)
	b := writeCardFile(t, dir, "b.txt", testCard)

	t.Run("equivalent", func(t *testing.T) {
		d, out := newTestDispatcher(&fakeService{equivalent: true})
		equivalent, err := d.Compare(CompareParams{Path1: a, Path2: b})
		require.NoError(t, err)
		assert.True(t, equivalent)
		assert.Equal(t, "Cards are equivalent.\n", out.String())
	})

	t.Run("not equivalent", func(t *testing.T) {
		d, out := newTestDispatcher(&fakeService{})
		equivalent, err := d.Compare(CompareParams{Path1: a, Path2: b})
		require.NoError(t, err)
		assert.False(t, equivalent)
		assert.Equal(t, "Cards are not equivalent.\n", out.String())
	})

	t.Run("service error", func(t *testing.T) {
		d, out := newTestDispatcher(&fakeService{compareErr: errBoom})
		_, err := d.Compare(CompareParams{Path1: a, Path2: b})
		assert.ErrorIs(t, err, errBoom)
		assert.Empty(t, out.String())
	})
}

func TestCompare_FormattedCardMatchesSource(t *testing.T) {
	dir := t.TempDir()
	src := writeCardFile(t, dir, "card.txt", testCard)
	formatted := filepath.Join(dir, "formatted.txt")
	d, out := newTestDispatcher(card.NewManager(card.ManagerConfig{}, nil))

	require.NoError(t, d.Format(FormatParams{Path: src, Output: formatted}))
	equivalent, err := d.Compare(CompareParams{Path1: src, Path2: formatted})
	require.NoError(t, err)
	assert.True(t, equivalent)
	assert.Equal(t, "Cards are equivalent.\n", out.String())

	changed := writeCardFile(t, dir, "changed.txt", strings.Replace(testCard, "1.02 1.02", "1.02 1.05", 1))
	out.Reset()
	equivalent, err = New(card.NewManager(card.ManagerConfig{}, nil), logger.Discard(), out).
		Compare(CompareParams{Path1: src, Path2: changed})
	require.NoError(t, err)
	assert.False(t, equivalent)
}
