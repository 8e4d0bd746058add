package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cardmanager/cardmanage/internal/card"
	"github.com/cardmanager/cardmanage/internal/derrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, sources, err := Load(LoadOptions{SkipGlobal: true})
	require.NoError(t, err)

	assert.Empty(t, sources)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Layering(t *testing.T) {
	global := t.TempDir()
	writeConfig(t, global, "config.yml", "log_level: info\nformat:\n  column_gap: 4\n")

	root := t.TempDir()
	writeConfig(t, root, ".cardmanage.toml", "[format]\nseparator_width = 30\n")
	work := filepath.Join(root, "analysis", "monojet")
	writeConfig(t, work, ".cardmanage.json", `{"compare": {"tolerance": 0.001}}`)

	explicit := writeConfig(t, t.TempDir(), "override.yaml", "log_level: debug\n")

	cfg, sources, err := Load(LoadOptions{
		WorkDir:      work,
		GlobalDir:    global,
		ExplicitPath: explicit,
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30, cfg.Format.SeparatorWidth)
	assert.Equal(t, 4, cfg.Format.ColumnGap)
	assert.InDelta(t, 0.001, cfg.Compare.Tolerance, 1e-12)

	require.Len(t, sources, 4)
	assert.Equal(t, filepath.Join(global, "config.yml"), sources[0])
	assert.Equal(t, explicit, sources[3])
}

func TestLoad_DeeperLocalConfigWins(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ".cardmanage.yml", "format:\n  separator_width: 10\n")
	child := filepath.Join(root, "child")
	writeConfig(t, child, ".cardmanage.yml", "format:\n  separator_width: 12\n")

	cfg, _, err := Load(LoadOptions{WorkDir: child, SkipGlobal: true})
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Format.SeparatorWidth)
	assert.Equal(t, card.DefaultColumnGap, cfg.Format.ColumnGap)
}

func TestLoad_ExplicitMissing(t *testing.T) {
	_, _, err := Load(LoadOptions{SkipGlobal: true, ExplicitPath: filepath.Join(t.TempDir(), "nope.yml")})

	var cfgErr *derrors.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_InvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{name: "unknown key", file: "c.yml", content: "colour: red\n", want: "colour"},
		{name: "bad level", file: "c.yml", content: "log_level: loud\n", want: "log_level"},
		{name: "zero width", file: "c.json", content: `{"format": {"separator_width": 0}}`, want: "separator_width"},
		{name: "negative tolerance", file: "c.toml", content: "[compare]\ntolerance = -1.0\n", want: "tolerance"},
		{name: "syntax", file: "c.yml", content: "format: [unclosed\n", want: "Invalid YAML syntax"},
		{name: "extension", file: "c.ini", content: "x=1\n", want: "unsupported config format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.file, tt.content)

			_, _, err := Load(LoadOptions{SkipGlobal: true, ExplicitPath: path})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			var cfgErr *derrors.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, path, cfgErr.Path)
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "empty.yml", "")

	cfg, _, err := Load(LoadOptions{SkipGlobal: true, ExplicitPath: path})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestGlobalConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := GlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/cardmanage", dir)
}

func TestLoad_GlobalFromXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeConfig(t, filepath.Join(xdg, "cardmanage"), "config.yaml", "log_level: error\n")

	cfg, sources, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, []string{filepath.Join(xdg, "cardmanage", "config.yaml")}, sources)
}

func TestFindConfigFiles(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ".cardmanage.yml", "")
	mid := filepath.Join(root, "a")
	require.NoError(t, os.MkdirAll(mid, 0755))
	leaf := filepath.Join(mid, "b")
	writeConfig(t, leaf, ".cardmanage.json", "{}")
	// only one file per directory, yml first
	writeConfig(t, leaf, ".cardmanage.yml", "")

	files, err := FindConfigFiles(leaf)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(files), 2)
	last := files[len(files)-2:]
	assert.Equal(t, []string{
		filepath.Join(root, ".cardmanage.yml"),
		filepath.Join(leaf, ".cardmanage.yml"),
	}, last)
}

func TestFindConfigFiles_MissingDir(t *testing.T) {
	_, err := FindConfigFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestManagerConfig(t *testing.T) {
	cfg := &Config{
		Format:  FormatConfig{SeparatorWidth: 8, ColumnGap: 3},
		Compare: CompareConfig{Tolerance: 0.5},
	}

	assert.Equal(t, card.ManagerConfig{
		Format:    card.Format{SeparatorWidth: 8, ColumnGap: 3},
		Tolerance: 0.5,
	}, cfg.ManagerConfig())
}
