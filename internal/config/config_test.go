package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delegen/internal/plan"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, plan.DefaultConfig(), c.PlanConfig())
	assert.Equal(t, FormatYAML, c.Output.Format)
	assert.Empty(t, c.OutputDir())
	assert.Nil(t, c.LogPath())
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := Parse(`
[naming]
scheme = "indexed"
value = "newValue"

[planner]
workers = 2
strict = true

[output]
format = "cbor"
`)
	require.NoError(t, err)

	pc := c.PlanConfig()
	assert.Equal(t, plan.NamingIndexed, pc.Naming)
	assert.Equal(t, "newValue", pc.ValueParam)
	assert.Equal(t, "$delegate", pc.DelegatePrefix, "unset keys keep defaults")
	assert.Equal(t, "$receiver", pc.ReceiverParam)

	assert.Equal(t, 2, c.Planner.Workers)
	assert.True(t, c.Planner.Strict)
	assert.Equal(t, FormatCBOR, c.Output.Format)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"syntax", "[naming\n", "parse error"},
		{"unknown key", "[naming]\nprefx = \"x\"\n", "unknown keys: naming.prefx"},
		{"bad scheme", "[naming]\nscheme = \"random\"\n", "naming.scheme"},
		{"bad format", "[output]\nformat = \"json\"\n", "output.format"},
		{"negative workers", "[planner]\nworkers = -1\n", "planner.workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	text := "[output]\ndir = \"gen\"\n\n[log]\nverbosity = 2\npath = \"delegen.log\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(text), 0o644))

	c, err := FindAndLoad(nested)
	require.NoError(t, err)

	abs, err := filepath.Abs(root)
	require.NoError(t, err)

	assert.Equal(t, abs, c.Dir)
	assert.Equal(t, filepath.Join(abs, "gen"), c.OutputDir())
	assert.Equal(t, 2, c.Log.Verbosity)
	require.NotNil(t, c.LogPath())
	assert.Equal(t, filepath.Join(abs, "delegen.log"), *c.LogPath())
}

func TestFindAndLoadWithoutFile(t *testing.T) {
	c, err := FindAndLoad(t.TempDir())
	require.NoError(t, err)

	// A delegen.toml above the temp dir would change this; defaults otherwise.
	if c.Dir == "" {
		assert.Equal(t, Default(), c)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[output]\nformat = 1\n"), 0o644))

	_, err = Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), FileName)
}

func TestLoadFileAnyName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[naming]\nprefix = \"$d\"\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "$d", c.PlanConfig().DelegatePrefix)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, c.Dir)
}
