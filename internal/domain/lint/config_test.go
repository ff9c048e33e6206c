package lint

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/xcprojlint/internal/ports"
)

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfig_Fields(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
validations:
  - empty-groups
  - files-exist
report: warning
skip_folders:
  - Pods
allowed_build_settings:
  - SWIFT_VERSION
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"empty-groups", "files-exist"}, cfg.Validations)
	assert.Equal(t, "warning", cfg.Report)
	assert.Equal(t, []string{"Pods"}, cfg.SkipFolders)
	assert.Equal(t, []string{"SWIFT_VERSION"}, cfg.AllowedBuildSettings)

	opts := cfg.Options("/proj")
	assert.Equal(t, ports.SeverityWarning, opts.Severity)
	assert.Equal(t, "/proj", opts.ProjectDir)

	rules, err := cfg.Rules()
	require.NoError(t, err)
	assert.Len(t, rules, 2)
}

func TestParseConfig_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":        "colour: red\n",
		"unknown validation": "validations: [not-a-rule]\n",
		"bad report":         "report: fatal\n",
		"bad yaml":           "validations: [\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFileIsDefault(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("report: fatal\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestConfig_KeyChangesWithContent(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	assert.Equal(t, a.Key(), b.Key())

	b.SkipFolders = []string{"Pods"}
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestTemplate_IsValidConfig(t *testing.T) {
	cfg, err := ParseConfig(Template)
	require.NoError(t, err)
	assert.Equal(t, []string{All}, cfg.Validations)
	assert.Equal(t, []string{"Pods", "Carthage"}, cfg.SkipFolders)
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, WriteTemplate(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Report)

	assert.ErrorIs(t, WriteTemplate(path), fs.ErrExist)
}
