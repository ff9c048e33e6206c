package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	p := NewPaths(filepath.Join("/work", "App.xcodeproj", "project.pbxproj"))
	assert.Equal(t, filepath.Join("/work", "App.xcodeproj"), p.Bundle)
	assert.Equal(t, "/work", p.Dir)
	assert.Equal(t, filepath.Join("/work", ".xcprojlint.yaml"), p.Config)
	assert.Equal(t, filepath.Join("/work", ".xcprojlint"), p.Root)
	assert.Equal(t, filepath.Join("/work", ".xcprojlint", "history.db"), p.DB)
}

// makeBundle creates <dir>/<name>/project.pbxproj and returns its path.
func makeBundle(t *testing.T, dir, name string) string {
	t.Helper()
	bundle := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(bundle, 0755))
	path := filepath.Join(bundle, "project.pbxproj")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	return path
}

func TestResolvePaths(t *testing.T) {
	dir := t.TempDir()
	want := makeBundle(t, dir, "App.xcodeproj")
	makeBundle(t, dir, "Zed.xcodeproj")

	cases := map[string]string{
		"empty searches cwd": "",
		"bundle":             "App.xcodeproj",
		"pbxproj file":       filepath.Join("App.xcodeproj", "project.pbxproj"),
		"absolute dir":       dir,
	}
	for name, arg := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := ResolvePaths(arg, dir)
			require.NoError(t, err)
			assert.Equal(t, want, p.Project)
		})
	}
}

func TestResolvePaths_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ResolvePaths("", dir)
	assert.ErrorIs(t, err, ErrNoProject)

	_, err = ResolvePaths("Missing.xcodeproj", dir)
	assert.ErrorIs(t, err, os.ErrNotExist)

	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, nil, 0644))
	_, err = ResolvePaths(other, dir)
	assert.Error(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Empty.xcodeproj"), 0755))
	_, err = ResolvePaths("Empty.xcodeproj", dir)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnsureDirs(t *testing.T) {
	p := NewPaths(filepath.Join(t.TempDir(), "App.xcodeproj", "project.pbxproj"))

	require.NoError(t, p.EnsureDirs())
	info, err := os.Stat(p.Root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, p.EnsureDirs())
}
