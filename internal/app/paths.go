package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/corey/xcprojlint/internal/domain/lint"
)

const (
	bundleExt   = ".xcodeproj"
	projectFile = "project.pbxproj"
	stateDir    = ".xcprojlint"
)

// ErrNoProject means no .xcodeproj bundle was found where one was expected.
var ErrNoProject = errors.New("no .xcodeproj found")

// Paths holds all resolved filesystem paths for one project. All fields are
// absolute.
type Paths struct {
	Project string // App.xcodeproj/project.pbxproj
	Bundle  string // App.xcodeproj/
	Dir     string // directory holding the bundle
	Config  string // .xcprojlint.yaml next to the bundle

	Root string // .xcprojlint/
	DB   string // .xcprojlint/history.db
}

// NewPaths constructs all paths from the location of a project.pbxproj file.
func NewPaths(pbxprojPath string) *Paths {
	bundle := filepath.Dir(pbxprojPath)
	dir := filepath.Dir(bundle)
	root := filepath.Join(dir, stateDir)
	return &Paths{
		Project: pbxprojPath,
		Bundle:  bundle,
		Dir:     dir,
		Config:  filepath.Join(dir, lint.ConfigFileName),
		Root:    root,
		DB:      filepath.Join(root, "history.db"),
	}
}

// ResolvePaths locates the project file named by arg. arg may be an
// .xcodeproj bundle, a project.pbxproj file, or a directory to search for the
// first bundle. An empty arg searches cwd.
func ResolvePaths(arg, cwd string) (*Paths, error) {
	if arg == "" {
		arg = cwd
	}
	if !filepath.IsAbs(arg) {
		arg = filepath.Join(cwd, arg)
	}
	arg = filepath.Clean(arg)

	info, err := os.Stat(arg)
	if err != nil {
		return nil, fmt.Errorf("resolve project: %w", err)
	}

	var pbxproj string
	switch {
	case !info.IsDir():
		if filepath.Base(arg) != projectFile {
			return nil, fmt.Errorf("resolve project: %s is not a %s file", arg, projectFile)
		}
		pbxproj = arg
	case strings.HasSuffix(arg, bundleExt):
		pbxproj = filepath.Join(arg, projectFile)
	default:
		bundle, err := findBundle(arg)
		if err != nil {
			return nil, err
		}
		pbxproj = filepath.Join(bundle, projectFile)
	}

	if _, err := os.Stat(pbxproj); err != nil {
		return nil, fmt.Errorf("resolve project: %w", err)
	}
	return NewPaths(pbxproj), nil
}

// findBundle returns the first .xcodeproj directory in dir, by name.
func findBundle(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("resolve project: %w", err)
	}
	var bundles []string
	for _, e := range entries {
		if e.IsDir() && strings.HasSuffix(e.Name(), bundleExt) {
			bundles = append(bundles, e.Name())
		}
	}
	if len(bundles) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoProject, dir)
	}
	sort.Strings(bundles)
	return filepath.Join(dir, bundles[0]), nil
}

// EnsureDirs creates the state directory. Idempotent.
func (p *Paths) EnsureDirs() error {
	return os.MkdirAll(p.Root, 0755)
}
