package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/xcprojlint/internal/domain/pbxproj"
	"github.com/corey/xcprojlint/internal/ports"
)

// =============================================================================
// Fixtures: the sample project copied into a temp dir with its files on disk
// =============================================================================

var sampleFiles = []string{
	"Sample/AppDelegate.swift",
	"Sample/ViewController.swift",
	"Sample/Helpers.swift",
	"Sample/Info.plist",
	"Sample/Base.lproj/Main.storyboard",
}

func setupSample(t *testing.T) *Paths {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "adapters", "plist", "testdata", "Sample.xcodeproj", "project.pbxproj"))
	require.NoError(t, err)

	dir := t.TempDir()
	bundle := filepath.Join(dir, "Sample.xcodeproj")
	require.NoError(t, os.MkdirAll(bundle, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bundle, "project.pbxproj"), data, 0644))

	for _, rel := range sampleFiles {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Sample", "Empty"), 0755))
	return NewPaths(filepath.Join(bundle, "project.pbxproj"))
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = NewLogger("error", "text", io.Discard)
	}
	a, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func rulesOf(findings []ports.Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Rule
	}
	return out
}

// =============================================================================
// Lint
// =============================================================================

func TestLint_SampleProject(t *testing.T) {
	paths := setupSample(t)
	a := newTestApp(t, Config{Paths: paths})

	res, err := a.Lint(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Empty(t, res.Notices)
	assert.Equal(t, 27, res.Project.Records)

	assert.Equal(t, []string{
		"dangling-source-files",
		"items-in-alpha-order",
		"empty-groups",
		"build-settings-externalized",
		"build-settings-externalized",
	}, rulesOf(res.Findings))
	assert.Equal(t, 5, res.ErrorCount())

	f := res.Findings[0]
	assert.Equal(t, paths.Project, f.Path)
	assert.Equal(t, 20, f.Line)
	assert.Equal(t, `source file "Helpers.swift" is not a member of any target`, f.Message)
	assert.Equal(t, `"Helpers.swift" should come before "ViewController.swift" in group "Sample"`, res.Findings[1].Message)
	assert.Equal(t, `Debug configuration of target "Sample" has inline build settings: PRODUCT_BUNDLE_IDENTIFIER`, res.Findings[4].Message)

	runs, err := a.History(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, res.Digest, runs[0].Digest)
	assert.Equal(t, 27, runs[0].Records)
	assert.Len(t, runs[0].Validations, 6)
}

func TestLint_ReusesCacheButRechecksDisk(t *testing.T) {
	paths := setupSample(t)
	a := newTestApp(t, Config{Paths: paths})

	first, err := a.Lint(context.Background())
	require.NoError(t, err)

	second, err := a.Lint(context.Background())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Digest, second.Digest)
	assert.Equal(t, first.Findings, second.Findings)

	require.NoError(t, os.Remove(filepath.Join(paths.Dir, "Sample", "AppDelegate.swift")))
	third, err := a.Lint(context.Background())
	require.NoError(t, err)
	assert.True(t, third.Cached)
	assert.Len(t, third.Findings, 6)
	assert.Contains(t, rulesOf(third.Findings), "files-exist")
}

func TestLint_NoCache(t *testing.T) {
	paths := setupSample(t)
	a := newTestApp(t, Config{Paths: paths, NoCache: true})

	for i := 0; i < 2; i++ {
		res, err := a.Lint(context.Background())
		require.NoError(t, err)
		assert.False(t, res.Cached)
	}
}

func TestLint_ConfigFileChangesDigestAndSeverity(t *testing.T) {
	paths := setupSample(t)
	first := newTestApp(t, Config{Paths: paths})
	base, err := first.Lint(context.Background())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	require.NoError(t, os.WriteFile(paths.Config, []byte("report: warning\nallowed_build_settings: [PRODUCT_BUNDLE_IDENTIFIER]\n"), 0644))
	a := newTestApp(t, Config{Paths: paths})

	res, err := a.Lint(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, base.Digest, res.Digest)
	assert.False(t, res.Cached)
	assert.Len(t, res.Findings, 4)
	assert.Zero(t, res.ErrorCount())
}

func TestLint_Overrides(t *testing.T) {
	paths := setupSample(t)
	a := newTestApp(t, Config{Paths: paths, Validations: []string{"empty-groups"}, Report: "warning"})

	res, err := a.Lint(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, ports.SeverityWarning, res.Findings[0].Severity)
}

func TestLint_ParseFailure(t *testing.T) {
	paths := setupSample(t)
	require.NoError(t, os.WriteFile(paths.Project, []byte("{ objects = { }; }"), 0644))
	a := newTestApp(t, Config{Paths: paths})

	_, err := a.Lint(context.Background())
	assert.ErrorIs(t, err, pbxproj.ErrNoRecords)

	runs, err := a.History(0)
	require.NoError(t, err)
	assert.Empty(t, runs, "failed runs are not recorded")
}

func TestLint_CancelledContext(t *testing.T) {
	a := newTestApp(t, Config{Paths: setupSample(t)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Lint(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	paths := setupSample(t)
	require.NoError(t, os.WriteFile(paths.Config, []byte("validations: [bogus]\n"), 0644))

	_, err := New(Config{Paths: paths})
	assert.Error(t, err)

	_, err = New(Config{})
	assert.Error(t, err)
}

func TestTitles(t *testing.T) {
	a := newTestApp(t, Config{Paths: setupSample(t)})

	titles, err := a.Titles()
	require.NoError(t, err)
	assert.Len(t, titles, 15)
	assert.Equal(t, "AppDelegate.swift", titles["A20000000000000000000001"])
	assert.Equal(t, "Debug", titles.Title("A70000000000000000000001"))
}

func TestTitles_ConcurrentWithLint(t *testing.T) {
	a := newTestApp(t, Config{Paths: setupSample(t), NoCache: true})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			titles, err := a.Titles()
			assert.NoError(t, err)
			assert.Len(t, titles, 15)
		}()
		go func() {
			defer wg.Done()
			_, err := a.Lint(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestLoad_LogsFormatAndTargets(t *testing.T) {
	var buf bytes.Buffer
	a := newTestApp(t, Config{Paths: setupSample(t), Logger: NewLogger("debug", "text", &buf)})

	p, _, _, err := a.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Sample"}, p.Targets())
	assert.Contains(t, buf.String(), "format=OpenStep")

	_, err = a.Lint(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "targets=[Sample]")
}

func TestClearHistory(t *testing.T) {
	a := newTestApp(t, Config{Paths: setupSample(t)})
	_, err := a.Lint(context.Background())
	require.NoError(t, err)

	require.NoError(t, a.ClearHistory())
	runs, err := a.History(0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

// =============================================================================
// Watch
// =============================================================================

// fakeWatcher fires the configured paths synchronously from Watch.
type fakeWatcher struct {
	fire    []string
	watched []string
	stopped bool
}

func (f *fakeWatcher) Watch(paths []string, onChange func(string)) error {
	f.watched = paths
	for _, p := range f.fire {
		onChange(p)
	}
	return nil
}

func (f *fakeWatcher) Stop() error {
	f.stopped = true
	return nil
}

var _ ports.Watcher = (*fakeWatcher)(nil)

func TestWatch_RelintsOnChange(t *testing.T) {
	paths := setupSample(t)
	a := newTestApp(t, Config{Paths: paths})
	w := &fakeWatcher{fire: []string{paths.Project}}

	ctx, cancel := context.WithCancel(context.Background())
	var results []*Result
	err := a.Watch(ctx, w, func(res *Result, err error) {
		require.NoError(t, err)
		results = append(results, res)
		if len(results) == 2 {
			cancel()
		}
	})
	require.NoError(t, err)

	assert.Len(t, results, 2)
	assert.True(t, results[1].Cached)
	assert.Equal(t, []string{paths.Project, paths.Config}, w.watched)
	assert.True(t, w.stopped)
}

func TestWatch_BadConfigKeepsPrevious(t *testing.T) {
	paths := setupSample(t)
	a := newTestApp(t, Config{Paths: paths})
	require.NoError(t, os.WriteFile(paths.Config, []byte("report: fatal\n"), 0644))
	w := &fakeWatcher{fire: []string{paths.Config}}

	ctx, cancel := context.WithCancel(context.Background())
	var errs []error
	var results []*Result
	err := a.Watch(ctx, w, func(res *Result, err error) {
		errs = append(errs, err)
		results = append(results, res)
		if len(results) == 3 {
			cancel()
		}
	})
	require.NoError(t, err)

	require.Len(t, errs, 3)
	assert.NoError(t, errs[0])
	assert.Error(t, errs[1])
	assert.NoError(t, errs[2])
	assert.Equal(t, "error", a.LintConfig().Report)
	assert.Len(t, results[2].Findings, 5)
}
