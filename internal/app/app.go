// Package app wires together the adapters and the domain packages: it loads
// a project file, parses it, runs lint rules and records each run.
package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/corey/xcprojlint/internal/adapters/bbolt"
	"github.com/corey/xcprojlint/internal/adapters/plist"
	"github.com/corey/xcprojlint/internal/domain/lint"
	"github.com/corey/xcprojlint/internal/domain/pbxproj"
	"github.com/corey/xcprojlint/internal/ports"
)

// Config holds initialization parameters for the App.
type Config struct {
	Paths *Paths

	ConfigPath  string   // lint config file (default: Paths.Config)
	Validations []string // overrides the config file when non-empty
	Report      string   // overrides the config file when non-empty
	NoCache     bool     // always run every rule

	Decoder ports.Decoder // default: plist decoder
	Store   ports.Storage // default: bbolt store at Paths.DB
	Logger  *slog.Logger  // default: slog.Default()
}

// App is the top-level container wiring all components together.
type App struct {
	Paths   *Paths
	Decoder ports.Decoder
	Store   ports.Storage
	Logger  *slog.Logger

	cfg       Config
	lint      lint.Config
	rules     []lint.Rule
	closeFunc func() error // closes a store opened by New
	mu        sync.Mutex   // serializes lint runs
}

// Result is the outcome of one lint run.
type Result struct {
	Project  *pbxproj.Project
	Notices  []pbxproj.Notice
	Findings []ports.Finding
	Digest   string
	Cached   bool // non-disk findings came from the previous run
}

// ErrorCount returns how many findings have error severity.
func (r *Result) ErrorCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == ports.SeverityError {
			n++
		}
	}
	return n
}

// New creates an App with all dependencies wired. The lint configuration is
// loaded and validated here so a bad config fails before any project work.
func New(cfg Config) (*App, error) {
	if cfg.Paths == nil {
		return nil, fmt.Errorf("project paths required")
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = cfg.Paths.Config
	}
	if cfg.Decoder == nil {
		cfg.Decoder = plist.NewDecoder()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	a := &App{
		Paths:   cfg.Paths,
		Decoder: cfg.Decoder,
		Logger:  cfg.Logger,
		cfg:     cfg,
	}
	if err := a.loadConfig(); err != nil {
		return nil, err
	}

	if cfg.Store == nil {
		if err := cfg.Paths.EnsureDirs(); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
		store, err := bbolt.NewStore(cfg.Paths.DB)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		cfg.Store = store
		a.closeFunc = store.Close
	}
	a.Store = cfg.Store
	return a, nil
}

// Close releases the store if New opened it. Idempotent.
func (a *App) Close() error {
	if a.closeFunc == nil {
		return nil
	}
	closeFn := a.closeFunc
	a.closeFunc = nil
	return closeFn()
}

// LintConfig returns the effective lint configuration.
func (a *App) LintConfig() lint.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lint
}

// loadConfig reads the config file and applies command-line overrides.
func (a *App) loadConfig() error {
	lc, err := lint.LoadConfig(a.cfg.ConfigPath)
	if err != nil {
		return err
	}
	if len(a.cfg.Validations) > 0 {
		lc.Validations = a.cfg.Validations
	}
	if a.cfg.Report != "" {
		lc.Report = a.cfg.Report
	}
	if err := lc.Validate(); err != nil {
		return err
	}
	rules, err := lc.Rules()
	if err != nil {
		return err
	}
	a.lint, a.rules = lc, rules
	return nil
}

// formatNamer is implemented by decoders that report which on-disk format
// the last decode saw.
type formatNamer interface {
	FormatName() string
}

// Load reads, decodes and parses the project file. Notices are returned and
// also logged at warn level.
func (a *App) Load() (*pbxproj.Project, []pbxproj.Notice, []byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.load()
}

// load is Load without locking; the decoder is stateful, so callers hold mu.
func (a *App) load() (*pbxproj.Project, []pbxproj.Notice, []byte, error) {
	data, err := os.ReadFile(a.Paths.Project)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read project: %w", err)
	}
	graph, err := a.Decoder.Decode(data)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", a.Paths.Project, err)
	}
	if fn, ok := a.Decoder.(formatNamer); ok {
		a.Logger.Debug("project decoded", "project", a.Paths.Project, "format", fn.FormatName())
	}

	var diags pbxproj.Diagnostics
	p, err := pbxproj.Parse(pbxproj.Input{
		Path:  a.Paths.Project,
		Graph: graph,
		Text:  string(data),
	}, &diags)
	for _, n := range diags.Notices() {
		a.Logger.Warn(n.Message, "notice", n.Kind.String(), "isa", n.RecordKind, "id", n.ID, "field", n.Field)
	}
	if err != nil {
		return nil, diags.Notices(), nil, fmt.Errorf("%s: %w", a.Paths.Project, err)
	}
	return p, diags.Notices(), data, nil
}

// Titles returns the name table recovered from the project file's comments.
func (a *App) Titles() (pbxproj.Titles, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, _, _, err := a.load()
	if err != nil {
		return nil, err
	}
	return p.Titles, nil
}

// Lint loads the project, runs the configured rules and records the run.
// When the digest matches the previous run, findings of rules that only look
// at the project file are reused and disk rules run again.
func (a *App) Lint(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	p, notices, data, err := a.load()
	if err != nil {
		return nil, err
	}
	res := &Result{
		Project: p,
		Notices: notices,
		Digest:  digest(data, a.lint.Key()),
	}
	opts := a.lint.Options(a.Paths.Dir)

	var prev *ports.RunRecord
	if !a.cfg.NoCache {
		if prev, err = a.Store.LatestRun(a.Paths.Project); err != nil {
			a.Logger.Warn("history unavailable", "err", err)
			prev = nil
		}
	}

	if prev != nil && prev.Digest == res.Digest {
		res.Cached = true
		disk := make(map[string]bool)
		var rerun []lint.Rule
		for _, r := range a.rules {
			if r.Disk {
				disk[r.Name] = true
				rerun = append(rerun, r)
			}
		}
		for _, f := range prev.Findings {
			if !disk[f.Rule] {
				res.Findings = append(res.Findings, f)
			}
		}
		res.Findings = append(res.Findings, lint.Run(p, rerun, opts)...)
		lint.Sort(res.Findings)
	} else {
		res.Findings = lint.Run(p, a.rules, opts)
	}
	a.Logger.Debug("lint complete",
		"project", a.Paths.Project, "records", p.Records,
		"targets", p.Targets(), "findings", len(res.Findings), "cached", res.Cached)

	run := &ports.RunRecord{
		At:          time.Now(),
		Digest:      res.Digest,
		Validations: ruleNames(a.rules),
		Findings:    res.Findings,
		Notices:     len(notices),
		Records:     p.Records,
	}
	if err := a.Store.SaveRun(a.Paths.Project, run); err != nil {
		a.Logger.Warn("record run failed", "err", err)
	}
	return res, nil
}

// History returns recorded runs for the project, newest first.
func (a *App) History(limit int) ([]*ports.RunRecord, error) {
	return a.Store.Runs(a.Paths.Project, limit)
}

// ClearHistory forgets every recorded run for the project.
func (a *App) ClearHistory() error {
	return a.Store.DeleteProject(a.Paths.Project)
}

// digest hashes the project file together with the effective config.
func digest(data, config []byte) string {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte{0})
	h.Write(config)
	return hex.EncodeToString(h.Sum(nil))
}

func ruleNames(rules []lint.Rule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}
