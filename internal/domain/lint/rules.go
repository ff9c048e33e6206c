// Package lint runs read-only validations over a parsed project model and
// reports ports.Finding values. Rules never mutate the model.
package lint

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/corey/xcprojlint/internal/domain/pbxproj"
	"github.com/corey/xcprojlint/internal/ports"
)

// All selects every registered rule.
const All = "all"

// Rule is one named validation.
type Rule struct {
	Name        string
	Description string
	Check       func(p *pbxproj.Project, opts Options) []ports.Finding

	// Disk rules read the filesystem, so their findings can change while
	// the project file stays the same.
	Disk bool
}

// Options carries the per-run settings rules consult.
type Options struct {
	// Severity is stamped on every finding.
	Severity ports.Severity

	// ProjectDir is the directory holding the .xcodeproj bundle. Derived
	// from the project path when empty.
	ProjectDir string

	// SkipFolders are project-relative folder prefixes files-exist ignores.
	SkipFolders []string

	// AllowedBuildSettings may appear inline in the project file.
	AllowedBuildSettings []string
}

// registry is in report order.
var registry = []Rule{
	{
		Name:        "build-settings-externalized",
		Description: "build settings live in xcconfig files, not the project file",
		Check:       checkBuildSettingsExternalized,
	},
	{
		Name:        "dangling-source-files",
		Description: "every source file belongs to a target",
		Check:       checkDanglingSourceFiles,
	},
	{
		Name:        "empty-groups",
		Description: "groups have at least one child",
		Check:       checkEmptyGroups,
	},
	{
		Name:        "files-exist",
		Description: "file references point at files on disk",
		Check:       checkFilesExist,
		Disk:        true,
	},
	{
		Name:        "items-in-alpha-order",
		Description: "group children are sorted by name",
		Check:       checkAlphaOrder,
	},
	{
		Name:        "missing-references",
		Description: "identifiers used by the project resolve to records",
		Check:       checkMissingReferences,
	},
}

// Rules returns every registered rule in report order.
func Rules() []Rule {
	return append([]Rule(nil), registry...)
}

// Names returns the names of every registered rule.
func Names() []string {
	names := make([]string, len(registry))
	for i, r := range registry {
		names[i] = r.Name
	}
	return names
}

// Select resolves rule names. An empty list or one containing "all" selects
// every rule. Order follows the registry, not the input.
func Select(names []string) ([]Rule, error) {
	if len(names) == 0 {
		return Rules(), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if n == All {
			return Rules(), nil
		}
		want[n] = true
	}

	var out []Rule
	for _, r := range registry {
		if want[r.Name] {
			out = append(out, r)
			delete(want, r.Name)
		}
	}
	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for n := range want {
			unknown = append(unknown, n)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown validation %q (known: %v)", unknown[0], Names())
	}
	return out, nil
}

// Run applies rules to p and returns their findings in Sort order.
func Run(p *pbxproj.Project, rules []Rule, opts Options) []ports.Finding {
	if opts.Severity == "" {
		opts.Severity = ports.SeverityError
	}
	if opts.ProjectDir == "" {
		opts.ProjectDir = ProjectDir(p.Path)
	}

	var findings []ports.Finding
	for _, r := range rules {
		findings = append(findings, r.Check(p, opts)...)
	}
	Sort(findings)
	return findings
}

// Sort orders findings by path, line, rule and message.
func Sort(findings []ports.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
}

// ProjectDir returns the directory holding the .xcodeproj bundle for a
// project.pbxproj path.
func ProjectDir(pbxprojPath string) string {
	return filepath.Dir(filepath.Dir(pbxprojPath))
}

// finding builds a finding anchored at the definition line of id.
func finding(p *pbxproj.Project, opts Options, rule, id, format string, args ...any) ports.Finding {
	return ports.Finding{
		Path:     p.Path,
		Line:     p.LineOf(id),
		Severity: opts.Severity,
		Rule:     rule,
		Message:  fmt.Sprintf(format, args...),
	}
}

// sortedKeys returns the keys of a node collection in identifier order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
