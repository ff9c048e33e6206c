package lint

import (
	"github.com/corey/xcprojlint/internal/domain/pbxproj"
	"github.com/corey/xcprojlint/internal/ports"
)

const ruleMissingReferences = "missing-references"

func checkMissingReferences(p *pbxproj.Project, opts Options) []ports.Finding {
	var out []ports.Finding
	exists := func(id string) bool {
		_, ok := p.ISA(id)
		return ok
	}
	// report flags ref when it is set and resolves to nothing. owner is the
	// record the line number points at.
	report := func(owner, what, ref string) {
		if ref == "" || ref == pbxproj.Placeholder || exists(ref) {
			return
		}
		out = append(out, finding(p, opts, ruleMissingReferences, owner,
			"%s %s references missing %s %s", kindOf(p, owner), p.DisplayName(owner), what, ref))
	}

	containers := func(id string, children []string) {
		for _, c := range children {
			report(id, "child", c)
		}
	}
	for _, id := range sortedKeys(p.Groups) {
		containers(id, p.Groups[id].Children)
	}
	for _, id := range sortedKeys(p.VariantGroups) {
		containers(id, p.VariantGroups[id].Children)
	}
	for _, id := range sortedKeys(p.VersionGroups) {
		containers(id, p.VersionGroups[id].Children)
	}

	for _, phase := range buildPhases(p) {
		for _, f := range phase.Files {
			report(phase.ID, "build file", f)
		}
	}
	for _, id := range sortedKeys(p.BuildFiles) {
		report(id, "file reference", p.BuildFiles[id].FileRef)
	}

	for _, id := range sortedKeys(p.NativeTargets) {
		t := p.NativeTargets[id]
		report(id, "configuration list", t.BuildConfigurationList)
		for _, ph := range t.BuildPhases {
			report(id, "build phase", ph)
		}
		for _, d := range t.Dependencies {
			report(id, "dependency", d)
		}
	}
	for _, id := range sortedKeys(p.AggregateTargets) {
		t := p.AggregateTargets[id]
		report(id, "configuration list", t.BuildConfigurationList)
		for _, ph := range t.BuildPhases {
			report(id, "build phase", ph)
		}
		for _, d := range t.Dependencies {
			report(id, "dependency", d)
		}
	}

	for _, id := range sortedKeys(p.ConfigurationLists) {
		for _, c := range p.ConfigurationLists[id].BuildConfigurations {
			report(id, "build configuration", c)
		}
	}

	if p.Root != nil {
		report(p.Root.ID, "configuration list", p.Root.BuildConfigurationList)
		report(p.Root.ID, "main group", p.Root.MainGroup)
		for _, t := range p.Root.Targets {
			report(p.Root.ID, "target", t)
		}
	}
	return out
}

// kindOf returns the isa tag of id for messages.
func kindOf(p *pbxproj.Project, id string) string {
	isa, _ := p.ISA(id)
	return isa
}

// buildPhases returns the shared fields of every modeled build phase, in
// identifier order per phase kind.
func buildPhases(p *pbxproj.Project) []pbxproj.BuildPhase {
	var out []pbxproj.BuildPhase
	for _, id := range sortedKeys(p.SourcesBuildPhases) {
		out = append(out, p.SourcesBuildPhases[id].BuildPhase)
	}
	for _, id := range sortedKeys(p.ResourcesBuildPhases) {
		out = append(out, p.ResourcesBuildPhases[id].BuildPhase)
	}
	for _, id := range sortedKeys(p.FrameworksBuildPhases) {
		out = append(out, p.FrameworksBuildPhases[id].BuildPhase)
	}
	for _, id := range sortedKeys(p.CopyFilesBuildPhases) {
		out = append(out, p.CopyFilesBuildPhases[id].BuildPhase)
	}
	for _, id := range sortedKeys(p.ShellScriptPhases) {
		out = append(out, p.ShellScriptPhases[id].BuildPhase)
	}
	return out
}
