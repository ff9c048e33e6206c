package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corey/xcprojlint/internal/domain/pbxproj"
	"github.com/corey/xcprojlint/internal/ports"
)

func checkBuildSettingsExternalized(p *pbxproj.Project, opts Options) []ports.Finding {
	allowed := make(map[string]bool, len(opts.AllowedBuildSettings))
	for _, k := range opts.AllowedBuildSettings {
		allowed[k] = true
	}
	owners := configOwners(p)

	var out []ports.Finding
	for _, id := range sortedKeys(p.BuildConfigurations) {
		cfg := p.BuildConfigurations[id]
		var inline []string
		for k := range cfg.BuildSettings {
			if !allowed[k] {
				inline = append(inline, k)
			}
		}
		if len(inline) == 0 {
			continue
		}
		sort.Strings(inline)

		name := cfg.Name
		if owner, ok := owners[id]; ok {
			name = fmt.Sprintf("%s configuration of %s", cfg.Name, owner)
		}
		out = append(out, finding(p, opts, "build-settings-externalized", id,
			"%s has inline build settings: %s", name, strings.Join(inline, ", ")))
	}
	return out
}

// configOwners maps build configuration ids to a description of the target
// or project whose configuration list holds them.
func configOwners(p *pbxproj.Project) map[string]string {
	lists := make(map[string]string)
	for _, id := range sortedKeys(p.NativeTargets) {
		t := p.NativeTargets[id]
		lists[t.BuildConfigurationList] = fmt.Sprintf("target %q", t.Name)
	}
	for _, id := range sortedKeys(p.AggregateTargets) {
		t := p.AggregateTargets[id]
		lists[t.BuildConfigurationList] = fmt.Sprintf("target %q", t.Name)
	}
	if p.Root != nil {
		lists[p.Root.BuildConfigurationList] = "the project"
	}

	owners := make(map[string]string)
	for listID, owner := range lists {
		list, ok := p.ConfigurationLists[listID]
		if !ok {
			continue
		}
		for _, cfg := range list.BuildConfigurations {
			owners[cfg] = owner
		}
	}
	return owners
}
