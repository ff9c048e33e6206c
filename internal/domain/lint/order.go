package lint

import (
	"strings"

	"github.com/corey/xcprojlint/internal/domain/pbxproj"
	"github.com/corey/xcprojlint/internal/ports"
)

// checkAlphaOrder reports the first out-of-order child of each group. The
// main group is ordered by Xcode itself and is skipped.
func checkAlphaOrder(p *pbxproj.Project, opts Options) []ports.Finding {
	mainGroup := ""
	if p.Root != nil {
		mainGroup = p.Root.MainGroup
	}

	var out []ports.Finding
	for _, id := range sortedKeys(p.Groups) {
		if id == mainGroup {
			continue
		}
		children := p.Groups[id].Children
		for i := 1; i < len(children); i++ {
			prev := p.DisplayName(children[i-1])
			cur := p.DisplayName(children[i])
			if strings.ToLower(prev) <= strings.ToLower(cur) {
				continue
			}
			out = append(out, finding(p, opts, "items-in-alpha-order", id,
				"%q should come before %q in group %q", cur, prev, p.DisplayName(id)))
			break
		}
	}
	return out
}
