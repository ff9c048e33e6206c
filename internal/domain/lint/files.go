package lint

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/corey/xcprojlint/internal/domain/pbxproj"
	"github.com/corey/xcprojlint/internal/ports"
)

// isSourceCode reports whether a file type names compilable source. Headers
// are members of a target through the headers phase, which is not modeled.
func isSourceCode(fileType string) bool {
	return strings.HasPrefix(fileType, "sourcecode.") && !strings.HasSuffix(fileType, ".h")
}

func checkDanglingSourceFiles(p *pbxproj.Project, opts Options) []ports.Finding {
	used := make(map[string]bool, len(p.BuildFiles))
	for _, bf := range p.BuildFiles {
		used[bf.FileRef] = true
	}

	var out []ports.Finding
	for _, id := range sortedKeys(p.FileReferences) {
		ref := p.FileReferences[id]
		if used[id] || !isSourceCode(ref.FileType()) {
			continue
		}
		out = append(out, finding(p, opts, "dangling-source-files", id,
			"source file %q is not a member of any target", p.DisplayName(id)))
	}
	return out
}

func checkEmptyGroups(p *pbxproj.Project, opts Options) []ports.Finding {
	var out []ports.Finding
	for _, id := range sortedKeys(p.Groups) {
		if len(p.Groups[id].Children) > 0 {
			continue
		}
		out = append(out, finding(p, opts, "empty-groups", id,
			"group %q is empty", p.DisplayName(id)))
	}
	return out
}

func checkFilesExist(p *pbxproj.Project, opts Options) []ports.Finding {
	r := newResolver(p, opts.ProjectDir)
	skip := make([]string, 0, len(opts.SkipFolders))
	for _, s := range opts.SkipFolders {
		if s = filepath.Clean(s); s != "." {
			skip = append(skip, s)
		}
	}

	var out []ports.Finding
	check := func(id, kind string) {
		path, ok := r.resolve(id)
		if !ok || skipped(r.relative(path), skip) {
			return
		}
		if _, err := os.Stat(path); err == nil {
			return
		}
		out = append(out, finding(p, opts, "files-exist", id,
			"%s %q does not exist at %s", kind, p.DisplayName(id), r.relative(path)))
	}

	for _, id := range sortedKeys(p.FileReferences) {
		if p.FileReferences[id].Path == pbxproj.Placeholder {
			continue
		}
		check(id, "file")
	}
	for _, id := range sortedKeys(p.Groups) {
		if g := p.Groups[id]; g.Path == "" || g.Path == pbxproj.Placeholder {
			continue
		}
		check(id, "group")
	}
	return out
}

// skipped reports whether rel lies under one of the skip folders.
func skipped(rel string, skip []string) bool {
	for _, s := range skip {
		if rel == s || strings.HasPrefix(rel, s+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
