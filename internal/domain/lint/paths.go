package lint

import (
	"path/filepath"

	"github.com/corey/xcprojlint/internal/domain/pbxproj"
)

// Source trees a path can be resolved against without build settings.
const (
	treeGroup      = "<group>"
	treeAbsolute   = "<absolute>"
	treeSourceRoot = "SOURCE_ROOT"
)

// resolver maps file references and groups to paths on disk. Resolution walks
// up the group hierarchy, so it needs the parent of every container child.
type resolver struct {
	p       *pbxproj.Project
	root    string
	parents map[string]string
	memo    map[string]string
}

func newResolver(p *pbxproj.Project, projectDir string) *resolver {
	root := projectDir
	if p.Root != nil && p.Root.ProjectDirPath != "" && p.Root.ProjectDirPath != pbxproj.Placeholder {
		root = filepath.Join(projectDir, p.Root.ProjectDirPath)
	}

	r := &resolver{
		p:       p,
		root:    root,
		parents: make(map[string]string),
		memo:    make(map[string]string),
	}
	containers := append(append(sortedKeys(p.Groups), sortedKeys(p.VariantGroups)...), sortedKeys(p.VersionGroups)...)
	for _, id := range containers {
		for _, c := range p.Child(id).Children() {
			r.parents[c] = id
		}
	}
	return r
}

// resolve returns the on-disk path of a file reference or container, and
// false when its source tree cannot be resolved statically.
func (r *resolver) resolve(id string) (string, bool) {
	return r.resolveSeen(id, make(map[string]bool))
}

func (r *resolver) resolveSeen(id string, seen map[string]bool) (string, bool) {
	if path, ok := r.memo[id]; ok {
		return path, true
	}
	if seen[id] {
		return "", false // cyclic hierarchy
	}
	seen[id] = true

	tree, path := r.location(id)
	var out string
	switch tree {
	case treeAbsolute:
		out = path
	case treeSourceRoot:
		out = filepath.Join(r.root, path)
	case treeGroup:
		parent, ok := r.parents[id]
		if !ok {
			out = filepath.Join(r.root, path)
			break
		}
		base, ok := r.resolveSeen(parent, seen)
		if !ok {
			return "", false
		}
		out = filepath.Join(base, path)
	default:
		return "", false
	}
	r.memo[id] = out
	return out, true
}

// location returns the source tree and path fields of id.
func (r *resolver) location(id string) (tree, path string) {
	c := r.p.Child(id)
	switch {
	case c.File != nil:
		tree, path = c.File.SourceTree, c.File.Path
	case c.Group != nil:
		tree, path = c.Group.SourceTree, c.Group.Path
	case c.VariantGroup != nil:
		tree, path = c.VariantGroup.SourceTree, c.VariantGroup.Path
	case c.VersionGroup != nil:
		tree, path = c.VersionGroup.SourceTree, c.VersionGroup.Path
	default:
		return "", ""
	}
	if path == pbxproj.Placeholder {
		path = ""
	}
	return tree, path
}

// relative returns path relative to the project root, or path itself when it
// lies outside.
func (r *resolver) relative(path string) string {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return path
	}
	return rel
}
