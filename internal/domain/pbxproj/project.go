package pbxproj

import (
	"fmt"
	"sort"
	"strings"
)

// Input is everything Parse needs: the decoded top-level dictionary of a
// project.pbxproj file and the file's raw text.
type Input struct {
	// Path is the resolved path of the project.pbxproj file. Used only as
	// a prefix for diagnostics.
	Path string

	// Graph is the decoded top-level dictionary (archiveVersion, objects,
	// rootObject, ...).
	Graph map[string]any

	// Text is the original file content, used for comment titles and line
	// lookups.
	Text string
}

// Project is the typed model of one project file. It is fully populated by
// Parse and must be treated as read-only afterwards.
type Project struct {
	Path           string
	RawText        string
	RootID         string
	ArchiveVersion string
	ObjectVersion  string
	Titles         Titles

	// Root is the PBXProject named by rootObject, nil if it was not found.
	Root *ProjectRoot

	Projects              map[string]*ProjectRoot
	FileReferences        map[string]*FileReference
	Groups                map[string]*Group
	VariantGroups         map[string]*VariantGroup
	VersionGroups         map[string]*VersionGroup
	BuildFiles            map[string]*BuildFile
	SourcesBuildPhases    map[string]*SourcesBuildPhase
	ResourcesBuildPhases  map[string]*ResourcesBuildPhase
	FrameworksBuildPhases map[string]*FrameworksBuildPhase
	CopyFilesBuildPhases  map[string]*CopyFilesBuildPhase
	ShellScriptPhases     map[string]*ShellScriptBuildPhase
	NativeTargets         map[string]*NativeTarget
	AggregateTargets      map[string]*AggregateTarget
	BuildConfigurations   map[string]*BuildConfiguration
	ConfigurationLists    map[string]*ConfigurationList
	ReferenceProxies      map[string]*ReferenceProxy

	// Ordered by identifier.
	ContainerItemProxies []*ContainerItemProxy
	TargetDependencies   []*TargetDependency

	// Unrecognized holds records whose isa had no decoder, ordered by
	// identifier. They are not part of any typed collection.
	Unrecognized []*UnknownNode

	// Records is the number of records visited, including ignored and
	// unrecognized ones.
	Records int

	isa   map[string]string // every visited id → its isa tag
	lines []string
}

func newProject(in Input) *Project {
	return &Project{
		Path:                  in.Path,
		RawText:               in.Text,
		Projects:              make(map[string]*ProjectRoot),
		FileReferences:        make(map[string]*FileReference),
		Groups:                make(map[string]*Group),
		VariantGroups:         make(map[string]*VariantGroup),
		VersionGroups:         make(map[string]*VersionGroup),
		BuildFiles:            make(map[string]*BuildFile),
		SourcesBuildPhases:    make(map[string]*SourcesBuildPhase),
		ResourcesBuildPhases:  make(map[string]*ResourcesBuildPhase),
		FrameworksBuildPhases: make(map[string]*FrameworksBuildPhase),
		CopyFilesBuildPhases:  make(map[string]*CopyFilesBuildPhase),
		ShellScriptPhases:     make(map[string]*ShellScriptBuildPhase),
		NativeTargets:         make(map[string]*NativeTarget),
		AggregateTargets:      make(map[string]*AggregateTarget),
		BuildConfigurations:   make(map[string]*BuildConfiguration),
		ConfigurationLists:    make(map[string]*ConfigurationList),
		ReferenceProxies:      make(map[string]*ReferenceProxy),
		isa:                   make(map[string]string),
	}
}

// Parse builds the typed model from a decoded project file. Titles are
// extracted from in.Text before any record is decoded. Format drift is
// reported to diags (which may be nil); structural problems abort the parse
// and no partial model is returned.
func Parse(in Input, diags *Diagnostics) (*Project, error) {
	if diags == nil {
		diags = &Diagnostics{}
	}

	objects, ok := in.Graph["objects"].(map[string]any)
	if !ok {
		return nil, ErrNoObjects
	}
	if len(objects) == 0 {
		return nil, ErrNoRecords
	}

	p := newProject(in)
	p.Titles = ExtractTitles(in.Text, diags)
	p.lines = strings.Split(in.Text, "\n")
	p.ArchiveVersion, _ = in.Graph["archiveVersion"].(string)
	p.ObjectVersion, _ = in.Graph["objectVersion"].(string)
	p.RootID, _ = in.Graph["rootObject"].(string)

	ids := make([]string, 0, len(objects))
	for id := range objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		rec, ok := objects[id].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %s: %w", id, ErrMalformedRecord)
		}
		node, err := DecodeRecord(id, rec, p.Titles, diags)
		if err != nil {
			return nil, err
		}
		p.Records++
		p.isa[id], _ = rec[isaKey].(string)
		p.add(node)
	}

	if p.Root = p.Projects[p.RootID]; p.Root == nil {
		diags.missingField("project file", in.Path, "rootObject")
	}
	return p, nil
}

// add files a decoded node into its collection. nil (ignored kinds) is a
// no-op.
func (p *Project) add(node Node) {
	switch n := node.(type) {
	case nil:
	case *ProjectRoot:
		p.Projects[n.ID] = n
	case *FileReference:
		p.FileReferences[n.ID] = n
	case *Group:
		p.Groups[n.ID] = n
	case *VariantGroup:
		p.VariantGroups[n.ID] = n
	case *VersionGroup:
		p.VersionGroups[n.ID] = n
	case *BuildFile:
		p.BuildFiles[n.ID] = n
	case *SourcesBuildPhase:
		p.SourcesBuildPhases[n.ID] = n
	case *ResourcesBuildPhase:
		p.ResourcesBuildPhases[n.ID] = n
	case *FrameworksBuildPhase:
		p.FrameworksBuildPhases[n.ID] = n
	case *CopyFilesBuildPhase:
		p.CopyFilesBuildPhases[n.ID] = n
	case *ShellScriptBuildPhase:
		p.ShellScriptPhases[n.ID] = n
	case *NativeTarget:
		p.NativeTargets[n.ID] = n
	case *AggregateTarget:
		p.AggregateTargets[n.ID] = n
	case *BuildConfiguration:
		p.BuildConfigurations[n.ID] = n
	case *ConfigurationList:
		p.ConfigurationLists[n.ID] = n
	case *ReferenceProxy:
		p.ReferenceProxies[n.ID] = n
	case *ContainerItemProxy:
		p.ContainerItemProxies = append(p.ContainerItemProxies, n)
	case *TargetDependency:
		p.TargetDependencies = append(p.TargetDependencies, n)
	case *UnknownNode:
		p.Unrecognized = append(p.Unrecognized, n)
	}
}

// ISA returns the kind tag of any record in the file, including ignored and
// unrecognized ones. ok is false when id names no record.
func (p *Project) ISA(id string) (isa string, ok bool) {
	isa, ok = p.isa[id]
	return isa, ok
}

// Child resolves a group child identifier. The returned ref has exactly one
// non-nil field, or none when id does not resolve.
func (p *Project) Child(id string) ChildRef {
	switch {
	case p.Groups[id] != nil:
		return ChildRef{Group: p.Groups[id]}
	case p.FileReferences[id] != nil:
		return ChildRef{File: p.FileReferences[id]}
	case p.VariantGroups[id] != nil:
		return ChildRef{VariantGroup: p.VariantGroups[id]}
	case p.VersionGroups[id] != nil:
		return ChildRef{VersionGroup: p.VersionGroups[id]}
	case p.ReferenceProxies[id] != nil:
		return ChildRef{Proxy: p.ReferenceProxies[id]}
	}
	return ChildRef{}
}

// ChildRef is the discriminated result of Project.Child.
type ChildRef struct {
	Group        *Group
	File         *FileReference
	VariantGroup *VariantGroup
	VersionGroup *VersionGroup
	Proxy        *ReferenceProxy
}

// Found reports whether the child resolved to any node.
func (c ChildRef) Found() bool {
	return c.Group != nil || c.File != nil || c.VariantGroup != nil ||
		c.VersionGroup != nil || c.Proxy != nil
}

// Children returns the child identifiers of a container node, or nil for
// leaves.
func (c ChildRef) Children() []string {
	switch {
	case c.Group != nil:
		return c.Group.Children
	case c.VariantGroup != nil:
		return c.VariantGroup.Children
	case c.VersionGroup != nil:
		return c.VersionGroup.Children
	}
	return nil
}

// DisplayName returns the best human-readable label for id: the comment
// title, else the node's name or path, else the identifier.
func (p *Project) DisplayName(id string) string {
	if p.Titles.Has(id) {
		return p.Titles[id]
	}
	c := p.Child(id)
	switch {
	case c.Group != nil:
		return firstNonEmpty(c.Group.Name, c.Group.Path, id)
	case c.File != nil:
		return firstNonEmpty(c.File.Name, c.File.Path, id)
	case c.VariantGroup != nil:
		return firstNonEmpty(c.VariantGroup.Name, c.VariantGroup.Path, id)
	case c.VersionGroup != nil:
		return firstNonEmpty(c.VersionGroup.Name, c.VersionGroup.Path, id)
	case c.Proxy != nil:
		return firstNonEmpty(c.Proxy.Name, c.Proxy.Path, id)
	}
	return id
}

// LineOf returns the 1-based line on which the record id is defined, or 0
// when it cannot be found.
func (p *Project) LineOf(id string) int {
	for i, line := range p.lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, id) {
			continue
		}
		rest := strings.TrimPrefix(trimmed, id)
		if strings.HasPrefix(rest, " = {") || (strings.HasPrefix(rest, commentOpen) && strings.Contains(rest, "= {")) {
			return i + 1
		}
	}
	return 0
}

// Targets returns the names of all native and aggregate targets, sorted.
func (p *Project) Targets() []string {
	names := make([]string, 0, len(p.NativeTargets)+len(p.AggregateTargets))
	for _, t := range p.NativeTargets {
		names = append(names, t.Name)
	}
	for _, t := range p.AggregateTargets {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
