package pbxproj

import "fmt"

// decoder pairs a kind's schema with the constructor that builds its node.
type decoder struct {
	schema *schema
	build  func(fields, Titles) Node
}

// decoders is the dispatch table from kind to decoder. Ignored kinds have no
// Kind and are listed in ignoredKinds.
var decoders = map[Kind]decoder{
	KindAggregateTarget:       {aggregateTargetSchema, newAggregateTarget},
	KindBuildFile:             {buildFileSchema, newBuildFile},
	KindContainerItemProxy:    {containerItemProxySchema, newContainerItemProxy},
	KindCopyFilesBuildPhase:   {copyFilesPhaseSchema, newCopyFilesBuildPhase},
	KindFileReference:         {fileReferenceSchema, newFileReference},
	KindFrameworksBuildPhase:  {frameworksPhaseSchema, newFrameworksBuildPhase},
	KindGroup:                 {groupSchema, newGroup},
	KindNativeTarget:          {nativeTargetSchema, newNativeTarget},
	KindProject:               {projectSchema, newProjectRoot},
	KindReferenceProxy:        {referenceProxySchema, newReferenceProxy},
	KindResourcesBuildPhase:   {resourcesPhaseSchema, newResourcesBuildPhase},
	KindShellScriptBuildPhase: {shellScriptPhaseSchema, newShellScriptBuildPhase},
	KindSourcesBuildPhase:     {sourcesPhaseSchema, newSourcesBuildPhase},
	KindTargetDependency:      {targetDependencySchema, newTargetDependency},
	KindVariantGroup:          {variantGroupSchema, newVariantGroup},
	KindBuildConfiguration:    {buildConfigurationSchema, newBuildConfiguration},
	KindConfigurationList:     {configurationListSchema, newConfigurationList},
	KindVersionGroup:          {versionGroupSchema, newVersionGroup},
}

// DecodeRecord decodes a single raw record into its typed node. Records with
// an ignored isa return (nil, nil); unrecognized ones return an *UnknownNode
// and a new-kind notice.
func DecodeRecord(id string, rec Record, titles Titles, diags *Diagnostics) (Node, error) {
	if diags == nil {
		diags = &Diagnostics{}
	}
	isa, ok := rec[isaKey].(string)
	if !ok || isa == "" {
		return nil, fmt.Errorf("record %s: %w", id, ErrMalformedRecord)
	}
	if ignoredKinds[isa] {
		return nil, nil
	}
	dec, ok := decoders[KindFromISA(isa)]
	if !ok {
		diags.newKind(isa, id, rec)
		return &UnknownNode{ID: id, ISA: isa, Record: rec}, nil
	}
	f, err := decodeRecord(id, rec, dec.schema, diags)
	if err != nil {
		return nil, err
	}
	return dec.build(f, titles), nil
}
