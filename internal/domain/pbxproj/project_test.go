package pbxproj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Parse: dispatch over the objects graph and model assembly
// =============================================================================

const minimalText = `// !$*UTF8*$!
{
	objects = {
/* Begin PBXFileReference section */
		F1 /* a.swift */ = {isa = PBXFileReference; path = a.swift; sourceTree = "<group>"; };
/* End PBXFileReference section */
	};
}
`

func minimalGraph() map[string]any {
	return map[string]any{
		"archiveVersion": "1",
		"objectVersion":  "56",
		"objects": map[string]any{
			"F1": map[string]any{
				"isa":        "PBXFileReference",
				"path":       "a.swift",
				"sourceTree": "<group>",
			},
		},
	}
}

func TestParse_MinimalEndToEnd(t *testing.T) {
	var diags Diagnostics
	p, err := Parse(Input{Path: "App.xcodeproj/project.pbxproj", Graph: minimalGraph(), Text: minimalText}, &diags)
	require.NoError(t, err)

	require.Len(t, p.FileReferences, 1)
	ref := p.FileReferences["F1"]
	require.NotNil(t, ref)
	assert.Equal(t, "F1", ref.ID)
	assert.Equal(t, "a.swift", ref.Title)
	assert.Equal(t, "a.swift", ref.Path)

	assert.Equal(t, 1, p.Records)
	assert.Equal(t, "56", p.ObjectVersion)
	assert.Equal(t, minimalText, p.RawText)
	assert.Equal(t, "App.xcodeproj/project.pbxproj", p.Path)
	assert.Equal(t, 5, p.LineOf("F1"))
}

func TestParse_EmptyObjectsFails(t *testing.T) {
	p, err := Parse(Input{Graph: map[string]any{"objects": map[string]any{}}}, nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestParse_NoObjectsFails(t *testing.T) {
	_, err := Parse(Input{Graph: map[string]any{"rootObject": "P1"}}, nil)
	assert.ErrorIs(t, err, ErrNoObjects)

	_, err = Parse(Input{Graph: map[string]any{"objects": "nope"}}, nil)
	assert.ErrorIs(t, err, ErrNoObjects)
}

func TestParse_NonDictionaryRecordAborts(t *testing.T) {
	g := minimalGraph()
	g["objects"].(map[string]any)["X1"] = "just a string"

	p, err := Parse(Input{Graph: g}, nil)
	assert.Nil(t, p, "no partial model on structural failure")
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestParse_StructuralFailureAborts(t *testing.T) {
	g := minimalGraph()
	g["objects"].(map[string]any)["G1"] = map[string]any{"isa": "PBXGroup", "sourceTree": "<group>"}

	p, err := Parse(Input{Graph: g}, nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrMissingArray)
	assert.Contains(t, err.Error(), "PBXGroup G1")
}

func TestParse_UnknownKindDoesNotAffectOthers(t *testing.T) {
	g := minimalGraph()
	objects := g["objects"].(map[string]any)
	objects["A0"] = map[string]any{"isa": "PBXBrandNewThing", "foo": "bar"}
	objects["H1"] = map[string]any{"isa": "PBXHeadersBuildPhase", "files": []any{}}

	var diags Diagnostics
	p, err := Parse(Input{Graph: g, Text: minimalText}, &diags)
	require.NoError(t, err)

	assert.Equal(t, 1, diags.Count(NoticeNewKind))
	require.Len(t, p.Unrecognized, 1)
	assert.Equal(t, "A0", p.Unrecognized[0].ID)
	assert.Len(t, p.FileReferences, 1, "records after the unknown one still decode")
	assert.Equal(t, 3, p.Records)
}

func TestParse_MissingRootObjectIsNotice(t *testing.T) {
	var diags Diagnostics
	p, err := Parse(Input{Graph: minimalGraph(), Text: minimalText}, &diags)
	require.NoError(t, err)
	assert.Nil(t, p.Root)
	assert.Equal(t, 1, diags.Count(NoticeMissingField))
}

// fullGraph is a small but complete application project.
func fullGraph() map[string]any {
	return map[string]any{
		"archiveVersion": "1",
		"objectVersion":  "56",
		"rootObject":     "P1",
		"objects": map[string]any{
			"P1": map[string]any{
				"isa":                    "PBXProject",
				"attributes":             map[string]any{"LastUpgradeCheck": "1500"},
				"buildConfigurationList": "L1",
				"developmentRegion":      "en",
				"hasScannedForEncodings": "0",
				"knownRegions":           []any{"en", "Base"},
				"mainGroup":              "G0",
				"productRefGroup":        "G9",
				"projectDirPath":         "",
				"projectRoot":            "",
				"targets":                []any{"T1"},
			},
			"G0": map[string]any{"isa": "PBXGroup", "children": []any{"G1", "G9"}, "sourceTree": "<group>"},
			"G1": map[string]any{"isa": "PBXGroup", "children": []any{"F1", "V1"}, "path": "App", "sourceTree": "<group>"},
			"G9": map[string]any{"isa": "PBXGroup", "children": []any{"F9"}, "name": "Products", "sourceTree": "<group>"},
			"F1": map[string]any{"isa": "PBXFileReference", "lastKnownFileType": "sourcecode.swift", "path": "a.swift", "sourceTree": "<group>"},
			"F9": map[string]any{"isa": "PBXFileReference", "explicitFileType": "wrapper.application", "includeInIndex": "0", "path": "App.app", "sourceTree": "BUILT_PRODUCTS_DIR"},
			"V1": map[string]any{"isa": "PBXVariantGroup", "children": []any{"F2"}, "name": "Main.storyboard", "sourceTree": "<group>"},
			"F2": map[string]any{"isa": "PBXFileReference", "lastKnownFileType": "file.storyboard", "name": "Base", "path": "Base.lproj/Main.storyboard", "sourceTree": "<group>"},
			"B1": map[string]any{"isa": "PBXBuildFile", "fileRef": "F1"},
			"B2": map[string]any{"isa": "PBXBuildFile", "fileRef": "V1"},
			"S1": map[string]any{"isa": "PBXSourcesBuildPhase", "buildActionMask": "2147483647", "files": []any{"B1"}, "runOnlyForDeploymentPostprocessing": "0"},
			"R1": map[string]any{"isa": "PBXResourcesBuildPhase", "buildActionMask": "2147483647", "files": []any{"B2"}, "runOnlyForDeploymentPostprocessing": "0"},
			"W1": map[string]any{"isa": "PBXFrameworksBuildPhase", "buildActionMask": "2147483647", "files": []any{}, "runOnlyForDeploymentPostprocessing": "0"},
			"T1": map[string]any{
				"isa": "PBXNativeTarget", "buildConfigurationList": "L2",
				"buildPhases": []any{"S1", "W1", "R1"}, "buildRules": []any{}, "dependencies": []any{"D1"},
				"name": "App", "productName": "App", "productReference": "F9",
				"productType": "com.apple.product-type.application",
			},
			"D1": map[string]any{"isa": "PBXTargetDependency", "target": "T2", "targetProxy": "X1"},
			"X1": map[string]any{"isa": "PBXContainerItemProxy", "containerPortal": "P1", "proxyType": "1", "remoteGlobalIDString": "T2", "remoteInfo": "Helper"},
			"T2": map[string]any{"isa": "PBXAggregateTarget", "buildConfigurationList": "L3", "buildPhases": []any{}, "dependencies": []any{}, "name": "Helper", "productName": "Helper"},
			"C1": map[string]any{"isa": "XCBuildConfiguration", "buildSettings": map[string]any{"SWIFT_VERSION": "5.0"}, "name": "Debug"},
			"L1": map[string]any{"isa": "XCConfigurationList", "buildConfigurations": []any{"C1"}, "defaultConfigurationIsVisible": "0", "defaultConfigurationName": "Debug"},
			"L2": map[string]any{"isa": "XCConfigurationList", "buildConfigurations": []any{}, "defaultConfigurationIsVisible": "0"},
			"L3": map[string]any{"isa": "XCConfigurationList", "buildConfigurations": []any{}, "defaultConfigurationIsVisible": "1"},
		},
	}
}

func TestParse_FullProjectCollections(t *testing.T) {
	var diags Diagnostics
	p, err := Parse(Input{Graph: fullGraph()}, &diags)
	require.NoError(t, err)
	assert.Zero(t, diags.Len(), "unexpected notices: %v", diags.Lines())

	require.NotNil(t, p.Root)
	assert.Equal(t, "P1", p.RootID)
	assert.Equal(t, "G0", p.Root.MainGroup)
	assert.Equal(t, []string{"en", "Base"}, p.Root.KnownRegions)

	assert.Len(t, p.Groups, 3)
	assert.Len(t, p.FileReferences, 3)
	assert.Len(t, p.VariantGroups, 1)
	assert.Len(t, p.BuildFiles, 2)
	assert.Len(t, p.SourcesBuildPhases, 1)
	assert.Len(t, p.ResourcesBuildPhases, 1)
	assert.Len(t, p.FrameworksBuildPhases, 1)
	assert.Len(t, p.NativeTargets, 1)
	assert.Len(t, p.AggregateTargets, 1)
	assert.Len(t, p.BuildConfigurations, 1)
	assert.Len(t, p.ConfigurationLists, 3)
	assert.Len(t, p.ContainerItemProxies, 1)
	assert.Len(t, p.TargetDependencies, 1)

	assert.True(t, p.ConfigurationLists["L3"].DefaultConfigurationIsVisible)
	assert.Equal(t, "5.0", p.BuildConfigurations["C1"].BuildSettings["SWIFT_VERSION"])
	assert.Equal(t, []string{"App", "Helper"}, p.Targets())

	for id, g := range p.Groups {
		assert.Equal(t, id, g.ID)
	}
	for id, f := range p.FileReferences {
		assert.Equal(t, id, f.ID)
	}
}

func TestProject_Child(t *testing.T) {
	p, err := Parse(Input{Graph: fullGraph()}, nil)
	require.NoError(t, err)

	c := p.Child("G1")
	require.True(t, c.Found())
	assert.NotNil(t, c.Group)
	assert.Equal(t, []string{"F1", "V1"}, c.Children())

	c = p.Child("V1")
	assert.NotNil(t, c.VariantGroup)
	assert.Equal(t, []string{"F2"}, c.Children())

	c = p.Child("F1")
	assert.NotNil(t, c.File)
	assert.Nil(t, c.Children())

	assert.False(t, p.Child("missing").Found())
}

func TestProject_DisplayName(t *testing.T) {
	p, err := Parse(Input{Graph: fullGraph()}, nil)
	require.NoError(t, err)

	assert.Equal(t, "App", p.DisplayName("G1"), "path used when no title or name")
	assert.Equal(t, "Products", p.DisplayName("G9"))
	assert.Equal(t, "Main.storyboard", p.DisplayName("V1"))
	assert.Equal(t, "G0", p.DisplayName("G0"))
	assert.Equal(t, "nope", p.DisplayName("nope"))
}

func TestProject_LineOf(t *testing.T) {
	p, err := Parse(Input{Graph: minimalGraph(), Text: titleFixture}, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, p.LineOf("F1"))
	assert.Equal(t, 15, p.LineOf("G1"))
	assert.Equal(t, 0, p.LineOf("ZZZ"))
}

func TestProject_ISAIncludesIgnoredAndUnknown(t *testing.T) {
	g := minimalGraph()
	objects := g["objects"].(map[string]any)
	objects["H1"] = map[string]any{"isa": "PBXHeadersBuildPhase", "files": []any{}}
	objects["Z1"] = map[string]any{"isa": "PBXSomethingNew"}

	p, err := Parse(Input{Graph: g}, nil)
	require.NoError(t, err)

	isa, ok := p.ISA("H1")
	assert.True(t, ok)
	assert.Equal(t, "PBXHeadersBuildPhase", isa)

	isa, ok = p.ISA("Z1")
	assert.True(t, ok)
	assert.Equal(t, "PBXSomethingNew", isa)

	_, ok = p.ISA("nope")
	assert.False(t, ok)
}
