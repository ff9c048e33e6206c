package pbxproj

// isaKey is the record field carrying the kind discriminator.
const isaKey = "isa"

// Kind identifies a record variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindAggregateTarget
	KindBuildFile
	KindContainerItemProxy
	KindCopyFilesBuildPhase
	KindFileReference
	KindFrameworksBuildPhase
	KindGroup
	KindNativeTarget
	KindProject
	KindReferenceProxy
	KindResourcesBuildPhase
	KindShellScriptBuildPhase
	KindSourcesBuildPhase
	KindTargetDependency
	KindVariantGroup
	KindBuildConfiguration
	KindConfigurationList
	KindVersionGroup
)

var kindNames = map[Kind]string{
	KindAggregateTarget:       "PBXAggregateTarget",
	KindBuildFile:             "PBXBuildFile",
	KindContainerItemProxy:    "PBXContainerItemProxy",
	KindCopyFilesBuildPhase:   "PBXCopyFilesBuildPhase",
	KindFileReference:         "PBXFileReference",
	KindFrameworksBuildPhase:  "PBXFrameworksBuildPhase",
	KindGroup:                 "PBXGroup",
	KindNativeTarget:          "PBXNativeTarget",
	KindProject:               "PBXProject",
	KindReferenceProxy:        "PBXReferenceProxy",
	KindResourcesBuildPhase:   "PBXResourcesBuildPhase",
	KindShellScriptBuildPhase: "PBXShellScriptBuildPhase",
	KindSourcesBuildPhase:     "PBXSourcesBuildPhase",
	KindTargetDependency:      "PBXTargetDependency",
	KindVariantGroup:          "PBXVariantGroup",
	KindBuildConfiguration:    "XCBuildConfiguration",
	KindConfigurationList:     "XCConfigurationList",
	KindVersionGroup:          "XCVersionGroup",
}

// ignoredKinds are recognized isa values that produce no node.
var ignoredKinds = map[string]bool{
	"PBXHeadersBuildPhase": true,
	"PBXRezBuildPhase":     true,
}

// String returns the isa name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindFromISA maps an isa value to its Kind. Returns KindUnknown for values
// with no typed node (including the ignored kinds).
func KindFromISA(isa string) Kind {
	return isaKinds[isa]
}

var isaKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// Node is implemented by every typed record.
type Node interface {
	Kind() Kind
}
