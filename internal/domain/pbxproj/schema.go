package pbxproj

// fieldType is the decoded shape of a record field.
type fieldType int

const (
	typeString   fieldType = iota // plain string
	typeBool                      // "1" is true, anything else false
	typeIDList                    // ordered identifiers (or plain strings)
	typeDict                      // nested dictionary, kept generic
	typeDictList                  // ordered nested dictionaries
)

// presence says what happens when a field is absent.
type presence int

const (
	// optional fields decode to their zero value when absent.
	optional presence = iota

	// required scalars and dictionaries get a placeholder and a notice;
	// required lists fail the record.
	required
)

type fieldSpec struct {
	name     string
	typ      fieldType
	presence presence
}

// schema is the known-field set of one record kind.
type schema struct {
	kind   Kind
	fields []fieldSpec
	known  map[string]bool
}

func newSchema(kind Kind, fields ...fieldSpec) *schema {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.name] = true
	}
	return &schema{kind: kind, fields: fields, known: known}
}

func req(name string, typ fieldType) fieldSpec { return fieldSpec{name, typ, required} }
func opt(name string, typ fieldType) fieldSpec { return fieldSpec{name, typ, optional} }

// Fields shared by every build phase kind.
var buildPhaseFields = []fieldSpec{
	req("buildActionMask", typeString),
	req("files", typeIDList),
	req("runOnlyForDeploymentPostprocessing", typeBool),
}

func phaseSchema(kind Kind, extra ...fieldSpec) *schema {
	fields := append(append([]fieldSpec{}, buildPhaseFields...), extra...)
	return newSchema(kind, fields...)
}

// Editor presentation fields shared by files and groups.
var presentationFields = []fieldSpec{
	opt("indentWidth", typeString),
	opt("tabWidth", typeString),
	opt("usesTabs", typeBool),
	opt("wrapsLines", typeBool),
}

func withPresentation(fields ...fieldSpec) []fieldSpec {
	return append(fields, presentationFields...)
}

var (
	aggregateTargetSchema = newSchema(KindAggregateTarget,
		req("buildConfigurationList", typeString),
		req("buildPhases", typeIDList),
		req("dependencies", typeIDList),
		req("name", typeString),
		opt("productName", typeString),
	)

	buildFileSchema = newSchema(KindBuildFile,
		opt("fileRef", typeString),
		opt("productRef", typeString),
		opt("settings", typeDict),
		opt("platformFilter", typeString),
		opt("platformFilters", typeIDList),
	)

	containerItemProxySchema = newSchema(KindContainerItemProxy,
		req("containerPortal", typeString),
		req("proxyType", typeString),
		req("remoteGlobalIDString", typeString),
		req("remoteInfo", typeString),
	)

	copyFilesPhaseSchema = phaseSchema(KindCopyFilesBuildPhase,
		req("dstPath", typeString),
		req("dstSubfolderSpec", typeString),
		opt("name", typeString),
	)

	fileReferenceSchema = newSchema(KindFileReference, withPresentation(
		req("path", typeString),
		req("sourceTree", typeString),
		opt("name", typeString),
		opt("fileEncoding", typeString),
		opt("explicitFileType", typeString),
		opt("lastKnownFileType", typeString),
		opt("includeInIndex", typeBool),
		opt("lineEnding", typeString),
		opt("xcLanguageSpecificationIdentifier", typeString),
		opt("plistStructureDefinitionIdentifier", typeString),
	)...)

	frameworksPhaseSchema = phaseSchema(KindFrameworksBuildPhase)

	groupSchema = newSchema(KindGroup, withPresentation(
		req("children", typeIDList),
		req("sourceTree", typeString),
		opt("name", typeString),
		opt("path", typeString),
	)...)

	nativeTargetSchema = newSchema(KindNativeTarget,
		req("buildConfigurationList", typeString),
		req("buildPhases", typeIDList),
		req("buildRules", typeIDList),
		req("dependencies", typeIDList),
		req("name", typeString),
		req("productType", typeString),
		opt("productName", typeString),
		opt("productReference", typeString),
		opt("packageProductDependencies", typeIDList),
		opt("fileSystemSynchronizedGroups", typeIDList),
	)

	projectSchema = newSchema(KindProject,
		req("attributes", typeDict),
		req("buildConfigurationList", typeString),
		req("hasScannedForEncodings", typeBool),
		req("mainGroup", typeString),
		req("projectDirPath", typeString),
		req("projectRoot", typeString),
		req("targets", typeIDList),
		opt("compatibilityVersion", typeString),
		opt("developmentRegion", typeString),
		opt("knownRegions", typeIDList),
		opt("productRefGroup", typeString),
		opt("packageReferences", typeIDList),
		opt("projectReferences", typeDictList),
		opt("preferredProjectObjectVersion", typeString),
		opt("minimizedProjectReferenceProxies", typeString),
	)

	referenceProxySchema = newSchema(KindReferenceProxy,
		req("fileType", typeString),
		req("path", typeString),
		req("remoteRef", typeString),
		req("sourceTree", typeString),
		opt("name", typeString),
	)

	resourcesPhaseSchema = phaseSchema(KindResourcesBuildPhase)

	shellScriptPhaseSchema = phaseSchema(KindShellScriptBuildPhase,
		req("shellPath", typeString),
		req("shellScript", typeString),
		opt("name", typeString),
		opt("inputPaths", typeIDList),
		opt("outputPaths", typeIDList),
		opt("inputFileListPaths", typeIDList),
		opt("outputFileListPaths", typeIDList),
		opt("showEnvVarsInLog", typeBool),
		opt("alwaysOutOfDate", typeBool),
		opt("dependencyFile", typeString),
	)

	sourcesPhaseSchema = phaseSchema(KindSourcesBuildPhase)

	targetDependencySchema = newSchema(KindTargetDependency,
		opt("target", typeString),
		opt("targetProxy", typeString),
		opt("name", typeString),
		opt("productRef", typeString),
		opt("platformFilter", typeString),
	)

	variantGroupSchema = newSchema(KindVariantGroup,
		req("children", typeIDList),
		req("sourceTree", typeString),
		opt("name", typeString),
		opt("path", typeString),
	)

	buildConfigurationSchema = newSchema(KindBuildConfiguration,
		req("buildSettings", typeDict),
		req("name", typeString),
		opt("baseConfigurationReference", typeString),
	)

	configurationListSchema = newSchema(KindConfigurationList,
		req("buildConfigurations", typeIDList),
		req("defaultConfigurationIsVisible", typeBool),
		opt("defaultConfigurationName", typeString),
	)

	versionGroupSchema = newSchema(KindVersionGroup,
		req("children", typeIDList),
		req("sourceTree", typeString),
		opt("currentVersion", typeString),
		opt("name", typeString),
		opt("path", typeString),
		opt("versionGroupType", typeString),
	)
)
