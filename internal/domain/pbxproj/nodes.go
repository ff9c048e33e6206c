package pbxproj

// FileReference is a PBXFileReference: one file or folder on disk.
type FileReference struct {
	ID    string
	Title string

	Path                               string
	SourceTree                         string
	Name                               string
	FileEncoding                       string
	ExplicitFileType                   string
	LastKnownFileType                  string
	IncludeInIndex                     bool
	LineEnding                         string
	XCLanguageSpecificationIdentifier  string
	PlistStructureDefinitionIdentifier string
	Presentation
}

// Presentation holds the optional editor settings of files and groups.
type Presentation struct {
	IndentWidth string
	TabWidth    string
	UsesTabs    bool
	WrapsLines  bool
}

// FileType returns the explicit file type, falling back to the last known
// one.
func (f *FileReference) FileType() string {
	if f.ExplicitFileType != "" {
		return f.ExplicitFileType
	}
	return f.LastKnownFileType
}

// Group is a PBXGroup. Children may name groups, file references, variant
// groups, version groups or reference proxies; see Project.Child.
type Group struct {
	ID    string
	Title string

	Children   []string
	SourceTree string
	Name       string
	Path       string
	Presentation
}

// VariantGroup is a PBXVariantGroup (localized resource bundle).
type VariantGroup struct {
	ID    string
	Title string

	Children   []string
	SourceTree string
	Name       string
	Path       string
}

// VersionGroup is an XCVersionGroup (for example a Core Data model bundle).
type VersionGroup struct {
	ID    string
	Title string

	Children         []string
	SourceTree       string
	CurrentVersion   string
	Name             string
	Path             string
	VersionGroupType string
}

// BuildFile is a PBXBuildFile: a file reference as used by a build phase.
type BuildFile struct {
	ID string

	FileRef         string
	ProductRef      string
	Settings        map[string]any
	PlatformFilter  string
	PlatformFilters []string
}

// BuildPhase holds the fields common to every build phase kind.
type BuildPhase struct {
	ID string

	BuildActionMask                    string
	Files                              []string
	RunOnlyForDeploymentPostprocessing bool
}

// SourcesBuildPhase is a PBXSourcesBuildPhase.
type SourcesBuildPhase struct{ BuildPhase }

// ResourcesBuildPhase is a PBXResourcesBuildPhase.
type ResourcesBuildPhase struct{ BuildPhase }

// FrameworksBuildPhase is a PBXFrameworksBuildPhase.
type FrameworksBuildPhase struct{ BuildPhase }

// CopyFilesBuildPhase is a PBXCopyFilesBuildPhase.
type CopyFilesBuildPhase struct {
	BuildPhase
	DstPath          string
	DstSubfolderSpec string
	Name             string
}

// ShellScriptBuildPhase is a PBXShellScriptBuildPhase.
type ShellScriptBuildPhase struct {
	BuildPhase
	Name                string
	ShellPath           string
	ShellScript         string
	InputPaths          []string
	OutputPaths         []string
	InputFileListPaths  []string
	OutputFileListPaths []string
	ShowEnvVarsInLog    bool
	AlwaysOutOfDate     bool
	DependencyFile      string
}

// NativeTarget is a PBXNativeTarget.
type NativeTarget struct {
	ID string

	BuildConfigurationList       string
	BuildPhases                  []string
	BuildRules                   []string
	Dependencies                 []string
	Name                         string
	ProductName                  string
	ProductReference             string
	ProductType                  string
	PackageProductDependencies   []string
	FileSystemSynchronizedGroups []string
}

// AggregateTarget is a PBXAggregateTarget.
type AggregateTarget struct {
	ID string

	BuildConfigurationList string
	BuildPhases            []string
	Dependencies           []string
	Name                   string
	ProductName            string
}

// ProjectRoot is the PBXProject record.
type ProjectRoot struct {
	ID string

	Attributes                       map[string]any
	BuildConfigurationList           string
	CompatibilityVersion             string
	DevelopmentRegion                string
	HasScannedForEncodings           bool
	KnownRegions                     []string
	MainGroup                        string
	ProductRefGroup                  string
	ProjectDirPath                   string
	ProjectRoot                      string
	Targets                          []string
	PackageReferences                []string
	ProjectReferences                []map[string]any
	PreferredProjectObjectVersion    string
	MinimizedProjectReferenceProxies string
}

// BuildConfiguration is an XCBuildConfiguration.
type BuildConfiguration struct {
	ID    string
	Title string

	BaseConfigurationReference string
	BuildSettings              map[string]any
	Name                       string
}

// ConfigurationList is an XCConfigurationList.
type ConfigurationList struct {
	ID    string
	Title string

	BuildConfigurations           []string
	DefaultConfigurationIsVisible bool
	DefaultConfigurationName      string
}

// ContainerItemProxy is a PBXContainerItemProxy.
type ContainerItemProxy struct {
	ID string

	ContainerPortal      string
	ProxyType            string
	RemoteGlobalIDString string
	RemoteInfo           string
}

// TargetDependency is a PBXTargetDependency.
type TargetDependency struct {
	ID string

	Target         string
	TargetProxy    string
	Name           string
	ProductRef     string
	PlatformFilter string
}

// ReferenceProxy is a PBXReferenceProxy: a product of another project.
type ReferenceProxy struct {
	ID string

	FileType   string
	Path       string
	RemoteRef  string
	SourceTree string
	Name       string
}

// UnknownNode carries a record whose isa tag has no typed node.
type UnknownNode struct {
	ID     string
	ISA    string
	Record Record
}

func (*FileReference) Kind() Kind         { return KindFileReference }
func (*Group) Kind() Kind                 { return KindGroup }
func (*VariantGroup) Kind() Kind          { return KindVariantGroup }
func (*VersionGroup) Kind() Kind          { return KindVersionGroup }
func (*BuildFile) Kind() Kind             { return KindBuildFile }
func (*SourcesBuildPhase) Kind() Kind     { return KindSourcesBuildPhase }
func (*ResourcesBuildPhase) Kind() Kind   { return KindResourcesBuildPhase }
func (*FrameworksBuildPhase) Kind() Kind  { return KindFrameworksBuildPhase }
func (*CopyFilesBuildPhase) Kind() Kind   { return KindCopyFilesBuildPhase }
func (*ShellScriptBuildPhase) Kind() Kind { return KindShellScriptBuildPhase }
func (*NativeTarget) Kind() Kind          { return KindNativeTarget }
func (*AggregateTarget) Kind() Kind       { return KindAggregateTarget }
func (*ProjectRoot) Kind() Kind           { return KindProject }
func (*BuildConfiguration) Kind() Kind    { return KindBuildConfiguration }
func (*ConfigurationList) Kind() Kind     { return KindConfigurationList }
func (*ContainerItemProxy) Kind() Kind    { return KindContainerItemProxy }
func (*TargetDependency) Kind() Kind      { return KindTargetDependency }
func (*ReferenceProxy) Kind() Kind        { return KindReferenceProxy }
func (*UnknownNode) Kind() Kind           { return KindUnknown }

// --- Constructors: decoded fields → typed node ---

func presentation(f fields) Presentation {
	return Presentation{
		IndentWidth: f.str("indentWidth"),
		TabWidth:    f.str("tabWidth"),
		UsesTabs:    f.flag("usesTabs"),
		WrapsLines:  f.flag("wrapsLines"),
	}
}

func buildPhase(f fields) BuildPhase {
	return BuildPhase{
		ID:                                 f.id,
		BuildActionMask:                    f.str("buildActionMask"),
		Files:                              f.ids("files"),
		RunOnlyForDeploymentPostprocessing: f.flag("runOnlyForDeploymentPostprocessing"),
	}
}

func newFileReference(f fields, t Titles) Node {
	return &FileReference{
		ID:                                 f.id,
		Title:                              t.Title(f.id),
		Path:                               f.str("path"),
		SourceTree:                         f.str("sourceTree"),
		Name:                               f.str("name"),
		FileEncoding:                       f.str("fileEncoding"),
		ExplicitFileType:                   f.str("explicitFileType"),
		LastKnownFileType:                  f.str("lastKnownFileType"),
		IncludeInIndex:                     f.flag("includeInIndex"),
		LineEnding:                         f.str("lineEnding"),
		XCLanguageSpecificationIdentifier:  f.str("xcLanguageSpecificationIdentifier"),
		PlistStructureDefinitionIdentifier: f.str("plistStructureDefinitionIdentifier"),
		Presentation:                       presentation(f),
	}
}

func newGroup(f fields, t Titles) Node {
	return &Group{
		ID:           f.id,
		Title:        t.Title(f.id),
		Children:     f.ids("children"),
		SourceTree:   f.str("sourceTree"),
		Name:         f.str("name"),
		Path:         f.str("path"),
		Presentation: presentation(f),
	}
}

func newVariantGroup(f fields, t Titles) Node {
	return &VariantGroup{
		ID:         f.id,
		Title:      t.Title(f.id),
		Children:   f.ids("children"),
		SourceTree: f.str("sourceTree"),
		Name:       f.str("name"),
		Path:       f.str("path"),
	}
}

func newVersionGroup(f fields, t Titles) Node {
	return &VersionGroup{
		ID:               f.id,
		Title:            t.Title(f.id),
		Children:         f.ids("children"),
		SourceTree:       f.str("sourceTree"),
		CurrentVersion:   f.str("currentVersion"),
		Name:             f.str("name"),
		Path:             f.str("path"),
		VersionGroupType: f.str("versionGroupType"),
	}
}

func newBuildFile(f fields, _ Titles) Node {
	return &BuildFile{
		ID:              f.id,
		FileRef:         f.str("fileRef"),
		ProductRef:      f.str("productRef"),
		Settings:        f.dict("settings"),
		PlatformFilter:  f.str("platformFilter"),
		PlatformFilters: f.ids("platformFilters"),
	}
}

func newSourcesBuildPhase(f fields, _ Titles) Node {
	return &SourcesBuildPhase{buildPhase(f)}
}

func newResourcesBuildPhase(f fields, _ Titles) Node {
	return &ResourcesBuildPhase{buildPhase(f)}
}

func newFrameworksBuildPhase(f fields, _ Titles) Node {
	return &FrameworksBuildPhase{buildPhase(f)}
}

func newCopyFilesBuildPhase(f fields, _ Titles) Node {
	return &CopyFilesBuildPhase{
		BuildPhase:       buildPhase(f),
		DstPath:          f.str("dstPath"),
		DstSubfolderSpec: f.str("dstSubfolderSpec"),
		Name:             f.str("name"),
	}
}

func newShellScriptBuildPhase(f fields, _ Titles) Node {
	return &ShellScriptBuildPhase{
		BuildPhase:          buildPhase(f),
		Name:                f.str("name"),
		ShellPath:           f.str("shellPath"),
		ShellScript:         f.str("shellScript"),
		InputPaths:          f.ids("inputPaths"),
		OutputPaths:         f.ids("outputPaths"),
		InputFileListPaths:  f.ids("inputFileListPaths"),
		OutputFileListPaths: f.ids("outputFileListPaths"),
		ShowEnvVarsInLog:    f.flag("showEnvVarsInLog"),
		AlwaysOutOfDate:     f.flag("alwaysOutOfDate"),
		DependencyFile:      f.str("dependencyFile"),
	}
}

func newNativeTarget(f fields, _ Titles) Node {
	return &NativeTarget{
		ID:                           f.id,
		BuildConfigurationList:       f.str("buildConfigurationList"),
		BuildPhases:                  f.ids("buildPhases"),
		BuildRules:                   f.ids("buildRules"),
		Dependencies:                 f.ids("dependencies"),
		Name:                         f.str("name"),
		ProductName:                  f.str("productName"),
		ProductReference:             f.str("productReference"),
		ProductType:                  f.str("productType"),
		PackageProductDependencies:   f.ids("packageProductDependencies"),
		FileSystemSynchronizedGroups: f.ids("fileSystemSynchronizedGroups"),
	}
}

func newAggregateTarget(f fields, _ Titles) Node {
	return &AggregateTarget{
		ID:                     f.id,
		BuildConfigurationList: f.str("buildConfigurationList"),
		BuildPhases:            f.ids("buildPhases"),
		Dependencies:           f.ids("dependencies"),
		Name:                   f.str("name"),
		ProductName:            f.str("productName"),
	}
}

func newProjectRoot(f fields, _ Titles) Node {
	return &ProjectRoot{
		ID:                               f.id,
		Attributes:                       f.dict("attributes"),
		BuildConfigurationList:           f.str("buildConfigurationList"),
		CompatibilityVersion:             f.str("compatibilityVersion"),
		DevelopmentRegion:                f.str("developmentRegion"),
		HasScannedForEncodings:           f.flag("hasScannedForEncodings"),
		KnownRegions:                     f.ids("knownRegions"),
		MainGroup:                        f.str("mainGroup"),
		ProductRefGroup:                  f.str("productRefGroup"),
		ProjectDirPath:                   f.str("projectDirPath"),
		ProjectRoot:                      f.str("projectRoot"),
		Targets:                          f.ids("targets"),
		PackageReferences:                f.ids("packageReferences"),
		ProjectReferences:                f.dicts("projectReferences"),
		PreferredProjectObjectVersion:    f.str("preferredProjectObjectVersion"),
		MinimizedProjectReferenceProxies: f.str("minimizedProjectReferenceProxies"),
	}
}

func newBuildConfiguration(f fields, t Titles) Node {
	return &BuildConfiguration{
		ID:                         f.id,
		Title:                      t.Title(f.id),
		BaseConfigurationReference: f.str("baseConfigurationReference"),
		BuildSettings:              f.dict("buildSettings"),
		Name:                       f.str("name"),
	}
}

func newConfigurationList(f fields, t Titles) Node {
	return &ConfigurationList{
		ID:                            f.id,
		Title:                         t.Title(f.id),
		BuildConfigurations:           f.ids("buildConfigurations"),
		DefaultConfigurationIsVisible: f.flag("defaultConfigurationIsVisible"),
		DefaultConfigurationName:      f.str("defaultConfigurationName"),
	}
}

func newContainerItemProxy(f fields, _ Titles) Node {
	return &ContainerItemProxy{
		ID:                   f.id,
		ContainerPortal:      f.str("containerPortal"),
		ProxyType:            f.str("proxyType"),
		RemoteGlobalIDString: f.str("remoteGlobalIDString"),
		RemoteInfo:           f.str("remoteInfo"),
	}
}

func newTargetDependency(f fields, _ Titles) Node {
	return &TargetDependency{
		ID:             f.id,
		Target:         f.str("target"),
		TargetProxy:    f.str("targetProxy"),
		Name:           f.str("name"),
		ProductRef:     f.str("productRef"),
		PlatformFilter: f.str("platformFilter"),
	}
}

func newReferenceProxy(f fields, _ Titles) Node {
	return &ReferenceProxy{
		ID:         f.id,
		FileType:   f.str("fileType"),
		Path:       f.str("path"),
		RemoteRef:  f.str("remoteRef"),
		SourceTree: f.str("sourceTree"),
		Name:       f.str("name"),
	}
}
