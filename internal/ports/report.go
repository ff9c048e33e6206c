package ports

import "fmt"

// Severity classifies a finding. The names match the prefixes Xcode
// recognizes in build log lines.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// SeverityFromName maps a string to its Severity. Returns "" for unknown
// names.
func SeverityFromName(name string) Severity {
	switch name {
	case "error":
		return SeverityError
	case "warning":
		return SeverityWarning
	default:
		return ""
	}
}

// Finding is one structured failure report produced by a lint rule.
type Finding struct {
	Path     string   `json:"path"`
	Line     int      `json:"line,omitempty"` // 1-based; 0 when unknown
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
}

// String renders the finding in the format Xcode parses from script output:
//
//	/path/App.xcodeproj/project.pbxproj:42: error: message
func (f Finding) String() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", f.Path, f.Line, f.Severity, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Path, f.Severity, f.Message)
}
