package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/corey/xcprojlint/internal/app"
	"github.com/corey/xcprojlint/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// palette switches color codes off for plain output.
type palette struct{ on bool }

func (p palette) c(code, s string) string {
	if !p.on {
		return s
	}
	return code + s + colorReset
}

// formatFinding renders a finding the way Xcode parses script output:
//
//	/path/App.xcodeproj/project.pbxproj:42: error: message [rule]
func formatFinding(f ports.Finding, pal palette) string {
	sevColor := colorRed
	if f.Severity == ports.SeverityWarning {
		sevColor = colorYellow
	}
	loc := f.Path
	if f.Line > 0 {
		loc = fmt.Sprintf("%s:%d", f.Path, f.Line)
	}
	return fmt.Sprintf("%s: %s: %s %s",
		pal.c(colorCyan, loc),
		pal.c(sevColor, string(f.Severity)),
		f.Message,
		pal.c(colorGray, "["+f.Rule+"]"))
}

// formatSummary is the one-line result printed after the findings.
//
//	✗ 5 findings (5 errors) │ 27 records │ cached
func formatSummary(res *app.Result, pal palette) string {
	var sb strings.Builder
	if len(res.Findings) == 0 {
		sb.WriteString(pal.c(colorGreen, "✓ no findings"))
	} else {
		sb.WriteString(pal.c(colorBold, fmt.Sprintf("✗ %d %s (%d errors)",
			len(res.Findings), plural(len(res.Findings), "finding"), res.ErrorCount())))
	}
	fmt.Fprintf(&sb, " │ %d records", res.Project.Records)
	if n := len(res.Notices); n > 0 {
		fmt.Fprintf(&sb, " │ %d %s", n, plural(n, "notice"))
	}
	if res.Cached {
		sb.WriteString(" │ " + pal.c(colorGray, "cached"))
	}
	return sb.String()
}

// formatRun renders one history entry.
//
//	2026-01-02 15:04:05  3 findings (1 errors)  4f2a9c1b  empty-groups,files-exist
func formatRun(r *ports.RunRecord, pal palette) string {
	digest := r.Digest
	if len(digest) > 8 {
		digest = digest[:8]
	}
	return fmt.Sprintf("%s  %d %s (%d errors)  %s  %s",
		pal.c(colorCyan, r.At.Local().Format(time.DateTime)),
		len(r.Findings), plural(len(r.Findings), "finding"), r.ErrorCount(),
		pal.c(colorGray, digest),
		strings.Join(r.Validations, ","))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
