package pbxproj

import "strings"

// Comment delimiters bracketing a title on a record header line:
//
//	ABC123 /* MyFile.swift */ = {isa = PBXFileReference; ...};
const (
	commentOpen  = " /* "
	commentClose = " */ "
)

// titleSections lists the comment sections harvested for titles, in merge
// order. Later sections overwrite earlier ones on collision.
var titleSections = []string{
	"PBXFileReference",
	"PBXGroup",
	"XCBuildConfiguration",
	"XCConfigurationList",
}

// Titles maps identifiers to display titles recovered from comments.
// Entries are best-effort; Title falls back to the identifier.
type Titles map[string]string

// Title returns the display title for id, or id itself when no comment
// named it.
func (t Titles) Title(id string) string {
	if title, ok := t[id]; ok {
		return title
	}
	return id
}

// Has reports whether a comment supplied a title for id.
func (t Titles) Has(id string) bool {
	_, ok := t[id]
	return ok
}

// ExtractTitles scans raw project text and returns the identifier → title
// table. Only the header lines of the four titled sections are considered;
// anything that does not split into identifier, title and remainder is
// skipped. Collisions between sections are reported to diags.
func ExtractTitles(text string, diags *Diagnostics) Titles {
	if diags == nil {
		diags = &Diagnostics{}
	}
	lines := strings.Split(text, "\n")
	titles := make(Titles)
	for _, section := range titleSections {
		for id, title := range extractSection(lines, section) {
			if prev, ok := titles[id]; ok && prev != title {
				diags.titleCollision(id, prev, title, section)
			}
			titles[id] = title
		}
	}
	return titles
}

// extractSection harvests titles between the begin and end markers of one
// section. A section may appear more than once; every occurrence is read.
// Lines have no length limit.
func extractSection(lines []string, section string) map[string]string {
	begin := "Begin " + section + " section"
	end := "End " + section + " section"

	out := make(map[string]string)
	inside := false

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case strings.Contains(line, begin):
			inside = true
			continue
		case strings.Contains(line, end):
			inside = false
			continue
		}
		if !inside {
			continue
		}
		if id, title, ok := splitTitleLine(line); ok {
			out[id] = title
		}
	}
	return out
}

// splitTitleLine splits "ID /* title */ = {...}" into its identifier and
// title. Lines without exactly one bracketed comment followed by more text
// (child lists, closing braces, blank lines) are rejected.
func splitTitleLine(line string) (id, title string, ok bool) {
	head, rest, found := strings.Cut(line, commentOpen)
	if !found || strings.Contains(rest, commentOpen) {
		return "", "", false
	}
	title, tail, found := strings.Cut(rest, commentClose)
	if !found || strings.Contains(tail, commentClose) {
		return "", "", false
	}
	id = strings.TrimSpace(head)
	if id == "" || strings.ContainsAny(id, " \t") {
		return "", "", false
	}
	return id, title, true
}
