package pbxproj

import (
	"fmt"
	"sort"
	"strings"
)

// NoticeKind classifies a format-drift notice.
type NoticeKind int

const (
	// NoticeUnknownField is a record key outside the kind's known-field set.
	NoticeUnknownField NoticeKind = iota

	// NoticeNewKind is a record whose isa tag is not recognized.
	NoticeNewKind

	// NoticeMissingField is an always-present scalar that was absent.
	NoticeMissingField

	// NoticeTypeMismatch is a scalar field whose value had the wrong shape.
	NoticeTypeMismatch

	// NoticeTitleCollision is an identifier titled by two comment sections.
	NoticeTitleCollision
)

// String returns the notice kind name.
func (k NoticeKind) String() string {
	switch k {
	case NoticeUnknownField:
		return "unknown-field"
	case NoticeNewKind:
		return "new-kind"
	case NoticeMissingField:
		return "missing-field"
	case NoticeTypeMismatch:
		return "type-mismatch"
	case NoticeTitleCollision:
		return "title-collision"
	default:
		return "unknown"
	}
}

// Notice is one informational diagnostic. Notices never fail a parse.
type Notice struct {
	Kind       NoticeKind
	RecordKind string // isa of the record (empty for title notices)
	ID         string
	Field      string
	Message    string
}

// String renders the notice as a single free-text line.
func (n Notice) String() string {
	return fmt.Sprintf("[%s] %s", n.Kind, n.Message)
}

// Diagnostics collects notices raised while extracting titles and decoding.
// The zero value is ready to use. Not safe for concurrent use.
type Diagnostics struct {
	notices []Notice
}

// Notices returns the collected notices in the order they were raised.
func (d *Diagnostics) Notices() []Notice {
	return d.notices
}

// Lines returns every notice rendered as a free-text line.
func (d *Diagnostics) Lines() []string {
	lines := make([]string, len(d.notices))
	for i, n := range d.notices {
		lines[i] = n.String()
	}
	return lines
}

// Count returns how many notices of the given kind were raised.
func (d *Diagnostics) Count(kind NoticeKind) int {
	n := 0
	for _, notice := range d.notices {
		if notice.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the total number of notices.
func (d *Diagnostics) Len() int {
	return len(d.notices)
}

func (d *Diagnostics) add(n Notice) {
	d.notices = append(d.notices, n)
}

func (d *Diagnostics) unknownField(kind, id, field string, value any) {
	d.add(Notice{
		Kind:       NoticeUnknownField,
		RecordKind: kind,
		ID:         id,
		Field:      field,
		Message:    fmt.Sprintf("%s %s: unknown field %q = %v", kind, id, field, value),
	})
}

func (d *Diagnostics) missingField(kind, id, field string) {
	d.add(Notice{
		Kind:       NoticeMissingField,
		RecordKind: kind,
		ID:         id,
		Field:      field,
		Message: fmt.Sprintf("%s %s: expected field %q is missing, using %q; please file a bug report with this project file",
			kind, id, field, Placeholder),
	})
}

func (d *Diagnostics) typeMismatch(kind, id, field string, value any) {
	d.add(Notice{
		Kind:       NoticeTypeMismatch,
		RecordKind: kind,
		ID:         id,
		Field:      field,
		Message: fmt.Sprintf("%s %s: field %q has unexpected value %v (%T), using %q; please file a bug report with this project file",
			kind, id, field, value, value, Placeholder),
	})
}

func (d *Diagnostics) newKind(kind, id string, rec Record) {
	d.add(Notice{
		Kind:       NoticeNewKind,
		RecordKind: kind,
		ID:         id,
		Message:    fmt.Sprintf("new kind encountered: %s %s %s", kind, id, formatRecord(rec)),
	})
}

func (d *Diagnostics) titleCollision(id, prev, next, section string) {
	d.add(Notice{
		Kind:    NoticeTitleCollision,
		ID:      id,
		Message: fmt.Sprintf("%s: title %q replaced by %q from %s section", id, prev, next, section),
	})
}

// formatRecord renders a record with sorted keys so notices are stable.
func formatRecord(rec Record) string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%s = %v", k, rec[k])
	}
	sb.WriteString("}")
	return sb.String()
}
