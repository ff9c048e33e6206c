// Package pbxproj turns a decoded project.pbxproj object graph into a typed,
// cross-referenced model.
//
// The file format has no published schema. Two representations of the same
// data are reconciled here:
//
//	raw graph  (objects → records keyed by identifier, tagged by "isa")
//	raw text   (trailing /* comments */ carrying human-readable titles)
//
// ExtractTitles scans the text once and produces a frozen Titles table. Parse
// then walks every record exactly once, dispatching on the isa tag to a
// schema-driven decoder. Format drift (unknown fields, unknown kinds, missing
// scalars) is recorded in a caller-supplied *Diagnostics and never fails the
// parse. Structural breakage (missing arrays, records that are not
// dictionaries) aborts it.
//
// The package performs no I/O and keeps no global state.
package pbxproj
