// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import "time"

// Storage persists lint run history. The backing store (bbolt) is
// project-scoped: each projectID (the resolved project file path) gets its
// own namespace. Writes are transactional.
type Storage interface {
	// SaveRun appends a run record for a project.
	SaveRun(projectID string, run *RunRecord) error

	// LatestRun returns the most recent run for a project.
	// Returns nil, nil if the project has no runs.
	LatestRun(projectID string) (*RunRecord, error)

	// Runs returns up to limit runs, newest first. limit <= 0 means all.
	Runs(projectID string, limit int) ([]*RunRecord, error)

	// DeleteProject removes all runs for a project.
	// Idempotent: deleting a nonexistent project is not an error.
	DeleteProject(projectID string) error
}

// RunRecord is one lint invocation against one project file.
type RunRecord struct {
	At time.Time `json:"at"`

	// Digest is the sha256 of the project file content plus the effective
	// lint configuration. Equal digests produce equal findings.
	Digest string `json:"digest"`

	Validations []string  `json:"validations"`
	Findings    []Finding `json:"findings"`

	// Notices counts format-drift notices raised while parsing.
	Notices int `json:"notices"`

	// Records counts raw records visited.
	Records int `json:"records"`
}

// ErrorCount returns how many findings have error severity.
func (r *RunRecord) ErrorCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}
