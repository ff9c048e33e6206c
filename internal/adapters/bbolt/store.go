// Package bbolt implements the ports.Storage interface using bbolt (embedded B+ tree).
// Each project gets its own top-level bucket. Within that bucket, the "runs"
// sub-bucket holds JSON-serialized run records keyed by big-endian unix nanos,
// so a cursor walks them in chronological order. Writes are transactional: a
// crash mid-write cannot corrupt previously committed runs.
package bbolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corey/xcprojlint/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var bucketRuns = []byte("runs")

// DefaultMaxRuns is how many runs are retained per project.
const DefaultMaxRuns = 200

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db      *bolt.DB
	maxRuns int
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db, maxRuns: DefaultMaxRuns}, nil
}

// SetMaxRuns changes the per-project retention. n <= 0 keeps everything.
func (s *Store) SetMaxRuns(n int) {
	s.maxRuns = n
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// runKey encodes a timestamp as a sortable 8-byte key.
func runKey(t time.Time) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(t.UnixNano()))
	return k
}

// SaveRun appends a run record and prunes the oldest runs beyond retention.
func (s *Store) SaveRun(projectID string, run *ports.RunRecord) error {
	if run == nil {
		return fmt.Errorf("nil run record")
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		proj, err := tx.CreateBucketIfNotExists([]byte(projectID))
		if err != nil {
			return err
		}
		rb, err := proj.CreateBucketIfNotExists(bucketRuns)
		if err != nil {
			return err
		}
		if err := rb.Put(runKey(run.At), data); err != nil {
			return err
		}
		return prune(rb, s.maxRuns)
	})
}

// prune deletes the oldest entries until at most keep remain.
func prune(rb *bolt.Bucket, keep int) error {
	if keep <= 0 {
		return nil
	}
	c := rb.Cursor()
	n := 0
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	excess := n - keep
	if excess <= 0 {
		return nil
	}
	for k, _ := c.First(); k != nil && excess > 0; k, _ = c.First() {
		if err := c.Delete(); err != nil {
			return err
		}
		excess--
	}
	return nil
}

// LatestRun returns the most recent run for a project.
// Returns nil, nil if the project has no runs.
func (s *Store) LatestRun(projectID string) (*ports.RunRecord, error) {
	runs, err := s.Runs(projectID, 1)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return runs[0], nil
}

// Runs returns up to limit runs, newest first. limit <= 0 means all.
func (s *Store) Runs(projectID string, limit int) ([]*ports.RunRecord, error) {
	var blobs [][]byte

	err := s.db.View(func(tx *bolt.Tx) error {
		proj := tx.Bucket([]byte(projectID))
		if proj == nil {
			return nil
		}
		rb := proj.Bucket(bucketRuns)
		if rb == nil {
			return nil
		}
		c := rb.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(blobs) >= limit {
				break
			}
			// Copy bytes out of the transaction (bbolt slices are only valid within tx)
			b := make([]byte, len(v))
			copy(b, v)
			blobs = append(blobs, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	runs := make([]*ports.RunRecord, 0, len(blobs))
	for _, b := range blobs {
		var run ports.RunRecord
		if err := json.Unmarshal(b, &run); err != nil {
			return nil, fmt.Errorf("unmarshal run: %w", err)
		}
		runs = append(runs, &run)
	}
	return runs, nil
}

// DeleteProject removes all runs for a project.
// Idempotent: deleting a nonexistent project is not an error.
func (s *Store) DeleteProject(projectID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(projectID)); err == bolt.ErrBucketNotFound {
			return nil // idempotent
		} else {
			return err
		}
	})
}
