package annostore

import (
	"sort"

	"reidset/internal/dataset"
)

// Store is an ordered, immutable table of annotation rows covering the
// train, query, and gallery partitions of one dataset build.
type Store struct {
	rows []dataset.Record
}

// Build combines collected records into a store, preserving input order.
// Rows duplicating an earlier (role, image path) pair are dropped, so a
// view's distinct-path length always equals its row count.
func Build(records []dataset.Record) *Store {
	type rowKey struct {
		role dataset.Role
		path string
	}
	seen := make(map[rowKey]struct{}, len(records))
	rows := make([]dataset.Record, 0, len(records))
	for _, rec := range records {
		key := rowKey{role: rec.Role, path: rec.ImagePath}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, rec)
	}
	return &Store{rows: rows}
}

// Len returns the total row count across all roles.
func (s *Store) Len() int {
	return len(s.rows)
}

// Rows returns a copy of every row in file order.
func (s *Store) Rows() []dataset.Record {
	out := make([]dataset.Record, len(s.rows))
	copy(out, s.rows)
	return out
}

// Filter returns the rows of one partition role, preserving file order.
// A role absent from the store yields an empty slice, not an error.
func (s *Store) Filter(role dataset.Role) []dataset.Record {
	out := make([]dataset.Record, 0, len(s.rows))
	for _, row := range s.rows {
		if row.Role == role {
			out = append(out, row)
		}
	}
	return out
}

// Counts returns the number of rows per partition role.
func (s *Store) Counts() map[dataset.Role]int {
	counts := make(map[dataset.Role]int, 3)
	for _, row := range s.rows {
		counts[row.Role]++
	}
	return counts
}

// Classes returns the distinct assigned class indexes in ascending order.
// For a complete train store this is exactly 0..K-1.
func (s *Store) Classes() []int {
	seen := make(map[int]struct{})
	for _, row := range s.rows {
		if row.Class.Valid {
			seen[row.Class.Index] = struct{}{}
		}
	}
	classes := make([]int, 0, len(seen))
	for idx := range seen {
		classes = append(classes, idx)
	}
	sort.Ints(classes)
	return classes
}

// hasTrainRows reports whether any row carries the train role, which
// selects the persisted column layout.
func (s *Store) hasTrainRows() bool {
	for _, row := range s.rows {
		if row.Role == dataset.RoleTrain {
			return true
		}
	}
	return false
}
