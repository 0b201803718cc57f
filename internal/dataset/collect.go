package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Lister enumerates the entries of a source directory. The collector is
// written against this narrow interface so parsing and indexing stay
// testable with in-memory fixtures.
type Lister interface {
	List(dir string) ([]string, error)
}

// DirLister lists a real filesystem directory.
type DirLister struct{}

// List returns the names of the regular entries under dir.
func (DirLister) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, dir)
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Collector builds annotation records from one source directory per
// partition role.
type Collector struct {
	lister Lister
}

// NewCollector returns a collector backed by the given lister, or by the
// real filesystem when lister is nil.
func NewCollector(lister Lister) *Collector {
	if lister == nil {
		lister = DirLister{}
	}
	return &Collector{lister: lister}
}

// Collect enumerates dir, keeps files with accepted image extensions,
// sorts them in lexical byte order so the output is reproducible across
// runs and platforms, and parses each filename into a record tagged with
// role. Class indexes are left unset. An empty directory yields an empty
// slice, not an error; a missing one fails with ErrSourceNotFound.
func (c *Collector) Collect(dir string, role Role) ([]Record, error) {
	names, err := c.lister.List(dir)
	if err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(names))
	for _, name := range names {
		if AcceptedExtension(name) {
			kept = append(kept, name)
		}
	}
	sort.Strings(kept)

	records := make([]Record, 0, len(kept))
	for _, name := range kept {
		meta, err := ParseFilename(name)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", dir, err)
		}
		records = append(records, Record{
			ImageName:      name,
			ImagePath:      filepath.Join(dir, name),
			IdentityID:     meta.IdentityID,
			CameraID:       meta.CameraID,
			SequenceID:     meta.SequenceID,
			FrameNo:        meta.FrameNo,
			DetectionBoxNo: meta.DetectionBoxNo,
			Role:           role,
		})
	}
	return records, nil
}
