package annostore

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/gofrs/flock"

	"reidset/internal/dataset"
	"reidset/internal/fileutil"
)

// Column layouts of the persisted annotation file. Train files carry the
// class index as their first column; eval (query+gallery) files omit it.
var (
	trainColumns = []string{
		"identity_index", "identity_id", "camera_id", "sequence_id",
		"frame_no", "detection_box_no", "partition_role", "image_name", "image_path",
	}
	testColumns = trainColumns[1:]
)

// Persist writes the store to path as UTF-8 comma-separated text with a
// header row. The write goes through a temp-file rename guarded by a
// sidecar flock, so concurrent builds against the same annotation
// directory serialize instead of interleaving one file. Unchanged input
// produces byte-identical output.
func (s *Store) Persist(path string) error {
	withIndex := s.hasTrainRows()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := testColumns
	if withIndex {
		header = trainColumns
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("%w: write header: %w", dataset.ErrIOFailure, err)
	}
	for _, row := range s.rows {
		if err := w.Write(encodeRow(row, withIndex)); err != nil {
			return fmt.Errorf("%w: write row %s: %w", dataset.ErrIOFailure, row.ImageName, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: flush: %w", dataset.ErrIOFailure, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("%w: lock %s: %w", dataset.ErrIOFailure, path, err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: persist %s: %w", dataset.ErrIOFailure, path, err)
	}
	return nil
}

// Load reads a persisted annotation file back into a store. The schema
// (train or eval layout) is inferred from the header row; anything else
// fails with ErrSchemaMismatch. Unreadable paths fail with ErrIOFailure.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", dataset.ErrIOFailure, path, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", dataset.ErrSchemaMismatch, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header row", dataset.ErrSchemaMismatch, path)
	}

	var withIndex bool
	switch {
	case slices.Equal(rows[0], trainColumns):
		withIndex = true
	case slices.Equal(rows[0], testColumns):
		withIndex = false
	default:
		return nil, fmt.Errorf("%w: %s: unrecognized header %v", dataset.ErrSchemaMismatch, path, rows[0])
	}

	records := make([]dataset.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := decodeRow(row, withIndex)
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %w", dataset.ErrSchemaMismatch, path, i+2, err)
		}
		records = append(records, rec)
	}
	return &Store{rows: records}, nil
}

func encodeRow(rec dataset.Record, withIndex bool) []string {
	fields := make([]string, 0, len(trainColumns))
	if withIndex {
		index := ""
		if rec.Class.Valid {
			index = strconv.Itoa(rec.Class.Index)
		}
		fields = append(fields, index)
	}
	return append(fields,
		rec.IdentityID,
		rec.CameraID,
		rec.SequenceID,
		rec.FrameNo,
		rec.DetectionBoxNo,
		string(rec.Role),
		rec.ImageName,
		rec.ImagePath,
	)
}

func decodeRow(fields []string, withIndex bool) (dataset.Record, error) {
	var rec dataset.Record
	if withIndex {
		if raw := fields[0]; raw != "" {
			index, err := strconv.Atoi(raw)
			if err != nil {
				return rec, fmt.Errorf("identity_index %q: %w", raw, err)
			}
			rec.Class = dataset.NewClassIndex(index)
		}
		fields = fields[1:]
	}
	role, err := dataset.ParseRole(fields[5])
	if err != nil {
		return rec, err
	}
	rec.IdentityID = fields[0]
	rec.CameraID = fields[1]
	rec.SequenceID = fields[2]
	rec.FrameNo = fields[3]
	rec.DetectionBoxNo = fields[4]
	rec.Role = role
	rec.ImageName = fields[6]
	rec.ImagePath = fields[7]
	return rec, nil
}
