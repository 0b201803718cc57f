// Package dataview exposes the partitions of a loaded annotation store as
// random-access sequences of labeled images. Views are read-only after
// construction, so concurrent readers need no locking.
package dataview

import (
	"fmt"
	"image"

	"reidset/internal/annostore"
	"reidset/internal/dataset"
	"reidset/internal/fileutil"
)

// Decoder turns a filesystem path into a decoded image. The concrete
// pipeline (decode, resize, normalization) is a collaborator outside the
// annotation core; imaging.FileDecoder is the default implementation.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// view is the filtered row list shared by both view kinds. Length is the
// number of distinct image paths in the filtered set; the store
// de-duplicates rows at build time, so it always equals the row count.
type view struct {
	rows    []dataset.Record
	decoder Decoder
}

func newView(store *annostore.Store, role dataset.Role, decoder Decoder) (view, error) {
	if decoder == nil {
		return view{}, fmt.Errorf("%s view: nil decoder", role)
	}
	rows := store.Filter(role)
	for _, row := range rows {
		if !fileutil.FileExists(row.ImagePath) {
			return view{}, fmt.Errorf("%w: %s view: image %s missing", dataset.ErrPrecondition, role, row.ImagePath)
		}
	}
	return view{rows: rows, decoder: decoder}, nil
}

// Len returns the number of addressable positions.
func (v view) Len() int {
	distinct := make(map[string]struct{}, len(v.rows))
	for _, row := range v.rows {
		distinct[row.ImagePath] = struct{}{}
	}
	return len(distinct)
}

func (v view) at(i int) (dataset.Record, image.Image, error) {
	if i < 0 || i >= len(v.rows) {
		return dataset.Record{}, nil, fmt.Errorf("position %d outside [0, %d)", i, len(v.rows))
	}
	row := v.rows[i]
	img, err := v.decoder.Decode(row.ImagePath)
	if err != nil {
		return dataset.Record{}, nil, fmt.Errorf("%w: %w", dataset.ErrPrecondition, err)
	}
	return row, img, nil
}

// TrainView resolves each position to a decoded image and its class index.
type TrainView struct {
	view
}

// NewTrainView wraps the train partition of store. Every referenced image
// file must exist; a missing file is ErrPrecondition, not a skip.
func NewTrainView(store *annostore.Store, decoder Decoder) (*TrainView, error) {
	base, err := newView(store, dataset.RoleTrain, decoder)
	if err != nil {
		return nil, err
	}
	for _, row := range base.rows {
		if !row.Class.Valid {
			return nil, fmt.Errorf("%w: train row %s has no class index", dataset.ErrPrecondition, row.ImageName)
		}
	}
	return &TrainView{view: base}, nil
}

// At returns the decoded image and class index at position i.
func (v *TrainView) At(i int) (image.Image, int, error) {
	row, img, err := v.at(i)
	if err != nil {
		return nil, 0, err
	}
	return img, row.Class.Index, nil
}

// EvalView resolves each position to a decoded image, its raw identity
// id, and its source path. Used for both the query and gallery partitions.
type EvalView struct {
	view
}

// NewEvalView wraps one evaluation partition (query or gallery) of store.
func NewEvalView(store *annostore.Store, role dataset.Role, decoder Decoder) (*EvalView, error) {
	if role != dataset.RoleQuery && role != dataset.RoleGallery {
		return nil, fmt.Errorf("eval view: role must be query or gallery, got %q", role)
	}
	base, err := newView(store, role, decoder)
	if err != nil {
		return nil, err
	}
	return &EvalView{view: base}, nil
}

// At returns the decoded image, identity id, and image path at position i.
func (v *EvalView) At(i int) (image.Image, string, string, error) {
	row, img, err := v.at(i)
	if err != nil {
		return nil, "", "", err
	}
	return img, row.IdentityID, row.ImagePath, nil
}
