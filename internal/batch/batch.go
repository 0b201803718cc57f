// Package batch wraps partition views in fixed-size batched iteration for
// training and evaluation consumers. Batch size and shuffle policy are
// configuration; loaders never mutate the underlying view.
package batch

import (
	"math/rand"

	"reidset/internal/dataview"
	"reidset/internal/imaging"
)

// Options configures a loader.
type Options struct {
	// Size is the batch size; values below 1 are treated as 1. The final
	// batch may be short.
	Size int
	// Shuffle randomizes element order on every Reset.
	Shuffle bool
	// Seed seeds the shuffle and augmentation source so runs are
	// reproducible.
	Seed int64
	// Flip enables random horizontal flip augmentation (train loaders).
	Flip bool
	// Mean and Std override the normalization statistics; zero values fall
	// back to the ImageNet defaults.
	Mean [3]float32
	Std  [3]float32
}

func (o Options) normalized() Options {
	if o.Size < 1 {
		o.Size = 1
	}
	if o.Mean == ([3]float32{}) {
		o.Mean = imaging.DefaultMean
	}
	if o.Std == ([3]float32{}) {
		o.Std = imaging.DefaultStd
	}
	return o
}

// TrainBatch is one batch of normalized tensors with aligned class
// indexes.
type TrainBatch struct {
	Tensors []imaging.Tensor
	Classes []int
}

// TrainLoader iterates a train view in batches.
type TrainLoader struct {
	view *dataview.TrainView
	opts Options
	rng  *rand.Rand
	ord  []int
	pos  int
}

// NewTrainLoader wraps view with the given options.
func NewTrainLoader(view *dataview.TrainView, opts Options) *TrainLoader {
	l := &TrainLoader{view: view, opts: opts.normalized()}
	l.Reset()
	return l
}

// Reset rewinds the loader and reshuffles when shuffling is enabled.
func (l *TrainLoader) Reset() {
	l.rng = rand.New(rand.NewSource(l.opts.Seed))
	l.ord = order(l.view.Len(), l.opts.Shuffle, l.rng)
	l.pos = 0
}

// Next returns the next batch. The boolean is false once the view is
// exhausted.
func (l *TrainLoader) Next() (TrainBatch, bool, error) {
	if l.pos >= len(l.ord) {
		return TrainBatch{}, false, nil
	}
	end := min(l.pos+l.opts.Size, len(l.ord))
	b := TrainBatch{
		Tensors: make([]imaging.Tensor, 0, end-l.pos),
		Classes: make([]int, 0, end-l.pos),
	}
	for _, i := range l.ord[l.pos:end] {
		img, class, err := l.view.At(i)
		if err != nil {
			return TrainBatch{}, false, err
		}
		if l.opts.Flip && l.rng.Float64() < 0.5 {
			img = imaging.FlipHorizontal(img)
		}
		b.Tensors = append(b.Tensors, imaging.ToTensor(img, l.opts.Mean, l.opts.Std))
		b.Classes = append(b.Classes, class)
	}
	l.pos = end
	return b, true, nil
}

// EvalBatch is one batch of normalized tensors with aligned identity ids
// and source paths.
type EvalBatch struct {
	Tensors    []imaging.Tensor
	Identities []string
	Paths      []string
}

// EvalLoader iterates a query or gallery view in batches.
type EvalLoader struct {
	view *dataview.EvalView
	opts Options
	rng  *rand.Rand
	ord  []int
	pos  int
}

// NewEvalLoader wraps view with the given options. Flip is ignored for
// evaluation.
func NewEvalLoader(view *dataview.EvalView, opts Options) *EvalLoader {
	opts.Flip = false
	l := &EvalLoader{view: view, opts: opts.normalized()}
	l.Reset()
	return l
}

// Reset rewinds the loader and reshuffles when shuffling is enabled.
func (l *EvalLoader) Reset() {
	l.rng = rand.New(rand.NewSource(l.opts.Seed))
	l.ord = order(l.view.Len(), l.opts.Shuffle, l.rng)
	l.pos = 0
}

// Next returns the next batch. The boolean is false once the view is
// exhausted.
func (l *EvalLoader) Next() (EvalBatch, bool, error) {
	if l.pos >= len(l.ord) {
		return EvalBatch{}, false, nil
	}
	end := min(l.pos+l.opts.Size, len(l.ord))
	b := EvalBatch{
		Tensors:    make([]imaging.Tensor, 0, end-l.pos),
		Identities: make([]string, 0, end-l.pos),
		Paths:      make([]string, 0, end-l.pos),
	}
	for _, i := range l.ord[l.pos:end] {
		img, identity, path, err := l.view.At(i)
		if err != nil {
			return EvalBatch{}, false, err
		}
		b.Tensors = append(b.Tensors, imaging.ToTensor(img, l.opts.Mean, l.opts.Std))
		b.Identities = append(b.Identities, identity)
		b.Paths = append(b.Paths, path)
	}
	l.pos = end
	return b, true, nil
}

func order(n int, shuffle bool, rng *rand.Rand) []int {
	ord := make([]int, n)
	for i := range ord {
		ord[i] = i
	}
	if shuffle {
		rng.Shuffle(n, func(i, j int) {
			ord[i], ord[j] = ord[j], ord[i]
		})
	}
	return ord
}
