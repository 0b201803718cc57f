// Package builder orchestrates annotation builds: collect source records,
// assign class indexes (train only), persist the annotation store, and
// report what was produced.
package builder

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"reidset/internal/annostore"
	"reidset/internal/config"
	"reidset/internal/dataset"
	"reidset/internal/fileutil"
)

// Result summarizes one completed annotation build.
type Result struct {
	Kind       string
	SourceRoot string
	OutputPath string
	Counts     map[dataset.Role]int
	Identities int
	Checksum   string
}

// Builder runs annotation builds against a fixed source tree layout.
type Builder struct {
	cfg    *config.Config
	logger *slog.Logger
	coll   *dataset.Collector
}

// New returns a builder. A nil lister scans the real filesystem.
func New(cfg *config.Config, logger *slog.Logger, lister dataset.Lister) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{cfg: cfg, logger: logger, coll: dataset.NewCollector(lister)}
}

// BuildTrain scans the train subdirectory beneath sourceRoot, assigns
// class indexes, and persists the train annotation file at outputPath.
func (b *Builder) BuildTrain(sourceRoot, outputPath string) (Result, error) {
	dir := filepath.Join(sourceRoot, b.cfg.Dataset.TrainSubdir)
	b.logger.Info("collecting train records", slog.String("dir", dir))

	records, err := b.coll.Collect(dir, dataset.RoleTrain)
	if err != nil {
		return Result{}, fmt.Errorf("build train annotation: %w", err)
	}
	classes := dataset.AssignClassIndexes(records)
	b.logger.Info("assigned class indexes",
		slog.Int("records", len(records)),
		slog.Int("identities", len(classes)))

	return b.finish("train", sourceRoot, outputPath, records, len(classes))
}

// BuildEval scans the gallery and query subdirectories beneath sourceRoot
// and persists the combined evaluation annotation file at outputPath.
// Gallery rows precede query rows, matching the reference layout.
func (b *Builder) BuildEval(sourceRoot, outputPath string) (Result, error) {
	galleryDir := filepath.Join(sourceRoot, b.cfg.Dataset.GallerySubdir)
	queryDir := filepath.Join(sourceRoot, b.cfg.Dataset.QuerySubdir)

	b.logger.Info("collecting gallery records", slog.String("dir", galleryDir))
	gallery, err := b.coll.Collect(galleryDir, dataset.RoleGallery)
	if err != nil {
		return Result{}, fmt.Errorf("build eval annotation: %w", err)
	}

	b.logger.Info("collecting query records", slog.String("dir", queryDir))
	query, err := b.coll.Collect(queryDir, dataset.RoleQuery)
	if err != nil {
		return Result{}, fmt.Errorf("build eval annotation: %w", err)
	}

	return b.finish("eval", sourceRoot, outputPath, append(gallery, query...), 0)
}

func (b *Builder) finish(kind, sourceRoot, outputPath string, records []dataset.Record, identities int) (Result, error) {
	store := annostore.Build(records)
	if err := store.Persist(outputPath); err != nil {
		return Result{}, fmt.Errorf("build %s annotation: %w", kind, err)
	}

	checksum, err := fileutil.SHA256File(outputPath)
	if err != nil {
		return Result{}, fmt.Errorf("checksum %s annotation: %w", kind, err)
	}

	result := Result{
		Kind:       kind,
		SourceRoot: sourceRoot,
		OutputPath: outputPath,
		Counts:     store.Counts(),
		Identities: identities,
		Checksum:   checksum,
	}
	b.logger.Info("annotation written",
		slog.String("kind", kind),
		slog.String("path", outputPath),
		slog.Int("rows", store.Len()))
	return result, nil
}
