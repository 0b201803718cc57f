package config

const (
	defaultAnnotationDir = "~/.local/share/reidset/annos"
	defaultCatalogPath   = "~/.local/share/reidset/catalog.db"
	defaultTrainSubdir   = "bounding_box_train"
	defaultGallerySubdir = "bounding_box_test"
	defaultQuerySubdir   = "query"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AnnotationDir: defaultAnnotationDir,
			CatalogPath:   defaultCatalogPath,
		},
		Dataset: Dataset{
			TrainSubdir:   defaultTrainSubdir,
			GallerySubdir: defaultGallerySubdir,
			QuerySubdir:   defaultQuerySubdir,
		},
		Imaging: Imaging{
			Side: 0,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
