package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the filesystem locations the toolkit works with.
type Paths struct {
	// DataRoot is the dataset root holding the fixed source subdirectory
	// layout (bounding_box_train/, bounding_box_test/, query/).
	DataRoot string `toml:"data_root"`
	// AnnotationDir receives the persisted annotation files.
	AnnotationDir string `toml:"annotation_dir"`
	// CatalogPath is the SQLite build-run catalog location.
	CatalogPath string `toml:"catalog_path"`
}

// Dataset contains the source tree layout beneath the data root.
type Dataset struct {
	TrainSubdir   string `toml:"train_subdir"`
	GallerySubdir string `toml:"gallery_subdir"`
	QuerySubdir   string `toml:"query_subdir"`
}

// Imaging contains decode-time settings for partition views.
type Imaging struct {
	// Side is the square edge images are resized to; 0 keeps the source
	// width as the edge.
	Side int `toml:"side"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for reidset.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Dataset Dataset `toml:"dataset"`
	Imaging Imaging `toml:"imaging"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reidset/config.toml")
}

// Load locates, parses, and validates a configuration file. An empty path
// falls back to the default location; a missing file yields defaults. The
// returned config has all path fields expanded and normalized.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolvedPath, nil
}

// TrainDir returns the absolute train source directory.
func (c *Config) TrainDir() string {
	return filepath.Join(c.Paths.DataRoot, c.Dataset.TrainSubdir)
}

// GalleryDir returns the absolute gallery source directory.
func (c *Config) GalleryDir() string {
	return filepath.Join(c.Paths.DataRoot, c.Dataset.GallerySubdir)
}

// QueryDir returns the absolute query source directory.
func (c *Config) QueryDir() string {
	return filepath.Join(c.Paths.DataRoot, c.Dataset.QuerySubdir)
}

// TrainAnnotationPath returns the default train annotation file location.
func (c *Config) TrainAnnotationPath() string {
	return filepath.Join(c.Paths.AnnotationDir, "anno_train.csv")
}

// EvalAnnotationPath returns the default evaluation annotation file
// location.
func (c *Config) EvalAnnotationPath() string {
	return filepath.Join(c.Paths.AnnotationDir, "anno_test.csv")
}

// EnsureDirectories creates the output directories the toolkit writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.AnnotationDir, filepath.Dir(c.Paths.CatalogPath)} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataRoot, err = expandPath(c.Paths.DataRoot); err != nil {
		return fmt.Errorf("paths.data_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.AnnotationDir) == "" {
		c.Paths.AnnotationDir = defaultAnnotationDir
	}
	if c.Paths.AnnotationDir, err = expandPath(c.Paths.AnnotationDir); err != nil {
		return fmt.Errorf("paths.annotation_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CatalogPath) == "" {
		c.Paths.CatalogPath = defaultCatalogPath
	}
	if c.Paths.CatalogPath, err = expandPath(c.Paths.CatalogPath); err != nil {
		return fmt.Errorf("paths.catalog_path: %w", err)
	}

	if strings.TrimSpace(c.Dataset.TrainSubdir) == "" {
		c.Dataset.TrainSubdir = defaultTrainSubdir
	}
	if strings.TrimSpace(c.Dataset.GallerySubdir) == "" {
		c.Dataset.GallerySubdir = defaultGallerySubdir
	}
	if strings.TrimSpace(c.Dataset.QuerySubdir) == "" {
		c.Dataset.QuerySubdir = defaultQuerySubdir
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other
// packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified
// location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
