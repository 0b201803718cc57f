package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Dataset.TrainSubdir != "bounding_box_train" {
		t.Fatalf("unexpected train subdir: %q", cfg.Dataset.TrainSubdir)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if !filepath.IsAbs(cfg.Paths.AnnotationDir) {
		t.Fatalf("annotation dir not expanded: %q", cfg.Paths.AnnotationDir)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_root = "` + dir + `/market"
annotation_dir = "` + dir + `/annos"
catalog_path = "` + dir + `/catalog.db"

[imaging]
side = 64

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Imaging.Side != 64 {
		t.Fatalf("imaging side not parsed: %d", cfg.Imaging.Side)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not lowercased: %+v", cfg.Logging)
	}
	if cfg.TrainDir() != filepath.Join(dir, "market", "bounding_box_train") {
		t.Fatalf("unexpected train dir: %q", cfg.TrainDir())
	}
	if filepath.Base(cfg.TrainAnnotationPath()) != "anno_train.csv" {
		t.Fatalf("unexpected train annotation path: %q", cfg.TrainAnnotationPath())
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bad log format")
	}

	cfg = Default()
	cfg.Logging.Level = "trace"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bad log level")
	}

	cfg = Default()
	cfg.Imaging.Side = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative side")
	}

	cfg = Default()
	cfg.Dataset.QuerySubdir = cfg.Dataset.TrainSubdir
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for colliding subdirs")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Fatal("sample config missing paths section")
	}

	// The sample must itself parse and validate.
	if _, _, err := Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/x")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "x") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
