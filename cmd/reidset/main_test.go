package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reidset/internal/testsupport"
)

// runCLI executes the root command with args and returns combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeTestConfig writes a config pointing every path into temp space and
// returns its path alongside the annotation dir.
func writeTestConfig(t *testing.T, dataRoot string) (configPath, annoDir string) {
	t.Helper()
	base := t.TempDir()
	annoDir = filepath.Join(base, "annos")
	configPath = filepath.Join(base, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`data_root = "` + dataRoot + `"`,
		`annotation_dir = "` + annoDir + `"`,
		`catalog_path = "` + filepath.Join(base, "catalog.db") + `"`,
		"",
	}, "\n")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath, annoDir
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestBuildTrainCommand(t *testing.T) {
	root := testsupport.SourceRoot(t,
		[]string{"0002_c1s1_000451_03.jpg", "0007_c2s1_000011_01.jpg"},
		nil, nil,
	)
	configPath, annoDir := writeTestConfig(t, root)

	out, err := runCLI(t, "--config", configPath, "build", "train")
	if err != nil {
		t.Fatalf("build train failed: %v\n%s", err, out)
	}
	requireContains(t, out, "Wrote train annotation")
	requireContains(t, out, "2 rows")
	requireContains(t, out, "2 distinct")

	if _, err := os.Stat(filepath.Join(annoDir, "anno_train.csv")); err != nil {
		t.Fatalf("annotation file missing: %v", err)
	}
}

func TestBuildEvalCommand(t *testing.T) {
	root := testsupport.SourceRoot(t,
		nil,
		[]string{"0003_c3s2_000077_02.jpg"},
		[]string{"0003_c1s1_000151_01.jpg"},
	)
	configPath, annoDir := writeTestConfig(t, root)

	out, err := runCLI(t, "--config", configPath, "build", "eval")
	if err != nil {
		t.Fatalf("build eval failed: %v\n%s", err, out)
	}
	requireContains(t, out, "Wrote eval annotation")

	if _, err := os.Stat(filepath.Join(annoDir, "anno_test.csv")); err != nil {
		t.Fatalf("annotation file missing: %v", err)
	}
}

func TestBuildTrainMissingRoot(t *testing.T) {
	configPath, _ := writeTestConfig(t, filepath.Join(t.TempDir(), "absent"))
	if _, err := runCLI(t, "--config", configPath, "build", "train"); err == nil {
		t.Fatal("expected failure for missing source directory")
	}
}

func TestShowCommand(t *testing.T) {
	root := testsupport.SourceRoot(t,
		[]string{"0002_c1s1_000451_03.jpg", "0002_c1s1_000551_04.jpg", "0007_c2s1_000011_01.jpg"},
		nil, nil,
	)
	configPath, annoDir := writeTestConfig(t, root)

	if out, err := runCLI(t, "--config", configPath, "build", "train"); err != nil {
		t.Fatalf("build train failed: %v\n%s", err, out)
	}

	out, err := runCLI(t, "--config", configPath, "show", filepath.Join(annoDir, "anno_train.csv"))
	if err != nil {
		t.Fatalf("show failed: %v\n%s", err, out)
	}
	requireContains(t, out, "train")
	requireContains(t, out, "Train classes: 2")
}

func TestRunsCommand(t *testing.T) {
	root := testsupport.SourceRoot(t, []string{"0002_c1s1_000451_03.jpg"}, nil, nil)
	configPath, _ := writeTestConfig(t, root)

	if out, err := runCLI(t, "--config", configPath, "runs"); err != nil {
		t.Fatalf("runs failed: %v\n%s", err, out)
	} else {
		requireContains(t, out, "No build runs recorded.")
	}

	if out, err := runCLI(t, "--config", configPath, "build", "train"); err != nil {
		t.Fatalf("build train failed: %v\n%s", err, out)
	}

	out, err := runCLI(t, "--config", configPath, "runs")
	if err != nil {
		t.Fatalf("runs failed: %v\n%s", err, out)
	}
	requireContains(t, out, "train")
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "--config", target, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out)
	}
	requireContains(t, out, "Wrote sample config")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config at %s: %v", target, err)
	}

	// Refuses to clobber without --force.
	if _, err := runCLI(t, "--config", target, "config", "init"); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if out, err := runCLI(t, "--config", target, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force failed: %v\n%s", err, out)
	}
}

func TestConfigShowCommand(t *testing.T) {
	configPath, _ := writeTestConfig(t, t.TempDir())
	out, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v\n%s", err, out)
	}
	requireContains(t, out, "[paths]")
	requireContains(t, out, "bounding_box_train")
}
