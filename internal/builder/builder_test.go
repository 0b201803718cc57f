package builder_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reidset/internal/annostore"
	"reidset/internal/builder"
	"reidset/internal/config"
	"reidset/internal/dataset"
	"reidset/internal/testsupport"
)

func newBuilder(t *testing.T) *builder.Builder {
	t.Helper()
	cfg := config.Default()
	return builder.New(&cfg, nil, nil)
}

func TestBuildTrain(t *testing.T) {
	root := testsupport.SourceRoot(t,
		[]string{"0002_c1s1_000451_03.jpg", "0002_c1s1_000551_04.jpg", "0007_c2s1_000011_01.jpg"},
		nil, nil,
	)
	out := filepath.Join(t.TempDir(), "anno_train.csv")

	result, err := newBuilder(t).BuildTrain(root, out)
	if err != nil {
		t.Fatalf("BuildTrain failed: %v", err)
	}
	if result.Counts[dataset.RoleTrain] != 3 {
		t.Fatalf("unexpected train count: %d", result.Counts[dataset.RoleTrain])
	}
	if result.Identities != 2 {
		t.Fatalf("unexpected identity count: %d", result.Identities)
	}
	if result.Checksum == "" {
		t.Fatal("expected artifact checksum")
	}

	store, err := annostore.Load(out)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	rows := store.Filter(dataset.RoleTrain)
	if len(rows) != 3 {
		t.Fatalf("unexpected persisted rows: %d", len(rows))
	}
	wantIndexes := []int{0, 0, 1}
	for i, row := range rows {
		if !row.Class.Valid || row.Class.Index != wantIndexes[i] {
			t.Fatalf("row %d: unexpected class %+v", i, row.Class)
		}
	}
}

func TestBuildEvalOrdersGalleryFirst(t *testing.T) {
	root := testsupport.SourceRoot(t,
		nil,
		[]string{"0003_c3s2_000077_02.jpg"},
		[]string{"0003_c1s1_000151_01.jpg"},
	)
	out := filepath.Join(t.TempDir(), "anno_test.csv")

	result, err := newBuilder(t).BuildEval(root, out)
	if err != nil {
		t.Fatalf("BuildEval failed: %v", err)
	}
	if result.Counts[dataset.RoleGallery] != 1 || result.Counts[dataset.RoleQuery] != 1 {
		t.Fatalf("unexpected counts: %v", result.Counts)
	}

	store, err := annostore.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	rows := store.Rows()
	if rows[0].Role != dataset.RoleGallery || rows[1].Role != dataset.RoleQuery {
		t.Fatalf("gallery rows must precede query rows: %v, %v", rows[0].Role, rows[1].Role)
	}
	if rows[0].Class.Valid || rows[1].Class.Valid {
		t.Fatal("eval rows must not carry class indexes")
	}
}

func TestBuildDeterministic(t *testing.T) {
	root := testsupport.SourceRoot(t,
		[]string{"0002_c1s1_000451_03.jpg", "0007_c2s1_000011_01.jpg"},
		nil, nil,
	)
	dir := t.TempDir()
	first := filepath.Join(dir, "a.csv")
	second := filepath.Join(dir, "b.csv")

	b := newBuilder(t)
	if _, err := b.BuildTrain(root, first); err != nil {
		t.Fatal(err)
	}
	if _, err := b.BuildTrain(root, second); err != nil {
		t.Fatal(err)
	}

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	c, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, c) {
		t.Fatal("builds over an unchanged directory must be byte-identical")
	}
}

func TestBuildTrainMissingSource(t *testing.T) {
	out := filepath.Join(t.TempDir(), "anno.csv")
	_, err := newBuilder(t).BuildTrain(filepath.Join(t.TempDir(), "absent"), out)
	if !errors.Is(err, dataset.ErrSourceNotFound) {
		t.Fatalf("want ErrSourceNotFound, got %v", err)
	}
}

func TestBuildTrainEmptySource(t *testing.T) {
	root := testsupport.SourceRoot(t, nil, nil, nil)
	out := filepath.Join(t.TempDir(), "anno.csv")

	result, err := newBuilder(t).BuildTrain(root, out)
	if err != nil {
		t.Fatalf("empty partitions are valid: %v", err)
	}
	if result.Counts[dataset.RoleTrain] != 0 || result.Identities != 0 {
		t.Fatalf("unexpected result for empty source: %+v", result)
	}
}
