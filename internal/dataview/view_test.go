package dataview_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reidset/internal/annostore"
	"reidset/internal/dataset"
	"reidset/internal/dataview"
	"reidset/internal/imaging"
	"reidset/internal/testsupport"
)

func buildStore(t *testing.T, dir string, role dataset.Role, names ...string) *annostore.Store {
	t.Helper()
	testsupport.WriteImageDir(t, dir, names...)
	records, err := dataset.NewCollector(nil).Collect(dir, role)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	dataset.AssignClassIndexes(records)
	return annostore.Build(records)
}

func TestTrainViewResolvesImageAndClass(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "train")
	store := buildStore(t, dir, dataset.RoleTrain,
		"0002_c1s1_000451_03.jpg",
		"0002_c1s1_000551_04.jpg",
		"0007_c2s1_000011_01.jpg",
	)

	view, err := dataview.NewTrainView(store, imaging.FileDecoder{})
	if err != nil {
		t.Fatalf("NewTrainView failed: %v", err)
	}
	if view.Len() != 3 {
		t.Fatalf("unexpected length: %d", view.Len())
	}

	wantClasses := []int{0, 0, 1}
	for i, want := range wantClasses {
		img, class, err := view.At(i)
		if err != nil {
			t.Fatalf("At(%d) failed: %v", i, err)
		}
		if img == nil {
			t.Fatalf("At(%d): nil image", i)
		}
		if class != want {
			t.Fatalf("At(%d): got class %d, want %d", i, class, want)
		}
	}

	if _, _, err := view.At(3); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestEvalViewResolvesIdentityAndPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "query")
	store := buildStore(t, dir, dataset.RoleQuery, "0003_c1s1_000151_01.jpg")

	view, err := dataview.NewEvalView(store, dataset.RoleQuery, imaging.FileDecoder{})
	if err != nil {
		t.Fatalf("NewEvalView failed: %v", err)
	}
	if view.Len() != 1 {
		t.Fatalf("unexpected length: %d", view.Len())
	}

	img, identity, path, err := view.At(0)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if img == nil || identity != "0003" {
		t.Fatalf("unexpected element: identity=%q", identity)
	}
	if path != filepath.Join(dir, "0003_c1s1_000151_01.jpg") {
		t.Fatalf("unexpected path: %q", path)
	}
}

func TestEvalViewRejectsTrainRole(t *testing.T) {
	store := annostore.Build(nil)
	if _, err := dataview.NewEvalView(store, dataset.RoleTrain, imaging.FileDecoder{}); err == nil {
		t.Fatal("expected role rejection")
	}
}

func TestViewMissingImageIsFatal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "train")
	store := buildStore(t, dir, dataset.RoleTrain, "0002_c1s1_000451_03.jpg")

	if err := os.Remove(filepath.Join(dir, "0002_c1s1_000451_03.jpg")); err != nil {
		t.Fatal(err)
	}

	if _, err := dataview.NewTrainView(store, imaging.FileDecoder{}); !errors.Is(err, dataset.ErrPrecondition) {
		t.Fatalf("want ErrPrecondition, got %v", err)
	}
}

func TestTrainViewRequiresClassIndexes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "train")
	testsupport.WriteImageDir(t, dir, "0002_c1s1_000451_03.jpg")
	records, err := dataset.NewCollector(nil).Collect(dir, dataset.RoleTrain)
	if err != nil {
		t.Fatal(err)
	}
	// Indexer deliberately not run.
	store := annostore.Build(records)

	if _, err := dataview.NewTrainView(store, imaging.FileDecoder{}); !errors.Is(err, dataset.ErrPrecondition) {
		t.Fatalf("want ErrPrecondition, got %v", err)
	}
}

func TestEmptyRoleYieldsEmptyView(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "train")
	store := buildStore(t, dir, dataset.RoleTrain, "0002_c1s1_000451_03.jpg")

	view, err := dataview.NewEvalView(store, dataset.RoleGallery, imaging.FileDecoder{})
	if err != nil {
		t.Fatalf("NewEvalView failed: %v", err)
	}
	if view.Len() != 0 {
		t.Fatalf("expected empty view, got length %d", view.Len())
	}
}
