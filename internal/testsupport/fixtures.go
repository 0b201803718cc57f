// Package testsupport provides shared fixtures for annotation pipeline
// tests: miniature dataset trees populated with real decodable images.
package testsupport

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// WriteImage writes a small decodable PNG to path. The extension may be
// .jpg or .jpeg; image decoding sniffs content, not the name.
func WriteImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(40 * x), G: uint8(40 * y), B: 90, A: 255})
		}
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create image %s: %v", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encode image %s: %v", path, err)
	}
}

// WriteImageDir creates dir and fills it with one image per name.
func WriteImageDir(t *testing.T, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create dir %s: %v", dir, err)
	}
	for _, name := range names {
		WriteImage(t, filepath.Join(dir, name))
	}
}

// SourceRoot lays out a miniature dataset tree in a temp directory with
// the fixed subdirectory layout the build commands scan.
func SourceRoot(t *testing.T, train, gallery, query []string) string {
	t.Helper()
	root := t.TempDir()
	WriteImageDir(t, filepath.Join(root, "bounding_box_train"), train...)
	WriteImageDir(t, filepath.Join(root, "bounding_box_test"), gallery...)
	WriteImageDir(t, filepath.Join(root, "query"), query...)
	return root
}
