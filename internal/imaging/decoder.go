package imaging

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"
)

// FileDecoder decodes an image file and resizes it to a square using
// nearest-neighbor sampling, mirroring the reference preprocessing for
// this dataset. With Side zero the square edge is the source image width.
type FileDecoder struct {
	Side int
}

// Decode reads and decodes the image at path.
func (d FileDecoder) Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	side := d.Side
	if side <= 0 {
		side = img.Bounds().Dx()
	}
	return ResizeNearest(img, side, side), nil
}

// ResizeNearest scales img to width x height with nearest-neighbor
// sampling.
func ResizeNearest(img image.Image, width, height int) image.Image {
	src := img.Bounds()
	if src.Dx() == width && src.Dy() == height {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcY := src.Min.Y + y*src.Dy()/height
		for x := 0; x < width; x++ {
			srcX := src.Min.X + x*src.Dx()/width
			dst.Set(x, y, img.At(srcX, srcY))
		}
	}
	return dst
}

// FlipHorizontal mirrors img around its vertical axis. Used as a training
// augmentation by the batch loader.
func FlipHorizontal(img image.Image) image.Image {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			dst.Set(x, y, img.At(bounds.Max.X-1-x, bounds.Min.Y+y))
		}
	}
	return dst
}
