package imaging

import "image"

// ImageNet channel statistics used to normalize pixel values, matching
// the reference training setup for this dataset.
var (
	DefaultMean = [3]float32{0.485, 0.456, 0.406}
	DefaultStd  = [3]float32{0.229, 0.224, 0.225}
)

// Tensor is a fixed-size rectangular pixel tensor in CHW layout with
// values normalized per channel.
type Tensor struct {
	Data []float32
	C    int
	H    int
	W    int
}

// At returns the value at channel c, row y, column x.
func (t Tensor) At(c, y, x int) float32 {
	return t.Data[c*t.H*t.W+y*t.W+x]
}

// ToTensor converts img to a normalized 3-channel CHW tensor:
// value = (pixel/255 - mean[c]) / std[c].
func ToTensor(img image.Image, mean, std [3]float32) Tensor {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	t := Tensor{Data: make([]float32, 3*h*w), C: 3, H: h, W: w}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			channels := [3]float32{
				float32(r>>8) / 255,
				float32(g>>8) / 255,
				float32(b>>8) / 255,
			}
			for c := 0; c < 3; c++ {
				t.Data[c*h*w+y*w+x] = (channels[c] - mean[c]) / std[c]
			}
		}
	}
	return t
}
