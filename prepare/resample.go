package prepare

import (
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Resampler renders img at exactly w×h in a single pass.
type Resampler func(img image.Image, w, h int) image.Image

// ResizeBilinear uses nfnt/resize.
func ResizeBilinear(img image.Image, w, h int) image.Image {
	return resize.Resize(uint(w), uint(h), img, resize.Bilinear)
}

// ScaleApproxBiLinear uses x/image/draw, which is faster and slightly softer.
func ScaleApproxBiLinear(img image.Image, w, h int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), toNRGBA(img), img.Bounds(), draw.Src, nil)
	return dst
}

// ResamplerByName maps a config value to a Resampler; unknown names get bilinear.
func ResamplerByName(name string) Resampler {
	switch name {
	case "approx", "approx-bilinear":
		return ScaleApproxBiLinear
	default:
		return ResizeBilinear
	}
}

func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}
