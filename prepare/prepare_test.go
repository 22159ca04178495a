package prepare

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaos-io/cutout/policy"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, gradient(w, h)))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, gradient(w, h), &jpeg.Options{Quality: 95}))
	return buf.Bytes()
}

func TestTargetSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{name: "small kept", w: 640, h: 480, wantW: 640, wantH: 480},
		{name: "exact box kept", w: 800, h: 600, wantW: 800, wantH: 600},
		{name: "wide width bound", w: 2000, h: 1000, wantW: 800, wantH: 400},
		{name: "tall height bound", w: 1000, h: 2000, wantW: 300, wantH: 600},
		{name: "4:3 oversized", w: 1600, h: 1200, wantW: 800, wantH: 600},
		{name: "only height over", w: 700, h: 900, wantW: 467, wantH: 600},
		{name: "only width over", w: 1000, h: 100, wantW: 800, wantH: 80},
		{name: "extreme strip", w: 10000, h: 1, wantW: 800, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotW, gotH := TargetSize(tt.w, tt.h, MaxWidth, MaxHeight)
			assert.Equal(t, tt.wantW, gotW)
			assert.Equal(t, tt.wantH, gotH)
		})
	}
}

func TestTargetSizeKeepsAspectRatio(t *testing.T) {
	t.Parallel()

	for w := 801; w < 5000; w += 373 {
		for h := 601; h < 5000; h += 419 {
			gotW, gotH := TargetSize(w, h, MaxWidth, MaxHeight)
			require.LessOrEqual(t, gotW, MaxWidth)
			require.LessOrEqual(t, gotH, MaxHeight)

			// The free side must match the aspect ratio to within one pixel.
			aspect := float64(w) / float64(h)
			if gotW == MaxWidth {
				assert.InDelta(t, float64(MaxWidth)/aspect, float64(gotH), 1, "%dx%d", w, h)
			} else {
				assert.InDelta(t, float64(MaxHeight)*aspect, float64(gotW), 1, "%dx%d", w, h)
			}
		}
	}
}

func TestPreparer_Prepare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		data         []byte
		mediaType    string
		wantFilename string
		wantW, wantH int
	}{
		{name: "small png kept", data: pngBytes(t, 320, 200), mediaType: policy.MediaTypePNG, wantFilename: "upload.png", wantW: 320, wantH: 200},
		{name: "large png downscaled", data: pngBytes(t, 2000, 1000), mediaType: policy.MediaTypePNG, wantFilename: "upload.png", wantW: 800, wantH: 400},
		{name: "large jpeg downscaled", data: jpegBytes(t, 1200, 1800), mediaType: policy.MediaTypeJPEG, wantFilename: "upload.jpg", wantW: 400, wantH: 600},
		{name: "small jpeg kept", data: jpegBytes(t, 100, 100), mediaType: policy.MediaTypeJPEG, wantFilename: "upload.jpg", wantW: 100, wantH: 100},
	}

	p := NewPreparer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := p.Prepare(NewSelectedImage("photo", tt.data, tt.mediaType))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFilename, got.Filename)
			assert.Equal(t, tt.mediaType, got.MediaType)
			assert.Equal(t, tt.wantW, got.Width)
			assert.Equal(t, tt.wantH, got.Height)

			// The encoded bytes are a real image of the reported size and type.
			size, err := Bounds(got.Data)
			require.NoError(t, err)
			assert.Equal(t, image.Pt(tt.wantW, tt.wantH), size)
			assert.Equal(t, tt.mediaType, policy.Sniff(got.Data))
		})
	}
}

func TestPreparer_PrepareRejectsUndecodable(t *testing.T) {
	t.Parallel()

	_, err := NewPreparer().Prepare(NewSelectedImage("broken.png", []byte("\x89PNG garbage"), policy.MediaTypePNG))
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "decode", decodeErr.Stage)
}

func TestResamplers(t *testing.T) {
	t.Parallel()

	src := gradient(1000, 500)
	for name, r := range map[string]Resampler{
		"bilinear": ResamplerByName("bilinear"),
		"approx":   ResamplerByName("approx"),
		"unknown":  ResamplerByName("lanczos9000"),
	} {
		out := r(src, 500, 250)
		assert.Equal(t, image.Rect(0, 0, 500, 250), out.Bounds(), name)

		// A horizontal gradient stays monotonic after a downscale.
		left, _, _, _ := out.At(10, 100).RGBA()
		right, _, _, _ := out.At(100, 100).RGBA()
		assert.Less(t, left, right, name)
	}
}

func TestNewSelectedImage(t *testing.T) {
	t.Parallel()

	img := NewSelectedImage("a.png", []byte{1, 2, 3}, policy.MediaTypePNG)
	assert.Equal(t, int64(3), img.Size)
	assert.Equal(t, "a.png", img.Name)
}
