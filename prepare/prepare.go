package prepare

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/chaos-io/cutout/policy"
)

const (
	MaxWidth    = 800
	MaxHeight   = 600
	JPEGQuality = 90
)

// SelectedImage is the raw file the user picked. A new selection replaces it.
type SelectedImage struct {
	Name      string
	Data      []byte
	MediaType string
	Size      int64
}

func NewSelectedImage(name string, data []byte, mediaType string) SelectedImage {
	return SelectedImage{
		Name:      name,
		Data:      data,
		MediaType: mediaType,
		Size:      int64(len(data)),
	}
}

// PreparedUpload is the re-encoded image ready to post. It is built per submission.
type PreparedUpload struct {
	Filename  string
	MediaType string
	Data      []byte
	Width     int
	Height    int
}

// DecodeError reports that an image could not be decoded or re-encoded.
type DecodeError struct {
	Stage string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s image: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type Preparer struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
	Resample  Resampler
}

func NewPreparer() *Preparer {
	return &Preparer{
		MaxWidth:  MaxWidth,
		MaxHeight: MaxHeight,
		Quality:   JPEGQuality,
		Resample:  ResizeBilinear,
	}
}

// Prepare turns a selected image into an upload:
//
//	decode (EXIF orientation applied)
//	downscale into the bounding box, aspect ratio kept
//	re-encode in the original media type
//	name it upload.png or upload.jpg
func (p *Preparer) Prepare(img SelectedImage) (*PreparedUpload, error) {
	src, err := imaging.Decode(bytes.NewReader(img.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Stage: "decode", Err: err}
	}

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tw, th := TargetSize(w, h, p.MaxWidth, p.MaxHeight)

	out := src
	if tw != w || th != h {
		resample := p.Resample
		if resample == nil {
			resample = ResizeBilinear
		}
		out = resample(src, tw, th)
	}

	format, filename := imaging.JPEG, "upload.jpg"
	if img.MediaType == policy.MediaTypePNG {
		format, filename = imaging.PNG, "upload.png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, format, imaging.JPEGQuality(p.Quality)); err != nil {
		return nil, &DecodeError{Stage: "encode", Err: err}
	}

	mediaType := img.MediaType
	if mediaType != policy.MediaTypePNG {
		mediaType = policy.MediaTypeJPEG
	}

	return &PreparedUpload{
		Filename:  filename,
		MediaType: mediaType,
		Data:      buf.Bytes(),
		Width:     out.Bounds().Dx(),
		Height:    out.Bounds().Dy(),
	}, nil
}

// TargetSize fits w×h inside maxW×maxH keeping the aspect ratio.
// Images already inside the box are returned unchanged; nothing is upscaled.
func TargetSize(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	aspect := float64(w) / float64(h)
	if float64(w)/float64(maxW) > float64(h)/float64(maxH) {
		return maxW, max(1, int(math.Round(float64(maxW)/aspect)))
	}
	return max(1, int(math.Round(float64(maxH)*aspect))), maxH
}

// Bounds returns the pixel size of encoded image data without a full decode.
func Bounds(data []byte) (image.Point, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(cfg.Width, cfg.Height), nil
}
