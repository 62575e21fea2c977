package gallery

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Info is an image's header metadata.
type Info struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Thumb is a decoded image scaled to fit a bound.
type Thumb struct {
	Image  image.Image
	Format string
	Width  int
	Height int
	// Source is the original size.
	Source image.Point
}

// PNG encodes the thumbnail.
func (t *Thumb) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, t.Image); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func openImage(path string) (*os.File, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from a directory listing.
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrImageNotFound, path)
		}
		return nil, fmt.Errorf("opening image: %w", err)
	}
	return f, nil
}

// Inspect reads the image header without decoding pixels.
func Inspect(path string) (Info, error) {
	f, err := openImage(path)
	if err != nil {
		return Info{}, err
	}
	defer func() {
		_ = f.Close()
	}()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("reading image header: %w", err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// FitSize scales w x h down to fit inside maxW x maxH keeping the aspect
// ratio. Sizes already inside the bound are returned unchanged.
//
//nolint:nonamedreturns // Named returns document the result order.
func FitSize(w, h, maxW, maxH int) (width, height int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	width = clamp(int(math.Round(float64(w)*scale)), 1, maxW)
	height = clamp(int(math.Round(float64(h)*scale)), 1, maxH)
	return width, height
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Scale returns src resized to w x h.
func Scale(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Thumbnail decodes the image at path and scales it down to fit inside
// maxW x maxH. Images are never scaled up.
func Thumbnail(path string, maxW, maxH int) (*Thumb, error) {
	if maxW <= 0 || maxH <= 0 {
		return nil, fmt.Errorf("invalid thumbnail bound %dx%d", maxW, maxH)
	}

	f, err := openImage(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	b := src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	return &Thumb{
		Image:  Scale(src, w, h),
		Format: format,
		Width:  w,
		Height: h,
		Source: image.Pt(b.Dx(), b.Dy()),
	}, nil
}
