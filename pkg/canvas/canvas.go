// Package canvas normalizes arbitrary background images to the og image size.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/binxio/og-image-generator/pkg/log"
)

// Output dimensions of every og image.
const (
	Width  = 1200
	Height = 630
)

// CropMode selects which rows survive when a scaled image is too tall.
type CropMode int

const (
	CropCenter CropMode = iota // keep the middle rows
	CropSmart                  // keep the most interesting rows
)

// ParseCropMode maps "center" and "smart" to a CropMode.
func ParseCropMode(s string) (CropMode, error) {
	switch strings.ToLower(s) {
	case "", "center", "centre":
		return CropCenter, nil
	case "smart":
		return CropSmart, nil
	default:
		return CropCenter, fmt.Errorf("invalid crop mode %q: use center or smart", s)
	}
}

func (m CropMode) String() string {
	if m == CropSmart {
		return "smart"
	}
	return "center"
}

// Open decodes an image file, applying its EXIF orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}

// Normalize returns img scaled to Width and then cropped or padded to Height.
// The result always carries an alpha channel. Zero-sized input is not checked.
func Normalize(img image.Image, mode CropMode) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var out *image.NRGBA
	if w != Width {
		newH := h * Width / w
		log.Printf("resizing %dx%d to %dx%d", w, h, Width, newH)
		out = imaging.Resize(img, Width, newH, imaging.Lanczos)
	} else {
		out = imaging.Clone(img)
	}
	h = out.Bounds().Dy()

	switch {
	case h > Height:
		log.Printf("cropping to maximum height of %dpx", Height)
		out = crop(out, mode)
	case h < Height:
		log.Printf("padding %dx%d to %dx%d, ratio match %d%%",
			Width, h, Width, Height, int(float64(Width)/float64(h)/(float64(Width)/float64(Height))*100))
		out = pad(out)
	}
	return out
}

// CropTop is the first row kept by a centre crop of an image h rows tall.
func CropTop(h int) int {
	return (h - Height) / 2
}

// PadTop is the row a short image of height h is pasted at.
func PadTop(h int) int {
	return (Height - h) / 2
}

func crop(img *image.NRGBA, mode CropMode) *image.NRGBA {
	top := CropTop(img.Bounds().Dy())
	if mode == CropSmart {
		if r, err := smartWindow(img); err != nil {
			log.Warnf("smart crop failed, using center crop: %v", err)
		} else {
			top = r
		}
	}
	return imaging.Crop(img, image.Rect(0, top, Width, top+Height))
}

func pad(img *image.NRGBA) *image.NRGBA {
	bg := imaging.New(Width, Height, color.NRGBA{})
	return imaging.Paste(bg, img, image.Pt(0, PadTop(img.Bounds().Dy())))
}

// smartWindow asks smartcrop for the best Width×Height window and returns
// its top row, clamped to the image.
func smartWindow(img *image.NRGBA) (int, error) {
	analyzer := smartcrop.NewAnalyzer(resizer{})
	r, err := analyzer.FindBestCrop(img, Width, Height)
	if err != nil {
		return 0, fmt.Errorf("finding best crop: %w", err)
	}

	// The image is already Width wide, so only the vertical centre of the
	// suggested window matters.
	mid := (r.Min.Y + r.Max.Y) / 2
	top := mid - Height/2
	top = max(top, 0)
	top = min(top, img.Bounds().Dy()-Height)
	log.Debugf("smart crop window %v, top row %d", r, top)
	return top, nil
}

// resizer implements the smartcrop resizer with imaging.
type resizer struct{}

func (resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), imaging.Box)
}
