package brand

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	wordmarkSize    = 120
	wordmarkPadding = 4
)

// LoadLogo opens a logo image file, honouring EXIF orientation.
func LoadLogo(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open logo: %w", err)
	}
	return img, nil
}

// Wordmark renders label in the given font and colour on a transparent
// background cropped to the ink bounds. It stands in for a logo file.
func Wordmark(fm *FontManager, label string, c color.Color) (*image.NRGBA, error) {
	if strings.TrimSpace(label) == "" {
		return nil, fmt.Errorf("wordmark label is empty")
	}

	face, err := fm.Face(wordmarkSize)
	if err != nil {
		return nil, err
	}

	bounds, _ := font.BoundString(face, label)
	w := (bounds.Max.X - bounds.Min.X).Ceil() + 2*wordmarkPadding
	h := (bounds.Max.Y - bounds.Min.Y).Ceil() + 2*wordmarkPadding
	if w <= 2*wordmarkPadding || h <= 2*wordmarkPadding {
		return nil, fmt.Errorf("wordmark %q has no visible glyphs", label)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(wordmarkPadding) - bounds.Min.X,
			Y: fixed.I(wordmarkPadding) - bounds.Min.Y,
		},
	}
	d.DrawString(label)
	return img, nil
}
