package compose

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/binxio/og-image-generator/pkg/brand"
)

// ScaleToWidth resizes img to width pixels wide, keeping its aspect ratio.
// The height is truncated, not rounded.
func ScaleToWidth(img image.Image, width int) *image.NRGBA {
	b := img.Bounds()
	h := int(float64(width) / float64(b.Dx()) * float64(b.Dy()))

	dst := image.NewNRGBA(image.Rect(0, 0, width, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// PasteLogo scales the logo to the placement width and composites it through
// its own alpha channel. It returns the rectangle covered.
func PasteLogo(dst draw.Image, logo image.Image, p brand.LogoPlacement) image.Rectangle {
	scaled := ScaleToWidth(logo, p.Width)
	size := scaled.Bounds().Size()

	x, y := p.X, p.Y
	if p.AlignRight {
		x -= size.X
	}
	if p.AnchorBottom {
		y -= size.Y
	}

	r := image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+size.X, y+size.Y)}
	draw.Draw(dst, r, scaled, image.Point{}, draw.Over)
	return r
}
