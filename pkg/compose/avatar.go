package compose

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"

	"github.com/binxio/og-image-generator/pkg/brand"
)

// kappa places cubic Bézier control points to approximate a quarter circle.
const kappa = 0.5522847498

// CircleMask returns a d×d anti-aliased disc.
func CircleMask(d int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, d, d))
	if d <= 0 {
		return mask
	}

	r := float32(d) / 2
	k := kappa * r
	cx, cy := r, r

	z := vector.NewRasterizer(d, d)
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// PasteAvatar fills the placement box with pic, centre-cropped to a square,
// and cuts it to a circle. The picture's own alpha is ignored.
func PasteAvatar(dst draw.Image, pic image.Image, p brand.AvatarPlacement) image.Rectangle {
	square := imaging.Fill(pic, p.Size, p.Size, imaging.Center, imaging.Lanczos)
	for i := 3; i < len(square.Pix); i += 4 {
		square.Pix[i] = 0xff
	}

	r := image.Rect(p.X, p.Y, p.X+p.Size, p.Y+p.Size)
	draw.DrawMask(dst, r, square, image.Point{}, CircleMask(p.Size), image.Point{}, draw.Over)
	return r
}
