package compose

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// GradientAlpha is the overlay opacity at column x of a canvas width pixels
// wide: floor(255 * (1 - m*x/width)), clamped to [0,255].
func GradientAlpha(x, width int, m float64) uint8 {
	a := math.Floor(255 * (1 - m*float64(x)/float64(width)))
	return uint8(max(0, min(255, a)))
}

// GradientMask returns a width×height alpha mask holding GradientAlpha for
// every column, identical on each row.
func GradientMask(width, height int, m float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return mask
	}

	row := mask.Pix[:width]
	for x := range row {
		row[x] = GradientAlpha(x, width, m)
	}
	for y := 1; y < height; y++ {
		copy(mask.Pix[y*mask.Stride:], row)
	}
	return mask
}

// ApplyGradient composites a layer of colour c, shaded by the gradient mask,
// over dst using straight-alpha src-over.
func ApplyGradient(dst *image.NRGBA, m float64, c color.NRGBA) {
	b := dst.Bounds()
	mask := GradientMask(b.Dx(), b.Dy(), m)
	draw.DrawMask(dst, b, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}
