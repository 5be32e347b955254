package compose

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/binxio/og-image-generator/pkg/brand"
)

// Wrap breaks text into lines of at most width characters (runes), greedily,
// at whitespace. Words longer than width are split, filling the current line
// first. Runs of whitespace collapse to one space. width <= 0 disables
// wrapping.
//
// Width counts characters, not pixels, so lines of wide glyphs can still
// overflow the canvas.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	var line []rune
	for _, w := range words {
		word := []rune(w)
		for len(word) > 0 {
			sep := 0
			if len(line) > 0 {
				sep = 1
			}

			if len(line)+sep+len(word) <= width {
				if sep == 1 {
					line = append(line, ' ')
				}
				line = append(line, word...)
				break
			}

			if len(word) > width {
				if space := width - len(line) - sep; space > 0 {
					if sep == 1 {
						line = append(line, ' ')
					}
					line = append(line, word[:space]...)
					word = word[space:]
				}
			}

			lines = append(lines, string(line))
			line = line[:0]
		}
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}

// SplitName puts the first name on one line and the rest on the next.
func SplitName(name string) []string {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return nil
	case 1:
		return fields
	default:
		return []string{fields[0], strings.Join(fields[1:], " ")}
	}
}

// LineHeight is the rendered height of s in face: the ascent plus however far
// the glyphs of s reach below the baseline. It is used as the line pitch.
func LineHeight(face font.Face, s string) int {
	bounds, _ := font.BoundString(face, s)
	descent := max(bounds.Max.Y, 0)
	return (face.Metrics().Ascent + descent).Ceil()
}

// TextWidth is the distance from the pen start to the right edge of the ink.
func TextWidth(face font.Face, s string) int {
	bounds, _ := font.BoundString(face, s)
	return bounds.Max.X.Ceil()
}

// DrawText sets text as described by block and returns the rectangle the
// lines occupy.
func DrawText(dst draw.Image, fm *brand.FontManager, block brand.TextBlock, c color.Color, text string) (image.Rectangle, error) {
	face, err := fm.Face(block.Size)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("font face: %w", err)
	}

	var lines []string
	if block.SplitName {
		lines = SplitName(text)
	} else {
		lines = Wrap(text, block.Wrap)
	}
	if len(lines) == 0 {
		return image.Rectangle{}, nil
	}

	pitch := LineHeight(face, text)
	ascent := face.Metrics().Ascent

	y := block.Y
	if block.AnchorBottom {
		y -= len(lines)*pitch + face.Metrics().Descent.Ceil()
	}

	var area image.Rectangle
	for _, line := range lines {
		x := block.X
		w := TextWidth(face, line)
		if block.AlignRight {
			x -= w
		}

		drawString(dst, line, x, y, ascent, c, face)
		area = area.Union(image.Rect(x, y, x+w, y+pitch))
		y += pitch
	}
	return area, nil
}

// drawString draws text with its ascender line at y.
func drawString(dst draw.Image, text string, x, y int, ascent fixed.Int26_6, col color.Color, face font.Face) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + ascent},
	}
	drawer.DrawString(text)
}
