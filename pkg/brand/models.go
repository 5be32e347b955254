// Package brand resolves a brand name to the fonts, logo, colours and layout
// offsets used when compositing an og image.
package brand

import (
	"image"
	"image/color"
)

// Canvas dimensions every layout is expressed in.
const (
	CanvasWidth  = 1200
	CanvasHeight = 630
)

// Weight selects one of a brand's two fonts.
type Weight int

const (
	Bold Weight = iota
	Medium
)

func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "medium"
}

// Brand is an immutable visual style. It is consumed by the compositor; all
// brand variation is data in this record.
type Brand struct {
	Name       string
	Label      string // wordmark used when no logo file is configured
	BoldFont   *FontManager
	MediumFont *FontManager
	Logo       image.Image
	TextColor  color.NRGBA
	MaskColor  color.NRGBA
	Layout     Layout
}

// Font returns the font manager for the given weight.
func (b *Brand) Font(w Weight) *FontManager {
	if w == Bold {
		return b.BoldFont
	}
	return b.MediumFont
}

// Layout positions every element on the 1200×630 canvas.
type Layout struct {
	Title    TextBlock
	Subtitle TextBlock
	Author   TextBlock
	Logo     LogoPlacement
	Avatar   *AvatarPlacement // nil: brand shows no avatar
}

// TextBlock describes how one text field is set.
//
// X and Y anchor the top-left of the block unless AlignRight (X is the right
// edge of each line) or AnchorBottom (Y is the bottom of the block, descent
// included) are set.
type TextBlock struct {
	Weight       Weight
	Size         float64 // pixels
	Wrap         int     // characters per line, 0 disables wrapping
	X, Y         int
	AlignRight   bool
	AnchorBottom bool
	SplitName    bool // author only: first name and rest on separate lines
}

// LogoPlacement scales the logo to Width, keeping its aspect ratio.
type LogoPlacement struct {
	Width        int
	X, Y         int
	AlignRight   bool
	AnchorBottom bool
}

// AvatarPlacement is the square box the circular avatar is pasted into.
type AvatarPlacement struct {
	Size int // diameter in pixels, also the size requested from Gravatar
	X, Y int
}
