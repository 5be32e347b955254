// describe.go — Human-readable brand descriptions and the sample override file.
package brand

import (
	"fmt"
	"strings"
)

// Describe returns a human-readable summary of a resolved brand, printed by
// the brands command.
func Describe(b *Brand) string {
	var s strings.Builder
	l := b.Layout

	fmt.Fprintf(&s, "Brand: %s\n", b.Name)
	fmt.Fprintf(&s, "  bold font:    %s\n", b.BoldFont.Name())
	fmt.Fprintf(&s, "  medium font:  %s\n", b.MediumFont.Name())
	fmt.Fprintf(&s, "  text color:   %s\n", FormatColor(b.TextColor))
	fmt.Fprintf(&s, "  mask color:   %s\n", FormatColor(b.MaskColor))

	lb := b.Logo.Bounds()
	fmt.Fprintf(&s, "  logo:         %dx%d source, width %d at %s\n",
		lb.Dx(), lb.Dy(), l.Logo.Width, anchor(l.Logo.X, l.Logo.Y, l.Logo.AlignRight, l.Logo.AnchorBottom))

	for _, f := range []struct {
		name  string
		block TextBlock
	}{
		{"title", l.Title},
		{"subtitle", l.Subtitle},
		{"author", l.Author},
	} {
		fmt.Fprintf(&s, "  %-13s %s %gpx, wrap %d, at %s",
			f.name+":", f.block.Weight, f.block.Size, f.block.Wrap,
			anchor(f.block.X, f.block.Y, f.block.AlignRight, f.block.AnchorBottom))
		if f.block.SplitName {
			s.WriteString(", split name")
		}
		s.WriteString("\n")
	}

	if l.Avatar != nil {
		fmt.Fprintf(&s, "  avatar:       %dpx circle at (%d,%d)\n", l.Avatar.Size, l.Avatar.X, l.Avatar.Y)
	} else {
		s.WriteString("  avatar:       none\n")
	}
	return s.String()
}

func anchor(x, y int, right, bottom bool) string {
	h, v := "left", "top"
	if right {
		h = "right"
	}
	if bottom {
		v = "bottom"
	}
	return fmt.Sprintf("(%d,%d) %s/%s", x, y, h, v)
}

// ExampleConfig returns a sample brands.yaml for the init command.
func ExampleConfig() string {
	return `# Overrides for the built-in brands. Relative paths resolve against
# the directory of this file. Omitted fields keep the defaults.
brands:
  binx.io:
    bold_font: fonts/Ubuntu-B.ttf
    medium_font: fonts/Ubuntu-M.ttf
    logo: images/binx-logo-white.png
    text_color: "#ffffff"
    logo_width: 247
  xebia.com:
    bold_font: fonts/proximanova-bold.ttf
    medium_font: fonts/Ubuntu-M.ttf
    logo: images/xebia-logo-white.png
    mask_color: "#000000"
    avatar: true
    split_author: false
`
}
