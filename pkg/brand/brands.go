package brand

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/binxio/og-image-generator/pkg/log"
)

// ErrUnknownBrand is returned for names outside the known set.
var ErrUnknownBrand = errors.New("unknown brand")

// Default is the brand used when none is selected.
const Default = "xebia.com"

// definition is the static part of a brand; fonts and logo are attached by
// Resolve.
type definition struct {
	label  string
	layout Layout
}

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black = color.NRGBA{A: 0xff}
)

var definitions = map[string]definition{
	"binx.io": {
		label: "binx.io",
		layout: Layout{
			Title:    TextBlock{Weight: Bold, Size: 64, Wrap: 32, X: 32, Y: 32},
			Subtitle: TextBlock{Weight: Medium, Size: 36, Wrap: 50, X: 32, Y: CanvasHeight * 45 / 100},
			Author:   TextBlock{Weight: Medium, Size: 36, X: 32 + 247 + 16, Y: CanvasHeight - 36 - 16 - 32},
			Logo:     LogoPlacement{Width: 247, X: 32, Y: CanvasHeight - 32, AnchorBottom: true},
			Avatar:   &AvatarPlacement{Size: 150, X: CanvasWidth - 32 - 150, Y: CanvasHeight - 32 - 150},
		},
	},
	"xebia.com": {
		label: "xebia",
		layout: Layout{
			Title:    TextBlock{Weight: Bold, Size: 64, Wrap: 24, X: 32, Y: 32},
			Subtitle: TextBlock{Weight: Medium, Size: 36, Wrap: 50, X: 32, Y: CanvasHeight * 45 / 100},
			Author:   TextBlock{Weight: Medium, Size: 36, X: CanvasWidth - 32, Y: CanvasHeight - 36, AlignRight: true, AnchorBottom: true},
			Logo:     LogoPlacement{Width: 247, X: CanvasWidth - 32, Y: 35, AlignRight: true},
			Avatar:   &AvatarPlacement{Size: 150, X: CanvasWidth - 450, Y: CanvasHeight - 220 - 32},
		},
	},
}

// Names lists the known brands in sorted order.
func Names() []string {
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether name is one of the known brands.
func Known(name string) bool {
	_, ok := definitions[name]
	return ok
}

// Resolve builds the brand record for name, applying the overrides from cfg
// (which may be nil).
func Resolve(name string, cfg *Config) (*Brand, error) {
	def, ok := definitions[name]
	if !ok {
		return nil, fmt.Errorf("%w %q: choose one of %v", ErrUnknownBrand, name, Names())
	}

	var ov Override
	if cfg != nil {
		ov = cfg.Brands[name]
	}

	b := &Brand{
		Name:      name,
		Label:     def.label,
		TextColor: white,
		MaskColor: black,
		Layout:    def.layout,
	}
	if def.layout.Avatar != nil {
		a := *def.layout.Avatar
		b.Layout.Avatar = &a
	}

	var err error
	if b.BoldFont, err = LoadFontManager(ov.BoldFont, Bold); err != nil {
		return nil, fmt.Errorf("brand %s bold font: %w", name, err)
	}
	if b.MediumFont, err = LoadFontManager(ov.MediumFont, Medium); err != nil {
		return nil, fmt.Errorf("brand %s medium font: %w", name, err)
	}

	if ov.TextColor != "" {
		if b.TextColor, err = ParseColor(ov.TextColor); err != nil {
			return nil, fmt.Errorf("brand %s text_color: %w", name, err)
		}
	}
	if ov.MaskColor != "" {
		if b.MaskColor, err = ParseColor(ov.MaskColor); err != nil {
			return nil, fmt.Errorf("brand %s mask_color: %w", name, err)
		}
	}
	if ov.LogoWidth > 0 {
		b.Layout.Logo.Width = ov.LogoWidth
	}
	if ov.Avatar != nil && !*ov.Avatar {
		b.Layout.Avatar = nil
	}
	if ov.SplitAuthor != nil {
		b.Layout.Author.SplitName = *ov.SplitAuthor
	}

	if ov.Logo != "" {
		if b.Logo, err = LoadLogo(ov.Logo); err != nil {
			return nil, fmt.Errorf("brand %s: %w", name, err)
		}
	} else {
		log.Debugf("brand %s: no logo file configured, using %q wordmark", name, def.label)
		if b.Logo, err = Wordmark(b.BoldFont, def.label, white); err != nil {
			return nil, fmt.Errorf("brand %s: %w", name, err)
		}
	}

	return b, nil
}
