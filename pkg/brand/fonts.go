// fonts.go - Font management with custom TTF support and embedded fallback fonts.
// Uses golang.org/x/image/font for OpenType rendering. Defaults to the Go Bold
// and Go Medium fonts when no brand font file is configured.
package brand

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/opentype"
)

// FontManager holds one parsed font and the faces created from it.
type FontManager struct {
	name   string
	parsed *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFontManager parses font data. name is only used in descriptions.
func NewFontManager(name string, data []byte) (*FontManager, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
	}

	return &FontManager{
		name:   name,
		parsed: parsed,
		faces:  make(map[float64]font.Face),
	}, nil
}

// LoadFontManager reads a TTF/OTF file. An empty path selects the embedded
// fallback for the weight.
func LoadFontManager(path string, w Weight) (*FontManager, error) {
	if path == "" {
		return defaultFont(w)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return NewFontManager(path, data)
}

func defaultFont(w Weight) (*FontManager, error) {
	if w == Bold {
		return NewFontManager("Go Bold (embedded)", gobold.TTF)
	}
	return NewFontManager("Go Medium (embedded)", gomedium.TTF)
}

// Name describes where the font came from.
func (fm *FontManager) Name() string {
	return fm.name
}

// Face returns a font.Face at the given pixel size. Faces are cached per size.
func (fm *FontManager) Face(size float64) (font.Face, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if face, ok := fm.faces[size]; ok {
		return face, nil
	}

	face, err := opentype.NewFace(fm.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	fm.faces[size] = face
	return face, nil
}
