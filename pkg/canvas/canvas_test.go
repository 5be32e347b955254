package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{255, 0, 0, 255}}, image.Point{}, draw.Src)
	return img
}

// rowImage encodes each row's index in the green and blue channels.
func rowImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		c := color.NRGBA{R: 10, G: uint8(y % 256), B: uint8(y / 256), A: 255}
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func rowOf(c color.NRGBA) int {
	return int(c.B)*256 + int(c.G)
}

func TestNormalizeAlwaysOutputsCanvasSize(t *testing.T) {
	sizes := []image.Point{
		{2400, 1200},
		{1200, 630},
		{1200, 700},
		{600, 600},
		{3000, 1000},
		{800, 200},
		{1201, 631},
		{1199, 100},
		{4000, 6000},
	}

	for _, mode := range []CropMode{CropCenter, CropSmart} {
		for _, s := range sizes {
			t.Run(mode.String()+"/"+image.Rect(0, 0, s.X, s.Y).String(), func(t *testing.T) {
				out := Normalize(createTestImage(s.X, s.Y), mode)
				assert.Equal(t, image.Rect(0, 0, Width, Height), out.Bounds())
			})
		}
	}
}

func TestNormalizePadsShortImages(t *testing.T) {
	// 2400x1200 scales to 1200x600 and is centred with a 15px band above.
	out := Normalize(createTestImage(2400, 1200), CropCenter)
	require.Equal(t, image.Rect(0, 0, Width, Height), out.Bounds())

	assert.Equal(t, 15, PadTop(600))
	assert.Equal(t, uint8(0), out.NRGBAAt(600, 14).A)
	assert.Equal(t, uint8(255), out.NRGBAAt(600, 15).A)
	assert.Equal(t, uint8(255), out.NRGBAAt(600, 614).A)
	assert.Equal(t, uint8(0), out.NRGBAAt(600, 615).A)
}

func TestNormalizeCropsCentre(t *testing.T) {
	tests := []struct {
		height int
		top    int
	}{
		{631, 0},
		{632, 1},
		{701, 35},
		{1000, 185},
	}

	for _, tt := range tests {
		out := Normalize(rowImage(Width, tt.height), CropCenter)
		require.Equal(t, image.Rect(0, 0, Width, Height), out.Bounds())

		assert.Equal(t, tt.top, CropTop(tt.height))
		assert.Equal(t, tt.top, rowOf(out.NRGBAAt(0, 0)), "height %d", tt.height)
		assert.Equal(t, tt.top+Height-1, rowOf(out.NRGBAAt(0, Height-1)), "height %d", tt.height)
	}
}

func TestNormalizeScalesProportionally(t *testing.T) {
	// 600x400 scales to 1200x800 and then loses 85 rows top and bottom.
	src := rowImage(600, 400)
	out := Normalize(src, CropCenter)
	require.Equal(t, image.Rect(0, 0, Width, Height), out.Bounds())
	assert.Equal(t, 85, CropTop(800))

	// Row 85 of the scaled image comes from around row 42 of the source.
	assert.InDelta(t, 42, rowOf(out.NRGBAAt(600, 0)), 1)
}

func TestNormalizeKeepsExactSize(t *testing.T) {
	src := rowImage(Width, Height)
	out := Normalize(src, CropCenter)
	assert.Equal(t, src.Pix, out.Pix)
	assert.NotSame(t, src, out)
}

func TestSmartCropStaysInBounds(t *testing.T) {
	src := rowImage(Width, 2000)
	// A bright detailed block near the bottom should attract the window.
	for y := 1500; y < 1900; y++ {
		for x := 300; x < 900; x++ {
			if (x/8+y/8)%2 == 0 {
				src.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}

	out := Normalize(src, CropSmart)
	require.Equal(t, image.Rect(0, 0, Width, Height), out.Bounds())

	top := rowOf(out.NRGBAAt(0, 0))
	assert.GreaterOrEqual(t, top, 0)
	assert.LessOrEqual(t, top, 2000-Height)
}

func TestParseCropMode(t *testing.T) {
	m, err := ParseCropMode("smart")
	require.NoError(t, err)
	assert.Equal(t, CropSmart, m)

	m, err = ParseCropMode("")
	require.NoError(t, err)
	assert.Equal(t, CropCenter, m)

	_, err = ParseCropMode("entropy")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	require.NoError(t, imaging.Save(createTestImage(20, 10), path))

	img, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())

	_, err = Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
