// encode.go — Image file writers. The format follows the file extension.
package generator

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 95

// Format returns the encoder for the output path's extension.
func Format(output string) (imaging.Format, error) {
	f, err := imaging.FormatFromFilename(output)
	if err != nil {
		return 0, fmt.Errorf("unsupported output format %q: use .png, .jpg, .gif, .tif or .bmp", filepath.Ext(output))
	}
	return f, nil
}

// Flatten drops the alpha channel, keeping the stored colour of every pixel.
// JPEG cannot carry alpha.
func Flatten(img *image.NRGBA) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img *image.NRGBA, f imaging.Format, quality int) error {
	var src image.Image = img
	if f == imaging.JPEG && !img.Opaque() {
		src = Flatten(img)
	}
	if quality <= 0 {
		quality = DefaultQuality
	}

	if err := imaging.Encode(w, src, f, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// writeImage encodes img to a file at output.
func writeImage(output string, img *image.NRGBA, quality int) error {
	f, err := Format(output)
	if err != nil {
		return err
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}

	if err := Encode(out, img, f, quality); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
