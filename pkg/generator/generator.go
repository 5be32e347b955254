// Package generator produces og images from a background file.
//
// All output follows one pipeline: open the background, normalize it to
// 1200×630, composite the brand overlay, then write it in the format implied
// by the output extension.
package generator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/binxio/og-image-generator/pkg/blog"
	"github.com/binxio/og-image-generator/pkg/brand"
	"github.com/binxio/og-image-generator/pkg/canvas"
	"github.com/binxio/og-image-generator/pkg/compose"
	"github.com/binxio/og-image-generator/pkg/log"
)

// DefaultGradientMagnitude darkens the right edge to 10% of the left.
const DefaultGradientMagnitude = 0.9

// ErrInputNotFound is returned when the background path is not a regular file.
var ErrInputNotFound = errors.New("input image not found")

// Config holds parameters for one generation run.
type Config struct {
	Input             string       // background image path
	Output            string       // default: og-<input basename> next to the input
	Overwrite         bool         // replace an existing output file
	GradientMagnitude float64      // 0..1
	Brand             *brand.Brand // required
	Crop              canvas.CropMode
	Quality           int // JPEG quality, default DefaultQuality
}

// Result describes what Generate did.
type Result struct {
	Output  string
	Skipped bool // output existed and Overwrite was not set
}

// Generator renders og images. Avatars may be nil to disable them.
type Generator struct {
	avatars compose.AvatarLoader
}

// New creates a Generator using avatars to fetch profile pictures.
func New(avatars compose.AvatarLoader) *Generator {
	return &Generator{avatars: avatars}
}

// DefaultOutput is og-<basename> in the input's directory. Inputs in a
// format that cannot be written, such as WebP, get a .png extension.
func DefaultOutput(input string) string {
	name := "og-" + filepath.Base(input)
	if _, err := Format(name); err != nil {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
	}
	return filepath.Join(filepath.Dir(input), name)
}

// ValidateInput checks that path names an existing regular file.
func ValidateInput(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if fi.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInputNotFound, path)
	}
	return nil
}

// Validate checks the configuration before any work is done.
func (cfg *Config) Validate() error {
	if cfg.Brand == nil {
		return errors.New("brand is required")
	}
	if cfg.GradientMagnitude < 0 || cfg.GradientMagnitude > 1 {
		return fmt.Errorf("gradient magnitude %v out of range [0,1]", cfg.GradientMagnitude)
	}
	if err := ValidateInput(cfg.Input); err != nil {
		return err
	}
	if cfg.Output != "" {
		if _, err := Format(cfg.Output); err != nil {
			return err
		}
	}
	return nil
}

// Render returns the composited 1200×630 canvas for post without writing it.
func (g *Generator) Render(ctx context.Context, post blog.Blog, cfg Config) (*image.NRGBA, error) {
	if err := validate(post, cfg); err != nil {
		return nil, err
	}
	return g.render(ctx, post, cfg)
}

func validate(post blog.Blog, cfg Config) error {
	if err := post.Validate(); err != nil {
		return err
	}
	return cfg.Validate()
}

// render assumes post and cfg are valid.
func (g *Generator) render(ctx context.Context, post blog.Blog, cfg Config) (*image.NRGBA, error) {
	src, err := canvas.Open(cfg.Input)
	if err != nil {
		return nil, err
	}

	img := canvas.Normalize(src, cfg.Crop)
	c := compose.New(cfg.Brand, cfg.GradientMagnitude, g.avatars)
	if err := c.Compose(ctx, img, post); err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	return img, nil
}

// Generate renders post onto the configured background and writes the
// result. An existing output without Overwrite is logged and skipped; that is
// not an error.
func (g *Generator) Generate(ctx context.Context, post blog.Blog, cfg Config) (Result, error) {
	if err := validate(post, cfg); err != nil {
		return Result{}, err
	}

	output := cfg.Output
	if output == "" {
		output = DefaultOutput(cfg.Input)
		if filepath.Ext(output) != filepath.Ext(cfg.Input) {
			log.Printf("no encoder for %q, saving as %s", filepath.Ext(cfg.Input), output)
		}
	}

	img, err := g.render(ctx, post, cfg)
	if err != nil {
		return Result{}, err
	}

	if _, err := os.Stat(output); err == nil && !cfg.Overwrite {
		log.Errorf("%s already exists, and no --overwrite was specified", output)
		return Result{Output: output, Skipped: true}, nil
	}

	if err := writeImage(output, img, cfg.Quality); err != nil {
		return Result{}, err
	}
	log.Printf("og image saved to %s", output)
	return Result{Output: output}, nil
}
