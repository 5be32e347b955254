// Package compose draws the brand overlay onto a normalized canvas.
//
// Rendering is layered: gradient mask, logo, title, subtitle, author and
// finally the optional avatar. Every brand goes through the same steps; only
// the brand record differs.
package compose

import (
	"context"
	"fmt"
	"image"

	"github.com/binxio/og-image-generator/pkg/blog"
	"github.com/binxio/og-image-generator/pkg/brand"
	"github.com/binxio/og-image-generator/pkg/log"
)

// AvatarLoader returns a square profile picture, or nil when there is none.
type AvatarLoader interface {
	Load(ctx context.Context, email string, size int) image.Image
}

// Compositor applies one brand to canvases.
type Compositor struct {
	brand     *brand.Brand
	magnitude float64
	avatars   AvatarLoader
}

// New creates a Compositor. avatars may be nil, which disables avatars.
func New(b *brand.Brand, magnitude float64, avatars AvatarLoader) *Compositor {
	return &Compositor{
		brand:     b,
		magnitude: magnitude,
		avatars:   avatars,
	}
}

// Compose mutates img in place. img is expected to be the normalized canvas.
func (c *Compositor) Compose(ctx context.Context, img *image.NRGBA, post blog.Blog) error {
	b := c.brand
	l := b.Layout

	ApplyGradient(img, c.magnitude, b.MaskColor)
	PasteLogo(img, b.Logo, l.Logo)

	for _, f := range []struct {
		name  string
		block brand.TextBlock
		text  string
	}{
		{"title", l.Title, post.Title},
		{"subtitle", l.Subtitle, post.Subtitle},
		{"author", l.Author, post.Author},
	} {
		area, err := DrawText(img, b.Font(f.block.Weight), f.block, b.TextColor, f.text)
		if err != nil {
			return fmt.Errorf("draw %s: %w", f.name, err)
		}
		log.Debugf("%s drawn at %v", f.name, area)
	}

	if post.Email != "" {
		c.drawAvatar(ctx, img, post.Email)
	}
	return nil
}

// drawAvatar pastes the author's avatar. Missing pictures are skipped.
func (c *Compositor) drawAvatar(ctx context.Context, img *image.NRGBA, email string) {
	p := c.brand.Layout.Avatar
	switch {
	case p == nil:
		log.Debugf("brand %s has no avatar placement", c.brand.Name)
		return
	case c.avatars == nil:
		log.Debug("avatar loading disabled")
		return
	}

	pic := c.avatars.Load(ctx, email, p.Size)
	if pic == nil {
		log.Warnf("skipping profile picture for %s", email)
		return
	}
	PasteAvatar(img, pic, *p)
}
