// Package gravatar loads profile pictures from gravatar.com.
//
// Every failure is reported as "no picture": the caller only needs to know
// whether an avatar is available. Results, including misses, are cached by
// (email, size) for the lifetime of the Loader.
package gravatar

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/singleflight"

	"github.com/binxio/og-image-generator/pkg/log"
)

const (
	// DefaultBaseURL is the public avatar endpoint.
	DefaultBaseURL = "https://www.gravatar.com/avatar/"

	// DefaultCacheSize bounds the number of cached lookups.
	DefaultCacheSize = 128

	maxImageBytes = 5 << 20
)

// Loader fetches and caches Gravatar pictures. It is safe for concurrent use.
type Loader struct {
	client  *http.Client
	baseURL string
	cache   *cache
	group   singleflight.Group
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the HTTP client used for fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		l.client = c
	}
}

// WithBaseURL points the loader at another avatar endpoint (tests, mirrors).
func WithBaseURL(u string) Option {
	return func(l *Loader) {
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		l.baseURL = u
	}
}

// WithCacheSize bounds the cache to n entries.
func WithCacheSize(n int) Option {
	return func(l *Loader) {
		l.cache = newCache(n)
	}
}

// NewLoader creates a Loader using http.DefaultClient and the public endpoint.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:  http.DefaultClient,
		baseURL: DefaultBaseURL,
		cache:   newCache(DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Hash returns the Gravatar hash of an email address.
func Hash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

// URL returns the avatar URL for email at the given size. d=404 makes the
// service answer 404 instead of serving a placeholder.
func (l *Loader) URL(email string, size int) string {
	q := url.Values{}
	q.Set("size", strconv.Itoa(size))
	q.Set("d", "404")
	return l.baseURL + Hash(email) + "?" + q.Encode()
}

// Load returns the profile picture for email at size, or nil when there is
// none or it could not be retrieved. An empty email yields nil without a
// request.
func (l *Loader) Load(ctx context.Context, email string, size int) image.Image {
	if strings.TrimSpace(email) == "" {
		return nil
	}

	k := key{email: email, size: size}
	if img, ok := l.cache.get(k); ok {
		log.Debugf("gravatar cache hit for %s (%dpx)", email, size)
		return img
	}

	v, _, _ := l.group.Do(k.String(), func() (any, error) {
		if img, ok := l.cache.get(k); ok {
			return img, nil
		}
		img, err := l.fetch(ctx, email, size)
		if err != nil {
			log.Warnf("no profile picture found for %s, %v", email, err)
			img = nil
		}
		// Context cancellation says nothing about the avatar; do not cache it.
		if ctx.Err() == nil {
			l.cache.put(k, img)
		}
		return img, nil
	})

	img, _ := v.(image.Image)
	return img
}

// StatusError reports a non-200 answer from the avatar service.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

func (l *Loader) fetch(ctx context.Context, email string, size int) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL(email, size), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request avatar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	img, err := imaging.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decoding avatar: %w", err)
	}
	return img, nil
}
