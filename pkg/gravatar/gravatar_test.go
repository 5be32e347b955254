package gravatar

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// avatarServer serves a PNG for known hashes and 404 otherwise.
func avatarServer(t *testing.T, known map[string]bool) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		hash := strings.TrimPrefix(r.URL.Path, "/avatar/")
		if !known[hash] || r.URL.Query().Get("d") != "404" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes(t, 40))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestHash(t *testing.T) {
	assert.Equal(t, "0bc83cb571cd1c50ba6f3e8a78ef1346", Hash("MyEmailAddress@example.com "))
	assert.Equal(t, Hash("a@b.c"), Hash("A@B.C"))
}

func TestURL(t *testing.T) {
	l := NewLoader()
	assert.Equal(t,
		"https://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?d=404&size=150",
		l.URL("myemailaddress@example.com", 150))

	l = NewLoader(WithBaseURL("http://localhost/avatar"))
	assert.True(t, strings.HasPrefix(l.URL("a@b.c", 1), "http://localhost/avatar/"))
}

func TestLoadFound(t *testing.T) {
	srv, hits := avatarServer(t, map[string]bool{Hash("mark@binx.io"): true})
	l := NewLoader(WithBaseURL(srv.URL + "/avatar/"))

	img := l.Load(context.Background(), "mark@binx.io", 150)
	require.NotNil(t, img)
	assert.Equal(t, 40, img.Bounds().Dx())

	// Second call is served from the cache.
	again := l.Load(context.Background(), "mark@binx.io", 150)
	assert.Same(t, img, again)
	assert.Equal(t, int32(1), hits.Load())

	// A different size is a different key.
	l.Load(context.Background(), "mark@binx.io", 80)
	assert.Equal(t, int32(2), hits.Load())
}

func TestLoadNotFoundIsCached(t *testing.T) {
	srv, hits := avatarServer(t, nil)
	l := NewLoader(WithBaseURL(srv.URL + "/avatar/"))

	assert.Nil(t, l.Load(context.Background(), "nobody@example.com", 150))
	assert.Nil(t, l.Load(context.Background(), "nobody@example.com", 150))
	assert.Equal(t, int32(1), hits.Load())
}

func TestLoadEmptyEmail(t *testing.T) {
	srv, hits := avatarServer(t, nil)
	l := NewLoader(WithBaseURL(srv.URL + "/avatar/"))

	assert.Nil(t, l.Load(context.Background(), "  ", 150))
	assert.Equal(t, int32(0), hits.Load())
}

func TestLoadUndecodable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	l := NewLoader(WithBaseURL(srv.URL))
	assert.Nil(t, l.Load(context.Background(), "mark@binx.io", 150))
}

func TestLoadUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	l := NewLoader(WithBaseURL(base))
	assert.Nil(t, l.Load(context.Background(), "mark@binx.io", 150))
}

func TestLoadCanceledIsNotCached(t *testing.T) {
	srv, hits := avatarServer(t, map[string]bool{Hash("mark@binx.io"): true})
	l := NewLoader(WithBaseURL(srv.URL + "/avatar/"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, l.Load(ctx, "mark@binx.io", 150))
	assert.Equal(t, 0, l.cache.len())

	assert.NotNil(t, l.Load(context.Background(), "mark@binx.io", 150))
	assert.Equal(t, int32(1), hits.Load())
}

func TestCacheEviction(t *testing.T) {
	c := newCache(2)
	img := image.NewGray(image.Rect(0, 0, 1, 1))

	c.put(key{"a", 1}, img)
	c.put(key{"b", 1}, nil)
	_, ok := c.get(key{"a", 1}) // a is now most recent
	require.True(t, ok)
	c.put(key{"c", 1}, img)

	assert.Equal(t, 2, c.len())
	_, ok = c.get(key{"b", 1})
	assert.False(t, ok)

	got, ok := c.get(key{"a", 1})
	assert.True(t, ok)
	assert.Same(t, img, got)
}

func TestStatusError(t *testing.T) {
	err := &StatusError{StatusCode: http.StatusNotFound}
	assert.Equal(t, "unexpected status 404", err.Error())
}
