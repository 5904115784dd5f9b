package render

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestScaleToWidthPreservesAspectRatio(t *testing.T) {
	img := &RasterImage{Width: 200, Height: 100}
	w, h := img.ScaleToWidth(100)
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 50.0, h)
}

func TestFileSourceMissingFileIsAbsent(t *testing.T) {
	src := FileSource{Root: t.TempDir()}
	_, ok := src.Resolve(context.Background(), "nope.png")
	assert.False(t, ok)
}

func TestFileSourceReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	src := FileSource{Root: dir}
	data, ok := src.Resolve(context.Background(), "logo.png")
	require.True(t, ok)
	assert.Equal(t, []byte("data"), data)

	// Absolute references bypass the root.
	data, ok = src.Resolve(context.Background(), path)
	require.True(t, ok)
	assert.Equal(t, []byte("data"), data)
}

func TestHTTPSourceResolves(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("remote"))
	}))
	defer srv.Close()

	src := NewHTTPSource(2 * time.Second)
	data, ok := src.Resolve(context.Background(), srv.URL)
	require.True(t, ok)
	assert.Equal(t, []byte("remote"), data)
}

func TestHTTPSourceNonOKIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewHTTPSource(2 * time.Second)
	_, ok := src.Resolve(context.Background(), srv.URL)
	assert.False(t, ok)
}

func TestHTTPSourceTimeoutDegradesToAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	src := NewHTTPSource(20 * time.Millisecond)
	_, ok := src.Resolve(context.Background(), srv.URL)
	assert.False(t, ok)
}

func TestResolverDispatchesByScheme(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("local"), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("remote"))
	}))
	defer srv.Close()

	r := Resolver{Files: FileSource{Root: dir}, HTTP: NewHTTPSource(time.Second)}

	data, ok := r.Resolve(context.Background(), "a.txt")
	require.True(t, ok)
	assert.Equal(t, []byte("local"), data)

	data, ok = r.Resolve(context.Background(), srv.URL)
	require.True(t, ok)
	assert.Equal(t, []byte("remote"), data)
}

func TestLoadImageReportsDimensions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.png"), pngBytes(t, 200, 100), 0o644))

	img, ok := LoadImage(context.Background(), FileSource{Root: dir}, "photo.png")
	require.True(t, ok)
	assert.Equal(t, 200, img.Width)
	assert.Equal(t, 100, img.Height)
	assert.Equal(t, "png", img.Format)
}

func TestLoadImageMissingOrInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not an image"), 0o644))

	src := FileSource{Root: dir}
	_, ok := LoadImage(context.Background(), src, "missing.png")
	assert.False(t, ok)

	_, ok = LoadImage(context.Background(), src, "broken.png")
	assert.False(t, ok)

	_, ok = LoadImage(context.Background(), src, "")
	assert.False(t, ok)
}
