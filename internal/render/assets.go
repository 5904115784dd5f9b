package render

import (
	"bytes"
	"context"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// AssetSource resolves an asset reference to raw bytes. A missing or
// unreadable asset is reported as absent, never as an error; callers omit the
// visual element instead of failing the render.
type AssetSource interface {
	Resolve(ctx context.Context, ref string) ([]byte, bool)
}

// FileSource resolves references against the local filesystem. Relative
// references are resolved under Root when Root is set.
type FileSource struct {
	Root string
}

func (s FileSource) Resolve(_ context.Context, ref string) ([]byte, bool) {
	if ref == "" {
		return nil, false
	}
	path := ref
	if s.Root != "" && !filepath.IsAbs(ref) {
		path = filepath.Join(s.Root, ref)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// HTTPSource resolves http(s) references. Slow or unavailable endpoints are
// bounded by the client timeout and degrade to absent.
type HTTPSource struct {
	Client *http.Client
}

// NewHTTPSource returns an HTTPSource with a bounded request timeout.
func NewHTTPSource(timeout time.Duration) HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return HTTPSource{Client: &http.Client{Timeout: timeout}}
}

func (s HTTPSource) Resolve(ctx context.Context, ref string) ([]byte, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, false
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Resolver dispatches between a local and a remote source based on the
// reference scheme.
type Resolver struct {
	Files FileSource
	HTTP  HTTPSource
}

func (r Resolver) Resolve(ctx context.Context, ref string) ([]byte, bool) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return r.HTTP.Resolve(ctx, ref)
	}
	return r.Files.Resolve(ctx, ref)
}

// RasterImage is a decoded raster asset with its natural pixel dimensions.
type RasterImage struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// LoadImage resolves and decodes an image asset. Absent or undecodable assets
// return (nil, false).
func LoadImage(ctx context.Context, src AssetSource, ref string) (*RasterImage, bool) {
	if ref == "" || src == nil {
		return nil, false
	}
	data, ok := src.Resolve(ctx, ref)
	if !ok {
		return nil, false
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, false
	}
	return &RasterImage{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, true
}

// ScaleToWidth returns a display box of the given width with the height scaled
// to preserve the image's natural aspect ratio.
func (img *RasterImage) ScaleToWidth(width float64) (w, h float64) {
	aspect := float64(img.Height) / float64(img.Width)
	return width, width * aspect
}
