package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapSource is an in-memory AssetSource for tests.
type mapSource map[string][]byte

func (m mapSource) Resolve(_ context.Context, ref string) ([]byte, bool) {
	data, ok := m[ref]
	return data, ok
}

func TestComposeFreeformWithoutPhoto(t *testing.T) {
	composer := NewComposer(mapSource{}, NewRenderer(RendererOptions{Compress: false}), ComposerOptions{
		Strategy: StrategyFreeform,
		LogoRef:  "logos/institute_logo.png",
	}, nil)

	data := testData()
	buf, err := composer.Compose(context.Background(), data, "")

	require.NoError(t, err)
	require.NotEmpty(t, buf)
	out := string(buf)
	assert.Contains(t, out, "X-100")
	assert.Contains(t, out, "Photo: Not Available")
	assert.Contains(t, out, "Jane Doe")
}

func TestComposeFreeformWithPhoto(t *testing.T) {
	assets := mapSource{"photos/jane.png": pngBytes(t, 100, 120)}
	composer := NewComposer(assets, NewRenderer(RendererOptions{Compress: false}), ComposerOptions{
		Strategy: StrategyFreeform,
	}, nil)

	buf, err := composer.Compose(context.Background(), testData(), "photos/jane.png")

	require.NoError(t, err)
	assert.NotContains(t, string(buf), "Photo: Not Available")
}

func TestComposeMissingPhotoDegrades(t *testing.T) {
	composer := NewComposer(mapSource{}, NewRenderer(DefaultRendererOptions()), ComposerOptions{
		Strategy: StrategyFreeform,
	}, nil)

	buf, err := composer.Compose(context.Background(), testData(), "photos/gone.png")

	require.NoError(t, err, "a missing photo must never fail the operation")
	assert.NotEmpty(t, buf)
}

func TestComposeOverlayMissingTemplateIsRenderError(t *testing.T) {
	composer := NewComposer(mapSource{}, NewRenderer(DefaultRendererOptions()), ComposerOptions{
		Strategy:    StrategyOverlay,
		TemplateRef: "templates/certificate.pdf",
		Overlay:     DefaultOverlayLayout(),
	}, nil)

	buf, err := composer.Compose(context.Background(), testData(), "")

	require.Error(t, err)
	assert.Nil(t, buf, "no partial output on failure")
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestComposeOverlayUnreadableTemplateIsRenderError(t *testing.T) {
	assets := mapSource{"templates/certificate.pdf": []byte("corrupted bytes")}
	composer := NewComposer(assets, NewRenderer(DefaultRendererOptions()), ComposerOptions{
		Strategy:    StrategyOverlay,
		TemplateRef: "templates/certificate.pdf",
		Overlay:     DefaultOverlayLayout(),
	}, nil)

	buf, err := composer.Compose(context.Background(), testData(), "")

	require.Error(t, err)
	assert.Nil(t, buf)
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestComposeOverlayOnTemplate(t *testing.T) {
	assets := mapSource{
		"templates/certificate.pdf": templatePDF(t),
		"photos/jane.png":           pngBytes(t, 80, 80),
	}
	composer := NewComposer(assets, NewRenderer(DefaultRendererOptions()), ComposerOptions{
		Strategy:    StrategyOverlay,
		TemplateRef: "templates/certificate.pdf",
		Caption:     "Verified by the registrar",
		Overlay:     DefaultOverlayLayout(),
	}, nil)

	buf, err := composer.Compose(context.Background(), testData(), "photos/jane.png")

	require.NoError(t, err)
	assert.NotEmpty(t, buf)
}
