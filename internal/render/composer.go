package render

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ComposerOptions configures document composition.
type ComposerOptions struct {
	Strategy Strategy
	// LogoRef is the institute logo asset reference (freeform strategy only).
	LogoRef string
	// TemplateRef is the template document reference (overlay strategy only).
	TemplateRef string
	// Caption is the free-form overlay footer line.
	Caption string
	Overlay OverlayLayout
}

// Composer orchestrates asset loading, layout and page rendering into a
// finished single-page document buffer.
type Composer struct {
	assets   AssetSource
	renderer *Renderer
	options  ComposerOptions
	logger   *zap.Logger
}

// NewComposer creates a document composer.
func NewComposer(assets AssetSource, renderer *Renderer, options ComposerOptions, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		assets:   assets,
		renderer: renderer,
		options:  options,
		logger:   logger,
	}
}

// Compose renders cert into a PDF buffer. photoRef is the record's photo
// reference; an unresolvable photo or logo degrades the visuals and never
// fails the call. A missing or unreadable overlay template is fatal and
// returns *RenderError; any unexpected failure returns *ComposeError. On
// failure no buffer is returned.
func (c *Composer) Compose(ctx context.Context, cert Data, photoRef string) ([]byte, error) {
	return c.ComposeWithCaption(ctx, cert, photoRef, "")
}

// ComposeWithCaption renders like Compose with the overlay footer caption
// replaced. An empty caption keeps the configured one.
func (c *Composer) ComposeWithCaption(ctx context.Context, cert Data, photoRef, caption string) (buf []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			buf = nil
			err = &ComposeError{Cause: "unexpected failure during composition", Err: fmt.Errorf("%v", rec)}
		}
	}()

	assets := Assets{}
	if c.options.Strategy == StrategyFreeform {
		logo, ok := LoadImage(ctx, c.assets, c.options.LogoRef)
		if ok {
			assets.Logo = logo
		} else if c.options.LogoRef != "" {
			c.logger.Debug("logo unavailable, rendering without it",
				zap.String("ref", c.options.LogoRef))
		}
	}
	if photoRef != "" {
		photo, ok := LoadImage(ctx, c.assets, photoRef)
		if ok {
			assets.Photo = photo
		} else {
			c.logger.Debug("photo unavailable, rendering without it",
				zap.String("ref", photoRef))
		}
	}

	if caption == "" {
		caption = c.options.Caption
	}
	layout := Layout{
		Strategy: c.options.Strategy,
		Overlay:  c.options.Overlay,
		Caption:  caption,
	}
	instructions := layout.Build(cert, assets)

	surface := BlankSurface()
	if c.options.Strategy == StrategyOverlay {
		template, ok := c.assets.Resolve(ctx, c.options.TemplateRef)
		if !ok {
			return nil, &RenderError{
				Op:  "load template",
				Err: fmt.Errorf("template %q is missing or unreadable", c.options.TemplateRef),
			}
		}
		surface = TemplateSurface(template)
	}

	out, err := c.renderer.Render(surface, instructions)
	if err != nil {
		return nil, err
	}
	return out, nil
}
