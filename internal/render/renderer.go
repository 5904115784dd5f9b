package render

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
)

// BaseSurface is the starting page content draw instructions are composited
// onto. A nil Template means a blank page of the given dimensions; otherwise
// Template holds the bytes of a single-page PDF whose first page is drawn
// full-bleed under the instructions.
type BaseSurface struct {
	Width    float64
	Height   float64
	Template []byte
}

// BlankSurface returns a blank landscape letter base surface.
func BlankSurface() BaseSurface {
	return BaseSurface{Width: PageWidth, Height: PageHeight}
}

// TemplateSurface returns a landscape letter base surface backed by template
// page bytes.
func TemplateSurface(template []byte) BaseSurface {
	return BaseSurface{Width: PageWidth, Height: PageHeight, Template: template}
}

// RendererOptions configures page rendering.
type RendererOptions struct {
	// Compress enables PDF stream compression. Disabled in tests so output
	// bytes can be inspected for literal text.
	Compress bool
}

// DefaultRendererOptions returns the production rendering options.
func DefaultRendererOptions() RendererOptions {
	return RendererOptions{Compress: true}
}

// Renderer executes draw instructions against a base surface and produces a
// single-page PDF buffer. It allocates a fresh document per call and keeps no
// state between calls.
type Renderer struct {
	options RendererOptions
}

// NewRenderer creates a new page renderer.
func NewRenderer(options RendererOptions) *Renderer {
	return &Renderer{options: options}
}

// The template importer behind contrib/gofpdi is package-global.
var importMu sync.Mutex

// Render executes instructions in order and returns the finished document
// buffer. It fails with *RenderError when the base surface cannot be
// constructed or the document cannot be encoded; instruction semantics are
// not validated here.
func (r *Renderer) Render(surface BaseSurface, instructions []Instruction) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: surface.Width, Ht: surface.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(r.options.Compress)
	pdf.AddPage()

	if surface.Template != nil {
		if err := r.drawTemplate(pdf, surface); err != nil {
			return nil, err
		}
	}

	for i, in := range instructions {
		switch in := in.(type) {
		case FillRect:
			pdf.SetFillColor(in.R, in.G, in.B)
			pdf.Rect(in.X, in.Y, in.W, in.H, "F")
		case Text:
			pdf.SetFont(in.Family, in.Style, in.Size)
			pdf.SetTextColor(0, 0, 0)
			x := in.X
			if in.Align == AlignCenter {
				x -= pdf.GetStringWidth(in.Value) / 2
			}
			pdf.Text(x, in.Y, in.Value)
		case Image:
			name := fmt.Sprintf("asset-%d", i)
			opts := gofpdf.ImageOptions{ImageType: in.Format}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(in.Data))
			pdf.ImageOptions(name, in.X, in.Y, in.W, in.H, false, opts, 0, "")
		}
	}

	if pdf.Err() {
		return nil, &RenderError{Op: "execute instructions", Err: pdf.Error()}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Op: "encode document", Err: err}
	}
	return buf.Bytes(), nil
}

// drawTemplate imports the first page of the template document and draws it
// full-bleed before any overlay instructions. The importer panics on
// malformed input, so failures are recovered into a *RenderError.
func (r *Renderer) drawTemplate(pdf *gofpdf.Fpdf, surface BaseSurface) (err error) {
	if !bytes.HasPrefix(surface.Template, []byte("%PDF")) {
		return &RenderError{Op: "import template page", Err: fmt.Errorf("not a PDF document")}
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = &RenderError{Op: "import template page", Err: fmt.Errorf("%v", rec)}
		}
	}()

	importMu.Lock()
	defer importMu.Unlock()

	var rs io.ReadSeeker = bytes.NewReader(surface.Template)
	tpl := gofpdi.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
	gofpdi.UseImportedTemplate(pdf, tpl, 0, 0, surface.Width, surface.Height)

	if pdf.Err() {
		return &RenderError{Op: "import template page", Err: pdf.Error()}
	}
	return nil
}
