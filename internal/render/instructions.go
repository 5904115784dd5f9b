package render

// Instruction is a single declarative draw command executed by the Renderer.
// Coordinates are PDF points with the origin at the top-left of the page.
type Instruction interface {
	instruction()
}

// Align controls horizontal text placement relative to the X coordinate.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// FillRect fills a rectangle with a solid RGB color.
type FillRect struct {
	X, Y, W, H float64
	R, G, B    int
}

// Text draws a single line of text. Y is the text baseline. For AlignCenter
// the line is centered horizontally around X.
type Text struct {
	X, Y   float64
	Value  string
	Family string
	Style  string // "" or "B"
	Size   float64
	Align  Align
}

// Image places decoded raster image bytes into the given box, scaled to fit
// the box exactly.
type Image struct {
	Data       []byte
	Format     string // "png", "jpg", "gif"
	X, Y, W, H float64
}

func (FillRect) instruction() {}
func (Text) instruction()     {}
func (Image) instruction()    {}
