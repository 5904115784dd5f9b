package render

import (
	"fmt"
	"time"
)

// Strategy selects how a certificate page is composed.
type Strategy string

const (
	// StrategyFreeform draws the full page from scratch on a blank landscape
	// letter surface.
	StrategyFreeform Strategy = "freeform"
	// StrategyOverlay burns only the variable data on top of a pre-authored
	// template page.
	StrategyOverlay Strategy = "overlay"
)

// Landscape letter page size in points.
const (
	PageWidth  = 792.0
	PageHeight = 612.0
)

const dateLayout = "2006-01-02"

// Data is the immutable view of a certificate record consumed by the layout
// engine. The engine never touches the record store.
type Data struct {
	SerialNo          string
	Name              string
	CourseName        string
	City              string
	Country           string
	CertificateNo     string
	DateOfCertificate time.Time
	AccessBy          string
	Website           string
}

// Assets holds the resolved raster assets available to a layout pass. A nil
// field means the asset is unavailable and the corresponding element is
// omitted or substituted.
type Assets struct {
	Logo  *RasterImage
	Photo *RasterImage
}

// OverlayLayout carries the text and photo coordinates for the overlay
// strategy. The values are tuned to one specific template artwork, so they
// are configuration bound to the template asset rather than constants.
// Coordinates are points from the top-left of a landscape letter page.
type OverlayLayout struct {
	SerialNoX      float64 `json:"serial_no_x"`
	SerialNoY      float64 `json:"serial_no_y"`
	NameX          float64 `json:"name_x"`
	NameY          float64 `json:"name_y"`
	CityX          float64 `json:"city_x"`
	CityY          float64 `json:"city_y"`
	CountryX       float64 `json:"country_x"`
	CountryY       float64 `json:"country_y"`
	CertificateNoX float64 `json:"certificate_no_x"`
	CertificateNoY float64 `json:"certificate_no_y"`
	DateX          float64 `json:"date_x"`
	DateY          float64 `json:"date_y"`
	CourseX        float64 `json:"course_x"`
	CourseY        float64 `json:"course_y"`
	PhotoX         float64 `json:"photo_x"`
	PhotoY         float64 `json:"photo_y"`
	PhotoW         float64 `json:"photo_w"`
	PhotoH         float64 `json:"photo_h"`
	CaptionY       float64 `json:"caption_y"`
	WebsiteY       float64 `json:"website_y"`
}

// DefaultOverlayLayout returns the coordinates tuned to the stock certificate
// template.
func DefaultOverlayLayout() OverlayLayout {
	return OverlayLayout{
		SerialNoX: 200, SerialNoY: 212,
		NameX: 200, NameY: 252,
		CityX: 200, CityY: 297,
		CountryX: 200, CountryY: 337,
		CertificateNoX: 250, CertificateNoY: 382,
		DateX: 440, DateY: 422,
		CourseX: 200, CourseY: 462,
		PhotoX: 650, PhotoY: 162,
		PhotoW: 150, PhotoH: 150,
		CaptionY: 542,
		WebsiteY: 562,
	}
}

// Layout computes draw instructions for one certificate page. It is pure:
// the same data, strategy and asset availability always yield the same
// instruction sequence.
type Layout struct {
	Strategy Strategy
	Overlay  OverlayLayout
	// Caption is the free-form footer line of the overlay strategy.
	Caption string
}

// Build returns the ordered instruction sequence for cert.
func (l Layout) Build(cert Data, assets Assets) []Instruction {
	if l.Strategy == StrategyOverlay {
		return l.buildOverlay(cert, assets)
	}
	return l.buildFreeform(cert, assets)
}

const (
	freeformMarginX    = 50.0
	freeformLabelY     = 170.0
	freeformLineStep   = 30.0
	freeformLogoWidth  = 100.0
	freeformLogoMargin = 30.0
)

func (l Layout) buildFreeform(cert Data, assets Assets) []Instruction {
	ins := make([]Instruction, 0, 12)

	ins = append(ins, FillRect{X: 0, Y: 0, W: PageWidth, H: PageHeight, R: 242, G: 242, B: 242})

	if assets.Logo != nil {
		w, h := assets.Logo.ScaleToWidth(freeformLogoWidth)
		ins = append(ins, Image{
			Data:   assets.Logo.Data,
			Format: assets.Logo.Format,
			X:      freeformLogoMargin,
			Y:      freeformLogoMargin,
			W:      w,
			H:      h,
		})
	}

	ins = append(ins, Text{
		X: PageWidth / 2, Y: 100,
		Value:  "Certificate of Completion",
		Family: "Helvetica", Style: "B", Size: 30,
		Align: AlignCenter,
	})

	y := freeformLabelY
	line := func(value string) {
		ins = append(ins, Text{
			X: freeformMarginX, Y: y,
			Value:  value,
			Family: "Helvetica", Size: 18,
			Align: AlignLeft,
		})
		y += freeformLineStep
	}

	line("Serial No: " + orNA(cert.SerialNo))
	line("Name: " + orNA(cert.Name))
	line(fmt.Sprintf("City: %s, Country: %s", orNA(cert.City), orNA(cert.Country)))
	line("Certificate No: " + orNA(cert.CertificateNo))
	line("Date: " + formatDate(cert.DateOfCertificate))
	line("Course: " + orNA(cert.CourseName))

	if assets.Photo != nil {
		ins = append(ins, Image{
			Data:   assets.Photo.Data,
			Format: assets.Photo.Format,
			X:      PageWidth - 200,
			Y:      200,
			W:      150,
			H:      200,
		})
	} else {
		line("Photo: Not Available")
	}

	footer := fmt.Sprintf("Access By: %s    Website: %s", orNA(cert.AccessBy), orNA(cert.Website))
	ins = append(ins, Text{
		X: PageWidth / 2, Y: PageHeight - 50,
		Value:  footer,
		Family: "Helvetica", Size: 14,
		Align: AlignCenter,
	})

	return ins
}

func (l Layout) buildOverlay(cert Data, assets Assets) []Instruction {
	co := l.Overlay
	ins := make([]Instruction, 0, 10)

	text := func(x, y float64, value string) {
		ins = append(ins, Text{
			X: x, Y: y,
			Value:  value,
			Family: "Helvetica", Style: "B", Size: 18,
			Align: AlignLeft,
		})
	}

	text(co.SerialNoX, co.SerialNoY, orNA(cert.SerialNo))
	text(co.NameX, co.NameY, orNA(cert.Name))
	text(co.CityX, co.CityY, orNA(cert.City))
	text(co.CountryX, co.CountryY, orNA(cert.Country))
	text(co.CertificateNoX, co.CertificateNoY, orNA(cert.CertificateNo))
	text(co.DateX, co.DateY, formatDate(cert.DateOfCertificate))
	text(co.CourseX, co.CourseY, orNA(cert.CourseName))

	// Photo is stretched to the template's photo box; no aspect adjustment
	// and no placeholder text when absent.
	if assets.Photo != nil {
		ins = append(ins, Image{
			Data:   assets.Photo.Data,
			Format: assets.Photo.Format,
			X:      co.PhotoX,
			Y:      co.PhotoY,
			W:      co.PhotoW,
			H:      co.PhotoH,
		})
	}

	caption := l.Caption
	if caption == "" {
		caption = "Default Admin Text"
	}
	website := cert.Website
	if website == "" {
		website = "example.com"
	}
	ins = append(ins, Text{
		X: PageWidth / 2, Y: co.CaptionY,
		Value:  caption,
		Family: "Helvetica", Style: "B", Size: 12,
		Align: AlignCenter,
	})
	ins = append(ins, Text{
		X: PageWidth / 2, Y: co.WebsiteY,
		Value:  website,
		Family: "Helvetica", Style: "B", Size: 12,
		Align: AlignCenter,
	})

	return ins
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(dateLayout)
}
