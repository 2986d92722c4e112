package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/isoforge/internal/model"
)

// ColorSwatch is a tappable color square. The selected swatch is outlined.
type ColorSwatch struct {
	widget.BaseWidget
	Hex      string
	selected bool
	OnTapped func(hex string)
}

func NewColorSwatch(hex string, tapped func(string)) *ColorSwatch {
	s := &ColorSwatch{Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

// SetSelected toggles the outline.
func (s *ColorSwatch) SetSelected(selected bool) {
	if s.selected == selected {
		return
	}
	s.selected = selected
	s.Refresh()
}

func (s *ColorSwatch) Tapped(*fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

func (s *ColorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(color.Transparent)
	rect.CornerRadius = 3
	r := &swatchRenderer{s: s, rect: rect}
	r.Refresh()
	return r
}

type swatchRenderer struct {
	s    *ColorSwatch
	rect *canvas.Rectangle
}

func (r *swatchRenderer) Layout(size fyne.Size) { r.rect.Resize(size) }

func (r *swatchRenderer) MinSize() fyne.Size { return fyne.NewSize(24, 24) }

func (r *swatchRenderer) Refresh() {
	c, err := model.ParseHexColor(r.s.Hex)
	if err != nil {
		c = model.MissingColor
	}
	r.rect.FillColor = c
	if r.s.selected {
		r.rect.StrokeColor = color.White
		r.rect.StrokeWidth = 2
	} else {
		r.rect.StrokeColor = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
		r.rect.StrokeWidth = 1
	}
	r.rect.Refresh()
}

func (r *swatchRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.rect} }

func (r *swatchRenderer) Destroy() {}
