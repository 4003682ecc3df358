// Package preview lays out and renders the invoice page. The page always has
// its natural size; on screen it is shrunk to fit the available width and in
// print it is rendered at full size.
package preview

import (
	"math"
	"sync"
)

// Page is a paper format. Width and Height are in layout units (CSS pixels at 96 DPI).
type Page struct {
	Name     string
	Width    float64
	Height   float64
	WidthMM  float64
	HeightMM float64
}

var A4 = Page{Name: "A4", Width: 794, Height: 1123, WidthMM: 210, HeightMM: 297}

// DefaultMargin is the breathing room kept around the page on screen.
const DefaultMargin = 32.0

// mmPerUnit converts layout units to millimetres.
const mmPerUnit = 25.4 / 96

// Scale is the factor that fits page into available width minus margin.
// It never enlarges the page and never goes below zero.
func Scale(available, margin float64, page Page) float64 {
	if page.Width <= 0 {
		return 0
	}

	s := (available - margin) / page.Width
	if math.IsNaN(s) {
		return 0
	}

	return min(max(s, 0), 1)
}

type Mode int

const (
	Screen Mode = iota
	Print
)

// Layout is the geometry of one rendering. The box is the space the scaled page
// occupies so surrounding content flows around its visual size.
type Layout struct {
	Page      Page
	Scale     float64
	BoxWidth  float64
	BoxHeight float64
}

// LayoutFor builds the layout for page at scale. Print ignores scale.
func LayoutFor(page Page, scale float64, mode Mode) Layout {
	if mode == Print {
		scale = 1
	}

	return Layout{
		Page:      page,
		Scale:     scale,
		BoxWidth:  page.Width * scale,
		BoxHeight: page.Height * scale,
	}
}

// Surface tracks the on-screen scale of a page as the viewport is resized.
type Surface struct {
	page   Page
	margin float64

	mu    sync.RWMutex
	scale float64
}

// NewSurface starts at full scale until the first Resize.
func NewSurface(page Page, margin float64) *Surface {
	return &Surface{page: page, margin: margin, scale: 1}
}

// Resize records a new available width and returns the screen layout for it.
func (s *Surface) Resize(width float64) Layout {
	scale := Scale(width, s.margin, s.page)

	s.mu.Lock()
	s.scale = scale
	s.mu.Unlock()

	return LayoutFor(s.page, scale, Screen)
}

func (s *Surface) Layout(mode Mode) Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return LayoutFor(s.page, s.scale, mode)
}

func (s *Surface) Page() Page {
	return s.page
}
