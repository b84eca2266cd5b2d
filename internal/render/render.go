// Package render draws a scene snapshot to an image: element bounding boxes
// with their titles, and any visible tooltip overlays on top.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/hoverkit/hoverkit/internal/dom"
	"github.com/hoverkit/hoverkit/internal/scene"
)

var (
	background   = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	elementBox   = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	elementText  = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	tooltipFill  = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	tooltipText  = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	tooltipArrow = color.RGBA{R: 30, G: 30, B: 30, A: 255}
)

// Scene rasterizes the scene onto a fresh RGBA canvas. Elements are drawn in
// document order; visible tooltip overlays are drawn last so they sit on top.
func Scene(s *scene.Scene) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Canvas[0], s.Canvas[1]))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	var floats []*dom.Element
	for _, id := range s.Attachments() {
		ctrl := s.Controller(id)
		if f := ctrl.FloatingNode(); f != nil && f.Style("display") != "none" {
			floats = append(floats, f)
		}
	}
	for _, el := range s.Doc.Body.Children() {
		drawElement(img, el, floats)
	}
	for _, f := range floats {
		drawTooltip(img, f)
	}
	return img
}

// WritePNG renders the scene and encodes it as PNG.
func WritePNG(w io.Writer, s *scene.Scene) error {
	return png.Encode(w, Scene(s))
}

// drawElement outlines the element and labels it with its title or text,
// then recurses. Floating tooltip nodes are skipped here; they are drawn as
// overlays afterwards.
func drawElement(img *image.RGBA, el *dom.Element, floats []*dom.Element) {
	if el.Style("display") == "none" {
		return
	}
	for _, f := range floats {
		if f == el {
			return
		}
	}
	b := el.Bounds
	if b.W > 0 && b.H > 0 {
		drawRect(img, b, elementBox)
		label := el.Attr("title")
		if label == "" && len(el.Children()) == 0 {
			label = el.Text()
		}
		if label != "" {
			drawText(img, label, b.X+b.W/2, b.Y+b.H/2, elementText)
		}
	}
	for _, c := range el.Children() {
		drawElement(img, c, floats)
	}
}

func drawTooltip(img *image.RGBA, f *dom.Element) {
	fillRect(img, f.Bounds, tooltipFill)
	if arrow := f.Find(".tooltip-arrow, .tooltip__arrow"); arrow != nil {
		fillRect(img, arrow.Bounds, tooltipArrow)
	}
	if text := f.Text(); text != "" {
		drawText(img, text, f.Bounds.X+f.Bounds.W/2, f.Bounds.Y+f.Bounds.H/2, tooltipText)
	}
}

func drawRect(img *image.RGBA, r dom.Rect, c color.Color) {
	x1, y1, x2, y2 := r.X, r.Y, r.X+r.W, r.Y+r.H
	for x := x1; x < x2; x++ {
		setClamped(img, x, y1, c)
		setClamped(img, x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		setClamped(img, x1, y, c)
		setClamped(img, x2-1, y, c)
	}
}

func fillRect(img *image.RGBA, r dom.Rect, c color.Color) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			setClamped(img, x, y, c)
		}
	}
}

func setClamped(img *image.RGBA, x, y int, c color.Color) {
	if p := (image.Point{X: x, Y: y}); p.In(img.Bounds()) {
		img.Set(x, y, c)
	}
}

// drawText centers text at (x, y) using the 7x13 basic font.
func drawText(img *image.RGBA, text string, x, y int, c color.Color) {
	textWidth := len(text) * 7
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6((x - textWidth/2) * 64),
			Y: fixed.Int26_6((y + 13/2 - 2) * 64),
		},
	}
	d.DrawString(text)
}
