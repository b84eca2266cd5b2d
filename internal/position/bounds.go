package position

import (
	"fmt"
	"strings"

	"github.com/hoverkit/hoverkit/internal/dom"
)

// Text measurement constants for auto-sized floating elements, matching the
// 7x13 basicfont the renderer draws labels with.
const (
	glyphWidth  = 7
	glyphHeight = 13
	padX        = 8
	padY        = 5
	arrowSize   = 8
)

// BoundsEngine is the built-in positioning engine. It works purely on element
// bounds: each Update recomputes the floating element's rectangle from the
// reference rectangle, the requested placement and the offset, clamps it into
// the boundaries element when one is set, and mirrors the result into left/top
// inline styles.
type BoundsEngine struct{}

// NewBoundsEngine returns the built-in bounds-math engine.
func NewBoundsEngine() *BoundsEngine { return &BoundsEngine{} }

// Create binds the engine to a reference/floating pair. The first Update runs
// immediately.
func (e *BoundsEngine) Create(reference, floating *dom.Element, opts Options) (Handle, error) {
	if reference == nil || floating == nil {
		return nil, fmt.Errorf("position: reference and floating elements are required")
	}
	h := &boundsHandle{reference: reference, floating: floating, opts: opts}
	h.Update()
	return h, nil
}

type boundsHandle struct {
	reference *dom.Element
	floating  *dom.Element
	opts      Options
	destroyed bool
}

func (h *boundsHandle) Update() {
	if h.destroyed {
		return
	}
	placement := h.opts.Placement
	if h.opts.PlacementFn != nil {
		placement = h.opts.PlacementFn(h.floating, h.reference)
	}
	side, align := splitPlacement(placement)

	fw, fh := h.floating.Bounds.W, h.floating.Bounds.H
	if fw == 0 {
		fw = glyphWidth*len(h.floating.Text()) + 2*padX
	}
	if fh == 0 {
		fh = glyphHeight + 2*padY
	}

	ref := h.reference.Bounds
	var x, y int
	switch side {
	case "bottom":
		y = ref.Y + ref.H + arrowSize + h.opts.OffsetY
		x = alignCross(ref.X, ref.W, fw, align)
	case "left":
		x = ref.X - fw - arrowSize - h.opts.OffsetX
		y = alignCross(ref.Y, ref.H, fh, align)
	case "right":
		x = ref.X + ref.W + arrowSize + h.opts.OffsetX
		y = alignCross(ref.Y, ref.H, fh, align)
	default: // top
		y = ref.Y - fh - arrowSize - h.opts.OffsetY
		x = alignCross(ref.X, ref.W, fw, align)
	}
	if side == "top" || side == "bottom" {
		x += h.opts.OffsetX
	} else {
		y += h.opts.OffsetY
	}

	if b := h.opts.Boundaries; b != nil {
		x, y = clamp(x, y, fw, fh, b.Bounds)
	}

	h.floating.Bounds = dom.Rect{X: x, Y: y, W: fw, H: fh}
	h.floating.SetStyle("left", fmt.Sprintf("%dpx", x))
	h.floating.SetStyle("top", fmt.Sprintf("%dpx", y))
	h.placeArrow(side, x, y, fw, fh, ref)
}

// placeArrow centers the arrow sub-node on the edge facing the reference.
func (h *boundsHandle) placeArrow(side string, x, y, fw, fh int, ref dom.Rect) {
	if h.opts.ArrowSelector == "" {
		return
	}
	arrow := h.floating.Find(h.opts.ArrowSelector)
	if arrow == nil {
		return
	}
	var ax, ay int
	switch side {
	case "bottom":
		ax, ay = ref.X+ref.W/2-arrowSize/2, y-arrowSize
	case "left":
		ax, ay = x+fw, ref.Y+ref.H/2-arrowSize/2
	case "right":
		ax, ay = x-arrowSize, ref.Y+ref.H/2-arrowSize/2
	default: // top
		ax, ay = ref.X+ref.W/2-arrowSize/2, y+fh
	}
	arrow.Bounds = dom.Rect{X: ax, Y: ay, W: arrowSize, H: arrowSize}
	arrow.SetStyle("left", fmt.Sprintf("%dpx", ax))
	arrow.SetStyle("top", fmt.Sprintf("%dpx", ay))
}

func (h *boundsHandle) Destroy() {
	h.destroyed = true
}

func splitPlacement(placement string) (side, align string) {
	side, align = placement, "center"
	if i := strings.IndexByte(placement, '-'); i >= 0 {
		side, align = placement[:i], placement[i+1:]
	}
	switch side {
	case "top", "bottom", "left", "right":
	default:
		side = "top"
	}
	return side, align
}

// alignCross positions the floating span of size fsize against the reference
// span (start, size) on the cross axis.
func alignCross(start, size, fsize int, align string) int {
	switch align {
	case "start":
		return start
	case "end":
		return start + size - fsize
	default:
		return start + (size-fsize)/2
	}
}

func clamp(x, y, w, h int, b dom.Rect) (int, int) {
	if x+w > b.X+b.W {
		x = b.X + b.W - w
	}
	if x < b.X {
		x = b.X
	}
	if y+h > b.Y+b.H {
		y = b.Y + b.H - h
	}
	if y < b.Y {
		y = b.Y
	}
	return x, y
}
