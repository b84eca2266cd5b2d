package tooltip

import (
	"sync"

	"k8s.io/utils/clock"

	"github.com/hoverkit/hoverkit/internal/dom"
	"github.com/hoverkit/hoverkit/internal/position"
)

// Env bundles the collaborators a controller drives: the positioning engine
// and the clock used for show/hide debouncing. Zero fields fall back to the
// built-in bounds engine and the real clock.
type Env struct {
	Engine position.Engine
	Clock  clock.WithDelayedExecution
}

// Controller owns one reference element's tooltip lifecycle. All methods are
// safe for concurrent use; timer callbacks and trigger handlers serialize on
// the same mutex, so state mutations never interleave mid-callback.
type Controller struct {
	mu        sync.Mutex
	doc       *dom.Document
	reference *dom.Element
	opts      Options
	engine    position.Engine
	clock     clock.WithDelayedExecution

	isOpen   bool
	disposed bool
	floating *dom.Element
	handle   position.Handle

	refListeners   []*dom.Listener
	floatListeners []*dom.Listener
}

// New builds a controller for reference and attaches its trigger listeners.
// The reference element's lifetime stays with the caller; the floating node
// is created lazily on first successful show and owned by the controller.
func New(doc *dom.Document, reference *dom.Element, opts Options, env Env) *Controller {
	if env.Engine == nil {
		env.Engine = position.NewBoundsEngine()
	}
	if env.Clock == nil {
		env.Clock = clock.RealClock{}
	}
	c := &Controller{
		doc:       doc,
		reference: reference,
		opts:      resolveOptions(opts),
		engine:    env.Engine,
		clock:     env.Clock,
	}
	c.bindTriggers()
	return c
}

// IsOpen reports whether the tooltip is currently shown.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

// FloatingNode returns the floating element, or nil before the first show or
// after Dispose.
func (c *Controller) FloatingNode() *dom.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.floating
}

// Reference returns the anchor element the controller is bound to.
func (c *Controller) Reference() *dom.Element { return c.reference }

// Show opens the tooltip immediately, bypassing the show delay. No-op when
// already open, when disposed, or when no title resolves.
func (c *Controller) Show() *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.show()
	return c
}

// Hide closes the tooltip immediately, bypassing the hide delay. The floating
// node is kept for cheap re-show. No-op when already closed.
func (c *Controller) Hide() *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hide()
	return c
}

// Toggle shows a closed tooltip and hides an open one.
func (c *Controller) Toggle() *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isOpen {
		c.hide()
	} else {
		c.show()
	}
	return c
}

// Dispose tears the controller down: trigger listeners come off the
// reference, the positioning handle is destroyed, and the floating node is
// removed from its parent. The controller is terminal afterwards; further
// calls are no-ops.
func (c *Controller) Dispose() *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return c
	}
	for _, l := range c.refListeners {
		c.reference.Off(l)
	}
	c.refListeners = nil
	if c.floating != nil {
		c.hide()
		c.handle.Destroy()
		for _, l := range c.floatListeners {
			c.floating.Off(l)
		}
		c.floatListeners = nil
		c.floating.Remove()
		c.floating = nil
		c.handle = nil
	}
	c.disposed = true
	return c
}

// UpdateTitle replaces the configured title. When the floating node already
// exists its content is rewritten in place and the position recomputed;
// before the first show the new title simply takes effect on creation.
func (c *Controller) UpdateTitle(title Title) *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return c
	}
	c.opts.Title = title
	if c.floating == nil {
		return c
	}
	inner := c.floating.Find(innerSelector)
	c.inject(inner, title)
	c.handle.Update()
	return c
}

// onDirect handles a direct trigger event (mouseenter, focus, click): mark
// the event consumed so a same-named opposite handler skips it, then schedule
// a show unless the tooltip is already open.
func (c *Controller) onDirect(ev *dom.Event) {
	c.mu.Lock()
	open, disposed := c.isOpen, c.disposed
	c.mu.Unlock()
	if disposed || open {
		return
	}
	ev.Consume()
	c.scheduleShow()
}

// onOpposite handles an opposite trigger event (mouseleave, blur, click).
func (c *Controller) onOpposite(ev *dom.Event) {
	if ev.Consumed() {
		return
	}
	c.mu.Lock()
	disposed := c.disposed
	c.mu.Unlock()
	if disposed {
		return
	}
	c.scheduleHide(ev)
}

// show transitions CLOSED -> OPEN. Callers hold c.mu.
func (c *Controller) show() {
	if c.disposed || c.isOpen {
		return
	}
	if c.floating != nil {
		// Reuse path: the floating node is never recreated once built.
		c.floating.SetStyle("display", "")
		c.handle.Update()
		c.isOpen = true
		return
	}
	if c.reference.Attr("title") == "" && c.opts.Title.empty() {
		// Nothing to display; the tooltip is never materialized.
		return
	}
	floating := c.buildFloating()
	if floating == nil {
		return
	}
	c.resolveContainer().AppendChild(floating)
	handle, err := c.engine.Create(c.reference, floating, position.Options{
		Placement:     c.opts.Placement,
		PlacementFn:   c.opts.PlacementFn,
		ArrowSelector: arrowSelector,
		Boundaries:    c.opts.Boundaries,
		OffsetX:       c.opts.Offset.X,
		OffsetY:       c.opts.Offset.Y,
	})
	if err != nil {
		floating.Remove()
		return
	}
	c.floating = floating
	c.handle = handle
	c.isOpen = true
}

// hide transitions OPEN -> CLOSED without destroying anything. Callers hold
// c.mu.
func (c *Controller) hide() {
	if !c.isOpen {
		return
	}
	c.isOpen = false
	c.floating.SetStyle("display", "none")
}

// buildFloating parses the template once and injects the resolved title.
// A template missing the inner sub-node is a caller-contract violation and
// panics at the injection site rather than being validated here.
func (c *Controller) buildFloating() *dom.Element {
	nodes, err := dom.ParseFragment(c.opts.Template)
	if err != nil || len(nodes) == 0 {
		return nil
	}
	floating := nodes[0]
	title := c.opts.Title
	if attr := c.reference.Attr("title"); attr != "" {
		title = Title{Text: attr}
	}
	c.inject(floating.Find(innerSelector), title)
	return floating
}

// inject writes the title into the inner content node, honoring the HTML
// flag: markup is parsed only when enabled, element titles are dropped when
// disabled, function titles are evaluated with the reference as argument.
func (c *Controller) inject(inner *dom.Element, title Title) {
	switch {
	case title.Node != nil:
		inner.SetText("")
		if c.opts.HTML {
			inner.AppendChild(title.Node)
		}
	case title.Func != nil:
		text := title.Func(c.reference)
		if c.opts.HTML {
			inner.SetHTML(text)
		} else {
			inner.SetText(text)
		}
	default:
		if c.opts.HTML {
			inner.SetHTML(title.Text)
		} else {
			inner.SetText(title.Text)
		}
	}
}

// resolveContainer picks the parent for the floating node: configured
// element, selector against the document, or the reference's parent with the
// document body as a last resort.
func (c *Controller) resolveContainer() *dom.Element {
	if c.opts.Container.Element != nil {
		return c.opts.Container.Element
	}
	if sel := c.opts.Container.Selector; sel != "" {
		if el := c.doc.QuerySelector(sel); el != nil {
			return el
		}
	}
	if p := c.reference.Parent(); p != nil {
		return p
	}
	return c.doc.Body
}
