package tooltip

import "github.com/hoverkit/hoverkit/internal/dom"

// Timers here are one-shot and fire-and-forget: a later schedule call does
// not cancel an earlier pending timer of the same kind. Correctness comes
// from each callback re-checking state under the mutex before mutating, so a
// superseded timer degenerates to a no-op.

// scheduleShow arms the show timer. On firing it runs the normal show path.
func (c *Controller) scheduleShow() {
	c.clock.AfterFunc(c.opts.Delay.Show, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.show()
	})
}

// scheduleHide arms the hide timer for the event that requested it. The
// originating event matters: only a mouseleave can be rescued by the
// pointer-transfer check.
func (c *Controller) scheduleHide(ev *dom.Event) {
	c.clock.AfterFunc(c.opts.Delay.Hide, func() {
		c.hideTimerFired(ev)
	})
}

func (c *Controller) hideTimerFired(ev *dom.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		return
	}
	if c.floating == nil || !c.doc.Contains(c.floating) {
		// Dispose or an external removal won the race.
		return
	}
	if ev.Type == "mouseleave" && c.armPointerTransfer(ev) {
		return
	}
	c.hide()
}

// armPointerTransfer keeps the tooltip open while the pointer travels from
// the reference onto the floating node itself. When the event's related
// target sits inside the floating node, the pending hide is abandoned in
// favor of a one-shot listener on the floating node: once the pointer leaves
// it for anywhere other than the reference, the hide is rescheduled with the
// new event. Returns false when the pointer went elsewhere.
func (c *Controller) armPointerTransfer(ev *dom.Event) bool {
	if ev.RelatedTarget == nil || !c.floating.Contains(ev.RelatedTarget) {
		return false
	}
	l := c.floating.Once(ev.Type, func(next *dom.Event) {
		if next.RelatedTarget != nil && c.reference.Contains(next.RelatedTarget) {
			return
		}
		c.scheduleHide(next)
	})
	c.floatListeners = append(c.floatListeners, l)
	return true
}
