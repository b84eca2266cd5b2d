package tooltip

import "strings"

// Event names for each trigger mode: the direct event schedules a show, the
// opposite event schedules a hide. For click both directions share one event
// name, which is why direct handlers consume the event before opposite
// handlers see it.
var triggerEvents = map[string]struct{ direct, opposite string }{
	"hover": {"mouseenter", "mouseleave"},
	"focus": {"focus", "blur"},
	"click": {"click", "click"},
}

// parseTriggers filters a space-separated trigger string down to the known
// interactive modes, preserving order. "manual" and unknown tokens bind
// nothing.
func parseTriggers(trigger string) []string {
	var out []string
	for _, tok := range strings.Fields(trigger) {
		if _, ok := triggerEvents[tok]; ok {
			out = append(out, tok)
		}
	}
	return out
}

// bindTriggers attaches the trigger listeners to the reference element and
// records their handles for symmetric teardown in Dispose.
func (c *Controller) bindTriggers() {
	var direct, opposite []string
	for _, mode := range parseTriggers(c.opts.Trigger) {
		ev := triggerEvents[mode]
		direct = append(direct, ev.direct)
		opposite = append(opposite, ev.opposite)
	}

	for _, event := range direct {
		l := c.reference.On(event, c.onDirect)
		c.refListeners = append(c.refListeners, l)
	}
	for _, event := range distinct(opposite) {
		l := c.reference.On(event, c.onOpposite)
		c.refListeners = append(c.refListeners, l)
	}
}

func distinct(names []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
