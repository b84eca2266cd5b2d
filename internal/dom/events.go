package dom

// Event is a dispatched interaction event. RelatedTarget carries the element
// the pointer moved to (mouseleave) or from (mouseenter), when known.
type Event struct {
	Type          string
	Target        *Element
	RelatedTarget *Element

	consumed bool
}

// Consume marks the event as already handled by a direct trigger handler so
// that an opposite handler bound to the same physical event ignores it. This
// matters when a trigger maps the same event name to both directions (click).
func (ev *Event) Consume() { ev.consumed = true }

// Consumed reports whether Consume was called on this event.
func (ev *Event) Consumed() bool { return ev.consumed }

// Listener is a registered event callback. The returned handle is the token
// for removal; callbacks themselves are not comparable.
type Listener struct {
	event   string
	fn      func(*Event)
	once    bool
	removed bool
}

// On registers fn for the named event and returns its removal handle.
func (e *Element) On(event string, fn func(*Event)) *Listener {
	return e.addListener(event, fn, false)
}

// Once registers fn for the named event, removing it after the first dispatch.
func (e *Element) Once(event string, fn func(*Event)) *Listener {
	return e.addListener(event, fn, true)
}

func (e *Element) addListener(event string, fn func(*Event), once bool) *Listener {
	if e.listeners == nil {
		e.listeners = map[string][]*Listener{}
	}
	l := &Listener{event: event, fn: fn, once: once}
	e.listeners[event] = append(e.listeners[event], l)
	return l
}

// Off removes a previously registered listener. Removing twice is harmless.
func (e *Element) Off(l *Listener) {
	if l == nil || e.listeners == nil {
		return
	}
	ls := e.listeners[l.event]
	for i, cur := range ls {
		if cur == l {
			e.listeners[l.event] = append(ls[:i], ls[i+1:]...)
			l.removed = true
			return
		}
	}
}

// Dispatch synchronously invokes the listeners registered on e for ev.Type,
// in registration order. Listeners added during dispatch do not see the
// current event; once-listeners are removed before their callback runs.
func (e *Element) Dispatch(ev *Event) {
	if ev.Target == nil {
		ev.Target = e
	}
	ls := e.listeners[ev.Type]
	snapshot := make([]*Listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		if l.removed {
			continue
		}
		if l.once {
			e.Off(l)
		}
		l.fn(ev)
	}
}
