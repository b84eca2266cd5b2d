package dom

import "testing"

func TestDispatchOrder(t *testing.T) {
	el := NewElement("button")
	var calls []string
	el.On("click", func(*Event) { calls = append(calls, "first") })
	el.On("click", func(*Event) { calls = append(calls, "second") })

	el.Dispatch(&Event{Type: "click"})
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("listeners should run in registration order, got %v", calls)
	}
}

func TestDispatchSetsTarget(t *testing.T) {
	el := NewElement("button")
	var target *Element
	el.On("click", func(ev *Event) { target = ev.Target })
	el.Dispatch(&Event{Type: "click"})
	if target != el {
		t.Error("dispatch should default the target to the element")
	}
}

func TestOnceFiresOnce(t *testing.T) {
	el := NewElement("div")
	count := 0
	el.Once("mouseleave", func(*Event) { count++ })
	el.Dispatch(&Event{Type: "mouseleave"})
	el.Dispatch(&Event{Type: "mouseleave"})
	if count != 1 {
		t.Errorf("once listener should fire exactly once, fired %d times", count)
	}
}

func TestOffRemovesListener(t *testing.T) {
	el := NewElement("div")
	count := 0
	l := el.On("focus", func(*Event) { count++ })
	el.Off(l)
	el.Off(l)
	el.Dispatch(&Event{Type: "focus"})
	if count != 0 {
		t.Error("removed listener must not fire")
	}
}

func TestRemovedDuringDispatchIsSkipped(t *testing.T) {
	el := NewElement("div")
	var l2 *Listener
	fired := false
	el.On("click", func(*Event) { el.Off(l2) })
	l2 = el.On("click", func(*Event) { fired = true })
	el.Dispatch(&Event{Type: "click"})
	if fired {
		t.Error("listener removed mid-dispatch must not fire")
	}
}

func TestConsume(t *testing.T) {
	ev := &Event{Type: "click"}
	if ev.Consumed() {
		t.Error("new events are not consumed")
	}
	ev.Consume()
	if !ev.Consumed() {
		t.Error("Consume should mark the event")
	}
}
