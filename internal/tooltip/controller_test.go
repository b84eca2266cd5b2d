package tooltip

import (
	"testing"
	"time"

	testclock "k8s.io/utils/clock/testing"

	"github.com/hoverkit/hoverkit/internal/dom"
)

// fixture builds a document with a parented reference element carrying
// title="Hi", plus a controller on a fake clock.
type fixture struct {
	doc    *dom.Document
	parent *dom.Element
	ref    *dom.Element
	clock  *testclock.FakeClock
	ctrl   *Controller
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	doc := dom.NewDocument()
	parent := dom.NewElement("div")
	doc.Body.AppendChild(parent)
	ref := dom.NewElement("button")
	ref.SetAttr("title", "Hi")
	ref.Bounds = dom.Rect{X: 100, Y: 100, W: 80, H: 24}
	parent.AppendChild(ref)
	clk := testclock.NewFakeClock(time.Now())
	ctrl := New(doc, ref, opts, Env{Clock: clk})
	return &fixture{doc: doc, parent: parent, ref: ref, clock: clk, ctrl: ctrl}
}

func (f *fixture) enter() {
	f.ref.Dispatch(&dom.Event{Type: "mouseenter", Target: f.ref})
}

func (f *fixture) leave(to *dom.Element) {
	f.ref.Dispatch(&dom.Event{Type: "mouseleave", Target: f.ref, RelatedTarget: to})
}

func (f *fixture) click() {
	f.ref.Dispatch(&dom.Event{Type: "click", Target: f.ref})
}

func countTooltips(parent *dom.Element) int {
	n := 0
	for _, c := range parent.Children() {
		if c.HasClass("tooltip") {
			n++
		}
	}
	return n
}

func TestHideWhenClosedIsNoOp(t *testing.T) {
	f := newFixture(t, Options{})
	f.ctrl.Hide()
	if f.ctrl.IsOpen() {
		t.Error("controller should stay closed")
	}
	if f.ctrl.FloatingNode() != nil {
		t.Error("no floating node should be created by Hide")
	}
	if countTooltips(f.parent) != 0 {
		t.Error("DOM should be unchanged")
	}
}

func TestShowWhenOpenIsNoOp(t *testing.T) {
	f := newFixture(t, Options{})
	f.ctrl.Show().Show()
	if !f.ctrl.IsOpen() {
		t.Fatal("controller should be open")
	}
	if got := countTooltips(f.parent); got != 1 {
		t.Errorf("expected exactly 1 floating element, got %d", got)
	}
}

func TestTitleAttributeOverridesConfigured(t *testing.T) {
	f := newFixture(t, Options{Title: Title{Text: "fallback"}})
	f.ctrl.Show()
	inner := f.ctrl.FloatingNode().Find(".tooltip-inner")
	if got := inner.Text(); got != "Hi" {
		t.Errorf("expected attribute title %q, got %q", "Hi", got)
	}
}

func TestConfiguredTitleUsedWhenAttributeAbsent(t *testing.T) {
	f := newFixture(t, Options{Title: Title{Text: "fallback"}})
	f.ref.SetAttr("title", "")
	f.ctrl.Show()
	inner := f.ctrl.FloatingNode().Find(".tooltip-inner")
	if got := inner.Text(); got != "fallback" {
		t.Errorf("expected configured title %q, got %q", "fallback", got)
	}
}

func TestEmptyTitleNeverCreatesTooltip(t *testing.T) {
	f := newFixture(t, Options{})
	f.ref.SetAttr("title", "")
	f.ctrl.Show()
	if f.ctrl.IsOpen() {
		t.Error("controller should stay closed without a title")
	}
	if f.ctrl.FloatingNode() != nil {
		t.Error("floating node should not be created without a title")
	}
}

func TestDelaySemantics(t *testing.T) {
	f := newFixture(t, Options{
		Delay: Delay{Show: 300 * time.Millisecond, Hide: 100 * time.Millisecond},
	})

	f.enter()
	f.clock.Step(200 * time.Millisecond)
	if f.ctrl.IsOpen() {
		t.Fatal("tooltip must not show before the 300ms show delay")
	}
	f.clock.Step(100 * time.Millisecond)
	if !f.ctrl.IsOpen() {
		t.Fatal("tooltip should show once the show delay elapsed")
	}

	f.leave(nil)
	f.clock.Step(50 * time.Millisecond)
	if !f.ctrl.IsOpen() {
		t.Fatal("tooltip must not hide before the 100ms hide delay")
	}
	f.clock.Step(50 * time.Millisecond)
	if f.ctrl.IsOpen() {
		t.Fatal("tooltip should hide once the hide delay elapsed")
	}
}

func TestPointerTransferKeepsTooltipOpen(t *testing.T) {
	f := newFixture(t, Options{
		Delay: Delay{Hide: 100 * time.Millisecond},
	})
	f.enter()
	f.clock.Step(time.Millisecond)
	if !f.ctrl.IsOpen() {
		t.Fatal("tooltip should be open")
	}
	floating := f.ctrl.FloatingNode()
	inner := floating.Find(".tooltip-inner")

	// Pointer moves from the reference onto the tooltip content.
	f.leave(inner)
	f.clock.Step(200 * time.Millisecond)
	if !f.ctrl.IsOpen() {
		t.Fatal("tooltip must survive while the pointer is over it")
	}

	// Pointer leaves the tooltip for an unrelated element.
	outside := dom.NewElement("div")
	f.doc.Body.AppendChild(outside)
	floating.Dispatch(&dom.Event{Type: "mouseleave", Target: floating, RelatedTarget: outside})
	f.clock.Step(100 * time.Millisecond)
	if f.ctrl.IsOpen() {
		t.Fatal("tooltip should close once the pointer left both elements")
	}
}

func TestPointerTransferBackToReference(t *testing.T) {
	f := newFixture(t, Options{Delay: Delay{Hide: 50 * time.Millisecond}})
	f.enter()
	f.clock.Step(time.Millisecond)
	floating := f.ctrl.FloatingNode()

	f.leave(floating)
	f.clock.Step(50 * time.Millisecond)

	// Pointer returns from the tooltip to the reference: no hide.
	floating.Dispatch(&dom.Event{Type: "mouseleave", Target: floating, RelatedTarget: f.ref})
	f.clock.Step(500 * time.Millisecond)
	if !f.ctrl.IsOpen() {
		t.Fatal("tooltip should stay open when the pointer returns to the reference")
	}
}

func TestToggleAlternatesAndReusesFloatingNode(t *testing.T) {
	f := newFixture(t, Options{})
	f.ctrl.Toggle()
	if !f.ctrl.IsOpen() {
		t.Fatal("first toggle should open")
	}
	first := f.ctrl.FloatingNode()
	f.ctrl.Toggle()
	if f.ctrl.IsOpen() {
		t.Fatal("second toggle should close")
	}
	f.ctrl.Toggle()
	if got := f.ctrl.FloatingNode(); got != first {
		t.Error("re-open must reuse the original floating node, not recreate it")
	}
	if got := countTooltips(f.parent); got != 1 {
		t.Errorf("expected exactly 1 floating element, got %d", got)
	}
}

func TestDisposeRemovesFloatingAndListeners(t *testing.T) {
	f := newFixture(t, Options{})
	f.ctrl.Show()
	floating := f.ctrl.FloatingNode()
	f.ctrl.Dispose()

	if f.doc.Contains(floating) {
		t.Error("floating node should be removed from the document")
	}
	if f.ctrl.FloatingNode() != nil {
		t.Error("floating reference should be cleared")
	}

	// Trigger listeners are gone: hovering does nothing anymore.
	f.enter()
	f.clock.Step(time.Millisecond)
	if f.ctrl.IsOpen() {
		t.Error("disposed controller must ignore trigger events")
	}
}

func TestDisposeTwiceIsSafe(t *testing.T) {
	f := newFixture(t, Options{})
	f.ctrl.Show()
	f.ctrl.Dispose().Dispose()
	if f.ctrl.IsOpen() {
		t.Error("controller should be closed after dispose")
	}
}

func TestClickTriggerEndToEnd(t *testing.T) {
	f := newFixture(t, Options{Trigger: "click"})

	f.click()
	f.clock.Step(time.Millisecond)
	if !f.ctrl.IsOpen() {
		t.Fatal("click should open the tooltip")
	}
	floating := f.ctrl.FloatingNode()
	if !floating.HasClass("tooltip") {
		t.Error("floating element should carry the tooltip class")
	}
	if floating.Parent() != f.parent {
		t.Error("floating element should be appended under the reference's parent")
	}
	if got := floating.Find(".tooltip-inner").Text(); got != "Hi" {
		t.Errorf("inner content should be %q, got %q", "Hi", got)
	}

	// Second click: the direct handler no-ops on the open state without
	// consuming, so the opposite handler hides.
	f.click()
	f.clock.Step(time.Millisecond)
	if f.ctrl.IsOpen() {
		t.Fatal("second click should close the tooltip")
	}
	if !f.doc.Contains(floating) {
		t.Error("floating element should stay in the DOM when hidden")
	}
	if floating.Style("display") != "none" {
		t.Error("hidden floating element should have display suppressed")
	}
}

func TestHoverWhileOpenConsumesNothing(t *testing.T) {
	f := newFixture(t, Options{})
	f.enter()
	f.clock.Step(time.Millisecond)
	if !f.ctrl.IsOpen() {
		t.Fatal("tooltip should be open")
	}
	// A second enter while open is ignored and arms no extra timer.
	f.enter()
	f.clock.Step(time.Hour)
	if !f.ctrl.IsOpen() {
		t.Error("tooltip should still be open")
	}
	if got := countTooltips(f.parent); got != 1 {
		t.Errorf("expected exactly 1 floating element, got %d", got)
	}
}

func TestRapidToggleQueuesIndependentTimers(t *testing.T) {
	// Two show requests arm two timers; neither is cancelled, and the second
	// firing is a no-op against the already-open state.
	f := newFixture(t, Options{Delay: Milliseconds(100), Trigger: "hover"})
	f.enter()
	f.leave(nil)
	f.enter()
	f.clock.Step(100 * time.Millisecond)
	if got := countTooltips(f.parent); got != 1 {
		t.Errorf("expected exactly 1 floating element, got %d", got)
	}
}

func TestManualTriggerBindsNoListeners(t *testing.T) {
	f := newFixture(t, Options{Trigger: "manual"})
	f.enter()
	f.click()
	f.clock.Step(time.Second)
	if f.ctrl.IsOpen() {
		t.Error("manual trigger must not react to events")
	}
	f.ctrl.Show()
	if !f.ctrl.IsOpen() {
		t.Error("programmatic show should still work with manual trigger")
	}
}

func TestFocusTrigger(t *testing.T) {
	f := newFixture(t, Options{Trigger: "focus"})
	f.ref.Dispatch(&dom.Event{Type: "focus", Target: f.ref})
	f.clock.Step(time.Millisecond)
	if !f.ctrl.IsOpen() {
		t.Fatal("focus should open the tooltip")
	}
	f.ref.Dispatch(&dom.Event{Type: "blur", Target: f.ref})
	f.clock.Step(time.Millisecond)
	if f.ctrl.IsOpen() {
		t.Fatal("blur should close the tooltip")
	}
}

func TestHTMLTitleInjection(t *testing.T) {
	f := newFixture(t, Options{HTML: true, Title: Title{Text: "<b>bold</b>"}})
	f.ref.SetAttr("title", "")
	f.ctrl.Show()
	inner := f.ctrl.FloatingNode().Find(".tooltip-inner")
	if inner.Find("b") == nil {
		t.Error("markup title should be parsed into elements when html is enabled")
	}
}

func TestPlainTitleIsNotParsed(t *testing.T) {
	f := newFixture(t, Options{})
	f.ref.SetAttr("title", "<b>bold</b>")
	f.ctrl.Show()
	inner := f.ctrl.FloatingNode().Find(".tooltip-inner")
	if inner.Find("b") != nil {
		t.Error("markup must stay literal when html is disabled")
	}
	if got := inner.Text(); got != "<b>bold</b>" {
		t.Errorf("expected literal text, got %q", got)
	}
}

func TestNodeTitleInjectedOnlyWithHTML(t *testing.T) {
	node := dom.NewElement("span")
	node.SetText("rich")

	f := newFixture(t, Options{Title: Title{Node: node}})
	f.ref.SetAttr("title", "")
	f.ctrl.Show()
	if !f.ctrl.IsOpen() {
		t.Fatal("node title should still create the tooltip")
	}
	if got := f.ctrl.FloatingNode().Find(".tooltip-inner").Text(); got != "" {
		t.Errorf("node title must be dropped when html is disabled, got %q", got)
	}

	f2 := newFixture(t, Options{HTML: true, Title: Title{Node: node}})
	f2.ref.SetAttr("title", "")
	f2.ctrl.Show()
	if got := f2.ctrl.FloatingNode().Find(".tooltip-inner").Text(); got != "rich" {
		t.Errorf("node title should be appended when html is enabled, got %q", got)
	}
}

func TestFuncTitleReceivesReference(t *testing.T) {
	var seen *dom.Element
	f := newFixture(t, Options{Title: Title{Func: func(ref *dom.Element) string {
		seen = ref
		return "computed"
	}}})
	f.ref.SetAttr("title", "")
	f.ctrl.Show()
	if seen != f.ref {
		t.Error("title function should be invoked with the reference element")
	}
	if got := f.ctrl.FloatingNode().Find(".tooltip-inner").Text(); got != "computed" {
		t.Errorf("expected computed title, got %q", got)
	}
}

func TestContainerSelector(t *testing.T) {
	f := newFixture(t, Options{Container: Container{Selector: "#overlay-root"}})
	overlay := dom.NewElement("div")
	overlay.SetAttr("id", "overlay-root")
	f.doc.Body.AppendChild(overlay)

	f.ctrl.Show()
	if got := f.ctrl.FloatingNode().Parent(); got != overlay {
		t.Error("floating node should be appended into the selector-resolved container")
	}
}

func TestUpdateTitle(t *testing.T) {
	f := newFixture(t, Options{})
	f.ctrl.UpdateTitle(Title{Text: "early"})
	if f.ctrl.FloatingNode() != nil {
		t.Fatal("UpdateTitle must not materialize the floating node")
	}
	f.ctrl.Show()
	if got := f.ctrl.FloatingNode().Find(".tooltip-inner").Text(); got != "Hi" {
		t.Errorf("title attribute should still win over the stored title, got %q", got)
	}
	f.ctrl.UpdateTitle(Title{Text: "changed"})
	if got := f.ctrl.FloatingNode().Find(".tooltip-inner").Text(); got != "changed" {
		t.Errorf("expected updated title, got %q", got)
	}
}

func TestHideTimerAbortsAfterDispose(t *testing.T) {
	f := newFixture(t, Options{Delay: Delay{Hide: 100 * time.Millisecond}})
	f.enter()
	f.clock.Step(time.Millisecond)
	f.leave(nil)
	f.ctrl.Dispose()
	// The pending hide timer fires against a disposed controller.
	f.clock.Step(time.Second)
	if f.ctrl.IsOpen() {
		t.Error("controller should remain closed")
	}
}
