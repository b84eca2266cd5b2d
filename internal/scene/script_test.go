package scene

import (
	"strings"
	"testing"
)

const clickScene = `
elements:
  - id: panel
    bounds: [0, 0, 400, 300]
    children:
      - id: menu-btn
        tag: button
        title: Open menu
        bounds: [40, 40, 60, 24]
tooltips:
  - element: menu-btn
    options:
      trigger: click
`

func runScript(t *testing.T, s *Scene, script string, stopOnError bool) RunResult {
	t.Helper()
	return s.RunScript([]byte(script), stopOnError)
}

func TestRunScriptHoverShowHide(t *testing.T) {
	s := mustParse(t, basicScene)
	res := runScript(t, s, `
- hover:   { target: save-btn }
- assert:  { target: save-btn, open: false }
- advance: { ms: 300 }
- assert:  { target: save-btn, open: true, visible: true, text: "Save your work" }
- leave:   { target: save-btn, to: panel }
- advance: { ms: 100 }
- assert:  { target: save-btn, open: false, created: true }
`, true)
	if !res.OK {
		t.Fatalf("script failed: %s\nresults: %+v", res.Error, res.Results)
	}
	if res.Completed != 7 {
		t.Errorf("expected 7 completed steps, got %d", res.Completed)
	}
	if len(res.State) != 1 || res.State[0].Open {
		t.Errorf("final state should report a closed tooltip: %+v", res.State)
	}
}

func TestRunScriptPointerTransfer(t *testing.T) {
	s := mustParse(t, basicScene)
	res := runScript(t, s, `
- hover:   { target: save-btn }
- advance: { ms: 300 }
- leave:   { target: save-btn, to: "tooltip:save-btn" }
- advance: { ms: 100 }
- assert:  { target: save-btn, open: true }
- leave:   { target: "tooltip:save-btn", to: panel }
- advance: { ms: 100 }
- assert:  { target: save-btn, open: false }
`, true)
	if !res.OK {
		t.Fatalf("script failed: %s\nresults: %+v", res.Error, res.Results)
	}
}

func TestRunScriptPointerReturnsToReference(t *testing.T) {
	s := mustParse(t, basicScene)
	res := runScript(t, s, `
- hover:   { target: save-btn }
- advance: { ms: 300 }
- leave:   { target: save-btn, to: "tooltip:save-btn" }
- advance: { ms: 100 }
- leave:   { target: "tooltip:save-btn", to: save-btn }
- advance: { ms: 1000 }
- assert:  { target: save-btn, open: true }
`, true)
	if !res.OK {
		t.Fatalf("script failed: %s\nresults: %+v", res.Error, res.Results)
	}
}

func TestRunScriptClickTrigger(t *testing.T) {
	s := mustParse(t, clickScene)
	res := runScript(t, s, `
- click:   { target: menu-btn }
- advance: { ms: 1 }
- assert:  { target: menu-btn, open: true }
- click:   { target: menu-btn }
- advance: { ms: 1 }
- assert:  { target: menu-btn, open: false }
`, true)
	if !res.OK {
		t.Fatalf("script failed: %s\nresults: %+v", res.Error, res.Results)
	}
}

func TestRunScriptProgrammaticOps(t *testing.T) {
	s := mustParse(t, basicScene)
	res := runScript(t, s, `
- show:    { target: save-btn }
- assert:  { target: save-btn, open: true }
- toggle:  { target: save-btn }
- assert:  { target: save-btn, open: false }
- dispose: { target: save-btn }
- assert:  { target: save-btn, created: false }
`, true)
	if !res.OK {
		t.Fatalf("script failed: %s\nresults: %+v", res.Error, res.Results)
	}
	show := res.Results[0]
	if show.Open == nil || !*show.Open {
		t.Error("show step should report open=true")
	}
}

func TestRunScriptUpdateTitle(t *testing.T) {
	s := mustParse(t, basicScene)
	s.Element("save-btn").SetAttr("title", "")
	res := runScript(t, s, `
- update-title: { target: save-btn, title: "Fresh text" }
- show:         { target: save-btn }
- assert:       { target: save-btn, open: true, text: "Fresh text" }
`, true)
	if !res.OK {
		t.Fatalf("script failed: %s\nresults: %+v", res.Error, res.Results)
	}
}

func TestRunScriptStopOnError(t *testing.T) {
	s := mustParse(t, basicScene)
	res := runScript(t, s, `
- hover:  { target: nope }
- assert: { target: save-btn, open: false }
`, true)
	if res.OK {
		t.Fatal("script with a bad target should fail")
	}
	if !strings.Contains(res.Error, "unknown element") {
		t.Errorf("error should name the bad target: %q", res.Error)
	}
	if len(res.Results) != 1 {
		t.Errorf("stop-on-error should halt after the failed step, got %d results", len(res.Results))
	}
}

func TestRunScriptContinuesPastErrors(t *testing.T) {
	s := mustParse(t, basicScene)
	res := runScript(t, s, `
- hover:  { target: nope }
- assert: { target: save-btn, open: false }
`, false)
	if res.OK {
		t.Fatal("run with a failed step should not be OK")
	}
	if res.Completed != 1 || len(res.Results) != 2 {
		t.Errorf("expected the second step to still run: completed=%d results=%d", res.Completed, len(res.Results))
	}
}

func TestRunScriptFailedAssertReportsState(t *testing.T) {
	s := mustParse(t, basicScene)
	res := runScript(t, s, `- assert: { target: save-btn, open: true }`, true)
	if res.OK {
		t.Fatal("assert against a closed tooltip should fail")
	}
	r := res.Results[0]
	if r.Open == nil || *r.Open {
		t.Error("failed assert should still report the observed open state")
	}
	if !strings.Contains(r.Error, "expected open=true") {
		t.Errorf("unexpected assert error: %q", r.Error)
	}
}

func TestRunScriptRejectsMalformedSteps(t *testing.T) {
	s := mustParse(t, basicScene)

	res := runScript(t, s, `[]`, true)
	if res.OK || !strings.Contains(res.Error, "no steps") {
		t.Errorf("empty script should be rejected: %+v", res)
	}

	res = runScript(t, s, `- warp: { target: save-btn }`, true)
	if res.OK || !strings.Contains(res.Error, "unknown step type") {
		t.Errorf("unknown action should be rejected: %+v", res)
	}

	res = runScript(t, s, `- advance: { ms: -5 }`, true)
	if res.OK || !strings.Contains(res.Error, "positive ms") {
		t.Errorf("negative advance should be rejected: %+v", res)
	}

	res = runScript(t, s, "- hover: { target: save-btn }\n  leave: { target: save-btn }", true)
	if res.OK || !strings.Contains(res.Error, "exactly one action") {
		t.Errorf("multi-key step should be rejected: %+v", res)
	}
}

func TestDispatchEventUnknownKind(t *testing.T) {
	s := mustParse(t, basicScene)
	if err := s.DispatchEvent("wiggle", "save-btn", ""); err == nil {
		t.Error("expected error for unknown event kind")
	}
}

func TestApplyErrors(t *testing.T) {
	s := mustParse(t, basicScene)
	if _, err := s.Apply("show", ""); err == nil {
		t.Error("expected error for missing target")
	}
	if _, err := s.Apply("show", "panel"); err == nil {
		t.Error("expected error for element without a tooltip")
	}
	if _, err := s.Apply("vanish", "save-btn"); err == nil {
		t.Error("expected error for unknown operation")
	}
}
