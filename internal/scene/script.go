package scene

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hoverkit/hoverkit/internal/dom"
	"github.com/hoverkit/hoverkit/internal/tooltip"
)

// StepResult is the outcome of a single script step.
type StepResult struct {
	Step    int    `yaml:"step"              json:"step"`
	OK      bool   `yaml:"ok"                json:"ok"`
	Action  string `yaml:"action"            json:"action"`
	Error   string `yaml:"error,omitempty"   json:"error,omitempty"`
	Target  string `yaml:"target,omitempty"  json:"target,omitempty"`
	Open    *bool  `yaml:"open,omitempty"    json:"open,omitempty"`
	Elapsed string `yaml:"elapsed,omitempty" json:"elapsed,omitempty"`
}

// RunResult is the outcome of a whole script run.
type RunResult struct {
	OK        bool           `yaml:"ok"                json:"ok"`
	Action    string         `yaml:"action"            json:"action"`
	Steps     int            `yaml:"steps"             json:"steps"`
	Completed int            `yaml:"completed"         json:"completed"`
	Error     string         `yaml:"error,omitempty"   json:"error,omitempty"`
	Results   []StepResult   `yaml:"results"           json:"results"`
	State     []TooltipState `yaml:"state"             json:"state"`
}

// RunScript parses a YAML step list and executes it sequentially. Each step
// is a single action key with a parameter map, e.g.
//
//	- hover:   { target: save-btn }
//	- advance: { ms: 300 }
//	- assert:  { target: save-btn, open: true }
//
// Supported actions: hover, leave, focus, blur, click, advance, show, hide,
// toggle, dispose, update-title, assert.
func (s *Scene) RunScript(data []byte, stopOnError bool) RunResult {
	res := RunResult{Action: "run"}

	var rawSteps []map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &rawSteps); err != nil {
		res.Error = fmt.Sprintf("failed to parse script: %v", err)
		return res
	}
	if len(rawSteps) == 0 {
		res.Error = "no steps provided — expected a YAML list of actions"
		return res
	}
	res.Steps = len(rawSteps)

	for i, step := range rawSteps {
		stepNum := i + 1
		if len(step) != 1 {
			r := StepResult{Step: stepNum, Error: fmt.Sprintf("expected exactly one action key, got %d", len(step))}
			res.Results = append(res.Results, r)
			if stopOnError {
				res.Error = fmt.Sprintf("step %d: %s", stepNum, r.Error)
				break
			}
			continue
		}
		for action, params := range step {
			r, err := s.executeStep(action, params)
			r.Step = stepNum
			r.Action = action
			if err != nil {
				r.OK = false
				r.Error = err.Error()
				res.Results = append(res.Results, r)
				if stopOnError {
					res.Error = fmt.Sprintf("step %d: %s", stepNum, err.Error())
					goto done
				}
			} else {
				r.OK = true
				res.Completed++
				res.Results = append(res.Results, r)
			}
		}
	}

done:
	res.OK = res.Error == "" && res.Completed == len(res.Results)
	res.State = s.Snapshot()
	return res
}

func (s *Scene) executeStep(action string, params map[string]interface{}) (StepResult, error) {
	switch action {
	case "hover", "leave", "focus", "blur", "click":
		target := stringParam(params, "target", "")
		related := stringParam(params, "to", stringParam(params, "from", ""))
		if err := s.DispatchEvent(action, target, related); err != nil {
			return StepResult{Target: target}, err
		}
		return StepResult{Target: target}, nil
	case "advance":
		ms := intParam(params, "ms", 0)
		if ms <= 0 {
			return StepResult{}, fmt.Errorf("advance requires a positive ms value")
		}
		d := time.Duration(ms) * time.Millisecond
		s.Advance(d)
		return StepResult{Elapsed: d.String()}, nil
	case "show", "hide", "toggle", "dispose":
		target := stringParam(params, "target", "")
		open, err := s.Apply(action, target)
		if err != nil {
			return StepResult{Target: target}, err
		}
		return StepResult{Target: target, Open: &open}, nil
	case "update-title":
		target := stringParam(params, "target", "")
		ctrl := s.controllers[target]
		if ctrl == nil {
			return StepResult{Target: target}, fmt.Errorf("no tooltip attached to %q", target)
		}
		ctrl.UpdateTitle(tooltip.Title{Text: stringParam(params, "title", "")})
		open := ctrl.IsOpen()
		return StepResult{Target: target, Open: &open}, nil
	case "assert":
		return s.executeAssert(params)
	default:
		return StepResult{}, fmt.Errorf("unknown step type %q — supported: hover, leave, focus, blur, click, advance, show, hide, toggle, dispose, update-title, assert", action)
	}
}

// eventKinds maps script/tool event kinds to dispatched event types.
var eventKinds = map[string]string{
	"hover": "mouseenter",
	"leave": "mouseleave",
	"focus": "focus",
	"blur":  "blur",
	"click": "click",
}

// DispatchEvent synthesizes one interaction event on the target. related
// names the element the pointer moved to or from, and may be empty.
func (s *Scene) DispatchEvent(kind, target, related string) error {
	eventType, ok := eventKinds[kind]
	if !ok {
		return fmt.Errorf("unknown event kind %q — supported: hover, leave, focus, blur, click", kind)
	}
	el, err := s.resolveTarget(target)
	if err != nil {
		return err
	}
	ev := &dom.Event{Type: eventType, Target: el}
	if related != "" {
		rel, err := s.resolveTarget(related)
		if err != nil {
			return err
		}
		ev.RelatedTarget = rel
	}
	el.Dispatch(ev)
	return nil
}

// Advance moves the virtual clock forward, firing any due timers.
func (s *Scene) Advance(d time.Duration) {
	s.Clock.Step(d)
}

// Apply runs a programmatic tooltip operation (show, hide, toggle, dispose)
// on the element's controller and returns the resulting open state.
func (s *Scene) Apply(op, target string) (bool, error) {
	if target == "" {
		return false, fmt.Errorf("missing target")
	}
	ctrl := s.controllers[target]
	if ctrl == nil {
		return false, fmt.Errorf("no tooltip attached to %q", target)
	}
	switch op {
	case "show":
		ctrl.Show()
	case "hide":
		ctrl.Hide()
	case "toggle":
		ctrl.Toggle()
	case "dispose":
		ctrl.Dispose()
	default:
		return false, fmt.Errorf("unknown operation %q", op)
	}
	return ctrl.IsOpen(), nil
}

// executeAssert checks tooltip state on the target element. Conditions:
// open (bool), visible (bool), created (bool), text (substring of the inner
// content).
func (s *Scene) executeAssert(params map[string]interface{}) (StepResult, error) {
	target := stringParam(params, "target", "")
	if target == "" {
		return StepResult{}, fmt.Errorf("missing target")
	}
	ctrl := s.controllers[target]
	if ctrl == nil {
		return StepResult{Target: target}, fmt.Errorf("no tooltip attached to %q", target)
	}
	state := s.tooltipState(target, ctrl)
	result := StepResult{Target: target, Open: &state.Open}

	if want, ok := boolParamOK(params, "open"); ok && state.Open != want {
		return result, fmt.Errorf("expected open=%v, got %v", want, state.Open)
	}
	if want, ok := boolParamOK(params, "visible"); ok && state.Visible != want {
		return result, fmt.Errorf("expected visible=%v, got %v", want, state.Visible)
	}
	if want, ok := boolParamOK(params, "created"); ok && state.Created != want {
		return result, fmt.Errorf("expected created=%v, got %v", want, state.Created)
	}
	if want := stringParam(params, "text", ""); want != "" && !strings.Contains(state.Text, want) {
		return result, fmt.Errorf("expected text containing %q, got %q", want, state.Text)
	}
	return result, nil
}

// stringParam extracts a string parameter with a default.
func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultVal
}

// intParam extracts an int parameter with a default. YAML numbers arrive as
// int; JSON round-trips may deliver float64.
func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return defaultVal
}

// boolParamOK extracts a bool parameter, reporting whether it was present.
func boolParamOK(params map[string]interface{}, key string) (bool, bool) {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b, true
		}
	}
	return false, false
}
