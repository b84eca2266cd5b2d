// Package scene loads a YAML description of a UI element tree with tooltip
// attachments and replays interaction scripts against it on a virtual clock,
// so tooltip behavior (delays included) is fully deterministic.
package scene

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	testclock "k8s.io/utils/clock/testing"

	"github.com/hoverkit/hoverkit/internal/dom"
	"github.com/hoverkit/hoverkit/internal/position"
	"github.com/hoverkit/hoverkit/internal/tooltip"
)

// elementSpec is one element in the scene file.
type elementSpec struct {
	ID       string        `yaml:"id"`
	Tag      string        `yaml:"tag"`
	Title    string        `yaml:"title"`
	Text     string        `yaml:"text"`
	Classes  []string      `yaml:"classes"`
	Bounds   [4]int        `yaml:"bounds"`
	Children []elementSpec `yaml:"children"`
}

// attachSpec binds tooltip options to an element by id.
type attachSpec struct {
	Element    string          `yaml:"element"`
	Boundaries string          `yaml:"boundaries"`
	Options    tooltip.Options `yaml:"options"`
}

type sceneSpec struct {
	Canvas   [2]int        `yaml:"canvas"`
	Elements []elementSpec `yaml:"elements"`
	Tooltips []attachSpec  `yaml:"tooltips"`
}

// Scene is a built element tree with its tooltip controllers and the fake
// clock that drives their delays.
type Scene struct {
	Doc   *dom.Document
	Clock *testclock.FakeClock

	// Canvas is the render surface size, [w, h].
	Canvas [2]int

	elements    map[string]*dom.Element
	controllers map[string]*tooltip.Controller
	order       []string
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return Parse(data)
}

// Parse builds a scene from YAML.
func Parse(data []byte) (*Scene, error) {
	var spec sceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if len(spec.Elements) == 0 {
		return nil, fmt.Errorf("scene has no elements")
	}

	s := &Scene{
		Doc:         dom.NewDocument(),
		Clock:       testclock.NewFakeClock(time.Now()),
		Canvas:      spec.Canvas,
		elements:    map[string]*dom.Element{},
		controllers: map[string]*tooltip.Controller{},
	}
	if s.Canvas[0] == 0 || s.Canvas[1] == 0 {
		s.Canvas = [2]int{640, 480}
	}

	for _, es := range spec.Elements {
		el, err := s.buildElement(es)
		if err != nil {
			return nil, err
		}
		s.Doc.Body.AppendChild(el)
	}

	env := tooltip.Env{Engine: position.NewBoundsEngine(), Clock: s.Clock}
	for _, as := range spec.Tooltips {
		ref, ok := s.elements[as.Element]
		if !ok {
			return nil, fmt.Errorf("tooltip references unknown element %q", as.Element)
		}
		if _, dup := s.controllers[as.Element]; dup {
			return nil, fmt.Errorf("element %q has more than one tooltip", as.Element)
		}
		opts := as.Options
		if as.Boundaries != "" {
			b, ok := s.elements[as.Boundaries]
			if !ok {
				return nil, fmt.Errorf("tooltip on %q references unknown boundaries element %q", as.Element, as.Boundaries)
			}
			opts.Boundaries = b
		}
		s.controllers[as.Element] = tooltip.New(s.Doc, ref, opts, env)
		s.order = append(s.order, as.Element)
	}
	return s, nil
}

func (s *Scene) buildElement(es elementSpec) (*dom.Element, error) {
	tag := es.Tag
	if tag == "" {
		tag = "div"
	}
	el := dom.NewElement(tag)
	if es.ID != "" {
		if _, dup := s.elements[es.ID]; dup {
			return nil, fmt.Errorf("duplicate element id %q", es.ID)
		}
		el.SetAttr("id", es.ID)
		s.elements[es.ID] = el
	}
	if es.Title != "" {
		el.SetAttr("title", es.Title)
	}
	for _, c := range es.Classes {
		el.AddClass(c)
	}
	if es.Text != "" {
		el.SetText(es.Text)
	}
	el.Bounds = dom.Rect{X: es.Bounds[0], Y: es.Bounds[1], W: es.Bounds[2], H: es.Bounds[3]}
	for _, cs := range es.Children {
		child, err := s.buildElement(cs)
		if err != nil {
			return nil, err
		}
		el.AppendChild(child)
	}
	return el, nil
}

// Element returns the element registered under id, or nil.
func (s *Scene) Element(id string) *dom.Element { return s.elements[id] }

// Controller returns the tooltip controller attached to the element id, or
// nil.
func (s *Scene) Controller(id string) *tooltip.Controller { return s.controllers[id] }

// Attachments returns the element ids carrying tooltips, in file order.
func (s *Scene) Attachments() []string { return s.order }

// resolveTarget maps a script target to an element: a plain id, or
// "tooltip:<id>" for the floating node of that element's tooltip.
func (s *Scene) resolveTarget(target string) (*dom.Element, error) {
	if target == "" {
		return nil, fmt.Errorf("missing target")
	}
	if id, ok := strings.CutPrefix(target, "tooltip:"); ok {
		ctrl := s.controllers[id]
		if ctrl == nil {
			return nil, fmt.Errorf("no tooltip attached to %q", id)
		}
		if ctrl.FloatingNode() == nil {
			return nil, fmt.Errorf("tooltip on %q has no floating node yet", id)
		}
		return ctrl.FloatingNode(), nil
	}
	el, ok := s.elements[target]
	if !ok {
		return nil, fmt.Errorf("unknown element %q", target)
	}
	return el, nil
}
