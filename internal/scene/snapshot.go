package scene

import (
	"github.com/hoverkit/hoverkit/internal/dom"
	"github.com/hoverkit/hoverkit/internal/tooltip"
)

// TooltipState is the observable state of one tooltip attachment.
type TooltipState struct {
	Element string `yaml:"element"          json:"element"`
	Open    bool   `yaml:"open"             json:"open"`
	Created bool   `yaml:"created"          json:"created"`
	Visible bool   `yaml:"visible"          json:"visible"`
	Text    string `yaml:"text,omitempty"   json:"text,omitempty"`
	Bounds  [4]int `yaml:"bounds,omitempty" json:"bounds,omitempty"`
}

// ElementNode is a serializable view of one element in the tree.
type ElementNode struct {
	ID       string        `yaml:"id,omitempty"      json:"id,omitempty"`
	Tag      string        `yaml:"tag"               json:"tag"`
	Title    string        `yaml:"title,omitempty"   json:"title,omitempty"`
	Classes  []string      `yaml:"classes,omitempty" json:"classes,omitempty"`
	Text     string        `yaml:"text,omitempty"    json:"text,omitempty"`
	Bounds   [4]int        `yaml:"bounds"            json:"bounds"`
	Display  string        `yaml:"display,omitempty" json:"display,omitempty"`
	Children []ElementNode `yaml:"children,omitempty" json:"children,omitempty"`
}

// Snapshot returns the state of every tooltip attachment, in file order.
func (s *Scene) Snapshot() []TooltipState {
	states := make([]TooltipState, 0, len(s.order))
	for _, id := range s.order {
		states = append(states, s.tooltipState(id, s.controllers[id]))
	}
	return states
}

func (s *Scene) tooltipState(id string, ctrl *tooltip.Controller) TooltipState {
	state := TooltipState{Element: id, Open: ctrl.IsOpen()}
	floating := ctrl.FloatingNode()
	if floating == nil {
		return state
	}
	state.Created = true
	state.Visible = floating.Style("display") != "none" && s.Doc.Contains(floating)
	state.Text = floating.Text()
	state.Bounds = [4]int{floating.Bounds.X, floating.Bounds.Y, floating.Bounds.W, floating.Bounds.H}
	return state
}

// Tree returns a serializable view of the whole document body.
func (s *Scene) Tree() []ElementNode {
	children := s.Doc.Body.Children()
	nodes := make([]ElementNode, 0, len(children))
	for _, c := range children {
		nodes = append(nodes, elementNode(c))
	}
	return nodes
}

func elementNode(e *dom.Element) ElementNode {
	n := ElementNode{
		ID:      e.Attr("id"),
		Tag:     e.Tag(),
		Title:   e.Attr("title"),
		Classes: e.Classes(),
		Bounds:  [4]int{e.Bounds.X, e.Bounds.Y, e.Bounds.W, e.Bounds.H},
		Display: e.Style("display"),
	}
	if len(e.Children()) == 0 {
		n.Text = e.Text()
	}
	for _, c := range e.Children() {
		n.Children = append(n.Children, elementNode(c))
	}
	return n
}
