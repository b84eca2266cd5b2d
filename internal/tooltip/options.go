// Package tooltip implements the show/hide lifecycle of a floating tooltip
// attached to a reference element: trigger binding, delay-based scheduling,
// and creation, reuse and teardown of the floating node. Coordinate math is
// delegated entirely to a position.Engine.
package tooltip

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hoverkit/hoverkit/internal/dom"
	"github.com/hoverkit/hoverkit/internal/position"
)

// DefaultTemplate is the markup used when no template is configured. Custom
// templates must keep the same shape: one wrapper carrying the tooltip class,
// one arrow sub-node and one inner content sub-node matching the selector
// aliases below.
const DefaultTemplate = `<div class="tooltip" role="tooltip"><div class="tooltip-arrow"></div><div class="tooltip-inner"></div></div>`

const (
	innerSelector = ".tooltip-inner, .tooltip__inner"
	arrowSelector = ".tooltip-arrow, .tooltip__arrow"
)

// Delay is the debounce applied to trigger-initiated shows and hides.
// In YAML it is either a single number of milliseconds applied to both, or a
// {show, hide} pair.
type Delay struct {
	Show time.Duration
	Hide time.Duration
}

// UnmarshalYAML accepts `delay: 150` and `delay: {show: 300, hide: 100}`.
func (d *Delay) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var ms int
		if err := node.Decode(&ms); err != nil {
			return fmt.Errorf("invalid delay: %w", err)
		}
		d.Show = time.Duration(ms) * time.Millisecond
		d.Hide = d.Show
		return nil
	}
	var pair struct {
		Show int `yaml:"show"`
		Hide int `yaml:"hide"`
	}
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("invalid delay: %w", err)
	}
	d.Show = time.Duration(pair.Show) * time.Millisecond
	d.Hide = time.Duration(pair.Hide) * time.Millisecond
	return nil
}

// Milliseconds is a convenience constructor for a symmetric delay.
func Milliseconds(ms int) Delay {
	d := time.Duration(ms) * time.Millisecond
	return Delay{Show: d, Hide: d}
}

// Title is the configured tooltip content: literal text, a detached element,
// or a function invoked with the reference element on each show. At most one
// field is set; the reference element's live title attribute always takes
// precedence over all of them.
type Title struct {
	Text string
	Node *dom.Element
	Func func(reference *dom.Element) string
}

// UnmarshalYAML accepts the literal-text form only.
func (t *Title) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&t.Text)
}

func (t Title) empty() bool {
	return t.Text == "" && t.Node == nil && t.Func == nil
}

// Container designates where the floating node is appended: an explicit
// element, a selector resolved against the document, or — the zero value —
// the reference element's parent.
type Container struct {
	Element  *dom.Element
	Selector string
}

// UnmarshalYAML accepts a selector string or `false` for the parent fallback.
func (c *Container) UnmarshalYAML(node *yaml.Node) error {
	var b bool
	if err := node.Decode(&b); err == nil {
		*c = Container{}
		return nil
	}
	return node.Decode(&c.Selector)
}

// Offset displaces the floating element from its computed position. In YAML
// it is a bare number (both axes) or an "x,y" string.
type Offset struct {
	X int
	Y int
}

// UnmarshalYAML accepts `offset: 8` and `offset: "8,4"`.
func (o *Offset) UnmarshalYAML(node *yaml.Node) error {
	var n int
	if err := node.Decode(&n); err == nil {
		o.X, o.Y = n, n
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("invalid offset: %w", err)
	}
	x, y, err := position.ParseOffset(s)
	if err != nil {
		return err
	}
	o.X, o.Y = x, y
	return nil
}

// Options configures one controller. The zero value is usable: hover/focus
// triggers, no delay, top placement, default template, title from the
// reference's title attribute only.
type Options struct {
	Container  Container `yaml:"container"`
	Delay      Delay     `yaml:"delay"`
	HTML       bool      `yaml:"html"`
	Placement  string    `yaml:"placement"`
	Title      Title     `yaml:"title"`
	Template   string    `yaml:"template"`
	Trigger    string    `yaml:"trigger"`
	Boundaries *dom.Element `yaml:"-"`
	Offset     Offset       `yaml:"offset"`

	// PlacementFn overrides Placement with a per-update decision.
	PlacementFn func(floating, reference *dom.Element) string `yaml:"-"`
}

// resolveOptions fills unset fields with the defaults. Pure; the input is not
// modified.
func resolveOptions(user Options) Options {
	opts := user
	if opts.Placement == "" {
		opts.Placement = "top"
	}
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}
	if opts.Trigger == "" {
		opts.Trigger = "hover focus"
	}
	return opts
}
