// Package position computes and maintains floating-element coordinates
// relative to a reference element. The tooltip core treats the engine as an
// opaque collaborator: it hands over the two elements and placement options,
// then only ever calls Update and Destroy on the returned handle.
package position

import (
	"fmt"
	"strings"

	"github.com/hoverkit/hoverkit/internal/dom"
)

// Options configures one engine instance.
type Options struct {
	// Placement is one of top, bottom, left, right, optionally suffixed with
	// -start or -end ("top-start"). Ignored when PlacementFn is set.
	Placement string

	// PlacementFn, when set, is consulted on every update and may return a
	// different placement per call.
	PlacementFn func(floating, reference *dom.Element) string

	// ArrowSelector locates the arrow sub-node inside the floating element.
	ArrowSelector string

	// Boundaries, when set, clamps the floating element into this element's
	// bounds.
	Boundaries *dom.Element

	// OffsetX and OffsetY displace the floating element from its computed
	// position.
	OffsetX int
	OffsetY int
}

// Handle is a live positioning instance bound to one reference/floating pair.
type Handle interface {
	// Update recomputes the floating element's coordinates.
	Update()
	// Destroy releases the instance. The handle must not be used afterwards.
	Destroy()
}

// Engine creates positioning instances.
type Engine interface {
	Create(reference, floating *dom.Element, opts Options) (Handle, error)
}

// ParseOffset parses an offset value: a bare number displaces along the
// placement's main axis ("8" or 8), a pair displaces both axes ("8,4").
func ParseOffset(s string) (x, y int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil
	}
	parts := strings.Split(s, ",")
	switch len(parts) {
	case 1:
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[0]), "%d", &x); err != nil {
			return 0, 0, fmt.Errorf("invalid offset %q: %w", s, err)
		}
		return x, x, nil
	case 2:
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[0]), "%d", &x); err != nil {
			return 0, 0, fmt.Errorf("invalid offset %q: %w", s, err)
		}
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[1]), "%d", &y); err != nil {
			return 0, 0, fmt.Errorf("invalid offset %q: %w", s, err)
		}
		return x, y, nil
	default:
		return 0, 0, fmt.Errorf("invalid offset %q: expected n or x,y", s)
	}
}
