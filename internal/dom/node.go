// Package dom implements the in-memory element tree that tooltip controllers
// operate on. It is a deliberately small substrate: elements with attributes,
// classes, inline styles and bounds, plus synchronous event dispatch. There is
// no layout engine and no event bubbling — events are dispatched directly to
// the element they target, which is all the tooltip machinery needs.
package dom

import "strings"

// Rect is an element's bounding rectangle in scene coordinates.
type Rect struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
	W int `yaml:"w" json:"w"`
	H int `yaml:"h" json:"h"`
}

// Element is a node in the tree. Create elements with NewElement and wire
// them together with AppendChild; an element belongs to at most one parent.
type Element struct {
	tag       string
	parent    *Element
	children  []*Element
	attrs     map[string]string
	styles    map[string]string
	text      string
	listeners map[string][]*Listener

	// Bounds is writable by callers (scene setup, positioning engines).
	Bounds Rect
}

// NewElement returns a detached element with the given tag.
func NewElement(tag string) *Element {
	return &Element{
		tag:    strings.ToLower(tag),
		attrs:  map[string]string{},
		styles: map[string]string{},
	}
}

// Tag returns the element's tag name, lowercased.
func (e *Element) Tag() string { return e.tag }

// Parent returns the element's parent, or nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the element's direct children in document order.
func (e *Element) Children() []*Element { return e.children }

// AppendChild attaches child as the last child of e. A child already attached
// elsewhere is detached from its old parent first.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child from e. Unknown children are ignored.
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Remove detaches e from its parent, if any.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.RemoveChild(e)
	}
}

// Contains reports whether other is e or a descendant of e.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string { return e.attrs[name] }

// HasAttr reports whether the named attribute is present, even when empty.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// SetAttr sets the named attribute.
func (e *Element) SetAttr(name, value string) { e.attrs[name] = value }

// Style returns the inline style value for the named property, or "".
func (e *Element) Style(name string) string { return e.styles[name] }

// SetStyle sets an inline style property. An empty value clears it.
func (e *Element) SetStyle(name, value string) {
	if value == "" {
		delete(e.styles, name)
		return
	}
	e.styles[name] = value
}

// Classes returns the element's class list, split from the class attribute.
func (e *Element) Classes() []string { return strings.Fields(e.attrs["class"]) }

// HasClass reports whether the class attribute contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class attribute unless already present.
func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	cls := e.attrs["class"]
	if cls == "" {
		e.attrs["class"] = name
	} else {
		e.attrs["class"] = cls + " " + name
	}
}

// Text returns the element's own text content concatenated with that of its
// descendants, in document order.
func (e *Element) Text() string {
	var b strings.Builder
	e.collectText(&b)
	return b.String()
}

func (e *Element) collectText(b *strings.Builder) {
	b.WriteString(e.text)
	for _, c := range e.children {
		c.collectText(b)
	}
}

// SetText replaces the element's children with the literal text. Markup in
// the string is not interpreted.
func (e *Element) SetText(text string) {
	e.clearChildren()
	e.text = text
}

// SetHTML replaces the element's children with the parsed markup fragment.
// Unparseable markup degrades to whatever the parser recovers, matching
// browser innerHTML behavior.
func (e *Element) SetHTML(markup string) {
	e.clearChildren()
	e.text = ""
	nodes, err := ParseFragment(markup)
	if err != nil {
		return
	}
	for _, n := range nodes {
		e.AppendChild(n)
	}
}

func (e *Element) clearChildren() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	e.text = ""
}

// Document owns a tree rooted at Body and answers attachment queries.
type Document struct {
	Body *Element
}

// NewDocument returns a document with an empty body.
func NewDocument() *Document {
	return &Document{Body: NewElement("body")}
}

// Contains reports whether el is attached to the document.
func (d *Document) Contains(el *Element) bool {
	return d.Body != nil && d.Body.Contains(el)
}

// QuerySelector returns the first element under the document body matching
// the selector, or nil.
func (d *Document) QuerySelector(selector string) *Element {
	if d.Body == nil {
		return nil
	}
	return d.Body.Find(selector)
}
