package dom

import "strings"

// simpleSelector is one compound selector: optional tag plus any number of
// class, id and attribute requirements. Combinators are not supported.
type simpleSelector struct {
	tag     string
	id      string
	classes []string
	attrs   []string
}

// parseSelector splits a selector list ("a, .b.c, [x-arrow]") into the
// compound selectors it alternates over. Empty members are dropped.
func parseSelector(selector string) []simpleSelector {
	var out []simpleSelector
	for _, part := range strings.Split(selector, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, parseSimple(part))
	}
	return out
}

func parseSimple(s string) simpleSelector {
	var sel simpleSelector
	for len(s) > 0 {
		switch s[0] {
		case '.':
			token, rest := readToken(s[1:])
			sel.classes = append(sel.classes, token)
			s = rest
		case '#':
			token, rest := readToken(s[1:])
			sel.id = token
			s = rest
		case '[':
			end := strings.IndexByte(s, ']')
			if end < 0 {
				sel.attrs = append(sel.attrs, s[1:])
				s = ""
				break
			}
			sel.attrs = append(sel.attrs, s[1:end])
			s = s[end+1:]
		default:
			token, rest := readToken(s)
			sel.tag = strings.ToLower(token)
			s = rest
		}
	}
	return sel
}

func readToken(s string) (token, rest string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', '#', '[':
			return s[:i], s[i:]
		}
	}
	return s, ""
}

func (sel simpleSelector) matches(e *Element) bool {
	if sel.tag != "" && e.tag != sel.tag {
		return false
	}
	if sel.id != "" && e.Attr("id") != sel.id {
		return false
	}
	for _, c := range sel.classes {
		if !e.HasClass(c) {
			return false
		}
	}
	for _, a := range sel.attrs {
		if !e.HasAttr(a) {
			return false
		}
	}
	return true
}

// Matches reports whether e matches any member of the selector list.
func (e *Element) Matches(selector string) bool {
	for _, sel := range parseSelector(selector) {
		if sel.matches(e) {
			return true
		}
	}
	return false
}

// Find returns the first descendant of e matching the selector list, in
// depth-first document order, or nil. e itself is not considered.
func (e *Element) Find(selector string) *Element {
	sels := parseSelector(selector)
	if len(sels) == 0 {
		return nil
	}
	return e.findFirst(sels)
}

func (e *Element) findFirst(sels []simpleSelector) *Element {
	for _, c := range e.children {
		for _, sel := range sels {
			if sel.matches(c) {
				return c
			}
		}
		if found := c.findFirst(sels); found != nil {
			return found
		}
	}
	return nil
}
