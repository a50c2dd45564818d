package ingest

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// Minimal DOM built over encoding/xml. The assessment-item markup uses an
// undeclared "connect:" namespace prefix, so the decoder runs non-strict
// and attribute names keep their prefix as the space component.
type xnode struct {
	tag      string
	attrs    map[string]string
	children []*xnode
	text     string
}

func parseXHTML(data []byte) (*xnode, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	root := &xnode{tag: "#root", attrs: map[string]string{}}
	stack := []*xnode{root}

	for {
		tok, err := dec.Token()
		if err != nil {
			break // EOF or recoverable markup noise; keep what we have
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &xnode{tag: strings.ToLower(t.Name.Local), attrs: map[string]string{}}
			for _, a := range t.Attr {
				n.attrs[attrKey(a.Name)] = a.Value
			}
			cur := stack[len(stack)-1]
			cur.children = append(cur.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			cur := stack[len(stack)-1]
			cur.text += string(t)
		}
	}
	return root, nil
}

func attrKey(n xml.Name) string {
	if n.Space != "" {
		return strings.ToLower(n.Space + ":" + n.Local)
	}
	return strings.ToLower(n.Local)
}

func (n *xnode) attr(name string) string { return n.attrs[strings.ToLower(name)] }

func (n *xnode) hasClass(class string) bool {
	for _, c := range strings.Fields(n.attr("class")) {
		if c == class {
			return true
		}
	}
	return false
}

// textContent concatenates all descendant character data, collapsing runs
// of whitespace the way rendered markup would.
func (n *xnode) textContent() string {
	var b strings.Builder
	n.collectText(&b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func (n *xnode) collectText(b *strings.Builder) {
	b.WriteString(n.text)
	b.WriteByte(' ')
	for _, c := range n.children {
		c.collectText(b)
	}
}

// findAll returns descendants matching pred in document order.
func (n *xnode) findAll(pred func(*xnode) bool) []*xnode {
	var out []*xnode
	for _, c := range n.children {
		if pred(c) {
			out = append(out, c)
		}
		out = append(out, c.findAll(pred)...)
	}
	return out
}

// first returns the first descendant matching any of preds, in document order.
func (n *xnode) first(preds ...func(*xnode) bool) *xnode {
	for _, c := range n.children {
		for _, p := range preds {
			if p(c) {
				return c
			}
		}
		if m := c.first(preds...); m != nil {
			return m
		}
	}
	return nil
}

func byTag(tag string) func(*xnode) bool {
	return func(n *xnode) bool { return n.tag == tag }
}

func byClass(class string) func(*xnode) bool {
	return func(n *xnode) bool { return n.hasClass(class) }
}
