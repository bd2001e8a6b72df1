package templates

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MountID is the id of the container element custom markup is injected into.
const MountID = "custom-template-container"

// Mount is the mount point for custom markup: a parsed element subtree plus
// the click handlers attached to its nodes. Clearing the mount drops both.
type Mount struct {
	mu       sync.Mutex
	root     *html.Node
	handlers map[*html.Node]func()
}

func NewMount() *Mount {
	return &Mount{
		root: &html.Node{
			Type:     html.ElementNode,
			Data:     "div",
			DataAtom: atom.Div,
			Attr:     []html.Attribute{{Key: "id", Val: MountID}},
		},
		handlers: make(map[*html.Node]func()),
	}
}

// SetContent parses markup as the children of the mount, replacing any
// previous content and handlers.
func (m *Mount) SetContent(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
	for _, n := range nodes {
		m.root.AppendChild(n)
	}
	return nil
}

// Clear detaches all content and handlers.
func (m *Mount) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// Empty reports whether the mount has no content.
func (m *Mount) Empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root.FirstChild == nil
}

// HandlerCount reports the number of attached click handlers.
func (m *Mount) HandlerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handlers)
}

// Click runs the handler of the first element carrying attr (with value val,
// when val is non-empty). It reports whether a handler ran.
func (m *Mount) Click(attr, val string) bool {
	m.mu.Lock()
	var fn func()
	for _, n := range findAll(m.root, Selector{Attr: attr, Value: val}) {
		if h, ok := m.handlers[n]; ok {
			fn = h
			break
		}
	}
	m.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Text returns the text content of every element matching attr.
func (m *Mount) Text(attr string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, n := range findAll(m.root, Selector{Attr: attr}) {
		out = append(out, textContent(n))
	}
	return out
}

// HTML renders the mount's children.
func (m *Mount) HTML() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var buf bytes.Buffer
	for c := m.root.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// apply drops every handler and runs fn with exclusive access to the tree.
func (m *Mount) apply(fn func(root *html.Node, on func(*html.Node, func()))) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = make(map[*html.Node]func())
	fn(m.root, func(n *html.Node, h func()) {
		m.handlers[n] = h
	})
}

func (m *Mount) clearLocked() {
	for c := m.root.FirstChild; c != nil; {
		next := c.NextSibling
		m.root.RemoveChild(c)
		c = next
	}
	m.handlers = make(map[*html.Node]func())
}

// Selector matches elements by attribute presence, or by attribute value
// when Value is set.
type Selector struct {
	Attr  string
	Value string
}

func (s Selector) String() string {
	if s.Value == "" {
		return "[" + s.Attr + "]"
	}
	return fmt.Sprintf("[%s=%q]", s.Attr, s.Value)
}

func (s Selector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == s.Attr {
			return s.Value == "" || a.Val == s.Value
		}
	}
	return false
}

// findAll returns matching descendants of root in document order.
func findAll(root *html.Node, sel Selector) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if sel.matches(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func element(tag atom.Atom, class string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag.String(), DataAtom: tag}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
