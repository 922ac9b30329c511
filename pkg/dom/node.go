// Package dom provides the owned markup tree the framework renders into.
//
// Nodes are plain in-memory structures: elements with attributes, classes,
// children and event listeners, text leaves, and an invisible fragment used
// as a mount container. The tree is single-threaded like the rest of the
// UI pipeline. Serialization to and from HTML lives in html.go.
package dom

import (
	"sort"
	"strings"
)

// NodeKind discriminates the node variants.
type NodeKind int

const (
	// ElementNode is a markup element with a tag.
	ElementNode NodeKind = iota
	// TextNode is a text leaf.
	TextNode
	// FragmentNode is an invisible container; serialization emits only
	// its children. Renderers mount widget trees into one.
	FragmentNode
)

// Node is one node of the rendered tree.
type Node struct {
	kind      NodeKind
	tag       string
	text      string
	attrs     map[string]string
	classes   []string
	children  []*Node
	parent    *Node
	listeners map[string][]*listener
}

// NewElement creates a detached element node.
func NewElement(tag string) *Node {
	return &Node{kind: ElementNode, tag: tag}
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	return &Node{kind: TextNode, text: text}
}

// NewFragment creates an empty mount container.
func NewFragment() *Node {
	return &Node{kind: FragmentNode}
}

// Kind returns the node variant.
func (n *Node) Kind() NodeKind { return n.kind }

// Tag returns the element tag, or "" for non-elements.
func (n *Node) Tag() string { return n.tag }

// Text returns the text content of a text node.
func (n *Node) Text() string { return n.text }

// SetText replaces the content of a text node.
func (n *Node) SetText(text string) {
	if n.kind == TextNode {
		n.text = text
	}
}

// Parent returns the parent node, or nil for a detached or root node.
func (n *Node) Parent() *Node { return n.parent }

// SetAttr sets an attribute. The class attribute is managed through the
// class list and is rerouted there.
func (n *Node) SetAttr(key, value string) {
	if key == "class" {
		for _, c := range strings.Fields(value) {
			n.AddClass(c)
		}
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

// Attr returns the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	if key == "class" {
		if len(n.classes) == 0 {
			return "", false
		}
		return strings.Join(n.classes, " "), true
	}
	v, ok := n.attrs[key]
	return v, ok
}

// RemoveAttr deletes the named attribute.
func (n *Node) RemoveAttr(key string) {
	delete(n.attrs, key)
}

// AttrNames returns attribute names in sorted order, including "class"
// when the node has classes. Emission order follows this.
func (n *Node) AttrNames() []string {
	names := make([]string, 0, len(n.attrs)+1)
	for k := range n.attrs {
		names = append(names, k)
	}
	if len(n.classes) > 0 {
		names = append(names, "class")
	}
	sort.Strings(names)
	return names
}

// AddClass appends a class, keeping the list duplicate-free.
func (n *Node) AddClass(class string) {
	if class == "" {
		return
	}
	for _, c := range n.classes {
		if c == class {
			return
		}
	}
	n.classes = append(n.classes, class)
}

// Classes returns the class list in insertion order.
func (n *Node) Classes() []string {
	return append([]string(nil), n.classes...)
}

// HasClass reports whether the node carries the class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

// AppendChild attaches child as the last child, detaching it from any
// previous parent first.
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// SetChildren replaces the whole child list. Renderers use this to resync
// a subtree after a rebuild instead of splicing at indices.
func (n *Node) SetChildren(children []*Node) {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = n.children[:0]
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.parent != nil && c.parent != n {
			c.Detach()
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Children returns the child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// Detach removes the node from its parent, if any.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Walk visits n and every descendant depth-first in document order.
// Returning false from visit stops the walk.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(visit) {
			return false
		}
	}
	return true
}

// FindAll returns every node in document order for which pred holds.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(node *Node) bool {
		if pred(node) {
			out = append(out, node)
		}
		return true
	})
	return out
}

// FindByClass returns every element carrying the class, in document order.
func (n *Node) FindByClass(class string) []*Node {
	return n.FindAll(func(node *Node) bool {
		return node.kind == ElementNode && node.HasClass(class)
	})
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(node *Node) bool {
		if node.kind == TextNode {
			b.WriteString(node.text)
		}
		return true
	})
	return b.String()
}

// Teardown releases the listeners of the node and every descendant.
// Called on unmount so handlers cannot outlive their subtree.
func (n *Node) Teardown() {
	n.Walk(func(node *Node) bool {
		node.listeners = nil
		return true
	})
}
