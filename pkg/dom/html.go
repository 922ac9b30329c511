package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/go-glaze/glaze/pkg/errors"
)

// toHTMLNode converts n into an x/net/html node. Attributes emit in the
// sorted order AttrNames defines, so serialization is deterministic.
func (n *Node) toHTMLNode() *html.Node {
	switch n.kind {
	case TextNode:
		return &html.Node{Type: html.TextNode, Data: n.text}
	case ElementNode:
		h := &html.Node{
			Type:     html.ElementNode,
			Data:     n.tag,
			DataAtom: atom.Lookup([]byte(n.tag)),
		}
		for _, name := range n.AttrNames() {
			val, _ := n.Attr(name)
			h.Attr = append(h.Attr, html.Attribute{Key: name, Val: val})
		}
		for _, c := range n.children {
			h.AppendChild(c.toHTMLNode())
		}
		return h
	default:
		h := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
		for _, c := range n.children {
			h.AppendChild(c.toHTMLNode())
		}
		return h
	}
}

// WriteHTML serializes the node to w. A fragment serializes as its
// children with no wrapper.
func (n *Node) WriteHTML(w io.Writer) error {
	const op = "dom.WriteHTML"
	if n.kind == FragmentNode {
		for _, c := range n.children {
			if err := html.Render(w, c.toHTMLNode()); err != nil {
				return errors.New(op, errors.KindUnknown, err)
			}
		}
		return nil
	}
	if err := html.Render(w, n.toHTMLNode()); err != nil {
		return errors.New(op, errors.KindUnknown, err)
	}
	return nil
}

// HTML returns the node serialized as markup.
func (n *Node) HTML() (string, error) {
	var b strings.Builder
	if err := n.WriteHTML(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// FormattedHTML returns indented markup for development output. The
// formatted form is for human eyes only; frozen output never passes
// through here.
func (n *Node) FormattedHTML() (string, error) {
	raw, err := n.HTML()
	if err != nil {
		return "", err
	}
	return gohtml.Format(raw), nil
}

// ParseFragment parses markup into a fragment node. Listeners do not
// survive serialization; the parsed tree is inert until hydrated.
func ParseFragment(r io.Reader) (*Node, error) {
	const op = "dom.ParseFragment"
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(r, ctx)
	if err != nil {
		return nil, errors.New(op, errors.KindHydrate, fmt.Errorf("parse markup: %w", err))
	}
	frag := NewFragment()
	for _, h := range parsed {
		if c := fromHTMLNode(h); c != nil {
			frag.AppendChild(c)
		}
	}
	return frag, nil
}

// ParseFragmentString is ParseFragment over a string.
func ParseFragmentString(markup string) (*Node, error) {
	return ParseFragment(strings.NewReader(markup))
}

func fromHTMLNode(h *html.Node) *Node {
	switch h.Type {
	case html.TextNode:
		return NewText(h.Data)
	case html.ElementNode:
		n := NewElement(h.Data)
		for _, a := range h.Attr {
			n.SetAttr(a.Key, a.Val)
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if child := fromHTMLNode(c); child != nil {
				n.AppendChild(child)
			}
		}
		return n
	default:
		return nil
	}
}
