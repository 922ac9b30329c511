package testing

import (
	"fmt"
	"strings"

	"github.com/go-glaze/glaze/pkg/dom"
	"github.com/go-glaze/glaze/pkg/registry"
)

// Structure renders the widget outline of a markup tree as an indented
// listing. Widgets are identified by the marker class and labeled with
// their type classes and attributes; tag names, scripts, and markup
// outside widget subtrees are ignored. A development render and a
// production freeze of the same widget therefore produce the same
// outline even though their tags differ.
func Structure(root *dom.Node) string {
	var b strings.Builder
	writeStructure(&b, root, 0, false)
	return b.String()
}

func writeStructure(b *strings.Builder, n *dom.Node, depth int, inWidget bool) {
	switch n.Kind() {
	case dom.TextNode:
		if !inWidget {
			return
		}
		text := strings.TrimSpace(n.Text())
		if text == "" {
			return
		}
		fmt.Fprintf(b, "%s%q\n", strings.Repeat("  ", depth), text)
	case dom.ElementNode:
		if n.Tag() == "script" {
			return
		}
		if !n.HasClass(registry.WidgetClass) {
			// Non-widget wrappers (document scaffold, parsed head
			// elements) are transparent.
			for _, child := range n.Children() {
				writeStructure(b, child, depth, inWidget)
			}
			return
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(widgetLabel(n))
		b.WriteString("\n")
		for _, child := range n.Children() {
			writeStructure(b, child, depth+1, true)
		}
	case dom.FragmentNode:
		for _, child := range n.Children() {
			writeStructure(b, child, depth, inWidget)
		}
	}
}

// widgetLabel formats a widget node as its type classes followed by its
// non-class attributes in sorted order.
func widgetLabel(n *dom.Node) string {
	var classes []string
	for _, class := range n.Classes() {
		if class != registry.WidgetClass {
			classes = append(classes, class)
		}
	}
	label := strings.Join(classes, " ")
	for _, name := range n.AttrNames() {
		if name == "class" {
			continue
		}
		value, _ := n.Attr(name)
		label += fmt.Sprintf(" %s=%q", name, value)
	}
	return label
}
