// Package freeze produces static, self-hydrating pages from widget
// trees. A freeze is a strict production render: placeholder tags,
// exact style subsets, a hydration bootstrap under every stateful
// anchor, and a final pass through the external minifying compiler.
// Failures abort with no partial output.
package freeze

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/go-glaze/glaze/pkg/assets"
	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/dom"
	"github.com/go-glaze/glaze/pkg/errors"
	"github.com/go-glaze/glaze/pkg/hydrate"
	"github.com/go-glaze/glaze/pkg/minify"
	"github.com/go-glaze/glaze/pkg/registry"
	"github.com/go-glaze/glaze/pkg/render"
	"github.com/go-glaze/glaze/pkg/style"
)

// Default asset references a frozen page links to.
const (
	DefaultStylesheetHref = "/style.css"
	DefaultRuntimeSrc     = "/glaze.js"
)

// Options configures a freeze.
type Options struct {
	// Title becomes the page title when non-empty.
	Title string
	// Lang is the document language. Empty means "en".
	Lang string
	// Registry is the widget type registry. Nil means registry.Default.
	Registry *registry.Registry
	// Styles is the style library bundled from. Nil means style.Default.
	Styles *style.Library
	// Assets, when set, supplies intrinsic image dimensions: img nodes
	// whose src resolves in the library and which declare neither
	// dimension get width and height injected.
	Assets *assets.Library
	// Compiler is the external minifier boundary. Nil means the
	// passthrough compiler.
	Compiler minify.Compiler
	// StylesheetHref overrides the stylesheet link target.
	StylesheetHref string
	// RuntimeSrc overrides the hydration runtime script source.
	RuntimeSrc string
}

// Result is a frozen page.
type Result struct {
	// Document is the complete minified page markup.
	Document string
	// CSS is the page's style subset, bundled in first-use order.
	CSS string
	// Styles lists the style names the page used, in first-use order.
	Styles []string
}

// Freeze renders widget in strict production mode and assembles the
// final page. Repeated freezes of an unchanged tree produce identical
// bytes: the walk is depth first in construction order, styles bundle
// in first-use order, attributes serialize sorted, and state records
// serialize with sorted keys.
func Freeze(ctx context.Context, widget core.Widget, opts Options) (*Result, error) {
	collector := style.NewRegistry()
	tree, err := render.Mount(widget, render.Options{
		Mode:     registry.Production,
		Registry: opts.Registry,
		Styles:   collector,
		Strict:   true,
	})
	if err != nil {
		return nil, err
	}
	defer tree.Unmount()

	if err := embedBootstraps(tree.Root()); err != nil {
		return nil, err
	}
	if opts.Assets != nil {
		injectImageDimensions(tree.Container(), opts.Assets)
	}

	content, err := tree.HTML()
	if err != nil {
		return nil, err
	}

	library := opts.Styles
	if library == nil {
		library = style.Default
	}
	used := collector.Used()
	css, err := style.Bundle(library, used)
	if err != nil {
		return nil, err
	}

	document := buildDocument(content, used, opts)

	compiler := opts.Compiler
	if compiler == nil {
		compiler = minify.Passthrough{}
	}
	minified, err := compiler.Compile(ctx, document)
	if err != nil {
		return nil, err
	}

	return &Result{Document: minified, CSS: css, Styles: used}, nil
}

// embedBootstraps appends a hydration bootstrap script to the anchor of
// every stateful element. Traversal is post order: when nested stateful
// widgets share an anchor, the outermost script lands last and wins the
// handoff.
func embedBootstraps(root core.Element) error {
	const op = "freeze.Freeze"
	var walk func(e core.Element) error
	walk = func(e core.Element) error {
		var childErr error
		e.VisitChildren(func(c core.Element) bool {
			childErr = walk(c)
			return childErr == nil
		})
		if childErr != nil {
			return childErr
		}

		se, ok := e.(*core.StatefulElement)
		if !ok {
			return nil
		}
		name := hydrate.TypeName(se.Widget())
		if name == "" {
			return errors.Configuration(op, fmt.Errorf("stateful widget %T has no named type to hydrate under", se.Widget()))
		}
		if !hydrate.Registered(name) {
			return errors.Configuration(op, fmt.Errorf("stateful type %q not registered for hydration", name))
		}
		snapshotter, ok := se.State().(interface{ Snapshot() core.Snapshot })
		if !ok {
			return errors.Configuration(op, fmt.Errorf("state of %q does not expose a snapshot", name))
		}
		anchor := se.AnchorNode()
		if anchor == nil {
			return errors.Configuration(op, fmt.Errorf("stateful type %q renders no element to anchor hydration to", name))
		}
		script, err := hydrate.Bootstrap(name, snapshotter.Snapshot())
		if err != nil {
			return err
		}
		node := dom.NewElement("script")
		node.AppendChild(dom.NewText(script))
		anchor.AppendChild(node)
		return nil
	}
	return walk(root)
}

// injectImageDimensions fills in intrinsic width and height on img
// nodes the asset library can measure. Nodes declaring either
// dimension themselves are left alone.
func injectImageDimensions(root *dom.Node, library *assets.Library) {
	root.Walk(func(n *dom.Node) bool {
		if n.Kind() != dom.ElementNode || n.Tag() != "img" {
			return true
		}
		if _, ok := n.Attr("width"); ok {
			return true
		}
		if _, ok := n.Attr("height"); ok {
			return true
		}
		src, _ := n.Attr("src")
		if w, h, ok := library.Dimensions(src); ok {
			n.SetAttr("width", strconv.Itoa(w))
			n.SetAttr("height", strconv.Itoa(h))
		}
		return true
	})
}

// buildDocument wraps the rendered content in the page scaffold. The
// stylesheet link loads asynchronously through the preload/onload swap
// with a noscript fallback; pages that used no styles link nothing.
func buildDocument(content string, used []string, opts Options) string {
	lang := opts.Lang
	if lang == "" {
		lang = "en"
	}
	href := opts.StylesheetHref
	if href == "" {
		href = DefaultStylesheetHref
	}
	src := opts.RuntimeSrc
	if src == "" {
		src = DefaultRuntimeSrc
	}

	var b strings.Builder
	b.WriteString("<!doctype html><html lang=\"")
	b.WriteString(html.EscapeString(lang))
	b.WriteString("\"><head><meta charset=\"utf-8\"/>")
	b.WriteString("<meta content=\"width=device-width,initial-scale=1\" name=\"viewport\"/>")
	if opts.Title != "" {
		b.WriteString("<title>")
		b.WriteString(html.EscapeString(opts.Title))
		b.WriteString("</title>")
	}
	if len(used) > 0 {
		b.WriteString("<link as=\"")
		b.WriteString(style.AsyncAs)
		b.WriteString("\" href=\"")
		b.WriteString(html.EscapeString(href))
		b.WriteString("\" onload=\"")
		b.WriteString(style.AsyncOnload)
		b.WriteString("\" rel=\"")
		b.WriteString(style.AsyncRel)
		b.WriteString("\"/>")
		b.WriteString("<noscript><link href=\"")
		b.WriteString(html.EscapeString(href))
		b.WriteString("\" rel=\"stylesheet\"/></noscript>")
	}
	b.WriteString("</head><body>")
	b.WriteString(content)
	b.WriteString("<script defer=\"\" src=\"")
	b.WriteString(html.EscapeString(src))
	b.WriteString("\"></script>")
	b.WriteString("</body></html>")
	return b.String()
}
