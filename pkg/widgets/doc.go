// Package widgets provides the standard widget library: containers,
// text, links, images, and the input widgets pages are built from.
//
// # Widget Construction
//
// Widgets use a two-tier construction pattern:
//
// ## Tier 1: Struct Literal (canonical, full control)
//
//	btn := widgets.Button{
//	    Label:    "Submit",
//	    OnClick:  handleSubmit,
//	    Disabled: !valid,
//	}
//
// This is the PRIMARY way to create widgets. All fields are accessible.
//
// ## Tier 2: Helpers (ergonomics for common shapes)
//
//	col := widgets.ColumnOf(
//	    widgets.Text{Content: "Title"},
//	    widgets.LinkOf("/docs", "Read the docs"),
//	)
//
// Also: RowOf, ButtonOf, LinkOf.
//
// ## WithX Chaining
//
// WithX methods return COPIES; they never mutate the receiver:
//
//	img := widgets.Image{Src: "/logo.png", Alt: "logo"}.WithSize(320, 120)
//
// # Widget Types
//
// Every widget here is backed by a registered widget type in the default
// registry. The type contributes the rendered tag, the class chain, the
// style references collected for frozen pages, and default attributes.
// Row and Column extend View, so both carry the View class and styles in
// addition to their own.
//
// Structural widgets (View, Text, Row, Column) declare no tag: they
// render under readable type-name tags in development and collapse to
// the placeholder element in production. Button, Link, Image, and Input
// declare real tags ("button", "a", "img", "input") because their
// browser semantics matter, and declared tags survive both modes.
//
// # API Rules
//
//   - Canonical = struct literal. Always works, always documented.
//   - Helpers (RowOf, ColumnOf, ButtonOf, LinkOf) exist for ergonomics.
//   - WithX returns copies. Doc comment must state "returns a copy".
package widgets
