package widgets

import (
	"github.com/go-glaze/glaze/pkg/registry"
	"github.com/go-glaze/glaze/pkg/style"
)

// The library's widget types, registered in the default registry. Row
// and Column extend View. Structural types declare no tag, so they
// render under readable names in development and collapse to the
// placeholder element in production; Button, Link, Image, and Input
// declare real tags because their element semantics matter in the
// browser, and declared tags survive both modes.
var (
	TypeView = registry.MustRegister(registry.Spec{
		Name:    "View",
		Extends: registry.NoType,
		Styles:  []string{"glaze/view"},
	})
	TypeText = registry.MustRegister(registry.Spec{
		Name:    "Text",
		Extends: registry.NoType,
		Styles:  []string{"glaze/text"},
	})
	TypeButton = registry.MustRegister(registry.Spec{
		Name:    "Button",
		Extends: registry.NoType,
		Tag:     "button",
		Styles:  []string{"glaze/button"},
		Attrs:   map[string]string{"type": "button"},
	})
	TypeLink = registry.MustRegister(registry.Spec{
		Name:    "Link",
		Extends: registry.NoType,
		Tag:     "a",
		Styles:  []string{"glaze/link"},
	})
	TypeImage = registry.MustRegister(registry.Spec{
		Name:    "Image",
		Extends: registry.NoType,
		Tag:     "img",
		Styles:  []string{"glaze/image"},
	})
	TypeRow = registry.MustRegister(registry.Spec{
		Name:    "Row",
		Extends: TypeView,
		Styles:  []string{"glaze/row"},
	})
	TypeColumn = registry.MustRegister(registry.Spec{
		Name:    "Column",
		Extends: TypeView,
		Styles:  []string{"glaze/column"},
	})
	TypeInput = registry.MustRegister(registry.Spec{
		Name:    "Input",
		Extends: registry.NoType,
		Tag:     "input",
		Styles:  []string{"glaze/input"},
	})
)

// Base styles for the library types. Selectors address the type's class
// chain, so they apply under placeholder tags too.
func init() {
	style.MustAdd("glaze/view", ".View{display:block;box-sizing:border-box}")
	style.MustAdd("glaze/text", ".Text{display:inline}")
	style.MustAdd("glaze/button", ".Button{cursor:pointer;font:inherit}")
	style.MustAdd("glaze/link", ".Link{color:#0969da;text-decoration:none}")
	style.MustAdd("glaze/image", ".Image{max-width:100%;height:auto}")
	style.MustAdd("glaze/row", ".Row{display:flex;flex-direction:row}")
	style.MustAdd("glaze/column", ".Column{display:flex;flex-direction:column}")
	style.MustAdd("glaze/input", ".Input{font:inherit}")
}
