package widgets

import (
	"strconv"

	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/registry"
)

// Image renders an img element. Width and Height are the intrinsic
// dimensions in pixels; when left zero the freezer's asset pass fills
// them in from the asset library so frozen pages reserve layout space
// before the image loads.
type Image struct {
	core.HostBase
	// Src is the image source path.
	Src string
	// Alt is the alternative text.
	Alt string
	// Width is the intrinsic width in pixels, rendered when positive.
	Width int
	// Height is the intrinsic height in pixels, rendered when positive.
	Height int
	// Attrs holds per-instance attribute overrides.
	Attrs map[string]string
}

// WithSize returns a copy of the image with explicit intrinsic
// dimensions.
func (i Image) WithSize(width, height int) Image {
	i.Width = width
	i.Height = height
	return i
}

func (i Image) WidgetType() registry.TypeID { return TypeImage }

func (i Image) InstanceAttrs() map[string]string {
	pairs := make([]string, 0, 8)
	if i.Src != "" {
		pairs = append(pairs, "src", i.Src)
	}
	if i.Alt != "" {
		pairs = append(pairs, "alt", i.Alt)
	}
	if i.Width > 0 {
		pairs = append(pairs, "width", strconv.Itoa(i.Width))
	}
	if i.Height > 0 {
		pairs = append(pairs, "height", strconv.Itoa(i.Height))
	}
	return attrsWith(i.Attrs, pairs...)
}

func (i Image) EventBindings() []core.EventBinding { return nil }

func (i Image) ChildWidgets() []core.Widget { return nil }
