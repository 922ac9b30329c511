package widgets_test

import (
	"testing"

	glazetest "github.com/go-glaze/glaze/pkg/testing"
	"github.com/go-glaze/glaze/pkg/widgets"
)

func TestImage_Markup(t *testing.T) {
	tester := glazetest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Image{Src: "/logo.png", Alt: "logo", Width: 320, Height: 120})

	html, err := tester.RenderedHTML()
	if err != nil {
		t.Fatal(err)
	}
	want := `<img alt="logo" class="Image gz-widget" height="120" src="/logo.png" width="320"/>`
	if html != want {
		t.Errorf("rendered markup = %q, want %q", html, want)
	}
}

func TestImage_OmitsZeroDimensions(t *testing.T) {
	tester := glazetest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Image{Src: "/logo.png", Alt: "logo"})

	node := tester.Find(glazetest.ByType[widgets.Image]()).Node()
	if node == nil {
		t.Fatal("expected image node")
	}
	if _, ok := node.Attr("width"); ok {
		t.Error("zero width must not be emitted")
	}
	if _, ok := node.Attr("height"); ok {
		t.Error("zero height must not be emitted")
	}
}

func TestImage_WithSizeCopies(t *testing.T) {
	base := widgets.Image{Src: "/a.png"}
	sized := base.WithSize(64, 24)

	if base.Width != 0 || base.Height != 0 {
		t.Error("WithSize must not mutate the receiver")
	}
	if sized.Width != 64 || sized.Height != 24 {
		t.Errorf("sized = %dx%d, want 64x24", sized.Width, sized.Height)
	}
}
