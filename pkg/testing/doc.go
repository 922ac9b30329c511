// Package testing provides a widget testing framework for Glaze.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestMyWidget(t *testing.T) {
//	    tester := glazetest.NewWidgetTesterWithT(t)
//	    tester.PumpWidget(MyWidget{})
//
//	    // Find elements
//	    button := tester.Find(glazetest.ByText("Submit")).First()
//
//	    // Simulate events
//	    tester.Tap(glazetest.ByText("Submit"))
//
//	    // Assert state
//	    if !tester.Find(glazetest.ByText("Submitted")).Exists() {
//	        t.Error("expected 'Submitted' text")
//	    }
//	}
//
// Event dispatch is synchronous: after Tap returns, the rebuilt subtree
// is already in place and findable.
//
// # Frozen Pages
//
// FreezeWidget produces the static document for a widget, and
// HydrateDocument parses one back into a live tree, so a test can walk
// the full freeze and rehydrate cycle in process:
//
//	res, _ := tester.FreezeWidget(CounterView{}, freeze.Options{Title: "Counter"})
//	tester.HydrateDocument(res.Document)
//	tester.Tap(glazetest.ByType[widgets.Button]())
//
// # Structural Comparison
//
// Structure renders a markup tree as a tag-independent outline, which
// makes development and production output comparable:
//
//	want := glazetest.Structure(devTree.Container())
//	got := glazetest.Structure(prodTree.Container())
//	if diff := cmp.Diff(want, got); diff != "" {
//	    t.Errorf("structure diff (-dev +prod):\n%s", diff)
//	}
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import glazetest "github.com/go-glaze/glaze/pkg/testing"
package testing
