// Package testing provides a widget testing framework for LongUI.
//
// # Quick Start
//
// Create a tester, pump a description, and make assertions:
//
//	func TestMyLayout(t *testing.T) {
//	    tester := longuitest.NewWidgetTesterWithT(t)
//	    tester.SetSize(geometry.Size{Width: 300, Height: 600})
//	    if err := tester.PumpYAML(src); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    header := tester.Find(longuitest.ByName("header")).First()
//	    if header.Node().Height() != 150 {
//	        t.Errorf("unexpected header height %v", header.Node().Height())
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare geometry snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/my_layout.snapshot.json")
//
// Update snapshots with:
//
//	LONGUI_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import longuitest "github.com/go-longui/longui/pkg/testing"
package testing
