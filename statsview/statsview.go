// Package statsview serves live runtime statistics (heap, GC, goroutines) of
// the running emulator on a local web page.
//
// Adapted from the statsview package of Gopher2600 (GPL-3.0-or-later,
// https://github.com/JetSetIlly/Gopher2600). Underlying functionality
// provided by "github.com/go-echarts/statsview".
package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// DefaultAddress is used when -statsview is given without an address.
const DefaultAddress = "localhost:12600"

const path = "/debug/statsview"

// URL of the statistics page served on addr.
func URL(addr string) string {
	return fmt.Sprintf("http://%s%s", addr, path)
}

// Launch starts the viewer on addr in a new goroutine and reports its URL on
// output.
func Launch(addr string, output io.Writer) {
	viewer.SetConfiguration(viewer.WithAddr(addr))

	go statsview.New().Start()

	fmt.Fprintf(output, "stats server available at %s\n", URL(addr))
}
