package nes

import (
	"log"
	"runtime"
	"strings"
	"time"
)

// TimeTrack logs how long the calling function took. Use as
//   defer nes.TimeTrack(time.Now())
//
// Function time tracking thanks to:
// https://stackoverflow.com/questions/45766572/is-there-an-efficient-way-to-calculate-execution-time-in-golang
func TimeTrack(start time.Time) {
	elapsed := time.Since(start)

	// Skip this function, and fetch the PC for its parent.
	pc, _, _, _ := runtime.Caller(1)

	// Just the function name, not the module path.
	name := runtime.FuncForPC(pc).Name()
	name = name[strings.LastIndex(name, ".")+1:]

	log.Printf("%s took %s", name, elapsed)
}
