package main

import "flag"

// Command-line flags that control the window, the initial layout, and
// runtime diagnostics.
var (
	// widthFlag and heightFlag set the initial window size; the window stays
	// resizable.
	widthFlag  = flag.Int("width", defaultWindowWidth, "initial window width")
	heightFlag = flag.Int("height", defaultWindowHeight, "initial window height")

	// stateFlag names a YAML file with the initial body state.
	stateFlag = flag.String("state", "", "load the initial body state from a YAML `file`")

	// debugFlag enables the FPS and body state overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and body state overlay (press P to log the state as YAML)")

	verboseFlag = flag.Bool("v", false, "log orbit transitions and resizes")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to `file`")

	// recordDefaultPGO drives scripted drags while capturing default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "drag bodies randomly for 15s while capturing default.pgo")
)
