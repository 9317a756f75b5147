// Package main is the entry point for s4, a chronological log search and
// merge tool.
package main

import (
	"github.com/jtmoon79/s4/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Execute the CLI application.
	// All command-line parsing, flag handling, and execution logic
	// is delegated to the cmd package.
	cmd.Execute(version, commit, date)
}

// CPU profiling can be enabled for performance analysis:
//
// import (
//     "log"
//     "os"
//     "runtime/pprof"
// )
//
// f, err := os.Create("cpu.prof")
// if err != nil {
//     log.Fatal(err)
// }
// defer f.Close()
//
// if err := pprof.StartCPUProfile(f); err != nil {
//     log.Fatal(err)
// }
// defer pprof.StopCPUProfile()
//
// To analyze: go tool pprof cpu.prof
