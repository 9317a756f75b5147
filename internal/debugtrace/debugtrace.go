// Package debugtrace provides a call-depth counter used only for --debug
// tracing of the reader stack. The counter is one package-level variable
// shared by every goroutine, not a per-thread one. It is a diagnostic aid,
// never a correctness dependency.
package debugtrace

import (
	"fmt"
	"log"
)

// Enabled toggles whether Enter/Leave/Printf emit anything. It defaults to
// off so production runs pay no logging cost.
var Enabled bool

var depth int

// Enter logs entry into a traced function, indented by the current depth,
// and increments the depth for nested calls.
func Enter(format string, args ...any) func() {
	if !Enabled {
		return func() {}
	}
	log.Printf("[DEBUG]%s-> %s", indent(), fmt.Sprintf(format, args...))
	depth++
	return func() {
		depth--
		log.Printf("[DEBUG]%s<- %s", indent(), fmt.Sprintf(format, args...))
	}
}

// Printf logs a single traced line at the current depth without affecting it.
func Printf(format string, args ...any) {
	if !Enabled {
		return
	}
	log.Printf("[DEBUG]%s   %s", indent(), fmt.Sprintf(format, args...))
}

func indent() string {
	s := make([]byte, depth)
	for i := range s {
		s[i] = ' '
	}
	return string(s)
}
