package misc

import "fmt"

// Logf prints a message when the runtime verbosity is at least the given
// level. Level 0 messages always print.
func Logf(level int, format string, args ...interface{}) {
	if RuntimeVerbosity() < level {
		return
	}

	fmt.Printf(format+"\n", args...)
}
