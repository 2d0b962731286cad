package common

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/ternarybob/arbor"
)

// SafeGo runs fn in a goroutine, logging instead of crashing on panic
func SafeGo(logger arbor.ILogger, name string, fn func()) {
	go func() {
		defer recoverPanic(logger, name)
		fn()
	}()
}

func recoverPanic(logger arbor.ILogger, name string) {
	r := recover()
	if r == nil {
		return
	}
	stack := string(debug.Stack())
	if logger == nil {
		fmt.Fprintf(os.Stderr, "PANIC in goroutine %s: %v\n%s\n", name, r, stack)
		return
	}
	logger.Error().
		Str("goroutine", name).
		Str("panic", fmt.Sprintf("%v", r)).
		Str("stack", stack).
		Msg("Recovered from panic in goroutine")
}
