package engine

import (
	"fmt"
	"sync/atomic"
)

// crashHandler is invoked with the recovered value before Guard returns an error
// Set by the host so the engine stays independent of the terminal
var crashHandler atomic.Pointer[func(any)]

// SetCrashHandler installs fn as the panic handler for guarded goroutines
func SetCrashHandler(fn func(any)) {
	if fn == nil {
		crashHandler.Store(nil)
		return
	}
	crashHandler.Store(&fn)
}

// Guard wraps fn so a panic is reported to the crash handler and returned as an error
// Use with errgroup.Group.Go instead of the bare function
func Guard(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				if h := crashHandler.Load(); h != nil {
					(*h)(r)
				}
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}
}
