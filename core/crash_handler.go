package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashMu    sync.Mutex
	crashHooks []func()
)

// OnCrash registers a cleanup run before the process exits on an unrecovered panic
// The terminal view registers its screen teardown here so the shell is usable afterwards
func OnCrash(fn func()) {
	crashMu.Lock()
	crashHooks = append(crashHooks, fn)
	crashMu.Unlock()
}

// HandleCrash runs crash hooks, prints the panic and stack trace, and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	hooks := crashHooks
	crashMu.Unlock()
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so crash hooks always run
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
