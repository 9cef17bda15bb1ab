package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/skirmish/core"
)

func main() {
	// Crash hooks restore the terminal before the trace is printed
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "skirmish: %v\n", err)
		os.Exit(1)
	}
}
