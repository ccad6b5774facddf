package main

import (
	"fmt"
	"os"
	"runtime"
)

func init() {
	// SDL must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := createRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
