// Package main is the entry point of the Hariomify music player.
//
// Build:
//
//	go build -o build/hariomify ./cmd/hariomify
//
// Run:
//
//	./build/hariomify                # real audio, embedded demo catalog
//	./build/hariomify --mock-audio   # simulated playback, no audio device
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd(runApplication).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
