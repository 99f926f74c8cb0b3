// Command whisper is the interpreter's command-line front end: run a
// source file or an inline expression, or drop into an interactive shell.
package main

import (
	"os"

	"github.com/whisper-lang/whisper/cmd/whisper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
