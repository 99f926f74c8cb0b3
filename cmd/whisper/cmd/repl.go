package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/whisper-lang/whisper/internal/trace"
	"github.com/whisper-lang/whisper/internal/whisper"
)

var traceRepl bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Whisper shell",
	Long: `repl reads one line at a time, evaluates it against a single
persistent global scope, and prints its result — every line shares the
bindings every earlier line established.`,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().BoolVar(&traceRepl, "trace", false, "print a line for every trampoline step and GC cycle")
	rootCmd.AddCommand(replCmd)
}

// runRepl drives the interactive shell: one whisper.ThreadContext and one
// global scope are reused across every line, the way terexlang/trepl's
// Intp carries a single *terex.Environment across its whole REPL loop
// instead of minting a fresh one per input.
func runRepl(cmd *cobra.Command, args []string) error {
	var sink trace.Sink = trace.Noop
	if traceRepl {
		sink = trace.NewPtermSink()
	}

	rt := whisper.CreateRuntime(whisper.WithTraceSink(sink))
	tc := whisper.RegisterThread(rt)
	global := whisper.MakeGlobalScope(tc)

	rl, err := readline.New("whisper> ")
	if err != nil {
		return fmt.Errorf("starting the line editor: %w", err)
	}
	defer rl.Close()

	fmt.Println("Whisper REPL. Press Ctrl-D to quit.")
	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			break
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		result, err := whisper.InterpretLine(tc, global, line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(whisper.FormatResult(tc.Heap, result))
	}
	fmt.Println("Goodbye!")
	return nil
}
