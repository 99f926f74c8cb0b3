package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/whisper-lang/whisper/internal/frame"
	"github.com/whisper-lang/whisper/internal/trace"
	"github.com/whisper-lang/whisper/internal/whisper"
)

var (
	evalExpr string
	traceRun bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Whisper source file",
	Long: `run interprets a Whisper source file (or, with -e, an inline
expression) and prints its final result.

Examples:
  whisper run program.wh
  whisper run -e "(1 + 2) * 10"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate the given source instead of reading a file")
	runCmd.Flags().BoolVar(&traceRun, "trace", false, "print a line for every trampoline step and GC cycle")
	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	var source, filename string
	switch {
	case evalExpr != "":
		source, filename = evalExpr, "<eval>"
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		source, filename = string(data), args[0]
	default:
		return fmt.Errorf("provide a source file or -e EXPR")
	}

	var sink trace.Sink = trace.Noop
	if traceRun {
		sink = trace.NewPtermSink()
	}

	rt := whisper.CreateRuntime(whisper.WithTraceSink(sink))
	tc := whisper.RegisterThread(rt)
	global := whisper.MakeGlobalScope(tc)

	result, err := whisper.InterpretSourceFile(tc, source, global)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
		return err
	}

	fmt.Println(whisper.FormatResult(tc.Heap, result))
	if result.Kind == frame.EvalExc || result.Kind == frame.EvalError {
		return fmt.Errorf("%s", whisper.FormatResult(tc.Heap, result))
	}
	return nil
}
