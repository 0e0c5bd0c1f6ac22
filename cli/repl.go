// Interactive terminal front-end.
//
// Information Hiding:
// - Citation rewriting of the streamed answer
// - Command recognition (!reset, /reset, !review, /review)

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/richinex/gamal/citation"
	"github.com/richinex/gamal/model"
)

// replConversation is the single process-wide conversation the terminal and
// its history share.
const replConversation = "terminal"

// Repl runs the interactive terminal loop until EOF.
func Repl(ctx context.Context, runner *Runner) error {
	return repl(ctx, runner, os.Stdin, os.Stdout)
}

func repl(ctx context.Context, runner *Runner, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, ">> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch input {
		case "!reset", "/reset":
			runner.Reset(ctx, replConversation)
			fmt.Fprintln(out, "History cleared.")
			continue
		case "!review", "/review":
			fmt.Fprint(out, runner.Review(replConversation))
			continue
		}

		rewriter := &citation.Rewriter{}
		result, err := runner.Ask(ctx, replConversation, input, func(delta string) {
			fmt.Fprint(out, rewriter.Push(delta))
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		cited := rewriter.Citations()
		fmt.Fprintln(out, rewriter.Flush())
		printReferences(out, cited, result.References)
		fmt.Fprintln(out)
	}
	return scanner.Err()
}

// printReferences lists the cited references under their display numbers, in
// the dense order the rewriter assigned.
func printReferences(out io.Writer, cited []int, references []model.Reference) {
	for k, position := range cited {
		for _, ref := range references {
			if ref.Position == position {
				fmt.Fprintf(out, "[%d] %s\n    %s\n", k+1, ref.Title, ref.URL)
				break
			}
		}
	}
}
