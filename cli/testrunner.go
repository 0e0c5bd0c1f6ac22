// File-based test runner.
//
// Information Hiding:
// - Directive grammar (ROLE: content, # comments)
// - Expectation matching against answers and pipeline fields

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/richinex/gamal/matcher"
	"github.com/richinex/gamal/pipeline"
)

// RunTestFile executes one directive file:
//
//	Story: banner                       resets history, prints the banner
//	User: inquiry                       runs the pipeline
//	Assistant: expectation              matches the previous answer
//	Pipeline.Reason.Keyphrases: expr    matches that pipeline field
//	Pipeline.Reason.Topic: expr         matches that pipeline field
//
// '#' begins an end-of-line comment. An unknown role aborts with an error.
// The returned count is the number of failed expectations; with failExit set
// the process terminates at the first failure instead.
func RunTestFile(ctx context.Context, runner *Runner, path string, failExit bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	conversationID := "test:" + path
	runner.Reset(ctx, conversationID)

	failures := 0
	var last pipeline.Context

	for i, raw := range strings.Split(string(data), "\n") {
		line := raw
		if at := strings.Index(line, "#"); at >= 0 {
			line = line[:at]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		role, content, ok := strings.Cut(line, ":")
		if !ok {
			return failures, fmt.Errorf("%s:%d: malformed directive %q", path, i+1, raw)
		}
		role = strings.TrimSpace(role)
		content = strings.TrimSpace(content)

		switch role {
		case "Story":
			runner.Reset(ctx, conversationID)
			fmt.Printf("\n### %s\n\n", content)
		case "User":
			fmt.Printf(">> %s\n", content)
			last, err = runner.Ask(ctx, conversationID, content, nil)
			if err != nil {
				return failures, fmt.Errorf("%s:%d: pipeline failed: %w", path, i+1, err)
			}
			fmt.Println(last.Answer)
		case "Assistant":
			failures += expect(content, last.Answer, failExit)
		case "Pipeline.Reason.Keyphrases":
			failures += expect(content, last.Keyphrases, failExit)
		case "Pipeline.Reason.Topic":
			failures += expect(content, last.Topic, failExit)
		default:
			return failures, fmt.Errorf("%s:%d: unknown role %q", path, i+1, role)
		}
	}
	return failures, nil
}

// expect matches one expectation against a target, printing the highlighted
// target on success and the mismatch on failure. Returns 1 on failure.
func expect(expected, target string, failExit bool) int {
	expectation, err := matcher.Compile(expected)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		if failExit {
			os.Exit(1)
		}
		return 1
	}

	if expectation.Match(target) {
		fmt.Println(matcher.Highlight(target, expectation.Spans(target)))
		return 0
	}

	fmt.Fprintf(os.Stderr, "FAILED: expected %q, got %q\n", expected, target)
	if failExit {
		os.Exit(1)
	}
	return 1
}
