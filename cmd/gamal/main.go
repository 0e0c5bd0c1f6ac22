// Package main provides the gamal CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/richinex/gamal/cli"
	"github.com/richinex/gamal/config"
	"github.com/richinex/gamal/llm"
	"github.com/richinex/gamal/pipeline"
	"github.com/richinex/gamal/search"
	"github.com/richinex/gamal/storage"
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "gamal [test files...]",
		Short: "Retrieval-augmented question answering over web search",
		Long: `Gamal answers natural-language inquiries with cited web references.

Without arguments the front-end is picked from the environment:
- GAMAL_TELEGRAM_TOKEN set: Telegram long-poller
- GAMAL_HTTP_PORT set: HTTP server
- otherwise: interactive terminal

File arguments run as directive-based tests.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd.Context(), args)
		},
	}

	rootCmd.AddCommand(serveCmd(), telegramCmd(), testCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRunner builds the shared pipeline runner from the environment.
func newRunner() (*cli.Runner, config.Settings, error) {
	settings, err := config.New()
	if err != nil {
		return nil, settings, err
	}

	providerType, err := llm.ParseProviderType(settings.LLM.Provider)
	if err != nil {
		return nil, settings, err
	}
	provider, err := llm.NewProvider(providerType, settings.LLM.BaseURL, settings.LLM.APIKey, settings.LLM.Model)
	if err != nil {
		return nil, settings, err
	}

	chat := llm.NewClient(provider, settings.LLM.Streaming, config.DebugLogger(settings.Debug.Chat))
	searcher := search.NewClient(settings.Search.APIKey, config.DebugLogger(settings.Debug.Search))
	p := pipeline.New(chat, searcher, config.DebugLogger(settings.Debug.Pipeline))

	return cli.NewRunner(p, storage.NewInMemoryHistory()), settings, nil
}

// dispatch picks the front-end: test files when given, otherwise whatever
// the environment selects.
func dispatch(ctx context.Context, args []string) error {
	runner, settings, err := newRunner()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		return runTests(ctx, runner, args, settings.Debug.FailExit)
	}
	if settings.TelegramToken != "" {
		return cli.NewTelegramPoller(settings.TelegramToken, runner).Poll(ctx)
	}
	if settings.HTTPPort != "" {
		return cli.Serve(ctx, runner, settings.HTTPPort)
	}
	return cli.Repl(ctx, runner)
}

func runTests(ctx context.Context, runner *cli.Runner, paths []string, failExit bool) error {
	failures := 0
	for _, path := range paths {
		n, err := cli.RunTestFile(ctx, runner, path, failExit)
		failures += n
		if err != nil {
			return err
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d expectation(s) failed", failures)
	}
	fmt.Println("All tests passed.")
	return nil
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP front-end",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, settings, err := newRunner()
			if err != nil {
				return err
			}
			if port == "" {
				port = settings.HTTPPort
			}
			if port == "" {
				port = "5000"
			}
			return cli.Serve(cmd.Context(), runner, port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default GAMAL_HTTP_PORT or 5000)")

	return cmd
}

func telegramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "telegram",
		Short: "Run the Telegram long-polling front-end",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, settings, err := newRunner()
			if err != nil {
				return err
			}
			if settings.TelegramToken == "" {
				return fmt.Errorf("GAMAL_TELEGRAM_TOKEN is not set or too short")
			}
			return cli.NewTelegramPoller(settings.TelegramToken, runner).Poll(cmd.Context())
		},
	}
}

func testCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test [files...]",
		Short: "Run directive-based test files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, settings, err := newRunner()
			if err != nil {
				return err
			}
			return runTests(cmd.Context(), runner, args, settings.Debug.FailExit)
		},
	}
}
