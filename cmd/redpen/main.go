// Package main provides the redpen CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/redpen/redpen/cli"
)

var (
	// Global flags
	provider string
	dbPath   string
	session  string
	verbose  bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "redpen",
		Short: "Conversational document editing with reviewable suggestions",
		Long: `A document-editing assistant driven by plain-language instructions.

Edits are never applied silently: every instruction produces a suggestion
you approve or reject. Parsing and editing run on local heuristics; a
remote model is consulted only for instructions the heuristics cannot
classify, and only when a provider is configured.`,
	}

	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "LLM provider for the remote fallback (openai, anthropic, deepseek, gemini)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", ".redpen/redpen.db", "Database path for session persistence")
	rootCmd.PersistentFlags().StringVar(&session, "session", "", "Session ID to resume or create")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(chatCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildLogger creates the CLI logger. Verbose mode enables debug output.
func buildLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.Development = true
	}
	return cfg.Build()
}

func buildOptions() (cli.Options, func(), error) {
	logger, err := buildLogger()
	if err != nil {
		return cli.Options{}, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	opts := cli.Options{
		Provider: provider,
		DBPath:   dbPath,
		Session:  session,
		Verbose:  verbose,
		Logger:   logger,
	}
	return opts, func() { _ = logger.Sync() }, nil
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "Report word counts, readability, tone, and topics for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, cleanup, err := buildOptions()
			if err != nil {
				return err
			}
			defer cleanup()
			return cli.Analyze(context.Background(), args[0], opts)
		},
	}
}

func editCmd() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "edit [file] [instruction]",
		Short: "Edit a document from a plain-language instruction",
		Long: `Edit a document file from plain-language instructions.

With an instruction argument, runs it once: the suggestion and its diff
are printed, and --apply writes the change back to the file. Without one,
starts an interactive session where each instruction produces a suggestion
you inspect with 'diff', then 'approve' or 'reject'; 'save' writes the
accumulated changes back.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, cleanup, err := buildOptions()
			if err != nil {
				return err
			}
			defer cleanup()
			instruction := ""
			if len(args) == 2 {
				instruction = args[1]
			}
			return cli.Edit(context.Background(), args[0], instruction, apply, opts)
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Apply the suggestion to the file (one-shot mode)")
	return cmd
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an editing session on an empty document",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, cleanup, err := buildOptions()
			if err != nil {
				return err
			}
			defer cleanup()
			return cli.Chat(context.Background(), opts)
		},
	}
}
