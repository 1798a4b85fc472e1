// Command execution for CLI commands.
//
// Information Hiding:
// - Provider and rate-gate setup hidden
// - Interactive loop and in-session commands hidden
// - Output formatting hidden

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/redpen/redpen/config"
	"github.com/redpen/redpen/llm"
	"github.com/redpen/redpen/orchestrator"
	"github.com/redpen/redpen/storage"
)

// Options holds CLI execution options.
type Options struct {
	Provider string
	DBPath   string
	Session  string
	Verbose  bool
	Logger   *zap.Logger
}

// DefaultOptions returns default CLI options.
func DefaultOptions() Options {
	return Options{
		DBPath: ".redpen/redpen.db",
	}
}

// Analyze prints a metadata report for a document file.
func Analyze(ctx context.Context, path string, opts Options) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	o, cleanup, err := buildOrchestrator(ctx, opts, false)
	if err != nil {
		return err
	}
	defer cleanup()

	o.SetDocument(string(content))
	resp, err := o.HandleInstruction(ctx, "analyze the document")
	if err != nil {
		return err
	}

	fmt.Println(resp.Message)
	printAnalysis(resp.Analysis)
	return nil
}

// Edit runs one instruction against a document file, or starts an
// interactive session over it when instruction is empty. Approved
// changes are written back to the file.
func Edit(ctx context.Context, path, instruction string, apply bool, opts Options) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	o, cleanup, err := buildOrchestrator(ctx, opts, true)
	if err != nil {
		return err
	}
	defer cleanup()

	o.SetDocument(string(content))
	save := func(doc string) error {
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
		fmt.Printf("Saved %s\n", path)
		return nil
	}

	if instruction != "" {
		return runOnce(ctx, o, instruction, apply, save)
	}

	fmt.Printf("Editing %s (%d words). Type 'help' for commands.\n\n", path, o.Metadata().WordCount)
	return runLoop(ctx, o, save)
}

// runOnce handles a single instruction: show the suggestion and its
// diff, and either apply it to the file or explain how to.
func runOnce(ctx context.Context, o *orchestrator.Orchestrator, instruction string, apply bool, save func(string) error) error {
	resp, err := o.HandleInstruction(ctx, instruction)
	if err != nil {
		return err
	}

	fmt.Println(resp.Message)
	printAnalysis(resp.Analysis)

	if !resp.HasSuggestion {
		return nil
	}
	fmt.Printf("\n%s\n", o.PendingDiff())

	if !apply {
		fmt.Println("Run again with --apply to write this change, or use 'edit' without an instruction to review interactively.")
		return nil
	}

	decided, err := o.Decide(ctx, true)
	if err != nil {
		return err
	}
	fmt.Println(decided.Message)
	return save(o.Document())
}

// Chat starts an interactive session on an empty document, or resumes a
// named persisted session. Content is built up through the conversation;
// 'save <path>' writes it out.
func Chat(ctx context.Context, opts Options) error {
	o, cleanup, err := buildOrchestrator(ctx, opts, true)
	if err != nil {
		return err
	}
	defer cleanup()

	if opts.Session != "" && o.Document() != "" {
		fmt.Printf("Resumed session %q (%d words, %d messages). Type 'help' for commands.\n\n",
			opts.Session, o.Metadata().WordCount, len(o.Session().History()))
	} else {
		fmt.Println("Starting with an empty document. Type 'help' for commands.")
		fmt.Println()
	}

	return runLoop(ctx, o, nil)
}

// runLoop reads instructions until exit. save is nil when the session has
// no backing file; 'save <path>' still works in that case.
func runLoop(ctx context.Context, o *orchestrator.Orchestrator, save func(string) error) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch {
		case input == "exit" || input == "quit":
			return scanner.Err()

		case input == "help":
			printHelp()

		case input == "approve" || input == "yes":
			resp, err := o.Decide(ctx, true)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Printf("\n%s\n\n", resp.Message)

		case input == "reject" || input == "no":
			resp, err := o.Decide(ctx, false)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Printf("\n%s\n\n", resp.Message)

		case input == "diff":
			if diff := o.PendingDiff(); diff != "" {
				fmt.Printf("\n%s\n", diff)
			} else {
				fmt.Println("No pending suggestion.")
			}

		case input == "show":
			fmt.Printf("\n%s\n\n", o.Document())

		case input == "save":
			if save == nil {
				fmt.Println("No file attached to this session. Use 'save <path>'.")
				continue
			}
			if err := save(o.Document()); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case strings.HasPrefix(input, "save "):
			path := strings.TrimSpace(strings.TrimPrefix(input, "save "))
			if err := os.WriteFile(path, []byte(o.Document()), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to write document: %v\n", err)
				continue
			}
			fmt.Printf("Saved %s\n", path)

		default:
			resp, err := o.HandleInstruction(ctx, input)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Printf("\n%s\n", resp.Message)
			printAnalysis(resp.Analysis)
			fmt.Println()
		}
	}

	return scanner.Err()
}

func printHelp() {
	fmt.Println(`Commands:
  <instruction>   describe an edit, e.g. make it more formal
  approve / yes   apply the pending suggestion
  reject / no     discard the pending suggestion
  diff            show the pending suggestion as a diff
  show            print the current document
  save [path]     write the document to its file or to path
  exit            leave the session`)
}

func printAnalysis(a orchestrator.AnalysisReport) {
	for _, w := range a.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	for _, op := range a.Opportunities {
		fmt.Printf("  tip: %s\n", op)
	}
}

// buildOrchestrator assembles the session pipeline. The remote provider
// is optional: without one, the heuristic pipeline runs alone. Storage
// is attached only for interactive sessions.
func buildOrchestrator(ctx context.Context, opts Options, withStorage bool) (*orchestrator.Orchestrator, func(), error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cleanup := func() {}

	var settings config.Settings
	var client llm.Provider
	if opts.Provider != "" {
		s, err := config.New(opts.Provider)
		if err != nil {
			return nil, nil, err
		}
		settings = s

		provider, err := createProvider(opts.Provider, settings)
		if err != nil {
			return nil, nil, err
		}
		gate := llm.NewRateGate(llm.GateConfig{
			MaxInFlight: settings.Gate.MaxInFlight,
			MaxRequests: settings.Gate.MaxRequests,
			MaxTokens:   settings.Gate.MaxTokens,
			Window:      settings.Gate.Window,
		})
		client = llm.NewGatedClient(provider, gate)
		logger.Debug("remote provider configured",
			zap.String("provider", provider.Name()),
			zap.String("model", provider.Model()))
	} else {
		// Heuristics only; assistant settings still come from the env.
		s, err := config.New("openai")
		if err != nil {
			return nil, nil, err
		}
		settings = s
	}

	var store storage.SessionStorage
	if withStorage && opts.DBPath != "" {
		s, err := storage.OpenSqlite(opts.DBPath)
		if err != nil {
			logger.Warn("session persistence disabled", zap.Error(err))
		} else {
			store = s
			cleanup = func() { _ = s.Close() }
		}
	}

	o := orchestrator.New(orchestrator.Options{
		Client: client,
		Store:  store,
		Logger: logger,
		Config: settings.Assistant,
	})
	if opts.Session != "" && store != nil {
		if err := o.Resume(ctx, opts.Session); err != nil {
			cleanup()
			return nil, nil, err
		}
	}
	return o, cleanup, nil
}

func createProvider(providerName string, settings config.Settings) (llm.Provider, error) {
	providerType, err := llm.ParseProviderType(providerName)
	if err != nil {
		return nil, err
	}

	apiKey, err := config.APIKeyFor(providerName)
	if err != nil {
		return nil, err
	}

	return providerType.
		Model(settings.LLM.Model).
		MaxTokens(settings.LLM.MaxTokens).
		Temperature(float32(settings.LLM.Temperature)).
		APIKey(apiKey)
}
