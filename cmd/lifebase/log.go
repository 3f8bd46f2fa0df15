package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifebase/lifebase/internal/assistant"
	"github.com/lifebase/lifebase/internal/classifier"
	"github.com/lifebase/lifebase/internal/llm"
	"github.com/lifebase/lifebase/internal/model"
)

func logCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <text>",
		Short: "Log a single entry without starting a chat",
		Long: `Classify one entry and persist it directly. The entry text is matched
against classification rules to pick the module, category, and
subcategory. Use --amount to override the amount parsed from the text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLog,
	}

	cmd.Flags().Float64("amount", 0, "amount for this entry (negative for spending, positive for income)")
	cmd.Flags().String("at", "", "entry time in RFC 3339 format (default: now)")
	cmd.Flags().String("type", "text", "input type (text, photo, voice)")
	cmd.Flags().Bool("analyze", false, "run the entry through LLM analysis before persisting (requires an API key)")

	return cmd
}

func runLog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	userID, err := currentUserID()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	analyze, _ := cmd.Flags().GetBool("analyze")

	// Without --analyze the entry path never talks to the LLM, so a mock
	// client keeps the orchestrator wiring uniform without an API key.
	var client llm.Client = &llm.MockClient{}
	if analyze {
		client, err = createLLMClient()
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		if closer, ok := client.(interface{ Close() error }); ok {
			defer func() { _ = closer.Close() }()
		}
	}

	orchestrator, err := createOrchestrator(store, client)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	inputType, _ := cmd.Flags().GetString("type")

	if analyze {
		result, err := orchestrator.AnalyzeAndLog(ctx, userID, text, model.InputType(inputType))
		if err != nil {
			return fmt.Errorf("failed to log entry: %w", err)
		}
		printEntryResult(result)
		return nil
	}

	in := classifier.Input{Text: text}

	if cmd.Flags().Changed("amount") {
		amount, _ := cmd.Flags().GetFloat64("amount")
		in.Amount = &amount
	}

	if at, _ := cmd.Flags().GetString("at"); at != "" {
		ts, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("invalid --at value: %w", err)
		}
		in.Time = &ts
	}

	result, err := orchestrator.LogEntry(ctx, userID, in, model.InputType(inputType))
	if err != nil {
		return fmt.Errorf("failed to log entry: %w", err)
	}
	printEntryResult(result)
	return nil
}

func printEntryResult(result *assistant.EntryResult) {
	fmt.Printf("Logged to %s %s (%s/%s, confidence %.2f)\n",
		result.Module.Icon,
		result.Module.DisplayName,
		result.Classification.Category,
		result.Classification.Subcategory,
		result.Classification.Confidence,
	)
	if result.Record.Amount != nil {
		fmt.Printf("Amount: %.2f\n", *result.Record.Amount)
	}
}
