package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lifebase/lifebase/internal/importer"
	"github.com/lifebase/lifebase/internal/llm"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import entries from a JSONL export",
		Long: `Bulk-import life entries from a JSONL file. Each line holds one entry:

  {"content": "午餐花了38元", "amount": -38, "recorded_at": "2026-08-30T12:10:00Z"}

Entries run through the same classification as interactive logging.
Malformed lines are skipped; failed entries are reported but do not
abort the run.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
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

	// Imports use the direct entry path only; no LLM needed.
	orchestrator, err := createOrchestrator(store, &llm.MockClient{})
	if err != nil {
		return err
	}

	imp := importer.New(orchestrator, os.Stderr)
	summary, err := imp.ImportFile(ctx, userID, args[0])
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("\nImported %d entries (%d failed, %d skipped)\n",
		summary.Imported, summary.Failed, summary.Skipped)
	return nil
}
