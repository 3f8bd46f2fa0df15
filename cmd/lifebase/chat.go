package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lifebase/lifebase/internal/tui"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Open the interactive assistant. Messages are classified into life
modules and persisted as records while the assistant replies
conversationally.`,
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
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

	client, err := createLLMClient()
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	if closer, ok := client.(interface{ Close() error }); ok {
		defer func() { _ = closer.Close() }()
	}

	orchestrator, err := createOrchestrator(store, client)
	if err != nil {
		return err
	}

	return tui.Run(tui.Config{
		Orchestrator: orchestrator,
		UserID:       userID,
	})
}
