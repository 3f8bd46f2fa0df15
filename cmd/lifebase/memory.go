package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lifebase/lifebase/internal/memory"
	"github.com/lifebase/lifebase/internal/model"
	"github.com/lifebase/lifebase/internal/service"
)

func memoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect the assistant's working memory",
		Long: `Rebuild the assistant's working memory from your persisted records and
inspect it. The memory log itself lives in-process during chat sessions;
these commands reconstruct it from storage.`,
	}

	cmd.AddCommand(memorySummaryCmd())
	cmd.AddCommand(memoryExportCmd())

	return cmd
}

// seedMemoryFromRecords replays recent records into a fresh memory store,
// mirroring what a chat session would have accumulated.
func seedMemoryFromRecords(ctx context.Context, store service.Storage, userID string, limit int) (memory.Store, error) {
	records, err := store.GetRecentRecords(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	memories := memory.NewInMemoryStore(memory.DefaultMaxEntriesPerUser)
	// Replay oldest first so eviction order matches the original sessions.
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		memories.AddMemory(userID, model.MemoryTypeUserData, rec.Content, 0.5, rec.Tags)
	}
	return memories, nil
}

func memorySummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the memory summary line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			userID, err := currentUserID()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			limit, _ := cmd.Flags().GetInt("limit")
			memories, err := seedMemoryFromRecords(ctx, store, userID, limit)
			if err != nil {
				return err
			}

			summary := memories.GenerateMemorySummary(userID)
			if summary == "" {
				fmt.Println("No memories yet.")
				return nil
			}

			stats := memories.UserStats(userID)
			fmt.Println(summary)
			fmt.Printf("Entries: %d, last updated %s\n",
				stats.TotalEntries, stats.LastUpdated.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().Int("limit", 200, "number of recent records to replay")

	return cmd
}

func memoryExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the memory log as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			userID, err := currentUserID()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			limit, _ := cmd.Flags().GetInt("limit")
			memories, err := seedMemoryFromRecords(ctx, store, userID, limit)
			if err != nil {
				return err
			}

			data, err := memories.ExportMemory(userID)
			if err != nil {
				return fmt.Errorf("failed to export memory: %w", err)
			}
			if data == "" {
				fmt.Println("[]")
				return nil
			}
			fmt.Println(data)
			return nil
		},
	}

	cmd.Flags().Int("limit", 200, "number of recent records to replay")

	return cmd
}
