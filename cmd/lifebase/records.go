package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lifebase/lifebase/internal/model"
)

func recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Browse your records",
		Long:  `List recent records across modules and show aggregate statistics.`,
	}

	cmd.AddCommand(listRecordsCmd())
	cmd.AddCommand(statsCmd())

	return cmd
}

func listRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent records",
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
			moduleArg, _ := cmd.Flags().GetString("module")

			var records []model.RecordEntry
			if moduleArg != "" {
				moduleType := model.ModuleType(moduleArg)
				if !moduleType.IsValid() {
					return fmt.Errorf("unknown module type %q", moduleArg)
				}
				mod, err := store.GetModule(ctx, userID, moduleType)
				if err != nil {
					return fmt.Errorf("failed to find module: %w", err)
				}
				records, err = store.GetRecordsByModule(ctx, userID, mod.ID, limit)
				if err != nil {
					return fmt.Errorf("failed to list records: %w", err)
				}
			} else {
				records, err = store.GetRecentRecords(ctx, userID, limit)
				if err != nil {
					return fmt.Errorf("failed to list records: %w", err)
				}
			}

			if len(records) == 0 {
				fmt.Println("No records yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("Time"),
				headerStyle.Render("Category"),
				headerStyle.Render("Amount"),
				headerStyle.Render("Content"))

			for _, rec := range records {
				amount := ""
				if rec.Amount != nil {
					amount = fmt.Sprintf("%.2f", *rec.Amount)
				}
				content := rec.Content
				if len([]rune(content)) > 40 {
					content = string([]rune(content)[:40]) + "..."
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					rec.RecordedAt.Local().Format("2006-01-02 15:04"),
					rec.Category,
					amount,
					content)
			}

			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum number of records to show")
	cmd.Flags().String("module", "", "restrict to one module type")

	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics",
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

			days, _ := cmd.Flags().GetInt("days")
			since := time.Now().AddDate(0, 0, -days)

			stats, err := store.GetRecordStats(ctx, userID, since)
			if err != nil {
				return fmt.Errorf("failed to compute stats: %w", err)
			}

			title := lipgloss.NewStyle().Bold(true).Render(
				fmt.Sprintf("Last %d days", days))
			fmt.Println(title)
			fmt.Println(strings.Repeat("-", 20))
			fmt.Printf("Records:  %d\n", stats.RecordCount)
			fmt.Printf("Spending: %.2f\n", stats.TotalSpending)
			fmt.Printf("Income:   %.2f\n", stats.TotalIncome)
			fmt.Printf("Net:      %.2f\n", stats.TotalIncome-stats.TotalSpending)

			return nil
		},
	}

	cmd.Flags().Int("days", 30, "look-back window in days")

	return cmd
}
