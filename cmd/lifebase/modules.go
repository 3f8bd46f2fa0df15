package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lifebase/lifebase/internal/model"
)

func modulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Manage life modules",
		Long:  `List, create, and hide the life modules that organize your records.`,
	}

	cmd.AddCommand(listModulesCmd())
	cmd.AddCommand(ensureModuleCmd())
	cmd.AddCommand(hideModuleCmd())

	return cmd
}

func listModulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your modules",
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

			includeHidden, _ := cmd.Flags().GetBool("all")
			modules, err := store.ListModules(ctx, userID, includeHidden)
			if err != nil {
				return fmt.Errorf("failed to list modules: %w", err)
			}

			if len(modules) == 0 {
				fmt.Println("No modules yet. Start chatting or use 'lifebase log' to create some.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("Module"),
				headerStyle.Render("Type"),
				headerStyle.Render("Records"),
				headerStyle.Render("Status"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 12),
				strings.Repeat("-", 12),
				strings.Repeat("-", 7),
				strings.Repeat("-", 6))

			for _, mod := range modules {
				status := "active"
				if mod.IsHidden {
					status = "hidden"
				}
				fmt.Fprintf(w, "%s %s\t%s\t%d\t%s\n",
					mod.Icon, mod.DisplayName, mod.Type, mod.RecordCount, status)
			}

			return nil
		},
	}

	cmd.Flags().Bool("all", false, "include hidden modules")

	return cmd
}

func ensureModuleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure <type>",
		Short: "Create a module if it does not exist",
		Long: `Ensure a module of the given type exists for your user. Valid types:
` + strings.Join(moduleTypeNames(), ", ") + `.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			userID, err := currentUserID()
			if err != nil {
				return err
			}

			moduleType := model.ModuleType(args[0])
			if !moduleType.IsValid() {
				return fmt.Errorf("unknown module type %q (valid: %s)",
					args[0], strings.Join(moduleTypeNames(), ", "))
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			mod, err := store.EnsureModule(ctx, userID, moduleType)
			if err != nil {
				return fmt.Errorf("failed to ensure module: %w", err)
			}

			fmt.Printf("%s %s (%d records)\n", mod.Icon, mod.DisplayName, mod.RecordCount)
			return nil
		},
	}
}

func hideModuleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hide <type>",
		Short: "Hide a module from listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			userID, err := currentUserID()
			if err != nil {
				return err
			}

			moduleType := model.ModuleType(args[0])
			if !moduleType.IsValid() {
				return fmt.Errorf("unknown module type %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			mod, err := store.GetModule(ctx, userID, moduleType)
			if err != nil {
				return fmt.Errorf("failed to find module: %w", err)
			}

			if err := store.HideModule(ctx, mod.ID); err != nil {
				return fmt.Errorf("failed to hide module: %w", err)
			}

			fmt.Printf("Hidden %s %s\n", mod.Icon, mod.DisplayName)
			return nil
		},
	}
}

func moduleTypeNames() []string {
	types := model.ValidModuleTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}
