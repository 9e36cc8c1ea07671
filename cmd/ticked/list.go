package main

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"ticked/internal/api"
)

func newListCmd(a func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list-catalog",
		Aliases: []string{"lists"},
		Short:   "Work with task lists",
	}
	cmd.AddCommand(newListLsCmd(a), newListAddCmd(a), newListRmCmd(a))
	return cmd
}

func newListLsCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "Show lists and their task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a().lists.Fetch(cmd.Context()); err != nil {
				return err
			}
			table := uitable.New()
			table.AddRow("ID", "NAME", "TASKS")
			for _, l := range a().lists.Lists() {
				table.AddRow(l.ID, l.Name, l.TaskCount())
			}
			fmt.Println(table)
			return nil
		},
	}
}

func newListAddCmd(a func() *app) *cobra.Command {
	var clr, icon string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a().lists.Create(cmd.Context(), api.ListDraft{
				Name:  args[0],
				Color: optional(clr),
				Icon:  optional(icon),
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created list %s: %s\n", l.ID, l.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&clr, "color", "", "hex color")
	cmd.Flags().StringVar(&icon, "icon", "", "icon name")
	return cmd
}

func newListRmCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a list (its tasks fall back to the inbox)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a().lists.Delete(cmd.Context(), args[0])
		},
	}
}
