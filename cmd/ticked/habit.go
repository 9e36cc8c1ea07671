package main

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"ticked/internal/api"
)

func newHabitCmd(a func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits"},
		Short:   "Work with habits",
	}
	cmd.AddCommand(newHabitLsCmd(a), newHabitAddCmd(a), newHabitLogCmd(a), newHabitUnlogCmd(a), newHabitRmCmd(a))
	return cmd
}

func newHabitLsCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "Show habits and streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a().habits.Fetch(cmd.Context()); err != nil {
				return err
			}
			table := uitable.New()
			table.AddRow("ID", "NAME", "FREQUENCY", "STREAK", "BEST")
			for _, h := range a().habits.Habits() {
				table.AddRow(h.ID, h.Name, h.Frequency, h.CurrentStreak, h.LongestStreak)
			}
			fmt.Println(table)
			return nil
		},
	}
}

func newHabitAddCmd(a func() *app) *cobra.Command {
	var frequency, clr string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a().habits.Create(cmd.Context(), api.HabitDraft{
				Name:      args[0],
				Frequency: frequency,
				Color:     clr,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created habit %s: %s\n", h.ID, h.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&frequency, "frequency", "daily", "frequency descriptor")
	cmd.Flags().StringVar(&clr, "color", "", "hex color")
	return cmd
}

func newHabitLogCmd(a func() *app) *cobra.Command {
	var date, notes string
	cmd := &cobra.Command{
		Use:   "log <id>",
		Short: "Log a completion (defaults to today)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a().habits.LogCompletion(cmd.Context(), args[0], optional(date), optional(notes)); err != nil {
				return err
			}
			if h, ok := a().habits.Get(args[0]); ok {
				fmt.Printf("%s: streak %d (best %d)\n", h.Name, h.CurrentStreak, h.LongestStreak)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "log date (2006-01-02)")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	return cmd
}

func newHabitUnlogCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unlog <id> <date>",
		Short: "Remove the completion log for a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a().habits.RemoveLog(cmd.Context(), args[0], args[1])
		},
	}
}

func newHabitRmCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a().habits.Delete(cmd.Context(), args[0])
		},
	}
}
