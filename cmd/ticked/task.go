package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"ticked/internal/api"
	"ticked/internal/model"
	"ticked/internal/view"
)

var priorityLabels = map[int]string{0: "", 1: "!", 2: "!!", 3: "!!!"}

func newTaskCmd(a func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Work with tasks",
	}
	cmd.AddCommand(
		newTaskListCmd(a),
		newTaskQuickCmd(a),
		newTaskAddCmd(a),
		newTaskDoneCmd(a),
		newTaskUndoneCmd(a),
		newTaskRmCmd(a),
		newTaskRestoreCmd(a),
		newTaskTrashCmd(a),
		newTaskMoveCmd(a),
	)
	return cmd
}

func newTaskListCmd(a func() *app) *cobra.Command {
	var (
		listID    string
		today     bool
		week      bool
		completed bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if completed {
				if err := a().tasks.FetchCompleted(ctx); err != nil {
					return err
				}
				printTasks(a().tasks.Completed())
				return nil
			}

			var err error
			if listID != "" {
				err = a().tasks.FetchByList(ctx, listID)
			} else {
				err = a().tasks.FetchActive(ctx)
			}
			if err != nil {
				return err
			}

			tasks := a().tasks.Active()
			switch {
			case today:
				tasks = view.DueToday(tasks, time.Now())
			case week:
				tasks = view.DueWithin(tasks, time.Now(), 7)
			default:
				tasks = filterActive(tasks)
			}
			printTasks(tasks)
			return nil
		},
	}
	cmd.Flags().StringVarP(&listID, "list", "l", "", "limit to one list")
	cmd.Flags().BoolVar(&today, "today", false, "only tasks due today")
	cmd.Flags().BoolVar(&week, "week", false, "only tasks due within 7 days")
	cmd.Flags().BoolVar(&completed, "completed", false, "show completed tasks")
	return cmd
}

func filterActive(tasks []model.Task) []model.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if view.IsActive(t) {
			out = append(out, t)
		}
	}
	return out
}

func printTasks(tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks")
		return
	}
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("ID", "PRI", "DUE", "TITLE", "LIST", "TAGS")
	for _, t := range tasks {
		due := ""
		if d, ok := view.DueOn(t); ok {
			due = d.Format("2006-01-02")
		}
		listName := ""
		if t.List != nil {
			listName = t.List.Name
		}
		title := t.Title
		if t.CompletedAt != nil {
			title = color.New(color.Faint).Sprint(title)
		}
		table.AddRow(t.ID, colorPriority(t.Priority), due, title, listName, t.Tags)
	}
	fmt.Println(table)
}

func colorPriority(p int) string {
	label := priorityLabels[p]
	switch p {
	case 3:
		return color.RedString(label)
	case 2:
		return color.YellowString(label)
	default:
		return label
	}
}

func newTaskQuickCmd(a func() *app) *cobra.Command {
	var listID string
	cmd := &cobra.Command{
		Use:   "quick <text>",
		Short: "Quick-add a task from natural text (parsed server-side)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := joinArgs(args)
			t, err := a().tasks.QuickAdd(cmd.Context(), input, optional(listID))
			if err != nil {
				return err
			}
			fmt.Printf("Added %s: %s\n", t.ID, t.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&listID, "list", "l", "", "target list id")
	return cmd
}

func newTaskAddCmd(a func() *app) *cobra.Command {
	var (
		description string
		priority    int
		due         string
		listID      string
		tags        string
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := api.TaskDraft{
				Title:       joinArgs(args),
				Description: description,
				Priority:    priority,
				DueDate:     optional(due),
				ListID:      optional(listID),
				Tags:        tags,
			}
			t, err := a().tasks.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s: %s\n", t.ID, t.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "description")
	cmd.Flags().IntVarP(&priority, "priority", "P", 0, "priority 0-3")
	cmd.Flags().StringVar(&due, "due", "", "due date (2006-01-02)")
	cmd.Flags().StringVarP(&listID, "list", "l", "", "target list id")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	return cmd
}

func newTaskDoneCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a().tasks.Complete(cmd.Context(), args[0])
		},
	}
}

func newTaskUndoneCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undone <id>",
		Short: "Reopen a completed task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a().tasks.Uncomplete(cmd.Context(), args[0])
		},
	}
}

func newTaskRmCmd(a func() *app) *cobra.Command {
	var permanent bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Move a task to the trash (or delete it permanently)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if permanent {
				return a().tasks.PermanentDelete(cmd.Context(), args[0])
			}
			return a().tasks.SoftDelete(cmd.Context(), args[0])
		},
	}
	cmd.Flags().BoolVar(&permanent, "permanent", false, "skip the trash")
	return cmd
}

func newTaskRestoreCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a task from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a().tasks.Restore(cmd.Context(), args[0])
		},
	}
}

func newTaskTrashCmd(a func() *app) *cobra.Command {
	var clear bool
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Show or empty the trash",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clear {
				return a().tasks.ClearTrash(cmd.Context())
			}
			if err := a().tasks.FetchTrashed(cmd.Context()); err != nil {
				return err
			}
			printTasks(a().tasks.Trashed())
			return nil
		},
	}
	cmd.Flags().BoolVar(&clear, "clear", false, "empty the trash")
	return cmd
}

func newTaskMoveCmd(a func() *app) *cobra.Command {
	var listID string
	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a task to another list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a().tasks.MoveToList(cmd.Context(), args[0], optional(listID))
		},
	}
	cmd.Flags().StringVarP(&listID, "list", "l", "", "target list id (empty moves to inbox)")
	return cmd
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func joinArgs(args []string) string {
	out := args[0]
	for _, a := range args[1:] {
		out += " " + a
	}
	return out
}
