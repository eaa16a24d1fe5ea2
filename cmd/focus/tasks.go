package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/focus/internal/model"
)

func tasksCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and edit tasks without opening the UI",
	}
	cmd.AddCommand(tasksListCmd(configPath))
	cmd.AddCommand(tasksAddCmd(configPath))
	cmd.AddCommand(tasksDoneCmd(configPath))
	cmd.AddCommand(tasksRemoveCmd(configPath))
	return cmd
}

func tasksListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			list := e.tasks.List()
			if len(list) == 0 {
				fmt.Println("No tasks yet. Add one with: focus tasks add <text>")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, t := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\n", shortID(t.ID), t.StatusIcon(), t.Text, t.CompletedSessions, t.TargetSessions)
			}
			return w.Flush()
		},
	}
}

func tasksAddCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add [text]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			t, err := e.tasks.Add(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("Added %s  %s\n", shortID(t.ID), t.Text)
			return nil
		},
	}
}

func tasksDoneCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "done [id]",
		Short: "Toggle a task's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			t, err := resolveTask(e.tasks.List(), args[0])
			if err != nil {
				return err
			}
			if err := e.tasks.ToggleCompleted(t.ID); err != nil {
				return err
			}
			t, _ = e.tasks.Get(t.ID)
			fmt.Printf("%s %s\n", t.StatusIcon(), t.Text)
			return nil
		},
	}
}

func tasksRemoveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			t, err := resolveTask(e.tasks.List(), args[0])
			if err != nil {
				return err
			}
			if err := e.tasks.Remove(t.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", t.Text)
			return nil
		},
	}
}

// resolveTask finds the task whose id equals or uniquely starts with prefix.
func resolveTask(list []model.Task, prefix string) (model.Task, error) {
	var matches []model.Task
	for _, t := range list {
		if t.ID == prefix {
			return t, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return model.Task{}, fmt.Errorf("no task matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return model.Task{}, fmt.Errorf("%q matches %d tasks, use more characters", prefix, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
