package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/focus/internal/session"
	"github.com/iammorganparry/focus/internal/stats"
)

func statsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show focus totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			s := stats.Compute(e.tasks.List(), session.DefaultDuration)
			fmt.Printf("Completed sessions: %d\n", s.CompletedSessions)
			fmt.Printf("Focused minutes:    %d\n", s.FocusMinutes)
			fmt.Printf("Completed tasks:    %d/%d\n", s.CompletedTasks, s.TotalTasks)
			return nil
		},
	}
}
