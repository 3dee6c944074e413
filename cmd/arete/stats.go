package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/metrics"
	"github.com/aretehq/arete/internal/types"
)

type habitStats struct {
	HabitID        int64   `json:"habit_id"`
	Title          string  `json:"title"`
	CurrentStreak  int     `json:"current_streak"`
	LongestStreak  int     `json:"longest_streak"`
	CompletionRate float64 `json:"completion_rate"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streaks and completion rates for your habits",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		today := types.Today()
		weeks, _ := cmd.Flags().GetInt("weeks")

		var filter types.HabitFilter
		if cmd.Flags().Changed("pillar") {
			p, _ := cmd.Flags().GetInt64("pillar")
			filter.PillarID = &p
		}
		habits, err := store.ListHabits(ctx, filter)
		if err != nil {
			fatalf("failed to list habits: %v", err)
		}

		var stats []habitStats
		for _, h := range habits {
			logs, err := store.ListHabitLogs(ctx, types.HabitLogFilter{HabitID: &h.ID})
			if err != nil {
				fatalf("failed to load logs for habit %d: %v", h.ID, err)
			}
			stats = append(stats, habitStats{
				HabitID:        h.ID,
				Title:          h.Title,
				CurrentStreak:  metrics.CurrentStreak(h.ID, logs, today),
				LongestStreak:  metrics.LongestStreak(h.ID, logs),
				CompletionRate: metrics.WeeklyCompletionRate(h.ID, h.TargetDaysPerWeek, logs, weeks, today),
			})
		}

		if jsonOutput {
			outputJSON(stats)
			return
		}
		if len(stats) == 0 {
			fmt.Println("No habits to report on.")
			return
		}

		bold := color.New(color.Bold).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		for _, s := range stats {
			rate := fmt.Sprintf("%.0f%%", s.CompletionRate*100)
			if s.CompletionRate >= 0.8 {
				rate = green(rate)
			} else if s.CompletionRate < 0.5 {
				rate = yellow(rate)
			}
			fmt.Printf("%s streak %d (best %d), last %d weeks: %s\n",
				bold(s.Title), s.CurrentStreak, s.LongestStreak, weeks, rate)
		}
	},
}

func init() {
	statsCmd.Flags().Int64("pillar", 0, "Limit to one pillar's habits")
	statsCmd.Flags().Int("weeks", metrics.DefaultWindowWeeks, "Consistency window in weeks")
	rootCmd.AddCommand(statsCmd)
}
