package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/advisor"
	"github.com/aretehq/arete/internal/types"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Evaluate advisory rules and sync the resulting alerts",
	Long: `Run the advisor over current pillars, habits, logs and snapshots.
New alerts are inserted; alerts that already exist, including ones you
have dismissed, are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		pillars, err := store.ListPillars(ctx, 1)
		if err != nil {
			fatalf("failed to list pillars: %v", err)
		}
		habits, err := store.ListHabits(ctx, types.HabitFilter{})
		if err != nil {
			fatalf("failed to list habits: %v", err)
		}
		logs, err := store.ListHabitLogs(ctx, types.HabitLogFilter{})
		if err != nil {
			fatalf("failed to list habit logs: %v", err)
		}
		snapshots, err := store.ListSnapshots(ctx, types.SnapshotFilter{})
		if err != nil {
			fatalf("failed to list snapshots: %v", err)
		}

		alerts := advisor.Evaluate(advisor.Input{
			Today:     types.Today(),
			Pillars:   pillars,
			Habits:    habits,
			Logs:      logs,
			Snapshots: snapshots,
		})

		inserted, err := store.BulkSyncAlerts(ctx, alerts)
		if err != nil {
			fatalf("failed to sync alerts: %v", err)
		}

		if jsonOutput {
			outputJSON(map[string]int{"evaluated": len(alerts), "inserted": inserted})
			return
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Evaluated %d alerts, %d new\n", green("✓"), len(alerts), inserted)
		if inserted > 0 {
			fmt.Println("Review them with 'arete alerts list'.")
		}
	},
}

func init() {
	rootCmd.AddCommand(adviseCmd)
}
