package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/types"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Record and review monthly performance snapshots",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <pillar-id>",
	Short: "Save a snapshot for a pillar and month (overwrites the same month)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		period, _ := cmd.Flags().GetString("period")
		alignment, _ := cmd.Flags().GetString("alignment")
		score, _ := cmd.Flags().GetFloat64("score")
		observed, _ := cmd.Flags().GetFloat64("observed")
		target, _ := cmd.Flags().GetFloat64("target")
		note, _ := cmd.Flags().GetString("note")

		month := types.ThisMonth()
		if period != "" {
			month = types.Month(period)
			if err := month.Validate(); err != nil {
				fatalf("invalid period: %v", err)
			}
		}

		s := &types.PerformanceSnapshot{
			PillarID:       parseID(args[0]),
			Period:         month,
			AlignmentState: types.AlignmentState(alignment),
			Score:          score,
			Observed:       observed,
			Target:         target,
			Note:           note,
		}
		id, err := store.SaveSnapshot(context.Background(), s)
		if err != nil {
			fatalf("failed to save snapshot: %v", err)
		}
		if jsonOutput {
			outputJSON(map[string]interface{}{"id": id, "period": month})
			return
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Saved %s snapshot for pillar %d (%s, score %.1f)\n",
			green("✓"), month, s.PillarID, s.AlignmentState, s.Score)
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List performance snapshots",
	Run: func(cmd *cobra.Command, args []string) {
		var filter types.SnapshotFilter
		if cmd.Flags().Changed("pillar") {
			p, _ := cmd.Flags().GetInt64("pillar")
			filter.PillarID = &p
		}
		if v, _ := cmd.Flags().GetString("from"); v != "" {
			m := types.Month(v)
			filter.From = &m
		}
		if v, _ := cmd.Flags().GetString("to"); v != "" {
			m := types.Month(v)
			filter.To = &m
		}

		snapshots, err := store.ListSnapshots(context.Background(), filter)
		if err != nil {
			fatalf("failed to list snapshots: %v", err)
		}
		if jsonOutput {
			outputJSON(snapshots)
			return
		}
		for _, s := range snapshots {
			fmt.Printf("%s pillar %d: %s, score %.1f (observed %.1f / target %.1f)\n",
				s.Period, s.PillarID, s.AlignmentState, s.Score, s.Observed, s.Target)
		}
	},
}

func init() {
	snapshotSaveCmd.Flags().String("period", "", "Month (yyyy-mm, default current)")
	snapshotSaveCmd.Flags().String("alignment", "aligned", "Alignment (aligned|improving|drifting|avoiding|regressing)")
	snapshotSaveCmd.Flags().Float64("score", 0, "Score 0-100")
	snapshotSaveCmd.Flags().Float64("observed", 0, "Observed value")
	snapshotSaveCmd.Flags().Float64("target", 0, "Target value")
	snapshotSaveCmd.Flags().String("note", "", "Free-form note")

	snapshotListCmd.Flags().Int64("pillar", 0, "Filter by pillar")
	snapshotListCmd.Flags().String("from", "", "Inclusive start month")
	snapshotListCmd.Flags().String("to", "", "Inclusive end month")

	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	rootCmd.AddCommand(snapshotCmd)
}
