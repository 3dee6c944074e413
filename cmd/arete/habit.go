package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/types"
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage habits",
}

var habitAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a habit",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		desc, _ := cmd.Flags().GetString("description")
		freq, _ := cmd.Flags().GetString("frequency")
		target, _ := cmd.Flags().GetInt("target")
		clr, _ := cmd.Flags().GetString("color")

		h := &types.Habit{
			Title:             args[0],
			Description:       desc,
			Frequency:         types.HabitFrequency(freq),
			TargetDaysPerWeek: target,
			Color:             clr,
		}
		if cmd.Flags().Changed("pillar") {
			p, _ := cmd.Flags().GetInt64("pillar")
			h.PillarID = &p
		}

		id, err := store.CreateHabit(context.Background(), h)
		if err != nil {
			fatalf("failed to create habit: %v", err)
		}
		if jsonOutput {
			outputJSON(map[string]int64{"id": id})
			return
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Created habit %d: %s\n", green("✓"), id, h.Title)
	},
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Run: func(cmd *cobra.Command, args []string) {
		var filter types.HabitFilter
		if cmd.Flags().Changed("pillar") {
			p, _ := cmd.Flags().GetInt64("pillar")
			filter.PillarID = &p
		}
		filter.IncludeArchived, _ = cmd.Flags().GetBool("all")

		habits, err := store.ListHabits(context.Background(), filter)
		if err != nil {
			fatalf("failed to list habits: %v", err)
		}
		if jsonOutput {
			outputJSON(habits)
			return
		}
		if len(habits) == 0 {
			fmt.Println("No habits match.")
			return
		}
		cyan := color.New(color.FgCyan).SprintFunc()
		for _, h := range habits {
			line := fmt.Sprintf("%s %s (%s, %d/week)", cyan(fmt.Sprintf("[%d]", h.ID)), h.Title, h.Frequency, h.TargetDaysPerWeek)
			if h.ArchivedAt != nil {
				line += " [archived]"
			}
			fmt.Println(line)
		}
	},
}

var habitUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a habit",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])

		var upd types.HabitUpdate
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			upd.Title = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			upd.Description = &v
		}
		if cmd.Flags().Changed("frequency") {
			v, _ := cmd.Flags().GetString("frequency")
			f := types.HabitFrequency(v)
			if !f.Valid() {
				fatalf("invalid frequency %q", v)
			}
			upd.Frequency = &f
		}
		if cmd.Flags().Changed("target") {
			v, _ := cmd.Flags().GetInt("target")
			upd.TargetDaysPerWeek = &v
		}
		if cmd.Flags().Changed("color") {
			v, _ := cmd.Flags().GetString("color")
			upd.Color = &v
		}
		if cmd.Flags().Changed("pillar") {
			p, _ := cmd.Flags().GetInt64("pillar")
			var inner *int64
			if p != 0 {
				inner = &p
			}
			upd.PillarID = &inner
		}

		if err := store.UpdateHabit(context.Background(), id, upd); err != nil {
			fatalf("failed to update habit %d: %v", id, err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Updated habit %d\n", green("✓"), id)
	},
}

var habitArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a habit (keeps its history)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		if err := store.ArchiveHabit(context.Background(), id); err != nil {
			fatalf("failed to archive habit %d: %v", id, err)
		}
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Printf("%s Archived habit %d\n", yellow("~"), id)
	},
}

var habitDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a habit and all its logs",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		if err := store.DeleteHabit(context.Background(), id); err != nil {
			fatalf("failed to delete habit %d: %v", id, err)
		}
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Printf("%s Deleted habit %d and its logs\n", yellow("✗"), id)
	},
}

func init() {
	habitAddCmd.Flags().String("description", "", "What this habit involves")
	habitAddCmd.Flags().String("frequency", "daily", "Cadence (daily|weekly|custom)")
	habitAddCmd.Flags().Int("target", 7, "Target days per week")
	habitAddCmd.Flags().String("color", "", "Display color (hex)")
	habitAddCmd.Flags().Int64("pillar", 0, "Pillar this habit supports")

	habitListCmd.Flags().Int64("pillar", 0, "Filter by pillar")
	habitListCmd.Flags().Bool("all", false, "Include archived habits")

	habitUpdateCmd.Flags().String("title", "", "New title")
	habitUpdateCmd.Flags().String("description", "", "New description")
	habitUpdateCmd.Flags().String("frequency", "", "New frequency")
	habitUpdateCmd.Flags().Int("target", 0, "New weekly target")
	habitUpdateCmd.Flags().String("color", "", "New color")
	habitUpdateCmd.Flags().Int64("pillar", 0, "New pillar (0 to detach)")

	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitUpdateCmd)
	habitCmd.AddCommand(habitArchiveCmd)
	habitCmd.AddCommand(habitDeleteCmd)
	rootCmd.AddCommand(habitCmd)
}
