package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/types"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals and their milestones",
}

var goalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a goal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		desc, _ := cmd.Flags().GetString("description")
		target, _ := cmd.Flags().GetString("target-date")

		g := &types.Goal{
			Title:       args[0],
			Description: desc,
		}
		if cmd.Flags().Changed("pillar") {
			p, _ := cmd.Flags().GetInt64("pillar")
			g.PillarID = &p
		}
		if target != "" {
			d := types.Day(target)
			if err := d.Validate(); err != nil {
				fatalf("invalid target date: %v", err)
			}
			g.TargetDate = &d
		}

		id, err := store.CreateGoal(context.Background(), g)
		if err != nil {
			fatalf("failed to create goal: %v", err)
		}
		if jsonOutput {
			outputJSON(map[string]int64{"id": id})
			return
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Created goal %d: %s\n", green("✓"), id, g.Title)
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	Run: func(cmd *cobra.Command, args []string) {
		var filter types.GoalFilter
		if cmd.Flags().Changed("pillar") {
			p, _ := cmd.Flags().GetInt64("pillar")
			filter.PillarID = &p
		}
		if cmd.Flags().Changed("status") {
			s, _ := cmd.Flags().GetString("status")
			status := types.GoalStatus(s)
			if !status.Valid() {
				fatalf("invalid status %q", s)
			}
			filter.Status = &status
		}

		goals, err := store.ListGoals(context.Background(), filter)
		if err != nil {
			fatalf("failed to list goals: %v", err)
		}
		if jsonOutput {
			outputJSON(goals)
			return
		}
		if len(goals) == 0 {
			fmt.Println("No goals match.")
			return
		}
		cyan := color.New(color.FgCyan).SprintFunc()
		for _, g := range goals {
			line := fmt.Sprintf("%s [%s] %s", cyan(fmt.Sprintf("[%d]", g.ID)), g.Status, g.Title)
			if g.TargetDate != nil {
				line += fmt.Sprintf(" (due %s)", *g.TargetDate)
			}
			fmt.Println(line)
		}
	},
}

var goalUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a goal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])

		var upd types.GoalUpdate
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			upd.Title = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			upd.Description = &v
		}
		if cmd.Flags().Changed("status") {
			s, _ := cmd.Flags().GetString("status")
			status := types.GoalStatus(s)
			if !status.Valid() {
				fatalf("invalid status %q", s)
			}
			upd.Status = &status
		}
		if cmd.Flags().Changed("pillar") {
			p, _ := cmd.Flags().GetInt64("pillar")
			var inner *int64
			if p != 0 {
				inner = &p
			}
			// --pillar 0 detaches the goal from any pillar
			upd.PillarID = &inner
		}
		if cmd.Flags().Changed("target-date") {
			v, _ := cmd.Flags().GetString("target-date")
			var inner *types.Day
			if v != "" {
				d := types.Day(v)
				if err := d.Validate(); err != nil {
					fatalf("invalid target date: %v", err)
				}
				inner = &d
			}
			upd.TargetDate = &inner
		}

		if err := store.UpdateGoal(context.Background(), id, upd); err != nil {
			fatalf("failed to update goal %d: %v", id, err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Updated goal %d\n", green("✓"), id)
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal and its milestones",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		if err := store.DeleteGoal(context.Background(), id); err != nil {
			fatalf("failed to delete goal %d: %v", id, err)
		}
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Printf("%s Deleted goal %d and its milestones\n", yellow("✗"), id)
	},
}

var milestoneCmd = &cobra.Command{
	Use:   "milestone",
	Short: "Manage goal milestones",
}

var milestoneAddCmd = &cobra.Command{
	Use:   "add <goal-id> <title>",
	Short: "Add a milestone to a goal",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		m := &types.Milestone{
			GoalID: parseID(args[0]),
			Title:  args[1],
		}
		id, err := store.AddMilestone(context.Background(), m)
		if err != nil {
			fatalf("failed to add milestone: %v", err)
		}
		if jsonOutput {
			outputJSON(map[string]int64{"id": id})
			return
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Added milestone %d: %s\n", green("✓"), id, m.Title)
	},
}

var milestoneListCmd = &cobra.Command{
	Use:   "list <goal-id>",
	Short: "List a goal's milestones",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		milestones, err := store.ListMilestones(context.Background(), parseID(args[0]))
		if err != nil {
			fatalf("failed to list milestones: %v", err)
		}
		if jsonOutput {
			outputJSON(milestones)
			return
		}
		for _, m := range milestones {
			mark := "[ ]"
			if m.Completed {
				mark = "[x]"
			}
			fmt.Printf("%s %d: %s\n", mark, m.ID, m.Title)
		}
	},
}

var milestoneDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a milestone completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		if err := store.SetMilestoneCompleted(context.Background(), id, true); err != nil {
			fatalf("failed to complete milestone %d: %v", id, err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Milestone %d completed\n", green("✓"), id)
	},
}

var milestoneUndoCmd = &cobra.Command{
	Use:   "undo <id>",
	Short: "Mark a milestone not completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		if err := store.SetMilestoneCompleted(context.Background(), id, false); err != nil {
			fatalf("failed to reopen milestone %d: %v", id, err)
		}
		fmt.Printf("Milestone %d reopened\n", id)
	},
}

func init() {
	goalAddCmd.Flags().String("description", "", "Goal description")
	goalAddCmd.Flags().Int64("pillar", 0, "Pillar this goal belongs to")
	goalAddCmd.Flags().String("target-date", "", "Target date (yyyy-mm-dd)")

	goalListCmd.Flags().Int64("pillar", 0, "Filter by pillar")
	goalListCmd.Flags().String("status", "", "Filter by status (active|completed|paused|archived)")

	goalUpdateCmd.Flags().String("title", "", "New title")
	goalUpdateCmd.Flags().String("description", "", "New description")
	goalUpdateCmd.Flags().String("status", "", "New status")
	goalUpdateCmd.Flags().Int64("pillar", 0, "New pillar (0 to detach)")
	goalUpdateCmd.Flags().String("target-date", "", "New target date (empty to clear)")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalUpdateCmd)
	goalCmd.AddCommand(goalDeleteCmd)

	milestoneCmd.AddCommand(milestoneAddCmd)
	milestoneCmd.AddCommand(milestoneListCmd)
	milestoneCmd.AddCommand(milestoneDoneCmd)
	milestoneCmd.AddCommand(milestoneUndoCmd)

	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(milestoneCmd)
}
