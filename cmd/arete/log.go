package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/types"
)

var logCmd = &cobra.Command{
	Use:   "log <habit-id>",
	Short: "Log a habit for a day (defaults to today)",
	Long: `Record a habit completion. Logging the same habit and day twice
updates the earlier entry instead of creating a duplicate.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		habitID := parseID(args[0])
		dateStr, _ := cmd.Flags().GetString("date")
		missed, _ := cmd.Flags().GetBool("missed")
		note, _ := cmd.Flags().GetString("note")

		date := types.Today()
		if dateStr != "" {
			date = types.Day(dateStr)
			if err := date.Validate(); err != nil {
				fatalf("invalid date: %v", err)
			}
		}

		entry := &types.HabitLog{
			HabitID:   habitID,
			Date:      date,
			Completed: !missed,
			Note:      note,
		}
		id, err := store.LogHabit(context.Background(), entry)
		if err != nil {
			fatalf("failed to log habit %d: %v", habitID, err)
		}
		if jsonOutput {
			outputJSON(map[string]interface{}{"id": id, "date": date, "completed": !missed})
			return
		}
		green := color.New(color.FgGreen).SprintFunc()
		state := "completed"
		if missed {
			state = "missed"
		}
		fmt.Printf("%s Logged habit %d as %s on %s\n", green("✓"), habitID, state, date)
	},
}

var logListCmd = &cobra.Command{
	Use:   "list <habit-id>",
	Short: "List a habit's log history",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		habitID := parseID(args[0])
		filter := types.HabitLogFilter{HabitID: &habitID}
		if v, _ := cmd.Flags().GetString("from"); v != "" {
			d := types.Day(v)
			if err := d.Validate(); err != nil {
				fatalf("invalid --from date: %v", err)
			}
			filter.From = &d
		}
		if v, _ := cmd.Flags().GetString("to"); v != "" {
			d := types.Day(v)
			if err := d.Validate(); err != nil {
				fatalf("invalid --to date: %v", err)
			}
			filter.To = &d
		}

		logs, err := store.ListHabitLogs(context.Background(), filter)
		if err != nil {
			fatalf("failed to list logs: %v", err)
		}
		if jsonOutput {
			outputJSON(logs)
			return
		}
		for _, l := range logs {
			mark := "[x]"
			if !l.Completed {
				mark = "[ ]"
			}
			line := fmt.Sprintf("%s %s", mark, l.Date)
			if l.Note != "" {
				line += " - " + l.Note
			}
			fmt.Println(line)
		}
	},
}

func init() {
	logCmd.Flags().String("date", "", "Day to log (yyyy-mm-dd, default today)")
	logCmd.Flags().Bool("missed", false, "Record the day as missed instead of completed")
	logCmd.Flags().String("note", "", "Optional note")

	logListCmd.Flags().String("from", "", "Inclusive start date")
	logListCmd.Flags().String("to", "", "Inclusive end date")

	logCmd.AddCommand(logListCmd)
	rootCmd.AddCommand(logCmd)
}
