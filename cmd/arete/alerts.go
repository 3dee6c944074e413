package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/types"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Review and manage advisory alerts",
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List alerts",
	Run: func(cmd *cobra.Command, args []string) {
		var filter types.AlertFilter
		if cmd.Flags().Changed("pillar") {
			p, _ := cmd.Flags().GetInt64("pillar")
			filter.PillarID = &p
		}
		if v, _ := cmd.Flags().GetString("severity"); v != "" {
			s := types.AlertSeverity(v)
			if !s.Valid() {
				fatalf("invalid severity %q", v)
			}
			filter.Severity = &s
		}
		filter.IncludeDismissed, _ = cmd.Flags().GetBool("all")

		alerts, err := store.ListAlerts(context.Background(), filter)
		if err != nil {
			fatalf("failed to list alerts: %v", err)
		}
		if jsonOutput {
			outputJSON(alerts)
			return
		}
		if len(alerts) == 0 {
			fmt.Println("No alerts.")
			return
		}

		severityColor := map[types.AlertSeverity]func(a ...interface{}) string{
			types.SeverityInsight:     color.New(color.FgCyan).SprintFunc(),
			types.SeverityChallenge:   color.New(color.FgMagenta).SprintFunc(),
			types.SeverityWarning:     color.New(color.FgYellow).SprintFunc(),
			types.SeverityOpportunity: color.New(color.FgGreen).SprintFunc(),
		}
		for _, a := range alerts {
			tag := string(a.Severity)
			if paint, ok := severityColor[a.Severity]; ok {
				tag = paint(tag)
			}
			line := fmt.Sprintf("[%s] %s: %s", tag, a.ID, a.Title)
			if a.DismissedAt != nil {
				line += " (dismissed)"
			}
			fmt.Println(line)
			if a.Message != "" {
				fmt.Printf("    %s\n", a.Message)
			}
			if a.Action != "" {
				fmt.Printf("    → %s\n", a.Action)
			}
		}
	},
}

var alertsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add an ad-hoc alert",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		severity, _ := cmd.Flags().GetString("severity")
		message, _ := cmd.Flags().GetString("message")
		action, _ := cmd.Flags().GetString("action")

		a := &types.AdvisoryAlert{
			ID:       uuid.NewString(),
			Severity: types.AlertSeverity(severity),
			Title:    args[0],
			Message:  message,
			Action:   action,
		}
		if cmd.Flags().Changed("pillar") {
			p, _ := cmd.Flags().GetInt64("pillar")
			a.PillarID = &p
		}

		if err := store.AddAlert(context.Background(), a); err != nil {
			fatalf("failed to add alert: %v", err)
		}
		if jsonOutput {
			outputJSON(map[string]string{"id": a.ID})
			return
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Added alert %s\n", green("✓"), a.ID)
	},
}

var alertsDismissCmd = &cobra.Command{
	Use:   "dismiss <id>",
	Short: "Dismiss an alert",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := store.DismissAlert(context.Background(), args[0]); err != nil {
			fatalf("failed to dismiss alert %s: %v", args[0], err)
		}
		fmt.Printf("Dismissed %s\n", args[0])
	},
}

var alertsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all dismissed alerts",
	Run: func(cmd *cobra.Command, args []string) {
		removed, err := store.ClearDismissed(context.Background())
		if err != nil {
			fatalf("failed to clear dismissed alerts: %v", err)
		}
		if jsonOutput {
			outputJSON(map[string]int{"removed": removed})
			return
		}
		fmt.Printf("Removed %d dismissed alerts\n", removed)
	},
}

func init() {
	alertsListCmd.Flags().Int64("pillar", 0, "Filter by pillar")
	alertsListCmd.Flags().String("severity", "", "Filter by severity")
	alertsListCmd.Flags().Bool("all", false, "Include dismissed alerts")

	alertsAddCmd.Flags().String("severity", "insight", "Severity (insight|challenge|warning|opportunity)")
	alertsAddCmd.Flags().String("message", "", "Alert body")
	alertsAddCmd.Flags().String("action", "", "Suggested action")
	alertsAddCmd.Flags().Int64("pillar", 0, "Related pillar")

	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsAddCmd)
	alertsCmd.AddCommand(alertsDismissCmd)
	alertsCmd.AddCommand(alertsClearCmd)
	rootCmd.AddCommand(alertsCmd)
}
