package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/types"
)

var standardCmd = &cobra.Command{
	Use:   "standard",
	Short: "Manage quantitative standards within pillars",
}

var standardAddCmd = &cobra.Command{
	Use:   "add <pillar-id> <label>",
	Short: "Add a standard to a pillar",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		target, _ := cmd.Flags().GetFloat64("target")
		unit, _ := cmd.Flags().GetString("unit")

		s := &types.Standard{
			PillarID: parseID(args[0]),
			Label:    args[1],
			Target:   target,
			Unit:     unit,
		}
		id, err := store.AddStandard(context.Background(), s)
		if err != nil {
			fatalf("failed to add standard: %v", err)
		}
		if jsonOutput {
			outputJSON(map[string]interface{}{"id": id, "metric": s.Metric})
			return
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Added standard %d: %s (metric %s)\n", green("✓"), id, s.Label, s.Metric)
	},
}

var standardListCmd = &cobra.Command{
	Use:   "list <pillar-id>",
	Short: "List a pillar's standards",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		standards, err := store.ListStandards(context.Background(), parseID(args[0]))
		if err != nil {
			fatalf("failed to list standards: %v", err)
		}
		if jsonOutput {
			outputJSON(standards)
			return
		}
		if len(standards) == 0 {
			fmt.Println("No standards for this pillar.")
			return
		}
		cyan := color.New(color.FgCyan).SprintFunc()
		for _, s := range standards {
			fmt.Printf("%s %s: %g %s\n", cyan(fmt.Sprintf("[%d]", s.ID)), s.Label, s.Target, s.Unit)
		}
	},
}

var standardUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a standard (changing the label re-derives its metric)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])

		var upd types.StandardUpdate
		if cmd.Flags().Changed("label") {
			v, _ := cmd.Flags().GetString("label")
			upd.Label = &v
		}
		if cmd.Flags().Changed("target") {
			v, _ := cmd.Flags().GetFloat64("target")
			upd.Target = &v
		}
		if cmd.Flags().Changed("unit") {
			v, _ := cmd.Flags().GetString("unit")
			upd.Unit = &v
		}

		if err := store.UpdateStandard(context.Background(), id, upd); err != nil {
			fatalf("failed to update standard %d: %v", id, err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Updated standard %d\n", green("✓"), id)
	},
}

var standardDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a standard",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		if err := store.DeleteStandard(context.Background(), id); err != nil {
			fatalf("failed to delete standard %d: %v", id, err)
		}
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Printf("%s Deleted standard %d\n", yellow("✗"), id)
	},
}

func init() {
	standardAddCmd.Flags().Float64("target", 0, "Target value (must be positive)")
	standardAddCmd.Flags().String("unit", "", "Unit of measure")

	standardUpdateCmd.Flags().String("label", "", "New label")
	standardUpdateCmd.Flags().Float64("target", 0, "New target")
	standardUpdateCmd.Flags().String("unit", "", "New unit")

	standardCmd.AddCommand(standardAddCmd)
	standardCmd.AddCommand(standardListCmd)
	standardCmd.AddCommand(standardUpdateCmd)
	standardCmd.AddCommand(standardDeleteCmd)
	rootCmd.AddCommand(standardCmd)
}
