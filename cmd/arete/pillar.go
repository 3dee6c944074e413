package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/types"
)

var pillarCmd = &cobra.Command{
	Use:   "pillar",
	Short: "Manage life pillars",
}

var pillarAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a pillar",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		desc, _ := cmd.Flags().GetString("description")
		clr, _ := cmd.Flags().GetString("color")
		order, _ := cmd.Flags().GetInt("order")

		p := &types.Pillar{
			Name:        args[0],
			Description: desc,
			Color:       clr,
			Order:       order,
		}
		id, err := store.CreatePillar(context.Background(), p)
		if err != nil {
			fatalf("failed to create pillar: %v", err)
		}
		if jsonOutput {
			outputJSON(map[string]int64{"id": id})
			return
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Created pillar %d: %s\n", green("✓"), id, p.Name)
	},
}

var pillarListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pillars",
	Run: func(cmd *cobra.Command, args []string) {
		pillars, err := store.ListPillars(context.Background(), 1)
		if err != nil {
			fatalf("failed to list pillars: %v", err)
		}
		if jsonOutput {
			outputJSON(pillars)
			return
		}
		if len(pillars) == 0 {
			fmt.Println("No pillars yet. Add one with 'arete pillar add <name>'.")
			return
		}
		cyan := color.New(color.FgCyan).SprintFunc()
		for _, p := range pillars {
			fmt.Printf("%s %s", cyan(fmt.Sprintf("[%d]", p.ID)), p.Name)
			if p.Description != "" {
				fmt.Printf(" - %s", p.Description)
			}
			fmt.Println()
		}
	},
}

var pillarUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a pillar",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])

		var upd types.PillarUpdate
		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			upd.Name = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			upd.Description = &v
		}
		if cmd.Flags().Changed("color") {
			v, _ := cmd.Flags().GetString("color")
			upd.Color = &v
		}
		if cmd.Flags().Changed("order") {
			v, _ := cmd.Flags().GetInt("order")
			upd.Order = &v
		}

		if err := store.UpdatePillar(context.Background(), id, upd); err != nil {
			fatalf("failed to update pillar %d: %v", id, err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Updated pillar %d\n", green("✓"), id)
	},
}

var pillarDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a pillar and all its standards",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		if err := store.DeletePillar(context.Background(), id); err != nil {
			fatalf("failed to delete pillar %d: %v", id, err)
		}
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Printf("%s Deleted pillar %d and its standards\n", yellow("✗"), id)
	},
}

// parseID parses a numeric CLI argument, exiting on bad input.
func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fatalf("invalid id %q", arg)
	}
	return id
}

func init() {
	pillarAddCmd.Flags().String("description", "", "What this pillar covers")
	pillarAddCmd.Flags().String("color", "", "Display color (hex)")
	pillarAddCmd.Flags().Int("order", 0, "Display order")

	pillarUpdateCmd.Flags().String("name", "", "New name")
	pillarUpdateCmd.Flags().String("description", "", "New description")
	pillarUpdateCmd.Flags().String("color", "", "New color")
	pillarUpdateCmd.Flags().Int("order", 0, "New display order")

	pillarCmd.AddCommand(pillarAddCmd)
	pillarCmd.AddCommand(pillarListCmd)
	pillarCmd.AddCommand(pillarUpdateCmd)
	pillarCmd.AddCommand(pillarDeleteCmd)
	rootCmd.AddCommand(pillarCmd)
}
