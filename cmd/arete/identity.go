package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/types"
)

var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Show or update your identity (vision, mission, values)",
}

var identityShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current identity",
	Run: func(cmd *cobra.Command, args []string) {
		identity, err := store.GetIdentity(context.Background())
		if err != nil {
			fatalf("failed to load identity: %v", err)
		}
		if identity == nil {
			fmt.Println("No identity set yet. Use 'arete identity set' to create one.")
			return
		}
		if jsonOutput {
			outputJSON(identity)
			return
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%s %s\n", bold("Vision:"), identity.Vision)
		fmt.Printf("%s %s\n", bold("Mission:"), identity.Mission)
		if identity.LifeView != "" {
			fmt.Printf("%s %s\n", bold("Life view:"), identity.LifeView)
		}
		if identity.WorkView != "" {
			fmt.Printf("%s %s\n", bold("Work view:"), identity.WorkView)
		}
		if len(identity.CoreValues) > 0 {
			fmt.Printf("%s %s\n", bold("Core values:"), strings.Join(identity.CoreValues, ", "))
		}
		if identity.CoachTone != "" {
			fmt.Printf("%s %s\n", bold("Coach tone:"), identity.CoachTone)
		}
	},
}

var identitySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set identity fields (creates the identity on first use)",
	Run: func(cmd *cobra.Command, args []string) {
		var upd types.IdentityUpdate
		if cmd.Flags().Changed("vision") {
			v, _ := cmd.Flags().GetString("vision")
			upd.Vision = &v
		}
		if cmd.Flags().Changed("mission") {
			v, _ := cmd.Flags().GetString("mission")
			upd.Mission = &v
		}
		if cmd.Flags().Changed("life-view") {
			v, _ := cmd.Flags().GetString("life-view")
			upd.LifeView = &v
		}
		if cmd.Flags().Changed("work-view") {
			v, _ := cmd.Flags().GetString("work-view")
			upd.WorkView = &v
		}
		if cmd.Flags().Changed("values") {
			v, _ := cmd.Flags().GetStringSlice("values")
			upd.CoreValues = &v
		}
		if cmd.Flags().Changed("tone") {
			v, _ := cmd.Flags().GetString("tone")
			upd.CoachTone = &v
		}
		if upd.IsZero() {
			fatalf("nothing to set; pass at least one of --vision, --mission, --life-view, --work-view, --values, --tone")
		}

		identity, err := store.SaveIdentity(context.Background(), upd)
		if err != nil {
			fatalf("failed to save identity: %v", err)
		}
		if jsonOutput {
			outputJSON(identity)
			return
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Identity updated\n", green("✓"))
	},
}

func init() {
	identitySetCmd.Flags().String("vision", "", "Long-horizon vision statement")
	identitySetCmd.Flags().String("mission", "", "Mission statement")
	identitySetCmd.Flags().String("life-view", "", "What a good life is")
	identitySetCmd.Flags().String("work-view", "", "What good work is")
	identitySetCmd.Flags().StringSlice("values", nil, "Ordered core values (max 7)")
	identitySetCmd.Flags().String("tone", "", "Preferred coaching tone")

	identityCmd.AddCommand(identityShowCmd)
	identityCmd.AddCommand(identitySetCmd)
	rootCmd.AddCommand(identityCmd)
}
