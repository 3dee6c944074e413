package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/seed"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Browse and unlock the resource library",
}

var resourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library resources",
	Run: func(cmd *cobra.Command, args []string) {
		resources, err := store.ListResources(context.Background())
		if err != nil {
			fatalf("failed to list resources: %v", err)
		}
		if jsonOutput {
			outputJSON(resources)
			return
		}
		if len(resources) == 0 {
			fmt.Println("Library is empty. Run 'arete resources seed' to load the defaults.")
			return
		}
		cyan := color.New(color.FgCyan).SprintFunc()
		for _, r := range resources {
			lock := "🔒"
			if r.UnlockedAt != nil {
				lock = "  "
			}
			fmt.Printf("%s %s %s (%s) by %s\n", lock, cyan(fmt.Sprintf("[%d]", r.ID)), r.Title, r.Type, r.Author)
		}
	},
}

var resourcesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one resource",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r, err := store.GetResource(context.Background(), parseID(args[0]))
		if err != nil {
			fatalf("failed to load resource: %v", err)
		}
		if r == nil {
			fmt.Println("No such resource.")
			return
		}
		if jsonOutput {
			outputJSON(r)
			return
		}
		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%s (%s) by %s\n", bold(r.Title), r.Type, r.Author)
		if r.Summary != "" {
			fmt.Printf("\n%s\n", r.Summary)
		}
		if len(r.KeyPrinciples) > 0 {
			fmt.Println("\nKey principles:")
			for _, p := range r.KeyPrinciples {
				fmt.Printf("  - %s\n", p)
			}
		}
	},
}

var resourcesUnlockCmd = &cobra.Command{
	Use:   "unlock <id>",
	Short: "Unlock a resource",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		if err := store.UnlockResource(context.Background(), id); err != nil {
			fatalf("failed to unlock resource %d: %v", id, err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Unlocked resource %d\n", green("✓"), id)
	},
}

var resourcesSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the default library (no-op if the library has entries)",
	Run: func(cmd *cobra.Command, args []string) {
		library, err := seed.LoadResources(filepath.Dir(dbPath))
		if err != nil {
			fatalf("failed to load resource library: %v", err)
		}
		inserted, err := store.SeedResources(context.Background(), library)
		if err != nil {
			fatalf("failed to seed resources: %v", err)
		}
		if jsonOutput {
			outputJSON(map[string]int{"seeded": inserted})
			return
		}
		if inserted == 0 {
			fmt.Println("Library already has entries; nothing seeded.")
			return
		}
		fmt.Printf("Seeded %d resources\n", inserted)
	},
}

func init() {
	resourcesCmd.AddCommand(resourcesListCmd)
	resourcesCmd.AddCommand(resourcesShowCmd)
	resourcesCmd.AddCommand(resourcesUnlockCmd)
	resourcesCmd.AddCommand(resourcesSeedCmd)
	rootCmd.AddCommand(resourcesCmd)
}
