// Command arete is the CLI for the arete life-management store.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretehq/arete"
	"github.com/aretehq/arete/internal/config"
	"github.com/aretehq/arete/internal/debug"
	"github.com/aretehq/arete/internal/storage"
)

var (
	dbPath     string
	jsonOutput bool

	// store is opened by PersistentPreRun for every command that needs one
	// and closed by PersistentPostRun.
	store storage.Storage
)

// Commands that run before a database exists, or that never need one.
var noStoreCommands = map[string]bool{
	"init":    true,
	"version": true,
	"help":    true,
}

func init() {
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize config: %v\n", err)
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: auto-discover .arete/*.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

var rootCmd = &cobra.Command{
	Use:   "arete",
	Short: "arete - Personal life-management store",
	Long: `A local-first store for the deliberate life: identity, pillars,
standards, goals, habits, reflections and performance snapshots, with
derived streaks and advisory alerts.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("arete version %s (%s)\n", Version, Build)
			return
		}
		_ = cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Priority: flags > viper (config file + env vars) > defaults
		if !cmd.Flags().Changed("json") {
			jsonOutput = config.GetBool("json")
		}
		if !cmd.Flags().Changed("db") && dbPath == "" {
			dbPath = config.GetString("db")
		}

		if noStoreCommands[cmd.Name()] {
			return
		}

		if dbPath == "" {
			dbPath = arete.FindDatabasePath()
		}
		if dbPath == "" {
			fmt.Fprintf(os.Stderr, "Error: no arete database found. Run 'arete init' first.\n")
			os.Exit(1)
		}

		debug.Init(filepath.Dir(dbPath))
		debug.Logf("opening database %s for %s", dbPath, cmd.Name())

		var err error
		store, err = arete.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open database: %v\n", err)
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			if err := store.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
			store = nil
		}
	},
}

func outputJSON(v interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
