package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/configfile"
	"github.com/aretehq/arete/internal/seed"
	"github.com/aretehq/arete/internal/storage/sqlite"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize arete in the current directory",
	Long: `Initialize arete in the current directory by creating a .arete/
directory, a database file, and metadata.json. Seeds the default
resource library into the fresh database.`,
	Run: func(cmd *cobra.Command, _ []string) {
		quiet, _ := cmd.Flags().GetBool("quiet")
		dbName, _ := cmd.Flags().GetString("db-name")

		cwd, err := os.Getwd()
		if err != nil {
			fatalf("failed to get current directory: %v", err)
		}

		areteDir := filepath.Join(cwd, ".arete")
		if envDir := os.Getenv("ARETE_DIR"); envDir != "" {
			areteDir = envDir
		}

		if err := os.MkdirAll(areteDir, 0750); err != nil {
			fatalf("failed to create %s: %v", areteDir, err)
		}

		cfg, err := configfile.Load(areteDir)
		if err != nil {
			fatalf("failed to read metadata: %v", err)
		}
		if cfg == nil {
			cfg = configfile.DefaultConfig()
			if dbName != "" {
				cfg.Database = dbName
			}
			if err := cfg.Save(areteDir); err != nil {
				fatalf("failed to write metadata: %v", err)
			}
		}

		path := cfg.DatabasePath(areteDir)
		db, err := sqlite.New(path)
		if err != nil {
			fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		ctx := context.Background()
		library, err := seed.LoadResources(areteDir)
		if err != nil {
			fatalf("failed to load resource library: %v", err)
		}
		seeded, err := db.SeedResources(ctx, library)
		if err != nil {
			fatalf("failed to seed resources: %v", err)
		}

		if jsonOutput {
			outputJSON(map[string]interface{}{
				"arete_dir": areteDir,
				"database":  path,
				"seeded":    seeded,
			})
			return
		}
		if !quiet {
			green := color.New(color.FgGreen).SprintFunc()
			cyan := color.New(color.FgCyan).SprintFunc()
			fmt.Printf("%s Initialized arete in %s\n", green("✓"), cyan(areteDir))
			if seeded > 0 {
				fmt.Printf("  Seeded %d resources into the library\n", seeded)
			}
			fmt.Printf("  Database: %s\n", path)
			fmt.Printf("\nNext: set your identity with 'arete identity set --vision \"...\"'\n")
		}
	},
}

func init() {
	initCmd.Flags().Bool("quiet", false, "Suppress output")
	initCmd.Flags().String("db-name", "", "Database filename (default: arete.db)")
	rootCmd.AddCommand(initCmd)
}
