package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/types"
)

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Record and review reflections",
}

var reflectSaveCmd = &cobra.Command{
	Use:   "save <type>",
	Short: "Save a reflection for a day (overwrites the same slot)",
	Long: `Save a reflection. Type is one of daily-am, daily-pm, weekly,
monthly, quarterly. Saving the same type and day again replaces the
earlier answers. Answers are given as repeated --answer prompt=text.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dateStr, _ := cmd.Flags().GetString("date")
		energy, _ := cmd.Flags().GetInt("energy")
		mood, _ := cmd.Flags().GetInt("mood")
		note, _ := cmd.Flags().GetString("note")
		rawAnswers, _ := cmd.Flags().GetStringArray("answer")

		date := types.Today()
		if dateStr != "" {
			date = types.Day(dateStr)
			if err := date.Validate(); err != nil {
				fatalf("invalid date: %v", err)
			}
		}

		answers := make(map[string]string, len(rawAnswers))
		for _, raw := range rawAnswers {
			key, value, found := strings.Cut(raw, "=")
			if !found || key == "" {
				fatalf("invalid --answer %q: want prompt=text", raw)
			}
			answers[key] = value
		}

		r := &types.Reflection{
			Type:        types.ReflectionType(args[0]),
			Date:        date,
			Answers:     answers,
			EnergyLevel: energy,
			Mood:        mood,
			Note:        note,
		}
		id, err := store.SaveReflection(context.Background(), r)
		if err != nil {
			fatalf("failed to save reflection: %v", err)
		}
		if jsonOutput {
			outputJSON(map[string]interface{}{"id": id, "type": r.Type, "date": date})
			return
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Saved %s reflection for %s\n", green("✓"), r.Type, date)
	},
}

var reflectShowCmd = &cobra.Command{
	Use:   "show <type> <date>",
	Short: "Show one reflection",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		r, err := store.GetReflection(context.Background(), types.ReflectionType(args[0]), types.Day(args[1]))
		if err != nil {
			fatalf("failed to load reflection: %v", err)
		}
		if r == nil {
			fmt.Println("No reflection recorded for that slot.")
			return
		}
		if jsonOutput {
			outputJSON(r)
			return
		}
		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%s %s on %s (energy %d, mood %d)\n", bold(string(r.Type)), "reflection", r.Date, r.EnergyLevel, r.Mood)
		for prompt, answer := range r.Answers {
			fmt.Printf("  %s: %s\n", bold(prompt), answer)
		}
		if r.Note != "" {
			fmt.Printf("  %s\n", r.Note)
		}
	},
}

var reflectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reflections",
	Run: func(cmd *cobra.Command, args []string) {
		var filter types.ReflectionFilter
		if v, _ := cmd.Flags().GetString("type"); v != "" {
			t := types.ReflectionType(v)
			if !t.Valid() {
				fatalf("invalid reflection type %q", v)
			}
			filter.Type = &t
		}
		if v, _ := cmd.Flags().GetString("from"); v != "" {
			d := types.Day(v)
			filter.From = &d
		}
		if v, _ := cmd.Flags().GetString("to"); v != "" {
			d := types.Day(v)
			filter.To = &d
		}

		reflections, err := store.ListReflections(context.Background(), filter)
		if err != nil {
			fatalf("failed to list reflections: %v", err)
		}
		if jsonOutput {
			outputJSON(reflections)
			return
		}
		for _, r := range reflections {
			fmt.Printf("%s %s (energy %d, mood %d)\n", r.Date, r.Type, r.EnergyLevel, r.Mood)
		}
	},
}

func init() {
	reflectSaveCmd.Flags().String("date", "", "Day of the reflection (default today)")
	reflectSaveCmd.Flags().Int("energy", 5, "Energy level 1-10")
	reflectSaveCmd.Flags().Int("mood", 5, "Mood 1-10")
	reflectSaveCmd.Flags().String("note", "", "Free-form note")
	reflectSaveCmd.Flags().StringArray("answer", nil, "Prompt answer as prompt=text (repeatable)")

	reflectListCmd.Flags().String("type", "", "Filter by type")
	reflectListCmd.Flags().String("from", "", "Inclusive start date")
	reflectListCmd.Flags().String("to", "", "Inclusive end date")

	reflectCmd.AddCommand(reflectSaveCmd)
	reflectCmd.AddCommand(reflectShowCmd)
	reflectCmd.AddCommand(reflectListCmd)
	rootCmd.AddCommand(reflectCmd)
}
