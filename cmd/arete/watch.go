package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/aretehq/arete/internal/debug"
	"github.com/aretehq/arete/internal/metrics"
	"github.com/aretehq/arete/internal/reactive"
	"github.com/aretehq/arete/internal/storage"
	"github.com/aretehq/arete/internal/types"
)

type watchSummary struct {
	Habits []habitStats `json:"habits"`
	Open   int          `json:"open_alerts"`
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of habit streaks, re-rendered on every change",
	Long: `Watch runs a live query over habits, logs and alerts and reprints
the summary whenever they change. Writes made by other processes are
picked up by watching the database file itself.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		lq := reactive.NewLiveQuery(store.ChangeBus(), func(ctx context.Context) (watchSummary, error) {
			return buildWatchSummary(ctx, store)
		})
		defer lq.Close()

		// Out-of-band writes never hit this process's change bus, so nudge
		// every table when the database file changes on disk.
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			fatalf("failed to create file watcher: %v", err)
		}
		defer watcher.Close()
		if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
			fatalf("failed to watch %s: %v", filepath.Dir(dbPath), err)
		}
		go func() {
			base := filepath.Base(dbPath)
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return
					}
					if strings.HasPrefix(filepath.Base(event.Name), base) && event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
						debug.Logf("external change to %s, invalidating", event.Name)
						store.ChangeBus().PublishAll()
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					debug.Logf("watcher error: %v", err)
				case <-ctx.Done():
					return
				}
			}
		}()

		fmt.Println("Watching for changes. Ctrl-C to stop.")
		for {
			select {
			case res, ok := <-lq.Results():
				if !ok {
					return
				}
				if res.Err != nil {
					fmt.Printf("query failed: %v\n", res.Err)
					continue
				}
				printWatchSummary(res.Value)
			case <-ctx.Done():
				return
			}
		}
	},
}

func buildWatchSummary(ctx context.Context, st storage.Storage) (watchSummary, error) {
	var out watchSummary
	today := types.Today()

	habits, err := st.ListHabits(ctx, types.HabitFilter{})
	if err != nil {
		return out, err
	}
	for _, h := range habits {
		logs, err := st.ListHabitLogs(ctx, types.HabitLogFilter{HabitID: &h.ID})
		if err != nil {
			return out, err
		}
		out.Habits = append(out.Habits, habitStats{
			HabitID:        h.ID,
			Title:          h.Title,
			CurrentStreak:  metrics.CurrentStreak(h.ID, logs, today),
			LongestStreak:  metrics.LongestStreak(h.ID, logs),
			CompletionRate: metrics.WeeklyCompletionRate(h.ID, h.TargetDaysPerWeek, logs, metrics.DefaultWindowWeeks, today),
		})
	}

	alerts, err := st.ListAlerts(ctx, types.AlertFilter{})
	if err != nil {
		return out, err
	}
	out.Open = len(alerts)
	return out, nil
}

func printWatchSummary(s watchSummary) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("--- %d habits, %d open alerts ---\n", len(s.Habits), s.Open)
	for _, h := range s.Habits {
		fmt.Printf("%s streak %d (best %d), %.0f%%\n",
			bold(h.Title), h.CurrentStreak, h.LongestStreak, h.CompletionRate*100)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
