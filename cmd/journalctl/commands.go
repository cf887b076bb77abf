package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/radishspirit/moodjournal/internal/calendar"
	"github.com/radishspirit/moodjournal/internal/config"
	"github.com/radishspirit/moodjournal/internal/database"
	"github.com/radishspirit/moodjournal/internal/journal"
	"github.com/radishspirit/moodjournal/internal/logger"
	"github.com/radishspirit/moodjournal/internal/model"
)

type globalFlags struct {
	driver  string
	db      string
	verbose bool
	json    bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	var g globalFlags
	rootCmd := &cobra.Command{
		Use:           "journalctl",
		Short:         "Headless access to the mood journal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&g.driver, "driver", "", "Database driver (sqlite or postgres), overrides MOODJOURNAL_DB_DRIVER")
	rootCmd.PersistentFlags().StringVar(&g.db, "db", "", "SQLite path or Postgres DSN, overrides the environment")
	rootCmd.PersistentFlags().BoolVar(&g.verbose, "verbose", false, "Log to stderr")
	rootCmd.PersistentFlags().BoolVar(&g.json, "json", false, "Print results as JSON")

	rootCmd.AddCommand(
		newSaveCmd(&g),
		newShowCmd(&g),
		newHistoryCmd(&g),
		newStreakCmd(&g),
		newStatsCmd(&g),
		newRecomputeCmd(&g),
		newResetCmd(&g),
	)
	return rootCmd
}

// withJournal opens the journal for the duration of fn.
func withJournal(cmd *cobra.Command, g *globalFlags, fn func(ctx context.Context, svc *journal.Service) error) error {
	log := zerolog.Nop()
	if g.verbose {
		log = logger.Console(cmd.ErrOrStderr(), "journalctl").Level(zerolog.DebugLevel)
	}

	cfg, err := loadConfig(g, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := journal.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()
	return fn(ctx, svc)
}

func loadConfig(g *globalFlags, log zerolog.Logger) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if g.driver != "" {
		cfg.DBDriver = g.driver
	}
	if g.db != "" {
		if cfg.DBDriver == database.DriverPostgres {
			cfg.PostgresDSN = g.db
		} else {
			cfg.DBPath = g.db
		}
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	cfg.LogLoaded(log)
	return cfg, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printEntry(out io.Writer, e *model.Entry, scale model.MoodScale) {
	date := e.DateISO
	if d, err := calendar.Parse(e.DateISO); err == nil {
		date = d.Display()
	}
	mood := fmt.Sprintf("mood %d", e.Mood)
	if label := scale.Label(e.Mood); label != "" {
		mood += " (" + label + ")"
	}
	fmt.Fprintf(out, "%s  %s\n  %s\n", date, mood, e.Text)
}

func printStreak(out io.Writer, rec *model.StreakRecord) {
	fmt.Fprintf(out, "current streak: %d\nlongest streak: %d\n", rec.Current, rec.Longest)
}

func newSaveCmd(g *globalFlags) *cobra.Command {
	var mood int
	var date string
	cmd := &cobra.Command{
		Use:   "save TEXT...",
		Short: "Write the entry for today (or --date), replacing any existing one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return withJournal(cmd, g, func(ctx context.Context, svc *journal.Service) error {
				if date == "" {
					date = svc.TodayISO()
				}
				res, err := svc.SaveForDate(ctx, date, mood, text)
				if err != nil {
					return err
				}
				if g.json {
					return printJSON(cmd.OutOrStdout(), res)
				}
				printEntry(cmd.OutOrStdout(), res.Entry, svc.MoodScale())
				printStreak(cmd.OutOrStdout(), res.Streak)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&mood, "mood", "m", 0, "Mood value (required)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Entry date as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("mood")
	return cmd
}

func newShowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show [DATE]",
		Short: "Show the entry for a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, g, func(ctx context.Context, svc *journal.Service) error {
				date := svc.TodayISO()
				if len(args) == 1 {
					date = args[0]
				}
				e, err := svc.Entry(ctx, date)
				if err != nil {
					return err
				}
				if g.json {
					return printJSON(cmd.OutOrStdout(), e)
				}
				if e == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "no entry for %s\n", date)
					return nil
				}
				printEntry(cmd.OutOrStdout(), e, svc.MoodScale())
				return nil
			})
		},
	}
}

func newHistoryCmd(g *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, g, func(ctx context.Context, svc *journal.Service) error {
				entries, err := svc.History(ctx)
				if err != nil {
					return err
				}
				if limit > 0 && len(entries) > limit {
					entries = entries[:limit]
				}
				if g.json {
					return printJSON(cmd.OutOrStdout(), entries)
				}
				for _, e := range entries {
					printEntry(cmd.OutOrStdout(), e, svc.MoodScale())
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many entries")
	return cmd
}

func newStreakCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the stored streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, g, func(ctx context.Context, svc *journal.Service) error {
				rec, err := svc.Streak(ctx)
				if err != nil {
					return err
				}
				if g.json {
					return printJSON(cmd.OutOrStdout(), rec)
				}
				printStreak(cmd.OutOrStdout(), rec)
				return nil
			})
		},
	}
}

func newStatsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show entry count, average mood and streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, g, func(ctx context.Context, svc *journal.Service) error {
				stats, err := svc.Stats(ctx)
				if err != nil {
					return err
				}
				if g.json {
					return printJSON(cmd.OutOrStdout(), stats)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "entries: %d\n", stats.TotalEntries)
				fmt.Fprintf(out, "average mood: %.2f (%s)\n", stats.AverageMood, stats.AverageLabel)
				fmt.Fprintf(out, "current streak: %d\nlongest streak: %d\n", stats.CurrentStreak, stats.LongestStreak)
				return nil
			})
		},
	}
}

func newRecomputeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "recompute",
		Short: "Rebuild the streak from the stored entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, g, func(ctx context.Context, svc *journal.Service) error {
				rec, err := svc.RecomputeStreak(ctx)
				if err != nil {
					return err
				}
				if g.json {
					return printJSON(cmd.OutOrStdout(), rec)
				}
				printStreak(cmd.OutOrStdout(), rec)
				return nil
			})
		},
	}
}

func newResetCmd(g *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every entry and zero the streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes every entry; pass --yes to confirm")
			}
			return withJournal(cmd, g, func(ctx context.Context, svc *journal.Service) error {
				rec, err := svc.Reset(ctx)
				if err != nil {
					return err
				}
				if g.json {
					return printJSON(cmd.OutOrStdout(), rec)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "journal reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
