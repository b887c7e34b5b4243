package main

import (
	"fmt"
	"slices"

	"github.com/Veraticus/payday/internal/cli"
	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/tui"
	"github.com/Veraticus/payday/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func hoursCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Track work hours and salary",
	}
	cmd.AddCommand(hoursTrackCmd(), hoursListCmd(), hoursEditCmd(), hoursDeleteCmd(), hoursSummaryCmd())
	return cmd
}

func hoursTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Run the live work timer",
		Long: `Start a session, take breaks and stop to save an entry. A running
session lives in memory only and is lost if the timer exits without stopping.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			saved, err := tui.Run(cmd.Context(), a.tracker,
				tui.WithTheme(themes.ByName(viper.GetString("tui.theme"))))
			if len(saved) > 0 {
				fmt.Fprintln(a.out, cli.RenderEntries(saved))
			}
			return err
		},
	}
}

func hoursListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded hours entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(a.out, cli.RenderEntries(a.tracker.Entries()))
			return nil
		},
	}
}

func hoursEditCmd() *cobra.Command {
	var date, start, end string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the date, start or end of an entry",
		Long: `Change the date, start or end of an entry. Entries are dated by the day
they end: an end earlier than the start means the session began the evening
before. Breaks move with the entry when its date changes.`,
		Example: `  payday hours edit 3 --start 08:30 --end 17:00
  payday hours edit 3 --date 2024-03-14`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			entries := a.tracker.Entries()
			idx := slices.IndexFunc(entries, func(e model.HoursEntry) bool { return e.ID == id })
			if idx < 0 {
				return fmt.Errorf("hours entry %d not found", id)
			}
			entry := entries[idx]

			day, startAt, endAt := entry.Date, entry.StartTime, entry.EndTime
			if date != "" {
				if day, err = model.ParseDate(date); err != nil {
					return err
				}
			}
			if start != "" {
				if startAt, err = parseClock(start); err != nil {
					return err
				}
			}
			if end != "" {
				if endAt, err = parseClock(end); err != nil {
					return err
				}
			}

			if _, err := a.tracker.EditEntry(cmd.Context(), id, day, startAt, endAt); err != nil {
				return err
			}
			edited := slices.IndexFunc(a.tracker.Entries(), func(e model.HoursEntry) bool { return e.ID == id })
			fmt.Fprintln(a.out, cli.RenderEntries(a.tracker.Entries()[edited:edited+1]))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "new start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "new end time (HH:MM)")
	return cmd
}

func hoursDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an hours entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			deleted, err := a.tracker.DeleteEntry(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(a.out, cli.SubtleStyle.Render("Nothing deleted"))
			}
			return nil
		},
	}
}

func hoursSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show hours and salary per month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(a.out, cli.FormatTitle("Hours summary"))
			fmt.Fprintln(a.out, cli.RenderHoursSummary(a.tracker.MonthlySummary()))
			return nil
		},
	}
}
