package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/payday/internal/cli"
	"github.com/Veraticus/payday/internal/storage"
	"github.com/spf13/cobra"
)

func checkpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Manage database checkpoints",
		Long: `Create, list, restore and delete snapshots of the payday database.

Checkpoints are full copies of the database kept next to it. "payday clear"
takes one automatically.`,
		Example: `  payday checkpoint create --tag before-import
  payday checkpoint list
  payday checkpoint restore before-import`,
	}
	cmd.AddCommand(createCheckpointCmd(), listCheckpointsCmd(), restoreCheckpointCmd(), deleteCheckpointCmd())
	return cmd
}

// withCheckpoints opens the unlocked app and its checkpoint manager.
func withCheckpoints(cmd *cobra.Command, fn func(a *app, manager *storage.CheckpointManager) error) error {
	a, err := openApp(cmd, openOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	manager, err := a.store.NewCheckpointManager()
	if err != nil {
		return fmt.Errorf("failed to create checkpoint manager: %w", err)
	}
	return fn(a, manager)
}

func createCheckpointCmd() *cobra.Command {
	var tag, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new checkpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCheckpoints(cmd, func(a *app, manager *storage.CheckpointManager) error {
				info, err := manager.Create(cmd.Context(), tag, description)
				if err != nil {
					return fmt.Errorf("failed to create checkpoint: %w", err)
				}
				fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Created checkpoint %s (%s)",
					info.ID, formatFileSize(info.FileSize))))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "checkpoint name (generated when empty)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description of the checkpoint")
	return cmd
}

func listCheckpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all checkpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCheckpoints(cmd, func(a *app, manager *storage.CheckpointManager) error {
				checkpoints, err := manager.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list checkpoints: %w", err)
				}
				if len(checkpoints) == 0 {
					fmt.Fprintln(a.out, cli.SubtleStyle.Render("No checkpoints found."))
					return nil
				}

				rows := make([][]string, 0, len(checkpoints))
				for _, cp := range checkpoints {
					kind := "manual"
					if cp.IsAuto {
						kind = "auto"
					}
					rows = append(rows, []string{
						cli.InfoStyle.Render(cp.ID),
						formatRelativeTime(cp.CreatedAt, time.Now()),
						formatFileSize(cp.FileSize),
						fmt.Sprint(cp.Keys),
						cli.SubtleStyle.Render(kind),
					})
				}
				fmt.Fprintln(a.out, cli.RenderTable([]string{"NAME", "CREATED", "SIZE", "KEYS", "TYPE"}, rows))
				return nil
			})
		},
	}
}

func restoreCheckpointCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <checkpoint-id>",
		Short: "Replace the database with a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withCheckpoints(cmd, func(a *app, manager *storage.CheckpointManager) error {
				ok, err := a.confirmer.Confirm(cmd.Context(),
					fmt.Sprintf("Replace the current database with checkpoint %s?", id))
				if err != nil || !ok {
					return err
				}
				// Restore closes the database handle.
				if err := manager.Restore(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to restore checkpoint: %w", err)
				}
				fmt.Fprintln(a.out, cli.FormatSuccess("Restored from checkpoint "+id))
				return nil
			})
		},
	}
}

func deleteCheckpointCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <checkpoint-id>",
		Short: "Delete a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withCheckpoints(cmd, func(a *app, manager *storage.CheckpointManager) error {
				ok, err := a.confirmer.Confirm(cmd.Context(), fmt.Sprintf("Permanently delete checkpoint %s?", id))
				if err != nil || !ok {
					return err
				}
				if err := manager.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to delete checkpoint: %w", err)
				}
				fmt.Fprintln(a.out, cli.FormatSuccess("Deleted checkpoint "+id))
				return nil
			})
		},
	}
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

func formatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour") + " ago"
	case d < 48*time.Hour:
		return "yesterday"
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day") + " ago"
	default:
		return t.Format("2006-01-02 15:04")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
