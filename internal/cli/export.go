package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ImCitizen13/diyaa-al-quran/internal/progress"
)

func NewExportCommand(opts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all progress as a JSON snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			data, err := app.Store.ExportSnapshot()
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), data)
				return err
			}
			if err := os.WriteFile(output, []byte(data+"\n"), 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d ayahs to %s\n", app.Store.MemorizedCount(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func NewRestoreCommand(opts *RootOptions) *cobra.Command {
	var fromBackup bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace all progress with an exported snapshot",
		Long:  "Replace all progress with an exported snapshot. With --backup the argument names a file in the backup directory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			var data []byte
			if fromBackup {
				data, err = app.Backups.Read(args[0])
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			snap, err := progress.ParseSnapshot(data)
			if err != nil {
				return err
			}

			restored := app.Store.Restore(snap)
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d ayahs\n", restored)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromBackup, "backup", false, "read the snapshot from the backup directory")
	return cmd
}

func NewResetCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all memorization progress, history and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}

			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			app.Store.ResetAll()
			fmt.Fprintln(cmd.OutOrStdout(), "All progress deleted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
