package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ImCitizen13/diyaa-al-quran/internal/tasks"
)

func NewBackupCommand(opts *RootOptions) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a snapshot backup now, or list existing backups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if !list {
				inline := tasks.NewInlineBackup(app.Store, app.Backups, app.Settings, app.Backups)
				if err := inline.EnqueueBackup("manual", app.Config.Backup.RetentionDays); err != nil {
					return err
				}
			}

			files, err := app.Backups.List()
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %6d bytes  %s\n", f.CreatedAt.Format("2006-01-02 15:04:05"), f.Size, f.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "only list existing backups")
	return cmd
}
