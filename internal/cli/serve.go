package cli

import (
	"github.com/spf13/cobra"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entrypoint"
)

func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(opts.loadConfig(), opts.Version)
		},
	}
}
