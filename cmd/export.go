package cmd

import (
	"github.com/spf13/cobra"

	"vmexport/internal/config"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export form submissions for the configured election round",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		svc, cleanup, err := buildService(cmd.Context(), cfg, "form_submissions", cfg.GoogleSheetID)
		if err != nil {
			return err
		}
		defer cleanup()
		return svc.ExportSubmissions(cmd.Context())
	},
}
