package cmd

import (
	"github.com/spf13/cobra"

	"vmexport/internal/config"
)

var quickReportsCmd = &cobra.Command{
	Use:   "quick-reports",
	Short: "Export quick reports for the configured election round",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		svc, cleanup, err := buildService(cmd.Context(), cfg, "quick_reports", cfg.QuickReportsSheetID)
		if err != nil {
			return err
		}
		defer cleanup()
		return svc.ExportQuickReports(cmd.Context())
	},
}
