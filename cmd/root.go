package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"vmexport/internal/api"
	"vmexport/internal/archive"
	"vmexport/internal/config"
	"vmexport/internal/service"
	"vmexport/internal/sink"
)

var rootCmd = &cobra.Command{
	Use:   "vmexport",
	Short: "Export election-monitoring survey data to spreadsheets",
	Long: `vmexport pulls form submissions and quick reports for one election
round from the monitoring API and writes them to a local workbook and,
when configured, a shared Google spreadsheet.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initEnv)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(quickReportsCmd)
}

func initEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it: %v", err)
	}
}

// buildService logs in, opens the optional archive, and wires the sinks for
// one run. The returned cleanup closes whatever was opened.
func buildService(ctx context.Context, cfg *config.Config, basename, spreadsheetID string) (*service.ExportService, func(), error) {
	runID := uuid.NewString()
	log.Printf("run id %s", runID)

	client := api.NewClient(cfg.BaseAPIURL, cfg.ElectionID)
	if err := client.Login(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	cleanup := func() {}
	var arch *archive.Store
	if cfg.MongoURI != "" {
		var err error
		arch, err = archive.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect archive: %w", err)
		}
		cleanup = func() {
			if err := arch.Close(context.Background()); err != nil {
				log.Println("Warning: error closing archive:", err)
			}
		}
		log.Println("[archive] raw snapshot archiving enabled")
	}

	sinks := []sink.Sink{
		&sink.ExcelSink{Root: cfg.ExportRoot, Basename: basename},
	}
	if spreadsheetID != "" {
		gs, err := sink.NewSheetsSink(ctx, cfg.GoogleCredentialsPath, spreadsheetID, runID)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		sinks = append(sinks, gs)
	}

	return service.NewExportService(cfg, client, arch, sinks, runID), cleanup, nil
}
