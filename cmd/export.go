package cmd

import (
	"context"
	"fmt"
	"os"

	"access-analyzer/core/config"
	"access-analyzer/core/logger"
	"access-analyzer/core/storage"
	"access-analyzer/feature/access"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the export command
	exportMemberships string
	exportMaster      string
	exportFromStorage bool
	exportAccesses    []string
	exportOutput      string
)

// exportCmd renders the filtered access export from the command line.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export users holding selected accesses as CSV",
	Long: `Lists every user whose accesses include at least one of the selected
accesses, with their groups and accesses, as CSV.

Examples:
  # Users holding either access, to stdout
  access-analyzer export --memberships members.csv --master master.csv --access PAYROLL --access LEDGER

  # Comma separated selection, written to a file
  access-analyzer export --memberships members.csv --master master.csv --access PAYROLL,LEDGER --output filtered.csv

  # Exports read from the storage drop zone
  access-analyzer export --from-storage --memberships incoming/members.csv --master incoming/master.csv --access PAYROLL`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportMemberships, "memberships", "", "Membership export file (or object key with --from-storage)")
	exportCmd.Flags().StringVar(&exportMaster, "master", "", "Master access export file (or object key with --from-storage)")
	exportCmd.Flags().BoolVar(&exportFromStorage, "from-storage", false, "Read both exports from the storage bucket")
	exportCmd.Flags().StringSliceVar(&exportAccesses, "access", nil, "Access to filter on (repeatable, comma lists allowed)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Write the CSV to this file instead of stdout")
	_ = exportCmd.MarkFlagRequired("memberships")
	_ = exportCmd.MarkFlagRequired("master")
	_ = exportCmd.MarkFlagRequired("access")

	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	svc := access.NewService(client, cfg.Storage.Bucket, l, cfg.Access)

	var data []byte
	if exportFromStorage {
		data, err = svc.FilteredExportObjects(ctx, exportMemberships, exportMaster, exportAccesses)
	} else {
		membershipFile, masterFile, openErr := openExports(exportMemberships, exportMaster)
		if openErr != nil {
			return openErr
		}
		defer membershipFile.Close()
		defer masterFile.Close()
		data, err = svc.FilteredExportCSV(membershipFile, masterFile, exportAccesses)
	}
	if err != nil {
		return fmt.Errorf("failed to build export: %w", err)
	}

	if exportOutput == "" {
		fmt.Print(string(data))
		return nil
	}

	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	l.Info("Export written", zap.String("path", exportOutput), zap.Strings("accesses", exportAccesses))
	return nil
}
