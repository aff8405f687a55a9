package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"access-analyzer/core/config"
	"access-analyzer/core/logger"
	"access-analyzer/core/storage"
	"access-analyzer/feature/access"

	"github.com/spf13/cobra"
)

// inputsCmd lists the drop zone contents.
var inputsCmd = &cobra.Command{
	Use:   "inputs",
	Short: "List export files in the storage drop zone",
	Long: `Lists the export files currently under the incoming prefix of the
configured bucket. These keys can be fed to analyze and export via
--from-storage.`,
	RunE: runInputs,
}

func init() {
	RootCmd.AddCommand(inputsCmd)
}

func runInputs(cmd *cobra.Command, args []string) error {
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

	inputs, err := svc.ListInputs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list inputs: %w", err)
	}

	if len(inputs) == 0 {
		fmt.Printf("No export files under %s in bucket %s.\n", cfg.Access.IncomingPrefix, cfg.Storage.Bucket)
		return nil
	}

	rows := make([][]string, 0, len(inputs))
	for _, input := range inputs {
		rows = append(rows, []string{
			input.Key,
			strconv.FormatInt(input.Size, 10),
			input.LastModified.Format(time.RFC3339),
		})
	}
	printTable(os.Stdout, []string{"Key", "Bytes", "Last Modified"}, rows)
	return nil
}
