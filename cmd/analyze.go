package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"access-analyzer/core/config"
	"access-analyzer/core/logger"
	"access-analyzer/core/storage"
	"access-analyzer/feature/access"
	"access-analyzer/feature/access/models"
	"access-analyzer/feature/access/report"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the analyze command
	analyzeMemberships string
	analyzeMaster      string
	analyzeFromStorage bool
	analyzeJSON        bool
	analyzeReportPath  string
	analyzeArchive     bool
	analyzeUser        string
	analyzeTopN        int
)

// analyzeCmd runs a full analysis from the command line.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze access exports and report users with extra access",
	Long: `Reconciles the membership export against the master access export and
prints summary statistics, the users holding extra access and the group
mapping.

Inputs are local files by default; with --from-storage both values are
object keys in the configured bucket.

Examples:
  # Analyze two local export files
  access-analyzer analyze --memberships members.csv --master master.csv

  # Analyze exports from the storage drop zone
  access-analyzer analyze --from-storage --memberships incoming/members.csv --master incoming/master.csv

  # Print the full analysis as JSON
  access-analyzer analyze --memberships members.csv --master master.csv --json

  # Write the extra access report and archive a copy in the bucket
  access-analyzer analyze --memberships members.csv --master master.csv --report extra.csv --archive

  # Drill into a single user
  access-analyzer analyze --memberships members.csv --master master.csv --user alice`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMemberships, "memberships", "", "Membership export file (or object key with --from-storage)")
	analyzeCmd.Flags().StringVar(&analyzeMaster, "master", "", "Master access export file (or object key with --from-storage)")
	analyzeCmd.Flags().BoolVar(&analyzeFromStorage, "from-storage", false, "Read both exports from the storage bucket")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the full analysis as JSON")
	analyzeCmd.Flags().StringVar(&analyzeReportPath, "report", "", "Write the extra access report CSV to this file")
	analyzeCmd.Flags().BoolVar(&analyzeArchive, "archive", false, "Archive the extra access report in the bucket")
	analyzeCmd.Flags().StringVar(&analyzeUser, "user", "", "Show the drill-down for a single user instead of the full report")
	analyzeCmd.Flags().IntVar(&analyzeTopN, "top", 0, "Override how many most common groups and accesses to report")
	_ = analyzeCmd.MarkFlagRequired("memberships")
	_ = analyzeCmd.MarkFlagRequired("master")

	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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

	if analyzeTopN > 0 {
		cfg.Access.TopN = analyzeTopN
	}

	// Connect to storage (lazy, only dialed for --from-storage and --archive)
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	svc := access.NewService(client, cfg.Storage.Bucket, l, cfg.Access)

	// Single user drill-down replaces the full report output.
	if analyzeUser != "" {
		return printUserDetail(ctx, svc, analyzeUser)
	}

	analysis, err := runAnalysis(ctx, svc)
	if err != nil {
		return err
	}

	if analyzeJSON {
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode analysis: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printAnalysis(os.Stdout, analysis)
	}

	if analyzeReportPath != "" || analyzeArchive {
		data, err := svc.ExtraReportCSV(analysis.ExtraRecords)
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}

		if analyzeReportPath != "" {
			if err := os.WriteFile(analyzeReportPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			l.Info("Report written", zap.String("path", analyzeReportPath))
		}
		if analyzeArchive {
			if _, err := svc.ArchiveReport(ctx, report.ExtraReportName, data); err != nil {
				return fmt.Errorf("failed to archive report: %w", err)
			}
		}
	}

	return nil
}

// runAnalysis runs the analysis over the flagged inputs.
func runAnalysis(ctx context.Context, svc *access.Service) (*models.Analysis, error) {
	if analyzeFromStorage {
		return svc.AnalyzeObjects(ctx, analyzeMemberships, analyzeMaster)
	}

	membershipFile, masterFile, err := openExports(analyzeMemberships, analyzeMaster)
	if err != nil {
		return nil, err
	}
	defer membershipFile.Close()
	defer masterFile.Close()

	return svc.Analyze(membershipFile, masterFile)
}

// openExports opens both local export files.
func openExports(membershipsPath, masterPath string) (*os.File, *os.File, error) {
	membershipFile, err := os.Open(membershipsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open membership export: %w", err)
	}
	masterFile, err := os.Open(masterPath)
	if err != nil {
		membershipFile.Close()
		return nil, nil, fmt.Errorf("failed to open master export: %w", err)
	}
	return membershipFile, masterFile, nil
}

func printUserDetail(ctx context.Context, svc *access.Service, user string) error {
	var (
		detail *models.UserDetail
		found  bool
		err    error
	)

	if analyzeFromStorage {
		detail, found, err = svc.UserDetailObjects(ctx, analyzeMemberships, analyzeMaster, user)
	} else {
		membershipFile, masterFile, openErr := openExports(analyzeMemberships, analyzeMaster)
		if openErr != nil {
			return openErr
		}
		defer membershipFile.Close()
		defer masterFile.Close()
		detail, found, err = svc.UserDetail(membershipFile, masterFile, user)
	}
	if err != nil {
		return fmt.Errorf("failed to analyze user: %w", err)
	}
	if !found {
		return fmt.Errorf("user %s appears in neither export", user)
	}

	printPairs(os.Stdout, [][2]string{
		{"User", detail.User},
		{"Groups", strings.Join(detail.Groups, ", ")},
		{"Actual accesses", strings.Join(detail.ActualAccesses, ", ")},
		{"Expected accesses", strings.Join(detail.ExpectedAccesses, ", ")},
		{"Extra accesses", strings.Join(detail.ExtraAccesses, ", ")},
	})
	return nil
}

// printAnalysis renders the analysis as tables for terminal use.
func printAnalysis(w io.Writer, analysis *models.Analysis) {
	stats := analysis.Stats

	fmt.Fprintln(w, "Summary")
	printPairs(w, [][2]string{
		{"Users", strconv.Itoa(stats.TotalUsers)},
		{"Groups", strconv.Itoa(stats.TotalGroups)},
		{"Users with extra access", strconv.Itoa(stats.UsersWithExtra)},
		{"Unique accesses", strconv.Itoa(stats.TotalUniqueAccesses)},
		{"Public accesses", strconv.Itoa(stats.PublicAccessCount)},
		{"Avg groups per user", fmt.Sprintf("%.2f", stats.AvgGroupsPerUser)},
		{"Avg accesses per user", fmt.Sprintf("%.2f", stats.AvgAccessesPerUser)},
		{"Avg accesses per group", fmt.Sprintf("%.2f", stats.AvgAccessesPerGroup)},
	})

	if len(stats.MostCommonGroups) > 0 {
		fmt.Fprintln(w, "\nMost common groups")
		rows := make([][]string, 0, len(stats.MostCommonGroups))
		for _, f := range stats.MostCommonGroups {
			rows = append(rows, []string{f.Name, strconv.Itoa(f.Count)})
		}
		printTable(w, []string{"Group", "Users"}, rows)
	}

	if len(stats.MostCommonAccesses) > 0 {
		fmt.Fprintln(w, "\nMost common accesses")
		rows := make([][]string, 0, len(stats.MostCommonAccesses))
		for _, f := range stats.MostCommonAccesses {
			rows = append(rows, []string{f.Name, strconv.Itoa(f.Count)})
		}
		printTable(w, []string{"Access", "Users"}, rows)
	}

	if len(analysis.GroupRecords) > 0 {
		fmt.Fprintln(w, "\nGroups")
		rows := make([][]string, 0, len(analysis.GroupRecords))
		for _, record := range analysis.GroupRecords {
			rows = append(rows, []string{
				record.Group,
				strconv.Itoa(record.MemberCount),
				strconv.Itoa(record.AccessCount),
				strings.Join(record.Accesses, ", "),
			})
		}
		printTable(w, []string{"Group", "Members", "Access Count", "Accesses"}, rows)
	}

	if len(analysis.PublicAccesses) > 0 {
		fmt.Fprintf(w, "\nPublic accesses: %s\n", strings.Join(analysis.PublicAccesses, ", "))
	}

	if len(analysis.ExtraRecords) == 0 {
		fmt.Fprintln(w, "\nNo users with extra access found.")
		return
	}

	fmt.Fprintln(w, "\nUsers with extra access")
	rows := make([][]string, 0, len(analysis.ExtraRecords))
	for _, record := range analysis.ExtraRecords {
		rows = append(rows, []string{
			record.User,
			strings.Join(record.ExtraAccesses, ", "),
			strconv.Itoa(record.ExtraAccessCount),
			strings.Join(record.Groups, ", "),
			strconv.Itoa(record.TotalAccessCount),
		})
	}
	printTable(w, []string{"User", "Extra Accesses", "Count", "Groups", "Total"}, rows)
}
