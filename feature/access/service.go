package access

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"access-analyzer/core/storage"
	"access-analyzer/core/tabular"
	"access-analyzer/core/utils"
	"access-analyzer/feature/access/models"
	"access-analyzer/feature/access/reconcile"
	"access-analyzer/feature/access/report"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service runs access analyses. Every call carries its own inputs; nothing
// is retained between runs.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	config Config
}

// NewService creates a new access analyzer service.
func NewService(client storage.Client, bucket string, logger *zap.Logger, config Config) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		config: config,
	}
}

// Analyze loads both exports and produces the full analysis: summary stats,
// extra access records, group records, public accesses and distributions.
func (s *Service) Analyze(memberships, master io.Reader) (*models.Analysis, error) {
	started := time.Now()

	userGroups, grants, err := s.resolve(memberships, master)
	if err != nil {
		return nil, err
	}

	extra := reconcile.FindExtra(userGroups, grants)
	stats := reconcile.Summarize(userGroups, grants, extra, s.config.TopN)
	groupsPerUser, accessesPerUser := reconcile.Distributions(userGroups, grants)

	analysis := &models.Analysis{
		Stats:           *stats,
		ExtraRecords:    report.ExtraRecords(userGroups, grants, extra),
		GroupRecords:    report.GroupRecords(userGroups, grants),
		PublicAccesses:  utils.SortedSet(grants.Public),
		GroupsPerUser:   groupsPerUser,
		AccessesPerUser: accessesPerUser,
		GeneratedAt:     started.UTC().Format(time.RFC3339),
		ExecutionTime:   time.Since(started).String(),
	}

	s.logger.Info("Analysis complete",
		zap.Int("users", stats.TotalUsers),
		zap.Int("groups", stats.TotalGroups),
		zap.Int("users_with_extra", stats.UsersWithExtra),
		zap.Duration("took", time.Since(started)))

	return analysis, nil
}

// AnalyzeObjects fetches both exports from the storage bucket and analyzes
// them. The two objects are fetched concurrently.
func (s *Service) AnalyzeObjects(ctx context.Context, membershipsKey, masterKey string) (*models.Analysis, error) {
	membershipData, masterData, err := s.fetchInputs(ctx, membershipsKey, masterKey)
	if err != nil {
		return nil, err
	}
	return s.Analyze(bytes.NewReader(membershipData), bytes.NewReader(masterData))
}

// ExtraReportCSV renders extra access records as the downloadable CSV report.
func (s *Service) ExtraReportCSV(records []models.ExtraRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := report.ExtraTable(records).Write(&buf); err != nil {
		return nil, fmt.Errorf("render extra access report: %w", err)
	}
	return buf.Bytes(), nil
}

// FilteredExportCSV loads both exports and renders the filtered access
// export for the selected accesses.
func (s *Service) FilteredExportCSV(memberships, master io.Reader, selected []string) ([]byte, error) {
	userGroups, grants, err := s.resolve(memberships, master)
	if err != nil {
		return nil, err
	}

	table, err := report.FilteredExport(userGroups, grants, selected)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := table.Write(&buf); err != nil {
		return nil, fmt.Errorf("render filtered export: %w", err)
	}
	return buf.Bytes(), nil
}

// FilteredExportObjects is FilteredExportCSV over bucket objects.
func (s *Service) FilteredExportObjects(ctx context.Context, membershipsKey, masterKey string, selected []string) ([]byte, error) {
	membershipData, masterData, err := s.fetchInputs(ctx, membershipsKey, masterKey)
	if err != nil {
		return nil, err
	}
	return s.FilteredExportCSV(bytes.NewReader(membershipData), bytes.NewReader(masterData), selected)
}

// UserDetailObjects is UserDetail over bucket objects.
func (s *Service) UserDetailObjects(ctx context.Context, membershipsKey, masterKey, user string) (*models.UserDetail, bool, error) {
	membershipData, masterData, err := s.fetchInputs(ctx, membershipsKey, masterKey)
	if err != nil {
		return nil, false, err
	}
	return s.UserDetail(bytes.NewReader(membershipData), bytes.NewReader(masterData), user)
}

// UserDetail loads both exports and reconciles a single user. The second
// return reports whether the user appears in either export at all.
func (s *Service) UserDetail(memberships, master io.Reader, user string) (*models.UserDetail, bool, error) {
	userGroups, grants, err := s.resolve(memberships, master)
	if err != nil {
		return nil, false, err
	}
	if !reconcile.Known(user, userGroups, grants) {
		return nil, false, nil
	}

	extra := reconcile.FindExtra(userGroups, grants)
	return reconcile.UserDetail(user, userGroups, grants, extra), true, nil
}

// ArchiveReport stores a generated report in the bucket under the reports
// prefix with a timestamped key, and returns that key.
func (s *Service) ArchiveReport(ctx context.Context, name string, data []byte) (string, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return "", fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("bucket %s not found", s.bucket)
	}

	key := s.config.ReportsPrefix + time.Now().UTC().Format("20060102-150405") + "_" + name
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("archive report %s: %w", key, err)
	}

	s.logger.Info("Report archived", zap.String("key", key), zap.Int("bytes", len(data)))
	return key, nil
}

// ListInputs lists the export files waiting in the incoming drop zone,
// sorted by key. Folder markers are skipped.
func (s *Service) ListInputs(ctx context.Context) ([]models.InputObject, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    s.config.IncomingPrefix,
		Recursive: true,
	}

	inputs := make([]models.InputObject, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list incoming objects: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		inputs = append(inputs, models.InputObject{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Key < inputs[j].Key })
	return inputs, nil
}

// resolve loads and resolves both exports. Errors are tagged with which
// export failed so callers can surface that to the user.
func (s *Service) resolve(memberships, master io.Reader) (map[string]map[string]struct{}, *reconcile.Grants, error) {
	membershipTable, err := tabular.Load(memberships)
	if err != nil {
		return nil, nil, fmt.Errorf("membership export: %w", err)
	}
	masterTable, err := tabular.Load(master)
	if err != nil {
		return nil, nil, fmt.Errorf("master export: %w", err)
	}

	userGroups, err := reconcile.ResolveMemberships(membershipTable, s.config.MembershipColumns())
	if err != nil {
		return nil, nil, fmt.Errorf("membership export: %w", err)
	}
	grants, err := reconcile.ResolveGrants(masterTable, s.config.GrantColumns(), s.config.Ruleset())
	if err != nil {
		return nil, nil, fmt.Errorf("master export: %w", err)
	}

	return userGroups, grants, nil
}

// fetchInputs downloads both exports from the bucket concurrently.
func (s *Service) fetchInputs(ctx context.Context, membershipsKey, masterKey string) ([]byte, []byte, error) {
	var membershipData, masterData []byte

	g, ctxGroup := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		membershipData, err = s.fetchObject(ctxGroup, membershipsKey)
		return err
	})
	g.Go(func() error {
		var err error
		masterData, err = s.fetchObject(ctxGroup, masterKey)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return membershipData, masterData, nil
}

// fetchObject reads one object fully into memory. Minio surfaces missing
// objects on first read, so read failures are fetch failures too.
func (s *Service) fetchObject(ctx context.Context, key string) ([]byte, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, &FetchError{Key: key, Err: err}
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &FetchError{Key: key, Err: err}
	}
	return data, nil
}
