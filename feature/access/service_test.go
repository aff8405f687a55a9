package access_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"access-analyzer/core/storage"
	"access-analyzer/core/storage/mocks"
	"access-analyzer/core/tabular"
	"access-analyzer/feature/access"
	"access-analyzer/feature/access/models"
	"access-analyzer/feature/access/report"
)

const testBucket = "access-exports"

// The membership export is tab separated, the master export comma separated.
// Both shapes occur in the wild and the loader sniffs them per file.
const (
	membershipCSV = "USER_NAME\tMAIN_GROUP\tADDL_GROUP\n" +
		"alice\tGRADMIN\tGRDEV\n" +
		"bob\tGRDEV\t\n" +
		"carol\t\t\n"

	masterCSV = "JNUSER,VHFROM\n" +
		"GRADMIN,PAYROLL\n" +
		"GRDEV,REPO\n" +
		"*PUBLIC,LOBBY\n" +
		"alice,PAYROLL\n" +
		"alice,LEDGER\n" +
		"alice,REPO\n" +
		"bob,LEDGER\n" +
		"carol,LOBBY\n"
)

func testConfig() access.Config {
	return access.Config{
		UserColumn:      "USER_NAME",
		MainGroupColumn: "MAIN_GROUP",
		AddlGroupColumn: "ADDL_GROUP",
		SubjectColumn:   "JNUSER",
		AccessColumn:    "VHFROM",
		GroupPrefix:     "GR",
		PublicMarker:    "*PUBLIC",
		TopN:            5,
		IncomingPrefix:  "incoming/",
		ReportsPrefix:   "reports/",
	}
}

func newTestService(client storage.Client) *access.Service {
	return access.NewService(client, testBucket, zap.NewNop(), testConfig())
}

func TestService_Analyze(t *testing.T) {
	svc := newTestService(new(mocks.Client))

	analysis, err := svc.Analyze(strings.NewReader(membershipCSV), strings.NewReader(masterCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, analysis.Stats.TotalUsers)
	assert.Equal(t, 2, analysis.Stats.TotalGroups)
	assert.Equal(t, 2, analysis.Stats.UsersWithExtra)
	assert.Equal(t, 4, analysis.Stats.TotalUniqueAccesses)
	assert.Equal(t, 1, analysis.Stats.PublicAccessCount)

	require.Len(t, analysis.ExtraRecords, 2)
	assert.Equal(t, "alice", analysis.ExtraRecords[0].User)
	assert.Equal(t, []string{"LEDGER"}, analysis.ExtraRecords[0].ExtraAccesses)
	assert.Equal(t, "bob", analysis.ExtraRecords[1].User)

	require.Len(t, analysis.GroupRecords, 2)
	assert.Equal(t, "GRDEV", analysis.GroupRecords[0].Group)
	assert.Equal(t, 2, analysis.GroupRecords[0].MemberCount)
	assert.Equal(t, "GRADMIN", analysis.GroupRecords[1].Group)

	assert.Equal(t, []string{"LOBBY"}, analysis.PublicAccesses)
	assert.Equal(t, models.Distribution{2: 1, 1: 1, 0: 1}, analysis.GroupsPerUser)
	assert.Equal(t, models.Distribution{3: 1, 1: 2}, analysis.AccessesPerUser)
	assert.NotEmpty(t, analysis.GeneratedAt)
	assert.NotEmpty(t, analysis.ExecutionTime)
}

func TestService_Analyze_BadInputs(t *testing.T) {
	svc := newTestService(new(mocks.Client))

	t.Run("MembershipMissingColumns", func(t *testing.T) {
		bad := "USER_NAME\nalice\n"
		_, err := svc.Analyze(strings.NewReader(bad), strings.NewReader(masterCSV))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "membership export")

		var formatErr *tabular.FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, []string{"MAIN_GROUP", "ADDL_GROUP"}, formatErr.Columns)
	})

	t.Run("MasterUndecodable", func(t *testing.T) {
		_, err := svc.Analyze(strings.NewReader(membershipCSV), strings.NewReader("\xff\xfe\x00"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "master export")

		var parseErr *tabular.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}

func TestService_AnalyzeObjects(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("GetObject", mock.Anything, testBucket, "incoming/members.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader(membershipCSV)), nil)
	mockClient.On("GetObject", mock.Anything, testBucket, "incoming/master.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader(masterCSV)), nil)

	svc := newTestService(mockClient)
	analysis, err := svc.AnalyzeObjects(context.Background(), "incoming/members.csv", "incoming/master.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, analysis.Stats.TotalUsers)
	assert.Equal(t, 2, analysis.Stats.UsersWithExtra)
	mockClient.AssertExpectations(t)
}

func TestService_AnalyzeObjects_FetchFailure(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("GetObject", mock.Anything, testBucket, "incoming/members.csv", mock.Anything).
		Return(nil, errors.New("connection refused"))
	mockClient.On("GetObject", mock.Anything, testBucket, "incoming/master.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader(masterCSV)), nil).Maybe()

	svc := newTestService(mockClient)
	_, err := svc.AnalyzeObjects(context.Background(), "incoming/members.csv", "incoming/master.csv")
	require.Error(t, err)

	var fetchErr *access.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "incoming/members.csv", fetchErr.Key)
}

func TestService_ExtraReportCSV(t *testing.T) {
	svc := newTestService(new(mocks.Client))

	analysis, err := svc.Analyze(strings.NewReader(membershipCSV), strings.NewReader(masterCSV))
	require.NoError(t, err)

	data, err := svc.ExtraReportCSV(analysis.ExtraRecords)
	require.NoError(t, err)

	loaded, err := tabular.Load(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, "alice", loaded.Field(0, "User"))
	assert.Equal(t, "LEDGER", loaded.Field(0, "Extra Accesses"))
	assert.Equal(t, "bob", loaded.Field(1, "User"))
}

func TestService_FilteredExportCSV(t *testing.T) {
	svc := newTestService(new(mocks.Client))

	t.Run("Selection", func(t *testing.T) {
		data, err := svc.FilteredExportCSV(strings.NewReader(membershipCSV), strings.NewReader(masterCSV), []string{"LEDGER"})
		require.NoError(t, err)

		loaded, err := tabular.Load(strings.NewReader(string(data)))
		require.NoError(t, err)
		require.Equal(t, 2, loaded.Len())
		assert.Equal(t, "alice", loaded.Field(0, "User"))
		assert.Equal(t, "GRADMIN, GRDEV", loaded.Field(0, "Groups"))
		assert.Equal(t, "bob", loaded.Field(1, "User"))
	})

	t.Run("EmptySelection", func(t *testing.T) {
		_, err := svc.FilteredExportCSV(strings.NewReader(membershipCSV), strings.NewReader(masterCSV), nil)
		var selErr *report.EmptySelectionError
		require.ErrorAs(t, err, &selErr)
	})
}

func TestService_UserDetail(t *testing.T) {
	svc := newTestService(new(mocks.Client))

	t.Run("KnownUser", func(t *testing.T) {
		detail, found, err := svc.UserDetail(strings.NewReader(membershipCSV), strings.NewReader(masterCSV), "alice")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []string{"GRADMIN", "GRDEV"}, detail.Groups)
		assert.Equal(t, []string{"LEDGER", "PAYROLL", "REPO"}, detail.ActualAccesses)
		assert.Equal(t, []string{"LOBBY", "PAYROLL", "REPO"}, detail.ExpectedAccesses)
		assert.Equal(t, []string{"LEDGER"}, detail.ExtraAccesses)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		detail, found, err := svc.UserDetail(strings.NewReader(membershipCSV), strings.NewReader(masterCSV), "stranger")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, detail)
	})
}

func TestService_ArchiveReport(t *testing.T) {
	t.Run("Stored", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
		mockClient.On("PutObject", mock.Anything, testBucket, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "reports/") && strings.HasSuffix(key, "_extra_access_report.csv")
		}), mock.Anything, int64(len("csv-bytes")), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		svc := newTestService(mockClient)
		key, err := svc.ArchiveReport(context.Background(), report.ExtraReportName, []byte("csv-bytes"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, "reports/"))
		assert.True(t, strings.HasSuffix(key, "_"+report.ExtraReportName))
		mockClient.AssertExpectations(t)
	})

	t.Run("BucketMissing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, testBucket).Return(false, nil)

		svc := newTestService(mockClient)
		_, err := svc.ArchiveReport(context.Background(), report.ExtraReportName, []byte("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestService_ListInputs(t *testing.T) {
	t.Run("SortedListing", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 3)
		ch <- minio.ObjectInfo{Key: "incoming/"}
		ch <- minio.ObjectInfo{Key: "incoming/master.csv", Size: 420}
		ch <- minio.ObjectInfo{Key: "incoming/members.csv", Size: 77}
		close(ch)

		mockClient := new(mocks.Client)
		mockClient.On("ListObjects", mock.Anything, testBucket, mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "incoming/" && opts.Recursive
		})).Return((<-chan minio.ObjectInfo)(ch))

		svc := newTestService(mockClient)
		inputs, err := svc.ListInputs(context.Background())
		require.NoError(t, err)

		require.Len(t, inputs, 2)
		assert.Equal(t, "incoming/master.csv", inputs[0].Key)
		assert.Equal(t, int64(420), inputs[0].Size)
		assert.Equal(t, "incoming/members.csv", inputs[1].Key)
	})

	t.Run("ListingError", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("listing failed")}
		close(ch)

		mockClient := new(mocks.Client)
		mockClient.On("ListObjects", mock.Anything, testBucket, mock.Anything).
			Return((<-chan minio.ObjectInfo)(ch))

		svc := newTestService(mockClient)
		_, err := svc.ListInputs(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing failed")
	})
}
