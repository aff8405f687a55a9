package reconcile

import (
	"errors"
	"strings"
	"testing"

	"access-analyzer/core/tabular"
	"access-analyzer/feature/access/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testGrantColumns = GrantColumns{Subject: "JNUSER", Access: "VHFROM"}
	testRules        = Ruleset{GroupPrefix: "GR", PublicMarker: "*PUBLIC"}
)

func TestBuildGrants(t *testing.T) {
	t.Run("ExclusiveRouting", func(t *testing.T) {
		rows := []models.GrantRow{
			{Subject: "alice", Access: "PAYROLL"},
			{Subject: "GRADMIN", Access: "LEDGER"},
			{Subject: "*PUBLIC", Access: "LOBBY"},
		}

		grants := BuildGrants(rows, testRules)

		assert.Equal(t, map[string]struct{}{"PAYROLL": {}}, grants.Users["alice"])
		assert.Equal(t, map[string]struct{}{"LEDGER": {}}, grants.Groups["GRADMIN"])
		assert.Equal(t, map[string]struct{}{"LOBBY": {}}, grants.Public)

		// Each row lands in exactly one index.
		assert.NotContains(t, grants.Users, "GRADMIN")
		assert.NotContains(t, grants.Users, "*PUBLIC")
		assert.NotContains(t, grants.Groups, "alice")
	})

	t.Run("MultipleGrantsPerSubject", func(t *testing.T) {
		rows := []models.GrantRow{
			{Subject: "alice", Access: "PAYROLL"},
			{Subject: "alice", Access: "LEDGER"},
			{Subject: "alice", Access: "PAYROLL"},
		}

		grants := BuildGrants(rows, testRules)
		assert.Equal(t, map[string]struct{}{"PAYROLL": {}, "LEDGER": {}}, grants.Users["alice"])
	})

	t.Run("EmptyAccessKeepsSubjectEntry", func(t *testing.T) {
		rows := []models.GrantRow{
			{Subject: "alice", Access: ""},
			{Subject: "GRADMIN", Access: ""},
		}

		grants := BuildGrants(rows, testRules)
		require.Contains(t, grants.Users, "alice")
		assert.Empty(t, grants.Users["alice"])
		require.Contains(t, grants.Groups, "GRADMIN")
		assert.Empty(t, grants.Groups["GRADMIN"])
	})

	t.Run("EmptyPublicAccessContributesNothing", func(t *testing.T) {
		rows := []models.GrantRow{
			{Subject: "*PUBLIC", Access: ""},
		}

		grants := BuildGrants(rows, testRules)
		assert.Empty(t, grants.Public)
	})

	t.Run("EmptySubjectSkipped", func(t *testing.T) {
		rows := []models.GrantRow{
			{Subject: "", Access: "PAYROLL"},
		}

		grants := BuildGrants(rows, testRules)
		assert.Empty(t, grants.Users)
		assert.Empty(t, grants.Groups)
		assert.Empty(t, grants.Public)
	})
}

func TestResolveGrants(t *testing.T) {
	t.Run("FromTable", func(t *testing.T) {
		input := "JNUSER,VHFROM\n" +
			"alice,PAYROLL\n" +
			"GRADMIN,LEDGER\n" +
			"*PUBLIC,LOBBY\n"
		table, err := tabular.Load(strings.NewReader(input))
		require.NoError(t, err)

		grants, err := ResolveGrants(table, testGrantColumns, testRules)
		require.NoError(t, err)
		assert.Equal(t, map[string]struct{}{"PAYROLL": {}}, grants.Users["alice"])
		assert.Equal(t, map[string]struct{}{"LEDGER": {}}, grants.Groups["GRADMIN"])
		assert.Equal(t, map[string]struct{}{"LOBBY": {}}, grants.Public)
	})

	t.Run("MissingColumns", func(t *testing.T) {
		table, err := tabular.Load(strings.NewReader("SOMETHING\nvalue\n"))
		require.NoError(t, err)

		_, err = ResolveGrants(table, testGrantColumns, testRules)
		require.Error(t, err)

		var formatErr *tabular.FormatError
		require.True(t, errors.As(err, &formatErr))
		assert.Equal(t, []string{"JNUSER", "VHFROM"}, formatErr.Columns)
	})
}
