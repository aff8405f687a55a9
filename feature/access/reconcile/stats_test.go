package reconcile

import (
	"testing"

	"access-analyzer/feature/access/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsFixture() (map[string]map[string]struct{}, *Grants, map[string]map[string]struct{}) {
	memberships := BuildMemberships([]models.MembershipRow{
		{User: "alice", MainGroup: "GRADMIN", AddlGroups: "GRDEV"},
		{User: "bob", MainGroup: "GRDEV"},
		{User: "carol", MainGroup: "", AddlGroups: ""},
	})
	grants := BuildGrants([]models.GrantRow{
		{Subject: "alice", Access: "PAYROLL"},
		{Subject: "alice", Access: "LEDGER"},
		{Subject: "bob", Access: "LEDGER"},
		{Subject: "GRADMIN", Access: "PAYROLL"},
		{Subject: "GRDEV", Access: "REPO"},
		{Subject: "*PUBLIC", Access: "LOBBY"},
	}, testRules)
	extra := FindExtra(memberships, grants)
	return memberships, grants, extra
}

func TestSummarize(t *testing.T) {
	memberships, grants, extra := statsFixture()

	stats := Summarize(memberships, grants, extra, 5)

	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 2, stats.TotalGroups)
	// alice holds LEDGER beyond GRADMIN/GRDEV/public; bob holds LEDGER beyond
	// GRDEV/public.
	assert.Equal(t, 2, stats.UsersWithExtra)
	assert.Equal(t, 2, stats.TotalUniqueAccesses, "PAYROLL and LEDGER appear in direct grants")
	assert.Equal(t, 1, stats.PublicAccessCount)

	assert.InDelta(t, 1.0, stats.AvgGroupsPerUser, 1e-9, "(2+1+0)/3")
	assert.InDelta(t, 1.5, stats.AvgAccessesPerUser, 1e-9, "(2+1)/2 over users with grant rows")
	assert.InDelta(t, 1.0, stats.AvgAccessesPerGroup, 1e-9)

	require.Len(t, stats.MostCommonGroups, 2)
	assert.Equal(t, models.Frequency{Name: "GRDEV", Count: 2}, stats.MostCommonGroups[0])
	assert.Equal(t, models.Frequency{Name: "GRADMIN", Count: 1}, stats.MostCommonGroups[1])

	require.Len(t, stats.MostCommonAccesses, 2)
	assert.Equal(t, models.Frequency{Name: "LEDGER", Count: 2}, stats.MostCommonAccesses[0])
	assert.Equal(t, models.Frequency{Name: "PAYROLL", Count: 1}, stats.MostCommonAccesses[1])
}

func TestSummarize_TopN(t *testing.T) {
	memberships, grants, extra := statsFixture()

	t.Run("TruncatesToN", func(t *testing.T) {
		stats := Summarize(memberships, grants, extra, 1)
		assert.Len(t, stats.MostCommonGroups, 1)
		assert.Len(t, stats.MostCommonAccesses, 1)
	})

	t.Run("ZeroYieldsNone", func(t *testing.T) {
		stats := Summarize(memberships, grants, extra, 0)
		assert.Empty(t, stats.MostCommonGroups)
	})

	t.Run("NegativeTreatedAsZero", func(t *testing.T) {
		stats := Summarize(memberships, grants, extra, -3)
		assert.Empty(t, stats.MostCommonGroups)
	})
}

func TestSummarize_EmptyInputs(t *testing.T) {
	grants := BuildGrants(nil, testRules)

	stats := Summarize(nil, grants, nil, 5)

	assert.Zero(t, stats.TotalUsers)
	assert.Zero(t, stats.TotalGroups)
	assert.Zero(t, stats.UsersWithExtra)
	assert.Zero(t, stats.TotalUniqueAccesses)
	assert.Zero(t, stats.PublicAccessCount)
	assert.Zero(t, stats.AvgGroupsPerUser, "no users must not divide by zero")
	assert.Zero(t, stats.AvgAccessesPerUser)
	assert.Zero(t, stats.AvgAccessesPerGroup)
	assert.Empty(t, stats.MostCommonGroups)
	assert.Empty(t, stats.MostCommonAccesses)
}

func TestDistributions(t *testing.T) {
	memberships, grants, _ := statsFixture()

	groupsPerUser, accessesPerUser := Distributions(memberships, grants)

	// alice has 2 groups, bob 1, carol 0.
	assert.Equal(t, models.Distribution{2: 1, 1: 1, 0: 1}, groupsPerUser)
	// alice holds 2 direct accesses, bob 1.
	assert.Equal(t, models.Distribution{2: 1, 1: 1}, accessesPerUser)
}
