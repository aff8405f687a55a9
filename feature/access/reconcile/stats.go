package reconcile

import (
	"sort"

	"access-analyzer/feature/access/models"
)

// Summarize condenses one run into the reported statistics. topN controls
// how many most-common groups and accesses are listed; negative values are
// treated as zero.
func Summarize(memberships map[string]map[string]struct{}, grants *Grants, extra map[string]map[string]struct{}, topN int) *models.Stats {
	stats := &models.Stats{
		TotalUsers:        len(memberships),
		TotalGroups:       len(grants.Groups),
		UsersWithExtra:    len(extra),
		PublicAccessCount: len(grants.Public),
	}

	// Distinct accesses across direct user grants only; group and public
	// grants are counted through their own metrics.
	unique := make(map[string]struct{})
	for _, accesses := range grants.Users {
		for a := range accesses {
			unique[a] = struct{}{}
		}
	}
	stats.TotalUniqueAccesses = len(unique)

	stats.AvgGroupsPerUser = averageSetSize(memberships)
	stats.AvgAccessesPerUser = averageSetSize(grants.Users)
	stats.AvgAccessesPerGroup = averageSetSize(grants.Groups)

	// Group popularity counts membership table assignments, not master rows.
	groupCounts := make(map[string]int)
	for _, groups := range memberships {
		for g := range groups {
			groupCounts[g]++
		}
	}
	accessCounts := make(map[string]int)
	for _, accesses := range grants.Users {
		for a := range accesses {
			accessCounts[a]++
		}
	}
	stats.MostCommonGroups = topFrequencies(groupCounts, topN)
	stats.MostCommonAccesses = topFrequencies(accessCounts, topN)

	return stats
}

// Distributions buckets users by how many groups they belong to and by how
// many direct accesses they hold.
func Distributions(memberships map[string]map[string]struct{}, grants *Grants) (groupsPerUser, accessesPerUser models.Distribution) {
	groupsPerUser = make(models.Distribution)
	for _, groups := range memberships {
		groupsPerUser[len(groups)]++
	}

	accessesPerUser = make(models.Distribution)
	for _, accesses := range grants.Users {
		accessesPerUser[len(accesses)]++
	}

	return groupsPerUser, accessesPerUser
}

// averageSetSize returns the mean set size across the index, zero for an
// empty index.
func averageSetSize(index map[string]map[string]struct{}) float64 {
	if len(index) == 0 {
		return 0
	}
	total := 0
	for _, set := range index {
		total += len(set)
	}
	return float64(total) / float64(len(index))
}

// topFrequencies ranks names by count descending and returns at most n.
// Ties sort by name so repeated runs always report the same order.
func topFrequencies(counts map[string]int, n int) []models.Frequency {
	freqs := make([]models.Frequency, 0, len(counts))
	for name, count := range counts {
		freqs = append(freqs, models.Frequency{Name: name, Count: count})
	}

	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Count != freqs[j].Count {
			return freqs[i].Count > freqs[j].Count
		}
		return freqs[i].Name < freqs[j].Name
	})

	if n < 0 {
		n = 0
	}
	if len(freqs) > n {
		freqs = freqs[:n]
	}
	return freqs
}
