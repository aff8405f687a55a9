package report

import (
	"sort"
	"strconv"
	"strings"

	"access-analyzer/core/tabular"
	"access-analyzer/core/utils"
	"access-analyzer/feature/access/models"
	"access-analyzer/feature/access/reconcile"
)

// Canonical download filenames for the two CSV exports.
const (
	ExtraReportName    = "extra_access_report.csv"
	FilteredExportName = "filtered_access_report.csv"
)

// ExtraRecords builds one record per user holding unexplained access,
// ordered by extra access count descending and user name ascending.
func ExtraRecords(memberships map[string]map[string]struct{}, grants *reconcile.Grants, extra map[string]map[string]struct{}) []models.ExtraRecord {
	records := make([]models.ExtraRecord, 0, len(extra))
	for user, accesses := range extra {
		records = append(records, models.ExtraRecord{
			User:             user,
			ExtraAccesses:    utils.SortedSet(accesses),
			ExtraAccessCount: len(accesses),
			Groups:           utils.SortedSet(memberships[user]),
			GroupCount:       len(memberships[user]),
			TotalAccessCount: len(grants.Users[user]),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].ExtraAccessCount != records[j].ExtraAccessCount {
			return records[i].ExtraAccessCount > records[j].ExtraAccessCount
		}
		return records[i].User < records[j].User
	})
	return records
}

// ExtraTable renders extra access records as the downloadable report.
func ExtraTable(records []models.ExtraRecord) *tabular.Table {
	table := tabular.New("User", "Extra Accesses", "Extra Access Count", "Assigned Groups", "Group Count", "Total Access Count")
	for _, record := range records {
		table.Append(
			record.User,
			strings.Join(record.ExtraAccesses, ", "),
			strconv.Itoa(record.ExtraAccessCount),
			strings.Join(record.Groups, ", "),
			strconv.Itoa(record.GroupCount),
			strconv.Itoa(record.TotalAccessCount),
		)
	}
	return table
}

// GroupRecords builds one record per group found in the master export,
// ordered by member count descending, access count descending and group
// name ascending. Member counts come from the membership export, so a
// group nobody belongs to reports zero members.
func GroupRecords(memberships map[string]map[string]struct{}, grants *reconcile.Grants) []models.GroupRecord {
	members := make(map[string]int)
	for _, groups := range memberships {
		for group := range groups {
			members[group]++
		}
	}

	records := make([]models.GroupRecord, 0, len(grants.Groups))
	for group, accesses := range grants.Groups {
		records = append(records, models.GroupRecord{
			Group:       group,
			Accesses:    utils.SortedSet(accesses),
			AccessCount: len(accesses),
			MemberCount: members[group],
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].MemberCount != records[j].MemberCount {
			return records[i].MemberCount > records[j].MemberCount
		}
		if records[i].AccessCount != records[j].AccessCount {
			return records[i].AccessCount > records[j].AccessCount
		}
		return records[i].Group < records[j].Group
	})
	return records
}

// FilteredExport lists every user whose direct accesses include at least one
// of the selected accesses, with all of their groups and accesses joined and
// sorted. A selection with no usable entries yields an EmptySelectionError.
func FilteredExport(memberships map[string]map[string]struct{}, grants *reconcile.Grants, selected []string) (*tabular.Table, error) {
	want := make(map[string]struct{}, len(selected))
	for _, access := range selected {
		if access = strings.TrimSpace(access); access != "" {
			want[access] = struct{}{}
		}
	}
	if len(want) == 0 {
		return nil, &EmptySelectionError{}
	}

	users := make([]string, 0)
	for user, accesses := range grants.Users {
		for access := range accesses {
			if _, ok := want[access]; ok {
				users = append(users, user)
				break
			}
		}
	}
	sort.Strings(users)

	table := tabular.New("User", "Groups", "Accesses")
	for _, user := range users {
		table.Append(
			user,
			utils.JoinSet(memberships[user], ", "),
			utils.JoinSet(grants.Users[user], ", "),
		)
	}
	return table, nil
}
