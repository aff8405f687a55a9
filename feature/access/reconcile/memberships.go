package reconcile

import (
	"regexp"

	"access-analyzer/core/tabular"
	"access-analyzer/feature/access/models"
)

// MembershipColumns names the columns of the user-to-group membership export.
type MembershipColumns struct {
	User      string
	MainGroup string
	AddlGroup string
}

// Additional groups arrive as one cell listing several names, separated by
// commas, whitespace, or any mix of the two.
var addlGroupSeparator = regexp.MustCompile(`[,\s]+`)

// MembershipRows validates the required columns once and extracts typed rows
// from the membership export. Missing columns return a FormatError naming
// every absent column.
func MembershipRows(table *tabular.Table, cols MembershipColumns) ([]models.MembershipRow, error) {
	if err := table.Require(cols.User, cols.MainGroup, cols.AddlGroup); err != nil {
		return nil, err
	}

	rows := make([]models.MembershipRow, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		rows = append(rows, models.MembershipRow{
			User:       table.Field(i, cols.User),
			MainGroup:  table.Field(i, cols.MainGroup),
			AddlGroups: table.Field(i, cols.AddlGroup),
		})
	}
	return rows, nil
}

// ResolveMemberships builds the user-to-groups index from the membership
// export. See BuildMemberships for the row semantics.
func ResolveMemberships(table *tabular.Table, cols MembershipColumns) (map[string]map[string]struct{}, error) {
	rows, err := MembershipRows(table, cols)
	if err != nil {
		return nil, err
	}
	return BuildMemberships(rows), nil
}

// BuildMemberships turns membership rows into the user-to-groups index.
// Rows with an empty user are skipped. The group set is seeded with the main
// group when present and unioned with the tokenized additional groups. When
// a user appears in more than one row, the last row wins completely.
func BuildMemberships(rows []models.MembershipRow) map[string]map[string]struct{} {
	memberships := make(map[string]map[string]struct{})

	for _, row := range rows {
		if row.User == "" {
			continue
		}

		groups := make(map[string]struct{})
		if row.MainGroup != "" {
			groups[row.MainGroup] = struct{}{}
		}
		for _, g := range addlGroupSeparator.Split(row.AddlGroups, -1) {
			if g != "" {
				groups[g] = struct{}{}
			}
		}

		memberships[row.User] = groups
	}

	return memberships
}
