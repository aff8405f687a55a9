package reconcile

import (
	"access-analyzer/core/tabular"
	"access-analyzer/feature/access/models"
)

// GrantColumns names the columns of the master subject-to-access export.
type GrantColumns struct {
	Subject string
	Access  string
}

// Grants holds the three indices built from the master table. Every grant
// row lands in exactly one of them.
type Grants struct {
	// Users maps each user subject to its directly granted accesses.
	Users map[string]map[string]struct{}
	// Groups maps each group subject to the accesses it conveys.
	Groups map[string]map[string]struct{}
	// Public is the set of accesses everyone holds implicitly.
	Public map[string]struct{}
}

// GrantRows validates the required columns once and extracts typed rows from
// the master export. Missing columns return a FormatError naming every
// absent column.
func GrantRows(table *tabular.Table, cols GrantColumns) ([]models.GrantRow, error) {
	if err := table.Require(cols.Subject, cols.Access); err != nil {
		return nil, err
	}

	rows := make([]models.GrantRow, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		rows = append(rows, models.GrantRow{
			Subject: table.Field(i, cols.Subject),
			Access:  table.Field(i, cols.Access),
		})
	}
	return rows, nil
}

// ResolveGrants builds the grant indices from the master export. See
// BuildGrants for the row semantics.
func ResolveGrants(table *tabular.Table, cols GrantColumns, rules Ruleset) (*Grants, error) {
	rows, err := GrantRows(table, cols)
	if err != nil {
		return nil, err
	}
	return BuildGrants(rows, rules), nil
}

// BuildGrants routes each grant row into exactly one index by subject
// classification. A subject with an empty access cell still gets an entry in
// its index; empty public accesses contribute nothing. Rows with an empty
// subject are skipped.
func BuildGrants(rows []models.GrantRow, rules Ruleset) *Grants {
	grants := &Grants{
		Users:  make(map[string]map[string]struct{}),
		Groups: make(map[string]map[string]struct{}),
		Public: make(map[string]struct{}),
	}

	for _, row := range rows {
		if row.Subject == "" {
			continue
		}

		switch rules.Classify(row.Subject) {
		case KindPublic:
			if row.Access != "" {
				grants.Public[row.Access] = struct{}{}
			}
		case KindGroup:
			ensureEntry(grants.Groups, row.Subject)
			if row.Access != "" {
				grants.Groups[row.Subject][row.Access] = struct{}{}
			}
		default:
			ensureEntry(grants.Users, row.Subject)
			if row.Access != "" {
				grants.Users[row.Subject][row.Access] = struct{}{}
			}
		}
	}

	return grants
}

// ensureEntry guarantees the subject has a set, so subjects with only empty
// access cells still show up in the index.
func ensureEntry(index map[string]map[string]struct{}, subject string) {
	if _, ok := index[subject]; !ok {
		index[subject] = make(map[string]struct{})
	}
}
