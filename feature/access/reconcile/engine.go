package reconcile

import "access-analyzer/core/utils"

// FindExtra computes, for every user in the membership index, the accesses
// held directly that are not covered by the public set or by any group the
// user belongs to. Users whose entire access is explained are absent from
// the result. Subjects appearing only in the master table are not evaluated;
// extra access is defined relative to membership.
//
// The computation is pure: it never mutates its inputs and is independent of
// input order.
func FindExtra(memberships map[string]map[string]struct{}, grants *Grants) map[string]map[string]struct{} {
	extra := make(map[string]map[string]struct{})

	for user := range memberships {
		expected := ExpectedFor(user, memberships, grants)

		var unexplained map[string]struct{}
		for access := range grants.Users[user] {
			if _, ok := expected[access]; !ok {
				if unexplained == nil {
					unexplained = make(map[string]struct{})
				}
				unexplained[access] = struct{}{}
			}
		}

		if len(unexplained) > 0 {
			extra[user] = unexplained
		}
	}

	return extra
}

// ExpectedFor returns the access set group membership and the public grant
// entitle the user to. Groups without master table rows contribute nothing.
func ExpectedFor(user string, memberships map[string]map[string]struct{}, grants *Grants) map[string]struct{} {
	sets := []map[string]struct{}{grants.Public}
	for group := range memberships[user] {
		if accesses, ok := grants.Groups[group]; ok {
			sets = append(sets, accesses)
		}
	}
	return utils.Union(sets...)
}
