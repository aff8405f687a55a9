package reconcile

import (
	"access-analyzer/core/utils"
	"access-analyzer/feature/access/models"
)

// UserDetail assembles the drill-down view for a single user: the groups the
// membership table assigns, the accesses actually held, the accesses group
// membership and the public grant would entitle, and the unexplained rest.
// Unknown users yield a detail with empty slices rather than an error; the
// caller decides whether absence matters.
func UserDetail(user string, memberships map[string]map[string]struct{}, grants *Grants, extra map[string]map[string]struct{}) *models.UserDetail {
	return &models.UserDetail{
		User:             user,
		Groups:           utils.SortedSet(memberships[user]),
		ActualAccesses:   utils.SortedSet(grants.Users[user]),
		ExpectedAccesses: utils.SortedSet(ExpectedFor(user, memberships, grants)),
		ExtraAccesses:    utils.SortedSet(extra[user]),
	}
}

// Known reports whether the user appears in either export.
func Known(user string, memberships map[string]map[string]struct{}, grants *Grants) bool {
	if _, ok := memberships[user]; ok {
		return true
	}
	_, ok := grants.Users[user]
	return ok
}
