package models

// MembershipRow is one typed row of the user-to-group membership export.
type MembershipRow struct {
	User       string
	MainGroup  string
	AddlGroups string
}

// GrantRow is one typed row of the master access export: a single grant
// edge from a subject to an access identifier. Access may be empty.
type GrantRow struct {
	Subject string
	Access  string
}
