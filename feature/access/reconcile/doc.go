// Package reconcile derives per-user extra access from two loaded exports:
// the user-to-group membership table and the master subject-to-access table.
//
// # Model
//
// Master table subjects are classified by a Ruleset into users, groups, and
// the public pseudo-subject, and each grant row is routed to exactly one of
// the three resulting indices. A user's expected access is the union of the
// public set and the sets of every group the membership table places the
// user in. Extra access is whatever the user actually holds beyond that.
//
// # Components
//
// 1. Resolvers: ResolveMemberships and ResolveGrants turn tabular exports
// into in-memory set indices, validating required columns up front.
//
// 2. Engine: FindExtra computes the per-user set difference. It is pure and
// deterministic; input order never changes the result.
//
// 3. Stats: Summarize condenses a run into counts, averages, and the most
// common groups and accesses for reporting.
//
// # Usage Example
//
//	memberships, err := reconcile.ResolveMemberships(membershipTable, cols)
//	grants, err := reconcile.ResolveGrants(masterTable, grantCols, rules)
//	extra := reconcile.FindExtra(memberships, grants)
//	stats := reconcile.Summarize(memberships, grants, extra, 5)
//
// All indices are built fresh per run and never mutated afterwards; nothing
// in this package is shared across runs.
package reconcile
