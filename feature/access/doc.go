// Package access implements the user access analysis feature.
//
// It reconciles two delimited exports from the administration system:
//  1. Membership export: which groups each user belongs to.
//  2. Master access export: which accesses users, groups and the public
//     pseudo-subject hold.
//
// A user's expected accesses are what their groups grant plus the public
// set; anything they hold beyond that is reported as extra access. Every
// analysis is a complete run over the inputs it is handed. Nothing is
// stored between requests.
//
// # Components
//
//   - Service: Orchestrates loading, resolution, reconciliation and exports.
//   - Handler: Exposes the HTTP endpoints.
//   - Loader: Registers the feature with the application.
//   - reconcile: The pure resolution and reconciliation logic.
//   - report: Report records and CSV rendering.
//
// # HTTP Endpoints
//
//   - POST /access/analysis : Full analysis of two uploaded exports.
//   - POST /access/analysis/report : Extra access report as CSV download.
//   - POST /access/analysis/export : Filtered access export as CSV download.
//   - GET /access/inputs : List export files in the storage drop zone.
package access
