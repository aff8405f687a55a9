// Package report turns reconciliation results into the tables and records
// the analyzer serves: the extra access report, the group-to-access mapping,
// and the filtered access export. Every output is sorted so repeated runs
// over the same inputs produce identical bytes.
package report
