package access

import "access-analyzer/feature/access/reconcile"

// Config holds configuration for the access analyzer feature. Column names
// and subject markers default to the values used by the administration
// system's standard exports.
type Config struct {
	// UserColumn is the membership export column holding the user identifier.
	UserColumn string `mapstructure:"user_column" default:"USER_NAME"`
	// MainGroupColumn is the membership export column holding the primary group.
	MainGroupColumn string `mapstructure:"main_group_column" default:"MAIN_GROUP"`
	// AddlGroupColumn is the membership export column holding additional groups.
	AddlGroupColumn string `mapstructure:"addl_group_column" default:"ADDL_GROUP"`
	// SubjectColumn is the master export column holding the grant subject.
	SubjectColumn string `mapstructure:"subject_column" default:"JNUSER"`
	// AccessColumn is the master export column holding the access identifier.
	AccessColumn string `mapstructure:"access_column" default:"VHFROM"`
	// GroupPrefix marks master export subjects that are groups rather than users.
	GroupPrefix string `mapstructure:"group_prefix" default:"GR"`
	// PublicMarker is the pseudo-subject whose accesses are granted to everyone.
	PublicMarker string `mapstructure:"public_marker" default:"*PUBLIC"`
	// TopN is how many most-common groups and accesses the summary reports.
	TopN int `mapstructure:"top_n" default:"5"`
	// IncomingPrefix is the bucket prefix where export files are dropped.
	IncomingPrefix string `mapstructure:"incoming_prefix" default:"incoming/"`
	// ReportsPrefix is the bucket prefix where generated reports are archived.
	ReportsPrefix string `mapstructure:"reports_prefix" default:"reports/"`
}

// MembershipColumns returns the configured membership table column names.
func (c *Config) MembershipColumns() reconcile.MembershipColumns {
	return reconcile.MembershipColumns{
		User:      c.UserColumn,
		MainGroup: c.MainGroupColumn,
		AddlGroup: c.AddlGroupColumn,
	}
}

// GrantColumns returns the configured master table column names.
func (c *Config) GrantColumns() reconcile.GrantColumns {
	return reconcile.GrantColumns{
		Subject: c.SubjectColumn,
		Access:  c.AccessColumn,
	}
}

// Ruleset returns the configured subject classification rules.
func (c *Config) Ruleset() reconcile.Ruleset {
	return reconcile.Ruleset{
		GroupPrefix:  c.GroupPrefix,
		PublicMarker: c.PublicMarker,
	}
}
