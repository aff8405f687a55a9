package models

import "time"

// Frequency pairs a group or access name with how often it occurs.
type Frequency struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Distribution buckets users by how many groups or accesses they hold:
// the key is the held count, the value is the number of users holding
// exactly that many.
type Distribution map[int]int

// Stats summarizes one analysis run.
type Stats struct {
	TotalUsers          int     `json:"total_users"`
	TotalGroups         int     `json:"total_groups"`
	UsersWithExtra      int     `json:"users_with_extra_access"`
	TotalUniqueAccesses int     `json:"total_unique_accesses"`
	PublicAccessCount   int     `json:"public_accesses"`
	AvgGroupsPerUser    float64 `json:"avg_group_per_user"`
	AvgAccessesPerUser  float64 `json:"avg_access_per_user"`
	AvgAccessesPerGroup float64 `json:"avg_access_per_group"`

	MostCommonGroups   []Frequency `json:"most_common_groups"`
	MostCommonAccesses []Frequency `json:"most_common_accesses"`
}

// ExtraRecord is one user holding access beyond group and public entitlements.
// Slice fields are sorted for deterministic output.
type ExtraRecord struct {
	User             string   `json:"user"`
	ExtraAccesses    []string `json:"extra_accesses"`
	ExtraAccessCount int      `json:"extra_access_count"`
	Groups           []string `json:"groups"`
	GroupCount       int      `json:"group_count"`
	TotalAccessCount int      `json:"total_access_count"`
}

// GroupRecord describes one group from the master table: its granted
// accesses and how many users belong to it.
type GroupRecord struct {
	Group       string   `json:"group"`
	Accesses    []string `json:"accesses"`
	AccessCount int      `json:"access_count"`
	MemberCount int      `json:"member_count"`
}

// UserDetail is the per-user drill-down view.
type UserDetail struct {
	User           string   `json:"user"`
	Groups         []string `json:"groups"`
	ActualAccesses []string `json:"actual_accesses"`
	// ExpectedAccesses is what group membership plus the public grant entitle
	// the user to, whether or not the user actually holds them.
	ExpectedAccesses []string `json:"expected_accesses"`
	ExtraAccesses    []string `json:"extra_accesses"`
}

// Analysis is the complete result of one run.
type Analysis struct {
	Stats          Stats         `json:"stats"`
	ExtraRecords   []ExtraRecord `json:"extra_records"`
	GroupRecords   []GroupRecord `json:"group_records"`
	PublicAccesses []string      `json:"public_accesses"`

	GroupsPerUser   Distribution `json:"groups_per_user_distribution"`
	AccessesPerUser Distribution `json:"accesses_per_user_distribution"`

	GeneratedAt   string `json:"generated_at"`
	ExecutionTime string `json:"execution_time"`
}

// InputObject describes one candidate export file in the storage drop zone.
type InputObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}
