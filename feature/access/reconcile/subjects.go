package reconcile

import "strings"

// Kind classifies a master table subject.
type Kind string

const (
	// KindUser is an ordinary user subject.
	KindUser Kind = "user"
	// KindGroup is a group subject, recognized by the configured prefix.
	KindGroup Kind = "group"
	// KindPublic is the pseudo-subject whose accesses everyone holds.
	KindPublic Kind = "public"
)

// Ruleset holds the markers that drive subject classification.
type Ruleset struct {
	// GroupPrefix marks group subjects, e.g. "GR".
	GroupPrefix string
	// PublicMarker is the exact public pseudo-subject, e.g. "*PUBLIC".
	PublicMarker string
}

// Classify determines the kind of a subject. The public marker is an exact
// match and wins over the group prefix; everything else with the prefix is a
// group; the rest are users.
func (r Ruleset) Classify(subject string) Kind {
	if subject == r.PublicMarker {
		return KindPublic
	}
	if r.GroupPrefix != "" && strings.HasPrefix(subject, r.GroupPrefix) {
		return KindGroup
	}
	return KindUser
}
