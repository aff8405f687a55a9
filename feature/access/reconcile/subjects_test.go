package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleset_Classify(t *testing.T) {
	rules := Ruleset{GroupPrefix: "GR", PublicMarker: "*PUBLIC"}

	tests := []struct {
		name    string
		subject string
		want    Kind
	}{
		{"User", "alice", KindUser},
		{"Group", "GRADMIN", KindGroup},
		{"Public", "*PUBLIC", KindPublic},
		{"BarePrefix", "GR", KindGroup},
		{"LowercasePrefix", "gradmin", KindUser},
		{"PublicIsExactMatch", "*PUBLICX", KindUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Classify(tt.subject))
		})
	}

	t.Run("PublicWinsOverPrefix", func(t *testing.T) {
		// A marker that itself carries the group prefix must still be public.
		overlapping := Ruleset{GroupPrefix: "*", PublicMarker: "*PUBLIC"}
		assert.Equal(t, KindPublic, overlapping.Classify("*PUBLIC"))
		assert.Equal(t, KindGroup, overlapping.Classify("*OTHER"))
	})

	t.Run("EmptyPrefixMatchesNoGroup", func(t *testing.T) {
		none := Ruleset{GroupPrefix: "", PublicMarker: "*PUBLIC"}
		assert.Equal(t, KindUser, none.Classify("GRADMIN"))
	})
}
