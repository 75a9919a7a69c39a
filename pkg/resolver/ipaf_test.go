package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulmotools/ildflow/pkg/resolver"
)

func TestClassifyIPAF(t *testing.T) {
	t.Run("no criteria", func(t *testing.T) {
		result := resolver.ClassifyIPAF(nil)
		assert.False(t, result.Met)
		assert.Empty(t, result.SatisfiedDomains)
		assert.Equal(t, map[string]int{"clinical": 0, "serological": 0, "morphological": 0}, result.Counts)
	})

	t.Run("one domain is not enough", func(t *testing.T) {
		result := resolver.ClassifyIPAF([]string{"raynaud", "mechanic_hands"})
		assert.False(t, result.Met)
		assert.Equal(t, []string{"clinical"}, result.SatisfiedDomains)
		assert.Equal(t, 2, result.Counts["clinical"])
	})

	t.Run("two domains meet the classification", func(t *testing.T) {
		result := resolver.ClassifyIPAF([]string{"raynaud", "ana_high"})
		assert.True(t, result.Met)
		assert.Equal(t, []string{"clinical", "serological"}, result.SatisfiedDomains)
	})

	t.Run("all three domains", func(t *testing.T) {
		result := resolver.ClassifyIPAF([]string{"gottron", "anti_scl70", "pattern_nsip_op_lip"})
		assert.True(t, result.Met)
		assert.Len(t, result.SatisfiedDomains, 3)
	})

	t.Run("unknown tokens are ignored", func(t *testing.T) {
		result := resolver.ClassifyIPAF([]string{"bogus", "raynaud"})
		assert.False(t, result.Met)
		assert.Equal(t, 1, result.Counts["clinical"])
	})
}

func TestIPAFDomains_CriterionIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range resolver.IPAFDomains {
		for _, c := range d.Criteria {
			assert.False(t, seen[c.ID], "duplicate criterion ID %q", c.ID)
			seen[c.ID] = true
			assert.NotEmpty(t, c.Label)
		}
	}
}
