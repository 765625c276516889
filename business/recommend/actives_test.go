package recommend

import (
	"testing"

	"dermAssist/domain"

	"github.com/stretchr/testify/assert"
)

func TestMapTraitsToActives(t *testing.T) {
	t.Run("returns no duplicates", func(t *testing.T) {
		traits := []domain.SkinTrait{
			{ID: "acne", Severity: domain.SeverityHigh},
			{ID: "oiliness", Severity: domain.SeverityModerate},
			{ID: "enlarged-pores", Severity: domain.SeverityLow},
		}

		actives := MapTraitsToActives(traits, []string{"clear skin"})

		seen := make(map[string]int)
		for _, a := range actives {
			seen[a]++
		}
		for name, count := range seen {
			assert.Equalf(t, 1, count, "active %q appears %d times", name, count)
		}
	})

	t.Run("high severity actives come before low severity ones", func(t *testing.T) {
		// listed low-severity first to prove input order does not win
		traits := []domain.SkinTrait{
			{ID: "dryness", Severity: domain.SeverityLow},
			{ID: "hyperpigmentation", Severity: domain.SeverityHigh},
		}

		actives := MapTraitsToActives(traits, nil)

		assert.Equal(t, "Vitamin C", actives[0], "high-severity trait's first active should lead")

		idxVitC := indexOf(actives, "Vitamin C")
		idxHA := indexOf(actives, "Hyaluronic Acid")
		assert.True(t, idxVitC >= 0 && idxHA >= 0)
		assert.Less(t, idxVitC, idxHA)
	})

	t.Run("goal phrases match case-insensitively", func(t *testing.T) {
		actives := MapTraitsToActives(nil, []string{"  Anti-Aging "})
		assert.Contains(t, actives, "Retinol")
		assert.Contains(t, actives, "Peptides")
	})

	t.Run("unknown trait ids and goals are ignored", func(t *testing.T) {
		traits := []domain.SkinTrait{{ID: "telepathy", Severity: domain.SeverityHigh}}
		actives := MapTraitsToActives(traits, []string{"world peace"})
		assert.Empty(t, actives)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, MapTraitsToActives(nil, nil))
	})
}

func indexOf(list []string, want string) int {
	for i, v := range list {
		if v == want {
			return i
		}
	}
	return -1
}
