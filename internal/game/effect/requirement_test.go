package effect_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/effect"
)

func TestParseRequirements_OnForm(t *testing.T) {
	set := effect.ParseRequirements("Poison on 3+", "-", "")
	require.NotNil(t, set)
	assert.Equal(t, []int{3}, set.Thresholds("poison"))
}

func TestParseRequirements_PlusForm(t *testing.T) {
	set := effect.ParseRequirements("Burn + 4")
	require.NotNil(t, set)
	assert.Equal(t, []int{4}, set.Thresholds("burn"))
}

func TestParseRequirements_BareEntryAlwaysEligible(t *testing.T) {
	set := effect.ParseRequirements("Sleep")
	require.NotNil(t, set)
	assert.Equal(t, []int{effect.AlwaysThreshold}, set.Thresholds("sleep"))
}

func TestParseRequirements_SplitsOnSeparators(t *testing.T) {
	set := effect.ParseRequirements("Poison on 5+; Burn on 4+, Flinch · Paralyze + 6")
	require.NotNil(t, set)
	assert.Equal(t, []string{"poison", "burn", "flinch", "paralyze"}, set.Effects())
	assert.Equal(t, []int{6}, set.Thresholds("paralyze"))
}

func TestParseRequirements_AccumulatesAcrossSlots(t *testing.T) {
	set := effect.ParseRequirements("Poison on 5+", "Poison on 3+", "poison")
	require.NotNil(t, set)
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, []int{5, 3, 0}, set.Thresholds("Poison"))
}

func TestParseRequirements_SuperDoublesOpportunities(t *testing.T) {
	set := effect.ParseRequirements("Super Sleep on 4+")
	require.NotNil(t, set)
	assert.Equal(t, []string{"sleep"}, set.Effects())
	assert.Equal(t, []int{4, 4}, set.Thresholds("sleep"))
}

func TestParseRequirements_SuperBareEntry(t *testing.T) {
	set := effect.ParseRequirements("super burn")
	require.NotNil(t, set)
	assert.Equal(t, []int{0, 0}, set.Thresholds("burn"))
}

func TestParseRequirements_NothingRecognizedIsNil(t *testing.T) {
	assert.Nil(t, effect.ParseRequirements())
	assert.Nil(t, effect.ParseRequirements("-", " ", ";,"))
	var set *effect.RequirementSet
	assert.True(t, set.Empty())
	assert.Equal(t, 0, set.Len())
	assert.Nil(t, set.Thresholds("poison"))
}

func TestParseRequirements_MalformedFallsBackToAlways(t *testing.T) {
	// "on 3" without the trailing '+' is not the threshold form.
	set := effect.ParseRequirements("Confuse on 3")
	require.NotNil(t, set)
	assert.Equal(t, []int{0}, set.Thresholds("confuse on 3"))
}

func TestParseRequirements_OversizedThresholdNeverTriggers(t *testing.T) {
	set := effect.ParseRequirements("Poison on 99999999999999999999+", "Burn + 5000000000")
	assert.Equal(t, []string{"poison", "burn"}, set.Effects())
	assert.Equal(t, []int{effect.NeverThreshold}, set.Thresholds("poison"))
	assert.Equal(t, []int{effect.NeverThreshold}, set.Thresholds("burn"))
}

func TestRequirementSet_RequirementsIsCopy(t *testing.T) {
	set := effect.ParseRequirements("Poison on 3+")
	reqs := set.Requirements()
	reqs[0].Thresholds[0] = 99
	assert.Equal(t, []int{3}, set.Thresholds("poison"))
}

func TestNewRequirementSet_Merges(t *testing.T) {
	set := effect.NewRequirementSet(
		effect.Requirement{Effect: "Poison", Thresholds: []int{3}},
		effect.Requirement{Effect: "poison", Thresholds: []int{5}},
	)
	assert.Equal(t, []int{3, 5}, set.Thresholds("poison"))
	assert.Nil(t, effect.NewRequirementSet(effect.Requirement{Effect: "poison"}))
}

// TestParseRequirements_SuperProperty verifies "super X on N+" always yields
// exactly two threshold entries of N for X.
func TestParseRequirements_SuperProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.StringMatching(`[a-z]{3,10}`).Draw(rt, "name")
		n := rapid.IntRange(0, 6).Draw(rt, "n")
		set := effect.ParseRequirements("Super " + name + " on " + strconv.Itoa(n) + "+")
		assert.Equal(rt, []int{n, n}, set.Thresholds(name))
	})
}
