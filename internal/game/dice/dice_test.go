package dice_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2D6", Dice: []int{4, 5}}
	assert.Equal(t, 9, r.Total())
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{Expression: "2D6", Dice: []int{4, 5}}
	assert.Equal(t, "2D6 → [4 5] = 9", r.String())
}

func TestRollResult_String_EmptyExpression(t *testing.T) {
	r := dice.RollResult{}
	assert.Equal(t, "- → [] = 0", r.String())
}

func TestParse_Valid(t *testing.T) {
	cases := map[string]dice.Expression{
		"2D6":   {Raw: "2D6", Count: 2, Sides: 6},
		"1d20":  {Raw: "1d20", Count: 1, Sides: 20},
		" 3D1 ": {Raw: " 3D1 ", Count: 3, Sides: 1},
	}
	for spec, want := range cases {
		got, err := dice.Parse(spec)
		require.NoError(t, err, spec)
		assert.Equal(t, want, got, spec)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, spec := range []string{"", "D6", "2D", "0D0", "2D0", "xDy", "2D6+3", "-1D6", "6"} {
		_, err := dice.Parse(spec)
		assert.Error(t, err, "spec %q must be rejected", spec)
	}
}

func TestParse_CountCap(t *testing.T) {
	e, err := dice.Parse("1000D6")
	require.NoError(t, err)
	assert.Equal(t, dice.MaxCount, e.Count)

	_, err = dice.Parse("1001d6")
	assert.Error(t, err)
}

func TestRollSpec_HugeCountIsZero(t *testing.T) {
	src := &dice.SequenceSource{Faces: []int{6}}
	r := dice.RollSpec("1000000000D6", src)
	assert.Equal(t, 0, r.Total())
	assert.Empty(t, r.Dice)
	assert.Equal(t, 0, src.Calls())
}

func TestRollSpec_MalformedIsZero(t *testing.T) {
	src := dice.NewSeededSource(1)
	for _, spec := range []string{"", "0D0", "garbage", "D"} {
		assert.Equal(t, 0, dice.RollSpec(spec, src).Total(), spec)
	}
}

// TestRollSpec_Property verifies every NDM roll lies in [N, N*M].
func TestRollSpec_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "n")
		m := rapid.IntRange(1, 20).Draw(rt, "m")
		seed := rapid.Uint64().Draw(rt, "seed")
		spec := fmt.Sprintf("%dD%d", n, m)

		r := dice.RollSpec(spec, dice.NewSeededSource(seed))
		assert.Len(rt, r.Dice, n)
		assert.GreaterOrEqual(rt, r.Total(), n)
		assert.LessOrEqual(rt, r.Total(), n*m)
	})
}

func TestParse_MinMax(t *testing.T) {
	e := dice.MustParse("3D4")
	assert.Equal(t, 3, e.Min())
	assert.Equal(t, 12, e.Max())
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("nope") })
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(6), b.Intn(6))
	}
}

func TestSequenceSource_ReplaysFaces(t *testing.T) {
	src := &dice.SequenceSource{Faces: []int{5, 2, 9}}
	assert.Equal(t, 5, dice.Die(src, 6))
	assert.Equal(t, 2, dice.Die(src, 6))
	assert.Equal(t, 6, dice.Die(src, 6), "faces above the die size clamp to the top face")
	assert.Equal(t, 5, dice.Die(src, 6), "sequence cycles")
	assert.Equal(t, 4, src.Calls())
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestRoller_RollSpec(t *testing.T) {
	r := dice.NewLoggedRoller(&dice.SequenceSource{Faces: []int{3, 4}}, zap.NewNop())
	res := r.RollSpec("2d6")
	assert.Equal(t, []int{3, 4}, res.Dice)
	assert.Equal(t, 7, res.Total())
	assert.True(t, strings.HasPrefix(res.String(), "2d6"))
	assert.Equal(t, 0, r.RollSpec("bogus").Total())
}
