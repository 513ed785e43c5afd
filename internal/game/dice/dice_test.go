package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/valouniversaire/internal/game/dice"
)

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.PanicsWithValue(t, "dice: Intn called with n <= 0", func() { src.Intn(0) })
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestFixedSource_CyclesModuloN(t *testing.T) {
	src := dice.NewFixedSource(0, 7, 3)
	assert.Equal(t, 0, src.Intn(5))
	assert.Equal(t, 2, src.Intn(5))
	assert.Equal(t, 3, src.Intn(5))
	assert.Equal(t, 0, src.Intn(5))
}

func TestBetween_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-100, 100).Draw(rt, "lo")
		hi := lo + rapid.IntRange(0, 100).Draw(rt, "span")
		seed := rapid.Uint64().Draw(rt, "seed")
		v := dice.Between(dice.NewSeededSource(seed), lo, hi)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestBetween_DegenerateRange(t *testing.T) {
	assert.Equal(t, 4, dice.Between(dice.NewCryptoSource(), 4, 4))
}

func TestChance_Bounds(t *testing.T) {
	src := dice.NewFixedSource(999_999)
	assert.False(t, dice.Chance(src, 0))
	assert.True(t, dice.Chance(src, 1))
	assert.False(t, dice.Chance(src, 0.5), "roll at the top bucket must miss a 50% chance")
	assert.True(t, dice.Chance(dice.NewFixedSource(0), 0.01))
}

func TestRoller_LogsRolls(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewLoggedRoller(dice.NewFixedSource(2), zap.New(core))

	v := r.Between("wood", 1, 3)
	assert.Equal(t, 3, v)
	hit := r.Chance("critical", 1)
	assert.True(t, hit)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "dice roll", entries[0].Message)
	assert.Equal(t, "wood", entries[0].ContextMap()["roll"])
	assert.Equal(t, int64(3), entries[0].ContextMap()["result"])
	assert.Equal(t, "dice chance", entries[1].Message)
	assert.Equal(t, true, entries[1].ContextMap()["hit"])
}
