package economy_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/valouniversaire/internal/game/economy"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

func catalog(t testing.TB) *tuning.Catalog {
	t.Helper()
	return tuning.MustDefault()
}

func allPurchasables(c *tuning.Catalog) []tuning.PurchasableID {
	ids := []tuning.PurchasableID{tuning.AxeUpgrade, tuning.Beer, tuning.PrestigeUnlock}
	for _, w := range c.Workers() {
		ids = append(ids, w.Purchasable())
	}
	for _, u := range tuning.AllUpgrades {
		ids = append(ids, u.Purchasable())
	}
	return ids
}

func TestAxePrice_BaseCaseIsBasePrice(t *testing.T) {
	c := catalog(t)
	p, err := economy.AxePrice(c, 1)
	require.NoError(t, err)
	assert.Equal(t, 15, p)
}

func TestAxePrice_SecondLevel(t *testing.T) {
	c := catalog(t)
	p, err := economy.AxePrice(c, 2)
	require.NoError(t, err)
	assert.Equal(t, 19, p, "floor(15 × 1.3^1)")
}

func TestWorkerPrice_Scenario(t *testing.T) {
	c := catalog(t)
	p, err := economy.WorkerPrice(c, tuning.PtitLu, 0)
	require.NoError(t, err)
	assert.Equal(t, 25, p)

	p, err = economy.WorkerPrice(c, tuning.PtitLu, 1)
	require.NoError(t, err)
	assert.Equal(t, 40, p, "floor(25 × 1.6)")
}

func TestBeerAndUpgradePrices(t *testing.T) {
	c := catalog(t)
	p, err := economy.BeerPrice(c, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, p)

	p, err = economy.UpgradePrice(c, tuning.BreweryBonus, 1)
	require.NoError(t, err)
	mult, err := c.Multiplier(tuning.BreweryBonus.Purchasable())
	require.NoError(t, err)
	assert.Equal(t, int(math.Floor(200*mult)), p)
	assert.Equal(t, 400, p, "floor(200 × 2.0)")

	p, err = economy.PrestigePrice(c)
	require.NoError(t, err)
	assert.Equal(t, 0, p)
}

func TestPrice_UnknownPurchasable(t *testing.T) {
	_, err := economy.Price(catalog(t), "chainsaw", 0)
	var ce *tuning.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestPrice_SaturatesInsteadOfOverflowing(t *testing.T) {
	p, err := economy.BeerPrice(catalog(t), 1_000_000)
	require.NoError(t, err)
	assert.Greater(t, p, 0)
}

// TestPrice_Monotonic verifies price(n+1) >= price(n) for every purchasable.
func TestPrice_Monotonic(t *testing.T) {
	c := catalog(t)
	ids := allPurchasables(c)
	rapid.Check(t, func(rt *rapid.T) {
		id := rapid.SampledFrom(ids).Draw(rt, "id")
		n := rapid.IntRange(0, 5000).Draw(rt, "n")
		if id == tuning.AxeUpgrade {
			n++
		}
		a, err := economy.Price(c, id, n)
		require.NoError(rt, err)
		b, err := economy.Price(c, id, n+1)
		require.NoError(rt, err)
		assert.GreaterOrEqual(rt, b, a, "price of %s must not decrease from %d to %d", id, n, n+1)
	})
}

func TestPriceTable_CoversEverything(t *testing.T) {
	c := catalog(t)
	table, err := economy.PriceTable(c, economy.Holdings{
		AxeLevel: 2,
		Workers:  map[tuning.WorkerID]int{tuning.PtitLu: 1},
	})
	require.NoError(t, err)
	assert.Len(t, table, len(allPurchasables(c)))
	assert.Equal(t, 19, table[tuning.AxeUpgrade])
	assert.Equal(t, 40, table[tuning.PtitLu.Purchasable()])
	assert.Equal(t, 100, table[tuning.Mathieu.Purchasable()])
}

func TestClickDamage(t *testing.T) {
	c := catalog(t)
	assert.Equal(t, 1, economy.ClickDamage(c, 1, 0, 1))
	assert.Equal(t, 2, economy.ClickDamage(c, 1, 0, 2.5), "floor(1 × 2.5)")
	assert.Equal(t, 10, economy.ClickDamage(c, 4, 0, 2.5))
	assert.Equal(t, 11, economy.ClickDamage(c, 10, 5, 1), "floor(10 × 1.1)")
}

func TestCriticalRates_GoldenAxe(t *testing.T) {
	c := catalog(t)
	assert.InDelta(t, 0.1, economy.CriticalChance(c, 0), 1e-9)
	assert.InDelta(t, 0.25, economy.CriticalChance(c, 1), 1e-9)
	assert.Equal(t, 1.0, economy.CriticalChance(c, 100), "chance is clamped to 1")
	assert.InDelta(t, 2.5, economy.CriticalMultiplier(c, 0), 1e-9)
	assert.InDelta(t, 4.5, economy.CriticalMultiplier(c, 2), 1e-9)
}

func TestWorkerTickDamage(t *testing.T) {
	c := catalog(t)
	dmg, err := economy.WorkerTickDamage(c, tuning.Vico, 3, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 15, dmg)

	dmg, err = economy.WorkerTickDamage(c, tuning.Vico, 3, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 22, dmg, "floor(5 × 3 × 1.5)")

	dmg, err = economy.WorkerTickDamage(c, tuning.PtitLu, 0, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, dmg)

	_, err = economy.WorkerTickDamage(c, "bob", 1, 0, 0)
	assert.Error(t, err)
}

func TestAutoClickerTickDamage(t *testing.T) {
	c := catalog(t)
	assert.Equal(t, 0, economy.AutoClickerTickDamage(c, 0))
	assert.Equal(t, 3, economy.AutoClickerTickDamage(c, 3))
}

func TestWoodYield(t *testing.T) {
	c := catalog(t)
	assert.Equal(t, 3, economy.WoodYield(c, 3, 0, 0, 0))
	assert.Equal(t, 6, economy.WoodYield(c, 3, 100, 0, 0), "floor(3 × 2.0)")
	assert.Equal(t, 4, economy.WoodYield(c, 3, 0, 1, 0), "floor(3 × 1.5)")
	assert.Equal(t, 4, economy.WoodYield(c, 3, 0, 0, 10), "floor(3 × 1.5)")
	assert.Equal(t, 0, economy.WoodYield(c, 0, 400, 3, 10))
}

func TestPrestigePoints(t *testing.T) {
	c := catalog(t)
	assert.Equal(t, 10, economy.PrestigePoints(c, 1000))
	assert.Equal(t, 10, economy.PrestigePoints(c, 1099))
	assert.Equal(t, 0, economy.PrestigePoints(c, 99))
}
