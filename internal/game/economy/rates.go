package economy

import (
	"math"

	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

// PrestigeClickFactor is the permanent damage multiplier granted by prestige points.
func PrestigeClickFactor(c *tuning.Catalog, prestigePoints int) float64 {
	return 1 + float64(prestigePoints)*c.Prestige().ClickBonus
}

// PrestigeWoodFactor is the permanent yield multiplier granted by prestige points.
func PrestigeWoodFactor(c *tuning.Catalog, prestigePoints int) float64 {
	return 1 + float64(prestigePoints)*c.Prestige().WoodBonus
}

// CriticalChance returns the probability that a manual chop is critical,
// including the golden axe bonus. The result is clamped to [0, 1].
func CriticalChance(c *tuning.Catalog, goldenAxeLevel int) float64 {
	p := c.Tree().CriticalChance + c.GoldenAxe().CriticalChanceBonus*float64(goldenAxeLevel)
	return math.Min(1, math.Max(0, p))
}

// CriticalMultiplier returns the damage multiplier of a critical chop,
// including the golden axe bonus.
func CriticalMultiplier(c *tuning.Catalog, goldenAxeLevel int) float64 {
	return c.Tree().CriticalMultiplier + c.GoldenAxe().CriticalMultiplierBonus*float64(goldenAxeLevel)
}

// ClickDamage returns floor(axeLevel × prestigeFactor × critMultiplier).
// critMultiplier is 1 for a non-critical chop.
func ClickDamage(c *tuning.Catalog, axeLevel, prestigePoints int, critMultiplier float64) int {
	return int(math.Floor(float64(axeLevel) * PrestigeClickFactor(c, prestigePoints) * critMultiplier))
}

// SchoolFactor returns the lumberjack school worker bonus factor: 1 when not owned.
func SchoolFactor(c *tuning.Catalog, schoolLevel int) float64 {
	if schoolLevel <= 0 {
		return 1
	}
	return 1 + c.LumberjackSchool().WorkerBonus*float64(schoolLevel)
}

// WorkerTickDamage returns the damage one tick of worker tier id deals:
// floor(efficiency × owned × schoolFactor × prestigeFactor).
func WorkerTickDamage(c *tuning.Catalog, id tuning.WorkerID, owned, schoolLevel, prestigePoints int) (int, error) {
	eff, err := c.WorkerEfficiency(id)
	if err != nil {
		return 0, err
	}
	dmg := eff * float64(owned) * SchoolFactor(c, schoolLevel) * PrestigeClickFactor(c, prestigePoints)
	return int(math.Floor(dmg)), nil
}

// AutoClickerTickDamage returns floor(efficiency × level).
func AutoClickerTickDamage(c *tuning.Catalog, level int) int {
	return int(math.Floor(c.AutoClicker().Efficiency * float64(level)))
}

// BeerBonusFactor returns 1 + beer × bonusPerBeer, plus the brewery bonus when owned.
func BeerBonusFactor(c *tuning.Catalog, beer, breweryLevel int) float64 {
	f := 1 + float64(beer)*c.Beer().BonusPerBeer
	if breweryLevel > 0 {
		f += c.BreweryBonus().WoodBonus * float64(breweryLevel)
	}
	return f
}

// WoodYield returns the wood granted by one harvest whose raw roll is baseWood:
// floor(baseWood × beerBonusFactor × prestigeWoodFactor).
func WoodYield(c *tuning.Catalog, baseWood, beer, breweryLevel, prestigePoints int) int {
	return int(math.Floor(float64(baseWood) * BeerBonusFactor(c, beer, breweryLevel) * PrestigeWoodFactor(c, prestigePoints)))
}

// PrestigePoints returns the points earned by prestiging with beer beers.
func PrestigePoints(c *tuning.Catalog, beer int) int {
	return beer / c.Prestige().BeersPerPoint
}
