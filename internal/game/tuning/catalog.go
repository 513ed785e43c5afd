// Package tuning holds the immutable tuning catalog: prices, price curves,
// worker rates, tree parameters, prestige constants, upgrade effects and
// achievement rewards. A Catalog is validated once at load time and is
// read-only afterwards.
package tuning

import (
	"fmt"
	"time"
)

// TreeParams controls tree hit points, harvest yield and critical hits.
type TreeParams struct {
	MinHP              int
	MaxHP              int
	WoodMin            int
	WoodMax            int
	CriticalChance     float64
	CriticalMultiplier float64
}

// BeerParams controls the beer bonus and the win/prestige thresholds.
type BeerParams struct {
	BonusPerBeer  float64
	TargetBeers   int
	PrestigeBeers int
}

// PrestigeParams controls prestige point conversion and permanent bonuses.
type PrestigeParams struct {
	// BeersPerPoint is the number of beers converted into one prestige point.
	BeersPerPoint int
	WoodBonus     float64
	ClickBonus    float64
}

// AutoClickerParams is the effect table of the auto-clicker upgrade.
type AutoClickerParams struct {
	Efficiency float64
	Speed      time.Duration
}

// LumberjackSchoolParams is the effect table of the lumberjack school upgrade.
type LumberjackSchoolParams struct {
	WorkerBonus float64
}

// BreweryBonusParams is the effect table of the brewery upgrade.
type BreweryBonusParams struct {
	WoodBonus float64
}

// GoldenAxeParams is the effect table of the golden axe upgrade.
type GoldenAxeParams struct {
	CriticalChanceBonus     float64
	CriticalMultiplierBonus float64
}

// AchievementDef describes one achievement. Predicate names a Lua function
// for data-defined achievements and is empty for built-in ones.
type AchievementDef struct {
	ID          AchievementID
	Name        string
	Description string
	WoodReward  int
	Predicate   string
}

// Catalog is the validated, immutable tuning table.
//
// Invariant: every accessor for an id reported by Workers, AllUpgrades, or the
// fixed purchasables succeeds.
type Catalog struct {
	prices      map[PurchasableID]int
	multipliers map[PurchasableID]float64
	workers     []WorkerID
	efficiency  map[WorkerID]float64
	speed       map[WorkerID]time.Duration

	tree     TreeParams
	beer     BeerParams
	prestige PrestigeParams

	autoClicker      AutoClickerParams
	lumberjackSchool LumberjackSchoolParams
	breweryBonus     BreweryBonusParams
	goldenAxe        GoldenAxeParams

	achievements     map[AchievementID]AchievementDef
	achievementOrder []AchievementID
}

// BasePrice returns the base price of id.
//
// Postcondition: Returns a *ConfigurationError when id has no price.
func (c *Catalog) BasePrice(id PurchasableID) (int, error) {
	p, ok := c.prices[id]
	if !ok {
		return 0, missing(fmt.Sprintf("prices.%s", id))
	}
	return p, nil
}

// Multiplier returns the geometric price growth rate of id.
//
// Postcondition: Returns a *ConfigurationError when id has no multiplier; the
// base price is never used unscaled as a fallback.
func (c *Catalog) Multiplier(id PurchasableID) (float64, error) {
	m, ok := c.multipliers[id]
	if !ok {
		return 0, missing(fmt.Sprintf("price_multipliers.%s", id))
	}
	return m, nil
}

// WorkerEfficiency returns the damage per worker per tick.
func (c *Catalog) WorkerEfficiency(id WorkerID) (float64, error) {
	e, ok := c.efficiency[id]
	if !ok {
		return 0, missing(fmt.Sprintf("worker_efficiency.%s", id))
	}
	return e, nil
}

// WorkerSpeed returns the tick interval of a worker tier.
func (c *Catalog) WorkerSpeed(id WorkerID) (time.Duration, error) {
	s, ok := c.speed[id]
	if !ok {
		return 0, missing(fmt.Sprintf("worker_speed_ms.%s", id))
	}
	return s, nil
}

// HasWorker reports whether id is a worker tier defined by this catalog.
func (c *Catalog) HasWorker(id WorkerID) bool {
	_, ok := c.efficiency[id]
	return ok
}

// Workers returns the worker tiers ordered by ascending base price.
func (c *Catalog) Workers() []WorkerID {
	return append([]WorkerID(nil), c.workers...)
}

// Upgrades returns every upgrade in display order.
func (c *Catalog) Upgrades() []UpgradeID {
	return append([]UpgradeID(nil), AllUpgrades...)
}

// Tree returns the tree parameters.
func (c *Catalog) Tree() TreeParams { return c.tree }

// Beer returns the beer parameters.
func (c *Catalog) Beer() BeerParams { return c.beer }

// Prestige returns the prestige parameters.
func (c *Catalog) Prestige() PrestigeParams { return c.prestige }

// AutoClicker returns the auto-clicker effect table.
func (c *Catalog) AutoClicker() AutoClickerParams { return c.autoClicker }

// LumberjackSchool returns the lumberjack school effect table.
func (c *Catalog) LumberjackSchool() LumberjackSchoolParams { return c.lumberjackSchool }

// BreweryBonus returns the brewery effect table.
func (c *Catalog) BreweryBonus() BreweryBonusParams { return c.breweryBonus }

// GoldenAxe returns the golden axe effect table.
func (c *Catalog) GoldenAxe() GoldenAxeParams { return c.goldenAxe }

// Achievement returns the definition of id.
func (c *Catalog) Achievement(id AchievementID) (AchievementDef, error) {
	a, ok := c.achievements[id]
	if !ok {
		return AchievementDef{}, missing(fmt.Sprintf("achievements.%s", id))
	}
	return a, nil
}

// Achievements returns every achievement: built-ins first in table order,
// then data-defined ones sorted by id.
func (c *Catalog) Achievements() []AchievementDef {
	out := make([]AchievementDef, 0, len(c.achievementOrder))
	for _, id := range c.achievementOrder {
		out = append(out, c.achievements[id])
	}
	return out
}
