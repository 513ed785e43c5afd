package tuning

// PurchasableID identifies anything that can be bought with wood.
type PurchasableID string

// WorkerID identifies an autonomous worker tier. Worker tiers are data-defined
// by the catalog.
type WorkerID string

// UpgradeID identifies one of the repeatable upgrades. The set is fixed because
// each upgrade carries its own effect formula.
type UpgradeID string

// AchievementID identifies an achievement.
type AchievementID string

// Fixed purchasables.
const (
	AxeUpgrade     PurchasableID = "axeUpgrade"
	Beer           PurchasableID = "beer"
	PrestigeUnlock PurchasableID = "prestigeUnlock"
)

// Worker tiers shipped with the default catalog.
const (
	PtitLu  WorkerID = "ptitLu"
	Mathieu WorkerID = "mathieu"
	Vico    WorkerID = "vico"
)

// Upgrades.
const (
	AutoClicker      UpgradeID = "autoClicker"
	LumberjackSchool UpgradeID = "lumberjackSchool"
	BreweryBonus     UpgradeID = "breweryBonus"
	GoldenAxe        UpgradeID = "goldenAxe"
)

// AllUpgrades lists every upgrade in display order.
var AllUpgrades = []UpgradeID{AutoClicker, LumberjackSchool, BreweryBonus, GoldenAxe}

// Purchasable returns the purchasable id used for pricing this worker.
func (w WorkerID) Purchasable() PurchasableID { return PurchasableID(w) }

// Purchasable returns the purchasable id used for pricing this upgrade.
func (u UpgradeID) Purchasable() PurchasableID { return PurchasableID(u) }

// Valid reports whether u is one of the known upgrades.
func (u UpgradeID) Valid() bool {
	for _, known := range AllUpgrades {
		if u == known {
			return true
		}
	}
	return false
}

// Built-in achievements. Their predicates are fixed in code; the catalog only
// supplies names and rewards.
const (
	FirstClick    AchievementID = "firstClick"
	FirstBeer     AchievementID = "firstBeer"
	FirstWorker   AchievementID = "firstWorker"
	SpeedDemon    AchievementID = "speedDemon"
	Lumberjack    AchievementID = "lumberjack"
	BeerLover     AchievementID = "beerLover"
	TeamLeader    AchievementID = "teamLeader"
	ValouteMaster AchievementID = "valouteMaster"
)

// BuiltinAchievements lists the built-in achievements in evaluation order.
var BuiltinAchievements = []AchievementID{
	FirstClick, FirstBeer, FirstWorker, SpeedDemon,
	Lumberjack, BeerLover, TeamLeader, ValouteMaster,
}

// Builtin reports whether a is one of the built-in achievements.
func (a AchievementID) Builtin() bool {
	for _, b := range BuiltinAchievements {
		if a == b {
			return true
		}
	}
	return false
}
