package tuning

// Table is the public tuning table served to clients. Field names follow the
// JSON contract of the original configuration endpoint.
type Table struct {
	Prices           map[PurchasableID]int     `json:"prices"`
	PriceMultipliers map[PurchasableID]float64 `json:"priceMultipliers"`
	WorkerEfficiency map[WorkerID]float64      `json:"workerEfficiency"`
	WorkerSpeed      map[WorkerID]int64        `json:"workerSpeed"`
	Tree             TableTree                 `json:"tree"`
	Beer             TableBeer                 `json:"beer"`
	Prestige         TablePrestige             `json:"prestige"`
	AutoUpgrades     TableAutoUpgrades         `json:"autoUpgrades"`
	Achievements     []TableAchievement        `json:"achievements"`
}

// TableTree is the tree section of Table.
type TableTree struct {
	MinHP              int     `json:"minHP"`
	MaxHP              int     `json:"maxHP"`
	WoodMin            int     `json:"woodMin"`
	WoodMax            int     `json:"woodMax"`
	CriticalChance     float64 `json:"criticalChance"`
	CriticalMultiplier float64 `json:"criticalMultiplier"`
}

// TableBeer is the beer section of Table.
type TableBeer struct {
	BonusPerBeer  float64 `json:"bonusPerBeer"`
	TargetBeers   int     `json:"targetBeers"`
	PrestigeBeers int     `json:"prestigeBeers"`
}

// TablePrestige is the prestige section of Table.
type TablePrestige struct {
	BeersPerPoint int     `json:"beersPerPoint"`
	WoodBonus     float64 `json:"woodBonus"`
	ClickBonus    float64 `json:"clickBonus"`
}

// TableAutoUpgrades is the upgrade effect section of Table.
type TableAutoUpgrades struct {
	AutoClicker struct {
		Efficiency float64 `json:"efficiency"`
		Speed      int64   `json:"speed"`
	} `json:"autoClicker"`
	LumberjackSchool struct {
		WorkerBonus float64 `json:"workerBonus"`
	} `json:"lumberjackSchool"`
	BreweryBonus struct {
		WoodBonus float64 `json:"woodBonus"`
	} `json:"breweryBonus"`
	GoldenAxe struct {
		CriticalChanceBonus     float64 `json:"criticalChanceBonus"`
		CriticalMultiplierBonus float64 `json:"criticalMultiplierBonus"`
	} `json:"goldenAxe"`
}

// TableAchievement is one achievement entry of Table.
type TableAchievement struct {
	ID          AchievementID `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	WoodReward  int           `json:"woodReward"`
}

// Table returns a detached copy of the catalog in its public form.
// Speeds are expressed in milliseconds.
func (c *Catalog) Table() Table {
	t := Table{
		Prices:           make(map[PurchasableID]int, len(c.prices)),
		PriceMultipliers: make(map[PurchasableID]float64, len(c.multipliers)),
		WorkerEfficiency: make(map[WorkerID]float64, len(c.efficiency)),
		WorkerSpeed:      make(map[WorkerID]int64, len(c.speed)),
		Tree:             TableTree(c.tree),
		Beer:             TableBeer(c.beer),
		Prestige:         TablePrestige(c.prestige),
	}
	for k, v := range c.prices {
		t.Prices[k] = v
	}
	for k, v := range c.multipliers {
		t.PriceMultipliers[k] = v
	}
	for k, v := range c.efficiency {
		t.WorkerEfficiency[k] = v
	}
	for k, v := range c.speed {
		t.WorkerSpeed[k] = v.Milliseconds()
	}
	t.AutoUpgrades.AutoClicker.Efficiency = c.autoClicker.Efficiency
	t.AutoUpgrades.AutoClicker.Speed = c.autoClicker.Speed.Milliseconds()
	t.AutoUpgrades.LumberjackSchool.WorkerBonus = c.lumberjackSchool.WorkerBonus
	t.AutoUpgrades.BreweryBonus.WoodBonus = c.breweryBonus.WoodBonus
	t.AutoUpgrades.GoldenAxe.CriticalChanceBonus = c.goldenAxe.CriticalChanceBonus
	t.AutoUpgrades.GoldenAxe.CriticalMultiplierBonus = c.goldenAxe.CriticalMultiplierBonus
	for _, a := range c.Achievements() {
		t.Achievements = append(t.Achievements, TableAchievement{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			WoodReward:  a.WoodReward,
		})
	}
	return t
}
