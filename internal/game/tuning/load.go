package tuning

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type rawTree struct {
	MinHP              *int     `yaml:"min_hp"`
	MaxHP              *int     `yaml:"max_hp"`
	WoodMin            *int     `yaml:"wood_min"`
	WoodMax            *int     `yaml:"wood_max"`
	CriticalChance     *float64 `yaml:"critical_chance"`
	CriticalMultiplier *float64 `yaml:"critical_multiplier"`
}

type rawBeer struct {
	BonusPerBeer  *float64 `yaml:"bonus_per_beer"`
	TargetBeers   *int     `yaml:"target_beers"`
	PrestigeBeers *int     `yaml:"prestige_beers"`
}

type rawPrestige struct {
	BeersPerPoint *int     `yaml:"beers_per_point"`
	WoodBonus     *float64 `yaml:"wood_bonus"`
	ClickBonus    *float64 `yaml:"click_bonus"`
}

type rawAutoUpgrades struct {
	AutoClicker *struct {
		Efficiency *float64 `yaml:"efficiency"`
		SpeedMs    *int     `yaml:"speed_ms"`
	} `yaml:"autoClicker"`
	LumberjackSchool *struct {
		WorkerBonus *float64 `yaml:"worker_bonus"`
	} `yaml:"lumberjackSchool"`
	BreweryBonus *struct {
		WoodBonus *float64 `yaml:"wood_bonus"`
	} `yaml:"breweryBonus"`
	GoldenAxe *struct {
		CriticalChanceBonus     *float64 `yaml:"critical_chance_bonus"`
		CriticalMultiplierBonus *float64 `yaml:"critical_multiplier_bonus"`
	} `yaml:"goldenAxe"`
}

type rawAchievement struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	WoodReward  *int   `yaml:"wood_reward"`
	Predicate   string `yaml:"predicate"`
}

type rawCatalog struct {
	Prices           map[string]int            `yaml:"prices"`
	PriceMultipliers map[string]float64        `yaml:"price_multipliers"`
	WorkerEfficiency map[string]float64        `yaml:"worker_efficiency"`
	WorkerSpeedMs    map[string]int            `yaml:"worker_speed_ms"`
	Tree             rawTree                   `yaml:"tree"`
	Beer             rawBeer                   `yaml:"beer"`
	Prestige         rawPrestige               `yaml:"prestige"`
	AutoUpgrades     rawAutoUpgrades           `yaml:"auto_upgrades"`
	Achievements     map[string]rawAchievement `yaml:"achievements"`
}

// Default returns the catalog embedded in the binary.
//
// Postcondition: Returns a valid Catalog or a non-nil error.
func Default() (*Catalog, error) {
	return Parse(defaultYAML)
}

// MustDefault returns the embedded catalog and panics if it is invalid.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic("tuning: embedded catalog invalid: " + err.Error())
	}
	return c
}

// DefaultYAML returns a copy of the embedded catalog source.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// Load reads and validates the catalog file at path.
//
// Precondition: path must name a readable YAML file.
// Postcondition: Returns a valid Catalog or a non-nil error; validation
// failures wrap one or more *ConfigurationError values.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tuning file %q: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading tuning file %q: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog. Unknown YAML fields are rejected.
//
// Postcondition: Returns a valid Catalog or a non-nil error.
func Parse(data []byte) (*Catalog, error) {
	var raw rawCatalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing tuning: %w", err)
	}
	return build(raw)
}

// validator accumulates configuration errors so a single load reports every violation.
type validator struct {
	errs []*ConfigurationError
}

func (v *validator) add(err *ConfigurationError) {
	v.errs = append(v.errs, err)
}

func (v *validator) intAtLeast(key string, p *int, min int) int {
	if p == nil {
		v.add(missing(key))
		return 0
	}
	if *p < min {
		v.add(invalid(key, "must be >= %d, got %d", min, *p))
	}
	return *p
}

func (v *validator) floatAtLeast(key string, p *float64, min float64) float64 {
	if p == nil {
		v.add(missing(key))
		return 0
	}
	if *p < min {
		v.add(invalid(key, "must be >= %g, got %g", min, *p))
	}
	return *p
}

func (v *validator) probability(key string, p *float64) float64 {
	if p == nil {
		v.add(missing(key))
		return 0
	}
	if *p < 0 || *p > 1 {
		v.add(invalid(key, "must be in [0, 1], got %g", *p))
	}
	return *p
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	sort.SliceStable(v.errs, func(i, j int) bool { return v.errs[i].Key < v.errs[j].Key })
	joined := make([]error, len(v.errs))
	for i, e := range v.errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}

func build(raw rawCatalog) (*Catalog, error) {
	v := &validator{}
	c := &Catalog{
		prices:       make(map[PurchasableID]int),
		multipliers:  make(map[PurchasableID]float64),
		efficiency:   make(map[WorkerID]float64),
		speed:        make(map[WorkerID]time.Duration),
		achievements: make(map[AchievementID]AchievementDef),
	}

	// Worker tiers are whatever the efficiency and speed tables name.
	workerSet := make(map[WorkerID]bool)
	for id := range raw.WorkerEfficiency {
		workerSet[WorkerID(id)] = true
	}
	for id := range raw.WorkerSpeedMs {
		workerSet[WorkerID(id)] = true
	}
	if len(workerSet) == 0 {
		v.add(invalid("worker_efficiency", "at least one worker tier is required"))
	}

	scaled := []PurchasableID{AxeUpgrade, Beer}
	for _, u := range AllUpgrades {
		scaled = append(scaled, u.Purchasable())
	}
	for w := range workerSet {
		pid := w.Purchasable()
		if pid == AxeUpgrade || pid == Beer || pid == PrestigeUnlock || UpgradeID(w).Valid() {
			v.add(invalid("worker_efficiency."+string(w), "worker id collides with a reserved purchasable"))
			continue
		}
		scaled = append(scaled, pid)

		eff, ok := raw.WorkerEfficiency[string(w)]
		if !ok {
			v.add(missing("worker_efficiency." + string(w)))
		} else if eff < 0 {
			v.add(invalid("worker_efficiency."+string(w), "must be >= 0, got %g", eff))
		}
		ms, ok := raw.WorkerSpeedMs[string(w)]
		if !ok {
			v.add(missing("worker_speed_ms." + string(w)))
		} else if ms <= 0 {
			v.add(invalid("worker_speed_ms."+string(w), "must be > 0, got %d", ms))
		}
		c.efficiency[w] = eff
		c.speed[w] = time.Duration(ms) * time.Millisecond
		c.workers = append(c.workers, w)
	}

	known := map[PurchasableID]bool{PrestigeUnlock: true}
	for _, id := range scaled {
		known[id] = true
		price, ok := raw.Prices[string(id)]
		if !ok {
			v.add(missing("prices." + string(id)))
		} else if price < 0 {
			v.add(invalid("prices."+string(id), "must be >= 0, got %d", price))
		}
		mult, ok := raw.PriceMultipliers[string(id)]
		if !ok {
			v.add(missing("price_multipliers." + string(id)))
		} else if mult < 1 {
			v.add(invalid("price_multipliers."+string(id), "must be >= 1 so prices never decrease, got %g", mult))
		}
		c.prices[id] = price
		c.multipliers[id] = mult
	}
	if price, ok := raw.Prices[string(PrestigeUnlock)]; !ok {
		v.add(missing("prices." + string(PrestigeUnlock)))
	} else if price < 0 {
		v.add(invalid("prices."+string(PrestigeUnlock), "must be >= 0, got %d", price))
	} else {
		c.prices[PrestigeUnlock] = price
	}
	for id := range raw.Prices {
		if !known[PurchasableID(id)] {
			v.add(invalid("prices."+id, "unknown purchasable"))
		}
	}
	for id := range raw.PriceMultipliers {
		if !known[PurchasableID(id)] || PurchasableID(id) == PrestigeUnlock {
			v.add(invalid("price_multipliers."+id, "unknown or unscaled purchasable"))
		}
	}

	sort.Slice(c.workers, func(i, j int) bool {
		pi, pj := c.prices[c.workers[i].Purchasable()], c.prices[c.workers[j].Purchasable()]
		if pi != pj {
			return pi < pj
		}
		return c.workers[i] < c.workers[j]
	})

	c.tree = TreeParams{
		MinHP:              v.intAtLeast("tree.min_hp", raw.Tree.MinHP, 1),
		WoodMin:            v.intAtLeast("tree.wood_min", raw.Tree.WoodMin, 0),
		CriticalChance:     v.probability("tree.critical_chance", raw.Tree.CriticalChance),
		CriticalMultiplier: v.floatAtLeast("tree.critical_multiplier", raw.Tree.CriticalMultiplier, 1),
	}
	c.tree.MaxHP = v.intAtLeast("tree.max_hp", raw.Tree.MaxHP, max(c.tree.MinHP, 1))
	c.tree.WoodMax = v.intAtLeast("tree.wood_max", raw.Tree.WoodMax, c.tree.WoodMin)

	c.beer = BeerParams{
		BonusPerBeer:  v.floatAtLeast("beer.bonus_per_beer", raw.Beer.BonusPerBeer, 0),
		TargetBeers:   v.intAtLeast("beer.target_beers", raw.Beer.TargetBeers, 1),
		PrestigeBeers: v.intAtLeast("beer.prestige_beers", raw.Beer.PrestigeBeers, 1),
	}

	c.prestige = PrestigeParams{
		BeersPerPoint: v.intAtLeast("prestige.beers_per_point", raw.Prestige.BeersPerPoint, 1),
		WoodBonus:     v.floatAtLeast("prestige.wood_bonus", raw.Prestige.WoodBonus, 0),
		ClickBonus:    v.floatAtLeast("prestige.click_bonus", raw.Prestige.ClickBonus, 0),
	}

	au := raw.AutoUpgrades
	if au.AutoClicker == nil {
		v.add(missing("auto_upgrades.autoClicker"))
	} else {
		c.autoClicker = AutoClickerParams{
			Efficiency: v.floatAtLeast("auto_upgrades.autoClicker.efficiency", au.AutoClicker.Efficiency, 0),
			Speed:      time.Duration(v.intAtLeast("auto_upgrades.autoClicker.speed_ms", au.AutoClicker.SpeedMs, 1)) * time.Millisecond,
		}
	}
	if au.LumberjackSchool == nil {
		v.add(missing("auto_upgrades.lumberjackSchool"))
	} else {
		c.lumberjackSchool = LumberjackSchoolParams{
			WorkerBonus: v.floatAtLeast("auto_upgrades.lumberjackSchool.worker_bonus", au.LumberjackSchool.WorkerBonus, 0),
		}
	}
	if au.BreweryBonus == nil {
		v.add(missing("auto_upgrades.breweryBonus"))
	} else {
		c.breweryBonus = BreweryBonusParams{
			WoodBonus: v.floatAtLeast("auto_upgrades.breweryBonus.wood_bonus", au.BreweryBonus.WoodBonus, 0),
		}
	}
	if au.GoldenAxe == nil {
		v.add(missing("auto_upgrades.goldenAxe"))
	} else {
		c.goldenAxe = GoldenAxeParams{
			CriticalChanceBonus:     v.probability("auto_upgrades.goldenAxe.critical_chance_bonus", au.GoldenAxe.CriticalChanceBonus),
			CriticalMultiplierBonus: v.floatAtLeast("auto_upgrades.goldenAxe.critical_multiplier_bonus", au.GoldenAxe.CriticalMultiplierBonus, 0),
		}
	}

	for _, id := range BuiltinAchievements {
		if _, ok := raw.Achievements[string(id)]; !ok {
			v.add(missing("achievements." + string(id)))
		}
	}
	var scripted []AchievementID
	for key, ra := range raw.Achievements {
		id := AchievementID(key)
		prefix := "achievements." + key
		if ra.Name == "" {
			v.add(missing(prefix + ".name"))
		}
		reward := v.intAtLeast(prefix+".wood_reward", ra.WoodReward, 0)
		switch {
		case id.Builtin() && ra.Predicate != "":
			v.add(invalid(prefix+".predicate", "built-in achievements cannot be scripted"))
		case !id.Builtin() && ra.Predicate == "":
			v.add(missing(prefix + ".predicate"))
		case !id.Builtin():
			scripted = append(scripted, id)
		}
		c.achievements[id] = AchievementDef{
			ID:          id,
			Name:        ra.Name,
			Description: ra.Description,
			WoodReward:  reward,
			Predicate:   ra.Predicate,
		}
	}
	sort.Slice(scripted, func(i, j int) bool { return scripted[i] < scripted[j] })
	c.achievementOrder = append(append([]AchievementID(nil), BuiltinAchievements...), scripted...)

	if err := v.err(); err != nil {
		return nil, err
	}
	return c, nil
}
