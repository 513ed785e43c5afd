// Package economy holds the pure price and rate formulas of the game. Every
// function is stateless: it reads the catalog and the quantities it is given
// and never mutates anything.
package economy

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

// maxPrice caps geometric growth so the float-to-int conversion stays defined.
const maxPrice = math.MaxInt

// geometric returns floor(base × mult^exp), saturating at maxPrice.
func geometric(base int, mult float64, exp int) int {
	if exp < 0 {
		exp = 0
	}
	v := math.Floor(float64(base) * math.Pow(mult, float64(exp)))
	if math.IsInf(v, 1) || v >= float64(maxPrice) {
		return maxPrice
	}
	return int(v)
}

func scaledPrice(c *tuning.Catalog, id tuning.PurchasableID, exp int) (int, error) {
	base, err := c.BasePrice(id)
	if err != nil {
		return 0, err
	}
	mult, err := c.Multiplier(id)
	if err != nil {
		return 0, err
	}
	return geometric(base, mult, exp), nil
}

// WorkerPrice returns the price of the next worker of tier id when owned are
// already hired: floor(base × mult^owned).
func WorkerPrice(c *tuning.Catalog, id tuning.WorkerID, owned int) (int, error) {
	return scaledPrice(c, id.Purchasable(), owned)
}

// UpgradePrice returns the price of the next level of upgrade id:
// floor(base × mult^level).
func UpgradePrice(c *tuning.Catalog, id tuning.UpgradeID, level int) (int, error) {
	return scaledPrice(c, id.Purchasable(), level)
}

// AxePrice returns the price of upgrading an axe currently at axeLevel:
// floor(base × mult^(axeLevel−1)). The first upgrade costs exactly the base price.
//
// Precondition: axeLevel >= 1; lower values are priced as level 1.
func AxePrice(c *tuning.Catalog, axeLevel int) (int, error) {
	return scaledPrice(c, tuning.AxeUpgrade, axeLevel-1)
}

// BeerPrice returns the price of the next beer when owned beers are held.
func BeerPrice(c *tuning.Catalog, owned int) (int, error) {
	return scaledPrice(c, tuning.Beer, owned)
}

// PrestigePrice returns the fixed, unscaled prestige unlock price.
func PrestigePrice(c *tuning.Catalog) (int, error) {
	return c.BasePrice(tuning.PrestigeUnlock)
}

// Price dispatches to the formula for id. For the axe, owned is the current
// axe level; for everything else it is the owned quantity.
//
// Postcondition: Price(c, id, n+1) >= Price(c, id, n) for every n >= 0.
func Price(c *tuning.Catalog, id tuning.PurchasableID, owned int) (int, error) {
	switch {
	case id == tuning.AxeUpgrade:
		return AxePrice(c, owned)
	case id == tuning.Beer:
		return BeerPrice(c, owned)
	case id == tuning.PrestigeUnlock:
		return PrestigePrice(c)
	case tuning.UpgradeID(id).Valid():
		return UpgradePrice(c, tuning.UpgradeID(id), owned)
	case c.HasWorker(tuning.WorkerID(id)):
		return WorkerPrice(c, tuning.WorkerID(id), owned)
	default:
		return 0, &tuning.ConfigurationError{Key: fmt.Sprintf("prices.%s", id), Reason: "unknown purchasable"}
	}
}

// Holdings is the quantity owned of each purchasable, as needed to price them.
type Holdings struct {
	AxeLevel int
	Beer     int
	Workers  map[tuning.WorkerID]int
	Upgrades map[tuning.UpgradeID]int
}

// PriceTable returns the current price of every purchasable for holdings.
//
// Postcondition: the table has one entry per worker tier, per upgrade, the axe,
// beer and the prestige unlock.
func PriceTable(c *tuning.Catalog, h Holdings) (map[tuning.PurchasableID]int, error) {
	out := make(map[tuning.PurchasableID]int)
	add := func(id tuning.PurchasableID, owned int) error {
		p, err := Price(c, id, owned)
		if err != nil {
			return err
		}
		out[id] = p
		return nil
	}
	if err := add(tuning.AxeUpgrade, h.AxeLevel); err != nil {
		return nil, err
	}
	if err := add(tuning.Beer, h.Beer); err != nil {
		return nil, err
	}
	if err := add(tuning.PrestigeUnlock, 0); err != nil {
		return nil, err
	}
	for _, w := range c.Workers() {
		if err := add(w.Purchasable(), h.Workers[w]); err != nil {
			return nil, err
		}
	}
	for _, u := range tuning.AllUpgrades {
		if err := add(u.Purchasable(), h.Upgrades[u]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
