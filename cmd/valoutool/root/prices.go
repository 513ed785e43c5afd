package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/valouniversaire/internal/game/economy"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

func newPricesCmd() *cobra.Command {
	var levels int
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Print the price of every purchasable for the first N levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			if levels < 1 {
				return fmt.Errorf("--levels must be at least 1, got %d", levels)
			}
			c, err := loadCatalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, Title.Render("Price table"))

			for _, id := range purchasables(c) {
				prices := make([]string, 0, levels)
				for n := 0; n < levels; n++ {
					owned := n
					if id == tuning.AxeUpgrade {
						owned = n + 1
					}
					p, err := economy.Price(c, id, owned)
					if err != nil {
						return err
					}
					prices = append(prices, fmt.Sprint(p))
				}
				fmt.Fprintln(out, LabelValue(fmt.Sprintf("%-16s", id), strings.Join(prices, " ")))
			}
			p, err := economy.PrestigePrice(c)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, LabelValue(fmt.Sprintf("%-16s", tuning.PrestigeUnlock), p))
			fmt.Fprintln(out, Muted.Render("axe prices start at level 1; others at 0 owned"))
			return nil
		},
	}
	cmd.Flags().IntVarP(&levels, "levels", "n", 10, "number of levels to price")
	return cmd
}

// purchasables lists every scaled purchasable in display order.
func purchasables(c *tuning.Catalog) []tuning.PurchasableID {
	ids := []tuning.PurchasableID{tuning.AxeUpgrade}
	for _, w := range c.Workers() {
		ids = append(ids, w.Purchasable())
	}
	for _, u := range c.Upgrades() {
		ids = append(ids, u.Purchasable())
	}
	return append(ids, tuning.Beer)
}
