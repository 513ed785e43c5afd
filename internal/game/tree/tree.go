// Package tree models the single tree a player chops and resolves damage into
// harvests, including carry-over of excess damage into freshly spawned trees.
package tree

import "github.com/cory-johannsen/valouniversaire/internal/game/dice"

// Tree is the standing tree of a player.
//
// Invariant: 0 < HP <= MaxHP whenever the tree is observed outside ApplyDamage.
type Tree struct {
	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
}

// Spawn returns a fresh tree with full hit points drawn uniformly from [minHP, maxHP].
//
// Precondition: 1 <= minHP <= maxHP.
func Spawn(src dice.Source, minHP, maxHP int) Tree {
	hp := dice.Between(src, minHP, maxHP)
	return Tree{HP: hp, MaxHP: hp}
}

// Standing reports whether the tree has hit points left.
func (t Tree) Standing() bool { return t.HP > 0 }

// ApplyDamage subtracts amount from the tree. Every time HP reaches zero or
// below, harvest is called once and the tree is replaced by a new one of
// respawn() hit points; damage beyond what felled the previous tree carries
// into the new one. Non-positive amounts are a no-op.
//
// Precondition: respawn returns a value >= 1.
// Postcondition: t.HP is in (0, t.MaxHP]; the return value is the number of harvests.
func (t *Tree) ApplyDamage(amount int, respawn func() int, harvest func()) int {
	if amount <= 0 {
		return 0
	}
	t.HP -= amount
	harvests := 0
	for t.HP <= 0 {
		excess := -t.HP
		harvests++
		if harvest != nil {
			harvest()
		}
		t.MaxHP = respawn()
		t.HP = t.MaxHP
		if excess > 0 {
			t.HP -= excess
		}
	}
	return harvests
}
