package engine

import (
	"github.com/haedavja/hahahahgo/internal/game"
)

func attackCard(id string, damage, actionCost, speedCost int) game.Card {
	return game.Card{
		ID:         id,
		Name:       id,
		Type:       game.CardAttack,
		Damage:     damage,
		ActionCost: actionCost,
		SpeedCost:  speedCost,
		Rarity:     game.RarityCommon,
		Category:   game.CategoryBlade,
	}
}

func defenseCard(id string, block, counter, actionCost, speedCost int) game.Card {
	return game.Card{
		ID:         id,
		Name:       id,
		Type:       game.CardDefense,
		Block:      block,
		Counter:    counter,
		ActionCost: actionCost,
		SpeedCost:  speedCost,
		Rarity:     game.RarityCommon,
	}
}

// newDuel builds a minimal two-sided battle with generous ether pools so
// resolution tests do not trip the soul-break threshold by accident.
func newDuel(playerHP, enemyHP int) *game.BattleState {
	player := game.NewCombatant("hero", playerHP, 5, 0)
	enemy := game.NewCombatant("wraith", enemyHP, 3, 0)
	enemy.Ether = 100
	return &game.BattleState{
		Player: player,
		Enemy:  enemy,
		Phase:  game.PhaseSelect,
		Turn:   game.TurnState{Number: 1},
		Seed:   7,
	}
}

// noCritSnapshot drives the crit chance below zero so damage assertions stay
// exact regardless of the rng stream.
func noCritSnapshot() *game.ActionSnapshot {
	return &game.ActionSnapshot{RemainingEnergy: -10, CategoryUsage: map[string]int{}}
}
