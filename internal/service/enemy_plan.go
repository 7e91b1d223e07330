package service

import (
	"fmt"
	"math/rand"

	"github.com/haedavja/hahahahgo/internal/catalog"
	"github.com/haedavja/hahahahgo/internal/dedupe"
	"github.com/haedavja/hahahahgo/internal/game"
	"github.com/haedavja/hahahahgo/internal/keys"
	"github.com/haedavja/hahahahgo/internal/logging"
)

// BuildEnemyPlan computes the enemy's card sequence for the current turn.
// Plans are deterministic per battle and turn, and concurrent requests for
// the same turn collapse into a single computation.
func BuildEnemyPlan(cat *catalog.Catalog, b *game.Battle) ([]game.Card, error) {
	key := fmt.Sprintf("%s:%d", b.BattleUUID, b.State.Turn.Number)
	v, err, _ := dedupe.PlanGroup.Do(key, func() (interface{}, error) {
		return planForTurn(cat, b), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]game.Card), nil
}

// planForTurn greedily fills the enemy's budgets from a seeded shuffle of
// its deck. Same-cost cards drift into adjacent picks so enemy hands form
// combo shapes often enough to pressure the ether race.
func planForTurn(cat *catalog.Catalog, b *game.Battle) []game.Card {
	enemy := b.State.Enemy
	entry, ok := cat.EnemyByID(b.EnemyID)
	if !ok || enemy == nil || enemy.StunnedTurns > 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(b.State.Seed ^ int64(b.State.Turn.Number)<<24))

	deck := cat.DeckCards(entry.Deck)
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	plan := make([]game.Card, 0, game.MaxSubmitCards)
	energy := enemy.Energy
	speed := 0
	costSeen := map[int]bool{}
	picked := make([]bool, len(deck))

	// First pass prefers repeating an already-picked cost to chase pairs.
	for pass := 0; pass < 2 && len(plan) < game.MaxSubmitCards; pass++ {
		for i, card := range deck {
			if len(plan) >= game.MaxSubmitCards {
				break
			}
			if picked[i] || card.ActionCost > energy || speed+card.SpeedCost > game.MaxTurnSpeed {
				continue
			}
			if pass == 0 && len(plan) > 0 && !costSeen[card.ActionCost] {
				continue
			}
			picked[i] = true
			plan = append(plan, card)
			energy -= card.ActionCost
			speed += card.SpeedCost
			costSeen[card.ActionCost] = true
		}
	}

	costs := make([]int, 0, len(plan))
	for _, card := range plan {
		costs = append(costs, card.ActionCost)
	}
	logging.Info("enemy plan built", logging.Fields{
		"battle_id":  b.BattleUUID,
		"turn":       b.State.Turn.Number,
		"plan_shape": keys.CostKey(costs),
	})
	return plan
}
