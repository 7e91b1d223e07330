package engine

import (
	"sort"

	"github.com/haedavja/hahahahgo/internal/game"
)

// effectiveSpeed applies the actor's agility modifier to one speed cost.
// Each agility point shaves 5% off the cost, floored at 10% of the base so
// extreme agility never produces a zero or negative cost.
func effectiveSpeed(cost, agility int) float64 {
	adj := float64(cost) * (1 - game.AgilitySpeedFactor*float64(agility))
	if min := float64(cost) * game.MinSpeedFraction; adj < min {
		return min
	}
	return adj
}

// BuildQueue merges two actor-ordered card lists into a single initiative
// queue sorted by ascending cumulative speed. Each actor's list is
// pre-summed independently: card i sits at the sum of that actor's own
// adjusted costs through index i. Ties resolve player-first, then preserve
// submission order (stable sort), so re-invoking with the same input yields
// the same queue.
func BuildQueue(playerCards, enemyCards []game.Card, playerAgility, enemyAgility int) []game.QueuedAction {
	queue := make([]game.QueuedAction, 0, len(playerCards)+len(enemyCards))

	sp := 0.0
	for _, c := range playerCards {
		sp += effectiveSpeed(c.SpeedCost, playerAgility)
		queue = append(queue, game.QueuedAction{Actor: game.ActorPlayer, Card: c, SP: sp})
	}
	sp = 0.0
	for _, c := range enemyCards {
		sp += effectiveSpeed(c.SpeedCost, enemyAgility)
		queue = append(queue, game.QueuedAction{Actor: game.ActorEnemy, Card: c, SP: sp})
	}

	stableSortQueue(queue)
	return queue
}

// stableSortQueue orders by ascending SP; at equal positions a player action
// precedes an enemy action, and same-actor ties keep submission order
// through sort stability.
func stableSortQueue(queue []game.QueuedAction) {
	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].SP != queue[j].SP {
			return queue[i].SP < queue[j].SP
		}
		return queue[i].Actor == game.ActorPlayer && queue[j].Actor == game.ActorEnemy
	})
}

// cloneQueue copies a queue so the fixed order survives live-queue mutation.
func cloneQueue(q []game.QueuedAction) []game.QueuedAction {
	out := make([]game.QueuedAction, len(q))
	copy(out, q)
	return out
}

// insertQueued places an action into the live queue keeping SP order, after
// any existing entries at the same position.
func insertQueued(queue []game.QueuedAction, qa game.QueuedAction, from int) []game.QueuedAction {
	pos := len(queue)
	for i := from; i < len(queue); i++ {
		if queue[i].SP > qa.SP {
			pos = i
			break
		}
	}
	queue = append(queue, game.QueuedAction{})
	copy(queue[pos+1:], queue[pos:])
	queue[pos] = qa
	return queue
}
