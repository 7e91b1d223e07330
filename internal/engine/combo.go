package engine

import (
	"math"

	"github.com/haedavja/hahahahgo/internal/game"
	"github.com/haedavja/hahahahgo/internal/keys"
)

// Combo shapes in precedence order. Evaluation is top-down with early
// return, so a hand that is both a four-of-a-kind and a flush reads as the
// four.
var comboTable = []game.Combo{
	{Name: "Five of a Kind", Rank: 8, Multiplier: 5.0},
	{Name: "Four of a Kind", Rank: 7, Multiplier: 4.0},
	{Name: "Full House", Rank: 6, Multiplier: 3.5},
	{Name: "Flush", Rank: 5, Multiplier: 3.0},
	{Name: "Two Pair", Rank: 4, Multiplier: 2.5},
	{Name: "Triple", Rank: 3, Multiplier: 2.0},
	{Name: "Pair", Rank: 2, Multiplier: 1.5},
	{Name: "None", Rank: 0, Multiplier: 1.0},
}

func comboByName(name string) game.Combo {
	for _, c := range comboTable {
		if c.Name == name {
			c.Key = keys.ComboKey(c.Name)
			return c
		}
	}
	c := comboTable[len(comboTable)-1]
	c.Key = keys.ComboKey(c.Name)
	return c
}

// DetectCombo classifies the shape of a submitted hand from the multiset of
// its action costs, plus the uniform-type flush which requires at least four
// cards of one type regardless of cost repetition.
func DetectCombo(cards []game.Card) game.Combo {
	freq := map[int]int{}
	for _, c := range cards {
		freq[c.ActionCost]++
	}
	pairs, triples := 0, 0
	maxCount := 0
	for _, n := range freq {
		if n > maxCount {
			maxCount = n
		}
		if n >= 3 {
			triples++
		}
		if n >= 2 {
			pairs++
		}
	}

	flush := false
	if len(cards) >= 4 {
		flush = true
		for _, c := range cards {
			if c.Type != cards[0].Type {
				flush = false
				break
			}
		}
	}

	switch {
	case maxCount >= 5:
		return comboByName("Five of a Kind")
	case maxCount >= 4:
		return comboByName("Four of a Kind")
	case triples >= 1 && pairs >= 2:
		return comboByName("Full House")
	case flush:
		return comboByName("Flush")
	case pairs >= 2:
		return comboByName("Two Pair")
	case triples >= 1:
		return comboByName("Triple")
	case pairs >= 1:
		return comboByName("Pair")
	default:
		return comboByName("None")
	}
}

// CostBonus returns the action-cost multiplier bonus: +0.5 per cost point
// above 1 across all submitted cards.
func CostBonus(cards []game.Card) float64 {
	bonus := 0.0
	for _, c := range cards {
		if c.ActionCost > 1 {
			bonus += game.CostBonusPerPoint * float64(c.ActionCost-1)
		}
	}
	return bonus
}

// ApplyDeflation passes a settled ether amount through exponential decay
// driven by the combo's historical use count. usage 0 returns the amount
// unchanged; each repeat yields 80% of the previous.
func ApplyDeflation(amount int, usage int) int {
	if usage <= 0 {
		return amount
	}
	return int(math.Round(float64(amount) * math.Pow(game.EtherDecayRate, float64(usage))))
}

// SettleEther computes one side's final turn gain: accumulator times
// (combo multiplier + cost bonus), then deflation.
func SettleEther(accum int, combo game.Combo, costBonus float64, usage int) int {
	pre := int(math.Round(float64(accum) * (combo.Multiplier + costBonus)))
	return ApplyDeflation(pre, usage)
}

// TransferEther moves the turn's net ether between the pools. The flow is
// asymmetric: enemy gains are never debited from the player, while player
// gains come out of the enemy's pool capped at what it holds. A dead enemy
// forfeits its entire remaining pool regardless of the net sign.
func TransferEther(player, enemy *game.Combatant, playerGain, enemyGain int) {
	if !enemy.Alive() {
		player.Ether += enemy.Ether
		enemy.Ether = 0
		return
	}
	net := playerGain - enemyGain
	switch {
	case net > 0:
		take := net
		if take > enemy.Ether {
			take = enemy.Ether
		}
		enemy.Ether -= take
		player.Ether += take
	case net < 0:
		enemy.Ether += -net
	}
}
