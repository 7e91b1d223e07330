package engine

import (
	"math"

	"github.com/haedavja/hahahahgo/internal/game"
)

// EvaluateOutcome inspects both sides after any hp or ether threshold
// crossing and returns the terminal (or continuing) outcome. It mutates
// state only for the non-terminal branches: revive consumption, soul-break
// stun/weaken markers.
func EvaluateOutcome(bc *battleContext) game.Outcome {
	b := bc.b

	// Victory: immediate on enemy death.
	if !b.Enemy.Alive() {
		bc.add(game.Event{Type: game.EventVictory, Actor: game.ActorEnemy, Message: b.Enemy.Name + " is defeated"})
		return game.OutcomeVictory
	}

	// Defeat, subject to the single-use revive relic.
	if !b.Player.Alive() {
		if b.Player.HasRevive && !b.Player.ReviveUsed {
			b.Player.ReviveUsed = true
			b.Player.HP = int(math.Ceil(float64(b.Player.MaxHP) * game.ReviveFraction))
			bc.add(game.Event{Type: game.EventRevive, Actor: game.ActorPlayer, Amount: b.Player.HP, Message: "revived once"})
		} else {
			bc.add(game.Event{Type: game.EventDefeat, Actor: game.ActorPlayer})
			return game.OutcomeDefeat
		}
	}

	// Soul break: enemy ether depleted while hp remains. An already broken
	// enemy is immune until the marker is cleared externally.
	if b.Enemy.Ether <= 0 && b.Enemy.Alive() && !b.Enemy.SoulBroken {
		return applySoulBreak(bc)
	}
	return game.OutcomeNone
}

func applySoulBreak(bc *battleContext) game.Outcome {
	enemy := bc.b.Enemy
	enemy.SoulBroken = true
	switch enemy.SoulBreakKind {
	case game.SoulBreakDeath:
		// Ether-dependent entities die outright when drained.
		enemy.HP = 0
		bc.add(game.Event{Type: game.EventSoulBreak, Actor: game.ActorEnemy, Message: enemy.Name + "'s soul shatters"})
		bc.add(game.Event{Type: game.EventVictory, Actor: game.ActorEnemy})
		return game.OutcomeVictory
	case game.SoulBreakWeaken:
		enemy.WeakenedTurns = game.WeakenTurns
		AddToken(enemy.Tokens, TokenWeakened, game.WeakenTurns, game.TierPermanent)
		bc.add(game.Event{Type: game.EventSoulBreak, Actor: game.ActorEnemy, Amount: game.WeakenTurns, Message: enemy.Name + " is weakened"})
		return game.OutcomeSoulWeak
	default: // stun
		enemy.StunnedTurns = 1
		bc.add(game.Event{Type: game.EventSoulBreak, Actor: game.ActorEnemy, Amount: 1, Message: enemy.Name + " is stunned"})
		return game.OutcomeSoulStun
	}
}

// terminal reports whether an outcome ends the battle.
func terminal(o game.Outcome) bool {
	return o == game.OutcomeVictory || o == game.OutcomeDefeat
}
