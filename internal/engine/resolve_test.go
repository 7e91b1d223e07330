package engine

import (
	"testing"

	"github.com/haedavja/hahahahgo/internal/game"

	"github.com/stretchr/testify/require"
)

func TestResolveDefense_BlockAddsCardValue(t *testing.T) {
	b := newDuel(30, 30)
	b.Player.Block = 3
	bc := newBattleContext(b)
	qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: defenseCard("guard", 12, 0, 1, 2), SP: 2, Snapshot: noCritSnapshot()}

	resolveAction(bc, qa)

	require.Equal(t, 15, b.Player.Block)
	require.Equal(t, 30, b.Enemy.HP)
}

func TestResolveDefense_StrengthRaisesBlock(t *testing.T) {
	b := newDuel(30, 30)
	b.Player.Strength = 4
	bc := newBattleContext(b)
	qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: defenseCard("guard", 12, 0, 1, 2), SP: 2, Snapshot: noCritSnapshot()}

	resolveAction(bc, qa)

	require.Equal(t, 16, b.Player.Block)
}

func TestResolveAttack_FullAbsorbTriggersParry(t *testing.T) {
	b := newDuel(30, 30)
	b.Enemy.Block = 20
	bc := newBattleContext(b)
	qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: attackCard("slash", 15, 1, 2), SP: 2, Snapshot: noCritSnapshot()}

	res := resolveAction(bc, qa)

	require.Equal(t, 0, res.DamageDealt)
	require.Equal(t, 30, b.Enemy.HP)
	require.Equal(t, 5, b.Enemy.Block)
	// Leftover block 5 turns into attacker vulnerability 1 + 5*0.5.
	require.InDelta(t, 3.5, b.Player.VulnMult, 1e-9)
	require.Equal(t, 1, b.Player.VulnTurns)
}

func TestResolveAttack_UsageImmunityConsumedPerNegatedHit(t *testing.T) {
	b := newDuel(30, 30)
	AddToken(b.Enemy.Tokens, TokenImmunity, 1, game.TierUsage)
	bc := newBattleContext(b)
	card := attackCard("slash", 10, 1, 2)
	card.Hits = 2
	qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: card, SP: 2, Snapshot: noCritSnapshot()}

	res := resolveAction(bc, qa)

	// First hit spent the stack, second landed.
	require.Equal(t, 2, res.HitsDone)
	require.Equal(t, 10, res.DamageDealt)
	require.Equal(t, 20, b.Enemy.HP)
	require.Equal(t, 0, GetToken(b.Enemy.Tokens, TokenImmunity))
}

func TestResolveAttack_PermanentImmunityNegatesWithoutConsuming(t *testing.T) {
	b := newDuel(30, 30)
	AddToken(b.Enemy.Tokens, TokenImmunity, 1, game.TierPermanent)
	bc := newBattleContext(b)
	qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: attackCard("slash", 10, 1, 2), SP: 2, Snapshot: noCritSnapshot()}

	res := resolveAction(bc, qa)

	require.Equal(t, 0, res.DamageDealt)
	require.Equal(t, 30, b.Enemy.HP)
	// Timed stacks only tick down at turn end.
	require.Equal(t, 1, GetToken(b.Enemy.Tokens, TokenImmunity))
}

func TestResolveAttack_ZeroDamageSwingDoesNotParry(t *testing.T) {
	b := newDuel(30, 30)
	b.Enemy.Block = 10
	bc := newBattleContext(b)
	qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: attackCard("feint", 0, 1, 2), SP: 2, Snapshot: noCritSnapshot()}

	res := resolveAction(bc, qa)

	// Nothing was absorbed, so the block grants no vulnerability.
	require.Equal(t, 0, res.DamageDealt)
	require.Equal(t, 10, b.Enemy.Block)
	require.InDelta(t, 1.0, b.Player.VulnMult, 1e-9)
	require.Equal(t, 0, b.Player.VulnTurns)
}

func TestResolveAttack_VulnerabilityAmplifiesOnlyRemainder(t *testing.T) {
	b := newDuel(30, 30)
	b.Enemy.Block = 5
	b.Enemy.VulnMult = 2.0
	bc := newBattleContext(b)
	qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: attackCard("slash", 15, 1, 2), SP: 2, Snapshot: noCritSnapshot()}

	res := resolveAction(bc, qa)

	// 5 absorbed, remainder 10 doubled by vulnerability.
	require.Equal(t, 20, res.DamageDealt)
	require.Equal(t, 10, b.Enemy.HP)
	require.Equal(t, 0, b.Enemy.Block)
}

func TestResolveAttack_PierceSkipsBlock(t *testing.T) {
	b := newDuel(30, 30)
	b.Enemy.Block = 50
	bc := newBattleContext(b)
	card := attackCard("lance", 10, 1, 2)
	card.Traits = []string{"pierce"}
	qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: card, SP: 2, Snapshot: noCritSnapshot()}

	res := resolveAction(bc, qa)

	require.Equal(t, 10, res.DamageDealt)
	require.Equal(t, 20, b.Enemy.HP)
	require.Equal(t, 50, b.Enemy.Block)
}

func TestResolveAttack_CounterRetaliates(t *testing.T) {
	b := newDuel(30, 30)
	b.Enemy.Counter = 4
	bc := newBattleContext(b)
	qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: attackCard("slash", 10, 1, 2), SP: 2, Snapshot: noCritSnapshot()}

	res := resolveAction(bc, qa)

	require.Equal(t, 4, res.DamageTaken)
	require.Equal(t, 26, b.Player.HP)
}

func TestResolveAttack_WeakenedAttackerLosesQuarter(t *testing.T) {
	b := newDuel(30, 30)
	AddToken(b.Player.Tokens, TokenWeakened, 1, game.TierPermanent)
	bc := newBattleContext(b)
	qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: attackCard("slash", 10, 1, 2), SP: 2, Snapshot: noCritSnapshot()}

	res := resolveAction(bc, qa)

	require.Equal(t, 7, res.DamageDealt)
	require.Equal(t, 23, b.Enemy.HP)
}

func TestResolveAttack_MultiHitAggregatesIntoOneEvent(t *testing.T) {
	b := newDuel(30, 60)
	bc := newBattleContext(b)
	card := attackCard("flurry", 5, 1, 2)
	card.Hits = 3
	qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: card, SP: 2, Snapshot: noCritSnapshot()}

	res := resolveAction(bc, qa)

	require.Equal(t, 3, res.HitsDone)
	require.Equal(t, 15, res.DamageDealt)
	require.Equal(t, 45, b.Enemy.HP)

	multi := 0
	for _, ev := range res.Events {
		switch ev.Type {
		case game.EventMultiHit:
			multi++
			require.Equal(t, 15, ev.Amount)
			require.Equal(t, 3, ev.Hits)
		case game.EventHit, game.EventBlocked, game.EventPierce:
			t.Fatalf("unexpected per-hit event in multi-hit resolution: %v", ev.Type)
		}
	}
	require.Equal(t, 1, multi)
}

func TestResolveAttack_JamTruncationInvariants(t *testing.T) {
	for seed := int64(1); seed <= 80; seed++ {
		b := newDuel(500, 500)
		b.Seed = seed
		bc := newBattleContext(b)
		card := attackCard("repeater", 1, 1, 2)
		card.Category = game.CategoryFirearm
		card.Hits = 5
		qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: card, SP: 2, Snapshot: noCritSnapshot()}

		res := resolveAction(bc, qa)

		require.Equal(t, 5, res.HitsDone+res.Cancelled, "seed %d", seed)
		require.Equal(t, res.Cancelled > 0, res.Jammed, "seed %d", seed)
		if res.Jammed {
			jams := 0
			for _, ev := range res.Events {
				if ev.Type == game.EventJam {
					jams++
					require.Equal(t, res.Cancelled, ev.Cancelled)
				}
			}
			require.Equal(t, 1, jams, "seed %d", seed)
		}
	}
}

func TestResolveAttack_BladeNeverJams(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		b := newDuel(500, 500)
		b.Seed = seed
		bc := newBattleContext(b)
		card := attackCard("flurry", 1, 1, 2)
		card.Hits = 5
		qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: card, SP: 2, Snapshot: noCritSnapshot()}

		res := resolveAction(bc, qa)

		require.False(t, res.Jammed)
		require.Equal(t, 5, res.HitsDone)
	}
}

func TestResolveAction_MalformedActionDegrades(t *testing.T) {
	b := newDuel(30, 30)
	bc := newBattleContext(b)
	qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: game.Card{}, SP: 2}

	res := resolveAction(bc, qa)

	require.Zero(t, res.DamageDealt)
	require.Zero(t, res.HitsDone)
	require.Equal(t, 30, b.Enemy.HP)
	require.NotEmpty(t, res.Events)
}

func TestResolveAction_EnergyAndEtherBookkeeping(t *testing.T) {
	b := newDuel(30, 30)
	b.Player.Energy = 1
	bc := newBattleContext(b)
	card := attackCard("slash", 5, 3, 2)
	qa := &game.QueuedAction{Actor: game.ActorPlayer, Card: card, SP: 2, Snapshot: noCritSnapshot()}

	resolveAction(bc, qa)

	require.Equal(t, 0, b.Player.Energy)
	require.Equal(t, game.EtherByRarity(game.RarityCommon), b.Turn.PlayerEtherAccum)
	require.Equal(t, 1, b.Player.UsageCounts["slash"])
}

func TestCritChance_ScalesWithEnergyAndCaps(t *testing.T) {
	require.InDelta(t, 0.05, critChance(0), 1e-9)
	require.InDelta(t, 0.25, critChance(10), 1e-9)
	require.InDelta(t, 0.50, critChance(100), 1e-9)
}
