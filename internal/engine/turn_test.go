package engine

import (
	"encoding/json"
	"testing"

	"github.com/haedavja/hahahahgo/internal/game"

	"github.com/stretchr/testify/require"
)

func pairOfGuards() []game.Card {
	return []game.Card{
		defenseCard("guard_a", 10, 0, 2, 2),
		defenseCard("guard_b", 10, 0, 2, 2),
	}
}

func TestTurnMachine_SubmitMovesToRespondAndDetectsCombo(t *testing.T) {
	b := newDuel(30, 30)
	m := NewTurnMachine(b, Hooks{})

	err := m.Submit(pairOfGuards(), []game.Card{attackCard("claw", 3, 1, 3)})
	require.NoError(t, err)

	require.Equal(t, game.PhaseRespond, m.Phase())
	require.Equal(t, "Pair", b.Turn.PlayerCombo.Name)
	require.Len(t, b.Turn.Queue, 3)
}

func TestTurnMachine_SubmitRejectsEmptyAndOverBudget(t *testing.T) {
	b := newDuel(30, 30)
	m := NewTurnMachine(b, Hooks{})

	require.ErrorIs(t, m.Submit(nil, nil), ErrEmptySubmission)

	// Action cost above the player's energy.
	expensive := []game.Card{defenseCard("wall", 10, 0, 9, 2)}
	require.ErrorIs(t, m.Submit(expensive, nil), ErrBudgetExceeded)

	// Speed budget blown.
	slow := []game.Card{defenseCard("anchor", 10, 0, 1, 13)}
	require.ErrorIs(t, m.Submit(slow, nil), ErrBudgetExceeded)

	require.Equal(t, game.PhaseSelect, m.Phase())
}

func TestTurnMachine_RewindOncePerTurn(t *testing.T) {
	b := newDuel(30, 30)
	m := NewTurnMachine(b, Hooks{})
	require.NoError(t, m.Submit(pairOfGuards(), nil))

	require.NoError(t, m.Rewind())
	require.Equal(t, game.PhaseSelect, m.Phase())
	require.Len(t, b.Turn.Submitted, 2)

	require.NoError(t, m.Submit(pairOfGuards(), nil))
	require.ErrorIs(t, m.Rewind(), ErrRewindUsed)
}

func TestTurnMachine_BeginResolveRejectsEmptyOrder(t *testing.T) {
	b := newDuel(30, 30)
	m := NewTurnMachine(b, Hooks{})
	require.NoError(t, m.Submit(pairOfGuards(), nil))

	for i := range b.Turn.Queue {
		b.Turn.Queue[i].Destroyed = true
	}

	require.ErrorIs(t, m.BeginResolve(), ErrNothingToExecute)
	require.Equal(t, game.PhaseRespond, m.Phase())
}

func TestTurnMachine_FullDefensiveTurnSettlesEther(t *testing.T) {
	b := newDuel(30, 30)
	m := NewTurnMachine(b, Hooks{})

	require.NoError(t, m.Submit(pairOfGuards(), nil))
	require.NoError(t, m.BeginResolve())

	outcome, err := m.RunToEnd()
	require.NoError(t, err)
	require.Equal(t, game.OutcomeNone, outcome)
	require.Equal(t, game.PhasePost, m.Phase())

	// Two common cards accumulate 20 ether; a pair of cost-2 cards settles
	// at 50, drained from the enemy pool.
	require.Equal(t, 50, b.Player.Ether)
	require.Equal(t, 50, b.Enemy.Ether)
	require.Equal(t, 1, b.Player.ComboUsage[b.Turn.PlayerCombo.Key])

	// Block does not survive the turn without a retain token.
	require.Equal(t, 0, b.Player.Block)

	require.NoError(t, m.NextTurn())
	require.Equal(t, game.PhaseSelect, m.Phase())
	require.Equal(t, 2, b.Turn.Number)
	require.Equal(t, b.Player.MaxEnergy, b.Player.Energy)
}

func TestTurnMachine_RetainBlockTokenPreservesBlock(t *testing.T) {
	b := newDuel(30, 30)
	AddToken(b.Player.Tokens, TokenRetainBlock, 1, game.TierTurn)
	m := NewTurnMachine(b, Hooks{})

	require.NoError(t, m.Submit(pairOfGuards(), nil))
	require.NoError(t, m.BeginResolve())
	_, err := m.RunToEnd()
	require.NoError(t, err)

	require.Equal(t, 20, b.Player.Block)
	// The token itself was turn-tier and is gone now.
	require.Equal(t, 0, GetToken(b.Player.Tokens, TokenRetainBlock))
}

func TestTurnMachine_SoulBreakStunsEnemyAndVoidsNextPlan(t *testing.T) {
	b := newDuel(30, 30)
	b.Enemy.Ether = 30
	b.Enemy.SoulBreakKind = game.SoulBreakStun
	m := NewTurnMachine(b, Hooks{})

	require.NoError(t, m.Submit(pairOfGuards(), nil))
	require.NoError(t, m.BeginResolve())
	_, err := m.RunToEnd()
	require.NoError(t, err)

	require.Equal(t, 0, b.Enemy.Ether)
	require.True(t, b.Enemy.SoulBroken)
	require.Equal(t, 1, b.Enemy.StunnedTurns)

	require.NoError(t, m.NextTurn())
	require.NoError(t, m.Submit(pairOfGuards(), []game.Card{attackCard("claw", 3, 1, 3)}))

	// A stunned enemy loses its plan for the turn.
	require.Empty(t, b.Turn.EnemyPlan)
	require.Len(t, b.Turn.Queue, 2)
}

func TestTurnMachine_CreateCardPausesUntilChoice(t *testing.T) {
	b := newDuel(30, 30)
	m := NewTurnMachine(b, Hooks{})

	summon := defenseCard("summon", 2, 0, 1, 2)
	summon.Effect = game.EffectCreateCard
	summon.Params = game.EffectParams{Candidates: []string{"bolt"}, SpeedDelta: 1}

	require.NoError(t, m.Submit([]game.Card{summon, defenseCard("guard", 5, 0, 1, 6)}, nil))
	require.NoError(t, m.BeginResolve())

	sr, err := m.Step()
	require.NoError(t, err)
	require.True(t, sr.Waiting)
	require.NotNil(t, b.PendingChoice)

	// The cursor refuses to advance while the choice is outstanding.
	_, err = m.Step()
	require.ErrorIs(t, err, ErrChoicePending)

	require.ErrorIs(t, m.ResolveChoice("nope", nil), ErrInvalidChoice)

	lookup := func(id string) (game.Card, bool) {
		if id != "bolt" {
			return game.Card{}, false
		}
		return defenseCard("bolt", 4, 0, 0, 1), true
	}
	require.NoError(t, m.ResolveChoice("bolt", lookup))
	require.Nil(t, b.PendingChoice)
	require.Len(t, b.Turn.Queue, 3)

	_, err = m.RunToEnd()
	require.NoError(t, err)
	// The ephemeral bolt resolved alongside the submitted cards.
	require.Equal(t, 1, b.Player.UsageCounts["bolt"])
}

func TestTurnMachine_DestroyedActionsAreSkipped(t *testing.T) {
	b := newDuel(30, 30)
	m := NewTurnMachine(b, Hooks{})

	require.NoError(t, m.Submit(pairOfGuards(), nil))
	b.Turn.Queue[1].Destroyed = true
	require.NoError(t, m.BeginResolve())

	_, err := m.RunToEnd()
	require.NoError(t, err)

	require.Equal(t, 10, b.Turn.FixedOrder[0].Card.Block)
	require.Equal(t, 1, b.Player.UsageCounts["guard_a"])
	require.Equal(t, 0, b.Player.UsageCounts["guard_b"])
}

func TestTurnMachine_QueueRecoveredFromFixedOrder(t *testing.T) {
	b := newDuel(30, 30)
	m := NewTurnMachine(b, Hooks{})

	require.NoError(t, m.Submit(pairOfGuards(), nil))
	require.NoError(t, m.BeginResolve())

	// Simulate a partial state update wiping the live queue.
	b.Turn.Queue = nil
	b.Turn.QIndex = 0

	_, err := m.RunToEnd()
	require.NoError(t, err)
	require.Equal(t, 1, b.Player.UsageCounts["guard_a"])
	require.Equal(t, 1, b.Player.UsageCounts["guard_b"])
}

func TestTurnMachine_NextTurnEnergyBonusCarries(t *testing.T) {
	b := newDuel(30, 30)
	m := NewTurnMachine(b, Hooks{})

	focus := defenseCard("focus", 0, 0, 1, 2)
	focus.Effect = game.EffectNextTurnEnergy
	focus.Params = game.EffectParams{Amount: 2}

	require.NoError(t, m.Submit([]game.Card{focus, defenseCard("guard", 5, 0, 1, 3)}, nil))
	require.NoError(t, m.BeginResolve())
	_, err := m.RunToEnd()
	require.NoError(t, err)
	require.Equal(t, 2, b.Turn.NextEffects.BonusEnergy)

	require.NoError(t, m.NextTurn())
	require.Equal(t, b.Player.MaxEnergy+2, b.Player.Energy)
}

func TestTurnMachine_EnemyDeathEndsTurnEarly(t *testing.T) {
	b := newDuel(30, 1)
	m := NewTurnMachine(b, Hooks{})
	victories := 0
	m.hooks = Hooks{OnVictory: func(_, _ game.Combatant) { victories++ }}

	require.NoError(t, m.Submit([]game.Card{attackCard("slash", 10, 1, 2), defenseCard("guard", 5, 0, 1, 3)}, nil))
	require.NoError(t, m.BeginResolve())

	sr, err := m.Step()
	require.NoError(t, err)
	require.True(t, sr.Done)
	require.Equal(t, game.OutcomeVictory, sr.Outcome)
	require.Equal(t, game.PhasePost, m.Phase())
	require.Equal(t, 1, victories)

	require.ErrorIs(t, m.NextTurn(), ErrBattleOver)
}

func TestTurnMachine_ReviveSavesPlayerOnce(t *testing.T) {
	b := newDuel(5, 100)
	b.Player.HasRevive = true
	m := NewTurnMachine(b, Hooks{})

	require.NoError(t, m.Submit([]game.Card{defenseCard("guard", 0, 0, 1, 2)}, []game.Card{attackCard("smash", 40, 1, 3)}))
	require.NoError(t, m.BeginResolve())

	outcome, err := m.RunToEnd()
	require.NoError(t, err)
	require.Equal(t, game.OutcomeNone, outcome)
	require.True(t, b.Player.ReviveUsed)
	require.Equal(t, 2, b.Player.HP)
}

func TestTurnMachine_RunsOnStateReloadedFromJSON(t *testing.T) {
	// Empty maps are dropped by omitempty on marshal, so a battle loaded
	// from storage arrives with them nil.
	raw, err := json.Marshal(newDuel(30, 30))
	require.NoError(t, err)
	var b game.BattleState
	require.NoError(t, json.Unmarshal(raw, &b))
	require.Nil(t, b.Player.ComboUsage)
	require.Nil(t, b.Player.Tokens)

	m := NewTurnMachine(&b, Hooks{})
	require.NoError(t, m.Submit(pairOfGuards(), nil))
	require.NoError(t, m.BeginResolve())
	_, err = m.RunToEnd()
	require.NoError(t, err)

	require.Equal(t, 1, b.Player.ComboUsage[b.Turn.PlayerCombo.Key])
}

func TestTurnMachine_TokenGrantOnReloadedState(t *testing.T) {
	raw, err := json.Marshal(newDuel(30, 30))
	require.NoError(t, err)
	var b game.BattleState
	require.NoError(t, json.Unmarshal(raw, &b))

	ward := defenseCard("ward", 5, 0, 1, 2)
	ward.Effect = game.EffectGrantToken
	ward.Params = game.EffectParams{
		TokenID: TokenRetainBlock,
		Stacks:  1,
		Tier:    game.TierTurn,
		Target:  game.TargetSelf,
	}

	m := NewTurnMachine(&b, Hooks{})
	require.NoError(t, m.Submit([]game.Card{ward}, nil))
	require.NoError(t, m.BeginResolve())
	_, err = m.RunToEnd()
	require.NoError(t, err)

	// The grant landed in a rehydrated store and retained the block.
	require.Equal(t, 5, b.Player.Block)
}
