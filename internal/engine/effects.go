package engine

import (
	"github.com/haedavja/hahahahgo/internal/game"
)

// effectFunc applies one special-effect kind after a card resolves.
type effectFunc func(bc *battleContext, qa *game.QueuedAction, res *ResolveResult)

// effectTable is the single dispatch point for card special effects. Keeping
// the set closed here means an unknown tag is a config validation failure,
// not a silent no-op at resolution time.
var effectTable = map[game.EffectKind]effectFunc{
	game.EffectExtraHit:       effectExtraHit,
	game.EffectGrantToken:     effectGrantToken,
	game.EffectRemoveToken:    effectRemoveToken,
	game.EffectCreateCard:     effectCreateCard,
	game.EffectQueuePush:      effectQueuePush,
	game.EffectQueueAdvance:   effectQueueAdvance,
	game.EffectStunRange:      effectStunRange,
	game.EffectNextTurnEnergy: effectNextTurnEnergy,
	game.EffectNextTurnCard:   effectNextTurnCard,
	game.EffectEtherBlock:     effectEtherBlock,
	game.EffectGraceDrain:     effectGraceDrain,
}

// KnownEffect reports whether the tag is resolvable. Used by catalog
// validation.
func KnownEffect(kind game.EffectKind) bool {
	if kind == game.EffectNone {
		return true
	}
	_, ok := effectTable[kind]
	return ok
}

func applyCardEffect(bc *battleContext, qa *game.QueuedAction, res *ResolveResult) {
	if qa.Card.Effect == game.EffectNone {
		return
	}
	fn, ok := effectTable[qa.Card.Effect]
	if !ok {
		bc.info("unknown effect tag: " + string(qa.Card.Effect))
		return
	}
	fn(bc, qa, res)
}

// effectExtraHit resolves one additional attack hit with the same card.
func effectExtraHit(bc *battleContext, qa *game.QueuedAction, res *ResolveResult) {
	if qa.Card.Type != game.CardAttack || res.Jammed {
		return
	}
	defender := bc.opponent(qa.Actor)
	if !defender.Alive() {
		return
	}
	extra := *qa
	extra.Card.Hits = 1
	extra.Card.Effect = game.EffectNone
	sub := ResolveResult{}
	resolveAttack(bc, bc.combatant(qa.Actor), defender, &extra, &sub)
	res.DamageDealt += sub.DamageDealt
	res.DamageTaken += sub.DamageTaken
	res.HitsDone += sub.HitsDone
	res.Crits += sub.Crits
	bc.add(game.Event{Type: game.EventSpecial, Actor: qa.Actor, Card: qa.Card.ID, Message: "extra hit"})
}

func effectTarget(bc *battleContext, qa *game.QueuedAction) *game.Combatant {
	if qa.Card.Params.Target == game.TargetOpponent {
		return bc.opponent(qa.Actor)
	}
	return bc.combatant(qa.Actor)
}

func effectGrantToken(bc *battleContext, qa *game.QueuedAction, _ *ResolveResult) {
	p := qa.Card.Params
	if p.TokenID == "" || p.Stacks <= 0 {
		bc.info("grant_token effect missing token parameters")
		return
	}
	tier := p.Tier
	if tier == "" {
		tier = game.TierTurn
	}
	target := effectTarget(bc, qa)
	AddToken(target.Tokens, p.TokenID, p.Stacks, tier)
	bc.add(game.Event{Type: game.EventToken, Actor: qa.Actor, Card: qa.Card.ID, Token: p.TokenID, Stacks: p.Stacks})
}

func effectRemoveToken(bc *battleContext, qa *game.QueuedAction, _ *ResolveResult) {
	p := qa.Card.Params
	if p.TokenID == "" {
		bc.info("remove_token effect missing token id")
		return
	}
	tier := p.Tier
	if tier == "" {
		tier = game.TierTurn
	}
	stacks := p.Stacks
	if stacks <= 0 {
		stacks = GetTokenTier(effectTarget(bc, qa).Tokens, p.TokenID, tier)
	}
	target := effectTarget(bc, qa)
	RemoveToken(target.Tokens, p.TokenID, tier, stacks)
	bc.add(game.Event{Type: game.EventToken, Actor: qa.Actor, Card: qa.Card.ID, Token: p.TokenID, Stacks: -stacks})
}

// effectCreateCard pauses resolution with a pending choice. The live queue
// does not advance until ResolveChoice supplies a selection, which injects
// an ephemeral card instance at the computed speed offset.
func effectCreateCard(bc *battleContext, qa *game.QueuedAction, _ *ResolveResult) {
	p := qa.Card.Params
	if len(p.Candidates) == 0 {
		bc.info("create_card effect with no candidates")
		return
	}
	bc.b.PendingChoice = &game.ChoiceRequest{
		SourceCardID: qa.Card.ID,
		Candidates:   append([]string(nil), p.Candidates...),
		InsertSP:     qa.SP + p.SpeedDelta,
		Actor:        qa.Actor,
	}
	bc.add(game.Event{Type: game.EventSpecial, Actor: qa.Actor, Card: qa.Card.ID, Message: "awaiting card choice"})
}

// effectQueuePush delays the opponent's remaining queued actions by the
// configured speed delta.
func effectQueuePush(bc *battleContext, qa *game.QueuedAction, _ *ResolveResult) {
	delta := qa.Card.Params.SpeedDelta
	if delta == 0 {
		return
	}
	opp := opposite(qa.Actor)
	t := &bc.b.Turn
	for i := t.QIndex + 1; i < len(t.Queue); i++ {
		if t.Queue[i].Actor == opp {
			t.Queue[i].SP += delta
		}
	}
	reorderRemaining(t)
	bc.add(game.Event{Type: game.EventSpecial, Actor: qa.Actor, Card: qa.Card.ID, Message: "pushed enemy timeline"})
}

// effectQueueAdvance pulls the actor's own remaining actions forward.
func effectQueueAdvance(bc *battleContext, qa *game.QueuedAction, _ *ResolveResult) {
	delta := qa.Card.Params.SpeedDelta
	if delta == 0 {
		return
	}
	t := &bc.b.Turn
	cur := qa.SP
	for i := t.QIndex + 1; i < len(t.Queue); i++ {
		if t.Queue[i].Actor == qa.Actor {
			t.Queue[i].SP -= delta
			if t.Queue[i].SP < cur {
				t.Queue[i].SP = cur
			}
		}
	}
	reorderRemaining(t)
	bc.add(game.Event{Type: game.EventSpecial, Actor: qa.Actor, Card: qa.Card.ID, Message: "advanced own timeline"})
}

// effectStunRange destroys queued enemy actions within a speed range past
// the current position.
func effectStunRange(bc *battleContext, qa *game.QueuedAction, _ *ResolveResult) {
	rng := qa.Card.Params.SpeedRange
	if rng <= 0 {
		return
	}
	opp := opposite(qa.Actor)
	t := &bc.b.Turn
	destroyed := 0
	for i := t.QIndex + 1; i < len(t.Queue); i++ {
		a := &t.Queue[i]
		if a.Actor == opp && !a.Destroyed && a.SP >= qa.SP && a.SP <= qa.SP+rng {
			a.Destroyed = true
			destroyed++
		}
	}
	if destroyed > 0 {
		bc.add(game.Event{Type: game.EventSpecial, Actor: qa.Actor, Card: qa.Card.ID, Amount: destroyed, Message: "stunned queued actions"})
	}
}

func effectNextTurnEnergy(bc *battleContext, qa *game.QueuedAction, _ *ResolveResult) {
	n := qa.Card.Params.Amount
	if n <= 0 {
		return
	}
	bc.b.Turn.NextEffects.BonusEnergy += n
	bc.add(game.Event{Type: game.EventSpecial, Actor: qa.Actor, Card: qa.Card.ID, Amount: n, Message: "bonus energy next turn"})
}

func effectNextTurnCard(bc *battleContext, qa *game.QueuedAction, _ *ResolveResult) {
	p := qa.Card.Params
	if len(p.Candidates) == 0 {
		return
	}
	bc.b.Turn.NextEffects.GuaranteedCards = append(bc.b.Turn.NextEffects.GuaranteedCards, p.Candidates...)
	bc.add(game.Event{Type: game.EventSpecial, Actor: qa.Actor, Card: qa.Card.ID, Message: "guaranteed draw next turn"})
}

func effectEtherBlock(bc *battleContext, qa *game.QueuedAction, _ *ResolveResult) {
	bc.b.Turn.NextEffects.EtherBlocked = true
	bc.add(game.Event{Type: game.EventSpecial, Actor: qa.Actor, Card: qa.Card.ID, Message: "ether gains blocked next turn"})
}

// effectGraceDrain burns the enemy's grace sub-resource, independent of its
// ether pool.
func effectGraceDrain(bc *battleContext, qa *game.QueuedAction, _ *ResolveResult) {
	n := qa.Card.Params.Amount
	if n <= 0 {
		return
	}
	enemy := bc.b.Enemy
	enemy.Grace -= n
	if enemy.Grace < 0 {
		enemy.Grace = 0
	}
	bc.add(game.Event{Type: game.EventSpecial, Actor: qa.Actor, Card: qa.Card.ID, Amount: n, Message: "drained grace"})
}

// reorderRemaining re-sorts the unresolved tail of the queue after a speed
// mutation, preserving the player-first tie-break.
func reorderRemaining(t *game.TurnState) {
	from := t.QIndex + 1
	if from >= len(t.Queue) {
		return
	}
	tail := t.Queue[from:]
	stableSortQueue(tail)
}
