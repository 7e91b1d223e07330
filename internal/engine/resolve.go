package engine

import (
	"math"

	"github.com/haedavja/hahahahgo/internal/game"

	"go.uber.org/zap"
)

// ResolveResult reports what one queued action did.
type ResolveResult struct {
	Events      []game.Event
	DamageDealt int
	DamageTaken int
	HitsDone    int
	Crits       int
	Jammed      bool
	Cancelled   int
}

const traitPierce = "pierce"

// resolveAction applies a single queued action to combatant state. Malformed
// actions degrade to a zero-effect result plus a diagnostic log line; a bad
// action must not corrupt the rest of the queue.
func resolveAction(bc *battleContext, qa *game.QueuedAction) ResolveResult {
	res := ResolveResult{}
	if qa == nil || qa.Card.ID == "" || (qa.Actor != game.ActorPlayer && qa.Actor != game.ActorEnemy) {
		bc.info("skipping malformed action")
		bc.log.Warn("malformed queued action", zap.Any("action", qa))
		res.Events = bc.flush()
		return res
	}

	actor := bc.combatant(qa.Actor)
	defender := bc.opponent(qa.Actor)
	if actor == nil || defender == nil {
		bc.info("skipping action without combatants")
		res.Events = bc.flush()
		return res
	}

	// The snapshot is computed now, not at queue-build time, because earlier
	// actions in this queue have already mutated energy and usage history.
	if qa.Snapshot == nil {
		qa.Snapshot = buildSnapshot(bc, qa.Actor)
	}

	switch qa.Card.Type {
	case game.CardDefense:
		resolveDefense(bc, actor, qa, &res)
	case game.CardAttack:
		resolveAttack(bc, actor, defender, qa, &res)
	default:
		bc.info("unknown card type: " + string(qa.Card.Type))
		res.Events = bc.flush()
		return res
	}

	// Spend energy and record usage history after the hits land.
	actor.Energy -= qa.Card.ActionCost
	if actor.Energy < 0 {
		actor.Energy = 0
	}
	if actor.UsageCounts != nil {
		actor.UsageCounts[qa.Card.ID]++
	}
	if qa.Snapshot.CategoryUsage != nil && qa.Card.Category != game.CategoryNone {
		qa.Snapshot.CategoryUsage[string(qa.Card.Category)]++
	}

	// Ether accrual: every resolved attack/defense card feeds the per-turn
	// accumulator at its rarity-indexed base value.
	gain := game.EtherByRarity(qa.Card.Rarity)
	if qa.Actor == game.ActorPlayer {
		bc.b.Turn.PlayerEtherAccum += gain
	} else {
		bc.b.Turn.EnemyEtherAccum += gain
	}

	// Post-resolution hooks may add hits, grant tokens, create cards or
	// mutate the queue itself.
	applyCardEffect(bc, qa, &res)

	bc.log.Info("action resolved",
		zap.String("actor", string(qa.Actor)),
		zap.String("card", qa.Card.ID),
		zap.Int("hits", res.HitsDone),
		zap.Int("crits", res.Crits),
		zap.Int("damage_dealt", res.DamageDealt),
		zap.Int("damage_taken", res.DamageTaken),
		zap.Bool("jammed", res.Jammed))

	res.Events = bc.flush()
	return res
}

func buildSnapshot(bc *battleContext, tag game.ActorTag) *game.ActionSnapshot {
	actor := bc.combatant(tag)
	usage := map[string]int{}
	for i := 0; i < bc.b.Turn.QIndex && i < len(bc.b.Turn.Queue); i++ {
		prev := bc.b.Turn.Queue[i]
		if prev.Actor == tag && prev.Card.Category != game.CategoryNone {
			usage[string(prev.Card.Category)]++
		}
	}
	return &game.ActionSnapshot{RemainingEnergy: actor.Energy, CategoryUsage: usage}
}

// resolveDefense adds block (and optionally counter) to the actor. No
// target-side mutation happens here.
func resolveDefense(bc *battleContext, actor *game.Combatant, qa *game.QueuedAction, res *ResolveResult) {
	gained := qa.Card.Block + actor.Strength
	if gained < 0 {
		gained = 0
	}
	actor.Block += gained
	if qa.Card.Counter > 0 {
		actor.Counter = qa.Card.Counter
	}
	bc.add(game.Event{
		Type:   game.EventDefense,
		Actor:  qa.Actor,
		Card:   qa.Card.ID,
		Amount: gained,
	})
}

// critChance weights the roll by the attacker's remaining energy at
// resolution time.
func critChance(remainingEnergy int) float64 {
	ch := game.CritBaseChance + game.CritChancePerEnergy*float64(remainingEnergy)
	if ch > game.CritChanceCap {
		ch = game.CritChanceCap
	}
	return ch
}

// resolveAttack runs the per-hit pipeline: strength and crit modifiers
// first, block absorption next, vulnerability amplifying only the remainder
// that passed block. Multi-hit cards roll an independent crit on every hit
// and aggregate into a single event; firearm cards roll a jam check after
// each hit and a jam truncates the rest of the sequence outright.
func resolveAttack(bc *battleContext, actor, defender *game.Combatant, qa *game.QueuedAction, res *ResolveResult) {
	card := qa.Card
	totalHits := card.HitCount()
	multi := totalHits > 1
	chance := critChance(qa.Snapshot.RemainingEnergy)

	hpBefore := defender.HP
	totalDamage := 0
	totalAbsorbed := 0

	for hit := 0; hit < totalHits; hit++ {
		if !defender.Alive() {
			break
		}

		if GetToken(defender.Tokens, TokenImmunity) > 0 {
			// Usage-tier immunity spends one stack per negated hit; a timed
			// permanent stack negates the whole sequence and ticks down at
			// turn end instead.
			ConsumeToken(defender.Tokens, TokenImmunity)
			res.HitsDone++
			if !multi {
				bc.add(game.Event{
					Type:    game.EventSpecial,
					Actor:   opposite(qa.Actor),
					Card:    card.ID,
					Token:   TokenImmunity,
					Message: defender.Name + " negates the hit",
				})
			}
			continue
		}

		dmg := card.Damage + actor.Strength
		if dmg < 0 {
			dmg = 0
		}
		crit := bc.rng.Float64() < chance
		if crit {
			dmg = int(math.Round(float64(dmg) * game.CritMultiplier))
			res.Crits++
		}
		if GetToken(actor.Tokens, TokenWeakened) > 0 {
			dmg = int(math.Floor(float64(dmg) * 0.75))
		}

		pierce := hasTrait(card, traitPierce)
		absorbed := 0
		if !pierce {
			absorbed = dmg
			if absorbed > defender.Block {
				absorbed = defender.Block
			}
			defender.Block -= absorbed
		}
		rem := dmg - absorbed
		totalAbsorbed += absorbed

		if rem == 0 && absorbed > 0 && defender.Block > 0 {
			// Parry: a fully-absorbing block turns the leftover into a
			// vulnerability debuff on the attacker for one turn. A hit that
			// dealt nothing to begin with absorbs nothing and never parries.
			actor.VulnMult = 1 + float64(defender.Block)*game.ParryVulnPerBlock
			actor.VulnTurns = 1
			if !multi {
				bc.add(game.Event{
					Type:     game.EventParry,
					Actor:    opposite(qa.Actor),
					Card:     card.ID,
					Absorbed: absorbed,
					Amount:   defender.Block,
				})
			}
		} else if rem > 0 {
			rem = int(math.Round(float64(rem) * defender.VulnMult))
			defBefore := defender.HP
			defender.ApplyDamage(rem)
			totalDamage += rem
			res.DamageDealt += rem

			if !multi {
				evType := game.EventHit
				if pierce {
					evType = game.EventPierce
				} else if absorbed > 0 {
					evType = game.EventBlocked
				}
				bc.add(game.Event{
					Type:           evType,
					Actor:          qa.Actor,
					Card:           card.ID,
					Amount:         rem,
					Absorbed:       absorbed,
					Crits:          res.Crits,
					TargetHPBefore: defBefore,
					TargetHPAfter:  defender.HP,
				})
			}

			// Counter retaliation lands before the next hit continues.
			if defender.Counter > 0 {
				actor.ApplyDamage(defender.Counter)
				res.DamageTaken += defender.Counter
				bc.add(game.Event{
					Type:   game.EventCounter,
					Actor:  opposite(qa.Actor),
					Amount: defender.Counter,
				})
			}
		} else if !multi && absorbed > 0 {
			bc.add(game.Event{
				Type:     game.EventBlocked,
				Actor:    qa.Actor,
				Card:     card.ID,
				Absorbed: absorbed,
			})
		}

		res.HitsDone++

		// Jam check: a hard truncation of the remaining hits, not a retry.
		if card.IsFirearm() && hit < totalHits-1 {
			if bc.rng.Float64() < game.JamChance {
				res.Jammed = true
				res.Cancelled = totalHits - res.HitsDone
				bc.add(game.Event{
					Type:      game.EventJam,
					Actor:     qa.Actor,
					Card:      card.ID,
					Hits:      res.HitsDone,
					Cancelled: res.Cancelled,
				})
				break
			}
		}
	}

	if multi {
		// One aggregate event replaces the per-hit stream.
		bc.add(game.Event{
			Type:           game.EventMultiHit,
			Actor:          qa.Actor,
			Card:           card.ID,
			Amount:         totalDamage,
			Absorbed:       totalAbsorbed,
			Hits:           res.HitsDone,
			Crits:          res.Crits,
			Cancelled:      res.Cancelled,
			TargetHPBefore: hpBefore,
			TargetHPAfter:  defender.HP,
		})
	}
}

func hasTrait(c game.Card, trait string) bool {
	for _, t := range c.Traits {
		if t == trait {
			return true
		}
	}
	return false
}
