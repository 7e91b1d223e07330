package engine

import (
	"math/rand"

	"github.com/haedavja/hahahahgo/internal/game"
	"github.com/haedavja/hahahahgo/internal/logging"

	"go.uber.org/zap"
)

// battleContext threads the battle aggregate, the RNG and the per-call event
// accumulator through every resolution step. Events are appended locally and
// merged into the battle log by the orchestrator.
type battleContext struct {
	b      *game.BattleState
	rng    *rand.Rand
	events []game.Event
	log    *zap.Logger
}

func newBattleContext(b *game.BattleState) *battleContext {
	return &battleContext{
		b:      b,
		rng:    newRand(b.Seed, b.Turn.Number, b.Turn.QIndex),
		events: make([]game.Event, 0, 16),
		log:    logging.Engine(),
	}
}

func (bc *battleContext) add(ev game.Event) { bc.events = append(bc.events, ev) }

func (bc *battleContext) info(msg string) {
	bc.events = append(bc.events, game.Event{Type: game.EventInfo, Message: msg})
}

// flush merges accumulated events into the battle log and returns them.
func (bc *battleContext) flush() []game.Event {
	bc.b.Log = append(bc.b.Log, bc.events...)
	out := bc.events
	bc.events = nil
	return out
}

func (bc *battleContext) combatant(tag game.ActorTag) *game.Combatant {
	if tag == game.ActorPlayer {
		return bc.b.Player
	}
	return bc.b.Enemy
}

func (bc *battleContext) opponent(tag game.ActorTag) *game.Combatant {
	if tag == game.ActorPlayer {
		return bc.b.Enemy
	}
	return bc.b.Player
}

func opposite(tag game.ActorTag) game.ActorTag {
	if tag == game.ActorPlayer {
		return game.ActorEnemy
	}
	return game.ActorPlayer
}

// newRand derives a deterministic stream from the battle seed and the
// resolution position so re-running a step after a crash or a pending
// choice produces identical rolls.
func newRand(seed int64, turn, qIndex int) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	mixed := seed ^ int64(turn)<<32 ^ int64(qIndex)<<16
	return rand.New(rand.NewSource(mixed))
}
