package service

import (
	"errors"
	"time"

	"github.com/haedavja/hahahahgo/internal/catalog"
	"github.com/haedavja/hahahahgo/internal/engine"
	"github.com/haedavja/hahahahgo/internal/game"
	"github.com/haedavja/hahahahgo/internal/logging"
)

// ResolveTurn freezes the respond-phase order and runs the whole queue. A
// pending card choice pauses resolution and is reported through the battle
// state rather than an error; the client resumes via ChooseCard.
func ResolveTurn(repo BattleRepo, cat *catalog.Catalog, battleUUID, playerEmail string, actionTimeout time.Duration) (*game.Battle, error) {
	b, err := loadOwnedBattle(repo, battleUUID, playerEmail)
	if err != nil {
		return nil, err
	}
	m := engine.NewTurnMachine(&b.State, engine.Hooks{})
	if b.State.Phase == game.PhaseRespond {
		if err := m.BeginResolve(); err != nil {
			return nil, err
		}
	}
	_, err = m.RunToEnd()
	if err != nil && !errors.Is(err, engine.ErrChoicePending) {
		return nil, err
	}
	return finishOrAdvance(repo, cat, b, m, actionTimeout)
}

// StepTurn resolves a single queued action so clients can animate step by
// step.
func StepTurn(repo BattleRepo, cat *catalog.Catalog, battleUUID, playerEmail string, actionTimeout time.Duration) (*game.Battle, error) {
	b, err := loadOwnedBattle(repo, battleUUID, playerEmail)
	if err != nil {
		return nil, err
	}
	m := engine.NewTurnMachine(&b.State, engine.Hooks{})
	if b.State.Phase == game.PhaseRespond {
		if err := m.BeginResolve(); err != nil {
			return nil, err
		}
	}
	if _, err := m.Step(); err != nil && !errors.Is(err, engine.ErrChoicePending) {
		return nil, err
	}
	return finishOrAdvance(repo, cat, b, m, actionTimeout)
}

// ChooseCard answers a pending card-creation choice and lets the turn
// continue on the next resolve call.
func ChooseCard(repo BattleRepo, cat *catalog.Catalog, battleUUID, playerEmail, selectionID string) (*game.Battle, error) {
	b, err := loadOwnedBattle(repo, battleUUID, playerEmail)
	if err != nil {
		return nil, err
	}
	m := engine.NewTurnMachine(&b.State, engine.Hooks{})
	if err := m.ResolveChoice(selectionID, cat.Card); err != nil {
		return nil, err
	}
	syncEnvelope(b)
	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Concede abandons the battle, counting as a resignation in the player's
// stats.
func Concede(repo BattleRepo, battleUUID, playerEmail string) (*game.Battle, error) {
	b, err := loadOwnedBattle(repo, battleUUID, playerEmail)
	if err != nil {
		return nil, err
	}
	b.State.Outcome = game.OutcomeDefeat
	b.Message = "Battle conceded"
	syncEnvelope(b)
	// A concession is recorded as abandoned, not finished.
	b.Status = game.StatusAbandoned
	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	if err := repo.UpdateStatsOnBattleEnd(b, true); err != nil {
		logging.Error("failed to update stats on concede", err, logging.Fields{"battle_id": b.BattleUUID})
	}
	return b, nil
}

// finishOrAdvance persists the post-resolution state: a finished battle
// rolls its stats up once, a continuing one advances into the next turn with
// a fresh hand and deadline.
func finishOrAdvance(repo BattleRepo, cat *catalog.Catalog, b *game.Battle, m *engine.TurnMachine, actionTimeout time.Duration) (*game.Battle, error) {
	if b.State.PendingChoice != nil {
		syncEnvelope(b)
		if err := repo.UpdateBattle(b); err != nil {
			return nil, err
		}
		return b, nil
	}

	if b.State.Phase == game.PhasePost {
		switch b.State.Outcome {
		case game.OutcomeVictory, game.OutcomeDefeat:
			b.Message = string(b.State.Outcome)
			syncEnvelope(b)
			if err := repo.UpdateBattle(b); err != nil {
				return nil, err
			}
			if err := repo.UpdateStatsOnBattleEnd(b, false); err != nil {
				logging.Error("failed to update stats on battle end", err, logging.Fields{"battle_id": b.BattleUUID})
			}
			logging.Info("battle finished", logging.Fields{"battle_id": b.BattleUUID, "outcome": string(b.State.Outcome)})
			return b, nil
		default:
			if err := m.NextTurn(); err != nil {
				return nil, err
			}
			dealHand(cat, b, 0)
			b.ActionDeadline = time.Now().Add(actionTimeout)
		}
	}

	syncEnvelope(b)
	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}
