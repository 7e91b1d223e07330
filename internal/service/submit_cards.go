package service

import (
	"time"

	"github.com/haedavja/hahahahgo/internal/catalog"
	"github.com/haedavja/hahahahgo/internal/engine"
	"github.com/haedavja/hahahahgo/internal/game"
	"github.com/haedavja/hahahahgo/internal/keys"
	"github.com/haedavja/hahahahgo/internal/logging"
)

// SubmitCards fixes the player's selection for this turn. The submission
// must come out of the dealt hand; the enemy plan is computed (or reused)
// for the same turn and both sides enter the respond phase.
func SubmitCards(repo BattleRepo, cat *catalog.Catalog, battleUUID, playerEmail string, cardIDs []string, actionTimeout time.Duration) (*game.Battle, error) {
	b, err := loadOwnedBattle(repo, battleUUID, playerEmail)
	if err != nil {
		return nil, err
	}

	cards, err := takeFromHand(b.State.Turn.Hand, cardIDs)
	if err != nil {
		return nil, err
	}

	plan, err := BuildEnemyPlan(cat, b)
	if err != nil {
		return nil, err
	}

	m := engine.NewTurnMachine(&b.State, engine.Hooks{})
	if err := m.Submit(cards, plan); err != nil {
		return nil, err
	}

	b.ActionDeadline = time.Now().Add(actionTimeout)
	syncEnvelope(b)
	if err := repo.UpdateBattle(b); err != nil {
		logging.Error("failed to persist submission", err, logging.Fields{"battle_id": b.BattleUUID})
		return nil, err
	}
	logging.Info("cards submitted", logging.Fields{
		"battle_id": b.BattleUUID,
		"turn":      b.State.Turn.Number,
		"combo":     b.State.Turn.PlayerCombo.Name,
	})
	return b, nil
}

// takeFromHand maps ids to card definitions, consuming hand copies so a
// duplicated id needs a duplicated card.
func takeFromHand(hand []game.Card, ids []string) ([]game.Card, error) {
	remaining := append([]game.Card(nil), hand...)
	out := make([]game.Card, 0, len(ids))
	for _, id := range ids {
		found := false
		for i, card := range remaining {
			if keys.CardKey(card.ID) == keys.CardKey(id) {
				out = append(out, card)
				remaining = append(remaining[:i], remaining[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return nil, ErrCardNotInHand
		}
	}
	return out, nil
}

// ReorderCards replaces the player's sequence during the respond phase. The
// ids must be a permutation of the submitted cards.
func ReorderCards(repo BattleRepo, battleUUID, playerEmail string, cardIDs []string) (*game.Battle, error) {
	b, err := loadOwnedBattle(repo, battleUUID, playerEmail)
	if err != nil {
		return nil, err
	}
	order, err := takeFromHand(b.State.Turn.Submitted, cardIDs)
	if err != nil {
		return nil, err
	}
	m := engine.NewTurnMachine(&b.State, engine.Hooks{})
	if err := m.Reorder(order); err != nil {
		return nil, err
	}
	syncEnvelope(b)
	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

// RewindTurn steps back from respond to select, restoring the submitted
// hand. Single use per turn.
func RewindTurn(repo BattleRepo, battleUUID, playerEmail string) (*game.Battle, error) {
	b, err := loadOwnedBattle(repo, battleUUID, playerEmail)
	if err != nil {
		return nil, err
	}
	m := engine.NewTurnMachine(&b.State, engine.Hooks{})
	if err := m.Rewind(); err != nil {
		return nil, err
	}
	syncEnvelope(b)
	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}
