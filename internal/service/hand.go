package service

import (
	"math/rand"

	"github.com/haedavja/hahahahgo/internal/catalog"
	"github.com/haedavja/hahahahgo/internal/game"
)

// dealHand fills the current turn's hand from the player deck. Guaranteed
// cards earned last turn come first, then a seeded shuffle of the rest. The
// salt separates the initial deal from a redraw in the same turn.
func dealHand(cat *catalog.Catalog, b *game.Battle, salt int64) {
	turn := &b.State.Turn
	rng := rand.New(rand.NewSource(b.State.Seed ^ int64(turn.Number)<<8 ^ salt))

	hand := make([]game.Card, 0, game.HandSize)
	for _, id := range turn.Guaranteed {
		if card, ok := cat.Card(id); ok && len(hand) < game.HandSize {
			hand = append(hand, card)
		}
	}

	deck := cat.DeckCards(cat.Player.Deck)
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	for _, card := range deck {
		if len(hand) >= game.HandSize {
			break
		}
		hand = append(hand, card)
	}
	turn.Hand = hand
}

// RedrawHand replaces the current hand with a fresh deal. Single use per
// turn, select phase only.
func RedrawHand(repo BattleRepo, cat *catalog.Catalog, battleUUID, playerEmail string) (*game.Battle, error) {
	b, err := loadOwnedBattle(repo, battleUUID, playerEmail)
	if err != nil {
		return nil, err
	}
	if b.State.Phase != game.PhaseSelect {
		return nil, ErrWrongPhase
	}
	if b.State.Turn.RedrawUsed {
		return nil, ErrRedrawUsed
	}
	b.State.Turn.RedrawUsed = true
	dealHand(cat, b, redrawSalt)
	syncEnvelope(b)
	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

const redrawSalt = 0x5eed
