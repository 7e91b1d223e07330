package engine

import (
	"testing"

	"github.com/haedavja/hahahahgo/internal/game"

	"github.com/stretchr/testify/require"
)

func TestTokens_StacksMergeAcrossTiers(t *testing.T) {
	store := game.TokenStore{}

	AddToken(store, "burn", 2, game.TierTurn)
	AddToken(store, "burn", 1, game.TierTurn)
	AddToken(store, "burn", 3, game.TierPermanent)

	require.Equal(t, 6, GetToken(store, "burn"))
	require.Equal(t, 3, GetTokenTier(store, "burn", game.TierTurn))
}

func TestTokens_ZeroGrantsIgnored(t *testing.T) {
	store := game.TokenStore{}

	AddToken(store, "burn", 0, game.TierTurn)
	AddToken(store, "burn", -2, game.TierTurn)
	AddToken(store, "", 5, game.TierTurn)

	require.Empty(t, store)
}

func TestTokens_RemovalNeverLeavesZeroStacks(t *testing.T) {
	store := game.TokenStore{}
	AddToken(store, "burn", 2, game.TierTurn)

	RemoveToken(store, "burn", game.TierTurn, 5)

	require.Equal(t, 0, GetToken(store, "burn"))
	// The record and its empty tier map are both gone.
	require.Empty(t, store)
}

func TestTokens_ConsumeSpendsUsageTier(t *testing.T) {
	store := game.TokenStore{}
	AddToken(store, TokenRetainBlock, 1, game.TierUsage)

	require.True(t, ConsumeToken(store, TokenRetainBlock))
	require.False(t, ConsumeToken(store, TokenRetainBlock))
}

func TestTokens_TurnTierClearedAtTurnEnd(t *testing.T) {
	store := game.TokenStore{}
	AddToken(store, "burn", 2, game.TierTurn)
	AddToken(store, "focus", 1, game.TierTurn)
	AddToken(store, TokenImmunity, 2, game.TierPermanent)

	logs := ClearTurnTokens(store)

	require.Len(t, logs, 2)
	require.Equal(t, 0, GetToken(store, "burn"))
	require.Equal(t, 0, GetToken(store, "focus"))
	require.Equal(t, 2, GetToken(store, TokenImmunity))
}

func TestTokens_TimedPermanentsTickDown(t *testing.T) {
	store := game.TokenStore{}
	AddToken(store, TokenImmunity, 2, game.TierPermanent)
	AddToken(store, "mark", 1, game.TierPermanent)

	TickPermanentTokens(store, TokenImmunity)
	require.Equal(t, 1, GetToken(store, TokenImmunity))
	require.Equal(t, 1, GetToken(store, "mark"))

	TickPermanentTokens(store, TokenImmunity)
	require.Equal(t, 0, GetToken(store, TokenImmunity))
	require.Empty(t, store[game.TierPermanent]["immunity"])
}
