package engine

import (
	"testing"

	"github.com/haedavja/hahahahgo/internal/game"

	"github.com/stretchr/testify/require"
)

func TestBuildQueue_SortsBySpeedPlayerFirstOnTie(t *testing.T) {
	playerCards := []game.Card{
		attackCard("p1", 5, 1, 3),
		attackCard("p2", 5, 1, 3),
	}
	enemyCards := []game.Card{
		attackCard("e1", 5, 1, 3),
		attackCard("e2", 5, 1, 4),
	}

	queue := BuildQueue(playerCards, enemyCards, 0, 0)

	require.Len(t, queue, 4)
	// Player p1 and enemy e1 both sit at position 3; the player goes first.
	require.Equal(t, "p1", queue[0].Card.ID)
	require.Equal(t, "e1", queue[1].Card.ID)
	require.Equal(t, "p2", queue[2].Card.ID)
	require.Equal(t, "e2", queue[3].Card.ID)
	for i := 1; i < len(queue); i++ {
		require.GreaterOrEqual(t, queue[i].SP, queue[i-1].SP)
	}
}

func TestBuildQueue_SameActorTiesKeepSubmissionOrder(t *testing.T) {
	playerCards := []game.Card{
		attackCard("first", 5, 1, 0),
		attackCard("second", 5, 1, 0),
	}

	queue := BuildQueue(playerCards, nil, 0, 0)

	require.Equal(t, "first", queue[0].Card.ID)
	require.Equal(t, "second", queue[1].Card.ID)
}

func TestEffectiveSpeed_AgilityShavesCost(t *testing.T) {
	require.InDelta(t, 9.0, effectiveSpeed(10, 2), 1e-9)
	require.InDelta(t, 10.0, effectiveSpeed(10, 0), 1e-9)
}

func TestEffectiveSpeed_FlooredAtFractionOfBase(t *testing.T) {
	// 30 agility would push the cost negative without the floor.
	require.InDelta(t, 1.0, effectiveSpeed(10, 30), 1e-9)
}

func TestInsertQueued_AfterEqualPositions(t *testing.T) {
	queue := []game.QueuedAction{
		{Card: attackCard("a", 0, 1, 1), SP: 1},
		{Card: attackCard("b", 0, 1, 1), SP: 2},
		{Card: attackCard("c", 0, 1, 1), SP: 2},
		{Card: attackCard("d", 0, 1, 1), SP: 3},
	}

	queue = insertQueued(queue, game.QueuedAction{Card: attackCard("x", 0, 1, 1), SP: 2}, 0)

	require.Len(t, queue, 5)
	require.Equal(t, "b", queue[1].Card.ID)
	require.Equal(t, "c", queue[2].Card.ID)
	require.Equal(t, "x", queue[3].Card.ID)
	require.Equal(t, "d", queue[4].Card.ID)
}
