package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const validCatalog = `
cards:
  - id: slash
    name: Slash
    type: attack
    damage: 8
    speed_cost: 3
    action_cost: 1
    rarity: common
    category: blade
  - id: guard
    name: Guard
    type: defense
    block: 10
    speed_cost: 2
    action_cost: 1
    rarity: common
  - id: bolt
    name: Bolt
    type: attack
    damage: 4
    speed_cost: 1
    action_cost: 1
    rarity: common
  - id: summon
    name: Summon
    type: defense
    block: 2
    speed_cost: 2
    action_cost: 1
    rarity: uncommon
    effect: create_card
    params:
      candidates: [bolt]
      speed_delta: 1
enemies:
  - id: wraith
    name: Wraith
    hp: 40
    energy: 3
    agility: 1
    ether: 60
    soul_break: stun
    deck: [slash, guard]
player:
  name: Drifter
  hp: 60
  energy: 5
  agility: 2
  deck: [slash, guard, summon]
  has_revive: true
`

func TestParse_ValidCatalog(t *testing.T) {
	c, err := Parse([]byte(validCatalog), "test")
	require.NoError(t, err)

	card, ok := c.Card("slash")
	require.True(t, ok)
	require.Equal(t, 8, card.Damage)

	enemy, err := c.SpawnEnemy("wraith")
	require.NoError(t, err)
	require.Equal(t, 40, enemy.HP)
	require.Equal(t, 60, enemy.Ether)

	player := c.SpawnPlayer()
	require.Equal(t, "Drifter", player.Name)
	require.True(t, player.HasRevive)

	require.Len(t, c.DeckCards(c.Player.Deck), 3)
}

func TestParse_RejectsDuplicateCardID(t *testing.T) {
	bad := `
cards:
  - {id: slash, name: A, type: attack, damage: 1, speed_cost: 1, action_cost: 1}
  - {id: slash, name: B, type: attack, damage: 2, speed_cost: 1, action_cost: 1}
`
	_, err := Parse([]byte(bad), "test")
	require.ErrorContains(t, err, "duplicate card id")
}

func TestParse_RejectsUnknownEffectTag(t *testing.T) {
	bad := `
cards:
  - {id: weird, name: W, type: attack, damage: 1, speed_cost: 1, action_cost: 1, effect: explode}
`
	_, err := Parse([]byte(bad), "test")
	require.ErrorContains(t, err, "unknown effect")
}

func TestParse_RejectsUnknownCandidate(t *testing.T) {
	bad := `
cards:
  - id: summon
    name: S
    type: defense
    block: 1
    speed_cost: 1
    action_cost: 1
    effect: create_card
    params:
      candidates: [ghost]
`
	_, err := Parse([]byte(bad), "test")
	require.ErrorContains(t, err, "unknown candidate")
}

func TestParse_RejectsDanglingDeckReference(t *testing.T) {
	bad := `
cards:
  - {id: slash, name: A, type: attack, damage: 1, speed_cost: 1, action_cost: 1}
enemies:
  - {id: wraith, name: W, hp: 10, energy: 2, agility: 0, ether: 20, deck: [missing]}
`
	_, err := Parse([]byte(bad), "test")
	require.ErrorContains(t, err, "unknown card")
}
