package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/haedavja/hahahahgo/internal/engine"
	"github.com/haedavja/hahahahgo/internal/game"

	"gopkg.in/yaml.v3"
)

// Enemy is a catalog definition for one opponent archetype.
type Enemy struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	HP      int    `yaml:"hp" json:"hp"`
	Energy  int    `yaml:"energy" json:"energy"`
	Agility int    `yaml:"agility" json:"agility"`
	// Ether is the soul pool; draining it below 1 breaks the enemy even
	// with hp remaining.
	Ether     int                  `yaml:"ether" json:"ether"`
	Grace     int                  `yaml:"grace,omitempty" json:"grace,omitempty"`
	SoulBreak game.SoulBreakEffect `yaml:"soul_break,omitempty" json:"soul_break,omitempty"`
	Deck      []string             `yaml:"deck" json:"deck"`
	SubUnits  []SubUnitEntry       `yaml:"sub_units,omitempty" json:"sub_units,omitempty"`
}

type SubUnitEntry struct {
	Name string `yaml:"name" json:"name"`
	HP   int    `yaml:"hp" json:"hp"`
}

// Player is the starting loadout for the player side.
type Player struct {
	Name      string   `yaml:"name" json:"name"`
	HP        int      `yaml:"hp" json:"hp"`
	Energy    int      `yaml:"energy" json:"energy"`
	Agility   int      `yaml:"agility" json:"agility"`
	Deck      []string `yaml:"deck" json:"deck"`
	HasRevive bool     `yaml:"has_revive,omitempty" json:"has_revive,omitempty"`
}

type rawCatalog struct {
	Cards   []game.Card `yaml:"cards"`
	Enemies []Enemy     `yaml:"enemies"`
	Player  Player      `yaml:"player"`
}

// Catalog holds the validated card and enemy definitions. Immutable after
// Load; safe for concurrent reads.
type Catalog struct {
	Cards   []game.Card
	Enemies []Enemy
	Player  Player

	cardsByID   map[string]game.Card
	enemiesByID map[string]Enemy
}

// Load reads and validates the catalog file at path. Validation failures are
// startup errors, never silent no-ops at resolution time.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(b, path)
}

// Parse validates raw catalog bytes. Split out from Load for tests.
func Parse(b []byte, path string) (*Catalog, error) {
	var rc rawCatalog
	if err := yaml.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if len(rc.Cards) == 0 {
		return nil, fmt.Errorf("catalog file %s: 'cards' is empty", path)
	}

	c := &Catalog{
		Cards:       rc.Cards,
		Enemies:     rc.Enemies,
		Player:      rc.Player,
		cardsByID:   make(map[string]game.Card, len(rc.Cards)),
		enemiesByID: make(map[string]Enemy, len(rc.Enemies)),
	}

	for _, card := range rc.Cards {
		id := strings.TrimSpace(card.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog file %s: card missing 'id'", path)
		}
		if _, exists := c.cardsByID[id]; exists {
			return nil, fmt.Errorf("catalog file %s: duplicate card id '%s'", path, id)
		}
		if card.Type != game.CardAttack && card.Type != game.CardDefense {
			return nil, fmt.Errorf("catalog file %s: card '%s' has unknown type '%s'", path, id, card.Type)
		}
		if card.SpeedCost <= 0 {
			return nil, fmt.Errorf("catalog file %s: card '%s' needs a positive speed_cost", path, id)
		}
		if !engine.KnownEffect(card.Effect) {
			return nil, fmt.Errorf("catalog file %s: card '%s' carries unknown effect '%s'", path, id, card.Effect)
		}
		c.cardsByID[id] = card
	}

	// Candidate lists of create-card effects must reference real cards.
	for _, card := range rc.Cards {
		for _, cand := range card.Params.Candidates {
			if _, ok := c.cardsByID[cand]; !ok {
				return nil, fmt.Errorf("catalog file %s: card '%s' offers unknown candidate '%s'", path, card.ID, cand)
			}
		}
	}

	for _, e := range rc.Enemies {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog file %s: enemy missing 'id'", path)
		}
		if _, exists := c.enemiesByID[e.ID]; exists {
			return nil, fmt.Errorf("catalog file %s: duplicate enemy id '%s'", path, e.ID)
		}
		if e.HP <= 0 || e.Ether <= 0 {
			return nil, fmt.Errorf("catalog file %s: enemy '%s' needs positive hp and ether", path, e.ID)
		}
		for _, id := range e.Deck {
			if _, ok := c.cardsByID[id]; !ok {
				return nil, fmt.Errorf("catalog file %s: enemy '%s' deck references unknown card '%s'", path, e.ID, id)
			}
		}
		c.enemiesByID[e.ID] = e
	}

	for _, id := range rc.Player.Deck {
		if _, ok := c.cardsByID[id]; !ok {
			return nil, fmt.Errorf("catalog file %s: player deck references unknown card '%s'", path, id)
		}
	}

	return c, nil
}

// Card looks up a card definition by id.
func (c *Catalog) Card(id string) (game.Card, bool) {
	card, ok := c.cardsByID[id]
	return card, ok
}

// EnemyByID looks up an enemy definition.
func (c *Catalog) EnemyByID(id string) (Enemy, bool) {
	e, ok := c.enemiesByID[id]
	return e, ok
}

// SpawnEnemy builds a fresh combatant from an enemy definition.
func (c *Catalog) SpawnEnemy(id string) (*game.Combatant, error) {
	e, ok := c.enemiesByID[id]
	if !ok {
		return nil, fmt.Errorf("unknown enemy id '%s'", id)
	}
	cb := game.NewCombatant(e.Name, e.HP, e.Energy, e.Agility)
	cb.Ether = e.Ether
	cb.Grace = e.Grace
	cb.SoulBreakKind = e.SoulBreak
	for _, su := range e.SubUnits {
		cb.SubUnits = append(cb.SubUnits, game.SubUnit{Name: su.Name, HP: su.HP, MaxHP: su.HP})
	}
	return cb, nil
}

// SpawnPlayer builds a fresh player combatant from the catalog loadout.
func (c *Catalog) SpawnPlayer() *game.Combatant {
	p := c.Player
	name := p.Name
	if name == "" {
		name = "player"
	}
	cb := game.NewCombatant(name, p.HP, p.Energy, p.Agility)
	cb.HasRevive = p.HasRevive
	return cb
}

// DeckCards resolves a list of card ids into definitions, skipping nothing:
// ids were validated at load time.
func (c *Catalog) DeckCards(ids []string) []game.Card {
	out := make([]game.Card, 0, len(ids))
	for _, id := range ids {
		if card, ok := c.cardsByID[id]; ok {
			out = append(out, card)
		}
	}
	return out
}
