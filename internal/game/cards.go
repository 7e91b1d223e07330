package game

// CardType is a string alias for the two resolvable card categories.
// Using a dedicated type instead of plain string makes code safer and
// self-documenting.
type CardType string

const (
	CardAttack  CardType = "attack"
	CardDefense CardType = "defense"
)

// Rarity indexes the base ether value a card grants when it resolves.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Category tags cards with behavior-relevant groupings. Firearm cards roll a
// jam check after every completed hit of a multi-hit sequence.
type Category string

const (
	CategoryNone    Category = ""
	CategoryBlade   Category = "blade"
	CategoryFirearm Category = "firearm"
	CategoryFocus   Category = "focus"
)

// EffectKind enumerates the closed set of special-effect tags a card may
// carry. The engine resolves these through a single dispatch table so a new
// kind cannot be silently ignored.
type EffectKind string

const (
	EffectNone           EffectKind = ""
	EffectExtraHit       EffectKind = "extra_hit"
	EffectGrantToken     EffectKind = "grant_token"
	EffectRemoveToken    EffectKind = "remove_token"
	EffectCreateCard     EffectKind = "create_card"
	EffectQueuePush      EffectKind = "queue_push"
	EffectQueueAdvance   EffectKind = "queue_advance"
	EffectStunRange      EffectKind = "stun_range"
	EffectNextTurnEnergy EffectKind = "next_turn_energy"
	EffectNextTurnCard   EffectKind = "next_turn_card"
	EffectEtherBlock     EffectKind = "ether_block"
	EffectGraceDrain     EffectKind = "grace_drain"
)

// EffectTarget selects which side an effect applies to.
type EffectTarget string

const (
	TargetSelf     EffectTarget = "self"
	TargetOpponent EffectTarget = "opponent"
)

// EffectParams carries the data for a card's special effect. All fields are
// optional; only the ones relevant to the card's EffectKind are read.
type EffectParams struct {
	TokenID    string       `json:"token_id,omitempty" yaml:"token_id"`
	Stacks     int          `json:"stacks,omitempty" yaml:"stacks"`
	Tier       TokenTier    `json:"tier,omitempty" yaml:"tier"`
	Target     EffectTarget `json:"target,omitempty" yaml:"target"`
	Amount     int          `json:"amount,omitempty" yaml:"amount"`
	SpeedDelta float64      `json:"speed_delta,omitempty" yaml:"speed_delta"`
	SpeedRange float64      `json:"speed_range,omitempty" yaml:"speed_range"`
	// Candidates lists catalog card ids offered when the effect creates an
	// ephemeral card (the player picks one through the pending-choice API).
	Candidates []string `json:"candidates,omitempty" yaml:"candidates"`
}

// Card is an immutable catalog definition. The engine never mutates catalog
// data; ephemeral copies created mid-battle are distinct instances.
type Card struct {
	ID        string       `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	Type      CardType     `json:"type" yaml:"type"`
	Damage    int          `json:"damage,omitempty" yaml:"damage"`
	Block     int          `json:"block,omitempty" yaml:"block"`
	Counter   int          `json:"counter,omitempty" yaml:"counter"`
	Hits      int          `json:"hits,omitempty" yaml:"hits"`
	SpeedCost int          `json:"speed_cost" yaml:"speed_cost"`
	// ActionCost drives combo-shape detection and the action-cost ether bonus.
	ActionCost int          `json:"action_cost" yaml:"action_cost"`
	Rarity     Rarity       `json:"rarity,omitempty" yaml:"rarity"`
	Category   Category     `json:"category,omitempty" yaml:"category"`
	Traits     []string     `json:"traits,omitempty" yaml:"traits"`
	Effect     EffectKind   `json:"effect,omitempty" yaml:"effect"`
	Params     EffectParams `json:"params,omitempty" yaml:"params"`
	// Ephemeral marks card instances injected into a live queue by a
	// create-card effect. They never appear in the catalog.
	Ephemeral bool `json:"ephemeral,omitempty" yaml:"-"`
}

// HitCount returns the number of hits this card resolves (minimum 1 for
// attack cards).
func (c Card) HitCount() int {
	if c.Hits > 1 {
		return c.Hits
	}
	return 1
}

// IsFirearm reports whether the card is subject to jam checks.
func (c Card) IsFirearm() bool {
	return c.Category == CategoryFirearm
}
