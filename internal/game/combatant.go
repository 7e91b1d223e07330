package game

// TokenTier keys the lifetime of a status token. Usage tokens are consumed
// the instant their effect triggers, turn tokens are cleared unconditionally
// at turn end, permanent tokens persist until explicitly removed.
type TokenTier string

const (
	TierUsage     TokenTier = "usage"
	TierTurn      TokenTier = "turn"
	TierPermanent TokenTier = "permanent"
)

// TokenStore maps lifetime tier -> token id -> stack count. A token with
// zero stacks is absent, never stored. Ops live in the engine package; the
// store itself is plain data so it serializes with the battle state.
type TokenStore map[TokenTier]map[string]int

// SoulBreakEffect selects an enemy's behavior when its ether pool depletes
// while hp remains positive.
type SoulBreakEffect string

const (
	SoulBreakDeath  SoulBreakEffect = "death"
	SoulBreakStun   SoulBreakEffect = "stun"
	SoulBreakWeaken SoulBreakEffect = "weaken"
)

// SubUnit is a secondary enemy body in multi-target battles. Sub-units share
// the owner's token store and ether pool but track their own hp.
type SubUnit struct {
	Name  string `json:"name"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"max_hp"`
}

// Combatant is one side of a battle. Created once at battle start and
// mutated in place through the whole battle; hp and block never go negative.
type Combatant struct {
	Name  string `json:"name"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"max_hp"`
	// Block absorbs damage before it reaches hp and is zeroed at turn end
	// unless a retain-block token is active.
	Block   int `json:"block"`
	Counter int `json:"counter"`
	// VulnMult amplifies damage passing block. Reset to 1 exactly once per
	// turn end.
	VulnMult  float64 `json:"vuln_mult"`
	VulnTurns int     `json:"vuln_turns"`
	Strength  int     `json:"strength"`
	Energy    int     `json:"energy"`
	MaxEnergy int     `json:"max_energy"`
	Agility   int     `json:"agility"`
	Ether     int     `json:"ether"`

	Tokens TokenStore `json:"tokens,omitempty"`
	// UsageCounts tracks per-card resolution counts for card-specific decay.
	UsageCounts map[string]int `json:"usage_counts,omitempty"`
	// ComboUsage is the historical per-combo-shape use counter. It drives
	// ether deflation and never resets within a run.
	ComboUsage map[string]int `json:"combo_usage,omitempty"`

	// Enemy-only fields.
	SubUnits        []SubUnit       `json:"sub_units,omitempty"`
	Grace           int             `json:"grace,omitempty"`
	SoulBroken      bool            `json:"soul_broken,omitempty"`
	SoulBreakKind   SoulBreakEffect `json:"soul_break_kind,omitempty"`
	StunnedTurns    int             `json:"stunned_turns,omitempty"`
	WeakenedTurns   int             `json:"weakened_turns,omitempty"`

	// Player-only revive relic state.
	HasRevive  bool `json:"has_revive,omitempty"`
	ReviveUsed bool `json:"revive_used,omitempty"`
}

// NewCombatant returns a combatant with the maps initialized and the
// vulnerability multiplier at its neutral value.
func NewCombatant(name string, hp, energy, agility int) *Combatant {
	return &Combatant{
		Name:        name,
		HP:          hp,
		MaxHP:       hp,
		VulnMult:    1,
		Energy:      energy,
		MaxEnergy:   energy,
		Agility:     agility,
		Tokens:      TokenStore{},
		UsageCounts: map[string]int{},
		ComboUsage:  map[string]int{},
	}
}

// Normalize rehydrates the map fields after a JSON decode. Empty maps are
// dropped by omitempty on marshal, so a combatant loaded from a persisted
// battle arrives with them nil.
func (c *Combatant) Normalize() {
	if c.Tokens == nil {
		c.Tokens = TokenStore{}
	}
	if c.UsageCounts == nil {
		c.UsageCounts = map[string]int{}
	}
	if c.ComboUsage == nil {
		c.ComboUsage = map[string]int{}
	}
}

// Alive reports whether the combatant still has hit points.
func (c *Combatant) Alive() bool { return c.HP > 0 }

// ApplyDamage reduces hp, flooring at 0 so downstream formulas never see a
// negative pool.
func (c *Combatant) ApplyDamage(n int) {
	c.HP -= n
	if c.HP < 0 {
		c.HP = 0
	}
}
