package game

// Combat tuning values. These are battle rules rather than deployment
// settings, so they live with the model instead of the env config.
const (
	// Critical hits: chance grows with the attacker's remaining energy at
	// resolution time.
	CritBaseChance      = 0.05
	CritChancePerEnergy = 0.02
	CritChanceCap       = 0.50
	CritMultiplier      = 1.5

	// Firearm jam chance rolled after each completed hit.
	JamChance = 0.15

	// Parry: fully-absorbed attacks grant the attacker a vulnerability
	// multiplier of 1 + leftoverBlock*ParryVulnPerBlock for one turn.
	ParryVulnPerBlock = 0.5

	// Agility reduces each individual speed cost by 5% per point, floored
	// at 10% of the base cost.
	AgilitySpeedFactor = 0.05
	MinSpeedFraction   = 0.10

	// Ether economy.
	EtherDecayRate = 0.8
	// Each cost point above 1 adds half a multiplier point at settlement.
	CostBonusPerPoint = 0.5

	// Submission budgets for the select phase.
	MaxSubmitCards = 5
	MaxTurnSpeed   = 12

	// Cards dealt from the deck at the start of each turn.
	HandSize = 7

	// Revive restores this fraction of max hp when the relic triggers.
	ReviveFraction = 0.3

	// Soul-break weaken duration in turns.
	WeakenTurns = 2
)

// EtherByRarity returns the base ether value a resolved card grants.
func EtherByRarity(r Rarity) int {
	switch r {
	case RarityUncommon:
		return 14
	case RarityRare:
		return 20
	case RarityLegendary:
		return 30
	default:
		return 10
	}
}
