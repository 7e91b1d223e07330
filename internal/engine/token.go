package engine

import "github.com/haedavja/hahahahgo/internal/game"

// Well-known token ids the engine itself inspects. Catalogs may define
// additional ids; the store does not care.
const (
	TokenRetainBlock = "retain_block"
	TokenWeakened    = "weakened"
	TokenImmunity    = "immunity"
)

// AddToken merges stacks additively into the store, creating the tier map on
// first use. Zero or negative stack grants are ignored.
func AddToken(store game.TokenStore, id string, stacks int, tier game.TokenTier) {
	if stacks <= 0 || id == "" {
		return
	}
	m, ok := store[tier]
	if !ok {
		m = map[string]int{}
		store[tier] = m
	}
	m[id] += stacks
}

// RemoveToken floors at 0 and deletes the record entirely when it reaches 0,
// never leaving a zero-stack token behind. Removing an absent token is a
// no-op, which makes turn-tier clearing idempotent.
func RemoveToken(store game.TokenStore, id string, tier game.TokenTier, stacks int) {
	m, ok := store[tier]
	if !ok {
		return
	}
	cur, ok := m[id]
	if !ok {
		return
	}
	cur -= stacks
	if cur <= 0 {
		delete(m, id)
		if len(m) == 0 {
			delete(store, tier)
		}
		return
	}
	m[id] = cur
}

// GetToken returns the total stacks for id across all tiers.
func GetToken(store game.TokenStore, id string) int {
	total := 0
	for _, m := range store {
		total += m[id]
	}
	return total
}

// GetTokenTier returns the stacks for id in one specific tier.
func GetTokenTier(store game.TokenStore, id string, tier game.TokenTier) int {
	if m, ok := store[tier]; ok {
		return m[id]
	}
	return 0
}

// ConsumeToken spends one stack of a usage-tier token if present, reporting
// whether the effect should trigger.
func ConsumeToken(store game.TokenStore, id string) bool {
	if GetTokenTier(store, id, game.TierUsage) <= 0 {
		return false
	}
	RemoveToken(store, id, game.TierUsage, 1)
	return true
}

// ClearTurnTokens removes every turn-tier token and returns log lines for
// each cleared record. Callers that need "was token X present" signals for
// retained-block style interactions must query before calling this.
func ClearTurnTokens(store game.TokenStore) []string {
	m, ok := store[game.TierTurn]
	if !ok {
		return nil
	}
	logs := make([]string, 0, len(m))
	for id := range m {
		logs = append(logs, "token expired: "+id)
	}
	delete(store, game.TierTurn)
	return logs
}

// TickPermanentTokens decrements timed permanent tokens (immunities) by one
// stack at turn end. Only ids passed in are ticked; everything else in the
// permanent tier persists untouched.
func TickPermanentTokens(store game.TokenStore, timed ...string) {
	for _, id := range timed {
		RemoveToken(store, id, game.TierPermanent, 1)
	}
}
