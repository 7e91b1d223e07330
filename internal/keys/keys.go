package keys

import (
	"sort"
	"strconv"
	"strings"
)

// ComboKey produces a canonical key for a detected combo shape. Behavior:
// lower-cases and trims the name, replaces spaces with underscores. The key
// is used as the per-combatant usage counter index, so it must be stable
// across turns and battles.
func ComboKey(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	return strings.ReplaceAll(s, " ", "_")
}

// CostKey produces a canonical key for a multiset of action costs
// (sorted, comma-separated). Useful for caching enemy plan lookups.
func CostKey(costs []int) string {
	cs := make([]int, len(costs))
	copy(cs, costs)
	sort.Ints(cs)
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, strconv.Itoa(c))
	}
	return strings.Join(parts, ",")
}

// CardKey normalizes a card identifier for usage-count bookkeeping.
func CardKey(id string) string {
	return strings.TrimSpace(strings.ToLower(id))
}
