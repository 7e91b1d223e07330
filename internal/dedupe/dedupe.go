// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent generation requests. Using a centralized singleflight.Group
// ensures that only one generation job runs for a given key while other
// callers wait for the result.
package dedupe

import "golang.org/x/sync/singleflight"

// PlanGroup deduplicates enemy plan generation requests keyed by
// "<battleID>:<turn>" so concurrent state fetches for the same upcoming
// turn produce a single plan.
var PlanGroup singleflight.Group
