package game

// ActorTag identifies which side owns a queued action.
type ActorTag string

const (
	ActorPlayer ActorTag = "player"
	ActorEnemy  ActorTag = "enemy"
)

// Phase values for the turn state machine.
const (
	PhaseSelect  = "select"
	PhaseRespond = "respond"
	PhaseResolve = "resolve"
	PhasePost    = "post"
)

// Battle status values.
const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
	StatusAbandoned  = "abandoned"
)

// Outcome values recorded when a battle finishes.
type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeVictory  Outcome = "victory"
	OutcomeDefeat   Outcome = "defeat"
	OutcomeSoulStun Outcome = "soul_stun"
	OutcomeSoulWeak Outcome = "soul_weaken"
)

// ActionSnapshot captures the battle context an action sees at resolution
// time. It is computed lazily when the cursor reaches the action, not at
// queue-build time, since earlier actions in the same queue mutate it.
type ActionSnapshot struct {
	RemainingEnergy int            `json:"remaining_energy"`
	CategoryUsage   map[string]int `json:"category_usage,omitempty"`
}

// QueuedAction is one entry of the initiative queue.
type QueuedAction struct {
	Actor ActorTag `json:"actor"`
	Card  Card     `json:"card"`
	// SP is the cumulative speed position after the per-cost agility
	// modifier; the queue sorts ascending on it.
	SP float64 `json:"sp"`
	// Destroyed actions (speed-range stun) stay in the queue but are
	// skipped by the cursor so indices remain stable.
	Destroyed bool            `json:"destroyed,omitempty"`
	Snapshot  *ActionSnapshot `json:"snapshot,omitempty"`
}

// NextTurnEffects accumulates bonuses earned this turn and merged into the
// following turn's setup, then cleared.
type NextTurnEffects struct {
	BonusEnergy     int      `json:"bonus_energy,omitempty"`
	GuaranteedCards []string `json:"guaranteed_cards,omitempty"`
	EtherBlocked    bool     `json:"ether_blocked,omitempty"`
}

// Combo describes a detected hand shape for one side.
type Combo struct {
	Name       string  `json:"name"`
	Key        string  `json:"key"`
	Rank       int     `json:"rank"`
	Multiplier float64 `json:"multiplier"`
}

// ChoiceRequest is emitted when a card-creation effect fires. The resolve
// phase pauses until an external caller supplies a selection; the resolution
// cursor must not advance while a request is outstanding.
type ChoiceRequest struct {
	SourceCardID string   `json:"source_card_id"`
	Candidates   []string `json:"candidates"`
	// InsertSP is the queue position the created card instance is
	// injected at once the choice arrives.
	InsertSP float64  `json:"insert_sp"`
	Actor    ActorTag `json:"actor"`
}

// TurnState owns everything rebuilt each turn: the live queue, the fixed
// order snapshot, the resolution cursor and the per-turn accumulators.
type TurnState struct {
	Number int `json:"number"`

	// Hand is the set of cards dealt for this turn; submissions must come
	// out of it.
	Hand      []Card `json:"hand,omitempty"`
	Submitted []Card `json:"submitted,omitempty"`
	EnemyPlan []Card `json:"enemy_plan,omitempty"`

	Queue      []QueuedAction `json:"queue,omitempty"`
	FixedOrder []QueuedAction `json:"fixed_order,omitempty"`
	QIndex     int            `json:"q_index"`

	PlayerCombo Combo `json:"player_combo"`
	EnemyCombo  Combo `json:"enemy_combo"`

	// Per-turn ether accumulators, reset at turn end.
	PlayerEtherAccum int `json:"player_ether_accum"`
	EnemyEtherAccum  int `json:"enemy_ether_accum"`

	NextEffects NextTurnEffects `json:"next_effects"`

	// Carried over from the previous turn's NextEffects at turn start.
	EtherBlocked bool     `json:"ether_blocked,omitempty"`
	Guaranteed   []string `json:"guaranteed,omitempty"`

	RedrawUsed bool `json:"redraw_used,omitempty"`
	RewindUsed bool `json:"rewind_used,omitempty"`
	// RespondSnapshot preserves the submitted hand so a rewind back to
	// select can restore it.
	RespondSnapshot []Card `json:"respond_snapshot,omitempty"`
}

// BattleState is the whole mutable battle aggregate. All engine mutation
// happens inside this one owned value; it is persisted as a JSON column on
// the Battle row.
type BattleState struct {
	Player *Combatant `json:"player"`
	Enemy  *Combatant `json:"enemy"`

	Phase   string `json:"phase"`
	Turn    TurnState `json:"turn"`
	Outcome Outcome   `json:"outcome"`

	PendingChoice *ChoiceRequest `json:"pending_choice,omitempty"`

	// Log is the append-only battle event stream, merged by the
	// orchestrator after every resolution call.
	Log []Event `json:"log,omitempty"`

	// Seed drives the battle's RNG so resolution is reproducible.
	Seed int64 `json:"seed"`
}
