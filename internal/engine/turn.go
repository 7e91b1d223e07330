package engine

import (
	"context"
	"errors"

	"github.com/haedavja/hahahahgo/internal/game"

	"github.com/looplab/fsm"
)

var (
	ErrEmptySubmission  = errors.New("nothing to execute: submission is empty")
	ErrBudgetExceeded   = errors.New("submission exceeds energy, speed or card budget")
	ErrNothingToExecute = errors.New("nothing to execute: fixed order is empty")
	ErrChoicePending    = errors.New("a card choice is pending")
	ErrNoChoicePending  = errors.New("no card choice is pending")
	ErrInvalidChoice    = errors.New("selection is not among the offered candidates")
	ErrRewindUsed       = errors.New("rewind already used this turn")
	ErrBattleOver       = errors.New("battle is already decided")
	ErrWrongPhase       = errors.New("operation not allowed in current phase")
)

// Transition event names.
const (
	evSubmit       = "submit"
	evRewind       = "rewind"
	evBeginResolve = "begin_resolve"
	evFinish       = "finish"
	evNextTurn     = "next_turn"
)

// Hooks are turn-boundary callbacks invoked with combatant snapshots so a
// presentation layer never reads internal mutable state directly.
type Hooks struct {
	OnTurnStart func(player, enemy game.Combatant)
	OnTurnEnd   func(player, enemy game.Combatant)
	OnVictory   func(player, enemy game.Combatant)
	OnDefeat    func(player, enemy game.Combatant)
}

func (h Hooks) fire(fn func(player, enemy game.Combatant), b *game.BattleState) {
	if fn != nil {
		fn(*b.Player, *b.Enemy)
	}
}

// StepResult reports what one resolution step did.
type StepResult struct {
	Resolved *ResolveResult
	Outcome  game.Outcome
	// Done is true once the turn left the resolve phase (terminal outcome
	// or queue exhausted).
	Done bool
	// Waiting is true when resolution paused for a pending card choice.
	Waiting bool
}

// TurnMachine owns the phase lifecycle of one battle:
// select -> respond -> resolve -> post -> select. Both combatants' state is
// exclusively owned by the machine for the duration of one resolution step;
// there is no locking because there are no concurrent readers.
type TurnMachine struct {
	b     *game.BattleState
	fsm   *fsm.FSM
	hooks Hooks
}

// NewTurnMachine wraps an existing battle state. The machine resumes from
// the persisted phase, so a battle can be reloaded mid-turn.
func NewTurnMachine(b *game.BattleState, hooks Hooks) *TurnMachine {
	if b.Phase == "" {
		b.Phase = game.PhaseSelect
	}
	// Battles loaded from storage arrive with their empty maps decoded as
	// nil; every downstream write assumes they exist.
	b.Player.Normalize()
	b.Enemy.Normalize()
	m := fsm.NewFSM(
		b.Phase,
		fsm.Events{
			{Name: evSubmit, Src: []string{game.PhaseSelect}, Dst: game.PhaseRespond},
			{Name: evRewind, Src: []string{game.PhaseRespond}, Dst: game.PhaseSelect},
			{Name: evBeginResolve, Src: []string{game.PhaseRespond}, Dst: game.PhaseResolve},
			{Name: evFinish, Src: []string{game.PhaseResolve}, Dst: game.PhasePost},
			{Name: evNextTurn, Src: []string{game.PhasePost}, Dst: game.PhaseSelect},
		},
		fsm.Callbacks{},
	)
	return &TurnMachine{b: b, fsm: m, hooks: hooks}
}

func (t *TurnMachine) transition(event string) error {
	if err := t.fsm.Event(context.Background(), event); err != nil {
		return ErrWrongPhase
	}
	t.b.Phase = t.fsm.Current()
	return nil
}

// Phase returns the current phase name.
func (t *TurnMachine) Phase() string { return t.fsm.Current() }

// Submit fixes the player's hand and the enemy's precomputed plan for this
// turn, detects both combo shapes and builds the initiative queue. The
// submission must be non-empty and fit the energy, speed and card-count
// budgets.
func (t *TurnMachine) Submit(submitted, enemyPlan []game.Card) error {
	if terminal(t.b.Outcome) {
		return ErrBattleOver
	}
	if len(submitted) == 0 {
		return ErrEmptySubmission
	}
	if err := checkBudgets(submitted, t.b.Player.Energy); err != nil {
		return err
	}

	turn := &t.b.Turn
	turn.Submitted = append([]game.Card(nil), submitted...)
	turn.EnemyPlan = append([]game.Card(nil), enemyPlan...)
	// A stunned enemy loses its whole plan for the turn.
	if t.b.Enemy.StunnedTurns > 0 {
		turn.EnemyPlan = nil
	}
	turn.PlayerCombo = DetectCombo(turn.Submitted)
	turn.EnemyCombo = DetectCombo(turn.EnemyPlan)
	turn.RespondSnapshot = append([]game.Card(nil), submitted...)

	t.rebuildQueue()
	return t.transition(evSubmit)
}

// Reorder replaces the player's own sub-sequence of the fixed order during
// the respond phase. Enemy relative timing is untouched because the queue is
// rebuilt from per-actor lists.
func (t *TurnMachine) Reorder(playerOrder []game.Card) error {
	if t.fsm.Current() != game.PhaseRespond {
		return ErrWrongPhase
	}
	if len(playerOrder) != len(t.b.Turn.Submitted) {
		return ErrBudgetExceeded
	}
	t.b.Turn.Submitted = append([]game.Card(nil), playerOrder...)
	t.rebuildQueue()
	return nil
}

// Rewind restores the select phase from the respond snapshot. Single use
// per turn.
func (t *TurnMachine) Rewind() error {
	if t.fsm.Current() != game.PhaseRespond {
		return ErrWrongPhase
	}
	if t.b.Turn.RewindUsed {
		return ErrRewindUsed
	}
	if err := t.transition(evRewind); err != nil {
		return err
	}
	turn := &t.b.Turn
	turn.RewindUsed = true
	turn.Submitted = append([]game.Card(nil), turn.RespondSnapshot...)
	turn.Queue = nil
	turn.FixedOrder = nil
	turn.QIndex = 0
	return nil
}

// BeginResolve freezes the fixed order and enters the resolve phase. An
// empty fixed order (possible after opponent-card destruction) rejects the
// transition with a user-facing warning instead of silently skipping.
func (t *TurnMachine) BeginResolve() error {
	if t.fsm.Current() != game.PhaseRespond {
		return ErrWrongPhase
	}
	t.recoverQueue()
	if len(liveActions(t.b.Turn.Queue)) == 0 {
		return ErrNothingToExecute
	}
	t.b.Turn.FixedOrder = cloneQueue(t.b.Turn.Queue)
	t.b.Turn.QIndex = 0
	return t.transition(evBeginResolve)
}

// Step resolves exactly one queued action. Hosts drive this one call at a
// time so presentation delays can be inserted between steps; RunToEnd runs
// the remainder in one go.
func (t *TurnMachine) Step() (StepResult, error) {
	if t.fsm.Current() != game.PhaseResolve {
		return StepResult{}, ErrWrongPhase
	}
	if t.b.PendingChoice != nil {
		return StepResult{Waiting: true}, ErrChoicePending
	}
	t.recoverQueue()

	turn := &t.b.Turn
	bc := newBattleContext(t.b)

	// Skip destroyed actions and actions whose owner is already dead. The
	// opposing side's queued actions keep resolving.
	for turn.QIndex < len(turn.Queue) {
		qa := &turn.Queue[turn.QIndex]
		if qa.Destroyed {
			turn.QIndex++
			continue
		}
		if !bc.combatant(qa.Actor).Alive() {
			bc.info("skipping action of defeated side: " + qa.Card.Name)
			turn.QIndex++
			continue
		}
		break
	}

	if turn.QIndex >= len(turn.Queue) {
		// Queue consumed: settle the turn and move to post.
		t.endOfTurn(bc)
		bc.flush()
		return StepResult{Outcome: t.b.Outcome, Done: true}, nil
	}

	qa := &turn.Queue[turn.QIndex]
	res := resolveAction(bc, qa)
	turn.QIndex++

	outcome := EvaluateOutcome(bc)
	bc.flush()
	if terminal(outcome) {
		t.b.Outcome = outcome
		t.finishBattle(outcome)
		return StepResult{Resolved: &res, Outcome: outcome, Done: true}, nil
	}
	if t.b.PendingChoice != nil {
		return StepResult{Resolved: &res, Waiting: true}, nil
	}
	return StepResult{Resolved: &res}, nil
}

// RunToEnd steps until the turn finishes or a pending choice blocks.
func (t *TurnMachine) RunToEnd() (game.Outcome, error) {
	for {
		sr, err := t.Step()
		if err != nil {
			return t.b.Outcome, err
		}
		if sr.Waiting {
			return t.b.Outcome, ErrChoicePending
		}
		if sr.Done {
			return t.b.Outcome, nil
		}
	}
}

// ResolveChoice resumes a paused resolve step with the host's selection,
// injecting the chosen card as an ephemeral instance at the requested
// position. lookup maps a catalog id to its definition.
func (t *TurnMachine) ResolveChoice(selectionID string, lookup func(string) (game.Card, bool)) error {
	pc := t.b.PendingChoice
	if pc == nil {
		return ErrNoChoicePending
	}
	valid := false
	for _, c := range pc.Candidates {
		if c == selectionID {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidChoice
	}
	card, ok := lookup(selectionID)
	if !ok {
		return ErrInvalidChoice
	}
	card.Ephemeral = true
	turn := &t.b.Turn
	turn.Queue = insertQueued(turn.Queue, game.QueuedAction{Actor: pc.Actor, Card: card, SP: pc.InsertSP}, turn.QIndex)
	t.b.PendingChoice = nil
	t.b.Log = append(t.b.Log, game.Event{Type: game.EventSpecial, Actor: pc.Actor, Card: card.ID, Message: "card created"})
	return nil
}

// NextTurn merges the accumulated next-turn effects into a fresh turn and
// returns to the select phase.
func (t *TurnMachine) NextTurn() error {
	if terminal(t.b.Outcome) {
		return ErrBattleOver
	}
	if err := t.transition(evNextTurn); err != nil {
		return err
	}
	prev := t.b.Turn
	t.b.Turn = game.TurnState{
		Number:       prev.Number + 1,
		EtherBlocked: prev.NextEffects.EtherBlocked,
		Guaranteed:   append([]string(nil), prev.NextEffects.GuaranteedCards...),
	}

	t.b.Player.Energy = t.b.Player.MaxEnergy + prev.NextEffects.BonusEnergy
	t.b.Enemy.Energy = t.b.Enemy.MaxEnergy

	t.b.Log = append(t.b.Log, game.Event{Type: game.EventTurnStart, Amount: t.b.Turn.Number})
	t.hooks.fire(t.hooks.OnTurnStart, t.b)
	return nil
}

// rebuildQueue regenerates the initiative queue from the current per-actor
// lists. Re-invoked whenever the player's submitted order changes.
func (t *TurnMachine) rebuildQueue() {
	t.b.Turn.Queue = BuildQueue(
		t.b.Turn.Submitted, t.b.Turn.EnemyPlan,
		t.b.Player.Agility, t.b.Enemy.Agility,
	)
}

// recoverQueue is the corruption safety net: an empty live queue with a
// non-empty fixed order is rebuilt from the fixed order so partial updates
// cannot strand a turn.
func (t *TurnMachine) recoverQueue() {
	turn := &t.b.Turn
	if len(turn.Queue) == 0 && len(turn.FixedOrder) > 0 {
		turn.Queue = cloneQueue(turn.FixedOrder)
		if turn.QIndex > len(turn.Queue) {
			turn.QIndex = 0
		}
		t.b.Log = append(t.b.Log, game.Event{Type: game.EventInfo, Message: "live queue rebuilt from fixed order"})
	}
}

// endOfTurn performs settlement: ether economy, token lifecycle and the
// per-turn stat resets, then enters the post phase.
func (t *TurnMachine) endOfTurn(bc *battleContext) {
	b := t.b
	turn := &b.Turn

	// Ether settlement. Usage counts are read before being incremented so
	// the first use of a shape settles undeflated.
	playerGain := SettleEther(turn.PlayerEtherAccum, turn.PlayerCombo, CostBonus(turn.Submitted), b.Player.ComboUsage[turn.PlayerCombo.Key])
	enemyGain := SettleEther(turn.EnemyEtherAccum, turn.EnemyCombo, CostBonus(turn.EnemyPlan), b.Enemy.ComboUsage[turn.EnemyCombo.Key])
	if turn.EtherBlocked {
		enemyGain = 0
	}
	if turn.PlayerCombo.Rank > 0 {
		b.Player.ComboUsage[turn.PlayerCombo.Key]++
	}
	if turn.EnemyCombo.Rank > 0 {
		b.Enemy.ComboUsage[turn.EnemyCombo.Key]++
	}
	TransferEther(b.Player, b.Enemy, playerGain, enemyGain)
	bc.add(game.Event{Type: game.EventEther, Actor: game.ActorPlayer, Amount: playerGain})
	bc.add(game.Event{Type: game.EventEther, Actor: game.ActorEnemy, Amount: enemyGain})

	// The retained-block query must run before turn tokens are cleared.
	for _, side := range []*game.Combatant{b.Player, b.Enemy} {
		retain := GetToken(side.Tokens, TokenRetainBlock) > 0
		for _, msg := range ClearTurnTokens(side.Tokens) {
			bc.info(side.Name + ": " + msg)
		}
		TickPermanentTokens(side.Tokens, TokenImmunity, TokenWeakened)
		if !retain {
			side.Block = 0
		}
		side.Counter = 0
		// Vulnerability resets to neutral exactly once per turn end.
		side.VulnMult = 1
		side.VulnTurns = 0
	}
	if b.Enemy.StunnedTurns > 0 {
		b.Enemy.StunnedTurns--
	}
	if b.Enemy.WeakenedTurns > 0 {
		b.Enemy.WeakenedTurns--
	}

	// Settlement can cross the ether threshold by itself.
	outcome := EvaluateOutcome(bc)
	if outcome != game.OutcomeNone {
		b.Outcome = outcome
	}

	turn.PlayerEtherAccum = 0
	turn.EnemyEtherAccum = 0

	bc.add(game.Event{Type: game.EventTurnEnd, Amount: turn.Number})
	t.hooks.fire(t.hooks.OnTurnEnd, b)

	if err := t.transition(evFinish); err == nil && terminal(b.Outcome) {
		t.finishBattle(b.Outcome)
	}
}

func (t *TurnMachine) finishBattle(outcome game.Outcome) {
	if t.fsm.Current() == game.PhaseResolve {
		_ = t.transition(evFinish)
	}
	switch outcome {
	case game.OutcomeVictory:
		t.hooks.fire(t.hooks.OnVictory, t.b)
	case game.OutcomeDefeat:
		t.hooks.fire(t.hooks.OnDefeat, t.b)
	}
}

func checkBudgets(cards []game.Card, energy int) error {
	if len(cards) > game.MaxSubmitCards {
		return ErrBudgetExceeded
	}
	cost, speed := 0, 0
	for _, c := range cards {
		cost += c.ActionCost
		speed += c.SpeedCost
	}
	if cost > energy || speed > game.MaxTurnSpeed {
		return ErrBudgetExceeded
	}
	return nil
}

func liveActions(queue []game.QueuedAction) []game.QueuedAction {
	out := make([]game.QueuedAction, 0, len(queue))
	for _, qa := range queue {
		if !qa.Destroyed {
			out = append(out, qa)
		}
	}
	return out
}
