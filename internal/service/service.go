package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/haedavja/hahahahgo/internal/game"
	"github.com/haedavja/hahahahgo/internal/storage"
)

// BattleRepo is the persistence surface the service layer needs.
type BattleRepo = storage.Repository

var (
	ErrBattleNotFound      = errors.New("battle not found")
	ErrBattleNotInProgress = errors.New("battle is not in progress")
	ErrNotYourBattle       = errors.New("battle belongs to another player")
	ErrUnknownCard         = errors.New("unknown card id")
	ErrCardNotInHand       = errors.New("card is not in the current hand")
	ErrUnknownEnemy        = errors.New("unknown enemy id")
	ErrRedrawUsed          = errors.New("redraw already used this turn")
	ErrWrongPhase          = errors.New("operation not allowed in current phase")
	ErrInvalidJoinCode     = errors.New("join code is malformed")
)

// Join codes are the first eight hex characters of the battle UUID,
// upper-cased at mint time.
var joinCodeRegex = regexp.MustCompile(`^[0-9A-F]{8}$`)

// FindBattleByCode resolves a battle from its shareable join code. The code
// lookup returns a short record; the full battle is reloaded by primary key.
func FindBattleByCode(repo BattleRepo, code, playerEmail string) (*game.Battle, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !joinCodeRegex.MatchString(code) {
		return nil, ErrInvalidJoinCode
	}
	short, err := repo.FindBattleByJoinCode(code)
	if err != nil || short == nil {
		return nil, ErrBattleNotFound
	}
	b, err := repo.GetBattleByID(short.ID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if !strings.EqualFold(b.PlayerEmail, playerEmail) {
		return nil, ErrNotYourBattle
	}
	return b, nil
}

// loadOwnedBattle fetches a battle by UUID and checks ownership and status.
func loadOwnedBattle(repo BattleRepo, battleUUID, playerEmail string) (*game.Battle, error) {
	b, err := repo.GetBattleByUUID(battleUUID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if !strings.EqualFold(b.PlayerEmail, playerEmail) {
		return nil, ErrNotYourBattle
	}
	if b.Status != game.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}
	return b, nil
}

// syncEnvelope copies the fields the listing queries need out of the JSON
// state column into their own columns.
func syncEnvelope(b *game.Battle) {
	b.Phase = b.State.Phase
	b.Turn = b.State.Turn.Number
	b.Outcome = b.State.Outcome
	if b.State.Outcome == game.OutcomeVictory || b.State.Outcome == game.OutcomeDefeat {
		b.Status = game.StatusFinished
	}
	b.LastTurnSummary = summarizeLog(b.State.Log, 12)
}

// summarizeLog renders the tail of the event log as a short human-readable
// summary for battle listings.
func summarizeLog(log []game.Event, max int) string {
	if len(log) == 0 {
		return ""
	}
	start := 0
	if len(log) > max {
		start = len(log) - max
	}
	lines := make([]string, 0, len(log)-start)
	for _, ev := range log[start:] {
		if s := ev.Describe(); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, " ")
}
