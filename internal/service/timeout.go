package service

import (
	"context"
	"time"

	"github.com/haedavja/hahahahgo/internal/game"
	"github.com/haedavja/hahahahgo/internal/logging"
)

// HandleTimedOutBattle force-finishes one battle whose select phase passed
// its deadline. The idle player forfeits.
func HandleTimedOutBattle(repo BattleRepo, b *game.Battle) error {
	if b.Status != game.StatusInProgress || b.State.Phase != game.PhaseSelect {
		return nil
	}
	b.State.Outcome = game.OutcomeDefeat
	b.Message = "Battle ended due to inactivity"
	syncEnvelope(b)
	b.Status = game.StatusAbandoned
	b.ActionDeadline = time.Time{}
	if err := repo.UpdateBattle(b); err != nil {
		return err
	}
	logging.Info("battle timed out", logging.Fields{"battle_id": b.BattleUUID, "turn": b.Turn})
	return repo.UpdateStatsOnBattleEnd(b, true)
}

// ScanTimedOutBattles sweeps everything past its deadline once.
func ScanTimedOutBattles(repo BattleRepo, now time.Time) {
	battles, err := repo.FindTimedOutBattles(now)
	if err != nil {
		logging.Error("failed to scan for timed out battles", err, nil)
		return
	}
	for i := range battles {
		if err := HandleTimedOutBattle(repo, &battles[i]); err != nil {
			logging.Error("failed to time out battle", err, logging.Fields{"battle_id": battles[i].BattleUUID})
		}
	}
}

// StartTimeoutScanner runs the sweep on a fixed interval until ctx is done.
func StartTimeoutScanner(ctx context.Context, repo BattleRepo, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				ScanTimedOutBattles(repo, now)
			}
		}
	}()
}
